package config

import "testing"

// TestOverridesFromEnvironment_AllFields verifies per-field parsing for one
// family from an environment snapshot.
func TestOverridesFromEnvironment_AllFields(t *testing.T) {
	environ := []string{
		"MLDP_INGESTION_HOST=prod-ingestion.example.com",
		"MLDP_INGESTION_PORT=443",
		"MLDP_INGESTION_USE_TLS=true",
	}

	overrides, err := overridesFromEnvironment(EnvPrefix, environ)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	o, ok := overrides["ingestion"]
	if !ok {
		t.Fatal("expected ingestion override")
	}
	if o.host == nil || *o.host != "prod-ingestion.example.com" {
		t.Fatalf("unexpected host override: %v", o.host)
	}
	if o.port == nil || *o.port != 443 {
		t.Fatalf("unexpected port override: %v", o.port)
	}
	if o.useTLS == nil || !*o.useTLS {
		t.Fatalf("unexpected useTLS override: %v", o.useTLS)
	}
}

// TestOverridesFromEnvironment_CaseInsensitive verifies that variable names
// match regardless of case.
func TestOverridesFromEnvironment_CaseInsensitive(t *testing.T) {
	environ := []string{"mldp_query_host=q.example.com"}

	overrides, err := overridesFromEnvironment(EnvPrefix, environ)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	o, ok := overrides["query"]
	if !ok || o.host == nil || *o.host != "q.example.com" {
		t.Fatalf("expected query host override, got %+v", overrides)
	}
}

// TestOverridesFromEnvironment_Ignored verifies that unrelated variables,
// unknown families, and unknown fields are skipped silently.
func TestOverridesFromEnvironment_Ignored(t *testing.T) {
	environ := []string{
		"PATH=/usr/bin",
		"MLDP_CONFIG_FILE=/etc/mldp.yaml",
		"MLDP_GATEWAY_HOST=gw.example.com",
		"MLDP_INGESTION_TIMEOUT=5s",
	}

	overrides, err := overridesFromEnvironment(EnvPrefix, environ)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(overrides) != 0 {
		t.Fatalf("expected no overrides, got %+v", overrides)
	}
}

func TestOverridesFromEnvironment_InvalidPort(t *testing.T) {
	_, err := overridesFromEnvironment(EnvPrefix, []string{"MLDP_INGESTION_PORT=not-a-number"})
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestParseBool(t *testing.T) {
	truthy := []string{"1", "t", "true", "TRUE", "yes", "on", " True "}
	for _, s := range truthy {
		got, err := parseBool(s)
		if err != nil || !got {
			t.Fatalf("parseBool(%q) = %v, %v; expected true", s, got, err)
		}
	}

	falsy := []string{"0", "f", "false", "FALSE", "no", "off"}
	for _, s := range falsy {
		got, err := parseBool(s)
		if err != nil || got {
			t.Fatalf("parseBool(%q) = %v, %v; expected false", s, got, err)
		}
	}

	if _, err := parseBool("maybe"); err == nil {
		t.Fatal("expected error for invalid boolean")
	}
}

// TestApplyEnvOverrides_FieldByField verifies that each family's fields are
// overridable independently and untouched fields keep their values.
func TestApplyEnvOverrides_FieldByField(t *testing.T) {
	cfg := Default()
	environ := []string{
		"MLDP_INGESTION_PORT=443",
		"MLDP_ANNOTATION_HOST=ann.example.com",
	}

	out, err := applyEnvOverrides(cfg, environ)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Ingestion.Port != 443 {
		t.Fatalf("expected ingestion port 443, got %d", out.Ingestion.Port)
	}
	if out.Ingestion.Host != "localhost" {
		t.Fatalf("ingestion host should be untouched, got %s", out.Ingestion.Host)
	}
	if out.Annotation.Host != "ann.example.com" {
		t.Fatalf("expected annotation host override, got %s", out.Annotation.Host)
	}
	if out.Query != cfg.Query {
		t.Fatalf("query endpoint should be untouched, got %+v", out.Query)
	}
	if cfg.Ingestion.Port != 50051 {
		t.Fatal("input config must not be mutated")
	}
}
