package config

import (
	"strings"
	"testing"
)

// TestDefault verifies the built-in endpoint values for every service family.
func TestDefault(t *testing.T) {
	cfg := Default()

	tests := []struct {
		name     string
		endpoint ServiceEndpoint
		port     int
	}{
		{name: "ingestion", endpoint: cfg.Ingestion, port: 50051},
		{name: "query", endpoint: cfg.Query, port: 50052},
		{name: "annotation", endpoint: cfg.Annotation, port: 50053},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.endpoint.Host != "localhost" {
				t.Fatalf("unexpected host: %s", tt.endpoint.Host)
			}
			if tt.endpoint.Port != tt.port {
				t.Fatalf("expected port %d, got %d", tt.port, tt.endpoint.Port)
			}
			if tt.endpoint.UseTLS {
				t.Fatal("expected TLS off by default")
			}
		})
	}
}

func TestConnectionString(t *testing.T) {
	e := ServiceEndpoint{Host: "ingest.example.com", Port: 8080}
	if got := e.ConnectionString(); got != "ingest.example.com:8080" {
		t.Fatalf("unexpected connection string: %s", got)
	}
}

// TestTransportCredentials verifies that UseTLS is the single switch between
// TLS and plaintext transport security.
func TestTransportCredentials(t *testing.T) {
	plain := ServiceEndpoint{Host: "localhost", Port: 50051}
	if proto := plain.TransportCredentials().Info().SecurityProtocol; proto != "insecure" {
		t.Fatalf("expected insecure credentials, got %s", proto)
	}

	secure := ServiceEndpoint{Host: "localhost", Port: 443, UseTLS: true}
	if proto := secure.TransportCredentials().Info().SecurityProtocol; proto != "tls" {
		t.Fatalf("expected tls credentials, got %s", proto)
	}
}

func TestServiceEndpointValidate(t *testing.T) {
	tests := []struct {
		name     string
		endpoint ServiceEndpoint
		wantErr  bool
	}{
		{name: "valid", endpoint: ServiceEndpoint{Host: "localhost", Port: 50051}},
		{name: "empty host", endpoint: ServiceEndpoint{Port: 50051}, wantErr: true},
		{name: "zero port", endpoint: ServiceEndpoint{Host: "localhost"}, wantErr: true},
		{name: "negative port", endpoint: ServiceEndpoint{Host: "localhost", Port: -1}, wantErr: true},
		{name: "port too large", endpoint: ServiceEndpoint{Host: "localhost", Port: 70000}, wantErr: true},
		{name: "max port", endpoint: ServiceEndpoint{Host: "localhost", Port: 65535}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.endpoint.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

// TestConfigValidate_NamesFamily verifies that validation failures name the
// offending service family.
func TestConfigValidate_NamesFamily(t *testing.T) {
	cfg := Default()
	cfg.Query.Port = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "query") {
		t.Fatalf("error does not name the family: %v", err)
	}
}
