package config

import (
	"fmt"
	"strconv"
	"strings"
)

// EnvPrefix is shared by all override variables, e.g. MLDP_INGESTION_PORT.
const EnvPrefix = "MLDP_"

// EnvConfigFile names an alternate configuration file path.
const EnvConfigFile = "MLDP_CONFIG_FILE"

// endpointOverride carries the per-field environment overrides for one
// service family. Nil fields were not present in the environment.
type endpointOverride struct {
	host   *string
	port   *int
	useTLS *bool
}

func (o endpointOverride) applyTo(e ServiceEndpoint) ServiceEndpoint {
	if o.host != nil {
		e.Host = *o.host
	}
	if o.port != nil {
		e.Port = *o.port
	}
	if o.useTLS != nil {
		e.UseTLS = *o.useTLS
	}
	return e
}

// overridesFromEnvironment scans an environment snapshot (os.Environ form)
// for variables named <prefix><FAMILY>_<FIELD>, matching keys
// case-insensitively, and returns the parsed overrides keyed by lower-case
// family name. Variables for unknown families or fields are ignored; a value
// that fails to parse is an error.
func overridesFromEnvironment(prefix string, environ []string) (map[string]endpointOverride, error) {
	prefix = strings.ToUpper(prefix)
	overrides := make(map[string]endpointOverride)

	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || value == "" {
			// An empty value means unset, same as an absent variable.
			continue
		}
		upper := strings.ToUpper(key)
		if !strings.HasPrefix(upper, prefix) {
			continue
		}
		family, field, ok := splitFamilyField(upper[len(prefix):])
		if !ok {
			continue
		}

		o := overrides[family]
		switch field {
		case "HOST":
			v := value
			o.host = &v
		case "PORT":
			p, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return nil, fmt.Errorf("environment variable %s: invalid port %q", key, value)
			}
			o.port = &p
		case "USE_TLS":
			b, err := parseBool(value)
			if err != nil {
				return nil, fmt.Errorf("environment variable %s: %w", key, err)
			}
			o.useTLS = &b
		default:
			continue
		}
		overrides[family] = o
	}
	return overrides, nil
}

func splitFamilyField(s string) (family, field string, ok bool) {
	family, field, ok = strings.Cut(s, "_")
	if !ok {
		return "", "", false
	}
	switch family {
	case "INGESTION", "QUERY", "ANNOTATION":
		return strings.ToLower(family), field, true
	}
	return "", "", false
}

// parseBool accepts the common truthy/falsy string forms.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "yes", "on":
		return true, nil
	case "0", "f", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean value %q", s)
}

// applyEnvOverrides returns a copy of cfg with the environment snapshot's
// overrides applied field by field, per family.
func applyEnvOverrides(cfg *Config, environ []string) (*Config, error) {
	overrides, err := overridesFromEnvironment(EnvPrefix, environ)
	if err != nil {
		return nil, err
	}

	out := *cfg
	if o, ok := overrides["ingestion"]; ok {
		out.Ingestion = o.applyTo(out.Ingestion)
	}
	if o, ok := overrides["query"]; ok {
		out.Query = o.applyTo(out.Query)
	}
	if o, ok := overrides["annotation"]; ok {
		out.Annotation = o.applyTo(out.Annotation)
	}
	return &out, nil
}
