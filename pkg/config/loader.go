package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the conventional configuration file name searched for in
// the working directory and at the project root.
const ConfigFileName = "mldp-config.yaml"

// rootMarker identifies a project root during ancestor discovery.
const rootMarker = "go.mod"

var (
	// ErrConfigFileNotFound reports that an explicitly named configuration
	// file does not exist.
	ErrConfigFileNotFound = errors.New("config file not found")

	// ErrConfigParse reports that a configuration file exists but could not
	// be parsed.
	ErrConfigParse = errors.New("config parse error")
)

type loadOptions struct {
	seed *Config
	file string
}

// LoadOption customizes Load.
type LoadOption func(*loadOptions)

// WithConfig seeds resolution with an explicit configuration. Environment
// overrides still apply on top of the seed.
func WithConfig(cfg *Config) LoadOption {
	return func(o *loadOptions) { o.seed = cfg }
}

// WithFile names an explicit configuration file. Load fails with
// ErrConfigFileNotFound when the file does not exist.
func WithFile(path string) LoadOption {
	return func(o *loadOptions) { o.file = path }
}

// Load resolves the Data Platform configuration. Source precedence, first
// match wins:
//
//  1. An explicit configuration seed (WithConfig).
//  2. An explicit file path (WithFile); a missing file is an error.
//  3. The file named by MLDP_CONFIG_FILE; if absent on disk it is skipped
//     with a warning and discovery continues.
//  4. mldp-config.yaml in the current working directory.
//  5. mldp-config.yaml in an ancestor directory containing go.mod, nearest
//     ancestor first.
//  6. Built-in defaults.
//
// Environment overrides (MLDP_<FAMILY>_HOST, _PORT, _USE_TLS) are applied
// last in every branch, so an operator can always force a value regardless of
// how the rest of the configuration was assembled.
func Load(opts ...LoadOption) (*Config, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	var cfg *Config
	if o.seed != nil {
		seeded := *o.seed
		cfg = &seeded
	} else {
		path, err := FindConfigFile(o.file)
		if err != nil {
			return nil, err
		}
		if path != "" {
			cfg, err = loadFile(path)
			if err != nil {
				return nil, err
			}
		} else {
			cfg = Default()
		}
	}

	cfg, err := applyEnvOverrides(cfg, os.Environ())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfigFile locates a configuration file using the discovery order
// documented on Load (steps 2-5). It returns an empty path when no file is
// found, which is not an error.
func FindConfigFile(explicit string) (string, error) {
	if explicit != "" {
		if fileExists(explicit) {
			return explicit, nil
		}
		return "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, explicit)
	}

	if fromEnv := os.Getenv(EnvConfigFile); fromEnv != "" {
		if fileExists(fromEnv) {
			return fromEnv, nil
		}
		zap.L().Warn("config file named by environment does not exist, continuing discovery",
			zap.String("var", EnvConfigFile),
			zap.String("path", fromEnv))
	}

	cwd, err := os.Getwd()
	if err != nil {
		// No working directory means no conventional file to discover.
		return "", nil
	}

	for dir := cwd; ; {
		candidate := filepath.Join(dir, ConfigFileName)
		if dir == cwd || fileExists(filepath.Join(dir, rootMarker)) {
			if fileExists(candidate) {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// fileEndpoint mirrors one service family section of the YAML document.
// Pointer fields distinguish absent keys from zero values; unknown keys are
// ignored by the decoder.
type fileEndpoint struct {
	Host   *string `yaml:"host"`
	Port   *int    `yaml:"port"`
	UseTLS *bool   `yaml:"use_tls"`
}

func (fe *fileEndpoint) applyTo(e ServiceEndpoint) ServiceEndpoint {
	if fe == nil {
		return e
	}
	if fe.Host != nil {
		e.Host = *fe.Host
	}
	if fe.Port != nil {
		e.Port = *fe.Port
	}
	if fe.UseTLS != nil {
		e.UseTLS = *fe.UseTLS
	}
	return e
}

type fileConfig struct {
	Ingestion  *fileEndpoint `yaml:"ingestion"`
	Query      *fileEndpoint `yaml:"query"`
	Annotation *fileEndpoint `yaml:"annotation"`
}

// loadFile reads path and merges its values over the defaults. A file that
// vanished since discovery is treated the same as no file at all.
func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}

	cfg := Default()
	cfg.Ingestion = fc.Ingestion.applyTo(cfg.Ingestion)
	cfg.Query = fc.Query.applyTo(cfg.Query)
	cfg.Annotation = fc.Annotation.applyTo(cfg.Annotation)
	return cfg, nil
}
