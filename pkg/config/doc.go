// Package config resolves endpoint configuration for the Data Platform
// service family (ingestion, query, annotation).
//
// Each service is described by a ServiceEndpoint (host, port, TLS mode); a
// Config holds one endpoint per family and knows how to open a channel for
// each of them.
//
// # Resolution
//
// Load assembles a Config from layered sources:
//
//	cfg, err := config.Load()                          // discovery + defaults
//	cfg, err := config.Load(config.WithFile(path))     // explicit file
//	cfg, err := config.Load(config.WithConfig(seed))   // explicit values
//
// File discovery checks, in order: the explicit path, the MLDP_CONFIG_FILE
// environment variable, mldp-config.yaml in the working directory, and
// mldp-config.yaml next to an ancestor go.mod. A missing conventional file
// falls back to defaults; a missing explicit file is ErrConfigFileNotFound; a
// malformed file is ErrConfigParse.
//
// # Environment overrides
//
// Variables named MLDP_<FAMILY>_<FIELD> override individual fields after all
// other sources, in every branch:
//
//	MLDP_INGESTION_HOST=ingest.example.com
//	MLDP_INGESTION_PORT=443
//	MLDP_INGESTION_USE_TLS=true
//
// Key matching is case-insensitive; booleans accept 1/0, t/f, true/false,
// yes/no, on/off.
//
// # File format
//
// The YAML document has one section per service family; missing keys keep
// their defaults and unknown keys are ignored:
//
//	ingestion:
//	  host: ingest.example.com
//	  port: 443
//	  use_tls: true
//	query:
//	  host: query.example.com
//
// # Thread Safety
//
// Config and ServiceEndpoint values are immutable after resolution; share
// them freely across goroutines.
package config
