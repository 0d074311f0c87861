// Package config provides centralized configuration management for the
// IPCA capture tool. It handles loading configuration from multiple
// sources, validation, and the single source of truth for file paths.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of
// precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration file (YAML)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern IPCA_* for namespacing:
//
//	IPCA_SIDRA_TABLE_ID=1737
//	IPCA_SIDRA_TIMEOUT=30s
//	IPCA_PIPELINE_WINDOW_MONTHS=24
//	IPCA_LOGGING_LEVEL=info
//
// # Paths
//
// All file paths resolve relative to the executable directory, never the
// current working directory, so the tool behaves identically regardless
// of where it is invoked from.
package config
