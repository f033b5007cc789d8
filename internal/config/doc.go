// Package config defines the worker's configuration structure and loading.
// Configuration comes from environment variables with the STRINGSW_ prefix
// (for example STRINGSW_EXTRACT_OUTPUT_DIR) and is validated before use.
package config
