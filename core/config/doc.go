// Package config loads application configuration.
//
// Configuration is assembled from three layers, lowest precedence first:
// struct-tag defaults, a .env file in the working directory, and process
// environment variables. Nested keys map to underscore-separated variables,
// e.g. EDGERC_SECTION overrides edgerc.section and ARCHIVE_BUCKET overrides
// archive.bucket.
//
// Per-run knobs (input/output paths, batch size, delay) are command-line
// flags and deliberately not part of this package; config carries the
// environment-shaped settings that stay stable across runs.
package config
