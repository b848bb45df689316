// Package logging builds the slog loggers used across assetpress.
//
// Two output formats are supported: a human-oriented console format with
// optional color (enabled only on terminals) and machine-readable JSON. Log
// output can be mirrored to a file in the configured log directory.
package logging
