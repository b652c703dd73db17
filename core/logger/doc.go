// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production). For a CLI tool the console encoding is the
// default; json is available for machine consumption of the logs.
//
// # Run correlation
//
// Every invocation of the tool is assigned a run ID. The WithRunID helper
// attaches it to the log entry, ensuring that all logs from a single batch
// run can be correlated with the archived results workbook for that run.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: console (development) or json (production)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Reconciliation started")
//
//	l := logger.WithRunID(log, runID)
//	l.Warn("Batch rejected", zap.Int("size", len(chunk)))
package logger
