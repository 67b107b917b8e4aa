// Package services defines shared utilities consumed by the metadata pipeline
// and its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp stage names and run correlation identifiers
//     for logging.
//   - Structured error markers plus the Wrap helper so callers can classify
//     failures (input, transport, not found, serialization) with errors.Is and
//     map them to exit codes.
//
// Use these helpers when wiring new pipeline logic so failure handling stays
// uniform across components.
package services
