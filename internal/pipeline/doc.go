// Package pipeline wires title normalization, catalog resolution, metadata
// aggregation, and tag serialization into a single run.
//
// Runner.Run validates its inputs before touching the network, writes the
// document atomically under an advisory lock, and optionally hands the result
// to mkvpropedit. Each run carries a correlation id that appears on every log
// line it emits.
package pipeline
