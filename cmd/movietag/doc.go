// Package main hosts the movietag CLI entrypoint and command graph.
//
// The Cobra-based command tree resolves configuration, builds the structured
// logger and TMDB client, and hands tagging requests to the pipeline package.
// Command results go to stdout; logs go to stderr. The process exit status
// reflects the error class (input, transport, not found, serialization,
// configuration).
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
