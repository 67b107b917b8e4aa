// Package stageexec runs a single pipeline stage with consistent logging.
package stageexec
