// Package mux embeds finished tag documents into Matroska containers by
// driving mkvpropedit. The command runner is injectable so callers can test
// without the tool installed.
package mux
