package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"movietag/internal/pipeline"
)

type statusKind int

const (
	statusNote statusKind = iota
	statusOK
	statusWarn
)

const (
	ansiReset  = "\x1b[0m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const statusLabelWidth = 10

// statusLine is one line of the summary printed after a tagging run.
type statusLine struct {
	label   string
	kind    statusKind
	message string
}

// resultStatus describes where the document ended up, whether the container
// was tagged, and every advisory the run collected.
func resultStatus(result pipeline.Result) []statusLine {
	lines := make([]statusLine, 0, 2+len(result.Advisories))
	switch {
	case result.PartialWrite:
		lines = append(lines, statusLine{"Document", statusWarn, result.DocumentPath + " may be incomplete"})
	case result.Removed:
		lines = append(lines, statusLine{"Document", statusNote, "removed after tagging the container"})
	case result.Written:
		lines = append(lines, statusLine{"Document", statusOK, result.DocumentPath})
	}
	if result.Muxed {
		lines = append(lines, statusLine{"Container", statusOK, "global tags replaced"})
	}
	for _, advisory := range result.Advisories {
		lines = append(lines, statusLine{"Advisory", statusWarn, advisory})
	}
	return lines
}

func (l statusLine) render(colorize bool) string {
	text := fmt.Sprintf("%-*s %-4s %s", statusLabelWidth, l.label+":", statusKindLabel(l.kind), l.message)
	if !colorize {
		return text
	}
	return statusKindColor(l.kind) + text + ansiReset
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "ok"
	case statusWarn:
		return "warn"
	default:
		return "note"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	default:
		return ansiBlue
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
