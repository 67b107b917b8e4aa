package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInput         = errors.New("input error")
	ErrTransport     = errors.New("transport error")
	ErrNotFound      = errors.New("not found")
	ErrPartialField  = errors.New("partial field error")
	ErrSerialization = errors.New("serialization error")
	ErrConfiguration = errors.New("configuration error")
	ErrExternalTool  = errors.New("external tool error")
)

// Exit codes returned by the CLI for each failure class.
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitInput         = 2
	ExitTransport     = 3
	ExitNotFound      = 4
	ExitSerialization = 5
	ExitConfiguration = 6
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransport
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ExitCode maps a pipeline error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrInput):
		return ExitInput
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	case errors.Is(err, ErrTransport):
		return ExitTransport
	case errors.Is(err, ErrSerialization):
		return ExitSerialization
	case errors.Is(err, ErrConfiguration):
		return ExitConfiguration
	default:
		return ExitFailure
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
