package mux

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"movietag/internal/logging"
	"movietag/internal/services"
)

// DefaultTool is the Matroska property editor used to attach tag documents.
const DefaultTool = "mkvpropedit"

// CommandRunner executes an external command.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// Muxer attaches tag documents to Matroska containers as global tags.
type Muxer struct {
	tool   string
	logger *slog.Logger
	run    CommandRunner
}

// NewMuxer constructs a muxer that invokes tool (DefaultTool when empty).
func NewMuxer(tool string, logger *slog.Logger) *Muxer {
	tool = strings.TrimSpace(tool)
	if tool == "" {
		tool = DefaultTool
	}
	return &Muxer{
		tool:   tool,
		logger: logging.NewComponentLogger(logger, "muxer"),
		run:    defaultCommandRunner,
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (m *Muxer) WithCommandRunner(r CommandRunner) {
	if m != nil && r != nil {
		m.run = r
	}
}

// Tool returns the executable name the muxer invokes.
func (m *Muxer) Tool() string {
	if m == nil {
		return DefaultTool
	}
	return m.tool
}

// Attach replaces the container's global tags with the document at
// documentPath. The container is edited in place.
func (m *Muxer) Attach(ctx context.Context, containerPath, documentPath string) error {
	if m == nil {
		return fmt.Errorf("muxer not initialized")
	}
	if strings.TrimSpace(containerPath) == "" {
		return fmt.Errorf("container path is required")
	}
	if strings.TrimSpace(documentPath) == "" {
		return fmt.Errorf("tag document path is required")
	}
	if _, err := os.Stat(containerPath); err != nil {
		return services.Wrap(services.ErrExternalTool, "muxer", "attach", "container not found", err)
	}
	if _, err := os.Stat(documentPath); err != nil {
		return services.Wrap(services.ErrExternalTool, "muxer", "attach", "tag document not found", err)
	}

	args := BuildArgs(containerPath, documentPath)
	m.logger.Debug("executing "+m.tool,
		logging.String("container", containerPath),
		logging.String("document", documentPath),
	)
	if err := m.run(ctx, m.tool, args...); err != nil {
		return services.Wrap(services.ErrExternalTool, "muxer", "attach", m.tool+" failed", err)
	}

	m.logger.Info("tags attached to container",
		logging.String(logging.FieldEventType, "tags_muxed"),
		logging.String("container", containerPath),
	)
	return nil
}

// BuildArgs returns the editor arguments that set global tags from a file.
func BuildArgs(containerPath, documentPath string) []string {
	return []string{containerPath, "--tags", "global:" + documentPath}
}

func defaultCommandRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
