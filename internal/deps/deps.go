package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external dependency movietag relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// ToolLocator answers whether an external executable can be invoked.
type ToolLocator interface {
	Exists(name string) bool
}

// PathLocator resolves executables through the command search path.
type PathLocator struct{}

// Exists reports whether name resolves on PATH (or is an executable path).
func (PathLocator) Exists(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	_, err := exec.LookPath(name)
	return err == nil
}

// StaticLocator reports a fixed set of tools as present. Useful in tests and
// dry runs.
type StaticLocator map[string]bool

// Exists reports whether name is marked present.
func (s StaticLocator) Exists(name string) bool {
	return s[strings.TrimSpace(name)]
}

// CheckBinaries evaluates the provided requirements against PATH.
func CheckBinaries(requirements []Requirement) []Status {
	return CheckBinariesWith(PathLocator{}, requirements)
}

// CheckBinariesWith evaluates the provided requirements using locator.
func CheckBinariesWith(locator ToolLocator, requirements []Requirement) []Status {
	if locator == nil {
		locator = PathLocator{}
	}
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if !locator.Exists(cmd) {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
