package capabilities

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/fennec-run/fennec/internal/application/ports"
	"github.com/fennec-run/fennec/internal/domain/permissions"
)

// TerminalPrompter asks the user whether to grant a denied permission.
// It implements ports.PermissionPrompter.
type TerminalPrompter struct{}

// NewTerminalPrompter creates a terminal-backed prompter.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{}
}

// IsInteractive reports whether stdin is a terminal. Prompting from a
// pipe or redirected input would hang, so callers must check this first.
func (p *TerminalPrompter) IsInteractive() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// PromptForPermission asks about one denied resource. Any error from the
// form (EOF, interrupt) counts as a deny.
func (p *TerminalPrompter) PromptForPermission(category permissions.Category, resource string) (ports.Decision, error) {
	var choice string
	err := huh.NewSelect[string]().
		Title(fmt.Sprintf("Script requires %s access to %q", category, resource)).
		Description(describeRisk(category)).
		Options(
			huh.NewOption("Deny", "deny"),
			huh.NewOption("Allow once", "once"),
			huh.NewOption("Allow always (saved to grant file)", "always"),
		).
		Value(&choice).
		Run()
	if err != nil {
		return ports.DecisionDeny, nil
	}

	switch choice {
	case "once":
		return ports.DecisionAllowOnce, nil
	case "always":
		return ports.DecisionAllowAlways, nil
	default:
		return ports.DecisionDeny, nil
	}
}

// describeRisk explains what granting the category means for this run.
func describeRisk(category permissions.Category) string {
	switch category {
	case permissions.CategoryRead:
		return "The script will be able to read this path and everything under it."
	case permissions.CategoryWrite:
		return "The script will be able to modify files at this path."
	case permissions.CategoryNet:
		return "The script will be able to connect to this host."
	case permissions.CategoryEnv:
		return "The script will be able to read this environment variable."
	case permissions.CategoryRun:
		return "The script will be able to spawn this command."
	default:
		return ""
	}
}
