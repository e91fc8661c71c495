package capabilities

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fennec-run/fennec/internal/domain/permissions"
)

// Selection behavior is delegated to github.com/charmbracelet/huh; what
// is ours to test is the interactivity detection and the risk text.

func TestTerminalPrompter_IsInteractiveUnderTestRunner(t *testing.T) {
	p := NewTerminalPrompter()

	// Test runners wire stdin to a pipe or /dev/null, never a terminal.
	assert.False(t, p.IsInteractive())
}

func TestDescribeRisk_CoversEveryCategory(t *testing.T) {
	categories := []permissions.Category{
		permissions.CategoryRead,
		permissions.CategoryWrite,
		permissions.CategoryNet,
		permissions.CategoryEnv,
		permissions.CategoryRun,
	}

	for _, category := range categories {
		assert.NotEmpty(t, describeRisk(category), "category %s", category)
	}
}
