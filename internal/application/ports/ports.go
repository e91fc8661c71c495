// Package ports defines interfaces for infrastructure dependencies.
// These are the "ports" in hexagonal architecture - abstractions that
// the application layer depends on but doesn't implement.
package ports

import (
	"context"

	"github.com/fennec-run/fennec/internal/domain/permissions"
)

// RemoteFetcher retrieves module source text over the network. The
// transport itself lives outside the loader core; the loader performs the
// scheme and host permission gating before delegating here and applies
// the per-request timeout through ctx.
type RemoteFetcher interface {
	// Fetch returns the source text at url.
	Fetch(ctx context.Context, url string) (string, error)
}

// Decision is the outcome of an interactive permission prompt.
type Decision int

const (
	// DecisionDeny refuses the request. This is the zero value and the
	// default for any unrecognized response.
	DecisionDeny Decision = iota
	// DecisionAllowOnce grants the request for this invocation only.
	DecisionAllowOnce
	// DecisionAllowAlways grants the request and persists it to the
	// grant store.
	DecisionAllowAlways
)

// PermissionPrompter asks the user whether to widen the grant set when a
// capability check fails in an interactive session. Permissions values
// themselves stay immutable; the caller rebuilds them from the widened
// grant set.
type PermissionPrompter interface {
	// IsInteractive reports whether prompting is possible at all.
	IsInteractive() bool

	// PromptForPermission asks about one denied resource.
	PromptForPermission(category permissions.Category, resource string) (Decision, error)
}

// GrantStore persists the grant surface between runs.
type GrantStore interface {
	// Load returns the stored grants, or the zero grant set when nothing
	// has been stored yet.
	Load() (permissions.GrantSet, error)

	// Save replaces the stored grants.
	Save(grants permissions.GrantSet) error
}
