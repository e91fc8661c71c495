package permissions

import "fmt"

// Category identifies one of the five capability categories.
type Category int

const (
	// CategoryRead gates file system reads.
	CategoryRead Category = iota
	// CategoryWrite gates file system writes.
	CategoryWrite
	// CategoryNet gates network access by host or address.
	CategoryNet
	// CategoryEnv gates environment variable access.
	CategoryEnv
	// CategoryRun gates subprocess execution.
	CategoryRun
)

// String returns the category name as used in diagnostics and grant files.
func (c Category) String() string {
	switch c {
	case CategoryRead:
		return "read"
	case CategoryWrite:
		return "write"
	case CategoryNet:
		return "net"
	case CategoryEnv:
		return "env"
	case CategoryRun:
		return "run"
	default:
		return "unknown"
	}
}

// DeniedError is returned by a failed capability check. It carries the
// category and the resource that was refused.
type DeniedError struct {
	Category Category
	Resource string
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("permission denied: requires %s access to %q", e.Category, e.Resource)
}

// Grant is the grant surface for one category: either nothing (the zero
// value), everything, or an explicit allow-list. List is ignored when All
// is set.
type Grant struct {
	All  bool     `yaml:"all,omitempty"`
	List []string `yaml:"allow,omitempty"`
}

// GrantSet is the CLI/config-derived grant surface for all five
// categories. It is the input to FromGrants.
type GrantSet struct {
	Read  Grant `yaml:"read,omitempty"`
	Write Grant `yaml:"write,omitempty"`
	Net   Grant `yaml:"net,omitempty"`
	Env   Grant `yaml:"env,omitempty"`
	Run   Grant `yaml:"run,omitempty"`
}

// Merge returns a grant set combining g with other. Full grants win over
// lists; lists are concatenated.
func (g GrantSet) Merge(other GrantSet) GrantSet {
	merge := func(a, b Grant) Grant {
		if a.All || b.All {
			return Grant{All: true}
		}
		if len(a.List) == 0 && len(b.List) == 0 {
			return Grant{}
		}
		list := make([]string, 0, len(a.List)+len(b.List))
		list = append(list, a.List...)
		list = append(list, b.List...)
		return Grant{List: list}
	}
	return GrantSet{
		Read:  merge(g.Read, other.Read),
		Write: merge(g.Write, other.Write),
		Net:   merge(g.Net, other.Net),
		Env:   merge(g.Env, other.Env),
		Run:   merge(g.Run, other.Run),
	}
}

// Add widens the grant set with a single resource in the given category.
func (g GrantSet) Add(category Category, resource string) GrantSet {
	widen := func(grant Grant) Grant {
		if grant.All {
			return grant
		}
		return Grant{List: append(append([]string(nil), grant.List...), resource)}
	}
	switch category {
	case CategoryRead:
		g.Read = widen(g.Read)
	case CategoryWrite:
		g.Write = widen(g.Write)
	case CategoryNet:
		g.Net = widen(g.Net)
	case CategoryEnv:
		g.Env = widen(g.Env)
	case CategoryRun:
		g.Run = widen(g.Run)
	}
	return g
}

// Permissions aggregates the five capability categories. Construct it
// with New, AllowAll, Unsafe, or FromGrants, then treat it as read-only.
type Permissions struct {
	Read  State
	Write State
	Net   State
	Env   State
	Run   State

	bypass bool
}

// New returns a permission set that denies everything.
func New() *Permissions {
	return &Permissions{}
}

// AllowAll returns a permission set with every category granted.
func AllowAll() *Permissions {
	p := New()
	p.Read.GrantAll()
	p.Write.GrantAll()
	p.Net.GrantAll()
	p.Env.GrantAll()
	p.Run.GrantAll()
	return p
}

// Unsafe returns a permission set with checks disabled entirely. This is
// the caller-level escape hatch behind the hidden no-permission-checks
// flag. It behaves like AllowAll but IsUnsafe reports true so logs and
// diagnostics can surface the dangerous mode distinctly from an explicit
// grant.
func Unsafe() *Permissions {
	p := AllowAll()
	p.bypass = true
	return p
}

// FromGrants builds a permission set from a grant surface.
func FromGrants(grants GrantSet) *Permissions {
	p := New()
	apply := func(state *State, grant Grant) {
		switch {
		case grant.All:
			state.GrantAll()
		case len(grant.List) > 0:
			state.GrantList(grant.List)
		}
	}
	apply(&p.Read, grants.Read)
	apply(&p.Write, grants.Write)
	apply(&p.Net, grants.Net)
	apply(&p.Env, grants.Env)
	apply(&p.Run, grants.Run)
	return p
}

// IsUnsafe reports whether permission checks are bypassed entirely.
func (p *Permissions) IsUnsafe() bool {
	return p.bypass
}

func (p *Permissions) check(state *State, category Category, resource string) error {
	if p.bypass {
		return nil
	}
	if state.Allows(resource) {
		return nil
	}
	return &DeniedError{Category: category, Resource: resource}
}

// CheckRead checks file system read access to path.
func (p *Permissions) CheckRead(path string) error {
	return p.check(&p.Read, CategoryRead, path)
}

// CheckWrite checks file system write access to path.
func (p *Permissions) CheckWrite(path string) error {
	return p.check(&p.Write, CategoryWrite, path)
}

// CheckNet checks network access to an address or hostname.
func (p *Permissions) CheckNet(address string) error {
	return p.check(&p.Net, CategoryNet, address)
}

// CheckEnv checks access to an environment variable.
func (p *Permissions) CheckEnv(name string) error {
	return p.check(&p.Env, CategoryEnv, name)
}

// CheckRun checks permission to run a command.
func (p *Permissions) CheckRun(command string) error {
	return p.check(&p.Run, CategoryRun, command)
}
