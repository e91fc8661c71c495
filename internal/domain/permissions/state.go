// Package permissions implements the capability model that gates every
// access to the file system, network, environment, and subprocess surface.
// A Permissions value is constructed once per runtime instance and is
// read-only afterward, so concurrent checks need no synchronization.
package permissions

import "strings"

// Mode is the access mode of a single capability category.
type Mode int

const (
	// ModeDenied denies every resource. This is the zero value.
	ModeDenied Mode = iota
	// ModeGranted grants every resource unconditionally.
	ModeGranted
	// ModeGrantedPartial grants only resources covered by an allow-list.
	ModeGrantedPartial
)

// String returns a human-readable representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeDenied:
		return "denied"
	case ModeGranted:
		return "granted"
	case ModeGrantedPartial:
		return "granted-partial"
	default:
		return "unknown"
	}
}

// State is the permission state for one capability category. The zero
// value denies everything. Grant operations overwrite the state, they
// never intersect with it, so transitions only ever widen access.
type State struct {
	mode  Mode
	allow []string
}

// GrantAll grants unconditional access.
func (s *State) GrantAll() {
	s.mode = ModeGranted
	s.allow = nil
}

// GrantList grants access to the given resources only. A resource passes
// the check when it equals a list entry or begins with one.
func (s *State) GrantList(items []string) {
	allow := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		allow = append(allow, item)
	}
	s.mode = ModeGrantedPartial
	s.allow = allow
}

// Mode returns the current access mode.
func (s *State) Mode() Mode {
	return s.mode
}

// AllowList returns a copy of the allow-list, or nil when the state is
// not partial.
func (s *State) AllowList() []string {
	if s.mode != ModeGrantedPartial {
		return nil
	}
	out := make([]string, len(s.allow))
	copy(out, s.allow)
	return out
}

// Allows reports whether access to resource is granted under the current
// state.
//
// Partial grants use a textual prefix test: granting "/tmp" also allows
// "/tmpfoo", not just paths under "/tmp/". This matches the established
// behavior of the runtime and is kept under test; it is not a
// path-boundary-safe containment check.
func (s *State) Allows(resource string) bool {
	switch s.mode {
	case ModeGranted:
		return true
	case ModeGrantedPartial:
		for _, entry := range s.allow {
			if resource == entry || strings.HasPrefix(resource, entry) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
