// Package build exposes version information stamped in at link time.
package build

import "fmt"

// These are set via -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Info describes the running binary.
type Info struct {
	Version string
	Commit  string
	Date    string
}

// Get returns the build information for this binary.
func Get() Info {
	return Info{
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// Full returns a single-line human readable description.
func (i Info) Full() string {
	if i.Commit == "none" {
		return i.Version
	}
	return fmt.Sprintf("%s (commit %s, built %s)", i.Version, i.Commit, i.Date)
}
