package ops

import (
	"fmt"
	"net/url"
	"os"

	"github.com/fennec-run/fennec/internal/domain/permissions"
)

// GetEnv returns an environment variable, gated by the env capability.
// The second return reports whether the variable is set.
func GetEnv(name string, perms *permissions.Permissions) (string, bool, error) {
	if err := perms.CheckEnv(name); err != nil {
		return "", false, err
	}
	value, ok := os.LookupEnv(name)
	return value, ok, nil
}

// CheckRun gates subprocess execution for a command. Spawning itself is
// done by the engine; this is the capability check it must clear first.
func CheckRun(command string, perms *permissions.Permissions) error {
	return perms.CheckRun(command)
}

// CheckURL gates network access for a URL by its hostname. The engine
// calls this before any fetch or connect it exposes to script code.
func CheckURL(rawURL string, perms *permissions.Permissions) error {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return fmt.Errorf("invalid URL %q", rawURL)
	}
	return perms.CheckNet(parsed.Hostname())
}
