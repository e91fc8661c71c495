package ops

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fennec-run/fennec/internal/domain/permissions"
)

// Handler is one native operation as exposed to the engine's binding
// layer: positional string arguments in, a string result out. The
// capability handle is passed per call, never stored.
type Handler func(perms *permissions.Permissions, args []string) (string, error)

// Registry maps operation names to handlers. The operation set is fixed
// at build time: the table is built once by NewRegistry and has no
// mutation API afterward, so concurrent lookups need no locking.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry builds the operation table.
func NewRegistry() *Registry {
	return &Registry{handlers: map[string]Handler{
		"fs_read_text": func(perms *permissions.Permissions, args []string) (string, error) {
			if err := wantArgs("fs_read_text", args, 1); err != nil {
				return "", err
			}
			return ReadTextFile(args[0], perms)
		},
		"fs_write_text": func(perms *permissions.Permissions, args []string) (string, error) {
			if err := wantArgs("fs_write_text", args, 2); err != nil {
				return "", err
			}
			return "", WriteTextFile(args[0], args[1], perms)
		},
		"fs_append_text": func(perms *permissions.Permissions, args []string) (string, error) {
			if err := wantArgs("fs_append_text", args, 2); err != nil {
				return "", err
			}
			return "", AppendTextFile(args[0], args[1], perms)
		},
		"fs_exists": func(perms *permissions.Permissions, args []string) (string, error) {
			if err := wantArgs("fs_exists", args, 1); err != nil {
				return "", err
			}
			exists, err := Exists(args[0], perms)
			if err != nil {
				return "", err
			}
			return strconv.FormatBool(exists), nil
		},
		"fs_metadata": func(perms *permissions.Permissions, args []string) (string, error) {
			if err := wantArgs("fs_metadata", args, 1); err != nil {
				return "", err
			}
			meta, err := Metadata(args[0], perms)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("name=%s size=%d dir=%t mode=%s modified=%s",
				meta.Name, meta.Size, meta.IsDir, meta.Mode, meta.Modified.UTC().Format(time.RFC3339)), nil
		},
		"fs_list": func(perms *permissions.Permissions, args []string) (string, error) {
			if err := wantArgs("fs_list", args, 1); err != nil {
				return "", err
			}
			entries, err := ReadDir(args[0], perms)
			if err != nil {
				return "", err
			}
			names := make([]string, len(entries))
			for i, e := range entries {
				names[i] = e.Name
				if e.IsDir {
					names[i] += "/"
				}
			}
			return strings.Join(names, "\n"), nil
		},
		"fs_remove": func(perms *permissions.Permissions, args []string) (string, error) {
			if err := wantArgs("fs_remove", args, 1); err != nil {
				return "", err
			}
			return "", Remove(args[0], perms)
		},
		"fs_rename": func(perms *permissions.Permissions, args []string) (string, error) {
			if err := wantArgs("fs_rename", args, 2); err != nil {
				return "", err
			}
			return "", Rename(args[0], args[1], perms)
		},
		"env_get": func(perms *permissions.Permissions, args []string) (string, error) {
			if err := wantArgs("env_get", args, 1); err != nil {
				return "", err
			}
			value, _, err := GetEnv(args[0], perms)
			return value, err
		},
		"run_check": func(perms *permissions.Permissions, args []string) (string, error) {
			if err := wantArgs("run_check", args, 1); err != nil {
				return "", err
			}
			return "", CheckRun(args[0], perms)
		},
		"net_check_url": func(perms *permissions.Permissions, args []string) (string, error) {
			if err := wantArgs("net_check_url", args, 1); err != nil {
				return "", err
			}
			return "", CheckURL(args[0], perms)
		},
	}}
}

// Lookup returns the handler for name.
func (r *Registry) Lookup(name string) (Handler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

// Names returns the registered operation names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func wantArgs(op string, args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("op %s: expected %d argument(s), got %d", op, n, len(args))
	}
	return nil
}
