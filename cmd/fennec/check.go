package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fennec-run/fennec/internal/application/ports"
	"github.com/fennec-run/fennec/internal/domain/permissions"
	"github.com/fennec-run/fennec/internal/infrastructure/capabilities"
	"github.com/fennec-run/fennec/internal/infrastructure/config"
	"github.com/fennec-run/fennec/internal/infrastructure/fetch"
	"github.com/fennec-run/fennec/internal/infrastructure/loader"
)

// maxPromptRounds bounds the prompt-and-retry loop so a script that
// touches hundreds of resources cannot hold the terminal hostage.
const maxPromptRounds = 16

type checkOptions struct {
	allowRead       bool
	allowReadPath   []string
	allowWrite      bool
	allowWritePath  []string
	allowNet        bool
	allowNetDomain  []string
	allowEnv        bool
	allowEnvVar     []string
	allowRun        bool
	allowRunCommand []string
	allowAll        bool
	unsafeNoPerms   bool

	importMap string
	baseDir   string
	noRemote  bool
	noCache   bool
	prompt    bool
}

var checkOpts checkOptions

// checkCmd resolves and loads a script's full module graph under the
// granted permissions without executing it.
var checkCmd = &cobra.Command{
	Use:   "check SCRIPT",
	Short: "Resolve and load a script's module graph without executing it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd.Context(), args[0], checkOpts)
	},
}

func init() {
	flags := checkCmd.Flags()

	flags.BoolVar(&checkOpts.allowRead, "allow-read", false, "allow file system read access")
	flags.StringSliceVar(&checkOpts.allowReadPath, "allow-read-path", nil, "allow file system read access to specific paths")
	flags.BoolVar(&checkOpts.allowWrite, "allow-write", false, "allow file system write access")
	flags.StringSliceVar(&checkOpts.allowWritePath, "allow-write-path", nil, "allow file system write access to specific paths")
	flags.BoolVar(&checkOpts.allowNet, "allow-net", false, "allow network access")
	flags.StringSliceVar(&checkOpts.allowNetDomain, "allow-net-domain", nil, "allow network access to specific domains")
	flags.BoolVar(&checkOpts.allowEnv, "allow-env", false, "allow environment variable access")
	flags.StringSliceVar(&checkOpts.allowEnvVar, "allow-env-var", nil, "allow access to specific environment variables")
	flags.BoolVar(&checkOpts.allowRun, "allow-run", false, "allow running subprocesses")
	flags.StringSliceVar(&checkOpts.allowRunCommand, "allow-run-command", nil, "allow running specific commands")
	flags.BoolVar(&checkOpts.allowAll, "allow-all", false, "allow all permissions")
	flags.BoolVar(&checkOpts.unsafeNoPerms, "unsafe-no-permissions", false, "disable permission checks (DANGEROUS)")
	_ = flags.MarkHidden("unsafe-no-permissions")

	flags.StringVar(&checkOpts.importMap, "import-map", "", "path to an import map file")
	flags.StringVar(&checkOpts.baseDir, "base-dir", "", "base directory for module resolution (default: working directory)")
	flags.BoolVar(&checkOpts.noRemote, "no-remote", false, "disable remote (http/https) modules")
	flags.BoolVar(&checkOpts.noCache, "no-cache", false, "disable the module cache")
	flags.BoolVar(&checkOpts.prompt, "prompt", false, "prompt interactively when a permission check fails")

	rootCmd.AddCommand(checkCmd)
}

// grantsFromFlags translates the flag surface into a grant set. A full
// grant for a category wins over its allow-list.
func grantsFromFlags(opts checkOptions) permissions.GrantSet {
	grant := func(all bool, list []string) permissions.Grant {
		if all {
			return permissions.Grant{All: true}
		}
		if len(list) > 0 {
			return permissions.Grant{List: list}
		}
		return permissions.Grant{}
	}
	return permissions.GrantSet{
		Read:  grant(opts.allowRead, opts.allowReadPath),
		Write: grant(opts.allowWrite, opts.allowWritePath),
		Net:   grant(opts.allowNet, opts.allowNetDomain),
		Env:   grant(opts.allowEnv, opts.allowEnvVar),
		Run:   grant(opts.allowRun, opts.allowRunCommand),
	}
}

func buildRuntimeConfig(opts checkOptions) (*config.RuntimeConfig, *capabilities.FileStore) {
	grants := grantsFromFlags(opts)

	var store *capabilities.FileStore
	if storePath, err := capabilities.DefaultPath(); err == nil {
		store = capabilities.NewFileStore(storePath)
		stored, err := store.Load()
		if err != nil {
			slog.Warn("ignoring unreadable grant file", "path", storePath, "error", err)
		} else {
			grants = stored.Merge(grants)
		}
	}

	rc := &config.RuntimeConfig{
		Grants:        grants,
		AllowAll:      opts.allowAll,
		Unsafe:        opts.unsafeNoPerms,
		Prompt:        opts.prompt,
		CacheEnabled:  viper.GetBool("loader.cache") && !opts.noCache,
		AllowRemote:   viper.GetBool("loader.allow_remote") && !opts.noRemote,
		ImportMapPath: opts.importMap,
		BaseDir:       opts.baseDir,
		FetchTimeout:  time.Duration(viper.GetInt("loader.fetch_timeout_seconds")) * time.Second,
	}
	rc.ApplyDefaults()
	return rc, store
}

func runCheck(ctx context.Context, script string, opts checkOptions) error {
	rc, store := buildRuntimeConfig(opts)

	// A plain filename like "main.js" would otherwise resolve as a bare
	// specifier against node_modules.
	if !strings.HasPrefix(script, "http://") && !strings.HasPrefix(script, "https://") {
		abs, err := filepath.Abs(script)
		if err != nil {
			return fmt.Errorf("failed to locate script %q: %w", script, err)
		}
		script = abs
	}

	if rc.Unsafe {
		slog.Warn("permission checks are DISABLED for this run")
	}

	prompter := capabilities.NewTerminalPrompter()
	var grantStore ports.GrantStore
	if store != nil {
		grantStore = store
	}
	l, specifiers, err := loadGraphWithPrompt(ctx, rc, script, prompter, grantStore)
	if err != nil {
		return err
	}

	fmt.Printf("Loaded %d module(s) from %s:\n", len(specifiers), script)
	for _, spec := range specifiers {
		if m, ok := l.Cache().Get(spec); ok {
			fmt.Printf("  %s  [%s]  %d dep(s)\n", m.Specifier, m.Source.Type, len(m.Dependencies))
		} else {
			fmt.Printf("  %s\n", spec)
		}
	}
	return nil
}

// loadGraphWithPrompt loads the module graph, widening the grant set via
// the interactive prompter when enabled. Denials stay terminal for the
// attempt; each retry rebuilds permissions from scratch since a
// Permissions value is immutable.
func loadGraphWithPrompt(
	ctx context.Context,
	rc *config.RuntimeConfig,
	script string,
	prompter ports.PermissionPrompter,
	store ports.GrantStore,
) (*loader.Loader, []string, error) {
	for round := 0; ; round++ {
		lcfg, err := rc.BuildLoaderConfig()
		if err != nil {
			return nil, nil, err
		}
		l := loader.New(rc.BuildPermissions(), lcfg, loader.WithFetcher(fetch.NewHTTPFetcher()))

		specifiers, err := l.LoadGraph(ctx, script)
		if err == nil {
			return l, specifiers, nil
		}

		var denied *permissions.DeniedError
		if !rc.Prompt || round >= maxPromptRounds || !errors.As(err, &denied) || !prompter.IsInteractive() {
			return nil, nil, err
		}

		decision, perr := prompter.PromptForPermission(denied.Category, denied.Resource)
		if perr != nil || decision == ports.DecisionDeny {
			return nil, nil, err
		}

		rc.Grants = rc.Grants.Add(denied.Category, denied.Resource)
		if decision == ports.DecisionAllowAlways && store != nil {
			if serr := store.Save(rc.Grants); serr != nil {
				slog.Warn("failed to persist grant", "error", serr)
			}
		}
	}
}

