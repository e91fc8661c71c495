package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fennec-run/fennec/internal/domain/importmap"
	"github.com/fennec-run/fennec/internal/infrastructure/config"
	"github.com/fennec-run/fennec/internal/infrastructure/resolver"
)

type resolveOptions struct {
	referrer  string
	importMap string
	baseDir   string
	noRemote  bool
}

var resolveOpts resolveOptions

// resolveCmd prints the canonical form of a module specifier without
// touching permissions or loading any source.
var resolveCmd = &cobra.Command{
	Use:   "resolve SPECIFIER",
	Short: "Print the canonical resolution of a module specifier",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runResolve(args[0], resolveOpts)
	},
}

func init() {
	flags := resolveCmd.Flags()
	flags.StringVar(&resolveOpts.referrer, "referrer", "", "specifier of the importing module")
	flags.StringVar(&resolveOpts.importMap, "import-map", "", "path to an import map file")
	flags.StringVar(&resolveOpts.baseDir, "base-dir", "", "base directory for module resolution (default: working directory)")
	flags.BoolVar(&resolveOpts.noRemote, "no-remote", false, "disable remote (http/https) modules")

	rootCmd.AddCommand(resolveCmd)
}

func runResolve(specifier string, opts resolveOptions) error {
	rc := &config.RuntimeConfig{
		AllowRemote:   !opts.noRemote,
		ImportMapPath: opts.importMap,
		BaseDir:       opts.baseDir,
	}
	rc.ApplyDefaults()

	var im *importmap.Map
	if opts.importMap != "" {
		var err error
		im, err = config.LoadImportMap(opts.importMap)
		if err != nil {
			return err
		}
	}

	r := resolver.New(resolver.Config{
		BaseDir:     rc.BaseDir,
		AllowRemote: rc.AllowRemote,
		ImportMap:   im,
	})

	resolved, err := r.Resolve(specifier, opts.referrer)
	if err != nil {
		return err
	}
	fmt.Println(resolved)
	return nil
}
