package loader

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentLoads bounds parallel source acquisition during graph
// preloading. Local reads are cheap; this mostly limits in-flight remote
// fetches.
const maxConcurrentLoads = 8

// LoadGraph loads the entry module and the transitive closure of its
// dependencies, level by level, loading unseen modules within a level
// concurrently. Already-cached modules terminate recursion. The first
// error aborts the walk and is returned as-is.
//
// It returns the canonical specifiers of every module loaded or visited,
// sorted for deterministic output.
func (l *Loader) LoadGraph(ctx context.Context, specifier string) ([]string, error) {
	root, err := l.LoadModule(ctx, specifier, "")
	if err != nil {
		return nil, err
	}

	type edge struct {
		specifier string
		referrer  string
	}

	seen := map[string]struct{}{root.Specifier: {}}
	frontier := make([]edge, 0, len(root.Dependencies))
	for _, dep := range root.Dependencies {
		frontier = append(frontier, edge{specifier: dep, referrer: root.Specifier})
	}

	for len(frontier) > 0 {
		// Resolve the whole level first so dedup happens on canonical
		// specifiers before any work is spawned.
		var level []string
		for _, e := range frontier {
			resolved, err := l.Resolve(e.specifier, e.referrer)
			if err != nil {
				return nil, err
			}
			if _, ok := seen[resolved]; ok {
				continue
			}
			seen[resolved] = struct{}{}
			level = append(level, resolved)
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(maxConcurrentLoads)

		var mu sync.Mutex
		var next []edge
		for _, resolved := range level {
			g.Go(func() error {
				module, err := l.LoadModule(gctx, resolved, "")
				if err != nil {
					return err
				}
				mu.Lock()
				for _, dep := range module.Dependencies {
					next = append(next, edge{specifier: dep, referrer: module.Specifier})
				}
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		frontier = next
	}

	loaded := make([]string, 0, len(seen))
	for specifier := range seen {
		loaded = append(loaded, specifier)
	}
	sort.Strings(loaded)
	return loaded, nil
}
