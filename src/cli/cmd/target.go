package cmd

import (
	"fmt"
	"os"

	"github.com/sofmeright/lintrc/src/catalog"
	"github.com/sofmeright/lintrc/src/resolve"
)

// target is a loaded and resolved descriptor.
type target struct {
	Path     string // the descriptor file, the nearest one for a cascade
	Chain    int    // number of descriptors merged
	RuleSet  *resolve.RuleSet
	Warnings []resolve.Warning
}

// targetPath falls back to the configured descriptor, then the working
// directory.
func targetPath(args []string) string {
	switch {
	case len(args) > 0:
		return args[0]
	case cfg.Descriptor != "":
		return cfg.Descriptor
	}
	return "."
}

// loadTarget loads path standalone when it is a file and through the
// cascade when it is a directory. Warnings are returned even when
// loading fails.
func loadTarget(path string, cat *catalog.Catalog) (*target, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if !info.IsDir() {
		d, warnings, err := resolve.Load(path, cat)
		t := &target{Path: path, Chain: 1, Warnings: warnings}
		if err != nil {
			return t, err
		}
		t.RuleSet, err = resolve.Resolve(d, cat)
		return t, err
	}

	chain, warnings, err := resolve.LoadChain(path, cat)
	t := &target{Path: path, Warnings: warnings}
	if err != nil {
		return t, err
	}
	t.Path = chain[len(chain)-1].Path
	t.Chain = len(chain)
	logf("cascade: %d descriptor(s), nearest %s", len(chain), t.Path)
	t.RuleSet, err = resolve.ResolveChain(chain, cat)
	return t, err
}
