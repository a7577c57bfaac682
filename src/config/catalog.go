package config

import (
	"fmt"
	"sort"

	"github.com/sofmeright/lintrc/src/catalog"
)

// Catalog builds the rule catalog: the built-in one, extended by every
// configured catalog file, with plugin versions pinned.
func (c *Config) Catalog() (*catalog.Catalog, error) {
	cat := catalog.Builtin()
	for _, path := range c.Catalogs {
		if err := cat.LoadFile(path); err != nil {
			return nil, err
		}
	}
	names := make([]string, 0, len(c.Plugins))
	for name := range c.Plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := cat.SetInstalledVersion(name, c.Plugins[name]); err != nil {
			return nil, fmt.Errorf("plugins.%s: %w", name, err)
		}
	}
	return cat, nil
}
