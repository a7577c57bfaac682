package catalog

import (
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/sofmeright/lintrc/src/descriptor"
)

// File is the YAML shape of a catalog extension file.
type File struct {
	Environments []EnvironmentEntry `yaml:"environments"`
	Parsers      []Parser           `yaml:"parsers"`
	Rules        []RuleEntry        `yaml:"rules"`
	Plugins      []PluginEntry      `yaml:"plugins"`
	Presets      []PresetEntry      `yaml:"presets"`
}

// EnvironmentEntry declares an environment.
type EnvironmentEntry struct {
	Name        string         `yaml:"name"`
	Plugin      string         `yaml:"plugin"`
	EcmaVersion any            `yaml:"ecmaVersion"`
	Globals     map[string]any `yaml:"globals"`
}

// RuleEntry declares a rule. Inside a plugin entry the id is given
// without the plugin prefix.
type RuleEntry struct {
	ID         string   `yaml:"id"`
	Deprecated bool     `yaml:"deprecated"`
	ReplacedBy []string `yaml:"replacedBy"`
	Since      string   `yaml:"since"`
}

// PluginEntry declares a plugin with its rules.
type PluginEntry struct {
	Name    string         `yaml:"name"`
	Package string         `yaml:"package"`
	Version string         `yaml:"version"`
	Rules   []RuleEntry    `yaml:"rules"`
	Config  map[string]any `yaml:"config"`
}

// PresetEntry declares a preset. Config uses descriptor keys.
type PresetEntry struct {
	ID     string         `yaml:"id"`
	Config map[string]any `yaml:"config"`
}

// LoadFile reads a YAML extension catalog and adds its entries to c.
// The catalog is re-checked for consistency afterwards.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading catalog %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	if err := c.Add(&f); err != nil {
		return fmt.Errorf("catalog %s: %w", path, err)
	}
	return c.Check()
}

// Add registers every entry of f.
func (c *Catalog) Add(f *File) error {
	for _, p := range f.Parsers {
		if err := c.AddParser(p); err != nil {
			return err
		}
	}
	for _, e := range f.Rules {
		r, err := e.rule()
		if err != nil {
			return err
		}
		if err := c.AddRule(r); err != nil {
			return err
		}
	}
	for _, pe := range f.Plugins {
		p := &Plugin{Name: pe.Name, Package: pe.Package}
		if p.Package == "" {
			p.Package = pe.Name
		}
		if pe.Version != "" {
			v, err := semver.NewVersion(pe.Version)
			if err != nil {
				return fmt.Errorf("plugin %s: invalid version %q: %w", pe.Name, pe.Version, err)
			}
			p.Version = v
		}
		if pe.Config != nil {
			d, err := descriptor.FromMap(pe.Config)
			if err != nil {
				return fmt.Errorf("plugin %s config: %w", pe.Name, err)
			}
			p.Config = d
		}
		rules := make([]Rule, 0, len(pe.Rules))
		for _, e := range pe.Rules {
			r, err := e.rule()
			if err != nil {
				return fmt.Errorf("plugin %s: %w", pe.Name, err)
			}
			rules = append(rules, r)
		}
		if err := c.AddPlugin(p, rules...); err != nil {
			return err
		}
	}
	// Environments may belong to plugins declared above.
	for _, e := range f.Environments {
		env := Environment{Name: e.Name, Plugin: NormalizePluginName(e.Plugin)}
		if e.EcmaVersion != nil {
			v, err := descriptor.ParseEcmaVersion(e.EcmaVersion)
			if err != nil {
				return fmt.Errorf("environment %s: %w", e.Name, err)
			}
			env.EcmaVersion = v
		}
		if len(e.Globals) > 0 {
			env.Globals = make(map[string]descriptor.GlobalAccess, len(e.Globals))
			for name, raw := range e.Globals {
				access, err := descriptor.ParseGlobalAccess(raw)
				if err != nil {
					return fmt.Errorf("environment %s: global %s: %w", e.Name, name, err)
				}
				env.Globals[name] = access
			}
		}
		if err := c.AddEnvironment(env); err != nil {
			return err
		}
	}
	for _, pe := range f.Presets {
		d, err := descriptor.FromMap(pe.Config)
		if err != nil {
			return fmt.Errorf("preset %s: %w", pe.ID, err)
		}
		if err := c.AddPreset(&Preset{ID: pe.ID, Config: d}); err != nil {
			return err
		}
	}
	return nil
}

func (e RuleEntry) rule() (Rule, error) {
	r := Rule{ID: e.ID, Deprecated: e.Deprecated, ReplacedBy: e.ReplacedBy}
	if e.Since != "" {
		v, err := semver.NewVersion(e.Since)
		if err != nil {
			return Rule{}, fmt.Errorf("rule %s: invalid since %q: %w", e.ID, e.Since, err)
		}
		r.Since = v
	}
	return r, nil
}
