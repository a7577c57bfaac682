// Package catalog is the registry of names a descriptor may refer to:
// environments, parsers, plugins, rules and presets.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/sofmeright/lintrc/src/descriptor"
)

// Environment is a named execution context and the globals it defines.
type Environment struct {
	Name        string
	Plugin      string // owning plugin, empty for built-in environments
	Globals     map[string]descriptor.GlobalAccess
	EcmaVersion descriptor.EcmaVersion // implied parserOptions.ecmaVersion, zero if none
}

// Parser is a parsing front-end a descriptor may select.
type Parser struct {
	ID          string
	Description string
}

// Rule describes a single registered check.
type Rule struct {
	ID         string // full id, plugin-prefixed for plugin rules
	Plugin     string // empty for core rules
	Deprecated bool
	ReplacedBy []string
	Since      *semver.Version // plugin version that introduced the rule
}

// Plugin is an extension package contributing rules, environments and presets.
type Plugin struct {
	Name    string // normalised, e.g. "vue" or "@typescript-eslint"
	Package string // npm package name
	Version *semver.Version
	// Config is applied after all presets when the plugin is listed in a
	// descriptor's plugins. Nil for most plugins.
	Config *descriptor.Descriptor
}

// Preset is a named, reusable configuration layer.
type Preset struct {
	ID     string
	Config *descriptor.Descriptor
}

// Catalog holds every known name. Build it once and pass it explicitly;
// it is not mutated after construction.
type Catalog struct {
	envs      map[string]Environment
	parsers   map[string]Parser
	plugins   map[string]*Plugin
	rules     map[string]Rule
	presets   map[string]*Preset
	installed map[string]*semver.Version
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{
		envs:      make(map[string]Environment),
		parsers:   make(map[string]Parser),
		plugins:   make(map[string]*Plugin),
		rules:     make(map[string]Rule),
		presets:   make(map[string]*Preset),
		installed: make(map[string]*semver.Version),
	}
}

// AddEnvironment registers an environment.
func (c *Catalog) AddEnvironment(e Environment) error {
	if e.Name == "" {
		return fmt.Errorf("catalog: environment without a name")
	}
	if _, exists := c.envs[e.Name]; exists {
		return fmt.Errorf("catalog: duplicate environment: %s", e.Name)
	}
	c.envs[e.Name] = e
	return nil
}

// AddParser registers a parser.
func (c *Catalog) AddParser(p Parser) error {
	if p.ID == "" {
		return fmt.Errorf("catalog: parser without an id")
	}
	if _, exists := c.parsers[p.ID]; exists {
		return fmt.Errorf("catalog: duplicate parser: %s", p.ID)
	}
	c.parsers[p.ID] = p
	return nil
}

// AddPlugin registers a plugin and its rules. Rule names are given
// without the plugin prefix.
func (c *Catalog) AddPlugin(p *Plugin, rules ...Rule) error {
	p.Name = NormalizePluginName(p.Name)
	if p.Name == "" {
		return fmt.Errorf("catalog: plugin without a name")
	}
	if _, exists := c.plugins[p.Name]; exists {
		return fmt.Errorf("catalog: duplicate plugin: %s", p.Name)
	}
	c.plugins[p.Name] = p
	for _, r := range rules {
		r.Plugin = p.Name
		if !strings.HasPrefix(r.ID, p.Name+"/") {
			r.ID = p.Name + "/" + r.ID
		}
		if err := c.AddRule(r); err != nil {
			return err
		}
	}
	return nil
}

// AddRule registers a rule. Plugin rules must carry their plugin prefix.
func (c *Catalog) AddRule(r Rule) error {
	if r.ID == "" {
		return fmt.Errorf("catalog: rule without an id")
	}
	if _, exists := c.rules[r.ID]; exists {
		return fmt.Errorf("catalog: duplicate rule: %s", r.ID)
	}
	if r.Plugin == "" {
		r.Plugin = RulePlugin(r.ID)
	}
	c.rules[r.ID] = r
	return nil
}

// AddPreset registers a preset under its normalised id.
func (c *Catalog) AddPreset(p *Preset) error {
	id := NormalizePresetID(p.ID)
	if id == "" {
		return fmt.Errorf("catalog: preset without an id")
	}
	if _, exists := c.presets[id]; exists {
		return fmt.Errorf("catalog: duplicate preset: %s", id)
	}
	p.ID = id
	c.presets[id] = p
	return nil
}

// SetInstalledVersion pins the version of a plugin present in the
// project. Rules introduced after that version become unavailable.
func (c *Catalog) SetInstalledVersion(plugin, version string) error {
	name := NormalizePluginName(plugin)
	if _, ok := c.plugins[name]; !ok {
		return fmt.Errorf("catalog: unknown plugin %q", plugin)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("catalog: plugin %s: invalid version %q: %w", plugin, version, err)
	}
	c.installed[name] = v
	return nil
}

// Environment looks up an environment by name.
func (c *Catalog) Environment(name string) (Environment, bool) {
	e, ok := c.envs[name]
	return e, ok
}

// Parser looks up a parser by id.
func (c *Catalog) Parser(id string) (Parser, bool) {
	p, ok := c.parsers[id]
	return p, ok
}

// Plugin looks up a plugin by short or package name.
func (c *Catalog) Plugin(name string) (*Plugin, bool) {
	p, ok := c.plugins[NormalizePluginName(name)]
	return p, ok
}

// Rule looks up a rule by full id.
func (c *Catalog) Rule(id string) (Rule, bool) {
	r, ok := c.rules[id]
	return r, ok
}

// Preset looks up a preset by any accepted spelling of its id.
func (c *Catalog) Preset(id string) (*Preset, bool) {
	p, ok := c.presets[NormalizePresetID(id)]
	return p, ok
}

// InstalledVersion is the pinned plugin version, or the catalog's.
func (c *Catalog) InstalledVersion(plugin string) *semver.Version {
	name := NormalizePluginName(plugin)
	if v, ok := c.installed[name]; ok {
		return v
	}
	if p, ok := c.plugins[name]; ok {
		return p.Version
	}
	return nil
}

// RuleAvailable reports why a rule id cannot be configured given the
// active plugin set, or nil if it can.
func (c *Catalog) RuleAvailable(id string, active map[string]bool) error {
	plugin := RulePlugin(id)
	if plugin != "" {
		if _, ok := c.plugins[plugin]; !ok {
			return fmt.Errorf("no plugin %q provides this rule", plugin)
		}
		if !active[plugin] {
			return fmt.Errorf("plugin %q is not active (add it to plugins or extend one of its presets)", plugin)
		}
	}
	r, ok := c.rules[id]
	if !ok {
		if plugin == "" {
			return fmt.Errorf("no core rule with this name")
		}
		return fmt.Errorf("plugin %q has no rule with this name", plugin)
	}
	if r.Since != nil {
		if have := c.InstalledVersion(plugin); have != nil && have.LessThan(r.Since) {
			return fmt.Errorf("requires %s >= %s, installed %s", plugin, r.Since, have)
		}
	}
	return nil
}

// Environments returns all environments sorted by name.
func (c *Catalog) Environments() []Environment {
	out := make([]Environment, 0, len(c.envs))
	for _, e := range c.envs {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Parsers returns all parsers sorted by id.
func (c *Catalog) Parsers() []Parser {
	out := make([]Parser, 0, len(c.parsers))
	for _, p := range c.parsers {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Plugins returns all plugins sorted by name.
func (c *Catalog) Plugins() []*Plugin {
	out := make([]*Plugin, 0, len(c.plugins))
	for _, p := range c.plugins {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Rules returns all rules sorted by id. An empty plugin filter returns
// every rule; "core" selects rules without a plugin.
func (c *Catalog) Rules(plugin string) []Rule {
	want := NormalizePluginName(plugin)
	var out []Rule
	for _, r := range c.rules {
		switch {
		case plugin == "":
		case plugin == "core" && r.Plugin == "":
		case r.Plugin == want && want != "":
		default:
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Presets returns all presets sorted by id.
func (c *Catalog) Presets() []*Preset {
	out := make([]*Preset, 0, len(c.presets))
	for _, p := range c.presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Check verifies the catalog is internally consistent: presets extend
// known presets without cycles, and name only registered rules, plugins,
// environments and parsers.
func (c *Catalog) Check() error {
	var errs []string

	for _, p := range c.Presets() {
		if err := c.checkLayer(p.ID, p.Config); err != nil {
			errs = append(errs, err.Error())
		}
		if cycle := c.findCycle(p.ID, nil); cycle != nil {
			errs = append(errs, fmt.Sprintf("preset %s: extends cycle %s", p.ID, strings.Join(cycle, " -> ")))
		}
	}
	for _, pl := range c.Plugins() {
		if pl.Config != nil {
			if err := c.checkLayer("plugin "+pl.Name, pl.Config); err != nil {
				errs = append(errs, err.Error())
			}
		}
	}
	for _, e := range c.Environments() {
		if e.Plugin != "" {
			if _, ok := c.plugins[e.Plugin]; !ok {
				errs = append(errs, fmt.Sprintf("environment %s: unknown plugin %q", e.Name, e.Plugin))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (c *Catalog) checkLayer(owner string, d *descriptor.Descriptor) error {
	if d == nil {
		return nil
	}
	var errs []string
	for _, ext := range d.Extends {
		if _, ok := c.Preset(ext); !ok {
			errs = append(errs, fmt.Sprintf("%s: extends unknown preset %q", owner, ext))
		}
	}
	for _, name := range d.Plugins {
		if _, ok := c.Plugin(name); !ok {
			errs = append(errs, fmt.Sprintf("%s: unknown plugin %q", owner, name))
		}
	}
	for name := range d.Env {
		if _, ok := c.envs[name]; !ok {
			errs = append(errs, fmt.Sprintf("%s: unknown environment %q", owner, name))
		}
	}
	if d.Parser != "" {
		if _, ok := c.parsers[d.Parser]; !ok {
			errs = append(errs, fmt.Sprintf("%s: unknown parser %q", owner, d.Parser))
		}
	}
	for _, id := range descriptor.SortedRuleIDs(d.Rules) {
		if _, ok := c.rules[id]; !ok {
			errs = append(errs, fmt.Sprintf("%s: unknown rule %q", owner, id))
		}
	}
	for i := range d.Overrides {
		if err := c.checkLayer(fmt.Sprintf("%s overrides[%d]", owner, i), &d.Overrides[i].Config); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// findCycle walks extends edges depth-first and returns the first cycle
// reachable from id.
func (c *Catalog) findCycle(id string, stack []string) []string {
	for i, s := range stack {
		if s == id {
			return append(append([]string(nil), stack[i:]...), id)
		}
	}
	p, ok := c.presets[id]
	if !ok || p.Config == nil {
		return nil
	}
	stack = append(stack, id)
	for _, ext := range presetEdges(p.Config) {
		if cycle := c.findCycle(NormalizePresetID(ext), stack); cycle != nil {
			return cycle
		}
	}
	return nil
}

func presetEdges(d *descriptor.Descriptor) []string {
	edges := append([]string(nil), d.Extends...)
	for i := range d.Overrides {
		edges = append(edges, presetEdges(&d.Overrides[i].Config)...)
	}
	return edges
}
