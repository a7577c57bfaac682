// Package resolve loads descriptors, validates them against a catalog
// and flattens their layers into a final rule set.
//
// Layers are applied in a fixed order with last-write-wins per key:
// extended presets in list order (each preset's own extends first),
// then the implicit configs of activated plugins, then the descriptor's
// own settings. Override blocks sit directly after the layer that
// declared them and only apply to files they match.
package resolve

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sofmeright/lintrc/src/catalog"
	"github.com/sofmeright/lintrc/src/descriptor"
	"github.com/sofmeright/lintrc/src/ignore"
)

// RuleSet is a fully resolved configuration. It is a value: nothing in
// this package mutates it after Resolve returns.
type RuleSet struct {
	// Dir is the directory of the root-most descriptor. File paths given
	// to ForFile and ignore pattern bases are relative to it.
	Dir string

	Env            map[string]bool
	Globals        map[string]descriptor.GlobalAccess
	Parser         string
	ParserOptions  descriptor.ParserOptions
	Plugins        []string
	Rules          map[string]descriptor.RuleSetting
	Settings       map[string]any
	IgnorePatterns []ignore.Pattern

	// Sources names the layer that last set each rule.
	Sources map[string]string

	layers []layer
	cat    *catalog.Catalog
}

type layer struct {
	source  string
	base    string // directory of the declaring descriptor, relative to Dir
	d       *descriptor.Descriptor
	plugins []string // plugins this layer activates
	scopes  []scope
}

// Resolve validates a standalone descriptor and flattens it. Nothing is
// returned alongside an error.
func Resolve(d *descriptor.Descriptor, cat *catalog.Catalog) (*RuleSet, error) {
	return ResolveChain([]*descriptor.Descriptor{d}, cat)
}

// ResolveChain flattens a cascade of descriptors ordered from the
// root-most ancestor to the nearest one.
func ResolveChain(chain []*descriptor.Descriptor, cat *catalog.Catalog) (*RuleSet, error) {
	if len(chain) == 0 {
		return nil, fmt.Errorf("resolve: empty descriptor chain")
	}
	if _, err := validateChain(chain, cat); err != nil {
		return nil, err
	}

	b := &builder{cat: cat, applied: make(map[string]bool)}
	dir := descriptorDir(chain[0])
	for _, d := range chain {
		b.descriptor(d, relDir(dir, descriptorDir(d)))
	}

	rs := &RuleSet{Dir: dir, layers: b.layers, cat: cat}
	rs.compute(func(l layer) bool { return len(l.scopes) == 0 })
	return rs, nil
}

// ForFile resolves the configuration for one file, applying every
// override block whose patterns match. rel is slash- or OS-separated and
// relative to Dir.
func (rs *RuleSet) ForFile(rel string) *RuleSet {
	rel = strings.TrimPrefix(filepath.ToSlash(filepath.Clean(rel)), "./")
	out := &RuleSet{Dir: rs.Dir, layers: rs.layers, cat: rs.cat}
	out.compute(func(l layer) bool {
		for _, s := range l.scopes {
			if !s.matches(rel) {
				return false
			}
		}
		return true
	})
	return out
}

// Environments returns the enabled environments in name order.
func (rs *RuleSet) Environments() []string {
	var out []string
	for name, on := range rs.Env {
		if on {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// RuleIDs returns all resolved rule ids in name order.
func (rs *RuleSet) RuleIDs() []string {
	return descriptor.SortedRuleIDs(rs.Rules)
}

// Enabled counts the rules reported at warn or error.
func (rs *RuleSet) Enabled() (warn, errs int) {
	for _, r := range rs.Rules {
		switch r.Severity {
		case descriptor.SeverityWarn:
			warn++
		case descriptor.SeverityError:
			errs++
		}
	}
	return warn, errs
}

// Layers lists the applied layer sources in order, with override blocks
// marked by their file patterns.
func (rs *RuleSet) Layers() []string {
	out := make([]string, 0, len(rs.layers))
	for _, l := range rs.layers {
		s := l.source
		for _, sc := range l.scopes {
			s += " [" + strings.Join(sc.files, ",") + "]"
		}
		out = append(out, s)
	}
	return out
}

// Ignorer compiles the resolved ignore patterns, defaults first.
func (rs *RuleSet) Ignorer() *ignore.Matcher {
	patterns := make([]ignore.Pattern, 0, len(ignore.Defaults)+len(rs.IgnorePatterns))
	for _, p := range ignore.Defaults {
		patterns = append(patterns, ignore.Pattern{Text: p})
	}
	return ignore.New(append(patterns, rs.IgnorePatterns...))
}

// Descriptor renders the resolved set as a single flat descriptor with
// no extends and no overrides.
func (rs *RuleSet) Descriptor() *descriptor.Descriptor {
	d := &descriptor.Descriptor{
		Root:          true,
		Env:           rs.Env,
		Globals:       rs.Globals,
		Parser:        rs.Parser,
		ParserOptions: rs.ParserOptions,
		Plugins:       rs.Plugins,
		Rules:         rs.Rules,
		Settings:      rs.Settings,
	}
	for _, p := range rs.IgnorePatterns {
		text := p.Text
		if p.Base != "" && p.Base != "." {
			text = p.Base + "/" + strings.TrimPrefix(text, "/")
		}
		d.IgnorePatterns = append(d.IgnorePatterns, text)
	}
	d.MarkPresent(descriptor.RequiredKeys...)
	return d
}

type builder struct {
	cat     *catalog.Catalog
	layers  []layer
	applied map[string]bool // plugin name plus scope key of queued implicit configs
}

func (b *builder) descriptor(d *descriptor.Descriptor, base string) {
	source := d.Path
	if source == "" {
		source = "<descriptor>"
	}
	b.body(source, d, base, nil, nil)
}

// body queues a layer after its presets and plugin configs, followed by
// its override blocks.
func (b *builder) body(source string, d *descriptor.Descriptor, base string, scopes []scope, stack []string) {
	var plugins []string
	for _, ext := range d.Extends {
		plugins = append(plugins, b.preset(ext, base, scopes, stack)...)
	}
	plugins = append(plugins, d.Plugins...)
	for _, name := range plugins {
		p, ok := b.cat.Plugin(name)
		if !ok {
			continue
		}
		// An unscoped layer covers every file; a scoped one does not stop
		// a later unscoped activation.
		key := p.Name + "\x00" + scopeKey(scopes)
		if b.applied[p.Name+"\x00"] || b.applied[key] {
			continue
		}
		b.applied[key] = true
		if p.Config != nil {
			b.body("plugin "+p.Name, p.Config, base, scopes, stack)
		}
	}

	b.layers = append(b.layers, layer{source: source, base: base, d: d, plugins: d.Plugins, scopes: scopes})

	for i := range d.Overrides {
		o := &d.Overrides[i]
		nested := append(append([]scope(nil), scopes...), scope{base: base, files: o.Files, excluded: o.ExcludedFiles})
		b.body(fmt.Sprintf("%s overrides[%d]", source, i), &o.Config, base, nested, stack)
	}
}

func scopeKey(scopes []scope) string {
	var b strings.Builder
	for _, s := range scopes {
		b.WriteString(s.base)
		b.WriteByte('|')
		b.WriteString(strings.Join(s.files, ","))
		b.WriteByte('|')
		b.WriteString(strings.Join(s.excluded, ","))
		b.WriteByte(';')
	}
	return b.String()
}

// preset queues a preset and returns the plugins it activates.
func (b *builder) preset(id, base string, scopes []scope, stack []string) []string {
	p, ok := b.cat.Preset(id)
	if !ok || p.Config == nil {
		return nil
	}
	for _, s := range stack {
		if s == p.ID {
			return nil
		}
	}
	stack = append(stack, p.ID)

	var own []string
	if pl := catalog.PresetPlugin(p.ID); pl != "" {
		own = append(own, pl)
	}
	own = append(own, p.Config.Plugins...)

	var plugins []string
	for _, ext := range p.Config.Extends {
		plugins = append(plugins, b.preset(ext, base, scopes, stack)...)
	}
	plugins = append(plugins, own...)

	b.layers = append(b.layers, layer{source: p.ID, base: base, d: p.Config, plugins: own, scopes: scopes})
	for i := range p.Config.Overrides {
		o := &p.Config.Overrides[i]
		nested := append(append([]scope(nil), scopes...), scope{base: base, files: o.Files, excluded: o.ExcludedFiles})
		b.body(fmt.Sprintf("%s overrides[%d]", p.ID, i), &o.Config, base, nested, stack)
	}
	return plugins
}

// compute applies the selected layers in order.
func (rs *RuleSet) compute(include func(layer) bool) {
	var selected []layer
	active := make(map[string]bool)
	for _, l := range rs.layers {
		if !include(l) {
			continue
		}
		selected = append(selected, l)
		for _, name := range l.plugins {
			n := catalog.NormalizePluginName(name)
			if !active[n] {
				active[n] = true
				rs.Plugins = append(rs.Plugins, n)
			}
		}
	}

	rs.Env = make(map[string]bool)
	rs.Rules = make(map[string]descriptor.RuleSetting)
	rs.Sources = make(map[string]string)
	explicitGlobals := make(map[string]descriptor.GlobalAccess)

	for _, l := range selected {
		d := l.d
		for name, on := range d.Env {
			rs.Env[name] = on
		}
		for name, access := range d.Globals {
			explicitGlobals[name] = access
		}
		if d.Parser != "" {
			rs.Parser = d.Parser
		}
		rs.ParserOptions = mergeParserOptions(rs.ParserOptions, d.ParserOptions)
		for id, setting := range d.Rules {
			if !ruleApplies(id, active) {
				continue
			}
			rs.Rules[id] = setting
			rs.Sources[id] = l.source
		}
		if len(d.Settings) > 0 {
			rs.Settings = mergeSettings(rs.Settings, d.Settings)
		}
		for _, p := range d.IgnorePatterns {
			rs.IgnorePatterns = append(rs.IgnorePatterns, ignore.Pattern{Text: p, Base: l.base})
		}
	}

	rs.Globals = make(map[string]descriptor.GlobalAccess)
	var implied descriptor.EcmaVersion
	for _, name := range rs.Environments() {
		env, ok := rs.cat.Environment(name)
		if !ok {
			continue
		}
		for g, access := range env.Globals {
			rs.Globals[g] = access
		}
		if env.EcmaVersion.Newer(implied) {
			implied = env.EcmaVersion
		}
	}
	for g, access := range explicitGlobals {
		if access == descriptor.GlobalOff {
			delete(rs.Globals, g)
			continue
		}
		rs.Globals[g] = access
	}
	if rs.ParserOptions.EcmaVersion == 0 {
		rs.ParserOptions.EcmaVersion = implied
	}
}

// ruleApplies drops rules that presets set for plugins the project never
// activated, e.g. the Vue entries of a formatting preset.
func ruleApplies(id string, active map[string]bool) bool {
	pl := catalog.RulePlugin(id)
	return pl == "" || active[pl]
}

func mergeParserOptions(base, over descriptor.ParserOptions) descriptor.ParserOptions {
	out := base
	if over.EcmaVersion != 0 {
		out.EcmaVersion = over.EcmaVersion
	}
	if over.Parser != "" {
		out.Parser = over.Parser
	}
	if over.SourceType != "" {
		out.SourceType = over.SourceType
	}
	if len(over.Extra) > 0 {
		out.Extra = mergeSettings(base.Extra, over.Extra)
	}
	return out
}

// mergeSettings deep-merges nested records; other values are replaced.
// Neither input is modified.
func mergeSettings(base, over map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		if bm, ok := out[k].(map[string]any); ok {
			if om, ok := v.(map[string]any); ok {
				out[k] = mergeSettings(bm, om)
				continue
			}
		}
		out[k] = v
	}
	return out
}

func descriptorDir(d *descriptor.Descriptor) string {
	if d.Path == "" {
		return ""
	}
	dir, err := filepath.Abs(filepath.Dir(d.Path))
	if err != nil {
		return filepath.Dir(d.Path)
	}
	return dir
}

func relDir(root, dir string) string {
	if root == "" || dir == "" || root == dir {
		return ""
	}
	rel, err := filepath.Rel(root, dir)
	if err != nil || strings.HasPrefix(rel, "..") {
		return ""
	}
	return filepath.ToSlash(rel)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
