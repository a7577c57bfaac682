package resolve

import (
	"fmt"
	"strings"

	"github.com/sofmeright/lintrc/src/catalog"
	"github.com/sofmeright/lintrc/src/descriptor"
	"github.com/sofmeright/lintrc/src/ignore"
)

// Warning is a non-fatal finding, such as a deprecated rule.
type Warning struct {
	Field string
	Msg   string
}

func (w Warning) String() string {
	if w.Field == "" {
		return w.Msg
	}
	return w.Field + ": " + w.Msg
}

// Validate checks every name a descriptor refers to against the catalog.
// All problems are returned together; warnings never fail validation.
func Validate(d *descriptor.Descriptor, cat *catalog.Catalog) ([]Warning, error) {
	v := &validator{cat: cat}
	v.layer("", d, make(map[string]bool))
	return v.warnings, v.errs.Err()
}

type validator struct {
	cat      *catalog.Catalog
	errs     descriptor.ValidationErrors
	warnings []Warning
}

func field(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// layer validates one descriptor layer. inherited holds the plugins
// activated by enclosing layers and is extended in place with the ones
// this layer activates.
func (v *validator) layer(prefix string, d *descriptor.Descriptor, inherited map[string]bool) {
	active := inherited

	for i, ext := range d.Extends {
		f := fmt.Sprintf("%s[%d]", field(prefix, "extends"), i)
		if _, ok := v.cat.Preset(ext); !ok {
			msg := fmt.Sprintf("no preset named %q", ext)
			if pl := catalog.PresetPlugin(ext); pl != "" {
				if _, known := v.cat.Plugin(pl); !known {
					msg += fmt.Sprintf(" (plugin %q is not in the catalog)", pl)
				}
			}
			v.errs.Add(descriptor.ErrUnknownPreset, f, msg)
			continue
		}
		activatePreset(v.cat, ext, active, nil)
	}

	for i, name := range d.Plugins {
		f := fmt.Sprintf("%s[%d]", field(prefix, "plugins"), i)
		p, ok := v.cat.Plugin(name)
		if !ok {
			v.errs.Add(descriptor.ErrUnknownPlugin, f, fmt.Sprintf("no plugin named %q", name))
			continue
		}
		active[p.Name] = true
	}

	for _, name := range sortedKeys(d.Env) {
		f := field(field(prefix, "env"), name)
		env, ok := v.cat.Environment(name)
		switch {
		case !ok:
			v.errs.Add(descriptor.ErrUnknownEnvironment, f, fmt.Sprintf("no environment named %q", name))
		case env.Plugin != "" && !active[env.Plugin]:
			v.errs.Add(descriptor.ErrUnknownEnvironment, f, fmt.Sprintf("environment belongs to plugin %q, which is not active", env.Plugin))
		}
	}

	if d.Parser != "" {
		if _, ok := v.cat.Parser(d.Parser); !ok {
			v.errs.Add(descriptor.ErrUnknownParser, field(prefix, "parser"), fmt.Sprintf("no parser named %q", d.Parser))
		}
	}
	if inner := d.ParserOptions.Parser; inner != "" {
		if _, ok := v.cat.Parser(inner); !ok {
			v.errs.Add(descriptor.ErrUnknownParser, field(prefix, "parserOptions.parser"), fmt.Sprintf("no parser named %q", inner))
		}
	}

	for _, id := range descriptor.SortedRuleIDs(d.Rules) {
		f := field(field(prefix, "rules"), id)
		if err := v.cat.RuleAvailable(id, active); err != nil {
			v.errs.Add(descriptor.ErrUnknownRule, f, err.Error())
			continue
		}
		if r, _ := v.cat.Rule(id); r.Deprecated {
			msg := "rule is deprecated"
			if len(r.ReplacedBy) > 0 {
				msg += "; use " + strings.Join(r.ReplacedBy, ", ")
			}
			v.warnings = append(v.warnings, Warning{Field: f, Msg: msg})
		}
	}

	for i, p := range d.IgnorePatterns {
		if err := ignore.ValidatePattern(p); err != nil {
			v.errs.Add(descriptor.ErrInvalidGlobPattern, fmt.Sprintf("%s[%d]", field(prefix, "ignorePatterns"), i), err.Error())
		}
	}

	for i := range d.Overrides {
		o := &d.Overrides[i]
		op := fmt.Sprintf("%s[%d]", field(prefix, "overrides"), i)
		for j, p := range o.Files {
			if err := validateFilePattern(p); err != nil {
				v.errs.Add(descriptor.ErrInvalidGlobPattern, fmt.Sprintf("%s.files[%d]", op, j), err.Error())
			}
		}
		for j, p := range o.ExcludedFiles {
			if err := validateFilePattern(p); err != nil {
				v.errs.Add(descriptor.ErrInvalidGlobPattern, fmt.Sprintf("%s.excludedFiles[%d]", op, j), err.Error())
			}
		}
		v.layer(op, &o.Config, copySet(active))
	}
}

// validateFilePattern rejects negation, which override file lists do
// not support, and otherwise applies the ignore pattern rules.
func validateFilePattern(p string) error {
	if strings.HasPrefix(p, "!") {
		return fmt.Errorf("negated patterns are not allowed in override file lists: %q", p)
	}
	return ignore.ValidatePattern(p)
}

// activatePreset marks every plugin a preset activates, following its
// extends chain. Unknown presets and cycles are ignored here; the
// catalog check reports them.
func activatePreset(cat *catalog.Catalog, id string, active map[string]bool, stack []string) {
	p, ok := cat.Preset(id)
	if !ok || p.Config == nil {
		return
	}
	for _, s := range stack {
		if s == p.ID {
			return
		}
	}
	stack = append(stack, p.ID)
	if pl := catalog.PresetPlugin(p.ID); pl != "" {
		active[catalog.NormalizePluginName(pl)] = true
	}
	for _, ext := range p.Config.Extends {
		activatePreset(cat, ext, active, stack)
	}
	for _, name := range p.Config.Plugins {
		active[catalog.NormalizePluginName(name)] = true
	}
}

func copySet(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
