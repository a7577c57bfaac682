package descriptor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Export converts a descriptor back to a plain key/value record in the
// ecosystem's shape. Only keys that carry a value are emitted.
func Export(d *Descriptor) map[string]any {
	out := exportLayer(d)
	if d.Root {
		out["root"] = true
	}
	if len(d.IgnorePatterns) > 0 {
		out["ignorePatterns"] = append([]string(nil), d.IgnorePatterns...)
	}
	return out
}

func exportLayer(d *Descriptor) map[string]any {
	out := make(map[string]any)
	if len(d.Env) > 0 || d.Has("env") {
		env := make(map[string]any, len(d.Env))
		for k, v := range d.Env {
			env[k] = v
		}
		out["env"] = env
	}
	if len(d.Globals) > 0 {
		globals := make(map[string]any, len(d.Globals))
		for k, v := range d.Globals {
			globals[k] = string(v)
		}
		out["globals"] = globals
	}
	if len(d.Extends) > 0 {
		out["extends"] = append([]string(nil), d.Extends...)
	}
	if d.Parser != "" {
		out["parser"] = d.Parser
	}
	if po := ExportParserOptions(d.ParserOptions); len(po) > 0 {
		out["parserOptions"] = po
	}
	if len(d.Plugins) > 0 {
		out["plugins"] = append([]string(nil), d.Plugins...)
	}
	if len(d.Rules) > 0 || d.Has("rules") {
		out["rules"] = ExportRules(d.Rules)
	}
	if len(d.Settings) > 0 {
		out["settings"] = d.Settings
	}
	if len(d.Overrides) > 0 {
		overrides := make([]any, 0, len(d.Overrides))
		for _, o := range d.Overrides {
			m := exportLayer(&o.Config)
			m["files"] = append([]string(nil), o.Files...)
			if len(o.ExcludedFiles) > 0 {
				m["excludedFiles"] = append([]string(nil), o.ExcludedFiles...)
			}
			overrides = append(overrides, m)
		}
		out["overrides"] = overrides
	}
	return out
}

// ExportParserOptions renders the parser record, Extra keys included.
func ExportParserOptions(p ParserOptions) map[string]any {
	out := make(map[string]any, len(p.Extra)+3)
	for k, v := range p.Extra {
		out[k] = v
	}
	if p.EcmaVersion != 0 {
		out["ecmaVersion"] = p.EcmaVersion.Value()
	}
	if p.Parser != "" {
		out["parser"] = p.Parser
	}
	if p.SourceType != "" {
		out["sourceType"] = p.SourceType
	}
	return out
}

// ExportRules renders rule settings in their ecosystem form.
func ExportRules(rules map[string]RuleSetting) map[string]any {
	out := make(map[string]any, len(rules))
	for id, rs := range rules {
		out[id] = rs.Value()
	}
	return out
}

// Encode serialises a plain record in the given format. Map keys come
// out sorted in every format.
func Encode(v map[string]any, format Format) ([]byte, error) {
	switch format {
	case FormatJSON, FormatPackageJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatTOML:
		return toml.Marshal(v)
	case FormatCJS:
		data, err := Encode(v, FormatJSON)
		if err != nil {
			return nil, err
		}
		out := append([]byte("module.exports = "), bytes.TrimRight(data, "\n")...)
		return append(out, ";\n"...), nil
	}
	return nil, fmt.Errorf("unsupported output format %q", format)
}

// SortedRuleIDs returns rule ids in lexical order.
func SortedRuleIDs(rules map[string]RuleSetting) []string {
	ids := make([]string, 0, len(rules))
	for id := range rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
