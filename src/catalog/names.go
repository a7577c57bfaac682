package catalog

import "strings"

const (
	pluginPackagePrefix = "eslint-plugin-"
	configPackagePrefix = "eslint-config-"
	pluginPresetPrefix  = "plugin:"
)

// NormalizePluginName maps npm package spellings to the short name used
// as a rule prefix:
//
//	eslint-plugin-vue                 -> vue
//	@typescript-eslint/eslint-plugin  -> @typescript-eslint
//	@scope/eslint-plugin-foo          -> @scope/foo
func NormalizePluginName(name string) string {
	name = strings.TrimSpace(name)
	if strings.HasPrefix(name, "@") {
		scope, rest, found := strings.Cut(name, "/")
		if !found {
			return name
		}
		switch {
		case rest == "eslint-plugin":
			return scope
		case strings.HasPrefix(rest, pluginPackagePrefix):
			return scope + "/" + strings.TrimPrefix(rest, pluginPackagePrefix)
		}
		return name
	}
	return strings.TrimPrefix(name, pluginPackagePrefix)
}

// RulePlugin returns the plugin a rule id belongs to, or "" for core
// rules. "@scope/rule" belongs to "@scope", "@scope/name/rule" to
// "@scope/name" and "name/rule" to "name".
func RulePlugin(id string) string {
	if strings.HasPrefix(id, "@") {
		parts := strings.SplitN(id, "/", 3)
		switch len(parts) {
		case 3:
			return parts[0] + "/" + parts[1]
		case 2:
			return parts[0]
		}
		return ""
	}
	if i := strings.Index(id, "/"); i > 0 {
		return id[:i]
	}
	return ""
}

// NormalizePresetID canonicalises a preset reference. Plugin presets get
// their plugin name normalised and shareable configs lose the
// eslint-config- package prefix.
func NormalizePresetID(id string) string {
	id = strings.TrimSpace(id)
	switch {
	case strings.HasPrefix(id, "eslint:"):
		return id
	case strings.HasPrefix(id, pluginPresetPrefix):
		rest := strings.TrimPrefix(id, pluginPresetPrefix)
		i := strings.LastIndex(rest, "/")
		if i <= 0 {
			return id
		}
		return pluginPresetPrefix + NormalizePluginName(rest[:i]) + "/" + rest[i+1:]
	case strings.HasPrefix(id, "@"):
		scope, rest, found := strings.Cut(id, "/")
		if !found {
			return id
		}
		switch {
		case rest == "eslint-config":
			return scope
		case strings.HasPrefix(rest, configPackagePrefix):
			return scope + "/" + strings.TrimPrefix(rest, configPackagePrefix)
		}
		return id
	}
	return strings.TrimPrefix(id, configPackagePrefix)
}

// PresetPlugin returns the plugin a "plugin:" preset belongs to.
func PresetPlugin(id string) string {
	id = NormalizePresetID(id)
	if !strings.HasPrefix(id, pluginPresetPrefix) {
		return ""
	}
	rest := strings.TrimPrefix(id, pluginPresetPrefix)
	if i := strings.LastIndex(rest, "/"); i > 0 {
		return rest[:i]
	}
	return ""
}
