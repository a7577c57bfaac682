package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sofmeright/lintrc/src/descriptor"
)

func TestBuiltinIsConsistent(t *testing.T) {
	c := Builtin()
	require.NoError(t, c.Check())

	for _, id := range []string{
		"eslint:recommended",
		"eslint:all",
		"plugin:vue/vue3-recommended",
		"plugin:@typescript-eslint/recommended",
		"prettier",
		"eslint-config-prettier",
		"plugin:prettier/recommended",
	} {
		_, ok := c.Preset(id)
		require.True(t, ok, "preset %s", id)
	}

	for _, name := range []string{"browser", "es2021", "node", "vue/setup-compiler-macros"} {
		_, ok := c.Environment(name)
		require.True(t, ok, "environment %s", name)
	}
	for _, id := range []string{"vue-eslint-parser", "@typescript-eslint/parser"} {
		_, ok := c.Parser(id)
		require.True(t, ok, "parser %s", id)
	}
}

func TestEslintAllSkipsDeprecated(t *testing.T) {
	c := Builtin()
	all, _ := c.Preset("eslint:all")
	require.Contains(t, all.Config.Rules, "no-var")
	require.NotContains(t, all.Config.Rules, "semi")
	require.NotContains(t, all.Config.Rules, "vue/html-indent")

	semi, ok := c.Rule("semi")
	require.True(t, ok)
	require.True(t, semi.Deprecated)
}

func TestNormalizePluginName(t *testing.T) {
	tests := map[string]string{
		"vue":                              "vue",
		"eslint-plugin-vue":                "vue",
		"@typescript-eslint":               "@typescript-eslint",
		"@typescript-eslint/eslint-plugin": "@typescript-eslint",
		"@acme/eslint-plugin-widgets":      "@acme/widgets",
		"@acme/widgets":                    "@acme/widgets",
	}
	for in, want := range tests {
		if got := NormalizePluginName(in); got != want {
			t.Errorf("NormalizePluginName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRulePlugin(t *testing.T) {
	tests := map[string]string{
		"no-var":                             "",
		"vue/multi-word-component-names":     "vue",
		"@typescript-eslint/no-explicit-any": "@typescript-eslint",
		"@acme/widgets/no-foo":               "@acme/widgets",
	}
	for in, want := range tests {
		if got := RulePlugin(in); got != want {
			t.Errorf("RulePlugin(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizePresetID(t *testing.T) {
	tests := map[string]string{
		"eslint:recommended":                                  "eslint:recommended",
		"plugin:vue/vue3-recommended":                         "plugin:vue/vue3-recommended",
		"plugin:eslint-plugin-vue/base":                       "plugin:vue/base",
		"plugin:@typescript-eslint/recommended":               "plugin:@typescript-eslint/recommended",
		"plugin:@typescript-eslint/eslint-plugin/recommended": "plugin:@typescript-eslint/recommended",
		"eslint-config-prettier":                              "prettier",
		"@acme/eslint-config":                                 "@acme",
		"@acme/eslint-config-strict":                          "@acme/strict",
	}
	for in, want := range tests {
		if got := NormalizePresetID(in); got != want {
			t.Errorf("NormalizePresetID(%q) = %q, want %q", in, got, want)
		}
	}
	if got := PresetPlugin("plugin:@typescript-eslint/strict"); got != "@typescript-eslint" {
		t.Errorf("PresetPlugin = %q", got)
	}
	if got := PresetPlugin("prettier"); got != "" {
		t.Errorf("PresetPlugin(prettier) = %q, want empty", got)
	}
}

func TestDuplicateRegistration(t *testing.T) {
	c := New()
	require.NoError(t, c.AddRule(Rule{ID: "no-var"}))
	require.Error(t, c.AddRule(Rule{ID: "no-var"}))

	require.NoError(t, c.AddPlugin(&Plugin{Name: "eslint-plugin-foo"}, Rule{ID: "bar"}))
	require.Error(t, c.AddPlugin(&Plugin{Name: "foo"}))

	r, ok := c.Rule("foo/bar")
	require.True(t, ok)
	require.Equal(t, "foo", r.Plugin)
}

func TestRuleAvailable(t *testing.T) {
	c := Builtin()
	active := map[string]bool{"vue": true}

	require.NoError(t, c.RuleAvailable("no-var", active))
	require.NoError(t, c.RuleAvailable("vue/multi-word-component-names", active))
	require.ErrorContains(t, c.RuleAvailable("@typescript-eslint/no-explicit-any", active), "not active")
	require.ErrorContains(t, c.RuleAvailable("react/jsx-key", active), "no plugin")
	require.ErrorContains(t, c.RuleAvailable("vue/not-a-rule", active), "no rule")
	require.ErrorContains(t, c.RuleAvailable("totally-fake-rule", active), "no core rule")
}

func TestSinceGating(t *testing.T) {
	c := Builtin()
	active := map[string]bool{"vue": true}

	require.NoError(t, c.RuleAvailable("vue/require-macro-variable-name", active))

	require.NoError(t, c.SetInstalledVersion("eslint-plugin-vue", "9.10.0"))
	err := c.RuleAvailable("vue/require-macro-variable-name", active)
	require.ErrorContains(t, err, ">= 9.15.0")
	require.NoError(t, c.RuleAvailable("vue/no-required-prop-with-default", active))

	require.Error(t, c.SetInstalledVersion("vue", "not-a-version"))
	require.Error(t, c.SetInstalledVersion("react", "1.0.0"))
}

func TestCheckFindsCycle(t *testing.T) {
	c := New()
	require.NoError(t, c.AddPreset(&Preset{ID: "a", Config: &descriptor.Descriptor{Extends: []string{"b"}}}))
	require.NoError(t, c.AddPreset(&Preset{ID: "b", Config: &descriptor.Descriptor{
		Overrides: []descriptor.Override{{
			Files:  []string{"*.ts"},
			Config: descriptor.Descriptor{Extends: []string{"a"}},
		}},
	}}))
	err := c.Check()
	require.ErrorContains(t, err, "extends cycle")
}

func TestCheckFindsUnknownNames(t *testing.T) {
	c := New()
	require.NoError(t, c.AddPreset(&Preset{ID: "p", Config: &descriptor.Descriptor{
		Extends: []string{"missing"},
		Plugins: []string{"ghost"},
		Env:     map[string]bool{"moon": true},
		Parser:  "mystery",
		Rules:   map[string]descriptor.RuleSetting{"nope": descriptor.Rule(descriptor.SeverityWarn)},
	}}))
	err := c.Check()
	require.Error(t, err)
	for _, want := range []string{`"missing"`, `"ghost"`, `"moon"`, `"mystery"`, `"nope"`} {
		require.Contains(t, err.Error(), want)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "acme.yml")
	content := `parsers:
  - id: acme-parser
    description: Acme templates
rules:
  - id: no-acme
plugins:
  - name: "@acme/eslint-plugin-widgets"
    version: 2.1.0
    rules:
      - id: no-foo
      - id: no-bar
        since: 2.0.0
      - id: old-foo
        deprecated: true
        replacedBy: ["@acme/widgets/no-foo"]
    config:
      rules:
        "@acme/widgets/no-foo": warn
environments:
  - name: "@acme/widgets/runtime"
    plugin: "@acme/widgets"
    ecmaVersion: 2022
    globals:
      Widget: readonly
      widgetState: writable
presets:
  - id: "plugin:@acme/widgets/recommended"
    config:
      plugins: ["@acme/widgets"]
      env:
        "@acme/widgets/runtime": true
      extends: ["eslint:recommended"]
      rules:
        "@acme/widgets/no-bar": [error, {strict: true}]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c := Builtin()
	require.NoError(t, c.LoadFile(path))

	p, ok := c.Plugin("@acme/widgets")
	require.True(t, ok)
	require.Equal(t, "2.1.0", p.Version.String())
	require.NotNil(t, p.Config)

	r, ok := c.Rule("@acme/widgets/no-bar")
	require.True(t, ok)
	require.Equal(t, "2.0.0", r.Since.String())

	env, ok := c.Environment("@acme/widgets/runtime")
	require.True(t, ok)
	require.Equal(t, descriptor.EcmaVersion(2022), env.EcmaVersion)
	require.Equal(t, descriptor.GlobalWritable, env.Globals["widgetState"])

	preset, ok := c.Preset("plugin:@acme/eslint-plugin-widgets/recommended")
	require.True(t, ok)
	require.Equal(t, []any{map[string]any{"strict": true}}, preset.Config.Rules["@acme/widgets/no-bar"].Options)

	_, ok = c.Rule("no-acme")
	require.True(t, ok)
}

func TestLoadFileRejectsBrokenCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yml")
	require.NoError(t, os.WriteFile(path, []byte("presets:\n  - id: mine\n    config:\n      extends: [nowhere]\n"), 0o644))

	err := Builtin().LoadFile(path)
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), `"nowhere"`), err.Error())
}

func TestDescribe(t *testing.T) {
	c := Builtin()
	p, _ := c.Preset("plugin:@typescript-eslint/eslint-recommended")
	require.Equal(t, "0 rules, 1 overrides", Describe(p))
}
