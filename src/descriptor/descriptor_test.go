package descriptor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in      any
		want    Severity
		wantErr bool
	}{
		{"off", SeverityOff, false},
		{"warn", SeverityWarn, false},
		{"ERROR", SeverityError, false},
		{0, SeverityOff, false},
		{int64(1), SeverityWarn, false},
		{float64(2), SeverityError, false},
		{"2", 0, true},
		{"0", 0, true},
		{3, 0, true},
		{-1, 0, true},
		{1.5, 0, true},
		{"fatal", 0, true},
		{true, 0, true},
		{nil, 0, true},
	}
	for _, tt := range tests {
		got, err := ParseSeverity(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseSeverity(%#v): expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSeverity(%#v): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSeverity(%#v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseRuleSetting(t *testing.T) {
	rs, err := ParseRuleSetting([]any{"warn", map[string]any{"allow": []any{"warn", "error"}}})
	if err != nil {
		t.Fatalf("ParseRuleSetting: %v", err)
	}
	want := RuleSetting{Severity: SeverityWarn, Options: []any{map[string]any{"allow": []any{"warn", "error"}}}}
	if diff := cmp.Diff(want, rs); diff != "" {
		t.Fatalf("rule setting mismatch (-want +got):\n%s", diff)
	}

	if _, err := ParseRuleSetting([]any{}); err == nil {
		t.Fatalf("expected error for empty array")
	}
	if _, err := ParseRuleSetting([]any{"loud"}); err == nil {
		t.Fatalf("expected error for bad severity in array")
	}
}

func TestParseEcmaVersion(t *testing.T) {
	tests := []struct {
		in   any
		want EcmaVersion
	}{
		{"latest", EcmaLatest},
		{3, 3},
		{5, 5},
		{6, 2015},
		{12, 2021},
		{float64(2022), 2022},
		{"2020", 2020},
	}
	for _, tt := range tests {
		got, err := ParseEcmaVersion(tt.in)
		if err != nil {
			t.Errorf("ParseEcmaVersion(%#v): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseEcmaVersion(%#v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	for _, bad := range []any{4, 2014, 2099, "next", true} {
		if _, err := ParseEcmaVersion(bad); err == nil {
			t.Errorf("ParseEcmaVersion(%#v): expected error", bad)
		}
	}
}

func TestParse_JSONWithComments(t *testing.T) {
	src := []byte(`{
  // project root
  "root": true,
  "env": { "browser": true },
  "parser": "espree", /* default parser */
  "rules": {
    "no-var": "error"
  },
  "settings": { "docs": "https://example.com/lint" }
}`)
	d, err := Parse(src, FormatJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := d.Settings["docs"]; got != "https://example.com/lint" {
		t.Errorf("settings.docs = %v; // inside a string must survive", got)
	}
	if !d.Root || d.Parser != "espree" {
		t.Errorf("root=%v parser=%q", d.Root, d.Parser)
	}
}

func TestParse_JSONFields(t *testing.T) {
	src := []byte(`{
  "env": { "browser": true, "node": false },
  "parser": "espree",
  "extends": "eslint:recommended",
  "rules": { "quotes": [1, "single"] },
  "ignorePatterns": "dist"
}`)
	d, err := Parse(src, FormatJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if diff := cmp.Diff(map[string]bool{"browser": true, "node": false}, d.Env); diff != "" {
		t.Errorf("env mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"eslint:recommended"}, d.Extends); diff != "" {
		t.Errorf("extends mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"dist"}, d.IgnorePatterns); diff != "" {
		t.Errorf("ignorePatterns mismatch (-want +got):\n%s", diff)
	}
	want := RuleSetting{Severity: SeverityWarn, Options: []any{"single"}}
	if diff := cmp.Diff(want, d.Rules["quotes"]); diff != "" {
		t.Errorf("quotes mismatch (-want +got):\n%s", diff)
	}
	if !d.Has("env") || !d.Has("rules") || d.Has("plugins") {
		t.Errorf("presence tracking wrong: env=%v rules=%v plugins=%v", d.Has("env"), d.Has("rules"), d.Has("plugins"))
	}
}

func TestParse_YAMLAndTOMLAgree(t *testing.T) {
	yamlSrc := []byte(`
env:
  browser: true
parser: vue-eslint-parser
parserOptions:
  ecmaVersion: latest
  parser: "@typescript-eslint/parser"
  sourceType: module
plugins: ["@typescript-eslint"]
rules:
  no-var: error
  no-console: [warn, {allow: [warn, error]}]
`)
	tomlSrc := []byte(`
parser = "vue-eslint-parser"
plugins = ["@typescript-eslint"]

[env]
browser = true

[parserOptions]
ecmaVersion = "latest"
parser = "@typescript-eslint/parser"
sourceType = "module"

[rules]
"no-var" = "error"
"no-console" = ["warn", { allow = ["warn", "error"] }]
`)
	fromYAML, err := Parse(yamlSrc, FormatYAML)
	if err != nil {
		t.Fatalf("Parse yaml: %v", err)
	}
	fromTOML, err := Parse(tomlSrc, FormatTOML)
	if err != nil {
		t.Fatalf("Parse toml: %v", err)
	}
	if diff := cmp.Diff(Export(fromYAML), Export(fromTOML)); diff != "" {
		t.Fatalf("yaml and toml disagree (-yaml +toml):\n%s", diff)
	}
	if fromYAML.ParserOptions.EcmaVersion != EcmaLatest {
		t.Errorf("ecmaVersion = %v, want latest", fromYAML.ParserOptions.EcmaVersion)
	}
}

func TestReadFile_CJS(t *testing.T) {
	d, err := ReadFile(filepath.Join("testdata", "vue-ts.eslintrc.cjs"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !d.Root {
		t.Errorf("root = false, want true")
	}
	if d.Parser != "vue-eslint-parser" {
		t.Errorf("parser = %q", d.Parser)
	}
	if d.ParserOptions.Parser != "@typescript-eslint/parser" || d.ParserOptions.SourceType != SourceModule {
		t.Errorf("parserOptions = %+v", d.ParserOptions)
	}
	wantExtends := []string{"eslint:recommended", "plugin:@typescript-eslint/recommended", "plugin:vue/vue3-recommended"}
	if diff := cmp.Diff(wantExtends, d.Extends); diff != "" {
		t.Errorf("extends mismatch (-want +got):\n%s", diff)
	}
	if len(d.Rules) != 15 {
		t.Errorf("got %d rules, want 15", len(d.Rules))
	}
	wantUnused := RuleSetting{
		Severity: SeverityError,
		Options:  []any{map[string]any{"argsIgnorePattern": "^_", "varsIgnorePattern": "^_"}},
	}
	if diff := cmp.Diff(wantUnused, d.Rules["@typescript-eslint/no-unused-vars"]); diff != "" {
		t.Errorf("no-unused-vars mismatch (-want +got):\n%s", diff)
	}
	if got := d.Rules["no-unused-vars"]; got.Severity != SeverityOff {
		t.Errorf("no-unused-vars = %v, want off (trailing comment must be stripped)", got)
	}
	if diff := cmp.Diff([]string{"dist", "node_modules", "src-tauri"}, d.IgnorePatterns); diff != "" {
		t.Errorf("ignorePatterns mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractExports_RejectsDynamic(t *testing.T) {
	cases := map[string]string{
		"call":       "module.exports = { extends: [require.resolve('x')] }",
		"spread":     "module.exports = { ...base, root: true }",
		"template":   "module.exports = { parser: `${p}` }",
		"no-export":  "const x = { root: true }",
		"identifier": "module.exports = { parser: someParser }",
		"in-array":   "module.exports = { extends: [base] }",
		"shorthand":  "module.exports = { root: true, rules }",
		"member":     "module.exports = { env: { node: process.env.CI } }",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(src), FormatCJS); err == nil {
				t.Fatalf("expected error for %q", src)
			} else if !errors.Is(err, ErrMalformedDescriptor) {
				t.Fatalf("expected MalformedDescriptor, got %v", err)
			}
		})
	}
}

func TestParse_CJSLiterals(t *testing.T) {
	src := []byte(`module.exports = {
  root: false,
  env: { es6: true },
  rules: {
    'no-var': 'warn',
    semi: [2, 'never'],
    eqeqeq: 0,
    'no-var': 'error',
  },
  root: true,
};
`)
	d, err := Parse(src, FormatCJS)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !d.Root {
		t.Errorf("root = false, want the later true")
	}
	want := map[string]RuleSetting{
		"no-var": Rule(SeverityError),
		"semi":   {Severity: SeverityError, Options: []any{"never"}},
		"eqeqeq": Rule(SeverityOff),
	}
	if diff := cmp.Diff(want, d.Rules); diff != "" {
		t.Errorf("rules mismatch (-want +got):\n%s", diff)
	}

	fromJSON, err := Parse([]byte(`{"rules": {"no-var": "warn", "no-var": "error"}}`), FormatJSON)
	if err != nil {
		t.Fatalf("Parse JSON: %v", err)
	}
	if diff := cmp.Diff(fromJSON.Rules["no-var"], d.Rules["no-var"]); diff != "" {
		t.Errorf("CJS and JSON disagree on repeated keys (-json +cjs):\n%s", diff)
	}
}

func TestParse_ShapeErrors(t *testing.T) {
	src := []byte(`
env: [browser]
parser: 42
rules:
  no-var: loud
  semi: "2"
  eqeqeq: [error, always]
overrides:
  - rules: {no-var: off}
unexpected: true
`)
	_, err := Parse(src, FormatYAML)
	if err == nil {
		t.Fatal("expected errors")
	}
	var errs ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	fields := make(map[string]error)
	for _, e := range errs {
		fields[e.Field] = e.Err
	}
	want := map[string]error{
		"env":                ErrMalformedDescriptor,
		"parser":             ErrMalformedDescriptor,
		"rules.no-var":       ErrInvalidSeverity,
		"rules.semi":         ErrInvalidSeverity,
		"overrides[0].files": ErrMalformedDescriptor,
		"unexpected":         ErrMalformedDescriptor,
	}
	for field, kind := range want {
		if got, ok := fields[field]; !ok {
			t.Errorf("missing error for %s; got %v", field, err)
		} else if got != kind {
			t.Errorf("%s: kind %v, want %v", field, got, kind)
		}
	}
	if _, ok := fields["rules.eqeqeq"]; ok {
		t.Errorf("eqeqeq is valid and must not be reported")
	}
	if !errors.Is(err, ErrInvalidSeverity) || !errors.Is(err, ErrMalformedDescriptor) {
		t.Errorf("errors.Is must see both kinds through ValidationErrors")
	}
}

func TestCheckRequired(t *testing.T) {
	d, err := Parse([]byte(`{"extends": ["eslint:recommended"]}`), FormatJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	err = CheckRequired(d)
	if !errors.Is(err, ErrMalformedDescriptor) {
		t.Fatalf("expected MalformedDescriptor, got %v", err)
	}
	for _, key := range RequiredKeys {
		if !strings.Contains(err.Error(), key+": is required") {
			t.Errorf("error %q does not mention %s", err, key)
		}
	}
}

func TestParse_PackageJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "package.json")
	if err := os.WriteFile(path, []byte(`{"name":"app","eslintConfig":{"root":true,"rules":{"no-var":2}}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if d.Rules["no-var"].Severity != SeverityError {
		t.Errorf("no-var = %v, want error", d.Rules["no-var"])
	}

	if err := os.WriteFile(path, []byte(`{"name":"app"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(path); !errors.Is(err, ErrNoPackageConfig) {
		t.Fatalf("expected ErrNoPackageConfig, got %v", err)
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	d, err := ReadFile(filepath.Join("testdata", "vue-ts.eslintrc.cjs"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	for _, format := range []Format{FormatJSON, FormatYAML, FormatCJS} {
		data, err := Encode(Export(d), format)
		if err != nil {
			t.Fatalf("Encode %s: %v", format, err)
		}
		back, err := Parse(data, format)
		if err != nil {
			t.Fatalf("Parse %s: %v\n%s", format, err, data)
		}
		if diff := cmp.Diff(Export(d), Export(back)); diff != "" {
			t.Errorf("%s round trip mismatch (-want +got):\n%s", format, diff)
		}
	}
}
