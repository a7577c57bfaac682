package catalog

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/sofmeright/lintrc/src/descriptor"
)

const (
	sevOff   = descriptor.SeverityOff
	sevWarn  = descriptor.SeverityWarn
	sevError = descriptor.SeverityError
)

// Builtin returns a fresh catalog holding the core rules, the bundled
// environments and parsers, and the TypeScript, Vue and Prettier plugins
// with their presets. Registration problems are programming errors and
// panic, the same as duplicate registrations elsewhere.
func Builtin() *Catalog {
	c := New()
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}

	for _, e := range builtinEnvironments() {
		must(c.AddEnvironment(e))
	}
	for _, p := range builtinParsers {
		must(c.AddParser(p))
	}

	for _, id := range coreRecommended {
		must(c.AddRule(Rule{ID: id}))
	}
	for _, id := range coreOther {
		must(c.AddRule(Rule{ID: id}))
	}
	for id, replacement := range coreDeprecated {
		r := Rule{ID: id, Deprecated: true}
		if replacement != "" {
			r.ReplacedBy = []string{replacement}
		}
		must(c.AddRule(r))
	}

	must(c.AddPlugin(&Plugin{
		Name:    "@typescript-eslint",
		Package: "@typescript-eslint/eslint-plugin",
		Version: semver.MustParse("5.62.0"),
	}, typescriptRules()...))
	must(c.AddPlugin(&Plugin{
		Name:    "vue",
		Package: "eslint-plugin-vue",
		Version: semver.MustParse("9.20.1"),
	}, vueRules()...))
	must(c.AddPlugin(&Plugin{
		Name:    "prettier",
		Package: "eslint-plugin-prettier",
		Version: semver.MustParse("5.1.3"),
	}, Rule{ID: "prettier"}))

	must(c.AddEnvironment(Environment{
		Name:   "vue/setup-compiler-macros",
		Plugin: "vue",
		Globals: globals(descriptor.GlobalReadonly,
			"defineProps", "defineEmits", "defineExpose", "withDefaults", "defineModel", "defineOptions", "defineSlots"),
	}))

	for _, p := range corePresets(c) {
		must(c.AddPreset(p))
	}
	for _, p := range typescriptPresets() {
		must(c.AddPreset(p))
	}
	for _, p := range vuePresets() {
		must(c.AddPreset(p))
	}
	for _, p := range prettierPresets() {
		must(c.AddPreset(p))
	}

	must(c.Check())
	return c
}

var builtinParsers = []Parser{
	{ID: "espree", Description: "default JavaScript parser"},
	{ID: "vue-eslint-parser", Description: "Vue single-file components; script blocks go to parserOptions.parser"},
	{ID: "@typescript-eslint/parser", Description: "TypeScript"},
	{ID: "@babel/eslint-parser", Description: "Babel-transformed JavaScript"},
}

func globals(access descriptor.GlobalAccess, names ...string) map[string]descriptor.GlobalAccess {
	m := make(map[string]descriptor.GlobalAccess, len(names))
	for _, n := range names {
		m[n] = access
	}
	return m
}

func union(sets ...map[string]descriptor.GlobalAccess) map[string]descriptor.GlobalAccess {
	out := make(map[string]descriptor.GlobalAccess)
	for _, s := range sets {
		for k, v := range s {
			out[k] = v
		}
	}
	return out
}

func builtinEnvironments() []Environment {
	es5 := globals(descriptor.GlobalReadonly,
		"Array", "Boolean", "Date", "Error", "EvalError", "Function", "Infinity", "JSON", "Math",
		"NaN", "Number", "Object", "RangeError", "ReferenceError", "RegExp", "String", "SyntaxError",
		"TypeError", "URIError", "decodeURI", "decodeURIComponent", "encodeURI", "encodeURIComponent",
		"escape", "eval", "isFinite", "isNaN", "parseFloat", "parseInt", "undefined", "unescape")
	es2015 := union(es5, globals(descriptor.GlobalReadonly,
		"ArrayBuffer", "DataView", "Float32Array", "Float64Array", "Int16Array", "Int32Array",
		"Int8Array", "Map", "Promise", "Proxy", "Reflect", "Set", "Symbol", "Uint16Array",
		"Uint32Array", "Uint8Array", "Uint8ClampedArray", "WeakMap", "WeakSet"))
	es2017 := union(es2015, globals(descriptor.GlobalReadonly, "Atomics", "SharedArrayBuffer"))
	es2020 := union(es2017, globals(descriptor.GlobalReadonly, "BigInt", "BigInt64Array", "BigUint64Array", "globalThis"))
	es2021 := union(es2020, globals(descriptor.GlobalReadonly, "AggregateError", "FinalizationRegistry", "WeakRef"))

	envs := []Environment{
		{Name: "es6", Globals: es2015, EcmaVersion: 2015},
		{Name: "es2016", Globals: es2015, EcmaVersion: 2016},
		{Name: "es2017", Globals: es2017, EcmaVersion: 2017},
		{Name: "es2018", Globals: es2017, EcmaVersion: 2018},
		{Name: "es2019", Globals: es2017, EcmaVersion: 2019},
		{Name: "es2020", Globals: es2020, EcmaVersion: 2020},
		{Name: "es2021", Globals: es2021, EcmaVersion: 2021},
		{Name: "es2022", Globals: es2021, EcmaVersion: 2022},
		{Name: "es2023", Globals: es2021, EcmaVersion: 2023},
		{Name: "es2024", Globals: es2021, EcmaVersion: 2024},
	}

	browser := globals(descriptor.GlobalReadonly,
		"AbortController", "Blob", "CustomEvent", "Event", "EventTarget", "File", "FileReader",
		"FormData", "Headers", "HTMLElement", "IntersectionObserver", "MutationObserver",
		"Request", "ResizeObserver", "Response", "URL", "URLSearchParams", "WebSocket", "Worker",
		"XMLHttpRequest", "alert", "cancelAnimationFrame", "clearInterval", "clearTimeout",
		"confirm", "console", "crypto", "customElements", "document", "fetch", "history",
		"indexedDB", "localStorage", "location", "navigator", "performance", "prompt",
		"queueMicrotask", "requestAnimationFrame", "sessionStorage", "setInterval", "setTimeout",
		"structuredClone", "window")
	browser["onload"] = descriptor.GlobalWritable
	browser["name"] = descriptor.GlobalWritable

	node := globals(descriptor.GlobalReadonly,
		"AbortController", "Buffer", "URL", "URLSearchParams", "__dirname", "__filename",
		"clearImmediate", "clearInterval", "clearTimeout", "console", "fetch", "global",
		"process", "queueMicrotask", "setImmediate", "setInterval", "setTimeout", "structuredClone")
	node["exports"] = descriptor.GlobalWritable
	node["module"] = descriptor.GlobalReadonly
	node["require"] = descriptor.GlobalReadonly

	commonjs := globals(descriptor.GlobalReadonly, "module", "require")
	commonjs["exports"] = descriptor.GlobalWritable

	envs = append(envs,
		Environment{Name: "browser", Globals: browser},
		Environment{Name: "node", Globals: node},
		Environment{Name: "commonjs", Globals: commonjs},
		Environment{Name: "shared-node-browser", Globals: globals(descriptor.GlobalReadonly,
			"clearInterval", "clearTimeout", "console", "setInterval", "setTimeout", "URL", "URLSearchParams")},
		Environment{Name: "worker", Globals: globals(descriptor.GlobalReadonly,
			"close", "importScripts", "onmessage", "postMessage", "self")},
		Environment{Name: "serviceworker", Globals: globals(descriptor.GlobalReadonly,
			"caches", "clients", "registration", "self", "skipWaiting")},
		Environment{Name: "amd", Globals: globals(descriptor.GlobalReadonly, "define", "require")},
		Environment{Name: "jest", Globals: globals(descriptor.GlobalReadonly,
			"afterAll", "afterEach", "beforeAll", "beforeEach", "describe", "expect", "fit", "it",
			"jest", "test", "xdescribe", "xit", "xtest")},
		Environment{Name: "mocha", Globals: globals(descriptor.GlobalReadonly,
			"after", "afterEach", "before", "beforeEach", "context", "describe", "it", "specify", "xit")},
	)
	return envs
}

// coreRecommended is the eslint:recommended rule set, all at error.
var coreRecommended = []string{
	"constructor-super", "for-direction", "getter-return", "no-async-promise-executor",
	"no-case-declarations", "no-class-assign", "no-compare-neg-zero", "no-cond-assign",
	"no-const-assign", "no-constant-condition", "no-control-regex", "no-debugger",
	"no-delete-var", "no-dupe-args", "no-dupe-class-members", "no-dupe-else-if", "no-dupe-keys",
	"no-duplicate-case", "no-empty", "no-empty-character-class", "no-empty-pattern",
	"no-ex-assign", "no-extra-boolean-cast", "no-fallthrough", "no-func-assign",
	"no-global-assign", "no-import-assign", "no-inner-declarations", "no-invalid-regexp",
	"no-irregular-whitespace", "no-loss-of-precision", "no-misleading-character-class",
	"no-new-symbol", "no-nonoctal-decimal-escape", "no-obj-calls", "no-octal",
	"no-prototype-builtins", "no-redeclare", "no-regex-spaces", "no-self-assign",
	"no-setter-return", "no-shadow-restricted-names", "no-sparse-arrays", "no-this-before-super",
	"no-undef", "no-unexpected-multiline", "no-unreachable", "no-unsafe-finally",
	"no-unsafe-negation", "no-unsafe-optional-chaining", "no-unused-labels", "no-unused-vars",
	"no-useless-backreference", "no-useless-catch", "no-useless-escape", "no-with",
	"require-yield", "use-isnan", "valid-typeof",
}

// coreOther are non-deprecated core rules outside eslint:recommended.
var coreOther = []string{
	"array-callback-return", "arrow-body-style", "block-scoped-var", "camelcase",
	"class-methods-use-this", "complexity", "consistent-return", "consistent-this", "curly",
	"default-case", "default-case-last", "default-param-last", "dot-notation", "eqeqeq",
	"func-names", "func-style", "grouped-accessor-pairs", "guard-for-in", "id-length",
	"init-declarations", "logical-assignment-operators", "max-classes-per-file", "max-depth",
	"max-lines", "max-lines-per-function", "max-nested-callbacks", "max-params",
	"max-statements", "new-cap", "no-alert", "no-array-constructor", "no-await-in-loop",
	"no-bitwise", "no-caller", "no-console", "no-constant-binary-expression",
	"no-constructor-return", "no-continue", "no-div-regex", "no-duplicate-imports",
	"no-else-return", "no-empty-function", "no-empty-static-block", "no-eq-null", "no-eval",
	"no-extend-native", "no-extra-bind", "no-extra-label", "no-implicit-coercion",
	"no-implicit-globals", "no-implied-eval", "no-invalid-this", "no-iterator", "no-labels",
	"no-lone-blocks", "no-lonely-if", "no-loop-func", "no-magic-numbers", "no-multi-assign",
	"no-multi-str", "no-negated-condition", "no-nested-ternary", "no-new", "no-new-func",
	"no-new-native-nonconstructor", "no-new-wrappers", "no-object-constructor",
	"no-octal-escape", "no-param-reassign", "no-plusplus", "no-promise-executor-return",
	"no-proto", "no-restricted-globals", "no-restricted-imports", "no-restricted-syntax",
	"no-return-assign", "no-script-url", "no-self-compare", "no-sequences", "no-shadow",
	"no-template-curly-in-string", "no-throw-literal", "no-undef-init", "no-undefined",
	"no-underscore-dangle", "no-unmodified-loop-condition", "no-unneeded-ternary",
	"no-unreachable-loop", "no-unused-expressions", "no-unused-private-class-members",
	"no-use-before-define", "no-useless-call", "no-useless-computed-key", "no-useless-concat",
	"no-useless-constructor", "no-useless-rename", "no-useless-return", "no-var", "no-void",
	"no-warning-comments", "object-shorthand", "one-var", "operator-assignment",
	"prefer-arrow-callback", "prefer-const", "prefer-destructuring",
	"prefer-exponentiation-operator", "prefer-named-capture-group", "prefer-numeric-literals",
	"prefer-object-has-own", "prefer-object-spread", "prefer-promise-reject-errors",
	"prefer-regex-literals", "prefer-rest-params", "prefer-spread", "prefer-template", "radix",
	"require-atomic-updates", "require-await", "require-unicode-regexp", "sort-imports",
	"sort-keys", "sort-vars", "strict", "symbol-description", "vars-on-top", "yoda",
}

// coreDeprecated maps deprecated core rules to their replacement, if any.
var coreDeprecated = map[string]string{
	"arrow-parens":                "",
	"brace-style":                 "",
	"comma-dangle":                "",
	"comma-spacing":               "",
	"eol-last":                    "",
	"indent":                      "",
	"key-spacing":                 "",
	"keyword-spacing":             "",
	"max-len":                     "",
	"no-extra-semi":               "",
	"no-mixed-spaces-and-tabs":    "",
	"no-multi-spaces":             "",
	"no-multiple-empty-lines":     "",
	"no-new-object":               "no-object-constructor",
	"no-return-await":             "",
	"no-trailing-spaces":          "",
	"object-curly-spacing":        "",
	"quote-props":                 "",
	"quotes":                      "",
	"semi":                        "",
	"space-before-function-paren": "",
	"space-infix-ops":             "",
}

func ruleSet(sev descriptor.Severity, ids ...string) map[string]descriptor.RuleSetting {
	m := make(map[string]descriptor.RuleSetting, len(ids))
	for _, id := range ids {
		m[id] = descriptor.Rule(sev)
	}
	return m
}

func mergeRules(sets ...map[string]descriptor.RuleSetting) map[string]descriptor.RuleSetting {
	out := make(map[string]descriptor.RuleSetting)
	for _, s := range sets {
		for k, v := range s {
			out[k] = v
		}
	}
	return out
}

func prefixed(plugin string, names ...string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = plugin + "/" + n
	}
	return out
}

func corePresets(c *Catalog) []*Preset {
	var all []string
	for _, r := range c.Rules("core") {
		if !r.Deprecated {
			all = append(all, r.ID)
		}
	}
	return []*Preset{
		{ID: "eslint:recommended", Config: &descriptor.Descriptor{Rules: ruleSet(sevError, coreRecommended...)}},
		{ID: "eslint:all", Config: &descriptor.Descriptor{Rules: ruleSet(sevError, all...)}},
	}
}

func typescriptRules() []Rule {
	names := []string{
		"adjacent-overload-signatures", "await-thenable", "ban-ts-comment", "ban-types",
		"consistent-type-definitions", "consistent-type-imports", "explicit-function-return-type",
		"explicit-module-boundary-types", "member-ordering", "naming-convention",
		"no-array-constructor", "no-empty-function", "no-empty-interface", "no-explicit-any",
		"no-extra-non-null-assertion", "no-extra-semi", "no-floating-promises",
		"no-for-in-array", "no-implied-eval", "no-inferrable-types", "no-loss-of-precision",
		"no-misused-new", "no-misused-promises", "no-namespace",
		"no-non-null-asserted-optional-chain", "no-non-null-assertion", "no-require-imports",
		"no-shadow", "no-this-alias", "no-unnecessary-type-assertion",
		"no-unnecessary-type-constraint", "no-unsafe-argument", "no-unsafe-assignment",
		"no-unsafe-call", "no-unsafe-member-access", "no-unsafe-return", "no-unused-vars",
		"no-use-before-define", "no-var-requires", "prefer-as-const", "prefer-namespace-keyword",
		"prefer-nullish-coalescing", "prefer-optional-chain", "prefer-ts-expect-error",
		"require-await", "restrict-plus-operands", "restrict-template-expressions",
		"return-await", "strict-boolean-expressions", "triple-slash-reference", "unbound-method",
	}
	rules := make([]Rule, 0, len(names)+3)
	for _, n := range names {
		rules = append(rules, Rule{ID: n})
	}
	rules = append(rules,
		Rule{ID: "no-duplicate-enum-values", Since: semver.MustParse("5.31.0")},
		Rule{ID: "no-unsafe-declaration-merging", Since: semver.MustParse("5.40.0")},
		Rule{ID: "no-import-type-side-effects", Since: semver.MustParse("5.52.0")},
	)
	return rules
}

func typescriptPresets() []*Preset {
	const ts = "@typescript-eslint"
	tsFiles := []string{"*.ts", "*.tsx", "*.mts", "*.cts"}

	// Core checks the TypeScript compiler already performs, switched off for TS files.
	eslintRecommended := mergeRules(
		ruleSet(sevOff,
			"constructor-super", "getter-return", "no-const-assign", "no-dupe-args",
			"no-dupe-class-members", "no-dupe-keys", "no-func-assign", "no-import-assign",
			"no-new-symbol", "no-obj-calls", "no-redeclare", "no-setter-return",
			"no-this-before-super", "no-undef", "no-unreachable", "no-unsafe-negation", "valid-typeof"),
		ruleSet(sevError, "no-var", "prefer-const", "prefer-rest-params", "prefer-spread"),
	)

	recommended := mergeRules(
		ruleSet(sevOff, "no-array-constructor", "no-empty-function", "no-extra-semi",
			"no-loss-of-precision", "no-unused-vars"),
		ruleSet(sevError, prefixed(ts,
			"adjacent-overload-signatures", "ban-ts-comment", "ban-types", "no-array-constructor",
			"no-empty-function", "no-empty-interface", "no-extra-non-null-assertion",
			"no-extra-semi", "no-inferrable-types", "no-loss-of-precision", "no-misused-new",
			"no-namespace", "no-non-null-asserted-optional-chain", "no-this-alias",
			"no-unnecessary-type-constraint", "no-var-requires", "prefer-as-const",
			"prefer-namespace-keyword", "triple-slash-reference")...),
		ruleSet(sevWarn, prefixed(ts, "no-explicit-any", "no-non-null-assertion", "no-unused-vars")...),
	)

	typeChecked := mergeRules(
		ruleSet(sevOff, "no-implied-eval", "require-await"),
		ruleSet(sevError, prefixed(ts,
			"await-thenable", "no-floating-promises", "no-for-in-array", "no-implied-eval",
			"no-misused-promises", "no-unnecessary-type-assertion", "no-unsafe-argument",
			"no-unsafe-assignment", "no-unsafe-call", "no-unsafe-member-access",
			"no-unsafe-return", "require-await", "restrict-plus-operands",
			"restrict-template-expressions", "unbound-method")...),
	)

	strict := ruleSet(sevWarn, prefixed(ts,
		"consistent-type-definitions", "no-duplicate-enum-values", "no-unsafe-declaration-merging",
		"prefer-nullish-coalescing", "prefer-optional-chain", "prefer-ts-expect-error")...)

	return []*Preset{
		{ID: "plugin:" + ts + "/base", Config: &descriptor.Descriptor{
			Parser:        "@typescript-eslint/parser",
			ParserOptions: descriptor.ParserOptions{SourceType: descriptor.SourceModule},
			Plugins:       []string{ts},
		}},
		{ID: "plugin:" + ts + "/eslint-recommended", Config: &descriptor.Descriptor{
			Overrides: []descriptor.Override{{
				Files:  tsFiles,
				Config: descriptor.Descriptor{Rules: eslintRecommended},
			}},
		}},
		{ID: "plugin:" + ts + "/recommended", Config: &descriptor.Descriptor{
			Extends: []string{"plugin:" + ts + "/base", "plugin:" + ts + "/eslint-recommended"},
			Rules:   recommended,
		}},
		{ID: "plugin:" + ts + "/recommended-requiring-type-checking", Config: &descriptor.Descriptor{
			Extends: []string{"plugin:" + ts + "/base", "plugin:" + ts + "/eslint-recommended"},
			Rules:   typeChecked,
		}},
		{ID: "plugin:" + ts + "/strict", Config: &descriptor.Descriptor{
			Extends: []string{"plugin:" + ts + "/base", "plugin:" + ts + "/eslint-recommended"},
			Rules:   strict,
		}},
	}
}

var (
	vueBaseRules = []string{"comment-directive", "jsx-uses-vars"}

	vueEssential = []string{
		"multi-word-component-names", "no-arrow-functions-in-watch",
		"no-async-in-computed-properties", "no-child-content", "no-computed-properties-in-data",
		"no-deprecated-data-object-declaration", "no-deprecated-destroyed-lifecycle",
		"no-deprecated-dollar-listeners-api", "no-deprecated-dollar-scopedslots-api",
		"no-deprecated-events-api", "no-deprecated-filter", "no-deprecated-functional-template",
		"no-deprecated-html-element-is", "no-deprecated-inline-template",
		"no-deprecated-props-default-this", "no-deprecated-router-link-tag-prop",
		"no-deprecated-scope-attribute", "no-deprecated-slot-attribute",
		"no-deprecated-slot-scope-attribute", "no-deprecated-v-bind-sync",
		"no-deprecated-v-is", "no-deprecated-v-on-native-modifier",
		"no-deprecated-v-on-number-modifiers", "no-deprecated-vue-config-keycodes",
		"no-dupe-keys", "no-dupe-v-else-if", "no-duplicate-attributes",
		"no-export-in-script-setup", "no-expose-after-await", "no-lifecycle-after-await",
		"no-mutating-props", "no-parsing-error", "no-ref-as-operand",
		"no-reserved-component-names", "no-reserved-keys", "no-reserved-props",
		"no-shared-component-data", "no-side-effects-in-computed-properties",
		"no-template-key", "no-textarea-mustache", "no-unused-components", "no-unused-vars",
		"no-use-computed-property-like-method", "no-use-v-if-with-v-for",
		"no-useless-template-attributes", "no-v-for-template-key-on-child",
		"no-v-text-v-html-on-component", "no-watch-after-await", "prefer-import-from-vue",
		"require-component-is", "require-prop-type-constructor", "require-render-return",
		"require-slots-as-functions", "require-toggle-inside-transition",
		"require-v-for-key", "require-valid-default-prop", "return-in-computed-property",
		"return-in-emits-validator", "use-v-on-exact", "valid-attribute-name",
		"valid-define-emits", "valid-define-props", "valid-next-tick", "valid-template-root",
		"valid-v-bind", "valid-v-cloak", "valid-v-else", "valid-v-else-if", "valid-v-for",
		"valid-v-html", "valid-v-if", "valid-v-is", "valid-v-memo", "valid-v-model",
		"valid-v-on", "valid-v-once", "valid-v-pre", "valid-v-show", "valid-v-slot",
		"valid-v-text",
	}

	vueStronglyRecommended = []string{
		"attribute-hyphenation", "component-definition-name-casing", "first-attribute-linebreak",
		"html-closing-bracket-newline", "html-closing-bracket-spacing", "html-end-tags",
		"html-indent", "html-quotes", "html-self-closing", "max-attributes-per-line",
		"multiline-html-element-content-newline", "mustache-interpolation-spacing",
		"no-multi-spaces", "no-spaces-around-equal-signs-in-attribute", "no-template-shadow",
		"one-component-per-file", "prop-name-casing", "require-default-prop",
		"require-explicit-emits", "require-prop-types", "singleline-html-element-content-newline",
		"v-bind-style", "v-on-event-hyphenation", "v-on-style", "v-slot-style",
	}

	vueRecommended = []string{
		"attributes-order", "component-tags-order", "no-lone-template", "no-multiple-slot-args",
		"no-v-html", "order-in-components", "this-in-template",
	}

	vueUncategorized = []string{
		"block-lang", "block-order", "component-api-style", "component-name-in-template-casing",
		"custom-event-name-casing", "define-emits-declaration", "define-macros-order",
		"define-props-declaration", "html-button-has-type", "html-comment-content-spacing",
		"match-component-file-name", "no-boolean-default", "no-duplicate-attr-inheritance",
		"no-empty-component-block", "no-potential-component-option-typo",
		"no-ref-object-reactivity-loss", "no-restricted-syntax", "no-static-inline-styles",
		"no-undef-components", "no-undef-properties", "no-unused-properties",
		"no-unused-refs", "no-useless-mustaches", "no-useless-v-bind", "padding-line-between-blocks",
		"prefer-true-attribute-shorthand", "require-direct-export", "require-expose",
		"require-name-property", "static-class-names-order", "v-for-delimiter-style",
	}
)

func vueRules() []Rule {
	var rules []Rule
	for _, group := range [][]string{vueBaseRules, vueEssential, vueStronglyRecommended, vueRecommended, vueUncategorized} {
		for _, n := range group {
			r := Rule{ID: n}
			switch n {
			case "multi-word-component-names":
				r.Since = semver.MustParse("7.20.0")
			case "component-tags-order":
				r.Deprecated = true
				r.ReplacedBy = []string{"vue/block-order"}
			case "block-order":
				r.Since = semver.MustParse("9.16.0")
			case "define-macros-order":
				r.Since = semver.MustParse("8.7.0")
			}
			rules = append(rules, r)
		}
	}
	rules = append(rules,
		Rule{ID: "no-required-prop-with-default", Since: semver.MustParse("9.6.0")},
		Rule{ID: "require-macro-variable-name", Since: semver.MustParse("9.15.0")},
		Rule{ID: "require-typed-ref", Since: semver.MustParse("9.16.0")},
		Rule{ID: "no-setup-props-reactivity-loss", Since: semver.MustParse("9.17.0")},
		Rule{ID: "no-setup-props-destructure", Deprecated: true, ReplacedBy: []string{"vue/no-setup-props-reactivity-loss"}},
	)
	return rules
}

func vuePresets() []*Preset {
	const vue = "vue"
	return []*Preset{
		{ID: "plugin:vue/base", Config: &descriptor.Descriptor{
			Env:    map[string]bool{"browser": true, "es6": true},
			Parser: "vue-eslint-parser",
			ParserOptions: descriptor.ParserOptions{
				EcmaVersion: 2020,
				SourceType:  descriptor.SourceModule,
			},
			Plugins: []string{vue},
			Rules:   ruleSet(sevError, prefixed(vue, vueBaseRules...)...),
		}},
		{ID: "plugin:vue/vue3-essential", Config: &descriptor.Descriptor{
			Extends: []string{"plugin:vue/base"},
			Rules:   ruleSet(sevError, prefixed(vue, vueEssential...)...),
		}},
		{ID: "plugin:vue/vue3-strongly-recommended", Config: &descriptor.Descriptor{
			Extends: []string{"plugin:vue/vue3-essential"},
			Rules:   ruleSet(sevWarn, prefixed(vue, vueStronglyRecommended...)...),
		}},
		{ID: "plugin:vue/vue3-recommended", Config: &descriptor.Descriptor{
			Extends: []string{"plugin:vue/vue3-strongly-recommended"},
			Rules:   ruleSet(sevWarn, prefixed(vue, vueRecommended...)...),
		}},
	}
}

func prettierPresets() []*Preset {
	formatting := ruleSet(sevOff,
		"arrow-parens", "brace-style", "comma-dangle", "comma-spacing", "eol-last", "indent",
		"key-spacing", "keyword-spacing", "max-len", "no-extra-semi", "no-mixed-spaces-and-tabs",
		"no-multi-spaces", "no-multiple-empty-lines", "no-trailing-spaces", "no-unexpected-multiline",
		"object-curly-spacing", "quote-props", "quotes", "semi", "space-before-function-paren",
		"space-infix-ops", "@typescript-eslint/no-extra-semi",
		"vue/first-attribute-linebreak", "vue/html-closing-bracket-newline",
		"vue/html-closing-bracket-spacing", "vue/html-end-tags", "vue/html-indent",
		"vue/html-quotes", "vue/html-self-closing", "vue/max-attributes-per-line",
		"vue/multiline-html-element-content-newline", "vue/mustache-interpolation-spacing",
		"vue/no-multi-spaces", "vue/no-spaces-around-equal-signs-in-attribute",
		"vue/singleline-html-element-content-newline")

	return []*Preset{
		{ID: "prettier", Config: &descriptor.Descriptor{Rules: formatting}},
		{ID: "plugin:prettier/recommended", Config: &descriptor.Descriptor{
			Extends: []string{"prettier"},
			Plugins: []string{"prettier"},
			Rules: mergeRules(
				ruleSet(sevError, "prettier/prettier"),
				ruleSet(sevOff, "arrow-body-style", "prefer-arrow-callback"),
			),
		}},
	}
}

// Describe returns a one-line summary of a preset for listings.
func Describe(p *Preset) string {
	d := p.Config
	if d == nil {
		return ""
	}
	s := fmt.Sprintf("%d rules", len(d.Rules))
	if len(d.Extends) > 0 {
		s += fmt.Sprintf(", extends %v", d.Extends)
	}
	if d.Parser != "" {
		s += ", parser " + d.Parser
	}
	if len(d.Overrides) > 0 {
		s += fmt.Sprintf(", %d overrides", len(d.Overrides))
	}
	return s
}
