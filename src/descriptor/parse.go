package descriptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is the on-disk encoding of a descriptor.
type Format string

const (
	FormatJSON        Format = "json"
	FormatYAML        Format = "yaml"
	FormatTOML        Format = "toml"
	FormatCJS         Format = "cjs"
	FormatPackageJSON Format = "package.json"
)

// Filenames lists descriptor file names in lookup precedence order.
var Filenames = []string{
	".eslintrc.js",
	".eslintrc.cjs",
	".eslintrc.yaml",
	".eslintrc.yml",
	".eslintrc.json",
	".eslintrc.toml",
	".eslintrc",
	"package.json",
}

// ErrNoPackageConfig is returned for a package.json without eslintConfig.
var ErrNoPackageConfig = errors.New("package.json has no eslintConfig")

// DetectFormat picks a format from a file name.
func DetectFormat(path string) (Format, error) {
	base := filepath.Base(path)
	if base == "package.json" {
		return FormatPackageJSON, nil
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".js", ".cjs":
		return FormatCJS, nil
	case "":
		// Legacy extensionless .eslintrc is YAML, and JSON is valid YAML.
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported descriptor file %q", base)
}

// ReadFile reads and parses a descriptor. Shape problems come back as
// ValidationErrors; I/O errors are wrapped as-is.
func ReadFile(path string) (*Descriptor, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading descriptor: %w", err)
	}
	d, err := Parse(data, format)
	if err != nil {
		return nil, err
	}
	d.Path = path
	return d, nil
}

// Parse decodes descriptor text in the given format.
func Parse(data []byte, format Format) (*Descriptor, error) {
	raw, err := decodeRaw(data, format)
	if err != nil {
		if errors.Is(err, ErrNoPackageConfig) {
			return nil, err
		}
		var errs ValidationErrors
		errs.Add(ErrMalformedDescriptor, "", err.Error())
		return nil, errs
	}
	return FromMap(raw)
}

func decodeRaw(data []byte, format Format) (map[string]any, error) {
	var v any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(StripComments(data), &v); err != nil {
			return nil, fmt.Errorf("decoding JSON: %w", err)
		}
	case FormatPackageJSON:
		var pkg struct {
			ESLintConfig any `json:"eslintConfig"`
		}
		if err := json.Unmarshal(data, &pkg); err != nil {
			return nil, fmt.Errorf("decoding package.json: %w", err)
		}
		if pkg.ESLintConfig == nil {
			return nil, ErrNoPackageConfig
		}
		v = pkg.ESLintConfig
	case FormatYAML:
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decoding YAML: %w", err)
		}
	case FormatTOML:
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decoding TOML: %w", err)
		}
		v = m
	case FormatCJS:
		literal, err := ExtractExports(data)
		if err != nil {
			return nil, err
		}
		if v, err = decodeLiteral(literal); err != nil {
			return nil, fmt.Errorf("decoding module.exports literal: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	if v == nil {
		return nil, fmt.Errorf("descriptor is empty")
	}
	m, ok := asMap(v)
	if !ok {
		return nil, fmt.Errorf("descriptor must be an object, got %s", shapeName(v))
	}
	return m, nil
}

var (
	topLevelKeys = map[string]bool{
		"root": true, "env": true, "globals": true, "extends": true,
		"parser": true, "parserOptions": true, "plugins": true, "rules": true,
		"overrides": true, "ignorePatterns": true, "settings": true,
	}
	overrideKeys = map[string]bool{
		"files": true, "excludedFiles": true, "env": true, "globals": true,
		"extends": true, "parser": true, "parserOptions": true, "plugins": true,
		"rules": true, "overrides": true, "settings": true,
	}
)

// FromMap builds a descriptor from a decoded key/value record, checking
// the shape of every field.
func FromMap(raw map[string]any) (*Descriptor, error) {
	d, errs := decodeLayer(raw, "", topLevelKeys)
	if len(errs) > 0 {
		return nil, errs
	}
	return d, nil
}

func decodeLayer(raw map[string]any, prefix string, allowed map[string]bool) (*Descriptor, ValidationErrors) {
	var errs ValidationErrors
	d := &Descriptor{present: make(map[string]bool, len(raw))}

	for _, key := range sortedKeys(raw) {
		val := raw[key]
		field := join(prefix, key)
		if !allowed[key] {
			errs.Add(ErrMalformedDescriptor, field, "unknown key")
			continue
		}
		d.present[key] = true

		switch key {
		case "root":
			b, ok := val.(bool)
			if !ok {
				errs.Add(ErrMalformedDescriptor, field, "must be a boolean, got "+shapeName(val))
				continue
			}
			d.Root = b

		case "env":
			m, ok := asMap(val)
			if !ok {
				errs.Add(ErrMalformedDescriptor, field, "must be an object of name: boolean, got "+shapeName(val))
				continue
			}
			d.Env = make(map[string]bool, len(m))
			for _, name := range sortedKeys(m) {
				b, ok := m[name].(bool)
				if !ok {
					errs.Add(ErrMalformedDescriptor, join(field, name), "must be a boolean, got "+shapeName(m[name]))
					continue
				}
				d.Env[name] = b
			}

		case "globals":
			m, ok := asMap(val)
			if !ok {
				errs.Add(ErrMalformedDescriptor, field, "must be an object, got "+shapeName(val))
				continue
			}
			d.Globals = make(map[string]GlobalAccess, len(m))
			for _, name := range sortedKeys(m) {
				acc, err := ParseGlobalAccess(m[name])
				if err != nil {
					errs.Add(ErrMalformedDescriptor, join(field, name), err.Error())
					continue
				}
				d.Globals[name] = acc
			}

		case "extends":
			list, ok := asStringList(val, true)
			if !ok {
				errs.Add(ErrMalformedDescriptor, field, "must be a string or list of strings, got "+shapeName(val))
				continue
			}
			d.Extends = list

		case "parser":
			s, ok := val.(string)
			if !ok || s == "" {
				errs.Add(ErrMalformedDescriptor, field, "must be a non-empty string, got "+shapeName(val))
				continue
			}
			d.Parser = s

		case "parserOptions":
			po, perrs := decodeParserOptions(val, field)
			errs = append(errs, perrs...)
			d.ParserOptions = po

		case "plugins":
			list, ok := asStringList(val, false)
			if !ok {
				errs.Add(ErrMalformedDescriptor, field, "must be a list of strings, got "+shapeName(val))
				continue
			}
			d.Plugins = list

		case "rules":
			m, ok := asMap(val)
			if !ok {
				errs.Add(ErrMalformedDescriptor, field, "must be an object of rule: severity, got "+shapeName(val))
				continue
			}
			d.Rules = make(map[string]RuleSetting, len(m))
			for _, id := range sortedKeys(m) {
				rs, err := ParseRuleSetting(m[id])
				if err != nil {
					errs.Add(ErrInvalidSeverity, join(field, id), err.Error())
					continue
				}
				if rs.Options != nil {
					rs.Options = normalize(rs.Options).([]any)
				}
				d.Rules[id] = rs
			}

		case "overrides":
			items, ok := val.([]any)
			if !ok {
				errs.Add(ErrMalformedDescriptor, field, "must be a list of objects, got "+shapeName(val))
				continue
			}
			for i, item := range items {
				ofield := fmt.Sprintf("%s[%d]", field, i)
				m, ok := asMap(item)
				if !ok {
					errs.Add(ErrMalformedDescriptor, ofield, "must be an object, got "+shapeName(item))
					continue
				}
				o, oerrs := decodeOverride(m, ofield)
				errs = append(errs, oerrs...)
				if o != nil {
					d.Overrides = append(d.Overrides, *o)
				}
			}

		case "ignorePatterns":
			list, ok := asStringList(val, true)
			if !ok {
				errs.Add(ErrMalformedDescriptor, field, "must be a string or list of strings, got "+shapeName(val))
				continue
			}
			d.IgnorePatterns = list

		case "settings":
			m, ok := asMap(val)
			if !ok {
				errs.Add(ErrMalformedDescriptor, field, "must be an object, got "+shapeName(val))
				continue
			}
			d.Settings = normalize(m).(map[string]any)

		case "files", "excludedFiles":
			// handled by decodeOverride
		}
	}
	return d, errs
}

func decodeOverride(m map[string]any, field string) (*Override, ValidationErrors) {
	var errs ValidationErrors
	o := &Override{}

	files, ok := asStringList(m["files"], true)
	switch {
	case m["files"] == nil:
		errs.Add(ErrMalformedDescriptor, join(field, "files"), "is required")
	case !ok || len(files) == 0:
		errs.Add(ErrMalformedDescriptor, join(field, "files"), "must be a non-empty string or list of strings")
	default:
		o.Files = files
	}
	if v, exists := m["excludedFiles"]; exists {
		ex, ok := asStringList(v, true)
		if !ok {
			errs.Add(ErrMalformedDescriptor, join(field, "excludedFiles"), "must be a string or list of strings")
		}
		o.ExcludedFiles = ex
	}

	layer, lerrs := decodeLayer(m, field, overrideKeys)
	errs = append(errs, lerrs...)
	o.Config = *layer
	return o, errs
}

func decodeParserOptions(val any, field string) (ParserOptions, ValidationErrors) {
	var errs ValidationErrors
	var po ParserOptions
	m, ok := asMap(val)
	if !ok {
		errs.Add(ErrMalformedDescriptor, field, "must be an object, got "+shapeName(val))
		return po, errs
	}
	for _, key := range sortedKeys(m) {
		v := m[key]
		switch key {
		case "ecmaVersion":
			ev, err := ParseEcmaVersion(v)
			if err != nil {
				errs.Add(ErrMalformedDescriptor, join(field, key), err.Error())
				continue
			}
			po.EcmaVersion = ev
		case "parser":
			s, ok := v.(string)
			if !ok || s == "" {
				errs.Add(ErrMalformedDescriptor, join(field, key), "must be a non-empty string, got "+shapeName(v))
				continue
			}
			po.Parser = s
		case "sourceType":
			s, _ := v.(string)
			switch s {
			case SourceScript, SourceModule, SourceCommonJS:
				po.SourceType = s
			default:
				errs.Add(ErrMalformedDescriptor, join(field, key), fmt.Sprintf("must be one of script, module, commonjs, got %v", v))
			}
		default:
			if po.Extra == nil {
				po.Extra = make(map[string]any)
			}
			po.Extra[key] = normalize(v)
		}
	}
	return po, errs
}

// CheckRequired reports the required keys a standalone descriptor lacks.
func CheckRequired(d *Descriptor) error {
	var errs ValidationErrors
	for _, key := range RequiredKeys {
		if !d.Has(key) {
			errs.Add(ErrMalformedDescriptor, key, "is required")
		}
	}
	return errs.Err()
}

// asMap accepts both map flavours the YAML decoder can produce.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

func asStringList(v any, allowSingle bool) ([]string, bool) {
	switch x := v.(type) {
	case string:
		if !allowSingle {
			return nil, false
		}
		return []string{x}, true
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	case []string:
		return append([]string(nil), x...), true
	}
	return nil, false
}

// normalize turns map[any]any nodes into map[string]any so option values
// compare and re-encode the same way whatever the source format was.
func normalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = normalize(val)
		}
		return out
	}
	return v
}

func shapeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case int, int64, uint64, float64:
		return "number"
	case []any:
		return "list"
	case map[string]any, map[any]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
