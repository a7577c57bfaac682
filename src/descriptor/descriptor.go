// Package descriptor holds the lint descriptor data model: the record an
// external analysis tool reads to decide environments, parser, plugins,
// rule severities and ignored paths.
package descriptor

import (
	"fmt"
	"strconv"
)

// GlobalAccess says whether a global identifier may be read or assigned.
type GlobalAccess string

const (
	GlobalReadonly GlobalAccess = "readonly"
	GlobalWritable GlobalAccess = "writable"
	GlobalOff      GlobalAccess = "off"
)

// ParseGlobalAccess accepts the current spellings plus the legacy
// boolean and "readable"/"writeable" forms.
func ParseGlobalAccess(v any) (GlobalAccess, error) {
	switch x := v.(type) {
	case bool:
		if x {
			return GlobalWritable, nil
		}
		return GlobalReadonly, nil
	case nil:
		return GlobalReadonly, nil
	case string:
		switch x {
		case "readonly", "readable", "false":
			return GlobalReadonly, nil
		case "writable", "writeable", "true":
			return GlobalWritable, nil
		case "off":
			return GlobalOff, nil
		}
		return "", fmt.Errorf("%q is not one of readonly, writable, off", x)
	default:
		return "", fmt.Errorf("global access must be a string or boolean, got %T", v)
	}
}

// EcmaVersion is a language edition normalised to its year (3 and 5 stay
// as-is). Zero means unset.
type EcmaVersion int

// EcmaLatest is the "latest" keyword.
const EcmaLatest EcmaVersion = -1

const maxEcmaYear = 2026

func (v EcmaVersion) String() string {
	switch v {
	case 0:
		return ""
	case EcmaLatest:
		return "latest"
	default:
		return strconv.Itoa(int(v))
	}
}

// Value is the form written back into exported descriptors.
func (v EcmaVersion) Value() any {
	if v == EcmaLatest {
		return "latest"
	}
	return int(v)
}

// Newer reports whether v is a later edition than o. "latest" beats all.
func (v EcmaVersion) Newer(o EcmaVersion) bool {
	if v == o {
		return false
	}
	if v == EcmaLatest {
		return true
	}
	if o == EcmaLatest {
		return false
	}
	return v > o
}

// ParseEcmaVersion accepts "latest", editions 3, 5, 6..17 and years
// 2015..2026.
func ParseEcmaVersion(v any) (EcmaVersion, error) {
	var n int64
	switch x := v.(type) {
	case string:
		if x == "latest" {
			return EcmaLatest, nil
		}
		parsed, err := strconv.ParseInt(x, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a known ecmaVersion", x)
		}
		n = parsed
	case int:
		n = int64(x)
	case int64:
		n = x
	case uint64:
		n = int64(x)
	case float64:
		n = int64(x)
		if float64(n) != x {
			return 0, fmt.Errorf("%v is not a known ecmaVersion", x)
		}
	default:
		return 0, fmt.Errorf("ecmaVersion must be a number or \"latest\", got %T", v)
	}
	switch {
	case n == 3 || n == 5:
		return EcmaVersion(n), nil
	case n >= 6 && n <= maxEcmaYear-2009:
		return EcmaVersion(n + 2009), nil
	case n >= 2015 && n <= maxEcmaYear:
		return EcmaVersion(n), nil
	}
	return 0, fmt.Errorf("%d is not a known ecmaVersion", n)
}

// Source types accepted by parserOptions.sourceType.
const (
	SourceScript   = "script"
	SourceModule   = "module"
	SourceCommonJS = "commonjs"
)

// ParserOptions is the nested parser record. Keys other than the three
// typed ones are kept verbatim in Extra.
type ParserOptions struct {
	EcmaVersion EcmaVersion
	Parser      string // parser for embedded script blocks
	SourceType  string
	Extra       map[string]any
}

// IsZero reports whether no option is set.
func (p ParserOptions) IsZero() bool {
	return p.EcmaVersion == 0 && p.Parser == "" && p.SourceType == "" && len(p.Extra) == 0
}

// Override is a block that applies only to files matching Files and not
// ExcludedFiles.
type Override struct {
	Files         []string
	ExcludedFiles []string
	Config        Descriptor
}

// Descriptor is one configuration layer: a project descriptor, a preset
// from the catalog, or the body of an override block.
type Descriptor struct {
	// Path is the file the descriptor was read from; empty for presets.
	Path string

	Root           bool
	Env            map[string]bool
	Globals        map[string]GlobalAccess
	Extends        []string
	Parser         string
	ParserOptions  ParserOptions
	Plugins        []string
	Rules          map[string]RuleSetting
	Overrides      []Override
	IgnorePatterns []string
	Settings       map[string]any

	// present records which top-level keys appeared in the source.
	present map[string]bool
}

// Has reports whether key appeared in the parsed source.
func (d *Descriptor) Has(key string) bool { return d.present[key] }

// MarkPresent records keys as set, for descriptors built in code.
func (d *Descriptor) MarkPresent(keys ...string) {
	if d.present == nil {
		d.present = make(map[string]bool, len(keys))
	}
	for _, k := range keys {
		d.present[k] = true
	}
}

// RequiredKeys must appear in a standalone project descriptor.
var RequiredKeys = []string{"env", "parser", "rules"}
