package descriptor

import (
	"fmt"
	"math"
	"strings"
)

// Severity controls whether and how a rule violation is reported.
type Severity int

const (
	SeverityOff Severity = iota
	SeverityWarn
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityOff:
		return "off"
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Enabled reports whether the rule is reported at all.
func (s Severity) Enabled() bool { return s == SeverityWarn || s == SeverityError }

// ParseSeverity accepts "off"/"warn"/"error" (case-insensitive) or the
// numeric 0/1/2 in whatever integer or float type the decoder produced.
// Digits inside a string are not numbers.
func ParseSeverity(v any) (Severity, error) {
	switch x := v.(type) {
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "off":
			return SeverityOff, nil
		case "warn":
			return SeverityWarn, nil
		case "error":
			return SeverityError, nil
		}
		return 0, fmt.Errorf("%q is not one of off, warn, error", x)
	case int:
		return severityFromInt(int64(x))
	case int64:
		return severityFromInt(x)
	case uint64:
		if x > 2 {
			return 0, fmt.Errorf("%d is not one of 0, 1, 2", x)
		}
		return Severity(x), nil
	case float64:
		if x != math.Trunc(x) {
			return 0, fmt.Errorf("%v is not one of 0, 1, 2", x)
		}
		return severityFromInt(int64(x))
	case nil:
		return 0, fmt.Errorf("severity is missing")
	default:
		return 0, fmt.Errorf("severity must be a string or number, got %T", v)
	}
}

func severityFromInt(n int64) (Severity, error) {
	if n < 0 || n > 2 {
		return 0, fmt.Errorf("%d is not one of 0, 1, 2", n)
	}
	return Severity(n), nil
}

// RuleSetting is a rule's final severity plus the option values that
// follow it in the array form, e.g. ["warn", {"allow": ["warn"]}].
type RuleSetting struct {
	Severity Severity
	Options  []any
}

// Rule is shorthand for a setting without options.
func Rule(s Severity) RuleSetting { return RuleSetting{Severity: s} }

// ParseRuleSetting decodes either a bare severity or the array form.
func ParseRuleSetting(v any) (RuleSetting, error) {
	if arr, ok := v.([]any); ok {
		if len(arr) == 0 {
			return RuleSetting{}, fmt.Errorf("empty rule array")
		}
		sev, err := ParseSeverity(arr[0])
		if err != nil {
			return RuleSetting{}, err
		}
		rs := RuleSetting{Severity: sev}
		if len(arr) > 1 {
			rs.Options = append([]any(nil), arr[1:]...)
		}
		return rs, nil
	}
	sev, err := ParseSeverity(v)
	if err != nil {
		return RuleSetting{}, err
	}
	return RuleSetting{Severity: sev}, nil
}

// Value returns the ecosystem form: a bare severity string, or an array
// when options are present.
func (r RuleSetting) Value() any {
	if len(r.Options) == 0 {
		return r.Severity.String()
	}
	out := make([]any, 0, len(r.Options)+1)
	out = append(out, r.Severity.String())
	return append(out, r.Options...)
}

func (r RuleSetting) String() string {
	if len(r.Options) == 0 {
		return r.Severity.String()
	}
	return fmt.Sprintf("%s %v", r.Severity, r.Options)
}
