package descriptor

import (
	"errors"
	"strings"
)

// Error kinds. Every validation problem wraps exactly one of these so
// callers can branch with errors.Is.
var (
	ErrMalformedDescriptor = errors.New("MalformedDescriptor")
	ErrUnknownPreset       = errors.New("UnknownPreset")
	ErrUnknownRule         = errors.New("UnknownRule")
	ErrUnknownPlugin       = errors.New("UnknownPlugin")
	ErrInvalidSeverity     = errors.New("InvalidSeverity")
	ErrInvalidGlobPattern  = errors.New("InvalidGlobPattern")
	ErrUnknownEnvironment  = errors.New("UnknownEnvironment")
	ErrUnknownParser       = errors.New("UnknownParser")
)

// ValidationError is a single problem found in a descriptor.
type ValidationError struct {
	Err   error  // one of the Err* kinds
	Field string // dotted path, e.g. "rules.no-var" or "overrides[0].files"
	Msg   string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())
	if e.Field != "" {
		b.WriteString(": ")
		b.WriteString(e.Field)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ValidationErrors collects every problem found in one pass.
type ValidationErrors []*ValidationError

func (es ValidationErrors) Error() string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}

// Unwrap exposes the members so errors.Is matches any contained kind.
func (es ValidationErrors) Unwrap() []error {
	errs := make([]error, len(es))
	for i, e := range es {
		errs[i] = e
	}
	return errs
}

// Add appends a problem.
func (es *ValidationErrors) Add(kind error, field, msg string) {
	*es = append(*es, &ValidationError{Err: kind, Field: field, Msg: msg})
}

// Merge appends all problems carried by err, or wraps err as malformed.
func (es *ValidationErrors) Merge(err error) {
	if err == nil {
		return
	}
	var list ValidationErrors
	if errors.As(err, &list) {
		*es = append(*es, list...)
		return
	}
	var one *ValidationError
	if errors.As(err, &one) {
		*es = append(*es, one)
		return
	}
	es.Add(ErrMalformedDescriptor, "", err.Error())
}

// Err returns nil when empty so callers can `return errs.Err()`.
func (es ValidationErrors) Err() error {
	if len(es) == 0 {
		return nil
	}
	return es
}

// Kinds returns the distinct kinds in first-seen order.
func (es ValidationErrors) Kinds() []error {
	var kinds []error
	seen := make(map[error]bool)
	for _, e := range es {
		if !seen[e.Err] {
			seen[e.Err] = true
			kinds = append(kinds, e.Err)
		}
	}
	return kinds
}
