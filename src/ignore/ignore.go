// Package ignore matches paths against descriptor ignore patterns using
// gitignore semantics: last matching pattern wins, "!" re-includes, a
// leading "/" anchors to the descriptor's directory and a trailing "/"
// matches directories only.
package ignore

import (
	"fmt"
	"path"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Defaults are always ignored, below any descriptor's own patterns.
var Defaults = []string{"node_modules/"}

// Pattern is one ignore pattern and the slash-separated directory,
// relative to the scan root, that it is anchored to.
type Pattern struct {
	Text string
	Base string
}

func (p Pattern) String() string {
	if p.Base == "" || p.Base == "." {
		return p.Text
	}
	return p.Base + ": " + p.Text
}

// ValidatePattern reports whether a pattern is well formed.
func ValidatePattern(p string) error {
	text := strings.TrimPrefix(p, "!")
	text = strings.TrimSuffix(strings.TrimPrefix(text, "/"), "/")
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("empty pattern")
	}
	for _, seg := range strings.Split(text, "/") {
		if seg == "" {
			return fmt.Errorf("empty path segment in %q", p)
		}
		if _, err := path.Match(seg, ""); err != nil {
			return fmt.Errorf("malformed glob segment %q in %q", seg, p)
		}
	}
	return nil
}

type compiled struct {
	src     Pattern
	matcher gitignore.Pattern
}

// Matcher evaluates a fixed, ordered list of patterns.
type Matcher struct {
	patterns []compiled
}

// New compiles patterns in order. Invalid patterns are skipped; validate
// them first with ValidatePattern to report them.
func New(patterns []Pattern) *Matcher {
	m := &Matcher{}
	for _, p := range patterns {
		if ValidatePattern(p.Text) != nil {
			continue
		}
		var domain []string
		if p.Base != "" && p.Base != "." {
			domain = strings.Split(p.Base, "/")
		}
		m.patterns = append(m.patterns, compiled{src: p, matcher: gitignore.ParsePattern(p.Text, domain)})
	}
	return m
}

// Len returns the number of active patterns.
func (m *Matcher) Len() int { return len(m.patterns) }

// Match reports whether rel (slash-separated, relative to the scan root)
// is ignored, either itself or through an ignored parent directory, and
// which pattern decided it.
func (m *Matcher) Match(rel string, isDir bool) (Pattern, bool) {
	rel = strings.Trim(path.Clean(rel), "/")
	if rel == "." || rel == "" || len(m.patterns) == 0 {
		return Pattern{}, false
	}
	parts := strings.Split(rel, "/")
	for i := 1; i < len(parts); i++ {
		if p, ok := m.decide(parts[:i], true); ok {
			return p, true
		}
	}
	return m.decide(parts, isDir)
}

func (m *Matcher) decide(parts []string, isDir bool) (Pattern, bool) {
	for i := len(m.patterns) - 1; i >= 0; i-- {
		switch m.patterns[i].matcher.Match(parts, isDir) {
		case gitignore.Exclude:
			return m.patterns[i].src, true
		case gitignore.Include:
			return Pattern{}, false
		}
	}
	return Pattern{}, false
}
