package resolve

import (
	"path"
	"strings"
)

// matchGlob matches a slash-separated path against a pattern supporting
// "**" as "zero or more directories". Segments are matched with
// path.Match, so "*" never crosses a "/".
func matchGlob(pattern, name string) bool {
	if !strings.Contains(pattern, "**") {
		matched, _ := path.Match(pattern, name)
		return matched
	}

	idx := strings.Index(pattern, "**")
	prefix := strings.TrimRight(pattern[:idx], "/")
	suffix := strings.TrimLeft(pattern[idx+2:], "/")

	parts := strings.Split(name, "/")
	if prefix != "" {
		pre := strings.Split(prefix, "/")
		if len(pre) > len(parts) {
			return false
		}
		for i, p := range pre {
			if ok, _ := path.Match(p, parts[i]); !ok {
				return false
			}
		}
		parts = parts[len(pre):]
	}

	if suffix == "" {
		return true
	}
	for i := 0; i <= len(parts); i++ {
		if matchGlob(suffix, strings.Join(parts[i:], "/")) {
			return true
		}
	}
	return false
}

// matchFilePattern applies override "files" semantics: patterns without
// a "/" match the base name anywhere below the override's directory,
// others match the whole relative path.
func matchFilePattern(pattern, rel string) bool {
	pattern = strings.TrimPrefix(pattern, "./")
	if !strings.Contains(pattern, "/") {
		return matchGlob(pattern, path.Base(rel))
	}
	return matchGlob(strings.TrimPrefix(pattern, "/"), rel)
}

// scope restricts a layer to files matched by an override block. Base
// is the slash-separated directory of the descriptor that declared the
// block, relative to the rule set's directory.
type scope struct {
	base     string
	files    []string
	excluded []string
}

func (s scope) matches(rel string) bool {
	if s.base != "" && s.base != "." {
		if !strings.HasPrefix(rel, s.base+"/") {
			return false
		}
		rel = strings.TrimPrefix(rel, s.base+"/")
	}
	hit := false
	for _, p := range s.files {
		if matchFilePattern(p, rel) {
			hit = true
			break
		}
	}
	if !hit {
		return false
	}
	for _, p := range s.excluded {
		if matchFilePattern(p, rel) {
			return false
		}
	}
	return true
}
