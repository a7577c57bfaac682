package resolve

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sofmeright/lintrc/src/catalog"
	"github.com/sofmeright/lintrc/src/descriptor"
)

// ErrNoDescriptor is returned when no descriptor file is found.
var ErrNoDescriptor = errors.New("no descriptor found")

// Load reads a standalone descriptor, requires the env, parser and rules
// keys, and validates it. Every problem is reported in one error and no
// descriptor is returned with it.
func Load(path string, cat *catalog.Catalog) (*descriptor.Descriptor, []Warning, error) {
	d, err := descriptor.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	var errs descriptor.ValidationErrors
	errs.Merge(descriptor.CheckRequired(d))
	warnings, err := Validate(d, cat)
	errs.Merge(err)
	if len(errs) > 0 {
		return nil, warnings, errs
	}
	return d, warnings, nil
}

// Discover finds the descriptor governing dir: the one in dir itself and
// those in each ancestor, stopping after the first with root set. The
// chain is returned root-most first.
func Discover(dir string) ([]*descriptor.Descriptor, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}

	var chain []*descriptor.Descriptor
	for {
		d, err := findInDir(abs)
		if err != nil {
			return nil, err
		}
		if d != nil {
			chain = append([]*descriptor.Descriptor{d}, chain...)
			if d.Root {
				break
			}
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			break
		}
		abs = parent
	}

	if len(chain) == 0 {
		return nil, fmt.Errorf("%w in %s or any parent directory", ErrNoDescriptor, dir)
	}
	return chain, nil
}

// findInDir returns the highest-precedence descriptor in dir, or nil.
func findInDir(dir string) (*descriptor.Descriptor, error) {
	for _, name := range descriptor.Filenames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		d, err := descriptor.ReadFile(path)
		if errors.Is(err, descriptor.ErrNoPackageConfig) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return d, nil
	}
	return nil, nil
}

// LoadChain discovers the cascade for dir and validates it. Only the
// root-most descriptor must carry the required keys; the rest may set
// just what they change.
func LoadChain(dir string, cat *catalog.Catalog) ([]*descriptor.Descriptor, []Warning, error) {
	chain, err := Discover(dir)
	if err != nil {
		return nil, nil, err
	}
	var errs descriptor.ValidationErrors
	errs.Merge(prefixErrors(chain, chain[0], descriptor.CheckRequired(chain[0])))
	warnings, err := validateChain(chain, cat)
	errs.Merge(err)
	if len(errs) > 0 {
		return nil, warnings, errs
	}
	return chain, warnings, nil
}

// validateChain validates each descriptor with the plugins activated by
// its ancestors in scope.
func validateChain(chain []*descriptor.Descriptor, cat *catalog.Catalog) ([]Warning, error) {
	var (
		errs     descriptor.ValidationErrors
		warnings []Warning
	)
	active := make(map[string]bool)
	for _, d := range chain {
		v := &validator{cat: cat}
		v.layer("", d, active)
		errs.Merge(prefixErrors(chain, d, v.errs.Err()))
		for _, w := range v.warnings {
			if len(chain) > 1 {
				w.Field = chainField(chain, d, w.Field)
			}
			warnings = append(warnings, w)
		}
	}
	return warnings, errs.Err()
}

// prefixErrors qualifies field names with the descriptor file in a
// multi-file cascade so each problem points at its file.
func prefixErrors(chain []*descriptor.Descriptor, d *descriptor.Descriptor, err error) error {
	if err == nil || len(chain) < 2 {
		return err
	}
	var list descriptor.ValidationErrors
	if !errors.As(err, &list) {
		return err
	}
	out := make(descriptor.ValidationErrors, 0, len(list))
	for _, e := range list {
		out = append(out, &descriptor.ValidationError{Err: e.Err, Field: chainField(chain, d, e.Field), Msg: e.Msg})
	}
	return out
}

func chainField(chain []*descriptor.Descriptor, d *descriptor.Descriptor, f string) string {
	name := filepath.Base(d.Path)
	if rel := relDir(descriptorDir(chain[0]), descriptorDir(d)); rel != "" {
		name = rel + "/" + name
	}
	if f == "" {
		return name
	}
	return name + ":" + f
}
