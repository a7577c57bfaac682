// Package scan is a stand-in for the external analysis tool: it walks a
// tree the way a linter would, reports which paths the resolved ignore
// patterns exclude, and resolves the effective rules for every file it
// would analyse. It never reads file contents.
package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/sofmeright/lintrc/src/descriptor"
	"github.com/sofmeright/lintrc/src/ignore"
	"github.com/sofmeright/lintrc/src/resolve"
)

// DefaultExtensions are the file types analysed when none are configured.
var DefaultExtensions = []string{".js", ".cjs", ".mjs", ".jsx", ".ts", ".cts", ".mts", ".tsx", ".vue"}

// Excluded is a path the ignore patterns removed from analysis.
type Excluded struct {
	Path    string
	IsDir   bool
	Pattern ignore.Pattern
}

// File is a path that would be analysed, with its effective rule counts.
type File struct {
	Path   string
	Rules  int // rules reported at warn or error
	Warn   int
	Error  int
	Scoped bool // override blocks change the rules for this file
}

// Report is the outcome of a scan. Paths are slash-separated, relative
// to the scan root and sorted.
type Report struct {
	Included  []File
	Excluded  []Excluded
	Skipped   int // files with a non-lintable extension
	Unchanged int // lintable files left out by the changed-only filter
}

// Engine walks RootDir against a resolved rule set.
type Engine struct {
	RuleSet    *resolve.RuleSet
	RootDir    string
	Extensions []string
	// Changed restricts analysis to these paths when non-nil.
	Changed     map[string]bool
	Concurrency int
	Verbose     bool
}

// Run walks the tree and resolves every included file concurrently.
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	root, err := filepath.Abs(e.RootDir)
	if err != nil {
		return nil, err
	}
	matcher := e.RuleSet.Ignorer()
	exts := e.extensions()

	report := &Report{}
	var candidates []string

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		// Dot entries, descriptors included, are never analysed.
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && !d.Type().IsRegular() {
			return nil
		}

		if p, ignored := matcher.Match(e.ruleSetPath(path, rel), d.IsDir()); ignored {
			report.Excluded = append(report.Excluded, Excluded{Path: rel, IsDir: d.IsDir(), Pattern: p})
			if e.Verbose {
				fmt.Fprintf(os.Stderr, "scan: excluded %s (%s)\n", rel, p)
			}
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		if !exts[strings.ToLower(filepath.Ext(rel))] {
			report.Skipped++
			return nil
		}
		if e.Changed != nil && !e.Changed[rel] {
			report.Unchanged++
			return nil
		}
		candidates = append(candidates, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", e.RootDir, err)
	}

	files, err := e.resolveAll(ctx, root, candidates)
	if err != nil {
		return nil, err
	}
	report.Included = files
	sort.Slice(report.Excluded, func(i, j int) bool { return report.Excluded[i].Path < report.Excluded[j].Path })
	return report, nil
}

func (e *Engine) resolveAll(ctx context.Context, root string, rels []string) ([]File, error) {
	workers := e.Concurrency
	if workers <= 0 {
		workers = runtime.NumCPU() * 2
	}
	sem := semaphore.NewWeighted(int64(workers))

	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		files = make([]File, 0, len(rels))
	)
	base := e.RuleSet.Rules

	for _, rel := range rels {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		go func(rel string) {
			defer wg.Done()
			defer sem.Release(1)

			rs := e.RuleSet.ForFile(e.ruleSetPath(filepath.Join(root, filepath.FromSlash(rel)), rel))
			warn, errs := rs.Enabled()
			f := File{
				Path:   rel,
				Rules:  warn + errs,
				Warn:   warn,
				Error:  errs,
				Scoped: !sameRules(base, rs),
			}
			mu.Lock()
			files = append(files, f)
			mu.Unlock()
		}(rel)
	}
	wg.Wait()

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// ruleSetPath maps a walked path to the rule set's base directory, which
// may sit above the scan root in a cascade.
func (e *Engine) ruleSetPath(abs, rel string) string {
	if e.RuleSet.Dir == "" {
		return rel
	}
	r, err := filepath.Rel(e.RuleSet.Dir, abs)
	if err != nil || strings.HasPrefix(r, "..") {
		return rel
	}
	return filepath.ToSlash(r)
}

func (e *Engine) extensions() map[string]bool {
	list := e.Extensions
	if len(list) == 0 {
		list = DefaultExtensions
	}
	out := make(map[string]bool, len(list))
	for _, ext := range list {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out[ext] = true
	}
	return out
}

func sameRules(base map[string]descriptor.RuleSetting, rs *resolve.RuleSet) bool {
	return reflect.DeepEqual(base, rs.Rules)
}
