package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"github.com/sofmeright/lintrc/src/catalog"
	"github.com/sofmeright/lintrc/src/descriptor"
	"github.com/sofmeright/lintrc/src/resolve"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func loadRuleSet(t *testing.T, dir string) *resolve.RuleSet {
	t.Helper()
	cat := catalog.Builtin()
	chain, _, err := resolve.LoadChain(dir, cat)
	require.NoError(t, err)
	rs, err := resolve.ResolveChain(chain, cat)
	require.NoError(t, err)
	return rs
}

func seedProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".eslintrc.json"), `{
  "root": true,
  "env": {"browser": true},
  "parser": "espree",
  "rules": {"no-var": "error", "no-console": "warn"},
  "overrides": [{"files": ["*.test.js"], "rules": {"no-console": "off"}}],
  "ignorePatterns": ["dist", "src-tauri", "*.min.js"]
}`)
	writeFile(t, filepath.Join(dir, "src", "main.js"), "var x = 1\n")
	writeFile(t, filepath.Join(dir, "src", "main.test.js"), "")
	writeFile(t, filepath.Join(dir, "src", "vendor.min.js"), "")
	writeFile(t, filepath.Join(dir, "src", "styles.css"), "")
	writeFile(t, filepath.Join(dir, "dist", "bundle.js"), "")
	writeFile(t, filepath.Join(dir, "src-tauri", "src", "main.rs"), "")
	writeFile(t, filepath.Join(dir, "src-tauri", "build.js"), "")
	writeFile(t, filepath.Join(dir, "node_modules", "vue", "index.js"), "")
	writeFile(t, filepath.Join(dir, ".cache", "x.js"), "")
	return dir
}

func TestIgnoredPathsAreExcluded(t *testing.T) {
	dir := seedProject(t)
	e := &Engine{RuleSet: loadRuleSet(t, dir), RootDir: dir, Concurrency: 2}

	report, err := e.Run(context.Background())
	require.NoError(t, err)

	var excluded []string
	for _, x := range report.Excluded {
		excluded = append(excluded, x.Path)
	}
	require.Equal(t, []string{"dist", "node_modules", "src-tauri", "src/vendor.min.js"}, excluded)
	require.Equal(t, "*.min.js", report.Excluded[3].Pattern.Text)
	require.True(t, report.Excluded[0].IsDir)

	var included []string
	for _, f := range report.Included {
		included = append(included, f.Path)
	}
	require.Equal(t, []string{"src/main.js", "src/main.test.js"}, included)
	require.Equal(t, 1, report.Skipped)

	main, test := report.Included[0], report.Included[1]
	require.False(t, main.Scoped)
	require.Equal(t, 2, main.Rules)
	require.True(t, test.Scoped)
	require.Equal(t, 1, test.Error)
	require.Equal(t, 0, test.Warn)
}

// Exclusion does not depend on rule configuration: a descriptor with
// every rule off still excludes the same paths.
func TestExclusionIgnoresRuleSeverity(t *testing.T) {
	cat := catalog.Builtin()
	d, err := descriptor.Parse([]byte(`{"env": {}, "parser": "espree", "rules": {"no-var": "off"}, "ignorePatterns": ["dist"]}`), descriptor.FormatJSON)
	require.NoError(t, err)
	rs, err := resolve.Resolve(d, cat)
	require.NoError(t, err)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "dist", "a.js"), "")
	writeFile(t, filepath.Join(dir, "a.js"), "")

	report, err := (&Engine{RuleSet: rs, RootDir: dir}).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Excluded, 1)
	require.Equal(t, "dist", report.Excluded[0].Path)
	require.Len(t, report.Included, 1)
	require.Equal(t, 0, report.Included[0].Rules)
}

func TestExtensionsAndChangedFilter(t *testing.T) {
	dir := seedProject(t)
	e := &Engine{
		RuleSet:    loadRuleSet(t, dir),
		RootDir:    dir,
		Extensions: []string{"css", ".JS"},
		Changed:    map[string]bool{"src/styles.css": true},
	}
	report, err := e.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Included, 1)
	require.Equal(t, "src/styles.css", report.Included[0].Path)
	require.Equal(t, 2, report.Unchanged)
}

func TestScanSubdirectoryUsesRuleSetBase(t *testing.T) {
	dir := seedProject(t)
	rs := loadRuleSet(t, dir)
	report, err := (&Engine{RuleSet: rs, RootDir: filepath.Join(dir, "src")}).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Excluded, 1)
	require.Equal(t, "vendor.min.js", report.Excluded[0].Path)
}

func TestCancelledContext(t *testing.T) {
	dir := seedProject(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&Engine{RuleSet: loadRuleSet(t, dir), RootDir: dir}).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestDeltaChangedFiles(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	writeFile(t, filepath.Join(dir, "web", "a.js"), "a\n")
	writeFile(t, filepath.Join(dir, "web", "b.js"), "b\n")
	writeFile(t, filepath.Join(dir, "other", "c.js"), "c\n")
	_, err = wt.Add(".")
	require.NoError(t, err)
	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "dev", Email: "dev@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	head, err := repo.Head()
	require.NoError(t, err)
	t.Setenv(TargetBranchEnv, head.Name().Short())

	writeFile(t, filepath.Join(dir, "web", "a.js"), "changed\n")
	writeFile(t, filepath.Join(dir, "other", "c.js"), "changed\n")

	changed, err := (&Delta{RootDir: filepath.Join(dir, "web")}).ChangedFiles(context.Background())
	require.NoError(t, err)
	require.Equal(t, map[string]bool{"a.js": true}, changed)
}

func TestDeltaOutsideRepository(t *testing.T) {
	changed, err := (&Delta{RootDir: t.TempDir()}).ChangedFiles(context.Background())
	require.NoError(t, err)
	require.Nil(t, changed)
}
