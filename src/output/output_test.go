package output

import (
	"bytes"
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sofmeright/lintrc/src/catalog"
	"github.com/sofmeright/lintrc/src/descriptor"
	"github.com/sofmeright/lintrc/src/ignore"
	"github.com/sofmeright/lintrc/src/resolve"
	"github.com/sofmeright/lintrc/src/scan"
)

func resolved(t *testing.T, src string) *resolve.RuleSet {
	t.Helper()
	d, err := descriptor.Parse([]byte(src), descriptor.FormatJSON)
	require.NoError(t, err)
	rs, err := resolve.Resolve(d, catalog.Builtin())
	require.NoError(t, err)
	return rs
}

func TestSectionFrame(t *testing.T) {
	var buf bytes.Buffer
	sec := NewSection(&buf, "Check", 1500*time.Millisecond, false)
	sec.Row("hello %d", 1)
	sec.Separator()
	sec.Close()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	require.True(t, strings.HasPrefix(lines[0], "── Check ─"))
	require.True(t, strings.HasSuffix(lines[0], " 1.5s ──"))
	require.Equal(t, "    │ hello 1", lines[1])
	require.True(t, strings.HasPrefix(lines[2], "    ├─"))
	require.True(t, strings.HasPrefix(lines[3], "    └─"))
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Microsecond, "<1ms"},
		{42 * time.Millisecond, "42ms"},
		{2500 * time.Millisecond, "2.5s"},
		{90 * time.Second, "1m30.0s"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, formatElapsed(tt.d), tt.d.String())
	}
}

func TestStatusIconPlain(t *testing.T) {
	require.Equal(t, "✓", StatusIcon("success", false))
	require.Equal(t, "✗", StatusIcon("failed", false))
	require.Equal(t, "⊘", StatusIcon("skipped", false))
	require.Equal(t, colorGreen+"✓"+colorReset, StatusIcon("success", true))
}

func TestRuleTable(t *testing.T) {
	rs := resolved(t, `{"env": {}, "parser": "espree", "rules": {"no-var": "error", "quotes": ["warn", "single"]}}`)
	var buf bytes.Buffer
	RuleTable(NewSection(&buf, "Rules", 0, false), rs, false)

	out := buf.String()
	require.Contains(t, out, "no-var  error  <descriptor>")
	require.Contains(t, out, `quotes  warn   <descriptor>  ["single"]`)
}

func TestRuleSetContext(t *testing.T) {
	rs := resolved(t, `{"env": {"browser": true}, "parser": "espree", "parserOptions": {"ecmaVersion": 2022}, "rules": {"no-var": "error"}}`)
	kv := RuleSetContext(rs)
	got := make(map[string]string, len(kv))
	for _, e := range kv {
		got[e.Key] = e.Value
	}
	require.Equal(t, "espree", got["parser"])
	require.Equal(t, "2022", got["ecma"])
	require.Equal(t, "browser", got["env"])
	require.Equal(t, "1 (1 error, 0 warn)", got["rules"])
	require.Equal(t, "-", got["plugins"])
}

func TestProblems(t *testing.T) {
	var errs descriptor.ValidationErrors
	errs.Add(descriptor.ErrUnknownRule, "rules.nope", "unknown rule")
	errs.Add(descriptor.ErrInvalidSeverity, "rules.no-var", "")

	var buf bytes.Buffer
	sec := NewSection(&buf, "Problems", 0, false)
	Problems(sec, errs.Err(), []resolve.Warning{{Field: "rules.no-new-object", Msg: "rule is deprecated"}}, false)

	out := buf.String()
	require.Contains(t, out, "error  UnknownRule          rules.nope: unknown rule")
	require.Contains(t, out, "error  InvalidSeverity      rules.no-var")
	require.Contains(t, out, "warn   rules.no-new-object: rule is deprecated")
	require.Equal(t, 2, CountProblems(errs.Err()))
	require.Equal(t, 1, CountProblems(errors.New("boom")))
	require.Equal(t, 0, CountProblems(nil))
}

func TestCheckSummaryLine(t *testing.T) {
	require.Equal(t, "1 descriptor: no problems", CheckSummaryLine(1, 0, 0, false))
	require.Equal(t, "2 descriptors: 3 errors, 1 warning", CheckSummaryLine(2, 3, 1, false))
}

func TestScanTable(t *testing.T) {
	r := &scan.Report{
		Excluded: []scan.Excluded{{Path: "dist", IsDir: true, Pattern: ignore.Pattern{Text: "dist"}}},
		Included: []scan.File{{Path: "a.test.js", Rules: 1, Error: 1, Scoped: true}},
		Skipped:  2,
	}
	var buf bytes.Buffer
	ScanTable(NewSection(&buf, "Scan", 0, false), r, true, false)
	out := buf.String()
	require.Contains(t, out, "excluded  dist/")
	require.Contains(t, out, "included  a.test.js")
	require.Contains(t, out, "1 rules (1 error, 0 warn) override")
	require.Equal(t, "1 included, 1 excluded, 2 skipped", ScanSummaryLine(r))
}

func TestCheckSuites(t *testing.T) {
	var errs descriptor.ValidationErrors
	errs.Add(descriptor.ErrUnknownRule, "rules.a", "")
	errs.Add(descriptor.ErrUnknownRule, "rules.b", "")
	results := []CheckResult{
		{Path: "web/.eslintrc.json", Err: errs.Err(), Warnings: []resolve.Warning{{Field: "rules.x", Msg: "deprecated"}}},
		{Path: "api/.eslintrc.yml", Err: errors.New("reading: permission denied")},
		{Path: "ok/.eslintrc.json"},
	}
	suites := CheckSuites(results, time.Second)

	require.Len(t, suites.Suites, 3)
	require.Equal(t, 3*len(checkKinds), suites.Tests)
	require.Equal(t, 2, suites.Failures)

	web := suites.Suites[0]
	require.Equal(t, "lintrc/check/web/.eslintrc.json", web.Name)
	require.Equal(t, 1, web.Failures)
	require.Contains(t, web.Cases[0].SystemOut, "warning: rules.x: deprecated")
	for _, tc := range web.Cases {
		if tc.Name == "UnknownRule" {
			require.NotNil(t, tc.Failure)
			require.Equal(t, "rules.a\nrules.b", tc.Failure.Body)
		} else {
			require.Nil(t, tc.Failure, tc.Name)
		}
	}

	api := suites.Suites[1]
	require.Equal(t, "MalformedDescriptor", api.Cases[0].Name)
	require.NotNil(t, api.Cases[0].Failure)
	require.Equal(t, 0, suites.Suites[2].Failures)
}

func TestWriteCheckJUnit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	require.NoError(t, WriteCheckJUnit(dir, []CheckResult{{Path: ".eslintrc.json"}}, time.Millisecond))

	data, err := os.ReadFile(filepath.Join(dir, "check.xml"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), xml.Header))

	var got JUnitTestSuites
	require.NoError(t, xml.Unmarshal(data, &got))
	require.Equal(t, "lintrc-check", got.Name)
	require.Equal(t, len(checkKinds), got.Tests)
	require.Zero(t, got.Failures)
}

func TestGitLabSectionsOnlyInGitLab(t *testing.T) {
	t.Setenv("GITLAB_CI", "")
	var buf bytes.Buffer
	SectionStart(&buf, "lintrc_check", "Check")
	SectionEnd(&buf, "lintrc_check")
	require.Empty(t, buf.String())

	t.Setenv("GITLAB_CI", "true")
	SectionStartCollapsed(&buf, "lintrc_rules", "Rules")
	require.Contains(t, buf.String(), "section_start:")
	require.Contains(t, buf.String(), "lintrc_rules[collapsed=true]")
}
