package output

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sofmeright/lintrc/src/descriptor"
	"github.com/sofmeright/lintrc/src/resolve"
)

// ReportDir is where CI reports are written, relative to the working
// directory.
const ReportDir = ".lintrc/reports"

// CI environment detection.

func IsCI() bool {
	return os.Getenv("CI") == "true"
}

func IsGitLabCI() bool {
	return os.Getenv("GITLAB_CI") == "true"
}

// GitLab collapsible section helpers. They write nothing outside GitLab.

func SectionStart(w io.Writer, id, name string) {
	sectionMarker(w, "section_start", id, name)
}

func SectionEnd(w io.Writer, id string) {
	sectionMarker(w, "section_end", id, "")
}

// SectionStartCollapsed starts a section that is collapsed by default.
func SectionStartCollapsed(w io.Writer, id, name string) {
	sectionMarker(w, "section_start", id+"[collapsed=true]", name)
}

func sectionMarker(w io.Writer, kind, id, name string) {
	if !IsGitLabCI() {
		return
	}
	fmt.Fprintf(w, "\033[0K%s:%d:%s\r\033[0K%s\n", kind, time.Now().Unix(), id, name)
}

// CIHeader prints the pipeline context at the start of a CI run.
func CIHeader(w io.Writer) {
	if !IsCI() {
		return
	}
	var parts []string
	if ref := firstEnv("CI_COMMIT_REF_NAME", "GITHUB_REF_NAME"); ref != "" {
		parts = append(parts, "ref="+ref)
	}
	if sha := firstEnv("CI_COMMIT_SHA", "GITHUB_SHA"); len(sha) >= 8 {
		parts = append(parts, "sha="+sha[:8])
	}
	if pipe := firstEnv("CI_PIPELINE_ID", "GITHUB_RUN_ID"); pipe != "" {
		parts = append(parts, "pipeline="+pipe)
	}
	if len(parts) > 0 {
		fmt.Fprintf(w, "  ci: %s\n", strings.Join(parts, "  "))
	}
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// JUnit XML types for CI test reporting.

type JUnitTestSuites struct {
	XMLName  xml.Name         `xml:"testsuites"`
	Name     string           `xml:"name,attr"`
	Tests    int              `xml:"tests,attr"`
	Failures int              `xml:"failures,attr"`
	Time     string           `xml:"time,attr"`
	Suites   []JUnitTestSuite `xml:"testsuite"`
}

type JUnitTestSuite struct {
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Time     string          `xml:"time,attr"`
	Cases    []JUnitTestCase `xml:"testcase"`
}

type JUnitTestCase struct {
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      string        `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	SystemOut string        `xml:"system-out,omitempty"`
}

type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// CheckResult is the outcome of checking one descriptor.
type CheckResult struct {
	Path     string
	Err      error
	Warnings []resolve.Warning
	Elapsed  time.Duration
}

// checkKinds are the test cases written for every descriptor, one per
// error kind, so a report shows which categories passed.
var checkKinds = []error{
	descriptor.ErrMalformedDescriptor,
	descriptor.ErrUnknownPreset,
	descriptor.ErrUnknownPlugin,
	descriptor.ErrUnknownEnvironment,
	descriptor.ErrUnknownParser,
	descriptor.ErrUnknownRule,
	descriptor.ErrInvalidSeverity,
	descriptor.ErrInvalidGlobPattern,
}

// CheckSuites converts check results to JUnit suites: one suite per
// descriptor, one case per error kind. Errors that are not validation
// errors count as malformed. Warnings go to the system-out of the first
// case and never fail it.
func CheckSuites(results []CheckResult, elapsed time.Duration) JUnitTestSuites {
	root := JUnitTestSuites{
		Name: "lintrc-check",
		Time: fmt.Sprintf("%.3f", elapsed.Seconds()),
	}
	for _, r := range results {
		byKind := make(map[error][]string)
		var list descriptor.ValidationErrors
		switch {
		case r.Err == nil:
		case errors.As(r.Err, &list):
			for _, e := range list {
				byKind[e.Err] = append(byKind[e.Err], problemText(e.Field, e.Msg))
			}
		default:
			byKind[descriptor.ErrMalformedDescriptor] = append(byKind[descriptor.ErrMalformedDescriptor], r.Err.Error())
		}

		suite := JUnitTestSuite{
			Name: "lintrc/check/" + filepath.ToSlash(r.Path),
			Time: fmt.Sprintf("%.3f", r.Elapsed.Seconds()),
		}
		for i, kind := range checkKinds {
			tc := JUnitTestCase{
				Name:      kind.Error(),
				Classname: "lintrc.check." + filepath.Base(r.Path),
				Time:      "0.000",
			}
			if problems := byKind[kind]; len(problems) > 0 {
				tc.Failure = &JUnitFailure{
					Message: fmt.Sprintf("%d problem(s) in %s", len(problems), r.Path),
					Type:    kind.Error(),
					Body:    strings.Join(problems, "\n"),
				}
				suite.Failures++
			}
			if i == 0 && len(r.Warnings) > 0 {
				lines := make([]string, len(r.Warnings))
				for j, w := range r.Warnings {
					lines[j] = "warning: " + w.String()
				}
				tc.SystemOut = strings.Join(lines, "\n")
			}
			suite.Cases = append(suite.Cases, tc)
			suite.Tests++
		}
		root.Tests += suite.Tests
		root.Failures += suite.Failures
		root.Suites = append(root.Suites, suite)
	}
	return root
}

// WriteCheckJUnit writes check results to dir/check.xml.
func WriteCheckJUnit(dir string, results []CheckResult, elapsed time.Duration) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating report dir: %w", err)
	}
	path := filepath.Join(dir, "check.xml")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.WriteString(f, xml.Header); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	enc := xml.NewEncoder(f)
	enc.Indent("", "  ")
	if err := enc.Encode(CheckSuites(results, elapsed)); err != nil {
		return fmt.Errorf("encoding junit xml: %w", err)
	}
	_, err = io.WriteString(f, "\n")
	return err
}
