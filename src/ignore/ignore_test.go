package ignore

import "testing"

func TestValidatePattern(t *testing.T) {
	valid := []string{"dist", "node_modules", "src-tauri", "/build/", "**/*.min.js", "!keep.js", "lib/[a-z]*.js"}
	for _, p := range valid {
		if err := ValidatePattern(p); err != nil {
			t.Errorf("ValidatePattern(%q) = %v, want nil", p, err)
		}
	}
	invalid := []string{"", "   ", "!", "/", "src/[a-", "a//b", `trailing\`}
	for _, p := range invalid {
		if err := ValidatePattern(p); err == nil {
			t.Errorf("ValidatePattern(%q) = nil, want error", p)
		}
	}
}

func TestMatch(t *testing.T) {
	m := New([]Pattern{
		{Text: "dist"},
		{Text: "node_modules"},
		{Text: "src-tauri"},
		{Text: "*.min.js"},
		{Text: "!vendor.min.js"},
		{Text: "/coverage/"},
		{Text: "generated", Base: "packages/app"},
	})

	tests := []struct {
		path    string
		isDir   bool
		ignored bool
		pattern string
	}{
		{"src/main.ts", false, false, ""},
		{"dist", true, true, "dist"},
		{"dist/index.js", false, true, "dist"},
		{"src-tauri/src/main.rs", false, true, "src-tauri"},
		{"src-tauri/tauri.conf.json", false, true, "src-tauri"},
		{"packages/ui/node_modules/lib/index.js", false, true, "node_modules"},
		{"public/app.min.js", false, true, "*.min.js"},
		{"public/vendor.min.js", false, false, ""},
		{"coverage/lcov.info", false, true, "/coverage/"},
		{"src/coverage/report.ts", false, false, ""},
		{"packages/app/generated/api.ts", false, true, "generated"},
		{"packages/lib/generated/api.ts", false, false, ""},
	}
	for _, tt := range tests {
		p, ignored := m.Match(tt.path, tt.isDir)
		if ignored != tt.ignored {
			t.Errorf("Match(%q) ignored = %v, want %v", tt.path, ignored, tt.ignored)
			continue
		}
		if ignored && p.Text != tt.pattern {
			t.Errorf("Match(%q) pattern = %q, want %q", tt.path, p.Text, tt.pattern)
		}
	}
}

func TestMatchSkipsInvalid(t *testing.T) {
	m := New([]Pattern{{Text: "[oops"}, {Text: "dist"}})
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
	if _, ignored := m.Match(".", true); ignored {
		t.Error("root must never be ignored")
	}
}

func TestPatternString(t *testing.T) {
	if got := (Pattern{Text: "dist", Base: "web"}).String(); got != "web: dist" {
		t.Errorf("String() = %q", got)
	}
	if got := (Pattern{Text: "dist"}).String(); got != "dist" {
		t.Errorf("String() = %q", got)
	}
}
