package ignore

import "testing"

func TestMatcher_DefaultAndUserOverrides(t *testing.T) {
	m := NewMatcher([]string{
		"fixtures/**",
		"!fixtures/keep/app.ts",
		"*.log",
	})

	cases := []struct {
		path    string
		isDir   bool
		ignored bool
	}{
		{path: ".git/config", isDir: false, ignored: true},
		{path: ".crewkit/snapshot.json", isDir: false, ignored: true},
		{path: "node_modules/pkg/index.js", isDir: false, ignored: true},
		{path: "fixtures/sample/app.ts", isDir: false, ignored: true},
		{path: "fixtures/keep/app.ts", isDir: false, ignored: false},
		{path: "nested/debug.log", isDir: false, ignored: true},
		{path: "src/main.ts", isDir: false, ignored: false},
	}

	for _, tc := range cases {
		got := m.ShouldIgnore(tc.path, tc.isDir)
		if got != tc.ignored {
			t.Fatalf("path %s: expected ignored=%v, got %v", tc.path, tc.ignored, got)
		}
	}
}

func TestMatcher_NegatedDirectoryRule(t *testing.T) {
	m := NewMatcher([]string{
		"generated/",
		"!generated/schema/",
	})

	if !m.ShouldIgnore("generated/out/client.ts", false) {
		t.Fatalf("expected generated/out/client.ts to be ignored")
	}
	if m.ShouldIgnore("generated/schema/types.ts", false) {
		t.Fatalf("expected generated/schema/types.ts to be included")
	}
}

func TestMatcher_AnchoredRule(t *testing.T) {
	m := NewMatcher([]string{"/docs"})

	if !m.ShouldIgnore("docs", true) {
		t.Fatalf("expected top-level docs to be ignored")
	}
	if m.ShouldIgnore("packages/web/docs", true) {
		t.Fatalf("expected nested docs to be included for anchored rule")
	}
}
