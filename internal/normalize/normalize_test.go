package normalize

import "testing"

func TestLineCollapsesWhitespace(t *testing.T) {
	got := Line("foo   bar\tbaz", nil)
	want := "foo bar baz"
	if got != want {
		t.Errorf("Line() = %q, want %q", got, want)
	}
}

func TestLineTrimsEnds(t *testing.T) {
	got := Line("   padded   ", nil)
	if got != "padded" {
		t.Errorf("Line() = %q, want %q", got, "padded")
	}
}

func TestLineAppliesStripPatterns(t *testing.T) {
	got := Line("[10:23:45] build failed", []string{`^\[\d{2}:\d{2}:\d{2}\]`})
	if got != "build failed" {
		t.Errorf("Line() = %q, want %q", got, "build failed")
	}
}

func TestLineSkipsInvalidStripPattern(t *testing.T) {
	got := Line("foo bar", []string{"("})
	if got != "foo bar" {
		t.Errorf("Line() with invalid pattern = %q, want unchanged %q", got, "foo bar")
	}
}

func TestLineMultipleStripPatternsApplySequentially(t *testing.T) {
	got := Line("[INFO] 2024-01-01 build ok", []string{`^\[INFO\]`, `\d{4}-\d{2}-\d{2}`})
	if got != "build ok" {
		t.Errorf("Line() = %q, want %q", got, "build ok")
	}
}
