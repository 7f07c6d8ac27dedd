package mode

import (
	"testing"

	"github.com/mako10k/logpilot/internal/logmodel"
)

func TestDetectFallsBackToGeneric(t *testing.T) {
	lines := []string{"hello", "world"}
	got := Detect(lines, nil)
	if got != logmodel.GenericModeName {
		t.Errorf("Detect() = %q, want %q", got, logmodel.GenericModeName)
	}
}

func TestDetectPicksHighestScoringProfile(t *testing.T) {
	profiles := []logmodel.ModeProfile{
		{Name: "zephyr", Signatures: []string{"-- Zephyr version", "west build"}},
		{Name: "cmake", Signatures: []string{"CMake Error"}},
	}
	lines := []string{
		"-- Zephyr version: 3.5.0",
		"west build configured",
		"building application",
	}
	got := Detect(lines, profiles)
	if got != "zephyr" {
		t.Errorf("Detect() = %q, want %q", got, "zephyr")
	}
}

func TestDetectTieBrokenByFirstLoaded(t *testing.T) {
	profiles := []logmodel.ModeProfile{
		{Name: "first", Signatures: []string{"marker"}},
		{Name: "second", Signatures: []string{"marker"}},
	}
	lines := []string{"a line with marker in it"}
	got := Detect(lines, profiles)
	if got != "first" {
		t.Errorf("Detect() tie = %q, want %q", got, "first")
	}
}

func TestFindReturnsNilWhenMissing(t *testing.T) {
	if got := Find("nonexistent", nil); got != nil {
		t.Errorf("Find() = %v, want nil", got)
	}
}

func TestSuggestDraftsSignaturesAndBoilerplate(t *testing.T) {
	lines := []string{
		"== starting build ==",
		"compiling foo.c",
		"repeated boilerplate line",
		"repeated boilerplate line",
		"repeated boilerplate line",
		"repeated boilerplate line",
	}
	draft := Suggest(lines)
	if draft.Name != "draft" {
		t.Errorf("Suggest().Name = %q, want %q", draft.Name, "draft")
	}
	if len(draft.Signatures) == 0 {
		t.Error("Suggest() produced no signatures")
	}
	found := false
	for _, p := range draft.BoilerplatePatterns {
		if p == "repeated boilerplate line" {
			found = true
		}
	}
	if !found {
		t.Errorf("Suggest().BoilerplatePatterns = %v, want to include the repeated line", draft.BoilerplatePatterns)
	}
}
