package segment

import (
	"testing"

	"github.com/mako10k/logpilot/internal/logmodel"
)

func TestSegmentThreeIdenticalWarnings(t *testing.T) {
	lines := []string{"warning: foo", "warning: foo", "warning: foo"}
	segs := Segment(lines, nil)
	if len(segs) != 1 {
		t.Fatalf("want 1 segment, got %d: %+v", len(segs), segs)
	}
	if segs[0].Start != 0 || segs[0].End != 2 {
		t.Fatalf("want segment covering 0-2, got %d-%d", segs[0].Start, segs[0].End)
	}
	if segs[0].Type != logmodel.SegWarning {
		t.Fatalf("want WARNING, got %s", segs[0].Type)
	}
}

func TestSegmentMixedProgressAndError(t *testing.T) {
	lines := []string{
		"[1/3] Building a",
		"error: bad thing",
		"[2/3] Building b",
		"[3/3] Building c",
	}
	segs := Segment(lines, nil)
	if len(segs) != 3 {
		t.Fatalf("want 3 segments, got %d: %+v", len(segs), segs)
	}
	if segs[0].Type != logmodel.SegBuildProgress || segs[0].Start != 0 || segs[0].End != 0 {
		t.Fatalf("seg0 = %+v, want BUILD_PROGRESS 0-0", segs[0])
	}
	if segs[1].Type != logmodel.SegError || segs[1].Start != 1 || segs[1].End != 1 {
		t.Fatalf("seg1 = %+v, want ERROR 1-1", segs[1])
	}
	if segs[2].Type != logmodel.SegBuildProgress || segs[2].Start != 2 || segs[2].End != 3 {
		t.Fatalf("seg2 = %+v, want BUILD_PROGRESS 2-3", segs[2])
	}
}

func TestSegmentTabularBlock(t *testing.T) {
	lines := []string{
		"",
		"FLASH:   12345   bytes",
		"RAM:     6789    bytes",
		"IDT:     42      bytes",
		"BSS:     99       bytes",
		"TEXT:    1        bytes",
		"",
	}
	segs := Segment(lines, nil)
	if len(segs) != 1 {
		t.Fatalf("want 1 segment, got %d: %+v", len(segs), segs)
	}
	if segs[0].Type != logmodel.SegData {
		t.Fatalf("want DATA, got %s", segs[0].Type)
	}
	if segs[0].Start != 1 || segs[0].End != 5 {
		t.Fatalf("want segment covering 1-5, got %d-%d", segs[0].Start, segs[0].End)
	}
}

func TestSegmentsCoverAllNonBlankLines(t *testing.T) {
	lines := []string{
		"normal line one",
		"",
		"error: something broke",
		"  detail line",
		"",
		"warning: minor issue",
	}
	segs := Segment(lines, nil)

	covered := make([]bool, len(lines))
	for _, s := range segs {
		if s.Start > s.End {
			t.Fatalf("segment has start > end: %+v", s)
		}
		for i := s.Start; i <= s.End; i++ {
			if covered[i] {
				t.Fatalf("line %d covered by more than one segment", i)
			}
			covered[i] = true
		}
	}
	for i, l := range lines {
		if IsBlank(l) {
			continue
		}
		if !covered[i] {
			t.Fatalf("non-blank line %d (%q) not covered by any segment", i, l)
		}
	}

	for i := 1; i < len(segs); i++ {
		if segs[i].Start <= segs[i-1].Start {
			t.Fatalf("segments not monotonically ordered by start: %+v then %+v", segs[i-1], segs[i])
		}
	}
}

func TestIsBuildProgress(t *testing.T) {
	cases := map[string]bool{
		"[1/3] Building a":   true,
		"  [12/345] Linking": true,
		"1/3 Building a":     false,
		"not progress":       false,
		"[a/b] nope":         false,
	}
	for line, want := range cases {
		if got := IsBuildProgress(line); got != want {
			t.Errorf("IsBuildProgress(%q) = %v, want %v", line, got, want)
		}
	}
}

func TestIndentOf(t *testing.T) {
	if got := IndentOf("\tfoo"); got != 4 {
		t.Errorf("IndentOf(tab) = %d, want 4", got)
	}
	if got := IndentOf("  foo"); got != 2 {
		t.Errorf("IndentOf(2 spaces) = %d, want 2", got)
	}
}

func TestLineFateOrdering(t *testing.T) {
	mode := &logmodel.ModeProfile{
		DropContains:     []string{"noise"},
		KeepOnceContains: []string{"repeat-me"},
	}
	if got := LineFate("", mode); got != Drop {
		t.Errorf("blank line fate = %v, want Drop", got)
	}
	if got := LineFate("error: bad", mode); got != Keep {
		t.Errorf("error line fate = %v, want Keep", got)
	}
	if got := LineFate("some noise here", mode); got != Drop {
		t.Errorf("drop_contains line fate = %v, want Drop", got)
	}
	if got := LineFate("repeat-me please", mode); got != KeepOnce {
		t.Errorf("keep_once_contains line fate = %v, want KeepOnce", got)
	}
	if got := LineFate("[1/2] Building", mode); got != Drop {
		t.Errorf("progress line fate = %v, want Drop", got)
	}
}
