package fixmatch

import (
	"testing"

	"github.com/mako10k/logpilot/internal/logmodel"
)

func TestConfidenceRegexHit(t *testing.T) {
	entry := logmodel.FixEntry{Pattern: "undefined reference", Regex: "undefined reference to `\\w+'"}
	got := Confidence("undefined reference to `spi_init'", entry)
	if got != 0.9 {
		t.Errorf("Confidence() = %v, want 0.9 for a regex hit", got)
	}
}

func TestConfidenceDirectSubstringHit(t *testing.T) {
	// Scenario 6: a direct case-insensitive substring match must win over
	// the LCS fallback and score 0.85, even when the LCS ratio alone
	// would also be high.
	entry := logmodel.FixEntry{Pattern: "No rule to make target"}
	got := Confidence("make: *** No rule to make target 'foo.o'.  Stop.", entry)
	if got != 0.85 {
		t.Errorf("Confidence() = %v, want 0.85 for direct substring match", got)
	}
}

func TestConfidenceFallsBackToLCSRatio(t *testing.T) {
	// The literal byte counts differ (1024 vs 2048) so the direct
	// substring check misses, but digit-run collapsing in
	// normalizeForMatch makes the surrounding text match contiguously.
	entry := logmodel.FixEntry{Pattern: "failed to allocate 1024 bytes"}
	got := Confidence("malloc failed to allocate 2048 bytes for buffer", entry)
	if got <= 0 || got >= 0.85 {
		t.Errorf("Confidence() = %v, want a partial LCS-derived score strictly between 0 and 0.85", got)
	}
}

func TestConfidenceNoOverlapIsZero(t *testing.T) {
	entry := logmodel.FixEntry{Pattern: "backup"}
	got := Confidence("something else entirely", entry)
	if got != 0 {
		t.Errorf("Confidence() = %v, want 0 for no overlap after normalization", got)
	}
}

func TestMatchFiltersByThresholdAndSortsDescending(t *testing.T) {
	entries := []logmodel.FixEntry{
		{Pattern: "No rule to make target"},
		{Pattern: "completely unrelated text"},
	}
	matches := Match("make: *** No rule to make target 'foo.o'.", entries, DefaultThreshold)
	if len(matches) != 1 {
		t.Fatalf("Match() returned %d matches, want 1", len(matches))
	}
	if matches[0].Entry.Pattern != "No rule to make target" {
		t.Errorf("Match()[0] = %q, want the matching entry", matches[0].Entry.Pattern)
	}
}

func TestSuggestReturnsLimitedClosestPatterns(t *testing.T) {
	entries := []logmodel.FixEntry{
		{Pattern: "undefined reference to spi_init"},
		{Pattern: "undefined reference to i2c_init"},
		{Pattern: "flash overflow"},
	}
	got := Suggest("undefined reference to spi_xyz", entries, 2)
	if len(got) > 2 {
		t.Errorf("Suggest() returned %d entries, want at most 2", len(got))
	}
}

func TestLongestCommonSubstringContiguousNotSubsequence(t *testing.T) {
	// "abcxyz" and "xyzabc" share both "abc" and "xyz" contiguously (len 3)
	// but no longer contiguous run, even though as a subsequence the
	// overlap would be the full 6 characters.
	if got := longestCommonSubstring("abcxyz", "xyzabc"); got != 3 {
		t.Errorf("longestCommonSubstring() = %d, want 3", got)
	}
}
