package token

import "testing"

func TestEstimateEmptyString(t *testing.T) {
	if got := Estimate(""); got != 1 {
		t.Errorf("Estimate(\"\") = %d, want 1", got)
	}
}

func TestEstimateGrowsWithLength(t *testing.T) {
	short := Estimate("error")
	long := Estimate("this is a considerably longer error message with many words")
	if long <= short {
		t.Errorf("Estimate(long)=%d should exceed Estimate(short)=%d", long, short)
	}
}

func TestEstimateLinesIncludesNewlineAllowance(t *testing.T) {
	lines := []string{"foo", "bar", "baz"}
	joined := EstimateJoined(lines)
	separate := EstimateLines(lines)
	if separate < joined {
		t.Errorf("EstimateLines=%d should be >= EstimateJoined=%d (newline allowance)", separate, joined)
	}
}

func TestEstimateLinesEmpty(t *testing.T) {
	if got := EstimateLines(nil); got != 0 {
		t.Errorf("EstimateLines(nil) = %d, want 0", got)
	}
}
