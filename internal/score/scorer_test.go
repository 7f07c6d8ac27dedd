package score

import (
	"testing"

	"github.com/mako10k/logpilot/internal/dedup"
	"github.com/mako10k/logpilot/internal/logmodel"
)

func TestScoreBaseByType(t *testing.T) {
	lines := []string{"plain line"}
	segments := []logmodel.Segment{
		{Start: 0, End: 0, Type: logmodel.SegError},
		{Start: 0, End: 0, Type: logmodel.SegWarning},
		{Start: 0, End: 0, Type: logmodel.SegNormal},
	}
	Score(segments, lines, nil, nil, nil)

	if segments[0].Score != 10 {
		t.Errorf("ERROR base score = %v, want 10", segments[0].Score)
	}
	if segments[1].Score != 5 {
		t.Errorf("WARNING base score = %v, want 5", segments[1].Score)
	}
	if segments[2].Score != 0 {
		t.Errorf("NORMAL base score = %v, want 0", segments[2].Score)
	}
}

func TestScoreExtraKeywordBonus(t *testing.T) {
	lines := []string{"undefined reference to spi_init"}
	segments := []logmodel.Segment{{Start: 0, End: 0, Type: logmodel.SegNormal}}

	Score(segments, lines, nil, nil, []string{"spi_init"})
	if segments[0].Score != 3 {
		t.Errorf("score with matching extra keyword = %v, want 3", segments[0].Score)
	}
}

func TestScoreModeKeywordAndBlockTriggerBonus(t *testing.T) {
	lines := []string{"linker error: undefined symbol"}
	segments := []logmodel.Segment{{Start: 0, End: 0, Type: logmodel.SegNormal}}
	m := &logmodel.ModeProfile{
		Keywords:      []string{"linker error"},
		BlockTriggers: []string{"undefined symbol"},
	}

	Score(segments, lines, nil, m, nil)
	if segments[0].Score != 4 {
		t.Errorf("score with keyword+block-trigger = %v, want 4", segments[0].Score)
	}
}

func TestScoreFrequencyOutlierBonus(t *testing.T) {
	lines := []string{"rare line only once"}
	tbl := dedup.New()
	tbl.Insert(lines[0], 0, nil)
	segments := []logmodel.Segment{{Start: 0, End: 0, Type: logmodel.SegNormal}}

	Score(segments, lines, tbl, nil, nil)
	if segments[0].Score != 2 {
		t.Errorf("score for unique line = %v, want base(0)+outlier(2)=2", segments[0].Score)
	}
}

func TestStableSortBySegmentScoreOrdersDescendingStable(t *testing.T) {
	segments := []logmodel.Segment{
		{Score: 5},
		{Score: 10},
		{Score: 10},
		{Score: 1},
	}
	idx := StableSortBySegmentScore(segments)
	want := []int{1, 2, 0, 3}
	for i, w := range want {
		if idx[i] != w {
			t.Errorf("idx[%d] = %d, want %d (full: %v)", i, idx[i], w, idx)
			break
		}
	}
}
