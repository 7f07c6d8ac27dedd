package budget

import (
	"testing"

	"github.com/mako10k/logpilot/internal/logmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackIncludesAllErrorsEvenOverBudget(t *testing.T) {
	segments := []logmodel.Segment{
		{Type: logmodel.SegError, TokenCount: 1000},
		{Type: logmodel.SegError, TokenCount: 1000},
	}

	result := Pack(segments, 500, 0)

	require.Equal(t, 2, result.Count)
	assert.Equal(t, 2000, result.TotalTokens)
	assert.ElementsMatch(t, []int{0, 1}, result.Indices)
}

func TestPackFillsNonErrorByScoreDescending(t *testing.T) {
	segments := []logmodel.Segment{
		{Type: logmodel.SegData, TokenCount: 10, Score: 5},
		{Type: logmodel.SegData, TokenCount: 10, Score: 9},
		{Type: logmodel.SegData, TokenCount: 10, Score: 1},
	}

	result := Pack(segments, 25, 0)

	require.Equal(t, 2, result.Count)
	assert.Equal(t, []int{0, 1}, result.Indices)
	assert.Equal(t, 20, result.TotalTokens)
}

func TestPackIndicesAreSortedByPosition(t *testing.T) {
	segments := []logmodel.Segment{
		{Type: logmodel.SegData, TokenCount: 5, Score: 1},
		{Type: logmodel.SegError, TokenCount: 5},
		{Type: logmodel.SegData, TokenCount: 5, Score: 9},
	}

	result := Pack(segments, 100, 0)

	assert.Equal(t, []int{0, 1, 2}, result.Indices)
	for i := 1; i < len(result.Indices); i++ {
		require.Less(t, result.Indices[i-1], result.Indices[i])
	}
}

func TestPackReserveTokensAugmentsTotal(t *testing.T) {
	segments := []logmodel.Segment{
		{Type: logmodel.SegData, TokenCount: 5, Score: 1},
	}

	result := Pack(segments, 100, 200)

	assert.Equal(t, 205, result.TotalTokens)
}
