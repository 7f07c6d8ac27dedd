// Package budget solves the bounded knapsack over segments under a token
// budget: every ERROR segment is mandatory, the rest are greedily filled
// by descending score.
package budget

import (
	"sort"

	"github.com/mako10k/logpilot/internal/logmodel"
)

// Pack runs the two-phase packer described in spec.md §4.7. Phase A
// includes every ERROR segment unconditionally, even if that alone
// exceeds the available budget — errors are never dropped. Phase B then
// greedily fills with non-error segments in descending score order
// (stable for ties) while there's room. The result's Indices are sorted
// ascending by original segment position, and TotalTokens is finally
// augmented by reserveTokens.
func Pack(segments []logmodel.Segment, budgetTokens, reserveTokens int) logmodel.BudgetResult {
	available := budgetTokens - reserveTokens
	if available < 0 {
		available = 0
	}

	included := make(map[int]bool)
	total := 0

	for i, seg := range segments {
		if seg.Type == logmodel.SegError {
			included[i] = true
			total += seg.TokenCount
		}
	}

	nonError := make([]int, 0, len(segments))
	for i, seg := range segments {
		if seg.Type != logmodel.SegError {
			nonError = append(nonError, i)
		}
	}
	sort.SliceStable(nonError, func(a, b int) bool {
		return segments[nonError[a]].Score > segments[nonError[b]].Score
	})

	for _, i := range nonError {
		seg := segments[i]
		if total+seg.TokenCount <= available {
			included[i] = true
			total += seg.TokenCount
		}
	}

	indices := make([]int, 0, len(included))
	for i := range included {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	return logmodel.BudgetResult{
		Indices:      indices,
		Count:        len(indices),
		TotalTokens:  total + reserveTokens,
		BudgetTokens: budgetTokens,
	}
}
