// Package score assigns an interest score to each segment: a base value
// by type, keyword and block-trigger hits, and a frequency-outlier bonus
// pulled from the dedup table.
package score

import (
	"sort"
	"strings"

	"github.com/mako10k/logpilot/internal/dedup"
	"github.com/mako10k/logpilot/internal/logmodel"
)

func baseByType(t logmodel.SegType) float32 {
	switch t {
	case logmodel.SegError:
		return 10
	case logmodel.SegWarning:
		return 5
	case logmodel.SegData:
		return 4
	case logmodel.SegPhase:
		return 2
	default:
		return 0
	}
}

// Score computes every segment's interest score in place, given the
// original lines, the dedup table built over the same input, the
// active mode (nil for generic), and any caller-supplied extra keywords
// (e.g. --keywords on the CLI).
//
// Open Question (spec.md §9): the frequency-outlier lookup hashes each
// segment line's *raw* text and probes the table (which is keyed by
// *normalized* content) rather than normalizing the line first. We
// preserve this — cheaper, but a line is found only when normalization
// is a no-op for it, so every line that normalization changes gets no
// frequency bonus — matching original_source's score.c, which
// does the same raw-hash lookup. See DESIGN.md.
func Score(segments []logmodel.Segment, lines []string, tbl *dedup.Table, m *logmodel.ModeProfile, extraKeywords []string) {
	top5, bot5 := frequencyBounds(tbl)

	var keywords, blockTriggers []string
	if m != nil {
		keywords = m.Keywords
		blockTriggers = m.BlockTriggers
	}

	for i := range segments {
		seg := &segments[i]
		var s float32 = baseByType(seg.Type)

		for ln := seg.Start; ln <= seg.End && ln < len(lines); ln++ {
			line := lines[ln]

			for _, kw := range keywords {
				if strings.Contains(line, kw) {
					s += 3
				}
			}
			for _, trig := range blockTriggers {
				if strings.Contains(strings.ToLower(line), strings.ToLower(trig)) {
					s += 1
				}
			}
			for _, kw := range extraKeywords {
				if strings.Contains(line, kw) {
					s += 3
				}
			}

			if tbl != nil {
				count := tbl.LookupByOriginal(line)
				if count >= top5 && top5 > 1 {
					s += 2
				}
				if count <= bot5 && count == 1 {
					s += 2
				}
			}
		}

		seg.Score = s
	}
}

// frequencyBounds computes, from a single frequency-sorted pass over the
// dedup table, the count at the 5%-from-top rank (top5) and the count at
// the 5%-from-bottom rank (bot5).
func frequencyBounds(tbl *dedup.Table) (top5, bot5 int) {
	if tbl == nil {
		return 0, 0
	}
	entries := tbl.SortedByFrequency()
	n := len(entries)
	if n == 0 {
		return 0, 0
	}

	topIdx := rankFromTop(n, 0.05)
	botIdx := rankFromTop(n, 0.95)

	return entries[topIdx].Count, entries[botIdx].Count
}

// rankFromTop converts a fraction-from-top into a clamped slice index.
func rankFromTop(n int, frac float64) int {
	idx := int(float64(n) * frac)
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// StableSortBySegmentScore returns segment indices ordered by score
// descending, with ties kept in natural array order. The budget packer
// does not call it; it sorts its non-error segments itself.
func StableSortBySegmentScore(segments []logmodel.Segment) []int {
	idx := make([]int, len(segments))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return segments[idx[i]].Score > segments[idx[j]].Score
	})
	return idx
}
