// Package fixmatch maps error text to knowledge-base fix entries via
// direct regex/substring matches and, failing those, a normalized
// longest-common-substring similarity score.
package fixmatch

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mako10k/logpilot/internal/logmodel"
)

// DefaultThreshold is the confidence floor Match applies when the caller
// doesn't specify one.
const DefaultThreshold = 0.30

type regexCache struct {
	mu    sync.Mutex
	cache map[string]*regexp.Regexp
}

var cache = &regexCache{cache: make(map[string]*regexp.Regexp)}

func (c *regexCache) compile(pattern string) *regexp.Regexp {
	if pattern == "" {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if re, ok := c.cache[pattern]; ok {
		return re
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		c.cache[pattern] = nil
		return nil
	}
	c.cache[pattern] = re
	return re
}

// Confidence computes one entry's match confidence against errorText per
// §4.9: a regex hit scores 0.9, a direct case-insensitive substring hit
// scores 0.85, otherwise the normalized LCS ratio.
func Confidence(errorText string, entry logmodel.FixEntry) float64 {
	if entry.Regex != "" {
		if re := cache.compile(entry.Regex); re != nil && re.MatchString(errorText) {
			return 0.9
		}
	}

	if strings.Contains(strings.ToLower(errorText), strings.ToLower(entry.Pattern)) {
		return 0.85
	}

	normErr := normalizeForMatch(errorText)
	normPat := normalizeForMatch(entry.Pattern)
	if normErr == "" || normPat == "" {
		return 0
	}

	lcs := longestCommonSubstring(normErr, normPat)
	denom := len(normErr)
	if len(normPat) > denom {
		denom = len(normPat)
	}
	if denom == 0 {
		return 0
	}
	return float64(lcs) / float64(denom)
}

// Match scores errorText against every entry, filters to confidence >=
// threshold, and returns matches sorted by confidence descending
// (stable for ties).
func Match(errorText string, entries []logmodel.FixEntry, threshold float64) []logmodel.FixMatch {
	matches := make([]logmodel.FixMatch, 0, len(entries))
	for _, e := range entries {
		c := Confidence(errorText, e)
		if c >= threshold {
			matches = append(matches, logmodel.FixMatch{Entry: e, Confidence: c})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})
	return matches
}

// Suggest offers "closest pattern" suggestions when Match found nothing
// above threshold, using fuzzysearch's normalized-fold ranking over the
// entries' pattern text. This is additive UX on top of §4.9, not a
// replacement for its confidence formula: fuzzysearch implements
// subsequence fuzzy ranking, which would give different numbers than
// the spec's contiguous-LCS metric for scenario 6.
func Suggest(errorText string, entries []logmodel.FixEntry, limit int) []logmodel.FixEntry {
	if limit <= 0 {
		limit = 3
	}
	patterns := make([]string, len(entries))
	for i, e := range entries {
		patterns[i] = e.Pattern
	}

	ranks := fuzzy.RankFindNormalizedFold(errorText, patterns)
	sort.Sort(ranks)

	out := make([]logmodel.FixEntry, 0, limit)
	for _, r := range ranks {
		out = append(out, entries[r.OriginalIndex])
		if len(out) >= limit {
			break
		}
	}
	return out
}
