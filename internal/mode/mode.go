// Package mode selects a configuration profile for an input log by
// scanning its head against loaded mode profiles' signatures, and can
// draft a best-effort profile skeleton for unseen build ecosystems.
package mode

import (
	"sort"
	"strings"

	"github.com/mako10k/logpilot/internal/dedup"
	"github.com/mako10k/logpilot/internal/logmodel"
)

const headSampleSize = 50

// Detect scores each loaded profile by counting (line, signature)
// substring-contains hits over the first 50 lines of input (or all of
// it, if shorter), and returns the winning profile's name. Ties are
// broken by first-loaded order. If no profile scores above zero (or
// none are loaded), the generic sentinel is returned.
func Detect(lines []string, profiles []logmodel.ModeProfile) string {
	head := lines
	if len(head) > headSampleSize {
		head = head[:headSampleSize]
	}

	bestName := logmodel.GenericModeName
	bestScore := 0
	for _, p := range profiles {
		score := 0
		for _, line := range head {
			for _, sig := range p.Signatures {
				if strings.Contains(line, sig) {
					score++
				}
			}
		}
		if score > bestScore {
			bestScore = score
			bestName = p.Name
		}
	}
	return bestName
}

// Find returns the profile with the given name, or nil if not loaded
// (the generic fallback).
func Find(name string, profiles []logmodel.ModeProfile) *logmodel.ModeProfile {
	for i := range profiles {
		if profiles[i].Name == name {
			return &profiles[i]
		}
	}
	return nil
}

// Suggest drafts a best-effort mode profile skeleton from the head of an
// unrecognized input, following original_source's logexplore.c: the
// draft's signatures are the most frequent short lines near the top of
// the log, and its boilerplate_patterns are the highest-count dedup
// entries overall (lines repeated often enough to be scaffolding rather
// than content).
func Suggest(lines []string) logmodel.ModeProfile {
	tbl := dedup.New()
	for i, l := range lines {
		tbl.Insert(l, i, nil)
	}
	sorted := tbl.SortedByFrequency()

	draft := logmodel.ModeProfile{
		Name:        "draft",
		Description: "auto-suggested profile; review before use",
	}

	head := lines
	if len(head) > headSampleSize {
		head = head[:headSampleSize]
	}
	headCounts := map[string]int{}
	var distinct []string
	for _, l := range head {
		trimmed := strings.TrimSpace(l)
		if trimmed == "" || len(trimmed) > 80 {
			continue
		}
		if headCounts[trimmed] == 0 {
			distinct = append(distinct, trimmed)
		}
		headCounts[trimmed]++
	}
	sort.SliceStable(distinct, func(i, j int) bool {
		return headCounts[distinct[i]] > headCounts[distinct[j]]
	})
	if len(distinct) > 5 {
		distinct = distinct[:5]
	}
	draft.Signatures = distinct

	boilerplateCandidates := sorted
	sort.SliceStable(boilerplateCandidates, func(i, j int) bool {
		return boilerplateCandidates[i].Count > boilerplateCandidates[j].Count
	})
	for _, e := range boilerplateCandidates {
		if e.Count < 3 {
			break
		}
		draft.BoilerplatePatterns = append(draft.BoilerplatePatterns, e.Original)
		if len(draft.BoilerplatePatterns) >= 10 {
			break
		}
	}

	return draft
}
