// Package render emits the compressed digest in text or JSON form,
// consuming the outputs of every prior pipeline stage.
package render

import (
	"strings"

	"github.com/mako10k/logpilot/internal/logmodel"
	"github.com/mako10k/logpilot/internal/summary"
)

// Digest bundles everything the renderer needs: the original lines, the
// segmenter's output, the budget packer's selection, the dedup
// frequency table, and the extracted summary facts.
type Digest struct {
	Mode            string
	ModeProfile     *logmodel.ModeProfile
	Lines           []string
	Segments        []logmodel.Segment
	Packed          logmodel.BudgetResult
	Frequency       []logmodel.DedupEntry
	Summary         summary.Summary
	TotalLines      int
	CompressedLines int
	ReductionPct    float64
	ErrorBlocks     int
	WarningBlocks   int

	// RawFreq, when set, disables the renderer's count>=3 filter on the
	// frequency section so every deduped line is listed regardless of
	// repeat count.
	RawFreq bool

	// NoTail, when set, omits the trailing build-step tally (the
	// "build steps: N/M" line derived from the highest [N/M] progress
	// marker seen) from the text summary header.
	NoTail bool
}

// wrapperErrorLines are the build-system scaffolding substrings that, if
// every line of an ERROR segment contains at least one of them, mark the
// segment a "wrapper error" rather than a genuine compiler diagnostic.
var wrapperErrorLines = []string{
	"ninja: build stopped",
	"FATAL ERROR:",
	"CMakeFiles",
	"cmd.exe /C",
	"sysbuild",
}

// IsWrapperError reports whether every non-blank line of the segment is
// build-system wrapper noise rather than a genuine diagnostic.
func IsWrapperError(seg logmodel.Segment, lines []string) bool {
	if seg.Type != logmodel.SegError {
		return false
	}
	any := false
	for ln := seg.Start; ln <= seg.End && ln < len(lines); ln++ {
		line := lines[ln]
		if line == "" {
			continue
		}
		any = true
		matched := false
		for _, w := range wrapperErrorLines {
			if strings.Contains(line, w) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return any
}

// CountRealBlocks counts segments of the given type that pass the
// wrapper-error filter (so "real" errors exclude wrapper noise; warnings
// have no wrapper concept and are counted directly).
func CountRealBlocks(segments []logmodel.Segment, lines []string, t logmodel.SegType) int {
	n := 0
	for _, seg := range segments {
		if seg.Type != t {
			continue
		}
		if t == logmodel.SegError && IsWrapperError(seg, lines) {
			continue
		}
		n++
	}
	return n
}
