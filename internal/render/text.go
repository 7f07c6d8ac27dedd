package render

import (
	"fmt"
	"strings"

	"github.com/mako10k/logpilot/internal/logmodel"
	"github.com/mako10k/logpilot/internal/segment"
	"github.com/mako10k/logpilot/internal/summary"
)

// Text renders the digest as a line-oriented, UTF-8, LF-terminated
// report: a header, build summary, frequency section, then each
// budget-packed segment (excluding BUILD_PROGRESS, BOILERPLATE, and
// wrapper-error segments), with build-progress/boilerplate lines
// dropped within kept segments and repeats annotated "[xN]".
func Text(d Digest) string {
	var b strings.Builder

	writeHeader(&b, d)
	writeSummary(&b, d)
	writeFrequency(&b, d)
	writeSegments(&b, d)

	return b.String()
}

func writeHeader(b *strings.Builder, d Digest) {
	fmt.Fprintf(b, "mode: %s\n", d.Mode)
	fmt.Fprintf(b, "input lines: %d\n", d.TotalLines)
	fmt.Fprintf(b, "estimated output lines: %d\n", d.CompressedLines)
	fmt.Fprintf(b, "reduction: %.1f%%\n", d.ReductionPct)
	fmt.Fprintf(b, "errors: %d  warnings: %d\n", d.ErrorBlocks, d.WarningBlocks)
	b.WriteString("\n")
}

func writeSummary(b *strings.Builder, d Digest) {
	s := d.Summary
	b.WriteString("build summary:\n")
	if s.Board != "" {
		fmt.Fprintf(b, "  board: %s\n", s.Board)
	}
	if s.ZephyrVersion != "" {
		fmt.Fprintf(b, "  zephyr version: %s\n", s.ZephyrVersion)
	}
	if s.CCompilerID != "" {
		fmt.Fprintf(b, "  toolchain: %s\n", s.CCompilerID)
	}
	if s.DevicetreeOverlay != "" {
		fmt.Fprintf(b, "  devicetree overlay: %s\n", s.DevicetreeOverlay)
	}
	if s.Flash != "" {
		fmt.Fprintf(b, "  flash: %s\n", s.Flash)
	}
	if s.RAM != "" {
		fmt.Fprintf(b, "  ram: %s\n", s.RAM)
	}
	if s.WroteBytesTo != "" {
		fmt.Fprintf(b, "  output: %s\n", s.WroteBytesTo)
	}
	if s.MaxTotalSteps > 0 && !d.NoTail {
		fmt.Fprintf(b, "  build steps: %d/%d\n", s.MaxStep, s.MaxTotalSteps)
	}
	if s.Failed {
		b.WriteString("  build failed: yes\n")
	}
	b.WriteString("\n")
}

func writeFrequency(b *strings.Builder, d Digest) {
	var lines []logmodel.DedupEntry
	for _, e := range d.Frequency {
		if !d.RawFreq && e.Count < 3 {
			continue
		}
		lines = append(lines, e)
	}
	if len(lines) == 0 {
		return
	}
	b.WriteString("frequent lines:\n")
	for _, e := range lines {
		fmt.Fprintf(b, "  x%d %s\n", e.Count, e.Original)
	}
	b.WriteString("\n")
}

func writeSegments(b *strings.Builder, d Digest) {
	for _, idx := range d.Packed.Indices {
		seg := d.Segments[idx]
		if seg.Type == logmodel.SegBuildProgress || seg.Type == logmodel.SegBoilerplate {
			continue
		}
		if IsWrapperError(seg, d.Lines) {
			continue
		}

		segLines := d.Lines[seg.Start : seg.End+1]
		var boilerplatePatterns []string
		if d.ModeProfile != nil {
			boilerplatePatterns = d.ModeProfile.BoilerplatePatterns
		}
		if isNonErrorSummarizedOnly(seg.Type, segLines, boilerplatePatterns) {
			continue
		}

		kept := filterSegmentLines(segLines, d.ModeProfile)
		if len(kept) == 0 {
			continue
		}

		fmt.Fprintf(b, "--- %s (lines %d-%d) ---\n", seg.Label, seg.Start+1, seg.End+1)
		writeDedupedSegmentLines(b, kept)
		b.WriteString("\n")
	}
}

// isNonErrorSummarizedOnly drops NORMAL/DATA/INFO/PHASE segments whose
// every non-blank content line duplicates material already pulled into
// the build summary (board/toolchain/overlay/memory/output/progress/
// failure anchors, via summary.IsSummarized) or matches a boilerplate
// pattern, so repeating the segment in the digest body adds nothing.
func isNonErrorSummarizedOnly(t logmodel.SegType, lines []string, boilerplatePatterns []string) bool {
	switch t {
	case logmodel.SegNormal, logmodel.SegData, logmodel.SegInfo, logmodel.SegPhase:
	default:
		return false
	}

	sawContent := false
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		sawContent = true
		if summary.IsSummarized(l) || segment.IsBoilerplate(l, boilerplatePatterns) {
			continue
		}
		return false
	}
	return sawContent
}

// filterSegmentLines drops build-progress and boilerplate lines from
// within an otherwise-kept segment, per §4.10: these add no diagnostic
// value even inside a segment worth showing at all.
func filterSegmentLines(lines []string, mode *logmodel.ModeProfile) []string {
	var boilerplatePatterns []string
	if mode != nil {
		boilerplatePatterns = mode.BoilerplatePatterns
	}

	kept := make([]string, 0, len(lines))
	for _, l := range lines {
		if segment.IsBuildProgress(l) {
			continue
		}
		if segment.IsBoilerplate(l, boilerplatePatterns) {
			continue
		}
		kept = append(kept, l)
	}
	return kept
}

func writeDedupedSegmentLines(b *strings.Builder, lines []string) {
	seen := map[string]int{}
	firstAnnotated := map[string]bool{}
	counts := map[string]int{}
	for _, l := range lines {
		counts[l]++
	}

	for _, l := range lines {
		seen[l]++
		if counts[l] <= 1 {
			fmt.Fprintf(b, "%s\n", l)
			continue
		}
		if !firstAnnotated[l] {
			fmt.Fprintf(b, "%s [x%d]\n", l, counts[l])
			firstAnnotated[l] = true
			continue
		}
		// Subsequent occurrences of a repeated line are suppressed.
	}
}
