// Package pipeline wires the core stages together: normalize+dedup,
// mode detection, segmentation, scoring, budget packing, and summary
// extraction, producing a render.Digest. This is the orchestrator the
// three cmd/ binaries share, grounded on the teacher's internal/app
// orchestration package (internal/app/app.go: parse input, build state,
// hand off to collaborators, return one result struct).
package pipeline

import (
	"github.com/mako10k/logpilot/internal/budget"
	"github.com/mako10k/logpilot/internal/dedup"
	"github.com/mako10k/logpilot/internal/diag"
	"github.com/mako10k/logpilot/internal/logmodel"
	"github.com/mako10k/logpilot/internal/mode"
	"github.com/mako10k/logpilot/internal/render"
	"github.com/mako10k/logpilot/internal/score"
	"github.com/mako10k/logpilot/internal/segment"
	"github.com/mako10k/logpilot/internal/summary"
	"github.com/mako10k/logpilot/internal/token"
)

// Options configures one pipeline run.
type Options struct {
	// RequestedMode is the --mode flag value, or "" to auto-detect.
	RequestedMode string
	Profiles      []logmodel.ModeProfile
	BudgetTokens  int
	ReserveTokens int
	ExtraKeywords []string
}

// Result is everything a caller (a CLI command) needs after running the
// pipeline: the render-ready Digest plus the resolved mode profile.
type Result struct {
	Digest      render.Digest
	ModeProfile *logmodel.ModeProfile
	ModeWarning string
}

// Run executes the full core pipeline over lines.
func Run(lines []string, opts Options) Result {
	var profile *logmodel.ModeProfile
	var modeName string
	var modeWarning string

	if opts.RequestedMode != "" {
		profile = mode.Find(opts.RequestedMode, opts.Profiles)
		if profile == nil {
			modeName = logmodel.GenericModeName
			modeWarning = "mode \"" + opts.RequestedMode + "\" not found; continuing with generic"
		} else {
			modeName = profile.Name
		}
	} else {
		modeName = mode.Detect(lines, opts.Profiles)
		profile = mode.Find(modeName, opts.Profiles)
	}
	diag.ModeDetect(modeName, true, modeWarning)

	var stripPatterns []string
	if profile != nil {
		stripPatterns = profile.StripPatterns
	}

	tbl := dedup.New()
	for i, l := range lines {
		tbl.Insert(l, i, stripPatterns)
	}

	segments := segment.Segment(lines, profile)
	score.Score(segments, lines, tbl, profile, opts.ExtraKeywords)

	packed := budget.Pack(segments, opts.BudgetTokens, opts.ReserveTokens)

	sum := summary.Extract(lines)

	compressedLines := countOutputLines(segments, packed, lines)
	reduction := 0.0
	if len(lines) > 0 {
		reduction = 100.0 * (1.0 - float64(compressedLines)/float64(len(lines)))
	}

	digest := render.Digest{
		Mode:            modeName,
		ModeProfile:     profile,
		Lines:           lines,
		Segments:        segments,
		Packed:          packed,
		Frequency:       tbl.SortedByFrequency(),
		Summary:         sum,
		TotalLines:      len(lines),
		CompressedLines: compressedLines,
		ReductionPct:    reduction,
		ErrorBlocks:     render.CountRealBlocks(segments, lines, logmodel.SegError),
		WarningBlocks:   render.CountRealBlocks(segments, lines, logmodel.SegWarning),
	}

	return Result{Digest: digest, ModeProfile: profile, ModeWarning: modeWarning}
}

// countOutputLines estimates the digest's line count from the renderer's
// segment-level inclusion rules: each packed segment that is not
// BUILD_PROGRESS, BOILERPLATE or a wrapper error counts its LineCount
// plus one header line. It does not apply the renderer's per-line
// filtering, summary-only segment drops or repeat suppression, and does
// not count the header, summary or frequency sections, so it can differ
// from the number of lines Text emits.
func countOutputLines(segments []logmodel.Segment, packed logmodel.BudgetResult, lines []string) int {
	n := 0
	for _, idx := range packed.Indices {
		seg := segments[idx]
		if seg.Type == logmodel.SegBuildProgress || seg.Type == logmodel.SegBoilerplate {
			continue
		}
		if render.IsWrapperError(seg, lines) {
			continue
		}
		n += seg.LineCount + 1 // +1 for the segment's own header line
	}
	return n
}

// EstimateTokens is a small convenience re-export so callers building a
// one-off estimate (e.g. --raw-freq output) don't need a separate import.
func EstimateTokens(lines []string) int {
	return token.EstimateLines(lines)
}
