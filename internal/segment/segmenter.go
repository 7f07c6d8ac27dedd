package segment

import (
	"github.com/mako10k/logpilot/internal/logmodel"
	"github.com/mako10k/logpilot/internal/token"
)

// Segment walks a line stream once and returns non-overlapping, linearly
// ordered segments covering every non-blank line. This is the
// authoritative "elaborate" segmenter variant (saw_error tracking plus
// BUILD_PROGRESS/BOILERPLATE post-classification) per spec.md §9's Open
// Questions — the simpler variant is not implemented.
func Segment(lines []string, mode *logmodel.ModeProfile) []logmodel.Segment {
	n := len(lines)
	var segments []logmodel.Segment

	i := 0
	for i < n {
		if IsBlank(lines[i]) {
			i++
			continue
		}

		segStart := i
		segType := logmodel.SegNormal
		baseIndent := IndentOf(lines[i])
		sawError := false

		var phaseMarkers, blockTriggers []string
		if mode != nil {
			phaseMarkers = mode.PhaseMarkers
			blockTriggers = mode.BlockTriggers
		}

		if IsPhaseMarker(lines[i], phaseMarkers) {
			segType = logmodel.SegPhase
		}
		firstProgress := lineIsProgress(lines[i], mode)
		t0 := Classify(lines[i], mode)
		if t0 == logmodel.SegError {
			segType = logmodel.SegError
			sawError = true
		} else if t0 > segType {
			segType = t0
		}
		if firstProgress && segType == logmodel.SegNormal {
			segType = logmodel.SegBuildProgress
		}
		i++

		for i < n {
			if IsBlank(lines[i]) {
				break
			}
			if IsPhaseMarker(lines[i], phaseMarkers) && i > segStart {
				break
			}
			if IndentOf(lines[i]) < baseIndent-2 && i > segStart+1 {
				break
			}

			t := Classify(lines[i], mode)
			prog := lineIsProgress(lines[i], mode)

			if sawError && prog && t == logmodel.SegNormal {
				break
			}
			if segType == logmodel.SegBuildProgress && !prog && t == logmodel.SegError {
				break
			}

			if t == logmodel.SegError {
				segType = logmodel.SegError
				sawError = true
			} else if t == logmodel.SegWarning && segType == logmodel.SegNormal {
				segType = logmodel.SegWarning
			}

			if IsBlockTrigger(lines[i], blockTriggers) && i > segStart+2 && segType == logmodel.SegNormal {
				break
			}

			i++
		}

		segEnd := i - 1
		segType = postClassify(lines[segStart:i], segType, mode)

		seg := logmodel.Segment{
			Start:     segStart,
			End:       segEnd,
			Type:      segType,
			Label:     segType.String(),
			LineCount: segEnd - segStart + 1,
		}
		seg.TokenCount = token.EstimateLines(lines[segStart : segEnd+1])
		segments = append(segments, seg)
	}

	return segments
}

func lineIsProgress(line string, mode *logmodel.ModeProfile) bool {
	if mode != nil && mode.ProgressPattern != "" {
		if ProgressPatternMatches(line, mode.ProgressPattern) {
			return true
		}
	}
	return IsBuildProgress(line)
}

// postClassify applies the boilerplate/progress-majority/tabular
// reclassification rules, only when the current type is NORMAL or DATA.
func postClassify(lines []string, segType logmodel.SegType, mode *logmodel.ModeProfile) logmodel.SegType {
	if segType != logmodel.SegNormal && segType != logmodel.SegData {
		return segType
	}

	var boilerplatePatterns []string
	if mode != nil {
		boilerplatePatterns = mode.BoilerplatePatterns
	}

	total := len(lines)
	if total == 0 {
		return segType
	}

	boilerplateCount := 0
	progressCount := 0
	for _, l := range lines {
		if IsBoilerplate(l, boilerplatePatterns) {
			boilerplateCount++
		}
		if lineIsProgress(l, mode) {
			progressCount++
		}
	}

	if float64(boilerplateCount) >= 0.5*float64(total) && segType != logmodel.SegError {
		return logmodel.SegBoilerplate
	}
	if float64(progressCount) >= 0.5*float64(total) && segType == logmodel.SegNormal {
		return logmodel.SegBuildProgress
	}
	if segType == logmodel.SegNormal && IsTabular(lines) {
		return logmodel.SegData
	}
	return segType
}
