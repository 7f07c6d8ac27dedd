// Package segment implements the segmenter: the layered heuristics that
// partition a flat line stream into typed, coherent blocks (§4.5 of the
// logpilot design), plus the standalone line-level classification and
// fate functions the segmenter and renderer both depend on.
package segment

import (
	"regexp"
	"strings"
	"sync"

	"github.com/mako10k/logpilot/internal/logmodel"
)

// Fate is the renderer-facing disposition of a single line.
type Fate int

const (
	Keep Fate = iota
	KeepOnce
	Drop
)

// genericErrorSentinels and warningSentinel back the generic
// classification fallback used when no mode profile (or an empty one)
// recognizes the line.
var genericErrorSentinels = []string{"error:", "fatal:", "FAILED", "undefined reference"}

const warningSentinel = "warning:"

var progressRe = regexp.MustCompile(`^\s*\[\d+/\d+\]`)

// compilerExecutables are the known compiler executable substrings used
// by the long-compiler-command-line detector.
var compilerExecutables = []string{"gcc", "g++", "clang", "cl.exe", "clang++", "cc1", "cc1plus"}

var flagMarkers = []string{" -D", " -I", " -f", " -W", " /D", " /I"}

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

// IsBlank reports whether a line has no non-whitespace content.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// IndentOf counts leading indentation, counting each tab as 4 spaces.
func IndentOf(line string) int {
	n := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ':
			n++
		case '\t':
			n += 4
		default:
			return n
		}
	}
	return n
}

// IsBuildProgress reports whether, after optional leading whitespace, the
// line matches the exact bracketed "[N/M]" prefix form. Nothing else
// counts as build progress.
func IsBuildProgress(line string) bool {
	return progressRe.MatchString(line)
}

// IsPhaseMarker reports whether line matches any of the mode's phase
// marker substrings. The test is case-sensitive.
func IsPhaseMarker(line string, phaseMarkers []string) bool {
	for _, m := range phaseMarkers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}

// IsBlockTrigger reports whether line matches any of the mode's block
// trigger substrings. The test is case-insensitive.
func IsBlockTrigger(line string, blockTriggers []string) bool {
	lower := strings.ToLower(line)
	for _, trig := range blockTriggers {
		if strings.Contains(lower, strings.ToLower(trig)) {
			return true
		}
	}
	return false
}

// IsBoilerplate reports whether line matches any of the mode's
// boilerplate pattern substrings (case-sensitive per spec.md's "visible
// in the raw log" patterns, which mirror strip/signature substring
// matching elsewhere).
func IsBoilerplate(line string, boilerplatePatterns []string) bool {
	for _, p := range boilerplatePatterns {
		if strings.Contains(line, p) {
			return true
		}
	}
	return false
}

// Classify assigns a line-level type: mode error patterns (ci contains)
// win over mode warning patterns, then generic sentinels, in the order
// spec.md §4.5 "Classification" lists.
func Classify(line string, mode *logmodel.ModeProfile) logmodel.SegType {
	lower := strings.ToLower(line)

	if mode != nil {
		for _, p := range mode.ErrorPatterns {
			if strings.Contains(lower, strings.ToLower(p)) {
				return logmodel.SegError
			}
		}
		for _, p := range mode.WarningPatterns {
			if strings.Contains(lower, strings.ToLower(p)) {
				return logmodel.SegWarning
			}
		}
	}

	for _, s := range genericErrorSentinels {
		if strings.Contains(lower, strings.ToLower(s)) {
			return logmodel.SegError
		}
	}
	if strings.Contains(lower, warningSentinel) {
		return logmodel.SegWarning
	}
	return logmodel.SegNormal
}

// IsLongCompilerCommand reports whether line is a long compiler
// invocation: length >= 300 bytes, containing a known compiler
// executable substring and at least one flag marker. Used by the line
// fate classifier, not by segmentation directly.
func IsLongCompilerCommand(line string) bool {
	if len(line) < 300 {
		return false
	}
	hasExe := false
	for _, exe := range compilerExecutables {
		if strings.Contains(line, exe) {
			hasExe = true
			break
		}
	}
	if !hasExe {
		return false
	}
	for _, marker := range flagMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

// LineFate maps a single line to its renderer disposition, in the order
// specified: blank -> Drop; sentinel/mode error-or-warning -> Keep;
// drop_contains or boilerplate -> Drop; keep_once_contains -> KeepOnce;
// build-progress -> Drop; long compiler command -> Drop; else Keep.
func LineFate(line string, mode *logmodel.ModeProfile) Fate {
	if IsBlank(line) {
		return Drop
	}

	t := Classify(line, mode)
	if t == logmodel.SegError || t == logmodel.SegWarning {
		return Keep
	}

	if mode != nil {
		for _, d := range mode.DropContains {
			if strings.Contains(line, d) {
				return Drop
			}
		}
		if IsBoilerplate(line, mode.BoilerplatePatterns) {
			return Drop
		}
		for _, k := range mode.KeepOnceContains {
			if strings.Contains(line, k) {
				return KeepOnce
			}
		}
	}

	if IsBuildProgress(line) {
		return Drop
	}
	if IsLongCompilerCommand(line) {
		return Drop
	}
	return Keep
}

// ProgressPatternMatches reports whether line matches the mode's custom
// progress_pattern regex, if any. Compilation failures are tolerated by
// returning false (the caller falls back to IsBuildProgress).
func ProgressPatternMatches(line string, pattern string) bool {
	re := cache.compile(pattern)
	if re == nil {
		return false
	}
	return re.MatchString(line)
}
