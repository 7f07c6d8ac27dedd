// Package summary pulls a handful of named facts (board, toolchain,
// memory, output, step counters, failure detection) out of the full
// line stream by fixed substring anchors. It never fails: absent facts
// are left at their zero value.
package summary

import (
	"regexp"
	"strconv"
	"strings"
)

// Summary is the set of facts the extractor recognizes. Any field may be
// empty/zero if the corresponding anchor was never seen.
type Summary struct {
	Board             string
	ZephyrVersion     string
	CCompilerID       string
	DevicetreeOverlay string
	Flash             string
	RAM               string
	WroteBytesTo      string
	MaxStep           int
	MaxTotalSteps     int
	Failed            bool
}

var anchors = []struct {
	prefix string
	set    func(*Summary, string)
}{
	{"-- Board: ", func(s *Summary, v string) { s.Board = v }},
	{"-- Zephyr version: ", func(s *Summary, v string) { s.ZephyrVersion = v }},
	{"The C compiler identification is ", func(s *Summary, v string) { s.CCompilerID = v }},
	{"-- Found devicetree overlay: ", func(s *Summary, v string) { s.DevicetreeOverlay = v }},
}

var progressRe = regexp.MustCompile(`\[(\d+)/(\d+)\]`)
var wroteBytesRe = regexp.MustCompile(`Wrote "(.*?)" bytes to "(.*?)"|Wrote (\d+) bytes to (.*)`)

// Extract scans the full line stream once for the first occurrence of
// each named fact.
func Extract(lines []string) Summary {
	var s Summary

	for _, line := range lines {
		for _, a := range anchors {
			if idx := strings.Index(line, a.prefix); idx >= 0 {
				field := currentValue(&s, a.prefix)
				if field == "" {
					a.set(&s, strings.TrimSpace(line[idx+len(a.prefix):]))
				}
			}
		}

		if s.Flash == "" && strings.HasPrefix(line, "FLASH:") && !strings.Contains(line, "Used Size") {
			s.Flash = strings.TrimSpace(strings.TrimPrefix(line, "FLASH:"))
		}
		if s.RAM == "" && strings.HasPrefix(line, "RAM:") && !strings.Contains(line, "Used Size") {
			s.RAM = strings.TrimSpace(strings.TrimPrefix(line, "RAM:"))
		}

		if m := wroteBytesRe.FindStringSubmatch(line); m != nil && s.WroteBytesTo == "" {
			s.WroteBytesTo = strings.TrimSpace(line)
		}

		for _, m := range progressRe.FindAllStringSubmatch(line, -1) {
			a, _ := strconv.Atoi(m[1])
			b, _ := strconv.Atoi(m[2])
			if a > s.MaxStep {
				s.MaxStep = a
			}
			if b > s.MaxTotalSteps {
				s.MaxTotalSteps = b
			}
		}

		if strings.Contains(line, "ninja: build stopped") || strings.Contains(line, "FATAL ERROR:") {
			s.Failed = true
		}
		if strings.Contains(line, "FAILED:") && !strings.Contains(line, "FAILED: _") {
			s.Failed = true
		}
	}

	return s
}

// IsSummarized reports whether line is fully accounted for by the facts
// Extract pulls out of the log (board/toolchain/overlay/memory/output
// anchors, build-step progress counters, failure markers) — used by the
// renderer to drop segments that add nothing beyond the summary section.
func IsSummarized(line string) bool {
	for _, a := range anchors {
		if strings.Contains(line, a.prefix) {
			return true
		}
	}
	if strings.HasPrefix(line, "FLASH:") || strings.HasPrefix(line, "RAM:") {
		return true
	}
	if wroteBytesRe.MatchString(line) {
		return true
	}
	if progressRe.MatchString(line) {
		return true
	}
	if strings.Contains(line, "ninja: build stopped") || strings.Contains(line, "FATAL ERROR:") {
		return true
	}
	if strings.Contains(line, "FAILED:") && !strings.Contains(line, "FAILED: _") {
		return true
	}
	return false
}

// currentValue returns the Summary field currently bound to the given
// anchor prefix, used only to test "have we already captured the first
// occurrence" before overwriting.
func currentValue(s *Summary, prefix string) string {
	switch prefix {
	case "-- Board: ":
		return s.Board
	case "-- Zephyr version: ":
		return s.ZephyrVersion
	case "The C compiler identification is ":
		return s.CCompilerID
	case "-- Found devicetree overlay: ":
		return s.DevicetreeOverlay
	default:
		return ""
	}
}
