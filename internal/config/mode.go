// Package config loads mode profiles (a narrow TOML-like subset) and fix
// entry files (YAML, via gopkg.in/yaml.v3) from disk.
//
// No TOML library appears anywhere in the retrieval pack this module was
// built from (see DESIGN.md / SPEC_FULL.md §9), and spec.md §9 itself
// scopes the format down to "[section]" headers, key = "string", and
// key = ["a", "b"] — a subset narrow enough that a hand-rolled line
// scanner is the right tool, not a gap this package apologizes for.
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mako10k/logpilot/internal/logmodel"
)

// LoadModeProfile parses one mode profile file. Malformed files are a
// Config-kind error per spec.md §7: the caller should log and skip,
// continuing with whatever else loaded.
func LoadModeProfile(path string) (logmodel.ModeProfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return logmodel.ModeProfile{}, fmt.Errorf("open mode profile %s: %w", path, err)
	}
	defer f.Close()
	return ParseModeProfile(f)
}

// ParseModeProfile parses the narrow TOML subset spec.md §3/§6.2
// recognizes from r.
func ParseModeProfile(r io.Reader) (logmodel.ModeProfile, error) {
	var p logmodel.ModeProfile
	section := ""

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSpace(line[1 : len(line)-1])
			continue
		}

		key, value, ok := splitKV(line)
		if !ok {
			return logmodel.ModeProfile{}, fmt.Errorf("mode profile line %d: malformed entry %q", lineNo, line)
		}

		if err := assign(&p, section, key, value); err != nil {
			return logmodel.ModeProfile{}, fmt.Errorf("mode profile line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return logmodel.ModeProfile{}, fmt.Errorf("read mode profile: %w", err)
	}
	return p, nil
}

func splitKV(line string) (key, value string, ok bool) {
	idx := strings.Index(line, "=")
	if idx < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), true
}

func assign(p *logmodel.ModeProfile, section, key, value string) error {
	_ = section // sections are informational grouping only; keys are globally unique
	switch key {
	case "name":
		s, err := parseString(value)
		if err != nil {
			return err
		}
		p.Name = s
	case "description":
		s, err := parseString(value)
		if err != nil {
			return err
		}
		p.Description = s
	case "progress_pattern":
		s, err := parseString(value)
		if err != nil {
			return err
		}
		p.ProgressPattern = s
	case "signatures":
		arr, err := parseArray(value)
		if err != nil {
			return err
		}
		p.Signatures = arr
	case "strip_patterns":
		arr, err := parseArray(value)
		if err != nil {
			return err
		}
		p.StripPatterns = arr
	case "phase_markers":
		arr, err := parseArray(value)
		if err != nil {
			return err
		}
		p.PhaseMarkers = arr
	case "block_triggers":
		arr, err := parseArray(value)
		if err != nil {
			return err
		}
		p.BlockTriggers = arr
	case "boilerplate_patterns":
		arr, err := parseArray(value)
		if err != nil {
			return err
		}
		p.BoilerplatePatterns = arr
	case "drop_contains":
		arr, err := parseArray(value)
		if err != nil {
			return err
		}
		p.DropContains = arr
	case "keep_once_contains":
		arr, err := parseArray(value)
		if err != nil {
			return err
		}
		p.KeepOnceContains = arr
	case "keywords":
		arr, err := parseArray(value)
		if err != nil {
			return err
		}
		p.Keywords = arr
	case "error_patterns":
		arr, err := parseArray(value)
		if err != nil {
			return err
		}
		p.ErrorPatterns = arr
	case "warning_patterns":
		arr, err := parseArray(value)
		if err != nil {
			return err
		}
		p.WarningPatterns = arr
	default:
		// Unknown keys are ignored, not fatal: forward-compatible with
		// profile files written for a newer logpilot.
	}
	return nil
}

func parseString(value string) (string, error) {
	v := strings.TrimSpace(value)
	if len(v) < 2 || v[0] != '"' || v[len(v)-1] != '"' {
		return "", fmt.Errorf("expected quoted string, got %q", value)
	}
	return v[1 : len(v)-1], nil
}

func parseArray(value string) ([]string, error) {
	v := strings.TrimSpace(value)
	if len(v) < 2 || v[0] != '[' || v[len(v)-1] != ']' {
		return nil, fmt.Errorf("expected array, got %q", value)
	}
	inner := strings.TrimSpace(v[1 : len(v)-1])
	if inner == "" {
		return nil, nil
	}

	var out []string
	for _, part := range splitTopLevelCommas(inner) {
		s, err := parseString(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// splitTopLevelCommas splits on commas that are not inside a quoted
// string, so array elements may contain escaped-free literal commas
// only within their own quotes.
func splitTopLevelCommas(s string) []string {
	var parts []string
	inQuote := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inQuote = !inQuote
		case ',':
			if !inQuote {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}
