package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mako10k/logpilot/internal/cliparse"
	"github.com/mako10k/logpilot/internal/config"
	"github.com/mako10k/logpilot/internal/dedup"
	"github.com/mako10k/logpilot/internal/diag"
	"github.com/mako10k/logpilot/internal/discover"
	"github.com/mako10k/logpilot/internal/logmodel"
	"github.com/mako10k/logpilot/internal/mode"
	"github.com/mako10k/logpilot/internal/score"
	"github.com/mako10k/logpilot/internal/segment"
)

func main() {
	cfg, err := cliparse.ParseLogexploreArgs(os.Args[1:])
	if err != nil {
		switch err {
		case cliparse.ErrShowHelp:
			cliparse.ShowLogexploreHelp()
			os.Exit(0)
		case cliparse.ErrShowHelpAgent:
			cliparse.ShowLogexploreHelpAgent()
			os.Exit(0)
		default:
			fmt.Fprintf(os.Stderr, "logexplore: %v\n", err)
			os.Exit(1)
		}
	}

	diag.Init(os.Stderr)

	lines, err := readLines(cfg.InputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logexplore: %v\n", err)
		os.Exit(1)
	}
	if len(lines) == 0 {
		fmt.Fprintln(os.Stderr, "logexplore: input is empty")
		os.Exit(1)
	}

	if cfg.SuggestMode {
		printSuggestedMode(lines)
		return
	}

	profiles := loadProfiles()
	modeName := mode.Detect(lines, profiles)
	profile := mode.Find(modeName, profiles)
	diag.ModeDetect(modeName, true, "")

	var stripPatterns []string
	if profile != nil {
		stripPatterns = profile.StripPatterns
	}

	tbl := dedup.New()
	for i, l := range lines {
		tbl.Insert(l, i, stripPatterns)
	}

	segments := segment.Segment(lines, profile)
	score.Score(segments, lines, tbl, profile, nil)

	fmt.Printf("mode: %s\n\n", modeName)

	if cfg.ShowFreq {
		printFrequency(tbl.SortedByFrequency(), cfg.Top)
	}
	if cfg.ShowSegments {
		printSegments(segments, lines, cfg.Top, "")
	}
	if cfg.ShowPhases {
		printSegments(segments, lines, cfg.Top, logmodel.SegPhase.String())
	}
	if !cfg.ShowFreq && !cfg.ShowSegments && !cfg.ShowPhases {
		printSegments(segments, lines, cfg.Top, "")
	}
}

func printFrequency(entries []logmodel.DedupEntry, top int) {
	fmt.Println("frequency table:")
	n := top
	if n <= 0 || n > len(entries) {
		n = len(entries)
	}
	for _, e := range entries[:n] {
		fmt.Printf("  x%-4d %s\n", e.Count, e.Original)
	}
	fmt.Println()
}

func printSegments(segments []logmodel.Segment, lines []string, top int, onlyType string) {
	fmt.Println("segments:")
	n := 0
	for _, seg := range segments {
		if onlyType != "" && seg.Type.String() != onlyType {
			continue
		}
		fmt.Printf("  [%s] lines %d-%d score=%.1f\n", seg.Type, seg.Start+1, seg.End+1, seg.Score)
		n++
		if top > 0 && n >= top {
			break
		}
	}
	fmt.Println()
}

func printSuggestedMode(lines []string) {
	draft := mode.Suggest(lines)
	fmt.Printf("[%s]\n", draft.Name)
	fmt.Printf("description = %q\n", draft.Description)
	if len(draft.Signatures) > 0 {
		printStringArray("signatures", draft.Signatures)
	}
	if len(draft.BoilerplatePatterns) > 0 {
		printStringArray("boilerplate_patterns", draft.BoilerplatePatterns)
	}
}

func printStringArray(key string, values []string) {
	fmt.Printf("%s = [", key)
	for i, v := range values {
		if i > 0 {
			fmt.Print(", ")
		}
		fmt.Printf("%q", v)
	}
	fmt.Println("]")
}

func readLines(path string) ([]string, error) {
	var r io.Reader
	if path == "" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return lines, nil
}

func loadProfiles() []logmodel.ModeProfile {
	exeDir := ""
	if exe, err := os.Executable(); err == nil {
		exeDir = filepath.Dir(exe)
	}
	dir := discover.FirstExisting(discover.ModeDirs(exeDir))
	if dir == "" {
		return nil
	}
	files, err := discover.WalkModeFiles(dir)
	if err != nil {
		diag.ConfigLoad(dir, false, err.Error())
		return nil
	}

	var profiles []logmodel.ModeProfile
	for _, f := range files {
		p, err := config.LoadModeProfile(f)
		if err != nil {
			diag.ConfigLoad(f, false, err.Error())
			continue
		}
		diag.ConfigLoad(f, true, "")
		profiles = append(profiles, p)
	}
	return profiles
}
