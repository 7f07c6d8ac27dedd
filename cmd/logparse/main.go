package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mako10k/logpilot/internal/cliparse"
	"github.com/mako10k/logpilot/internal/config"
	"github.com/mako10k/logpilot/internal/diag"
	"github.com/mako10k/logpilot/internal/discover"
	"github.com/mako10k/logpilot/internal/logmodel"
	"github.com/mako10k/logpilot/internal/pipeline"
	"github.com/mako10k/logpilot/internal/render"
)

func main() {
	cfg, err := cliparse.ParseLogparseArgs(os.Args[1:])
	if err != nil {
		switch err {
		case cliparse.ErrShowHelp:
			cliparse.ShowLogparseHelp()
			os.Exit(0)
		case cliparse.ErrShowHelpAgent:
			cliparse.ShowLogparseHelpAgent()
			os.Exit(0)
		default:
			fmt.Fprintf(os.Stderr, "logparse: %v\n", err)
			os.Exit(1)
		}
	}

	diag.Init(os.Stderr)

	lines, err := readLines(cfg.InputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logparse: %v\n", err)
		os.Exit(1)
	}
	if len(lines) == 0 {
		fmt.Fprintln(os.Stderr, "logparse: input is empty")
		os.Exit(1)
	}

	profiles := loadProfiles()

	result := pipeline.Run(lines, pipeline.Options{
		RequestedMode: cfg.Mode,
		Profiles:      profiles,
		BudgetTokens:  cfg.BudgetTokens(),
		ReserveTokens: cliparse.LogparseReserveTokens,
		ExtraKeywords: cfg.Keywords,
	})
	if result.ModeWarning != "" {
		fmt.Fprintf(os.Stderr, "logparse: %s\n", result.ModeWarning)
	}

	d := result.Digest
	d.RawFreq = cfg.RawFreq
	d.NoTail = cfg.NoTail

	if cfg.JSON {
		out, err := render.JSON(d)
		if err != nil {
			fmt.Fprintf(os.Stderr, "logparse: render json: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
		return
	}

	fmt.Print(render.Text(d))
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
