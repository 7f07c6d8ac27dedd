package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"

	"github.com/mako10k/logpilot/internal/cliparse"
	"github.com/mako10k/logpilot/internal/config"
	"github.com/mako10k/logpilot/internal/diag"
	"github.com/mako10k/logpilot/internal/discover"
	"github.com/mako10k/logpilot/internal/fixadd"
	"github.com/mako10k/logpilot/internal/fixmatch"
	"github.com/mako10k/logpilot/internal/logmodel"
	"github.com/mako10k/logpilot/internal/segment"
	"github.com/mako10k/logpilot/internal/validate"
)

func main() {
	cfg, err := cliparse.ParseLogfixArgs(os.Args[1:])
	if err != nil {
		switch err {
		case cliparse.ErrShowHelp:
			cliparse.ShowLogfixHelp()
			os.Exit(0)
		case cliparse.ErrShowHelpAgent:
			cliparse.ShowLogfixHelpAgent()
			os.Exit(0)
		default:
			fmt.Fprintf(os.Stderr, "logfix: %v\n", err)
			os.Exit(1)
		}
	}

	diag.Init(os.Stderr)

	switch {
	case cfg.Check:
		runCheck(cfg.Tags)
	case cfg.Query != "":
		runQuery(cfg.Query, cfg.Tags)
	case cfg.Add:
		runAdd(cfg.Tags)
	case cfg.AddFrom != "":
		runAddFrom(cfg.AddFrom, cfg.Tags, cfg.Validate)
	case cfg.Validate:
		runValidate()
	case cfg.Stats:
		runStats()
	default:
		cliparse.ShowLogfixHelp()
		os.Exit(1)
	}
}

// runCheck implements spec.md §6.1's "--check": read error lines from
// stdin, extract the ones the generic classifier calls ERROR, and match
// each against the loaded fix database.
func runCheck(tags []string) {
	entries, err := loadAllEntries()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logfix: %v\n", err)
		os.Exit(1)
	}
	entries = filterByTags(entries, tags)

	errLines := extractErrorLines(os.Stdin)
	if len(errLines) == 0 {
		fmt.Println("no error lines found on stdin")
		return
	}

	for _, line := range errLines {
		matches := fixmatch.Match(line, entries, fixmatch.DefaultThreshold)
		diag.FixMatch(line, len(matches) > 0, fmt.Sprintf("%d matches", len(matches)))

		fmt.Printf("%s\n", line)
		if len(matches) == 0 {
			fmt.Println("  no confident match found")
			continue
		}
		for _, m := range matches {
			fmt.Printf("  %.2f  %s -> %s\n", m.Confidence, m.Entry.Pattern, m.Entry.FixText)
		}
	}
}

// extractErrorLines scans r for lines the generic (mode-less)
// classifier assigns SegError, in order.
func extractErrorLines(r *os.File) []string {
	var out []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if segment.Classify(line, nil) == logmodel.SegError {
			out = append(out, line)
		}
	}
	return out
}

// filterByTags returns entries unchanged if tags is empty, otherwise
// only entries carrying at least one of the given tags. Grounded on
// original_source's src/logfix.c "--tags CSV" filter over --query/--check
// results (SPEC_FULL.md §10).
func filterByTags(entries []logmodel.FixEntry, tags []string) []logmodel.FixEntry {
	if len(tags) == 0 {
		return entries
	}
	want := make(map[string]bool, len(tags))
	for _, t := range tags {
		want[t] = true
	}

	var out []logmodel.FixEntry
	for _, e := range entries {
		for _, t := range e.Tags {
			if want[t] {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// runValidate implements spec.md §7's Validation error kind: every
// loaded fix entry missing a required field is reported and counted as
// invalid, without aborting the scan.
func runValidate() {
	entries, err := loadAllEntries()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logfix: %v\n", err)
		os.Exit(1)
	}

	bad := 0
	for _, e := range entries {
		if err := validate.FixEntry(e); err != nil {
			fmt.Printf("INVALID %s: %v\n", e.SourcePath, err)
			diag.FixValidate(e.Pattern, false, err.Error())
			bad++
			continue
		}
		diag.FixValidate(e.Pattern, true, "")
	}

	fmt.Printf("%d entries checked, %d invalid\n", len(entries), bad)
	if bad > 0 {
		os.Exit(1)
	}
}

func runQuery(text string, tags []string) {
	entries, err := loadAllEntries()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logfix: %v\n", err)
		os.Exit(1)
	}
	entries = filterByTags(entries, tags)

	matches := fixmatch.Match(text, entries, fixmatch.DefaultThreshold)
	diag.FixMatch(text, len(matches) > 0, fmt.Sprintf("%d matches", len(matches)))

	if len(matches) == 0 {
		suggestions := fixmatch.Suggest(text, entries, 3)
		fmt.Println("no confident match found")
		if len(suggestions) > 0 {
			fmt.Println("closest known patterns:")
			for _, s := range suggestions {
				fmt.Printf("  %s\n", s.Pattern)
			}
		}
		return
	}

	for _, m := range matches {
		fmt.Printf("%.2f  %s\n", m.Confidence, m.Entry.Pattern)
		fmt.Printf("      tags: %v\n", m.Entry.Tags)
		fmt.Printf("      fix: %s\n\n", m.Entry.FixText)
	}
}

func runAdd(tags []string) {
	entry, err := fixadd.Prompt(tags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logfix: %v\n", err)
		os.Exit(1)
	}
	writeNewEntry(entry, true)
}

func runAddFrom(path string, tags []string, doValidate bool) {
	entries, err := config.LoadFixEntries(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logfix: %v\n", err)
		os.Exit(1)
	}
	if len(entries) != 1 {
		fmt.Fprintf(os.Stderr, "logfix: --add-from expects exactly one entry in %s, found %d\n", path, len(entries))
		os.Exit(1)
	}

	entry := entries[0]
	if len(tags) > 0 {
		entry.Tags = tags
	}
	writeNewEntry(entry, doValidate)
}

func writeNewEntry(entry logmodel.FixEntry, doValidate bool) {
	if doValidate {
		if err := validate.FixEntry(entry); err != nil {
			fmt.Fprintf(os.Stderr, "logfix: %v\n", err)
			os.Exit(1)
		}
	}

	dest := firstWritableFixDir()
	path := dest + "/added.yaml"
	if err := config.AppendFixEntry(path, entry); err != nil {
		fmt.Fprintf(os.Stderr, "logfix: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("added entry to %s\n", path)
}

func runStats() {
	entries, err := loadAllEntries()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logfix: %v\n", err)
		os.Exit(1)
	}

	tagCounts := map[string]int{}
	resolved := 0
	for _, e := range entries {
		for _, t := range e.Tags {
			tagCounts[t]++
		}
		if e.Resolved {
			resolved++
		}
	}

	tags := make([]string, 0, len(tagCounts))
	for t := range tagCounts {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return tagCounts[tags[i]] > tagCounts[tags[j]] })

	fmt.Printf("entries: %d\n", len(entries))
	fmt.Printf("resolved: %d\n", resolved)
	fmt.Println("tags:")
	for _, t := range tags {
		fmt.Printf("  %-20s %d\n", t, tagCounts[t])
	}
}

func loadAllEntries() ([]logmodel.FixEntry, error) {
	dirs := discover.FixDirs()
	files, err := discover.WalkFixFiles(dirs)
	if err != nil {
		return nil, fmt.Errorf("walk fix directories: %w", err)
	}

	var entries []logmodel.FixEntry
	for _, f := range files {
		e, err := config.LoadFixEntries(f)
		if err != nil {
			diag.ConfigLoad(f, false, err.Error())
			fmt.Fprintf(os.Stderr, "logfix: skipping %s: %v\n", f, err)
			continue
		}
		diag.ConfigLoad(f, true, "")
		entries = append(entries, e...)
	}
	return entries, nil
}

func firstWritableFixDir() string {
	dirs := discover.FixDirs()
	if len(dirs) == 0 {
		return "fixes"
	}
	return dirs[0]
}
