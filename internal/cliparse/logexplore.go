package cliparse

import (
	"flag"
	"fmt"
	"os"
)

// LogexploreConfig holds the parsed flags for the logexplore binary.
type LogexploreConfig struct {
	ShowFreq     bool
	ShowSegments bool
	ShowPhases   bool
	Top          int
	SuggestMode  bool
	InputFile    string
}

// ParseLogexploreArgs parses logexplore's command line.
func ParseLogexploreArgs(args []string) (*LogexploreConfig, error) {
	args, helpAgent := SplitHelpAgent(args)
	if helpAgent {
		return nil, ErrShowHelpAgent
	}

	var cfg LogexploreConfig
	var showHelp bool

	fs := flag.NewFlagSet("logexplore", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	fs.BoolVar(&cfg.ShowFreq, "show-freq", false, "Print the line-frequency table (limited by --top)")
	fs.BoolVar(&cfg.ShowSegments, "show-segments", false, "Print every segment with its type and score")
	fs.BoolVar(&cfg.ShowPhases, "show-phases", false, "Print PHASE-type segments only")
	fs.IntVar(&cfg.Top, "top", 15, "Limit frequency/segment listings to the top N entries")
	fs.BoolVar(&cfg.SuggestMode, "suggest-mode", false, "Print a draft mode profile inferred from the input")
	fs.BoolVar(&showHelp, "help", false, "Show help")

	fs.Usage = func() { ShowLogexploreHelp() }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if showHelp {
		return nil, ErrShowHelp
	}

	rest := fs.Args()
	if len(rest) > 0 {
		cfg.InputFile = rest[0]
	}

	return &cfg, nil
}

// ShowLogexploreHelp prints logexplore's human help text.
func ShowLogexploreHelp() {
	fmt.Print(logexploreHelp)
}

// ShowLogexploreHelpAgent prints logexplore's machine-oriented help.
func ShowLogexploreHelpAgent() {
	fmt.Print(logexploreHelpAgent)
}

const logexploreHelp = `logexplore - inspect how logpilot would segment and score a log

USAGE:
    logexplore [OPTIONS] [FILE]

Reads FILE, or standard input if FILE is omitted. Unlike logparse,
logexplore does not budget-pack or render a digest; it shows the
intermediate analysis so a mode profile or keyword list can be tuned.

OPTIONS:
    --show-freq           Print the line-frequency table (limited by --top)
    --show-segments        Print every segment with its type and score
    --show-phases           Print PHASE-type segments only
    --top N                  Limit listings to the top N entries (default 15)
    --suggest-mode            Print a draft mode profile inferred from the input
    --help                    Show this help
    --help agent               Show machine-oriented help

EXAMPLES:
    logexplore --show-segments build.log
    logexplore --suggest-mode build.log > modes/candidate.toml
`

const logexploreHelpAgent = `logexplore: inspect segmentation and scoring without packing a digest.

input: FILE arg, or stdin.
flags: --show-freq, --show-segments, --show-phases, --top N (default 15), --suggest-mode.
output: plain text listings on stdout; --suggest-mode emits a TOML mode-profile draft.
exit: 0 ok, 1 empty/unreadable input.
`
