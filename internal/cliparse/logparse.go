package cliparse

import (
	"flag"
	"fmt"
	"os"
)

// LogparseConfig holds the parsed flags for the logparse binary.
type LogparseConfig struct {
	Mode        string
	BudgetLines int
	Keywords    []string
	RawFreq     bool
	NoTail      bool
	JSON        bool
	InputFile   string
}

// BudgetTokens returns the token budget derived from --budget (lines *
// 10 tokens/line, per spec.md §6.1).
func (c LogparseConfig) BudgetTokens() int { return c.BudgetLines * 10 }

// LogparseReserveTokens is the fixed reserve spec.md §6.1 specifies for logparse.
const LogparseReserveTokens = 200

// ParseLogparseArgs parses logparse's command line. It runs args through
// SplitHelpAgent itself and returns ErrShowHelpAgent or ErrShowHelp for
// the caller to switch on rather than exiting itself.
func ParseLogparseArgs(args []string) (*LogparseConfig, error) {
	args, helpAgent := SplitHelpAgent(args)
	if helpAgent {
		return nil, ErrShowHelpAgent
	}

	var cfg LogparseConfig
	var keywords csvFlags
	var showHelp bool

	fs := flag.NewFlagSet("logparse", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.Mode, "mode", "", "Mode profile name to force (default: auto-detect)")
	fs.IntVar(&cfg.BudgetLines, "budget", 300, "Output budget in lines (token budget = lines*10)")
	fs.Var(&keywords, "keywords", "Comma-separated extra keywords to weight in scoring")
	fs.BoolVar(&cfg.RawFreq, "raw-freq", false, "Include the raw frequency table regardless of count threshold")
	fs.BoolVar(&cfg.NoTail, "no-tail", false, "Omit the trailing build-progress tail from the digest")
	fs.BoolVar(&cfg.JSON, "json", false, "Emit JSON instead of text")
	fs.BoolVar(&showHelp, "help", false, "Show help")

	fs.Usage = func() { ShowLogparseHelp() }

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
	cfg.Keywords = []string(keywords)

	return &cfg, nil
}

// SplitHelpAgent scans args for the literal sequence "--help" "agent" (or
// "-h" "agent") and, if found, returns the remaining args with that pair
// removed plus true. Binaries call this before flag parsing.
func SplitHelpAgent(args []string) ([]string, bool) {
	for i, a := range args {
		if (a == "--help" || a == "-h") && i+1 < len(args) && args[i+1] == "agent" {
			out := make([]string, 0, len(args)-2)
			out = append(out, args[:i]...)
			out = append(out, args[i+2:]...)
			return out, true
		}
	}
	return args, false
}

// ShowLogparseHelp prints logparse's human help text.
func ShowLogparseHelp() {
	fmt.Print(logparseHelp)
}

// ShowLogparseHelpAgent prints logparse's machine-oriented help: terser,
// flag-table-first, meant for an LLM agent invoking the tool rather than
// a human reading a terminal.
func ShowLogparseHelpAgent() {
	fmt.Print(logparseHelpAgent)
}

const logparseHelp = `logparse - compress a build log into a token-budgeted digest

USAGE:
    logparse [OPTIONS] [FILE]

Reads FILE, or standard input if FILE is omitted.

OPTIONS:
    --mode NAME        Force a mode profile instead of auto-detecting
    --budget LINES      Output budget in lines (default 300; token budget = lines*10)
    --keywords CSV       Extra keywords to weight during scoring
    --raw-freq          Include the full frequency table, not just count>=3
    --no-tail            Omit the trailing build-progress tail
    --json               Emit JSON instead of text
    --help                Show this help
    --help agent          Show machine-oriented help

EXIT STATUS:
    0  success
    1  could not open input, or input was empty

EXAMPLES:
    logparse build.log
    west build 2>&1 | logparse --mode zephyr --budget 500
    logparse --json build.log > digest.json
`

const logparseHelpAgent = `logparse: compress a build log to a token-budgeted digest.

input: FILE arg, or stdin.
output: text digest on stdout, or JSON with --json.
flags: --mode NAME, --budget LINES (default 300), --keywords CSV, --raw-freq, --no-tail, --json.
exit: 0 ok, 1 empty/unreadable input.
json shape: {mode,total_lines,compressed_lines,reduction_pct,error_blocks,warning_blocks,summary,frequency[],segments[]}.
`
