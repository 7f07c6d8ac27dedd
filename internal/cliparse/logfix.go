package cliparse

import (
	"flag"
	"fmt"
	"os"
)

// LogfixConfig holds the parsed flags for the logfix binary.
type LogfixConfig struct {
	Check    bool
	Query    string
	Add      bool
	AddFrom  string
	Tags     []string
	Validate bool
	Stats    bool
}

// ParseLogfixArgs parses logfix's command line.
func ParseLogfixArgs(args []string) (*LogfixConfig, error) {
	args, helpAgent := SplitHelpAgent(args)
	if helpAgent {
		return nil, ErrShowHelpAgent
	}

	var cfg LogfixConfig
	var tags csvFlags
	var showHelp bool

	fs := flag.NewFlagSet("logfix", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	fs.BoolVar(&cfg.Check, "check", false, "Read error lines from stdin and match them against the fix database")
	fs.StringVar(&cfg.Query, "query", "", "Find fix entries matching TEXT and print them by confidence")
	fs.BoolVar(&cfg.Add, "add", false, "Interactively add a new fix entry")
	fs.StringVar(&cfg.AddFrom, "add-from", "", "Add a new fix entry non-interactively from a YAML FILE")
	fs.Var(&tags, "tags", "Comma-separated tags: attaches to an added entry, or filters --query/--check results")
	fs.BoolVar(&cfg.Validate, "validate", false, "Validate fix entries against the schema (every loaded entry, or --add-from's entry before writing it)")
	fs.BoolVar(&cfg.Stats, "stats", false, "Print fix-database statistics (entry count, tag histogram)")
	fs.BoolVar(&showHelp, "help", false, "Show help")

	fs.Usage = func() { ShowLogfixHelp() }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if showHelp {
		return nil, ErrShowHelp
	}

	cfg.Tags = []string(tags)

	return &cfg, nil
}

// ShowLogfixHelp prints logfix's human help text.
func ShowLogfixHelp() {
	fmt.Print(logfixHelp)
}

// ShowLogfixHelpAgent prints logfix's machine-oriented help.
func ShowLogfixHelpAgent() {
	fmt.Print(logfixHelpAgent)
}

const logfixHelp = `logfix - manage and query the known-fix database

USAGE:
    logfix --check < build.log
    logfix --query TEXT
    logfix --add [--tags CSV]
    logfix --add-from FILE [--tags CSV] [--validate]
    logfix --validate
    logfix --stats

OPTIONS:
    --check              Read stdin, extract error lines, and match each against the fix database
    --query TEXT          Find fix entries matching TEXT, ranked by confidence
    --add                  Interactively add a new fix entry
    --add-from FILE         Add a new fix entry non-interactively from a YAML file
    --tags CSV               Tags to attach to an entry added via --add or --add-from, or to filter --query/--check results
    --validate                Validate fix entries against the schema (all loaded entries, or --add-from's entry first)
    --stats                   Print fix-database statistics
    --help                    Show this help
    --help agent               Show machine-oriented help

EXIT STATUS:
    0  success
    1  invalid arguments, validation failure, or a fix file that cannot be read or written
       (no fix directory at all is not an error: it is an empty database)

EXAMPLES:
    logfix --query "undefined reference to 'spi_init'"
    logfix --add --tags linker,spi
    west build 2>&1 | logfix --check
    logfix --validate
`

const logfixHelpAgent = `logfix: manage the known-fix database (pattern/tags/fix YAML entries).

modes: --check (stdin, extracts error lines, matches each), --query TEXT (rank matches),
--add (interactive), --add-from FILE (non-interactive add), --validate (schema-check all
loaded entries, or --add-from's entry first), --stats (counts/tags).
flags: --tags CSV.
exit: 0 ok (a missing fix directory counts as an empty database), 1 invalid arguments, validation failure, or unreadable/unwritable fix file.
entry shape: {pattern (substring), regex?, tags[], fix (text), severity?}.
`
