// Package cliparse implements the three logpilot binaries' command-line
// parsing, grounded directly on the teacher's internal/cli/parser.go:
// flag.NewFlagSet with long-named flags only, a custom flag.Value for
// repeatable/CSV options, and sentinel errors for control-flow outcomes
// (help, help-agent) that the caller switches on rather than treating as
// fatal.
package cliparse

import (
	"errors"
	"strings"
)

// Sentinel errors shared across all three binaries' ParseArgs.
var (
	ErrShowHelp      = errors.New("show help")
	ErrShowHelpAgent = errors.New("show agent help")
)

// csvFlags implements flag.Value, accumulating either repeated
// occurrences of a flag or one comma-separated value into a string
// slice — mirrors the teacher's arrayFlags but also splits on commas,
// since several logpilot options (--keywords, --tags) are specified as
// one CSV argument rather than repeated flags.
type csvFlags []string

func (f *csvFlags) String() string {
	return strings.Join(*f, ",")
}

func (f *csvFlags) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			*f = append(*f, part)
		}
	}
	return nil
}
