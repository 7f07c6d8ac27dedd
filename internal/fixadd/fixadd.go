// Package fixadd implements logfix's interactive "add a fix entry" flow,
// grounded on the teacher's internal/llmsh readline-driven prompt loop
// (internal/llmsh/shell.go's Interactive): a readline.Instance reads one
// line at a time, Ctrl-D ends a multi-line field, Ctrl-C aborts the
// whole entry.
package fixadd

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mako10k/logpilot/internal/logmodel"
)

// Prompt walks the user through entering one FixEntry's fields
// interactively. tags, if non-empty, is used instead of prompting for
// tags (so --tags on the command line overrides the interactive prompt).
func Prompt(tags []string) (logmodel.FixEntry, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "logfix> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		return logmodel.FixEntry{}, fmt.Errorf("start readline: %w", err)
	}
	defer rl.Close()

	pattern, err := readField(rl, "pattern (plain substring): ")
	if err != nil {
		return logmodel.FixEntry{}, err
	}
	if pattern == "" {
		return logmodel.FixEntry{}, fmt.Errorf("pattern is required")
	}

	regex, err := readField(rl, "regex (blank for none): ")
	if err != nil {
		return logmodel.FixEntry{}, err
	}

	if len(tags) == 0 {
		tagLine, err := readField(rl, "tags (comma-separated): ")
		if err != nil {
			return logmodel.FixEntry{}, err
		}
		for _, t := range strings.Split(tagLine, ",") {
			t = strings.TrimSpace(t)
			if t != "" {
				tags = append(tags, t)
			}
		}
	}
	if len(tags) == 0 {
		return logmodel.FixEntry{}, fmt.Errorf("at least one tag is required")
	}

	fmt.Println("fix text (end with a blank line):")
	fixText, err := readMultiline(rl)
	if err != nil {
		return logmodel.FixEntry{}, err
	}
	if strings.TrimSpace(fixText) == "" {
		return logmodel.FixEntry{}, fmt.Errorf("fix text is required")
	}

	severity, err := readField(rl, "severity (blank for none): ")
	if err != nil {
		return logmodel.FixEntry{}, err
	}

	return logmodel.FixEntry{
		Pattern:  pattern,
		Regex:    regex,
		Tags:     tags,
		FixText:  strings.TrimRight(fixText, "\n"),
		Severity: severity,
	}, nil
}

func readField(rl *readline.Instance, prompt string) (string, error) {
	rl.SetPrompt(prompt)
	line, err := rl.Readline()
	if err != nil {
		if err == readline.ErrInterrupt {
			return "", fmt.Errorf("aborted")
		}
		if err == io.EOF {
			return "", fmt.Errorf("aborted")
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func readMultiline(rl *readline.Instance) (string, error) {
	rl.SetPrompt("... ")
	var b strings.Builder
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				return "", fmt.Errorf("aborted")
			}
			if err == io.EOF {
				break
			}
			return "", err
		}
		if line == "" {
			break
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String(), nil
}
