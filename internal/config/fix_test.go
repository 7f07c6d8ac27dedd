package config

import (
	"strings"
	"testing"

	"github.com/mako10k/logpilot/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFixEntriesBasic(t *testing.T) {
	doc := `
pattern: "undefined reference"
tags: [linker, c]
fix: |
  Check that the symbol is defined and linked.
  Add the missing object file to the link line.
severity: high
`
	entries, err := ParseFixEntries(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "undefined reference", entries[0].Pattern)
	assert.Equal(t, []string{"linker", "c"}, entries[0].Tags)
	assert.Contains(t, entries[0].FixText, "missing object file")
	assert.Equal(t, "high", entries[0].Severity)
}

func TestParseFixEntriesMultiDocument(t *testing.T) {
	doc := `
pattern: "a"
tags: [x]
fix: "fix a"
---
pattern: "b"
tags: [y]
fix: "fix b"
`
	entries, err := ParseFixEntries(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Pattern)
	assert.Equal(t, "b", entries[1].Pattern)
}

// A fix entry missing a required field is a Validation-kind error
// (spec.md §7): loading still succeeds so --validate can see and report
// it, rather than silently dropping the whole file as a Config error.
func TestParseFixEntriesMissingRequiredFieldStillLoads(t *testing.T) {
	doc := `
pattern: "a"
fix: "fix a"
`
	entries, err := ParseFixEntries(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].Tags)

	verr := validate.FixEntry(entries[0])
	require.Error(t, verr)
	assert.Contains(t, verr.Error(), "tags")
}

func TestParseModeProfileBasic(t *testing.T) {
	doc := `
[mode]
name = "zephyr"
description = "Zephyr RTOS west build"

[detection]
signatures = ["Zephyr version", "west build"]

[dedup]
strip_patterns = ["0x[0-9a-f]+"]

[interest]
keywords = ["CMake Error"]
`
	p, err := ParseModeProfile(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "zephyr", p.Name)
	assert.Equal(t, []string{"Zephyr version", "west build"}, p.Signatures)
	assert.Equal(t, []string{"0x[0-9a-f]+"}, p.StripPatterns)
	assert.Equal(t, []string{"CMake Error"}, p.Keywords)
}
