package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mako10k/logpilot/internal/logmodel"
	"gopkg.in/yaml.v3"
)

// LoadFixEntries parses one fix entry file (§6.3): a YAML document,
// optionally with "---" separators for multiple entries, each carrying
// pattern/tags/fix and optionally regex/context/severity/resolved/
// commit_ref. Missing fields are not checked here (see toFixEntry).
// Malformed documents are a Config-kind error: the caller should report
// and skip that file, not abort the run.
func LoadFixEntries(path string) ([]logmodel.FixEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fix file %s: %w", path, err)
	}
	defer f.Close()

	entries, err := ParseFixEntries(f)
	if err != nil {
		return nil, fmt.Errorf("parse fix file %s: %w", path, err)
	}
	for i := range entries {
		entries[i].SourcePath = path
	}
	return entries, nil
}

// ParseFixEntries decodes every "---"-separated YAML document in r into
// a FixEntry. Documents with none of pattern, tags and fix are skipped;
// an entry missing only some of them is kept as is.
func ParseFixEntries(r io.Reader) ([]logmodel.FixEntry, error) {
	dec := yaml.NewDecoder(r)
	var entries []logmodel.FixEntry

	for {
		var raw rawFixEntry
		err := dec.Decode(&raw)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode yaml document: %w", err)
		}
		if raw.isEmpty() {
			continue
		}

		entries = append(entries, raw.toFixEntry())
	}

	return entries, nil
}

// AppendFixEntry appends one fix entry to path as a "---"-separated YAML
// document, creating the file (and its parent directory) if needed.
func AppendFixEntry(path string, e logmodel.FixEntry) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create fix directory %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open fix file %s: %w", path, err)
	}
	defer f.Close()

	raw := rawFixEntry{
		Pattern:   e.Pattern,
		Regex:     e.Regex,
		Tags:      e.Tags,
		Fix:       e.FixText,
		Context:   e.Context,
		Severity:  e.Severity,
		Resolved:  e.Resolved,
		CommitRef: e.CommitRef,
	}

	if info, statErr := os.Stat(path); statErr == nil && info.Size() > 0 {
		if _, err := f.WriteString("---\n"); err != nil {
			return fmt.Errorf("write fix file %s: %w", path, err)
		}
	}

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(raw); err != nil {
		return fmt.Errorf("encode fix entry: %w", err)
	}
	return enc.Close()
}

// rawFixEntry mirrors logmodel.FixEntry but accepts "fix" as either a
// plain scalar or a YAML block scalar (both decode to string via
// yaml.v3), matching §6.3's "fix (block scalar permitted)".
type rawFixEntry struct {
	Pattern   string   `yaml:"pattern"`
	Regex     string   `yaml:"regex"`
	Tags      []string `yaml:"tags"`
	Fix       string   `yaml:"fix"`
	Context   string   `yaml:"context"`
	Severity  string   `yaml:"severity"`
	Resolved  bool     `yaml:"resolved"`
	CommitRef string   `yaml:"commit_ref"`
}

func (r rawFixEntry) isEmpty() bool {
	return r.Pattern == "" && r.Fix == "" && len(r.Tags) == 0
}

// toFixEntry converts the raw decode into a logmodel.FixEntry without
// rejecting missing required fields: per spec.md §7, a fix entry missing
// pattern/tags/fix is a Validation-kind error, reported and counted by
// --validate (internal/validate.FixEntry), not a Config-kind load
// failure that would drop the whole file.
func (r rawFixEntry) toFixEntry() logmodel.FixEntry {
	return logmodel.FixEntry{
		Pattern:   r.Pattern,
		Regex:     r.Regex,
		Tags:      r.Tags,
		FixText:   r.Fix,
		Context:   r.Context,
		Severity:  r.Severity,
		Resolved:  r.Resolved,
		CommitRef: r.CommitRef,
	}
}
