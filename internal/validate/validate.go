// Package validate runs a second, independently-grounded validation pass
// over fix entries using a JSON Schema, for logfix --validate. Parsing in
// internal/config does not check required fields; this package is where
// a missing or empty pattern/tags/fix is reported, with schema-shaped
// diagnostics (which field, what constraint).
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mako10k/logpilot/internal/logmodel"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const fixEntrySchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["pattern", "tags", "fix"],
	"properties": {
		"pattern": {"type": "string", "minLength": 1},
		"tags": {"type": "array", "minItems": 1, "items": {"type": "string"}},
		"fix": {"type": "string", "minLength": 1},
		"regex": {"type": "string"},
		"context": {"type": "string"},
		"severity": {"type": "string"},
		"resolved": {"type": "boolean"},
		"commit_ref": {"type": "string"}
	}
}`

var schema = mustCompile()

func mustCompile() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	mustJSON(fixEntrySchema)
	if err := compiler.AddResource("fix_entry.json", strings.NewReader(fixEntrySchema)); err != nil {
		panic(fmt.Sprintf("validate: invalid embedded schema: %v", err))
	}
	s, err := compiler.Compile("fix_entry.json")
	if err != nil {
		panic(fmt.Sprintf("validate: schema compile failed: %v", err))
	}
	return s
}

func mustJSON(s string) any {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		panic(fmt.Sprintf("validate: embedded schema is not valid JSON: %v", err))
	}
	return v
}

// FixEntry validates one fix entry against the schema, returning a
// descriptive error naming the offending field(s) if invalid.
func FixEntry(e logmodel.FixEntry) error {
	// The validator accepts only JSON-shaped Go values, so tags go in as
	// []any rather than []string.
	tags := make([]any, 0, len(e.Tags))
	for _, t := range e.Tags {
		tags = append(tags, t)
	}
	instance := map[string]any{
		"pattern": e.Pattern,
		"tags":    tags,
		"fix":     e.FixText,
	}
	if e.Regex != "" {
		instance["regex"] = e.Regex
	}
	if e.Context != "" {
		instance["context"] = e.Context
	}
	if e.Severity != "" {
		instance["severity"] = e.Severity
	}
	instance["resolved"] = e.Resolved
	if e.CommitRef != "" {
		instance["commit_ref"] = e.CommitRef
	}

	if err := schema.Validate(instance); err != nil {
		return fmt.Errorf("fix entry %q invalid: %w", e.Pattern, err)
	}
	return nil
}
