// Package normalize applies ordered regex strip patterns and whitespace
// collapsing to a line, producing the canonical form the dedup table
// keys on.
package normalize

import (
	"regexp"
	"strings"
	"sync"
)

// patternCache compiles strip patterns once per distinct pattern string
// and tolerates compilation failures by skipping the offending pattern,
// per the spec's error-handling design (regex compile failures never
// abort the run).
type patternCache struct {
	mu    sync.Mutex
	cache map[string]*regexp.Regexp
}

var cache = &patternCache{cache: make(map[string]*regexp.Regexp)}

func (c *patternCache) compile(pattern string) *regexp.Regexp {
	c.mu.Lock()
	defer c.mu.Unlock()
	if re, ok := c.cache[pattern]; ok {
		return re
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		c.cache[pattern] = nil
		return nil
	}
	c.cache[pattern] = re
	return re
}

// Line normalizes a single line against an ordered list of strip
// patterns. Each pattern is applied in turn: every non-empty match is
// replaced with a single space, patterns are not composed into one
// regex. Whitespace runs are then collapsed to one space and the result
// is trimmed. An empty pattern list degenerates to trim+collapse only.
func Line(line string, stripPatterns []string) string {
	out := line
	for _, pattern := range stripPatterns {
		re := cache.compile(pattern)
		if re == nil {
			continue
		}
		out = re.ReplaceAllStringFunc(out, func(m string) string {
			if m == "" {
				return m
			}
			return " "
		})
	}
	return collapse(out)
}

var whitespaceRun = regexp.MustCompile(`\s+`)

func collapse(s string) string {
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
