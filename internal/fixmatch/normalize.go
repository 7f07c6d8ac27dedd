package fixmatch

import (
	"regexp"
	"strings"
)

var (
	fsPathRe  = regexp.MustCompile(`[/\\][^\s:\n]*`)
	hexRe     = regexp.MustCompile(`0[xX][0-9a-fA-F]+`)
	digitRunRe = regexp.MustCompile(`[0-9]+`)
)

// normalizeForMatch applies the match-normalization chain shared by
// error text and fix patterns before LCS: lowercase, elide filesystem
// paths, elide hex literals, collapse digit runs to "#".
func normalizeForMatch(s string) string {
	s = strings.ToLower(s)
	s = fsPathRe.ReplaceAllString(s, " ")
	s = hexRe.ReplaceAllString(s, " ")
	s = digitRunRe.ReplaceAllString(s, "#")
	return s
}
