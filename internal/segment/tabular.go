package segment

// IsTabular reports whether a slice of lines looks like column-aligned
// data: at least 3 lines, and at least one of the first 5 sampled lines
// has 2 or more columns (non-whitespace runs separated by runs of >=1
// space/tab), i.e. at least one column transition.
func IsTabular(lines []string) bool {
	if len(lines) < 3 {
		return false
	}

	sample := lines
	if len(sample) > 5 {
		sample = sample[:5]
	}

	maxCols := 0
	for _, line := range sample {
		cols := countColumns(line)
		if cols > maxCols {
			maxCols = cols
		}
	}
	return maxCols >= 2
}

// countColumns counts whitespace-separated non-whitespace runs.
func countColumns(line string) int {
	cols := 0
	inRun := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		isWS := c == ' ' || c == '\t'
		if !isWS && !inRun {
			cols++
			inRun = true
		} else if isWS {
			inRun = false
		}
	}
	return cols
}
