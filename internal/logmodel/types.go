// Package logmodel holds the shared data types that flow through the
// logpilot pipeline: lines, segments, dedup entries, mode profiles, fix
// entries, and the budget packer's result.
package logmodel

// Line is a single input record: its text plus its zero-based ordinal
// within the run. Lines are owned by a single buffer for the full run;
// everything downstream borrows by index.
type Line struct {
	Text    string
	Ordinal int
}

// SegType classifies a Segment. The declared order is significant: the
// segmenter's "promote on stronger finding" comparison relies on it
// exactly as given here (ERROR upgrades anything; WARNING only upgrades
// NORMAL). This ordering is counterintuitive — NORMAL sorts after
// BOILERPLATE — and must not be "fixed" to something more alphabetical.
type SegType int

const (
	SegError SegType = iota
	SegWarning
	SegInfo
	SegData
	SegPhase
	SegBuildProgress
	SegBoilerplate
	SegNormal
)

// String returns the short human label used as Segment.Label.
func (t SegType) String() string {
	switch t {
	case SegError:
		return "ERROR"
	case SegWarning:
		return "WARNING"
	case SegInfo:
		return "INFO"
	case SegData:
		return "DATA"
	case SegPhase:
		return "PHASE"
	case SegBuildProgress:
		return "BUILD_PROGRESS"
	case SegBoilerplate:
		return "BOILERPLATE"
	case SegNormal:
		return "NORMAL"
	default:
		return "UNKNOWN"
	}
}

// Segment is a contiguous, inclusive range [Start, End] of line ordinals
// with a type and score. Segments are created once by the segmenter and
// never mutated thereafter except for Score.
type Segment struct {
	Start      int
	End        int
	Type       SegType
	Label      string
	LineCount  int
	TokenCount int
	Score      float32
}

// DedupEntry tracks one normalized line's frequency and first-seen
// position in the dedup table.
type DedupEntry struct {
	Normalized string
	Original   string
	FirstLine  int
	Count      int
	Hash       uint64
}

// ModeProfile is a named configuration profile tailoring detection,
// normalization, classification, and scoring to one build ecosystem.
type ModeProfile struct {
	Name               string
	Description        string
	Signatures         []string
	StripPatterns      []string
	PhaseMarkers       []string
	BlockTriggers      []string
	BoilerplatePatterns []string
	DropContains       []string
	KeepOnceContains   []string
	Keywords           []string
	ErrorPatterns      []string
	WarningPatterns    []string
	ProgressPattern    string
}

// GenericModeName is the sentinel mode name used when no profile scores
// above zero, or no profile set is loaded at all.
const GenericModeName = "generic"

// FixEntry is one knowledge-base entry consulted by the fix matcher.
type FixEntry struct {
	Pattern    string   `yaml:"pattern"`
	Regex      string   `yaml:"regex,omitempty"`
	Tags       []string `yaml:"tags"`
	FixText    string   `yaml:"fix"`
	Context    string   `yaml:"context,omitempty"`
	Severity   string   `yaml:"severity,omitempty"`
	Resolved   bool     `yaml:"resolved,omitempty"`
	CommitRef  string   `yaml:"commit_ref,omitempty"`
	SourcePath string   `yaml:"-"`
}

// FixMatch pairs a FixEntry with the confidence the matcher assigned it.
type FixMatch struct {
	Entry      FixEntry
	Confidence float64
}

// BudgetResult is the budget packer's output: the segment indices chosen,
// in original line-position order, plus the token accounting.
type BudgetResult struct {
	Indices      []int
	Count        int
	TotalTokens  int
	BudgetTokens int
}
