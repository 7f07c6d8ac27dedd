package render

import (
	"bytes"
	"encoding/json"

	"github.com/mako10k/logpilot/internal/logmodel"
	"github.com/mako10k/logpilot/internal/summary"
)

// jsonSummary mirrors summary.Summary with the JSON field names §4.10
// wants for the digest's "summary" object.
type jsonSummary struct {
	Board             string `json:"board,omitempty"`
	ZephyrVersion     string `json:"zephyr_version,omitempty"`
	CCompilerID       string `json:"c_compiler_id,omitempty"`
	DevicetreeOverlay string `json:"devicetree_overlay,omitempty"`
	Flash             string `json:"flash,omitempty"`
	RAM               string `json:"ram,omitempty"`
	WroteBytesTo      string `json:"wrote_bytes_to,omitempty"`
	MaxStep           int    `json:"max_step,omitempty"`
	MaxTotalSteps     int    `json:"max_total_steps,omitempty"`
	Failed            bool   `json:"failed"`
}

type jsonFrequencyEntry struct {
	Count int    `json:"count"`
	Line  string `json:"line"`
}

type jsonSegment struct {
	Type      string   `json:"type"`
	StartLine int      `json:"start_line"`
	EndLine   int       `json:"end_line"`
	Score     float32  `json:"score"`
	Lines     []string `json:"lines"`
}

type jsonDigest struct {
	Mode            string               `json:"mode"`
	TotalLines      int                  `json:"total_lines"`
	CompressedLines int                  `json:"compressed_lines"`
	ReductionPct    float64              `json:"reduction_pct"`
	ErrorBlocks     int                  `json:"error_blocks"`
	WarningBlocks   int                  `json:"warning_blocks"`
	Summary         jsonSummary          `json:"summary"`
	Frequency       []jsonFrequencyEntry `json:"frequency"`
	Segments        []jsonSegment        `json:"segments"`
}

// JSON renders the digest as an RFC 8259-conformant JSON object. Line
// numbers in the output are one-based; everything internal stays
// zero-based until this boundary.
func JSON(d Digest) ([]byte, error) {
	out := jsonDigest{
		Mode:            d.Mode,
		TotalLines:      d.TotalLines,
		CompressedLines: d.CompressedLines,
		ReductionPct:    d.ReductionPct,
		ErrorBlocks:     d.ErrorBlocks,
		WarningBlocks:   d.WarningBlocks,
		Summary:         toJSONSummary(d.Summary),
	}

	for _, e := range d.Frequency {
		out.Frequency = append(out.Frequency, jsonFrequencyEntry{Count: e.Count, Line: e.Original})
	}

	for _, idx := range d.Packed.Indices {
		seg := d.Segments[idx]
		if seg.Type == logmodel.SegBuildProgress || seg.Type == logmodel.SegBoilerplate {
			continue
		}
		lines := make([]string, 0, seg.LineCount)
		for ln := seg.Start; ln <= seg.End; ln++ {
			lines = append(lines, d.Lines[ln])
		}
		out.Segments = append(out.Segments, jsonSegment{
			Type:      seg.Type.String(),
			StartLine: seg.Start + 1,
			EndLine:   seg.End + 1,
			Score:     seg.Score,
			Lines:     lines,
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func toJSONSummary(s summary.Summary) jsonSummary {
	return jsonSummary{
		Board:             s.Board,
		ZephyrVersion:     s.ZephyrVersion,
		CCompilerID:       s.CCompilerID,
		DevicetreeOverlay: s.DevicetreeOverlay,
		Flash:             s.Flash,
		RAM:               s.RAM,
		WroteBytesTo:      s.WroteBytesTo,
		MaxStep:           s.MaxStep,
		MaxTotalSteps:     s.MaxTotalSteps,
		Failed:            s.Failed,
	}
}
