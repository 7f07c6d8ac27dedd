// Package dedup implements the open-addressed, FNV-1a-keyed hash table
// used both for frequency-table rendering and as a scoring signal.
//
// We deliberately hand-roll a flat-array, linear-probing table instead of
// reaching for the language's built-in map: Go's map iteration order is
// randomized and unrelated to insertion order, but the first-seen
// ordering (which original line came first) is load-bearing for
// sorted_by_frequency's tie-breaking and for the renderer's "first
// occurrence gets the [xN] annotation" rule. A flat array of records
// gives us that ordering for free via a parallel insertion-order slice.
package dedup

import (
	"sort"

	"github.com/mako10k/logpilot/internal/logmodel"
	"github.com/mako10k/logpilot/internal/normalize"
)

const minCapacity = 64
const maxLoadFactor = 0.7

type record struct {
	occupied   bool
	hash       uint64
	normalized string
	original   string
	firstLine  int
	count      int
}

// Table is the open-addressed dedup hash table. Zero value is not usable;
// construct with New.
type Table struct {
	records []record
	size    int
	order   []int // indices into records, in insertion order
}

// New creates an empty table sized to the next power of two >= 64.
func New() *Table {
	return &Table{records: make([]record, minCapacity)}
}

// Insert normalizes line with stripPatterns, hashes the normalized form,
// and either increments an existing entry's count or creates a new one
// with count=1. The returned logmodel.DedupEntry is a snapshot, not a
// live view.
func (t *Table) Insert(line string, lineNum int, stripPatterns []string) logmodel.DedupEntry {
	norm := normalize.Line(line, stripPatterns)
	h := FNV1a64(norm)
	idx := t.probe(h, norm)
	if t.records[idx].occupied {
		t.records[idx].count++
		return t.snapshot(idx)
	}

	if float64(t.size+1) > maxLoadFactor*float64(len(t.records)) {
		t.grow()
		idx = t.probe(h, norm)
	}

	t.records[idx] = record{
		occupied:   true,
		hash:       h,
		normalized: norm,
		original:   line,
		firstLine:  lineNum,
		count:      1,
	}
	t.size++
	t.order = append(t.order, idx)
	return t.snapshot(idx)
}

// Lookup returns the entry for a normalized string, if present.
func (t *Table) Lookup(normalized string) (logmodel.DedupEntry, bool) {
	h := FNV1a64(normalized)
	idx := t.probe(h, normalized)
	if !t.records[idx].occupied {
		return logmodel.DedupEntry{}, false
	}
	return t.snapshot(idx), true
}

// LookupByOriginal looks up the count for a raw (un-normalized) line by
// hashing the raw bytes directly and probing for that hash's slot. This
// preserves the documented behavior of the raw-hash lookup path used
// elsewhere in the pipeline (see internal/score's Open Question note):
// it only finds a match when the line's normalization happens to be a
// no-op, since the table is keyed by normalized content but this path
// hashes the unnormalized text.
func (t *Table) LookupByOriginal(line string) int {
	h := FNV1a64(line)
	idx := t.probeHashOnly(h, line)
	if idx < 0 || !t.records[idx].occupied {
		return 0
	}
	return t.records[idx].count
}

// Size returns the number of distinct entries.
func (t *Table) Size() int { return t.size }

// SortedByFrequency returns all entries in stable descending order by
// count, ties broken by insertion (first-seen) order.
func (t *Table) SortedByFrequency() []logmodel.DedupEntry {
	entries := make([]logmodel.DedupEntry, 0, t.size)
	for _, idx := range t.order {
		entries = append(entries, t.snapshot(idx))
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}

// All returns entries in insertion order, for callers that need
// first-seen order directly (e.g. the scorer's top5/bot5 computation).
func (t *Table) All() []logmodel.DedupEntry {
	entries := make([]logmodel.DedupEntry, 0, t.size)
	for _, idx := range t.order {
		entries = append(entries, t.snapshot(idx))
	}
	return entries
}

func (t *Table) snapshot(idx int) logmodel.DedupEntry {
	r := t.records[idx]
	return logmodel.DedupEntry{
		Normalized: r.normalized,
		Original:   r.original,
		FirstLine:  r.firstLine,
		Count:      r.count,
		Hash:       r.hash,
	}
}

// probe finds the slot for (hash, normalized), either the existing
// occupied slot with equal (hash, normalized) or the first empty slot on
// the linear probe sequence.
func (t *Table) probe(hash uint64, normalized string) int {
	mask := uint64(len(t.records) - 1)
	idx := hash & mask
	for {
		r := &t.records[idx]
		if !r.occupied {
			return int(idx)
		}
		if r.hash == hash && r.normalized == normalized {
			return int(idx)
		}
		idx = (idx + 1) & mask
	}
}

// probeHashOnly walks the same linear-probe sequence as probe but matches
// purely on hash equality (no normalized-string comparison), since the
// caller (LookupByOriginal) has only a raw line, not its normalized form.
// Returns -1 if the probe sequence hits an empty slot before finding a
// hash match.
func (t *Table) probeHashOnly(hash uint64, _ string) int {
	if len(t.records) == 0 {
		return -1
	}
	mask := uint64(len(t.records) - 1)
	idx := hash & mask
	for {
		r := &t.records[idx]
		if !r.occupied {
			return -1
		}
		if r.hash == hash {
			return int(idx)
		}
		idx = (idx + 1) & mask
	}
}

// grow doubles capacity and re-probes every occupied record.
func (t *Table) grow() {
	old := t.records
	oldOrder := t.order
	t.records = make([]record, len(old)*2)
	t.order = t.order[:0]

	for _, idx := range oldOrder {
		r := old[idx]
		newIdx := t.probe(r.hash, r.normalized)
		t.records[newIdx] = r
		t.order = append(t.order, newIdx)
	}
}
