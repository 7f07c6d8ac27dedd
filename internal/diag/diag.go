// Package diag provides structured, best-effort diagnostic logging for
// the logpilot pipeline, adapted from the teacher's audit-logging
// package (internal/security in the originating repo): same JSON-lines
// sink and never-fail-the-caller shape, repurposed here for pipeline
// events (config loads, mode detection, fix matching) instead of
// account/session audit trail.
package diag

import (
	"encoding/json"
	"io"
	"log"
	"sync"
	"time"
)

// Event is one structured diagnostic record.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Kind      string    `json:"kind"`
	Resource  string    `json:"resource"`
	Detail    string    `json:"detail"`
	Success   bool      `json:"success"`
}

// Event kinds recognized by the pipeline.
const (
	KindConfigLoad  = "CONFIG_LOAD"
	KindModeDetect  = "MODE_DETECT"
	KindFixMatch    = "FIX_MATCH"
	KindFixValidate = "FIX_VALIDATE"
)

// Recorder writes Events as JSON lines to an underlying writer, guarded
// by a mutex since the pipeline is otherwise single-threaded but a
// Recorder may be shared across a process's lifetime.
type Recorder struct {
	w      io.Writer
	mu     sync.Mutex
	closed bool
}

// NewRecorder wraps w (the binaries pass os.Stderr, unconditionally) as
// a diagnostic sink.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{w: w}
}

// Log writes one event. A write failure never propagates to the
// caller — diagnostics must not derail the pipeline — it's only logged
// via the standard logger as a last resort.
func (r *Recorder) Log(ev Event) {
	if r == nil || r.w == nil || r.closed {
		return
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("diag: failed to marshal event: %v", err)
		return
	}
	if _, err := r.w.Write(append(data, '\n')); err != nil {
		log.Printf("diag: failed to write event: %v", err)
	}
}

var (
	global     *Recorder
	globalOnce sync.Once
)

// Init installs the process-global recorder. Safe to call once; later
// calls are ignored, matching the teacher's sync.Once-guarded global
// manager pattern.
func Init(w io.Writer) {
	globalOnce.Do(func() {
		global = NewRecorder(w)
	})
}

// Global returns the process-global recorder, or nil if Init was never
// called (in which case logging is a silent no-op).
func Global() *Recorder { return global }

// ConfigLoad logs a mode/fix config file load attempt.
func ConfigLoad(path string, success bool, detail string) {
	logGlobal(Event{Kind: KindConfigLoad, Resource: path, Success: success, Detail: detail})
}

// ModeDetect logs which mode was selected for a run.
func ModeDetect(name string, success bool, detail string) {
	logGlobal(Event{Kind: KindModeDetect, Resource: name, Success: success, Detail: detail})
}

// FixMatch logs a fix-matching query and how many entries passed
// threshold.
func FixMatch(query string, success bool, detail string) {
	logGlobal(Event{Kind: KindFixMatch, Resource: query, Success: success, Detail: detail})
}

// FixValidate logs one entry's validation outcome.
func FixValidate(pattern string, success bool, detail string) {
	logGlobal(Event{Kind: KindFixValidate, Resource: pattern, Success: success, Detail: detail})
}

func logGlobal(ev Event) {
	if g := Global(); g != nil {
		g.Log(ev)
	}
}
