package diag

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestRecorderLogWritesJSONLine(t *testing.T) {
	var buf bytes.Buffer
	r := NewRecorder(&buf)

	r.Log(Event{Kind: KindConfigLoad, Resource: "modes/zephyr.toml", Success: true})

	var decoded Event
	if err := json.Unmarshal(bytes.TrimRight(buf.Bytes(), "\n"), &decoded); err != nil {
		t.Fatalf("Log() output did not decode as JSON: %v", err)
	}
	if decoded.Kind != KindConfigLoad || decoded.Resource != "modes/zephyr.toml" || !decoded.Success {
		t.Errorf("decoded event = %+v, mismatch", decoded)
	}
	if decoded.Timestamp.IsZero() {
		t.Error("Log() should stamp a timestamp when none is provided")
	}
}

func TestRecorderNilReceiverIsNoop(t *testing.T) {
	var r *Recorder
	r.Log(Event{Kind: KindModeDetect})
}

func TestGlobalInitOnceThenSingleton(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf)
	Init(&buf) // second call must be ignored, not panic or replace

	if Global() == nil {
		t.Fatal("Global() = nil after Init")
	}
}
