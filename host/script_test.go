package host

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "key", "key": "3"},
			{"action": "wait", "frames": 3},
			{"action": "screenshot", "label": "running"},
			{"action": "quit"}
		]
	}`)
	s, err := LoadScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(s.steps))
	}
	if s.steps[1].Action != "wait" || s.steps[1].Frames != 3 {
		t.Error("step 1 mismatch")
	}
}

func TestLoadScript_Invalid(t *testing.T) {
	for _, data := range []string{
		`not json`,
		`{"steps": []}`,
		`{"steps": [{"action": "key", "key": "12"}]}`,
		`{"steps": [{"action": "click"}]}`,
	} {
		if _, err := LoadScript([]byte(data)); err == nil {
			t.Errorf("LoadScript(%s) should fail", data)
		}
	}
}

func TestScriptDrivesHost(t *testing.T) {
	script := []byte(`{"steps": [
		{"action": "key", "key": "4"},
		{"action": "wait", "frames": 2},
		{"action": "key", "key": "m"},
		{"action": "quit"}
	]}`)
	h, _ := newTestHost(t, Config{Script: script})

	h.step(1.0 / 60)
	if got := h.Session().StatusText(); got != "30:00" {
		t.Fatalf("after first frame StatusText = %q", got)
	}
	// Two wait frames.
	h.step(1.0 / 60)
	h.step(1.0 / 60)
	if h.script.Done() {
		t.Fatal("script finished early")
	}
	h.step(1.0 / 60)
	if got := h.Session().MusicText(); got != "Music: off" {
		t.Errorf("MusicText = %q; no track attached so toggling is a no-op", got)
	}
	if err := h.step(1.0 / 60); !errors.Is(err, ebiten.Termination) {
		t.Errorf("quit step = %v", err)
	}
	if !h.script.Done() {
		t.Error("script should be done")
	}
}

func TestBadScriptRejected(t *testing.T) {
	if _, err := New(Config{Script: []byte(`{}`)}); err == nil {
		t.Error("New should reject an empty script")
	}
}
