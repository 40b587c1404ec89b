package host

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// scriptStep is a single action in a key script.
type scriptStep struct {
	Action string `json:"action"`
	Key    string `json:"key,omitempty"`
	Label  string `json:"label,omitempty"`
	Frames int    `json:"frames,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script sequences injected keys, waits and screenshots across frames, for
// unattended demos and visual checks. Actions are "key", "wait",
// "screenshot" and "quit".
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON key script.
func LoadScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "key":
			if utf8.RuneCountInString(st.Key) != 1 {
				return nil, fmt.Errorf("parse script: step %d: key must be one character, got %q", i, st.Key)
			}
		case "wait", "screenshot", "quit":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// Done reports whether every step has run.
func (s *Script) Done() bool {
	return s.done
}

// step advances the script by one frame. Called from Host.Update before
// queued keys are handled.
func (s *Script) step(h *Host) {
	if s.done {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "key":
		r, _ := utf8.DecodeRuneInString(st.Key)
		h.InjectKey(r)
	case "screenshot":
		h.renderer.Screenshot(st.Label)
	case "quit":
		h.InjectKey(keyQuit)
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 {
		s.done = true
	}
}
