package ebitenaudio

import (
	"errors"
	"strings"
	"testing"
)

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"assets/chime.wav": FormatWAV,
		"assets/CHIME.WAV": FormatWAV,
		"assets/music.mp3": FormatMP3,
		"assets/music":     FormatMP3,
		"assets/wav/a.mp3": FormatMP3,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %d, want %d", path, got, want)
		}
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	for _, f := range []Format{FormatMP3, FormatWAV} {
		_, _, err := decode(SampleRate, f, strings.NewReader("definitely not audio"))
		if !errors.Is(err, ErrDecode) {
			t.Errorf("format %d: err = %v, want ErrDecode", f, err)
		}
	}
}

func TestClampVolume(t *testing.T) {
	for in, want := range map[float64]float64{-1: 0, 0.5: 0.5, 2: 1} {
		if got := clampVolume(in); got != want {
			t.Errorf("clampVolume(%v) = %v, want %v", in, got, want)
		}
	}
}
