package host

import (
	"time"

	"github.com/phanxgames/stillwater"
)

// Config holds the settings for a windowed session. The zero value is a
// fully procedural scene with synthesised audio.
type Config struct {
	// Title is the window title. Defaults to "Stillwater".
	Title string
	// Scale multiplies the 800x600 window size. Defaults to 1.
	Scale float64

	// BackgroundPath is an optional PNG or JPEG backdrop. A file that fails
	// to load is logged and the procedural sky is drawn instead.
	BackgroundPath string
	// MusicPath and ChimePath are optional MP3 or WAV assets. Without them,
	// or if they fail to decode, the synthesised drone and bell are used.
	MusicPath string
	ChimePath string
	// MusicVolume and ChimeVolume are linear gains in [0, 1]. Zero selects
	// the default (0.5 and 1).
	MusicVolume float64
	ChimeVolume float64
	// Mute skips audio setup entirely.
	Mute bool

	// Figure draws the seated silhouette.
	Figure bool
	// Seed fixes the scene variation. Zero derives one from the clock.
	Seed uint64

	// Debug prints frame stats to stderr and shows FPS in the HUD.
	Debug bool
	// ScreenshotDir receives PNGs taken with the S key or a script.
	ScreenshotDir string
	// Script is an optional JSON key script run on launch.
	Script []byte

	// Clock drives the countdown. Nil uses the wall clock.
	Clock stillwater.Clock
}

func (c Config) withDefaults() Config {
	if c.Title == "" {
		c.Title = "Stillwater"
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.MusicVolume <= 0 {
		c.MusicVolume = 0.5
	}
	if c.ChimeVolume <= 0 {
		c.ChimeVolume = 1
	}
	if c.Seed == 0 {
		c.Seed = uint64(time.Now().UnixNano())
	}
	if c.Clock == nil {
		c.Clock = stillwater.WallClock{}
	}
	return c
}
