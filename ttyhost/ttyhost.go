// Package ttyhost runs a session in a terminal: the countdown, music state
// and a rippling waterline drawn with tcell, and optional beep audio.
package ttyhost

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/stillwater"
	"github.com/phanxgames/stillwater/beepaudio"
)

// DefaultTickInterval is how often the countdown is polled and the screen
// redrawn.
const DefaultTickInterval = 100 * time.Millisecond

// Config holds the settings for a terminal session.
type Config struct {
	// Audio enables sound through the beep speaker.
	Audio bool
	// MusicPath and ChimePath are optional MP3 assets. Without them, or if
	// they fail to decode, the synthesised drone and bell are used.
	MusicPath string
	ChimePath string
	// MusicVolume is a linear gain in [0, 1]. Zero selects 0.5.
	MusicVolume float64
	// TickInterval defaults to DefaultTickInterval.
	TickInterval time.Duration
	// Clock drives the countdown. Nil uses the wall clock.
	Clock stillwater.Clock
}

func (c Config) withDefaults() Config {
	if c.MusicVolume <= 0 {
		c.MusicVolume = 0.5
	}
	if c.TickInterval <= 0 {
		c.TickInterval = DefaultTickInterval
	}
	if c.Clock == nil {
		c.Clock = stillwater.WallClock{}
	}
	return c
}

// App owns the screen and the session. The session is only touched from the
// goroutine running Loop.
type App struct {
	cfg     Config
	screen  tcell.Screen
	session *stillwater.Session
	output  *beepaudio.Output
	frame   int
	closed  bool
}

// New initialises screen and returns an idle app drawing to it.
func New(screen tcell.Screen, cfg Config) (*App, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("ttyhost: init screen: %w", err)
	}
	cfg = cfg.withDefaults()
	screen.SetStyle(baseStyle)
	screen.HideCursor()
	return &App{
		cfg:     cfg,
		screen:  screen,
		session: stillwater.NewSession(cfg.Clock),
	}, nil
}

// Session returns the timer and audio state the app drives.
func (a *App) Session() *stillwater.Session {
	return a.session
}

// AttachAudio plays the music and chime through out, which the app closes
// with itself. Assets that fail to load are logged and synthesised instead.
func (a *App) AttachAudio(out *beepaudio.Output) {
	a.output = out

	var music *beepaudio.Music
	if a.cfg.MusicPath != "" {
		m, err := loadAsset(a.cfg.MusicPath, func(f *os.File) (*beepaudio.Music, error) {
			return out.LoadMusic(f, a.cfg.MusicVolume)
		})
		if err != nil {
			log.Printf("stillwater: music %s: %v; using synthesised drone", a.cfg.MusicPath, err)
		}
		music = m
	}
	if music == nil {
		music = out.NewSynthMusic(a.cfg.MusicVolume)
	}
	a.session.Audio.AttachMusic(music)

	var chime *beepaudio.Chime
	if a.cfg.ChimePath != "" {
		c, err := loadAsset(a.cfg.ChimePath, func(f *os.File) (*beepaudio.Chime, error) {
			return out.LoadChime(f, 1)
		})
		if err != nil {
			log.Printf("stillwater: chime %s: %v; using synthesised bell", a.cfg.ChimePath, err)
		}
		chime = c
	}
	if chime == nil {
		chime = out.NewSynthChime(1)
	}
	a.session.Audio.AttachChime(chime)
}

// loadAsset opens path for load, which takes ownership of the file.
func loadAsset[T any](path string, load func(*os.File) (*T, error)) (*T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return load(f)
}

// handleEvent applies one terminal event and reports whether the app should
// keep running.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			r := ev.Rune()
			if r == 'q' || r == 'Q' {
				return false
			}
			a.session.HandleKey(r)
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

// tick fires due countdown ticks and advances the waterline.
func (a *App) tick() {
	a.session.Poll()
	a.frame++
}

// Loop reads terminal events and ticks until a quit key, ctx cancellation
// or the screen being finalised.
func (a *App) Loop(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(a.cfg.TickInterval)
	defer ticker.Stop()

	a.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok || !a.handleEvent(ev) {
				return nil
			}
			a.draw()
		case <-ticker.C:
			a.tick()
			a.draw()
		}
	}
}

// Close stops the countdown and audio and restores the terminal. Later calls
// do nothing.
func (a *App) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	err := a.session.Close()
	if a.output != nil {
		if cerr := a.output.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	a.screen.Fini()
	return err
}

// Run opens the terminal and blocks until the user quits or ctx is done.
func Run(ctx context.Context, cfg Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("ttyhost: new screen: %w", err)
	}
	a, err := New(screen, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if cfg.Audio {
		out, err := beepaudio.Init(beepaudio.DefaultSampleRate)
		if err != nil {
			// Non-fatal, the countdown runs silently
			log.Printf("stillwater: audio: %v", err)
		} else {
			a.AttachAudio(out)
		}
	}
	return a.Loop(ctx)
}
