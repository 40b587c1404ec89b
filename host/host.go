// Package host runs a session in an ebiten window: the composed scene, a
// status overlay and keyboard control of the timer and music.
//
//	1-5  start a 5/10/15/30/60 minute countdown
//	M    toggle music
//	C    cancel the countdown
//	S    save a screenshot
//	Esc  quit
package host

import (
	"errors"
	"fmt"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"

	"github.com/gopxl/beep"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/stillwater"
	"github.com/phanxgames/stillwater/beepaudio"
	"github.com/phanxgames/stillwater/ebitenaudio"
	"github.com/phanxgames/stillwater/render"
)

const backgroundKey = "background"

// Host is the ebiten.Game for a session. Update, Draw and Close must be
// called from the game loop goroutine.
type Host struct {
	cfg        Config
	session    *stillwater.Session
	renderer   *render.Renderer
	background *ebiten.Image
	hud        hud
	script     *Script

	injectQueue []rune
	keys        []ebiten.Key
	frame       int
	quit        bool
	closed      bool
}

// New composes the scene and builds its renderer. Audio is attached
// separately with AttachAudio so a host can run without a sound device.
func New(cfg Config) (*Host, error) {
	cfg = cfg.withDefaults()

	var script *Script
	if len(cfg.Script) > 0 {
		s, err := LoadScript(cfg.Script)
		if err != nil {
			return nil, err
		}
		script = s
	}

	var background *ebiten.Image
	if cfg.BackgroundPath != "" {
		img, _, err := ebitenutil.NewImageFromFile(cfg.BackgroundPath)
		if err != nil {
			log.Printf("stillwater: background %s: %v; using procedural sky", cfg.BackgroundPath, err)
		} else {
			background = img
		}
	}

	rng := stillwater.NewRand(cfg.Seed)
	opts := stillwater.ComposeOptions{Rand: rng, Figure: cfg.Figure}
	if background != nil {
		opts.Background = backgroundKey
	}
	r, err := render.New(stillwater.Compose(opts), render.Options{
		Rand:          rng,
		Debug:         cfg.Debug,
		ScreenshotDir: cfg.ScreenshotDir,
	})
	if err != nil {
		if background != nil {
			background.Deallocate()
		}
		return nil, fmt.Errorf("host: build scene: %w", err)
	}
	if background != nil {
		r.SetImage(backgroundKey, background)
	}

	return &Host{
		cfg:        cfg,
		session:    stillwater.NewSession(cfg.Clock),
		renderer:   r,
		background: background,
		script:     script,
	}, nil
}

// Session returns the timer and audio state the host drives.
func (h *Host) Session() *stillwater.Session {
	return h.session
}

// AttachAudio sets up the music and chime on ctx. Asset files that fail to
// load are logged and replaced by the synthesised drone and bell. Music is
// required: an error is returned only when no track could be created.
func (h *Host) AttachAudio(ctx *audio.Context) error {
	rate := beep.SampleRate(ctx.SampleRate())

	music, err := h.loadMusic(ctx, rate)
	if err != nil {
		return fmt.Errorf("host: music: %w", err)
	}
	h.session.Audio.AttachMusic(music)

	chime, err := h.loadChime(ctx, rate)
	if err != nil {
		log.Printf("stillwater: chime: %v; sessions will end silently", err)
		return nil
	}
	h.session.Audio.AttachChime(chime)
	return nil
}

func (h *Host) loadMusic(ctx *audio.Context, rate beep.SampleRate) (*ebitenaudio.Music, error) {
	if path := h.cfg.MusicPath; path != "" {
		m, err := openAsset(path, func(f ebitenaudio.Format, r io.Reader) (*ebitenaudio.Music, error) {
			return ebitenaudio.NewMusic(ctx, f, r, h.cfg.MusicVolume)
		})
		if err == nil {
			return m, nil
		}
		log.Printf("stillwater: music %s: %v; using synthesised drone", path, err)
	}
	return ebitenaudio.NewMusicStream(ctx, beepaudio.NewPCMReader(beepaudio.NewDrone(rate)), h.cfg.MusicVolume)
}

func (h *Host) loadChime(ctx *audio.Context, rate beep.SampleRate) (*ebitenaudio.Chime, error) {
	if path := h.cfg.ChimePath; path != "" {
		c, err := openAsset(path, func(f ebitenaudio.Format, r io.Reader) (*ebitenaudio.Chime, error) {
			return ebitenaudio.NewChime(ctx, f, r, h.cfg.ChimeVolume)
		})
		if err == nil {
			return c, nil
		}
		log.Printf("stillwater: chime %s: %v; using synthesised bell", path, err)
	}
	return ebitenaudio.NewChimePCM(ctx, beepaudio.NewPCMReader(beepaudio.NewBell(rate)), h.cfg.ChimeVolume)
}

// openAsset opens path and hands it to decode. The decoders read the whole
// file, so it is closed on return.
func openAsset[T any](path string, decode func(ebitenaudio.Format, io.Reader) (T, error)) (T, error) {
	f, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, err
	}
	defer f.Close()
	return decode(ebitenaudio.FormatFromPath(path), f)
}

// Update implements ebiten.Game.
func (h *Host) Update() error {
	h.keys = inpututil.AppendJustPressedKeys(h.keys[:0])
	for _, k := range h.keys {
		if r, ok := keyRune(k); ok {
			h.InjectKey(r)
		}
	}
	return h.step(1 / float64(ebiten.TPS()))
}

// step advances one frame of dt seconds.
func (h *Host) step(dt float64) error {
	if h.closed {
		return ebiten.Termination
	}
	h.frame++
	if h.script != nil {
		h.script.step(h)
	}
	h.processKeys()
	h.session.Poll()
	h.renderer.Update(dt)
	if h.quit {
		return ebiten.Termination
	}
	return nil
}

func (h *Host) processKeys() {
	for _, r := range h.injectQueue {
		switch r {
		case keyQuit:
			h.quit = true
		case 's', 'S':
			h.renderer.Screenshot(fmt.Sprintf("frame-%d", h.frame))
		default:
			h.session.HandleKey(r)
		}
	}
	h.injectQueue = h.injectQueue[:0]
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	if h.closed {
		return
	}
	h.renderer.Draw(screen)
	h.hud.draw(screen, h.hudText())
}

// Layout implements ebiten.Game. The scene is drawn at its fixed size and
// scaled to the window.
func (h *Host) Layout(_, _ int) (int, int) {
	return h.renderer.Size()
}

// Close stops the countdown and music and releases every GPU and audio
// resource. Later calls do nothing.
func (h *Host) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	err := h.session.Close()
	h.renderer.Dispose()
	h.hud.dispose()
	if h.background != nil {
		h.background.Deallocate()
		h.background = nil
	}
	return err
}

// Run opens a window and blocks until it is closed or Escape is pressed.
func Run(cfg Config) error {
	h, err := New(cfg)
	if err != nil {
		return err
	}
	defer h.Close()

	if !h.cfg.Mute {
		if err := h.AttachAudio(ebitenaudio.Context()); err != nil {
			return err
		}
	}

	w, ht := h.Layout(0, 0)
	ebiten.SetWindowTitle(h.cfg.Title)
	ebiten.SetWindowSize(int(float64(w)*h.cfg.Scale), int(float64(ht)*h.cfg.Scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(h); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
