// Package ebitenaudio plays the session music and chime through ebiten's
// audio package. Music loops forever; the chime is decoded once and every
// Play starts an independent player, so overlapping chimes are allowed.
package ebitenaudio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// SampleRate is the rate of the shared audio context.
const SampleRate = 48000

// ErrDecode wraps every failure to decode an audio asset.
var ErrDecode = errors.New("ebitenaudio: decode failed")

// Format identifies an encoded audio asset.
type Format uint8

const (
	FormatMP3 Format = iota
	FormatWAV
)

// FormatFromPath picks the decoder from a file extension. Anything that is
// not .wav is treated as MP3.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		return FormatWAV
	}
	return FormatMP3
}

// Context returns the process-wide audio context, creating it on first use.
// ebiten allows only one context per process.
func Context() *audio.Context {
	if ctx := audio.CurrentContext(); ctx != nil {
		return ctx
	}
	return audio.NewContext(SampleRate)
}

// decode reads all of r and returns a seekable PCM stream at sampleRate.
func decode(sampleRate int, format Format, r io.Reader) (io.ReadSeeker, int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: read: %w", ErrDecode, err)
	}
	src := bytes.NewReader(data)
	switch format {
	case FormatWAV:
		s, err := wav.DecodeWithSampleRate(sampleRate, src)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: wav: %w", ErrDecode, err)
		}
		return s, s.Length(), nil
	default:
		s, err := mp3.DecodeWithSampleRate(sampleRate, src)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: mp3: %w", ErrDecode, err)
		}
		return s, s.Length(), nil
	}
}

// Music is a looping background track.
type Music struct {
	player *audio.Player
}

// NewMusic decodes r and prepares an infinitely looping player at volume
// (0 to 1). The track starts paused.
func NewMusic(ctx *audio.Context, format Format, r io.Reader, volume float64) (*Music, error) {
	stream, length, err := decode(ctx.SampleRate(), format, r)
	if err != nil {
		return nil, err
	}
	player, err := ctx.NewPlayer(audio.NewInfiniteLoop(stream, length))
	if err != nil {
		return nil, fmt.Errorf("ebitenaudio: music player: %w", err)
	}
	player.SetVolume(clampVolume(volume))
	return &Music{player: player}, nil
}

// NewMusicStream plays an endless signed 16-bit stereo PCM stream at the
// context rate, such as a synthesised drone. The track starts paused.
func NewMusicStream(ctx *audio.Context, pcm io.Reader, volume float64) (*Music, error) {
	player, err := ctx.NewPlayer(pcm)
	if err != nil {
		return nil, fmt.Errorf("ebitenaudio: music player: %w", err)
	}
	player.SetVolume(clampVolume(volume))
	return &Music{player: player}, nil
}

// Play resumes the track from where it was paused.
func (m *Music) Play() { m.player.Play() }

// Stop pauses the track.
func (m *Music) Stop() { m.player.Pause() }

// Close releases the player.
func (m *Music) Close() error { return m.player.Close() }

// Chime is a one-shot clip held as decoded PCM.
type Chime struct {
	ctx     *audio.Context
	pcm     []byte
	volume  float64
	players []*audio.Player
}

// NewChime decodes r fully into memory.
func NewChime(ctx *audio.Context, format Format, r io.Reader, volume float64) (*Chime, error) {
	stream, _, err := decode(ctx.SampleRate(), format, r)
	if err != nil {
		return nil, err
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("%w: pcm: %w", ErrDecode, err)
	}
	return &Chime{ctx: ctx, pcm: pcm, volume: clampVolume(volume)}, nil
}

// NewChimePCM reads a finite signed 16-bit stereo PCM clip at the context
// rate.
func NewChimePCM(ctx *audio.Context, pcm io.Reader, volume float64) (*Chime, error) {
	data, err := io.ReadAll(pcm)
	if err != nil {
		return nil, fmt.Errorf("%w: pcm: %w", ErrDecode, err)
	}
	return &Chime{ctx: ctx, pcm: data, volume: clampVolume(volume)}, nil
}

// Play starts a fresh playback of the clip without waiting for it. Players
// that have finished are released first.
func (c *Chime) Play() {
	c.prune()
	p := c.ctx.NewPlayerFromBytes(c.pcm)
	p.SetVolume(c.volume)
	p.Play()
	c.players = append(c.players, p)
}

func (c *Chime) prune() {
	kept := c.players[:0]
	for _, p := range c.players {
		if p.IsPlaying() {
			kept = append(kept, p)
			continue
		}
		_ = p.Close()
	}
	clear(c.players[len(kept):])
	c.players = kept
}

// Close stops and releases every player.
func (c *Chime) Close() error {
	var firstErr error
	for _, p := range c.players {
		if err := p.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.players = nil
	return firstErr
}

func clampVolume(v float64) float64 {
	return min(max(v, 0), 1)
}
