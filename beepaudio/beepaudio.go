// Package beepaudio plays the session music and chime through the beep
// speaker. It can synthesise both sounds, so a host runs without any asset
// files, or decode MP3 assets.
//
// Streamers added to the speaker are mutated only under speaker.Lock.
package beepaudio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
)

// DefaultSampleRate is used when Init is given zero.
const DefaultSampleRate = beep.SampleRate(44100)

// resampleQuality is passed to beep.Resample when an asset's rate differs
// from the speaker's.
const resampleQuality = 4

// ErrDecode wraps every failure to decode an audio asset.
var ErrDecode = errors.New("beepaudio: decode failed")

// Output owns the speaker and the mixer every sound is played through.
type Output struct {
	rate   beep.SampleRate
	mixer  *beep.Mixer
	closed bool
}

// Init initialises the speaker at rate with a 100ms buffer and starts the
// mixer. Only one Output should exist per process.
func Init(rate beep.SampleRate) (*Output, error) {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("beepaudio: speaker init: %w", err)
	}
	o := newOutput(rate)
	speaker.Play(o.mixer)
	return o, nil
}

func newOutput(rate beep.SampleRate) *Output {
	return &Output{rate: rate, mixer: &beep.Mixer{}}
}

// SampleRate returns the speaker rate.
func (o *Output) SampleRate() beep.SampleRate {
	return o.rate
}

// Close silences every sound and shuts the speaker down. Later calls do
// nothing.
func (o *Output) Close() error {
	if o.closed {
		return nil
	}
	o.closed = true
	speaker.Lock()
	o.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	return nil
}

// Music is a looping track played through a pausable beep.Ctrl.
type Music struct {
	out    *Output
	ctrl   *beep.Ctrl
	added  bool
	closer io.Closer
}

// NewMusic wraps an endless streamer at volume (0 to 1). It starts paused.
func (o *Output) NewMusic(s beep.Streamer, volume float64) *Music {
	return &Music{
		out:  o,
		ctrl: &beep.Ctrl{Streamer: withVolume(s, volume), Paused: true},
	}
}

// Play resumes the track.
func (m *Music) Play() {
	speaker.Lock()
	defer speaker.Unlock()
	if m.ctrl.Streamer == nil {
		return
	}
	m.ctrl.Paused = false
	if !m.added {
		m.out.mixer.Add(m.ctrl)
		m.added = true
	}
}

// Stop pauses the track.
func (m *Music) Stop() {
	speaker.Lock()
	m.ctrl.Paused = true
	speaker.Unlock()
}

// Playing reports whether the track is unpaused.
func (m *Music) Playing() bool {
	speaker.Lock()
	defer speaker.Unlock()
	return m.ctrl.Streamer != nil && !m.ctrl.Paused
}

// Close detaches the track from the mixer and closes its decoder, if any.
func (m *Music) Close() error {
	speaker.Lock()
	m.ctrl.Paused = true
	m.ctrl.Streamer = nil
	speaker.Unlock()
	if m.closer != nil {
		err := m.closer.Close()
		m.closer = nil
		return err
	}
	return nil
}

// Chime plays a fresh streamer from its factory on every Play.
type Chime struct {
	out    *Output
	newSrc func() beep.Streamer
}

// NewChime returns a chime drawing a new streamer from src per play.
func (o *Output) NewChime(src func() beep.Streamer) *Chime {
	return &Chime{out: o, newSrc: src}
}

// Play starts the chime without waiting for it.
func (c *Chime) Play() {
	s := c.newSrc()
	if s == nil {
		return
	}
	speaker.Lock()
	c.out.mixer.Add(s)
	speaker.Unlock()
}

// LoadMusic decodes an MP3 track, loops it forever and resamples it to the
// speaker rate. The decoder is closed with the returned Music.
func (o *Output) LoadMusic(rc io.ReadCloser, volume float64) (*Music, error) {
	stream, format, err := mp3.Decode(rc)
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("%w: mp3: %w", ErrDecode, err)
	}
	var s beep.Streamer = beep.Loop(-1, stream)
	if format.SampleRate != o.rate {
		s = beep.Resample(resampleQuality, format.SampleRate, o.rate, s)
	}
	m := o.NewMusic(s, volume)
	m.closer = stream
	return m, nil
}

// LoadChime decodes an MP3 clip fully into memory.
func (o *Output) LoadChime(rc io.ReadCloser, volume float64) (*Chime, error) {
	stream, format, err := mp3.Decode(rc)
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("%w: mp3: %w", ErrDecode, err)
	}
	defer stream.Close()

	var src beep.Streamer = stream
	if format.SampleRate != o.rate {
		src = beep.Resample(resampleQuality, format.SampleRate, o.rate, stream)
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: o.rate, NumChannels: format.NumChannels, Precision: format.Precision})
	buf.Append(src)
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("%w: mp3 stream: %w", ErrDecode, err)
	}
	return o.NewChime(func() beep.Streamer {
		return withVolume(buf.Streamer(0, buf.Len()), volume)
	}), nil
}

// withVolume scales s by a linear gain in [0, 1].
func withVolume(s beep.Streamer, volume float64) beep.Streamer {
	if volume >= 1 {
		return s
	}
	if volume <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(volume)}
}
