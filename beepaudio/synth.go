package beepaudio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

// Drone synthesises an endless soft pad: an A2 minor triad whose loudness
// breathes on a slow LFO.
type Drone struct {
	rate   beep.SampleRate
	pos    int
	voices beep.Streamer
	gain   float64
	// breath is the LFO period.
	breath time.Duration
}

var droneFreqs = [3]float64{110, 130.81, 164.81}

// NewDrone returns a drone at rate. Triad notes at or above the Nyquist
// frequency of rate are left out.
func NewDrone(rate beep.SampleRate) *Drone {
	var tones []beep.Streamer
	for _, f := range droneFreqs {
		tone, err := generators.SineTone(rate, f)
		if err != nil {
			continue
		}
		tones = append(tones, tone)
	}
	return &Drone{
		rate:   rate,
		voices: beep.Mix(tones...),
		gain:   0.08,
		breath: 8 * time.Second,
	}
}

func (d *Drone) Stream(samples [][2]float64) (n int, ok bool) {
	n, _ = d.voices.Stream(samples)
	clear(samples[n:])
	period := float64(d.rate.N(d.breath))
	for i := range samples {
		lfo := 0.6 + 0.4*math.Sin(2*math.Pi*float64(d.pos)/period)
		samples[i][0] *= d.gain * lfo
		samples[i][1] *= d.gain * lfo
		d.pos++
	}
	return len(samples), true
}

func (d *Drone) Err() error { return nil }

// Bell synthesises a single struck-bell tone: a fundamental plus an octave
// overtone under a short attack and exponential decay.
type Bell struct {
	rate     beep.SampleRate
	pos      int
	total    int
	attack   int
	decay    float64 // per second
	freq     float64
	overtone float64
	gain     float64
}

// BellDuration is how long one chime rings.
const BellDuration = 2500 * time.Millisecond

// NewBell returns a bell tone at rate.
func NewBell(rate beep.SampleRate) *Bell {
	return &Bell{
		rate:     rate,
		total:    rate.N(BellDuration),
		attack:   rate.N(5 * time.Millisecond),
		decay:    2.2,
		freq:     880,
		overtone: 1760,
		gain:     0.35,
	}
}

func (b *Bell) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if b.pos >= b.total {
			return i, i > 0
		}
		t := b.rate.D(b.pos).Seconds()

		env := math.Exp(-b.decay * t)
		if b.pos < b.attack {
			env *= float64(b.pos) / float64(b.attack)
		}
		v := math.Sin(2*math.Pi*b.freq*t) + 0.5*math.Sin(2*math.Pi*b.overtone*t)
		v *= b.gain * env

		samples[i][0] = v
		samples[i][1] = v
		b.pos++
	}
	return len(samples), true
}

func (b *Bell) Err() error { return nil }

// NewSynthMusic returns a paused drone track at volume.
func (o *Output) NewSynthMusic(volume float64) *Music {
	return o.NewMusic(NewDrone(o.rate), volume)
}

// NewSynthChime returns a chime that rings a new bell per play.
func (o *Output) NewSynthChime(volume float64) *Chime {
	return o.NewChime(func() beep.Streamer {
		return withVolume(NewBell(o.rate), volume)
	})
}
