package beepaudio

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/gopxl/beep"
)

// PCMReader renders a streamer as signed 16-bit little-endian stereo PCM,
// the layout ebiten's audio players consume. It ends with io.EOF when the
// streamer is drained.
type PCMReader struct {
	s       beep.Streamer
	buf     [][2]float64
	pending []byte
	done    bool
}

// NewPCMReader returns a reader over s.
func NewPCMReader(s beep.Streamer) *PCMReader {
	return &PCMReader{s: s, buf: make([][2]float64, 512)}
}

func (r *PCMReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(r.pending) == 0 {
			if r.done || !r.fill() {
				break
			}
		}
		c := copy(p[n:], r.pending)
		r.pending = r.pending[c:]
		n += c
	}
	if n == 0 && r.done {
		if err := r.s.Err(); err != nil {
			return 0, err
		}
		return 0, io.EOF
	}
	return n, nil
}

// fill streams the next block into pending and reports whether any samples
// were produced.
func (r *PCMReader) fill() bool {
	count, ok := r.s.Stream(r.buf)
	if !ok {
		r.done = true
	}
	if count == 0 {
		r.done = true
		return false
	}
	out := make([]byte, 4*count)
	for i, frame := range r.buf[:count] {
		binary.LittleEndian.PutUint16(out[4*i:], uint16(toInt16(frame[0])))
		binary.LittleEndian.PutUint16(out[4*i+2:], uint16(toInt16(frame[1])))
	}
	r.pending = out
	return true
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(math.Round(v * math.MaxInt16))
}
