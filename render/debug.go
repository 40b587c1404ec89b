package render

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing and draw-call metrics.
// Only populated when the renderer runs in debug mode.
type debugStats struct {
	drawTime      time.Duration
	drawCallCount int
	particleCount int
}

// debugInterval is how many frames pass between stats lines.
const debugInterval = 60

// debugLog prints timing and draw-call stats to stderr once per interval.
func (r *Renderer) debugLog(stats debugStats) {
	if !r.debug || r.frame%debugInterval != 0 {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[stillwater] frame: %d | draw: %v | draw calls: %d | particles: %d\n",
		r.frame, stats.drawTime, stats.drawCallCount, stats.particleCount)
}
