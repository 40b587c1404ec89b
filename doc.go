// Package stillwater describes a looping ambient relaxation scene and the
// countdown session that accompanies it.
//
// The package is renderer-agnostic. [Compose] returns a [Composition]: an
// ordered list of [Layer] values (sky, ground, pond, trees, particle effects)
// built from fixed logical coordinates on an 800x600 viewport. Particle
// effects are described by immutable [EmitterConfig] values and procedural
// [TextureSpec]s; the render subpackage turns a Composition into Ebitengine
// draw calls.
//
// # Quick start
//
//	comp := stillwater.Compose(stillwater.ComposeOptions{Rand: stillwater.NewRand(1)})
//	sched := stillwater.NewFrameScheduler(nil)
//	audio := stillwater.NewAudioController()
//	timer := stillwater.NewSessionTimer(sched, audio.PlayChime)
//	timer.Start(10)
//	// every frame:
//	sched.Poll()
//
// # Session timer
//
// [SessionTimer] moves Idle -> Running -> Expired. Start is valid from any
// state and replaces the countdown in progress. The remaining time is
// recomputed from the absolute deadline on every tick, so late ticks and
// suspended execution never drift the display. The timer depends only on the
// [Scheduler] interface; [FrameScheduler] together with [ManualClock] makes
// it fully deterministic in tests.
//
// # Audio
//
// [AudioController] wraps optional [Track] and [Sound] handles. Every
// operation is a no-op while its handle is missing, and toggling to the state
// already in effect does nothing. The ebitenaudio and beepaudio subpackages
// provide handles.
//
// # Hosts
//
// [Session] bundles a FrameScheduler, a SessionTimer and an AudioController
// with the shared key bindings ([CommandForKey]) and display text. The host
// subpackage runs it in an ebiten window over the rendered scene; ttyhost
// runs it in a terminal.
package stillwater
