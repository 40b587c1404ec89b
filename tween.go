package stillwater

import "time"

// TweenProperty selects which layer property a tween drives.
type TweenProperty uint8

const (
	TweenAlpha TweenProperty = iota // layer opacity multiplier
	TweenAngle                      // rotation about the layer pivot, in degrees
)

// Ease selects an easing curve.
type Ease uint8

const (
	EaseLinear Ease = iota
	EaseSineInOut
)

// RepeatForever makes a tween loop until the scene is torn down.
const RepeatForever = -1

// TweenSpec binds an animation to a layer. The tween runs from the layer's
// current value of Property to To over Duration. With Yoyo set it then runs
// back; Repeat counts additional cycles (RepeatForever for infinite).
type TweenSpec struct {
	Property TweenProperty
	To       float64
	Duration time.Duration
	Ease     Ease
	Yoyo     bool
	Repeat   int
}
