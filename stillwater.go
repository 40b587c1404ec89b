package stillwater

import "math/rand/v2"

// Logical viewport size. All layer geometry is expressed in these units with
// the origin at the top-left and Y increasing downward.
const (
	ViewportWidth  = 800
	ViewportHeight = 600
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Hex builds a Color from a 0xRRGGBB value and an alpha in [0, 1].
func Hex(rgb uint32, alpha float64) Color {
	return Color{
		R: float64(rgb>>16&0xff) / 255,
		G: float64(rgb>>8&0xff) / 255,
		B: float64(rgb&0xff) / 255,
		A: alpha,
	}
}

// Lerp interpolates each component between c and to by t.
func (c Color) Lerp(to Color, t float64) Color {
	return Color{
		R: lerp(c.R, to.R, t),
		G: lerp(c.G, to.G, t),
		B: lerp(c.B, to.B, t),
		A: lerp(c.A, to.A, t),
	}
}

// Vec2 is a 2D vector used for positions, offsets and sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Empty reports whether the rectangle encloses no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Union returns the smallest rectangle containing both r and other. An empty
// receiver yields other unchanged.
func (r Rect) Union(other Rect) Rect {
	if r.Empty() {
		return other
	}
	if other.Empty() {
		return r
	}
	x0 := min(r.X, other.X)
	y0 := min(r.Y, other.Y)
	x1 := max(r.X+r.Width, other.X+other.Width)
	y1 := max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Range is a general-purpose min/max range used by emitter kinematics.
type Range struct {
	Min, Max float64
}

// Fixed returns a Range whose Min and Max are both v.
func Fixed(v float64) Range {
	return Range{Min: v, Max: v}
}

// Valid reports whether Min does not exceed Max.
func (r Range) Valid() bool {
	return r.Min <= r.Max
}

// Sample returns a value in [Min, Max) drawn from rng. A nil rng uses the
// package-level generator.
func (r Range) Sample(rng Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + randFloat(rng)*(r.Max-r.Min)
}

// Rand is the random source used for per-instance variation. *rand.Rand from
// math/rand/v2 satisfies it; tests inject a seeded one.
type Rand interface {
	Float64() float64
}

// NewRand returns a deterministic PCG-backed source for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func randFloat(rng Rand) float64 {
	if rng == nil {
		return rand.Float64()
	}
	return rng.Float64()
}

// BlendMode selects a compositing operation. The rendering adapter maps each
// to a concrete blend.
type BlendMode uint8

const (
	BlendNormal   BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                       // additive / lighter
	BlendMultiply                  // multiply (only darkens)
	BlendScreen                    // screen (only brightens)
)

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
