package stillwater

import (
	"fmt"
	"math"
	"time"
)

// Scene palette.
const (
	skyTopColor    = 0x1a1a2e
	skyBottomColor = 0x4a546b
	groundColor    = 0x2d3436
	pondColor      = 0x34495e
	figureColor    = 0x2c3e50
	treeColor      = 0x2d3436
	stemColor      = 0x2d3436
	skyBands       = 20
)

// LeafPalette holds the green tones of the five leaf textures.
var LeafPalette = [5]uint32{
	0x2d5a27, // dark green
	0x3a7a40, // medium green
	0x4d8b31, // forest green
	0x68a357, // sage green
	0x8ab77d, // light green
}

// TreeBases are the fixed trunk base positions.
var TreeBases = [4]Vec2{{200, 450}, {600, 450}, {150, 500}, {650, 500}}

// Tree sway timing. Each tree samples its own duration in
// [SwayMinDuration, SwayMinDuration+SwayJitter).
const (
	SwayAngle       = 2.0
	SwayMinDuration = 2000 * time.Millisecond
	SwayJitter      = 1000 * time.Millisecond
)

// ComposeOptions controls scene construction.
type ComposeOptions struct {
	// Rand drives per-instance variation (tree sway durations). Nil uses the
	// package-level generator.
	Rand Rand
	// Background is the asset key of a full-viewport backdrop image. When
	// empty the procedural sky and ground are used instead.
	Background string
	// Figure adds the seated silhouette in front of the backdrop.
	Figure bool
}

// Composition is the renderer-agnostic scene: layers in back-to-front order.
type Composition struct {
	Width, Height float64
	Layers        []Layer
}

// Compose builds the ambient scene. The result depends only on opts; for a
// given Rand state it is fully reproducible.
func Compose(opts ComposeOptions) Composition {
	c := Composition{Width: ViewportWidth, Height: ViewportHeight}

	if opts.Background != "" {
		c.Layers = append(c.Layers, ImageLayer{
			Name:   "background",
			Asset:  opts.Background,
			Bounds: Rect{Width: ViewportWidth, Height: ViewportHeight},
		})
	} else {
		c.Layers = append(c.Layers, Sky(), Ground())
	}
	if opts.Figure {
		c.Layers = append(c.Layers, Figure())
	}
	c.Layers = append(c.Layers, Pond())
	for i, base := range TreeBases {
		c.Layers = append(c.Layers, Tree(fmt.Sprintf("tree%d", i), base, opts.Rand))
	}
	c.Layers = append(c.Layers, Leaves(), WindStreaks(), Sunbeams())
	return c
}

// Sky returns the banded vertical gradient. Bands overlap by one unit to
// avoid seams.
func Sky() SkyLayer {
	top, bottom := Hex(skyTopColor, 1), Hex(skyBottomColor, 1)
	step := float64(ViewportHeight) / skyBands
	shapes := make([]Shape, 0, skyBands)
	for i := 0; i < skyBands; i++ {
		c := top.Lerp(bottom, float64(i)/skyBands)
		shapes = append(shapes, Rectangle(0, float64(i)*step, ViewportWidth, step+1, c))
	}
	return SkyLayer{Graphic{Name: "sky", Shapes: shapes, Alpha: 1}}
}

// Ground returns the gently rolling terrain along the bottom edge.
func Ground() GroundLayer {
	var p Path
	p.MoveTo(0, 500)
	for x := 0.0; x < ViewportWidth; x += 10 {
		p.LineTo(x, 500+math.Sin(x/200)*20)
	}
	p.LineTo(ViewportWidth, ViewportHeight)
	p.LineTo(0, ViewportHeight)
	p.Close()
	return GroundLayer{Graphic{
		Name:   "ground",
		Shapes: []Shape{p.Shape(Hex(groundColor, 1), Stroke{})},
		Alpha:  1,
	}}
}

// Figure returns the seated silhouette: head, body and base.
func Figure() FigureLayer {
	c := Hex(figureColor, 1)
	return FigureLayer{Graphic{
		Name: "figure",
		Shapes: []Shape{
			Circle(400, 250, 20, c),
			RoundedRect(370, 270, 60, 80, 20, c),
			Ellipse(400, 370, 100, 30, c),
		},
		Alpha: 1,
	}}
}

// Pond returns the water ellipse with its shimmer: opacity pulses between
// full and 0.3 forever.
func Pond() PondLayer {
	return PondLayer{Graphic{
		Name:   "pond",
		Shapes: []Shape{Ellipse(400, 500, 200, 60, Hex(pondColor, 0.5))},
		Alpha:  1,
		Pivot:  Vec2{400, 500},
		Tween: &TweenSpec{
			Property: TweenAlpha,
			To:       0.3,
			Duration: 2000 * time.Millisecond,
			Ease:     EaseSineInOut,
			Yoyo:     true,
			Repeat:   RepeatForever,
		},
	}}
}

// Tree returns a trunk and foliage rooted at base with a sway tween whose
// duration is sampled from rng.
func Tree(name string, base Vec2, rng Rand) TreeLayer {
	c := Hex(treeColor, 1)
	x, y := base.X, base.Y
	d := SwayMinDuration + time.Duration(randFloat(rng)*float64(SwayJitter))
	if d >= SwayMinDuration+SwayJitter {
		d = SwayMinDuration + SwayJitter - time.Millisecond
	}
	return TreeLayer{
		Graphic: Graphic{
			Name: name,
			Shapes: []Shape{
				Rectangle(x-5, y-60, 10, 60, c),
				Circle(x, y-70, 25, c),
			},
			Alpha: 1,
			Pivot: base,
			Tween: &TweenSpec{
				Property: TweenAngle,
				To:       SwayAngle,
				Duration: d,
				Ease:     EaseSineInOut,
				Yoyo:     true,
				Repeat:   RepeatForever,
			},
		},
		Base: base,
	}
}

// LeafTexture returns the i-th leaf texture: a closed two-curve silhouette
// in the palette tone with a thin outline and a dark stem.
func LeafTexture(i int) TextureSpec {
	tone := Hex(LeafPalette[i%len(LeafPalette)], 0.9)
	var p Path
	p.MoveTo(9, 0).
		QuadTo(18, 8, 9, 16).
		QuadTo(0, 8, 9, 0).
		Close()
	return TextureSpec{
		Key:    fmt.Sprintf("leaf%d", i),
		Width:  18,
		Height: 22,
		Shapes: []Shape{
			p.Shape(tone, Stroke{Width: 1, Color: tone}),
			Rectangle(8, 16, 2, 4, Hex(stemColor, 0.9)),
		},
	}
}

// Leaves returns the falling-leaf emitter with its five generated frames.
func Leaves() ParticleLayer {
	textures := make([]TextureSpec, len(LeafPalette))
	frames := make([]string, len(LeafPalette))
	for i := range LeafPalette {
		textures[i] = LeafTexture(i)
		frames[i] = textures[i].Key
	}
	return ParticleLayer{
		Name:     "leaves",
		Textures: textures,
		Config: EmitterConfig{
			Name:        "leaves",
			Frames:      frames,
			CycleFrames: true,
			Zone:        RectZone(Rect{X: -50, Y: 50, Width: 900, Height: 350}),
			Quantity:    2,
			Frequency:   500 * time.Millisecond,
			Lifespan:    6000 * time.Millisecond,
			Speed:       Range{40, 60},
			Angle:       Range{0, 360},
			Rotate:      Range{0, 360},
			AccelX:      Range{10, 20},
			GravityY:    2,
			Scale:       Transition{1.5, 0.75},
			Alpha:       Transition{1, 0.4},
		},
	}
}

// WindStreakTexture is the elongated translucent streak.
func WindStreakTexture() TextureSpec {
	return TextureSpec{
		Key:    "windStreak",
		Width:  22,
		Height: 4,
		Shapes: []Shape{Line(0, 2, 20, 2, Stroke{Width: 2, Color: Hex(0xffffff, 0.3)})},
	}
}

// WindStreaks returns the fast, rightward-drifting streak emitter spanning
// the full width at mid-height.
func WindStreaks() ParticleLayer {
	tex := WindStreakTexture()
	return ParticleLayer{
		Name:     "windStreaks",
		Textures: []TextureSpec{tex},
		Config: EmitterConfig{
			Name:      "windStreaks",
			Frames:    []string{tex.Key},
			Zone:      RangeZone(Range{-50, 850}, Range{50, 400}),
			Quantity:  3,
			Frequency: 200 * time.Millisecond,
			Lifespan:  3000 * time.Millisecond,
			Speed:     Range{150, 200},
			Angle:     Range{-10, 10},
			Rotate:    Range{-2, 2},
			AccelX:    Range{20, 30},
			Scale:     Transition{1, 1.5},
			Alpha:     Transition{0.3, 0},
		},
	}
}

// SunbeamTexture is the tall translucent beam.
func SunbeamTexture() TextureSpec {
	return TextureSpec{
		Key:    "sunbeam",
		Width:  4,
		Height: 400,
		Shapes: []Shape{Line(2, 0, 2, 400, Stroke{Width: 2, Color: Hex(0xffffff, 0.3)})},
	}
}

// Sunbeams returns the light-shaft emitter entering from above the top edge.
func Sunbeams() ParticleLayer {
	tex := SunbeamTexture()
	return ParticleLayer{
		Name:     "sunbeams",
		Textures: []TextureSpec{tex},
		Config: EmitterConfig{
			Name:      "sunbeams",
			Frames:    []string{tex.Key},
			Zone:      RangeZone(Range{-100, 900}, Fixed(-50)),
			Quantity:  3,
			Frequency: 1000 * time.Millisecond,
			Lifespan:  4000 * time.Millisecond,
			Speed:     Range{100, 150},
			Angle:     Range{60, 120},
			Rotate:    Range{30, 60},
			AccelY:    Fixed(30),
			Scale:     Transition{2, 2.5},
			Alpha:     Transition{0.6, 0},
			Tint:      ColorWhite,
			BlendMode: BlendScreen,
		},
	}
}

// Textures returns every procedural texture referenced by particle layers,
// in layer order.
func (c Composition) Textures() []TextureSpec {
	var out []TextureSpec
	for _, l := range c.Layers {
		if pl, ok := l.(ParticleLayer); ok {
			out = append(out, pl.Textures...)
		}
	}
	return out
}

// Emitters returns the emitter configs in layer order.
func (c Composition) Emitters() []EmitterConfig {
	var out []EmitterConfig
	for _, l := range c.Layers {
		if pl, ok := l.(ParticleLayer); ok {
			out = append(out, pl.Config)
		}
	}
	return out
}

// Trees returns the tree layers in layer order.
func (c Composition) Trees() []TreeLayer {
	var out []TreeLayer
	for _, l := range c.Layers {
		if t, ok := l.(TreeLayer); ok {
			out = append(out, t)
		}
	}
	return out
}

// Validate checks every shape, texture and emitter in the composition and
// that each emitter frame names a texture of its layer.
func (c Composition) Validate() error {
	for _, l := range c.Layers {
		switch l := l.(type) {
		case ParticleLayer:
			keys := make(map[string]bool, len(l.Textures))
			for _, t := range l.Textures {
				if err := t.Validate(); err != nil {
					return fmt.Errorf("layer %q: %w", l.Name, err)
				}
				keys[t.Key] = true
			}
			if err := l.Config.Validate(); err != nil {
				return fmt.Errorf("layer %q: %w", l.Name, err)
			}
			for _, f := range l.Config.Frames {
				if !keys[f] {
					return fmt.Errorf("layer %q: frame %q has no texture: %w", l.Name, f, ErrInvalidTexture)
				}
			}
		case ImageLayer:
			if l.Asset == "" || l.Bounds.Empty() {
				return fmt.Errorf("layer %q: image needs an asset and bounds: %w", l.Name, ErrInvalidTexture)
			}
		default:
			g, ok := GraphicOf(l)
			if !ok {
				continue
			}
			for i, s := range g.Shapes {
				if err := s.Validate(); err != nil {
					return fmt.Errorf("layer %q shape %d: %w", g.Name, i, err)
				}
			}
		}
	}
	return nil
}

// GraphicOf returns the shape composition behind a Sky, Ground, Pond, Figure
// or Tree layer.
func GraphicOf(l Layer) (Graphic, bool) {
	switch l := l.(type) {
	case SkyLayer:
		return l.Graphic, true
	case GroundLayer:
		return l.Graphic, true
	case PondLayer:
		return l.Graphic, true
	case FigureLayer:
		return l.Graphic, true
	case TreeLayer:
		return l.Graphic, true
	}
	return Graphic{}, false
}
