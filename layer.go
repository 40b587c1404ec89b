package stillwater

// Layer is one named visual contribution to the scene. The concrete types are
// ImageLayer, SkyLayer, GroundLayer, PondLayer, FigureLayer, TreeLayer and
// ParticleLayer; renderers switch on them.
type Layer interface {
	LayerName() string
	isLayer()
}

// Graphic is a static composition of shapes in scene coordinates with an
// optional animation. Alpha multiplies every shape's own alpha. Tweens on
// TweenAngle rotate about Pivot.
type Graphic struct {
	Name   string
	Shapes []Shape
	Alpha  float64
	Pivot  Vec2
	Tween  *TweenSpec
}

// LayerName returns the graphic's name.
func (g Graphic) LayerName() string { return g.Name }

// Bounds returns the union of all shape bounds.
func (g Graphic) Bounds() Rect {
	var r Rect
	for _, s := range g.Shapes {
		r = r.Union(s.Bounds())
	}
	return r
}

// ImageLayer displays an externally loaded image asset stretched to Bounds.
type ImageLayer struct {
	Name   string
	Asset  string
	Bounds Rect
}

func (l ImageLayer) LayerName() string { return l.Name }

// SkyLayer is the banded gradient behind everything else.
type SkyLayer struct{ Graphic }

// GroundLayer is the rolling foreground terrain.
type GroundLayer struct{ Graphic }

// PondLayer is the shimmering water.
type PondLayer struct{ Graphic }

// FigureLayer is the seated silhouette.
type FigureLayer struct{ Graphic }

// TreeLayer is a trunk and foliage rooted at Base. Its sway tween pivots
// about Base.
type TreeLayer struct {
	Graphic
	Base Vec2
}

// ParticleLayer is an emitter together with the procedural textures its
// frames refer to.
type ParticleLayer struct {
	Name     string
	Textures []TextureSpec
	Config   EmitterConfig
}

func (l ParticleLayer) LayerName() string { return l.Name }

func (ImageLayer) isLayer()    {}
func (SkyLayer) isLayer()      {}
func (GroundLayer) isLayer()   {}
func (PondLayer) isLayer()     {}
func (FigureLayer) isLayer()   {}
func (TreeLayer) isLayer()     {}
func (ParticleLayer) isLayer() {}
