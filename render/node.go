package render

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/stillwater"
)

// node is one drawable image placed in scene coordinates: a baked graphic
// layer or an externally supplied image.
type node struct {
	name  string
	image *ebiten.Image
	// asset is the image key for nodes whose image is supplied by SetImage.
	asset string
	// owned images were baked by the renderer and are released with it.
	owned bool

	// x and y locate the image's top-left corner. width and height, when
	// non-zero, stretch the image to that size.
	x, y          float64
	width, height float64

	// angle rotates about pivot, in degrees clockwise. Both are in scene
	// coordinates.
	pivot stillwater.Vec2
	angle float64
	alpha float64
	blend stillwater.BlendMode
}

// geoM returns the image-to-scene transform for an image of size iw x ih.
func (n *node) geoM(iw, ih int) ebiten.GeoM {
	var m ebiten.GeoM
	if n.width > 0 && n.height > 0 && iw > 0 && ih > 0 {
		m.Scale(n.width/float64(iw), n.height/float64(ih))
	}
	m.Translate(n.x, n.y)
	if n.angle != 0 {
		m.Translate(-n.pivot.X, -n.pivot.Y)
		m.Rotate(n.angle * math.Pi / 180)
		m.Translate(n.pivot.X, n.pivot.Y)
	}
	return m
}

// draw renders the node onto dst. Nodes without an image or with no
// opacity are skipped.
func (n *node) draw(dst *ebiten.Image) int {
	if n.image == nil || n.alpha <= 0 {
		return 0
	}
	b := n.image.Bounds()
	var op ebiten.DrawImageOptions
	op.GeoM = n.geoM(b.Dx(), b.Dy())
	op.ColorScale.ScaleAlpha(float32(n.alpha))
	op.Blend = ebitenBlend(n.blend)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(n.image, &op)
	return 1
}

// set writes a tweened property to the node.
func (n *node) set(prop stillwater.TweenProperty, v float64) {
	switch prop {
	case stillwater.TweenAlpha:
		n.alpha = clamp01(v)
	case stillwater.TweenAngle:
		n.angle = v
	}
}

// get reads the property a tween starts from.
func (n *node) get(prop stillwater.TweenProperty) float64 {
	switch prop {
	case stillwater.TweenAlpha:
		return n.alpha
	case stillwater.TweenAngle:
		return n.angle
	}
	return 0
}

// dispose releases an owned image.
func (n *node) dispose() {
	if n.owned && n.image != nil {
		n.image.Deallocate()
	}
	n.image = nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
