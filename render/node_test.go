package render

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/stillwater"
)

func TestNodeGeoMTranslates(t *testing.T) {
	n := &node{x: 100, y: 200, alpha: 1}
	x, y := n.geoM(10, 10).Apply(5, 5)
	assertNear(t, "x", x, 105, 1e-9)
	assertNear(t, "y", y, 205, 1e-9)
}

func TestNodeGeoMRotatesAboutPivot(t *testing.T) {
	// A tree whose image starts at (175, 355) and pivots at its trunk base.
	n := &node{x: 175, y: 355, pivot: stillwater.Vec2{X: 200, Y: 450}, angle: 2}
	m := n.geoM(50, 95)

	x, y := m.Apply(25, 95)
	assertNear(t, "pivot x", x, 200, 1e-9)
	assertNear(t, "pivot y", y, 450, 1e-9)

	// The crown moves right for a positive (clockwise) angle.
	cx, _ := m.Apply(25, 0)
	if cx <= 200 {
		t.Errorf("crown x = %v, want > 200 for clockwise sway", cx)
	}
}

func TestNodeGeoMStretches(t *testing.T) {
	n := &node{width: 800, height: 600}
	x, y := n.geoM(400, 300).Apply(400, 300)
	assertNear(t, "x", x, 800, 1e-9)
	assertNear(t, "y", y, 600, 1e-9)
}

func TestNodeSetClampsAlpha(t *testing.T) {
	n := &node{}
	n.set(stillwater.TweenAlpha, 1.2)
	if n.alpha != 1 {
		t.Errorf("alpha = %v, want 1", n.alpha)
	}
	n.set(stillwater.TweenAlpha, -0.1)
	if n.alpha != 0 {
		t.Errorf("alpha = %v, want 0", n.alpha)
	}
	n.set(stillwater.TweenAngle, -2)
	if n.get(stillwater.TweenAngle) != -2 {
		t.Errorf("angle = %v, want -2", n.angle)
	}
}

func TestNodeDrawSkipsMissingImage(t *testing.T) {
	n := &node{alpha: 1}
	if calls := n.draw(nil); calls != 0 {
		t.Errorf("draw calls = %d, want 0", calls)
	}
}

func TestEbitenBlend(t *testing.T) {
	if ebitenBlend(stillwater.BlendNormal) != ebiten.BlendSourceOver {
		t.Error("normal should map to source-over")
	}
	if ebitenBlend(stillwater.BlendAdd) != ebiten.BlendLighter {
		t.Error("add should map to lighter")
	}
	screen := ebitenBlend(stillwater.BlendScreen)
	if screen.BlendFactorDestinationRGB != ebiten.BlendFactorOneMinusSourceColor {
		t.Errorf("screen dst factor = %v", screen.BlendFactorDestinationRGB)
	}
}
