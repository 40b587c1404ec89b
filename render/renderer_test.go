package render

import (
	"errors"
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/stillwater"
)

func newTestRenderer(t *testing.T, opts stillwater.ComposeOptions) *Renderer {
	t.Helper()
	if opts.Rand == nil {
		opts.Rand = stillwater.NewRand(1)
	}
	r, err := New(stillwater.Compose(opts), Options{Rand: stillwater.NewRand(2)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(r.Dispose)
	return r
}

func TestBakeTextureSize(t *testing.T) {
	img, err := BakeTexture(stillwater.LeafTexture(0))
	if err != nil {
		t.Fatalf("BakeTexture: %v", err)
	}
	defer img.Deallocate()
	if b := img.Bounds(); b.Dx() != 18 || b.Dy() != 22 {
		t.Errorf("size = %dx%d, want 18x22", b.Dx(), b.Dy())
	}
}

func TestBakeTextureRejectsInvalid(t *testing.T) {
	spec := stillwater.WindStreakTexture()
	spec.Width = 0
	if _, err := BakeTexture(spec); !errors.Is(err, stillwater.ErrInvalidTexture) {
		t.Errorf("err = %v, want ErrInvalidTexture", err)
	}
}

func TestPixelBounds(t *testing.T) {
	b, origin := pixelBounds(stillwater.Rect{X: 174.5, Y: 355.2, Width: 50.1, Height: 94.8})
	if origin != image.Pt(174, 355) {
		t.Errorf("origin = %v, want (174, 355)", origin)
	}
	if b.Dx() != 51 || b.Dy() != 95 {
		t.Errorf("size = %dx%d, want 51x95", b.Dx(), b.Dy())
	}
}

func TestNewBuildsLayers(t *testing.T) {
	r := newTestRenderer(t, stillwater.ComposeOptions{})

	// sky, ground, pond, 4 trees, 3 emitters
	if len(r.order) != 10 {
		t.Errorf("draw list = %d entries, want 10", len(r.order))
	}
	if len(r.Emitters()) != 3 {
		t.Fatalf("emitters = %d, want 3", len(r.Emitters()))
	}
	for _, e := range r.Emitters() {
		if !e.IsActive() {
			t.Errorf("emitter %q not started", e.Config().Name)
		}
	}
	// pond shimmer plus one sway per tree
	if len(r.tweens) != 5 {
		t.Errorf("tweens = %d, want 5", len(r.tweens))
	}
	for _, key := range []string{"leaf0", "leaf4", "windStreak", "sunbeam"} {
		if r.Texture(key) == nil {
			t.Errorf("texture %q not baked", key)
		}
	}
	if w, h := r.Size(); w != stillwater.ViewportWidth || h != stillwater.ViewportHeight {
		t.Errorf("Size = %dx%d", w, h)
	}

	tree := r.nodes["tree0"]
	if tree.pivot != (stillwater.Vec2{X: 200, Y: 450}) {
		t.Errorf("tree0 pivot = %+v, want trunk base", tree.pivot)
	}
	if tree.x != 175 || tree.y != 355 {
		t.Errorf("tree0 placed at (%v, %v), want (175, 355)", tree.x, tree.y)
	}
}

func TestUpdateAnimates(t *testing.T) {
	r := newTestRenderer(t, stillwater.ComposeOptions{})
	r.Update(0.5)

	if a := r.nodes["tree1"].angle; a <= 0 || a > stillwater.SwayAngle {
		t.Errorf("tree1 angle = %v, want in (0, %v]", a, stillwater.SwayAngle)
	}
	if a := r.nodes["pond"].alpha; a >= 1 || a < 0.3 {
		t.Errorf("pond alpha = %v, want in [0.3, 1)", a)
	}
	if r.particleCount() == 0 {
		t.Error("no particles after the first update")
	}
}

func TestSetImage(t *testing.T) {
	r := newTestRenderer(t, stillwater.ComposeOptions{Background: "bg", Figure: true})
	bg := r.nodes["background"]
	if bg.image != nil {
		t.Fatal("background has an image before SetImage")
	}

	img := ebiten.NewImage(4, 3)
	defer img.Deallocate()
	r.SetImage("unknown", img)
	if bg.image != nil {
		t.Error("unknown key assigned an image")
	}
	r.SetImage("bg", img)
	if bg.image != img {
		t.Error("SetImage did not attach the background")
	}
	r.Dispose()
	if img.Bounds().Dx() != 4 {
		t.Error("caller image was touched by Dispose")
	}
}

func TestDisposeIdempotent(t *testing.T) {
	r := newTestRenderer(t, stillwater.ComposeOptions{})
	emitters := r.Emitters()
	r.Dispose()
	r.Dispose()

	if !r.Disposed() {
		t.Error("Disposed = false after Dispose")
	}
	if len(r.textures) != 0 {
		t.Errorf("%d textures still held", len(r.textures))
	}
	for _, e := range emitters {
		if e.IsActive() || e.AliveCount() != 0 {
			t.Errorf("emitter %q still running after Dispose", e.Config().Name)
		}
	}
	for name, n := range r.nodes {
		if n.image != nil {
			t.Errorf("node %q still holds its image", name)
		}
	}
	r.Update(1)
	r.Screenshot("after")
	if len(r.screenshots) != 0 {
		t.Error("disposed renderer queued a screenshot")
	}
}

func TestNewRejectsInvalidComposition(t *testing.T) {
	comp := stillwater.Composition{Layers: []stillwater.Layer{stillwater.ImageLayer{Name: "bg"}}}
	if _, err := New(comp, Options{}); err == nil {
		t.Error("expected error for image layer without asset")
	}
}

func TestSanitizeLabel(t *testing.T) {
	tests := map[string]string{
		"":              "unlabeled",
		"  session end": "session_end",
		"a/b\\c":        "a_b_c",
		"ok-1.2":        "ok-1.2",
	}
	for in, want := range tests {
		if got := sanitizeLabel(in); got != want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestUnpremultiply(t *testing.T) {
	img := unpremultiply([]byte{64, 32, 0, 128, 10, 20, 30, 255}, 2, 1)
	if got := img.Pix[:4]; got[0] != 127 || got[1] != 63 || got[3] != 128 {
		t.Errorf("half-alpha pixel = %v", got)
	}
	if got := img.Pix[4:8]; got[0] != 10 || got[3] != 255 {
		t.Errorf("opaque pixel = %v", got)
	}
}
