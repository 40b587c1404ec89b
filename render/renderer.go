package render

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/stillwater"
)

// Options configures a Renderer.
type Options struct {
	// Rand drives particle sampling. Nil uses the package-level generator.
	Rand stillwater.Rand
	// Debug prints per-frame timing and draw-call stats to stderr.
	Debug bool
	// ScreenshotDir is where Screenshot writes PNG files. Defaults to
	// "screenshots".
	ScreenshotDir string
}

// drawable is one entry of the draw list, in layer order.
type drawable interface {
	draw(dst *ebiten.Image) int
}

type emitterLayer struct{ *Emitter }

func (l emitterLayer) draw(dst *ebiten.Image) int { return l.Emitter.Draw(dst) }

// Renderer turns a Composition into ebiten draw calls. It owns every texture
// it bakes. All methods must be called from the game loop goroutine.
type Renderer struct {
	width, height int

	order    []drawable
	nodes    map[string]*node
	textures map[string]*ebiten.Image
	emitters []*Emitter
	tweens   []*Tween

	debug         bool
	frame         uint64
	screenshotDir string
	screenshots   []string
	disposed      bool
}

// New bakes every texture and graphic layer of comp, creates one emitter per
// particle layer and one tween per tween binding. Emitters start
// immediately. comp is validated first.
func New(comp stillwater.Composition, opts Options) (*Renderer, error) {
	if err := comp.Validate(); err != nil {
		return nil, err
	}
	r := &Renderer{
		width:         int(comp.Width),
		height:        int(comp.Height),
		nodes:         make(map[string]*node),
		textures:      make(map[string]*ebiten.Image),
		debug:         opts.Debug,
		screenshotDir: opts.ScreenshotDir,
	}
	if r.screenshotDir == "" {
		r.screenshotDir = "screenshots"
	}

	for _, l := range comp.Layers {
		if err := r.addLayer(l, opts.Rand); err != nil {
			r.Dispose()
			return nil, err
		}
	}
	for _, e := range r.emitters {
		e.Start()
	}
	return r, nil
}

func (r *Renderer) addLayer(l stillwater.Layer, rng stillwater.Rand) error {
	switch l := l.(type) {
	case stillwater.ImageLayer:
		n := &node{
			name:   l.Name,
			asset:  l.Asset,
			x:      l.Bounds.X,
			y:      l.Bounds.Y,
			width:  l.Bounds.Width,
			height: l.Bounds.Height,
			alpha:  1,
		}
		r.addNode(n)
		return nil

	case stillwater.ParticleLayer:
		for _, spec := range l.Textures {
			if _, ok := r.textures[spec.Key]; ok {
				continue
			}
			img, err := BakeTexture(spec)
			if err != nil {
				return fmt.Errorf("layer %q: %w", l.Name, err)
			}
			r.textures[spec.Key] = img
		}
		frames := make([]*ebiten.Image, len(l.Config.Frames))
		for i, key := range l.Config.Frames {
			frames[i] = r.textures[key]
		}
		e, err := NewEmitter(l.Config, frames, rng)
		if err != nil {
			return fmt.Errorf("layer %q: %w", l.Name, err)
		}
		r.emitters = append(r.emitters, e)
		r.order = append(r.order, emitterLayer{e})
		return nil
	}

	g, ok := stillwater.GraphicOf(l)
	if !ok {
		return fmt.Errorf("layer %q: unsupported type %T", l.LayerName(), l)
	}
	img, origin, err := bakeGraphic(g)
	if err != nil {
		return err
	}
	n := &node{
		name:  g.Name,
		image: img,
		owned: true,
		x:     float64(origin.X),
		y:     float64(origin.Y),
		pivot: g.Pivot,
		alpha: g.Alpha,
	}
	r.addNode(n)
	if g.Tween != nil {
		prop := g.Tween.Property
		r.tweens = append(r.tweens, NewTween(*g.Tween, n.get(prop), func(v float64) { n.set(prop, v) }))
	}
	return nil
}

func (r *Renderer) addNode(n *node) {
	r.nodes[n.name] = n
	r.order = append(r.order, n)
}

// SetImage supplies the image for every image layer referring to key. The
// caller keeps ownership of img. Unknown keys are ignored.
func (r *Renderer) SetImage(key string, img *ebiten.Image) {
	for _, n := range r.nodes {
		if n.asset == key {
			n.image = img
		}
	}
}

// Texture returns the baked texture for key, or nil.
func (r *Renderer) Texture(key string) *ebiten.Image {
	return r.textures[key]
}

// Emitters returns the particle emitters in layer order.
func (r *Renderer) Emitters() []*Emitter {
	return r.emitters
}

// Size returns the logical canvas size.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// Update advances every tween and emitter by dt seconds.
func (r *Renderer) Update(dt float64) {
	if r.disposed {
		return
	}
	for _, t := range r.tweens {
		t.Update(dt)
	}
	for _, e := range r.emitters {
		e.Update(dt)
	}
}

// Draw renders all layers onto screen in back-to-front order.
func (r *Renderer) Draw(screen *ebiten.Image) {
	if r.disposed {
		return
	}
	var start time.Time
	if r.debug {
		start = time.Now()
	}

	calls := 0
	for _, d := range r.order {
		calls += d.draw(screen)
	}
	r.frame++

	if r.debug {
		r.debugLog(debugStats{
			drawTime:      time.Since(start),
			drawCallCount: calls,
			particleCount: r.particleCount(),
		})
	}
	r.flushScreenshots(screen)
}

func (r *Renderer) particleCount() int {
	n := 0
	for _, e := range r.emitters {
		n += e.AliveCount()
	}
	return n
}

// Dispose stops every emitter and releases every texture the renderer baked.
// Images supplied through SetImage are left to their owner. Later calls do
// nothing.
func (r *Renderer) Dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	for _, e := range r.emitters {
		e.Reset()
	}
	for _, n := range r.nodes {
		n.dispose()
	}
	for key, img := range r.textures {
		img.Deallocate()
		delete(r.textures, key)
	}
	r.tweens = nil
	r.emitters = nil
	r.order = nil
	r.screenshots = nil
}

// Disposed reports whether Dispose has run.
func (r *Renderer) Disposed() bool {
	return r.disposed
}
