package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/stillwater"
)

// ellipseSteps is the number of segments used to approximate circles and
// ellipses.
const ellipseSteps = 48

// --- White pixel singleton (single-threaded like the rest of the package) ---

var whitePixelImage *ebiten.Image

// whitePixel returns a lazily-initialized 1x1 white image used as the source
// of untextured triangles.
func whitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// BakeTexture rasterizes a procedural texture into a new image of the texture's
// size. The caller owns the returned image.
func BakeTexture(spec stillwater.TextureSpec) (*ebiten.Image, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	img := ebiten.NewImage(spec.Width, spec.Height)
	DrawShapes(img, spec.Shapes, 0, 0)
	return img, nil
}

// bakeGraphic rasterizes a graphic into an image covering the integer-aligned
// bounds of its shapes. It returns the image and the scene position of its
// top-left corner.
func bakeGraphic(g stillwater.Graphic) (*ebiten.Image, image.Point, error) {
	bounds, origin := pixelBounds(g.Bounds())
	if bounds.Empty() {
		return nil, image.Point{}, fmt.Errorf("graphic %q: empty bounds: %w", g.Name, stillwater.ErrInvalidShape)
	}
	img := ebiten.NewImage(bounds.Dx(), bounds.Dy())
	DrawShapes(img, g.Shapes, -float64(origin.X), -float64(origin.Y))
	return img, origin, nil
}

// pixelBounds expands r outward to whole pixels.
func pixelBounds(r stillwater.Rect) (image.Rectangle, image.Point) {
	x0 := int(math.Floor(r.X))
	y0 := int(math.Floor(r.Y))
	x1 := int(math.Ceil(r.X + r.Width))
	y1 := int(math.Ceil(r.Y + r.Height))
	return image.Rect(0, 0, x1-x0, y1-y0), image.Pt(x0, y0)
}

// DrawShapes draws shapes onto dst in order, offset by (dx, dy).
func DrawShapes(dst *ebiten.Image, shapes []stillwater.Shape, dx, dy float64) {
	for _, s := range shapes {
		drawShape(dst, s, dx, dy)
	}
}

func drawShape(dst *ebiten.Image, s stillwater.Shape, dx, dy float64) {
	p := shapePath(s, dx, dy)
	if s.Fill.A > 0 && s.Kind != stillwater.ShapeLine {
		vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
		paintVertices(vs, s.Fill)
		dst.DrawTriangles(vs, is, whitePixel(), &ebiten.DrawTrianglesOptions{
			FillRule:  ebiten.FillRuleEvenOdd,
			AntiAlias: true,
		})
	}
	if s.Stroke.Width > 0 && s.Stroke.Color.A > 0 {
		vs, is := p.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{
			Width:    float32(s.Stroke.Width),
			LineJoin: vector.LineJoinRound,
		})
		paintVertices(vs, s.Stroke.Color)
		dst.DrawTriangles(vs, is, whitePixel(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
	}
}

// paintVertices maps every vertex to the white pixel and applies c.
func paintVertices(vs []ebiten.Vertex, c stillwater.Color) {
	for i := range vs {
		vs[i].SrcX = 0.5
		vs[i].SrcY = 0.5
		vs[i].ColorR = float32(c.R)
		vs[i].ColorG = float32(c.G)
		vs[i].ColorB = float32(c.B)
		vs[i].ColorA = float32(c.A)
	}
}

// shapePath builds the vector path for s translated by (dx, dy).
func shapePath(s stillwater.Shape, dx, dy float64) *vector.Path {
	var p vector.Path
	pt := func(x, y float64) (float32, float32) {
		return float32(x + dx), float32(y + dy)
	}
	switch s.Kind {
	case stillwater.ShapeRect:
		p.MoveTo(pt(s.X, s.Y))
		p.LineTo(pt(s.X+s.W, s.Y))
		p.LineTo(pt(s.X+s.W, s.Y+s.H))
		p.LineTo(pt(s.X, s.Y+s.H))
		p.Close()
	case stillwater.ShapeRoundedRect:
		roundedRectPath(&p, s, pt)
	case stillwater.ShapeCircle:
		ellipsePath(&p, s.X, s.Y, s.Radius, s.Radius, pt)
	case stillwater.ShapeEllipse:
		ellipsePath(&p, s.X, s.Y, s.W/2, s.H/2, pt)
	case stillwater.ShapeLine:
		p.MoveTo(pt(s.X, s.Y))
		p.LineTo(pt(s.X2, s.Y2))
	case stillwater.ShapePath:
		for _, op := range s.Ops {
			switch op.Kind {
			case stillwater.PathMoveTo:
				p.MoveTo(pt(op.P.X, op.P.Y))
			case stillwater.PathLineTo:
				p.LineTo(pt(op.P.X, op.P.Y))
			case stillwater.PathQuadTo:
				cx, cy := pt(op.Ctrl.X, op.Ctrl.Y)
				x, y := pt(op.P.X, op.P.Y)
				p.QuadTo(cx, cy, x, y)
			case stillwater.PathClose:
				p.Close()
			}
		}
	}
	return &p
}

// roundedRectPath traces the rectangle clockwise with quadratic corners.
func roundedRectPath(p *vector.Path, s stillwater.Shape, pt func(x, y float64) (float32, float32)) {
	x0, y0 := s.X, s.Y
	x1, y1 := s.X+s.W, s.Y+s.H
	r := s.Radius
	quad := func(cx, cy, x, y float64) {
		qx, qy := pt(cx, cy)
		ex, ey := pt(x, y)
		p.QuadTo(qx, qy, ex, ey)
	}
	p.MoveTo(pt(x0+r, y0))
	p.LineTo(pt(x1-r, y0))
	quad(x1, y0, x1, y0+r)
	p.LineTo(pt(x1, y1-r))
	quad(x1, y1, x1-r, y1)
	p.LineTo(pt(x0+r, y1))
	quad(x0, y1, x0, y1-r)
	p.LineTo(pt(x0, y0+r))
	quad(x0, y0, x0+r, y0)
	p.Close()
}

func ellipsePath(p *vector.Path, cx, cy, rx, ry float64, pt func(x, y float64) (float32, float32)) {
	p.MoveTo(pt(cx+rx, cy))
	for i := 1; i < ellipseSteps; i++ {
		a := 2 * math.Pi * float64(i) / ellipseSteps
		p.LineTo(pt(cx+rx*math.Cos(a), cy+ry*math.Sin(a)))
	}
	p.Close()
}
