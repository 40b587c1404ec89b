package stillwater

import (
	"fmt"
	"math"
)

// ShapeKind identifies the primitive a Shape describes.
type ShapeKind uint8

const (
	ShapeRect        ShapeKind = iota // axis-aligned rectangle (X, Y, W, H)
	ShapeCircle                       // circle centered at (X, Y) with Radius
	ShapeRoundedRect                  // rectangle with corner Radius
	ShapeEllipse                      // ellipse centered at (X, Y), full size W x H
	ShapeLine                         // stroked segment (X, Y) -> (X2, Y2)
	ShapePath                         // arbitrary path built from Ops
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeRect:
		return "rect"
	case ShapeCircle:
		return "circle"
	case ShapeRoundedRect:
		return "rounded-rect"
	case ShapeEllipse:
		return "ellipse"
	case ShapeLine:
		return "line"
	case ShapePath:
		return "path"
	default:
		return fmt.Sprintf("shape(%d)", uint8(k))
	}
}

// PathOpKind identifies a path drawing command.
type PathOpKind uint8

const (
	PathMoveTo PathOpKind = iota
	PathLineTo
	PathQuadTo
	PathClose
)

// PathOp is one path command. Ctrl is only used by PathQuadTo.
type PathOp struct {
	Kind PathOpKind
	P    Vec2
	Ctrl Vec2
}

// Stroke describes an outline. A zero Width means no outline.
type Stroke struct {
	Width float64
	Color Color
}

// Shape is a single drawing primitive with its style. A Fill with zero alpha
// is not filled; a Stroke with zero width is not outlined.
type Shape struct {
	Kind   ShapeKind
	X, Y   float64
	W, H   float64
	X2, Y2 float64
	Radius float64
	Ops    []PathOp
	Fill   Color
	Stroke Stroke
}

// Rectangle returns a filled rectangle with its top-left at (x, y).
func Rectangle(x, y, w, h float64, fill Color) Shape {
	return Shape{Kind: ShapeRect, X: x, Y: y, W: w, H: h, Fill: fill}
}

// RoundedRect returns a filled rectangle with rounded corners.
func RoundedRect(x, y, w, h, radius float64, fill Color) Shape {
	return Shape{Kind: ShapeRoundedRect, X: x, Y: y, W: w, H: h, Radius: radius, Fill: fill}
}

// Circle returns a filled circle centered at (cx, cy).
func Circle(cx, cy, r float64, fill Color) Shape {
	return Shape{Kind: ShapeCircle, X: cx, Y: cy, Radius: r, Fill: fill}
}

// Ellipse returns a filled ellipse centered at (cx, cy) with full width w and
// height h.
func Ellipse(cx, cy, w, h float64, fill Color) Shape {
	return Shape{Kind: ShapeEllipse, X: cx, Y: cy, W: w, H: h, Fill: fill}
}

// Line returns a stroked segment from (x0, y0) to (x1, y1).
func Line(x0, y0, x1, y1 float64, stroke Stroke) Shape {
	return Shape{Kind: ShapeLine, X: x0, Y: y0, X2: x1, Y2: y1, Stroke: stroke}
}

// Path accumulates path commands. The zero value is an empty path.
type Path struct {
	ops []PathOp
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) *Path {
	p.ops = append(p.ops, PathOp{Kind: PathMoveTo, P: Vec2{x, y}})
	return p
}

// LineTo adds a straight segment to (x, y).
func (p *Path) LineTo(x, y float64) *Path {
	p.ops = append(p.ops, PathOp{Kind: PathLineTo, P: Vec2{x, y}})
	return p
}

// QuadTo adds a quadratic Bézier segment through control (cx, cy) to (x, y).
func (p *Path) QuadTo(cx, cy, x, y float64) *Path {
	p.ops = append(p.ops, PathOp{Kind: PathQuadTo, P: Vec2{x, y}, Ctrl: Vec2{cx, cy}})
	return p
}

// Close closes the current subpath.
func (p *Path) Close() *Path {
	p.ops = append(p.ops, PathOp{Kind: PathClose})
	return p
}

// Shape returns a path shape with the given style. The ops are copied so the
// Path can keep being extended independently.
func (p *Path) Shape(fill Color, stroke Stroke) Shape {
	ops := make([]PathOp, len(p.ops))
	copy(ops, p.ops)
	return Shape{Kind: ShapePath, Ops: ops, Fill: fill, Stroke: stroke}
}

// curveSteps is the number of line segments used per quadratic segment when
// flattening a path.
const curveSteps = 12

// Outline flattens a path shape into a polyline. Non-path shapes return nil.
func (s Shape) Outline() []Vec2 {
	if s.Kind != ShapePath {
		return nil
	}
	var pts []Vec2
	var cur Vec2
	for _, op := range s.Ops {
		switch op.Kind {
		case PathMoveTo, PathLineTo:
			cur = op.P
			pts = append(pts, cur)
		case PathQuadTo:
			for i := 1; i <= curveSteps; i++ {
				t := float64(i) / curveSteps
				u := 1 - t
				pts = append(pts, Vec2{
					X: u*u*cur.X + 2*u*t*op.Ctrl.X + t*t*op.P.X,
					Y: u*u*cur.Y + 2*u*t*op.Ctrl.Y + t*t*op.P.Y,
				})
			}
			cur = op.P
		}
	}
	return pts
}

// segments counts drawing segments (lines and curves) in a path.
func (s Shape) segments() int {
	n := 0
	for _, op := range s.Ops {
		if op.Kind == PathLineTo || op.Kind == PathQuadTo {
			n++
		}
	}
	return n
}

// Area returns the enclosed area of the shape. Lines have zero area.
func (s Shape) Area() float64 {
	switch s.Kind {
	case ShapeRect:
		return s.W * s.H
	case ShapeRoundedRect:
		r := s.Radius
		return s.W*s.H - (4-math.Pi)*r*r
	case ShapeCircle:
		return math.Pi * s.Radius * s.Radius
	case ShapeEllipse:
		return math.Pi * (s.W / 2) * (s.H / 2)
	case ShapePath:
		return polygonArea(s.Outline())
	default:
		return 0
	}
}

// polygonArea computes the absolute shoelace area of a closed polyline.
func polygonArea(pts []Vec2) float64 {
	if len(pts) < 3 {
		return 0
	}
	var sum float64
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return math.Abs(sum) / 2
}

// Bounds returns the axis-aligned extent of the shape including half of the
// stroke width on every side.
func (s Shape) Bounds() Rect {
	var r Rect
	switch s.Kind {
	case ShapeRect, ShapeRoundedRect:
		r = Rect{X: s.X, Y: s.Y, Width: s.W, Height: s.H}
	case ShapeCircle:
		r = Rect{X: s.X - s.Radius, Y: s.Y - s.Radius, Width: 2 * s.Radius, Height: 2 * s.Radius}
	case ShapeEllipse:
		r = Rect{X: s.X - s.W/2, Y: s.Y - s.H/2, Width: s.W, Height: s.H}
	case ShapeLine:
		x0, x1 := min(s.X, s.X2), max(s.X, s.X2)
		y0, y1 := min(s.Y, s.Y2), max(s.Y, s.Y2)
		r = Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
	case ShapePath:
		pts := s.Outline()
		if len(pts) == 0 {
			return Rect{}
		}
		x0, y0 := pts[0].X, pts[0].Y
		x1, y1 := x0, y0
		for _, p := range pts[1:] {
			x0, x1 = min(x0, p.X), max(x1, p.X)
			y0, y1 = min(y0, p.Y), max(y1, p.Y)
		}
		r = Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
	}
	if hw := s.Stroke.Width / 2; hw > 0 {
		r.X -= hw
		r.Y -= hw
		r.Width += 2 * hw
		r.Height += 2 * hw
	}
	return r
}

// Validate reports whether the shape would produce visible output. Zero-size
// primitives, paths with fewer than two segments, and filled paths enclosing
// no area are rejected.
func (s Shape) Validate() error {
	filled := s.Fill.A > 0
	stroked := s.Stroke.Width > 0
	if s.Fill.A < 0 || s.Fill.A > 1 || s.Stroke.Color.A < 0 || s.Stroke.Color.A > 1 {
		return fmt.Errorf("%s: alpha out of [0, 1]: %w", s.Kind, ErrInvalidShape)
	}
	if !filled && !stroked {
		return fmt.Errorf("%s: neither filled nor stroked: %w", s.Kind, ErrInvalidShape)
	}

	switch s.Kind {
	case ShapeRect, ShapeRoundedRect:
		if s.W <= 0 || s.H <= 0 {
			return fmt.Errorf("%s: non-positive size %gx%g: %w", s.Kind, s.W, s.H, ErrInvalidShape)
		}
		if s.Radius < 0 || s.Radius > min(s.W, s.H)/2 {
			return fmt.Errorf("%s: corner radius %g out of range: %w", s.Kind, s.Radius, ErrInvalidShape)
		}
	case ShapeCircle:
		if s.Radius <= 0 {
			return fmt.Errorf("%s: non-positive radius: %w", s.Kind, ErrInvalidShape)
		}
	case ShapeEllipse:
		if s.W <= 0 || s.H <= 0 {
			return fmt.Errorf("%s: non-positive size %gx%g: %w", s.Kind, s.W, s.H, ErrInvalidShape)
		}
	case ShapeLine:
		if !stroked {
			return fmt.Errorf("%s: missing stroke: %w", s.Kind, ErrInvalidShape)
		}
		if s.X == s.X2 && s.Y == s.Y2 {
			return fmt.Errorf("%s: zero length: %w", s.Kind, ErrInvalidShape)
		}
	case ShapePath:
		if len(s.Ops) == 0 || s.Ops[0].Kind != PathMoveTo {
			return fmt.Errorf("%s: must start with MoveTo: %w", s.Kind, ErrInvalidShape)
		}
		if s.segments() < 2 {
			return fmt.Errorf("%s: %d segments, need at least 2: %w", s.Kind, s.segments(), ErrInvalidShape)
		}
		if filled && s.Area() < 1e-6 {
			return fmt.Errorf("%s: filled path encloses no area: %w", s.Kind, ErrInvalidShape)
		}
	default:
		return fmt.Errorf("%s: unknown kind: %w", s.Kind, ErrInvalidShape)
	}
	return nil
}
