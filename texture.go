package stillwater

import "fmt"

// TextureSpec describes a texture drawn procedurally from shapes at scene
// build time. Shapes are in texture-local pixel coordinates.
type TextureSpec struct {
	Key    string
	Width  int
	Height int
	Shapes []Shape
}

// Validate checks that the texture has a key, a positive size, and at least
// one shape, and that every shape is non-degenerate and overlaps the canvas.
func (t TextureSpec) Validate() error {
	if t.Key == "" {
		return fmt.Errorf("texture: empty key: %w", ErrInvalidTexture)
	}
	if t.Width <= 0 || t.Height <= 0 {
		return fmt.Errorf("texture %q: non-positive size %dx%d: %w", t.Key, t.Width, t.Height, ErrInvalidTexture)
	}
	if len(t.Shapes) == 0 {
		return fmt.Errorf("texture %q: no shapes: %w", t.Key, ErrInvalidTexture)
	}
	canvas := Rect{Width: float64(t.Width), Height: float64(t.Height)}
	for i, s := range t.Shapes {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("texture %q shape %d: %w", t.Key, i, err)
		}
		b := s.Bounds()
		if b.X >= canvas.Width || b.Y >= canvas.Height || b.X+b.Width <= 0 || b.Y+b.Height <= 0 {
			return fmt.Errorf("texture %q shape %d: outside canvas: %w", t.Key, i, ErrInvalidTexture)
		}
	}
	return nil
}
