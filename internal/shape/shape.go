// Package shape defines the closed set of drawable figures. Every shape
// carries its own geometry plus a fully resolved color; symbolic palette
// names never reach this package.
package shape

import (
	"image"

	"github.com/jsvensson/figdraw/internal/canvas"
	"github.com/jsvensson/figdraw/internal/color"
)

// Shape is one drawable figure. Drawing mutates the canvas in place; shapes
// may legally paint partially or fully outside its bounds.
type Shape interface {
	Draw(c *canvas.Canvas)
}

// Point paints a single pixel.
type Point struct {
	X, Y  int
	Color color.Color
}

func (p Point) Draw(c *canvas.Canvas) {
	c.SetPixel(p.X, p.Y, p.Color)
}

// Circle fills the ellipse inscribed in the square bounding box around its
// center. A negative radius inverts the box, which the canvas normalizes.
type Circle struct {
	X, Y   int
	Radius int
	Color  color.Color
}

func (s Circle) Draw(c *canvas.Canvas) {
	c.FillEllipse(s.X-s.Radius, s.Y-s.Radius, s.X+s.Radius, s.Y+s.Radius, s.Color)
}

// Rectangle fills a rectangle centered at (X, Y). The half-extents use
// truncating division, so odd sizes extend one pixel less on the low side.
type Rectangle struct {
	X, Y          int
	Height, Width int
	Color         color.Color
}

func (r Rectangle) Draw(c *canvas.Canvas) {
	c.FillRect(r.X-r.Width/2, r.Y-r.Height/2, r.X+r.Width/2, r.Y+r.Height/2, r.Color)
}

// NewSquare builds a square as a Rectangle with equal height and width.
func NewSquare(x, y, size int, col color.Color) Rectangle {
	return Rectangle{X: x, Y: y, Height: size, Width: size, Color: col}
}

// Polygon fills the polygon spanned by its ordered vertices. Vertex count is
// not validated; fewer than three vertices paint nothing.
type Polygon struct {
	Points []image.Point
	Color  color.Color
}

func (p Polygon) Draw(c *canvas.Canvas) {
	c.FillPolygon(p.Points, p.Color)
}
