package shape

import (
	"bytes"
	"image"
	"testing"

	"github.com/jsvensson/figdraw/internal/canvas"
	"github.com/jsvensson/figdraw/internal/color"
)

var (
	black = color.Color{R: 0, G: 0, B: 0}
	white = color.Color{R: 255, G: 255, B: 255}
	red   = color.Color{R: 255, G: 0, B: 0}
	blue  = color.Color{R: 0, G: 0, B: 255}
)

func newCanvas(t *testing.T, width, height int) *canvas.Canvas {
	t.Helper()
	c, err := canvas.New(width, height, black)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func rgbAt(t *testing.T, c *canvas.Canvas, x, y int) color.Color {
	t.Helper()
	px := c.Image().RGBAAt(x, y)
	return color.Color{R: px.R, G: px.G, B: px.B}
}

func TestPointDraw(t *testing.T) {
	c := newCanvas(t, 10, 10)
	c.Draw(Point{X: 5, Y: 5, Color: white})

	if got := rgbAt(t, c, 5, 5); got != white {
		t.Errorf("pixel (5,5) = %v, want %v", got, white)
	}
	if got := rgbAt(t, c, 5, 6); got != black {
		t.Errorf("pixel (5,6) = %v, want untouched background", got)
	}
}

func TestCircleDraw(t *testing.T) {
	c := newCanvas(t, 40, 40)
	c.Draw(Circle{X: 20, Y: 20, Radius: 10, Color: red})

	if got := rgbAt(t, c, 20, 20); got != red {
		t.Errorf("center pixel = %v, want %v", got, red)
	}
	if got := rgbAt(t, c, 2, 2); got != black {
		t.Errorf("far corner pixel = %v, want background", got)
	}
}

func TestCircleNegativeRadius(t *testing.T) {
	a := newCanvas(t, 40, 40)
	b := newCanvas(t, 40, 40)

	a.Draw(Circle{X: 20, Y: 20, Radius: 10, Color: red})
	b.Draw(Circle{X: 20, Y: 20, Radius: -10, Color: red})

	if !bytes.Equal(a.Image().Pix, b.Image().Pix) {
		t.Error("negative radius renders differently from its normalized positive radius")
	}
}

func TestRectangleDraw(t *testing.T) {
	c := newCanvas(t, 40, 40)
	c.Draw(Rectangle{X: 20, Y: 20, Height: 10, Width: 20, Color: white})

	// Center (20,20), half extents 10 and 5.
	for _, p := range []image.Point{{20, 20}, {10, 15}, {30, 25}} {
		if got := rgbAt(t, c, p.X, p.Y); got != white {
			t.Errorf("pixel %v = %v, want filled", p, got)
		}
	}
	for _, p := range []image.Point{{9, 20}, {32, 20}, {20, 13}} {
		if got := rgbAt(t, c, p.X, p.Y); got != black {
			t.Errorf("pixel %v = %v, want background", p, got)
		}
	}
}

func TestSquareMatchesRectangle(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		size int
	}{
		{"even size", 20, 20, 10},
		{"odd size", 15, 25, 7},
		{"zero size", 10, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newCanvas(t, 40, 40)
			b := newCanvas(t, 40, 40)

			a.Draw(NewSquare(tt.x, tt.y, tt.size, red))
			b.Draw(Rectangle{X: tt.x, Y: tt.y, Height: tt.size, Width: tt.size, Color: red})

			if !bytes.Equal(a.Image().Pix, b.Image().Pix) {
				t.Error("square renders differently from the equivalent rectangle")
			}
		})
	}
}

func TestPolygonDraw(t *testing.T) {
	c := newCanvas(t, 30, 30)
	c.Draw(Polygon{Points: []image.Point{{2, 2}, {28, 2}, {15, 26}}, Color: blue})

	if got := rgbAt(t, c, 15, 8); got != blue {
		t.Errorf("interior pixel = %v, want %v", got, blue)
	}
	if got := rgbAt(t, c, 27, 25); got != black {
		t.Errorf("exterior pixel = %v, want background", got)
	}
}

func TestDrawOrderLastWriterWins(t *testing.T) {
	c := newCanvas(t, 40, 40)

	// Two overlapping circles; the later one owns the overlap.
	c.Draw(Circle{X: 15, Y: 20, Radius: 10, Color: red})
	c.Draw(Circle{X: 25, Y: 20, Radius: 10, Color: blue})

	if got := rgbAt(t, c, 20, 20); got != blue {
		t.Errorf("overlap pixel = %v, want the later circle's %v", got, blue)
	}
	if got := rgbAt(t, c, 8, 20); got != red {
		t.Errorf("non-overlap pixel = %v, want the earlier circle's %v", got, red)
	}
}

func TestShapesDrawOffCanvas(t *testing.T) {
	c := newCanvas(t, 10, 10)

	// Partially and fully off-canvas shapes draw without error.
	c.Draw(Circle{X: 0, Y: 0, Radius: 5, Color: red})
	c.Draw(Rectangle{X: 50, Y: 50, Height: 10, Width: 10, Color: red})
	c.Draw(Point{X: -3, Y: 20, Color: red})

	if got := rgbAt(t, c, 0, 0); got != red {
		t.Errorf("clipped circle did not paint its on-canvas part: %v", got)
	}
	if got := rgbAt(t, c, 9, 9); got != black {
		t.Errorf("off-canvas rectangle painted pixel (9,9): %v", got)
	}
}
