// Package canvas owns the pixel buffer a scene is rendered onto. Actual
// rasterization is delegated to rasterx; the canvas only knows how to fill
// simple closed paths and set single pixels.
package canvas

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"github.com/jsvensson/figdraw/internal/color"
)

// kappa is the control-point distance for approximating a quarter ellipse
// with a single cubic bezier.
const kappa = 0.5522847498307936

// Drawable is anything that can render itself onto a canvas.
type Drawable interface {
	Draw(c *Canvas)
}

// Canvas is a fixed-size RGBA buffer with an attached rasterizer.
type Canvas struct {
	img     *image.RGBA
	scanner *rasterx.ScannerGV
	filler  *rasterx.Filler
}

// New creates a canvas of the given size with every pixel painted in the
// background color.
func New(width, height int, background color.Color) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d: width and height must be positive", width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	return &Canvas{
		img:     img,
		scanner: scanner,
		filler:  rasterx.NewFiller(width, height, scanner),
	}, nil
}

// Draw renders one drawable onto the canvas.
func (c *Canvas) Draw(d Drawable) {
	d.Draw(c)
}

// Image exposes the underlying pixel buffer.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Bounds returns the pixel bounds of the canvas.
func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}

// SetPixel paints a single pixel. Coordinates outside the canvas are a no-op.
func (c *Canvas) SetPixel(x, y int, col color.Color) {
	c.img.Set(x, y, col)
}

// FillRect fills the axis-aligned rectangle spanning the given pixel bounds,
// inclusive on all four edges. Inverted bounds are normalized.
func (c *Canvas) FillRect(minX, minY, maxX, maxY int, col color.Color) {
	minX, maxX = ordered(minX, maxX)
	minY, maxY = ordered(minY, maxY)

	c.filler.Start(toFixed(float64(minX), float64(minY)))
	c.filler.Line(toFixed(float64(maxX+1), float64(minY)))
	c.filler.Line(toFixed(float64(maxX+1), float64(maxY+1)))
	c.filler.Line(toFixed(float64(minX), float64(maxY+1)))
	c.filler.Stop(true)
	c.fill(col)
}

// FillEllipse fills the ellipse inscribed in the given pixel bounding box,
// inclusive on all four edges. Inverted bounds are normalized.
func (c *Canvas) FillEllipse(minX, minY, maxX, maxY int, col color.Color) {
	minX, maxX = ordered(minX, maxX)
	minY, maxY = ordered(minY, maxY)

	rx := float64(maxX-minX+1) / 2
	ry := float64(maxY-minY+1) / 2
	cx := float64(minX) + rx
	cy := float64(minY) + ry

	// Four quarter arcs, each one cubic bezier.
	c.filler.Start(toFixed(cx+rx, cy))
	c.filler.CubeBezier(toFixed(cx+rx, cy+ry*kappa), toFixed(cx+rx*kappa, cy+ry), toFixed(cx, cy+ry))
	c.filler.CubeBezier(toFixed(cx-rx*kappa, cy+ry), toFixed(cx-rx, cy+ry*kappa), toFixed(cx-rx, cy))
	c.filler.CubeBezier(toFixed(cx-rx, cy-ry*kappa), toFixed(cx-rx*kappa, cy-ry), toFixed(cx, cy-ry))
	c.filler.CubeBezier(toFixed(cx+rx*kappa, cy-ry), toFixed(cx+rx, cy-ry*kappa), toFixed(cx+rx, cy))
	c.filler.Stop(true)
	c.fill(col)
}

// FillPolygon fills the polygon with the given vertices. Degenerate polygons
// with fewer than three vertices enclose no area and paint nothing.
func (c *Canvas) FillPolygon(points []image.Point, col color.Color) {
	if len(points) == 0 {
		return
	}

	c.filler.Start(toFixed(float64(points[0].X), float64(points[0].Y)))
	for _, p := range points[1:] {
		c.filler.Line(toFixed(float64(p.X), float64(p.Y)))
	}
	c.filler.Stop(true)
	c.fill(col)
}

// fill rasterizes the pending path in the given color and resets the filler.
func (c *Canvas) fill(col color.Color) {
	c.scanner.SetColor(col)
	c.filler.Draw()
	c.filler.Clear()
}

func ordered(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

func toFixed(x, y float64) (p fixed.Point26_6) {
	p.X = fixed.Int26_6(x * 64)
	p.Y = fixed.Int26_6(y * 64)
	return p
}
