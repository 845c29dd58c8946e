package imaging

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"

	"github.com/ironsheep/coco-sample-mcp/internal/shapes"
)

// Canvas is a mutable RGB drawing surface for one generated image.
//
// A Canvas is owned by a single generation pass and is not safe for
// concurrent use.
type Canvas struct {
	img  *image.RGBA
	mask *image.Alpha
	z    *vector.Rasterizer
}

// NewCanvas creates a width×height canvas filled with white.
func NewCanvas(width, height int) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return &Canvas{
		img:  img,
		mask: image.NewAlpha(img.Bounds()),
		z:    vector.NewRasterizer(width, height),
	}
}

// Image returns the underlying image. Later drawing is visible through it.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Bounds returns the canvas rectangle.
func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}

// DrawShape paints a shape filled with col. Rectangles are filled directly;
// every other kind is rasterized from its outline.
func (c *Canvas) DrawShape(s shapes.Shape, col color.Color) {
	if s.Kind.IsRect() {
		c.FillRect(s.BBox, col)
		return
	}
	c.FillPolygon(s.Segmentation, col)
}

// FillRect fills the pixel rectangle covered by box.
func (c *Canvas) FillRect(box shapes.BBox, col color.Color) {
	r := image.Rect(int(box.X), int(box.Y), int(box.X+box.W), int(box.Y+box.H))
	draw.Draw(c.img, r.Intersect(c.img.Bounds()), image.NewUniform(col), image.Point{}, draw.Src)
}

// coverageThreshold is the minimum alpha a pixel needs to be painted.
// Edges are hard: a pixel is either fully painted or left untouched.
const coverageThreshold = 0x80

// FillPolygon fills the closed polygon given as flat x,y pairs.
// Polygons with fewer than three vertices are ignored.
func (c *Canvas) FillPolygon(flat []float64, col color.Color) {
	pts := shapes.Unflatten(flat)
	if len(pts) < 3 {
		return
	}

	b := c.img.Bounds()
	c.z.Reset(b.Dx(), b.Dy())
	c.z.DrawOp = draw.Src
	c.z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		c.z.LineTo(float32(p.X), float32(p.Y))
	}
	c.z.ClosePath()
	c.z.Draw(c.mask, b, image.Opaque, image.Point{})

	for i, a := range c.mask.Pix {
		if a >= coverageThreshold {
			c.mask.Pix[i] = 0xff
		} else {
			c.mask.Pix[i] = 0
		}
	}
	draw.DrawMask(c.img, b, image.NewUniform(col), image.Point{}, c.mask, image.Point{}, draw.Over)
}
