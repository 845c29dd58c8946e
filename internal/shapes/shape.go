package shapes

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
)

// Rand is the source of randomness used by the generators.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// BBox is an axis-aligned bounding box in COCO order.
type BBox struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// Slice returns the box as [x, y, width, height].
func (b BBox) Slice() []float64 {
	return []float64{b.X, b.Y, b.W, b.H}
}

// Overlaps reports whether two boxes intersect. Boxes that share an edge
// count as overlapping.
func (b BBox) Overlaps(o BBox) bool {
	return !(b.X+b.W < o.X || o.X+o.W < b.X || b.Y+b.H < o.Y || o.Y+o.H < b.Y)
}

// Shape is one generated primitive.
type Shape struct {
	Kind       Kind
	CategoryID int

	// BBox tightly encloses Segmentation.
	BBox BBox

	// Segmentation is the outline as flat x,y pairs in canvas coordinates.
	Segmentation []float64

	Area float64
}

// Vertices returns the outline as points.
func (s Shape) Vertices() []r2.Vec {
	return Unflatten(s.Segmentation)
}

// Flatten converts points to the flat x,y layout used by COCO.
func Flatten(pts []r2.Vec) []float64 {
	out := make([]float64, 0, len(pts)*2)
	for _, p := range pts {
		out = append(out, p.X, p.Y)
	}
	return out
}

// Unflatten converts a flat x,y list to points. A trailing odd value is ignored.
func Unflatten(flat []float64) []r2.Vec {
	pts := make([]r2.Vec, 0, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		pts = append(pts, r2.Vec{X: flat[i], Y: flat[i+1]})
	}
	return pts
}

// BoundsOf returns the min/max extent over every vertex of every polygon.
// It returns the zero box when there are no vertices.
func BoundsOf(polys ...[]float64) BBox {
	var xs, ys []float64
	for _, poly := range polys {
		for i := 0; i+1 < len(poly); i += 2 {
			xs = append(xs, poly[i])
			ys = append(ys, poly[i+1])
		}
	}
	if len(xs) == 0 {
		return BBox{}
	}
	minX, maxX := floats.Min(xs), floats.Max(xs)
	minY, maxY := floats.Min(ys), floats.Max(ys)
	return BBox{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Translate returns a copy of the flat polygon moved by (dx, dy).
func Translate(flat []float64, dx, dy float64) []float64 {
	out := append([]float64(nil), flat...)
	for i := 0; i+1 < len(flat); i += 2 {
		out[i] = flat[i] + dx
		out[i+1] = flat[i+1] + dy
	}
	return out
}

// intRange returns a uniform integer in [lo, hi]. An empty range yields lo.
func intRange(rng Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}

// intRangeOpen returns a uniform integer in [lo, hi). An empty range yields lo.
func intRangeOpen(rng Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo)
}
