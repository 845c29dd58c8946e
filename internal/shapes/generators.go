package shapes

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	minSize   = 40
	minRadius = 30
	maxRadius = 60
)

// sizeRange draws a side length for the size-based kinds.
func sizeRange(rng Rand, maxSize, limit int) float64 {
	return float64(intRange(rng, min(minSize, maxSize), min(maxSize, limit)))
}

// radiusRange draws a circumradius for the radial kinds.
func radiusRange(rng Rand, maxSize int) float64 {
	half := maxSize / 2
	return float64(intRange(rng, min(minRadius, half), min(half, maxRadius)))
}

// ceilHalf is the smallest integer offset that keeps a half-extent on canvas.
func ceilHalf(extent float64) int {
	return int(math.Ceil(extent / 2))
}

// center draws a center coordinate in [margin, dim-margin).
func center(rng Rand, dim, margin int) float64 {
	return float64(intRangeOpen(rng, margin, dim-margin))
}

func generateRectangle(rng Rand, width, height, maxSize int) ([]float64, BBox, float64) {
	w := int(sizeRange(rng, maxSize, 100))
	h := int(sizeRange(rng, maxSize, 100))
	x := float64(intRangeOpen(rng, 0, width-w))
	y := float64(intRangeOpen(rng, 0, height-h))
	fw, fh := float64(w), float64(h)

	seg := []float64{
		x, y,
		x + fw, y,
		x + fw, y + fh,
		x, y + fh,
	}
	return seg, BBox{X: x, Y: y, W: fw, H: fh}, fw * fh
}

func generateTriangle(rng Rand, width, height, maxSize int) ([]float64, BBox, float64) {
	size := sizeRange(rng, maxSize, 80)
	cx := center(rng, width, int(size))
	cy := center(rng, height, int(size))
	half := size / 2

	seg := []float64{
		cx, cy - half,
		cx - half, cy + half,
		cx + half, cy + half,
	}
	return seg, BBox{X: cx - half, Y: cy - half, W: size, H: size}, size * size / 2
}

func generateDiamond(rng Rand, width, height, maxSize int) ([]float64, BBox, float64) {
	size := sizeRange(rng, maxSize, 80)
	cx := center(rng, width, int(size))
	cy := center(rng, height, int(size))
	half := size / 2

	seg := []float64{
		cx, cy - half,
		cx + half, cy,
		cx, cy + half,
		cx - half, cy,
	}
	return seg, BBox{X: cx - half, Y: cy - half, W: size, H: size}, size * size / 2
}

// regularPolygon emits n vertices on a circle of the given radius, starting at
// angle offset and proceeding clockwise in image coordinates.
func regularPolygon(c r2.Vec, radius float64, n int, offset float64) []r2.Vec {
	pts := make([]r2.Vec, n)
	for i := range pts {
		angle := 2*math.Pi*float64(i)/float64(n) + offset
		pts[i] = r2.Add(c, r2.Scale(radius, r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)}))
	}
	return pts
}

// radial samples a radius and a center that keeps the circumcircle on canvas.
func radial(rng Rand, width, height, maxSize int) (r2.Vec, float64) {
	radius := radiusRange(rng, maxSize)
	c := r2.Vec{
		X: center(rng, width, int(radius)),
		Y: center(rng, height, int(radius)),
	}
	return c, radius
}

func generatePentagon(rng Rand, width, height, maxSize int) ([]float64, BBox, float64) {
	c, radius := radial(rng, width, height, maxSize)
	seg := Flatten(regularPolygon(c, radius, 5, -math.Pi/2))
	return seg, BoundsOf(seg), radius * radius * 1.72
}

func generateHexagon(rng Rand, width, height, maxSize int) ([]float64, BBox, float64) {
	c, radius := radial(rng, width, height, maxSize)
	seg := Flatten(regularPolygon(c, radius, 6, 0))
	return seg, BoundsOf(seg), radius * radius * 2.6
}

func generateOctagon(rng Rand, width, height, maxSize int) ([]float64, BBox, float64) {
	c, radius := radial(rng, width, height, maxSize)
	seg := Flatten(regularPolygon(c, radius, 8, -math.Pi/8))
	return seg, BoundsOf(seg), radius * radius * 2.83
}

func generateStar(rng Rand, width, height, maxSize int) ([]float64, BBox, float64) {
	c, outer := radial(rng, width, height, maxSize)
	inner := outer * 0.5

	pts := make([]r2.Vec, 10)
	for i := range pts {
		angle := math.Pi*float64(i)/5 - math.Pi/2
		radius := outer
		if i%2 == 1 {
			radius = inner
		}
		pts[i] = r2.Add(c, r2.Scale(radius, r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)}))
	}
	seg := Flatten(pts)
	return seg, BoundsOf(seg), outer * outer
}

func generateCross(rng Rand, width, height, maxSize int) ([]float64, BBox, float64) {
	size := sizeRange(rng, maxSize, 80)
	t := size / 3
	cx := center(rng, width, int(size))
	cy := center(rng, height, int(size))
	half, ht := size/2, t/2

	// Clockwise from the top-left corner of the vertical bar.
	seg := []float64{
		cx - ht, cy - half,
		cx + ht, cy - half,
		cx + ht, cy - ht,
		cx + half, cy - ht,
		cx + half, cy + ht,
		cx + ht, cy + ht,
		cx + ht, cy + half,
		cx - ht, cy + half,
		cx - ht, cy + ht,
		cx - half, cy + ht,
		cx - half, cy - ht,
		cx - ht, cy - ht,
	}
	return seg, BBox{X: cx - half, Y: cy - half, W: size, H: size}, size*t*2 - t*t
}

func generateArrow(rng Rand, width, height, maxSize int) ([]float64, BBox, float64) {
	length := sizeRange(rng, maxSize, 100)
	aw := length * 0.4
	head := length * 0.4
	cx := center(rng, width, int(length))
	cy := center(rng, height, ceilHalf(aw))

	left := cx - length/2
	right := cx + length/2
	neck := right - head

	seg := []float64{
		left, cy - aw/4,
		neck, cy - aw/4,
		neck, cy - aw/2,
		right, cy,
		neck, cy + aw/2,
		neck, cy + aw/4,
		left, cy + aw/4,
	}
	return seg, BBox{X: left, Y: cy - aw/2, W: length, H: aw}, length * aw * 0.7
}

func generateHouse(rng Rand, width, height, maxSize int) ([]float64, BBox, float64) {
	size := sizeRange(rng, maxSize, 100)
	wall := size * 0.6
	roof := size * 0.4
	cx := center(rng, width, ceilHalf(size))
	cy := center(rng, height, ceilHalf(size))
	half := size / 2

	seg := []float64{
		cx - half, cy,
		cx - half, cy + wall/2,
		cx + half, cy + wall/2,
		cx + half, cy,
		cx, cy - roof,
	}
	box := BBox{X: cx - half, Y: cy - roof, W: size, H: wall/2 + roof}
	return seg, box, size*wall/2 + size*roof/2
}
