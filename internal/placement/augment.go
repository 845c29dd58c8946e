package placement

import (
	"github.com/ironsheep/coco-sample-mcp/internal/shapes"
)

const (
	// MultiPolygonProbability is the chance that an accepted shape gets
	// secondary polygons.
	MultiPolygonProbability = 0.3

	maxSecondaries   = 3
	maxSecondarySide = 10
	secondaryMargin  = 10
	secondaryRetries = 10
)

// Part is an accepted shape together with any secondary polygons attached to
// it. It becomes one annotation.
type Part struct {
	Shape shapes.Shape

	// Secondaries are extra square polygons, flat x,y pairs.
	Secondaries [][]float64

	// BBox encloses every vertex of the shape and its secondaries.
	BBox shapes.BBox

	// Area is the shape area plus the area of every secondary.
	Area float64
}

// Single wraps a shape without secondaries.
func Single(s shapes.Shape) Part {
	return Part{Shape: s, BBox: s.BBox, Area: s.Area}
}

// Polygons returns the primary outline followed by the secondaries.
func (p Part) Polygons() [][]float64 {
	polys := make([][]float64, 0, 1+len(p.Secondaries))
	polys = append(polys, p.Shape.Segmentation)
	return append(polys, p.Secondaries...)
}

// Augment attaches 1-3 secondary squares to primary with probability
// MultiPolygonProbability.
//
// Each square has side min(10, min(bbox.W, bbox.H)) and sits on a random side
// of the primary bbox, 1 to 10 pixels away from it. A square is retried up to
// 10 times and dropped if every try leaves the canvas or overlaps a box in
// placed. Squares are not checked against each other.
func Augment(rng shapes.Rand, primary shapes.Shape, placed []shapes.BBox, width, height int) Part {
	part := Single(primary)
	if rng.Float64() >= MultiPolygonProbability {
		return part
	}

	side := min(float64(maxSecondarySide), min(primary.BBox.W, primary.BBox.H))
	if side <= 0 {
		return part
	}

	n := 1 + rng.IntN(maxSecondaries)
	for i := 0; i < n; i++ {
		for try := 0; try < secondaryRetries; try++ {
			box := secondaryBox(rng, primary.BBox, side)
			if !onCanvas(box, width, height) || collides(box, placed) {
				continue
			}
			part.Secondaries = append(part.Secondaries, square(box))
			break
		}
	}

	if len(part.Secondaries) > 0 {
		part.BBox = shapes.BoundsOf(part.Polygons()...)
		part.Area += float64(len(part.Secondaries)) * side * side
	}
	return part
}

// secondaryBox picks a square of the given side next to one edge of b.
func secondaryBox(rng shapes.Rand, b shapes.BBox, side float64) shapes.BBox {
	gap := float64(1 + rng.IntN(secondaryMargin))
	alongX := b.X - side + rng.Float64()*(b.W+side)
	alongY := b.Y - side + rng.Float64()*(b.H+side)

	switch rng.IntN(4) {
	case 0: // above
		return shapes.BBox{X: alongX, Y: b.Y - gap - side, W: side, H: side}
	case 1: // below
		return shapes.BBox{X: alongX, Y: b.Y + b.H + gap, W: side, H: side}
	case 2: // left
		return shapes.BBox{X: b.X - gap - side, Y: alongY, W: side, H: side}
	default: // right
		return shapes.BBox{X: b.X + b.W + gap, Y: alongY, W: side, H: side}
	}
}

func onCanvas(b shapes.BBox, width, height int) bool {
	return b.X >= 0 && b.Y >= 0 && b.X+b.W <= float64(width) && b.Y+b.H <= float64(height)
}

func square(b shapes.BBox) []float64 {
	return []float64{
		b.X, b.Y,
		b.X + b.W, b.Y,
		b.X + b.W, b.Y + b.H,
		b.X, b.Y + b.H,
	}
}
