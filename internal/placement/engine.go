// Package placement decides where generated shapes go on a canvas.
//
// The Engine is a bounded rejection sampler: it keeps drawing random shapes
// until the requested count is reached or the attempt budget runs out. When
// overlap is disallowed, candidates whose bounding box touches the combined
// box of an accepted part are thrown away, and secondaries that would grow a
// part's box into another part are dropped. Running out of budget is not an error; the caller
// simply gets fewer shapes.
//
// Augment optionally attaches small secondary squares next to an accepted
// shape to produce multi-part segmentation masks.
package placement

import (
	"github.com/ironsheep/coco-sample-mcp/internal/shapes"
)

// AttemptsPerShape bounds the sampler: at most count*AttemptsPerShape
// candidates are drawn per image.
const AttemptsPerShape = 100

// Engine places shapes on one image.
type Engine struct {
	Width  int
	Height int

	// NumClasses limits sampling to the first NumClasses catalog kinds.
	NumClasses int

	// MaxSize is the requested size budget. It is clamped to half the smaller
	// canvas dimension before use.
	MaxSize int

	AllowOverlap bool

	// MultiPolygon enables Augment on every accepted shape.
	MultiPolygon bool
}

// Result is the outcome of one Place call.
type Result struct {
	// Parts are the accepted shapes in acceptance order.
	Parts []Part

	// Attempts is the number of candidates drawn.
	Attempts int
}

// ClampMaxSize limits a size budget to min(width, height)/2 so that every
// generator can find a center that keeps the shape on canvas.
func ClampMaxSize(maxSize, width, height int) int {
	return min(maxSize, min(width, height)/2)
}

// Place samples up to count shapes. draw is called once per accepted part,
// in acceptance order, before the next candidate is drawn; it may be nil.
func (e Engine) Place(rng shapes.Rand, count int, draw func(Part)) Result {
	kinds := shapes.Catalog(e.NumClasses)
	if len(kinds) == 0 || count <= 0 {
		return Result{}
	}

	maxSize := ClampMaxSize(e.MaxSize, e.Width, e.Height)
	budget := count * AttemptsPerShape

	var res Result
	// primaries holds the bare shape boxes, occupied the combined part boxes.
	var primaries, occupied []shapes.BBox

	for len(res.Parts) < count && res.Attempts < budget {
		res.Attempts++

		kind := kinds[rng.IntN(len(kinds))]
		candidate := kind.Generate(rng, e.Width, e.Height, maxSize)

		if !e.AllowOverlap && collides(candidate.BBox, occupied) {
			continue
		}
		primaries = append(primaries, candidate.BBox)

		part := Single(candidate)
		if e.MultiPolygon {
			part = Augment(rng, candidate, primaries, e.Width, e.Height)
			if !e.AllowOverlap && collides(part.BBox, occupied) {
				part = Single(candidate)
			}
		}
		occupied = append(occupied, part.BBox)

		if draw != nil {
			draw(part)
		}
		res.Parts = append(res.Parts, part)
	}

	return res
}

func collides(box shapes.BBox, placed []shapes.BBox) bool {
	for _, b := range placed {
		if box.Overlaps(b) {
			return true
		}
	}
	return false
}
