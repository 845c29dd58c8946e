package shapes

import "fmt"

// Kind identifies one of the ten shape categories.
type Kind int

const (
	Rectangle Kind = iota + 1
	Triangle
	Pentagon
	Hexagon
	Octagon
	Diamond
	Star
	Cross
	Arrow
	House
)

// NumKinds is the size of the catalog.
const NumKinds = 10

// Supercategory is shared by every catalog entry.
const Supercategory = "shape"

type generateFunc func(rng Rand, width, height, maxSize int) ([]float64, BBox, float64)

type kindInfo struct {
	name     string
	generate generateFunc
}

var catalog = [NumKinds]kindInfo{
	{"rectangle", generateRectangle},
	{"triangle", generateTriangle},
	{"pentagon", generatePentagon},
	{"hexagon", generateHexagon},
	{"octagon", generateOctagon},
	{"diamond", generateDiamond},
	{"star", generateStar},
	{"cross", generateCross},
	{"arrow", generateArrow},
	{"house", generateHouse},
}

// Valid reports whether k is a catalog entry.
func (k Kind) Valid() bool {
	return k >= Rectangle && k <= House
}

// Name returns the category name, e.g. "rectangle".
func (k Kind) Name() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return catalog[k-1].name
}

func (k Kind) String() string { return k.Name() }

// CategoryID returns the 1-based category id of k.
func (k Kind) CategoryID() int { return int(k) }

// IsRect reports whether the kind is drawn with the filled-rectangle primitive
// instead of polygon rasterization.
func (k Kind) IsRect() bool { return k == Rectangle }

// Catalog returns the first n kinds in catalog order. n is clamped to
// [0, NumKinds].
func Catalog(n int) []Kind {
	if n < 0 {
		n = 0
	}
	if n > NumKinds {
		n = NumKinds
	}
	kinds := make([]Kind, n)
	for i := range kinds {
		kinds[i] = Kind(i + 1)
	}
	return kinds
}

// Generate samples a shape of this kind that fits on a width×height canvas.
// The category id of the result equals k.CategoryID().
func (k Kind) Generate(rng Rand, width, height, maxSize int) Shape {
	seg, box, area := catalog[k-1].generate(rng, width, height, maxSize)
	return Shape{
		Kind:         k,
		CategoryID:   k.CategoryID(),
		BBox:         box,
		Segmentation: seg,
		Area:         area,
	}
}
