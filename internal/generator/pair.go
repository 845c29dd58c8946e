package generator

import (
	"math"

	"github.com/ironsheep/coco-sample-mcp/internal/coco"
	"github.com/ironsheep/coco-sample-mcp/internal/shapes"
)

// PairCategorySuffix is appended to category names when renaming is on.
const PairCategorySuffix = "_pair"

const (
	partialShiftMin = 0.3
	partialShiftMax = 0.6

	multipleProbability = 0.3
	multipleShiftBase   = 10
	multipleShiftStep   = 5

	// Additional rectangles stay inside this fraction of the image on every side.
	additionalMarginFrac = 0.1
	additionalMinSide    = 10
	additionalMaxSide    = 100
)

// PairOptions controls how a pair dataset is derived.
type PairOptions struct {
	// MaxMatches is the largest group a multiple-band annotation can expand to.
	MaxMatches int

	// Band ratios of the original annotation count. They need not sum to 1;
	// whatever the first three bands leave over is the multiple band.
	PerfectRatio float64
	PartialRatio float64
	NoMatchRatio float64

	// AdditionalRatio sizes the batch of unrelated false-positive rectangles.
	AdditionalRatio float64

	// RenameCategory appends PairCategorySuffix to every category name.
	RenameCategory bool
}

// PairStats reports how the source annotations were distributed.
type PairStats struct {
	Source     int `json:"source_annotations"`
	Perfect    int `json:"perfect"`
	Partial    int `json:"partial"`
	NoMatch    int `json:"no_match"`
	Multiple   int `json:"multiple"`
	Additional int `json:"additional"`
	Output     int `json:"output_annotations"`
}

// bands returns the size of the perfect, partial and no-match bands. The
// multiple band is total minus their sum.
func bands(total int, o PairOptions) (perfect, partial, noMatch int) {
	take := func(ratio float64, remaining int) int {
		return min(ratioCount(ratio, total), remaining)
	}
	perfect = take(o.PerfectRatio, total)
	partial = take(o.PartialRatio, total-perfect)
	noMatch = take(o.NoMatchRatio, total-perfect-partial)
	return perfect, partial, noMatch
}

func ratioCount(ratio float64, total int) int {
	return max(0, int(math.Round(ratio*float64(total))))
}

// GeneratePair derives a second dataset from src that simulates another
// annotator or a model's predictions over the same images.
//
// Source annotations are split in index order into contiguous bands:
// perfect copies, partially shifted copies, omitted ones and finally a
// multiple band where an annotation may be matched several times. A batch of
// unrelated rectangles is then appended. Ids restart at 1 and increase across
// every band.
func GeneratePair(rng shapes.Rand, src *coco.Dataset, o PairOptions) (*coco.Dataset, PairStats) {
	total := len(src.Annotations)
	perfect, partial, noMatch := bands(total, o)

	stats := PairStats{
		Source:   total,
		Perfect:  perfect,
		Partial:  partial,
		NoMatch:  noMatch,
		Multiple: total - perfect - partial - noMatch,
	}

	out := &coco.Dataset{
		Info:        src.Info,
		Images:      src.Images,
		Licenses:    src.Licenses,
		Categories:  pairCategories(src.Categories, o.RenameCategory),
		Annotations: make([]coco.Annotation, 0, total),
		Extra:       src.Extra,
	}

	var nextID int64
	emit := func(a coco.Annotation) {
		nextID++
		a.ID = nextID
		out.Annotations = append(out.Annotations, a)
	}

	for i, a := range src.Annotations {
		switch {
		case i < perfect:
			emit(a.Clone())

		case i < perfect+partial:
			img, ok := src.ImageByID(a.ImageID)
			dx := randomSign(rng) * between(rng, partialShiftMin, partialShiftMax) * bboxAt(a, 2)
			dy := randomSign(rng) * between(rng, partialShiftMin, partialShiftMax) * bboxAt(a, 3)
			emit(shiftAnnotation(a, img, ok, dx, dy))

		case i < perfect+partial+noMatch:
			// dropped

		default:
			k := 1
			if o.MaxMatches > 1 && rng.Float64() < multipleProbability {
				k = 2 + rng.IntN(o.MaxMatches-1)
			}
			emit(a.Clone())
			img, ok := src.ImageByID(a.ImageID)
			for j := 1; j < k; j++ {
				off := float64(multipleShiftBase + multipleShiftStep*j)
				emit(shiftAnnotation(a, img, ok, randomSign(rng)*off, randomSign(rng)*off))
			}
		}
	}

	if len(src.Images) > 0 && len(src.Categories) > 0 {
		n := ratioCount(o.AdditionalRatio, total)
		for i := 0; i < n; i++ {
			img := src.Images[rng.IntN(len(src.Images))]
			emit(falsePositive(rng, img, src.Categories[0].ID))
		}
		stats.Additional = n
	}

	stats.Output = len(out.Annotations)
	return out, stats
}

func pairCategories(cats []coco.Category, rename bool) []coco.Category {
	out := make([]coco.Category, len(cats))
	copy(out, cats)
	if rename {
		for i := range out {
			out[i].Name += PairCategorySuffix
		}
	}
	return out
}

// shiftAnnotation copies a and moves it by (dx, dy). The new origin is clamped
// so the box stays inside the image, and the clamped delta is what moves the
// polygons. The area becomes the bbox area.
func shiftAnnotation(a coco.Annotation, img coco.Image, haveImage bool, dx, dy float64) coco.Annotation {
	c := a.Clone()
	if len(c.BBox) != 4 {
		return c
	}
	x, y, w, h := c.BBox[0], c.BBox[1], c.BBox[2], c.BBox[3]

	nx, ny := x+dx, y+dy
	if haveImage {
		nx = clamp(nx, 0, float64(img.Width)-w)
		ny = clamp(ny, 0, float64(img.Height)-h)
	}
	ax, ay := nx-x, ny-y

	c.BBox = []float64{nx, ny, w, h}
	for i, poly := range c.Segmentation {
		c.Segmentation[i] = shapes.Translate(poly, ax, ay)
	}
	c.Area = w * h
	return c
}

// falsePositive places a random rectangle inside the interior margin of img.
func falsePositive(rng shapes.Rand, img coco.Image, categoryID int) coco.Annotation {
	mx := int(float64(img.Width) * additionalMarginFrac)
	my := int(float64(img.Height) * additionalMarginFrac)
	availW := max(0, img.Width-2*mx)
	availH := max(0, img.Height-2*my)

	w := intBetween(rng, min(additionalMinSide, availW), min(additionalMaxSide, availW/2))
	h := intBetween(rng, min(additionalMinSide, availH), min(additionalMaxSide, availH/2))
	x := float64(mx + intBetween(rng, 0, availW-w))
	y := float64(my + intBetween(rng, 0, availH-h))
	fw, fh := float64(w), float64(h)

	return coco.Annotation{
		ImageID:    img.ID,
		CategoryID: categoryID,
		Segmentation: [][]float64{{
			x, y,
			x + fw, y,
			x + fw, y + fh,
			x, y + fh,
		}},
		Area: fw * fh,
		BBox: []float64{x, y, fw, fh},
	}
}

func bboxAt(a coco.Annotation, i int) float64 {
	if len(a.BBox) != 4 {
		return 0
	}
	return a.BBox[i]
}

func randomSign(rng shapes.Rand) float64 {
	if rng.IntN(2) == 0 {
		return -1
	}
	return 1
}

func between(rng shapes.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// intBetween draws from [lo, hi] and returns lo when the range is empty.
func intBetween(rng shapes.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}

// clamp limits v to [lo, hi]. A negative hi (box wider than the image) pins
// v to lo.
func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
