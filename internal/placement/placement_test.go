package placement

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/coco-sample-mcp/internal/shapes"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// scriptedRand replays fixed values and returns zero once a queue runs dry.
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func rect(x, y, w, h float64) shapes.Shape {
	return shapes.Shape{
		Kind:         shapes.Rectangle,
		CategoryID:   1,
		BBox:         shapes.BBox{X: x, Y: y, W: w, H: h},
		Segmentation: []float64{x, y, x + w, y, x + w, y + h, x, y + h},
		Area:         w * h,
	}
}

func TestClampMaxSize(t *testing.T) {
	tests := []struct {
		maxSize, width, height int
		want                   int
	}{
		{80, 400, 400, 80},
		{80, 100, 400, 50},
		{80, 400, 60, 30},
		{10, 20, 20, 10},
		{80, 1, 1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampMaxSize(tt.maxSize, tt.width, tt.height),
			"ClampMaxSize(%d, %d, %d)", tt.maxSize, tt.width, tt.height)
	}
}

func TestPlace_NoOverlap(t *testing.T) {
	e := Engine{Width: 400, Height: 400, NumClasses: 4, MaxSize: 80}

	for seed := uint64(1); seed <= 20; seed++ {
		res := e.Place(newRand(seed), 10, nil)
		require.LessOrEqual(t, len(res.Parts), 10)

		for i := range res.Parts {
			for j := i + 1; j < len(res.Parts); j++ {
				a, b := res.Parts[i].Shape.BBox, res.Parts[j].Shape.BBox
				assert.False(t, a.Overlaps(b), "seed %d: parts %d and %d overlap: %+v %+v", seed, i, j, a, b)
			}
		}
	}
}

func TestPlace_NoOverlapWithSecondaries(t *testing.T) {
	e := Engine{Width: 300, Height: 300, NumClasses: 10, MaxSize: 60, MultiPolygon: true}

	sawSecondary := false
	for seed := uint64(1); seed <= 30; seed++ {
		res := e.Place(newRand(seed), 12, nil)
		for i := range res.Parts {
			if len(res.Parts[i].Secondaries) > 0 {
				sawSecondary = true
			}
			for j := i + 1; j < len(res.Parts); j++ {
				a, b := res.Parts[i].BBox, res.Parts[j].BBox
				assert.False(t, a.Overlaps(b), "seed %d: parts %d and %d overlap: %+v %+v", seed, i, j, a, b)
			}
		}
	}
	assert.True(t, sawSecondary, "expected at least one multi-polygon part")
}

func TestCollides(t *testing.T) {
	placed := []shapes.BBox{{X: 0, Y: 0, W: 10, H: 10}, {X: 50, Y: 50, W: 10, H: 10}}

	assert.True(t, collides(shapes.BBox{X: 5, Y: 5, W: 2, H: 2}, placed))
	assert.True(t, collides(shapes.BBox{X: 60, Y: 60, W: 5, H: 5}, placed), "shared corner counts")
	assert.False(t, collides(shapes.BBox{X: 20, Y: 20, W: 5, H: 5}, placed))
	assert.False(t, collides(shapes.BBox{X: 20, Y: 20, W: 5, H: 5}, nil))
}

func TestPlace_CategoriesAndBounds(t *testing.T) {
	e := Engine{Width: 300, Height: 200, NumClasses: 3, MaxSize: 80, AllowOverlap: true}

	res := e.Place(newRand(7), 25, nil)
	require.Len(t, res.Parts, 25, "overlap allowed should never reject")
	assert.Equal(t, 25, res.Attempts)

	for _, p := range res.Parts {
		assert.GreaterOrEqual(t, p.Shape.CategoryID, 1)
		assert.LessOrEqual(t, p.Shape.CategoryID, 3)
		b := p.BBox
		assert.GreaterOrEqual(t, b.X, 0.0)
		assert.GreaterOrEqual(t, b.Y, 0.0)
		assert.LessOrEqual(t, b.X+b.W, 300.0)
		assert.LessOrEqual(t, b.Y+b.H, 200.0)
		assert.Empty(t, p.Secondaries)
	}
}

func TestPlace_BudgetExhausted(t *testing.T) {
	e := Engine{Width: 20, Height: 20, NumClasses: 4, MaxSize: 80}

	res := e.Place(newRand(3), 50, nil)
	assert.Equal(t, 50*AttemptsPerShape, res.Attempts)
	assert.Less(t, len(res.Parts), 50)
	assert.NotEmpty(t, res.Parts)
}

func TestPlace_DrawOrder(t *testing.T) {
	e := Engine{Width: 400, Height: 400, NumClasses: 10, MaxSize: 60}

	var drawn []Part
	res := e.Place(newRand(11), 8, func(p Part) { drawn = append(drawn, p) })
	assert.Equal(t, res.Parts, drawn)
}

func TestPlace_Empty(t *testing.T) {
	e := Engine{Width: 100, Height: 100, NumClasses: 4, MaxSize: 40}
	assert.Empty(t, e.Place(newRand(1), 0, nil).Parts)

	e.NumClasses = 0
	res := e.Place(newRand(1), 5, nil)
	assert.Empty(t, res.Parts)
	assert.Zero(t, res.Attempts)
}

func TestPlace_Deterministic(t *testing.T) {
	e := Engine{Width: 256, Height: 256, NumClasses: 5, MaxSize: 50, MultiPolygon: true}
	a := e.Place(newRand(99), 12, nil)
	b := e.Place(newRand(99), 12, nil)
	assert.Equal(t, a, b)
}

func TestPlace_MultiPolygon(t *testing.T) {
	e := Engine{Width: 400, Height: 400, NumClasses: 10, MaxSize: 60, MultiPolygon: true}

	sawSecondary := false
	for seed := uint64(1); seed <= 10; seed++ {
		for _, p := range e.Place(newRand(seed), 10, nil).Parts {
			if len(p.Secondaries) == 0 {
				assert.Equal(t, p.Shape.BBox, p.BBox)
				continue
			}
			sawSecondary = true
			assert.Greater(t, p.Area, p.Shape.Area)
			assert.Equal(t, shapes.BoundsOf(p.Polygons()...), p.BBox)
			for _, sq := range p.Secondaries {
				sb := shapes.BoundsOf(sq)
				assert.True(t, onCanvas(sb, 400, 400), "secondary off canvas: %+v", sb)
			}
		}
	}
	assert.True(t, sawSecondary, "expected at least one multi-polygon part")
}

func TestAugment_SkipsAboveProbability(t *testing.T) {
	primary := rect(100, 100, 40, 40)
	rng := &scriptedRand{floats: []float64{MultiPolygonProbability}}

	part := Augment(rng, primary, []shapes.BBox{primary.BBox}, 400, 400)
	assert.Empty(t, part.Secondaries)
	assert.Equal(t, primary.BBox, part.BBox)
	assert.Equal(t, primary.Area, part.Area)
}

func TestAugment_RightSide(t *testing.T) {
	primary := rect(100, 100, 40, 40)
	rng := &scriptedRand{
		// one secondary, gap 5, right side
		ints:   []int{0, 4, 3},
		floats: []float64{0.0, 0.5, 0.5},
	}

	part := Augment(rng, primary, []shapes.BBox{primary.BBox}, 400, 400)
	require.Len(t, part.Secondaries, 1)
	assert.Equal(t, []float64{145, 115, 155, 115, 155, 125, 145, 125}, part.Secondaries[0])
	assert.Equal(t, shapes.BBox{X: 100, Y: 100, W: 55, H: 40}, part.BBox)
	assert.Equal(t, 1600.0+100.0, part.Area)

	polys := part.Polygons()
	require.Len(t, polys, 2)
	assert.Equal(t, primary.Segmentation, polys[0])
}

func TestAugment_SideLimitedByPrimary(t *testing.T) {
	primary := rect(100, 100, 6, 30)
	rng := &scriptedRand{
		ints:   []int{0, 0, 1},
		floats: []float64{0.0, 0.0, 0.0},
	}

	part := Augment(rng, primary, []shapes.BBox{primary.BBox}, 400, 400)
	require.Len(t, part.Secondaries, 1)
	sb := shapes.BoundsOf(part.Secondaries[0])
	assert.Equal(t, 6.0, sb.W)
	assert.Equal(t, 6.0, sb.H)
	assert.Equal(t, 30.0*6+36, part.Area)
}

func TestAugment_DroppedOffCanvas(t *testing.T) {
	// Primary fills the canvas so every candidate square falls outside it
	primary := rect(0, 0, 40, 40)
	rng := &scriptedRand{floats: []float64{0.0}}

	part := Augment(rng, primary, []shapes.BBox{primary.BBox}, 40, 40)
	assert.Empty(t, part.Secondaries)
	assert.Equal(t, primary.BBox, part.BBox)
	assert.Equal(t, primary.Area, part.Area)
}

func TestAugment_DroppedOnCollision(t *testing.T) {
	primary := rect(100, 100, 40, 40)
	blocker := rect(140, 90, 30, 60)
	rng := &scriptedRand{
		// every try lands right of the primary, inside the blocker
		ints:   []int{0, 4, 3, 4, 3, 4, 3, 4, 3, 4, 3, 4, 3, 4, 3, 4, 3, 4, 3, 4, 3},
		floats: []float64{0.0},
	}

	part := Augment(rng, primary, []shapes.BBox{blocker.BBox, primary.BBox}, 400, 400)
	assert.Empty(t, part.Secondaries)
}
