package bolt

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func straightParams() Params {
	p := DefaultParams()
	p.Displacement = 0
	p.BranchChance = 0
	return p
}

func TestGenerateDeterministicForFixedSeed(t *testing.T) {
	chain := []Anchor{
		{Position: mgl64.Vec3{-1, 0, 0}, Height: 2},
		{Position: mgl64.Vec3{0, 0, 0.5}, Height: 1},
		{Position: mgl64.Vec3{1, 0, 0}, Height: 0},
	}
	p := DefaultParams()
	p.BranchChance = 0.7
	p.LSystemIterations = 3

	first, err := Generate(chain, p, rand.New(rand.NewSource(42)))
	assert.NoError(t, err)
	second, err := Generate(chain, p, rand.New(rand.NewSource(42)))
	assert.NoError(t, err)

	assert.Equal(t, first, second)

	// A different stream should diverge (displacement is nonzero).
	third, err := Generate(chain, p, rand.New(rand.NewSource(43)))
	assert.NoError(t, err)
	assert.NotEqual(t, first, third)
}

func TestGenerateDepthZeroIsStraightChain(t *testing.T) {
	chain := []Anchor{
		{Position: mgl64.Vec3{0, 0, 0}, Height: 1},
		{Position: mgl64.Vec3{2, 0, 0}, Height: 0.5},
		{Position: mgl64.Vec3{4, 0, 1}, Height: 1},
	}
	p := straightParams()
	p.MaxDepth = 0

	verts, err := Generate(chain, p, rand.New(rand.NewSource(1)))
	assert.NoError(t, err)

	// Exactly one segment per link, endpoints raised by anchor height.
	want := []float32{
		0, 1, 0, 2, 0.5, 0,
		2, 0.5, 0, 4, 1, 1,
	}
	assert.Equal(t, want, verts)
}

func TestGenerateVertexCount(t *testing.T) {
	tests := []struct {
		anchors int
		depth   int
	}{
		{2, 0},
		{2, 3},
		{3, 4},
		{5, 2},
	}
	for _, tc := range tests {
		chain := make([]Anchor, tc.anchors)
		for i := range chain {
			chain[i] = Anchor{Position: mgl64.Vec3{float64(i), 0, 0}, Height: 1}
		}
		p := DefaultParams()
		p.MaxDepth = tc.depth
		p.BranchChance = 0

		verts, err := Generate(chain, p, rand.New(rand.NewSource(7)))
		assert.NoError(t, err)

		// 2^(d+1) endpoints per link, 3 floats each.
		want := (tc.anchors - 1) * (1 << (tc.depth + 1)) * 3
		assert.Len(t, verts, want, "anchors=%d depth=%d", tc.anchors, tc.depth)
	}
}

func TestGenerateDisplacementBound(t *testing.T) {
	chain := []Anchor{
		{Position: mgl64.Vec3{0, 0, 0}},
		{Position: mgl64.Vec3{10, 0, 0}},
	}
	p := straightParams()
	p.MaxDepth = 6
	p.Displacement = 2

	verts, err := Generate(chain, p, rand.New(rand.NewSource(99)))
	assert.NoError(t, err)

	// Per-axis deviation from the straight x-aligned chain is bounded by
	// the geometric series of halved jitters.
	bound := p.Displacement * (1 - math.Pow(2, -float64(p.MaxDepth)))
	for i := 0; i+2 < len(verts); i += 3 {
		assert.LessOrEqual(t, math.Abs(float64(verts[i+1])), bound+1e-5)
		assert.LessOrEqual(t, math.Abs(float64(verts[i+2])), bound+1e-5)
	}
}

func TestGenerateStraightChainMidpoints(t *testing.T) {
	chain := []Anchor{
		{Position: mgl64.Vec3{0, 0, 0}},
		{Position: mgl64.Vec3{1, 0, 0}},
	}
	p := straightParams()
	p.MaxDepth = 2

	verts, err := Generate(chain, p, rand.New(rand.NewSource(5)))
	assert.NoError(t, err)

	// Zero displacement: four collinear leaf segments with exact quarter
	// midpoints, no jitter on any axis.
	wantX := []float32{0, 0.25, 0.25, 0.5, 0.5, 0.75, 0.75, 1}
	assert.Len(t, verts, len(wantX)*3)
	for i, x := range wantX {
		assert.Equal(t, x, verts[i*3])
		assert.Zero(t, verts[i*3+1])
		assert.Zero(t, verts[i*3+2])
	}
}

func TestGenerateBranchChanceZeroNeverBranches(t *testing.T) {
	chain := []Anchor{
		{Position: mgl64.Vec3{0, 0, 0}, Height: 1},
		{Position: mgl64.Vec3{3, 0, 0}, Height: 1},
	}
	p := DefaultParams()
	p.MaxDepth = 4
	p.BranchChance = 0
	p.LSystemIterations = 5 // would explode the buffer if branches ran

	verts, err := Generate(chain, p, rand.New(rand.NewSource(3)))
	assert.NoError(t, err)
	assert.Len(t, verts, (1<<(p.MaxDepth+1))*3)
}

func TestGenerateEveryLeafBranches(t *testing.T) {
	chain := []Anchor{
		{Position: mgl64.Vec3{0, 0, 0}},
		{Position: mgl64.Vec3{2, 0, 0}},
	}
	p := DefaultParams()
	p.MaxDepth = 3
	p.BranchChance = 1
	p.LSystemIterations = 1
	// ProbStraight 1 makes every branch program "<sym>FF": two segments.
	p.ProbStraight = 1
	p.ProbPlus = 0
	p.ProbMinus = 0

	verts, err := Generate(chain, p, rand.New(rand.NewSource(11)))
	assert.NoError(t, err)

	leaves := 1 << p.MaxDepth
	mainFloats := leaves * 6
	branchFloats := leaves * 2 * 6
	assert.Len(t, verts, mainFloats+branchFloats)
}

func TestGenerateInsufficientAnchors(t *testing.T) {
	p := DefaultParams()

	verts, err := Generate(nil, p, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrInsufficientAnchors)
	assert.Empty(t, verts)
	assert.NotNil(t, verts) // empty buffer, not an absent one

	verts, err = Generate([]Anchor{{Height: 1}}, p, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrInsufficientAnchors)
	assert.Empty(t, verts)
}

func TestGenerateRejectsInvalidParams(t *testing.T) {
	chain := []Anchor{
		{Position: mgl64.Vec3{0, 0, 0}},
		{Position: mgl64.Vec3{1, 0, 0}},
	}
	p := DefaultParams()
	p.MaxDepth = -1

	verts, err := Generate(chain, p, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrInvalidParameter)
	assert.Nil(t, verts)
}

func TestLateralAxesPicksOrthogonalPair(t *testing.T) {
	tests := []struct {
		span         mgl64.Vec3
		wantA, wantB int
	}{
		{mgl64.Vec3{5, 1, 1}, 1, 2},
		{mgl64.Vec3{1, -5, 1}, 0, 2},
		{mgl64.Vec3{0, 0, 2}, 0, 1},
	}
	for _, tc := range tests {
		a, b := lateralAxes(tc.span)
		assert.Equal(t, tc.wantA, a)
		assert.Equal(t, tc.wantB, b)
	}
}
