package bolt

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

/*
Mental model:

	anchor chain
	└── per consecutive pair: midpoint-displacement tree
		└── leaf segments (pairs of endpoints in the buffer)
			└── maybe an L-system branch rooted at the leaf
*/

// Generate subdivides the chain into a jagged polyline and returns a flat
// vertex buffer, three floats per vertex, two vertices per segment. The
// buffer is a discrete line list: branch segments are interleaved with the
// main bolt, so consecutive pairs are not contiguous and must not be drawn
// as a strip.
//
// Output is a pure function of (chain, p, rng stream): reseeding the rng
// reproduces the buffer exactly.
func Generate(chain []Anchor, p Params, rng *rand.Rand) ([]float32, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(chain) < 2 {
		return []float32{}, ErrInsufficientAnchors
	}

	out := make([]float32, 0, estimateFloats(p, len(chain)))
	for i := 0; i+1 < len(chain); i++ {
		start := chain[i].Endpoint()
		end := chain[i+1].Endpoint()
		axisA, axisB := lateralAxes(end.Sub(start))
		out = subdivide(out, start, end, p.MaxDepth, p.Displacement, axisA, axisB, p, rng)
	}
	return out, nil
}

// lateralAxes returns the two world axes orthogonal to the span's dominant
// axis; midpoints are jittered only along those, so the bolt stays jagged
// without sliding along its own length.
func lateralAxes(span mgl64.Vec3) (int, int) {
	dominant := 0
	if math.Abs(span[1]) > math.Abs(span[dominant]) {
		dominant = 1
	}
	if math.Abs(span[2]) > math.Abs(span[dominant]) {
		dominant = 2
	}
	switch dominant {
	case 0:
		return 1, 2
	case 1:
		return 0, 2
	default:
		return 0, 1
	}
}

func subdivide(out []float32, start, end mgl64.Vec3, depth int, disp float64, axisA, axisB int, p Params, rng *rand.Rand) []float32 {
	if depth == 0 {
		out = appendVec3(out, start)
		out = appendVec3(out, end)
		// One branch draw per leaf.
		if rng.Float64() < p.BranchChance {
			out = growBranch(out, start, end, p, rng)
		}
		return out
	}

	mid := start.Add(end).Mul(0.5)
	mid[axisA] += (rng.Float64() - 0.5) * disp
	mid[axisB] += (rng.Float64() - 0.5) * disp

	out = subdivide(out, start, mid, depth-1, disp*0.5, axisA, axisB, p, rng)
	out = subdivide(out, mid, end, depth-1, disp*0.5, axisA, axisB, p, rng)
	return out
}

// growBranch seeds a decorative sub-branch at a leaf: pick a turn symbol by
// the ProbPlus:ProbMinus ratio, rewrite "<sym>F" through the grammar, then
// walk it with the turtle starting at the leaf's origin and heading.
func growBranch(out []float32, start, end mgl64.Vec3, p Params, rng *rand.Rand) []float32 {
	sym := byte('+')
	if denom := p.ProbPlus + p.ProbMinus; denom > 0 {
		if rng.Float64() >= p.ProbPlus/denom {
			sym = '-'
		}
	}

	heading := end.Sub(start)
	if heading.Len() < 1e-12 {
		return out // degenerate leaf, nothing to root a branch on
	}

	program := Rewrite(string(sym)+"F", p.LSystemIterations, p, rng)
	return Interpret(program, start, heading.Normalize(), p.SegmentLength, p.AngleVariance, rng, out)
}

// estimateFloats sizes the buffer for the main bolt (branches append on
// top). Depth is clamped so the shift cannot overflow on absurd inputs.
func estimateFloats(p Params, anchors int) int {
	d := p.MaxDepth
	if d > 12 {
		d = 12
	}
	return (anchors - 1) * (1 << d) * 6
}

func appendVec3(out []float32, v mgl64.Vec3) []float32 {
	return append(out, float32(v[0]), float32(v[1]), float32(v[2]))
}
