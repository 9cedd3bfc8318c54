package bolt

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidParameter is returned by Generate before any geometry is
	// produced; a failed validation never yields a partial buffer.
	ErrInvalidParameter = errors.New("invalid generation parameter")

	// ErrInsufficientAnchors marks a chain too short to span. A one-anchor
	// scene is a normal transient state while the user is editing, so the
	// caller should treat this as benign.
	ErrInsufficientAnchors = errors.New("anchor chain needs at least two anchors")
)

// probSumTolerance is how far the three production probabilities may drift
// from summing to 1 before validation rejects them. Sliders renormalize on
// every change, so in practice only hand-built Params trip this.
const probSumTolerance = 1e-6

// Params holds one regeneration's worth of tuning. Treated as read-only by
// the generator; the UI layer owns the editable copy.
type Params struct {
	MaxDepth          int     // recursion depth of the midpoint subdivision
	Displacement      float64 // initial midpoint jitter, halves each level
	BranchChance      float64 // per-leaf probability of seeding an L-system branch
	LSystemIterations int     // rewrite passes applied to the branch axiom
	SegmentLength     float64 // world length of one turtle step
	AngleVariance     float64 // max turn per +/- command, degrees

	// Production weights for the branch grammar. Must sum to 1.
	ProbStraight float64 // F -> FF
	ProbPlus     float64 // F -> F[+F]
	ProbMinus    float64 // F -> F[-F]
}

// DefaultParams returns the tuning the app starts with.
func DefaultParams() Params {
	return Params{
		MaxDepth:          5,
		Displacement:      0.5,
		BranchChance:      0.2,
		LSystemIterations: 2,
		SegmentLength:     0.08,
		AngleVariance:     35,
		ProbStraight:      0.5,
		ProbPlus:          0.25,
		ProbMinus:         0.25,
	}
}

// Validate checks every field range up front so generation is
// all-or-nothing.
func (p Params) Validate() error {
	switch {
	case p.MaxDepth < 0:
		return fmt.Errorf("%w: maxDepth %d < 0", ErrInvalidParameter, p.MaxDepth)
	case p.Displacement < 0:
		return fmt.Errorf("%w: displacement %g < 0", ErrInvalidParameter, p.Displacement)
	case p.BranchChance < 0 || p.BranchChance > 1:
		return fmt.Errorf("%w: branchChance %g outside [0,1]", ErrInvalidParameter, p.BranchChance)
	case p.LSystemIterations < 0:
		return fmt.Errorf("%w: lsystemIterations %d < 0", ErrInvalidParameter, p.LSystemIterations)
	case p.SegmentLength < 0:
		return fmt.Errorf("%w: segmentLength %g < 0", ErrInvalidParameter, p.SegmentLength)
	case p.AngleVariance < 0:
		return fmt.Errorf("%w: angleVariance %g < 0", ErrInvalidParameter, p.AngleVariance)
	case p.ProbStraight < 0 || p.ProbPlus < 0 || p.ProbMinus < 0:
		return fmt.Errorf("%w: negative production probability", ErrInvalidParameter)
	}
	if sum := p.ProbStraight + p.ProbPlus + p.ProbMinus; math.Abs(sum-1) > probSumTolerance {
		return fmt.Errorf("%w: production probabilities sum to %g, want 1", ErrInvalidParameter, sum)
	}
	return nil
}
