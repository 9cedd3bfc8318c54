package bolt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
		wantOK bool
	}{
		{"defaults", func(p *Params) {}, true},
		{"zero depth", func(p *Params) { p.MaxDepth = 0 }, true},
		{"negative depth", func(p *Params) { p.MaxDepth = -1 }, false},
		{"negative displacement", func(p *Params) { p.Displacement = -0.1 }, false},
		{"branch chance low", func(p *Params) { p.BranchChance = -0.01 }, false},
		{"branch chance high", func(p *Params) { p.BranchChance = 1.01 }, false},
		{"negative iterations", func(p *Params) { p.LSystemIterations = -2 }, false},
		{"negative segment length", func(p *Params) { p.SegmentLength = -1 }, false},
		{"negative angle", func(p *Params) { p.AngleVariance = -5 }, false},
		{"negative probability", func(p *Params) {
			p.ProbStraight = -0.5
			p.ProbPlus = 1.0
			p.ProbMinus = 0.5
		}, false},
		{"probabilities off by too much", func(p *Params) {
			p.ProbStraight = 0.5
			p.ProbPlus = 0.5
			p.ProbMinus = 0.5
		}, false},
		{"probabilities within tolerance", func(p *Params) {
			p.ProbStraight = 0.5
			p.ProbPlus = 0.25
			p.ProbMinus = 0.2500000001
		}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParams()
			tc.mutate(&p)
			err := p.Validate()
			if tc.wantOK {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidParameter)
			}
		})
	}
}

func TestDefaultParamsAreValid(t *testing.T) {
	assert.NoError(t, DefaultParams().Validate())
}
