package bolt

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func grammarParams(straight, plus, minus float64) Params {
	p := DefaultParams()
	p.ProbStraight = straight
	p.ProbPlus = plus
	p.ProbMinus = minus
	return p
}

func TestRewriteZeroIterationsReturnsAxiom(t *testing.T) {
	p := grammarParams(0.5, 0.25, 0.25)
	got := Rewrite("F[+F]", 0, p, rand.New(rand.NewSource(1)))
	assert.Equal(t, "F[+F]", got)
}

func TestRewriteAllStraight(t *testing.T) {
	p := grammarParams(1, 0, 0)
	rng := rand.New(rand.NewSource(1))

	// With only the FF production, every F doubles and nothing else
	// appears.
	for n := 0; n <= 6; n++ {
		got := Rewrite("F", n, p, rng)
		assert.Equal(t, strings.Repeat("F", 1<<n), got, "n=%d", n)
	}

	// Non-F symbols ride along untouched.
	assert.Equal(t, "+FFFF-", Rewrite("+F-", 2, p, rng))
}

func TestRewriteFCountDoublesPerPass(t *testing.T) {
	p := grammarParams(0.3, 0.4, 0.3)

	// Every production contains exactly two F symbols, so the F count is
	// exact regardless of which productions fire.
	for n := 0; n <= 6; n++ {
		got := Rewrite("F", n, p, rand.New(rand.NewSource(int64(n))))
		assert.Equal(t, 1<<n, strings.Count(got, "F"), "n=%d", n)
	}
}

func TestRewriteBranchProductions(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	plusOnly := Rewrite("F", 1, grammarParams(0, 1, 0), rng)
	assert.Equal(t, "F[+F]", plusOnly)

	minusOnly := Rewrite("F", 1, grammarParams(0, 0, 1), rng)
	assert.Equal(t, "F[-F]", minusOnly)
}

func TestRewritePassesUnknownSymbolsThrough(t *testing.T) {
	p := grammarParams(1, 0, 0)
	got := Rewrite("XFX", 1, p, rand.New(rand.NewSource(1)))
	assert.Equal(t, "XFFX", got)
}

func TestRewriteBracketsStayBalanced(t *testing.T) {
	p := grammarParams(0.2, 0.4, 0.4)
	got := Rewrite("F", 5, p, rand.New(rand.NewSource(77)))

	depth := 0
	for i := 0; i < len(got); i++ {
		switch got[i] {
		case '[':
			depth++
		case ']':
			depth--
		}
		assert.GreaterOrEqual(t, depth, 0, "unbalanced at %d", i)
	}
	assert.Zero(t, depth)
}
