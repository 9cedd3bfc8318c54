package bolt

import (
	"math/rand"
	"strings"
)

// Rewrite runs `iterations` synchronous passes over the axiom. Each F
// independently picks one production by cumulative probability:
//
//	F -> FF      with ProbStraight
//	F -> F[+F]   with ProbPlus
//	F -> F[-F]   otherwise
//
// Every other symbol (including ones outside the {F,+,-,[,]} alphabet) is
// copied through unchanged. The F count doubles per pass, so callers keep
// iterations small; the UI caps it at 6.
func Rewrite(axiom string, iterations int, p Params, rng *rand.Rand) string {
	cur := axiom
	for n := 0; n < iterations; n++ {
		var next strings.Builder
		next.Grow(len(cur) * 2)
		for i := 0; i < len(cur); i++ {
			c := cur[i]
			if c != 'F' {
				next.WriteByte(c)
				continue
			}
			r := rng.Float64()
			switch {
			case r < p.ProbStraight:
				next.WriteString("FF")
			case r < p.ProbStraight+p.ProbPlus:
				next.WriteString("F[+F]")
			default:
				next.WriteString("F[-F]")
			}
		}
		cur = next.String()
	}
	return cur
}
