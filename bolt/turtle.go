package bolt

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// turtleState is one saved cursor for the bracket stack.
type turtleState struct {
	pos mgl64.Vec3
	dir mgl64.Vec3
}

// Turtle walks a rewritten grammar program, emitting one line segment per
// F command. The stack never outlives a single Run.
type Turtle struct {
	pos   mgl64.Vec3
	dir   mgl64.Vec3
	axis  mgl64.Vec3
	step  float64
	angle float64 // max turn magnitude per +/- command, degrees
	rng   *rand.Rand
	stack []turtleState

	// Underflows counts ']' commands that found an empty stack. They are
	// skipped rather than failed: the stochastic grammar can emit stray
	// closers and a partially drawn branch is still worth keeping.
	Underflows int
}

// NewTurtle places a cursor at origin with the given unit heading.
func NewTurtle(origin, dir mgl64.Vec3, step, angleDeg float64, rng *rand.Rand) *Turtle {
	return &Turtle{
		pos:   origin,
		dir:   dir,
		axis:  turnAxis(dir),
		step:  step,
		angle: angleDeg,
		rng:   rng,
	}
}

// turnAxis fixes the rotation axis for every + and - in one program:
// perpendicular to the plane spanned by the branch heading and world up,
// so the whole branch fans out within that plane.
func turnAxis(dir mgl64.Vec3) mgl64.Vec3 {
	axis := dir.Cross(mgl64.Vec3{0, 1, 0})
	if axis.Len() < 1e-9 {
		// Heading is vertical; any horizontal axis serves.
		axis = mgl64.Vec3{0, 0, 1}
	}
	return axis.Normalize()
}

// Run executes the program in a single pass, appending segment endpoints to
// out and returning the extended slice.
func (t *Turtle) Run(program string, out []float32) []float32 {
	for i := 0; i < len(program); i++ {
		switch program[i] {
		case 'F':
			next := t.pos.Add(t.dir.Mul(t.step))
			out = appendVec3(out, t.pos)
			out = appendVec3(out, next)
			t.pos = next
		case '+':
			t.turn(t.rng.Float64() * t.angle)
		case '-':
			t.turn(-t.rng.Float64() * t.angle)
		case '[':
			t.stack = append(t.stack, turtleState{t.pos, t.dir})
		case ']':
			if n := len(t.stack); n > 0 {
				top := t.stack[n-1]
				t.stack = t.stack[:n-1]
				t.pos, t.dir = top.pos, top.dir
			} else {
				t.Underflows++
			}
		}
		// Anything else passes through silently, same as the grammar.
	}
	return out
}

func (t *Turtle) turn(deg float64) {
	t.dir = mgl64.QuatRotate(mgl64.DegToRad(deg), t.axis).Rotate(t.dir)
}

// Interpret is the one-shot form of Turtle for callers that don't need the
// underflow count.
func Interpret(program string, origin, dir mgl64.Vec3, step, angleDeg float64, rng *rand.Rand, out []float32) []float32 {
	return NewTurtle(origin, dir, step, angleDeg, rng).Run(program, out)
}
