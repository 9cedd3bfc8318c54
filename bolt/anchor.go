package bolt

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// Anchor is a user-placed point the bolt must visit. Height lifts the
// effective endpoint straight up from the ground position, so anchors can
// sit on the floor plane while the bolt arcs above it.
type Anchor struct {
	Position mgl64.Vec3
	Height   float64
}

// Endpoint returns the point the bolt actually connects to.
func (a Anchor) Endpoint() mgl64.Vec3 {
	return a.Position.Add(mgl64.Vec3{0, a.Height, 0})
}

// Scene is the explicit context handed to the generator: the anchor chain,
// the current tuning, and the bolt color. The application layer owns and
// mutates it; the generator only reads it for the duration of one call.
type Scene struct {
	Anchors []Anchor
	Params  Params
	Color   [3]float32
}

// Generate runs the fractal generator over the scene's anchor chain.
func (s *Scene) Generate(rng *rand.Rand) ([]float32, error) {
	return Generate(s.Anchors, s.Params, rng)
}
