package view

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Particle is a short-lived glow point shed by a freshly generated bolt.
type Particle struct {
	Pos     mgl64.Vec3
	Vel     mgl64.Vec3
	Life    float64
	MaxLife float64
	Size    float64
}

// ParticleSystem keeps a bounded pool. When the pool is full, new spawns
// overwrite the oldest slots in a circular sweep instead of allocating.
type ParticleSystem struct {
	Max    int
	P      []Particle
	rng    *rand.Rand
	ovrIdx int
}

func NewParticleSystem(max int, rng *rand.Rand) *ParticleSystem {
	if max <= 0 {
		max = 1024
	}
	return &ParticleSystem{
		Max: max,
		P:   make([]Particle, 0, max),
		rng: rng,
	}
}

func (ps *ParticleSystem) Clear() {
	ps.P = ps.P[:0]
	ps.ovrIdx = 0
}

// Add inserts one particle, overwriting circularly when full.
func (ps *ParticleSystem) Add(p Particle) {
	if len(ps.P) < ps.Max {
		ps.P = append(ps.P, p)
		return
	}
	if ps.ovrIdx >= ps.Max {
		ps.ovrIdx = 0
	}
	ps.P[ps.ovrIdx] = p
	ps.ovrIdx++
}

// SpawnAlong sheds particles at a random subset of the buffer's vertices
// with a small outward drift. Called once per regeneration, not per frame.
func (ps *ParticleSystem) SpawnAlong(verts []float32, perVertexChance float64) {
	for i := 0; i+2 < len(verts); i += 3 {
		if ps.rng.Float64() >= perVertexChance {
			continue
		}
		life := 0.4 + ps.rng.Float64()*0.6
		ps.Add(Particle{
			Pos: vec3At(verts, i),
			Vel: mgl64.Vec3{
				(ps.rng.Float64() - 0.5) * 0.3,
				ps.rng.Float64() * 0.25,
				(ps.rng.Float64() - 0.5) * 0.3,
			},
			Life:    life,
			MaxLife: life,
			Size:    1 + ps.rng.Float64()*2,
		})
	}
}

// Update advances positions, decays lifetimes, and compacts out the dead.
// dt is in seconds.
func (ps *ParticleSystem) Update(dt float64) {
	alive := ps.P[:0]
	for i := range ps.P {
		p := ps.P[i]
		p.Life -= dt
		if p.Life <= 0 {
			continue
		}
		p.Pos = p.Pos.Add(p.Vel.Mul(dt))
		p.Vel = p.Vel.Mul(1 - 0.8*dt) // drag
		alive = append(alive, p)
	}
	ps.P = alive
	if ps.ovrIdx > len(ps.P) {
		ps.ovrIdx = 0
	}
}

// Draw renders each particle as a filled dot, alpha tracking remaining
// life and size shrinking with camera depth.
func (ps *ParticleSystem) Draw(screen *ebiten.Image, prj Projector, col [3]float32) {
	for i := range ps.P {
		p := &ps.P[i]
		sx, sy, depth, ok := prj.Project(p.Pos)
		if !ok {
			continue
		}
		t := p.Life / p.MaxLife
		c := shade(col, depthFade(depth))
		c.A = uint8(clamp(t*255, 0, 255))
		radius := float32(clamp(p.Size*3/depth, 0.5, 4))
		vector.DrawFilledCircle(screen, sx, sy, radius, c, true)
	}
}
