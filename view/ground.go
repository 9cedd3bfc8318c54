package view

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/yonglintan/opengl-lightning/bolt"
)

// Ground draws the reference grid on the y=0 plane and a marker at each
// anchor's effective endpoint.
type Ground struct {
	Extent  float64 // half-size of the grid in world units
	Spacing float64
}

func NewGround() *Ground {
	return &Ground{Extent: 4, Spacing: 0.5}
}

// groundIntensity lights the plane with the same directional lamp used for
// face shading elsewhere: ambient floor plus diffuse against world up.
func groundIntensity() float64 {
	light := mgl64.Vec3{-0.5, 0.8, -0.3}.Normalize()
	d := mgl64.Vec3{0, 1, 0}.Dot(light)
	if d < 0 {
		d = 0
	}
	return 0.3 + 0.7*d
}

// Draw strokes the grid lines, dimming with camera distance.
func (g *Ground) Draw(screen *ebiten.Image, prj Projector) {
	base := groundIntensity()
	for v := -g.Extent; v <= g.Extent+1e-9; v += g.Spacing {
		g.strokeWorldLine(screen, prj,
			mgl64.Vec3{v, 0, -g.Extent}, mgl64.Vec3{v, 0, g.Extent}, base)
		g.strokeWorldLine(screen, prj,
			mgl64.Vec3{-g.Extent, 0, v}, mgl64.Vec3{g.Extent, 0, v}, base)
	}
}

func (g *Ground) strokeWorldLine(screen *ebiten.Image, prj Projector, a, b mgl64.Vec3, intensity float64) {
	ax, ay, ad, aok := prj.Project(a)
	bx, by, bd, bok := prj.Project(b)
	if !aok || !bok {
		return
	}
	lum := uint8(clamp(intensity*depthFade((ad+bd)*0.5)*90, 0, 255))
	vector.StrokeLine(screen, ax, ay, bx, by, 1, color.RGBA{lum, lum, lum + 12, 255}, false)
}

// DrawAnchors marks each anchor: a stem from the ground position up to the
// endpoint and a small diamond at the endpoint. The selected anchor (the
// one panel edits apply to) is drawn brighter.
func (g *Ground) DrawAnchors(screen *ebiten.Image, prj Projector, anchors []bolt.Anchor, selected int) {
	for idx, a := range anchors {
		col := color.RGBA{140, 150, 110, 255}
		if idx == selected {
			col = color.RGBA{255, 230, 120, 255}
		}

		ex, ey, _, eok := prj.Project(a.Endpoint())
		px, py, _, pok := prj.Project(a.Position)
		if pok && eok {
			vector.StrokeLine(screen, px, py, ex, ey, 1, col, true)
		}
		if !eok {
			continue
		}

		const r = 5
		vector.StrokeLine(screen, ex-r, ey, ex, ey-r, 1.5, col, true)
		vector.StrokeLine(screen, ex, ey-r, ex+r, ey, 1.5, col, true)
		vector.StrokeLine(screen, ex+r, ey, ex, ey+r, 1.5, col, true)
		vector.StrokeLine(screen, ex, ey+r, ex-r, ey, 1.5, col, true)
	}
}
