package view

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Renderer strokes a flat vertex buffer as discrete 3D line segments.
// Pairwise consumption is deliberate: branch segments are interleaved with
// the main bolt, so a strip would weld branch roots to unrelated vertices.
type Renderer struct {
	LineWidth float32
}

func NewRenderer() *Renderer {
	return &Renderer{LineWidth: 2}
}

// DrawSegments projects every (start, end) pair and strokes the ones fully
// in front of the camera, fading with eye distance.
func (r *Renderer) DrawSegments(screen *ebiten.Image, prj Projector, verts []float32, col [3]float32) {
	for i := 0; i+5 < len(verts); i += 6 {
		a := vec3At(verts, i)
		b := vec3At(verts, i+3)

		ax, ay, ad, aok := prj.Project(a)
		bx, by, bd, bok := prj.Project(b)
		if !aok || !bok {
			continue
		}

		fade := depthFade((ad + bd) * 0.5)
		vector.StrokeLine(screen, ax, ay, bx, by, r.LineWidth, shade(col, fade), true)
	}
}

// depthFade attenuates brightness with eye distance so far geometry reads
// as background instead of clutter.
func depthFade(depth float64) float64 {
	return clamp(1.0-depth/24.0, 0.2, 1.0)
}

func shade(col [3]float32, fade float64) color.RGBA {
	return color.RGBA{
		R: uint8(clamp(float64(col[0])*fade*255, 0, 255)),
		G: uint8(clamp(float64(col[1])*fade*255, 0, 255)),
		B: uint8(clamp(float64(col[2])*fade*255, 0, 255)),
		A: 255,
	}
}

func vec3At(verts []float32, i int) mgl64.Vec3 {
	return mgl64.Vec3{float64(verts[i]), float64(verts[i+1]), float64(verts[i+2])}
}
