package view

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera orbits a target point. Azimuth/Elevation are degrees; Elevation
// is clamped short of the poles so LookAt never degenerates.
type Camera struct {
	Target    mgl64.Vec3
	Azimuth   float64
	Elevation float64
	Distance  float64

	FovY      float64 // degrees
	Near, Far float64

	dragging     bool
	lastX, lastY float64
}

// NewCamera frames the target from the +Z side at a comfortable tilt.
func NewCamera(target mgl64.Vec3, distance float64) *Camera {
	return &Camera{
		Target:    target,
		Azimuth:   90,
		Elevation: 18,
		Distance:  distance,
		FovY:      45,
		Near:      0.1,
		Far:       100,
	}
}

// Eye returns the camera position in world space.
func (c *Camera) Eye() mgl64.Vec3 {
	az := mgl64.DegToRad(c.Azimuth)
	el := mgl64.DegToRad(c.Elevation)
	offset := mgl64.Vec3{
		math.Cos(az) * math.Cos(el),
		math.Sin(el),
		math.Sin(az) * math.Cos(el),
	}
	return c.Target.Add(offset.Mul(c.Distance))
}

// Drag feeds one frame of mouse state. The first pressed frame only
// records the cursor so the view doesn't jump when a drag starts.
func (c *Camera) Drag(x, y float64, pressed bool) {
	if !pressed {
		c.dragging = false
		return
	}
	if !c.dragging {
		c.dragging = true
		c.lastX, c.lastY = x, y
		return
	}

	const sensitivity = 0.25
	c.Azimuth += (x - c.lastX) * sensitivity
	c.Elevation += (c.lastY - y) * sensitivity
	if c.Elevation > 89 {
		c.Elevation = 89
	}
	if c.Elevation < -89 {
		c.Elevation = -89
	}
	c.lastX, c.lastY = x, y
}

// Zoom moves the eye toward or away from the target.
func (c *Camera) Zoom(delta float64) {
	c.Distance = clamp(c.Distance-delta, 0.5, 50)
}

// Pan shifts the orbit target along the view-relative right and world up
// axes.
func (c *Camera) Pan(right, up float64) {
	az := mgl64.DegToRad(c.Azimuth)
	r := mgl64.Vec3{-math.Sin(az), 0, math.Cos(az)}
	c.Target = c.Target.Add(r.Mul(right)).Add(mgl64.Vec3{0, up, 0})
}

// Projector captures this frame's matrices for world-to-screen mapping.
type Projector struct {
	view, proj mgl64.Mat4
	w, h       int
	eye, fwd   mgl64.Vec3
}

// Projector builds the per-frame projector for a viewport.
func (c *Camera) Projector(w, h int) Projector {
	eye := c.Eye()
	return Projector{
		view: mgl64.LookAtV(eye, c.Target, mgl64.Vec3{0, 1, 0}),
		proj: mgl64.Perspective(mgl64.DegToRad(c.FovY), float64(w)/float64(h), c.Near, c.Far),
		w:    w,
		h:    h,
		eye:  eye,
		fwd:  c.Target.Sub(eye).Normalize(),
	}
}

// Project maps a world point to screen pixels. depth is the eye-space
// distance along the view direction; ok is false for points at or behind
// the eye, which must not be stroked.
func (p Projector) Project(world mgl64.Vec3) (sx, sy float32, depth float64, ok bool) {
	depth = world.Sub(p.eye).Dot(p.fwd)
	if depth < 1e-3 {
		return 0, 0, depth, false
	}
	win := mgl64.Project(world, p.view, p.proj, 0, 0, p.w, p.h)
	// mgl window coords have the origin bottom-left; screens are top-left.
	return float32(win.X()), float32(float64(p.h) - win.Y()), depth, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
