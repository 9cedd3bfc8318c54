package main

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/yonglintan/opengl-lightning/bolt"
	"github.com/yonglintan/opengl-lightning/config"
	"github.com/yonglintan/opengl-lightning/view"
)

// panelWidth is the screen column the settings panel occupies; camera drag
// is ignored there so slider drags don't spin the view.
const panelWidth = 360

type App struct {
	rng   *rand.Rand
	scene bolt.Scene
	verts []float32

	camera    *view.Camera
	renderer  *view.Renderer
	ground    *view.Ground
	particles *view.ParticleSystem
	panel     *view.Panel

	autoRun bool
}

func NewApp() *App {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	a := &App{
		rng: rng,
		scene: bolt.Scene{
			Anchors: []bolt.Anchor{
				{Position: mgl64.Vec3{-1.6, 0, 0}, Height: 2.4},
				{Position: mgl64.Vec3{0, 0, 0.4}, Height: 1.4},
				{Position: mgl64.Vec3{1.6, 0, -0.2}, Height: 0.1},
			},
			Params: bolt.DefaultParams(),
			Color:  config.BoltColor,
		},
		camera:    view.NewCamera(mgl64.Vec3{0, 1, 0}, 6),
		renderer:  view.NewRenderer(),
		ground:    view.NewGround(),
		particles: view.NewParticleSystem(config.MaxParticles, rng),
	}

	a.panel = view.NewPanel(a.scene.Params, a.scene.Color, view.PanelCallbacks{
		Apply: func(p bolt.Params, col [3]float32) {
			a.scene.Params = p
			a.scene.Color = col
			a.regenerate()
		},
		Regenerate: func() { a.regenerate() },
		TogglePlay: func() bool {
			a.autoRun = !a.autoRun
			return a.autoRun
		},
		AddAnchor:    func() { a.addAnchor() },
		RemoveAnchor: func() { a.removeAnchor() },
		AnchorHeight: func(h float64) {
			if n := len(a.scene.Anchors); n > 0 {
				a.scene.Anchors[n-1].Height = h
			}
		},
	})

	a.regenerate()
	return a
}

// regenerate rebuilds the vertex buffer from the scene. A too-short chain
// is a normal editing state and just clears the bolt; invalid parameters
// keep the previous buffer and surface in the panel.
func (a *App) regenerate() {
	verts, err := a.scene.Generate(a.rng)
	if err != nil {
		if errors.Is(err, bolt.ErrInsufficientAnchors) {
			a.verts = verts
			return
		}
		a.panel.SetStatus(err.Error())
		return
	}
	a.verts = verts
	a.panel.SetStatus("")
	a.particles.SpawnAlong(verts, config.ParticleSpawnChance)
}

// addAnchor extends the chain past the last anchor with a little lateral
// jitter so new links don't stack on a straight line.
func (a *App) addAnchor() {
	next := bolt.Anchor{Position: mgl64.Vec3{0, 0, 0}, Height: 1}
	if n := len(a.scene.Anchors); n > 0 {
		last := a.scene.Anchors[n-1]
		next.Position = last.Position.Add(mgl64.Vec3{1.4, 0, (a.rng.Float64() - 0.5) * 1.2})
		next.Height = last.Height
	}
	a.scene.Anchors = append(a.scene.Anchors, next)
	a.regenerate()
}

func (a *App) removeAnchor() {
	if n := len(a.scene.Anchors); n > 0 {
		a.scene.Anchors = a.scene.Anchors[:n-1]
	}
	a.regenerate()
}

func (a *App) Update() error {
	const dt = 1.0 / 60.0

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		a.panel.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.regenerate()
	}

	a.handleCamera(dt)
	a.panel.Update()

	if a.autoRun {
		a.regenerate() // fresh bolt every frame, flicker is the point
	}
	a.particles.Update(dt)

	return nil
}

func (a *App) handleCamera(dt float64) {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if a.panel.IsVisible() && mx < panelWidth {
		pressed = false
	}
	a.camera.Drag(float64(mx), float64(my), pressed)

	_, wy := ebiten.Wheel()
	if wy != 0 {
		a.camera.Zoom(wy * 0.4)
	}

	const panSpeed = 2.0
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		a.camera.Pan(-panSpeed*dt, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		a.camera.Pan(panSpeed*dt, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		a.camera.Pan(0, panSpeed*dt)
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		a.camera.Pan(0, -panSpeed*dt)
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		a.camera.Zoom(3 * dt)
	}
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		a.camera.Zoom(-3 * dt)
	}
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(config.Background)

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	prj := a.camera.Projector(w, h)

	a.ground.Draw(screen, prj)
	a.ground.DrawAnchors(screen, prj, a.scene.Anchors, len(a.scene.Anchors)-1)
	a.renderer.DrawSegments(screen, prj, a.verts, a.scene.Color)
	a.particles.Draw(screen, prj, a.scene.Color)

	a.panel.Draw(screen)

	hud := fmt.Sprintf("verts: %d  particles: %d  fps: %.0f",
		len(a.verts)/3, len(a.particles.P), ebiten.ActualFPS())
	ebitenutil.DebugPrintAt(screen, hud, 8, h-18)
}

func (a *App) Layout(outsideW, outsideH int) (int, int) {
	return config.ScreenW, config.ScreenH
}

func main() {
	ebiten.SetWindowTitle("3D Procedural Lightning")
	ebiten.SetWindowSize(config.ScreenW, config.ScreenH)

	if err := ebiten.RunGame(NewApp()); err != nil {
		log.Fatal(err)
	}
}
