package view

import (
	"bytes"
	"fmt"
	"image/color"
	"strconv"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/yonglintan/opengl-lightning/bolt"
)

// PanelCallbacks are the hooks the application wires in. The panel never
// touches the generator directly; it only edits its copies and calls out.
type PanelCallbacks struct {
	Apply        func(bolt.Params, [3]float32) // debounced after any slider change
	Regenerate   func()
	TogglePlay   func() bool // returns whether auto-regeneration is now on
	AddAnchor    func()
	RemoveAnchor func()
	AnchorHeight func(float64) // applies to the newest anchor
}

// Panel is the lightning settings window: sliders for every generation
// parameter, color controls, and the regenerate/play/anchor buttons.
type Panel struct {
	ui       *ebitenui.UI
	visible  bool
	fontFace text.Face

	// Editable copies; the app owns the authoritative scene.
	Params bolt.Params
	Color  [3]float32

	Callbacks PanelCallbacks

	labels  map[string]*widget.Text
	status  *widget.Text
	playBtn *widget.Button

	// The three production probabilities renormalize as a group, so their
	// sliders need to move each other without retriggering handlers.
	probSliders [3]*widget.Slider
	probLabels  [3]*widget.Text
	renorming   bool

	// Debounce state for auto-apply.
	dirty          bool
	lastChangeTime time.Time
	debounceDelay  time.Duration
}

// NewPanel creates the settings panel, shown on startup.
func NewPanel(initial bolt.Params, initialColor [3]float32, cb PanelCallbacks) *Panel {
	p := &Panel{
		Params:        initial,
		Color:         initialColor,
		Callbacks:     cb,
		visible:       true,
		labels:        make(map[string]*widget.Text),
		debounceDelay: 150 * time.Millisecond,
	}

	p.fontFace = p.loadFont()
	p.ui = p.buildUI()

	return p
}

func (p *Panel) loadFont() text.Face {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic(err)
	}
	return &text.GoTextFace{
		Source: source,
		Size:   14,
	}
}

func (p *Panel) buildUI() *ebitenui.UI {
	rootContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	panelContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(10)),
			widget.RowLayoutOpts.Spacing(6),
		)),
		widget.ContainerOpts.BackgroundImage(p.createPanelBackground()),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
				Padding:            widget.NewInsetsSimple(10),
			}),
			widget.WidgetOpts.MinSize(330, 0),
		),
	)

	panelContainer.AddChild(p.createLabel("LIGHTNING SETTINGS", color.RGBA{255, 220, 100, 255}))

	// Bolt section
	panelContainer.AddChild(p.createLabel("-- Bolt --", color.RGBA{180, 180, 255, 255}))
	panelContainer.AddChild(p.createIntSlider("Max Depth", &p.Params.MaxDepth, 0, 10, "maxDepth"))
	panelContainer.AddChild(p.createFloatSlider("Displacement", &p.Params.Displacement, 0.0, 5.0, "displacement"))

	// Branch section
	panelContainer.AddChild(p.createLabel("-- Branches --", color.RGBA{180, 180, 255, 255}))
	panelContainer.AddChild(p.createFloatSlider("Branch Chance", &p.Params.BranchChance, 0.0, 1.0, "branchChance"))
	panelContainer.AddChild(p.createIntSlider("L-Sys Iter", &p.Params.LSystemIterations, 0, 6, "lsysIter"))
	panelContainer.AddChild(p.createFloatSlider("Segment Len", &p.Params.SegmentLength, 0.0, 1.0, "segmentLen"))
	panelContainer.AddChild(p.createFloatSlider("Angle Var", &p.Params.AngleVariance, 0.0, 90.0, "angleVar"))
	panelContainer.AddChild(p.createProbSlider("P(straight)", 0))
	panelContainer.AddChild(p.createProbSlider("P(+branch)", 1))
	panelContainer.AddChild(p.createProbSlider("P(-branch)", 2))

	// Appearance section
	panelContainer.AddChild(p.createLabel("-- Appearance --", color.RGBA{180, 180, 255, 255}))
	panelContainer.AddChild(p.createColorSlider("Red", 0))
	panelContainer.AddChild(p.createColorSlider("Green", 1))
	panelContainer.AddChild(p.createColorSlider("Blue", 2))

	// Scene section
	panelContainer.AddChild(p.createLabel("-- Scene --", color.RGBA{180, 180, 255, 255}))
	panelContainer.AddChild(p.createAnchorHeightSlider())
	panelContainer.AddChild(p.createButtonRow())

	p.status = p.createLabel("", color.RGBA{255, 120, 120, 255})
	panelContainer.AddChild(p.status)
	panelContainer.AddChild(p.createLabel("Tab toggles panel, drag orbits", color.RGBA{128, 128, 128, 255}))

	rootContainer.AddChild(panelContainer)

	return &ebitenui.UI{Container: rootContainer}
}

func (p *Panel) createPanelBackground() *image.NineSlice {
	img := ebiten.NewImage(1, 1)
	img.Fill(color.RGBA{30, 35, 45, 230})
	return image.NewNineSliceSimple(img, 0, 0)
}

func (p *Panel) createLabel(label string, clr color.Color) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(label, p.fontFace, clr),
		widget.TextOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Stretch: true,
			}),
		),
	)
}

// createIntSlider builds a labeled slider bound directly to an int field.
func (p *Panel) createIntSlider(label string, value *int, min, max int, key string) *widget.Container {
	container := p.createSliderRow()

	container.AddChild(p.createFieldLabel(label))

	valueLabel := p.createValueLabel(fmt.Sprintf("%d", *value))
	p.labels[key] = valueLabel

	slider := widget.NewSlider(
		widget.SliderOpts.Direction(widget.DirectionHorizontal),
		widget.SliderOpts.MinMax(min, max),
		widget.SliderOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(120, 22),
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Position: widget.RowLayoutPositionCenter,
			}),
		),
		widget.SliderOpts.Images(p.createSliderImages(), p.createSliderHandleImages()),
		widget.SliderOpts.PageSizeFunc(func() int {
			return 1
		}),
		widget.SliderOpts.ChangedHandler(func(args *widget.SliderChangedEventArgs) {
			*value = args.Current
			valueLabel.Label = fmt.Sprintf("%d", *value)
			p.markDirty()
		}),
	)
	slider.Current = *value

	container.AddChild(slider)
	container.AddChild(valueLabel)

	return container
}

// createFloatSlider maps a 0-100 slider onto a float range, same
// granularity trick as the int sliders get for free.
func (p *Panel) createFloatSlider(label string, value *float64, min, max float64, key string) *widget.Container {
	container := p.createSliderRow()

	container.AddChild(p.createFieldLabel(label))

	valueLabel := p.createValueLabel(formatFloat(*value))
	p.labels[key] = valueLabel

	slider := p.newScaledSlider(*value, min, max, func(v float64) {
		*value = v
		valueLabel.Label = formatFloat(v)
		p.markDirty()
	})

	container.AddChild(slider)
	container.AddChild(valueLabel)

	return container
}

// createProbSlider builds the slider for one of the three production
// probabilities. Changing one renormalizes the other two so the triple
// always sums to 1 and validation can never reject a panel-built Params.
func (p *Panel) createProbSlider(label string, which int) *widget.Container {
	container := p.createSliderRow()

	container.AddChild(p.createFieldLabel(label))

	valueLabel := p.createValueLabel(formatFloat(*p.prob(which)))
	p.probLabels[which] = valueLabel

	slider := p.newScaledSlider(*p.prob(which), 0, 1, func(v float64) {
		if p.renorming {
			return
		}
		*p.prob(which) = v
		p.renormalizeProbs(which)
		valueLabel.Label = formatFloat(v)
		p.markDirty()
	})
	p.probSliders[which] = slider

	container.AddChild(slider)
	container.AddChild(valueLabel)

	return container
}

func (p *Panel) prob(which int) *float64 {
	switch which {
	case 0:
		return &p.Params.ProbStraight
	case 1:
		return &p.Params.ProbPlus
	default:
		return &p.Params.ProbMinus
	}
}

// renormalizeProbs rescales the two untouched probabilities into the
// remaining mass, preserving their ratio (even split when both are zero).
func (p *Panel) renormalizeProbs(changed int) {
	a, b := (changed+1)%3, (changed+2)%3
	remain := 1 - *p.prob(changed)
	sum := *p.prob(a) + *p.prob(b)
	if sum < 1e-9 {
		*p.prob(a) = remain / 2
		*p.prob(b) = remain / 2
	} else {
		*p.prob(a) *= remain / sum
		*p.prob(b) *= remain / sum
	}

	p.renorming = true
	for _, i := range [2]int{a, b} {
		v := *p.prob(i)
		p.probLabels[i].Label = formatFloat(v)
		p.probSliders[i].Current = int(v * 100)
	}
	p.renorming = false
}

func (p *Panel) createColorSlider(label string, channel int) *widget.Container {
	container := p.createSliderRow()

	container.AddChild(p.createFieldLabel(label))

	valueLabel := p.createValueLabel(formatFloat(float64(p.Color[channel])))

	slider := p.newScaledSlider(float64(p.Color[channel]), 0, 1, func(v float64) {
		p.Color[channel] = float32(v)
		valueLabel.Label = formatFloat(v)
		p.markDirty()
	})

	container.AddChild(slider)
	container.AddChild(valueLabel)

	return container
}

func (p *Panel) createAnchorHeightSlider() *widget.Container {
	container := p.createSliderRow()

	container.AddChild(p.createFieldLabel("Anchor Height"))

	valueLabel := p.createValueLabel(formatFloat(1.0))

	slider := p.newScaledSlider(1.0, -2, 4, func(v float64) {
		valueLabel.Label = formatFloat(v)
		if p.Callbacks.AnchorHeight != nil {
			p.Callbacks.AnchorHeight(v)
		}
		p.markDirty()
	})

	container.AddChild(slider)
	container.AddChild(valueLabel)

	return container
}

// newScaledSlider is the shared 0-100 integer slider mapped onto a float
// range, with the initial handle position set from the current value.
func (p *Panel) newScaledSlider(value, min, max float64, onChange func(float64)) *widget.Slider {
	const sliderMin, sliderMax = 0, 100

	slider := widget.NewSlider(
		widget.SliderOpts.Direction(widget.DirectionHorizontal),
		widget.SliderOpts.MinMax(sliderMin, sliderMax),
		widget.SliderOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(120, 22),
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Position: widget.RowLayoutPositionCenter,
			}),
		),
		widget.SliderOpts.Images(p.createSliderImages(), p.createSliderHandleImages()),
		widget.SliderOpts.PageSizeFunc(func() int {
			return 1
		}),
		widget.SliderOpts.ChangedHandler(func(args *widget.SliderChangedEventArgs) {
			t := float64(args.Current-sliderMin) / float64(sliderMax-sliderMin)
			onChange(min + t*(max-min))
		}),
	)

	t := (value - min) / (max - min)
	slider.Current = sliderMin + int(t*float64(sliderMax-sliderMin))

	return slider
}

func (p *Panel) createButtonRow() *widget.Container {
	container := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(6),
		)),
	)

	container.AddChild(p.createButton("Regenerate", func() {
		if p.Callbacks.Regenerate != nil {
			p.Callbacks.Regenerate()
		}
	}))

	p.playBtn = p.createButton("Play", func() {
		if p.Callbacks.TogglePlay == nil {
			return
		}
		if p.Callbacks.TogglePlay() {
			p.playBtn.Text().Label = "Stop"
		} else {
			p.playBtn.Text().Label = "Play"
		}
	})
	container.AddChild(p.playBtn)

	container.AddChild(p.createButton("Add Anchor", func() {
		if p.Callbacks.AddAnchor != nil {
			p.Callbacks.AddAnchor()
		}
	}))

	container.AddChild(p.createButton("Del Anchor", func() {
		if p.Callbacks.RemoveAnchor != nil {
			p.Callbacks.RemoveAnchor()
		}
	}))

	return container
}

func (p *Panel) createButton(label string, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(p.createSliderHandleImages()),
		widget.ButtonOpts.Text(label, p.fontFace, &widget.ButtonTextColor{
			Idle: color.RGBA{230, 230, 240, 255},
		}),
		widget.ButtonOpts.TextPadding(widget.NewInsetsSimple(5)),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func (p *Panel) createSliderRow() *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(10),
		)),
	)
}

func (p *Panel) createFieldLabel(label string) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(label, p.fontFace, color.RGBA{200, 200, 200, 255}),
		widget.TextOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(105, 0),
		),
	)
}

func (p *Panel) createValueLabel(initial string) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(initial, p.fontFace, color.RGBA{255, 255, 255, 255}),
		widget.TextOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(50, 0),
		),
	)
}

func (p *Panel) createSliderImages() *widget.SliderTrackImage {
	idle := ebiten.NewImage(32, 8)
	idle.Fill(color.RGBA{80, 80, 100, 255})

	hover := ebiten.NewImage(32, 8)
	hover.Fill(color.RGBA{100, 100, 120, 255})

	return &widget.SliderTrackImage{
		Idle:  image.NewNineSliceSimple(idle, 4, 4),
		Hover: image.NewNineSliceSimple(hover, 4, 4),
	}
}

func (p *Panel) createSliderHandleImages() *widget.ButtonImage {
	idle := ebiten.NewImage(20, 20)
	idle.Fill(color.RGBA{150, 150, 180, 255})

	hover := ebiten.NewImage(20, 20)
	hover.Fill(color.RGBA{180, 180, 220, 255})

	pressed := ebiten.NewImage(20, 20)
	pressed.Fill(color.RGBA{200, 200, 255, 255})

	return &widget.ButtonImage{
		Idle:    image.NewNineSliceSimple(idle, 4, 4),
		Hover:   image.NewNineSliceSimple(hover, 4, 4),
		Pressed: image.NewNineSliceSimple(pressed, 4, 4),
	}
}

// Toggle flips panel visibility.
func (p *Panel) Toggle() {
	p.visible = !p.visible
}

// IsVisible reports whether the panel is shown (and eating mouse input).
func (p *Panel) IsVisible() bool {
	return p.visible
}

// SetStatus shows a message in the panel's status line; empty clears it.
func (p *Panel) SetStatus(msg string) {
	p.status.Label = msg
}

func (p *Panel) markDirty() {
	p.dirty = true
	p.lastChangeTime = time.Now()
}

// Update drives the UI and fires the debounced apply callback once the
// sliders have settled.
func (p *Panel) Update() {
	if p.visible {
		p.ui.Update()
	}

	if p.dirty && time.Since(p.lastChangeTime) >= p.debounceDelay {
		p.dirty = false
		if p.Callbacks.Apply != nil {
			p.Callbacks.Apply(p.Params, p.Color)
		}
	}
}

// Draw draws the UI if visible.
func (p *Panel) Draw(screen *ebiten.Image) {
	if p.visible {
		p.ui.Draw(screen)
	}
}

func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	for len(s) > 1 && s[len(s)-1] == '0' && s[len(s)-2] != '.' {
		s = s[:len(s)-1]
	}
	return s
}
