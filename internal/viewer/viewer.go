package viewer

import (
	"orbsim/internal/debug"
	"orbsim/internal/graphics"
	"orbsim/internal/logger"
	"orbsim/internal/session"
	"orbsim/internal/simconfig"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// disks smaller than this many pixels are drawn at this size so they stay visible
	minPixelRadius = 1.5
	outlineWidth   = 0.2
	wheelZoomStep  = 0.15
)

var (
	fillColor    = rl.NewColor(84, 84, 84, 255)
	outlineColor = rl.NewColor(219, 219, 219, 255)
	heavyColor   = rl.NewColor(255, 196, 92, 255)
	dragColor    = rl.NewColor(92, 180, 255, 255)
)

// Viewer draws a Session through a 2D camera and turns keyboard and mouse input into
// camera moves and session actions.
//
//	WASD    pan          Q/E, wheel  zoom
//	LMB     drag a body  R           top up bodies
//	M       merge/separate toggle    P  pause
//	F1      overlay
type Viewer struct {
	Session *session.Session
	Camera  Camera

	cfg     simconfig.Config
	log     *logger.Logger
	overlay *debug.Debug
	merges  int
	mouse   rl.Vector2
}

// New returns a viewer over s.
func New(s *session.Session, cfg simconfig.Config, log *logger.Logger) *Viewer {
	return &Viewer{
		Session: s,
		Camera:  NewCamera(),
		cfg:     cfg,
		log:     log,
		overlay: debug.New(),
	}
}

// Run opens the window and blocks until it is closed.
func (v *Viewer) Run() {
	v.log.Logf("viewer: %dx%d, %d bodies, %s", v.cfg.WindowWidth, v.cfg.WindowHeight, v.Session.World.Len(), v.Session.World.Params.Policy())
	graphics.Run(graphics.Window{
		Title:  "orbsim",
		Width:  v.cfg.WindowWidth,
		Height: v.cfg.WindowHeight,
	}, v.Update, v.Draw)
	v.log.Logf("viewer closed after %d ticks, %d bodies live", v.Session.World.Ticks, v.Session.World.Len())
}

// Update handles input and advances the simulation by one frame.
func (v *Viewer) Update() {
	dt := rl.GetFrameTime()
	v.updateCamera(dt)
	v.updateKeys()
	v.updateDrag()

	stats := v.Session.Advance(float64(dt))
	v.merges += stats.Merges
}

func (v *Viewer) updateCamera(dt float32) {
	var dx, dy float32
	if rl.IsKeyDown(rl.KeyA) {
		dx--
	}
	if rl.IsKeyDown(rl.KeyD) {
		dx++
	}
	if rl.IsKeyDown(rl.KeyW) {
		dy--
	}
	if rl.IsKeyDown(rl.KeyS) {
		dy++
	}
	if dx != 0 || dy != 0 {
		v.Camera.Pan(dx, dy, dt)
	}

	var zoom float32
	if rl.IsKeyDown(rl.KeyQ) {
		zoom--
	}
	if rl.IsKeyDown(rl.KeyE) {
		zoom++
	}
	if zoom != 0 {
		v.Camera.Zoom(zoom, dt)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		v.Camera.Zoom(wheel*wheelZoomStep/zoomSpeed, 1)
	}
}

func (v *Viewer) updateKeys() {
	switch {
	case rl.IsKeyPressed(rl.KeyR):
		if err := v.Session.Reseed(); err != nil {
			v.log.Logf("reseed: %v", err)
		}
	case rl.IsKeyPressed(rl.KeyM):
		v.Session.ToggleMerge()
	case rl.IsKeyPressed(rl.KeyP):
		v.Session.TogglePause()
	case rl.IsKeyPressed(rl.KeyF1):
		v.overlay.Toggle()
	}
}

func (v *Viewer) updateDrag() {
	mouse := rl.GetMousePosition()
	moved := mouse != v.mouse
	v.mouse = mouse
	point := v.Camera.ScreenToWorld(mouse, rl.GetScreenWidth(), rl.GetScreenHeight())

	switch {
	case rl.IsMouseButtonPressed(rl.MouseButtonLeft):
		v.Session.Grab(point)
	case rl.IsMouseButtonReleased(rl.MouseButtonLeft):
		v.Session.Release()
	case moved:
		v.Session.Drag(point)
	}
}

// Draw renders the live set and the overlay.
func (v *Viewer) Draw() {
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	cam := v.Camera.Camera2D(w, h)
	minRadius := minPixelRadius / cam.Zoom

	attribs := v.Session.Attribs()
	maxMass := float32(0)
	for _, a := range attribs {
		maxMass = math32.Max(maxMass, a.Mass)
	}

	dragged := v.Session.Dragged()
	bodies := v.Session.World.Bodies

	rl.BeginMode2D(cam)
	for i, a := range attribs {
		if !v.Camera.Visible(a.X, a.Y, a.Radius, w, h) {
			continue
		}
		center := rl.NewVector2(a.X, a.Y)
		r := math32.Max(a.Radius, minRadius)
		fill := rl.ColorLerp(fillColor, heavyColor, massShade(a.Mass, maxMass))
		if dragged != nil && bodies[i] == dragged {
			fill = dragColor
		}
		rl.DrawCircleV(center, r, outlineColor)
		rl.DrawCircleV(center, r*(1-outlineWidth), fill)
	}
	rl.EndMode2D()

	world := v.Session.World
	v.overlay.Draw(debug.Snapshot{
		FPS:       rl.GetFPS(),
		Bodies:    world.Len(),
		TotalMass: world.TotalMass(),
		Ticks:     world.Ticks,
		Merges:    v.merges,
		Policy:    world.Params.Policy().String(),
		Paused:    v.Session.Paused,
		Scale:     v.Camera.Scale,
	})
}

// massShade maps mass to [0, 1] on a log scale relative to the heaviest body.
func massShade(m, maxMass float32) float32 {
	if maxMass <= 1 || m <= 1 {
		return 0
	}
	return math32.Min(1, math32.Log10(m)/math32.Log10(maxMass))
}
