package viewer

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"
)

// Camera scale bounds, in world units of half screen height.
const (
	MinScale     = 10
	MaxScale     = 300
	DefaultScale = 80

	panSpeed  = 1.2 // screen half-heights per second
	zoomSpeed = 1.5 // e-folds per second
)

// Camera looks at Target and shows Scale world units above and below it. Screen Y grows
// downwards and so does world Y.
type Camera struct {
	Target r2.Vec
	Scale  float32
}

// NewCamera returns a camera centred on the origin at DefaultScale.
func NewCamera() Camera {
	return Camera{Scale: DefaultScale}
}

// Pan moves the target by (dx, dy) screen half-heights per second over dt seconds, so
// panning feels the same at every zoom level.
func (c *Camera) Pan(dx, dy, dt float32) {
	k := panSpeed * c.Scale * dt
	c.Target.X += float64(dx * k)
	c.Target.Y += float64(dy * k)
}

// Zoom scales the view by dir over dt seconds; positive dir zooms in. Scale stays in
// [MinScale, MaxScale].
func (c *Camera) Zoom(dir, dt float32) {
	c.Scale *= math32.Exp(-dir * zoomSpeed * dt)
	c.Scale = clamp(c.Scale, MinScale, MaxScale)
}

// PixelsPerUnit is the raylib zoom factor for a screen of the given height.
func (c Camera) PixelsPerUnit(screenH int) float32 {
	return float32(screenH) / (2 * c.Scale)
}

// Camera2D returns the raylib camera for a screen of the given size.
func (c Camera) Camera2D(screenW, screenH int) rl.Camera2D {
	return rl.Camera2D{
		Offset: rl.NewVector2(float32(screenW)/2, float32(screenH)/2),
		Target: rl.NewVector2(float32(c.Target.X), float32(c.Target.Y)),
		Zoom:   c.PixelsPerUnit(screenH),
	}
}

// ScreenToWorld maps a pixel position to world coordinates.
func (c Camera) ScreenToWorld(p rl.Vector2, screenW, screenH int) r2.Vec {
	k := c.PixelsPerUnit(screenH)
	return r2.Vec{
		X: c.Target.X + float64((p.X-float32(screenW)/2)/k),
		Y: c.Target.Y + float64((p.Y-float32(screenH)/2)/k),
	}
}

// Visible reports whether a disk at (x, y) with radius r intersects the screen.
func (c Camera) Visible(x, y, r float32, screenW, screenH int) bool {
	k := c.PixelsPerUnit(screenH)
	halfW := float32(screenW) / 2 / k
	tx, ty := float32(c.Target.X), float32(c.Target.Y)
	return math32.Abs(x-tx) <= halfW+r && math32.Abs(y-ty) <= c.Scale+r
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(v, hi))
}
