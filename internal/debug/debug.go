package debug

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// only rebuild text every N frames to limit allocations
	updateInterval = 15
)

// Snapshot is what the overlay shows about the simulation.
type Snapshot struct {
	FPS       int32
	Bodies    int
	TotalMass float64
	Ticks     uint64
	Merges    int
	Policy    string
	Paused    bool
	Scale     float32
}

// Lines formats s as overlay text, one entry per line.
func (s Snapshot) Lines() []string {
	mode := s.Policy
	if s.Paused {
		mode += " (paused)"
	}
	return []string{
		fmt.Sprintf("FPS: %d", s.FPS),
		fmt.Sprintf("Bodies: %d", s.Bodies),
		fmt.Sprintf("Mass: %.1f", s.TotalMass),
		fmt.Sprintf("Ticks: %d  Merges: %d", s.Ticks, s.Merges),
		fmt.Sprintf("Mode: %s", mode),
		fmt.Sprintf("Scale: %.0f", s.Scale),
	}
}

// Debug draws the stats overlay in the top-left corner. It is visible by default.
type Debug struct {
	Show       bool
	frameCount uint32
	lines      []string
}

// New returns a visible overlay.
func New() *Debug {
	return &Debug{Show: true}
}

// Toggle flips overlay visibility.
func (d *Debug) Toggle() {
	d.Show = !d.Show
}

// Draw renders the overlay. Call it after the world, outside BeginMode2D.
func (d *Debug) Draw(s Snapshot) {
	if !d.Show {
		return
	}
	d.frameCount++
	if d.lines == nil || d.frameCount%updateInterval == 0 {
		d.lines = s.Lines()
	}
	y := int32(padding)
	for _, line := range d.lines {
		rl.DrawText(line, padding, y, fontSize, rl.Green)
		y += lineHeight
	}
}
