package interact

import (
	"orbsim/internal/physics"

	"gonum.org/v1/gonum/spatial/r2"
)

// Pick returns the first body in live-set order whose disk contains point, or nil.
// Overlapping disks are resolved by order in the slice, not by depth or distance.
func Pick(bodies []*physics.Body, point r2.Vec) *physics.Body {
	for _, b := range bodies {
		if b.Contains(point) {
			return b
		}
	}
	return nil
}

// BeginDrag records the body's current position as its drag anchor.
func BeginDrag(b *physics.Body) {
	b.DragAnchor = b.Position
}

// UpdateDrag places b at its anchor offset by how far the pointer moved since origin.
// The position is overwritten directly; velocity is left alone.
func UpdateDrag(b *physics.Body, point, origin r2.Vec) {
	b.Position = r2.Add(b.DragAnchor, r2.Sub(point, origin))
}

// Controller tracks one pointer drag across frames.
type Controller struct {
	body   *physics.Body
	origin r2.Vec
}

// Begin picks the body under point and starts dragging it. Returns false if no body is hit.
func (c *Controller) Begin(bodies []*physics.Body, point r2.Vec) bool {
	b := Pick(bodies, point)
	if b == nil {
		return false
	}
	c.body = b
	c.origin = point
	BeginDrag(b)
	return true
}

// Move moves the dragged body with the pointer. It does nothing when no drag is active.
func (c *Controller) Move(point r2.Vec) {
	if c.body == nil {
		return
	}
	UpdateDrag(c.body, point, c.origin)
}

// End stops the current drag.
func (c *Controller) End() {
	c.body = nil
}

// Active returns the dragged body, or nil.
func (c *Controller) Active() *physics.Body {
	return c.body
}

// Sync ends the drag if the dragged body was absorbed in a merge and is no longer live.
// Call it after every tick; it reports whether the drag survived.
func (c *Controller) Sync(bodies []*physics.Body) bool {
	if c.body == nil {
		return false
	}
	for _, b := range bodies {
		if b == c.body {
			return true
		}
	}
	c.body = nil
	return false
}
