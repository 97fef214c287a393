package physics

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

var (
	// ErrInvalidMass is returned by NewBody when mass is not a finite positive number.
	ErrInvalidMass = errors.New("physics: mass must be finite and positive")
	// ErrInvalidDensity is returned by NewBody when density is not a finite positive number.
	ErrInvalidDensity = errors.New("physics: density must be finite and positive")
)

// Body is a circular mass in the plane. Bodies behave as constant-density spheres whose
// projection is a disk, so the radius always follows from Mass and Density.
// Force is a per-tick accumulator: gravity adds to it and Integrate clears it.
type Body struct {
	Position     r2.Vec
	Velocity     r2.Vec
	Force        r2.Vec
	Acceleration r2.Vec // last force/mass, kept for inspection only
	Mass         float64
	Density      float64

	// DragAnchor holds the body position at the start of an interactive drag.
	DragAnchor r2.Vec

	radius float64
}

// RadiusFromMass returns the radius of a sphere with the given mass and density.
func RadiusFromMass(mass, density float64) float64 {
	return math.Cbrt((3 * mass) / (4 * math.Pi * density))
}

// NewBody returns a body at rest at position. Velocity, force and acceleration are zero.
// mass and density must be finite and positive.
func NewBody(position r2.Vec, mass, density float64) (*Body, error) {
	if !(mass > 0) || math.IsInf(mass, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMass, mass)
	}
	if !(density > 0) || math.IsInf(density, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDensity, density)
	}
	return &Body{
		Position: position,
		Mass:     mass,
		Density:  density,
		radius:   RadiusFromMass(mass, density),
	}, nil
}

// Radius returns the radius derived from the current mass and density.
func (b *Body) Radius() float64 {
	return b.radius
}

// absorb folds other's mass into b and re-derives the radius. other's momentum is dropped.
func (b *Body) absorb(other *Body) {
	b.Mass += other.Mass
	b.radius = RadiusFromMass(b.Mass, b.Density)
}

// Left returns the minimum x of the body's bounding box.
func (b *Body) Left() float64 { return b.Position.X - b.radius }

// Right returns the maximum x of the body's bounding box.
func (b *Body) Right() float64 { return b.Position.X + b.radius }

// Bottom returns the minimum y of the body's bounding box.
func (b *Body) Bottom() float64 { return b.Position.Y - b.radius }

// Top returns the maximum y of the body's bounding box.
func (b *Body) Top() float64 { return b.Position.Y + b.radius }

// Contains reports whether point lies inside or on the body's disk.
func (b *Body) Contains(point r2.Vec) bool {
	return r2.Norm2(r2.Sub(point, b.Position)) <= b.radius*b.radius
}

// Momentum returns mass times velocity.
func (b *Body) Momentum() r2.Vec {
	return r2.Scale(b.Mass, b.Velocity)
}
