package physics

import "gonum.org/v1/gonum/spatial/r2"

// Integrate advances b by step seconds with semi-implicit Euler: position moves with the
// velocity from the previous step, then velocity picks up force/mass, then the force
// accumulator is cleared for the next tick. step is not validated.
func Integrate(b *Body, step float64) {
	b.Position = r2.Add(b.Position, r2.Scale(step, b.Velocity))
	b.Acceleration = r2.Scale(1/b.Mass, b.Force)
	b.Velocity = r2.Add(b.Velocity, r2.Scale(step, b.Acceleration))
	b.Force = r2.Vec{}
}
