package physics

// Attrib is the per-body record handed to a renderer: position, radius and mass.
type Attrib struct {
	X, Y   float32
	Radius float32
	Mass   float32
}

// Export rebuilds dst from bodies in live-set order and returns it. Call it after a tick
// has finished; record k describes bodies[k] only until the next tick.
func Export(dst []Attrib, bodies []*Body) []Attrib {
	dst = dst[:0]
	for _, b := range bodies {
		dst = append(dst, Attrib{
			X:      float32(b.Position.X),
			Y:      float32(b.Position.Y),
			Radius: float32(b.radius),
			Mass:   float32(b.Mass),
		})
	}
	return dst
}

// Export rebuilds dst from the world's live set.
func (w *World) Export(dst []Attrib) []Attrib {
	return Export(dst, w.Bodies)
}
