package physics

// Params are the constants of one simulation run. They are passed into every tick rather
// than read from globals, so worlds with different constants can run side by side.
type Params struct {
	// G is the gravitational constant.
	G float64
	// Epsilon is added to the distance before squaring in the gravity law.
	Epsilon float64
	// Merge selects merge-on-contact; false separates overlapping bodies instead.
	Merge bool
	// Theta > 0 switches gravity to a Barnes-Hut approximation with that opening angle.
	Theta float64
	// Workers > 1 splits the exact gravity pass across that many goroutines.
	Workers int
}

// DefaultParams returns G = 1, Epsilon = 0.001, merge on, exact serial gravity.
func DefaultParams() Params {
	return Params{
		G:       1,
		Epsilon: 0.001,
		Merge:   true,
	}
}

// Policy returns the collision policy selected by Merge.
func (p Params) Policy() Policy {
	if p.Merge {
		return Merge
	}
	return Separate
}

// RunTick advances the live set by one step: one collision sweep, then gravity over the
// bodies that survived it, then integration of every body. The returned slice replaces
// bodies; it may be shorter, and any index held from before the call is stale.
func RunTick(bodies []*Body, step float64, p Params) []*Body {
	bodies, _ = tick(bodies, step, p)
	return bodies
}

func tick(bodies []*Body, step float64, p Params) ([]*Body, CollisionStats) {
	bodies, stats := SweepAndPrune(bodies, p.Policy())
	AccumulateGravity(bodies, p)
	for _, b := range bodies {
		Integrate(b, step)
	}
	return bodies, stats
}

// World owns a live set of bodies and the constants they are simulated with.
// Nothing outside the world should hold on to a body index across a call to Step.
type World struct {
	Params Params
	Bodies []*Body

	// Ticks counts calls to Step. Stats accumulates collision counts over all ticks.
	Ticks uint64
	Stats CollisionStats
}

// NewWorld returns an empty world using p.
func NewWorld(p Params) *World {
	return &World{Params: p}
}

// Add appends b to the live set.
func (w *World) Add(b *Body) {
	w.Bodies = append(w.Bodies, b)
}

// Len returns the number of live bodies.
func (w *World) Len() int {
	return len(w.Bodies)
}

// Step runs one tick over the live set and returns what the collision sweep found.
func (w *World) Step(step float64) CollisionStats {
	var stats CollisionStats
	w.Bodies, stats = tick(w.Bodies, step, w.Params)
	w.Ticks++
	w.Stats = w.Stats.Add(stats)
	return stats
}

// TotalMass returns the summed mass of the live set.
func (w *World) TotalMass() float64 {
	var m float64
	for _, b := range w.Bodies {
		m += b.Mass
	}
	return m
}

// Contains reports whether b is in the live set.
func (w *World) Contains(b *Body) bool {
	for _, o := range w.Bodies {
		if o == b {
			return true
		}
	}
	return false
}

// Clone returns a world with copies of every body, so it can be stepped independently.
func (w *World) Clone() *World {
	c := *w
	c.Bodies = make([]*Body, len(w.Bodies))
	for i, b := range w.Bodies {
		nb := *b
		c.Bodies[i] = &nb
	}
	return &c
}
