package physics

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"
)

// Policy selects how an overlapping pair is resolved during a sweep.
type Policy int

const (
	// Separate pushes both bodies apart along the line of centres. Nothing is removed.
	Separate Policy = iota
	// Merge folds the lighter body into the heavier one and removes it from the live set.
	Merge
)

func (p Policy) String() string {
	switch p {
	case Separate:
		return "separate"
	case Merge:
		return "merge"
	}
	return "unknown"
}

// Pair is two bodies whose disks overlap.
type Pair struct {
	A, B *Body
}

// CollisionStats counts what one or more sweeps found.
// Candidates passed the bounding box test, Overlaps passed the distance test.
type CollisionStats struct {
	Candidates int
	Overlaps   int
	Merges     int
}

// Add returns the field-wise sum of s and o.
func (s CollisionStats) Add(o CollisionStats) CollisionStats {
	return CollisionStats{
		Candidates: s.Candidates + o.Candidates,
		Overlaps:   s.Overlaps + o.Overlaps,
		Merges:     s.Merges + o.Merges,
	}
}

// fallbackDir is used when two centres coincide and the line of centres is undefined.
var fallbackDir = r2.Vec{X: 0, Y: 1}

// direction returns the unit vector from a to b, or fallbackDir when they coincide.
func direction(a, b r2.Vec) r2.Vec {
	d := r2.Sub(b, a)
	n := r2.Norm(d)
	if n == 0 {
		return fallbackDir
	}
	return r2.Scale(1/n, d)
}

// contact is the minimum translation between two overlapping disks.
// depth is negative while the disks overlap; dir points from the first body to the second.
type contact struct {
	depth float64
	dir   r2.Vec
}

// overlap runs the exact disk test. The bounding box test is only a filter; this one decides.
func overlap(a, b *Body) (contact, bool) {
	depth := r2.Norm(r2.Sub(b.Position, a.Position)) - (a.radius + b.radius)
	if !(depth < 0) {
		return contact{}, false
	}
	return contact{depth: depth, dir: direction(a.Position, b.Position)}, true
}

// overlapY is the y-axis half of the bounding box test; the sweep already covers x.
func overlapY(a, b *Body) bool {
	return a.Bottom() < b.Top() && a.Top() > b.Bottom()
}

func sortByLeft(bodies []*Body) {
	slices.SortFunc(bodies, func(a, b *Body) int {
		return cmp.Compare(a.Left(), b.Left())
	})
}

// separate moves a and b apart by half the penetration each, keeping their midpoint.
func separate(a, b *Body, c contact) {
	a.Position = r2.Add(a.Position, r2.Scale(c.depth/2, c.dir))
	b.Position = r2.Add(b.Position, r2.Scale(-c.depth/2, c.dir))
}

// removeAt overwrites slot k with the last live body and shrinks the live length n by one.
// moved[k] records whether slot k now holds a body taken from the tail.
func removeAt(bodies []*Body, moved []bool, k, n int) int {
	moved[k] = k != n-1
	bodies[k] = bodies[n-1]
	bodies[n-1] = nil
	return n - 1
}

// SweepAndPrune sorts bodies by their left edge and resolves every overlapping pair with
// policy. Under Merge the slice shrinks: absorbed bodies are removed by swapping in the
// last element, so indices into bodies are not stable across the call. The returned slice
// shares the backing array of bodies.
//
// The pass mutates while it iterates. A survivor that grew keeps being tested with its new
// radius, so a body overlapping two others absorbs both in one pass. A body moved into a
// freed slot is tested from that slot; since it breaks the sort order there, a miss on x
// skips it instead of ending the scan. Pairs missed because a grown survivor now reaches
// further left are found on the next pass.
func SweepAndPrune(bodies []*Body, policy Policy) ([]*Body, CollisionStats) {
	var stats CollisionStats
	sortByLeft(bodies)

	n := len(bodies)
	var moved []bool
	if policy == Merge {
		moved = make([]bool, n)
	}
	for i := 0; i < n; {
		absorbed := false
		for j := i + 1; j < n; {
			a, b := bodies[i], bodies[j]
			if b.Left() > a.Right() {
				if moved != nil && moved[j] {
					j++
					continue
				}
				break
			}
			if !overlapY(a, b) {
				j++
				continue
			}
			stats.Candidates++
			c, ok := overlap(a, b)
			if !ok {
				j++
				continue
			}
			stats.Overlaps++

			if policy != Merge {
				separate(a, b, c)
				j++
				continue
			}

			stats.Merges++
			if a.Mass >= b.Mass {
				a.absorb(b)
				// slot j now holds the former last body; test it against a
				n = removeAt(bodies, moved, j, n)
				continue
			}
			b.absorb(a)
			n = removeAt(bodies, moved, i, n)
			absorbed = true
			break
		}
		if !absorbed {
			i++
		}
	}
	return bodies[:n], stats
}

// OverlappingPairs runs the same sweep as SweepAndPrune without resolving anything and
// returns every pair whose disks overlap. bodies is reordered by the sort.
func OverlappingPairs(bodies []*Body) []Pair {
	sortByLeft(bodies)

	var pairs []Pair
	for i, a := range bodies {
		for _, b := range bodies[i+1:] {
			if b.Left() > a.Right() {
				break
			}
			if !overlapY(a, b) {
				continue
			}
			if _, ok := overlap(a, b); ok {
				pairs = append(pairs, Pair{A: a, B: b})
			}
		}
	}
	return pairs
}

// ExhaustivePairs tests every pair of bodies with the disk test alone. It is the O(n²)
// reference for OverlappingPairs and does not reorder bodies.
func ExhaustivePairs(bodies []*Body) []Pair {
	var pairs []Pair
	for i, a := range bodies {
		for _, b := range bodies[i+1:] {
			if _, ok := overlap(a, b); ok {
				pairs = append(pairs, Pair{A: a, B: b})
			}
		}
	}
	return pairs
}
