package physics

import (
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r2"
)

// minParallelBodies is the live count below which the parallel pass is not worth its buffers.
const minParallelBodies = 64

// PairForce returns the gravitational force on a due to b:
// G·ma·mb/(d+ε)² along the unit vector from a toward b. The force on b is its negation.
// Coincident centres have no defined direction and yield the zero vector.
func PairForce(a, b *Body, p Params) r2.Vec {
	return softGravity(p, a.Mass, b.Mass, r2.Sub(b.Position, a.Position))
}

// softGravity is the force on m1 from m2, where v points from m1 to m2.
func softGravity(p Params, m1, m2 float64, v r2.Vec) r2.Vec {
	dist := r2.Norm(v)
	if dist == 0 {
		return r2.Vec{}
	}
	s := dist + p.Epsilon
	f := p.G * m1 * m2 / (s * s)
	return r2.Scale(f/dist, v)
}

// AccumulateGravity adds the net gravitational force on every body to its Force field.
// With Theta > 0 it uses a Barnes-Hut approximation; otherwise every unordered pair is
// computed once and applied to both bodies with opposite signs, in parallel when Workers > 1.
func AccumulateGravity(bodies []*Body, p Params) {
	switch {
	case p.Theta > 0:
		if approximateGravity(bodies, p) {
			return
		}
	case p.Workers > 1 && len(bodies) >= minParallelBodies:
		parallelGravity(bodies, p)
		return
	}
	exactGravity(bodies, p)
}

func exactGravity(bodies []*Body, p Params) {
	for i, a := range bodies {
		for _, b := range bodies[i+1:] {
			f := PairForce(a, b, p)
			a.Force = r2.Add(a.Force, f)
			b.Force = r2.Sub(b.Force, f)
		}
	}
}

// parallelGravity splits the rows of the pair triangle across workers by stride. Each
// worker owns a private accumulator per body, and the buffers are folded into the bodies
// in worker order once all workers finish, so no accumulator is shared while writing.
func parallelGravity(bodies []*Body, p Params) {
	n := len(bodies)
	workers := min(p.Workers, n)
	bufs := make([][]r2.Vec, workers)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		bufs[w] = make([]r2.Vec, n)
		g.Go(func() error {
			buf := bufs[w]
			for i := w; i < n; i += workers {
				a := bodies[i]
				for j := i + 1; j < n; j++ {
					f := PairForce(a, bodies[j], p)
					buf[i] = r2.Add(buf[i], f)
					buf[j] = r2.Sub(buf[j], f)
				}
			}
			return nil
		})
	}
	// workers only read bodies and write their own buffer; they never return an error,
	// so Wait is only the barrier before the reduction
	_ = g.Wait()

	for _, buf := range bufs {
		for k, f := range buf {
			bodies[k].Force = r2.Add(bodies[k].Force, f)
		}
	}
}

// approximateGravity reports false when the tree cannot be built, so the caller can fall
// back to the exact pass.
func approximateGravity(bodies []*Body, p Params) bool {
	root := buildQuadTree(bodies)
	if root == nil {
		return false
	}
	for _, b := range bodies {
		b.Force = r2.Add(b.Force, root.forceOn(b, p.Theta, p))
	}
	return true
}
