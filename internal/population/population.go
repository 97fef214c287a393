package population

import (
	"fmt"
	"time"

	"orbsim/internal/physics"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r2"
)

// Options controls how the live set is seeded.
// Bodies are placed uniformly in the square [-HalfExtent, HalfExtent]² with mass drawn
// uniformly from [MassMin, MassMax). Seed == 0 uses a time-based seed.
type Options struct {
	Count      int
	HalfExtent float64
	MassMin    float64
	MassMax    float64
	Density    float64
	Seed       uint64
}

// DefaultOptions returns 256 bodies of density 10 and mass 1..100 in a 128×128 square.
func DefaultOptions() Options {
	return Options{
		Count:      256,
		HalfExtent: 64,
		MassMin:    1,
		MassMax:    100,
		Density:    10,
	}
}

// NewRand returns the generator Fill should draw from for opts.
func NewRand(opts Options) *rand.Rand {
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed))
}

// Fill appends new bodies until bodies holds opts.Count of them and returns the result.
// Existing bodies are kept, so calling Fill after merges tops the set back up.
func Fill(bodies []*physics.Body, opts Options, rnd *rand.Rand) ([]*physics.Body, error) {
	if opts.MassMax < opts.MassMin {
		return bodies, fmt.Errorf("population: mass range [%v, %v) is empty", opts.MassMin, opts.MassMax)
	}
	for len(bodies) < opts.Count {
		pos := r2.Vec{
			X: uniform(rnd, -opts.HalfExtent, opts.HalfExtent),
			Y: uniform(rnd, -opts.HalfExtent, opts.HalfExtent),
		}
		b, err := physics.NewBody(pos, uniform(rnd, opts.MassMin, opts.MassMax), opts.Density)
		if err != nil {
			return bodies, fmt.Errorf("population: %w", err)
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}

func uniform(rnd *rand.Rand, lo, hi float64) float64 {
	return lo + rnd.Float64()*(hi-lo)
}
