package physics

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r2"
)

// scatter returns n bodies at uniform positions in [-extent, extent]² with mass in [1, 100).
func scatter(t testing.TB, seed uint64, n int, extent float64) []*Body {
	t.Helper()
	rnd := rand.New(rand.NewSource(seed))
	bodies := make([]*Body, n)
	for i := range bodies {
		x := (rnd.Float64()*2 - 1) * extent
		y := (rnd.Float64()*2 - 1) * extent
		bodies[i] = mustBody(t, x, y, 1+99*rnd.Float64(), 10)
	}
	return bodies
}

func pairSet(pairs []Pair) map[[2]*Body]bool {
	set := make(map[[2]*Body]bool, len(pairs))
	for _, p := range pairs {
		set[[2]*Body{p.A, p.B}] = true
	}
	return set
}

func hasPair(set map[[2]*Body]bool, p Pair) bool {
	return set[[2]*Body{p.A, p.B}] || set[[2]*Body{p.B, p.A}]
}

func totalMass(bodies []*Body) float64 {
	var m float64
	for _, b := range bodies {
		m += b.Mass
	}
	return m
}

func TestOverlappingPairs_MatchesExhaustive(t *testing.T) {
	for _, tt := range []struct {
		name   string
		seed   uint64
		n      int
		extent float64
	}{
		{"sparse", 1, 200, 64},
		{"dense", 2, 300, 16},
		{"packed", 3, 100, 4},
	} {
		t.Run(tt.name, func(t *testing.T) {
			bodies := scatter(t, tt.seed, tt.n, tt.extent)
			want := ExhaustivePairs(bodies)
			got := OverlappingPairs(bodies)
			if len(got) != len(want) {
				t.Fatalf("sweep found %d pairs, exhaustive found %d", len(got), len(want))
			}
			gotSet := pairSet(got)
			for _, p := range want {
				if !hasPair(gotSet, p) {
					t.Errorf("sweep missed pair at %v / %v", p.A.Position, p.B.Position)
				}
			}
			if tt.name != "sparse" && len(want) == 0 {
				t.Fatal("scatter produced no overlaps; test is not exercising anything")
			}
		})
	}
}

func TestSweepAndPrune_Trivial(t *testing.T) {
	for _, n := range []int{0, 1} {
		bodies := scatter(t, 7, n, 10)
		out, stats := SweepAndPrune(bodies, Merge)
		if len(out) != n || stats != (CollisionStats{}) {
			t.Errorf("n=%d: got %d bodies, stats %+v", n, len(out), stats)
		}
	}
}

func TestSweepAndPrune_SeparateRemovesPenetration(t *testing.T) {
	a := mustBody(t, 0, 0, 10, 10)
	b := mustBody(t, 0.5, 0.3, 20, 10)
	mid := r2.Scale(0.5, r2.Add(a.Position, b.Position))

	out, stats := SweepAndPrune([]*Body{a, b}, Separate)
	if len(out) != 2 || stats.Overlaps != 1 || stats.Merges != 0 {
		t.Fatalf("got %d bodies, stats %+v", len(out), stats)
	}
	dist := r2.Norm(r2.Sub(a.Position, b.Position))
	if dist < a.Radius()+b.Radius()-1e-9 {
		t.Errorf("distance %v still below radius sum %v", dist, a.Radius()+b.Radius())
	}
	if got := r2.Scale(0.5, r2.Add(a.Position, b.Position)); r2.Norm(r2.Sub(got, mid)) > 1e-12 {
		t.Errorf("midpoint moved from %v to %v", mid, got)
	}
	if a.Mass != 10 || b.Mass != 20 || a.Velocity != (r2.Vec{}) {
		t.Error("separation must not touch mass or velocity")
	}
}

func TestSweepAndPrune_CoincidentCentres(t *testing.T) {
	for _, policy := range []Policy{Separate, Merge} {
		t.Run(policy.String(), func(t *testing.T) {
			a := mustBody(t, 2, 2, 10, 10)
			b := mustBody(t, 2, 2, 10, 10)
			out, _ := SweepAndPrune([]*Body{a, b}, policy)
			for _, o := range out {
				if math.IsNaN(o.Position.X) || math.IsNaN(o.Position.Y) {
					t.Fatalf("NaN position %v", o.Position)
				}
			}
			if policy == Separate {
				d := r2.Norm(r2.Sub(a.Position, b.Position))
				if math.Abs(d-(a.Radius()+b.Radius())) > 1e-9 {
					t.Errorf("distance %v, want %v", d, a.Radius()+b.Radius())
				}
			} else if len(out) != 1 || out[0].Mass != 20 {
				t.Errorf("expected one body of mass 20, got %d", len(out))
			}
		})
	}
}

func TestSweepAndPrune_MergeSurvivor(t *testing.T) {
	tests := []struct {
		name        string
		left, right float64
		wantLeft    bool
	}{
		{"heavier left", 50, 10, true},
		{"heavier right", 10, 50, false},
		{"tie goes to first in sweep order", 30, 30, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := mustBody(t, 0, 0, tt.left, 10)
			r := mustBody(t, 0.1, 0, tt.right, 10)
			out, stats := SweepAndPrune([]*Body{r, l}, Merge)
			if len(out) != 1 || stats.Merges != 1 {
				t.Fatalf("got %d bodies, stats %+v", len(out), stats)
			}
			want := r
			if tt.wantLeft {
				want = l
			}
			if out[0] != want {
				t.Errorf("wrong survivor")
			}
			if out[0].Mass != tt.left+tt.right {
				t.Errorf("Mass = %v, want %v", out[0].Mass, tt.left+tt.right)
			}
			if out[0].Radius() != RadiusFromMass(out[0].Mass, out[0].Density) {
				t.Error("radius not re-derived after merge")
			}
		})
	}
}

func TestSweepAndPrune_ChainedMerges(t *testing.T) {
	build := func() []*Body {
		return []*Body{
			mustBody(t, 0, 0, 10, 10),
			mustBody(t, 0.8, 0, 40, 10),
			mustBody(t, 1.6, 0, 20, 10),
			mustBody(t, 2.4, 0.1, 5, 10),
			mustBody(t, 30, 30, 7, 10),
		}
	}
	first, stats := SweepAndPrune(build(), Merge)
	if stats.Merges == 0 {
		t.Fatal("expected merges")
	}
	if m := totalMass(first); m != 82 {
		t.Errorf("total mass = %v, want 82", m)
	}
	if pairs := ExhaustivePairs(first); len(pairs) != 0 {
		t.Errorf("%d overlapping pairs left after one pass", len(pairs))
	}

	second, _ := SweepAndPrune(build(), Merge)
	if len(first) != len(second) {
		t.Fatalf("non-deterministic: %d vs %d bodies", len(first), len(second))
	}
	for i := range first {
		if first[i].Mass != second[i].Mass || first[i].Position != second[i].Position {
			t.Errorf("body %d differs between identical runs", i)
		}
	}
}

func TestSweepAndPrune_AbsorbsEveryOverlapInOnePass(t *testing.T) {
	a := mustBody(t, 0, 0, 50, 10)
	b := mustBody(t, 0.5, 0, 5, 10)
	c := mustBody(t, 1, 0, 5, 10)
	far := mustBody(t, 100, 0, 5, 10)

	// absorbing b swaps far into b's slot; far must not end the scan before c is reached
	out, stats := SweepAndPrune([]*Body{far, c, b, a}, Merge)
	if len(out) != 2 || stats.Merges != 2 {
		t.Fatalf("got %d bodies, stats %+v, want 2 bodies and 2 merges", len(out), stats)
	}
	if a.Mass != 60 {
		t.Errorf("survivor mass = %v, want 60", a.Mass)
	}
	if pairs := ExhaustivePairs(out); len(pairs) != 0 {
		t.Errorf("%d overlapping pairs left after one pass", len(pairs))
	}
}

func TestSweepAndPrune_MergeConservesMass(t *testing.T) {
	bodies := scatter(t, 11, 400, 12)
	before := totalMass(bodies)
	out, stats := SweepAndPrune(bodies, Merge)
	if stats.Merges == 0 {
		t.Fatal("expected merges in a dense scatter")
	}
	if len(out) != 400-stats.Merges {
		t.Errorf("%d bodies left after %d merges", len(out), stats.Merges)
	}
	if after := totalMass(out); math.Abs(after-before) > 1e-9*before {
		t.Errorf("total mass %v -> %v", before, after)
	}
	seen := make(map[*Body]bool)
	for _, b := range out {
		if b == nil || seen[b] {
			t.Fatal("live set holds a nil or duplicated body")
		}
		seen[b] = true
		if math.Abs(b.Radius()-RadiusFromMass(b.Mass, b.Density)) > 1e-12 {
			t.Errorf("radius invariant broken: %v vs %v", b.Radius(), RadiusFromMass(b.Mass, b.Density))
		}
	}
}
