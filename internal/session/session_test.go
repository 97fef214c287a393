package session

import (
	"math"
	"testing"

	"orbsim/internal/logger"
	"orbsim/internal/physics"
	"orbsim/internal/simconfig"

	"gonum.org/v1/gonum/spatial/r2"
)

func newSession(t *testing.T, count int) *Session {
	t.Helper()
	cfg := simconfig.Default()
	cfg.Count = count
	cfg.Seed = 11
	s, err := NewSession(cfg, logger.New(""))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNewSession(t *testing.T) {
	s := newSession(t, 32)
	if s.World.Len() != 32 {
		t.Fatalf("Len() = %d, want 32", s.World.Len())
	}
	if !s.World.Params.Merge {
		t.Error("default policy should be merge")
	}
	if got := len(s.Attribs()); got != 32 {
		t.Errorf("Attribs() has %d records", got)
	}
}

func TestAdvance(t *testing.T) {
	s := newSession(t, 64)
	mass := s.World.TotalMass()
	for i := 0; i < 30; i++ {
		s.Advance(1.0 / 60)
	}
	if s.World.Ticks != 30 {
		t.Errorf("Ticks = %d, want 30", s.World.Ticks)
	}
	if got := s.World.TotalMass(); math.Abs(got-mass) > 1e-9*mass {
		t.Errorf("total mass %v, want %v", got, mass)
	}

	s.TogglePause()
	s.Advance(1.0 / 60)
	if s.World.Ticks != 30 {
		t.Error("paused session advanced")
	}
}

func TestAdvance_ClampsStep(t *testing.T) {
	s := newSession(t, 0)
	b, err := physics.NewBody(r2.Vec{}, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	b.Velocity = r2.Vec{X: 1}
	s.World.Add(b)

	s.Advance(10)
	if want := simconfig.Default().MaxStep; math.Abs(b.Position.X-want) > 1e-12 {
		t.Errorf("x = %v, want %v", b.Position.X, want)
	}
}

func TestReseedAfterMerges(t *testing.T) {
	s := newSession(t, 8)
	s.World.Bodies = s.World.Bodies[:3]
	if err := s.Reseed(); err != nil {
		t.Fatal(err)
	}
	if s.World.Len() != 8 {
		t.Errorf("Len() = %d after reseed, want 8", s.World.Len())
	}
}

func TestToggleMerge(t *testing.T) {
	s := newSession(t, 0)
	s.ToggleMerge()
	if s.World.Params.Policy() != physics.Separate {
		t.Errorf("policy = %v, want separate", s.World.Params.Policy())
	}
	s.ToggleMerge()
	if s.World.Params.Policy() != physics.Merge {
		t.Errorf("policy = %v, want merge", s.World.Params.Policy())
	}
}

func TestDrag(t *testing.T) {
	s := newSession(t, 0)
	s.World.Params.G = 0
	b, _ := physics.NewBody(r2.Vec{X: 2, Y: 3}, 10, 1)
	s.World.Add(b)

	if s.Grab(r2.Vec{X: 50, Y: 50}) {
		t.Fatal("grabbed empty space")
	}
	if !s.Grab(r2.Vec{X: 2.5, Y: 3}) {
		t.Fatal("missed the body")
	}
	s.Drag(r2.Vec{X: 4.5, Y: 1})
	if b.Position != (r2.Vec{X: 4, Y: 1}) {
		t.Errorf("position = %v, want (4, 1)", b.Position)
	}
	if s.Dragged() != b {
		t.Error("Dragged() should return the grabbed body")
	}
	s.Release()
	if s.Dragged() != nil {
		t.Error("drag still active after Release")
	}
}

func TestDrag_ReleasedWhenAbsorbed(t *testing.T) {
	s := newSession(t, 0)
	s.World.Params.G = 0
	small, _ := physics.NewBody(r2.Vec{}, 1, 1)
	big, _ := physics.NewBody(r2.Vec{X: 0.5}, 50, 1)
	s.World.Add(small)
	s.World.Add(big)

	if !s.Grab(r2.Vec{}) || s.Dragged() != small {
		t.Fatal("expected to grab the small body")
	}
	s.Advance(1.0 / 60)
	if s.World.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after merge", s.World.Len())
	}
	if s.Dragged() != nil {
		t.Error("drag should end when the dragged body is absorbed")
	}
}
