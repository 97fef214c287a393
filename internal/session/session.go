package session

import (
	"orbsim/internal/interact"
	"orbsim/internal/logger"
	"orbsim/internal/physics"
	"orbsim/internal/population"
	"orbsim/internal/simconfig"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r2"
)

// Session is the interactive state behind the window: the world, the seeding generator,
// the pointer drag and the pause flag. It has no raylib dependency so it can be driven
// from tests.
type Session struct {
	World  *physics.World
	Paused bool

	cfg     simconfig.Config
	opts    population.Options
	rnd     *rand.Rand
	log     *logger.Logger
	drag    interact.Controller
	attribs []physics.Attrib
}

// NewSession seeds a world from cfg.
func NewSession(cfg simconfig.Config, log *logger.Logger) (*Session, error) {
	params, err := cfg.Physics()
	if err != nil {
		return nil, err
	}
	opts, err := cfg.Population()
	if err != nil {
		return nil, err
	}
	s := &Session{
		World: physics.NewWorld(params),
		cfg:   cfg,
		opts:  opts,
		log:   log,
	}
	s.rnd = population.NewRand(s.opts)
	if err := s.Reseed(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reseed tops the live set back up to the configured count.
func (s *Session) Reseed() error {
	before := s.World.Len()
	bodies, err := population.Fill(s.World.Bodies, s.opts, s.rnd)
	s.World.Bodies = bodies
	if err != nil {
		return err
	}
	if added := s.World.Len() - before; added > 0 {
		s.log.Logf("seeded %d bodies, %d live", added, s.World.Len())
	}
	return nil
}

// ToggleMerge switches the collision policy between merge and separate.
func (s *Session) ToggleMerge() {
	s.World.Params.Merge = !s.World.Params.Merge
	s.log.Logf("collision policy: %s", s.World.Params.Policy())
}

// TogglePause stops or resumes stepping.
func (s *Session) TogglePause() {
	s.Paused = !s.Paused
}

// Advance steps the world by the frame delta dt, clamped to the configured maximum.
func (s *Session) Advance(dt float64) physics.CollisionStats {
	if s.Paused {
		return physics.CollisionStats{}
	}
	dragging := s.drag.Active() != nil
	stats := s.World.Step(s.cfg.ClampStep(dt))
	if stats.Merges > 0 {
		s.log.Logf("tick %d: %d merges, %d live", s.World.Ticks, stats.Merges, s.World.Len())
	}
	if dragging && !s.drag.Sync(s.World.Bodies) {
		s.log.Log("dragged body was absorbed, drag released")
	}
	return stats
}

// Grab starts dragging the body under point. It reports whether a body was hit.
func (s *Session) Grab(point r2.Vec) bool {
	if !s.drag.Begin(s.World.Bodies, point) {
		return false
	}
	b := s.drag.Active()
	s.log.Logf("drag start: mass %.2f at (%.2f, %.2f)", b.Mass, b.Position.X, b.Position.Y)
	return true
}

// Drag moves the grabbed body with the pointer.
func (s *Session) Drag(point r2.Vec) {
	s.drag.Move(point)
}

// Release ends the current drag.
func (s *Session) Release() {
	s.drag.End()
}

// Dragged returns the body being dragged, or nil.
func (s *Session) Dragged() *physics.Body {
	return s.drag.Active()
}

// Attribs returns the render attributes of the live set. The slice is reused between calls.
func (s *Session) Attribs() []physics.Attrib {
	s.attribs = s.World.Export(s.attribs)
	return s.attribs
}
