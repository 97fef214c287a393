package session

import (
	"context"
	"fmt"
	"io"
	"time"

	"orbsim/internal/logger"
	"orbsim/internal/physics"
	"orbsim/internal/population"
	"orbsim/internal/simconfig"

	"gonum.org/v1/gonum/spatial/r2"
)

// HeadlessOptions control a run without a window.
type HeadlessOptions struct {
	Ticks int
	Step  float64
	// Every prints a progress line every N ticks; 0 prints none.
	Every int
}

// summary describes a world at one point of a headless run.
type summary struct {
	Ticks     uint64
	Bodies    int
	TotalMass float64
	Momentum  r2.Vec
	Stats     physics.CollisionStats
}

func summarize(w *physics.World) summary {
	var p r2.Vec
	for _, b := range w.Bodies {
		p = r2.Add(p, b.Momentum())
	}
	return summary{
		Ticks:     w.Ticks,
		Bodies:    w.Len(),
		TotalMass: w.TotalMass(),
		Momentum:  p,
		Stats:     w.Stats,
	}
}

func (s summary) String() string {
	return fmt.Sprintf("tick %d: %d bodies, mass %.4f, momentum (%.4g, %.4g), %d overlaps, %d merges",
		s.Ticks, s.Bodies, s.TotalMass, s.Momentum.X, s.Momentum.Y, s.Stats.Overlaps, s.Stats.Merges)
}

// Headless seeds a world from cfg and steps it opts.Ticks times, stopping early if ctx
// is cancelled.
func Headless(ctx context.Context, out io.Writer, cfg simconfig.Config, opts HeadlessOptions, log *logger.Logger) error {
	if !(opts.Step > 0) {
		return fmt.Errorf("step must be > 0, got %v", opts.Step)
	}
	params, err := cfg.Physics()
	if err != nil {
		return err
	}
	popOpts, err := cfg.Population()
	if err != nil {
		return err
	}
	bodies, err := population.Fill(nil, popOpts, population.NewRand(popOpts))
	if err != nil {
		return err
	}
	w := physics.NewWorld(params)
	w.Bodies = bodies

	start := summarize(w)
	log.Logf("run: %d ticks of %.4gs, %s, %d bodies", opts.Ticks, opts.Step, w.Params.Policy(), start.Bodies)
	fmt.Fprintln(out, "start", start)

	began := time.Now()
	for i := 0; i < opts.Ticks; i++ {
		if err := ctx.Err(); err != nil {
			log.Logf("run: interrupted at tick %d", w.Ticks)
			break
		}
		w.Step(opts.Step)
		if opts.Every > 0 && w.Ticks%uint64(opts.Every) == 0 {
			fmt.Fprintln(out, "     ", summarize(w))
		}
	}
	elapsed := time.Since(began)

	end := summarize(w)
	fmt.Fprintln(out, "end  ", end)
	fmt.Fprintf(out, "elapsed %s, mass drift %.3g\n", elapsed.Round(time.Millisecond), end.TotalMass-start.TotalMass)
	log.Logf("run: %s in %s", end, elapsed)
	return nil
}
