package main

import (
	"context"
	"flag"
	"os"

	"orbsim/internal/commands"
	"orbsim/internal/session"
	"orbsim/internal/simconfig"
)

func registerRun(reg *commands.Registry) {
	var opts session.HeadlessOptions
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	path := fs.String("config", simconfig.DefaultPath, "config file")
	separate := fs.Bool("separate", false, "push overlapping bodies apart instead of merging them")
	seed := fs.Uint64("seed", 0, "seed for body placement, 0 keeps the config value")
	fs.IntVar(&opts.Ticks, "ticks", 600, "number of ticks to run")
	fs.Float64Var(&opts.Step, "step", 1.0/60, "tick duration in seconds")
	fs.IntVar(&opts.Every, "every", 0, "print a progress line every N ticks, 0 for none")
	reg.Register("run", "step the simulation without a window and print a summary", fs, func(ctx context.Context) error {
		cfg, log, err := loadConfig(*path)
		if err != nil {
			return err
		}
		if *separate {
			cfg.Merge = false
		}
		if *seed != 0 {
			cfg.Seed = *seed
		}
		return session.Headless(ctx, os.Stdout, cfg, opts, log)
	})
}
