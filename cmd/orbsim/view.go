package main

import (
	"context"
	"flag"

	"orbsim/internal/commands"
	"orbsim/internal/session"
	"orbsim/internal/simconfig"
	"orbsim/internal/viewer"
)

func registerView(reg *commands.Registry) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	path := fs.String("config", simconfig.DefaultPath, "config file")
	separate := fs.Bool("separate", false, "start with bodies pushed apart instead of merged")
	reg.Register("view", "open a window and run the simulation interactively", fs, func(context.Context) error {
		cfg, log, err := loadConfig(*path)
		if err != nil {
			return err
		}
		if *separate {
			cfg.Merge = false
		}
		s, err := session.NewSession(cfg, log)
		if err != nil {
			return err
		}
		viewer.New(s, cfg, log).Run()
		return nil
	})
}
