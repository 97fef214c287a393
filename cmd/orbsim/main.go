package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"orbsim/internal/commands"
	"orbsim/internal/env"
	"orbsim/internal/logger"
	"orbsim/internal/simconfig"
)

func main() {
	_ = env.Load(".env")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	reg := commands.NewRegistry("orbsim")
	registerRun(reg)
	registerView(reg)
	registerInit(reg)

	err := reg.Execute(ctx, os.Args[1:])
	switch {
	case err == nil:
	case errors.Is(err, commands.ErrUsage):
		fmt.Fprintln(os.Stderr, err)
		reg.Usage(os.Stderr)
		os.Exit(2)
	case errors.Is(err, flag.ErrHelp):
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, "orbsim:", err)
		os.Exit(1)
	}
}

// loadConfig reads the YAML file, applies ORBSIM_* overrides and validates the result.
// A config file that fails to parse is logged and the defaults are used instead.
func loadConfig(path string) (simconfig.Config, *logger.Logger, error) {
	cfg, loadErr := simconfig.Load(path)
	envErr := cfg.ApplyEnv()

	log := logger.New(cfg.LogPath)
	if loadErr != nil {
		log.Logf("config: %v, using defaults", loadErr)
	}
	if envErr != nil {
		return cfg, log, fmt.Errorf("environment: %w", envErr)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, log, fmt.Errorf("config: %w", err)
	}
	return cfg, log, nil
}

func registerInit(reg *commands.Registry) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	path := fs.String("config", simconfig.DefaultPath, "where to write the default config")
	force := fs.Bool("force", false, "overwrite an existing file")
	reg.Register("init", "write the default config file", fs, func(context.Context) error {
		if _, err := os.Stat(*path); err == nil && !*force {
			return fmt.Errorf("%s exists, pass -force to overwrite", *path)
		}
		if err := simconfig.Save(*path, simconfig.Default()); err != nil {
			return err
		}
		fmt.Println("wrote", *path)
		return nil
	})
}
