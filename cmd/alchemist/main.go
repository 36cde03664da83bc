package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/halvard/alchemist/internal/alchemy"
	"github.com/halvard/alchemist/internal/config"
	"github.com/halvard/alchemist/internal/dataset"
	"github.com/halvard/alchemist/internal/logger"
	"github.com/halvard/alchemist/internal/render"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "alchemist: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	initLogger(cfg)

	ctx := logger.WithRunID(context.Background(), logger.GenerateRunID())
	log := logger.FromContext(ctx)
	start := time.Now()

	var tables dataset.Tables
	if cfg.DataBundle != "" {
		tables, err = dataset.ReadJSONBundle(cfg.DataBundle)
	} else {
		tables, err = dataset.ReadCSVDir(cfg.DataDir)
	}
	if err != nil {
		return fmt.Errorf("reading reference data: %w", err)
	}

	store, err := dataset.Load(ctx, tables)
	if err != nil {
		return fmt.Errorf("loading reference data: %w", err)
	}

	result, err := alchemy.Enumerate(ctx, store, alchemy.Options{Workers: cfg.Workers})
	if err != nil {
		return fmt.Errorf("enumerating potions: %w", err)
	}

	manifest, err := render.LoadManifest(cfg.SiteManifest)
	if err != nil {
		return err
	}
	if err := render.WritePages(ctx, store, result, manifest, cfg.OutputDir); err != nil {
		return fmt.Errorf("rendering site: %w", err)
	}

	log.Info("run complete",
		"potions", len(result.Potions),
		"output", cfg.OutputDir,
		"elapsed", time.Since(start))
	return nil
}
