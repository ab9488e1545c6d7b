package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/meeting-scribe/internal/config"
	"github.com/nguyentantai21042004/meeting-scribe/internal/logger"
	"github.com/nguyentantai21042004/meeting-scribe/internal/processor"
	"github.com/nguyentantai21042004/meeting-scribe/internal/summarizer"
	"github.com/nguyentantai21042004/meeting-scribe/pkg/executor"
	"github.com/spf13/cobra"
)

// app bundles what every command needs.
type app struct {
	cfg     *config.Config
	log     logger.Logger
	runtime *processor.Runtime
	proc    processor.Processor
}

// newApp loads the config and wires the processor. withModels loads the
// transcription and embedding models; summarize-only commands skip them.
func newApp(cmd *cobra.Command, withModels bool) (*app, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	log := logger.NewWithFile(cfg.Logging.Level, logger.FileOptions{
		Path:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})

	exec := executor.New()
	rt := &processor.Runtime{}
	if withModels {
		if rt, err = processor.NewRuntime(cfg, exec, log); err != nil {
			return nil, err
		}
	}

	var sum summarizer.Summarizer
	if len(cfg.Gemini.APIKeys) > 0 {
		if sum, err = summarizer.New(cfg.Gemini.APIKeys, cfg.Gemini.Model, cfg.Summary.MaxChunkSize, log); err != nil {
			rt.Close()
			return nil, err
		}
	}

	return &app{
		cfg:     cfg,
		log:     log,
		runtime: rt,
		proc:    processor.New(cfg, rt, exec, sum, log),
	}, nil
}

func (a *app) close(ctx context.Context) {
	if err := a.runtime.Close(); err != nil {
		a.log.Warn(ctx, "Failed to release models: %v", err)
	}
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
