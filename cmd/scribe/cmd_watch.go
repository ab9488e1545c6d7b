package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/nguyentantai21042004/meeting-scribe/internal/metrics"
	"github.com/nguyentantai21042004/meeting-scribe/internal/processor"
	"github.com/nguyentantai21042004/meeting-scribe/internal/watcher"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the input folder and process new recordings and transcripts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, true)
			if err != nil {
				return err
			}
			defer a.close(cmd.Context())

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, log := a.cfg, a.log
			log.Info(ctx, "========================================")
			log.Info(ctx, "Meeting Scribe %s", version)
			log.Info(ctx, "========================================")
			log.Info(ctx, "System: %s/%s, CPU Cores: %d", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
			log.Info(ctx, "Speaker diarization: %v, segment merge: %v, summary: %v",
				cfg.Pipeline.DiarizationEnabled(), cfg.Pipeline.EnableSegmentMerge, cfg.Summary.Enabled)

			if err := ensureDirectories(cfg); err != nil {
				return err
			}

			w, err := watcher.New(watcher.Options{
				Dir:           cfg.Paths.Input,
				MaxConcurrent: cfg.Performance.MaxConcurrent,
				Accept:        acceptInput,
				SettleDelay:   500 * time.Millisecond,
			}, a.proc.Process, log)
			if err != nil {
				return err
			}
			defer w.Stop()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return w.Start(gctx)
			})

			if cfg.Metrics.Addr != "" {
				srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: metricsMux()}
				g.Go(func() error {
					if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
						return err
					}
					return nil
				})
				g.Go(func() error {
					<-gctx.Done()
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					return srv.Shutdown(shutdownCtx)
				})
				log.Info(ctx, "Metrics: http://%s/metrics", cfg.Metrics.Addr)
			}

			log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
			log.Info(ctx, "Output: %s", cfg.Paths.Output)
			log.Info(ctx, "Press Ctrl+C to stop")

			err = g.Wait()
			log.Info(context.Background(), "Meeting Scribe stopped")
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}

// acceptInput picks recordings and WEBVTT transcripts.
func acceptInput(path string) bool {
	return processor.IsSupported(path) || strings.EqualFold(filepath.Ext(path), ".vtt")
}

func metricsMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	return mux
}
