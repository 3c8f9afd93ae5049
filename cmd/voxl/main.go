package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/void-scape/voxl/internal/app"
	"github.com/void-scape/voxl/internal/config"
	"github.com/void-scape/voxl/internal/render"
	"github.com/void-scape/voxl/internal/trace"
)

func main() {
	var (
		cfgPath     string
		frames      int
		script      string
		previewPath string
		tracePath   string
	)
	flag.StringVar(&cfgPath, "config", "", "path to terrain configuration file")
	flag.IntVar(&frames, "frames", 600, "frames to run before exiting, 0 runs until interrupted")
	flag.StringVar(&script, "script", "", "scripted key holds, e.g. w:120,d:60")
	flag.StringVar(&previewPath, "preview", "", "write a heightmap PNG of the last frame to this path")
	flag.StringVar(&tracePath, "trace", "", "write a compressed frame trace to this path (overrides trace.path)")
	flag.Parse()

	if _, err := writeConfigFromEnv(cfgPath); err != nil {
		log.Fatalf("sync config from environment: %v", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if tracePath != "" {
		cfg.Trace.Path = tracePath
	}

	steps, err := app.ParseScript(script)
	if err != nil {
		log.Fatalf("parse script: %v", err)
	}

	var opts []app.Option
	if cfg.Trace.Path != "" {
		w, err := trace.NewWriter(cfg.Trace.Path)
		if err != nil {
			log.Fatalf("open trace: %v", err)
		}
		log.Printf("tracing frames to %s (run %s)", cfg.Trace.Path, w.RunID())
		opts = append(opts, app.WithTrace(w))
	}

	a, err := app.New(cfg, opts...)
	if err != nil {
		log.Fatalf("initialise terrain: %v", err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	runErr := app.NewLoop(a, cfg.Loop.FrameRate.Duration()).WithScript(steps).Run(ctx, frames)
	if runErr != nil && ctx.Err() == nil {
		log.Printf("frame loop stopped: %v", runErr)
	}

	stats := a.Stats()
	log.Printf("ran %d frames in %s: %d chunks loaded, %d pooled, %d allocated, %d voxels",
		a.Frames(), time.Since(start).Round(time.Millisecond), stats.Loaded, stats.Pooled, stats.Allocated, stats.Voxels)

	if previewPath != "" && a.LastFrame() != nil {
		if err := render.SavePreview(a.LastFrame(), previewPath); err != nil {
			log.Fatalf("save preview: %v", err)
		}
		log.Printf("preview written to %s", previewPath)
	}

	if err := a.Close(); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
	if runErr != nil && ctx.Err() == nil {
		os.Exit(1)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
