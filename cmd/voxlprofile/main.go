package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/void-scape/voxl/internal/config"
	"github.com/void-scape/voxl/internal/render"
	"github.com/void-scape/voxl/internal/terrain"
	"github.com/void-scape/voxl/internal/world"
)

// sweepJob walks one observer across the terrain at a fixed view distance.
type sweepJob struct {
	viewDistance uint
	start        mgl32.Vec3
}

func main() {
	var (
		cfgPath     = flag.String("config", "", "path to terrain configuration file")
		minDistance = flag.Int("min-distance", 2, "smallest view distance to sweep")
		maxDistance = flag.Int("max-distance", 12, "largest view distance to sweep")
		steps       = flag.Int("steps", 64, "observer moves per sweep")
		stride      = flag.Float64("stride", 8, "world units moved per step along +x")
		editEvery   = flag.Int("edit-every", 16, "regenerate the window every N steps, 0 disables")
		concurrency = flag.Int("concurrency", runtime.NumCPU(), "number of concurrent sweeps")
		verbose     = flag.Bool("verbose", false, "keep per-update window logs")
	)
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	if *minDistance < 0 || *maxDistance < *minDistance {
		fmt.Fprintln(os.Stderr, "distances must satisfy 0 <= min-distance <= max-distance")
		os.Exit(1)
	}
	if *steps <= 0 {
		fmt.Fprintln(os.Stderr, "steps must be positive")
		os.Exit(1)
	}
	if *concurrency <= 0 {
		fmt.Fprintln(os.Stderr, "concurrency must be positive")
		os.Exit(1)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	extractor, err := terrain.NewExtractor(cfg.Terrain)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create extractor: %v\n", err)
		os.Exit(1)
	}
	layers := terrain.LayersFromConfig(cfg.Terrain.Layers)

	jobs := make(chan sweepJob)
	go func() {
		defer close(jobs)
		for d := *minDistance; d <= *maxDistance; d++ {
			jobs <- sweepJob{viewDistance: uint(d), start: mgl32.Vec3(cfg.Camera.Position)}
		}
	}()

	var (
		wg            sync.WaitGroup
		totalLoads    int64
		totalUnloads  int64
		totalUpdates  int64
		totalDuration int64
		maxAllocated  int64
		totalVoxels   int64
		totalBytes    int64
	)

	// Managers are single threaded; each worker drives its own.
	worker := func() {
		defer wg.Done()
		for job := range jobs {
			uploader := render.NewHostUploader()
			manager := world.NewManager(extractor, layers,
				world.WithUploader(uploader),
				world.WithOcclusion(cfg.Terrain.Occlusion),
			)

			observer := job.start
			for step := 0; step < *steps; step++ {
				if *editEvery > 0 && step > 0 && step%*editEvery == 0 {
					if current := manager.Layers(); len(current) > 0 {
						last := current[len(current)-1]
						last.Weight++
						_ = manager.SetLayer(len(current)-1, last)
					}
				}
				startTime := time.Now()
				manager.Update(job.viewDistance, observer)
				atomic.AddInt64(&totalDuration, int64(time.Since(startTime)))
				atomic.AddInt64(&totalUpdates, 1)
				observer[0] -= float32(*stride)
			}

			stats := manager.Stats()
			atomic.AddInt64(&totalLoads, int64(stats.Loads))
			atomic.AddInt64(&totalUnloads, int64(stats.Unloads))
			atomic.AddInt64(&totalVoxels, int64(stats.Voxels))
			atomic.AddInt64(&totalBytes, int64(uploader.Bytes()))
			for {
				current := atomic.LoadInt64(&maxAllocated)
				if int64(stats.Allocated) <= current || atomic.CompareAndSwapInt64(&maxAllocated, current, int64(stats.Allocated)) {
					break
				}
			}
			manager.Close()
		}
	}

	wg.Add(*concurrency)
	for i := 0; i < *concurrency; i++ {
		go worker()
	}

	startWall := time.Now()
	wg.Wait()
	wallDuration := time.Since(startWall)

	updates := atomic.LoadInt64(&totalUpdates)
	avgUpdate := time.Duration(0)
	if updates > 0 {
		avgUpdate = time.Duration(atomic.LoadInt64(&totalDuration) / updates)
	}

	fmt.Println("== Chunk Window Profile ==")
	fmt.Printf("Chunk size: %d\n", cfg.Terrain.ChunkSize)
	fmt.Printf("Primitive: %s\n", cfg.Terrain.Primitive)
	fmt.Printf("Layers: %d\n", len(layers))
	fmt.Printf("View distances: %d..%d\n", *minDistance, *maxDistance)
	fmt.Printf("Steps per sweep: %d (stride %.1f)\n", *steps, *stride)
	fmt.Printf("Concurrency: %d\n", *concurrency)
	fmt.Printf("Window updates: %d\n", updates)
	fmt.Printf("Chunks loaded: %d, unloaded: %d\n", atomic.LoadInt64(&totalLoads), atomic.LoadInt64(&totalUnloads))
	fmt.Printf("Largest pool allocation: %d chunks\n", atomic.LoadInt64(&maxAllocated))
	fmt.Printf("Voxels in final windows: %d (%d bytes of instance data)\n", atomic.LoadInt64(&totalVoxels), atomic.LoadInt64(&totalBytes))
	fmt.Printf("Average update duration: %s\n", avgUpdate)
	fmt.Printf("Wall clock duration: %s\n", wallDuration)
}
