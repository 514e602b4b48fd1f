// Command cavebiome-bench drives a CaveBiomeService with a synthetic
// generator and measures View construction/query throughput under
// concurrent load: flag-parsed config, a slog logger, and a
// signal-cancellable context.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/OCharnyshevich/cavebiome/internal/cavebiome"
	"github.com/OCharnyshevich/cavebiome/internal/cavebiome/gentest"
)

func main() {
	cfg := cavebiome.DefaultConfig()

	var (
		configPath  = flag.String("config", "", "path to a JSON config file merged beneath CLI flags")
		paletteLen  = flag.Int("palette-size", 24, "number of synthetic biomes in the test palette")
		workers     = flag.Int("workers", 8, "number of concurrent view-query workers")
		viewWidth   = flag.Int("view-width", 32, "chunk width each worker queries, in voxels")
		viewMargin  = flag.Int("view-margin", 16, "fragment margin around each view")
		ratePerSec  = flag.Float64("rate", 500, "max view constructions per second, across all workers")
		duration    = flag.Duration("duration", 5*time.Second, "how long to run the benchmark")
		withSurface = flag.Bool("surface", true, "enable the flat surface-override test double")
	)
	flag.Uint64Var(&cfg.WorldSeed, "world-seed", 1, "world seed fed to every generator")
	flag.BoolVar(&cfg.DisableZPerturbation, "disable-z-perturbation", false, "force off the noise-based z-perturbation")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			log.Error("read config file", "error", err)
			os.Exit(1)
		}
		fromFile := cavebiome.DefaultConfig()
		if err := json.Unmarshal(data, &fromFile); err != nil {
			log.Error("parse config file", "error", err)
			os.Exit(1)
		}
		explicitFlags := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { explicitFlags[f.Name] = true })
		cavebiome.Merge(&cfg, &fromFile, explicitFlags)
	}

	var surface cavebiome.SurfaceCollaborator
	if *withSurface {
		surface = gentest.NewFlatSurface(64, &cavebiome.Biome{ID: "surface.bench", Fields: map[string]float32{"roughness": 0.5}}, 512)
	}

	noiseFactory := func(startX, startY, voxelSize, width int32, seed uint64, period int32) cavebiome.Noise {
		return gentest.NewFractalNoise(startX, startY, voxelSize, width, seed, period)
	}
	svc := cavebiome.NewCaveBiomeService(cfg, surface, noiseFactory, log)
	palette := gentest.StripedPalette(*paletteLen)
	svc.RegisterGenerator(gentest.NewCellHashGenerator("terrain", 0, cfg.WorldSeed, palette))
	svc.Init()
	defer svc.Deinit()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	runCtx, runCancel := context.WithTimeout(ctx, *duration)
	defer runCancel()

	limiter := rate.NewLimiter(rate.Limit(*ratePerSec), 1)

	var views, queries int64
	g, gctx := errgroup.WithContext(runCtx)
	for w := 0; w < *workers; w++ {
		w := w
		g.Go(func() error {
			return runWorker(gctx, w, svc, int32(*viewWidth), int32(*viewMargin), limiter, &views, &queries)
		})
	}

	if err := g.Wait(); err != nil && err != context.DeadlineExceeded && err != context.Canceled {
		log.Error("worker error", "error", err)
		os.Exit(1)
	}

	log.Info("bench finished",
		"views", atomic.LoadInt64(&views),
		"queries", atomic.LoadInt64(&queries),
		"duration", duration.String(),
	)
}

func runWorker(ctx context.Context, id int, svc *cavebiome.CaveBiomeService, width, margin int32, limiter *rate.Limiter, views, queries *int64) error {
	for i := 0; ; i++ {
		if err := limiter.Wait(ctx); err != nil {
			return nil
		}
		pos := cavebiome.ChunkPos{
			X:         int32(id*10_000 + i*int(width)),
			Y:         0,
			Z:         0,
			VoxelSize: 1,
		}
		v := svc.NewView(pos, width, margin)
		atomic.AddInt64(views, 1)

		for rx := int32(0); rx < width; rx += 4 {
			for ry := int32(0); ry < width; ry += 4 {
				v.GetBiome(rx, ry, 0)
				atomic.AddInt64(queries, 1)
			}
		}
		v.Close()

		select {
		case <-ctx.Done():
			return nil
		default:
		}
	}
}
