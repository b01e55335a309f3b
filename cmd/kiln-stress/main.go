// Command kiln-stress measures frame times of a large generated state under constant churn.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/kiln/config"
	"github.com/plus3/kiln/ecs"
	"github.com/plus3/kiln/ecs/props"
	"github.com/plus3/kiln/systems"
	"go.uber.org/zap"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The initial number of entities to create.")
	prototypeCount := flag.Int("prototypes", 50, "The number of prototype entities instances are created from.")
	churn := flag.Int("churn", 100, "Components destroyed and re-instantiated per frame.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	profileMode := flag.String("profile", "", `Write a "cpu" or "mem" profile to the working directory.`)
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		log.Fatal("unknown profile mode", zap.String("profile", *profileMode))
	}

	log.Info("starting stress test")

	// 1. Setup State, resolver and Scheduler
	state := ecs.NewState()
	resolver := props.New(state, nil)
	scheduler := ecs.NewScheduler(state)
	scheduler.Register(systems.NewPhysicsSystem(resolver, config.Default().Physics, log.Named("physics")))
	churnSystem := &ChurnSystem{PerFrame: *churn}
	scheduler.Register(churnSystem)

	// 2. Populate the State
	log.Info("populating state", zap.Int("prototypes", *prototypeCount), zap.Int("entities", *entityCount))
	prototypes := SpawnPrototypes(state, *prototypeCount)
	churnSystem.Prototypes = prototypes
	for i := 0; i < *entityCount; i++ {
		// Each entity instantiates 1 to 3 random prototypes
		SpawnRandomEntity(state, prototypes, rand.Intn(3)+1)
	}
	stats := state.CollectStats()
	log.Info("population complete",
		zap.Int("entities", stats.EntityCount),
		zap.Int("components", stats.ComponentCount),
		zap.Int("links", stats.LinkCount),
	)

	// 3. Run the simulation loop
	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Prototypes:     *prototypeCount,
		Churn:          *churn,
		StartStats:     stats,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info("running simulation", zap.Duration("duration", *duration))
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	var frameErrors int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			if err := scheduler.Once(float64(deltaTime) / float64(time.Second)); err != nil {
				frameErrors++
			}
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.FrameErrors = frameErrors
	report.UpdateTime.Finalize()
	report.EndStats = state.CollectStats()
	report.Systems = scheduler.GetStats().Systems
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info("simulation finished", zap.Int64("updates", totalUpdates))

	// 4. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal("failed to generate report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")
}
