// Command ecs-stress spawns a configurable fan-out of archetypes, runs a
// cached query against them once per simulated frame for a fixed duration,
// and reports timing, memory, and query-cache behavior.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"

	"github.com/duskforge/ecs/ecs"
)

type Position struct{ X, Y float64 }
type Velocity struct{ DX, DY float64 }
type Health struct{ Current, Max int }
type TagA struct{}
type TagB struct{}

// archetypeFanOut is the set of component combinations spawned entities are
// distributed across, each a distinct archetype once the first entity with
// that combination is created.
var archetypeFanOut = []string{
	"position",
	"position+velocity",
	"position+velocity+health",
	"position+health+tagA",
	"position+velocity+tagA+tagB",
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "Total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "Number of entities to spawn, distributed across the archetype fan-out.")
	chunkSize := flag.Int("chunk-size", 0, "If > 0, also run query_chunked with this chunk size every frame.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	profileMode := flag.String("profile", "", "Enable pprof profiling: cpu, mem, or empty to disable.")
	flag.Parse()

	switch *profileMode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	case "":
	default:
		log.Fatalf("unknown -profile mode %q (want cpu, mem, or empty)", *profileMode)
	}

	log.Println("Starting ecs stress test...")

	app := ecs.NewApp()
	w := app.World

	posT := ecs.Register[Position](w)
	velT := ecs.Register[Velocity](w)
	healthT := ecs.Register[Health](w)
	tagAT := ecs.Register[TagA](w)
	tagBT := ecs.Register[TagB](w)

	log.Printf("Populating world with %d entities across %d archetypes...\n", *entityCount, len(archetypeFanOut))
	for i := 0; i < *entityCount; i++ {
		spawnFanOut(w, archetypeFanOut[i%len(archetypeFanOut)], posT, velT, healthT, tagAT, tagBT)
	}
	log.Println("Population complete.")

	movementQuery := ecs.NewQuerySystem([]ecs.ComponentTypeID{posT, velT})

	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Components:     5,
		Systems:        1,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	var totalChunks int64
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
			for _, r := range movementQuery.Query(w) {
				pos := ecs.ReadComponent[Position](r, posT)
				vel := ecs.ReadComponent[Velocity](r, velT)
				pos.X += vel.DX * deltaTime.Seconds()
				pos.Y += vel.DY * deltaTime.Seconds()
			}
			if *chunkSize > 0 {
				totalChunks += int64(len(movementQuery.QueryChunked(w, *chunkSize)))
			}
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	report.QueryRebuildCount = movementQuery.RebuildCount()
	report.QueryChunkCount = totalChunks
	report.ArchetypeCount = w.ArchetypeCount()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}

func spawnFanOut(w *ecs.World, combo string, posT, velT, healthT, tagAT, tagBT ecs.ComponentTypeID) {
	data := []ecs.ComponentData{
		{Type: posT, Value: Position{X: rand.Float64() * 100, Y: rand.Float64() * 100}},
	}
	switch combo {
	case "position":
	case "position+velocity":
		data = append(data, ecs.ComponentData{Type: velT, Value: Velocity{DX: rand.Float64(), DY: rand.Float64()}})
	case "position+velocity+health":
		data = append(data,
			ecs.ComponentData{Type: velT, Value: Velocity{DX: rand.Float64(), DY: rand.Float64()}},
			ecs.ComponentData{Type: healthT, Value: Health{Current: 100, Max: 100}},
		)
	case "position+health+tagA":
		data = append(data,
			ecs.ComponentData{Type: healthT, Value: Health{Current: 100, Max: 100}},
			ecs.ComponentData{Type: tagAT, Value: TagA{}},
		)
	case "position+velocity+tagA+tagB":
		data = append(data,
			ecs.ComponentData{Type: velT, Value: Velocity{DX: rand.Float64(), DY: rand.Float64()}},
			ecs.ComponentData{Type: tagAT, Value: TagA{}},
			ecs.ComponentData{Type: tagBT, Value: TagB{}},
		)
	}
	if _, ok := w.CreateWithComponents(data); !ok {
		log.Fatalf("failed to spawn entity for combo %q", combo)
	}
}
