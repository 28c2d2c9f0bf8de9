package ecs

import "time"

// System is a behavior registered into one scheduler stage. Name must be
// stable and unique across the whole scheduler (not just its stage).
type System interface {
	Name() string
	Update(app *App, dt float64) error
}

// Prioritized systems break topological ties within a stage: higher
// priority runs earlier at the same dependency level.
type Prioritized interface {
	Priority() int
}

// Dependent systems declare other systems (by name) that must finish first,
// within the same stage.
type Dependent interface {
	DependsOn() []string
}

// ParallelEligible systems are tagged as safe to run alongside their
// topological siblings. The scheduler currently still executes such a
// group sequentially (spec §5/§9 — true parallel execution is future
// work); the tag only changes grouping, not execution.
type ParallelEligible interface {
	CanRunParallel() bool
}

// Initializer systems run Init once, before their first Update.
type Initializer interface {
	Init(app *App)
}

// Finalizer systems expose a Finalize hook. The scheduler does not call
// it: Scheduler.Remove and Scheduler.Clear drop systems without running
// Finalize.
type Finalizer interface {
	Finalize(app *App)
}

func systemPriority(s System) int {
	if p, ok := s.(Prioritized); ok {
		return p.Priority()
	}
	return 0
}

func systemDependsOn(s System) []string {
	if d, ok := s.(Dependent); ok {
		return d.DependsOn()
	}
	return nil
}

func systemCanRunParallel(s System) bool {
	if p, ok := s.(ParallelEligible); ok {
		return p.CanRunParallel()
	}
	return false
}

// SystemStats accumulates per-system execution statistics recorded by the
// scheduler (spec §3, §4.7).
type SystemStats struct {
	TotalTime  time.Duration
	CallCount  int64
	ErrorCount int64
}

// systemWrapper is the scheduler's bookkeeping record for one registered
// system: (system, stage, enabled, stats, execution_order) per spec §3.
type systemWrapper struct {
	system         System
	stage          Stage
	enabled        bool
	stats          SystemStats
	executionOrder int
	insertionIndex int
	initialized    bool
}
