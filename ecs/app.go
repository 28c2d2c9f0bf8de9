package ecs

// Stage is one of the five fixed scheduling buckets systems run in every
// frame (spec §4.7/GLOSSARY).
type Stage int

const (
	StagePreUpdate Stage = iota
	StageUpdate
	StagePostUpdate
	StageRender
	StageCleanup
)

// stageOrder is the fixed, declared execution order of stages every frame.
var stageOrder = [...]Stage{
	StagePreUpdate,
	StageUpdate,
	StagePostUpdate,
	StageRender,
	StageCleanup,
}

func (s Stage) String() string {
	switch s {
	case StagePreUpdate:
		return "pre_update"
	case StageUpdate:
		return "update"
	case StagePostUpdate:
		return "post_update"
	case StageRender:
		return "render"
	case StageCleanup:
		return "cleanup"
	default:
		return "unknown_stage"
	}
}

// App is the single mutable context passed to every system and plugin: the
// world, the shared resource store, the scheduler, and the plugin manager.
// Spec §9 calls for an explicit context parameter rather than a process
// singleton — App is that parameter.
type App struct {
	World     *World
	Resources *ResourceStore
	Scheduler *Scheduler
	Plugins   *PluginManager
}

// NewApp wires up an empty world, resource store, scheduler and plugin
// manager into one App.
func NewApp() *App {
	app := &App{
		World:     NewWorld(),
		Resources: NewResourceStore(),
		Scheduler: NewScheduler(),
	}
	app.Plugins = NewPluginManager(app)
	return app
}

// Update advances every stage once, in declared order, with delta time dt
// seconds. Stops and returns the first stage error encountered — the
// remainder of the frame's stages are not run (spec §7).
func (a *App) Update(dt float64) error {
	return a.Scheduler.UpdateAll(a, dt)
}
