package ecs

import "time"

// Time is the frame-clock resource every application system reads for
// delta/elapsed time (spec §6). It is written once per frame by
// TimeSystem, which TimePlugin registers.
type Time struct {
	DeltaSeconds   float64
	ElapsedSeconds float64
	FrameNumber    uint64
	LastUpdate     time.Time
}

// TimeSystem writes the Time resource from a monotonic wall-clock source
// each frame. It runs in pre_update so every later-stage system observes
// this frame's timing.
type TimeSystem struct {
	start time.Time
}

func (s *TimeSystem) Name() string { return "ecs.TimeSystem" }

func (s *TimeSystem) Init(app *App) {
	s.start = time.Now()
	InsertResource(app.Resources, Time{LastUpdate: s.start})
}

func (s *TimeSystem) Update(app *App, dt float64) error {
	t, ok := GetResource[Time](app.Resources)
	if !ok {
		return nil
	}
	now := time.Now()
	t.DeltaSeconds = dt
	t.ElapsedSeconds = now.Sub(s.start).Seconds()
	t.FrameNumber++
	t.LastUpdate = now
	return nil
}

// TimePlugin installs TimeSystem into pre_update and seeds the Time
// resource. This is the built-in frame-driver boundary spec §6 describes:
// the host supplies dt, the plugin turns it into the Time resource
// application systems read.
type TimePlugin struct{}

func (TimePlugin) Name() string { return "ecs.TimePlugin" }

func (TimePlugin) Build(app *App) {
	_ = app.Scheduler.AddToStage(&TimeSystem{}, StagePreUpdate)
}
