package debugui

import "github.com/duskforge/ecs/ecs"

// Install registers the generic ImguiSystem plus the five built-in
// introspection panels into app's render stage. Call once during app
// setup, after any plugins that register their own components.
func Install(app *ecs.App) error {
	eb := NewEntityBrowserComponent(100)
	ci := NewComponentInspectorComponent()
	av := NewArchetypeViewerComponent()
	ps := NewPerformanceStatsComponent(120)
	qd := NewQueryDebuggerComponent()

	systems := []ecs.System{
		NewImguiSystem(app),
		&eb,
		&ci,
		&av,
		&ps,
		&qd,
	}
	for _, sys := range systems {
		if err := app.Scheduler.AddToStage(sys, ecs.StageRender); err != nil {
			return err
		}
	}
	return nil
}
