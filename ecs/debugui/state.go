package debugui

import "github.com/duskforge/ecs/ecs"

// DebugUIState is the resource the built-in panels share: the entity
// browser writes the current entity selection and the component inspector
// reads it; the archetype viewer reads and writes the archetype selection.
// Kept as a resource rather than threaded
// through every panel's Update so panels stay independently registerable.
type DebugUIState struct {
	SelectedEntity    ecs.EntityHandle
	HasSelection      bool
	SelectedArchetype ecs.ArchetypeID
	HasArchSelection  bool
}

func debugUIState(app *ecs.App) *DebugUIState {
	if !ecs.HasResource[DebugUIState](app.Resources) {
		ecs.InsertResource(app.Resources, DebugUIState{})
	}
	s, _ := ecs.GetResource[DebugUIState](app.Resources)
	return s
}
