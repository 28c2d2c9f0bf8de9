// Package debugui provides an immediate-mode debug overlay for ecs
// applications, rendered with Dear ImGui. It ships two things: a generic
// ImguiSystem that lets any entity carry its own render callback, and five
// built-in panels (entity browser, archetype viewer, component inspector,
// query debugger, performance stats) that introspect a *ecs.World and
// *ecs.Scheduler directly.
//
// Nothing in package ecs imports debugui — the render/graphics boundary is
// a host concern, and debugui is an optional collaborator wired in by the
// host's own App, the way ecs/debugui/ebiten wires an ebiten.Game.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/duskforge/ecs/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render callback. Attach
// it to any entity that should draw its own ImGui widgets each frame;
// ImguiSystem renders every live ImguiItem in query order.
type ImguiItem struct {
	Render func()
}

// ImguiInputState is the resource ImguiSystem refreshes every frame with
// Dear ImGui's current input-capture flags, so host input systems can skip
// game input while the overlay has focus.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem drives every entity-attached ImguiItem and keeps
// ImguiInputState current. Registered into StageRender.
type ImguiSystem struct {
	itemType ecs.ComponentTypeID
	query    *ecs.QuerySystem
}

// NewImguiSystem registers ImguiItem with app's world and builds the
// cached query ImguiSystem runs every frame.
func NewImguiSystem(app *ecs.App) *ImguiSystem {
	t := ecs.Register[ImguiItem](app.World)
	return &ImguiSystem{itemType: t, query: ecs.NewQuerySystem([]ecs.ComponentTypeID{t})}
}

func (s *ImguiSystem) Name() string { return "ecs.debugui.ImguiSystem" }

func (s *ImguiSystem) Priority() int { return -100 }

func (s *ImguiSystem) Update(app *ecs.App, dt float64) error {
	if !ecs.HasResource[ImguiInputState](app.Resources) {
		ecs.InsertResource(app.Resources, ImguiInputState{})
	}
	state, _ := ecs.GetResource[ImguiInputState](app.Resources)
	state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()

	for _, r := range s.query.Query(app.World) {
		item := ecs.ReadComponent[ImguiItem](r, s.itemType)
		if item.Render != nil {
			item.Render()
		}
	}
	return nil
}
