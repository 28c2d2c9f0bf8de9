package ecs

// InputManager is the resource the host writes key/mouse/scroll state into
// every frame (spec §6). It carries both the current and previous frame's
// key sets so systems can distinguish "pressed this frame" from "held".
// Mouse buttons have no fields of their own.
type InputManager struct {
	KeysDown     map[string]bool
	KeysPrevious map[string]bool
	MouseX       float64
	MouseY       float64
	ScrollX      float64
	ScrollY      float64
}

// NewInputManager creates an empty InputManager.
func NewInputManager() InputManager {
	return InputManager{
		KeysDown:     make(map[string]bool),
		KeysPrevious: make(map[string]bool),
	}
}

// KeyDown reports whether key is currently held.
func (i *InputManager) KeyDown(key string) bool {
	return i.KeysDown[key]
}

// KeyPressed reports whether key transitioned from up to down this frame.
func (i *InputManager) KeyPressed(key string) bool {
	return i.KeysDown[key] && !i.KeysPrevious[key]
}

// KeyReleased reports whether key transitioned from down to up this frame.
func (i *InputManager) KeyReleased(key string) bool {
	return !i.KeysDown[key] && i.KeysPrevious[key]
}

// Advance snapshots the current key state as "previous" for next frame's
// KeyPressed/KeyReleased comparisons. Called by InputPlugin's system at the
// end of the frame the host already wrote this frame's state into.
func (i *InputManager) Advance() {
	for k := range i.KeysPrevious {
		delete(i.KeysPrevious, k)
	}
	for k, v := range i.KeysDown {
		i.KeysPrevious[k] = v
	}
}

// inputAdvanceSystem snapshots InputManager's key state at the very end of
// the frame (cleanup stage) so next frame's pre_update-stage reads of
// KeyPressed/KeyReleased see this frame's transitions.
type inputAdvanceSystem struct{}

func (inputAdvanceSystem) Name() string { return "ecs.InputAdvanceSystem" }

func (inputAdvanceSystem) Update(app *App, dt float64) error {
	im, ok := GetResource[InputManager](app.Resources)
	if !ok {
		return nil
	}
	im.Advance()
	return nil
}

// InputPlugin seeds the InputManager resource and registers the system
// that advances its pressed/released edge detection once per frame. The
// host is expected to write InputManager.KeysDown/MouseX/... directly
// (spec §6: "the host writes key/button/mouse/scroll state into an
// InputManager resource per frame").
type InputPlugin struct{}

func (InputPlugin) Name() string { return "ecs.InputPlugin" }

func (InputPlugin) Build(app *App) {
	InsertResource(app.Resources, NewInputManager())
	_ = app.Scheduler.AddToStage(inputAdvanceSystem{}, StageCleanup)
}
