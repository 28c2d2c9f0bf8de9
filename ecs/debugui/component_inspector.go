package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/duskforge/ecs/ecs"
)

func NewComponentInspectorComponent() ComponentInspectorComponent {
	return ComponentInspectorComponent{}
}

func (ci *ComponentInspectorComponent) Name() string { return "ecs.debugui.ComponentInspector" }

func (ci *ComponentInspectorComponent) Update(app *ecs.App, dt float64) error {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil
	}

	state := debugUIState(app)
	ci.selectedEntity = state.SelectedEntity

	if !state.HasSelection || !app.World.IsAlive(ci.selectedEntity) {
		imgui.Text("No entity selected")
		imgui.End()
		return nil
	}

	var archetypeID ecs.ArchetypeID
	var types []ecs.ComponentTypeID
	found := false
	for _, arch := range app.World.Archetypes() {
		for _, id := range arch.Entities() {
			if app.World.HandleOf(id) == ci.selectedEntity {
				archetypeID = arch.ID()
				types = arch.ComponentTypes()
				found = true
				break
			}
		}
		if found {
			break
		}
	}
	if !found {
		imgui.Text(fmt.Sprintf("Entity %d not found", ci.selectedEntity.ID()))
		imgui.End()
		return nil
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d (gen %d)", ci.selectedEntity.ID(), ci.selectedEntity.Generation()))
	imgui.Text(fmt.Sprintf("Archetype: 0x%X", uint64(archetypeID)))
	imgui.Separator()

	for _, t := range types {
		component, ok := app.World.ComponentAny(ci.selectedEntity, t)
		if !ok {
			continue
		}

		if imgui.TreeNodeStr(app.World.ComponentTypeName(t)) {
			ci.renderComponent(app.World, component, ci.selectedEntity, t)
			imgui.TreePop()
		}
	}

	imgui.End()
	return nil
}

func (ci *ComponentInspectorComponent) renderComponent(w *ecs.World, component any, h ecs.EntityHandle, t ecs.ComponentTypeID) {
	val := reflect.ValueOf(component)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	fields := globalReflectionCache.GetFields(val.Type())

	for _, field := range fields {
		fieldVal := val.Field(field.Index)
		if field.IsPointer && !fieldVal.IsNil() {
			fieldVal = fieldVal.Elem()
		}

		ci.renderField(field.Name, fieldVal, field, w, h, t)
	}
}

func (ci *ComponentInspectorComponent) renderField(name string, val reflect.Value, field FieldInfo, w *ecs.World, h ecs.EntityHandle, t ecs.ComponentTypeID) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	if field.IsPointer && val.IsNil() {
		imgui.Text(fmt.Sprintf("%s: nil", name))
		return
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) {
			ci.updateIntField(w, h, t, field.Index, int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) {
			if v >= 0 {
				ci.updateUintField(w, h, t, field.Index, uint64(v))
			}
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &v) {
			ci.updateFloatField(w, h, t, field.Index, float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) {
			ci.updateBoolField(w, h, t, field.Index, v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(fmt.Sprintf("##%s", name), "", &v, imgui.InputTextFlagsNone, nil) {
			ci.updateStringField(w, h, t, field.Index, v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			nestedFields := globalReflectionCache.GetFields(val.Type())
			for _, nf := range nestedFields {
				nestedVal := val.Field(nf.Index)
				if nf.IsPointer && !nestedVal.IsNil() {
					nestedVal = nestedVal.Elem()
				}
				ci.renderField(nf.Name, nestedVal, nf, w, h, t)
			}
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}

// fieldOf re-fetches the live component pointer for (h, t) and returns the
// reflect.Value for one of its fields, settable in place. Re-fetching (as
// opposed to caching the original pointer) guards against the component
// having moved archetype between render and edit.
func (ci *ComponentInspectorComponent) fieldOf(w *ecs.World, h ecs.EntityHandle, t ecs.ComponentTypeID, fieldIdx int) (reflect.Value, bool) {
	component, ok := w.ComponentAny(h, t)
	if !ok {
		return reflect.Value{}, false
	}
	val := reflect.ValueOf(component)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	field := val.Field(fieldIdx)
	return field, field.CanSet()
}

func (ci *ComponentInspectorComponent) updateIntField(w *ecs.World, h ecs.EntityHandle, t ecs.ComponentTypeID, fieldIdx int, value int64) {
	if field, ok := ci.fieldOf(w, h, t, fieldIdx); ok {
		field.SetInt(value)
	}
}

func (ci *ComponentInspectorComponent) updateUintField(w *ecs.World, h ecs.EntityHandle, t ecs.ComponentTypeID, fieldIdx int, value uint64) {
	if field, ok := ci.fieldOf(w, h, t, fieldIdx); ok {
		field.SetUint(value)
	}
}

func (ci *ComponentInspectorComponent) updateFloatField(w *ecs.World, h ecs.EntityHandle, t ecs.ComponentTypeID, fieldIdx int, value float64) {
	if field, ok := ci.fieldOf(w, h, t, fieldIdx); ok {
		field.SetFloat(value)
	}
}

func (ci *ComponentInspectorComponent) updateBoolField(w *ecs.World, h ecs.EntityHandle, t ecs.ComponentTypeID, fieldIdx int, value bool) {
	if field, ok := ci.fieldOf(w, h, t, fieldIdx); ok {
		field.SetBool(value)
	}
}

func (ci *ComponentInspectorComponent) updateStringField(w *ecs.World, h ecs.EntityHandle, t ecs.ComponentTypeID, fieldIdx int, value string) {
	if field, ok := ci.fieldOf(w, h, t, fieldIdx); ok {
		field.SetString(value)
	}
}
