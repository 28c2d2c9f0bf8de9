package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/duskforge/ecs/ecs"
)

type QueryDebuggerCache struct {
	componentTypes     []string
	lastArchetypeCount int
}

func NewQueryDebuggerComponent() QueryDebuggerComponent {
	return QueryDebuggerComponent{
		selectedComponentTypes: make(map[string]bool),
		cache: &QueryDebuggerCache{
			lastArchetypeCount: -1,
		},
	}
}

func (qd *QueryDebuggerComponent) Name() string { return "ecs.debugui.QueryDebugger" }

func (qd *QueryDebuggerComponent) Update(app *ecs.App, dt float64) error {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil
	}

	w := app.World
	qd.rebuildCacheIfNeeded(w)

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		qd.selectedComponentTypes = make(map[string]bool)
	}

	for _, compType := range qd.cache.componentTypes {
		selected := qd.selectedComponentTypes[compType]
		if imgui.Checkbox(compType, &selected) {
			if selected {
				qd.selectedComponentTypes[compType] = true
			} else {
				delete(qd.selectedComponentTypes, compType)
			}
		}
	}

	imgui.Separator()

	nameToType := make(map[string]ecs.ComponentTypeID)
	for _, archetype := range w.Archetypes() {
		for _, t := range archetype.ComponentTypes() {
			nameToType[w.ComponentTypeName(t)] = t
		}
	}

	var selectedTypes []ecs.ComponentTypeID
	for typeName := range qd.selectedComponentTypes {
		if t, ok := nameToType[typeName]; ok {
			selectedTypes = append(selectedTypes, t)
		}
	}

	if len(selectedTypes) == 0 {
		imgui.Text("No component types selected")
		imgui.End()
		return nil
	}

	matching := qd.findMatchingArchetypes(w, selectedTypes)
	totalEntities := 0
	for _, arch := range matching {
		totalEntities += arch.Size()
	}

	imgui.Text(fmt.Sprintf("Matching Archetypes: %d", len(matching)))
	imgui.Text(fmt.Sprintf("Matching Entities: %d", totalEntities))

	if imgui.TreeNodeStr("Archetype Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryArchTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Archetype ID")
			imgui.TableSetupColumn("All Components")
			imgui.TableSetupColumn("Entity Count")
			imgui.TableHeadersRow()

			for _, arch := range matching {
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				imgui.Text(fmt.Sprintf("0x%X", uint64(arch.ID())))

				imgui.TableSetColumnIndex(1)
				names := make([]string, len(arch.ComponentTypes()))
				for i, t := range arch.ComponentTypes() {
					names[i] = w.ComponentTypeName(t)
				}
				imgui.Text(fmt.Sprintf("%v", names))

				imgui.TableSetColumnIndex(2)
				imgui.Text(fmt.Sprintf("%d", arch.Size()))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
	return nil
}

func (qd *QueryDebuggerComponent) rebuildCacheIfNeeded(w *ecs.World) {
	currentArchetypeCount := w.ArchetypeCount()
	if qd.cache.lastArchetypeCount != currentArchetypeCount {
		qd.cache.componentTypes = nil
		qd.cache.lastArchetypeCount = currentArchetypeCount
	}

	if qd.cache.componentTypes == nil {
		qd.rebuildCache(w)
	}
}

func (qd *QueryDebuggerComponent) rebuildCache(w *ecs.World) {
	seen := make(map[string]bool)

	for _, archetype := range w.Archetypes() {
		for _, t := range archetype.ComponentTypes() {
			seen[w.ComponentTypeName(t)] = true
		}
	}

	qd.cache.componentTypes = make([]string, 0, len(seen))
	for name := range seen {
		qd.cache.componentTypes = append(qd.cache.componentTypes, name)
	}

	sort.Strings(qd.cache.componentTypes)
}

func (qd *QueryDebuggerComponent) findMatchingArchetypes(w *ecs.World, required []ecs.ComponentTypeID) []*ecs.Archetype {
	var matching []*ecs.Archetype

	for _, archetype := range w.Archetypes() {
		if archetype.Matches(required) {
			matching = append(matching, archetype)
		}
	}

	return matching
}
