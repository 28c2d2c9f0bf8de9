package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/duskforge/ecs/ecs"
)

func NewPerformanceStatsComponent(historyFrames int) PerformanceStatsComponent {
	return PerformanceStatsComponent{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
		frameIndex:    0,
	}
}

func (ps *PerformanceStatsComponent) Name() string { return "ecs.debugui.PerformanceStats" }

func (ps *PerformanceStatsComponent) Update(app *ecs.App, dt float64) error {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil
	}

	ps.frameHistory[ps.frameIndex] = float32(dt) * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames

	imgui.Text(fmt.Sprintf("Total Entities: %d", app.World.EntityCount()))
	imgui.Text(fmt.Sprintf("Archetypes: %d", app.World.ArchetypeCount()))

	var avgFrameTime float32
	for _, ft := range ps.frameHistory {
		avgFrameTime += ft
	}
	avgFrameTime /= float32(ps.historyFrames)

	fps := float32(0)
	if avgFrameTime > 0 {
		fps = 1000.0 / avgFrameTime
	}
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, fps))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if imgui.TreeNodeStr("Archetype Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ArchStatsTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Archetype ID")
			imgui.TableSetupColumn("Components")
			imgui.TableSetupColumn("Entity Count")
			imgui.TableHeadersRow()

			for _, arch := range app.World.Archetypes() {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("0x%X", uint64(arch.ID())))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", len(arch.ComponentTypes())))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", arch.Size()))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("System Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Calls")
			imgui.TableSetupColumn("Errors")
			imgui.TableSetupColumn("Total Time")
			imgui.TableHeadersRow()

			for _, name := range app.Scheduler.SystemNames() {
				stats, ok := app.Scheduler.Stats(name)
				if !ok {
					continue
				}
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", stats.CallCount))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", stats.ErrorCount))
				imgui.TableNextColumn()
				imgui.Text(stats.TotalTime.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
	return nil
}
