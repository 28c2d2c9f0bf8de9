package debugui

import (
	"github.com/duskforge/ecs/ecs"
)

type EntityBrowserComponent struct {
	cache              *EntityBrowserCache
	selectedEntity     ecs.EntityHandle
	filterText         string
	filterArchetypeID  *ecs.ArchetypeID
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspectorComponent struct {
	selectedEntity ecs.EntityHandle
}

type ArchetypeViewerComponent struct {
	cache          *ArchetypeViewerCache
	selectedArchID *ecs.ArchetypeID
	sortColumn     int
	sortAscending  bool
}

type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

type QueryDebuggerComponent struct {
	selectedComponentTypes map[string]bool
	cache                  *QueryDebuggerCache
}
