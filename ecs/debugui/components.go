package debugui

import (
	"github.com/plus3/kiln/ecs"
)

type EntityBrowser struct {
	cache              *EntityBrowserCache
	selectedEntityId   ecs.EntityId
	filterText         string
	hiddenOnly         bool
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspector struct {
	selectedEntityId ecs.EntityId
	selectedField    string
}

type PrototypeViewer struct {
	cache         *PrototypeViewerCache
	selectedProto ecs.EntityId
}

type PerformanceStats struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
	schedulers    map[string]*ecs.Scheduler
	latency       map[string][]float32
}

type QueryDebugger struct {
	selectedTypes map[string]bool
	cache         *QueryDebuggerCache
}
