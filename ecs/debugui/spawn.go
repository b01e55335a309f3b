package debugui

import "github.com/plus3/kiln/ecs"

// SpawnDebugUI adds the inspector windows to ui. Selecting an entity in the prototype viewer
// or the query debugger also selects it in the browser and the inspector.
func SpawnDebugUI(ui *ImguiSystem, schedulers map[string]*ecs.Scheduler) {
	browser := NewEntityBrowser(100)
	inspector := NewComponentInspector()
	prototypes := NewPrototypeViewer()
	perf := NewPerformanceStats(120, schedulers)
	queries := NewQueryDebugger()
	timer := NewFrameTimer()

	ui.Add(func(state *ecs.State) {
		perf.Render(state, timer.GetDeltaTime())
	})
	ui.Add(func(state *ecs.State) {
		if id := prototypes.Render(state); id != 0 {
			browser.Select(id)
		}
		if id := queries.Render(state); id != 0 {
			browser.Select(id)
		}
		browser.Render(state)
		inspector.Render(state, browser.GetSelectedEntity())
	})
}
