package debugui

import (
	"fmt"
	"slices"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/kiln/ecs"
)

type QueryDebuggerCache struct {
	nativeTypes []string
	lastStats   ecs.StateStats
}

// QueryMatch is a component a native type query would return.
type QueryMatch struct {
	Type      string
	Owner     ecs.EntityId
	Component ecs.ComponentId
}

func NewQueryDebugger() *QueryDebugger {
	return &QueryDebugger{
		selectedTypes: make(map[string]bool),
		cache: &QueryDebuggerCache{
			lastStats: ecs.StateStats{ComponentCount: -1},
		},
	}
}

// MatchQueries lists what a query over each of the given native types returns, in type
// order.
func MatchQueries(state *ecs.State, types []string) []QueryMatch {
	var matches []QueryMatch
	for _, typename := range slices.Sorted(slices.Values(types)) {
		for owner, c := range ecs.NewQuery(state, typename).Iter2() {
			matches = append(matches, QueryMatch{Type: typename, Owner: owner, Component: c})
		}
	}
	return matches
}

// Render draws the debugger and returns the owner of the match clicked this frame, or 0.
func (qd *QueryDebugger) Render(state *ecs.State) ecs.EntityId {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return 0
	}

	qd.rebuildCacheIfNeeded(state)

	imgui.Text("Select Native Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		qd.selectedTypes = make(map[string]bool)
	}

	for _, typename := range qd.cache.nativeTypes {
		selected := qd.selectedTypes[typename]
		if imgui.Checkbox(typename, &selected) {
			if selected {
				qd.selectedTypes[typename] = true
			} else {
				delete(qd.selectedTypes, typename)
			}
		}
	}

	imgui.Separator()

	selected := make([]string, 0, len(qd.selectedTypes))
	for typename := range qd.selectedTypes {
		selected = append(selected, typename)
	}

	if len(selected) == 0 {
		imgui.Text("No native types selected")
		imgui.End()
		return 0
	}

	matches := MatchQueries(state, selected)
	imgui.Text(fmt.Sprintf("Matching Components: %d", len(matches)))

	var clicked ecs.EntityId
	if imgui.TreeNodeStr("Match Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryMatchTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Type")
			imgui.TableSetupColumn("Owner")
			imgui.TableSetupColumn("Component")
			imgui.TableHeadersRow()

			for _, match := range matches {
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				imgui.Text(match.Type)

				imgui.TableSetColumnIndex(1)
				label := fmt.Sprintf("%d##%d", match.Owner, match.Component)
				if imgui.SelectableBoolV(label, false, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
					clicked = match.Owner
				}

				imgui.TableSetColumnIndex(2)
				imgui.Text(fmt.Sprintf("#%d", match.Component))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
	return clicked
}

func (qd *QueryDebugger) rebuildCacheIfNeeded(state *ecs.State) {
	stats := state.CollectStats()
	if stats.ComponentCount != qd.cache.lastStats.ComponentCount ||
		stats.VisibleEntityCount != qd.cache.lastStats.VisibleEntityCount {
		qd.cache.nativeTypes = nil
		qd.cache.lastStats = stats
	}

	if qd.cache.nativeTypes == nil {
		qd.cache.nativeTypes = state.NativeTypes()
	}
}
