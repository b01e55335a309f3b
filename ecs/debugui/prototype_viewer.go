package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/kiln/ecs"
)

type PrototypeInfo struct {
	ID             ecs.EntityId
	Name           string
	ComponentTypes []string
	InstanceCount  int
}

type PrototypeViewerCache struct {
	prototypes    []PrototypeInfo
	lastStats     ecs.StateStats
	sortColumn    int
	sortAscending bool
}

func NewPrototypeViewer() *PrototypeViewer {
	return &PrototypeViewer{
		cache: &PrototypeViewerCache{
			sortColumn:    3,
			sortAscending: false,
		},
	}
}

// CollectPrototypes describes every entity that other components are instantiated from,
// ordered by id.
func CollectPrototypes(state *ecs.State) []PrototypeInfo {
	var prototypes []PrototypeInfo
	for _, entity := range CollectEntities(state) {
		if entity.InstanceCount == 0 {
			continue
		}
		prototypes = append(prototypes, PrototypeInfo{
			ID:             entity.ID,
			Name:           entity.Name,
			ComponentTypes: entity.ComponentTypes,
			InstanceCount:  entity.InstanceCount,
		})
	}
	return prototypes
}

// Render draws the viewer and returns the prototype clicked this frame, or 0.
func (pv *PrototypeViewer) Render(state *ecs.State) ecs.EntityId {
	if !imgui.BeginV("Prototype Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return 0
	}

	pv.rebuildCacheIfNeeded(state)

	maxInstanceCount := 0
	for _, proto := range pv.cache.prototypes {
		maxInstanceCount = max(maxInstanceCount, proto.InstanceCount)
	}

	var clicked ecs.EntityId

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("PrototypeTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Instances")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			pv.cache.sortColumn = int(spec.ColumnIndex())
			pv.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			pv.sortPrototypes()
			sortSpecs.SetSpecsDirty(false)
		}

		for _, proto := range pv.cache.prototypes {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := pv.selectedProto == proto.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", proto.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				clicked = proto.ID
				pv.selectedProto = proto.ID
			}

			imgui.TableNextColumn()
			imgui.Text(proto.Name)

			imgui.TableNextColumn()
			imgui.Text(strings.Join(proto.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", proto.InstanceCount))

			if maxInstanceCount > 0 {
				barWidth := float32(proto.InstanceCount) / float32(maxInstanceCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
	return clicked
}

func (pv *PrototypeViewer) rebuildCacheIfNeeded(state *ecs.State) {
	stats := state.CollectStats()
	if stats.EntityCount != pv.cache.lastStats.EntityCount ||
		stats.ComponentCount != pv.cache.lastStats.ComponentCount {
		pv.cache.prototypes = nil
		pv.cache.lastStats = stats
	}

	if pv.cache.prototypes == nil {
		pv.cache.prototypes = CollectPrototypes(state)
		pv.sortPrototypes()
	}
}

func (pv *PrototypeViewer) sortPrototypes() {
	sort.SliceStable(pv.cache.prototypes, func(i, j int) bool {
		a, b := pv.cache.prototypes[i], pv.cache.prototypes[j]
		var less bool

		switch pv.cache.sortColumn {
		case 0:
			less = a.ID < b.ID
		case 1:
			less = a.Name < b.Name
		case 2:
			less = len(a.ComponentTypes) < len(b.ComponentTypes)
		default:
			less = a.InstanceCount < b.InstanceCount
		}

		if !pv.cache.sortAscending {
			return !less
		}
		return less
	})
}
