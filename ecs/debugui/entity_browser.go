package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/kiln/ecs"
)

type EntityInfo struct {
	ID             ecs.EntityId
	Name           string
	Visible        bool
	ComponentTypes []string
	InstanceCount  int
}

type EntityBrowserCache struct {
	entities      []EntityInfo
	lastStats     ecs.StateStats
	sortColumn    int
	sortAscending bool
}

func NewEntityBrowser(maxEntitiesPerPage int) *EntityBrowser {
	return &EntityBrowser{
		cache: &EntityBrowserCache{
			sortColumn:    0,
			sortAscending: true,
		},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

// CollectEntities describes every entity of the state, ordered by id.
func CollectEntities(state *ecs.State) []EntityInfo {
	ids := state.Entities()
	entities := make([]EntityInfo, 0, len(ids))

	for _, id := range ids {
		name, _ := state.EntityName(id)
		visible, _ := state.IsEntityVisible(id)
		components, _ := state.EntityComponents(id)
		instances, _ := state.ComponentsOfType(id)

		types := make([]string, 0, len(components))
		for _, c := range components {
			if typ, err := state.Type(c); err == nil {
				types = append(types, typ.String())
			}
		}

		entities = append(entities, EntityInfo{
			ID:             id,
			Name:           name,
			Visible:        visible,
			ComponentTypes: types,
			InstanceCount:  len(instances),
		})
	}
	return entities
}

// FilterEntities keeps the entities whose id, name or component types contain text,
// ignoring case.
func FilterEntities(entities []EntityInfo, text string) []EntityInfo {
	if text == "" {
		return entities
	}

	filtered := make([]EntityInfo, 0, len(entities))
	filterLower := strings.ToLower(text)

	for _, entity := range entities {
		idStr := fmt.Sprintf("%d", entity.ID)
		nameStr := strings.ToLower(entity.Name)
		componentsStr := strings.ToLower(strings.Join(entity.ComponentTypes, " "))

		if strings.Contains(idStr, filterLower) ||
			strings.Contains(nameStr, filterLower) ||
			strings.Contains(componentsStr, filterLower) {
			filtered = append(filtered, entity)
		}
	}
	return filtered
}

func (eb *EntityBrowser) Render(state *ecs.State) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.rebuildCacheIfNeeded(state)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.hiddenOnly = false
	}
	imgui.SameLine()
	imgui.Checkbox("Hidden only", &eb.hiddenOnly)

	filteredEntities := eb.getFilteredEntities()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Visible")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Instances")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.cache.sortColumn = int(spec.ColumnIndex())
			eb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			eb.sortEntities()
			sortSpecs.SetSpecsDirty(false)
			filteredEntities = eb.getFilteredEntities()
		}

		startIdx := min(eb.currentPage*eb.maxEntitiesPerPage, len(filteredEntities))
		endIdx := min(startIdx+eb.maxEntitiesPerPage, len(filteredEntities))

		for _, entity := range filteredEntities[startIdx:endIdx] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selectedEntityId == entity.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntityId = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(entity.Name)

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%t", entity.Visible))

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entity.InstanceCount))
		}

		imgui.EndTable()
	}

	if len(filteredEntities) > eb.maxEntitiesPerPage {
		totalPages := (len(filteredEntities) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filteredEntities)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		eb.currentPage = 0
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filteredEntities)))
	}

	imgui.End()
}

func (eb *EntityBrowser) rebuildCacheIfNeeded(state *ecs.State) {
	stats := state.CollectStats()
	if stats.EntityCount != eb.cache.lastStats.EntityCount ||
		stats.ComponentCount != eb.cache.lastStats.ComponentCount ||
		stats.VisibleEntityCount != eb.cache.lastStats.VisibleEntityCount {
		eb.cache.entities = nil
		eb.cache.lastStats = stats
	}

	if eb.cache.entities == nil {
		eb.cache.entities = CollectEntities(state)
		eb.sortEntities()
	}
}

func (eb *EntityBrowser) sortEntities() {
	sort.SliceStable(eb.cache.entities, func(i, j int) bool {
		a, b := eb.cache.entities[i], eb.cache.entities[j]
		var less bool

		switch eb.cache.sortColumn {
		case 1:
			less = a.Name < b.Name
		case 2:
			less = !a.Visible && b.Visible
		case 3:
			less = len(a.ComponentTypes) < len(b.ComponentTypes)
		case 4:
			less = a.InstanceCount < b.InstanceCount
		default:
			less = a.ID < b.ID
		}

		if !eb.cache.sortAscending {
			return !less
		}
		return less
	})
}

func (eb *EntityBrowser) getFilteredEntities() []EntityInfo {
	filtered := FilterEntities(eb.cache.entities, eb.filterText)
	if !eb.hiddenOnly {
		return filtered
	}

	hidden := make([]EntityInfo, 0, len(filtered))
	for _, entity := range filtered {
		if !entity.Visible {
			hidden = append(hidden, entity)
		}
	}
	return hidden
}

func (eb *EntityBrowser) GetSelectedEntity() ecs.EntityId {
	return eb.selectedEntityId
}

// Select changes the selected entity, for example from another window.
func (eb *EntityBrowser) Select(id ecs.EntityId) {
	eb.selectedEntityId = id
}
