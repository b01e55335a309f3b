package debugui

import (
	"fmt"
	"maps"
	"slices"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/kiln/ecs"
)

func NewComponentInspector() *ComponentInspector {
	return &ComponentInspector{}
}

func (ci *ComponentInspector) Render(state *ecs.State, selectedEntityId ecs.EntityId) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ci.selectedEntityId = selectedEntityId

	if ci.selectedEntityId == 0 {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	if !state.HasEntity(ci.selectedEntityId) {
		imgui.Text(fmt.Sprintf("Entity %d not found", ci.selectedEntityId))
		imgui.End()
		return
	}

	name, _ := state.EntityName(ci.selectedEntityId)
	imgui.Text(fmt.Sprintf("Entity ID: %d", ci.selectedEntityId))
	imgui.Text(fmt.Sprintf("Name: %s", name))

	visible, _ := state.IsEntityVisible(ci.selectedEntityId)
	if imgui.Checkbox("Visible", &visible) {
		_ = state.SetEntityVisible(ci.selectedEntityId, visible)
	}

	if params, _ := state.DefaultParameters(ci.selectedEntityId); len(params) > 0 {
		if imgui.TreeNodeStr("Default Parameters") {
			for _, key := range slices.Sorted(maps.Keys(params)) {
				imgui.BulletText(fmt.Sprintf("%s: %s", key, params[key]))
			}
			imgui.TreePop()
		}
	}
	imgui.Separator()

	components, _ := state.EntityComponents(ci.selectedEntityId)
	for _, c := range components {
		// children are rendered below their parent
		if parent, ok, _ := state.ComponentParent(c); ok {
			if owner, err := state.Owner(parent); err == nil && owner == ci.selectedEntityId {
				continue
			}
		}
		ci.renderComponent(state, c)
	}

	imgui.End()
}

func (ci *ComponentInspector) renderComponent(state *ecs.State, c ecs.ComponentId) {
	typ, err := state.Type(c)
	if err != nil {
		return
	}

	label := fmt.Sprintf("#%d %s", c, typ)
	if target, isLink, _ := state.LinkTarget(c); isLink {
		label += fmt.Sprintf(" -> #%d", target)
	}

	if !imgui.TreeNodeStr(label) {
		return
	}

	fields, _ := state.Fields(c)
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		ci.renderField(state, c, name, fields[name])
	}

	children, _ := state.ComponentChildren(c)
	for _, child := range children {
		ci.renderComponent(state, child)
	}

	imgui.TreePop()
}

func (ci *ComponentInspector) renderField(state *ecs.State, c ecs.ComponentId, name string, value ecs.Data) {
	id := fmt.Sprintf("##%d.%s", c, name)

	switch value.Kind() {
	case ecs.KindNumber:
		n, _ := value.AsNumber()
		v := float32(n)
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(id, &v) {
			_ = state.Set(c, name, ecs.Number(float64(v)))
		}

	case ecs.KindBoolean:
		v, _ := value.AsBoolean()
		if imgui.Checkbox(fmt.Sprintf("%s%s", name, id), &v) {
			_ = state.Set(c, name, ecs.Boolean(v))
		}

	case ecs.KindString:
		v, _ := value.AsString()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(id, "", &v, imgui.InputTextFlagsNone, nil) {
			_ = state.Set(c, name, ecs.String(v))
		}

	case ecs.KindList:
		items, _ := value.AsList()
		if imgui.TreeNodeStr(fmt.Sprintf("%s: [%d items]%s", name, len(items), id)) {
			for i, item := range items {
				imgui.BulletText(fmt.Sprintf("%d: %s", i, item))
			}
			imgui.TreePop()
		}

	default:
		imgui.Text(fmt.Sprintf("%s: %s", name, value))
	}
}
