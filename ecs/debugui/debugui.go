// Package debugui provides immediate-mode GUI integration for kiln applications using Dear ImGui.
// It renders inspector windows over an ecs.State and tracks ImGui's input capture.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/kiln/ecs"
)

// Item renders ImGui widgets for one frame.
type Item func(state *ecs.State)

// ImguiInputState tracks Dear ImGui's input capture state.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem defers the render function of every registered item to the end of the frame.
// It also refreshes the ImguiInputState with the current input capture state.
type ImguiSystem struct {
	items []Item
	input ImguiInputState
}

// Add registers an item rendered every frame.
func (i *ImguiSystem) Add(item Item) {
	i.items = append(i.items, item)
}

// InputState returns the capture state observed during the last frame.
func (i *ImguiSystem) InputState() ImguiInputState {
	return i.input
}

// Execute updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	io := imgui.CurrentIO()
	i.input.WantCaptureMouse = io.WantCaptureMouse()
	i.input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	state := frame.State
	for _, item := range i.items {
		frame.Commands.Defer(func() { item(state) })
	}
}
