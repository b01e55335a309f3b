package display

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/kiln/systems"
)

var mouseButtons = []struct {
	button ebiten.MouseButton
	name   string
}{
	{ebiten.MouseButtonLeft, "MouseLeft"},
	{ebiten.MouseButtonRight, "MouseRight"},
	{ebiten.MouseButtonMiddle, "MouseMiddle"},
}

// Input collects ebiten keyboard and mouse state on the game goroutine and hands it to the
// input system, which may run elsewhere. Keys are named after ebiten.Key.String ("Space",
// "A", "ArrowLeft"); mouse buttons are "MouseLeft", "MouseRight" and "MouseMiddle".
type Input struct {
	mu sync.Mutex

	events []systems.InputEvent
	keys   []ebiten.Key

	screenX, screenY float64
	hasCursor        bool

	cam           systems.Camera
	width, height int

	captureMouse, captureKeyboard bool
}

var _ systems.InputSource = (*Input)(nil)

// NewInput creates an Input with the default camera until SetView is called.
func NewInput() *Input {
	return &Input{cam: systems.Camera{Zoom: systems.DefaultZoom}}
}

// Update records the input of the current tick. Call it from ebiten.Game.Update.
func (in *Input) Update() {
	in.mu.Lock()
	defer in.mu.Unlock()

	if !in.captureKeyboard {
		in.keys = inpututil.AppendJustPressedKeys(in.keys[:0])
		for _, k := range in.keys {
			in.events = append(in.events, systems.InputEvent{Element: k.String(), Pressed: true})
		}
		in.keys = inpututil.AppendJustReleasedKeys(in.keys[:0])
		for _, k := range in.keys {
			in.events = append(in.events, systems.InputEvent{Element: k.String(), Pressed: false})
		}
	}

	if !in.captureMouse {
		for _, b := range mouseButtons {
			if inpututil.IsMouseButtonJustPressed(b.button) {
				in.events = append(in.events, systems.InputEvent{Element: b.name, Pressed: true})
			}
			if inpututil.IsMouseButtonJustReleased(b.button) {
				in.events = append(in.events, systems.InputEvent{Element: b.name, Pressed: false})
			}
		}
	}

	x, y := ebiten.CursorPosition()
	in.screenX, in.screenY = float64(x), float64(y)
	in.hasCursor = !in.captureMouse && in.width > 0 && in.height > 0
}

// SetCapture stops forwarding mouse or keyboard input, for example while a debug window
// has focus.
func (in *Input) SetCapture(mouse, keyboard bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.captureMouse, in.captureKeyboard = mouse, keyboard
}

// SetView sets the camera and screen size used to map the cursor to world coordinates.
func (in *Input) SetView(cam systems.Camera, width, height int) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.cam, in.width, in.height = cam, width, height
}

// Poll returns and clears the events recorded since the previous call.
func (in *Input) Poll() []systems.InputEvent {
	in.mu.Lock()
	defer in.mu.Unlock()
	events := in.events
	in.events = nil
	return events
}

// Cursor returns the cursor in world coordinates. ok is false while the mouse is captured
// or before the first SetView.
func (in *Input) Cursor() (float64, float64, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if !in.hasCursor {
		return 0, 0, false
	}
	x, y := in.cam.ScreenToWorld(in.screenX, in.screenY, in.width, in.height)
	return x, y, true
}
