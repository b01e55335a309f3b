package systems

import (
	"github.com/kamstrup/intmap"
	"github.com/plus3/kiln/ecs"
	"github.com/plus3/kiln/ecs/props"
	"github.com/plus3/kiln/script"
	"go.uber.org/zap"
)

// InputEvent reports that an input element (a key or mouse button name) changed state.
type InputEvent struct {
	Element string
	Pressed bool
}

// InputSource provides the input collected since the previous frame.
type InputSource interface {
	Poll() []InputEvent
	// Cursor returns the pointer position in world coordinates.
	Cursor() (x, y float64, ok bool)
}

// InputSystem dispatches input to inputHandler and hoverHandler components.
//
// inputHandler {element, script, prototypeWhilePressed}: when element is pressed the script
// runs and the prototype is attached under the handler until the element is released.
// The script runs once per press, but the prototype follows only the last state reported
// for the element in a frame, so a press and release within one frame attach nothing.
//
// hoverHandler {scriptOnEnter, scriptOnLeave, prototypeWhileHovered}: reacts to the cursor
// entering or leaving the entity's clickBox {leftX, bottomY, rightX, topY}, relative to the
// entity position.
type InputSystem struct {
	Handlers   ecs.Query `ecs:"inputHandler"`
	ClickBoxes ecs.Query `ecs:"clickBox"`

	source  InputSource
	props   *props.Resolver
	scripts script.Runner
	log     *zap.Logger

	hovered ecs.EntityId
}

// handlerState is the last press state seen for an inputHandler during a frame.
type handlerState struct {
	owner   ecs.EntityId
	pressed bool
}

// NewInputSystem creates an input system reading from source. scripts may be nil.
func NewInputSystem(source InputSource, r *props.Resolver, scripts script.Runner, log *zap.Logger) *InputSystem {
	return &InputSystem{source: source, props: r, scripts: scripts, log: log}
}

// Hovered returns the entity under the cursor, or 0.
func (s *InputSystem) Hovered() ecs.EntityId {
	return s.hovered
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	events := s.source.Poll()
	if len(events) > 0 {
		changed := intmap.New[ecs.ComponentId, handlerState](len(events))
		for _, ev := range events {
			for owner, handler := range s.Handlers.Iter2() {
				if element, ok := s.props.String(handler, "element"); !ok || element != ev.Element {
					continue
				}
				if ev.Pressed {
					s.run(frame.State, handler, "script")
				}
				changed.Put(handler, handlerState{owner: owner, pressed: ev.Pressed})
			}
		}

		for handler, st := range changed.All() {
			if st.pressed {
				s.attach(frame, st.owner, handler, "prototypeWhilePressed")
			} else {
				s.detach(frame, handler)
			}
		}
	}

	hovered := s.hitTest(frame.State)
	if hovered == s.hovered {
		return
	}
	for _, h := range Components(frame.State, s.hovered, HoverHandlerType) {
		s.detach(frame, h)
		s.run(frame.State, h, "scriptOnLeave")
	}
	for _, h := range Components(frame.State, hovered, HoverHandlerType) {
		s.run(frame.State, h, "scriptOnEnter")
		s.attach(frame, hovered, h, "prototypeWhileHovered")
	}
	s.hovered = hovered
}

// hitTest returns the first entity whose click box contains the cursor.
func (s *InputSystem) hitTest(state *ecs.State) ecs.EntityId {
	x, y, ok := s.source.Cursor()
	if !ok {
		return 0
	}
	for owner, box := range s.ClickBoxes.Iter2() {
		pos := EntityPosition(s.props, owner)
		rect := Rect{
			Left:   s.props.NumberOr(box, "leftX", 0),
			Top:    s.props.NumberOr(box, "topY", 0),
			Right:  s.props.NumberOr(box, "rightX", 0),
			Bottom: s.props.NumberOr(box, "bottomY", 0),
		}
		if rect.Contains(x-pos.X, y-pos.Y) {
			return owner
		}
	}
	return 0
}

// run executes the script stored in field, if any. Failures are logged.
func (s *InputSystem) run(state *ecs.State, c ecs.ComponentId, field string) {
	raw, err := state.Get(c, field)
	if err != nil {
		return
	}
	code, ok := raw.AsString()
	if !ok {
		if code, ok = raw.AsScript(); !ok {
			return
		}
	}
	if s.scripts == nil {
		return
	}
	if _, err := s.scripts.Execute(state, c, code); err != nil {
		s.log.Warn("input script failed",
			zap.Uint64("component", uint64(c)),
			zap.String("field", field),
			zap.Error(err),
		)
	}
}

func (s *InputSystem) attach(frame *ecs.UpdateFrame, owner ecs.EntityId, handler ecs.ComponentId, field string) {
	proto, ok := s.props.Entity(handler, field)
	if !ok {
		return
	}
	if children, err := frame.State.ComponentChildren(handler); err != nil || len(children) > 0 {
		return
	}
	frame.Commands.Instantiate(owner, proto, handler, nil)
}

func (s *InputSystem) detach(frame *ecs.UpdateFrame, handler ecs.ComponentId) {
	children, err := frame.State.ComponentChildren(handler)
	if err != nil {
		return
	}
	for _, child := range children {
		frame.Commands.DestroyComponent(child)
	}
}
