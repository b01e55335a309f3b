package systems_test

import (
	"testing"

	"github.com/plus3/kiln/ecs"
	"github.com/plus3/kiln/systems"
	"github.com/stretchr/testify/assert"
)

func TestEntityPosition(t *testing.T) {
	f := newFixture(t)
	e := f.state.CreateEntity("", true)
	f.component(e, systems.PositionType, vec(1, 2))
	f.component(e, systems.PositionType, map[string]ecs.Data{"x": ecs.Number(3), "z": ecs.Number(1)})
	f.component(e, systems.MovementType, vec(100, 100))

	assert.Equal(t, systems.Vec{X: 4, Y: 2, Z: 1}, systems.EntityPosition(f.props, e))

	hidden := f.state.CreateEntity("", false)
	f.component(hidden, systems.PositionType, vec(1, 2))
	assert.Equal(t, systems.Vec{}, systems.EntityPosition(f.props, hidden))
	assert.Nil(t, systems.Components(f.state, 999, systems.PositionType))
}

func TestCamera(t *testing.T) {
	f := newFixture(t)

	t.Run("default", func(t *testing.T) {
		cam := systems.SelectCamera(f.props, nil)
		assert.Equal(t, systems.Camera{Zoom: systems.DefaultZoom}, cam)
	})

	low := f.state.CreateEntity("", true)
	f.component(low, systems.PositionType, vec(50, 50))
	f.component(low, systems.CameraType, map[string]ecs.Data{"priority": ecs.Number(10)})

	high := f.state.CreateEntity("", true)
	f.component(high, systems.PositionType, vec(4, -2))
	f.component(high, systems.CameraType, map[string]ecs.Data{"zoom": ecs.Number(10)})

	cam := systems.SelectCamera(f.props, f.state.VisibleNativeComponents(systems.CameraType))
	assert.Equal(t, systems.Camera{X: 4, Y: -2, Zoom: 10}, cam)

	sx, sy := cam.WorldToScreen(5, -1, 200, 100)
	assert.Equal(t, 110.0, sx)
	assert.Equal(t, 40.0, sy, "screen y grows downwards")

	wx, wy := cam.ScreenToWorld(sx, sy, 200, 100)
	assert.InDelta(t, 5.0, wx, 1e-9)
	assert.InDelta(t, -1.0, wy, 1e-9)
}
