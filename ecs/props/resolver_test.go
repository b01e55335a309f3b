package props_test

import (
	"testing"

	"github.com/plus3/kiln/ecs"
	"github.com/plus3/kiln/ecs/props"
	"github.com/plus3/kiln/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

type fakeRunner struct {
	results map[string]lua.LValue
	calls   []ecs.ComponentId
}

func (f *fakeRunner) Execute(state *ecs.State, component ecs.ComponentId, code string) (lua.LValue, error) {
	f.calls = append(f.calls, component)
	return f.results[code], nil
}

func addProperty(t *testing.T, state *ecs.State, e ecs.EntityId, name string, value ecs.Data, priority ...float64) ecs.ComponentId {
	t.Helper()
	data := map[string]ecs.Data{"property": ecs.String(name), "value": value}
	if len(priority) > 0 {
		data["priority"] = ecs.Number(priority[0])
	}
	c, err := state.CreateNativeComponent(e, props.PropertyType, data)
	require.NoError(t, err)
	return c
}

func TestPropertyValue(t *testing.T) {
	state := ecs.NewState()
	e := state.CreateEntity("", true)
	resolver := props.New(state, nil)

	t.Run("missing property is empty", func(t *testing.T) {
		v, err := resolver.PropertyValue(e, "speed")
		require.NoError(t, err)
		assert.True(t, v.IsEmpty())
	})

	t.Run("highest priority wins", func(t *testing.T) {
		addProperty(t, state, e, "speed", ecs.Number(1), 10)
		addProperty(t, state, e, "speed", ecs.Number(2))
		addProperty(t, state, e, "speed", ecs.Number(3), 500)
		addProperty(t, state, e, "other", ecs.Number(9), 5000)

		v, err := resolver.PropertyValue(e, "speed")
		require.NoError(t, err)
		assert.Equal(t, ecs.Number(2), v, "the default priority is 1000")
	})

	t.Run("property of property is empty", func(t *testing.T) {
		addProperty(t, state, e, "alias", ecs.FromProperty("speed"))

		v, err := resolver.PropertyValue(e, "alias")
		require.NoError(t, err)
		assert.True(t, v.IsEmpty())
	})

	t.Run("invisible entities have no properties", func(t *testing.T) {
		hidden := state.CreateEntity("", false)
		addProperty(t, state, hidden, "speed", ecs.Number(1))

		v, err := resolver.PropertyValue(hidden, "speed")
		require.NoError(t, err)
		assert.True(t, v.IsEmpty())
	})

	t.Run("unknown entity", func(t *testing.T) {
		_, err := resolver.PropertyValue(999, "speed")
		assert.ErrorIs(t, err, ecs.ErrEntityNotFound)
	})
}

func TestGetAndResolve(t *testing.T) {
	state := ecs.NewState()
	e := state.CreateEntity("", true)
	addProperty(t, state, e, "speed", ecs.Number(4))

	movement, err := state.CreateNativeComponent(e, "movement", map[string]ecs.Data{
		"x":     ecs.FromProperty("speed"),
		"y":     ecs.Number(1),
		"z":     ecs.FromProperty("missing"),
		"label": ecs.Script("label"),
	})
	require.NoError(t, err)

	runner := &fakeRunner{results: map[string]lua.LValue{"label": lua.LString("fast")}}
	resolver := props.New(state, runner)

	x, err := resolver.GetAndResolve(movement, "x")
	require.NoError(t, err)
	assert.Equal(t, ecs.Number(4), x)

	y, err := resolver.GetAndResolve(movement, "y")
	require.NoError(t, err)
	assert.Equal(t, ecs.Number(1), y)

	z, err := resolver.GetAndResolve(movement, "z")
	require.NoError(t, err)
	assert.True(t, z.IsEmpty())

	label, err := resolver.GetAndResolve(movement, "label")
	require.NoError(t, err)
	assert.Equal(t, ecs.String("fast"), label)
	assert.Equal(t, []ecs.ComponentId{movement}, runner.calls)

	_, err = resolver.GetAndResolve(movement, "w")
	assert.ErrorIs(t, err, ecs.ErrFieldDoesNotExist)
}

func TestPropertyResolvesThroughInheritance(t *testing.T) {
	state := ecs.NewState()
	proto := state.CreateEntity("proto", false)
	addProperty(t, state, proto, "speed", ecs.Number(8))
	state.CreateNativeComponent(proto, "movement", map[string]ecs.Data{"x": ecs.FromProperty("speed")})

	e := state.CreateEntity("", true)
	_, err := state.CreateComponentFromEntity(e, proto, nil)
	require.NoError(t, err)

	resolver := props.New(state, nil)
	movements := state.VisibleNativeComponents("movement")
	require.Len(t, movements, 1)

	x, ok := resolver.Number(movements[0], "x")
	assert.True(t, ok)
	assert.Equal(t, 8.0, x)
}

func TestPropertyView(t *testing.T) {
	state := ecs.NewState()
	e := state.CreateEntity("", true)
	addProperty(t, state, e, "speed", ecs.Number(1))
	view, err := state.CreateNativeComponent(e, props.PropertyViewType, map[string]ecs.Data{
		"property": ecs.String("speed"),
		"script":   ecs.String("3 * 2"),
		"priority": ecs.Number(2000),
	})
	require.NoError(t, err)

	engine := script.NewEngine(zap.NewNop())
	defer engine.Close()

	resolver := props.New(state, engine)

	v, err := resolver.PropertyValue(e, "speed")
	require.NoError(t, err)
	assert.Equal(t, ecs.Number(6), v)

	t.Run("unsupported results fail", func(t *testing.T) {
		require.NoError(t, state.Set(view, "script", ecs.String("{}")))

		_, err := resolver.PropertyValue(e, "speed")
		assert.ErrorIs(t, err, props.ErrUnsupportedScriptValue)
	})
}

func TestTypedAccessors(t *testing.T) {
	state := ecs.NewState()
	e := state.CreateEntity("", true)
	c, err := state.CreateNativeComponent(e, "misc", map[string]ecs.Data{
		"n": ecs.Number(1.5),
		"s": ecs.String("text"),
		"b": ecs.Boolean(true),
		"e": ecs.Entity(e),
	})
	require.NoError(t, err)

	resolver := props.New(state, nil)

	n, ok := resolver.Number(c, "n")
	assert.True(t, ok)
	assert.Equal(t, 1.5, n)

	_, ok = resolver.Number(c, "s")
	assert.False(t, ok)

	_, ok = resolver.Number(c, "missing")
	assert.False(t, ok)

	s, ok := resolver.String(c, "s")
	assert.True(t, ok)
	assert.Equal(t, "text", s)

	b, ok := resolver.Boolean(c, "b")
	assert.True(t, ok)
	assert.True(t, b)

	ref, ok := resolver.Entity(c, "e")
	assert.True(t, ok)
	assert.Equal(t, e, ref)

	assert.Equal(t, 7.0, resolver.NumberOr(c, "missing", 7))
}
