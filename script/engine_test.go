package script_test

import (
	"fmt"
	"testing"

	"github.com/plus3/kiln/ecs"
	"github.com/plus3/kiln/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

func newEngine(t *testing.T) *script.Engine {
	t.Helper()
	engine := script.NewEngine(zap.NewNop())
	t.Cleanup(engine.Close)
	return engine
}

func TestEngineExpressions(t *testing.T) {
	engine := newEngine(t)
	state := ecs.NewState()
	e := state.CreateEntity("hero", true)
	c, err := state.CreateNativeComponent(e, "stats", map[string]ecs.Data{"hp": ecs.Number(10)})
	require.NoError(t, err)

	tests := []struct {
		code string
		want lua.LValue
	}{
		{"1 + 2", lua.LNumber(3)},
		{"get('hp') * 2", lua.LNumber(20)},
		{"'a' .. 'b'", lua.LString("ab")},
		{"get('hp') > 5", lua.LTrue},
		{"local x = get('hp')\nreturn x - 1", lua.LNumber(9)},
		{"entity_name(owner)", lua.LString("hero")},
		{"component", lua.LNumber(c)},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := engine.Execute(state, c, tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngineSet(t *testing.T) {
	engine := newEngine(t)
	state := ecs.NewState()
	e := state.CreateEntity("", true)
	c, _ := state.CreateNativeComponent(e, "stats", map[string]ecs.Data{"hp": ecs.Number(10)})
	other, _ := state.CreateNativeComponent(e, "label", nil)

	result, err := engine.Execute(state, c, fmt.Sprintf("set('hp', get('hp') - 3)\nset('text', 'hurt', %d)", other))
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, result)

	hp, _ := state.Get(c, "hp")
	assert.Equal(t, ecs.Number(7), hp)

	text, _ := state.Get(other, "text")
	assert.Equal(t, ecs.String("hurt"), text)
}

func TestEngineErrors(t *testing.T) {
	engine := newEngine(t)
	state := ecs.NewState()
	e := state.CreateEntity("", true)
	c, _ := state.CreateNativeComponent(e, "stats", nil)

	_, err := engine.Execute(state, c, "get('missing')")
	assert.ErrorContains(t, err, "does not exist")

	_, err = engine.Execute(state, c, "this is not lua")
	assert.ErrorContains(t, err, "compile script")

	_, err = engine.Execute(state, 999, "1")
	assert.ErrorIs(t, err, ecs.ErrComponentNotFound)

	// the engine remains usable after a failure
	v, err := engine.Execute(state, c, "2")
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(2), v)
}

func TestConvert(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	list := ecs.List(ecs.Number(1), ecs.String("two"), ecs.Boolean(true))
	back, ok := script.ToData(script.FromData(L, list))
	require.True(t, ok)
	assert.True(t, list.Equal(back))

	_, ok = script.ToData(L.NewFunction(func(*lua.LState) int { return 0 }))
	assert.False(t, ok)

	empty, ok := script.ToData(lua.LNil)
	assert.True(t, ok)
	assert.True(t, empty.IsEmpty())
}
