package systems_test

import (
	"testing"

	"github.com/plus3/kiln/ecs"
	"github.com/plus3/kiln/ecs/props"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	t     *testing.T
	state *ecs.State
	props *props.Resolver
}

func newFixture(t *testing.T) *fixture {
	state := ecs.NewState()
	return &fixture{t: t, state: state, props: props.New(state, nil)}
}

func (f *fixture) component(owner ecs.EntityId, typename string, data map[string]ecs.Data) ecs.ComponentId {
	f.t.Helper()
	c, err := f.state.CreateNativeComponent(owner, typename, data)
	require.NoError(f.t, err)
	return c
}

func (f *fixture) number(c ecs.ComponentId, field string) float64 {
	f.t.Helper()
	d, err := f.state.Get(c, field)
	require.NoError(f.t, err)
	v, ok := d.AsNumber()
	require.True(f.t, ok)
	return v
}

func vec(x, y float64) map[string]ecs.Data {
	return map[string]ecs.Data{"x": ecs.Number(x), "y": ecs.Number(y)}
}
