package systems_test

import (
	"testing"
	"testing/fstest"

	"github.com/plus3/kiln/ecs"
	"github.com/plus3/kiln/loader"
	"github.com/plus3/kiln/resources"
	"github.com/plus3/kiln/systems"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMechanicsExternContent(t *testing.T) {
	f := newFixture(t)
	l := loader.New(resources.NewFSLoader(fstest.MapFS{
		"rooms/cellar.json": {Data: []byte(`[{"name": "rat"}, {"name": "barrel"}]`)},
	}))

	mechanics := systems.NewMechanicsSystem(l, f.props, zap.NewNop())
	scheduler := ecs.NewScheduler(f.state)
	scheduler.Register(mechanics)

	door := f.state.CreateEntity("door", true)
	extern := f.component(door, systems.ExternContentType, map[string]ecs.Data{"document": ecs.String("rooms/cellar")})
	broken := f.component(door, systems.ExternContentType, map[string]ecs.Data{"document": ecs.String("rooms/missing")})

	require.NoError(t, scheduler.Once(0.016))
	assert.Len(t, mechanics.Loaded(extern), 2)
	assert.Empty(t, mechanics.Loaded(broken))
	assert.Len(t, f.state.EntitiesByName("rooms/cellar/rat"), 1)

	require.NoError(t, scheduler.Once(0.016))
	assert.Len(t, f.state.EntitiesByName("rooms/cellar/rat"), 1, "documents load once")

	require.NoError(t, f.state.SetEntityVisible(door, false))
	require.NoError(t, scheduler.Once(0.016))

	assert.Empty(t, f.state.EntitiesByName("rooms/cellar/rat"))
	assert.Empty(t, f.state.EntitiesByName("rooms/cellar/barrel"))
	assert.Nil(t, mechanics.Loaded(extern))
}

func TestMechanicsUnloadsReferencedDocuments(t *testing.T) {
	f := newFixture(t)
	l := loader.New(resources.NewFSLoader(fstest.MapFS{
		"rooms/attic.json": {Data: []byte(`[{"name": "bat", "components": [{"type": {"entity": "creatures/flyer"}}]}]`)},
		"creatures.json":   {Data: []byte(`[{"name": "flyer", "visible": false}, {"name": "crawler", "visible": false}]`)},
	}))

	mechanics := systems.NewMechanicsSystem(l, f.props, zap.NewNop())
	scheduler := ecs.NewScheduler(f.state)
	scheduler.Register(mechanics)

	hatch := f.state.CreateEntity("hatch", true)
	extern := f.component(hatch, systems.ExternContentType, map[string]ecs.Data{"document": ecs.String("rooms/attic")})

	require.NoError(t, scheduler.Once(0.016))
	assert.Len(t, mechanics.Loaded(extern), 3)
	assert.Len(t, f.state.EntitiesByName("creatures/flyer"), 1)

	require.NoError(t, f.state.DestroyComponent(extern))
	require.NoError(t, scheduler.Once(0.016))

	assert.Equal(t, []ecs.EntityId{hatch}, f.state.Entities())
}
