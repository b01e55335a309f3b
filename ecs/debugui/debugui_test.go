package debugui_test

import (
	"testing"

	"github.com/plus3/kiln/ecs"
	"github.com/plus3/kiln/ecs/debugui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDebugState(t *testing.T) (*ecs.State, ecs.EntityId, ecs.EntityId) {
	t.Helper()

	state := ecs.NewState()
	button := state.CreateEntity("ui/button", false)
	_, err := state.CreateNativeComponent(button, "clickBox", nil)
	require.NoError(t, err)

	hero := state.CreateEntity("main/hero", true)
	_, err = state.CreateNativeComponent(hero, "position", nil)
	require.NoError(t, err)
	_, err = state.CreateComponentFromEntity(hero, button, nil)
	require.NoError(t, err)

	return state, button, hero
}

func TestCollectEntities(t *testing.T) {
	state, button, hero := newDebugState(t)

	entities := debugui.CollectEntities(state)
	require.Len(t, entities, 2)

	assert.Equal(t, debugui.EntityInfo{
		ID:             button,
		Name:           "ui/button",
		Visible:        false,
		ComponentTypes: []string{"clickBox"},
		InstanceCount:  1,
	}, entities[0])

	assert.Equal(t, hero, entities[1].ID)
	assert.True(t, entities[1].Visible)
	assert.Equal(t, []string{"position", "entity#1", "clickBox"}, entities[1].ComponentTypes)
}

func TestFilterEntities(t *testing.T) {
	state, button, hero := newDebugState(t)
	entities := debugui.CollectEntities(state)

	tests := []struct {
		filter string
		want   []ecs.EntityId
	}{
		{"", []ecs.EntityId{button, hero}},
		{"HERO", []ecs.EntityId{hero}},
		{"clickbox", []ecs.EntityId{button, hero}},
		{"position", []ecs.EntityId{hero}},
		{"nothing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			var got []ecs.EntityId
			for _, e := range debugui.FilterEntities(entities, tt.filter) {
				got = append(got, e.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCollectPrototypes(t *testing.T) {
	state, button, _ := newDebugState(t)

	prototypes := debugui.CollectPrototypes(state)
	require.Len(t, prototypes, 1)
	assert.Equal(t, button, prototypes[0].ID)
	assert.Equal(t, 1, prototypes[0].InstanceCount)
}

func TestMatchQueries(t *testing.T) {
	state, _, hero := newDebugState(t)

	matches := debugui.MatchQueries(state, []string{"position", "clickBox"})
	require.Len(t, matches, 2)

	assert.Equal(t, "clickBox", matches[0].Type)
	assert.Equal(t, hero, matches[0].Owner, "only visible owners match")
	assert.Equal(t, "position", matches[1].Type)

	assert.Empty(t, debugui.MatchQueries(state, []string{"missing"}))
}
