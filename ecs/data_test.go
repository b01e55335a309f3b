package ecs_test

import (
	"testing"

	"github.com/plus3/kiln/ecs"
	"github.com/stretchr/testify/assert"
)

func TestDataAccessors(t *testing.T) {
	n, ok := ecs.Number(2.5).AsNumber()
	assert.True(t, ok)
	assert.Equal(t, 2.5, n)

	_, ok = ecs.String("2.5").AsNumber()
	assert.False(t, ok)

	name, ok := ecs.FromProperty("speed").AsFromProperty()
	assert.True(t, ok)
	assert.Equal(t, "speed", name)

	_, ok = ecs.FromProperty("speed").AsString()
	assert.False(t, ok)

	assert.True(t, ecs.Empty().IsEmpty())
	assert.Equal(t, ecs.KindEmpty, ecs.Data{}.Kind())
}

func TestDataEqual(t *testing.T) {
	tests := []struct {
		name  string
		a, b  ecs.Data
		equal bool
	}{
		{"numbers", ecs.Number(1), ecs.Number(1), true},
		{"different kinds", ecs.String("x"), ecs.Script("x"), false},
		{"lists", ecs.List(ecs.Number(1), ecs.Boolean(true)), ecs.List(ecs.Number(1), ecs.Boolean(true)), true},
		{"list lengths", ecs.List(ecs.Number(1)), ecs.List(), false},
		{"entities", ecs.Entity(3), ecs.Entity(4), false},
		{"empty", ecs.Empty(), ecs.Data{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, tt.a.Equal(tt.b))
		})
	}
}

func TestDataString(t *testing.T) {
	assert.Equal(t, `[1, "a", true, entity#2, property(p)]`,
		ecs.List(ecs.Number(1), ecs.String("a"), ecs.Boolean(true), ecs.Entity(2), ecs.FromProperty("p")).String())
}
