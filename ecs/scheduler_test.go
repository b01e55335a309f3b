package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/kiln/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler(t *testing.T) {
	t.Run("system execution order and query initialization", func(t *testing.T) {
		state := ecs.NewState()
		scheduler := ecs.NewScheduler(state)

		movement := &MovementSystem{}
		counter := &CountingSystem{}

		scheduler.Register(movement)
		scheduler.Register(counter)

		assert.Equal(t, "position", movement.Positions.Typename())
		assert.Equal(t, "movement", movement.Movements.Typename())

		_, position := newMovingEntity(state, 0, 2)
		state.CreateNativeComponent(state.CreateEntity("", true), "position", nil)

		require.NoError(t, scheduler.Once(1.0))
		require.NoError(t, scheduler.Once(0.5))

		assert.Equal(t, 2, movement.ExecuteCount)
		assert.Equal(t, 2, counter.ExecuteCount)
		assert.Equal(t, 2, counter.Seen)
		assert.Equal(t, 3.0, numberField(state, position, "x"))
	})

	t.Run("stats", func(t *testing.T) {
		scheduler := ecs.NewScheduler(ecs.NewState())
		scheduler.Register(&CountingSystem{})

		for range 3 {
			require.NoError(t, scheduler.Once(0.016))
		}

		stats := scheduler.GetStats()
		assert.Equal(t, 1, stats.SystemCount)
		assert.Equal(t, int64(3), stats.TotalExecutions)
		require.Len(t, stats.Systems, 1)
		assert.Equal(t, "CountingSystem", stats.Systems[0].Name)
		assert.Equal(t, int64(3), stats.Systems[0].ExecutionCount)
		assert.LessOrEqual(t, stats.Systems[0].MinDuration, stats.Systems[0].MaxDuration)
	})

	t.Run("missing tag panics", func(t *testing.T) {
		scheduler := ecs.NewScheduler(ecs.NewState())
		assert.Panics(t, func() {
			scheduler.Register(&untaggedSystem{})
		})
	})

	t.Run("flush errors are returned", func(t *testing.T) {
		scheduler := ecs.NewScheduler(ecs.NewState())
		scheduler.Register(&badWriteSystem{})

		assert.ErrorIs(t, scheduler.Once(0.016), ecs.ErrComponentNotFound)
	})

	t.Run("run until cancelled", func(t *testing.T) {
		state := ecs.NewState()
		scheduler := ecs.NewScheduler(state)
		counter := &CountingSystem{}
		scheduler.Register(counter)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		require.NoError(t, scheduler.Run(ctx, 5*time.Millisecond))
		assert.Greater(t, counter.ExecuteCount, 0)
	})
}

type untaggedSystem struct {
	Positions ecs.Query
}

func (s *untaggedSystem) Execute(frame *ecs.UpdateFrame) {}

type badWriteSystem struct{}

func (s *badWriteSystem) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.Set(12345, "x", ecs.Number(1))
}
