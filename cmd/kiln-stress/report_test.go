package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/plus3/kiln/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()

	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)
	assert.Equal(t, 2*time.Millisecond, s.P50)
	assert.Equal(t, 2*time.Millisecond, s.P99)
	assert.Equal(t, 3*time.Millisecond, s.Samples[0], "samples keep their order")

	empty := Stats{}
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestReportGenerate(t *testing.T) {
	state := ecs.NewState()
	protos := SpawnPrototypes(state, 6)
	for range 20 {
		SpawnRandomEntity(state, protos, 2)
	}

	scheduler := ecs.NewScheduler(state)
	scheduler.Register(&ChurnSystem{PerFrame: 10, Prototypes: protos})
	start := state.CollectStats()
	for range 5 {
		require.NoError(t, scheduler.Once(1.0/60.0))
	}

	report := &Report{
		Duration:   time.Second,
		Entities:   20,
		Prototypes: 6,
		Churn:      10,
		StartStats: start,
		EndStats:   state.CollectStats(),
		Systems:    scheduler.GetStats().Systems,
		UpdateTime: Stats{Samples: []time.Duration{time.Millisecond}},
	}
	report.UpdateTime.Finalize()

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))

	out := buf.String()
	assert.Contains(t, out, "20 entities over 6 prototypes")
	assert.Contains(t, out, "| ChurnSystem | 5 |")
	assert.Equal(t, start.EntityCount, report.EndStats.EntityCount, "churn never creates or destroys entities")
}
