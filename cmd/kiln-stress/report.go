package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/kiln/ecs"
)

// Report collects the results of one stress run.
type Report struct {
	Duration   time.Duration
	Entities   int
	Prototypes int
	Churn      int

	TotalUpdates   int64
	FrameErrors    int64
	TotalTime      time.Duration
	UpdateTime     Stats
	StartStats     ecs.StateStats
	EndStats       ecs.StateStats
	Systems        []ecs.SystemStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

// Stats summarizes frame update durations.
type Stats struct {
	Min, Max, Avg time.Duration
	P50, P99      time.Duration
	Samples       []time.Duration
}

// Finalize computes the summary fields from Samples.
func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	sorted := slices.Clone(s.Samples)
	slices.Sort(sorted)

	var total time.Duration
	for _, sample := range sorted {
		total += sample
	}
	s.Min, s.Max = sorted[0], sorted[len(sorted)-1]
	s.Avg = total / time.Duration(len(sorted))
	s.P50 = sorted[(len(sorted)-1)*50/100]
	s.P99 = sorted[(len(sorted)-1)*99/100]
}

// UpdatesPerSecond is the achieved frame rate.
func (r *Report) UpdatesPerSecond() float64 {
	if r.TotalTime <= 0 {
		return 0
	}
	return float64(r.TotalUpdates) / r.TotalTime.Seconds()
}

const reportTemplate = `
# kiln stress run

{{.Entities}} entities over {{.Prototypes}} prototypes, {{.Churn}} instances replaced per frame, for {{.Duration}}.

## Frames

| updates | errors | per second | avg | p50 | p99 | min | max |
|---|---|---|---|---|---|---|---|
| {{.TotalUpdates}} | {{.FrameErrors}} | {{printf "%.1f" .UpdatesPerSecond}} | {{.UpdateTime.Avg}} | {{.UpdateTime.P50}} | {{.UpdateTime.P99}} | {{.UpdateTime.Min}} | {{.UpdateTime.Max}} |

## State

| | start | end |
|---|---|---|
| entities | {{.StartStats.EntityCount}} | {{.EndStats.EntityCount}} |
| visible | {{.StartStats.VisibleEntityCount}} | {{.EndStats.VisibleEntityCount}} |
| components | {{.StartStats.ComponentCount}} | {{.EndStats.ComponentCount}} |
| links | {{.StartStats.LinkCount}} | {{.EndStats.LinkCount}} |
{{range .EndStats.NativeTypes}}| visible {{.Name}} | | {{.VisibleCount}} |
{{end}}
## Systems

| system | runs | avg | max |
|---|---|---|---|
{{range .Systems}}| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{end}}
## Memory

| | start | end |
|---|---|---|
| heap alloc | {{mb .MemStatsStart.HeapAlloc}} MB | {{mb .MemStatsEnd.HeapAlloc}} MB |
| heap in use | {{mb .MemStatsStart.HeapInuse}} MB | {{mb .MemStatsEnd.HeapInuse}} MB |
| sys | {{mb .MemStatsStart.Sys}} MB | {{mb .MemStatsEnd.Sys}} MB |

Allocated during the run: {{mb (sub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}} MB in {{sub .MemStatsEnd.Mallocs .MemStatsStart.Mallocs}} objects, {{gcs .}} GC cycles.
{{if .GCPauseMetrics}}Total GC pause: {{ns .MemStatsEnd.PauseTotalNs}}.
{{end}}`

var reportFuncs = template.FuncMap{
	"mb": func(b uint64) string {
		return fmt.Sprintf("%.2f", float64(b)/(1<<20))
	},
	"sub": func(a, b uint64) uint64 {
		return a - b
	},
	"gcs": func(r *Report) uint32 {
		return r.MemStatsEnd.NumGC - r.MemStatsStart.NumGC
	},
	"ns": func(ns uint64) time.Duration {
		return time.Duration(ns)
	},
}

// Generate writes the report as markdown.
func (r *Report) Generate(w io.Writer) error {
	tmpl, err := template.New("report").Funcs(reportFuncs).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
