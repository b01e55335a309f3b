package debugui

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/AllenDang/cimgui-go/implot"
	"github.com/plus3/kiln/ecs"
)

// NewPerformanceStats creates the window. schedulers maps a display name to each scheduler
// whose system timings are shown.
func NewPerformanceStats(historyFrames int, schedulers map[string]*ecs.Scheduler) *PerformanceStats {
	return &PerformanceStats{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
		frameIndex:    0,
		schedulers:    schedulers,
		latency:       make(map[string][]float32),
	}
}

func (ps *PerformanceStats) Render(state *ecs.State, deltaTime float32) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ps.frameHistory[ps.frameIndex] = deltaTime * 1000.0
	ps.recordLatency()
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames

	stats := state.CollectStats()

	imgui.Text(fmt.Sprintf("Entities: %d (%d visible)", stats.EntityCount, stats.VisibleEntityCount))
	imgui.Text(fmt.Sprintf("Components: %d", stats.ComponentCount))
	imgui.Text(fmt.Sprintf("Links: %d", stats.LinkCount))

	var avgFrameTime float32
	for _, ft := range ps.frameHistory {
		avgFrameTime += ft
	}
	avgFrameTime /= float32(ps.historyFrames)

	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if imgui.TreeNodeStr("Native Types") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("NativeTypesTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Type")
			imgui.TableSetupColumn("Visible Components")
			imgui.TableHeadersRow()

			for _, native := range stats.NativeTypes {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(native.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", native.VisibleCount))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	for _, name := range slices.Sorted(maps.Keys(ps.schedulers)) {
		if imgui.TreeNodeStr(fmt.Sprintf("Systems (%s)", name)) {
			renderSchedulerStats(name, ps.schedulers[name].GetStats())
			imgui.TreePop()
		}
	}

	if len(ps.latency) > 0 && imgui.TreeNodeStr("System Latency") {
		ps.renderLatency()
		imgui.TreePop()
	}

	imgui.End()
}

// recordLatency stores the last duration of every system at the current history slot.
func (ps *PerformanceStats) recordLatency() {
	for name, scheduler := range ps.schedulers {
		for _, system := range scheduler.GetStats().Systems {
			key := name + "/" + system.Name
			history, ok := ps.latency[key]
			if !ok {
				history = make([]float32, ps.historyFrames)
				ps.latency[key] = history
			}
			history[ps.frameIndex] = float32(millis(system.LastDuration))
		}
	}
}

func (ps *PerformanceStats) renderLatency() {
	keys := slices.Sorted(maps.Keys(ps.latency))

	yMax := float32(1.0)
	for _, key := range keys {
		yMax = max(yMax, slices.Max(ps.latency[key]))
	}

	if !implot.BeginPlotV("System Performance", imgui.NewVec2(-1, 200), 0) {
		return
	}
	implot.SetupAxesV("Frame", "Time (ms)", 0, 0)
	implot.SetupAxisLimitsV(implot.AxisY1, 0, float64(yMax*1.1), implot.CondAlways)

	// oldest sample first
	samples := make([]float32, ps.historyFrames)
	for _, key := range keys {
		history := ps.latency[key]
		n := copy(samples, history[ps.frameIndex:])
		copy(samples[n:], history[:ps.frameIndex])
		implot.PlotLineFloatPtrInt(key, &samples[0], int32(len(samples)))
	}
	implot.EndPlot()
}

func renderSchedulerStats(name string, stats *ecs.SchedulerStats) {
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if !imgui.BeginTableV("SystemsTable##"+name, 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}

	imgui.TableSetupColumn("System")
	imgui.TableSetupColumn("Runs")
	imgui.TableSetupColumn("Last (ms)")
	imgui.TableSetupColumn("Avg (ms)")
	imgui.TableHeadersRow()

	for _, system := range stats.Systems {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		imgui.Text(system.Name)
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", system.ExecutionCount))
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%.3f", millis(system.LastDuration)))
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%.3f", millis(system.AvgDuration)))
	}

	imgui.EndTable()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
