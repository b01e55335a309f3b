package main

import (
	"context"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/kiln/display"
	"github.com/plus3/kiln/ecs"
	"github.com/plus3/kiln/ecs/debugui"
	debugui_ebiten "github.com/plus3/kiln/ecs/debugui/ebiten"
	"go.uber.org/zap"
)

// Game implements ebiten.Game. The logic scheduler runs on its own goroutine; rendering and
// the debug UI run on ebiten's. Every scheduler takes the shared state lock for a frame.
type Game struct {
	ctx    context.Context
	shared *ecs.Shared

	logic  *ecs.Scheduler
	render *ecs.Scheduler

	display *display.DisplaySystem
	input   *display.Input
	log     *zap.Logger

	// set when the debug UI is enabled
	backend *debugui_ebiten.ImguiBackend
	ui      *debugui.ImguiSystem
	debug   *ecs.Scheduler
}

func (g *Game) runLogic(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Second / 60
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now

			err := g.shared.Do(func(*ecs.State) error {
				return g.logic.Once(dt)
			})
			if err != nil {
				g.log.Warn("logic frame failed", zap.Error(err))
			}
		}
	}
}

func (g *Game) Update() error {
	if g.ctx.Err() != nil || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if g.ui != nil {
		capture := g.ui.InputState()
		g.input.SetCapture(capture.WantCaptureMouse, capture.WantCaptureKeyboard)
	}
	g.input.Update()

	if g.backend != nil {
		g.backend.BeginFrame()
		err := g.shared.Do(func(*ecs.State) error {
			return g.debug.Once(1.0 / float64(ebiten.TPS()))
		})
		g.backend.EndFrame()
		if err != nil {
			g.log.Warn("debug frame failed", zap.Error(err))
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.display.Screen = screen
	err := g.shared.Do(func(*ecs.State) error {
		return g.render.Once(0)
	})
	g.display.Screen = nil
	if err != nil {
		g.log.Warn("render frame failed", zap.Error(err))
	}

	if g.backend != nil {
		g.backend.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.backend != nil {
		g.backend.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
