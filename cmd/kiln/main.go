// Command kiln loads a game described by JSON or YAML documents and runs it in a window.
//
// The configuration file is read from $KILN_CONFIG, or kiln.toml in the working directory
// when it exists.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/kiln/config"
	"github.com/plus3/kiln/display"
	"github.com/plus3/kiln/ecs"
	"github.com/plus3/kiln/ecs/debugui"
	debugui_ebiten "github.com/plus3/kiln/ecs/debugui/ebiten"
	"github.com/plus3/kiln/ecs/props"
	"github.com/plus3/kiln/loader"
	"github.com/plus3/kiln/resources"
	"github.com/plus3/kiln/script"
	"github.com/plus3/kiln/systems"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

const defaultConfigPath = "kiln.toml"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	res, err := openResources(cfg.Game.Resources)
	if err != nil {
		return err
	}

	state := ecs.NewState()

	engine := script.NewEngine(log.Named("script"))
	defer engine.Close()

	resolver := props.New(state, engine)
	docs := loader.New(res, loader.WithLogger(log.Named("loader")))

	ids, err := docs.Load(cfg.Game.Main, state)
	if err != nil {
		return fmt.Errorf("load %s: %w", cfg.Game.Main, err)
	}
	log.Info("main document loaded",
		zap.String("document", cfg.Game.Main),
		zap.Int("entities", len(ids)),
		zap.Int("total_entities", len(state.Entities())),
	)

	input := display.NewInput()

	logic := ecs.NewScheduler(state)
	logic.Register(systems.NewInputSystem(input, resolver, engine, log.Named("input")))
	logic.Register(systems.NewPhysicsSystem(resolver, cfg.Physics, log.Named("physics")))
	logic.Register(systems.NewMechanicsSystem(docs, resolver, log.Named("mechanics")))

	screen := display.NewDisplaySystem(resolver, display.NewTextureCache(res, log.Named("textures")), input, log.Named("display"))
	render := ecs.NewScheduler(state)
	render.Register(screen)

	if err := screen.Preload(); err != nil {
		log.Warn("texture preload failed", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	game := &Game{
		ctx:     ctx,
		shared:  ecs.NewShared(state),
		logic:   logic,
		render:  render,
		display: screen,
		input:   input,
		log:     log,
	}

	if cfg.Debug.Imgui {
		game.backend = debugui_ebiten.NewImguiBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
		game.ui = &debugui.ImguiSystem{}
		game.debug = ecs.NewScheduler(state)
		game.debug.Register(game.ui)
		debugui.SpawnDebugUI(game.ui, map[string]*ecs.Scheduler{"logic": logic, "render": render})
	} else {
		ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
		ebiten.SetWindowTitle(cfg.Window.Title)
	}
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(cfg.Game.TicksPerSecond())

	g, ctx := errgroup.WithContext(ctx)
	game.ctx = ctx
	g.Go(func() error {
		return game.runLogic(ctx, cfg.Game.TickRate)
	})

	log.Info("starting game",
		zap.String("title", cfg.Window.Title),
		zap.Int("tps", cfg.Game.TicksPerSecond()),
		zap.Bool("imgui", cfg.Debug.Imgui),
	)

	runErr := ebiten.RunGame(game)
	cancel()
	if err := g.Wait(); err != nil {
		return err
	}
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		return runErr
	}

	log.Info("game stopped")
	return nil
}

func loadConfig() (*config.Config, error) {
	path, explicit := os.LookupEnv("KILN_CONFIG")
	if !explicit {
		path = defaultConfigPath
	}

	cfg, err := config.Load(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// openResources serves a directory, or a zip archive when path ends in .zip.
func openResources(path string) (resources.Loader, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".zip") {
		return resources.NewDirLoader(path), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resources: %w", err)
	}
	return resources.NewArchiveLoader(data)
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
