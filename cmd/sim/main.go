// cmd/sim/main.go
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/opd-ai/go-magnus/pkg/config"
	"github.com/opd-ai/go-magnus/pkg/engine"
	"github.com/opd-ai/go-magnus/pkg/input"
	"github.com/opd-ai/go-magnus/pkg/logging"
	"github.com/opd-ai/go-magnus/pkg/render"
)

func main() {
	ctx := context.Background()

	configPath := flag.String("config", "", "Path to configuration file (YAML or JSON)")
	createDefault := flag.Bool("default", false, "Write the default configuration to -config and exit")
	scriptPath := flag.String("script", "", "Path to a YAML input script")
	ticks := flag.Int("ticks", -1, "Number of ticks to run, 0 runs until interrupted (overrides config)")
	view := flag.Bool("view", false, "Draw a top-down view in the terminal")
	viewEvery := flag.Int("view-every", 6, "Ticks between terminal frames")
	viewScale := flag.Float64("view-scale", 0.5, "World units per terminal cell")
	flag.Parse()

	logger := logging.NewLogger()

	// Create default configuration file if requested
	if *createDefault {
		if *configPath == "" {
			*configPath = "magnus.yaml"
		}
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err,
			"config_path", *configPath,
		)
		os.Exit(1)
	}
	if *ticks >= 0 {
		cfg.Simulation.Ticks = *ticks
	}

	logger = logging.NewLoggerWithOptions(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	opts := []engine.Option{engine.WithLogger(logger)}

	var playback *input.Playback
	if *scriptPath != "" {
		script, err := input.LoadScript(*scriptPath)
		if err != nil {
			logger.Error(ctx, "Failed to load input script", err,
				"script_path", *scriptPath,
			)
			os.Exit(1)
		}
		playback = input.NewPlayback(script)
		opts = append(opts, engine.WithInput(playback))
	}

	var terminal *render.TerminalRenderer
	if *view {
		terminal = render.NewTerminalRenderer(80, 24, *viewScale)
		opts = append(opts, engine.WithGizmos(terminal))
	} else {
		opts = append(opts, engine.WithGizmos(render.NewLogGizmos(logger)))
	}

	sim, err := engine.NewSimulation(cfg, opts...)
	if err != nil {
		logger.Error(ctx, "Failed to create simulation", err)
		os.Exit(1)
	}

	if terminal != nil {
		sim.OnTick(func(s *engine.Simulation) {
			if *viewEvery > 0 && s.CurrentTick%uint64(*viewEvery) != 0 {
				return
			}
			drawFrame(s, terminal)
			if err := terminal.Present(); err != nil {
				logger.Error(ctx, "Failed to draw frame", err)
			}
			terminal.Clear()
		})
	}

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := sim.Run(runCtx, cfg.Simulation.Ticks); err != nil {
		logger.Error(ctx, "Simulation failed", err)
		os.Exit(1)
	}

	state := sim.GetState()
	for _, b := range state.Bodies {
		logger.Info(ctx, "final body state",
			"body", b.Name,
			"position", b.Position,
			"linear_velocity", b.LinearVelocity,
		)
	}
	if playback != nil && !playback.Done() {
		logger.Warn(ctx, "Input script not finished", "ticks", state.Tick)
	}
}

// drawFrame centers the view under the camera and plots every body
func drawFrame(s *engine.Simulation, r *render.TerminalRenderer) {
	if s.Scene.Camera != nil {
		r.SetCenter(s.Scene.Camera.Translation)
		r.RenderCamera(s.Scene.Camera.Translation)
	}
	for _, b := range s.Bodies.Bodies() {
		r.RenderBody(b)
	}
}
