// cmd/client/main.go
package main

import (
	"context"
	"flag"
	"os"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-magnus/pkg/config"
	"github.com/opd-ai/go-magnus/pkg/logging"
	engorender "github.com/opd-ai/go-magnus/pkg/render/engo"
)

func main() {
	ctx := context.Background()

	configPath := flag.String("config", "", "Path to configuration file (YAML or JSON)")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode")
	width := flag.Int("width", 1024, "Window width")
	height := flag.Int("height", 768, "Window height")
	flag.Parse()

	logger := logging.NewLogger()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err,
			"config_path", *configPath,
		)
		os.Exit(1)
	}

	logger = logging.NewLoggerWithOptions(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	engorender.SetupInputBindings(engorender.DefaultBindings())
	scene := engorender.NewSimulationScene(cfg, logger)

	opts := engo.RunOptions{
		Title:      "Go Magnus",
		Width:      *width,
		Height:     *height,
		Fullscreen: *fullscreen,
		VSync:      true,
	}

	logger.Info(ctx, "Starting windowed client",
		"width", *width,
		"height", *height,
		"follow", cfg.Scene.Follow,
	)
	engo.Run(opts, scene)
}
