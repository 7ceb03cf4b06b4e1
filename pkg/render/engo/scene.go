package engo

import (
	"context"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-magnus/pkg/config"
	"github.com/opd-ai/go-magnus/pkg/engine"
	"github.com/opd-ai/go-magnus/pkg/logging"
	"github.com/opd-ai/go-magnus/pkg/render"
)

// SimulationScene runs the simulation inside the engo world. engo drives
// the ticks with its frame time.
type SimulationScene struct {
	config *config.Config
	logger *logging.Logger

	sim   *engine.Simulation
	input *Input
	view  *BodyView
}

// NewSimulationScene creates a scene for cfg
func NewSimulationScene(cfg *config.Config, logger *logging.Logger) *SimulationScene {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &SimulationScene{config: cfg, logger: logger}
}

// Type returns the scene type (required by Engo)
func (scene *SimulationScene) Type() string {
	return "SimulationScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *SimulationScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *SimulationScene) Setup(u engo.Updater) {
	world, ok := u.(*ecs.World)
	if !ok {
		panic("simulation scene requires an *ecs.World updater")
	}

	common.SetBackground(color.RGBA{20, 20, 30, 255})
	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)

	scene.input = NewInput(nil)
	sim, err := engine.NewSimulation(scene.config,
		engine.WithWorld(world),
		engine.WithInput(scene.input),
		engine.WithLogger(scene.logger),
		engine.WithGizmos(render.NewLogGizmos(scene.logger)),
	)
	if err != nil {
		panic("Failed to create simulation: " + err.Error())
	}
	scene.sim = sim

	scene.view = NewBodyView(renderSystem, sim.Bodies, sim.Scene.Camera, engo.GameWidth(), engo.GameHeight())
	world.AddSystem(scene.view)

	sim.Start(context.Background())
}

// Simulation returns the running simulation, nil before Setup
func (scene *SimulationScene) Simulation() *engine.Simulation {
	return scene.sim
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *SimulationScene) Exit() {
	if scene.sim != nil {
		scene.sim.Stop(context.Background())
	}
}
