// pkg/engine/simulation.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/EngoEngine/ecs"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/opd-ai/go-magnus/pkg/camera"
	"github.com/opd-ai/go-magnus/pkg/config"
	"github.com/opd-ai/go-magnus/pkg/control"
	"github.com/opd-ai/go-magnus/pkg/entity"
	"github.com/opd-ai/go-magnus/pkg/event"
	"github.com/opd-ai/go-magnus/pkg/follow"
	"github.com/opd-ai/go-magnus/pkg/input"
	"github.com/opd-ai/go-magnus/pkg/lift"
	"github.com/opd-ai/go-magnus/pkg/logging"
	"github.com/opd-ai/go-magnus/pkg/physics"
	"github.com/opd-ai/go-magnus/pkg/render"
)

// Status is the lifecycle state of a simulation
type Status int

const (
	StatusWaiting Status = iota
	StatusRunning
	StatusStopped
)

// TickHook runs after every tick driven by Run
type TickHook func(s *Simulation)

// Simulation owns the entity world, the physics world and the follow
// registry, and advances them one tick at a time.
type Simulation struct {
	Config   *config.Config
	World    *ecs.World
	Bodies   *physics.World
	Registry *follow.Registry
	EventBus *event.Bus
	Input    input.Source
	Gizmos   render.Gizmos
	Logger   *logging.Logger
	Scene    *Scene

	Status      Status
	RunID       string
	TimeStep    float64 // Seconds per tick
	CurrentTick uint64
	StartTime   time.Time

	// TickLock serializes ticks against snapshot readers
	TickLock sync.Mutex

	hooks        []TickHook
	ticks        metric.Int64Counter
	tickDuration metric.Float64Histogram
}

// Option customizes a Simulation before its systems are installed
type Option func(*Simulation)

// WithInput sets the input source, the default is input.None
func WithInput(src input.Source) Option {
	return func(s *Simulation) { s.Input = src }
}

// WithGizmos sets the debug arrow sink; ignored when debug gizmos are disabled
func WithGizmos(g render.Gizmos) Option {
	return func(s *Simulation) { s.Gizmos = g }
}

// WithLogger sets the logger
func WithLogger(l *logging.Logger) Option {
	return func(s *Simulation) { s.Logger = l }
}

// WithEventBus shares an existing event bus
func WithEventBus(b *event.Bus) Option {
	return func(s *Simulation) { s.EventBus = b }
}

// WithWorld installs into an existing ecs world, such as the one a windowed scene owns
func WithWorld(w *ecs.World) Option {
	return func(s *Simulation) { s.World = w }
}

// WithRunID fixes the run ID instead of generating one
func WithRunID(id string) Option {
	return func(s *Simulation) { s.RunID = id }
}

// NewSimulation creates a simulation with the specified configuration,
// installs its systems and spawns the scene.
func NewSimulation(cfg *config.Config, opts ...Option) (*Simulation, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, logging.WrapError(err, "invalid configuration")
	}

	s := &Simulation{
		Config:   cfg,
		TimeStep: 1.0 / cfg.Simulation.TickRate,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.applyDefaults()

	s.Bodies = physics.NewWorld(cfg.Physics.Gravity.Vec())
	s.Bodies.MaxSpeed = cfg.Physics.MaxSpeed
	s.Registry = follow.NewRegistry(s.EventBus)

	if err := s.initMetrics(); err != nil {
		return nil, err
	}
	if err := s.installSystems(); err != nil {
		return nil, err
	}
	s.setupScene()

	return s, nil
}

func (s *Simulation) applyDefaults() {
	if s.World == nil {
		s.World = &ecs.World{}
	}
	if s.EventBus == nil {
		s.EventBus = event.NewEventBus()
	}
	if s.Input == nil {
		s.Input = input.None{}
	}
	if s.Logger == nil {
		s.Logger = logging.NewLoggerWithOptions(logging.Options{
			Level:  s.Config.Logging.Level,
			Format: s.Config.Logging.Format,
		})
	}
	if s.Gizmos == nil || !s.Config.Debug.Gizmos {
		s.Gizmos = render.NullGizmos{}
	}
	if s.RunID == "" {
		s.RunID = logging.GenerateRunID()
	}
}

func (s *Simulation) initMetrics() error {
	m := meter()

	var err error
	s.ticks, err = m.Int64Counter(
		"simulation.ticks",
		metric.WithDescription("Simulation ticks executed"),
	)
	if err != nil {
		return fmt.Errorf("creating ticks counter: %w", err)
	}

	s.tickDuration, err = m.Float64Histogram(
		"simulation.tick.duration",
		metric.WithDescription("Wall time spent in one simulation tick"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("creating tick duration histogram: %w", err)
	}

	return nil
}

// installSystems adds every system to the world. Ordering comes from
// priorities, not from insertion order.
func (s *Simulation) installSystems() error {
	cfg := s.Config
	arrowScale := cfg.Debug.ArrowScale

	var (
		followable *follow.Followable
		controlled *control.Controlled
		lifted     *lift.Lifted
		orbiter    *camera.Orbiter
		disabled   *entity.DisabledFace
	)

	s.World.AddSystem(&ClockSystem{sim: s})
	s.World.AddSystemInterface(follow.NewCycleSystem(s.Registry, s.Input, s.Logger), followable, disabled)
	s.World.AddSystemInterface(control.NewSystem(s.Bodies, s.Input, s.Gizmos, arrowScale), controlled, disabled)

	reset, err := control.NewResetSystem(s.Bodies, s.Input, s.EventBus, s.Logger)
	if err != nil {
		return logging.WrapError(err, "installing reset system")
	}
	s.World.AddSystemInterface(reset, controlled, disabled)

	s.World.AddSystem(&PhysicsSystem{bodies: s.Bodies})

	liftSystem, err := lift.NewSystem(s.Bodies, s.Gizmos, arrowScale)
	if err != nil {
		return logging.WrapError(err, "installing lift system")
	}
	s.World.AddSystemInterface(liftSystem, lifted, disabled)

	s.World.AddSystemInterface(camera.NewSystem(s.Bodies, s.Registry, s.Input, s.Logger), orbiter, disabled)

	return nil
}

// Start marks the simulation running
func (s *Simulation) Start(ctx context.Context) {
	s.Status = StatusRunning
	s.StartTime = time.Now()
	s.Logger.Info(logging.WithRunID(ctx, s.RunID), "simulation started",
		"tick_rate", s.Config.Simulation.TickRate,
		"bodies", s.Bodies.Len(),
	)
	s.EventBus.Publish(event.NewSimulationEvent(event.SimulationStarted, s, s.RunID, s.CurrentTick))
}

// Stop marks the simulation stopped
func (s *Simulation) Stop(ctx context.Context) {
	if s.Status != StatusRunning {
		return
	}
	s.Status = StatusStopped
	s.Logger.Info(logging.WithRunID(ctx, s.RunID), "simulation stopped",
		"ticks", s.CurrentTick,
		"elapsed", time.Since(s.StartTime).String(),
	)
	s.EventBus.Publish(event.NewSimulationEvent(event.SimulationStopped, s, s.RunID, s.CurrentTick))
}

// Tick advances the simulation by dt seconds: input, control, reset,
// physics, lift, then camera.
func (s *Simulation) Tick(dt float64) {
	s.TickLock.Lock()
	defer s.TickLock.Unlock()

	start := time.Now()
	s.World.Update(float32(dt))
	s.tickDuration.Record(context.Background(), time.Since(start).Seconds(),
		metric.WithAttributes(runAttr(s.RunID)))
}

// OnTick registers a hook called after every tick driven by Run
func (s *Simulation) OnTick(h TickHook) {
	s.hooks = append(s.hooks, h)
}

// Run ticks at the configured rate until ctx is cancelled or, when ticks
// is positive, until that many ticks have run. Every tick advances by the
// fixed TimeStep. Cancellation is a normal stop, an expired deadline is
// returned as an error.
func (s *Simulation) Run(ctx context.Context, ticks int) error {
	interval := time.Duration(float64(time.Second) / s.Config.Simulation.TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.Start(ctx)
	defer s.Stop(ctx)

	for n := 0; ticks <= 0 || n < ticks; n++ {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
		}

		s.Tick(s.TimeStep)
		for _, h := range s.hooks {
			h(s)
		}
	}
	return nil
}

func runAttr(runID string) attribute.KeyValue {
	return attribute.String("run_id", runID)
}
