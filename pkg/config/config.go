// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. MAGNUS_CONTROL_ACCELERATION
const EnvPrefix = "MAGNUS"

// Follow target names accepted in SceneConfig.Follow
const (
	FollowCart = "car"
	FollowBall = "ball"
	FollowNone = "none"
)

// Config contains the complete simulation configuration
type Config struct {
	Physics    PhysicsConfig    `json:"physics" yaml:"physics" mapstructure:"physics"`
	Control    ControlConfig    `json:"control" yaml:"control" mapstructure:"control"`
	Camera     CameraConfig     `json:"camera" yaml:"camera" mapstructure:"camera"`
	Scene      SceneConfig      `json:"scene" yaml:"scene" mapstructure:"scene"`
	Simulation SimulationConfig `json:"simulation" yaml:"simulation" mapstructure:"simulation"`
	Logging    LoggingConfig    `json:"logging" yaml:"logging" mapstructure:"logging"`
	Debug      DebugConfig      `json:"debug" yaml:"debug" mapstructure:"debug"`
}

// Vec3Config is a vector in configuration files
type Vec3Config struct {
	X float64 `json:"x" yaml:"x" mapstructure:"x"`
	Y float64 `json:"y" yaml:"y" mapstructure:"y"`
	Z float64 `json:"z" yaml:"z" mapstructure:"z"`
}

// Vec converts to an mgl64 vector
func (v Vec3Config) Vec() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// PhysicsConfig contains physics-related configuration
type PhysicsConfig struct {
	Gravity  Vec3Config `json:"gravity" yaml:"gravity" mapstructure:"gravity"`
	LiftGain float64    `json:"liftGain" yaml:"liftGain" mapstructure:"liftGain"`
	MaxSpeed float64    `json:"maxSpeed" yaml:"maxSpeed" mapstructure:"maxSpeed"`
}

// ControlConfig contains player controller gains
type ControlConfig struct {
	Acceleration float64    `json:"acceleration" yaml:"acceleration" mapstructure:"acceleration"`
	JumpImpulse  Vec3Config `json:"jumpImpulse" yaml:"jumpImpulse" mapstructure:"jumpImpulse"`
}

// CameraConfig contains orbit camera defaults and mouse sensitivities
type CameraConfig struct {
	Orientation Vec3Config `json:"orientation" yaml:"orientation" mapstructure:"orientation"`
	Distance    float64    `json:"distance" yaml:"distance" mapstructure:"distance"`
	MinDistance float64    `json:"minDistance" yaml:"minDistance" mapstructure:"minDistance"`
	// MaxDistance of zero leaves zoom-out unbounded
	MaxDistance      float64 `json:"maxDistance" yaml:"maxDistance" mapstructure:"maxDistance"`
	YawSensitivity   float64 `json:"yawSensitivity" yaml:"yawSensitivity" mapstructure:"yawSensitivity"`
	PitchSensitivity float64 `json:"pitchSensitivity" yaml:"pitchSensitivity" mapstructure:"pitchSensitivity"`
}

// SceneConfig selects what is spawned and what the camera follows
type SceneConfig struct {
	Follow string `json:"follow" yaml:"follow" mapstructure:"follow"`
	Ball   bool   `json:"ball" yaml:"ball" mapstructure:"ball"`
	Cart   bool   `json:"cart" yaml:"cart" mapstructure:"cart"`
	Ground bool   `json:"ground" yaml:"ground" mapstructure:"ground"`
}

// SimulationConfig contains tick scheduling
type SimulationConfig struct {
	TickRate float64 `json:"tickRate" yaml:"tickRate" mapstructure:"tickRate"`
	// Ticks limits a headless run, 0 runs until cancelled
	Ticks int `json:"ticks" yaml:"ticks" mapstructure:"ticks"`
}

// LoggingConfig contains logger settings
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level" mapstructure:"level"`
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// DebugConfig controls debug arrows
type DebugConfig struct {
	Gizmos     bool    `json:"gizmos" yaml:"gizmos" mapstructure:"gizmos"`
	ArrowScale float64 `json:"arrowScale" yaml:"arrowScale" mapstructure:"arrowScale"`
}

// DefaultConfig returns the default simulation configuration
func DefaultConfig() *Config {
	return &Config{
		Physics: PhysicsConfig{
			LiftGain: 0.01,
		},
		Control: ControlConfig{
			Acceleration: 40,
			JumpImpulse:  Vec3Config{Y: 1},
		},
		Camera: CameraConfig{
			Orientation:      Vec3Config{Y: 1},
			Distance:         10,
			MinDistance:      1,
			YawSensitivity:   400,
			PitchSensitivity: 100,
		},
		Scene: SceneConfig{
			Follow: FollowCart,
			Ball:   true,
			Cart:   true,
			Ground: true,
		},
		Simulation: SimulationConfig{
			TickRate: 60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Debug: DebugConfig{
			Gizmos:     true,
			ArrowScale: 1.0 / 20.0,
		},
	}
}

// setDefaults registers every key so environment overrides reach Unmarshal
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("physics.gravity.x", d.Physics.Gravity.X)
	v.SetDefault("physics.gravity.y", d.Physics.Gravity.Y)
	v.SetDefault("physics.gravity.z", d.Physics.Gravity.Z)
	v.SetDefault("physics.liftGain", d.Physics.LiftGain)
	v.SetDefault("physics.maxSpeed", d.Physics.MaxSpeed)

	v.SetDefault("control.acceleration", d.Control.Acceleration)
	v.SetDefault("control.jumpImpulse.x", d.Control.JumpImpulse.X)
	v.SetDefault("control.jumpImpulse.y", d.Control.JumpImpulse.Y)
	v.SetDefault("control.jumpImpulse.z", d.Control.JumpImpulse.Z)

	v.SetDefault("camera.orientation.x", d.Camera.Orientation.X)
	v.SetDefault("camera.orientation.y", d.Camera.Orientation.Y)
	v.SetDefault("camera.orientation.z", d.Camera.Orientation.Z)
	v.SetDefault("camera.distance", d.Camera.Distance)
	v.SetDefault("camera.minDistance", d.Camera.MinDistance)
	v.SetDefault("camera.maxDistance", d.Camera.MaxDistance)
	v.SetDefault("camera.yawSensitivity", d.Camera.YawSensitivity)
	v.SetDefault("camera.pitchSensitivity", d.Camera.PitchSensitivity)

	v.SetDefault("scene.follow", d.Scene.Follow)
	v.SetDefault("scene.ball", d.Scene.Ball)
	v.SetDefault("scene.cart", d.Scene.Cart)
	v.SetDefault("scene.ground", d.Scene.Ground)

	v.SetDefault("simulation.tickRate", d.Simulation.TickRate)
	v.SetDefault("simulation.ticks", d.Simulation.Ticks)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)

	v.SetDefault("debug.gizmos", d.Debug.Gizmos)
	v.SetDefault("debug.arrowScale", d.Debug.ArrowScale)
}

// LoadConfig loads a configuration file on top of the defaults and applies
// MAGNUS_* environment overrides. An empty path loads defaults and environment only.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// SaveConfig saves a configuration to a file. The format follows the
// extension: YAML for .yaml and .yml, JSON otherwise.
func SaveConfig(config *Config, path string) error {
	var (
		data []byte
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(config)
	default:
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate reports every invalid field
func (c *Config) Validate() error {
	var errs []error

	if c.Physics.LiftGain < 0 {
		errs = append(errs, fmt.Errorf("physics.liftGain must not be negative, got %g", c.Physics.LiftGain))
	}
	if c.Physics.MaxSpeed < 0 {
		errs = append(errs, fmt.Errorf("physics.maxSpeed must not be negative, got %g", c.Physics.MaxSpeed))
	}
	if c.Control.Acceleration < 0 {
		errs = append(errs, fmt.Errorf("control.acceleration must not be negative, got %g", c.Control.Acceleration))
	}

	if c.Camera.Orientation.Vec().Len() == 0 {
		errs = append(errs, errors.New("camera.orientation must not be the zero vector"))
	}
	if c.Camera.MinDistance <= 0 {
		errs = append(errs, fmt.Errorf("camera.minDistance must be positive, got %g", c.Camera.MinDistance))
	}
	if c.Camera.MaxDistance != 0 && c.Camera.MaxDistance < c.Camera.MinDistance {
		errs = append(errs, fmt.Errorf("camera.maxDistance %g is below camera.minDistance %g",
			c.Camera.MaxDistance, c.Camera.MinDistance))
	}
	if c.Camera.YawSensitivity == 0 || c.Camera.PitchSensitivity == 0 {
		errs = append(errs, errors.New("camera sensitivities must be non-zero"))
	}

	switch c.Scene.Follow {
	case FollowNone:
	case FollowCart:
		if !c.Scene.Cart {
			errs = append(errs, errors.New("scene.follow is car but the cart is not spawned"))
		}
	case FollowBall:
		if !c.Scene.Ball {
			errs = append(errs, errors.New("scene.follow is ball but the ball is not spawned"))
		}
	default:
		errs = append(errs, fmt.Errorf("scene.follow must be one of car, ball, none; got %q", c.Scene.Follow))
	}

	if c.Simulation.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("simulation.tickRate must be positive, got %g", c.Simulation.TickRate))
	}
	if c.Simulation.Ticks < 0 {
		errs = append(errs, fmt.Errorf("simulation.ticks must not be negative, got %d", c.Simulation.Ticks))
	}

	return errors.Join(errs...)
}
