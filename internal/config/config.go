package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fluidballs/internal/control"
	"github.com/san-kum/fluidballs/internal/dynamo"
	"github.com/san-kum/fluidballs/internal/numeric"
	"github.com/san-kum/fluidballs/internal/physics"
)

const (
	DefaultWidth       = 144.0
	DefaultHeight      = 168.0
	DefaultCount       = 50
	DefaultMaxRadius   = 10.0
	DefaultRestitution = 0.97
	DefaultTicks       = 1200
	DefaultTiltStep    = 1.0
	DefaultTiltLimit   = 5.0
)

// Driver names.
const (
	DriverCycle    = "cycle"
	DriverTilt     = "tilt"
	DriverConstant = "constant"
)

type Config struct {
	Width        float64       `yaml:"width"`
	Height       float64       `yaml:"height"`
	Count        int           `yaml:"count"`
	MaxRadius    float64       `yaml:"max_radius"`
	Restitution  float64       `yaml:"restitution"`
	RefCount     int           `yaml:"ref_count"`
	InitialSpeed float64       `yaml:"initial_speed"`
	Numeric      string        `yaml:"numeric"`
	Seed         int64         `yaml:"seed"`
	Ticks        int           `yaml:"ticks"`
	Driver       string        `yaml:"driver"`
	Gravity      GravityConfig `yaml:"gravity"`
	Tilt         TiltConfig    `yaml:"tilt"`
	Wind         WindConfig    `yaml:"wind"`
}

// GravityConfig sets up the scripted gravity cycle.
type GravityConfig struct {
	Frames    int     `yaml:"frames"`
	Magnitude float64 `yaml:"magnitude"`
}

// TiltConfig sets up the sensor driver.
type TiltConfig struct {
	Scale float64 `yaml:"scale"`
	Step  float64 `yaml:"step"`
	Limit float64 `yaml:"limit"`
}

// WindConfig is the fixed acceleration of the constant driver.
type WindConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Count:       DefaultCount,
		MaxRadius:   DefaultMaxRadius,
		Restitution: DefaultRestitution,
		Numeric:     numeric.BackendFloat,
		Ticks:       DefaultTicks,
		Driver:      DriverCycle,
		Gravity: GravityConfig{
			Frames:    control.DefaultFrames,
			Magnitude: control.DefaultGravity,
		},
		Tilt: TiltConfig{
			Scale: control.DefaultTiltScale,
			Step:  DefaultTiltStep,
			Limit: DefaultTiltLimit,
		},
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadOver(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOver applies the keys present in the file at path on top of cfg.
func LoadOver(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params converts the world settings for physics.NewSystem.
func (c *Config) Params() physics.Params {
	return physics.Params{
		Width:        c.Width,
		Height:       c.Height,
		Count:        c.Count,
		MaxRadius:    c.MaxRadius,
		Restitution:  c.Restitution,
		RefCount:     c.RefCount,
		InitialSpeed: c.InitialSpeed,
	}
}

func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if _, err := numeric.ParseBackend(c.Numeric); err != nil {
		return fmt.Errorf("%w: %v", dynamo.ErrUnknownBackend, err)
	}
	switch c.Driver {
	case DriverCycle, DriverTilt, DriverConstant:
	default:
		return fmt.Errorf("%w: unknown driver %q", dynamo.ErrParameterBounds, c.Driver)
	}
	if c.Ticks < 0 {
		return fmt.Errorf("%w: ticks must not be negative, got %d", dynamo.ErrParameterBounds, c.Ticks)
	}
	return nil
}

// Drivers builds the gravity source switch. The scripted side is the
// configured cycle or constant wind; the sensor side reads sensor. The
// switch starts on the sensor side when the driver is "tilt".
func (c *Config) Drivers(sensor control.Sensor, logger *log.Logger) *control.Switch {
	var scripted dynamo.Controller
	if c.Driver == DriverConstant {
		scripted = control.NewConstant(c.Wind.X, c.Wind.Y)
	} else {
		scripted = control.NewCycle(c.Gravity.Frames, c.Gravity.Magnitude)
	}
	sw := control.NewSwitch(scripted, control.NewTilt(sensor, c.Tilt.Scale, logger))
	if c.Driver == DriverTilt {
		sw.SetSource(control.Sensed)
	}
	return sw
}
