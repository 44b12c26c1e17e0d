package automation

import (
	"context"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fluidballs/internal/config"
	"github.com/san-kum/fluidballs/internal/control"
	"github.com/san-kum/fluidballs/internal/dynamo"
	"github.com/san-kum/fluidballs/internal/export"
	"github.com/san-kum/fluidballs/internal/metrics"
	"github.com/san-kum/fluidballs/internal/physics"
	"github.com/san-kum/fluidballs/internal/rng"
	"github.com/san-kum/fluidballs/internal/viz"
)

// Scenario actions.
const (
	ActionRun           = "run"
	ActionToggleGravity = "toggle_gravity"
	ActionToggleRender  = "toggle_render"
	ActionTilt          = "tilt"
	ActionLevel         = "level"
	ActionSnapshot      = "snapshot"
)

// Scenario defines a scripted session: host input between runs of ticks.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Preset      string         `yaml:"preset"`
	Seed        int64          `yaml:"seed"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single step in a scenario
type ScenarioStep struct {
	Action string  `yaml:"action"`
	Ticks  int     `yaml:"ticks"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	File   string  `yaml:"file"`
	Scale  float64 `yaml:"scale"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &scenario, nil
}

// ScenarioResult summarises a scenario run.
type ScenarioResult struct {
	Ticks      int
	Collisions int
	Energy     []float64
	Snapshots  []string
	Source     control.Source
	Style      viz.Style
}

// RunScenario executes every step against one world built from base, or
// from the scenario's preset when it names one.
func RunScenario(ctx context.Context, sc *Scenario, base *config.Config, logger *log.Logger) (*ScenarioResult, error) {
	cfg := *base
	if sc.Preset != "" {
		p := config.GetPreset(sc.Preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", sc.Preset, config.ListPresets())
		}
		cfg = *p
	}
	if sc.Seed != 0 {
		cfg.Seed = sc.Seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sys, err := physics.NewSystem(cfg.Numeric, cfg.Params(), rng.FromSeed(cfg.Seed))
	if err != nil {
		return nil, err
	}
	manual := control.NewManual(cfg.Tilt.Step, cfg.Tilt.Limit)
	drivers := cfg.Drivers(manual, logger)
	sim := dynamo.New(sys, drivers)
	sim.SetLogger(logger)
	collisions := metrics.NewCollisions()
	sim.AddMetric(collisions)

	res := &ScenarioResult{}
	for i, step := range sc.Steps {
		switch step.Action {
		case ActionRun:
			if step.Ticks <= 0 {
				return res, fmt.Errorf("step %d: %w: run needs positive ticks", i+1, dynamo.ErrParameterBounds)
			}
			err := sim.RunWithCallback(ctx, dynamo.Config{Ticks: step.Ticks}, func(bodies []dynamo.Body, tick int) bool {
				res.Energy = append(res.Energy, dynamo.TotalKineticEnergy(bodies))
				return true
			})
			res.Collisions = collisions.Total()
			if err != nil {
				return res, fmt.Errorf("step %d: %w", i+1, err)
			}
		case ActionToggleGravity:
			drivers.Toggle()
		case ActionToggleRender:
			res.Style = res.Style.Toggle()
		case ActionTilt:
			manual.Nudge(step.X, step.Y)
		case ActionLevel:
			manual.Level()
		case ActionSnapshot:
			if step.File == "" {
				return res, fmt.Errorf("step %d: snapshot needs a file", i+1)
			}
			scale := step.Scale
			if scale <= 0 {
				scale = 4
			}
			svg := export.CirclesToSVG(sys.Bodies(nil), cfg.Width, cfg.Height, scale, res.Style)
			if err := os.WriteFile(step.File, []byte(svg), 0644); err != nil {
				return res, fmt.Errorf("step %d: %w", i+1, err)
			}
			res.Snapshots = append(res.Snapshots, step.File)
		default:
			return res, fmt.Errorf("step %d: unknown action %q", i+1, step.Action)
		}
	}

	res.Ticks = sim.Ticks()
	res.Source = drivers.Source()
	return res, nil
}
