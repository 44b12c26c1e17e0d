package automation

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/fluidballs/internal/analysis"
	"github.com/san-kum/fluidballs/internal/config"
	"github.com/san-kum/fluidballs/internal/control"
	"github.com/san-kum/fluidballs/internal/dynamo"
	"github.com/san-kum/fluidballs/internal/physics"
	"github.com/san-kum/fluidballs/internal/rng"
)

// Sweepable parameters.
var SweepParams = []string{"restitution", "count", "gravity", "max_radius"}

// ParameterSweep runs one world per value of Param between Min and Max.
type ParameterSweep struct {
	Param    string
	Min, Max float64
	NumSteps int
}

// SweepResult holds results from one sweep point.
type SweepResult struct {
	Value          float64
	FinalEnergy    float64
	PeakEnergy     float64
	MeanCollisions float64
	// SettleTick is the first tick after which kinetic energy stays below 5%
	// of its peak, or -1.
	SettleTick int
}

func applyParam(cfg *config.Config, param string, v float64) error {
	switch param {
	case "restitution":
		cfg.Restitution = v
	case "count":
		cfg.Count = int(math.Round(v))
	case "gravity":
		cfg.Gravity.Magnitude = v
		cfg.Wind.Y = v
	case "max_radius":
		cfg.MaxRadius = v
	default:
		return fmt.Errorf("unknown sweep parameter %q (available: %v)", param, SweepParams)
	}
	return nil
}

// RunSweep executes a parameter sweep over base. Every point starts from the
// same seed.
func RunSweep(ctx context.Context, sweep *ParameterSweep, base *config.Config) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("%w: sweep needs at least one step", dynamo.ErrParameterBounds)
	}
	if base.Ticks <= 0 {
		return nil, fmt.Errorf("%w: sweep needs a positive tick count", dynamo.ErrParameterBounds)
	}

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.Max - sweep.Min) / float64(sweep.NumSteps-1)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		value := sweep.Min + float64(i)*paramStep

		cfg := *base
		if err := applyParam(&cfg, sweep.Param, value); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.Param, value, err)
		}

		sys, err := physics.NewSystem(cfg.Numeric, cfg.Params(), rng.FromSeed(cfg.Seed))
		if err != nil {
			return nil, err
		}
		sim := dynamo.New(sys, cfg.Drivers(control.NewManual(1, 1), nil))

		sc := dynamo.DefaultConfig()
		sc.Ticks = cfg.Ticks
		sc.SampleEvery = 0
		result, err := sim.Run(ctx, sc)
		if err != nil {
			return nil, err
		}

		res := SweepResult{Value: value, SettleTick: analysis.SettleTick(result.Energy, 0.05)}
		for _, e := range result.Energy {
			res.PeakEnergy = math.Max(res.PeakEnergy, e)
		}
		if n := len(result.Energy); n > 0 {
			res.FinalEnergy = result.Energy[n-1]
		}
		total := 0
		for _, c := range result.Collisions {
			total += c
		}
		if result.StepsTaken > 0 {
			res.MeanCollisions = float64(total) / float64(result.StepsTaken)
		}
		results = append(results, res)
	}

	return results, nil
}
