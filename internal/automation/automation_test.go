package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/fluidballs/internal/config"
	"github.com/san-kum/fluidballs/internal/control"
	"github.com/san-kum/fluidballs/internal/dynamo"
	"github.com/san-kum/fluidballs/internal/viz"
)

func smallConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Count = 8
	cfg.Ticks = 60
	cfg.Seed = 7
	return cfg
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slosh.yaml")
	data := `name: slosh
preset: pebble
steps:
  - action: run
    ticks: 30
  - action: tilt
    x: 1
    y: -0.5
  - action: snapshot
    file: out.svg
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sc.Name != "slosh" || sc.Preset != "pebble" || len(sc.Steps) != 3 {
		t.Fatalf("unexpected scenario %+v", sc)
	}
	if sc.Steps[0].Ticks != 30 || sc.Steps[1].Y != -0.5 || sc.Steps[2].File != "out.svg" {
		t.Errorf("unexpected steps %+v", sc.Steps)
	}
}

func TestRunScenario(t *testing.T) {
	out := filepath.Join(t.TempDir(), "final.svg")
	sc := &Scenario{
		Steps: []ScenarioStep{
			{Action: ActionRun, Ticks: 10},
			{Action: ActionToggleGravity},
			{Action: ActionTilt, X: 1},
			{Action: ActionRun, Ticks: 5},
			{Action: ActionToggleRender},
			{Action: ActionSnapshot, File: out, Scale: 2},
		},
	}

	res, err := RunScenario(context.Background(), sc, smallConfig(), nil)
	if err != nil {
		t.Fatalf("scenario failed: %v", err)
	}
	if res.Ticks != 15 || len(res.Energy) != 15 {
		t.Errorf("expected 15 ticks, got %d (%d energy samples)", res.Ticks, len(res.Energy))
	}
	if res.Source != control.Sensed {
		t.Errorf("expected sensor source after toggle, got %v", res.Source)
	}
	if res.Style != viz.Outlined {
		t.Errorf("expected outlined style, got %v", res.Style)
	}

	svg, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("snapshot not written: %v", err)
	}
	if got := strings.Count(string(svg), "<circle"); got != 8 {
		t.Errorf("expected 8 circles, got %d", got)
	}
	if !strings.Contains(string(svg), `fill="none"`) {
		t.Error("snapshot should use the toggled outline style")
	}
}

func TestRunScenarioIsDeterministic(t *testing.T) {
	sc := &Scenario{Seed: 3, Steps: []ScenarioStep{{Action: ActionRun, Ticks: 40}}}

	a, err := RunScenario(context.Background(), sc, smallConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := RunScenario(context.Background(), sc, smallConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Energy {
		if a.Energy[i] != b.Energy[i] {
			t.Fatalf("tick %d: energy %v != %v", i, a.Energy[i], b.Energy[i])
		}
	}
}

func TestRunScenarioErrors(t *testing.T) {
	tests := []struct {
		name string
		sc   *Scenario
		want error
	}{
		{"zero ticks", &Scenario{Steps: []ScenarioStep{{Action: ActionRun}}}, dynamo.ErrParameterBounds},
		{"bad preset", &Scenario{Preset: "nope"}, nil},
		{"unknown action", &Scenario{Steps: []ScenarioStep{{Action: "shake"}}}, nil},
		{"snapshot without file", &Scenario{Steps: []ScenarioStep{{Action: ActionSnapshot}}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RunScenario(context.Background(), tt.sc, smallConfig(), nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestRunScenarioSplitRunsMatchSingleRun(t *testing.T) {
	cfg := smallConfig()
	cfg.Count = 30
	split := &Scenario{Steps: []ScenarioStep{{Action: ActionRun, Ticks: 25}, {Action: ActionRun, Ticks: 15}}}
	whole := &Scenario{Steps: []ScenarioStep{{Action: ActionRun, Ticks: 40}}}

	a, err := RunScenario(context.Background(), split, cfg, nil)
	if err != nil {
		t.Fatalf("split scenario failed: %v", err)
	}
	b, err := RunScenario(context.Background(), whole, cfg, nil)
	if err != nil {
		t.Fatalf("whole scenario failed: %v", err)
	}

	if a.Collisions != b.Collisions {
		t.Errorf("collisions differ: split %d, whole %d", a.Collisions, b.Collisions)
	}
	if len(a.Energy) != 40 || len(b.Energy) != 40 {
		t.Fatalf("expected 40 energy samples, got %d and %d", len(a.Energy), len(b.Energy))
	}
	for i := range a.Energy {
		if a.Energy[i] != b.Energy[i] {
			t.Fatalf("energy differs at tick %d: %v vs %v", i, a.Energy[i], b.Energy[i])
		}
	}
}

func TestRunScenarioCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sc := &Scenario{Steps: []ScenarioStep{{Action: ActionRun, Ticks: 10}}}
	if _, err := RunScenario(ctx, sc, smallConfig(), nil); !errors.Is(err, dynamo.ErrContextCanceled) {
		t.Errorf("expected ErrContextCanceled, got %v", err)
	}
}

func TestRunSweep(t *testing.T) {
	sweep := &ParameterSweep{Param: "restitution", Min: 0.5, Max: 1, NumSteps: 3}

	results, err := RunSweep(context.Background(), sweep, smallConfig())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, want := range []float64{0.5, 0.75, 1} {
		if results[i].Value != want {
			t.Errorf("point %d: expected value %v, got %v", i, want, results[i].Value)
		}
		if results[i].PeakEnergy < results[i].FinalEnergy {
			t.Errorf("point %d: peak %v below final %v", i, results[i].PeakEnergy, results[i].FinalEnergy)
		}
	}
}

func TestRunSweepErrors(t *testing.T) {
	if _, err := RunSweep(context.Background(), &ParameterSweep{Param: "viscosity", Min: 0, Max: 1, NumSteps: 2}, smallConfig()); err == nil {
		t.Error("expected error for unknown parameter")
	}
	if _, err := RunSweep(context.Background(), &ParameterSweep{Param: "count", NumSteps: 0}, smallConfig()); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds for zero steps, got %v", err)
	}
	// Restitution above one fails validation.
	if _, err := RunSweep(context.Background(), &ParameterSweep{Param: "restitution", Min: 1, Max: 2, NumSteps: 2}, smallConfig()); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}
