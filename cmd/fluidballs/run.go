package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/fluidballs/internal/config"
	"github.com/san-kum/fluidballs/internal/control"
	"github.com/san-kum/fluidballs/internal/dynamo"
	"github.com/san-kum/fluidballs/internal/export"
	"github.com/san-kum/fluidballs/internal/metrics"
	"github.com/san-kum/fluidballs/internal/numeric"
	"github.com/san-kum/fluidballs/internal/storage"
	"github.com/san-kum/fluidballs/internal/viz"
)

var (
	svgScale    float64
	braille     bool
	benchRuns   int
	benchCounts []int
)

// headless builds a simulator with the standard metrics attached.
func headless(cfg *config.Config) (*dynamo.Simulator, error) {
	sys, err := builder(cfg)()
	if err != nil {
		return nil, err
	}

	logger := newLogger(os.Stderr)
	sim := dynamo.New(sys, cfg.Drivers(control.NewManual(cfg.Tilt.Step, cfg.Tilt.Limit), logger))
	sim.SetLogger(logger)
	for _, m := range metrics.Standard(cfg.Width, cfg.Height) {
		sim.AddMetric(m)
	}
	return sim, nil
}

func simConfig(cfg *config.Config) dynamo.Config {
	sc := dynamo.DefaultConfig()
	sc.Ticks = cfg.Ticks
	sc.Seed = cfg.Seed
	sc.ValidateState = debug
	return sc
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	sim, err := headless(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %d balls for %d ticks (%s)...\n", cfg.Count, cfg.Ticks, cfg.Numeric)
	start := time.Now()
	result, err := sim.Run(ctx, simConfig(cfg))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "warning: %v\n", e)
	}

	name := preset
	if name == "" {
		name = "run"
	}
	runID, err := st.Save(storage.RunMetadata{
		Name:        name,
		Seed:        cfg.Seed,
		Numeric:     cfg.Numeric,
		Driver:      cfg.Driver,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Count:       cfg.Count,
		Restitution: cfg.Restitution,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}
	for _, m := range sim.Metrics() {
		if c, ok := m.(*metrics.Containment); ok {
			fmt.Printf("  escaped ticks: %d\n", c.Violations())
		}
	}
	return nil
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sim, err := headless(cfg)
	if err != nil {
		return err
	}
	sc := simConfig(cfg)
	sc.SampleEvery = 0
	if cfg.Ticks > 0 {
		if _, err := sim.Run(context.Background(), sc); err != nil {
			return err
		}
	}

	sys := sim.System()
	bodies := sys.Bodies(nil)
	style := viz.Filled
	if outline {
		style = viz.Outlined
	}

	var svg string
	if braille {
		canvas := viz.NewCanvas(72, 21)
		viz.DrawScene(canvas, cfg.Width, cfg.Height, bodies, style)
		svg = export.CanvasToSVG(canvas, svgScale)
	} else {
		svg = export.CirclesToSVG(bodies, cfg.Width, cfg.Height, svgScale, style)
	}

	if err := os.WriteFile(args[0], []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (tick %d, %d balls)\n", args[0], sim.Ticks(), len(bodies))
	return nil
}

func bench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Ticks <= 0 {
		return fmt.Errorf("%w: bench needs a positive tick count", dynamo.ErrParameterBounds)
	}

	fmt.Printf("benchmarking %d ticks, %d worlds per row\n\n", cfg.Ticks, benchRuns)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NUMERIC\tBALLS\tTIME\tTICKS/SEC\tCOLLISIONS/TICK")

	for _, b := range numeric.Backends() {
		for _, n := range benchCounts {
			c := *cfg
			c.Numeric = b
			c.Count = n
			if err := c.Validate(); err != nil {
				fmt.Fprintf(w, "%s\t%d\t-\t-\t%v\n", b, n, err)
				continue
			}

			factory := func(seed int64) (dynamo.System, dynamo.Controller, error) {
				wc := c
				wc.Seed = seed
				sys, err := builder(&wc)()
				if err != nil {
					return nil, nil, err
				}
				return sys, wc.Drivers(control.NewManual(1, 1), nil), nil
			}

			sc := simConfig(&c)
			sc.SampleEvery = 0
			start := time.Now()
			results, err := dynamo.NewEnsemble(factory, benchRuns, c.Seed).Run(context.Background(), sc)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			total, hits := 0, 0
			for _, r := range results {
				total += r.StepsTaken
				for _, k := range r.Collisions {
					hits += k
				}
			}
			fmt.Fprintf(w, "%s\t%d\t%v\t%.0f\t%.2f\n",
				b, n, elapsed.Round(time.Millisecond),
				float64(total)/elapsed.Seconds(), float64(hits)/float64(max(total, 1)))
		}
	}
	return w.Flush()
}
