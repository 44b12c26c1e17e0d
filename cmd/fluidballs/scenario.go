package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/fluidballs/internal/automation"
)

var (
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
)

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	name := sc.Name
	if name == "" {
		name = args[0]
	}
	fmt.Printf("scenario %s: %d steps\n", name, len(sc.Steps))
	res, err := automation.RunScenario(ctx, sc, cfg, newLogger(os.Stderr))
	if err != nil {
		return err
	}

	fmt.Printf("ticks: %d\n", res.Ticks)
	fmt.Printf("collisions: %d\n", res.Collisions)
	if n := len(res.Energy); n > 0 {
		fmt.Printf("final kinetic energy: %.4f\n", res.Energy[n-1])
	}
	fmt.Printf("gravity source: %v, render: %v\n", res.Source, res.Style)
	for _, f := range res.Snapshots {
		fmt.Printf("wrote %s\n", f)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sweep := &automation.ParameterSweep{
		Param:    sweepParam,
		Min:      sweepMin,
		Max:      sweepMax,
		NumSteps: sweepSteps,
	}
	results, err := automation.RunSweep(context.Background(), sweep, cfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tFINAL KE\tPEAK KE\tCOLLISIONS/TICK\tSETTLED\n", sweepParam)
	for _, r := range results {
		settled := "-"
		if r.SettleTick >= 0 {
			settled = fmt.Sprintf("%d", r.SettleTick)
		}
		fmt.Fprintf(w, "%.4g\t%.4f\t%.4f\t%.2f\t%s\n",
			r.Value, r.FinalEnergy, r.PeakEnergy, r.MeanCollisions, settled)
	}
	return w.Flush()
}
