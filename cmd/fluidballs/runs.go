package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/fluidballs/internal/analysis"
	"github.com/san-kum/fluidballs/internal/export"
	"github.com/san-kum/fluidballs/internal/storage"
)

var plotSVG string

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tBALLS\tARENA\tE\tNUMERIC\tDRIVER\tTICKS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%gx%g\t%g\t%s\t%s\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Count,
			run.Width, run.Height,
			run.Restitution,
			run.Numeric,
			run.Driver,
			run.Ticks,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	energy, collisions, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(energy) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("balls: %d, numeric: %s\n", meta.Count, meta.Numeric)
	fmt.Printf("ticks: %d\n\n", len(energy))

	fmt.Println(asciigraph.Plot(energy,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("kinetic energy"),
	))
	fmt.Println()

	hits := make([]float64, len(collisions))
	for i, c := range collisions {
		hits[i] = float64(c)
	}
	fmt.Println(asciigraph.Plot(hits,
		asciigraph.Height(6),
		asciigraph.Width(80),
		asciigraph.Caption("collisions per tick"),
	))

	if plotSVG != "" {
		svg := export.SeriesToSVG(energy, 800, 240, "#00ff88")
		if err := os.WriteFile(plotSVG, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", plotSVG)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"tick", "ball", "x", "y", "vx", "vy", "radius"}); err != nil {
		return err
	}
	format := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	for _, fr := range frames {
		for i, b := range fr.Bodies {
			row := []string{
				strconv.Itoa(fr.Tick), strconv.Itoa(i),
				format(b.X), format(b.Y), format(b.VX), format(b.VY), format(b.Radius),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	energy, _, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(energy) < 4 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("balls: %d, driver: %s\n\n", meta.Count, meta.Driver)

	ps := analysis.PowerSpectrum(energy)
	plotData := ps[:max(len(ps)/4, 2)]
	fmt.Println(asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (kinetic energy)"),
	))
	fmt.Println()

	period, power := analysis.DominantPeriod(energy)
	if period > 0 {
		fmt.Printf("dominant period: %.1f ticks (power %.3g)\n", period, power)
	} else {
		fmt.Println("dominant period: none")
	}
	if tick := analysis.SettleTick(energy, 0.05); tick >= 0 {
		fmt.Printf("settled below 5%% of peak energy at tick %d\n", tick)
	} else {
		fmt.Println("never settled below 5% of peak energy")
	}
	return nil
}
