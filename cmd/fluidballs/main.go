package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/fluidballs/internal/automation"
	"github.com/san-kum/fluidballs/internal/config"
	"github.com/san-kum/fluidballs/internal/control"
	"github.com/san-kum/fluidballs/internal/dynamo"
	"github.com/san-kum/fluidballs/internal/gui"
	"github.com/san-kum/fluidballs/internal/physics"
	"github.com/san-kum/fluidballs/internal/rng"
	"github.com/san-kum/fluidballs/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	debug      bool

	count        int
	width        float64
	height       float64
	maxRadius    float64
	restitution  float64
	refCount     int
	initialSpeed float64
	backend      string
	seed         int64
	ticks        int
	driver       string
	frames       int
	gravity      float64

	outline bool
	theme   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fluidballs",
		Short: "rigid balls sloshing in a box",
		RunE:  runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fluidballs", "data directory")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log every tick and validate world state")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the simulation in the terminal",
		RunE:  runLive,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the simulation in a window",
		RunE:  runGUI,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and save the run",
		RunE:  runSimulation,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [file.svg]",
		Short: "run headless and write the final frame as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshot,
	}
	snapshotCmd.Flags().Float64Var(&svgScale, "scale", 4, "pixels per world unit")
	snapshotCmd.Flags().BoolVar(&braille, "braille", false, "export the terminal canvas instead of circles")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure ticks per second across ball counts and numeric backends",
		RunE:  bench,
	}
	benchCmd.Flags().IntVar(&benchRuns, "runs", 4, "independent worlds per configuration")
	benchCmd.Flags().IntSliceVar(&benchCounts, "counts", []int{25, 50, 100, 200}, "ball counts")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file.yaml]",
		Short: "play a scripted scenario headless",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one parameter and report energy and settling",
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "restitution", fmt.Sprintf("parameter %v", automation.SweepParams))
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.5, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1.0, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 6, "number of values")

	for _, cmd := range []*cobra.Command{rootCmd, liveCmd, guiCmd, runCmd, snapshotCmd, benchCmd, scenarioCmd, sweepCmd} {
		addWorldFlags(cmd)
	}
	for _, cmd := range []*cobra.Command{rootCmd, liveCmd, guiCmd, snapshotCmd} {
		cmd.Flags().BoolVar(&outline, "outline", false, "draw balls as outlines")
	}
	for _, cmd := range []*cobra.Command{rootCmd, liveCmd} {
		cmd.Flags().StringVar(&theme, "theme", viz.Themes[0].Name, fmt.Sprintf("color theme %v", viz.ThemeNames()))
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot kinetic energy and collisions of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotSVG, "svg", "", "also write the energy curve to this SVG file")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export sampled frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of kinetic energy",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(liveCmd, guiCmd, runCmd, snapshotCmd, benchCmd, scenarioCmd, sweepCmd, listCmd,
		plotCmd, exportCmd, exportCSVCmd, exportJSONCmd, analyzeCmd, presetsCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addWorldFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", fmt.Sprintf("use preset configuration %v", config.ListPresets()))
	f.IntVarP(&count, "count", "n", def.Count, "number of balls")
	f.Float64Var(&width, "width", def.Width, "arena width")
	f.Float64Var(&height, "height", def.Height, "arena height")
	f.Float64Var(&maxRadius, "max-radius", def.MaxRadius, "largest ball radius")
	f.Float64VarP(&restitution, "restitution", "e", def.Restitution, "restitution in (0,1]")
	f.IntVar(&refCount, "ref-count", def.RefCount, "scale radii by 1/sqrt(count/ref-count) when positive")
	f.Float64Var(&initialSpeed, "speed", def.InitialSpeed, "random initial speed per axis")
	f.StringVar(&backend, "numeric", def.Numeric, "numeric backend: float, q10 or q20")
	f.Int64Var(&seed, "seed", def.Seed, "random seed (0 = default stream)")
	f.IntVar(&ticks, "ticks", def.Ticks, "ticks to run")
	f.StringVar(&driver, "driver", def.Driver, "gravity driver: cycle, tilt or constant")
	f.IntVar(&frames, "frames", def.Gravity.Frames, "ticks per gravity phase")
	f.Float64Var(&gravity, "gravity", def.Gravity.Magnitude, "gravity magnitude")
}

// loadConfig layers preset, config file and explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		if err := config.LoadOver(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	f := cmd.Flags()
	if f.Changed("count") {
		cfg.Count = count
	}
	if f.Changed("width") {
		cfg.Width = width
	}
	if f.Changed("height") {
		cfg.Height = height
	}
	if f.Changed("max-radius") {
		cfg.MaxRadius = maxRadius
	}
	if f.Changed("restitution") {
		cfg.Restitution = restitution
	}
	if f.Changed("ref-count") {
		cfg.RefCount = refCount
	}
	if f.Changed("speed") {
		cfg.InitialSpeed = initialSpeed
	}
	if f.Changed("numeric") {
		cfg.Numeric = backend
	}
	if f.Changed("seed") {
		cfg.Seed = seed
	}
	if f.Changed("ticks") {
		cfg.Ticks = ticks
	}
	if f.Changed("driver") {
		cfg.Driver = driver
	}
	if f.Changed("frames") {
		cfg.Gravity.Frames = frames
	}
	if f.Changed("gravity") {
		cfg.Gravity.Magnitude = gravity
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(w io.Writer) *log.Logger {
	if !debug {
		return log.New(io.Discard, "", 0)
	}
	return log.New(w, "fluidballs: ", log.LstdFlags|log.Lmicroseconds)
}

// builder returns a function that populates a fresh world from cfg. Every
// call yields the same initial state.
func builder(cfg *config.Config) func() (dynamo.System, error) {
	return func() (dynamo.System, error) {
		return physics.NewSystem(cfg.Numeric, cfg.Params(), rng.FromSeed(cfg.Seed))
	}
}

func title(cfg *config.Config) string {
	if preset != "" {
		return "fluidballs :: " + preset
	}
	return fmt.Sprintf("fluidballs :: %d balls", cfg.Count)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(io.Discard)
	if debug {
		f, err := tea.LogToFile("fluidballs-debug.log", "fluidballs")
		if err != nil {
			return err
		}
		defer f.Close()
		logger = log.Default()
	}

	manual := control.NewManual(cfg.Tilt.Step, cfg.Tilt.Limit)
	style := viz.Filled
	if outline {
		style = viz.Outlined
	}
	return viz.Run(viz.LiveConfig{
		Title:   title(cfg),
		Build:   builder(cfg),
		Drivers: cfg.Drivers(manual, logger),
		Manual:  manual,
		Style:   style,
		Theme:   theme,
		Logger:  logger,
	})
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(os.Stderr)
	manual := control.NewManual(cfg.Tilt.Step, cfg.Tilt.Limit)
	return gui.Run(gui.Config{
		Title:   title(cfg),
		Build:   builder(cfg),
		Drivers: cfg.Drivers(manual, logger),
		Manual:  manual,
		Outline: outline,
		Logger:  logger,
	})
}

func listPresets(cmd *cobra.Command, args []string) error {
	fmt.Println("presets:")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Printf("  %-10s %3d balls  %gx%g  e=%g  %s  %s\n",
			name, p.Count, p.Width, p.Height, p.Restitution, p.Numeric, p.Driver)
	}
	return nil
}
