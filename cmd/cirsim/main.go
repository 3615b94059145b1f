package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cirlab/cirsim/internal/analysis"
	"github.com/cirlab/cirsim/internal/config"
	"github.com/cirlab/cirsim/internal/experiment"
	"github.com/cirlab/cirsim/internal/sim"
	"github.com/cirlab/cirsim/internal/viz"
)

var (
	tFinal     float64
	samples    int
	tolerance  float64
	maxSteps   int
	integrator string
	initState  string
	paramFlags []string
	configFile string
	preset     string
	verbose    bool
	// Phase plot axes.
	xAxis int
	yAxis int
	// Live view.
	liveDt float64
	fps    int
	// Analysis.
	component int
	// Export.
	format string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cirsim",
		Short: "circular-economy process simulation lab",
		Long: "cirsim integrates the process models of a circular-economy material-flow\n" +
			"testbed (waste incinerator, microalgae culture, transport truck) and renders\n" +
			"their trajectories in the terminal.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [plant]",
		Short: "run a simulation and print its summary",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)

	plotCmd := &cobra.Command{
		Use:   "plot [plant]",
		Short: "run a simulation and chart every state and derived series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotSimulation,
	}
	addRunFlags(plotCmd)

	phaseCmd := &cobra.Command{
		Use:   "phase [plant]",
		Short: "run a simulation and draw a phase portrait",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	addRunFlags(phaseCmd)
	phaseCmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for x-axis")
	phaseCmd.Flags().IntVar(&yAxis, "y-axis", 1, "state index for y-axis")

	liveCmd := &cobra.Command{
		Use:   "live [plant]",
		Short: "step a simulation with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator")
	liveCmd.Flags().StringVar(&initState, "state", "", "initial state, comma-separated")
	liveCmd.Flags().Float64Var(&liveDt, "dt", 0.01, "timestep per live step")
	liveCmd.Flags().IntVar(&fps, "fps", 30, "frame rate")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [plant]",
		Short: "power spectrum of one state component",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	addRunFlags(analyzeCmd)
	analyzeCmd.Flags().IntVar(&component, "component", 0, "state index to analyze")

	compareCmd := &cobra.Command{
		Use:   "compare [plant] [integrator...]",
		Short: "compare integrators on the same plant",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	addRunFlags(compareCmd)

	exportCmd := &cobra.Command{
		Use:   "export [plant]",
		Short: "run a simulation and write the trajectory to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	addRunFlags(exportCmd)
	exportCmd.Flags().StringVar(&format, "format", "csv", "output format: csv or json")

	plantsCmd := &cobra.Command{
		Use:   "plants",
		Short: "list available plants",
		RunE:  listPlants,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [plant]",
		Short: "list available presets for a plant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for plant: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, name := range names {
				fmt.Printf("  %s\n", name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, plotCmd, phaseCmd, liveCmd, analyzeCmd, compareCmd, exportCmd, plantsCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&tFinal, "time", -1, "horizon (plant default when unset)")
	cmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "reporting samples")
	cmd.Flags().Float64Var(&tolerance, "tol", config.DefaultTolerance, "adaptive error tolerance")
	cmd.Flags().IntVar(&maxSteps, "max-steps", config.DefaultMaxSteps, "internal step ceiling per interval")
	cmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator")
	cmd.Flags().StringVar(&initState, "state", "", "initial state, comma-separated (plant default when unset)")
	cmd.Flags().StringArrayVar(&paramFlags, "param", nil, "parameter override name=value (repeatable)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "named preset configuration")
}

// buildConfig merges preset, config file, and flags, in rising precedence.
func buildConfig(cmd *cobra.Command, plant string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Plant = plant

	if preset != "" {
		p := config.GetPreset(plant, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(plant))
		}
		cfg = p
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		fileCfg.Plant = plant
		cfg = fileCfg
	}

	if cmd.Flags().Changed("time") {
		cfg.TFinal = tFinal
	}
	if cmd.Flags().Changed("samples") {
		cfg.Samples = samples
	}
	if cmd.Flags().Changed("tol") {
		cfg.Tolerance = tolerance
	}
	if cmd.Flags().Changed("max-steps") {
		cfg.MaxSteps = maxSteps
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("state") {
		state, err := parseState(initState)
		if err != nil {
			return nil, err
		}
		cfg.InitState = state
	}
	if len(paramFlags) > 0 {
		params, err := parseParams(paramFlags)
		if err != nil {
			return nil, err
		}
		if cfg.Params == nil {
			cfg.Params = make(map[string]float64)
		}
		for k, v := range params {
			cfg.Params[k] = v
		}
	}

	return cfg, nil
}

func runExperiment(cmd *cobra.Command, plant string) (*experiment.Experiment, *simResult, error) {
	cfg, err := buildConfig(cmd, plant)
	if err != nil {
		return nil, nil, err
	}

	registry := experiment.NewRegistry()

	model, err := registry.GetPlant(plant)
	if err != nil {
		return nil, nil, err
	}
	integ, err := registry.GetIntegrator(cfg.Integrator)
	if err != nil {
		return nil, nil, err
	}

	exp := experiment.New(experiment.Config{
		Plant:      plant,
		Integrator: cfg.Integrator,
		InitState:  cfg.InitState,
		TFinal:     cfg.TFinal,
		Samples:    cfg.Samples,
		Tolerance:  cfg.Tolerance,
		MaxSteps:   cfg.MaxSteps,
		Params:     cfg.Params,
	})
	if err := exp.Setup(model, integ, registry.DefaultMetrics(plant, model)); err != nil {
		return nil, nil, err
	}

	horizon := cfg.TFinal
	if horizon < 0 {
		horizon = model.DefaultHorizon()
	}
	log.WithFields(log.Fields{
		"plant":      plant,
		"integrator": cfg.Integrator,
		"t_final":    horizon,
		"samples":    cfg.Samples,
	}).Debug("starting run")

	start := time.Now()
	result, err := exp.Run(context.Background())
	if err != nil {
		return nil, nil, err
	}
	elapsed := time.Since(start)

	log.WithFields(log.Fields{
		"steps":   result.Steps,
		"elapsed": elapsed,
	}).Debug("run finished")

	return exp, &simResult{result: result, horizon: horizon, elapsed: elapsed}, nil
}

type simResult struct {
	result  *sim.Result
	horizon float64
	elapsed time.Duration
}

func runSimulation(cmd *cobra.Command, args []string) error {
	exp, run, err := runExperiment(cmd, args[0])
	if err != nil {
		return err
	}
	result := run.result

	fmt.Printf("plant: %s\n", args[0])
	fmt.Printf("completed in %v (%d internal steps, %d samples)\n\n", run.elapsed, result.Steps, len(result.States))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STATE\tFINAL VALUE")
	final := result.States[len(result.States)-1]
	names := exp.Model().StateNames()
	for i, v := range final {
		name := fmt.Sprintf("x%d", i)
		if i < len(names) {
			name = names[i]
		}
		fmt.Fprintf(w, "%s\t%.6f\n", name, v)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(result.Metrics) > 0 {
		fmt.Println("\nmetrics:")
		for name, val := range result.Metrics {
			fmt.Printf("  %s: %.6f\n", name, val)
		}
	}

	return nil
}

func plotSimulation(cmd *cobra.Command, args []string) error {
	exp, run, err := runExperiment(cmd, args[0])
	if err != nil {
		return err
	}

	fmt.Println(viz.Trajectory(run.result.Times, run.result.States, exp.Model().StateNames()))
	if len(run.result.Derived) > 0 {
		fmt.Println(viz.Series(run.result.Times, run.result.Derived))
	}
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	exp, run, err := runExperiment(cmd, args[0])
	if err != nil {
		return err
	}

	names := exp.Model().StateNames()
	xName, yName := fmt.Sprintf("x%d", xAxis), fmt.Sprintf("x%d", yAxis)
	if xAxis < len(names) {
		xName = names[xAxis]
	}
	if yAxis < len(names) {
		yName = names[yAxis]
	}

	portrait, err := viz.PhasePortrait(run.result.States, xAxis, yAxis, xName, yName)
	if err != nil {
		return err
	}
	fmt.Print(portrait)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()

	model, err := registry.GetPlant(args[0])
	if err != nil {
		return err
	}
	integ, err := registry.GetIntegrator(integrator)
	if err != nil {
		return err
	}

	x0 := model.DefaultState()
	if initState != "" {
		x0, err = parseState(initState)
		if err != nil {
			return err
		}
		if len(x0) != model.StateDim() {
			return fmt.Errorf("initial state has %d components, plant has %d", len(x0), model.StateDim())
		}
	}

	m := viz.NewLive(model, integ, x0, liveDt, fps, args[0], model.StateNames())
	_, err = tea.NewProgram(m).Run()
	return err
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	_, run, err := runExperiment(cmd, args[0])
	if err != nil {
		return err
	}
	result := run.result

	if component >= len(result.States[0]) {
		return fmt.Errorf("component %d out of range for %d states", component, len(result.States[0]))
	}

	data := make([]float64, len(result.States))
	for i := range result.States {
		data[i] = result.States[i][component]
	}

	ps := analysis.PowerSpectrum(data)
	fmt.Println(viz.Spectrum(ps, fmt.Sprintf("power spectrum (x%d)", component)))

	freq := analysis.DominantFrequency(data, run.horizon)
	fmt.Printf("\ndominant frequency: %.4f cycles per time unit\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.4f time units\n", 1.0/freq)
	}
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	plant := args[0]
	names := args[1:]

	fmt.Printf("comparing integrators for %s\n\n", plant)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tFINAL X0\tINTERNAL STEPS\tTIME")

	for _, name := range names {
		integrator = name
		if err := cmd.Flags().Set("integrator", name); err != nil {
			return err
		}

		_, run, err := runExperiment(cmd, plant)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\t\t\n", name, err)
			continue
		}

		final := run.result.States[len(run.result.States)-1]
		fmt.Fprintf(w, "%s\t%.8f\t%d\t%v\n", name, final[0], run.result.Steps, run.elapsed)
	}

	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	exp, run, err := runExperiment(cmd, args[0])
	if err != nil {
		return err
	}

	switch format {
	case "csv":
		return writeCSV(os.Stdout, run.result)
	case "json":
		return writeJSON(os.Stdout, args[0], exp, run)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func listPlants(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PLANT\tSTATES\tDEFAULT HORIZON")
	for _, name := range registry.PlantNames() {
		model, err := registry.GetPlant(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%g\n", name, model.StateDim(), model.DefaultHorizon())
	}
	return w.Flush()
}

func parseState(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	state := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid state component %q: %w", p, err)
		}
		state = append(state, v)
	}
	return state, nil
}

func parseParams(flags []string) (map[string]float64, error) {
	params := make(map[string]float64, len(flags))
	for _, f := range flags {
		name, value, ok := strings.Cut(f, "=")
		if !ok {
			return nil, fmt.Errorf("invalid param %q, want name=value", f)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid param value %q: %w", value, err)
		}
		params[strings.TrimSpace(name)] = v
	}
	return params, nil
}
