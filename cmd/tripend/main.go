package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/go-kit/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/tripend/internal/analysis"
	"github.com/san-kum/tripend/internal/automation"
	"github.com/san-kum/tripend/internal/config"
	"github.com/san-kum/tripend/internal/dynamo"
	"github.com/san-kum/tripend/internal/experiment"
	"github.com/san-kum/tripend/internal/export"
	"github.com/san-kum/tripend/internal/integrators"
	"github.com/san-kum/tripend/internal/logging"
	"github.com/san-kum/tripend/internal/models"
	"github.com/san-kum/tripend/internal/optim"
	"github.com/san-kum/tripend/internal/sim"
	"github.com/san-kum/tripend/internal/storage"
	"github.com/san-kum/tripend/internal/viz"
)

var (
	dataDir     string
	logLevel    string
	dt          float64
	steps       int
	sampleEvery int
	method      string
	solver      string
	configFile  string
	preset      string
	linkIndex   int
	liveMethod  string
	outFile     string
	duration    float64
	tolerance   float64
	trials      int
	spread      float64
	seed        int64
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "tripend",
		Short:        "triple pendulum simulator",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".tripend", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error, none)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation and save it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot energy and angles of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space plot of one link",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&linkIndex, "link", 0, "link index (0-2)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of one link angle",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&linkIndex, "link", 0, "link index (0-2)")

	chaosCmd := &cobra.Command{
		Use:   "chaos",
		Short: "lyapunov exponent and poincare section",
		Args:  cobra.NoArgs,
		RunE:  chaosAnalysis,
	}
	addRunFlags(chaosCmd)
	chaosCmd.Flags().StringVar(&preset, "preset", "", "initial state preset (default canonical)")

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render the joint paths of a run as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "find the cheapest method and dt within an energy tolerance",
		Args:  cobra.NoArgs,
		RunE:  sweepMethods,
	}
	sweepCmd.Flags().Float64Var(&duration, "time", 5.0, "simulated seconds per grid point")
	sweepCmd.Flags().Float64Var(&tolerance, "tol", 1e-4, "max relative energy drift")
	sweepCmd.Flags().StringVar(&preset, "preset", "", "initial state preset (default canonical)")
	sweepCmd.Flags().StringVar(&solver, "solver", config.DefaultSolver, "linear solver (gauss-jordan, lu)")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario of simulations",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "ensemble of perturbed runs around a preset",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	addRunFlags(monteCarloCmd)
	monteCarloCmd.Flags().StringVar(&preset, "preset", "", "initial state preset (default canonical)")
	monteCarloCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")
	monteCarloCmd.Flags().Float64Var(&spread, "perturbation", 1e-6, "max angle perturbation (rad)")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")

	compareCmd := &cobra.Command{
		Use:   "compare [method...]",
		Short: "compare integration methods from the same state",
		RunE:  compareMethods,
	}
	addRunFlags(compareCmd)
	compareCmd.Flags().StringVar(&preset, "preset", "", "initial state preset (default canonical)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&liveMethod, "method", "euler", "starting method")
	liveCmd.Flags().StringVar(&solver, "solver", config.DefaultSolver, "linear solver")
	liveCmd.Flags().StringVar(&preset, "preset", "", "initial state preset (default canonical)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMETHOD\tDT\tSTEPS\tTHETA\tOMEGA")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%g\t%d\t%v\t%v\n", name, p.Method, p.Dt, p.Steps, p.InitState.Theta, p.InitState.Omega)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, svgCmd, phaseCmd, analyzeCmd, chaosCmd, compareCmd, sweepCmd, scenarioCmd, monteCarloCmd, liveCmd, presetsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().IntVar(&sampleEvery, "sample-every", config.DefaultSampleEvery, "record every n-th step")
	cmd.Flags().StringVar(&method, "method", config.DefaultMethod, "integration method (euler, heun, rk4)")
	cmd.Flags().StringVar(&solver, "solver", config.DefaultSolver, "linear solver (gauss-jordan, lu)")
}

func newLogger() (log.Logger, error) {
	return logging.New(os.Stderr, logLevel)
}

// resolveConfig layers preset, then config file, then explicitly set flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("sample-every") {
		cfg.SampleEvery = sampleEvery
	}
	if flags.Changed("method") {
		cfg.Method = method
	}
	if flags.Changed("solver") {
		cfg.Solver = solver
	}
	if flags.Changed("log-level") || cfg.LogLevel == "" {
		cfg.LogLevel = logLevel
	}

	return cfg, cfg.Validate()
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(cfg, logger)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return err
	}

	fmt.Printf("running %s simulation...\n", cfg.Method)
	start := time.Now()

	result, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunInfo{Solver: cfg.Solver, Preset: preset, Dt: cfg.Dt}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("samples: %d\n", len(result.Samples))
	fmt.Println("\nmetrics:")
	for _, name := range sortedKeys(result.Metrics) {
		fmt.Printf("  %s: %.6g\n", name, result.Metrics[name])
	}

	return nil
}

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
	fmt.Fprintln(w, "ID\tTIME\tMETHOD\tSOLVER\tDT\tSTEPS\tDRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.4fs\t%d\t%.3g\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Method,
			run.Solver,
			run.Dt,
			run.Steps,
			run.Metrics["energy_drift"],
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

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("method: %s\n", meta.Method)
	fmt.Printf("samples: %d\n\n", len(samples))

	series := []struct {
		caption string
		value   func(sim.Sample) float64
	}{
		{"total energy", func(s sim.Sample) float64 { return s.Total }},
		{"theta1", func(s sim.Sample) float64 { return s.State.Theta[0] }},
		{"theta2", func(s sim.Sample) float64 { return s.State.Theta[1] }},
		{"theta3", func(s sim.Sample) float64 { return s.State.Theta[2] }},
	}

	for _, sr := range series {
		data := make([]float64, len(samples))
		for i, s := range samples {
			data[i] = sr.value(s)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(sr.caption),
		)
		fmt.Println(graph)
		fmt.Println()
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

func phasePlot(cmd *cobra.Command, args []string) error {
	if linkIndex < 0 || linkIndex >= dynamo.Links {
		return fmt.Errorf("link must be in [0, %d], got %d", dynamo.Links-1, linkIndex)
	}

	st := storage.New(dataDir)
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	omegaMin, omegaMax := samples[0].State.Omega[linkIndex], samples[0].State.Omega[linkIndex]
	for _, s := range samples {
		omegaMin = min(omegaMin, s.State.Omega[linkIndex])
		omegaMax = max(omegaMax, s.State.Omega[linkIndex])
	}

	states := make([]dynamo.State, len(samples))
	for i, smp := range samples {
		states[i] = smp.State
	}

	c := viz.NewCanvas(35, 10)
	plotPhase(c, states, linkIndex, omegaMin, omegaMax)

	fmt.Printf("phase space: %s, link %d (theta in [0, 2pi) vs omega)\n\n", args[0], linkIndex+1)
	printFramed(c, omegaMin, omegaMax)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	if linkIndex < 0 || linkIndex >= dynamo.Links {
		return fmt.Errorf("link must be in [0, %d], got %d", dynamo.Links-1, linkIndex)
	}

	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) < 3 {
		return fmt.Errorf("not enough samples for analysis")
	}

	// the last sample may close a partial interval
	samples = samples[:len(samples)-1]
	data := make([]float64, len(samples))
	for i, s := range samples {
		data[i] = math.Remainder(s.State.Theta[linkIndex], 2*math.Pi)
	}

	spectrum, err := analysis.PowerSpectrum(data, samples[1].Time-samples[0].Time)
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("method: %s, link %d\n\n", meta.Method, linkIndex+1)

	plotData := spectrum.Power[:len(spectrum.Power)/4+1]
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (theta%d)", linkIndex+1)),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := spectrum.Dominant()
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}
	return nil
}

func chaosAnalysis(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	x0, err := cfg.GetInitState()
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	m, err := registry.GetMethod(cfg.Method)
	if err != nil {
		return err
	}
	s, err := registry.GetSolver(cfg.Solver)
	if err != nil {
		return err
	}
	integ, err := integrators.New(m)
	if err != nil {
		return err
	}
	model, err := models.NewTriplePendulum(dynamo.DefaultParams(), s)
	if err != nil {
		return err
	}

	lambda, err := analysis.LyapunovExponent(model, integ, x0, cfg.Dt, cfg.Steps, 1e-8)
	if err != nil {
		return err
	}
	section, err := analysis.PoincareSection(model, integ, x0, cfg.Dt, cfg.Steps)
	if err != nil {
		return err
	}

	fmt.Printf("method: %s, dt=%g, %d steps\n", m, cfg.Dt, cfg.Steps)
	fmt.Printf("largest lyapunov exponent: %.4f /s\n", lambda)
	if lambda > 0 {
		fmt.Printf("predictability horizon: %.2f s\n", 1/lambda)
	}
	fmt.Printf("poincare crossings (theta1 = 0): %d\n\n", len(section))
	if len(section) == 0 {
		return nil
	}

	// theta2 against omega2 at each crossing
	const cols, rows = 35, 10
	c := viz.NewCanvas(cols, rows)
	omegaMin, omegaMax := section[0].Omega[1], section[0].Omega[1]
	for _, x := range section {
		omegaMin = min(omegaMin, x.Omega[1])
		omegaMax = max(omegaMax, x.Omega[1])
	}
	plotPhase(c, section, 1, omegaMin, omegaMax)
	printFramed(c, omegaMin, omegaMax)
	return nil
}

func compareMethods(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = []string{"euler", "heun", "rk4"}
	}

	methods := make([]dynamo.Method, 0, len(names))
	for _, name := range names {
		m, err := dynamo.ParseMethod(name)
		if err != nil {
			return err
		}
		methods = append(methods, m)
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	x0, err := cfg.GetInitState()
	if err != nil {
		return err
	}
	s, err := experiment.NewRegistry().GetSolver(cfg.Solver)
	if err != nil {
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}

	runCfg := sim.RunConfig{Dt: cfg.Dt, Steps: cfg.Steps, SampleEvery: cfg.SampleEvery}
	start := time.Now()
	results, err := sim.Compare(cmd.Context(), logger, x0, methods, runCfg, sim.WithSolver(s))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("comparing %d methods, dt=%g, %d steps\n\n", len(methods), cfg.Dt, cfg.Steps)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tSTAGES\tFINAL ENERGY\tMAX DRIFT\tREL DRIFT")
	for _, res := range results {
		integ, err := integrators.New(res.Method)
		if err != nil {
			return err
		}
		final := res.Samples[len(res.Samples)-1]
		fmt.Fprintf(w, "%s\t%d\t%.6f\t%.3e\t%.3e\n",
			res.Method,
			integ.Stages(),
			final.Total,
			res.EnergyDrift,
			res.Metrics["energy_drift_rel"],
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\ncompleted in %v\n", elapsed)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	m, err := dynamo.ParseMethod(liveMethod)
	if err != nil {
		return err
	}
	s, err := experiment.NewRegistry().GetSolver(solver)
	if err != nil {
		return err
	}

	if preset == "" {
		preset = "canonical"
	}
	cfg := config.GetPreset(preset)
	if cfg == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}
	x0, err := cfg.GetInitState()
	if err != nil {
		return err
	}

	simulation, err := sim.New(sim.WithMethod(m), sim.WithSolver(s))
	if err != nil {
		return err
	}
	if err := simulation.SetState(x0); err != nil {
		return err
	}

	return viz.Run(simulation)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	reach := 0.0
	for _, l := range dynamo.DefaultParams().Length {
		reach += l
	}
	svg := export.TrajectoryToSVG(samples, reach*1.05, 600)
	if svg == "" {
		return fmt.Errorf("no data to render")
	}

	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func sweepMethods(cmd *cobra.Command, args []string) error {
	if preset == "" {
		preset = "canonical"
	}
	cfg := config.GetPreset(preset)
	if cfg == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}
	x0, err := cfg.GetInitState()
	if err != nil {
		return err
	}
	s, err := experiment.NewRegistry().GetSolver(solver)
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}

	dts := []float64{0.01, 0.005, 0.0025, 0.0016, 0.001, 0.0005}
	g := optim.NewGridSearch(dynamo.Methods, dts, logger, sim.WithSolver(s))
	best, points, err := g.Search(cmd.Context(), x0, duration, tolerance)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tDT\tSTEPS\tEVALS\tREL DRIFT")
	for _, p := range points {
		drift := fmt.Sprintf("%.3e", p.RelDrift)
		if p.Err != nil {
			drift = "failed"
		}
		fmt.Fprintf(w, "%s\t%g\t%d\t%d\t%s\n", p.Method, p.Dt, p.Steps, p.Evaluations, drift)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if best == nil {
		fmt.Printf("\nno configuration within tolerance %g\n", tolerance)
		return nil
	}
	fmt.Printf("\ncheapest within %g: %s at dt=%g (%d evaluations)\n", tolerance, best.Method, best.Dt, best.Evaluations)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	results, err := automation.RunScenario(cmd.Context(), sc, experiment.NewRegistry(), st, logger)
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tMETHOD\tSTEPS\tMAX DRIFT\tRUN ID")
	for _, r := range results {
		id := r.RunID
		if id == "" {
			id = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%.3e\t%s\n", r.Name, r.Result.Method, r.Result.StepsTaken, r.Result.EnergyDrift, id)
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	x0, err := cfg.GetInitState()
	if err != nil {
		return err
	}
	m, err := dynamo.ParseMethod(cfg.Method)
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}

	mc := &automation.MonteCarloConfig{
		Method:       m,
		BaseState:    x0,
		Perturbation: spread,
		NumTrials:    trials,
		Steps:        cfg.Steps,
		Dt:           cfg.Dt,
		Seed:         seed,
	}
	results, err := automation.RunMonteCarlo(cmd.Context(), mc, logger)
	if err != nil {
		return err
	}

	stable, unstable, tipSpread := automation.MonteCarloStats(results)
	fmt.Printf("trials: %d (stable %d, unstable %d)\n", len(results), stable, unstable)
	fmt.Printf("initial perturbation: %g rad\n", spread)
	fmt.Printf("final tip spread (rms): %.6f\n", tipSpread)
	return nil
}

// plotPhase marks theta in [0, 2π) against omega for one link.
func plotPhase(c *viz.Canvas, states []dynamo.State, link int, omegaMin, omegaMax float64) {
	omegaRange := omegaMax - omegaMin
	if omegaRange == 0 {
		omegaRange = 1
	}
	w, h := c.Width*2, c.Height*4
	for _, x := range states {
		px := int(float64(w-1) * x.Theta[link] / (2 * math.Pi))
		py := h - 1 - int(float64(h-1)*(x.Omega[link]-omegaMin)/omegaRange)
		c.Set(px, py)
	}
}

func printFramed(c *viz.Canvas, lo, hi float64) {
	fmt.Printf("%8.2f ┌%s┐\n", hi, strings.Repeat("─", c.Width))
	for _, line := range strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n") {
		fmt.Printf("%8s │%s│\n", "", line)
	}
	fmt.Printf("%8.2f └%s┘\n", lo, strings.Repeat("─", c.Width))
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
