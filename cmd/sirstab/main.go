package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/san-kum/sirstab/internal/config"
	"github.com/san-kum/sirstab/internal/dynamo"
	"github.com/san-kum/sirstab/internal/epidemic"
	"github.com/san-kum/sirstab/internal/export"
	"github.com/san-kum/sirstab/internal/integrators"
	"github.com/san-kum/sirstab/internal/logging"
	"github.com/san-kum/sirstab/internal/montecarlo"
	"github.com/san-kum/sirstab/internal/viz"
)

var (
	logLevel string

	configFile string
	preset     string
	samples    int
	seed       int64
	threshold  float64
	outPath    string
	integrator string
	rtol       float64
	atol       float64
	show       bool
	theme      string

	// single parameter point
	beta    float64
	u       float64
	mu      float64
	gamma   float64
	s0      float64
	i0      float64
	horizon float64
	points  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "sirstab",
		Short:         "monte carlo stability analysis of a controlled SIR model",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (warn, info, debug, trace)")

	runCmd := newRunCmd()

	r0Cmd := &cobra.Command{
		Use:   "r0",
		Short: "basic reproduction number of one parameter point",
		Args:  cobra.NoArgs,
		RunE:  printR0,
	}
	addParamFlags(r0Cmd)

	jacobianCmd := &cobra.Command{
		Use:   "jacobian",
		Short: "jacobian, eigenvalues and classification at a state",
		Args:  cobra.NoArgs,
		RunE:  printJacobian,
	}
	addParamFlags(jacobianCmd)
	jacobianCmd.Flags().Float64Var(&s0, "s", config.DefaultS0, "susceptible fraction")
	jacobianCmd.Flags().Float64Var(&i0, "i", config.DefaultI0, "infected fraction")

	trajectoryCmd := &cobra.Command{
		Use:   "trajectory",
		Short: "integrate one parameter point and plot S and I",
		Args:  cobra.NoArgs,
		RunE:  plotTrajectory,
	}
	addParamFlags(trajectoryCmd)
	trajectoryCmd.Flags().Float64Var(&s0, "s0", config.DefaultS0, "initial susceptible fraction")
	trajectoryCmd.Flags().Float64Var(&i0, "i0", config.DefaultI0, "initial infected fraction")
	trajectoryCmd.Flags().Float64Var(&horizon, "time", config.DefaultHorizon, "time horizon")
	trajectoryCmd.Flags().IntVar(&points, "points", config.DefaultPoints, "output points")
	trajectoryCmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				opts, err := p.Options()
				if err != nil {
					return err
				}
				fmt.Printf("  %-12s mode=%-12s samples=%-5d threshold=%g\n", name, opts.Mode, opts.Samples, opts.Threshold)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, r0Cmd, jacobianCmd, trajectoryCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [mode]",
		Short: "run the monte carlo analysis (eigenvalues or ratio)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMonteCarlo,
	}
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "number of parameter draws")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 draws one)")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "R0 threshold (0 uses the mode default)")
	cmd.Flags().StringVar(&outPath, "out", "", "figure path (defaults to the mode's figure name)")
	cmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator ("+strings.Join(integrators.Names(), ", ")+")")
	cmd.Flags().Float64Var(&rtol, "rtol", dynamo.DefaultSolveConfig().Rtol, "relative tolerance")
	cmd.Flags().Float64Var(&atol, "atol", dynamo.DefaultSolveConfig().Atol, "absolute tolerance")
	cmd.Flags().BoolVar(&show, "show", true, "open the interactive viewer when stdout is a terminal")
	cmd.Flags().StringVar(&theme, "theme", "ocean", "viewer theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	return cmd
}

func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&beta, "beta", 0.4, "transmission rate")
	cmd.Flags().Float64Var(&u, "u", 0.05, "control (vaccination) rate")
	cmd.Flags().Float64Var(&mu, "mu", config.DefaultMu, "birth/death rate")
	cmd.Flags().Float64Var(&gamma, "gamma", config.DefaultGamma, "recovery rate")
}

func pointParams() (epidemic.Params, error) {
	p := epidemic.Params{Beta: beta, U: u, Mu: mu, Gamma: gamma}
	if beta < 0 || u < 0 || mu < 0 || gamma < 0 {
		return p, fmt.Errorf("%s: %w", p, dynamo.ErrParameterBounds)
	}
	return p, nil
}

// loadRunConfig layers the run configuration: mode argument, then preset,
// then config file, then explicitly set flags.
func loadRunConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	var mode montecarlo.Mode
	if len(args) > 0 {
		m, err := montecarlo.ParseMode(args[0])
		if err != nil {
			return nil, err
		}
		mode = m
		cfg = config.GetPreset(string(mode))
	}

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		if err := config.Apply(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if mode != "" && cfg.Mode != string(mode) {
		cfg.Mode = string(mode)
		cfg.Threshold = 0
	}

	f := cmd.Flags()
	if f.Changed("samples") {
		cfg.Samples = samples
	}
	if f.Changed("seed") {
		cfg.Seed = seed
	}
	if f.Changed("threshold") {
		cfg.Threshold = threshold
	}
	if f.Changed("out") {
		cfg.Output = outPath
	}
	if f.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if f.Changed("rtol") {
		cfg.Solver.Rtol = rtol
	}
	if f.Changed("atol") {
		cfg.Solver.Atol = atol
	}
	return cfg, nil
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	logger := logging.NewLogger(logLevel, os.Stderr)

	cfg, err := loadRunConfig(cmd, args)
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	driver := montecarlo.New(opts, logger)
	driver.AddObserver(progressLogger(logger, opts.Samples))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	res, err := driver.Run(ctx)
	if err != nil {
		return err
	}
	logger.Info("run completed", "elapsed", time.Since(start).Round(time.Millisecond), "seed", res.Seed)

	path := cfg.OutputPath()
	figErr := export.WriteFigure(path, res)
	switch {
	case errors.Is(figErr, montecarlo.ErrNoSamples):
		logger.Warn("no samples cleared the R0 threshold, figure skipped", "threshold", opts.Threshold)
	case figErr != nil:
		return fmt.Errorf("write figure: %w", figErr)
	default:
		logger.Info("figure written", "path", path)
	}

	if show {
		if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			if err := viz.Show(res, theme); err != nil {
				return err
			}
			return figErr
		}
		logger.Warn("stdout is not a terminal, printing report instead of the viewer")
	}

	if err := viz.Report(os.Stdout, res); err != nil {
		return err
	}
	return figErr
}

// progressLogger reports roughly every tenth of the draws.
func progressLogger(logger *slog.Logger, total int) montecarlo.Observer {
	step := max(total/10, 1)
	retained := 0
	return montecarlo.ObserverFunc(func(s montecarlo.Sample) {
		if s.Retained {
			retained++
		}
		if (s.Index+1)%step == 0 || s.Index+1 == total {
			logger.Info("progress", "drawn", s.Index+1, "of", total, "retained", retained)
		}
	})
}

func printR0(cmd *cobra.Command, args []string) error {
	p, err := pointParams()
	if err != nil {
		return err
	}
	r0 := epidemic.R0(p)
	fmt.Printf("%s\n", p)
	fmt.Printf("R0 = %.6f\n", r0)
	for _, m := range []montecarlo.Mode{montecarlo.ModeEigenvalues, montecarlo.ModeRatio} {
		verdict := "rejected"
		if r0 > m.DefaultThreshold() {
			verdict = "retained"
		}
		fmt.Printf("  %-12s threshold %-5g %s\n", m, m.DefaultThreshold(), verdict)
	}
	return nil
}

func printJacobian(cmd *cobra.Command, args []string) error {
	p, err := pointParams()
	if err != nil {
		return err
	}
	state := dynamo.State{s0, i0}
	if !state.IsValid() {
		return fmt.Errorf("state (%g, %g): %w", s0, i0, dynamo.ErrInvalidState)
	}

	j := epidemic.Jacobian(s0, i0, p)
	eigs, err := epidemic.Eigenvalues(j)
	if err != nil {
		return err
	}

	fmt.Printf("%s at S=%g, I=%g\n\n", p, s0, i0)
	fmt.Println("jacobian:")
	fmt.Printf("  [ %12.6g  %12.6g ]\n", j[0][0], j[0][1])
	fmt.Printf("  [ %12.6g  %12.6g ]\n\n", j[1][0], j[1][1])
	fmt.Println("eigenvalues:")
	for k, e := range eigs {
		fmt.Printf("  lambda%d = %.6g %+.6gi\n", k+1, real(e), imag(e))
	}
	fmt.Printf("\nclass: %s\n", epidemic.Classify(eigs, 1e-12))

	dfe := epidemic.DiseaseFree(p)
	fmt.Printf("\ndisease-free equilibrium: S=%.6g I=%.6g\n", dfe.S, dfe.I)
	if end, ok := epidemic.Endemic(p); ok {
		fmt.Printf("endemic equilibrium:      S=%.6g I=%.6g\n", end.S, end.I)
	} else {
		fmt.Println("endemic equilibrium:      none")
	}
	return nil
}

func plotTrajectory(cmd *cobra.Command, args []string) error {
	p, err := pointParams()
	if err != nil {
		return err
	}
	integ, err := integrators.New(integrator)
	if err != nil {
		return err
	}
	if points < 2 || horizon <= 0 {
		return fmt.Errorf("need a positive horizon and at least 2 points, got %g and %d", horizon, points)
	}

	grid := dynamo.TimeGrid(0, horizon, points)
	tr, err := dynamo.Solve(cmd.Context(), epidemic.NewSIR(p), integ, dynamo.State{s0, i0}, grid, dynamo.DefaultSolveConfig())
	if err != nil {
		return err
	}

	fmt.Printf("%s, R0=%.4f\n\n", p, epidemic.R0(p))
	graph := asciigraph.PlotMany([][]float64{tr.Component(0), tr.Component(1)},
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
		asciigraph.Caption(fmt.Sprintf("S (blue) and I (red), t in [0, %g]", horizon)),
	)
	fmt.Println(graph)

	final := tr.Final()
	fmt.Printf("\nfinal state: S=%.6g I=%.6g\n", final[0], final[1])
	return nil
}
