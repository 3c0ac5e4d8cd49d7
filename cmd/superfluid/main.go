package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/cmplx"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/quench-lab/superfluid/internal/compute"
	"github.com/quench-lab/superfluid/internal/config"
	"github.com/quench-lab/superfluid/internal/export"
	"github.com/quench-lab/superfluid/internal/gpe"
	"github.com/quench-lab/superfluid/internal/metrics"
	"github.com/quench-lab/superfluid/internal/server"
	"github.com/quench-lab/superfluid/internal/storage"
	"github.com/quench-lab/superfluid/internal/viz"
)

var (
	configFile string
	preset     string
	dataDir    string
	addr       string
	seed       int64
	soc        bool
	cylinder   bool
	testFinger bool
	tracers    int
	steps      int
	batch      int
	live       bool
	frameRate  int
	svgPath    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "superfluid",
		Short: "real-time superfluid (GPE) visualization server",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", config.DefaultSeed, "tracer sampling seed")
	rootCmd.PersistentFlags().BoolVar(&soc, "soc", false, "enable spin-orbit coupling")
	rootCmd.PersistentFlags().BoolVar(&cylinder, "cylinder", true, "cylindrical trap with persistent current")
	rootCmd.PersistentFlags().BoolVar(&testFinger, "test-finger", false, "drive the finger on the built-in trajectory")
	rootCmd.PersistentFlags().IntVar(&tracers, "tracers", config.DefaultTracerCount, "tracer particle count")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "run the websocket state server",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a fixed number of step batches and record observables",
		RunE:  runBatch,
	}
	runCmd.Flags().IntVar(&steps, "steps", 200, "number of step batches")
	runCmd.Flags().IntVar(&batch, "batch", config.DefaultStepsPerTick, "sub-steps per batch")
	runCmd.Flags().BoolVar(&live, "live", false, "render a live density view")
	runCmd.Flags().IntVar(&frameRate, "fps", 20, "live view frame rate")
	runCmd.Flags().StringVar(&dataDir, "data", ".superfluid", "run data directory")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the final density snapshot to this SVG file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(serveCmd, runCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q", preset)
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("soc") {
		cfg.SOC = soc
	}
	if flags.Changed("cylinder") {
		cfg.Cylinder = cylinder
	}
	if flags.Changed("test-finger") {
		cfg.TestFinger = testFinger
	}
	if flags.Changed("tracers") {
		cfg.TracerCount = tracers
	}
	return cfg, nil
}

func newState(cfg *config.Config, logger *log.Logger) (*gpe.State, error) {
	backend := compute.AutoSelect()
	logger.Printf("compute backend: %s", backend.Name())
	logger.Printf("cooling %d steps on a %dx%d grid...", cfg.CoolingSteps, cfg.Nx, cfg.Ny)
	start := time.Now()
	state, err := gpe.NewState(cfg.Params(), backend)
	if err != nil {
		return nil, err
	}
	logger.Printf("ground state prepared in %v (dt=%.4g)", time.Since(start).Round(time.Millisecond), state.Dt())
	return state, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := log.New(os.Stderr, "superfluid: ", log.LstdFlags)
	state, err := newState(cfg, logger)
	if err != nil {
		return err
	}

	srv := server.New(state, cfg.Server.TickRateHz, cfg.Server.StepsPerTick, logger)

	listenAddr := cfg.Server.Addr
	if addr != "" {
		listenAddr = addr
	}
	httpSrv := &http.Server{Addr: listenAddr, Handler: srv.Handler()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Printf("tick loop: %v", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	logger.Printf("listening on %s", listenAddr)
	if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := log.New(os.Stderr, "superfluid: ", log.LstdFlags)
	state, err := newState(cfg, logger)
	if err != nil {
		return err
	}

	observed := []metrics.Metric{
		metrics.NewParticleDrift(),
		metrics.NewFingerSpeed(),
		metrics.NewDensityContrast(),
	}

	var view *viz.LiveView
	if live {
		view = viz.NewLiveView(frameRate)
		defer view.Close()
	}

	header := []string{"time", "norm", "finger_x", "finger_y", "finger_speed"}
	rows := make([][]float64, 0, steps)
	speedTrace := make([]float64, 0, steps)

	for i := 0; i < steps; i++ {
		state.Step(batch)
		for _, m := range observed {
			m.Observe(state)
		}

		finger := state.FingerPosition()
		speed := cmplx.Abs(state.FingerVelocity())
		rows = append(rows, []float64{state.Time(), state.Norm(), real(finger), imag(finger), speed})
		speedTrace = append(speedTrace, speed)

		if view != nil {
			grid := state.Grid()
			view.Render(viz.Frame{
				Time:    state.Time(),
				Density: state.Density(),
				Tracers: state.TracerPositions(),
				Finger:  finger,
				Lx:      grid.Lx,
				Ly:      grid.Ly,
				Norm:    state.Norm(),
			})
		}
	}

	results := make(map[string]float64, len(observed))
	for _, m := range observed {
		results[m.Name()] = m.Value()
	}

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(storage.RunMetadata{
		Preset:    preset,
		Timestamp: time.Now(),
		Seed:      cfg.Seed,
		Dt:        state.Dt(),
		Steps:     steps * batch,
		GridNx:    cfg.Nx,
		GridNy:    cfg.Ny,
		Metrics:   results,
	}, storage.Observables{Header: header, Rows: rows})
	if err != nil {
		return err
	}

	if svgPath != "" {
		grid := state.Grid()
		snap := export.Snapshot{
			Density: state.Density(),
			Tracers: state.TracerPositions(),
			Finger:  state.FingerPosition(),
			Lx:      grid.Lx,
			Ly:      grid.Ly,
		}
		if err := export.WriteDensitySVG(svgPath, snap); err != nil {
			return err
		}
		logger.Printf("wrote density snapshot to %s", svgPath)
	}

	fmt.Println(viz.TracePlot("finger speed", speedTrace))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.6g\n", name, results[name])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("saved run %s\n", runID)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	names := config.ListPresets()
	sort.Strings(names)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, name := range names {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%dx%d\tsoc=%v\tcylinder=%v\ttracers=%d\n",
			name, cfg.Nx, cfg.Ny, cfg.SOC, cfg.Cylinder, cfg.TracerCount)
	}
	return w.Flush()
}
