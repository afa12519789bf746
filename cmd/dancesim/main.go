package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/dancesim/internal/analysis"
	"github.com/san-kum/dancesim/internal/automation"
	"github.com/san-kum/dancesim/internal/config"
	"github.com/san-kum/dancesim/internal/dance"
	"github.com/san-kum/dancesim/internal/experiment"
	"github.com/san-kum/dancesim/internal/export"
	"github.com/san-kum/dancesim/internal/sim"
	"github.com/san-kum/dancesim/internal/storage"
	"github.com/san-kum/dancesim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir     string
	verbose     bool
	alphabet    string
	rounds      int
	maxHistory  int
	keepHistory bool
	noSave      bool
	configFile  string
	preset      string
	// live view tick
	interval time.Duration
	cellSize float64
)

// main registers the dancesim commands and exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "dancesim",
		Short:         "permutation dance simulator",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".dancesim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [moves-file]",
		Short: "dance a move list for a number of rounds",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDance,
	}
	addDanceFlags(runCmd)
	runCmd.Flags().BoolVar(&keepHistory, "history", true, "record line-ups for plotting")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	solveCmd := &cobra.Command{
		Use:   "solve [moves-file]",
		Short: "report the line-up after one round and after a billion rounds",
		Args:  cobra.MaximumNArgs(1),
		RunE:  solveDance,
	}
	solveCmd.Flags().StringVar(&alphabet, "alphabet", config.DefaultAlphabet, "starting line-up, one token per character")

	cycleCmd := &cobra.Command{
		Use:   "cycle [moves-file]",
		Short: "find the dance period with constant memory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeCycle,
	}
	addDanceFlags(cycleCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print run metadata and recorded line-ups as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot displacement per round",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export recorded rounds to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw token positions per round as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().Float64Var(&cellSize, "cell", 16, "pixels per round and position")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted list of dances (yaml)",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	liveCmd := &cobra.Command{
		Use:   "live [moves-file]",
		Short: "dance with a live terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addDanceFlags(liveCmd)
	liveCmd.Flags().DurationVar(&interval, "interval", 200*time.Millisecond, "time per round")

	benchCmd := &cobra.Command{
		Use:   "bench [moves-file]",
		Short: "benchmark rounds per second",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchDance,
	}
	benchCmd.Flags().StringVar(&alphabet, "alphabet", config.DefaultAlphabet, "starting line-up, one token per character")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-8s alphabet=%s rounds=%d\n", name, p.Alphabet, p.Rounds)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, solveCmd, cycleCmd, listCmd, showCmd, plotCmd, exportCSVCmd, exportSVGCmd, scenarioCmd, liveCmd, benchCmd, presetsCmd)

	ctx := context.Background()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		newLogger(os.Stderr, log.InfoLevel).Error(err)
		os.Exit(1)
	}
}

func addDanceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&alphabet, "alphabet", config.DefaultAlphabet, "starting line-up, one token per character")
	cmd.Flags().IntVarP(&rounds, "rounds", "n", config.DefaultRounds, "number of rounds")
	cmd.Flags().IntVar(&maxHistory, "max-history", config.DefaultMaxHistory, "line-ups kept while looking for a repeat (0 = unlimited)")
}

// resolveConfig layers preset, config file and changed flags, in that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	flags := cmd.Flags()
	if flags.Changed("alphabet") || (preset == "" && configFile == "") {
		cfg.Alphabet = alphabet
	}
	if flags.Changed("rounds") || (preset == "" && configFile == "") {
		cfg.Rounds = rounds
	}
	if flags.Changed("max-history") {
		cfg.MaxHistory = maxHistory
	}
	if flags.Changed("history") {
		cfg.KeepHistory = keepHistory
	}
	if len(args) > 0 {
		cfg.MovesFile = args[0]
	}
	return cfg, nil
}

func readMoves(path string) ([]dance.Move[string], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	moves, err := dance.ParseAll(experiment.SplitMoves(string(data)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return moves, nil
}

func movesPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return config.DefaultMovesFile
}

func runDance(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	moves, err := readMoves(cfg.MovesFile)
	if err != nil {
		return err
	}
	logger.Debug("parsed moves", "file", cfg.MovesFile, "count", len(moves))

	registry := experiment.NewRegistry()
	metrics, err := registry.GetMetrics(cfg.Metrics)
	if err != nil {
		return err
	}

	exp := experiment.New(experiment.Config{
		Alphabet:    cfg.Alphabet,
		Rounds:      cfg.Rounds,
		MaxHistory:  cfg.MaxHistory,
		KeepHistory: cfg.KeepHistory,
	})
	if err := exp.Setup(moves, metrics); err != nil {
		return err
	}
	exp.GetSimulator().SetLogger(logger)
	if verbose {
		exp.GetSimulator().AddObserver(roundLogger{logger: logger})
	}

	prog := newProgress(logger)
	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("danced %d of %d rounds", result.RoundsExecuted, cfg.Rounds))

	fmt.Printf("final: %s\n", result.Final)
	if result.CycleFound() {
		fmt.Printf("cycle: starts at round %d, length %d\n", result.CycleStart, result.CycleLength)
	}
	if len(result.Metrics) > 0 {
		fmt.Println("\nmetrics:")
		names := make([]string, 0, len(result.Metrics))
		for name := range result.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %s: %.4f\n", name, result.Metrics[name])
		}
	}

	if noSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg.MovesFile, len(moves), exp.Start(), cfg.Rounds, result)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

func solveDance(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	moves, err := readMoves(movesPath(args))
	if err != nil {
		return err
	}
	start, err := dance.FromAlphabet(alphabet)
	if err != nil {
		return err
	}

	s := sim.New(moves)
	s.SetLogger(logger)
	for part, n := range []int{1, config.LongRunRounds} {
		cfg := sim.DefaultConfig()
		cfg.Rounds = n
		result, err := s.Run(ctx, start, cfg)
		if err != nil {
			return err
		}
		fmt.Printf("Solution part %d: %s\n", part+1, result.Final)
	}
	return nil
}

func analyzeCycle(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	moves, err := readMoves(movesPath(args))
	if err != nil {
		return err
	}
	start, err := dance.FromAlphabet(alphabet)
	if err != nil {
		return err
	}

	s := sim.New(moves)
	prog := newProgress(logger)
	mu, lambda, err := analysis.FindCycle(ctx, start, s.Step)
	if err != nil {
		return err
	}
	prog.done("cycle found")

	factored, err := analysis.Factor(start, moves)
	if err != nil {
		return err
	}

	cfg := sim.DefaultConfig()
	cfg.Rounds = rounds
	cfg.MaxHistory = maxHistory
	result, err := s.Run(ctx, start, cfg)
	if err != nil {
		return err
	}
	powered := factored.Power(rounds)

	fmt.Printf("moves:        %d\n", len(moves))
	fmt.Printf("cycle start:  %d\n", mu)
	fmt.Printf("cycle length: %d\n", lambda)
	fmt.Printf("after %d rounds: %s\n", rounds, result.Final)
	if !powered.Equal(result.Final) {
		return fmt.Errorf("factored dance disagrees: %s", powered)
	}
	logger.Debug("factored dance agrees", "lineup", powered.String())
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
	fmt.Fprintln(w, "ID\tMOVES\tTIME\tROUNDS\tCYCLE\tFINAL")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d+%d\t%s\n",
			run.ID,
			run.MovesFile,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Rounds,
			run.CycleStart,
			run.CycleLength,
			run.Final,
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

	recorded, err := st.LoadRounds(runID)
	if err != nil {
		return err
	}
	if len(recorded) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("rounds recorded: %d\n\n", len(recorded))

	data := make([]float64, len(recorded))
	for i, r := range recorded {
		data[i] = float64(r.Displacement)
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(float64(len(meta.Alphabet))),
		asciigraph.Caption("tokens away from home"),
	)
	fmt.Println(graph)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	recorded, err := st.LoadRounds(args[0])
	if err != nil {
		return err
	}

	if len(recorded) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"round", "lineup", "displacement"}); err != nil {
		return err
	}
	for _, r := range recorded {
		row := []string{strconv.Itoa(r.Round), r.Lineup, strconv.Itoa(r.Displacement)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	recorded, err := st.LoadRounds(args[0])
	if err != nil {
		return err
	}

	lineups := make([]string, len(recorded))
	for i, r := range recorded {
		lineups[i] = r.Lineup
	}

	svg, err := export.BraidSVG(lineups, cellSize)
	if err != nil {
		return err
	}
	fmt.Println(svg)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	results, err := automation.RunScenario(ctx, scenario, experiment.NewRegistry(), logger)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tFINAL\tCYCLE")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%d+%d\n", r.Name, r.Final, r.CycleStart, r.CycleLength)
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("scenario %q finished", scenario.Name))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	path := movesPath(args)
	moves, err := readMoves(path)
	if err != nil {
		return err
	}
	start, err := dance.FromAlphabet(alphabet)
	if err != nil {
		return err
	}

	m := viz.NewModel(sim.New(moves), start, rounds, interval, path)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func benchDance(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	moves, err := readMoves(movesPath(args))
	if err != nil {
		return err
	}
	start, err := dance.FromAlphabet(alphabet)
	if err != nil {
		return err
	}
	s := sim.New(moves)

	fmt.Printf("benchmarking %d moves over %d tokens\n\n", len(moves), len(start))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ROUNDS\tDANCED\tTIME\tROUNDS/SEC")

	for _, n := range []int{1, 100, 10_000, config.LongRunRounds} {
		cfg := sim.DefaultConfig()
		cfg.Rounds = n

		begin := time.Now()
		result, err := s.Run(ctx, start, cfg)
		if err != nil {
			return err
		}
		elapsed := time.Since(begin)

		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n",
			n, result.RoundsExecuted, elapsed, float64(result.RoundsExecuted)/elapsed.Seconds())
	}

	return w.Flush()
}
