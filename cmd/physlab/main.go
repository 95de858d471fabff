package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/physlab/internal/analysis"
	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/experiment"
	"github.com/san-kum/physlab/internal/export"
	"github.com/san-kum/physlab/internal/logging"
	"github.com/san-kum/physlab/internal/optim"
	"github.com/san-kum/physlab/internal/storage"
	"github.com/san-kum/physlab/internal/viz"
)

var settings config.Settings

var (
	logger  = zap.NewNop()
	catalog = config.DefaultCatalog()
)

var (
	// run / batch
	dt       float64
	duration float64
	noSave   bool
	parallel int

	// live
	theme string

	// export
	outFile string

	// sweep
	sweepParams []string
	metricName  string
	maximize    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "physlab",
		Short:         "2d kinematics lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			settings, err = config.LoadSettings(config.NewViper("."), cmd.Flags())
			if err != nil {
				return err
			}
			logger, err = logging.New(settings.LogLevel, settings.LogFormat)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// no subcommand: pick a preset interactively
			return viz.RunPicker(catalog, liveOptions())
		},
	}

	rootCmd.PersistentFlags().String("data", "./data", "data directory")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().Int("fps", 60, "live view frame rate")

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "run a preset or scene file headless",
		Args:  cobra.ExactArgs(1),
		RunE:  runScene,
	}
	runCmd.Flags().Float64Var(&dt, "dt", 0, "override timestep")
	runCmd.Flags().Float64Var(&duration, "time", 0, "override duration")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	batchCmd := &cobra.Command{
		Use:   "batch [scenes...]",
		Short: "run several scenes concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().Float64Var(&dt, "dt", 0, "override timestep")
	batchCmd.Flags().Float64Var(&duration, "time", 0, "override duration")
	batchCmd.Flags().IntVar(&parallel, "parallel", 4, "max concurrent runs")
	batchCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the runs")

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "watch a scene in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&theme, "theme", "classic", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run trajectories",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run states as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export run trajectories as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [scene]",
		Short: "run a scene and draw its traces as a braille svg",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshot,
	}
	snapshotCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")
	snapshotCmd.Flags().Float64Var(&dt, "dt", 0, "override timestep")
	snapshotCmd.Flags().Float64Var(&duration, "time", 0, "override duration")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "oscillation analysis and phase portraits",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [scene]",
		Short: "grid search item attributes against a metric",
		Args:  cobra.ExactArgs(1),
		RunE:  sweep,
	}
	sweepCmd.Flags().StringArrayVarP(&sweepParams, "param", "p", nil, "item.attribute[.x|.y]=start:stop:step or =v1,v2 (repeatable)")
	sweepCmd.Flags().StringVar(&metricName, "metric", "max_speed", "metric to optimize")
	sweepCmd.Flags().BoolVar(&maximize, "max", false, "maximize instead of minimize")
	sweepCmd.Flags().IntVar(&parallel, "parallel", 4, "max concurrent runs")
	sweepCmd.Flags().Float64Var(&dt, "dt", 0, "override timestep")
	sweepCmd.Flags().Float64Var(&duration, "time", 0, "override duration")
	sweepCmd.MarkFlagRequired("param")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset scenes",
		RunE:  listPresets,
	}

	catalogCmd := &cobra.Command{
		Use:   "catalog [item]",
		Short: "show topics or an item's attributes",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showCatalog,
	}

	rootCmd.AddCommand(runCmd, batchCmd, liveCmd, listCmd, plotCmd, analyzeCmd,
		exportJSONCmd, exportCSVCmd, exportSVGCmd, snapshotCmd, sweepCmd,
		presetsCmd, catalogCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadScene resolves a preset name or a YAML scene path.
func loadScene(arg string) (*config.Scene, error) {
	if scene := config.GetPreset(arg); scene != nil {
		return scene, nil
	}
	if _, err := os.Stat(arg); err != nil {
		return nil, fmt.Errorf("unknown preset or scene file %q (presets: %s)",
			arg, strings.Join(config.ListPresets(), ", "))
	}
	return config.LoadScene(arg)
}

func applyOverrides(scene *config.Scene) {
	if dt > 0 {
		scene.Dt = dt
	}
	if duration > 0 {
		scene.Duration = duration
	}
}

func liveOptions() viz.Options {
	return viz.Options{FPS: settings.FPS, Logger: logger, Theme: theme}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runScene(cmd *cobra.Command, args []string) error {
	scene, err := loadScene(args[0])
	if err != nil {
		return err
	}
	applyOverrides(scene)

	x := experiment.New(scene, catalog, logger)
	if err := x.Setup(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	result, err := x.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("scene: %s (%s/%s)\n", result.Scene, result.Topic, result.Subtopic)
	fmt.Printf("steps: %d  dt: %.4fs  duration: %.2fs\n", result.Steps(), result.Dt, result.Duration)
	printMetrics(os.Stdout, result.Metrics)

	if noSave {
		return nil
	}
	id, err := saveResult(result)
	if err != nil {
		return err
	}
	fmt.Printf("\nsaved: %s\n", id)
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenes := make([]*config.Scene, 0, len(args))
	for _, arg := range args {
		scene, err := loadScene(arg)
		if err != nil {
			return err
		}
		applyOverrides(scene)
		scenes = append(scenes, scene)
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := experiment.RunBatch(ctx, scenes, catalog, logger, parallel)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENE\tSTEPS\tMAX SPEED\tENERGY DRIFT\tRUN")
	for _, result := range results {
		id := "-"
		if !noSave {
			if id, err = saveResult(result); err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "%s\t%d\t%.3f\t%.3f\t%s\n",
			result.Scene,
			result.Steps(),
			result.Metrics["max_speed"],
			result.Metrics["energy_drift"],
			id,
		)
	}
	return w.Flush()
}

func saveResult(result *experiment.Result) (string, error) {
	st := storage.New(settings.DataDir)
	if err := st.Init(); err != nil {
		return "", err
	}
	id, err := st.Save(result)
	if err != nil {
		return "", err
	}
	logger.Debug("run saved", zap.String("id", id), zap.String("dir", st.BaseDir()))
	return id, nil
}

func printMetrics(w io.Writer, m map[string]float64) {
	if len(m) == 0 {
		return
	}
	fmt.Fprintln(w, "\nmetrics:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, name := range sortedKeys(m) {
		fmt.Fprintf(tw, "  %s\t%.4f\n", name, m[name])
	}
	tw.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	scene, err := loadScene(args[0])
	if err != nil {
		return err
	}
	return viz.Run(scene, catalog, liveOptions())
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(settings.DataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tDURATION\tDT\tOBJECTS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			len(run.Objects),
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(settings.DataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	trajectories, err := st.LoadTrajectories(runID)
	if err != nil {
		return err
	}

	if len(trajectories) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("objects: %d\n\n", len(trajectories))

	for _, t := range trajectories {
		if len(t.Y) < 2 {
			continue
		}
		// screen y grows downward; plot height so up is up
		heights := make([]float64, len(t.Y))
		for i, y := range t.Y {
			heights[i] = -y
		}
		fmt.Println(asciigraph.Plot(heights,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(t.ID+" height (-y)"),
		))
		fmt.Println()
		fmt.Println(asciigraph.Plot(t.Speeds(),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(t.ID+" speed"),
		))
		fmt.Println()
	}

	return nil
}

// output returns the -o file or stdout, and a close func.
func output() (io.Writer, func() error, error) {
	if outFile == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	w, closeFn, err := output()
	if err != nil {
		return err
	}
	if err := storage.New(settings.DataDir).ExportJSON(args[0], w); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	w, closeFn, err := output()
	if err != nil {
		return err
	}
	if err := storage.New(settings.DataDir).ExportCSV(args[0], w); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(settings.DataDir)
	if _, err := st.Load(args[0]); err != nil {
		return err
	}
	trajectories, err := st.LoadTrajectories(args[0])
	if err != nil {
		return err
	}

	paths := make([]export.Path, len(trajectories))
	for i, t := range trajectories {
		paths[i] = export.Path{ID: t.ID, X: t.X, Y: t.Y}
	}

	w, closeFn, err := output()
	if err != nil {
		return err
	}
	if err := export.TrajectoriesSVG(w, paths, config.DefaultWidth, config.DefaultHeight); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func snapshot(cmd *cobra.Command, args []string) error {
	scene, err := loadScene(args[0])
	if err != nil {
		return err
	}
	applyOverrides(scene)

	x := experiment.New(scene, catalog, logger)
	if err := x.Setup(); err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()
	result, err := x.Run(ctx)
	if err != nil {
		return err
	}

	canvas := export.TraceCanvas(result.Frames, scene.Width, scene.Height, 100, 40)
	w, closeFn, err := output()
	if err != nil {
		return err
	}
	if err := export.CanvasSVG(w, canvas, 4); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(settings.DataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	trajectories, err := st.LoadTrajectories(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n\n", meta.Scene)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "OBJECT\tAXIS\tAMPLITUDE\tPERIOD\tCROSSINGS")
	for _, t := range trajectories {
		for _, axis := range []struct {
			name   string
			values []float64
		}{{"x", t.X}, {"y", t.Y}} {
			osc := analysis.Analyze(t.Times, axis.values, meta.Dt)
			period := "-"
			if osc.Period > 0 {
				period = fmt.Sprintf("%.3fs", osc.Period)
			}
			fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%d\n", t.ID, axis.name, osc.Amplitude, period, len(osc.Crossings))
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for _, t := range trajectories {
		portrait := analysis.NewPhasePortrait("y", t.Y, "vy", t.VY)
		fmt.Printf("\n%s: vy vs y\n", t.ID)
		fmt.Print(portrait.ASCII(60, 15))
	}
	return nil
}

func sweep(cmd *cobra.Command, args []string) error {
	scene, err := loadScene(args[0])
	if err != nil {
		return err
	}
	applyOverrides(scene)

	params := make([]optim.Param, 0, len(sweepParams))
	for _, raw := range sweepParams {
		p, err := optim.ParseParam(raw)
		if err != nil {
			return err
		}
		params = append(params, p)
	}

	ctx, cancel := signalContext()
	defer cancel()

	best, trials, err := optim.NewGridSearch(params, maximize).
		WithParallel(parallel).
		WithLogger(logger).
		Search(ctx, scene, catalog, metricName)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := make([]string, 0, len(params)+1)
	for _, p := range params {
		header = append(header, strings.ToUpper(p.Path))
	}
	fmt.Fprintln(w, strings.Join(append(header, strings.ToUpper(metricName)), "\t"))
	for _, trial := range trials {
		for _, p := range params {
			fmt.Fprintf(w, "%g\t", trial.Params[p.Path])
		}
		fmt.Fprintf(w, "%.4f\n", trial.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest %s = %.4f at", metricName, best.Value)
	for _, p := range params {
		fmt.Printf(" %s=%g", p.Path, best.Params[p.Path])
	}
	fmt.Println()
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSUBTOPIC\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, p.Subtopic, p.Description)
	}
	return w.Flush()
}

func showCatalog(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		for _, topic := range catalog.TopicNames() {
			fmt.Println(topic)
			for _, name := range catalog.SubtopicNames(topic) {
				sub, _ := catalog.Subtopic(topic, name)
				fmt.Printf("  %s\n", name)
				if len(sub.Objects) > 0 {
					fmt.Printf("    objects: %s\n", strings.Join(sub.Objects, ", "))
				}
				if len(sub.SupportTools) > 0 {
					fmt.Printf("    tools:   %s\n", strings.Join(sub.SupportTools, ", "))
				}
			}
		}
		return nil
	}

	attrs := catalog.Attributes(args[0], false)
	if attrs == nil {
		attrs = catalog.Attributes(args[0], true)
	}
	if attrs == nil {
		return fmt.Errorf("unknown item %q", args[0])
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tTYPE\tDEFAULT")
	for _, a := range attrs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%v\n", a.Key, a.Name, a.Type, a.Default)
	}
	return w.Flush()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
