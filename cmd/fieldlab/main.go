package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/fieldlab/internal/colormap"
	"github.com/san-kum/fieldlab/internal/config"
	"github.com/san-kum/fieldlab/internal/field"
	"github.com/san-kum/fieldlab/internal/lab"
	"github.com/san-kum/fieldlab/internal/render"
	"github.com/san-kum/fieldlab/internal/store"
	"github.com/san-kum/fieldlab/internal/tui"
	"github.com/san-kum/fieldlab/internal/viewer"
	"github.com/san-kum/fieldlab/internal/vtk"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	points     int
	integName  string
	configFile string
	preset     string
	noChart    bool
	// slice viewer flags
	axisName   string
	sliceIndex int
	resolution int
	scalarName string
	colorBelow string
	colorAbove string
	paletteArg string
	threshold  float64
	outPath    string
	// gen flags
	genNx    int
	genNy    int
	genNz    int
	genNoise float64
	genSeed  int64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fieldlab",
		Short: "materials field simulation and VTK slice viewer lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fieldlab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run a numerical model",
		Args:  cobra.ExactArgs(1),
		RunE:  runModel,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().IntVar(&points, "points", config.DefaultPoints, "sweep points (curve models)")
	runCmd.Flags().StringVar(&integName, "integrator", "euler", "integrator (euler, rk4)")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&noChart, "no-chart", false, "skip the PNG chart")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list available models",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range lab.Models() {
				fmt.Println(name)
			}
		},
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run series in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run series to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and series to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	sliceCmd := &cobra.Command{
		Use:   "slice [file]",
		Short: "render a slice heatmap to PNG",
		Args:  cobra.ExactArgs(1),
		RunE:  renderSlice,
	}
	sliceCmd.Flags().StringVar(&axisName, "axis", config.DefaultAxis, "slice axis (x, y, z)")
	sliceCmd.Flags().IntVar(&sliceIndex, "index", -1, "slice index (-1 = middle)")
	sliceCmd.Flags().IntVar(&resolution, "resolution", 0, "resample resolution (0 = native)")
	sliceCmd.Flags().StringVar(&scalarName, "scalar", "", "scalar array name (default: first)")
	sliceCmd.Flags().StringVar(&colorBelow, "below", config.DefaultColorBelow, "color below threshold")
	sliceCmd.Flags().StringVar(&colorAbove, "above", config.DefaultColorAbove, "color above threshold")
	sliceCmd.Flags().StringVar(&paletteArg, "palette", "", "preset palette instead of two-color scale")
	sliceCmd.Flags().Float64Var(&threshold, "threshold", 0, "threshold value (default: range midpoint)")
	sliceCmd.Flags().StringVar(&outPath, "out", "", "output PNG path")

	infoCmd := &cobra.Command{
		Use:   "info [file]",
		Short: "describe a VTK file",
		Args:  cobra.ExactArgs(1),
		RunE:  fileInfo,
	}

	viewCmd := &cobra.Command{
		Use:   "view [file]",
		Short: "interactive slice viewer",
		Args:  cobra.ExactArgs(1),
		RunE:  viewFile,
	}
	viewCmd.Flags().StringVar(&axisName, "axis", config.DefaultAxis, "initial slice axis")
	viewCmd.Flags().IntVar(&resolution, "resolution", 0, "resample resolution (0 = native)")

	genCmd := &cobra.Command{
		Use:   "gen [file.vti]",
		Short: "generate a synthetic sample dataset",
		Args:  cobra.ExactArgs(1),
		RunE:  genSample,
	}
	genCmd.Flags().IntVar(&genNx, "nx", 50, "grid points along x")
	genCmd.Flags().IntVar(&genNy, "ny", 40, "grid points along y")
	genCmd.Flags().IntVar(&genNz, "nz", 30, "grid points along z (1 = 2D)")
	genCmd.Flags().Float64Var(&genNoise, "noise", 0.05, "noise amplitude")
	genCmd.Flags().Int64Var(&genSeed, "seed", 42, "noise seed")

	rootCmd.AddCommand(runCmd, listCmd, modelsCmd, plotCmd, exportCSVCmd,
		exportJSONCmd, presetsCmd, sliceCmd, infoCmd, viewCmd, genCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildConfig layers preset, config file and CLI flags, flags winning.
func buildConfig(cmd *cobra.Command, model string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Model = model

	if preset != "" {
		p := config.GetPreset(model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		if p.Dt != 0 {
			cfg.Dt = p.Dt
		}
		if p.Duration != 0 {
			cfg.Duration = p.Duration
		}
		if p.Points != 0 {
			cfg.Points = p.Points
		}
		if p.Integrator != "" {
			cfg.Integrator = p.Integrator
		}
		for k, v := range p.Params {
			cfg.Params[k] = v
		}
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if fileCfg.Dt != 0 {
			cfg.Dt = fileCfg.Dt
		}
		if fileCfg.Duration != 0 {
			cfg.Duration = fileCfg.Duration
		}
		if fileCfg.Points != 0 {
			cfg.Points = fileCfg.Points
		}
		if fileCfg.Integrator != "" {
			cfg.Integrator = fileCfg.Integrator
		}
		for k, v := range fileCfg.Params {
			cfg.Params[k] = v
		}
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("points") {
		cfg.Points = points
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integName
	}
	return cfg, nil
}

func runModel(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s...\n", cfg.Model)
	start := time.Now()

	out, err := lab.Run(context.Background(), cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Model, cfg.Dt, cfg.Duration, out.Data, out.Metrics)
	if err != nil {
		return err
	}

	if !noChart {
		chartPath := filepath.Join(st.RunDir(runID), cfg.Model+".png")
		if err := render.LineChart(out.Data, cfg.Model, out.YLabel, chartPath, out.ChartSeries); err != nil {
			fmt.Printf("chart failed: %v\n", err)
		} else {
			fmt.Printf("chart: %s\n", chartPath)
		}
	}

	if out.Grid != nil {
		gridPath := filepath.Join(st.RunDir(runID), out.GridName)
		if err := vtk.WriteVTI(gridPath, out.Grid); err != nil {
			fmt.Printf("grid output failed: %v\n", err)
		} else {
			fmt.Printf("grid: %s\n", gridPath)
		}
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(out.Data.X))
	if len(out.Metrics) > 0 {
		fmt.Println("\nmetrics:")
		for name, val := range out.Metrics {
			fmt.Printf("  %s: %.6g\n", name, val)
		}
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tDURATION\tDT\tCOLUMNS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.6gs\t%d\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			len(run.Columns),
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	ds, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("samples: %d\n\n", len(ds.X))

	maxPlots := 6
	for i, series := range ds.Series {
		if i >= maxPlots {
			fmt.Printf("(%d more series not shown)\n", len(ds.Series)-maxPlots)
			break
		}
		graph := asciigraph.Plot(series.Y,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s vs %s", series.Name, ds.XLabel)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	ds, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{ds.XLabel}
	for _, s := range ds.Series {
		header = append(header, s.Name)
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i := range ds.X {
		row := []string{strconv.FormatFloat(ds.X[i], 'f', 6, 64)}
		for _, s := range ds.Series {
			row = append(row, strconv.FormatFloat(s.Y[i], 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	ds, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	return store.ExportJSON(os.Stdout, meta, ds)
}

func renderSlice(cmd *cobra.Command, args []string) error {
	path := args[0]
	axis, err := field.ParseAxis(axisName)
	if err != nil {
		return err
	}

	v := viewer.New()
	view, err := v.Render(viewer.Request{
		Path:       path,
		Array:      scalarName,
		Axis:       axis,
		Index:      sliceIndex,
		Resolution: resolution,
	})
	if err != nil {
		return err
	}

	st := view.Stats
	var pal *colormap.Palette
	if paletteArg != "" {
		pal, err = colormap.Preset(paletteArg)
		if err != nil {
			return err
		}
	} else {
		below, err := colormap.ParseColor(colorBelow)
		if err != nil {
			return err
		}
		above, err := colormap.ParseColor(colorAbove)
		if err != nil {
			return err
		}
		mid := colormap.Midpoint(st.Min, st.Max)
		if cmd.Flags().Changed("threshold") {
			mid = threshold
		}
		pal, err = colormap.Diverging(below, above, st.Min, st.Max, mid)
		if err != nil {
			return err
		}
	}

	title := fmt.Sprintf("%s  %s=%d  min=%.4g max=%.4g mean=%.4g std=%.4g",
		view.Array, view.Axis, view.Index, st.Min, st.Max, st.Mean, st.Std)
	img := render.Heatmap(view.Slice, pal, st.Min, st.Max, render.HeatmapOptions{Title: title})

	out := outPath
	if out == "" {
		base := filepath.Base(path)
		out = base[:len(base)-len(filepath.Ext(base))] + fmt.Sprintf("_%s%d.png", view.Axis, view.Index)
	}
	if err := render.SavePNG(out, img); err != nil {
		return err
	}
	fmt.Printf("saved: %s\n", out)
	return nil
}

func fileInfo(cmd *cobra.Command, args []string) error {
	v := viewer.New()
	ds, err := v.Describe(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("file: %s\n", args[0])
	fmt.Printf("dimensions: %d x %d x %d\n", ds.Dims[0], ds.Dims[1], ds.Dims[2])
	fmt.Printf("spacing: %g %g %g\n", ds.Spacing[0], ds.Spacing[1], ds.Spacing[2])
	fmt.Printf("origin: %g %g %g\n", ds.Origin[0], ds.Origin[1], ds.Origin[2])
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ARRAY\tMIN\tMAX\tMEAN\tSTD")
	for _, name := range ds.ArrayNames() {
		f, err := ds.Field(name)
		if err != nil {
			continue
		}
		st := field.ComputeStats(f.Data)
		fmt.Fprintf(w, "%s\t%.6g\t%.6g\t%.6g\t%.6g\n", name, st.Min, st.Max, st.Mean, st.Std)
	}
	return w.Flush()
}

func viewFile(cmd *cobra.Command, args []string) error {
	axis, err := field.ParseAxis(axisName)
	if err != nil {
		return err
	}
	m, err := tui.NewModel(args[0], viewer.New(), axis, resolution)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func genSample(cmd *cobra.Command, args []string) error {
	var ds *vtk.Dataset
	if genNz <= 1 {
		ds = vtk.GenerateSample2D(genNx, genNy, genNoise, genSeed)
	} else {
		ds = vtk.GenerateSample3D(genNx, genNy, genNz, genNoise, genSeed)
	}
	if err := vtk.WriteVTI(args[0], ds); err != nil {
		return err
	}
	fmt.Printf("generated: %s (%d x %d x %d, arrays %v)\n",
		args[0], ds.Dims[0], ds.Dims[1], ds.Dims[2], ds.ArrayNames())
	return nil
}
