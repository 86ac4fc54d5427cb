package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/tectonic-data/mandyoc.report/internal/config"
	"github.com/tectonic-data/mandyoc.report/internal/fsutil"
	"github.com/tectonic-data/mandyoc.report/internal/mandyoc"
	"github.com/tectonic-data/mandyoc.report/internal/model"
	"github.com/tectonic-data/mandyoc.report/internal/plotting"
	"github.com/tectonic-data/mandyoc.report/internal/report"
	"github.com/tectonic-data/mandyoc.report/internal/units"
	"github.com/tectonic-data/mandyoc.report/internal/version"
)

var (
	field      string
	step       int
	yIndex     int
	stride     int
	vectors    bool
	outputDir  string
	outputFile string
	configFile string
	csvFile    string
	plotSwarm  bool
	serve      bool
	listenAddr string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mandyoc-report",
		Short: "inspect, plot and report MANDYOC simulation output",
	}

	infoCmd := &cobra.Command{
		Use:   "info [rundir]",
		Short: "show run parameters, saved steps and a quick-look series",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [rundir]",
		Short: "save PNG plots of scalar and velocity fields",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}
	plotCmd.Flags().StringVar(&field, "field", "temperature", "quantity to plot")
	plotCmd.Flags().IntVar(&step, "step", -1, "saved step to plot (-1 = all)")
	plotCmd.Flags().IntVar(&yIndex, "y-index", 0, "profile slice for 3D runs")
	plotCmd.Flags().IntVar(&stride, "stride", 4, "arrow stride for vector plots")
	plotCmd.Flags().BoolVar(&vectors, "vectors", false, "overlay velocity arrows")
	plotCmd.Flags().StringVar(&outputDir, "output", "", "output directory (default from config)")
	plotCmd.Flags().StringVar(&configFile, "config", "", "plot config file (json)")

	swarmCmd := &cobra.Command{
		Use:   "swarm [rundir]",
		Short: "inspect particle swarms",
		Args:  cobra.ExactArgs(1),
		RunE:  runSwarm,
	}
	swarmCmd.Flags().IntVar(&step, "step", -1, "saved step to export or plot (-1 = last)")
	swarmCmd.Flags().StringVar(&csvFile, "csv", "", "export particles of one step to a CSV file")
	swarmCmd.Flags().BoolVar(&plotSwarm, "plot", false, "save a PNG scatter of one step")
	swarmCmd.Flags().StringVar(&outputDir, "output", ".", "output directory for swarm plots")

	reportCmd := &cobra.Command{
		Use:   "report [rundir]",
		Short: "build an HTML report for a run",
		Args:  cobra.ExactArgs(1),
		RunE:  runReport,
	}
	reportCmd.Flags().StringVar(&field, "field", "", "heatmap quantity (default temperature)")
	reportCmd.Flags().StringVar(&outputFile, "output", "report.html", "output HTML file")
	reportCmd.Flags().BoolVar(&serve, "serve", false, "serve the report over HTTP instead of writing a file")
	reportCmd.Flags().StringVar(&listenAddr, "listen", "localhost:8080", "listen address for --serve")

	modelCmd := &cobra.Command{
		Use:   "model [recipe.yaml]",
		Short: "build MANDYOC input files from a recipe",
		Args:  cobra.ExactArgs(1),
		RunE:  runModel,
	}
	modelCmd.Flags().StringVar(&outputDir, "output", "model", "output directory for the input files")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("mandyoc-report %s (commit %s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		},
	}

	rootCmd.AddCommand(infoCmd, plotCmd, swarmCmd, reportCmd, modelCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runInfo(cmd *cobra.Command, args []string) error {
	ds, err := mandyoc.ReadDataset(args[0], nil)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintf(w, "run:\t%s\n", ds.Path)
	fmt.Fprintf(w, "dimension:\t%dD\n", ds.Params.Dimension)
	fmt.Fprintf(w, "shape:\t%v\n", ds.Params.Shape)
	extent := make([]float64, len(ds.Params.Extent))
	for i, e := range ds.Params.Extent {
		extent[i] = units.MetersToKilometers(e)
	}
	fmt.Fprintf(w, "extent (km):\t%v\n", extent)
	fmt.Fprintf(w, "print step:\t%d\n", ds.Params.PrintStep)
	fmt.Fprintf(w, "saved steps:\t%d\n", len(ds.Steps))

	names := make([]string, 0, len(ds.Fields))
	for name := range ds.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintf(w, "fields:\t%v\n", names)
	w.Flush()

	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "step\ttime (Ma)")
	for i, s := range ds.Steps {
		fmt.Fprintf(w, "%d\t%.3f\n", s, ds.Times[i])
	}
	w.Flush()

	// Quick-look sparkline of the mean temperature evolution.
	temper, err := ds.Field("temperature")
	if err != nil || len(ds.Steps) < 2 {
		return nil
	}
	data := make([]float64, len(ds.Steps))
	for i := range ds.Steps {
		data[i] = stat.Mean(temper.Data[i], nil)
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption("mean temperature (K) per saved step"),
	))
	return nil
}

func runPlot(cmd *cobra.Command, args []string) error {
	quantities := []string{field}
	if vectors || field == "velocity" {
		quantities = append(quantities, "velocity")
	}
	ds, err := mandyoc.ReadDataset(args[0], &mandyoc.ReadOptions{Quantities: dedupe(quantities)})
	if err != nil {
		return err
	}

	cfg := &config.PlotConfig{}
	if configFile != "" {
		cfg, err = config.LoadPlotConfig(configFile)
		if err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("y-index") {
		cfg.YIndex = &yIndex
	}
	if cmd.Flags().Changed("stride") {
		cfg.Stride = &stride
	}

	baseDir := outputDir
	if baseDir == "" {
		baseDir = cfg.GetOutputDir()
	}
	outDir, err := plotting.MakeOutputDir(baseDir, ds.Path)
	if err != nil {
		return err
	}

	if step >= 0 {
		stepIndex, err := ds.StepIndex(step)
		if err != nil {
			return err
		}
		return savePlotStep(ds, stepIndex, outDir, cfg)
	}

	var n int
	if vectors || field == "velocity" {
		background := field
		if background == "velocity" {
			background = ""
		}
		n, err = plotting.SaveVelocitySeries(ds, background, outDir, cfg)
	} else {
		n, err = plotting.SaveScalarSeries(ds, field, outDir, cfg)
	}
	if err != nil {
		return err
	}
	fmt.Printf("saved %d plots to %s\n", n, outDir)
	return nil
}

func savePlotStep(ds *mandyoc.Dataset, stepIndex int, outDir string, cfg *config.PlotConfig) error {
	var (
		name string
		err  error
	)
	if vectors || field == "velocity" {
		background := field
		if background == "velocity" {
			background = ""
		}
		plt, perr := plotting.VelocityPlot(ds, background, stepIndex, cfg)
		if perr != nil {
			return perr
		}
		name = fmt.Sprintf("velocity%05d.png", ds.Steps[stepIndex])
		err = plotting.SavePlot(plt, filepath.Join(outDir, name), cfg)
	} else {
		plt, perr := plotting.ScalarPlot(ds, field, stepIndex, cfg)
		if perr != nil {
			return perr
		}
		name = fmt.Sprintf("%s%05d.png", field, ds.Steps[stepIndex])
		err = plotting.SavePlot(plt, filepath.Join(outDir, name), cfg)
	}
	if err != nil {
		return err
	}
	fmt.Printf("saved %s\n", filepath.Join(outDir, name))
	return nil
}

func runSwarm(cmd *cobra.Command, args []string) error {
	params, err := mandyoc.ReadParameters(filepath.Join(args[0], mandyoc.DefaultParametersFile))
	if err != nil {
		return err
	}
	swarms, err := mandyoc.ReadSwarms(args[0], params)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "step\ttime (Ma)\tparticles")
	for _, s := range swarms {
		fmt.Fprintf(w, "%d\t%.3f\t%d\n", s.Step, s.Time, s.Len())
	}
	w.Flush()

	if csvFile == "" && !plotSwarm {
		return nil
	}
	swarm, err := pickSwarm(swarms, step)
	if err != nil {
		return err
	}

	if csvFile != "" {
		if err := exportSwarmCSV(swarm, csvFile); err != nil {
			return err
		}
		fmt.Printf("exported %d particles to %s\n", swarm.Len(), csvFile)
	}
	if plotSwarm {
		plt, err := plotting.SwarmPlot(swarm)
		if err != nil {
			return err
		}
		name := filepath.Join(outputDir, fmt.Sprintf("swarm%05d.png", swarm.Step))
		if err := plotting.SavePlot(plt, name, &config.PlotConfig{}); err != nil {
			return err
		}
		fmt.Printf("saved %s\n", name)
	}
	return nil
}

func pickSwarm(swarms []*mandyoc.Swarm, step int) (*mandyoc.Swarm, error) {
	if step < 0 {
		return swarms[len(swarms)-1], nil
	}
	for _, s := range swarms {
		if s.Step == step {
			return s, nil
		}
	}
	return nil, fmt.Errorf("no swarm saved for step %d", step)
}

func exportSwarmCSV(swarm *mandyoc.Swarm, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"x", "y", "z", "flag"}); err != nil {
		return err
	}
	for i := 0; i < swarm.Len(); i++ {
		record := []string{
			strconv.FormatFloat(swarm.X[i], 'g', -1, 64),
			strconv.FormatFloat(swarm.Y[i], 'g', -1, 64),
			strconv.FormatFloat(swarm.Z[i], 'g', -1, 64),
			strconv.FormatFloat(swarm.Flag[i], 'g', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func runReport(cmd *cobra.Command, args []string) error {
	ds, err := mandyoc.ReadDataset(args[0], nil)
	if err != nil {
		return err
	}
	rep := report.New(ds, field)

	if serve {
		return report.NewWebServer(rep).ListenAndServe(listenAddr)
	}

	f, err := os.Create(outputFile)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := rep.WriteHTML(f); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outputFile)
	return nil
}

func runModel(cmd *cobra.Command, args []string) error {
	fs := fsutil.OSFileSystem{}
	recipe, err := model.LoadRecipe(fs, args[0])
	if err != nil {
		return err
	}
	if err := recipe.Build(fs, outputDir); err != nil {
		return err
	}
	fmt.Printf("wrote input files to %s\n", outputDir)
	return nil
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := names[:0]
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
