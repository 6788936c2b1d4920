package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/soillab/internal/anim"
	"github.com/san-kum/soillab/internal/config"
	"github.com/san-kum/soillab/internal/experiment"
	"github.com/san-kum/soillab/internal/labtest"
	"github.com/san-kum/soillab/internal/sim"
	"github.com/san-kum/soillab/internal/viz"
)

var (
	dataDir  string
	logLevel string

	// render
	quality    string
	fps        float64
	format     string
	outPath    string
	workers    int
	configFile string
	preset     string
	at         float64
	rateName   string

	// preview
	theme string

	// bench
	benchFPS float64

	// curves
	samples      int
	chartSamples int
	asCSV        bool
	load         float64
	diameter     float64
	thickness    float64

	// runs
	svgPath string
	pngPath string
)

var registry = experiment.NewRegistry()

func main() {
	rootCmd := &cobra.Command{
		Use:          "soillab",
		Short:        "geotechnical lab test animations",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive(previewEntries(), config.DefaultTheme)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".soillab", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "list demonstrations",
		RunE:  listScenes,
	}

	renderCmd := &cobra.Command{
		Use:   "render [scene]",
		Short: "render a demonstration to gif, png frames or svg",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderScene,
	}
	renderCmd.Flags().StringVarP(&quality, "quality", "q", config.DefaultQuality, "quality preset (low, medium, high, 4k)")
	renderCmd.Flags().Float64Var(&fps, "fps", 0, "frame rate (default from quality)")
	renderCmd.Flags().StringVar(&format, "format", config.DefaultFormat, "output format (gif, png, svg)")
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file, or directory for png")
	renderCmd.Flags().IntVar(&workers, "workers", 0, "render workers (default NumCPU)")
	renderCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	renderCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	renderCmd.Flags().Float64Var(&at, "at", -1, "time of the svg frame (default: end)")
	renderCmd.Flags().StringVar(&rateName, "rate", "", "easing for every animation ("+strings.Join(anim.RateNames(), ", ")+"; default: per animation)")

	previewCmd := &cobra.Command{
		Use:   "preview [scene]",
		Short: "play a demonstration in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  previewScene,
	}
	previewCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "colour theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	timelineCmd := &cobra.Command{
		Use:   "timeline [scene]",
		Short: "show the segments of a demonstration",
		Args:  cobra.ExactArgs(1),
		RunE:  showTimeline,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "play every demonstration and report timings",
		RunE:  benchScenes,
	}
	benchCmd.Flags().Float64Var(&benchFPS, "fps", 30, "frame rate")

	curveCmd := &cobra.Command{
		Use:   "curve [name]",
		Short: "sample a material curve",
		Args:  cobra.ExactArgs(1),
		RunE:  showCurve,
	}
	curveCmd.Flags().IntVar(&samples, "samples", 100, "number of samples")
	curveCmd.Flags().BoolVar(&asCSV, "csv", false, "print samples as csv")

	plotCurveCmd := &cobra.Command{
		Use:   "plot-curve [name] [file.png]",
		Short: "chart a material curve to png",
		Args:  cobra.ExactArgs(2),
		RunE:  plotCurve,
	}
	plotCurveCmd.Flags().IntVar(&chartSamples, "samples", 200, "number of samples")

	btsCmd := &cobra.Command{
		Use:   "bts-strength",
		Short: "indirect tensile strength 2P/(pi D T)",
		RunE:  btsStrength,
	}
	btsCmd.Flags().Float64Var(&load, "load", 10000, "failure load P (N)")
	btsCmd.Flags().Float64Var(&diameter, "diameter", 50, "disk diameter D (mm)")
	btsCmd.Flags().Float64Var(&thickness, "thickness", 25, "disk thickness T (mm)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&svgPath, "svg", "", "also write the curve trace as svg")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the curve trace of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&pngPath, "png", "", "also write a png chart")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "render the steps of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [scene]",
		Short: "list quality presets and scene presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	rootCmd.AddCommand(scenesCmd, renderCmd, previewCmd, timelineCmd, benchCmd, curveCmd, plotCurveCmd, btsCmd,
		batchCmd, listCmd, exportCmd, exportCSVCmd, plotCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger writes to stderr so command output on stdout stays clean.
func newLogger(level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Prefix:          "soillab",
	}), nil
}

func previewEntries() []viz.Entry {
	scenes := registry.List()
	entries := make([]viz.Entry, 0, len(scenes))
	for _, s := range scenes {
		entries = append(entries, viz.Entry{
			Name:        s.Name,
			Description: s.Description,
			Load: func() (sim.Source, string, error) {
				demo, err := s.Build(labtest.DefaultOptions())
				if err != nil {
					return nil, "", err
				}
				return demo.Timeline, demo.PlotID, nil
			},
		})
	}
	return entries
}

func listScenes(cmd *cobra.Command, args []string) error {
	for _, s := range registry.List() {
		fmt.Printf("  %-10s %s\n", s.Name, s.Description)
	}
	return nil
}

func previewScene(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return viz.RunInteractive(previewEntries(), theme)
	}
	demo, err := registry.Build(args[0], labtest.DefaultOptions())
	if err != nil {
		return err
	}
	return viz.Run(demo.Name, demo.Timeline, demo.PlotID, theme)
}
