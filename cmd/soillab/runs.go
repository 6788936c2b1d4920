package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/soillab/internal/config"
	"github.com/san-kum/soillab/internal/export"
	"github.com/san-kum/soillab/internal/render"
	"github.com/san-kum/soillab/internal/storage"
)

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
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tDURATION\tFRAMES\tFPS\tFORMAT\tOUTPUT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%d\t%g\t%s\t%s\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Frames,
			run.FPS,
			run.Format,
			run.Output,
		)
	}

	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	if svgPath != "" {
		samples, err := st.LoadSamples(runID)
		if err != nil {
			return err
		}
		xs, ys := storage.Trace(samples)
		if len(xs) < 2 {
			return fmt.Errorf("run %s has no curve trace", runID)
		}
		f, err := os.Create(svgPath)
		if err != nil {
			return err
		}
		if err := export.TraceSVG(f, xs, ys, 800, 500, "#58C4DD"); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}

	return st.ExportJSON(runID, os.Stdout)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	return st.CopySamples(args[0], os.Stdout)
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
	xs, ys := storage.Trace(samples)
	if len(ys) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("samples: %d (%d with a curve tip)\n\n", len(samples), len(ys))

	segs := make([]float64, len(samples))
	for i, smp := range samples {
		segs[i] = float64(smp.Segment)
	}

	for _, p := range []struct {
		data    []float64
		caption string
	}{
		{ys, "curve tip y per frame"},
		{xs, "curve tip x per frame"},
		{segs, "segment per frame"},
	} {
		graph := asciigraph.Plot(p.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if pngPath != "" {
		if err := export.Chart(pngPath, meta.ID, "curve x", "curve y", export.Series{Name: meta.Scene, X: xs, Y: ys}); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", pngPath)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		presets := config.ListPresets(args[0])
		if len(presets) == 0 {
			fmt.Printf("no presets for scene: %s\n", args[0])
			return nil
		}
		fmt.Printf("presets for %s:\n", args[0])
		for _, p := range presets {
			fmt.Printf("  %s\n", p)
		}
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "QUALITY\tSIZE\tFPS")
	for _, q := range render.Qualities() {
		fmt.Fprintf(w, "%s\t%dx%d\t%g\n", q.Name, q.Width, q.Height, q.FPS)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "SCENE\tPRESET\tQUALITY\tFORMAT")
	for _, name := range registry.Names() {
		for _, p := range config.ListPresets(name) {
			cfg := config.GetPreset(name, p)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, p, cfg.Quality, cfg.Format)
		}
	}
	return w.Flush()
}
