package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/soillab/internal/anim"
	"github.com/san-kum/soillab/internal/automation"
	"github.com/san-kum/soillab/internal/config"
	"github.com/san-kum/soillab/internal/experiment"
	"github.com/san-kum/soillab/internal/labtest"
	"github.com/san-kum/soillab/internal/render"
	"github.com/san-kum/soillab/internal/scene"
	"github.com/san-kum/soillab/internal/sim"
	"github.com/san-kum/soillab/internal/storage"
)

// resolveConfig applies defaults < preset < config file < flags set on the
// command line.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	cfg, err := config.Resolve(name, preset, configFile)
	if err != nil {
		var pe *config.PresetError
		if errors.As(err, &pe) {
			return nil, fmt.Errorf("%w (available: %v)", pe, config.ListPresets(pe.Scene))
		}
		return nil, err
	}
	if len(args) > 0 {
		cfg.Scene = args[0]
	}

	flags := cmd.Flags()
	if flags.Changed("quality") {
		cfg.Quality = quality
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("format") {
		cfg.Format = format
	}
	if flags.Changed("out") {
		cfg.Out = outPath
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("rate") {
		cfg.Rate = rateName
	}
	if flags.Changed("log-level") || cfg.LogLevel == "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

func defaultOut(sceneName string, f render.Format) string {
	if f == render.FormatPNG {
		return sceneName + "_frames"
	}
	return sceneName + "." + string(f)
}

func renderScene(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	q, err := render.LookupQuality(cfg.Quality)
	if err != nil {
		return err
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		cfg.Width, cfg.Height = q.Width, q.Height
	}
	if cfg.FPS == 0 {
		cfg.FPS = q.FPS
	}
	f, err := render.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	if cfg.Out == "" {
		cfg.Out = defaultOut(cfg.Scene, f)
	}
	bg, err := scene.ParseHex(cfg.Background)
	if err != nil {
		return fmt.Errorf("background: %w", err)
	}
	rate, err := anim.LookupRate(cfg.Rate)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	exp := experiment.New(experiment.Config{
		Scene:   cfg.Scene,
		Options: labtest.Options{Watermark: cfg.Watermark, Rate: rate},
		FPS:     cfg.FPS,
	}, registry, logger)
	if err := exp.Setup(); err != nil {
		return err
	}
	exp.GetSimulator().AddObserver(experiment.SegmentLogger(logger.With("scene", cfg.Scene), exp.Demo().Timeline.Segments()))

	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}

	tl := exp.Demo().Timeline
	svgAt := at
	if !cmd.Flags().Changed("at") || svgAt < 0 {
		svgAt = tl.Duration()
	}
	n, err := exp.Render(ctx, render.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Workers:    cfg.Workers,
		Background: bg,
		At:         svgAt,
	}, f, cfg.Out)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	runID, err := st.Save(storage.RunMetadata{
		Scene:    cfg.Scene,
		Duration: tl.Duration(),
		Segments: len(tl.Segments()),
		Quality:  q.Name,
		Format:   string(f),
		Output:   cfg.Out,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("rendered %d frames to %s\n", n, cfg.Out)
	fmt.Printf("saved run: %s\n", runID)
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.4f\n", name, result.Metrics[name])
	}
	return nil
}

func showTimeline(cmd *cobra.Command, args []string) error {
	demo, err := registry.Build(args[0], labtest.DefaultOptions())
	if err != nil {
		return err
	}
	tl := demo.Timeline
	segs := tl.Segments()

	fmt.Printf("scene: %s\n", demo.Name)
	fmt.Printf("segments: %d  duration: %.2fs\n\n", len(segs), tl.Duration())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEG\tSTART\tDURATION\tANIMATIONS")
	for _, s := range segs {
		fmt.Fprintf(w, "%d\t%.2fs\t%.2fs\t%s\n", s.Index, s.Start, s.Duration, strings.Join(s.Names(), ", "))
	}
	return w.Flush()
}

// benchScenes plays every registered demonstration at once.
func benchScenes(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(logLevel)
	if err != nil {
		return err
	}

	scenes := registry.List()
	sims := make([]*sim.Simulator, len(scenes))
	for i, s := range scenes {
		demo, err := s.Build(labtest.DefaultOptions())
		if err != nil {
			return err
		}
		sims[i] = sim.New(demo.Timeline)
		for _, m := range registry.DefaultMetrics(s.Name) {
			sims[i].AddMetric(m)
		}
		logger.Debug("built", "scene", s.Name, "duration", demo.Timeline.Duration())
	}

	start := time.Now()
	results, err := sim.NewEnsemble(sims...).Run(cmd.Context(), sim.Config{FPS: benchFPS})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("%-10s  %8s  %10s  %10s\n", "scene", "frames", "peak", "visible")
	fmt.Println(strings.Repeat("-", 44))
	for i, s := range scenes {
		r := results[i]
		fmt.Printf("%-10s  %8d  %10.2f  %10.2f\n", s.Name, r.Frames(), r.Metrics["curve_peak"], r.Metrics["mean_visible"])
	}
	fmt.Printf("\nplayed %d scenes at %.0f fps in %s\n", len(scenes), benchFPS, elapsed.Round(time.Millisecond))
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(logLevel)
	if err != nil {
		return err
	}
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunScenario(ctx, scenario, registry, storage.New(dataDir), logger)
	for _, r := range results {
		fmt.Printf("%-10s %5d frames  %s  (run %s)\n", r.Scene, r.Frames, r.Output, r.RunID)
	}
	return err
}
