package automation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/soillab/internal/anim"
	"github.com/san-kum/soillab/internal/config"
	"github.com/san-kum/soillab/internal/experiment"
	"github.com/san-kum/soillab/internal/labtest"
	"github.com/san-kum/soillab/internal/render"
	"github.com/san-kum/soillab/internal/scene"
	"github.com/san-kum/soillab/internal/storage"
)

// Scenario is a scripted batch of renders
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	OutDir      string         `yaml:"out_dir"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep renders one scene. Empty fields fall back to the scene preset
// named by Preset, then to the defaults.
type ScenarioStep struct {
	Scene     string  `yaml:"scene"`
	Preset    string  `yaml:"preset"`
	Quality   string  `yaml:"quality"`
	Format    string  `yaml:"format"`
	FPS       float64 `yaml:"fps"`
	At        float64 `yaml:"at"`
	Watermark string  `yaml:"watermark"`
	Rate      string  `yaml:"rate"`
	SaveAs    string  `yaml:"save_as"`
}

// StepResult records where a step was written.
type StepResult struct {
	Scene  string
	Output string
	Frames int
	RunID  string
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%s: scenario has no steps", path)
	}

	return &scenario, nil
}

// stepConfig resolves a step against its preset and the defaults.
func stepConfig(step ScenarioStep) (*config.Config, error) {
	cfg, err := config.Resolve(step.Scene, step.Preset, "")
	if err != nil {
		return nil, err
	}
	cfg.Merge(&config.Config{
		Quality:   step.Quality,
		Format:    step.Format,
		FPS:       step.FPS,
		Watermark: step.Watermark,
		Rate:      step.Rate,
	})
	return cfg, nil
}

// RunScenario renders every step in order. When st is non-nil each played
// step is saved as a run. Results gathered before a failing step are returned
// with the error.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, st *storage.Store, logger *log.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = log.Default()
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		logger.Info("step", "n", i+1, "of", len(scenario.Steps), "scene", step.Scene)

		cfg, err := stepConfig(step)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		q, err := render.LookupQuality(cfg.Quality)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		if cfg.FPS == 0 {
			cfg.FPS = q.FPS
		}
		format, err := render.ParseFormat(cfg.Format)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		bg, err := scene.ParseHex(cfg.Background)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		rate, err := anim.LookupRate(cfg.Rate)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		name := step.SaveAs
		if name == "" {
			name = fmt.Sprintf("%02d_%s", i+1, cfg.Scene)
		}
		if format != render.FormatPNG {
			name += "." + string(format)
		}
		out := filepath.Join(scenario.OutDir, name)

		exp := experiment.New(experiment.Config{
			Scene:   cfg.Scene,
			Options: labtest.Options{Watermark: cfg.Watermark, Rate: rate},
			FPS:     cfg.FPS,
		}, registry, logger)
		if err := exp.Setup(); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}
		exp.GetSimulator().AddObserver(experiment.SegmentLogger(logger.With("step", i+1), exp.Demo().Timeline.Segments()))

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		at := step.At
		if at <= 0 {
			at = exp.Demo().Timeline.Duration()
		}
		n, err := exp.Render(ctx, render.Options{
			Width:      q.Width,
			Height:     q.Height,
			Workers:    cfg.Workers,
			Background: bg,
			At:         at,
		}, format, out)
		if err != nil {
			return results, fmt.Errorf("step %d render: %w", i+1, err)
		}

		sr := StepResult{Scene: cfg.Scene, Output: out, Frames: n}
		if st != nil {
			tl := exp.Demo().Timeline
			sr.RunID, err = st.Save(storage.RunMetadata{
				Scene:    cfg.Scene,
				Duration: tl.Duration(),
				Segments: len(tl.Segments()),
				Quality:  q.Name,
				Format:   string(format),
				Output:   out,
			}, result)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}
