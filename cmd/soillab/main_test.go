package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/soillab/internal/anim"
	"github.com/san-kum/soillab/internal/render"
)

func renderFlags() *cobra.Command {
	quality, fps, format, outPath, workers, configFile, preset, logLevel, rateName = "medium", 0, "gif", "", 0, "", "", "info", ""
	cmd := &cobra.Command{Use: "render"}
	cmd.Flags().StringVarP(&quality, "quality", "q", "medium", "")
	cmd.Flags().Float64Var(&fps, "fps", 0, "")
	cmd.Flags().StringVar(&format, "format", "gif", "")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "")
	cmd.Flags().IntVar(&workers, "workers", 0, "")
	cmd.Flags().StringVar(&configFile, "config", "", "")
	cmd.Flags().StringVar(&preset, "preset", "", "")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "")
	cmd.Flags().StringVar(&rateName, "rate", "", "")
	return cmd
}

func TestResolveConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "soillab.yaml")
	if err := os.WriteFile(path, []byte("quality: high\nfps: 12\nlog_level: debug\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		flags   []string
		quality string
		fps     float64
		format  string
		level   string
	}{
		{"defaults", nil, "medium", 0, "gif", "info"},
		{"preset", []string{"--preset", "final"}, "high", 0, "png", "info"},
		{"file over preset", []string{"--preset", "preview", "--config", path}, "high", 12, "gif", "debug"},
		{"flags over file", []string{"--config", path, "-q", "low", "--fps", "5", "--log-level", "warn"}, "low", 5, "gif", "warn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := renderFlags()
			if err := cmd.ParseFlags(tt.flags); err != nil {
				t.Fatal(err)
			}
			cfg, err := resolveConfig(cmd, []string{"clay"})
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Scene != "clay" || cfg.Quality != tt.quality || cfg.FPS != tt.fps || cfg.Format != tt.format || cfg.LogLevel != tt.level {
				t.Errorf("config = %+v", cfg)
			}
		})
	}
}

func TestResolveConfigRate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "soillab.yaml")
	if err := os.WriteFile(path, []byte("rate: linear\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		flags []string
		want  string
	}{
		{"per animation", nil, ""},
		{"file", []string{"--config", path}, "linear"},
		{"flag over file", []string{"--config", path, "--rate", "spring"}, "spring"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := renderFlags()
			if err := cmd.ParseFlags(tt.flags); err != nil {
				t.Fatal(err)
			}
			cfg, err := resolveConfig(cmd, []string{"bts"})
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Rate != tt.want {
				t.Errorf("rate = %q, want %q", cfg.Rate, tt.want)
			}
			if _, err := anim.LookupRate(cfg.Rate); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestResolveConfigUnknownPreset(t *testing.T) {
	cmd := renderFlags()
	if err := cmd.ParseFlags([]string{"--preset", "still"}); err != nil {
		t.Fatal(err)
	}
	if _, err := resolveConfig(cmd, []string{"clay"}); err == nil {
		t.Error("clay has no still preset")
	}
}

func TestDefaultOut(t *testing.T) {
	tests := []struct {
		format render.Format
		want   string
	}{
		{render.FormatGIF, "bts.gif"},
		{render.FormatSVG, "bts.svg"},
		{render.FormatPNG, "bts_frames"},
	}
	for _, tt := range tests {
		if got := defaultOut("bts", tt.format); got != tt.want {
			t.Errorf("defaultOut(%s) = %s, want %s", tt.format, got, tt.want)
		}
	}
}

func TestPreviewEntries(t *testing.T) {
	entries := previewEntries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	src, plotID, err := entries[0].Load()
	if err != nil {
		t.Fatal(err)
	}
	if src.Duration() <= 0 || plotID == "" {
		t.Errorf("entry %s loaded duration %f plot %q", entries[0].Name, src.Duration(), plotID)
	}
}
