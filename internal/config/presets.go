package config

import "sort"

// Presets holds named configurations per scene. "preview" is quick to render,
// "final" is presentation quality.
var Presets = map[string]map[string]*Config{
	"bts": {
		"preview": {Scene: "bts", Quality: "low", Format: "gif"},
		"final":   {Scene: "bts", Quality: "high", Format: "png"},
		"still":   {Scene: "bts", Quality: "high", Format: "svg"},
	},
	"clay": {
		"preview": {Scene: "clay", Quality: "low", Format: "gif", FPS: 10},
		"final":   {Scene: "clay", Quality: "high", Format: "png"},
	},
	"cemented": {
		"preview": {Scene: "cemented", Quality: "low", Format: "gif", FPS: 10},
		"final":   {Scene: "cemented", Quality: "4k", Format: "png"},
	},
}

func GetPreset(scene, preset string) *Config {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	cfg, ok := scenePresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(scene string) []string {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenePresets))
	for name := range scenePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
