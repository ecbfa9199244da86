package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt         = 1e-3
	DefaultDuration   = 10.0
	DefaultPoints     = 400
	DefaultResolution = 400
	DefaultAxis       = "y"
	DefaultPalette    = "aqua-fire"
	DefaultColorBelow = "blue"
	DefaultColorAbove = "red"
)

type Config struct {
	Model      string             `yaml:"model"`
	Integrator string             `yaml:"integrator"`
	Dt         float64            `yaml:"dt"`
	Duration   float64            `yaml:"duration"`
	Points     int                `yaml:"points"`
	Params     map[string]float64 `yaml:"params"`
	Viewer     ViewerConfig       `yaml:"viewer"`
}

// ViewerConfig carries the slice-viewer defaults; a nil Threshold
// means "centre of the data range".
type ViewerConfig struct {
	Axis       string   `yaml:"axis"`
	Index      int      `yaml:"index"`
	Resolution int      `yaml:"resolution"`
	Scalar     string   `yaml:"scalar"`
	Palette    string   `yaml:"palette"`
	ColorBelow string   `yaml:"color_below"`
	ColorAbove string   `yaml:"color_above"`
	Threshold  *float64 `yaml:"threshold"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:      "tafel",
		Integrator: "euler",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Points:     DefaultPoints,
		Params:     map[string]float64{},
		Viewer: ViewerConfig{
			Axis:       DefaultAxis,
			Index:      -1,
			Resolution: DefaultResolution,
			Palette:    DefaultPalette,
			ColorBelow: DefaultColorBelow,
			ColorAbove: DefaultColorAbove,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
