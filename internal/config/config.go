package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDataDir       = ".fibmod"
	DefaultSolver        = "fibonacci_mod"
	DefaultGridWarnSize  = 200
	DefaultSmoothing     = 0.95
	DefaultAlpha         = 0.8
	DefaultPreviewLimit  = 8
	DefaultDisplayLimit  = 20
	DefaultPixelsPerCell = 10
)

type Config struct {
	DataDir string       `yaml:"data_dir"`
	Solver  string       `yaml:"solver"`
	Render  RenderConfig `yaml:"render"`
	Color   ColorConfig  `yaml:"color"`
	Legend  LegendConfig `yaml:"legend"`
}

type RenderConfig struct {
	// GridWarnSize is the dimension above which render paths ask for
	// confirmation before allocating the m×m buffer.
	GridWarnSize  int `yaml:"grid_warn_size"`
	PixelsPerCell int `yaml:"pixels_per_cell"`
}

type ColorConfig struct {
	Smoothing float64 `yaml:"smoothing"`
	Alpha     float64 `yaml:"alpha"`
}

type LegendConfig struct {
	PreviewLimit int `yaml:"preview_limit"`
	DisplayLimit int `yaml:"display_limit"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir: DefaultDataDir,
		Solver:  DefaultSolver,
		Render: RenderConfig{
			GridWarnSize:  DefaultGridWarnSize,
			PixelsPerCell: DefaultPixelsPerCell,
		},
		Color: ColorConfig{
			Smoothing: DefaultSmoothing,
			Alpha:     DefaultAlpha,
		},
		Legend: LegendConfig{
			PreviewLimit: DefaultPreviewLimit,
			DisplayLimit: DefaultDisplayLimit,
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
