package arbor

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title      string   `yaml:"title"`
	Width      int      `yaml:"width"`
	Height     int      `yaml:"height"`
	TPS        int      `yaml:"tps"`
	Debug      bool     `yaml:"debug"`
	ClearColor HexColor `yaml:"clear_color"`
}

// DefaultRunConfig returns a 640x480 window ticking at 60 TPS on black.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Title:      "arbor",
		Width:      640,
		Height:     480,
		TPS:        60,
		ClearColor: HexColor{A: 0xff},
	}
}

// LoadRunConfig reads a YAML file. Fields missing from the file keep their
// DefaultRunConfig values.
func LoadRunConfig(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("arbor: load %s: %w", path, err)
	}
	cfg, err := ParseRunConfig(data)
	if err != nil {
		return RunConfig{}, fmt.Errorf("arbor: %s: %w", path, err)
	}
	return cfg, nil
}

// ParseRunConfig decodes YAML on top of DefaultRunConfig and validates it.
func ParseRunConfig(data []byte) (RunConfig, error) {
	cfg := DefaultRunConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunConfig{}, fmt.Errorf("unmarshal run config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return RunConfig{}, err
	}
	return cfg, nil
}

// Validate reports every invalid field, joined.
func (c RunConfig) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height))
	}
	if c.TPS <= 0 {
		errs = append(errs, fmt.Errorf("tps %d must be positive", c.TPS))
	}
	return errors.Join(errs...)
}

// Viewport returns the full-window viewport.
func (c RunConfig) Viewport() Viewport {
	return Viewport{Width: float64(c.Width), Height: float64(c.Height)}
}

// HexColor is a color written in YAML as "#RRGGBB" or "#RRGGBBAA".
type HexColor color.RGBA

// Color returns the color as a color.RGBA.
func (c HexColor) Color() color.RGBA {
	return color.RGBA(c)
}

func (c *HexColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	var out [4]uint8
	out[3] = 0xff
	for i := 0; i < len(s)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return fmt.Errorf("invalid color format: %s: %w", value.Value, err)
		}
		out[i] = v
	}
	*c = HexColor{R: out[0], G: out[1], B: out[2], A: out[3]}
	return nil
}

func (c HexColor) MarshalYAML() (any, error) {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), nil
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A), nil
}
