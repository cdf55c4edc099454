package config

import (
	"fmt"

	"github.com/spf13/viper"

	"tml/pkg/layout"
	"tml/pkg/render"
)

// Config is the full application configuration.
type Config struct {
	Viewport ViewportConfig `mapstructure:"viewport" yaml:"viewport"`
	Layout   LayoutConfig   `mapstructure:"layout" yaml:"layout"`
	Render   RenderConfig   `mapstructure:"render" yaml:"render"`
	Logger   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
}

// ViewportConfig is the size given to the document before layout.
type ViewportConfig struct {
	Width  int `mapstructure:"width" yaml:"width"`
	Height int `mapstructure:"height" yaml:"height"`
}

type LayoutConfig struct {
	// BlockWidth is "legacy" or "right-margin".
	BlockWidth string `mapstructure:"block_width" yaml:"block_width"`
	// LineHeight lets line-height replace the font size as text height.
	LineHeight bool `mapstructure:"line_height" yaml:"line_height"`
}

type RenderConfig struct {
	// Format is "html", "png", "tree" or "dump".
	Format string `mapstructure:"format" yaml:"format"`
	// Jobs bounds how many input files are processed at once.
	Jobs     int     `mapstructure:"jobs" yaml:"jobs"`
	Scale    float64 `mapstructure:"scale" yaml:"scale"`
	Outlines bool    `mapstructure:"outlines" yaml:"outlines"`
	OutDir   string  `mapstructure:"out_dir" yaml:"out_dir"`
}

// LoggerConfig holds the configuration for the logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

var formats = map[string]bool{"html": true, "png": true, "tree": true, "dump": true}

// SetDefaults registers every default with v.
func SetDefaults(v *viper.Viper) {
	// -- Viewport --
	v.SetDefault("viewport.width", 100)
	v.SetDefault("viewport.height", 100)

	// -- Layout --
	v.SetDefault("layout.block_width", "legacy")
	v.SetDefault("layout.line_height", false)

	// -- Render --
	v.SetDefault("render.format", "html")
	v.SetDefault("render.jobs", 4)
	v.SetDefault("render.scale", 1.0)
	v.SetDefault("render.outlines", true)
	v.SetDefault("render.out_dir", "")

	// -- Logger --
	v.SetDefault("logger.level", "warn")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "tml")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
	v.SetDefault("logger.compress", false)
}

// NewDefaultConfig returns the configuration made of defaults only.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// NewConfigFromViper unmarshals and validates the configuration held by v.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Viewport.Width < 0 || c.Viewport.Height < 0 {
		return fmt.Errorf("viewport size must not be negative, got %dx%d", c.Viewport.Width, c.Viewport.Height)
	}
	if _, ok := layout.ParseBlockWidthMode(c.Layout.BlockWidth); !ok {
		return fmt.Errorf("layout.block_width must be legacy or right-margin, got %q", c.Layout.BlockWidth)
	}
	if !formats[c.Render.Format] {
		return fmt.Errorf("render.format must be html, png, tree or dump, got %q", c.Render.Format)
	}
	if c.Render.Jobs <= 0 {
		return fmt.Errorf("render.jobs must be a positive integer")
	}
	if c.Render.Scale <= 0 {
		return fmt.Errorf("render.scale must be positive")
	}
	return nil
}

// LayoutOptions turns the layout section into layouter options.
func (c *Config) LayoutOptions() []layout.Option {
	mode, _ := layout.ParseBlockWidthMode(c.Layout.BlockWidth)
	return []layout.Option{layout.WithBlockWidth(mode), layout.WithLineHeight(c.Layout.LineHeight)}
}

// RenderOptions turns the render section into raster options.
func (c *Config) RenderOptions() render.Options {
	return render.Options{Scale: c.Render.Scale, Outlines: c.Render.Outlines}
}
