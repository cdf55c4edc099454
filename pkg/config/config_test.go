package config

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tml/pkg/render"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, 100, cfg.Viewport.Width)
	assert.Equal(t, 100, cfg.Viewport.Height)
	assert.Equal(t, "legacy", cfg.Layout.BlockWidth)
	assert.False(t, cfg.Layout.LineHeight)
	assert.Equal(t, "html", cfg.Render.Format)
	assert.Equal(t, 4, cfg.Render.Jobs)
	assert.Equal(t, "warn", cfg.Logger.Level)
	assert.Empty(t, cfg.Logger.LogFile)
	assert.NoError(t, cfg.Validate())
}

func TestNewConfigFromViper_YAML(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	yaml := []byte(`
viewport:
  width: 320
layout:
  block_width: right-margin
  line_height: true
render:
  format: png
  scale: 2
  outlines: false
logger:
  level: debug
`)
	require.NoError(t, v.ReadConfig(bytes.NewBuffer(yaml)))

	cfg, err := NewConfigFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 320, cfg.Viewport.Width)
	assert.Equal(t, 100, cfg.Viewport.Height, "unset keys keep their default")
	assert.Equal(t, "right-margin", cfg.Layout.BlockWidth)
	assert.Equal(t, render.Options{Scale: 2, Outlines: false}, cfg.RenderOptions())
	assert.True(t, cfg.Layout.LineHeight)
	assert.Len(t, cfg.LayoutOptions(), 2)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"negative viewport", func(c *Config) { c.Viewport.Width = -1 }, "viewport size"},
		{"bad block width", func(c *Config) { c.Layout.BlockWidth = "bottom" }, "layout.block_width"},
		{"bad format", func(c *Config) { c.Render.Format = "pdf" }, "render.format"},
		{"zero jobs", func(c *Config) { c.Render.Jobs = 0 }, "render.jobs"},
		{"zero scale", func(c *Config) { c.Render.Scale = 0 }, "render.scale"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNewConfigFromViper_Invalid(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("render.format", "pdf")
	_, err := NewConfigFromViper(v)
	assert.Error(t, err)
}
