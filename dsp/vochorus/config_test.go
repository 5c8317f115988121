package vochorus

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-vochorus/dsp/transform"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 48000.0, cfg.SampleRate)
	assert.Equal(t, 30, cfg.MaxPolyphony)
	assert.Equal(t, 4096, cfg.FrameLength)
	assert.Equal(t, 8, cfg.Decimation)
	assert.Equal(t, 512, cfg.Hop())
	assert.Equal(t, 0.3, cfg.Headroom)
	assert.Equal(t, transform.BackendAuto, cfg.Backend)
	assert.False(t, cfg.DisablePhaseLock)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{name: "zero rate", modify: func(c *Config) { c.SampleRate = 0 }},
		{name: "nan rate", modify: func(c *Config) { c.SampleRate = math.NaN() }},
		{name: "no polyphony", modify: func(c *Config) { c.MaxPolyphony = 0 }},
		{name: "odd frame", modify: func(c *Config) { c.FrameLength = 4095 }},
		{name: "no decimation", modify: func(c *Config) { c.Decimation = 0 }},
		{name: "uneven hop", modify: func(c *Config) { c.Decimation = 3 }},
		{name: "negative headroom", modify: func(c *Config) { c.Headroom = -1 }},
		{name: "tiny tables", modify: func(c *Config) { c.ScaleResolution = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	doc := `
sample_rate: 44100
max_polyphony: 12
frame_length: 2048
backend: algofft
planning: measure
wisdom_path: ~/wisdom.wis
disable_phase_lock: true
`
	cfg, err := LoadConfig(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, 44100.0, cfg.SampleRate)
	assert.Equal(t, 12, cfg.MaxPolyphony)
	assert.Equal(t, 2048, cfg.FrameLength)
	assert.Equal(t, 8, cfg.Decimation, "unset keys keep their defaults")
	assert.Equal(t, 256, cfg.Hop())
	assert.Equal(t, transform.BackendAlgoFFT, cfg.Backend)
	assert.Equal(t, transform.ModeMeasure, cfg.Planning)
	assert.Equal(t, "~/wisdom.wis", cfg.WisdomPath)
	assert.True(t, cfg.DisablePhaseLock)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []string{
		"frame_length: 1001\n",
		"polyphony: 3\n",
		"backend: fftw\n",
		"sample_rate: [1, 2]\n",
	}

	for _, doc := range tests {
		_, err := LoadConfig(strings.NewReader(doc))
		require.ErrorIs(t, err, ErrInvalidConfig, doc)
	}

	cfg, err := LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vochorus.yaml")
	require.NoError(t, os.WriteFile(path, []byte("headroom: 0.5\n"), 0o600))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Headroom)

	_, err = LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestParsePanMode(t *testing.T) {
	for _, m := range []PanMode{PanBoth, PanLeft, PanRight} {
		got, err := ParsePanMode(strings.ToUpper(m.String()))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	_, err := ParsePanMode("center")
	require.Error(t, err)
}
