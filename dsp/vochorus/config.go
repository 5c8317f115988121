package vochorus

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-vochorus/dsp/transform"
)

const (
	defaultSampleRate      = 48000.0
	defaultMaxPolyphony    = 30
	defaultFrameLength     = 4096
	defaultDecimation      = 8
	defaultHeadroom        = 0.3
	defaultScaleResolution = 1024

	// MaxChorusVoices is the number of chorus voices every slot carries.
	MaxChorusVoices = 6
)

// ErrInvalidConfig reports a Config that fails validation.
var ErrInvalidConfig = errors.New("vochorus: invalid config")

// Config holds the construction-time engine settings.
type Config struct {
	// SampleRate is the engine (output) rate in Hz.
	SampleRate float64 `yaml:"sample_rate"`
	// MaxPolyphony is the number of notes that can hold a slot at once.
	MaxPolyphony int `yaml:"max_polyphony"`
	// FrameLength is the transform size N.
	FrameLength int `yaml:"frame_length"`
	// Decimation is the overlap factor; the hop is FrameLength/Decimation.
	Decimation int `yaml:"decimation"`
	// Headroom scales the mixed output.
	Headroom float64 `yaml:"headroom"`
	// ScaleResolution is the length of the mix and detune lookup tables.
	ScaleResolution int `yaml:"scale_resolution"`

	Backend    transform.Backend `yaml:"backend"`
	Planning   transform.Mode    `yaml:"planning"`
	WisdomPath string            `yaml:"wisdom_path"`

	// DisablePhaseLock skips the vocoder so frames pass straight from
	// analysis to resynthesis.
	DisablePhaseLock bool `yaml:"disable_phase_lock"`
}

// DefaultConfig returns the stock engine settings.
func DefaultConfig() Config {
	return Config{
		SampleRate:      defaultSampleRate,
		MaxPolyphony:    defaultMaxPolyphony,
		FrameLength:     defaultFrameLength,
		Decimation:      defaultDecimation,
		Headroom:        defaultHeadroom,
		ScaleResolution: defaultScaleResolution,
	}
}

// Hop returns the analysis hop in samples.
func (c Config) Hop() int {
	if c.Decimation <= 0 {
		return 0
	}
	return c.FrameLength / c.Decimation
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	switch {
	case !isFinitePositive(c.SampleRate):
		return fmt.Errorf("%w: sample rate must be positive and finite: %f", ErrInvalidConfig, c.SampleRate)
	case c.MaxPolyphony <= 0:
		return fmt.Errorf("%w: max polyphony must be > 0: %d", ErrInvalidConfig, c.MaxPolyphony)
	case c.FrameLength < 2 || c.FrameLength%2 != 0:
		return fmt.Errorf("%w: frame length must be even and >= 2: %d", ErrInvalidConfig, c.FrameLength)
	case c.Decimation <= 0 || c.Decimation > c.FrameLength || c.FrameLength%c.Decimation != 0:
		return fmt.Errorf("%w: decimation must divide frame length %d: %d", ErrInvalidConfig, c.FrameLength, c.Decimation)
	case c.Headroom < 0 || math.IsNaN(c.Headroom) || math.IsInf(c.Headroom, 0):
		return fmt.Errorf("%w: headroom must be finite and >= 0: %f", ErrInvalidConfig, c.Headroom)
	case c.ScaleResolution < 2:
		return fmt.Errorf("%w: scale resolution must be >= 2: %d", ErrInvalidConfig, c.ScaleResolution)
	}
	return nil
}

// LoadConfig decodes YAML from r on top of DefaultConfig.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadConfigFile reads a YAML config file. A leading ~ is expanded.
func LoadConfigFile(path string) (Config, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return Config{}, fmt.Errorf("vochorus: expand config path: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	return LoadConfig(f)
}

func isFinitePositive(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
