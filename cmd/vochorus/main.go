// Command vochorus renders a WAV sample through the vocoder chorus engine.
//
// Usage:
//
//	vochorus [flags] -in input.wav -out output.wav
//
// Examples:
//
//	vochorus -in loop.wav -out slow.wav -speed 0.5
//	vochorus -in voice.wav -out wide.wav -pitch 1.5 -voices 6 -detune 0.4 -spread 1 -mix 0.6
//	vochorus -in pad.wav -out mono.wav -channels 1 -pan left -duration 8
//	vochorus -in pad.wav -out pad.wav -measure -wisdom ~/.config/vochorus/transform.wis
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	vecmath "github.com/cwbudde/algo-vecmath"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-vochorus/dsp/transform"
	"github.com/cwbudde/algo-vochorus/dsp/vochorus"
)

type options struct {
	in, out    string
	configPath string
	rate       float64
	params     vochorus.Params
	pan        string
	speed      float64
	channels   int
	duration   float64
	block      int
	notes      int
	wisdom     string
	measure    bool
	verbose    bool
}

func parseFlags(args []string) (*options, error) {
	o := &options{}

	fs := flag.NewFlagSet("vochorus", flag.ContinueOnError)
	fs.StringVar(&o.in, "in", "", "input WAV file")
	fs.StringVar(&o.out, "out", "", "output WAV file")
	fs.StringVar(&o.configPath, "config", "", "YAML engine config")
	fs.Float64Var(&o.rate, "rate", 0, "engine sample rate in Hz (0 = input rate)")
	fs.Float64Var(&o.params.Pitch, "pitch", 1, "playback rate ratio")
	fs.Float64Var(&o.speed, "speed", 1, "seek advance per output sample")
	fs.IntVar(&o.params.Voices, "voices", 0, "chorus voices (0-6)")
	fs.Float64Var(&o.params.Detune, "detune", 0, "chorus detune amount [0,1]")
	fs.Float64Var(&o.params.Spread, "spread", 0, "chorus stereo spread [0,1]")
	fs.Float64Var(&o.params.Mix, "mix", 0, "center/side balance [0,1]")
	fs.StringVar(&o.pan, "pan", "both", "center routing: both, left or right")
	fs.IntVar(&o.channels, "channels", 2, "output channels (1 or 2)")
	fs.Float64Var(&o.duration, "duration", 0, "output length in seconds (0 = input length)")
	fs.IntVar(&o.block, "block", 512, "render block size in samples")
	fs.IntVar(&o.notes, "notes", 1, "simultaneous notes")
	fs.StringVar(&o.wisdom, "wisdom", "", "transform wisdom file (default "+transform.DefaultWisdomPath+" with -measure)")
	fs.BoolVar(&o.measure, "measure", false, "time both FFT backends and remember the faster")
	fs.BoolVar(&o.verbose, "v", false, "verbose logging")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: vochorus [flags] -in input.wav -out output.wav\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch {
	case o.in == "" || o.out == "":
		return nil, errors.New("both -in and -out are required")
	case o.channels != 1 && o.channels != 2:
		return nil, fmt.Errorf("-channels must be 1 or 2: %d", o.channels)
	case o.block <= 0:
		return nil, fmt.Errorf("-block must be > 0: %d", o.block)
	case o.notes <= 0:
		return nil, fmt.Errorf("-notes must be > 0: %d", o.notes)
	}

	pan, err := vochorus.ParsePanMode(o.pan)
	if err != nil {
		return nil, err
	}
	o.params.Pan = pan

	return o, nil
}

func (o *options) config(sampleRate float64) (vochorus.Config, error) {
	cfg := vochorus.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = vochorus.LoadConfigFile(o.configPath); err != nil {
			return cfg, err
		}
	}

	switch {
	case o.rate > 0:
		cfg.SampleRate = o.rate
	case o.configPath == "" && sampleRate > 0:
		cfg.SampleRate = sampleRate
	}

	if o.measure {
		cfg.Planning = transform.ModeMeasure
		if o.wisdom == "" && cfg.WisdomPath == "" {
			cfg.WisdomPath = transform.DefaultWisdomPath
		}
	}
	if o.wisdom != "" {
		cfg.WisdomPath = o.wisdom
	}

	return cfg, cfg.Validate()
}

func main() {
	o, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "vochorus:", err)
		os.Exit(2)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if o.verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	if err := run(o, logger); err != nil {
		logger.WithError(err).Error("render failed")
		os.Exit(1)
	}
}

func run(o *options, logger *logrus.Logger) error {
	sample, err := loadSample(o.in)
	if err != nil {
		return err
	}

	cfg, err := o.config(sample.Rate)
	if err != nil {
		return err
	}

	engine, err := vochorus.New(cfg, vochorus.WithLogger(logger))
	if err != nil {
		return err
	}

	frames := sample.Len()
	if o.duration > 0 {
		frames = int(o.duration * cfg.SampleRate)
	}

	logger.WithFields(logrus.Fields{
		"input":    o.in,
		"frames":   frames,
		"rate":     cfg.SampleRate,
		"channels": o.channels,
		"notes":    o.notes,
	}).Info("Rendering")

	out := render(engine, sample, o, frames)

	if err := writeWAV(o.out, int(cfg.SampleRate), out); err != nil {
		return err
	}

	return engine.Close()
}

// render plays o.notes copies of sample with the same controls and sums them.
func render(engine *vochorus.Engine, sample vochorus.Sample, o *options, frames int) [][]float64 {
	rate := engine.Config().SampleRate

	notes := make([]*vochorus.Note, o.notes)
	for i := range notes {
		notes[i] = engine.NoteOn(sample)
	}

	mix := make([][]float64, o.channels)
	scratch := make([][]float64, o.channels)
	for c := range mix {
		mix[c] = make([]float64, frames)
		scratch[c] = make([]float64, o.block)
	}

	seek := make([]float64, o.block)

	for start := 0; start < frames; start += o.block {
		n := min(o.block, frames-start)

		block := vochorus.Block{Out: make([][]float64, o.channels), Seek: seek[:n]}
		for c := range scratch {
			block.Out[c] = scratch[c][:n]
		}
		for i := range n {
			seek[i] = o.speed * float64(start+i) / rate
		}

		for _, note := range notes {
			note.Render(block, o.params)
			for c := range mix {
				vecmath.AddBlockInPlace(mix[c][start:start+n], block.Out[c])
			}
		}
	}

	for _, note := range notes {
		engine.NoteOff(note)
	}

	return mix
}
