package vochorus

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-vochorus/dsp/transform"
	"github.com/cwbudde/algo-vochorus/dsp/window"
)

// Engine owns the slot pool, the shared window and lookup tables, and the
// storage of released notes.
type Engine struct {
	cfg      Config
	logger   logrus.FieldLogger
	planner  *transform.Planner
	pool     *Pool
	scales   *scales
	analyzer analyzer
	window   []float64
	invN     float64
	overlap  float64

	mu     sync.Mutex
	free   []noteStorage
	active int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default is logrus.StandardLogger().
func WithLogger(logger logrus.FieldLogger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithPlanner supplies a transform planner instead of one built from the
// config. Config.WisdomPath still controls import and export.
func WithPlanner(p *transform.Planner) Option {
	return func(e *Engine) {
		e.planner = p
	}
}

// New validates cfg and builds every slot up front.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:    cfg,
		logger: logrus.StandardLogger(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	if e.planner == nil {
		e.planner = transform.NewPlanner(
			transform.WithMode(cfg.Planning),
			transform.WithBackend(cfg.Backend),
		)
	}

	if cfg.WisdomPath != "" {
		if err := e.planner.ImportWisdomFile(cfg.WisdomPath); err != nil {
			return nil, fmt.Errorf("vochorus: import wisdom: %w", err)
		}
	}

	hann, err := window.Hann(cfg.FrameLength, window.WithPeriodic())
	if err != nil {
		return nil, fmt.Errorf("vochorus: window: %w", err)
	}

	overlap, err := window.OverlapGain(hann, cfg.Hop())
	if err != nil {
		return nil, fmt.Errorf("vochorus: window: %w", err)
	}

	e.window = hann
	e.overlap = overlap
	e.invN = 1 / float64(cfg.FrameLength)
	e.scales = newScales(cfg.ScaleResolution)
	e.analyzer = analyzer{window: hann, hop: cfg.Hop(), rate: cfg.SampleRate}

	e.pool, err = NewPool(cfg.MaxPolyphony, cfg.FrameLength, e.planner, e.logger)
	if err != nil {
		return nil, err
	}

	e.logger.WithFields(logrus.Fields{
		"function":      "New",
		"sample_rate":   cfg.SampleRate,
		"frame_length":  cfg.FrameLength,
		"decimation":    cfg.Decimation,
		"max_polyphony": cfg.MaxPolyphony,
		"phase_lock":    !cfg.DisablePhaseLock,
		"overlap_gain":  overlap,
	}).Debug("Engine created")

	return e, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// OverlapGain returns the summed squared window over one hop. With the phase
// lock disabled, unit pitch and no chorus, output settles at
// Headroom*OverlapGain times the input.
func (e *Engine) OverlapGain() float64 { return e.overlap }

// Pool returns the slot pool.
func (e *Engine) Pool() *Pool { return e.pool }

// Planner returns the transform planner.
func (e *Engine) Planner() *transform.Planner { return e.planner }

// ActiveNotes returns the number of started, not yet stopped notes,
// including silent ones.
func (e *Engine) ActiveNotes() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// NoteOn starts a note playing sample. When the pool is exhausted the note is
// a silent stand-in for its whole lifetime. Every call returns a new Note; the
// overlap-add storage of stopped notes is reused.
func (e *Engine) NoteOn(sample Sample) *Note {
	n := &Note{engine: e}

	e.mu.Lock()
	if k := len(e.free); k > 0 {
		n.bank, n.scratch = e.free[k-1].bank, e.free[k-1].scratch
		e.free = e.free[:k-1]
	}
	e.active++
	e.mu.Unlock()

	slot, _ := e.pool.Acquire()
	n.start(sample, slot)

	return n
}

// NoteOff stops n. It is the same as n.Stop().
func (e *Engine) NoteOff(n *Note) {
	if n != nil {
		n.Stop()
	}
}

// recycle takes back the storage of a stopped note.
func (e *Engine) recycle(n *Note) {
	e.mu.Lock()
	if n.bank != nil {
		e.free = append(e.free, noteStorage{bank: n.bank, scratch: n.scratch})
	}
	e.active--
	e.mu.Unlock()

	n.bank = nil
	n.scratch = nil
}

// Close writes planner wisdom when Config.WisdomPath is set.
func (e *Engine) Close() error {
	if e.cfg.WisdomPath == "" {
		return nil
	}

	if err := e.planner.ExportWisdomFile(e.cfg.WisdomPath); err != nil {
		return fmt.Errorf("vochorus: export wisdom: %w", err)
	}

	e.logger.WithFields(logrus.Fields{
		"function": "Engine.Close",
		"path":     e.cfg.WisdomPath,
		"entries":  len(e.planner.Entries()),
	}).Debug("Wisdom exported")

	return nil
}
