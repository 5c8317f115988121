package vochorus

import (
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-vochorus/dsp/ring"
)

const (
	pathCenter = iota
	pathLeft
	pathRight
	pathCount
)

// noteStorage is the per-note memory handed from stopped notes to new ones.
type noteStorage struct {
	bank    *ring.Bank
	scratch []float64
}

// Note is one sounding instance of a sample.
type Note struct {
	engine  *Engine
	slot    *Slot
	sample  Sample
	bank    *ring.Bank
	scratch []float64
	counter int
	first   bool
	stopped bool
}

func (n *Note) start(sample Sample, slot *Slot) {
	n.sample = sample
	n.slot = slot
	n.counter = 0
	n.first = true
	n.stopped = false

	if n.bank != nil {
		n.bank.Reset()
	}
}

// Silent reports whether the note was started without a slot.
func (n *Note) Silent() bool { return n.slot == nil }

// SetSample rebinds the source recording.
func (n *Note) SetSample(sample Sample) { n.sample = sample }

// Stop releases the slot and hands the note storage back to the engine.
// Further calls are no-ops.
func (n *Note) Stop() {
	if n.stopped {
		return
	}

	n.stopped = true
	n.engine.pool.Release(n.slot)
	n.slot = nil
	n.engine.recycle(n)
}

// Render overwrites block.Out with the next len(block.Out[0]) samples. Notes
// without a slot or without sample data render silence.
func (n *Note) Render(block Block, params Params) {
	for _, ch := range block.Out {
		clear(ch)
	}

	frames := block.frames()
	if frames == 0 || n.stopped || n.slot == nil || n.sample.Len() == 0 {
		return
	}

	e := n.engine
	if n.bank == nil {
		bank, err := ring.New(pathCount, e.cfg.FrameLength, e.cfg.Decimation)
		if err != nil {
			e.logger.WithError(err).Error("ring allocation failed")
			return
		}
		n.bank = bank
		n.scratch = make([]float64, e.cfg.FrameLength)
	}

	p := n.resolve(params, len(block.Out) > 1)
	out := block.Out[:min(len(block.Out), 2)]
	hop := e.cfg.Hop()

	begin := max(0, min(block.Offset, frames))
	end := max(begin, frames-max(0, block.Early))

	for i := begin; i < end; i++ {
		if n.first || n.counter == hop {
			n.first = false
			n.cycle(block.seekAt(i, params.SeekTime), &p)
			n.counter = 0
		}

		n.mixdown(out, i, &p)
		n.counter++
	}
}

func (n *Note) resolve(params Params, stereo bool) renderParams {
	s := n.engine.scales

	rateAdjust := 1.0
	if isFinitePositive(n.sample.Rate) {
		rateAdjust = n.sample.Rate / n.engine.cfg.SampleRate
	}

	p := renderParams{
		rateAdjust: rateAdjust,
		pitch:      finiteOr(params.Pitch, 0) * rateAdjust,
		detune:     s.Detune(params.Detune),
		spread:     clampUnit(params.Spread),
		centerMix:  1,
		sideMix:    s.Side(params.Mix),
		voices:     clampVoices(params.Voices),
		pan:        params.Pan,
		stereo:     stereo,
	}

	if p.pan < PanBoth || p.pan > PanRight {
		p.pan = PanBoth
	}

	if p.voices > 0 && params.Mix > 0 {
		p.centerMix = s.Center(params.Mix)
	}

	return p
}

// cycle runs one analysis, vocode and resynthesis pass into the next ring
// segment.
func (n *Note) cycle(seekPoint float64, p *renderParams) {
	e := n.engine
	s := n.slot
	data := n.sample.Data

	pos := e.analyzer.start(finiteOr(seekPoint, 0)*p.rateAdjust, len(data))

	e.analyzer.fill(s.center.fwin, s.center.bwin, data, pos, p.pitch)
	for k := range p.voices {
		v := &s.chorus[k]
		e.analyzer.fill(v.fwin, v.bwin, data, pos, p.pitch+v.detune*p.detune)
	}

	n.bank.Begin()

	if err := n.process(p); err != nil {
		e.logger.WithFields(logrus.Fields{
			"function": "Note.cycle",
			"slot":     s.index,
			"error":    err,
		}).Debug("Cycle skipped")

		for path := range pathCount {
			clear(n.bank.Segment(path))
		}
	}

	n.bank.Commit()
}

func (n *Note) process(p *renderParams) error {
	s := n.slot

	if err := s.center.forward(); err != nil {
		return err
	}
	for k := range p.voices {
		if err := s.chorus[k].forward(); err != nil {
			return err
		}
	}

	if !n.engine.cfg.DisablePhaseLock {
		if err := s.center.vocode(); err != nil {
			return err
		}
		for k := range p.voices {
			if err := s.chorus[k].vocode(); err != nil {
				return err
			}
		}
	}

	return n.resynthesize(p)
}
