package vochorus

import (
	"fmt"
	"sync/atomic"

	"github.com/cwbudde/algo-vochorus/dsp/transform"
	"github.com/cwbudde/algo-vochorus/dsp/vocoder"
)

var (
	chorusDetunes = [MaxChorusVoices]float64{
		0.1191221, -0.11952356,
		0.16216538, -0.16288439,
		0.21045242, -0.20702313,
	}
	chorusPans = [MaxChorusVoices]float64{
		0.75, 0.25,
		1.0 / 3, 2.0 / 3,
		0.5, 0.5,
	}
)

// voice is one analysis/synthesis buffer trio with its transform.
type voice struct {
	fwin []float64 // forward frame, spectrum after Forward
	bwin []float64 // frame one hop earlier
	pwin []float64 // phase reference carried between hops
	plan transform.Plan
}

func newVoice(planner *transform.Planner, n int) (voice, error) {
	plan, err := planner.Plan(n)
	if err != nil {
		return voice{}, err
	}

	return voice{
		fwin: make([]float64, n),
		bwin: make([]float64, n),
		pwin: make([]float64, n),
		plan: plan,
	}, nil
}

func (v *voice) forward() error {
	if err := v.plan.Forward(v.fwin); err != nil {
		return err
	}
	return v.plan.Forward(v.bwin)
}

func (v *voice) vocode() error {
	return vocoder.Vocode(v.fwin, v.bwin, v.pwin)
}

func (v *voice) reset() {
	clear(v.fwin)
	clear(v.bwin)
	clear(v.pwin)
}

// chorusVoice is a voice with a fixed detune ratio and pan position.
type chorusVoice struct {
	voice
	detune  float64
	panBias float64
}

// Slot is the per-note analysis state checked out of a Pool.
type Slot struct {
	index  int
	inUse  atomic.Bool
	pool   *Pool
	center voice
	chorus [MaxChorusVoices]chorusVoice
}

func newSlot(pool *Pool, index int, planner *transform.Planner, n int) (*Slot, error) {
	s := &Slot{index: index, pool: pool}

	var err error
	if s.center, err = newVoice(planner, n); err != nil {
		return nil, fmt.Errorf("vochorus: slot %d: %w", index, err)
	}

	for k := range s.chorus {
		v, err := newVoice(planner, n)
		if err != nil {
			return nil, fmt.Errorf("vochorus: slot %d voice %d: %w", index, k, err)
		}
		s.chorus[k] = chorusVoice{voice: v, detune: chorusDetunes[k], panBias: chorusPans[k]}
	}

	return s, nil
}

// Index returns the slot position in its pool.
func (s *Slot) Index() int { return s.index }

// InUse reports whether the slot is checked out.
func (s *Slot) InUse() bool { return s.inUse.Load() }

func (s *Slot) reset() {
	s.center.reset()
	for k := range s.chorus {
		s.chorus[k].reset()
	}
}
