package vochorus

import (
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
	"github.com/tphakala/simd/f64"

	"github.com/cwbudde/algo-vochorus/dsp/window"
)

// synthesize turns the spectrum in v.fwin back into a windowed frame.
func (e *Engine) synthesize(v *voice) error {
	if err := v.plan.Inverse(v.fwin); err != nil {
		return err
	}

	f64.Scale(v.fwin, v.fwin, e.invN)

	return window.ApplyCoefficientsInPlace(v.fwin, e.window)
}

// resynthesize writes the center frame over its ring segment and sums the
// chorus frames into the side segments.
func (n *Note) resynthesize(p *renderParams) error {
	e := n.engine
	s := n.slot

	if err := e.synthesize(&s.center); err != nil {
		return err
	}
	copy(n.bank.Segment(pathCenter), s.center.fwin)

	left := n.bank.Segment(pathLeft)
	right := n.bank.Segment(pathRight)
	clear(left)
	clear(right)

	for k := range p.voices {
		v := &s.chorus[k]
		if err := e.synthesize(&v.voice); err != nil {
			return err
		}

		if !p.stereo {
			vecmath.AddBlockInPlace(left, v.fwin)
			continue
		}

		theta := (p.spread*(v.panBias-0.5) + 0.5) * math.Pi / 2
		gainR, gainL := math.Sincos(theta)

		vecmath.ScaleBlock(n.scratch, v.fwin, gainL)
		vecmath.AddBlockInPlace(left, n.scratch)
		vecmath.ScaleBlock(n.scratch, v.fwin, gainR)
		vecmath.AddBlockInPlace(right, n.scratch)
	}

	return nil
}
