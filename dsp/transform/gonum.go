package transform

import (
	"gonum.org/v1/gonum/dsp/fourier"
)

// gonumPlan wraps gonum's real FFT. gonum's Sequence is unnormalized, which is
// exactly the half-complex inverse contract, so no rescaling happens here.
type gonumPlan struct {
	n      int
	fft    *fourier.FFT
	coeffs []complex128
	seq    []float64
}

func newGonumPlan(n int) *gonumPlan {
	return &gonumPlan{
		n:      n,
		fft:    fourier.NewFFT(n),
		coeffs: make([]complex128, n/2+1),
		seq:    make([]float64, n),
	}
}

func (p *gonumPlan) Len() int { return p.n }

func (p *gonumPlan) Backend() Backend { return BackendGonum }

func (p *gonumPlan) Forward(buf []float64) error {
	if err := checkBuffer(buf, p.n); err != nil {
		return err
	}

	p.coeffs = p.fft.Coefficients(p.coeffs, buf)
	PackHalfComplex(buf, p.coeffs)

	return nil
}

func (p *gonumPlan) Inverse(buf []float64) error {
	if err := checkBuffer(buf, p.n); err != nil {
		return err
	}

	UnpackHalfComplex(p.coeffs, buf)
	p.seq = p.fft.Sequence(p.seq, p.coeffs)
	copy(buf, p.seq)

	return nil
}
