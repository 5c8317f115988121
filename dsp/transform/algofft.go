package transform

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// algoFFTPlan runs a complex algo-fft plan on real input and repacks the
// Hermitian result. Inverse rescales so a round trip gains exactly N, the
// contract shared with the gonum backend.
type algoFFTPlan struct {
	n     int
	plan  *algofft.Plan[complex128]
	work  []complex128
	scale float64
}

func newAlgoFFTPlan(n int) (*algoFFTPlan, error) {
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("transform: failed to create algo-fft plan: %w", err)
	}

	p := &algoFFTPlan{
		n:    n,
		plan: plan,
		work: make([]complex128, n),
	}

	if err := p.calibrate(); err != nil {
		return nil, err
	}

	return p, nil
}

// calibrate measures the library's inverse normalization with a unit impulse.
func (p *algoFFTPlan) calibrate() error {
	clear(p.work)
	p.work[0] = 1

	if err := p.plan.Forward(p.work, p.work); err != nil {
		return fmt.Errorf("transform: algo-fft calibration failed: %w", err)
	}

	if err := p.plan.Inverse(p.work, p.work); err != nil {
		return fmt.Errorf("transform: algo-fft calibration failed: %w", err)
	}

	gain := real(p.work[0])
	if gain == 0 {
		return fmt.Errorf("transform: algo-fft calibration returned zero gain")
	}

	p.scale = float64(p.n) / gain

	return nil
}

func (p *algoFFTPlan) Len() int { return p.n }

func (p *algoFFTPlan) Backend() Backend { return BackendAlgoFFT }

func (p *algoFFTPlan) Forward(buf []float64) error {
	if err := checkBuffer(buf, p.n); err != nil {
		return err
	}

	for i, v := range buf {
		p.work[i] = complex(v, 0)
	}

	if err := p.plan.Forward(p.work, p.work); err != nil {
		return fmt.Errorf("transform: forward FFT failed: %w", err)
	}

	PackHalfComplex(buf, p.work[:p.n/2+1])

	return nil
}

func (p *algoFFTPlan) Inverse(buf []float64) error {
	if err := checkBuffer(buf, p.n); err != nil {
		return err
	}

	n := p.n
	half := n / 2

	p.work[0] = complex(buf[0], 0)
	p.work[half] = complex(buf[half], 0)

	for k := 1; k < half; k++ {
		re, im := buf[k], buf[n-k]
		p.work[k] = complex(re, im)
		p.work[n-k] = complex(re, -im)
	}

	if err := p.plan.Inverse(p.work, p.work); err != nil {
		return fmt.Errorf("transform: inverse FFT failed: %w", err)
	}

	for i := range buf {
		buf[i] = real(p.work[i]) * p.scale
	}

	return nil
}
