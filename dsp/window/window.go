// Package window generates the Hann windows used for spectral framing and
// reports the overlap-add gain of an analysis/synthesis pair.
package window

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
//
// Overlap-add resynthesis needs the periodic form: only then do shifted copies
// of the window sum to a constant.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Hann returns Hann window coefficients.
func Hann(size int, opts ...Option) ([]float64, error) {
	if err := validateLength(size); err != nil {
		return nil, err
	}

	var cfg config

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, size)
	for i := range out {
		out[i] = 0.5 - 0.5*math.Cos(2*math.Pi*samplePosition(i, size, cfg.periodic))
	}

	return out, nil
}

// ApplyCoefficientsInPlace multiplies samples with coefficients in place.
func ApplyCoefficientsInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}

// OverlapGain returns the steady-state gain of an analysis/synthesis pair that
// applies coeffs twice and overlap-adds frames every hop samples, i.e. the sum
// of w²(n - k*hop) over all k. The result is averaged over one hop, which is
// exact for windows that satisfy the constant-overlap-add condition.
func OverlapGain(coeffs []float64, hop int) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	if hop <= 0 || hop > len(coeffs) {
		return 0, errInvalidHop
	}

	sum := 0.0
	for _, c := range coeffs {
		sum += c * c
	}

	return sum / float64(hop), nil
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}
