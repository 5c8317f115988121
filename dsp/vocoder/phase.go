package vocoder

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vochorus/dsp/transform"
)

// ErrFrameLength reports buffers that are odd, too short or of unequal length.
var ErrFrameLength = errors.New("vocoder: frame buffers must share one even length >= 2")

func checkFrames(bufs ...[]float64) error {
	n := len(bufs[0])
	if n < 2 || n%2 != 0 {
		return fmt.Errorf("%w: got %d", ErrFrameLength, n)
	}

	for _, b := range bufs[1:] {
		if len(b) != n {
			return fmt.Errorf("%w: got %d and %d", ErrFrameLength, n, len(b))
		}
	}

	return nil
}

// transfer applies the scalar phase transfer x*sin(a) + x*cos(a).
func transfer(x, sin, cos float64) float64 {
	return x*sin + x*cos
}

// SmoothPhase applies the phase of each bin of the reference spectrum pwin to
// the matching bin of bwin. Bins whose reference is exactly zero are left
// untouched.
func SmoothPhase(pwin, bwin []float64) error {
	if err := checkFrames(pwin, bwin); err != nil {
		return err
	}

	n := len(bwin)
	half := n / 2

	for i := 0; i <= half; i++ {
		re, im := transform.Bin(pwin, i)
		if re == 0 && im == 0 {
			continue
		}

		sin, cos := math.Sincos(Atan2Approx(re, im))

		bwin[i] = transfer(bwin[i], sin, cos)
		if i != 0 && i != half {
			bwin[n-i] = transfer(bwin[n-i], sin, cos)
		}
	}

	return nil
}

// LockPhase sums every bin of bwin with its direct neighbours, transfers the
// resulting phase onto fwin and copies fwin into pwin for the next hop. The
// edge bins 0 and N/2 sum real parts only.
func LockPhase(fwin, bwin, pwin []float64) error {
	if err := checkFrames(fwin, bwin, pwin); err != nil {
		return err
	}

	n := len(fwin)
	half := n / 2

	for i := 0; i <= half; i++ {
		var re, im float64

		if i == 0 || i == half {
			// Edge bins lock to the real parts only.
			for k := max(i-1, 0); k <= min(i+1, half); k++ {
				re += bwin[k]
			}
		} else {
			for k := i - 1; k <= i+1; k++ {
				r, m := transform.Bin(bwin, k)
				re += r
				im += m
			}
		}

		sin, cos := math.Sincos(Atan2Approx(re, im))

		fwin[i] = transfer(fwin[i], sin, cos)
		if i != 0 && i != half {
			fwin[n-i] = transfer(fwin[n-i], sin, cos)
		}
	}

	copy(pwin, fwin)

	return nil
}

// Vocode runs SmoothPhase followed by LockPhase.
func Vocode(fwin, bwin, pwin []float64) error {
	if err := SmoothPhase(pwin, bwin); err != nil {
		return err
	}

	return LockPhase(fwin, bwin, pwin)
}
