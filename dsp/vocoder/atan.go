package vocoder

import "math"

// Single-precision coefficients, widened.
var (
	atanGuard = float64(float32(1e-10))
	atanC1    = float64(float32(0.1963))
	atanC3    = float64(float32(0.9817))
)

// Atan2Approx is a rational-polynomial approximation of math.Atan2(y, x).
// The maximum error is about 0.0102 rad, near ±83 degrees.
func Atan2Approx(y, x float64) float64 {
	absY := math.Abs(y) + atanGuard

	var r, angle float64
	if x < 0 {
		r = (x + absY) / (absY - x)
		angle = 3 * math.Pi / 4
	} else {
		r = (x - absY) / (x + absY)
		angle = math.Pi / 4
	}

	angle += (atanC1*r*r - atanC3) * r

	if y < 0 {
		return -angle
	}

	return angle
}
