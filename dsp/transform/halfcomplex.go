package transform

// PackHalfComplex writes the n/2+1 non-redundant coefficients of a real
// signal's spectrum into dst (length n) in half-complex order.
func PackHalfComplex(dst []float64, coeffs []complex128) {
	n := len(dst)
	half := n / 2

	for k := 0; k <= half; k++ {
		dst[k] = real(coeffs[k])
	}

	for k := 1; k < half; k++ {
		dst[n-k] = imag(coeffs[k])
	}
}

// UnpackHalfComplex expands a half-complex buffer into n/2+1 coefficients.
func UnpackHalfComplex(coeffs []complex128, src []float64) {
	n := len(src)
	half := n / 2

	coeffs[0] = complex(src[0], 0)
	for k := 1; k < half; k++ {
		coeffs[k] = complex(src[k], src[n-k])
	}
	coeffs[half] = complex(src[half], 0)
}

// Bin returns the (real, imaginary) pair of bin k in a half-complex buffer.
// Edge bins have a zero imaginary part.
func Bin(buf []float64, k int) (float64, float64) {
	n := len(buf)
	if k == 0 || k == n/2 {
		return buf[k], 0
	}
	return buf[k], buf[n-k]
}
