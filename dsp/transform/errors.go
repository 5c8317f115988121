package transform

import (
	"errors"
	"fmt"
)

var (
	// ErrSize reports an unusable transform length.
	ErrSize = errors.New("transform size must be even and >= 2")
	// ErrBufferLength reports a buffer that does not match the plan length.
	ErrBufferLength = errors.New("buffer length does not match plan length")
	// ErrBackend reports an unknown backend name or value.
	ErrBackend = errors.New("unknown transform backend")
	// ErrWisdom reports a malformed wisdom file.
	ErrWisdom = errors.New("malformed transform wisdom")
)

func validateSize(n int) error {
	if n < 2 || n%2 != 0 {
		return fmt.Errorf("%w: %d", ErrSize, n)
	}
	return nil
}

func checkBuffer(buf []float64, n int) error {
	if len(buf) != n {
		return fmt.Errorf("%w: got %d, want %d", ErrBufferLength, len(buf), n)
	}
	return nil
}
