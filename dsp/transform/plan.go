package transform

import (
	"fmt"
	"strings"
)

// Backend selects the FFT implementation behind a Plan.
type Backend int

const (
	// BackendAuto lets the Planner decide.
	BackendAuto Backend = iota
	BackendGonum
	BackendAlgoFFT
)

var backendNames = map[Backend]string{
	BackendAuto:    "auto",
	BackendGonum:   "gonum",
	BackendAlgoFFT: "algofft",
}

// String returns the backend name used in flags, configs and wisdom files.
func (b Backend) String() string {
	if name, ok := backendNames[b]; ok {
		return name
	}
	return fmt.Sprintf("backend(%d)", int(b))
}

// ParseBackend resolves a backend name.
func ParseBackend(name string) (Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return BackendAuto, nil
	}

	for b, n := range backendNames {
		if n == name {
			return b, nil
		}
	}

	return BackendAuto, fmt.Errorf("%w: %q", ErrBackend, name)
}

// MarshalText implements encoding.TextMarshaler.
func (b Backend) MarshalText() ([]byte, error) {
	if _, ok := backendNames[b]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrBackend, int(b))
	}
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Backend) UnmarshalText(text []byte) error {
	parsed, err := ParseBackend(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// Plan is a prepared in-place real transform of a fixed length.
//
// Plans own scratch memory and are not safe for concurrent use.
type Plan interface {
	// Len returns the frame length N.
	Len() int
	// Backend reports the implementation in use.
	Backend() Backend
	// Forward replaces buf with its half-complex spectrum.
	Forward(buf []float64) error
	// Inverse replaces the half-complex spectrum in buf with N times the
	// time-domain frame.
	Inverse(buf []float64) error
}

// NewPlan builds a plan of length n for a concrete backend. BackendAuto maps to
// BackendGonum; use a Planner to choose by measurement or wisdom.
func NewPlan(backend Backend, n int) (Plan, error) {
	if err := validateSize(n); err != nil {
		return nil, err
	}

	switch backend {
	case BackendAuto, BackendGonum:
		return newGonumPlan(n), nil
	case BackendAlgoFFT:
		return newAlgoFFTPlan(n)
	default:
		return nil, fmt.Errorf("%w: %d", ErrBackend, int(backend))
	}
}
