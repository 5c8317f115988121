package vochorus

import "math"

// scales holds the lookup tables that map normalized [0,1] controls to gains.
type scales struct {
	center []float64 // cos(x*pi/2), 1 -> 0
	side   []float64 // sin(x*pi/2), 0 -> 1
	detune []float64 // x^2
}

func newScales(resolution int) *scales {
	s := &scales{
		center: make([]float64, resolution),
		side:   make([]float64, resolution),
		detune: make([]float64, resolution),
	}

	last := float64(resolution - 1)
	for i := range resolution {
		x := float64(i) / last
		s.side[i], s.center[i] = math.Sincos(x * math.Pi / 2)
		s.detune[i] = x * x
	}

	// Pin the end points so mix 1 fully mutes the center.
	s.center[resolution-1] = 0
	s.side[resolution-1] = 1

	return s
}

// index clamps v into [0,1] and maps it onto the table range. NaN maps to 0.
func (s *scales) index(v float64) int {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		v = 1
	}
	return int(v * float64(len(s.center)-1))
}

func (s *scales) Center(mix float64) float64 { return s.center[s.index(mix)] }

func (s *scales) Side(mix float64) float64 { return s.side[s.index(mix)] }

func (s *scales) Detune(amount float64) float64 { return s.detune[s.index(amount)] }
