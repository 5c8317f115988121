// Package testutil holds deterministic signals and float assertions shared by
// the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// SeekRamp returns per-sample seek times in seconds for a playhead that starts
// at start samples and advances speed samples per output sample.
func SeekRamp(length int, start, speed, sampleRate float64) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = (start + speed*float64(i)) / sampleRate
	}
	return out
}

// Buffers allocates channels output slices of length samples.
func Buffers(channels, length int) [][]float64 {
	out := make([][]float64, channels)
	for c := range out {
		out[c] = make([]float64, length)
	}
	return out
}
