// Package vocoder implements the phase-locked correction step of a phase
// vocoder on half-complex spectra.
//
// All functions operate in place on caller-owned buffers of even length N in
// the layout produced by package transform: buf[k] holds the real part of bin
// k for k in [0, N/2] and buf[N-k] the imaginary part for k in [1, N/2).
//
// Each analysis hop runs SmoothPhase on the backward frame against the phase
// reference left by the previous hop, then LockPhase, which transfers the
// neighbour-summed backward phase onto the forward frame and stores the result
// as the next reference. Vocode runs both steps.
package vocoder
