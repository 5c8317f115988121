// Package transform provides real-valued spectral transforms in half-complex
// layout, the packing used by the phase vocoder.
//
// For a frame of N real samples the forward transform stores the real part of
// bin k at index k for k in [0, N/2] and the imaginary part of bin k at index
// N-k for k in [1, N/2). Bins 0 and N/2 are real-only. The inverse transform is
// unnormalized: Forward followed by Inverse scales every sample by N.
//
// Two backends are available:
//   - BackendGonum: gonum's real FFT (dsp/fourier).
//   - BackendAlgoFFT: algo-fft's complex plan, packed on the way in and out.
//
// A Planner picks a backend per frame size. In measure mode it times both
// backends once and remembers the winner; those choices can be exported to and
// imported from a wisdom file so later processes skip the measurement.
package transform
