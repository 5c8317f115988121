// Package vochorus renders a recorded sample through a phase-locked vocoder at
// a continuously varying read position and playback rate, adding up to six
// detuned and panned chorus voices.
//
// An Engine owns a fixed pool of analysis slots, one per concurrently sounding
// note. NoteOn checks a slot out; a Note that finds the pool exhausted renders
// silence for its whole lifetime. Each Note runs one analysis, vocode and
// resynthesis cycle every hop (FrameLength / Decimation samples) and mixes the
// overlap-added result into the caller's block every sample.
//
// Rendering is synchronous and allocation free after the first block. A Note
// must be rendered from one goroutine at a time; distinct Notes may be
// rendered concurrently.
package vochorus
