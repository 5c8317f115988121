// Package ring provides the overlap-add output buffers of a hop-based
// resynthesizer.
package ring

import "fmt"

// Bank is a set of parallel overlap-add rings sharing one cursor table.
//
// Every path holds decim segments of frameLen samples. Each analysis hop
// writes one frame into the current write slot of every path and rewinds that
// slot's read cursor; each output sample sums all slots at their cursors and
// advances them. A cursor that reaches the end of its segment wraps back to
// the segment start.
type Bank struct {
	frameLen int
	decim    int
	paths    [][]float64
	cursors  []int
	slot     int
}

// New returns a bank of paths rings with decim overlapping segments of
// frameLen samples.
func New(paths, frameLen, decim int) (*Bank, error) {
	if paths <= 0 {
		return nil, fmt.Errorf("ring: path count must be > 0: %d", paths)
	}
	if frameLen <= 0 {
		return nil, fmt.Errorf("ring: frame length must be > 0: %d", frameLen)
	}
	if decim <= 0 {
		return nil, fmt.Errorf("ring: decimation must be > 0: %d", decim)
	}

	b := &Bank{
		frameLen: frameLen,
		decim:    decim,
		paths:    make([][]float64, paths),
		cursors:  make([]int, decim),
	}

	for p := range b.paths {
		b.paths[p] = make([]float64, decim*frameLen)
	}

	b.rewind()

	return b, nil
}

// Paths returns the number of paths.
func (b *Bank) Paths() int { return len(b.paths) }

// FrameLen returns the segment length.
func (b *Bank) FrameLen() int { return b.frameLen }

// Decimation returns the number of overlapping segments.
func (b *Bank) Decimation() int { return b.decim }

// Slot returns the current write slot.
func (b *Bank) Slot() int { return b.slot }

// Cursor returns the absolute read position of slot k.
func (b *Bank) Cursor(k int) int { return b.cursors[k] }

// Begin rewinds the cursor of the current write slot to the start of its
// segment. Call it once per hop before filling the segments.
func (b *Bank) Begin() {
	b.cursors[b.slot] = b.slot * b.frameLen
}

// Segment returns the current write segment of a path. The slice aliases the
// ring and is valid until Commit.
func (b *Bank) Segment(path int) []float64 {
	start := b.slot * b.frameLen
	return b.paths[path][start : start+b.frameLen]
}

// Commit moves the write slot to the next segment.
func (b *Bank) Commit() {
	b.slot++
	if b.slot >= b.decim {
		b.slot = 0
	}
}

// Sum returns the overlap-add of every segment of a path at its cursor.
func (b *Bank) Sum(path int) float64 {
	buf := b.paths[path]

	var sum float64
	for _, c := range b.cursors {
		sum += buf[c]
	}

	return sum
}

// Advance moves every cursor forward by one sample.
func (b *Bank) Advance() {
	for k, c := range b.cursors {
		c++
		if c == (k+1)*b.frameLen {
			c = k * b.frameLen
		}
		b.cursors[k] = c
	}
}

// Reset clears all paths and returns the cursors to their initial layout.
func (b *Bank) Reset() {
	for _, p := range b.paths {
		clear(p)
	}
	b.rewind()
}

func (b *Bank) rewind() {
	for k := range b.cursors {
		b.cursors[k] = k * b.frameLen
	}
	b.slot = 0
}
