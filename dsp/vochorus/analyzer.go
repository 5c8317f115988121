package vochorus

import "math"

// Sample is a read-only mono source recording.
type Sample struct {
	Data []float64
	// Rate is the native sample rate in Hz. Zero means the engine rate.
	Rate float64
}

// Len returns the number of frames.
func (s Sample) Len() int { return len(s.Data) }

// WrapSeek folds a read position into (0, length]. Non-finite positions map
// to length.
func WrapSeek(seek float64, length int) float64 {
	if length <= 0 {
		return 0
	}

	l := float64(length)
	if math.IsNaN(seek) || math.IsInf(seek, 0) {
		return l
	}

	s := math.Mod(seek, l)
	if s <= 0 {
		s += l
	}

	return s
}

// wrapIndex folds pos into [0, length).
func wrapIndex(pos, length int64) int64 {
	pos %= length
	if pos < 0 {
		pos += length
	}
	return pos
}

// analyzer cuts windowed analysis frames out of a sample.
type analyzer struct {
	window []float64
	hop    int
	rate   float64
}

// start returns the hop-quantized read position for a seek time given in
// seconds of the sample's own timeline.
func (a *analyzer) start(seekTime float64, length int) float64 {
	hops := math.Floor(seekTime * a.rate / float64(a.hop))
	return WrapSeek(float64(a.hop)*hops, length)
}

// fill writes the forward frame starting at pos and the backward frame one hop
// of reading earlier, both advancing pitch samples per index.
func (a *analyzer) fill(fwin, bwin, data []float64, pos, pitch float64) {
	length := int64(len(data))
	step := int64(math.Round(pitch))
	back := float64(a.hop) * pitch

	for i, w := range a.window {
		r := math.Round(pos)
		frac := math.Abs(pos - r)

		fpos := wrapIndex(int64(r), length)
		x := data[fpos]
		fwin[i] = (x + frac*(x-data[wrapIndex(fpos+step, length)])) * w

		bpos := wrapIndex(int64(float64(fpos)-back), length)
		x = data[bpos]
		bwin[i] = (x + frac*(x-data[wrapIndex(bpos+step, length)])) * w

		pos += pitch
	}
}
