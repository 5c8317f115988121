package vochorus

import (
	"fmt"
	"math"
	"strings"
)

// PanMode selects how the center path is routed to the output channels.
type PanMode int

const (
	// PanBoth sends center and both side paths to every channel.
	PanBoth PanMode = iota
	// PanLeft sends the center to channel 0 only.
	PanLeft
	// PanRight sends the center to channel 1 only.
	PanRight
)

// String returns the mode name.
func (m PanMode) String() string {
	switch m {
	case PanBoth:
		return "both"
	case PanLeft:
		return "left"
	case PanRight:
		return "right"
	default:
		return fmt.Sprintf("pan(%d)", int(m))
	}
}

// ParsePanMode resolves "both", "left" or "right".
func ParsePanMode(s string) (PanMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "both":
		return PanBoth, nil
	case "left":
		return PanLeft, nil
	case "right":
		return PanRight, nil
	default:
		return PanBoth, fmt.Errorf("vochorus: unknown pan mode %q", s)
	}
}

// Params are the per-block controls of a Note. All normalized controls are
// clamped into [0,1].
type Params struct {
	// Pitch is the playback-rate ratio; 1 plays at the native rate.
	Pitch float64
	// SeekTime is the read position in seconds, used when Block.Seek is
	// empty.
	SeekTime float64
	// Voices is the number of chorus voices, clamped to [0, MaxChorusVoices].
	Voices int
	Detune float64
	Spread float64
	// Mix balances center (0) against chorus sides (1).
	Mix float64
	Pan PanMode
}

// Block is one render call's output and timing.
type Block struct {
	// Out holds one or two equally long channels. They are overwritten.
	Out [][]float64
	// Seek holds a per-sample read position in seconds. A short slice holds
	// its last value; an empty one defers to Params.SeekTime.
	Seek []float64
	// Offset leading and Early trailing samples are left silent.
	Offset int
	Early  int
}

// frames returns the usable block length across at most two channels.
func (b Block) frames() int {
	if len(b.Out) == 0 {
		return 0
	}
	n := len(b.Out[0])
	if len(b.Out) > 1 {
		n = min(n, len(b.Out[1]))
	}
	return n
}

func (b Block) seekAt(i int, fallback float64) float64 {
	switch {
	case len(b.Seek) == 0:
		return fallback
	case i < len(b.Seek):
		return b.Seek[i]
	default:
		return b.Seek[len(b.Seek)-1]
	}
}

// renderParams are Params resolved against a sample and the engine tables.
type renderParams struct {
	rateAdjust float64
	pitch      float64
	detune     float64
	spread     float64
	centerMix  float64
	sideMix    float64
	voices     int
	pan        PanMode
	stereo     bool
}

func clampVoices(v int) int {
	return max(0, min(v, MaxChorusVoices))
}

func clampUnit(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	return math.Min(v, 1)
}

func finiteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
