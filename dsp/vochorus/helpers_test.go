package vochorus

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-vochorus/internal/testutil"
)

// testConfig is a small, fast engine: N=256, hop=32 at 8 kHz.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.SampleRate = 8000
	cfg.FrameLength = 256
	cfg.Decimation = 8
	cfg.MaxPolyphony = 2
	cfg.ScaleResolution = 64
	cfg.DisablePhaseLock = true
	return cfg
}

func newTestEngine(t testing.TB, cfg Config) (*Engine, *test.Hook) {
	t.Helper()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	e, err := New(cfg, WithLogger(logger))
	require.NoError(t, err)

	return e, hook
}

// hopCentered returns seek times that keep analysis aligned with output time.
func hopCentered(cfg Config) func(int) float64 {
	half := float64(cfg.Hop() / 2)
	return func(i int) float64 {
		return (float64(i) + half) / cfg.SampleRate
	}
}

// renderAll renders total samples in blocks of blockSize.
func renderAll(n *Note, channels, total, blockSize int, seek func(int) float64, p Params) [][]float64 {
	out := testutil.Buffers(channels, total)

	for start := 0; start < total; start += blockSize {
		end := min(start+blockSize, total)

		block := Block{Out: make([][]float64, channels)}
		for c := range out {
			block.Out[c] = out[c][start:end]
		}

		if seek != nil {
			block.Seek = make([]float64, end-start)
			for i := range block.Seek {
				block.Seek[i] = seek(start + i)
			}
		}

		n.Render(block, p)
	}

	return out
}

// requireScaledCopy checks out[t] == gain*in[t] for t in [from, len(out)).
func requireScaledCopy(t *testing.T, out, in []float64, from int, gain float64) {
	t.Helper()
	for i := from; i < len(out); i++ {
		require.InDelta(t, gain*in[i], out[i], 1e-9, "sample %d", i)
	}
}
