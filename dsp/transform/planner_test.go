package transform

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlannerEstimateDefaultsToGonum(t *testing.T) {
	p := NewPlanner()
	assert.Equal(t, ModeEstimate, p.Mode())

	plan, err := p.Plan(64)
	require.NoError(t, err)
	assert.Equal(t, BackendGonum, plan.Backend())

	_, ok := p.Choice(64)
	assert.False(t, ok, "estimate mode must not record wisdom")
}

func TestPlannerForcedBackend(t *testing.T) {
	p := NewPlanner(WithBackend(BackendAlgoFFT), WithMode(ModeMeasure))

	plan, err := p.Plan(64)
	require.NoError(t, err)
	assert.Equal(t, BackendAlgoFFT, plan.Backend())
	assert.Empty(t, p.Entries())
}

func TestPlannerMeasureRecords(t *testing.T) {
	p := NewPlanner(WithMode(ModeMeasure), WithMeasureRounds(2))

	plan, err := p.Plan(128)
	require.NoError(t, err)

	e, ok := p.Choice(128)
	require.True(t, ok)
	assert.Equal(t, 128, e.Size)
	assert.Equal(t, e.Backend, plan.Backend())
	assert.Contains(t, allBackends, e.Backend)

	// A second request reuses the decision.
	again, err := p.Plan(128)
	require.NoError(t, err)
	assert.Equal(t, e.Backend, again.Backend())
	assert.Len(t, p.Entries(), 1)
}

func TestPlannerUsesWisdom(t *testing.T) {
	p := NewPlanner()
	require.NoError(t, p.Remember(Entry{Size: 32, Backend: BackendAlgoFFT}))

	plan, err := p.Plan(32)
	require.NoError(t, err)
	assert.Equal(t, BackendAlgoFFT, plan.Backend())

	require.ErrorIs(t, p.Remember(Entry{Size: 32, Backend: BackendAuto}), ErrBackend)
	require.ErrorIs(t, p.Remember(Entry{Size: 3, Backend: BackendGonum}), ErrSize)
}

func TestWisdomRoundTrip(t *testing.T) {
	src := NewPlanner()
	require.NoError(t, src.Remember(Entry{Size: 4096, Backend: BackendAlgoFFT, Cost: 35 * time.Microsecond}))
	require.NoError(t, src.Remember(Entry{Size: 256, Backend: BackendGonum}))

	var buf bytes.Buffer
	require.NoError(t, src.ExportWisdom(&buf))
	assert.Contains(t, buf.String(), "algofft")

	dst := NewPlanner()
	require.NoError(t, dst.ImportWisdom(&buf))
	assert.Equal(t, src.Entries(), dst.Entries())
	assert.Equal(t, 256, dst.Entries()[0].Size)
}

func TestWisdomRejectsGarbage(t *testing.T) {
	tests := []string{
		"version: 2\nplans: []\n",
		"version: 1\nplans:\n  - size: 64\n    backend: fftw\n",
		"version: 1\nplans:\n  - size: 63\n    backend: gonum\n",
		"{{{",
	}

	for _, doc := range tests {
		err := NewPlanner().ImportWisdom(strings.NewReader(doc))
		require.ErrorIs(t, err, ErrWisdom, doc)
	}

	require.NoError(t, NewPlanner().ImportWisdom(strings.NewReader("")))
}

func TestWisdomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "transform.wis")

	missing := NewPlanner()
	require.NoError(t, missing.ImportWisdomFile(path))
	assert.Empty(t, missing.Entries())

	src := NewPlanner()
	require.NoError(t, src.Remember(Entry{Size: 1024, Backend: BackendGonum}))
	require.NoError(t, src.ExportWisdomFile(path))

	dst := NewPlanner()
	require.NoError(t, dst.ImportWisdomFile(path))
	assert.Equal(t, src.Entries(), dst.Entries())
}

func TestModeText(t *testing.T) {
	var m Mode
	require.NoError(t, m.UnmarshalText([]byte("Measure")))
	assert.Equal(t, ModeMeasure, m)

	b, err := m.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "measure", string(b))

	require.Error(t, m.UnmarshalText([]byte("patient")))
}
