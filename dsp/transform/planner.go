package transform

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/tphakala/simd/f64"
)

const defaultMeasureRounds = 16

// Mode selects how a Planner chooses a backend for sizes it has no wisdom for.
type Mode int

const (
	// ModeEstimate picks the gonum backend without running anything.
	ModeEstimate Mode = iota
	// ModeMeasure times every backend once per size and keeps the fastest.
	ModeMeasure
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeEstimate:
		return "estimate"
	case ModeMeasure:
		return "measure"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "estimate":
		*m = ModeEstimate
	case "measure":
		*m = ModeMeasure
	default:
		return fmt.Errorf("unknown planning mode %q", string(text))
	}
	return nil
}

// Entry is one remembered planning decision.
type Entry struct {
	Size    int           `yaml:"size"`
	Backend Backend       `yaml:"backend"`
	Cost    time.Duration `yaml:"cost,omitempty"`
}

// Planner creates plans and remembers which backend to use per size.
// It is safe for concurrent use; the plans it returns are not.
type Planner struct {
	mode    Mode
	forced  Backend
	rounds  int
	mu      sync.Mutex
	choices map[int]Entry
}

// PlannerOption configures a Planner.
type PlannerOption func(*Planner)

// WithMode sets the planning mode.
func WithMode(m Mode) PlannerOption {
	return func(p *Planner) {
		p.mode = m
	}
}

// WithBackend forces a backend and bypasses wisdom and measurement.
// BackendAuto restores automatic selection.
func WithBackend(b Backend) PlannerOption {
	return func(p *Planner) {
		p.forced = b
	}
}

// WithMeasureRounds sets how many forward/inverse pairs each candidate runs
// in measure mode.
func WithMeasureRounds(rounds int) PlannerOption {
	return func(p *Planner) {
		if rounds > 0 {
			p.rounds = rounds
		}
	}
}

// NewPlanner returns a Planner in estimate mode with no wisdom.
func NewPlanner(opts ...PlannerOption) *Planner {
	p := &Planner{
		mode:    ModeEstimate,
		rounds:  defaultMeasureRounds,
		choices: make(map[int]Entry),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	return p
}

// Mode returns the planning mode.
func (p *Planner) Mode() Mode { return p.mode }

// Plan returns a new plan of length n.
func (p *Planner) Plan(n int) (Plan, error) {
	if err := validateSize(n); err != nil {
		return nil, err
	}

	if p.forced != BackendAuto {
		return NewPlan(p.forced, n)
	}

	backend, err := p.choose(n)
	if err != nil {
		return nil, err
	}

	return NewPlan(backend, n)
}

// Choice reports the remembered backend for size n, if any.
func (p *Planner) Choice(n int) (Entry, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.choices[n]

	return e, ok
}

// Remember records a decision as if it had been measured.
func (p *Planner) Remember(e Entry) error {
	if err := validateSize(e.Size); err != nil {
		return err
	}

	if e.Backend != BackendGonum && e.Backend != BackendAlgoFFT {
		return fmt.Errorf("%w: %s for size %d", ErrBackend, e.Backend, e.Size)
	}

	p.mu.Lock()
	p.choices[e.Size] = e
	p.mu.Unlock()

	return nil
}

// Entries returns the remembered decisions ordered by size.
func (p *Planner) Entries() []Entry {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Entry, 0, len(p.choices))
	for _, e := range p.choices {
		out = append(out, e)
	}

	slices.SortFunc(out, func(a, b Entry) int { return cmp.Compare(a.Size, b.Size) })

	return out
}

func (p *Planner) choose(n int) (Backend, error) {
	if e, ok := p.Choice(n); ok {
		return e.Backend, nil
	}

	if p.mode != ModeMeasure {
		return BackendGonum, nil
	}

	e, err := p.measure(n)
	if err != nil {
		return BackendAuto, err
	}

	p.mu.Lock()
	p.choices[n] = e
	p.mu.Unlock()

	return e.Backend, nil
}

func (p *Planner) measure(n int) (Entry, error) {
	best := Entry{Size: n, Cost: time.Duration(math.MaxInt64)}

	frame := make([]float64, n)
	for _, backend := range []Backend{BackendGonum, BackendAlgoFFT} {
		plan, err := NewPlan(backend, n)
		if err != nil {
			// A backend that cannot plan this size simply loses.
			continue
		}

		for i := range frame {
			frame[i] = math.Sin(0.37 * float64(i))
		}

		scale := 1 / float64(n)
		start := time.Now()

		for range p.rounds {
			if err := plan.Forward(frame); err != nil {
				return Entry{}, err
			}

			if err := plan.Inverse(frame); err != nil {
				return Entry{}, err
			}

			f64.Scale(frame, frame, scale)
		}

		if cost := time.Since(start) / time.Duration(p.rounds); cost < best.Cost {
			best.Backend = backend
			best.Cost = cost
		}
	}

	if best.Backend == BackendAuto {
		return Entry{}, fmt.Errorf("transform: no backend can plan size %d", n)
	}

	return best, nil
}
