package vochorus

import (
	"fmt"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-vochorus/dsp/transform"
)

// Pool is a fixed arena of slots. Acquire and Release are safe for
// concurrent use.
type Pool struct {
	slots     []*Slot
	logger    logrus.FieldLogger
	exhausted atomic.Bool
}

// NewPool builds size slots with frames of n samples.
func NewPool(size, n int, planner *transform.Planner, logger logrus.FieldLogger) (*Pool, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: pool size must be > 0: %d", ErrInvalidConfig, size)
	}
	if planner == nil {
		planner = transform.NewPlanner()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	p := &Pool{
		slots:  make([]*Slot, size),
		logger: logger,
	}

	for i := range p.slots {
		s, err := newSlot(p, i, planner, n)
		if err != nil {
			return nil, err
		}
		p.slots[i] = s
	}

	return p, nil
}

// Acquire claims the first free slot and clears its buffers. It returns nil
// and false when every slot is in use.
func (p *Pool) Acquire() (*Slot, bool) {
	for _, s := range p.slots {
		if s.inUse.CompareAndSwap(false, true) {
			s.reset()
			return s, true
		}
	}

	if p.exhausted.CompareAndSwap(false, true) {
		p.logger.WithFields(logrus.Fields{
			"function": "Pool.Acquire",
			"capacity": len(p.slots),
		}).Warn("polyphony limit exceeded, note will be silent")
	}

	return nil, false
}

// Release returns a slot to the pool. Nil, foreign and already free slots
// are ignored.
func (p *Pool) Release(s *Slot) {
	if s == nil || s.pool != p {
		return
	}

	if s.inUse.CompareAndSwap(true, false) {
		p.exhausted.Store(false)
	}
}

// Cap returns the pool size.
func (p *Pool) Cap() int { return len(p.slots) }

// InUse returns the number of checked-out slots.
func (p *Pool) InUse() int {
	n := 0
	for _, s := range p.slots {
		if s.inUse.Load() {
			n++
		}
	}
	return n
}
