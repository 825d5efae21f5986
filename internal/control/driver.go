package control

import (
	"sync"
	"time"

	"github.com/asheem/orbital/internal/gesture"
)

// DefaultFrameInterval approximates a 60 Hz display refresh.
const DefaultFrameInterval = 16 * time.Millisecond

// Source delivers the newest confirmed hand state. Latest never blocks;
// ok is false while no usable snapshot exists yet (camera still opening,
// detection disabled). Reading the same snapshot twice is expected when the
// detector runs slower than the frame loop — stale reads are the
// backpressure policy, there is no queue.
type Source interface {
	Latest() (gesture.HandState, bool)
}

// Driver is the per-frame scheduler: once per frame interval it pulls the
// latest hand state and feeds the mapper. It exclusively owns the
// MotionState, so the loop needs no locking around it.
type Driver struct {
	source   Source
	mapper   *Mapper
	interval time.Duration

	state  MotionState
	mu     sync.Mutex
	stopCh chan struct{}
}

// NewDriver creates a Driver polling source every interval. Non-positive
// intervals fall back to DefaultFrameInterval.
func NewDriver(source Source, mapper *Mapper, interval time.Duration) *Driver {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Driver{
		source:   source,
		mapper:   mapper,
		interval: interval,
	}
}

// Start begins the frame loop. Starting an already running driver is a
// no-op.
func (d *Driver) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopCh != nil {
		return
	}
	d.stopCh = make(chan struct{})
	go d.run(d.stopCh)
}

// Stop halts the frame loop.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopCh != nil {
		close(d.stopCh)
		d.stopCh = nil
	}
}

func (d *Driver) run(stopCh chan struct{}) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			d.step()
		}
	}
}

// step processes one frame. When a collaborator is not ready the frame is
// skipped without touching the motion state; the next tick is the retry.
func (d *Driver) step() {
	if d.source == nil || d.mapper == nil {
		return
	}

	hand, ok := d.source.Latest()
	if !ok {
		return
	}

	d.mapper.Apply(&d.state, hand)
}

// State returns a copy of the current motion state. Only meaningful for
// inspection; the loop keeps the authoritative value.
func (d *Driver) State() MotionState {
	return d.state
}
