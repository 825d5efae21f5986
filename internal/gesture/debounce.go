package gesture

import "sync"

// DefaultDebounceFrames is the number of consecutive identical raw labels
// required before the confirmed label switches.
const DefaultDebounceFrames = 2

// Debouncer smooths per-frame classifier noise into a stable gesture
// stream. The confirmed label is sticky: it only changes once the same raw
// label has been seen for the configured number of consecutive frames, so a
// single-frame misclassification at a gesture transition never reaches the
// motion mapper.
type Debouncer struct {
	mu        sync.Mutex
	threshold int
	candidate Label
	count     int
	confirmed Label
}

// NewDebouncer creates a Debouncer requiring threshold consecutive frames.
// Values below 1 are clamped to 1 (confirm immediately).
func NewDebouncer(threshold int) *Debouncer {
	if threshold < 1 {
		threshold = 1
	}
	return &Debouncer{threshold: threshold}
}

// Observe feeds one raw per-frame label and returns the confirmed label.
// None debounces like any other label, so losing the hand also has a brief
// hysteresis.
func (d *Debouncer) Observe(raw Label) Label {
	d.mu.Lock()
	defer d.mu.Unlock()

	if raw == d.candidate {
		d.count++
	} else {
		d.candidate = raw
		d.count = 1
	}

	if d.count >= d.threshold {
		d.confirmed = d.candidate
	}

	return d.confirmed
}

// Confirmed returns the current confirmed label without observing a frame.
func (d *Debouncer) Confirmed() Label {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.confirmed
}

// Reset clears all state back to None.
func (d *Debouncer) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.candidate = None
	d.count = 0
	d.confirmed = None
}

// SetThreshold changes the confirmation window at runtime (settings API).
// Values below 1 are clamped to 1. The in-flight count is kept, so a lower
// threshold can take effect on the very next frame.
func (d *Debouncer) SetThreshold(threshold int) {
	if threshold < 1 {
		threshold = 1
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.threshold = threshold
}

// Threshold returns the current confirmation window.
func (d *Debouncer) Threshold() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.threshold
}
