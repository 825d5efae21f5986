package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_ConfirmationLagsByOneFrame(t *testing.T) {
	d := NewDebouncer(2)

	raw := []Label{Open, Open, Fist, Fist}
	want := []Label{None, Open, Open, Fist}

	var got []Label
	for _, l := range raw {
		got = append(got, d.Observe(l))
	}

	assert.Equal(t, want, got)
}

func TestDebouncer_SingleFrameNoiseIsSwallowed(t *testing.T) {
	d := NewDebouncer(2)

	d.Observe(Open)
	d.Observe(Open)
	assert.Equal(t, Open, d.Confirmed())

	// One frame of jitter at a transition must not flip the output.
	assert.Equal(t, Open, d.Observe(Pinch))
	assert.Equal(t, Open, d.Observe(Open))
	assert.Equal(t, Open, d.Observe(Open))
}

func TestDebouncer_NoneDebouncesLikeAnyLabel(t *testing.T) {
	d := NewDebouncer(2)

	d.Observe(Open)
	d.Observe(Open)

	// Losing the hand for a single frame keeps the last confirmed label.
	assert.Equal(t, Open, d.Observe(None))
	assert.Equal(t, None, d.Observe(None))
}

func TestDebouncer_ThresholdOneConfirmsImmediately(t *testing.T) {
	d := NewDebouncer(1)

	assert.Equal(t, Fist, d.Observe(Fist))
	assert.Equal(t, Open, d.Observe(Open))
}

func TestDebouncer_ThresholdClampedToOne(t *testing.T) {
	d := NewDebouncer(0)
	assert.Equal(t, 1, d.Threshold())
	assert.Equal(t, Pinch, d.Observe(Pinch))
}

// Confirmed output may only change at an index where the same raw label has
// been observed at least threshold times consecutively ending there.
func TestDebouncer_ChangeImpliesConsecutiveRun(t *testing.T) {
	const threshold = 3
	d := NewDebouncer(threshold)

	raw := []Label{
		Open, Open, Pinch, Open, Open, Open, Fist, Fist, Pinch,
		Fist, Fist, Fist, None, None, None, Open, Pinch, Open,
	}

	prev := None
	for i, l := range raw {
		confirmed := d.Observe(l)
		if confirmed != prev {
			if i+1 < threshold {
				t.Fatalf("index %d: confirmed changed before %d observations", i, threshold)
			}
			for j := i - threshold + 1; j <= i; j++ {
				if raw[j] != confirmed {
					t.Fatalf("index %d: confirmed changed to %v without %d consecutive frames", i, confirmed, threshold)
				}
			}
		}
		prev = confirmed
	}
}

func TestDebouncer_SetThreshold(t *testing.T) {
	d := NewDebouncer(5)

	d.Observe(Open)
	d.Observe(Open)
	assert.Equal(t, None, d.Confirmed())

	// Lowering the window lets the in-flight candidate confirm right away.
	d.SetThreshold(3)
	assert.Equal(t, Open, d.Observe(Open))
}

func TestDebouncer_Reset(t *testing.T) {
	d := NewDebouncer(1)
	d.Observe(Fist)
	assert.Equal(t, Fist, d.Confirmed())

	d.Reset()
	assert.Equal(t, None, d.Confirmed())
}
