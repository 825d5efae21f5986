package control

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asheem/orbital/internal/gesture"
	"github.com/asheem/orbital/internal/scene"
)

// stubSource is a hand state snapshot holder standing in for the detection
// pipeline.
type stubSource struct {
	mu    sync.Mutex
	state gesture.HandState
	ok    bool
}

func (s *stubSource) Latest() (gesture.HandState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.ok
}

func (s *stubSource) set(state gesture.HandState, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.ok = ok
}

func TestDriver_SkipsFrameWhenSourceNotReady(t *testing.T) {
	sc := scene.NewMockScene()
	m := NewMapper(sc, DefaultTuning())
	src := &stubSource{}
	d := NewDriver(src, m, time.Millisecond)

	// A not-ready frame must leave everything untouched
	d.step()

	assert.Equal(t, MotionState{}, d.State())
	assert.Empty(t, sc.RotateXCalls)
	assert.Empty(t, sc.RotateYCalls)
	assert.True(t, sc.AutoRotate())
}

func TestDriver_NoOpFrameIsIdempotent(t *testing.T) {
	sc := scene.NewMockScene()
	m := NewMapper(sc, DefaultTuning())
	src := &stubSource{}
	d := NewDriver(src, m, time.Millisecond)

	// Build up some motion state
	src.set(openAt(0.5, 0.5), true)
	d.step()
	src.set(openAt(0.55, 0.48), true)
	d.step()
	before := d.State()
	require.True(t, before.Active)

	// Source goes away briefly: state must be exactly preserved
	src.set(gesture.HandState{}, false)
	for i := 0; i < 5; i++ {
		d.step()
	}

	assert.Equal(t, before, d.State())
}

func TestDriver_NilCollaboratorsAreSkipped(t *testing.T) {
	d := NewDriver(nil, nil, time.Millisecond)

	// Must not panic and must not corrupt state
	d.step()
	assert.Equal(t, MotionState{}, d.State())
}

func TestDriver_StartStop(t *testing.T) {
	sc := scene.NewMockScene()
	m := NewMapper(sc, DefaultTuning())
	src := &stubSource{}
	src.set(openAt(0.5, 0.5), true)

	d := NewDriver(src, m, time.Millisecond)
	d.Start()
	d.Start() // second start is a no-op
	defer d.Stop()

	// The loop should notice the open hand and pause auto-rotation
	require.Eventually(t, func() bool {
		return !sc.AutoRotate()
	}, 2*time.Second, time.Millisecond)

	d.Stop()
	d.Stop() // second stop is a no-op
}

func TestDriver_DefaultInterval(t *testing.T) {
	d := NewDriver(nil, nil, 0)
	assert.Equal(t, DefaultFrameInterval, d.interval)
}
