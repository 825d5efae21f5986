package control

import (
	"math"
	"sync"

	"github.com/asheem/orbital/internal/gesture"
	"github.com/asheem/orbital/internal/scene"
)

// Mapper translates one confirmed hand state per frame into scene commands.
// It is stateless apart from its tuning; all cross-frame state arrives via
// the MotionState pointer.
type Mapper struct {
	scene  scene.Scene
	mu     sync.RWMutex
	tuning Tuning
}

// NewMapper creates a Mapper driving the given scene.
func NewMapper(sc scene.Scene, tuning Tuning) *Mapper {
	return &Mapper{
		scene:  sc,
		tuning: tuning.Sanitize(),
	}
}

// SetTuning swaps the mapper's tuning at runtime.
func (m *Mapper) SetTuning(t Tuning) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tuning = t.Sanitize()
}

// Tuning returns the current tuning.
func (m *Mapper) Tuning() Tuning {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tuning
}

// Apply processes one frame of confirmed hand state, issuing scene commands
// and updating st in place.
func (m *Mapper) Apply(st *MotionState, hand gesture.HandState) {
	m.mu.RLock()
	t := m.tuning
	m.mu.RUnlock()

	switch hand.Label {
	case gesture.Open:
		m.applyOpen(st, hand, t)
	case gesture.Pinch:
		m.applyPinch(st, hand, t)
	case gesture.Fist:
		m.applyFist(st)
	case gesture.None:
		m.applyIdle(st, t)
	}
}

// applyOpen rotates the globe with palm motion. Yaw is negated because the
// camera feed is horizontally mirrored: moving the hand right should spin
// the globe right on screen.
func (m *Mapper) applyOpen(st *MotionState, hand gesture.HandState, t Tuning) {
	m.scene.SetAutoRotate(false)

	// A zoom gesture must restart from a fresh baseline afterwards
	st.HasPrevPinch = false

	if st.HasPrevPalm {
		dx := hand.Palm.X - st.PrevPalmX
		dy := hand.Palm.Y - st.PrevPalmY

		if math.Abs(dx) > t.DeadZone || math.Abs(dy) > t.DeadZone {
			targetY := -dx * t.RotationGain
			targetX := dy * t.RotationGain
			st.SmoothedRotY += (targetY - st.SmoothedRotY) * t.SmoothFactor
			st.SmoothedRotX += (targetX - st.SmoothedRotX) * t.SmoothFactor
		} else {
			// Hand trembling in place: let the motion bleed off
			st.SmoothedRotX *= t.ActiveDecay
			st.SmoothedRotY *= t.ActiveDecay
		}

		m.scene.RotateY(st.SmoothedRotY)
		m.scene.RotateX(st.SmoothedRotX)
	}

	st.PrevPalmX = hand.Palm.X
	st.PrevPalmY = hand.Palm.Y
	st.HasPrevPalm = true
	st.Active = true
}

// applyPinch zooms with the thumb-index distance: spreading the fingers
// (positive delta) pulls the camera back, closing them zooms in.
func (m *Mapper) applyPinch(st *MotionState, hand gesture.HandState, t Tuning) {
	m.scene.SetAutoRotate(false)

	if st.HasPrevPinch {
		delta := hand.PinchDistance - st.PrevPinch
		if math.Abs(delta) > t.PinchNoiseFloor {
			m.scene.SetZoom(m.scene.GetZoom() + delta*t.ZoomGain)
		}
	}

	st.PrevPinch = hand.PinchDistance
	st.HasPrevPinch = true
	st.Active = true
}

// applyFist is a full stop: auto-rotation back on, the pan re-centered,
// every carried tracker hard-reset. No decay.
func (m *Mapper) applyFist(st *MotionState) {
	m.scene.SetAutoRotate(true)
	m.scene.ResetPosition()

	st.SmoothedRotX = 0
	st.SmoothedRotY = 0
	st.HasPrevPalm = false
	st.HasPrevPinch = false
	st.Active = false
}

// applyIdle handles "no hand". After an active gesture the smoothed
// rotation decays until it settles, then auto-rotation resumes. Trackers
// are always cleared so the next gesture starts from a clean baseline
// instead of extrapolating across the gap.
func (m *Mapper) applyIdle(st *MotionState, t Tuning) {
	if st.Active {
		st.SmoothedRotX *= t.IdleDecay
		st.SmoothedRotY *= t.IdleDecay

		m.scene.RotateY(st.SmoothedRotY)
		m.scene.RotateX(st.SmoothedRotX)

		if math.Abs(st.SmoothedRotX) < t.SettleEpsilon && math.Abs(st.SmoothedRotY) < t.SettleEpsilon {
			st.SmoothedRotX = 0
			st.SmoothedRotY = 0
			m.scene.SetAutoRotate(true)
			st.Active = false
		}
	}

	st.HasPrevPalm = false
	st.HasPrevPinch = false
}
