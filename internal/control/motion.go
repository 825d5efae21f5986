// Package control maps the stable gesture stream onto scene commands. It
// owns the cross-frame motion state: previous palm position, smoothed
// rotation deltas, previous pinch distance and the gesture-active flag.
package control

// Tuning holds the gains, dead-zones and filter factors of the motion
// mapper. Values are adjustable at runtime through the settings API.
type Tuning struct {
	// DeadZone is the minimum palm displacement (normalized units, per
	// axis) that counts as intentional motion.
	DeadZone float64 `json:"deadZone" yaml:"dead_zone"`

	// SmoothFactor is the one-pole low-pass factor pulling the smoothed
	// rotation delta toward its target each frame.
	SmoothFactor float64 `json:"smoothFactor" yaml:"smooth_factor"`

	// RotationGain converts palm displacement into a rotation target in
	// radians.
	RotationGain float64 `json:"rotationGain" yaml:"rotation_gain"`

	// ActiveDecay shrinks the smoothed rotation while the open hand holds
	// still inside the dead-zone, settling motion without a hard cut.
	ActiveDecay float64 `json:"activeDecay" yaml:"active_decay"`

	// IdleDecay shrinks the smoothed rotation after the hand disappears.
	IdleDecay float64 `json:"idleDecay" yaml:"idle_decay"`

	// SettleEpsilon is the smoothed-rotation magnitude below which the
	// globe is considered stopped and auto-rotation resumes.
	SettleEpsilon float64 `json:"settleEpsilon" yaml:"settle_epsilon"`

	// PinchNoiseFloor is the minimum pinch-distance change treated as a
	// deliberate zoom input.
	PinchNoiseFloor float64 `json:"pinchNoiseFloor" yaml:"pinch_noise_floor"`

	// ZoomGain converts pinch-distance change into camera distance change.
	ZoomGain float64 `json:"zoomGain" yaml:"zoom_gain"`

	// DebounceFrames is the gesture debouncer's confirmation window.
	DebounceFrames int `json:"debounceFrames" yaml:"debounce_frames"`
}

// DefaultTuning returns the tuning the mapper ships with.
func DefaultTuning() Tuning {
	return Tuning{
		DeadZone:        0.002,
		SmoothFactor:    0.4,
		RotationGain:    5,
		ActiveDecay:     0.8,
		IdleDecay:       0.85,
		SettleEpsilon:   0.0001,
		PinchNoiseFloor: 0.005,
		ZoomGain:        15,
		DebounceFrames:  2,
	}
}

// Sanitize replaces out-of-range fields with their defaults so a bad
// settings write can never wedge the control loop.
func (t Tuning) Sanitize() Tuning {
	def := DefaultTuning()

	if t.DeadZone <= 0 {
		t.DeadZone = def.DeadZone
	}
	if t.SmoothFactor <= 0 || t.SmoothFactor > 1 {
		t.SmoothFactor = def.SmoothFactor
	}
	if t.RotationGain <= 0 {
		t.RotationGain = def.RotationGain
	}
	if t.ActiveDecay <= 0 || t.ActiveDecay >= 1 {
		t.ActiveDecay = def.ActiveDecay
	}
	if t.IdleDecay <= 0 || t.IdleDecay >= 1 {
		t.IdleDecay = def.IdleDecay
	}
	if t.SettleEpsilon <= 0 {
		t.SettleEpsilon = def.SettleEpsilon
	}
	if t.PinchNoiseFloor <= 0 {
		t.PinchNoiseFloor = def.PinchNoiseFloor
	}
	if t.ZoomGain <= 0 {
		t.ZoomGain = def.ZoomGain
	}
	if t.DebounceFrames < 1 {
		t.DebounceFrames = def.DebounceFrames
	}
	return t
}

// MotionState is the per-driver cross-frame scalar state. It lives in the
// control loop driver and is handed to the mapper by pointer; nothing else
// touches it.
type MotionState struct {
	SmoothedRotX float64
	SmoothedRotY float64

	PrevPalmX   float64
	PrevPalmY   float64
	HasPrevPalm bool

	PrevPinch    float64
	HasPrevPinch bool

	// Active marks that a manual gesture has recently controlled the
	// globe, so losing the hand should decay to a stop rather than snap.
	Active bool
}

// Reset zeroes all carried state.
func (s *MotionState) Reset() {
	*s = MotionState{}
}
