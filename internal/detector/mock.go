package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandLandmarks
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// The preset poses below are hand-built landmark sets in image coordinates
// (y grows downward, wrist near the bottom of the frame). They are shared
// by the gesture and control tests.

// OpenPalmLandmarks returns a pose with all five digits extended.
func OpenPalmLandmarks() HandLandmarks {
	lm := HandLandmarks{Handedness: "Right", Score: 0.95}

	lm.Points[Wrist] = Point3D{X: 0.50, Y: 0.80}

	// Thumb splayed out to the side
	lm.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75}
	lm.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.70}
	lm.Points[ThumbIP] = Point3D{X: 0.68, Y: 0.65}
	lm.Points[ThumbTip] = Point3D{X: 0.73, Y: 0.60}

	// Four fingers pointing up, tips well above their base joints
	lm.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68}
	lm.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.55}
	lm.Points[IndexDIP] = Point3D{X: 0.58, Y: 0.45}
	lm.Points[IndexTip] = Point3D{X: 0.58, Y: 0.35}

	lm.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66}
	lm.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.52}
	lm.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.40}
	lm.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.28}

	lm.Points[RingMCP] = Point3D{X: 0.45, Y: 0.68}
	lm.Points[RingPIP] = Point3D{X: 0.43, Y: 0.55}
	lm.Points[RingDIP] = Point3D{X: 0.42, Y: 0.45}
	lm.Points[RingTip] = Point3D{X: 0.42, Y: 0.35}

	lm.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70}
	lm.Points[PinkyPIP] = Point3D{X: 0.37, Y: 0.60}
	lm.Points[PinkyDIP] = Point3D{X: 0.35, Y: 0.50}
	lm.Points[PinkyTip] = Point3D{X: 0.34, Y: 0.42}

	return lm
}

// FistLandmarks returns a pose with all fingers curled into the palm and
// the thumb tucked across the curled fingers. The thumb tip ends up close
// to the index tip, which is exactly the configuration that must not be
// read as a pinch.
func FistLandmarks() HandLandmarks {
	lm := HandLandmarks{Handedness: "Right", Score: 0.93}

	lm.Points[Wrist] = Point3D{X: 0.50, Y: 0.80}

	// Thumb tucked: tip closer to the wrist (horizontally) than the IP joint
	lm.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.76}
	lm.Points[ThumbMCP] = Point3D{X: 0.56, Y: 0.72}
	lm.Points[ThumbIP] = Point3D{X: 0.55, Y: 0.70}
	lm.Points[ThumbTip] = Point3D{X: 0.52, Y: 0.70}

	// Curled fingers: tips below their middle joints
	lm.Points[IndexMCP] = Point3D{X: 0.54, Y: 0.68}
	lm.Points[IndexPIP] = Point3D{X: 0.55, Y: 0.64}
	lm.Points[IndexDIP] = Point3D{X: 0.53, Y: 0.67}
	lm.Points[IndexTip] = Point3D{X: 0.51, Y: 0.71}

	lm.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.67}
	lm.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.63}
	lm.Points[MiddleDIP] = Point3D{X: 0.48, Y: 0.66}
	lm.Points[MiddleTip] = Point3D{X: 0.47, Y: 0.70}

	lm.Points[RingMCP] = Point3D{X: 0.46, Y: 0.68}
	lm.Points[RingPIP] = Point3D{X: 0.46, Y: 0.64}
	lm.Points[RingDIP] = Point3D{X: 0.44, Y: 0.67}
	lm.Points[RingTip] = Point3D{X: 0.43, Y: 0.71}

	lm.Points[PinkyMCP] = Point3D{X: 0.42, Y: 0.70}
	lm.Points[PinkyPIP] = Point3D{X: 0.42, Y: 0.66}
	lm.Points[PinkyDIP] = Point3D{X: 0.40, Y: 0.69}
	lm.Points[PinkyTip] = Point3D{X: 0.39, Y: 0.72}

	return lm
}

// PinchLandmarks returns a pose with the thumb and index tips nearly
// touching while the index stays extended and the remaining fingers curl.
func PinchLandmarks() HandLandmarks {
	lm := HandLandmarks{Handedness: "Right", Score: 0.94}

	lm.Points[Wrist] = Point3D{X: 0.50, Y: 0.80}

	// Thumb reaching toward the index tip, still lateral of the wrist
	lm.Points[ThumbCMC] = Point3D{X: 0.54, Y: 0.75}
	lm.Points[ThumbMCP] = Point3D{X: 0.56, Y: 0.66}
	lm.Points[ThumbIP] = Point3D{X: 0.55, Y: 0.55}
	lm.Points[ThumbTip] = Point3D{X: 0.57, Y: 0.44}

	// Index extended, tip meeting the thumb
	lm.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68}
	lm.Points[IndexPIP] = Point3D{X: 0.56, Y: 0.56}
	lm.Points[IndexDIP] = Point3D{X: 0.57, Y: 0.48}
	lm.Points[IndexTip] = Point3D{X: 0.57, Y: 0.42}

	lm.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.67}
	lm.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.63}
	lm.Points[MiddleDIP] = Point3D{X: 0.48, Y: 0.66}
	lm.Points[MiddleTip] = Point3D{X: 0.47, Y: 0.70}

	lm.Points[RingMCP] = Point3D{X: 0.46, Y: 0.68}
	lm.Points[RingPIP] = Point3D{X: 0.46, Y: 0.64}
	lm.Points[RingDIP] = Point3D{X: 0.44, Y: 0.67}
	lm.Points[RingTip] = Point3D{X: 0.43, Y: 0.71}

	lm.Points[PinkyMCP] = Point3D{X: 0.42, Y: 0.70}
	lm.Points[PinkyPIP] = Point3D{X: 0.42, Y: 0.66}
	lm.Points[PinkyDIP] = Point3D{X: 0.40, Y: 0.69}
	lm.Points[PinkyTip] = Point3D{X: 0.39, Y: 0.72}

	return lm
}

// PeaceSignLandmarks returns a pose with index and middle extended and the
// rest curled. It belongs to no gesture in the control vocabulary and
// should classify as none.
func PeaceSignLandmarks() HandLandmarks {
	lm := HandLandmarks{Handedness: "Right", Score: 0.92}

	lm.Points[Wrist] = Point3D{X: 0.50, Y: 0.80}

	lm.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.76}
	lm.Points[ThumbMCP] = Point3D{X: 0.56, Y: 0.72}
	lm.Points[ThumbIP] = Point3D{X: 0.55, Y: 0.70}
	lm.Points[ThumbTip] = Point3D{X: 0.52, Y: 0.70}

	lm.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68}
	lm.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.55}
	lm.Points[IndexDIP] = Point3D{X: 0.58, Y: 0.45}
	lm.Points[IndexTip] = Point3D{X: 0.58, Y: 0.35}

	lm.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66}
	lm.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.52}
	lm.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.40}
	lm.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.28}

	lm.Points[RingMCP] = Point3D{X: 0.46, Y: 0.68}
	lm.Points[RingPIP] = Point3D{X: 0.46, Y: 0.64}
	lm.Points[RingDIP] = Point3D{X: 0.44, Y: 0.67}
	lm.Points[RingTip] = Point3D{X: 0.43, Y: 0.71}

	lm.Points[PinkyMCP] = Point3D{X: 0.42, Y: 0.70}
	lm.Points[PinkyPIP] = Point3D{X: 0.42, Y: 0.66}
	lm.Points[PinkyDIP] = Point3D{X: 0.40, Y: 0.69}
	lm.Points[PinkyTip] = Point3D{X: 0.39, Y: 0.72}

	return lm
}

// Shifted returns a copy of the landmark set translated by (dx, dy).
// Useful for simulating palm motion across frames.
func Shifted(lm HandLandmarks, dx, dy float64) HandLandmarks {
	out := lm
	for i := range out.Points {
		out.Points[i].X += dx
		out.Points[i].Y += dy
	}
	return out
}
