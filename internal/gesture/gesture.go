// Package gesture turns per-frame hand landmarks into a stable stream of
// discrete control gestures.
package gesture

import (
	"fmt"

	"github.com/asheem/orbital/internal/detector"
)

// Label is the closed set of control gestures. Keeping it a small integer
// enum lets the motion mapper switch over it exhaustively.
type Label int

const (
	// None means no hand, a degenerate hand, or an unrecognized pose.
	None Label = iota
	// Open is a spread hand with at least three fingers up; drives rotation.
	Open
	// Pinch is thumb and index brought together; drives zoom.
	Pinch
	// Fist is all digits curled; stops manual control and resumes
	// auto-rotation.
	Fist
)

// String returns the lowercase name of the label.
func (l Label) String() string {
	switch l {
	case Open:
		return "open"
	case Pinch:
		return "pinch"
	case Fist:
		return "fist"
	default:
		return "none"
	}
}

// MarshalJSON encodes the label as its string name.
func (l Label) MarshalJSON() ([]byte, error) {
	return []byte(`"` + l.String() + `"`), nil
}

// ParseLabel converts a string name back into a Label.
func ParseLabel(s string) (Label, error) {
	switch s {
	case "none":
		return None, nil
	case "open":
		return Open, nil
	case "pinch":
		return Pinch, nil
	case "fist":
		return Fist, nil
	}
	return None, fmt.Errorf("unknown gesture label %q", s)
}

// HandState is the per-frame classification result. Landmarks is nil when
// no usable hand was seen this frame; Palm is only meaningful when
// Landmarks is set.
type HandState struct {
	Label         Label                   `json:"label"`
	PinchDistance float64                 `json:"pinchDistance"`
	Palm          detector.Point3D        `json:"palm"`
	Landmarks     *detector.HandLandmarks `json:"landmarks,omitempty"`
}
