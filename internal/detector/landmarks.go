// Package detector provides hand landmark detection interfaces and types.
package detector

import "math"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D represents a landmark position. X and Y are normalized image
// coordinates in [0,1] with Y growing downward; Z is relative depth.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected by MediaPipe.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// Distance2D returns the planar Euclidean distance between two landmarks,
// ignoring depth. Gesture geometry works in image coordinates where the
// model's Z estimate is much noisier than X/Y.
func Distance2D(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// HandSize returns the wrist to middle-finger-base distance, the scale
// reference used to normalize all other hand distances. Near-zero values
// mean the landmark set is degenerate.
func (h *HandLandmarks) HandSize() float64 {
	return Distance2D(h.Points[Wrist], h.Points[MiddleMCP])
}

// PalmCenter returns the centroid of the wrist and the four finger base
// joints, a stable proxy for where the palm sits in the frame.
func (h *HandLandmarks) PalmCenter() Point3D {
	anchors := [...]int{Wrist, IndexMCP, MiddleMCP, RingMCP, PinkyMCP}

	var c Point3D
	for _, i := range anchors {
		c.X += h.Points[i].X
		c.Y += h.Points[i].Y
		c.Z += h.Points[i].Z
	}
	n := float64(len(anchors))
	c.X /= n
	c.Y /= n
	c.Z /= n
	return c
}
