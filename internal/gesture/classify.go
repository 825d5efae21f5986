package gesture

import (
	"math"

	"github.com/asheem/orbital/internal/detector"
)

// Classification thresholds, in normalized image units unless noted.
const (
	// MinHandSize is the wrist-to-middle-base distance below which the
	// landmark set is treated as degenerate. Guards the divisions below.
	MinHandSize = 0.01

	// PinchThreshold is the hand-size-normalized thumb-index distance
	// under which a pose counts as a pinch.
	PinchThreshold = 0.5

	// openFingerCount is the minimum number of extended fingers for the
	// open-hand gesture.
	openFingerCount = 3
)

// fingerJoints lists (tip, pip) landmark pairs for the four non-thumb
// fingers.
var fingerJoints = [4][2]int{
	{detector.IndexTip, detector.IndexPIP},
	{detector.MiddleTip, detector.MiddlePIP},
	{detector.RingTip, detector.RingPIP},
	{detector.PinkyTip, detector.PinkyPIP},
}

// Classify maps one hand's landmarks to a gesture label plus the continuous
// pinch signal. Pure function of the landmark geometry; it holds no state
// and never fails — a hand too small or missing classifies as None.
//
// Rules are checked in priority order because the poses overlap: a closed
// fist also has a tiny thumb-index distance, so fist must win over pinch.
func Classify(hand *detector.HandLandmarks) HandState {
	if hand == nil {
		return HandState{Label: None, PinchDistance: 1}
	}

	handSize := hand.HandSize()
	if handSize < MinHandSize {
		return HandState{Label: None, PinchDistance: 1}
	}

	// Finger extension: in image coordinates y grows downward, so an
	// extended finger has its tip above the middle joint.
	fingersUp := 0
	for _, fj := range fingerJoints {
		if hand.Points[fj[0]].Y < hand.Points[fj[1]].Y {
			fingersUp++
		}
	}
	indexUp := hand.Points[detector.IndexTip].Y < hand.Points[detector.IndexPIP].Y

	// The thumb moves laterally rather than vertically, so it gets a
	// horizontal test: tip further from the wrist than the inner joint.
	wristX := hand.Points[detector.Wrist].X
	thumbUp := math.Abs(hand.Points[detector.ThumbTip].X-wristX) >
		math.Abs(hand.Points[detector.ThumbIP].X-wristX)

	// Normalizing by hand size removes the dependency on how far the hand
	// is from the camera.
	pinch := detector.Distance2D(
		hand.Points[detector.ThumbTip],
		hand.Points[detector.IndexTip],
	) / handSize

	state := HandState{
		Label:         None,
		PinchDistance: pinch,
		Palm:          hand.PalmCenter(),
		Landmarks:     hand,
	}

	switch {
	case fingersUp <= 1 && !thumbUp:
		state.Label = Fist
	case pinch < PinchThreshold && (thumbUp || indexUp):
		state.Label = Pinch
	case fingersUp >= openFingerCount:
		state.Label = Open
	}

	return state
}
