// Package detector provides hand pose sources and the landmark data model.
package detector

import "errors"

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

// ErrInvalidPose is returned when a decoded hand does not carry exactly
// NumLandmarks points. Malformed hands are dropped at the decode boundary
// and never reach gesture classification.
var ErrInvalidPose = errors.New("invalid hand pose")

// Point3D represents a normalized image coordinate. X grows rightward and
// Y grows downward, both in [0, 1]; Z is relative depth from MediaPipe and
// is not used by any gesture rule.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks of a single detected hand.
// The fixed-size array guarantees a well-formed pose carries exactly
// NumLandmarks points.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}
