package gesture

import (
	"math"

	"github.com/ayusman/mudra/internal/detector"
)

// Geometric thresholds for the shape rules. Coordinates are normalized
// image space, so the values are fractions of the frame.
const (
	// frameThumbSpread is the minimum horizontal thumb spread for a
	// frame hand.
	frameThumbSpread = 0.05
	// threeFingerSpread is the minimum horizontal thumb spread for a
	// three-finger hand.
	threeFingerSpread = 0.04
	// pointingReach is how far past the wrist a fingertip must reach to
	// count as pointing sideways.
	pointingReach = 0.10
	// thumbTuckSlack is how far right of the thumb IP joint the thumb
	// tip may sit while still counting as tucked.
	thumbTuckSlack = 0.05
	// thumbRise is how far above the wrist the thumb tip must sit for a
	// thumbs up.
	thumbRise = 0.15
	// verticalAspect is the minimum ratio of vertical to horizontal
	// thumb travel for a thumbs up.
	verticalAspect = 0.8
)

// Classifier labels each frame's hands with a raw gesture using fixed
// geometric rules. It owns the ConvergenceTracker consulted by the
// two-hand zoom-out rule, so a single goroutine must drive it.
type Classifier struct {
	convergence ConvergenceTracker
}

// NewClassifier creates a Classifier with an empty convergence window.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify applies the shape rules in priority order and returns the raw
// gesture for this frame. Exactly two hands enable the zoom rules and
// exactly one hand enables the single-hand rules; any other hand count
// yields GestureNone. Handedness never matters. The convergence window
// persists across frames that do not qualify for it.
func (c *Classifier) Classify(hands []detector.HandLandmarks) Gesture {
	switch len(hands) {
	case 2:
		return c.classifyTwoHands(&hands[0], &hands[1])
	case 1:
		return classifyOneHand(&hands[0])
	default:
		return GestureNone
	}
}

// Reset clears the convergence window.
func (c *Classifier) Reset() {
	c.convergence.Reset()
}

func (c *Classifier) classifyTwoHands(a, b *detector.HandLandmarks) Gesture {
	if isFrameHand(a) && isFrameHand(b) {
		return GestureZoomIn
	}

	if isThreeFingerHand(a) && isThreeFingerHand(b) {
		if c.convergence.Observe(wristDistance(a, b)) {
			return GestureZoomOut
		}
	}

	return GestureNone
}

func classifyOneHand(h *detector.HandLandmarks) Gesture {
	switch {
	case isPointingRight(h):
		return GestureNext
	case isPointingLeft(h):
		return GesturePrev
	case isThumbsUp(h):
		return GestureStart
	case isOpenPalm(h):
		return GesturePause
	default:
		return GestureNone
	}
}

// fingerExtended reports whether the finger straightens away from the
// palm: the tip sits above the PIP joint. Y grows downward.
func fingerExtended(h *detector.HandLandmarks, tip, pip int) bool {
	return h.Points[tip].Y < h.Points[pip].Y
}

// fingerCurled reports whether the finger folds toward the palm: the tip
// sits below the PIP joint.
func fingerCurled(h *detector.HandLandmarks, tip, pip int) bool {
	return h.Points[tip].Y > h.Points[pip].Y
}

// isPointingRight matches two fingers pointing right: index and middle
// extended with both tips well right of the wrist, ring and pinky curled.
func isPointingRight(h *detector.HandLandmarks) bool {
	if !fingerExtended(h, detector.IndexTip, detector.IndexPIP) ||
		!fingerExtended(h, detector.MiddleTip, detector.MiddlePIP) {
		return false
	}
	if !fingerCurled(h, detector.RingTip, detector.RingPIP) ||
		!fingerCurled(h, detector.PinkyTip, detector.PinkyPIP) {
		return false
	}

	wristX := h.Points[detector.Wrist].X
	return h.Points[detector.IndexTip].X > wristX+pointingReach &&
		h.Points[detector.MiddleTip].X > wristX+pointingReach
}

// isPointingLeft matches one finger pointing left: only the index
// extended, tip well left of the wrist, thumb tucked against the palm.
func isPointingLeft(h *detector.HandLandmarks) bool {
	if !fingerExtended(h, detector.IndexTip, detector.IndexPIP) {
		return false
	}
	if !fingerCurled(h, detector.MiddleTip, detector.MiddlePIP) ||
		!fingerCurled(h, detector.RingTip, detector.RingPIP) ||
		!fingerCurled(h, detector.PinkyTip, detector.PinkyPIP) {
		return false
	}
	if h.Points[detector.ThumbTip].X >= h.Points[detector.ThumbIP].X+thumbTuckSlack {
		return false
	}

	return h.Points[detector.IndexTip].X < h.Points[detector.Wrist].X-pointingReach
}

// isThumbsUp matches a thumbs up: thumb extended mostly vertically and
// risen well above the wrist, all four fingers curled.
func isThumbsUp(h *detector.HandLandmarks) bool {
	thumbTip := h.Points[detector.ThumbTip]
	thumbMCP := h.Points[detector.ThumbMCP]

	if thumbTip.Y >= thumbMCP.Y {
		return false
	}
	if math.Abs(thumbTip.Y-thumbMCP.Y) <= verticalAspect*math.Abs(thumbTip.X-thumbMCP.X) {
		return false
	}
	if thumbTip.Y >= h.Points[detector.Wrist].Y-thumbRise {
		return false
	}

	return fingerCurled(h, detector.IndexTip, detector.IndexPIP) &&
		fingerCurled(h, detector.MiddleTip, detector.MiddlePIP) &&
		fingerCurled(h, detector.RingTip, detector.RingPIP) &&
		fingerCurled(h, detector.PinkyTip, detector.PinkyPIP)
}

// isOpenPalm matches an open palm: thumb tip above its IP joint and all
// four fingers extended.
func isOpenPalm(h *detector.HandLandmarks) bool {
	if h.Points[detector.ThumbTip].Y >= h.Points[detector.ThumbIP].Y {
		return false
	}

	return fingerExtended(h, detector.IndexTip, detector.IndexPIP) &&
		fingerExtended(h, detector.MiddleTip, detector.MiddlePIP) &&
		fingerExtended(h, detector.RingTip, detector.RingPIP) &&
		fingerExtended(h, detector.PinkyTip, detector.PinkyPIP)
}

// isFrameHand matches one half of a two-hand photo frame: thumb spread
// wide of the palm, index extended, remaining fingers curled.
func isFrameHand(h *detector.HandLandmarks) bool {
	spread := math.Abs(h.Points[detector.ThumbTip].X - h.Points[detector.ThumbMCP].X)
	if spread <= frameThumbSpread {
		return false
	}
	if !fingerExtended(h, detector.IndexTip, detector.IndexPIP) {
		return false
	}

	return fingerCurled(h, detector.MiddleTip, detector.MiddlePIP) &&
		fingerCurled(h, detector.RingTip, detector.RingPIP) &&
		fingerCurled(h, detector.PinkyTip, detector.PinkyPIP)
}

// isThreeFingerHand matches one half of the zoom-out pose: thumb spread,
// index and middle extended, ring and pinky curled.
func isThreeFingerHand(h *detector.HandLandmarks) bool {
	spread := math.Abs(h.Points[detector.ThumbTip].X - h.Points[detector.ThumbMCP].X)
	if spread <= threeFingerSpread {
		return false
	}
	if !fingerExtended(h, detector.IndexTip, detector.IndexPIP) ||
		!fingerExtended(h, detector.MiddleTip, detector.MiddlePIP) {
		return false
	}

	return fingerCurled(h, detector.RingTip, detector.RingPIP) &&
		fingerCurled(h, detector.PinkyTip, detector.PinkyPIP)
}

// wristDistance returns the planar distance between two wrists. Depth is
// ignored; only image-plane motion counts toward convergence.
func wristDistance(a, b *detector.HandLandmarks) float64 {
	dx := a.Points[detector.Wrist].X - b.Points[detector.Wrist].X
	dy := a.Points[detector.Wrist].Y - b.Points[detector.Wrist].Y
	return math.Hypot(dx, dy)
}
