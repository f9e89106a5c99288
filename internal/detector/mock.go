package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results, either as a fixed
// result or as a scripted per-call sequence.
type MockDetector struct {
	hands []HandLandmarks
	queue [][]HandLandmarks
	err   error
	calls int
	mu    sync.Mutex
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// QueueHands appends a scripted result. Each Detect call consumes one
// queued result in order before falling back to the fixed hands.
func (m *MockDetector) QueueHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, hands)
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns the number of times Detect has been invoked.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Detect returns the next scripted result, the fixed hands, or the
// configured error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if len(m.queue) > 0 {
		hands := m.queue[0]
		m.queue = m.queue[1:]
		return hands, nil
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// ThumbsUpLandmarks returns a preset HandLandmarks representing a thumbs up.
// The thumb is extended upward while other fingers are curled.
func ThumbsUpLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	// Wrist at origin
	landmarks.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	// Thumb extended upward (pointing up, Y decreases going up)
	landmarks.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.0}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.65, Z: 0.0}
	landmarks.Points[ThumbIP] = Point3D{X: 0.58, Y: 0.50, Z: 0.0}
	landmarks.Points[ThumbTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}

	// Index finger curled (knuckles close together, tip near palm)
	landmarks.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.70, Z: -0.02}
	landmarks.Points[IndexPIP] = Point3D{X: 0.55, Y: 0.68, Z: -0.05}
	landmarks.Points[IndexDIP] = Point3D{X: 0.52, Y: 0.70, Z: -0.04}
	landmarks.Points[IndexTip] = Point3D{X: 0.50, Y: 0.72, Z: -0.02}

	// Middle finger curled
	landmarks.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.68, Z: -0.02}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.66, Z: -0.05}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.47, Y: 0.68, Z: -0.04}
	landmarks.Points[MiddleTip] = Point3D{X: 0.45, Y: 0.70, Z: -0.02}

	// Ring finger curled
	landmarks.Points[RingMCP] = Point3D{X: 0.45, Y: 0.70, Z: -0.02}
	landmarks.Points[RingPIP] = Point3D{X: 0.45, Y: 0.68, Z: -0.05}
	landmarks.Points[RingDIP] = Point3D{X: 0.42, Y: 0.70, Z: -0.04}
	landmarks.Points[RingTip] = Point3D{X: 0.40, Y: 0.72, Z: -0.02}

	// Pinky finger curled
	landmarks.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.72, Z: -0.02}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.40, Y: 0.70, Z: -0.05}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.37, Y: 0.72, Z: -0.04}
	landmarks.Points[PinkyTip] = Point3D{X: 0.35, Y: 0.74, Z: -0.02}

	return landmarks
}

// OpenPalmLandmarks returns a preset HandLandmarks representing an open palm.
// All fingers are extended outward.
func OpenPalmLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	// Wrist at base
	landmarks.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	// Thumb extended to the side
	landmarks.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.02}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.70, Z: 0.03}
	landmarks.Points[ThumbIP] = Point3D{X: 0.68, Y: 0.65, Z: 0.03}
	landmarks.Points[ThumbTip] = Point3D{X: 0.73, Y: 0.60, Z: 0.03}

	// Index finger extended upward
	landmarks.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68, Z: 0.0}
	landmarks.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.55, Z: 0.0}
	landmarks.Points[IndexDIP] = Point3D{X: 0.58, Y: 0.45, Z: 0.0}
	landmarks.Points[IndexTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}

	// Middle finger extended upward (slightly longer)
	landmarks.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66, Z: 0.0}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.52, Z: 0.0}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.40, Z: 0.0}
	landmarks.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.28, Z: 0.0}

	// Ring finger extended upward
	landmarks.Points[RingMCP] = Point3D{X: 0.45, Y: 0.68, Z: 0.0}
	landmarks.Points[RingPIP] = Point3D{X: 0.43, Y: 0.55, Z: 0.0}
	landmarks.Points[RingDIP] = Point3D{X: 0.42, Y: 0.45, Z: 0.0}
	landmarks.Points[RingTip] = Point3D{X: 0.42, Y: 0.35, Z: 0.0}

	// Pinky finger extended upward
	landmarks.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70, Z: 0.0}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.37, Y: 0.60, Z: 0.0}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.35, Y: 0.50, Z: 0.0}
	landmarks.Points[PinkyTip] = Point3D{X: 0.34, Y: 0.42, Z: 0.0}

	return landmarks
}

// PointingRightLandmarks returns a preset HandLandmarks with index and
// middle fingers extended to the right of the wrist, ring and pinky curled.
func PointingRightLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	landmarks.Points[Wrist] = Point3D{X: 0.30, Y: 0.60, Z: 0.0}

	// Thumb resting alongside the palm
	landmarks.Points[ThumbCMC] = Point3D{X: 0.34, Y: 0.58, Z: 0.0}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.38, Y: 0.56, Z: 0.0}
	landmarks.Points[ThumbIP] = Point3D{X: 0.40, Y: 0.55, Z: 0.0}
	landmarks.Points[ThumbTip] = Point3D{X: 0.42, Y: 0.54, Z: 0.0}

	// Index finger extended rightward
	landmarks.Points[IndexMCP] = Point3D{X: 0.40, Y: 0.52, Z: 0.0}
	landmarks.Points[IndexPIP] = Point3D{X: 0.46, Y: 0.50, Z: 0.0}
	landmarks.Points[IndexDIP] = Point3D{X: 0.51, Y: 0.49, Z: 0.0}
	landmarks.Points[IndexTip] = Point3D{X: 0.55, Y: 0.48, Z: 0.0}

	// Middle finger extended rightward
	landmarks.Points[MiddleMCP] = Point3D{X: 0.40, Y: 0.56, Z: 0.0}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.47, Y: 0.545, Z: 0.0}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.52, Y: 0.54, Z: 0.0}
	landmarks.Points[MiddleTip] = Point3D{X: 0.56, Y: 0.53, Z: 0.0}

	// Ring finger curled
	landmarks.Points[RingMCP] = Point3D{X: 0.39, Y: 0.60, Z: -0.02}
	landmarks.Points[RingPIP] = Point3D{X: 0.42, Y: 0.60, Z: -0.05}
	landmarks.Points[RingDIP] = Point3D{X: 0.41, Y: 0.62, Z: -0.04}
	landmarks.Points[RingTip] = Point3D{X: 0.39, Y: 0.63, Z: -0.02}

	// Pinky finger curled
	landmarks.Points[PinkyMCP] = Point3D{X: 0.37, Y: 0.63, Z: -0.02}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.40, Y: 0.63, Z: -0.05}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.39, Y: 0.65, Z: -0.04}
	landmarks.Points[PinkyTip] = Point3D{X: 0.37, Y: 0.66, Z: -0.02}

	return landmarks
}

// PointingLeftLandmarks returns a preset HandLandmarks with only the index
// finger extended, reaching left of the wrist, thumb tucked against the palm.
func PointingLeftLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	landmarks.Points[Wrist] = Point3D{X: 0.70, Y: 0.60, Z: 0.0}

	// Thumb tucked across the palm
	landmarks.Points[ThumbCMC] = Point3D{X: 0.66, Y: 0.58, Z: 0.0}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.56, Z: 0.0}
	landmarks.Points[ThumbIP] = Point3D{X: 0.60, Y: 0.55, Z: 0.0}
	landmarks.Points[ThumbTip] = Point3D{X: 0.58, Y: 0.54, Z: 0.0}

	// Index finger extended leftward
	landmarks.Points[IndexMCP] = Point3D{X: 0.60, Y: 0.52, Z: 0.0}
	landmarks.Points[IndexPIP] = Point3D{X: 0.54, Y: 0.50, Z: 0.0}
	landmarks.Points[IndexDIP] = Point3D{X: 0.49, Y: 0.49, Z: 0.0}
	landmarks.Points[IndexTip] = Point3D{X: 0.45, Y: 0.48, Z: 0.0}

	// Middle finger curled
	landmarks.Points[MiddleMCP] = Point3D{X: 0.60, Y: 0.56, Z: -0.02}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.56, Y: 0.55, Z: -0.05}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.58, Y: 0.57, Z: -0.04}
	landmarks.Points[MiddleTip] = Point3D{X: 0.60, Y: 0.58, Z: -0.02}

	// Ring finger curled
	landmarks.Points[RingMCP] = Point3D{X: 0.61, Y: 0.60, Z: -0.02}
	landmarks.Points[RingPIP] = Point3D{X: 0.58, Y: 0.60, Z: -0.05}
	landmarks.Points[RingDIP] = Point3D{X: 0.60, Y: 0.62, Z: -0.04}
	landmarks.Points[RingTip] = Point3D{X: 0.62, Y: 0.63, Z: -0.02}

	// Pinky finger curled
	landmarks.Points[PinkyMCP] = Point3D{X: 0.63, Y: 0.63, Z: -0.02}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.60, Y: 0.63, Z: -0.05}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.62, Y: 0.65, Z: -0.04}
	landmarks.Points[PinkyTip] = Point3D{X: 0.63, Y: 0.66, Z: -0.02}

	return landmarks
}

// FrameHandLandmarks returns a preset HandLandmarks forming one half of a
// two-hand photo frame: thumb and index form an L, other fingers curled.
// offsetX shifts the whole hand horizontally so tests can place two copies
// side by side.
func FrameHandLandmarks(offsetX float64) HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	landmarks.Points[Wrist] = Point3D{X: offsetX + 0.35, Y: 0.70, Z: 0.0}

	// Thumb spread horizontally away from the palm
	landmarks.Points[ThumbCMC] = Point3D{X: offsetX + 0.39, Y: 0.66, Z: 0.0}
	landmarks.Points[ThumbMCP] = Point3D{X: offsetX + 0.41, Y: 0.62, Z: 0.0}
	landmarks.Points[ThumbIP] = Point3D{X: offsetX + 0.44, Y: 0.58, Z: 0.0}
	landmarks.Points[ThumbTip] = Point3D{X: offsetX + 0.48, Y: 0.55, Z: 0.0}

	// Index finger extended upward
	landmarks.Points[IndexMCP] = Point3D{X: offsetX + 0.37, Y: 0.60, Z: 0.0}
	landmarks.Points[IndexPIP] = Point3D{X: offsetX + 0.38, Y: 0.52, Z: 0.0}
	landmarks.Points[IndexDIP] = Point3D{X: offsetX + 0.38, Y: 0.46, Z: 0.0}
	landmarks.Points[IndexTip] = Point3D{X: offsetX + 0.39, Y: 0.40, Z: 0.0}

	// Middle finger curled
	landmarks.Points[MiddleMCP] = Point3D{X: offsetX + 0.35, Y: 0.60, Z: -0.02}
	landmarks.Points[MiddlePIP] = Point3D{X: offsetX + 0.35, Y: 0.55, Z: -0.05}
	landmarks.Points[MiddleDIP] = Point3D{X: offsetX + 0.35, Y: 0.58, Z: -0.04}
	landmarks.Points[MiddleTip] = Point3D{X: offsetX + 0.35, Y: 0.62, Z: -0.02}

	// Ring finger curled
	landmarks.Points[RingMCP] = Point3D{X: offsetX + 0.33, Y: 0.62, Z: -0.02}
	landmarks.Points[RingPIP] = Point3D{X: offsetX + 0.33, Y: 0.57, Z: -0.05}
	landmarks.Points[RingDIP] = Point3D{X: offsetX + 0.33, Y: 0.60, Z: -0.04}
	landmarks.Points[RingTip] = Point3D{X: offsetX + 0.33, Y: 0.64, Z: -0.02}

	// Pinky finger curled
	landmarks.Points[PinkyMCP] = Point3D{X: offsetX + 0.31, Y: 0.64, Z: -0.02}
	landmarks.Points[PinkyPIP] = Point3D{X: offsetX + 0.31, Y: 0.60, Z: -0.05}
	landmarks.Points[PinkyDIP] = Point3D{X: offsetX + 0.31, Y: 0.63, Z: -0.04}
	landmarks.Points[PinkyTip] = Point3D{X: offsetX + 0.31, Y: 0.66, Z: -0.02}

	return landmarks
}

// ThreeFingerHandLandmarks returns a preset HandLandmarks with thumb, index
// and middle fingers extended, ring and pinky curled. wristX places the
// wrist horizontally so tests can move two copies toward each other.
func ThreeFingerHandLandmarks(wristX float64) HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	landmarks.Points[Wrist] = Point3D{X: wristX, Y: 0.55, Z: 0.0}

	// Thumb spread away from the palm
	landmarks.Points[ThumbCMC] = Point3D{X: wristX + 0.03, Y: 0.52, Z: 0.0}
	landmarks.Points[ThumbMCP] = Point3D{X: wristX + 0.05, Y: 0.49, Z: 0.0}
	landmarks.Points[ThumbIP] = Point3D{X: wristX + 0.07, Y: 0.46, Z: 0.0}
	landmarks.Points[ThumbTip] = Point3D{X: wristX + 0.10, Y: 0.44, Z: 0.0}

	// Index finger extended upward
	landmarks.Points[IndexMCP] = Point3D{X: wristX + 0.02, Y: 0.45, Z: 0.0}
	landmarks.Points[IndexPIP] = Point3D{X: wristX + 0.02, Y: 0.38, Z: 0.0}
	landmarks.Points[IndexDIP] = Point3D{X: wristX + 0.02, Y: 0.32, Z: 0.0}
	landmarks.Points[IndexTip] = Point3D{X: wristX + 0.02, Y: 0.27, Z: 0.0}

	// Middle finger extended upward
	landmarks.Points[MiddleMCP] = Point3D{X: wristX, Y: 0.44, Z: 0.0}
	landmarks.Points[MiddlePIP] = Point3D{X: wristX, Y: 0.36, Z: 0.0}
	landmarks.Points[MiddleDIP] = Point3D{X: wristX, Y: 0.30, Z: 0.0}
	landmarks.Points[MiddleTip] = Point3D{X: wristX, Y: 0.24, Z: 0.0}

	// Ring finger curled
	landmarks.Points[RingMCP] = Point3D{X: wristX - 0.02, Y: 0.46, Z: -0.02}
	landmarks.Points[RingPIP] = Point3D{X: wristX - 0.02, Y: 0.40, Z: -0.05}
	landmarks.Points[RingDIP] = Point3D{X: wristX - 0.02, Y: 0.44, Z: -0.04}
	landmarks.Points[RingTip] = Point3D{X: wristX - 0.02, Y: 0.48, Z: -0.02}

	// Pinky finger curled
	landmarks.Points[PinkyMCP] = Point3D{X: wristX - 0.04, Y: 0.48, Z: -0.02}
	landmarks.Points[PinkyPIP] = Point3D{X: wristX - 0.04, Y: 0.44, Z: -0.05}
	landmarks.Points[PinkyDIP] = Point3D{X: wristX - 0.04, Y: 0.47, Z: -0.04}
	landmarks.Points[PinkyTip] = Point3D{X: wristX - 0.04, Y: 0.50, Z: -0.02}

	return landmarks
}
