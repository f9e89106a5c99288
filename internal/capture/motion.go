package capture

import (
	"image"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// Motion detection constants
const (
	// GaussianBlurSize is the kernel size for Gaussian blur (21x21)
	GaussianBlurSize = 21
	// DiffThreshold is the binary threshold for difference detection
	DiffThreshold = 25
)

// MotionDetector detects motion between consecutive video frames
// using frame differencing with Gaussian blur for noise reduction.
type MotionDetector struct {
	threshold   float64
	prevGray    gocv.Mat
	initialized bool
	mu          sync.Mutex
}

// NewMotionDetector creates a new MotionDetector with the given threshold.
// The threshold is the percentage of pixels that must change to detect motion.
// For example, a threshold of 1.0 means 1% of pixels must change.
func NewMotionDetector(threshold float64) *MotionDetector {
	return &MotionDetector{
		threshold:   threshold,
		prevGray:    gocv.NewMat(),
		initialized: false,
	}
}

// Detect analyzes a frame for motion compared to the previous frame.
// Returns whether motion was detected and the percentage of pixels that changed.
// The first frame only seeds the baseline and never reports motion.
func (m *MotionDetector) Detect(frame *gocv.Mat) (bool, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if frame == nil || frame.Empty() {
		return false, 0
	}

	blurred := blurredGray(frame)
	defer blurred.Close()

	if !m.initialized {
		blurred.CopyTo(&m.prevGray)
		m.initialized = true
		return false, 0
	}

	// Difference against the previous frame, threshold, and count the
	// changed pixels
	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, m.prevGray, &diff)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(diff, &thresh, DiffThreshold, 255, gocv.ThresholdBinary)

	nonZero := gocv.CountNonZero(thresh)
	totalPixels := thresh.Rows() * thresh.Cols()
	changePercent := float64(nonZero) / float64(totalPixels) * 100.0

	blurred.CopyTo(&m.prevGray)

	return changePercent > m.threshold, changePercent
}

// blurredGray converts a frame to grayscale and blurs it so sensor noise
// does not register as motion. The caller owns the returned Mat.
func blurredGray(frame *gocv.Mat) gocv.Mat {
	gray := gocv.NewMat()
	defer gray.Close()

	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: GaussianBlurSize, Y: GaussianBlurSize}, 0, 0, gocv.BorderDefault)
	return blurred
}

// Reset clears the motion detector state, allowing it to be reused
// with a new baseline frame.
func (m *MotionDetector) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.dropBaseline()
}

// Close releases resources used by the motion detector.
func (m *MotionDetector) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.dropBaseline()
}

func (m *MotionDetector) dropBaseline() {
	if !m.prevGray.Empty() {
		m.prevGray.Close()
		m.prevGray = gocv.NewMat()
	}
	m.initialized = false
}

// SetThreshold sets the motion detection threshold.
// The threshold is the percentage of pixels that must change to detect motion.
// Values less than or equal to 0 are ignored.
func (m *MotionDetector) SetThreshold(threshold float64) {
	if threshold <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.threshold = threshold
}

// MotionGate drives the capture mode from per-frame motion. Any motion
// flips the gate active immediately; it falls back to idle only after a
// full quiet period. The pipeline skips hand detection while the gate is
// idle, so the daemon stays cheap when nobody is in front of the camera.
type MotionGate struct {
	detector *MotionDetector
	timeout  time.Duration

	mu         sync.Mutex
	active     bool
	lastMotion time.Time
}

// NewMotionGate creates a gate that activates when more than threshold
// percent of pixels change and returns to idle after idleTimeout without
// motion.
func NewMotionGate(threshold float64, idleTimeout time.Duration) *MotionGate {
	return &MotionGate{
		detector: NewMotionDetector(threshold),
		timeout:  idleTimeout,
	}
}

// Observe feeds one frame through motion detection and advances the
// idle/active state. It reports the resulting state and whether this
// frame changed it.
func (g *MotionGate) Observe(frame *gocv.Mat, now time.Time) (active, changed bool) {
	moved, _ := g.detector.Detect(frame)

	g.mu.Lock()
	defer g.mu.Unlock()

	if moved {
		g.lastMotion = now
		if !g.active {
			g.active = true
			return true, true
		}
		return true, false
	}

	if g.active && now.Sub(g.lastMotion) > g.timeout {
		g.active = false
		return false, true
	}

	return g.active, false
}

// Active returns whether the gate is currently in active mode.
func (g *MotionGate) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.active
}

// SetThreshold adjusts the underlying motion detection threshold.
// Values less than or equal to 0 are ignored.
func (g *MotionGate) SetThreshold(threshold float64) {
	g.detector.SetThreshold(threshold)
}

// Reset returns the gate to idle and drops the motion baseline so the
// next frame seeds a fresh one.
func (g *MotionGate) Reset() {
	g.detector.Reset()

	g.mu.Lock()
	defer g.mu.Unlock()

	g.active = false
	g.lastMotion = time.Time{}
}

// Close releases resources held by the gate.
func (g *MotionGate) Close() {
	g.detector.Close()
}
