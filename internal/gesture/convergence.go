package gesture

// Convergence tuning for the two-hand zoom-out motion.
const (
	// distanceWindow is how many wrist distance samples are tracked.
	distanceWindow = 5
	// convergenceDelta is how far the hands must approach across the
	// window to count as a deliberate squeeze.
	convergenceDelta = 0.10
)

// ConvergenceTracker watches the planar distance between two wrists
// across qualifying frames and fires once the hands have moved toward
// each other by more than convergenceDelta within distanceWindow
// samples. The window persists across frames that do not qualify, so a
// squeeze briefly interrupted by a missed detection still completes.
//
// It is not safe for concurrent use; the Classifier that owns it runs
// on the single pipeline goroutine.
type ConvergenceTracker struct {
	distances [distanceWindow]float64
	head      int
	size      int
}

// Observe appends a wrist-to-wrist distance sample and reports whether
// the convergence fired. Firing requires a full window whose oldest
// sample exceeds the newest by more than convergenceDelta. The window is
// cleared after firing, so the next zoom-out needs a fresh squeeze.
func (t *ConvergenceTracker) Observe(distance float64) bool {
	t.distances[t.head] = distance
	t.head = (t.head + 1) % distanceWindow
	if t.size < distanceWindow {
		t.size++
	}

	if t.size < distanceWindow {
		return false
	}

	// head now points at the oldest sample in the window.
	oldest := t.distances[t.head]
	if oldest-distance > convergenceDelta {
		t.Reset()
		return true
	}
	return false
}

// Len returns the number of buffered distance samples.
func (t *ConvergenceTracker) Len() int {
	return t.size
}

// Reset discards the buffered distance samples.
func (t *ConvergenceTracker) Reset() {
	t.head = 0
	t.size = 0
}
