package gesture

// historyRing is a fixed-capacity ring of raw gesture labels. Old entries
// are overwritten once the ring is full.
type historyRing struct {
	slots []Gesture
	head  int
	size  int
}

func newHistoryRing(capacity int) *historyRing {
	return &historyRing{slots: make([]Gesture, capacity)}
}

// Add appends a label, evicting the oldest entry when full.
func (r *historyRing) Add(g Gesture) {
	r.slots[r.head] = g
	r.head = (r.head + 1) % len(r.slots)
	if r.size < len(r.slots) {
		r.size++
	}
}

// Len returns the number of stored labels.
func (r *historyRing) Len() int {
	return r.size
}

// CountRecent returns how many of the newest n labels equal g.
func (r *historyRing) CountRecent(g Gesture, n int) int {
	if n > r.size {
		n = r.size
	}

	count := 0
	for i := 1; i <= n; i++ {
		idx := (r.head - i + len(r.slots)) % len(r.slots)
		if r.slots[idx] == g {
			count++
		}
	}
	return count
}

// Reset discards all stored labels.
func (r *historyRing) Reset() {
	r.head = 0
	r.size = 0
}
