package gesture

import (
	"time"
)

// historyLen caps the raw gesture history kept by the Stabilizer.
const historyLen = 15

// StabilizerConfig holds the debounce parameters.
type StabilizerConfig struct {
	// HoldDuration is how long the same raw gesture must be tracked
	// before it can confirm.
	HoldDuration time.Duration
	// StabilityWindow is how many recent frames are inspected for
	// agreement. The window must be full before any confirmation.
	StabilityWindow int
	// StabilityThreshold is how many frames inside the window must carry
	// the candidate gesture.
	StabilityThreshold int
	// RequiredNeutralFrames is how many consecutive neutral frames must
	// separate two different commands.
	RequiredNeutralFrames int
	// Cooldown is the minimum time between confirmed commands.
	Cooldown time.Duration
}

// DefaultStabilizerConfig returns the tuning used by the daemon.
func DefaultStabilizerConfig() StabilizerConfig {
	return StabilizerConfig{
		HoldDuration:          200 * time.Millisecond,
		StabilityWindow:       6,
		StabilityThreshold:    4,
		RequiredNeutralFrames: 2,
		Cooldown:              time.Second,
	}
}

// Stabilizer debounces the raw per-frame gesture stream into confirmed
// commands. A command fires only after its gesture has been held, has
// dominated the recent history, and the cooldown since the previous
// command has elapsed. Callers drive it from a single goroutine and
// supply the clock, which keeps tests deterministic.
type Stabilizer struct {
	cfg     StabilizerConfig
	history *historyRing

	tracked      Gesture
	trackedSince time.Time
	neutral      int

	lastConfirmed Command
	lastCommandAt time.Time
}

// NewStabilizer creates a Stabilizer with the given tuning.
func NewStabilizer(cfg StabilizerConfig) *Stabilizer {
	return &Stabilizer{
		cfg:     cfg,
		history: newHistoryRing(historyLen),
		tracked: GestureNone,
	}
}

// Update feeds one raw frame label into the stabilizer and reports
// whether a command fired on this frame. Every call appends to the
// history, including GestureNone frames.
func (s *Stabilizer) Update(raw Gesture, now time.Time) (Command, bool) {
	s.history.Add(raw)

	if raw == GestureNone {
		s.tracked = GestureNone
		s.trackedSince = time.Time{}
		s.neutral++
		return "", false
	}

	if raw != s.tracked {
		s.tracked = raw
		s.trackedSince = now
		s.neutral = 0
		return "", false
	}

	s.neutral = 0
	if !s.confirmable(raw, now) {
		return "", false
	}

	cmd := Command(raw)
	s.lastConfirmed = cmd
	s.lastCommandAt = now
	// Keep tracking the gesture but drop its start time so a continuous
	// hold fires at most once.
	s.trackedSince = time.Time{}
	return cmd, true
}

func (s *Stabilizer) confirmable(raw Gesture, now time.Time) bool {
	if s.trackedSince.IsZero() {
		return false
	}
	if now.Sub(s.trackedSince) < s.cfg.HoldDuration {
		return false
	}
	if s.history.Len() < s.cfg.StabilityWindow {
		return false
	}
	if s.history.CountRecent(raw, s.cfg.StabilityWindow) < s.cfg.StabilityThreshold {
		return false
	}
	if s.lastConfirmed != "" && Command(raw) != s.lastConfirmed &&
		s.neutral < s.cfg.RequiredNeutralFrames {
		return false
	}
	if !s.lastCommandAt.IsZero() && now.Sub(s.lastCommandAt) < s.cfg.Cooldown {
		return false
	}
	return true
}

// LastCommand returns the most recently confirmed command, or the empty
// string if nothing has confirmed since the last Reset.
func (s *Stabilizer) LastCommand() Command {
	return s.lastConfirmed
}

// Reset clears all debounce state, including the cooldown and the last
// confirmed command.
func (s *Stabilizer) Reset() {
	s.history.Reset()
	s.tracked = GestureNone
	s.trackedSince = time.Time{}
	s.neutral = 0
	s.lastConfirmed = ""
	s.lastCommandAt = time.Time{}
}
