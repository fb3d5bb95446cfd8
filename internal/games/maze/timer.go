package maze

import (
	"fmt"
	"time"
)

// Timer counts down a run. It is a value type: Advance returns the next
// state and leaves the receiver untouched.
type Timer struct {
	Limit   time.Duration
	Elapsed time.Duration
	Paused  bool
}

// NewTimer returns a running timer with the given limit.
func NewTimer(limit time.Duration) Timer {
	return Timer{Limit: limit}
}

// Advance adds dt unless the timer is paused or already expired.
func (t Timer) Advance(dt time.Duration) Timer {
	if t.Paused || dt <= 0 || t.Expired() {
		return t
	}
	t.Elapsed += dt
	if t.Elapsed > t.Limit {
		t.Elapsed = t.Limit
	}
	return t
}

// WithPaused returns the timer frozen or running.
func (t Timer) WithPaused(paused bool) Timer {
	t.Paused = paused
	return t
}

// Remaining returns the time left, never negative.
func (t Timer) Remaining() time.Duration {
	if t.Elapsed >= t.Limit {
		return 0
	}
	return t.Limit - t.Elapsed
}

// RemainingSeconds returns whole seconds left, rounded down.
func (t Timer) RemainingSeconds() int {
	return int(t.Remaining() / time.Second)
}

// Expired reports whether the limit has been reached.
func (t Timer) Expired() bool {
	return t.Elapsed >= t.Limit
}

// String formats the remaining time as mm:ss, rounding partial seconds up
// so the display reads 00:00 only once the timer has expired.
func (t Timer) String() string {
	rem := t.Remaining()
	secs := int((rem + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
