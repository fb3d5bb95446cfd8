package maze

import (
	"testing"
	"time"
)

func TestTimerAdvance(t *testing.T) {
	t0 := NewTimer(3 * time.Second)
	t1 := t0.Advance(time.Second)

	if t0.Elapsed != 0 {
		t.Error("Advance must not modify the receiver")
	}
	if t1.Remaining() != 2*time.Second {
		t.Errorf("expected 2s remaining, got %v", t1.Remaining())
	}
	if t1.Expired() {
		t.Error("timer should not be expired yet")
	}

	done := t1.Advance(5 * time.Second)
	if !done.Expired() || done.Remaining() != 0 {
		t.Errorf("expected expiry, got %+v", done)
	}
	if done.Elapsed != done.Limit {
		t.Errorf("elapsed should clamp to the limit, got %v", done.Elapsed)
	}
	if done.Advance(time.Second) != done {
		t.Error("expired timer should not change")
	}
}

func TestTimerPause(t *testing.T) {
	tm := NewTimer(time.Minute).Advance(10 * time.Second).WithPaused(true)
	frozen := tm.Advance(30 * time.Second)
	if frozen.Remaining() != 50*time.Second {
		t.Errorf("paused timer advanced: %v", frozen.Remaining())
	}

	running := frozen.WithPaused(false).Advance(30 * time.Second)
	if running.Remaining() != 20*time.Second {
		t.Errorf("expected 20s after resuming, got %v", running.Remaining())
	}
}

func TestTimerString(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		want    string
	}{
		{0, "03:00"},
		{500 * time.Millisecond, "03:00"},
		{time.Second, "02:59"},
		{179*time.Second + time.Millisecond, "00:01"},
		{3 * time.Minute, "00:00"},
	}
	for _, tt := range tests {
		tm := Timer{Limit: 3 * time.Minute, Elapsed: tt.elapsed}
		if got := tm.String(); got != tt.want {
			t.Errorf("String() at %v = %s, want %s", tt.elapsed, got, tt.want)
		}
	}
}

func TestTimerRemainingSeconds(t *testing.T) {
	tm := Timer{Limit: 10 * time.Second, Elapsed: 1500 * time.Millisecond}
	if got := tm.RemainingSeconds(); got != 8 {
		t.Errorf("expected 8 whole seconds, got %d", got)
	}
}
