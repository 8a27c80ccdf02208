package ratelimit

import (
	"testing"
	"time"
)

// fakeClock advances only when told to, making window math deterministic.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestLimiter_AdmitsExactlyMaxWithinWindow(t *testing.T) {
	clock := newFakeClock()
	l := NewLimiter(10, time.Second, WithClock(clock.now))

	for i := 0; i < 10; i++ {
		if !l.IsAllowed("create") {
			t.Fatalf("request %d rejected, want first 10 admitted", i+1)
		}
	}
	if l.IsAllowed("create") {
		t.Error("request 11 admitted within the same window, want rejected")
	}
}

func TestLimiter_SlotFreesWhenOldestTimestampExpires(t *testing.T) {
	clock := newFakeClock()
	l := NewLimiter(3, time.Second, WithClock(clock.now))

	// Fill the window with admissions spread across it.
	l.IsAllowed("k") // t=0
	clock.advance(400 * time.Millisecond)
	l.IsAllowed("k") // t=400ms
	clock.advance(400 * time.Millisecond)
	l.IsAllowed("k") // t=800ms

	if l.IsAllowed("k") {
		t.Fatal("4th request admitted with a full window")
	}

	// At t=1s the oldest stamp (t=0) ages out; exactly one slot frees.
	clock.advance(200 * time.Millisecond)
	if !l.IsAllowed("k") {
		t.Error("request rejected after oldest timestamp expired")
	}
	if l.IsAllowed("k") {
		t.Error("second request admitted, but only one slot should have freed")
	}
}

func TestLimiter_IndependentKeys(t *testing.T) {
	clock := newFakeClock()
	l := NewLimiter(2, time.Second, WithClock(clock.now))

	l.IsAllowed("create")
	l.IsAllowed("create")
	if l.IsAllowed("create") {
		t.Fatal("create budget should be exhausted")
	}

	// A different key has its own untouched budget.
	if !l.IsAllowed("delete") {
		t.Error("delete rejected, want independent per-key budgets")
	}
	if !l.IsAllowed("update") {
		t.Error("update rejected, want independent per-key budgets")
	}
}

func TestLimiter_FullWindowExpiryResetsBudget(t *testing.T) {
	clock := newFakeClock()
	l := NewLimiter(5, time.Second, WithClock(clock.now))

	for i := 0; i < 5; i++ {
		l.IsAllowed("k")
	}
	clock.advance(1100 * time.Millisecond)

	for i := 0; i < 5; i++ {
		if !l.IsAllowed("k") {
			t.Fatalf("request %d rejected after window fully elapsed", i+1)
		}
	}
}

func TestLimiter_Remaining(t *testing.T) {
	clock := newFakeClock()
	l := NewLimiter(3, time.Second, WithClock(clock.now))

	if got := l.Remaining("k"); got != 3 {
		t.Errorf("Remaining fresh key = %d, want 3", got)
	}
	l.IsAllowed("k")
	l.IsAllowed("k")
	if got := l.Remaining("k"); got != 1 {
		t.Errorf("Remaining after 2 admissions = %d, want 1", got)
	}
}

func TestLimiter_Reset(t *testing.T) {
	clock := newFakeClock()
	l := NewLimiter(1, time.Second, WithClock(clock.now))

	l.IsAllowed("k")
	if l.IsAllowed("k") {
		t.Fatal("budget should be exhausted")
	}
	l.Reset("k")
	if !l.IsAllowed("k") {
		t.Error("request rejected after Reset")
	}
}
