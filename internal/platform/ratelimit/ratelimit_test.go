package ratelimit

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newLimiter(t *testing.T, rule Rule) (*Limiter, *fakeClock, *MemoryStore) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	store := NewMemoryStore(clock.Now)
	l, err := New(rule, store)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return l, clock, store
}

func TestFixedWindow(t *testing.T) {
	l, clock, _ := newLimiter(t, Rule{Scope: "test", Max: 3, Window: time.Minute})
	ctx := t.Context()

	for i := 1; i <= 3; i++ {
		d, err := l.Allow(ctx, "1.2.3.4")
		if err != nil {
			t.Fatalf("Allow: %v", err)
		}
		if !d.Allowed || d.Remaining != 3-i {
			t.Fatalf("hit %d: got %+v", i, d)
		}
	}
	d, _ := l.Allow(ctx, "1.2.3.4")
	if d.Allowed || d.Remaining != 0 {
		t.Fatalf("4th hit must be rejected: %+v", d)
	}
	if other, _ := l.Allow(ctx, "5.6.7.8"); !other.Allowed {
		t.Fatalf("clients must be counted separately")
	}

	clock.Advance(time.Minute)
	if d, _ := l.Allow(ctx, "1.2.3.4"); !d.Allowed || d.Remaining != 2 {
		t.Fatalf("window must reset: %+v", d)
	}
}

func TestUndoOnlyCountsFailures(t *testing.T) {
	l, _, _ := newLimiter(t, AuthRule)
	ctx := t.Context()

	for i := 0; i < 20; i++ {
		if d, _ := l.Allow(ctx, "ip"); !d.Allowed {
			t.Fatalf("successful attempt %d was limited", i)
		}
		if err := l.Undo(ctx, "ip"); err != nil {
			t.Fatalf("Undo: %v", err)
		}
	}
	for i := 0; i < AuthRule.Max; i++ {
		if d, _ := l.Allow(ctx, "ip"); !d.Allowed {
			t.Fatalf("failed attempt %d was limited early", i)
		}
	}
	if d, _ := l.Allow(ctx, "ip"); d.Allowed {
		t.Fatalf("attempt past the limit was allowed")
	}
}

func TestExpiredWindowsAreSwept(t *testing.T) {
	l, clock, store := newLimiter(t, Rule{Scope: "test", Max: 1, Window: time.Minute})
	for _, ip := range []string{"a", "b", "c"} {
		if _, err := l.Allow(t.Context(), ip); err != nil {
			t.Fatalf("Allow: %v", err)
		}
	}
	clock.Advance(2 * time.Minute)
	if _, err := l.Allow(t.Context(), "d"); err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if n := store.len(); n != 1 {
		t.Fatalf("windows after sweep: got %d, want 1", n)
	}
}

func TestNewRejectsBadRule(t *testing.T) {
	if _, err := New(Rule{Scope: "x"}, NewMemoryStore(nil)); err == nil {
		t.Fatalf("New: expected error for zero rule")
	}
	if _, err := New(APIRule, nil); err == nil {
		t.Fatalf("New: expected error for nil store")
	}
}
