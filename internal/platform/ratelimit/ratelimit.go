// Package ratelimit implements fixed-window request limits keyed by client.
package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Store counts hits per key inside a fixed window.
type Store interface {
	// Incr counts one hit and returns the count so far in the current window
	// and when that window resets.
	Incr(ctx context.Context, key string, window time.Duration) (int, time.Time, error)
	// Decr takes back one hit. It is a no-op once the window has expired.
	Decr(ctx context.Context, key string) error
}

type Rule struct {
	Scope  string
	Max    int
	Window time.Duration
	// SkipSuccessful means only failed requests count toward Max.
	SkipSuccessful bool
	Message        string
}

var (
	APIRule = Rule{
		Scope:   "api",
		Max:     100,
		Window:  15 * time.Minute,
		Message: "Too many requests from this IP, please try again later.",
	}
	AuthRule = Rule{
		Scope:          "auth",
		Max:            5,
		Window:         15 * time.Minute,
		SkipSuccessful: true,
		Message:        "Too many authentication attempts, please try again later.",
	}
	AIRule = Rule{
		Scope:   "ai",
		Max:     30,
		Window:  15 * time.Minute,
		Message: "Too many AI requests, please slow down.",
	}
)

type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

type Limiter struct {
	rule  Rule
	store Store
}

func New(rule Rule, store Store) (*Limiter, error) {
	if store == nil {
		return nil, fmt.Errorf("ratelimit: store required")
	}
	if rule.Max <= 0 || rule.Window <= 0 {
		return nil, fmt.Errorf("ratelimit: %s rule needs a positive max and window", rule.Scope)
	}
	return &Limiter{rule: rule, store: store}, nil
}

func (l *Limiter) Rule() Rule { return l.rule }

func (l *Limiter) key(client string) string { return "ratelimit:" + l.rule.Scope + ":" + client }

// Allow counts a hit for client. A rejected hit still counts, so a client
// that keeps retrying stays blocked until the window resets.
func (l *Limiter) Allow(ctx context.Context, client string) (Decision, error) {
	n, reset, err := l.store.Incr(ctx, l.key(client), l.rule.Window)
	if err != nil {
		return Decision{}, err
	}
	return Decision{
		Allowed:   n <= l.rule.Max,
		Limit:     l.rule.Max,
		Remaining: max(l.rule.Max-n, 0),
		ResetAt:   reset,
	}, nil
}

// Undo returns a hit for client, used for requests that should not count.
func (l *Limiter) Undo(ctx context.Context, client string) error {
	return l.store.Decr(ctx, l.key(client))
}
