package repos

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/studynotes-backend/internal/auth"
)

// Clock hands out UTC timestamps truncated to microseconds (what both SQL
// engines keep) that strictly increase within the process.
type Clock struct {
	mu   sync.Mutex
	now  func() time.Time
	last time.Time
}

func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now().UTC().Truncate(time.Microsecond)
	if !t.After(c.last) {
		t = c.last.Add(time.Microsecond)
	}
	c.last = t
	return t
}

// Options carries the collaborators every backend needs.
type Options struct {
	Clock  *Clock
	NewID  func() string
	Hasher PasswordHasher
}

func (o Options) WithDefaults() Options {
	if o.Clock == nil {
		o.Clock = NewClock(nil)
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	if o.Hasher == nil {
		o.Hasher = auth.NewHasher(auth.MinCost)
	}
	return o
}

// SequentialIDs returns deterministic v5 UUIDs derived from a counter, for
// tests that compare backends byte for byte.
func SequentialIDs(seed string) func() string {
	var mu sync.Mutex
	n := 0
	ns := uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed))
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return uuid.NewSHA1(ns, []byte{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)}).String()
	}
}
