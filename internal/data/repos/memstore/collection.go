package memstore

import (
	"errors"
	"sync"
)

var errSkip = errors.New("memstore: skip")

type entity[E any] interface {
	*E
	Clone() *E
}

// collection is one guarded map of records. Values go in and come out as
// deep copies, so callers can never mutate stored state.
type collection[E any, P entity[E]] struct {
	mu    sync.RWMutex
	items map[string]P
}

func newCollection[E any, P entity[E]]() *collection[E, P] {
	return &collection[E, P]{items: make(map[string]P)}
}

func (c *collection[E, P]) get(id string) (P, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.items[id]
	if !ok {
		return nil, false
	}
	return P(v.Clone()), true
}

func (c *collection[E, P]) put(id string, v P) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[id] = P(v.Clone())
}

func (c *collection[E, P]) snapshot(pred func(P) bool) []P {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]P, 0, len(c.items))
	for _, v := range c.items {
		if pred == nil || pred(v) {
			out = append(out, P(v.Clone()))
		}
	}
	return out
}

// mutate runs fn on a copy of the record under the write lock and stores the
// copy only when fn succeeds. ok is false when id is absent or fn returned
// errSkip.
func (c *collection[E, P]) mutate(id string, fn func(P) error) (P, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cur, ok := c.items[id]
	if !ok {
		return nil, false, nil
	}
	next := P(cur.Clone())
	if err := fn(next); err != nil {
		if errors.Is(err, errSkip) {
			return nil, false, nil
		}
		return nil, true, err
	}
	c.items[id] = next
	return P(next.Clone()), true, nil
}

func (c *collection[E, P]) remove(id string, pred func(P) bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	cur, ok := c.items[id]
	if !ok || !pred(cur) {
		return false
	}
	delete(c.items, id)
	return true
}
