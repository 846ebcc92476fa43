// Package locwatch holds the most recent known position of a device and
// notifies subscribers when it moves.
package locwatch

import (
	"sync"

	"github.com/samirrijal/saferoute/internal/core/domain"
)

// Cell is a concurrency-safe holder for a single position.
type Cell struct {
	mu     sync.RWMutex
	pos    domain.GeoPoint
	known  bool
	nextID int
	subs   map[int]func(domain.GeoPoint)
}

// New returns a cell with no known position.
func New() *Cell {
	return &Cell{subs: make(map[int]func(domain.GeoPoint))}
}

// Get returns the current position and whether one has been recorded.
func (c *Cell) Get() (domain.GeoPoint, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pos, c.known
}

// Set records p. Subscribers are called synchronously, outside the lock,
// only when the position changes. It reports whether it changed.
func (c *Cell) Set(p domain.GeoPoint) bool {
	c.mu.Lock()
	if c.known && c.pos == p {
		c.mu.Unlock()
		return false
	}
	c.pos = p
	c.known = true
	fns := make([]func(domain.GeoPoint), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(p)
	}
	return true
}

// Subscribe registers fn for future changes and returns a function that
// removes it. Calling the returned function more than once is a no-op.
func (c *Cell) Subscribe(fn func(domain.GeoPoint)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
		})
	}
}
