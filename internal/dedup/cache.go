// Package dedup suppresses reprocessing of retried webhook deliveries.
// WhatsApp redelivers on short timescales, so a process-local window is
// enough; a missed suppression only costs a duplicate reply after restart.
package dedup

import (
	"sync"
	"time"
)

// DefaultWindow is how long a message id stays suppressed after first sight.
const DefaultWindow = 60 * time.Second

const sweepInterval = 15 * time.Second

// Cache tracks recently-seen message identifiers. Entries are evicted by a
// background sweep, so they may outlive the window slightly but never expire
// early - over-suppression is the safe direction.
type Cache struct {
	mu     sync.Mutex
	seen   map[string]time.Time
	window time.Duration

	stopOnce sync.Once
	stop     chan struct{}
}

func New(window time.Duration) *Cache {
	c := &Cache{
		seen:   make(map[string]time.Time),
		window: window,
		stop:   make(chan struct{}),
	}
	go c.janitor()
	return c
}

// ShouldProcess reports whether this message id is being seen for the first
// time within the dedup window. The first call records the id; later calls
// within the window return false.
func (c *Cache) ShouldProcess(messageID string) bool {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if seenAt, ok := c.seen[messageID]; ok && now.Sub(seenAt) < c.window {
		return false
	}
	c.seen[messageID] = now
	return true
}

// Len reports the number of tracked ids, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.seen)
}

// Close stops the background sweep.
func (c *Cache) Close() error {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
	return nil
}

func (c *Cache) janitor() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case now := <-ticker.C:
			c.evictExpired(now)
		}
	}
}

func (c *Cache) evictExpired(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, seenAt := range c.seen {
		if now.Sub(seenAt) >= c.window {
			delete(c.seen, id)
		}
	}
}
