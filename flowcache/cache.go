// Package flowcache pairs outbound packets with the flow service events
// that follow them.
//
// The cache is a bounded FIFO. A tuple that is never matched is eventually
// pushed out by newer ones (or by Flush) and handed to the orphan callback.
package flowcache

import (
	"net/netip"
	"strconv"
	"sync"
	"sync/atomic"
)

// Tuple identifies one direction of a conversation.
type Tuple struct {
	SrcIP   netip.Addr
	SrcPort uint16
	DstIP   netip.Addr
	DstPort uint16
}

// String renders the tuple as "src:sp -> dst:dp".
func (t Tuple) String() string {
	return Endpoint(t.SrcIP, t.SrcPort) + " -> " + Endpoint(t.DstIP, t.DstPort)
}

// Endpoint renders ip:port without brackets, matching the flow log format
// for both address families.
func Endpoint(ip netip.Addr, port uint16) string {
	return ip.String() + ":" + strconv.FormatUint(uint64(port), 10)
}

// OrphanFunc receives tuples evicted without a match. It is called without
// the cache lock held and may use the cache.
type OrphanFunc func(Tuple)

// Stats is a snapshot of the cache counters.
type Stats struct {
	Total       uint64 `json:"total"`        // tuples added
	Orphan      uint64 `json:"orphan"`       // tuples evicted unmatched
	Match       uint64 `json:"match"`        // successful matches
	FailedMatch uint64 `json:"failed_match"` // matches with no entry
}

// Cache is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	max     int
	entries []Tuple // oldest first
	orphan  OrphanFunc

	total, orphaned, matched, failed atomic.Uint64
}

// New returns a cache holding at most size tuples; size below one is
// raised to one. orphan may be nil.
func New(size int, orphan OrphanFunc) *Cache {
	if size < 1 {
		size = 1
	}
	return &Cache{max: size, orphan: orphan}
}

// Add appends t, evicting the oldest entry when the cache overflows.
func (c *Cache) Add(t Tuple) {
	c.mu.Lock()
	c.entries = append(c.entries, t)
	c.total.Add(1)

	var evicted []Tuple
	if over := len(c.entries) - c.max; over > 0 {
		evicted = append(evicted, c.entries[:over]...)
		c.entries = append(c.entries[:0], c.entries[over:]...)
	}
	c.mu.Unlock()

	c.emit(evicted)
}

// Match removes the oldest entry equal to t and reports whether one was
// found.
func (c *Cache) Match(t Tuple) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, e := range c.entries {
		if e == t {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			c.matched.Add(1)
			return true
		}
	}
	c.failed.Add(1)
	return false
}

// Flush orphans every entry, oldest first.
func (c *Cache) Flush() {
	c.mu.Lock()
	evicted := c.entries
	c.entries = nil
	c.mu.Unlock()

	c.emit(evicted)
}

func (c *Cache) emit(evicted []Tuple) {
	for _, t := range evicted {
		c.orphaned.Add(1)
		if c.orphan != nil {
			c.orphan(t)
		}
	}
}

// Len returns the number of cached tuples.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Cap returns the cache bound.
func (c *Cache) Cap() int { return c.max }

// Stats returns the counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Total:       c.total.Load(),
		Orphan:      c.orphaned.Load(),
		Match:       c.matched.Load(),
		FailedMatch: c.failed.Load(),
	}
}
