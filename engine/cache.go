package engine

import "chess-hybrid/board"

// maxCacheEntries bounds the evaluation cache. When exceeded, the oldest
// half of the entries (by insertion order) is dropped in one sweep; plain
// FIFO, no recency tracking.
const maxCacheEntries = 100000

// Fingerprint mixes each occupied cell's index and code into a 64-bit key,
// perturbed when black is to move. It is a cheap cache key, not a
// collision-resistant hash; a collision costs cache accuracy, not
// correctness.
func Fingerprint(st board.State, whiteToMove bool) uint64 {
	h := uint64(0xcbf29ce484222325)
	for i := 0; i < 64; i++ {
		c := st[i]
		if c == board.Empty {
			continue
		}
		h ^= uint64(i+1)*0x9e3779b97f4a7c15 ^ uint64(c)
		h *= 0x100000001b3
	}
	if !whiteToMove {
		h ^= 0xa5a5a5a5a5a5a5a5
	}
	return h
}

// evalCache maps fingerprints to material scores with bounded-FIFO
// eviction. Not safe for concurrent use.
type evalCache struct {
	entries map[uint64]int
	order   []uint64
}

func newEvalCache() *evalCache {
	return &evalCache{entries: make(map[uint64]int)}
}

func (c *evalCache) get(key uint64) (int, bool) {
	v, ok := c.entries[key]
	return v, ok
}

func (c *evalCache) put(key uint64, score int) {
	if _, ok := c.entries[key]; !ok {
		c.order = append(c.order, key)
	}
	c.entries[key] = score

	if len(c.entries) > maxCacheEntries {
		half := len(c.order) / 2
		for _, old := range c.order[:half] {
			delete(c.entries, old)
		}
		c.order = append(c.order[:0], c.order[half:]...)
	}
}

func (c *evalCache) len() int {
	return len(c.entries)
}
