package hexgrid

import (
	"container/list"
	"sync"

	"github.com/uber/h3-go/v4"
)

// BoundaryCache keeps computed cell boundaries with LRU eviction.
//
// At coarse resolutions many features fall into the same cell, so the same
// boundary is requested over and over within one pass and across passes.
// Memory accounting is approximate: a fixed overhead per entry plus the
// vertex storage.
type BoundaryCache struct {
	maxMemory  int64 // Maximum memory in bytes, 0 for unlimited
	usedMemory int64
	entries    map[h3.Cell]*cacheEntry
	lru        *list.List // most recent at front
	hits       int
	misses     int
	mu         sync.Mutex
}

type cacheEntry struct {
	cell        h3.Cell
	boundary    []LatLng
	memorySize  int64
	element     *list.Element
	accessCount int
}

// NewBoundaryCache creates a cache bounded to roughly maxMemoryBytes.
//
// Set to 0 for an unbounded cache.
func NewBoundaryCache(maxMemoryBytes int64) *BoundaryCache {
	return &BoundaryCache{
		maxMemory: maxMemoryBytes,
		entries:   make(map[h3.Cell]*cacheEntry),
		lru:       list.New(),
	}
}

// Get returns the cached boundary for cell, calling loader on a miss.
//
// A boundary that is too large to cache is still returned.
func (c *BoundaryCache) Get(cell h3.Cell, loader func() ([]LatLng, error)) ([]LatLng, error) {
	c.mu.Lock()
	if entry, ok := c.entries[cell]; ok {
		entry.accessCount++
		c.lru.MoveToFront(entry.element)
		c.hits++
		c.mu.Unlock()
		return entry.boundary, nil
	}
	c.misses++
	c.mu.Unlock()

	boundary, err := loader()
	if err != nil {
		return nil, err
	}

	c.add(cell, boundary)
	return boundary, nil
}

func (c *BoundaryCache) add(cell h3.Cell, boundary []LatLng) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[cell]; ok {
		entry.boundary = boundary
		c.lru.MoveToFront(entry.element)
		return
	}

	memSize := estimateBoundaryMemory(boundary)
	if c.maxMemory > 0 && memSize > c.maxMemory {
		return
	}

	if c.maxMemory > 0 {
		for c.usedMemory+memSize > c.maxMemory && c.lru.Len() > 0 {
			c.evictLRU()
		}
	}

	entry := &cacheEntry{
		cell:        cell,
		boundary:    boundary,
		memorySize:  memSize,
		accessCount: 1,
	}
	entry.element = c.lru.PushFront(entry)
	c.entries[cell] = entry
	c.usedMemory += memSize
}

// evictLRU removes the least recently used boundary.
// Must be called with c.mu locked.
func (c *BoundaryCache) evictLRU() {
	elem := c.lru.Back()
	if elem == nil {
		return
	}

	entry := elem.Value.(*cacheEntry)
	c.lru.Remove(elem)
	delete(c.entries, entry.cell)
	c.usedMemory -= entry.memorySize
}

// Clear removes every cached boundary and resets the counters.
func (c *BoundaryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[h3.Cell]*cacheEntry)
	c.lru.Init()
	c.usedMemory = 0
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *BoundaryCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	totalAccess := 0
	for _, entry := range c.entries {
		totalAccess += entry.accessCount
	}

	return CacheStats{
		Cells:       len(c.entries),
		UsedMemory:  c.usedMemory,
		MaxMemory:   c.maxMemory,
		Hits:        c.hits,
		Misses:      c.misses,
		TotalAccess: totalAccess,
	}
}

// CacheStats holds boundary cache counters.
type CacheStats struct {
	Cells       int   // Boundaries currently cached
	UsedMemory  int64 // Estimated memory usage in bytes
	MaxMemory   int64 // Memory limit in bytes
	Hits        int
	Misses      int
	TotalAccess int // Lookups served by the boundaries currently cached
}

// HitRate returns the cache hit rate (0.0 to 1.0).
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// estimateBoundaryMemory approximates the footprint of one entry: map and
// list overhead plus 16 bytes per vertex.
func estimateBoundaryMemory(boundary []LatLng) int64 {
	return 128 + int64(len(boundary))*16
}
