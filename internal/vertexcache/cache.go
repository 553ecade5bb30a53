// Package vertexcache deduplicates vertex shader invocations within a
// single draw call: a vertex index shared by adjacent primitives (strip
// and fan topologies, or shared edges in an index buffer) is shaded
// once and its vsoutput.Handle reused while it stays in its slot. The
// cache is direct-mapped: an index whose slot was taken by another index
// since it was shaded misses and is shaded again, so a draw can produce
// more than one vs_output for the same vertex index.
package vertexcache

import "github.com/swraster/salvia/internal/vsoutput"

// DefaultSize matches the lineage's general-purpose cache sizing; a
// direct-mapped cache this size captures nearly all reuse in strip/fan
// topologies and shared-edge index buffers without the bookkeeping cost
// of a fully associative cache.
const DefaultSize = 32

// entry is one direct-mapped slot.
type entry struct {
	index uint32
	valid bool
	value vsoutput.Handle
}

// Cache is a direct-mapped, per-draw vertex shader output cache.
type Cache struct {
	slots []entry
}

// New creates a cache with the given number of direct-mapped slots.
func New(size int) *Cache {
	if size <= 0 {
		size = DefaultSize
	}
	return &Cache{slots: make([]entry, size)}
}

// Lookup returns the cached handle for vertexIndex, if present.
func (c *Cache) Lookup(vertexIndex uint32) (vsoutput.Handle, bool) {
	s := &c.slots[vertexIndex%uint32(len(c.slots))]
	if s.valid && s.index == vertexIndex {
		return s.value, true
	}
	return 0, false
}

// Insert records the handle produced for vertexIndex, evicting whatever
// previously occupied that slot.
func (c *Cache) Insert(vertexIndex uint32, h vsoutput.Handle) {
	s := &c.slots[vertexIndex%uint32(len(c.slots))]
	s.index = vertexIndex
	s.valid = true
	s.value = h
}

// Reset clears the cache. Called once per draw call: cache contents
// from a previous draw must never be reused, since uniforms or the
// shader program itself may have changed.
func (c *Cache) Reset() {
	for i := range c.slots {
		c.slots[i].valid = false
	}
}
