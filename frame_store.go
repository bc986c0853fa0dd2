package flatui

// cacheEntry wraps a cached value with frame tracking for staleness detection.
type cacheEntry[V any] struct {
	value     V
	lastFrame uint64
}

// FrameCache is a type-safe cache that drops entries not used recently.
//
// Every Get or Put marks the entry as used in the current frame. Sweep,
// called once when a frame starts, removes entries that were not used in
// the previous frame. Text shapers use it to keep laid-out buffers alive
// exactly as long as some widget keeps asking for them.
//
// A FrameCache is owned by a single frame loop and is not safe for
// concurrent use.
type FrameCache[K comparable, V any] struct {
	entries map[K]*cacheEntry[V]
	frame   uint64
}

// NewFrameCache creates an empty cache.
func NewFrameCache[K comparable, V any]() *FrameCache[K, V] {
	return &FrameCache[K, V]{
		entries: make(map[K]*cacheEntry[V]),
	}
}

// Get returns the value for key and marks it used this frame.
func (c *FrameCache[K, V]) Get(key K) (V, bool) {
	entry, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	entry.lastFrame = c.frame
	return entry.value, true
}

// Put stores a value for key and marks it used this frame.
func (c *FrameCache[K, V]) Put(key K, value V) {
	if entry, ok := c.entries[key]; ok {
		entry.value = value
		entry.lastFrame = c.frame
		return
	}
	c.entries[key] = &cacheEntry[V]{value: value, lastFrame: c.frame}
}

// Sweep advances to frame and removes entries not used in the previous one.
func (c *FrameCache[K, V]) Sweep(frame uint64) {
	c.frame = frame
	if frame == 0 {
		return
	}
	threshold := frame - 1
	for key, entry := range c.entries {
		if entry.lastFrame < threshold {
			delete(c.entries, key)
		}
	}
}

// Len returns the number of cached entries.
func (c *FrameCache[K, V]) Len() int {
	return len(c.entries)
}

// Clear removes all entries immediately.
func (c *FrameCache[K, V]) Clear() {
	clear(c.entries)
}
