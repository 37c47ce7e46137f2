package handle

import "sync"

// shard is one lock domain of the table: a slab of entries plus a free list.
type shard struct {
	entries []entry
	free    []uint32
	mu      sync.RWMutex
}

type entry struct {
	value  any
	weak   weakRef
	typeID uint32
	gen    uint32
	live   bool
}

func (s *shard) insert(idx uint32, typeID uint32, value any, w weakRef) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	var slot uint32
	if n := len(s.free); n > 0 {
		slot = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.entries = append(s.entries, entry{})
		slot = uint32(len(s.entries) - 1)
	}

	e := &s.entries[slot]
	e.gen++
	if e.gen == 0 {
		// wrapped; 0 would make the first handle of a slot collide with Null
		e.gen = 1
	}
	e.value = value
	e.weak = w
	e.typeID = typeID
	e.live = true

	return makeHandle(idx, slot, e.gen)
}

// lookup returns the entry for h under the read lock, or a reason string.
func (s *shard) lookup(h Handle) (entry, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slot := h.slot()
	if int(slot) >= len(s.entries) {
		return entry{}, "unknown"
	}
	e := s.entries[slot]
	if !e.live || e.gen != h.generation() {
		return entry{}, "released or stale"
	}
	return e, ""
}

func (s *shard) remove(h Handle) (entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot := h.slot()
	if int(slot) >= len(s.entries) {
		return entry{}, false
	}
	e := &s.entries[slot]
	if !e.live || e.gen != h.generation() {
		return entry{}, false
	}

	removed := *e
	e.value = nil
	e.weak = nil
	e.typeID = 0
	e.live = false
	s.free = append(s.free, slot)

	return removed, true
}

func (s *shard) each(idx uint32, fn func(Handle, entry) bool) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i, e := range s.entries {
		if e.live {
			if !fn(makeHandle(idx, uint32(i), e.gen), e) {
				return false
			}
		}
	}
	return true
}
