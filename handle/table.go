package handle

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/wippyai/hostbridge/errors"
)

// Table maps handles to live host objects. The zero value is not usable;
// create tables with NewTable.
type Table struct {
	observers map[uint64]Observer
	shards    [shardCount]shard
	next      atomic.Uint32
	obsID     atomic.Uint64
	count     atomic.Int64
	obsMu     sync.RWMutex
	closed    atomic.Bool
}

// NewTable creates an empty handle table.
func NewTable() *Table {
	return &Table{
		observers: make(map[uint64]Observer),
	}
}

// Register adds a value and returns its handle.
// It returns Null only when the table has been closed.
func (t *Table) Register(value any) Handle {
	return t.RegisterTyped(0, value)
}

// RegisterTyped adds a value tagged with a type ID and returns its handle.
func (t *Table) RegisterTyped(typeID uint32, value any) Handle {
	return t.insert(typeID, value, nil)
}

func (t *Table) insert(typeID uint32, value any, w weakRef) Handle {
	if t.closed.Load() {
		return Null
	}

	idx := t.next.Add(1) & shardMask
	h := t.shards[idx].insert(idx, typeID, value, w)
	t.count.Add(1)
	if t.closed.Load() {
		// Close ran concurrently and its Clear may have missed h.
		if e, ok := t.shards[idx].remove(h); ok {
			t.count.Add(-1)
			if d, ok := e.value.(Dropper); ok {
				d.Drop()
			}
		}
		return Null
	}

	t.notify(Event{
		Type:   EventRegistered,
		Handle: h,
		TypeID: typeID,
		Value:  value,
	})

	return h
}

// Resolve returns the value named by h.
// Unknown, released, stale and collected handles fail with ErrInvalidHandle.
func (t *Table) Resolve(h Handle) (any, error) {
	e, err := t.lookup(h)
	if err != nil {
		return nil, err
	}
	if e.weak != nil {
		v := e.weak.get()
		if v == nil {
			return nil, errors.InvalidHandle(errors.PhaseHandle, uint64(h), "collected")
		}
		return v, nil
	}
	return e.value, nil
}

// ResolveTyped returns the value named by h only if it was registered with typeID.
func (t *Table) ResolveTyped(h Handle, typeID uint32) (any, error) {
	e, err := t.lookup(h)
	if err != nil {
		return nil, err
	}
	if e.typeID != typeID {
		return nil, errors.New(errors.PhaseHandle, errors.KindTypeMismatch).
			Value(uint64(h)).
			Detail("handle %s has type %d, want %d", h, e.typeID, typeID).
			Build()
	}
	return t.Resolve(h)
}

func (t *Table) lookup(h Handle) (entry, error) {
	if h.IsNull() {
		return entry{}, errors.InvalidHandle(errors.PhaseHandle, 0, "null")
	}
	e, reason := t.shards[h.shard()].lookup(h)
	if reason != "" {
		return entry{}, errors.InvalidHandle(errors.PhaseHandle, uint64(h), reason)
	}
	return e, nil
}

// Release drops the value named by h. Releasing an unknown or already
// released handle is a no-op.
func (t *Table) Release(h Handle) {
	t.Remove(h)
}

// Remove drops the value named by h and returns it, reporting whether h was live.
func (t *Table) Remove(h Handle) (any, bool) {
	if h.IsNull() {
		return nil, false
	}
	e, ok := t.shards[h.shard()].remove(h)
	if !ok {
		return nil, false
	}
	t.count.Add(-1)

	value := e.value
	if e.weak != nil {
		value = e.weak.get()
	}
	if d, ok := value.(Dropper); ok {
		d.Drop()
	}

	t.notify(Event{
		Type:   EventReleased,
		Handle: h,
		TypeID: e.typeID,
		Value:  value,
	})

	return value, true
}

// TypeID returns the type ID a live handle was registered with.
func (t *Table) TypeID(h Handle) (uint32, bool) {
	e, err := t.lookup(h)
	if err != nil {
		return 0, false
	}
	return e.typeID, true
}

// Subscribe adds an observer for lifecycle events and returns a function
// that removes it.
func (t *Table) Subscribe(o Observer) (unsubscribe func()) {
	id := t.obsID.Add(1)
	t.obsMu.Lock()
	t.observers[id] = o
	t.obsMu.Unlock()

	return func() {
		t.obsMu.Lock()
		delete(t.observers, id)
		t.obsMu.Unlock()
	}
}

// Len returns the number of live handles.
func (t *Table) Len() int {
	return int(t.count.Load())
}

// Each iterates over all live handles until fn returns false.
// fn must not register or release handles.
func (t *Table) Each(fn func(h Handle, typeID uint32, value any) bool) {
	for i := range t.shards {
		cont := t.shards[i].each(uint32(i), func(h Handle, e entry) bool {
			v := e.value
			if e.weak != nil {
				v = e.weak.get()
			}
			return fn(h, e.typeID, v)
		})
		if !cont {
			return
		}
	}
}

// Clear releases every live handle.
func (t *Table) Clear() {
	// Collect handles first to avoid holding shard locks during Release
	var handles []Handle
	t.Each(func(h Handle, _ uint32, _ any) bool {
		handles = append(handles, h)
		return true
	})
	for _, h := range handles {
		t.Release(h)
	}
}

// Close releases every handle and stops accepting registrations.
func (t *Table) Close() error {
	t.closed.Store(true)
	t.Clear()
	return nil
}

// Closed reports whether Close has been called.
func (t *Table) Closed() bool {
	return t.closed.Load()
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnHandleEvent(e)
	}
}

// ResolveAs resolves h and asserts the value to T.
func ResolveAs[T any](t *Table, h Handle) (T, error) {
	var zero T
	v, err := t.Resolve(h)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, errors.New(errors.PhaseHandle, errors.KindTypeMismatch).
			Value(uint64(h)).
			GoType(typeName(v)).
			HostType(reflect.TypeFor[T]().String()).
			Detail("handle %s names a different kind of object", h).
			Build()
	}
	return typed, nil
}
