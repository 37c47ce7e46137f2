package handle

import "fmt"

// Handle is an opaque reference to a host object in a Table.
// The high 32 bits hold the slot generation, the low 32 bits the slot index.
// Handle 0 is the null handle and never resolves.
type Handle uint64

// Null is the null handle.
const Null Handle = 0

const (
	shardBits  = 4
	shardCount = 1 << shardBits
	shardMask  = shardCount - 1
)

func makeHandle(shard, slot, gen uint32) Handle {
	index := (slot+1)<<shardBits | shard
	return Handle(uint64(gen)<<32 | uint64(index))
}

func (h Handle) shard() uint32      { return uint32(h) & shardMask }
func (h Handle) slot() uint32       { return uint32(h)>>shardBits - 1 }
func (h Handle) generation() uint32 { return uint32(h >> 32) }

// IsNull reports whether h is the null handle.
func (h Handle) IsNull() bool { return h == Null }

func (h Handle) String() string { return fmt.Sprintf("Handle(%#x)", uint64(h)) }

// EventType identifies a handle lifecycle notification.
type EventType uint8

const (
	EventRegistered EventType = iota
	EventReleased
)

func (t EventType) String() string {
	switch t {
	case EventRegistered:
		return "registered"
	case EventReleased:
		return "released"
	default:
		return "unknown"
	}
}

// Event represents a handle lifecycle event.
type Event struct {
	Value  any
	Handle Handle
	TypeID uint32
	Type   EventType
}

// Observer receives notifications about handle lifecycle events.
type Observer interface {
	OnHandleEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

func (f ObserverFunc) OnHandleEvent(e Event) { f(e) }

// Dropper is optionally implemented by registered values that need cleanup
// when their handle is released.
type Dropper interface {
	Drop()
}
