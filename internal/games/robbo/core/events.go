package core

import "fmt"

// EventKind tags a GameEvent.
type EventKind uint8

const (
	EventPickupItem EventKind = iota
	EventOpenDoor
	EventTeleport
	EventActivateCapsule
	EventPlayerDied
	EventLevelComplete
	EventItemLost
	EventShotFired
	EventBombPlaced
)

// String returns the string representation of an event kind.
func (k EventKind) String() string {
	switch k {
	case EventPickupItem:
		return "PickupItem"
	case EventOpenDoor:
		return "OpenDoor"
	case EventTeleport:
		return "Teleport"
	case EventActivateCapsule:
		return "ActivateCapsule"
	case EventPlayerDied:
		return "PlayerDied"
	case EventLevelComplete:
		return "LevelComplete"
	case EventItemLost:
		return "ItemLost"
	case EventShotFired:
		return "ShotFired"
	case EventBombPlaced:
		return "BombPlaced"
	default:
		return "Unknown"
	}
}

// GameEvent is a one-shot occurrence raised during a frame and consumed once by its handler.
type GameEvent struct {
	Kind   EventKind
	Pos    Coord
	Entity EntityID
	Item   Kind // PickupItem, ItemLost
}

func (e GameEvent) String() string {
	if e.Item != KindNone {
		return fmt.Sprintf("%s(%s #%d at %s)", e.Kind, e.Item, e.Entity, e.Pos)
	}
	return fmt.Sprintf("%s(#%d at %s)", e.Kind, e.Entity, e.Pos)
}

type eventKey struct {
	kind   EventKind
	entity EntityID
}

// EventQueue is the frame-scoped FIFO of game events.
// An event kind may be raised at most once per originating entity per frame,
// which keeps handler chains from cycling.
type EventQueue struct {
	items   []GameEvent
	head    int
	seen    map[eventKey]struct{}
	dropped int
}

// NewEventQueue creates an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{seen: make(map[eventKey]struct{})}
}

// Push appends an event. It returns false when the same kind was already raised
// for the same entity this frame.
func (q *EventQueue) Push(e GameEvent) bool {
	k := eventKey{e.Kind, e.Entity}
	if _, dup := q.seen[k]; dup {
		q.dropped++
		return false
	}
	q.seen[k] = struct{}{}
	q.items = append(q.items, e)
	return true
}

// Pop removes and returns the oldest pending event.
func (q *EventQueue) Pop() (GameEvent, bool) {
	if q.head >= len(q.items) {
		return GameEvent{}, false
	}
	e := q.items[q.head]
	q.head++
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}
	return e, true
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	return len(q.items) - q.head
}

// Dropped returns how many duplicate events were refused since the last reset.
func (q *EventQueue) Dropped() int {
	return q.dropped
}

// Reset empties the queue and forgets which events were raised.
func (q *EventQueue) Reset() {
	q.items = q.items[:0]
	q.head = 0
	q.dropped = 0
	for k := range q.seen {
		delete(q.seen, k)
	}
}
