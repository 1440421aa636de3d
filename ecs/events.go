package ecs

// EventKind identifies registry events.
type EventKind string

const (
	EventBodySpawned   EventKind = "body_spawned"
	EventBodySplit     EventKind = "body_split"
	EventBodyDestroyed EventKind = "body_destroyed"
	EventBodyReleased  EventKind = "body_released"
)

// Event is a registry notification. Parent is set for spawned fragments;
// Fragments is set for splits.
type Event struct {
	Kind      EventKind
	Entity    Entity
	Parent    Entity
	Fragments int
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len reports how many events are pending.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
