package fiecs

import "reflect"

// EventBus delivers typed events to subscribed handlers, synchronously and in
// subscription order. It carries no entity semantics of its own; systems use
// it to defer work that cannot run mid-iteration, such as queueing a destroy
// observed during a sweep.
type EventBus struct {
	handlers map[reflect.Type][]any
}

// NewEventBus creates an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{handlers: make(map[reflect.Type][]any)}
}

// Subscribe registers fn to run for every published event of type T.
func Subscribe[T any](b *EventBus, fn func(T)) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.handlers[t] = append(b.handlers[t], fn)
}

// Publish runs every handler subscribed to T with the event value. Publishing
// a type nobody subscribed to does nothing.
func Publish[T any](b *EventBus, event T) {
	for _, h := range b.handlers[reflect.TypeOf((*T)(nil)).Elem()] {
		h.(func(T))(event)
	}
}
