// Package events publishes timetable changes to attached listeners.
package events

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Kind identifies what happened to a booking.
type Kind string

const (
	KindAdded            Kind = "SCHEDULE_ADDED"
	KindConflictDetected Kind = "SCHEDULE_CONFLICT_DETECTED"
	KindChanged          Kind = "SCHEDULE_CHANGED"
	KindUpdateFailed     Kind = "SCHEDULE_UPDATE_FAILED"
	KindRemoved          Kind = "SCHEDULE_REMOVED"
)

// Event is a single notification.
type Event struct {
	Kind      Kind
	Time      time.Time
	BookingID string
	// Fields carries kind-specific details such as course_name, old_time or new_time.
	Fields map[string]string
}

// Listener receives published events.
type Listener interface {
	Notify(e Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(e Event)

// Notify calls f(e).
func (f ListenerFunc) Notify(e Event) { f(e) }

type namedListener struct {
	name string
	l    Listener
}

// Dispatcher fans events out to named listeners in attach order.
// It is safe for concurrent use.
type Dispatcher struct {
	mu        sync.RWMutex
	listeners []namedListener
	now       func() time.Time
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{now: time.Now}
}

// Attach registers l under name. Attaching an existing name replaces the
// listener but keeps its position.
func (d *Dispatcher) Attach(name string, l Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.listeners {
		if d.listeners[i].name == name {
			d.listeners[i].l = l
			return
		}
	}
	d.listeners = append(d.listeners, namedListener{name: name, l: l})
}

// Detach removes the listener registered under name.
// It reports whether a listener was removed.
func (d *Dispatcher) Detach(name string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.listeners {
		if d.listeners[i].name == name {
			d.listeners = append(d.listeners[:i:i], d.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of attached listeners.
func (d *Dispatcher) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.listeners)
}

// Publish delivers an event to every listener synchronously.
// A zero Time is filled in with the current time.
func (d *Dispatcher) Publish(e Event) {
	if e.Time.IsZero() {
		e.Time = d.now()
	}

	d.mu.RLock()
	listeners := make([]Listener, len(d.listeners))
	for i, nl := range d.listeners {
		listeners[i] = nl.l
	}
	d.mu.RUnlock()

	for _, l := range listeners {
		l.Notify(e)
	}
}

// LogListener writes every event to a zap logger.
type LogListener struct {
	logger *zap.Logger
}

// NewLogListener creates a listener that logs through logger.
func NewLogListener(logger *zap.Logger) *LogListener {
	return &LogListener{logger: logger}
}

// Notify implements Listener.
func (l *LogListener) Notify(e Event) {
	fields := make([]zap.Field, 0, len(e.Fields)+3)
	fields = append(fields,
		zap.String("event", string(e.Kind)),
		zap.String("schedule_id", e.BookingID),
		zap.Time("at", e.Time),
	)

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fields = append(fields, zap.String(k, e.Fields[k]))
	}

	switch e.Kind {
	case KindConflictDetected, KindUpdateFailed:
		l.logger.Warn("schedule event", fields...)
	default:
		l.logger.Info("schedule event", fields...)
	}
}
