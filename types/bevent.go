// Package types defines the immutable event record shared by every
// observable-unit kind and retention policy in the memory manager.
package types

import "time"

// BEvent is one record in a business-process event stream: an activity
// occurrence belonging to a trace (case) within a process.
//
// BEvent is a value type. It is never mutated in place; "setting a case
// id" on an event is expressed by constructing a new BEvent via
// WithTraceName.
type BEvent struct {
	eventName   string
	traceName   string
	processName string
	eventTime   time.Time
}

// NewBEvent constructs a BEvent from its four fields.
func NewBEvent(eventName, traceName, processName string, eventTime time.Time) BEvent {
	return BEvent{
		eventName:   eventName,
		traceName:   traceName,
		processName: processName,
		eventTime:   eventTime,
	}
}

// EventName returns the activity name.
func (e BEvent) EventName() string { return e.eventName }

// TraceName returns the case (trace) identifier.
func (e BEvent) TraceName() string { return e.traceName }

// ProcessName returns the process the trace belongs to.
func (e BEvent) ProcessName() string { return e.processName }

// EventTime returns the event's timestamp.
func (e BEvent) EventTime() time.Time { return e.eventTime }

// WithTraceName returns a copy of e with traceName replacing the case id.
// e itself is left unchanged.
func (e BEvent) WithTraceName(traceName string) BEvent {
	e.traceName = traceName
	return e
}

// NamesEqual reports whether a and b carry the same event name. A nil
// event contributes an absent name; two absent names compare equal, an
// absent name never equals a present one.
func NamesEqual(a, b *BEvent) bool {
	an, aok := nameOf(a)
	bn, bok := nameOf(b)
	if aok != bok {
		return false
	}
	if !aok {
		return true
	}
	return an == bn
}

func nameOf(e *BEvent) (string, bool) {
	if e == nil {
		return "", false
	}
	return e.eventName, true
}
