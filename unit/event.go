package unit

import (
	"fmt"

	"github.com/pithecene-io/memsketch/types"
)

// EventUnit wraps a single BEvent. It is never mergeable.
type EventUnit struct {
	Event types.BEvent
}

// NewEventUnit wraps e as an EventUnit.
func NewEventUnit(e types.BEvent) *EventUnit {
	return &EventUnit{Event: e}
}

func (u *EventUnit) Kind() Kind { return KindEvent }

// Key incorporates the event name, trace, and process — not the
// timestamp, so repeated occurrences of the same activity on the same
// case accumulate into one equality class instead of each arrival
// forming its own singleton.
func (u *EventUnit) Key() string {
	return fmt.Sprintf("%s\x1f%s\x1f%s", u.Event.EventName(), u.Event.TraceName(), u.Event.ProcessName())
}

func (u *EventUnit) CaseID() (string, bool) { return u.Event.TraceName(), true }

func (u *EventUnit) IsMergeable() bool { return false }

func (u *EventUnit) Clone() Unit { return &EventUnit{Event: u.Event} }

func (u *EventUnit) SetCaseID(caseID string) { u.Event = u.Event.WithTraceName(caseID) }
