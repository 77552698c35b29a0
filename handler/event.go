package handler

import (
	"github.com/pithecene-io/memsketch/invariant"
	"github.com/pithecene-io/memsketch/types"
	"github.com/pithecene-io/memsketch/unit"
)

// EventHandler lifts events into EventUnits. EventUnits never merge: each
// retained unit is exactly one event.
type EventHandler struct{}

// NewEventHandler constructs an EventHandler.
func NewEventHandler() *EventHandler { return &EventHandler{} }

func (h *EventHandler) Kind() unit.Kind { return unit.KindEvent }

func (h *EventHandler) Convert(event types.BEvent) unit.Unit {
	return unit.NewEventUnit(event)
}

// Merge always returns nil: EventUnits are never mergeable, so
// MemoryManager.AddEvent always falls through to a standalone insertion
// for this kind.
func (h *EventHandler) Merge(units []unit.Unit) []unit.Unit {
	return nil
}

func (h *EventHandler) ConvertBack(units []unit.Unit) []types.BEvent {
	out := make([]types.BEvent, 0, len(units))
	for _, u := range units {
		eu, ok := u.(*unit.EventUnit)
		invariant.Check(ok, "EventHandler.ConvertBack: expected *unit.EventUnit, got %T", u)
		out = append(out, eu.Event)
	}
	return out
}
