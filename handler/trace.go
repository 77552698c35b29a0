package handler

import (
	"github.com/pithecene-io/memsketch/invariant"
	"github.com/pithecene-io/memsketch/types"
	"github.com/pithecene-io/memsketch/unit"
)

// TraceHandler lifts events into single-event TraceUnits and merges a
// case's retained unit with its newest event.
type TraceHandler struct{}

// NewTraceHandler constructs a TraceHandler.
func NewTraceHandler() *TraceHandler { return &TraceHandler{} }

func (h *TraceHandler) Kind() unit.Kind { return unit.KindTrace }

func (h *TraceHandler) Convert(event types.BEvent) unit.Unit {
	return unit.NewTraceUnit([]types.BEvent{event})
}

// Merge is defined only for exactly two units: the retained trace and
// the newly-converted one. Their event sequences are concatenated.
func (h *TraceHandler) Merge(units []unit.Unit) []unit.Unit {
	if len(units) != 2 {
		return nil
	}
	a, aok := units[0].(*unit.TraceUnit)
	b, bok := units[1].(*unit.TraceUnit)
	invariant.Check(aok && bok, "TraceHandler.Merge: expected two *unit.TraceUnit, got %T and %T", units[0], units[1])
	merged := make([]types.BEvent, 0, len(a.Events)+len(b.Events))
	merged = append(merged, a.Events...)
	merged = append(merged, b.Events...)
	return []unit.Unit{unit.NewTraceUnit(merged)}
}

// ConvertBack concatenates each unit's events in stored order.
func (h *TraceHandler) ConvertBack(units []unit.Unit) []types.BEvent {
	var out []types.BEvent
	for _, u := range units {
		tu, ok := u.(*unit.TraceUnit)
		invariant.Check(ok, "TraceHandler.ConvertBack: expected *unit.TraceUnit, got %T", u)
		out = append(out, tu.Events...)
	}
	return out
}
