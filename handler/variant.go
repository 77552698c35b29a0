package handler

import (
	"github.com/pithecene-io/memsketch/invariant"
	"github.com/pithecene-io/memsketch/types"
	"github.com/pithecene-io/memsketch/unit"
)

// VariantHandler lifts events into single-event VariantUnits and merges
// a case's retained activity sequence with its newest activity.
type VariantHandler struct{}

// NewVariantHandler constructs a VariantHandler.
func NewVariantHandler() *VariantHandler { return &VariantHandler{} }

func (h *VariantHandler) Kind() unit.Kind { return unit.KindVariant }

func (h *VariantHandler) Convert(event types.BEvent) unit.Unit {
	return unit.NewVariantUnit([]types.BEvent{event})
}

// Merge is defined only for exactly two units, concatenating their
// activity sequences.
func (h *VariantHandler) Merge(units []unit.Unit) []unit.Unit {
	if len(units) != 2 {
		return nil
	}
	a, aok := units[0].(*unit.VariantUnit)
	b, bok := units[1].(*unit.VariantUnit)
	invariant.Check(aok && bok, "VariantHandler.Merge: expected two *unit.VariantUnit, got %T and %T", units[0], units[1])
	merged := make([]types.BEvent, 0, len(a.Events)+len(b.Events))
	merged = append(merged, a.Events...)
	merged = append(merged, b.Events...)
	return []unit.Unit{unit.NewVariantUnit(merged)}
}

// ConvertBack concatenates each unit's events in stored order.
func (h *VariantHandler) ConvertBack(units []unit.Unit) []types.BEvent {
	var out []types.BEvent
	for _, u := range units {
		vu, ok := u.(*unit.VariantUnit)
		invariant.Check(ok, "VariantHandler.ConvertBack: expected *unit.VariantUnit, got %T", u)
		out = append(out, vu.Events...)
	}
	return out
}
