package handler

import (
	"github.com/pithecene-io/memsketch/invariant"
	"github.com/pithecene-io/memsketch/types"
	"github.com/pithecene-io/memsketch/unit"
)

// DfrHandler lifts events into directly-follows pairs and merges an open
// pair with the unit that closes it.
type DfrHandler struct{}

// NewDfrHandler constructs a DfrHandler.
func NewDfrHandler() *DfrHandler { return &DfrHandler{} }

func (h *DfrHandler) Kind() unit.Kind { return unit.KindDfr }

func (h *DfrHandler) Convert(event types.BEvent) unit.Unit {
	return unit.NewDfrUnit(&event, nil)
}

// Merge is defined only for exactly two units: an open pair (one side
// nil) and the newly-converted unit. Given [a, b] it closes a.First
// against b.First, and leaves b open for the next arrival.
func (h *DfrHandler) Merge(units []unit.Unit) []unit.Unit {
	if len(units) != 2 {
		return nil
	}
	a, aok := units[0].(*unit.DfrUnit)
	b, bok := units[1].(*unit.DfrUnit)
	invariant.Check(aok && bok, "DfrHandler.Merge: expected two *unit.DfrUnit, got %T and %T", units[0], units[1])
	return []unit.Unit{unit.NewDfrUnit(a.First, b.First), b}
}

// ConvertBack flattens each unit's First then Second, deduplicating
// events that already appear in the output (the Go analogue of the
// source's identity dedup — BEvent is a value type here, so two events
// with identical fields are treated as the same occurrence).
func (h *DfrHandler) ConvertBack(units []unit.Unit) []types.BEvent {
	var out []types.BEvent
	seen := func(e types.BEvent) bool {
		for _, o := range out {
			if o == e {
				return true
			}
		}
		return false
	}
	for _, u := range units {
		du, ok := u.(*unit.DfrUnit)
		invariant.Check(ok, "DfrHandler.ConvertBack: expected *unit.DfrUnit, got %T", u)
		if du.First != nil && !seen(*du.First) {
			out = append(out, *du.First)
		}
		if du.Second != nil && !seen(*du.Second) {
			out = append(out, *du.Second)
		}
	}
	return out
}
