// Package handler lifts BEvents into observable units, merges units that
// share a case, and projects retained units back into an event list. One
// handler exists per unit.Kind.
package handler

import (
	"github.com/pithecene-io/memsketch/types"
	"github.com/pithecene-io/memsketch/unit"
)

// Handler is the contract every unit-kind handler implements.
type Handler interface {
	// Kind reports which unit.Kind this handler produces and consumes.
	Kind() unit.Kind

	// Convert lifts a single event into its unit representation.
	Convert(event types.BEvent) unit.Unit

	// Merge combines the currently-retained mergeable units for a case
	// with the newly-converted unit appended at the end. It returns the
	// unit(s) to re-insert, or an empty slice if the input doesn't match
	// a mergeable shape for this handler.
	Merge(units []unit.Unit) []unit.Unit

	// ConvertBack projects a list of retained units into a flat,
	// insertion-ordered event list.
	ConvertBack(units []unit.Unit) []types.BEvent
}
