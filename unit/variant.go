package unit

import (
	"fmt"
	"strings"

	"github.com/pithecene-io/memsketch/types"
)

// VariantUnit represents a trace's activity-name sequence, abstracting
// away everything but the shape of the case. It is always mergeable.
type VariantUnit struct {
	Events []types.BEvent
}

// NewVariantUnit wraps events as a VariantUnit.
func NewVariantUnit(events []types.BEvent) *VariantUnit {
	return &VariantUnit{Events: events}
}

func (u *VariantUnit) Kind() Kind { return KindVariant }

// Key is the tuple of event names in order. The length
// is folded into the key so that, e.g., ("a") and ("a","a") never
// collide under the separator join.
func (u *VariantUnit) Key() string {
	names := make([]string, len(u.Events))
	for i, e := range u.Events {
		names[i] = e.EventName()
	}
	return fmt.Sprintf("%d\x1f%s", len(names), strings.Join(names, "\x1f"))
}

func (u *VariantUnit) CaseID() (string, bool) {
	if len(u.Events) > 0 {
		return u.Events[0].TraceName(), true
	}
	return noneCaseID, true
}

func (u *VariantUnit) IsMergeable() bool { return true }

func (u *VariantUnit) Clone() Unit {
	events := make([]types.BEvent, len(u.Events))
	copy(events, u.Events)
	return &VariantUnit{Events: events}
}

// SetCaseID rewrites the trace name of every event in the sequence.
func (u *VariantUnit) SetCaseID(caseID string) {
	for i, e := range u.Events {
		u.Events[i] = e.WithTraceName(caseID)
	}
}
