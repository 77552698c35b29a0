package unit

import "github.com/pithecene-io/memsketch/types"

// noneCaseID is the sentinel case id for an empty Trace/Variant unit.
const noneCaseID = "none"

// TraceUnit represents the full event sequence observed so far for one
// case. It is always mergeable: a trace can always be extended.
type TraceUnit struct {
	Events []types.BEvent
}

// NewTraceUnit wraps events as a TraceUnit.
func NewTraceUnit(events []types.BEvent) *TraceUnit {
	return &TraceUnit{Events: events}
}

func (u *TraceUnit) Kind() Kind { return KindTrace }

// Key is the case id alone: two TraceUnits are the same retained entry
// iff they belong to the same case.
func (u *TraceUnit) Key() string {
	id, _ := u.CaseID()
	return id
}

func (u *TraceUnit) CaseID() (string, bool) {
	if len(u.Events) > 0 {
		return u.Events[0].TraceName(), true
	}
	return noneCaseID, true
}

func (u *TraceUnit) IsMergeable() bool { return true }

func (u *TraceUnit) Clone() Unit {
	events := make([]types.BEvent, len(u.Events))
	copy(events, u.Events)
	return &TraceUnit{Events: events}
}

// SetCaseID rewrites the trace name of every event in the sequence.
func (u *TraceUnit) SetCaseID(caseID string) {
	for i, e := range u.Events {
		u.Events[i] = e.WithTraceName(caseID)
	}
}
