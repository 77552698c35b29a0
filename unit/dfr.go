package unit

import (
	"fmt"

	"github.com/pithecene-io/memsketch/types"
)

// DfrUnit represents a directly-follows relation: an ordered pair of
// events observed consecutively within some trace. Either side may be
// absent (nil) while the pair is still open for its second half.
type DfrUnit struct {
	First  *types.BEvent
	Second *types.BEvent
}

// NewDfrUnit builds a DfrUnit from two optional events.
func NewDfrUnit(first, second *types.BEvent) *DfrUnit {
	return &DfrUnit{First: first, Second: second}
}

func (u *DfrUnit) Kind() Kind { return KindDfr }

// Key identifies the DFR by the pair of activity names alone: the DFR is
// identified by the activity pair, not by the case it was observed in.
func (u *DfrUnit) Key() string {
	return fmt.Sprintf("%s\x1f%s", sideName(u.First), sideName(u.Second))
}

func sideName(e *types.BEvent) string {
	if e == nil {
		return "\x00"
	}
	return e.EventName()
}

// CaseID returns the trace name of the first non-nil side, or false if
// both sides are empty (a shape handlers never produce and policies
// never store).
func (u *DfrUnit) CaseID() (string, bool) {
	if u.First != nil {
		return u.First.TraceName(), true
	}
	if u.Second != nil {
		return u.Second.TraceName(), true
	}
	return "", false
}

// IsMergeable reports true iff exactly one side is empty.
func (u *DfrUnit) IsMergeable() bool {
	return (u.First == nil) != (u.Second == nil)
}

func (u *DfrUnit) Clone() Unit {
	return &DfrUnit{First: cloneEvent(u.First), Second: cloneEvent(u.Second)}
}

func cloneEvent(e *types.BEvent) *types.BEvent {
	if e == nil {
		return nil
	}
	clone := *e
	return &clone
}

// SetCaseID rewrites the trace name of whichever sides are present.
func (u *DfrUnit) SetCaseID(caseID string) {
	if u.First != nil {
		updated := u.First.WithTraceName(caseID)
		u.First = &updated
	}
	if u.Second != nil {
		updated := u.Second.WithTraceName(caseID)
		u.Second = &updated
	}
}
