// Package manager wires a handler and a retention policy together into
// the single entry point a caller drives with incoming events.
package manager

import (
	"errors"
	"fmt"

	"github.com/pithecene-io/memsketch/handler"
	"github.com/pithecene-io/memsketch/log"
	"github.com/pithecene-io/memsketch/policy"
	"github.com/pithecene-io/memsketch/types"
	"github.com/pithecene-io/memsketch/unit"
)

// ErrKindMismatch is the error New wraps when the handler or the policy is
// nil. New does not compare unit kinds, so a handler paired with a policy
// holding another kind of unit is not rejected.
var ErrKindMismatch = errors.New("handler and policy disagree on unit kind")

// MemoryManager converts incoming events into observable units, merges
// them into whatever the retention policy already holds for their case,
// and enforces the policy's budget on every arrival.
type MemoryManager struct {
	h      handler.Handler
	p      policy.RetentionPolicy
	logger *log.Logger
}

// New constructs a MemoryManager pairing h with p. It fails only when h or
// p is nil: Go's handler.Handler and policy.RetentionPolicy
// interfaces carry no unit.Kind coupling at the type level, so there is
// no handler.unit_class-style mismatch to reject here; callers are
// responsible for pairing a handler with a policy meant to store its
// unit kind.
func New(h handler.Handler, p policy.RetentionPolicy) (*MemoryManager, error) {
	if h == nil {
		return nil, fmt.Errorf("%w: nil handler", ErrKindMismatch)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: nil policy", ErrKindMismatch)
	}
	return &MemoryManager{h: h, p: p}, nil
}

// SetLogger attaches a session logger. Passing nil disables logging (the
// default); AddEvent is otherwise silent.
func (m *MemoryManager) SetLogger(l *log.Logger) {
	m.logger = l
}

// AddEvent lifts event into its unit representation, merges it with
// whatever the policy retains for the same case, and reinserts the
// result.
//
// If the policy already holds mergeable units for this case, they are
// removed, the incoming unit is appended, and the handler's merge
// decides what to reinsert (normally a single combined unit, but
// handlers are free to return more than one, or none). Otherwise the
// new unit is inserted standalone.
func (m *MemoryManager) AddEvent(event types.BEvent) {
	u := m.h.Convert(event)
	caseID, ok := u.CaseID()
	var mergeable []unit.Unit
	if ok {
		mergeable = m.p.GetMergeableElements(caseID)
	}
	if len(mergeable) > 0 {
		m.p.RemoveElements(mergeable)
		mergeable = append(mergeable, u)
		merged := m.h.Merge(mergeable)
		if m.logger != nil {
			m.logger.Debug("merged event into existing case", map[string]any{
				"case_id": caseID, "absorbed": len(mergeable), "produced": len(merged),
			})
		}
		for _, mu := range merged {
			m.p.Update(mu)
		}
		return
	}
	m.p.Update(u)
}

// GetData projects every unit the policy currently retains back into a
// flat event list, in the order the policy's GetData returns the units.
// The counting policies keep their entries in a map, so for them that
// order is not defined.
func (m *MemoryManager) GetData() []types.BEvent {
	return m.h.ConvertBack(m.p.GetData())
}

// Clone returns a MemoryManager holding an independent deep copy of the
// retention policy's state. The handler is stateless and shared.
func (m *MemoryManager) Clone() *MemoryManager {
	return &MemoryManager{h: m.h, p: m.p.Clone(), logger: m.logger}
}
