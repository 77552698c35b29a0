// Package unit defines the observable-unit sum type: the granularity at
// which the memory manager summarizes an event stream (single events,
// directly-follows relations, traces, or activity variants).
package unit

import "hash/fnv"

// Kind discriminates the four observable-unit shapes.
type Kind int

const (
	KindEvent Kind = iota
	KindDfr
	KindTrace
	KindVariant
)

func (k Kind) String() string {
	switch k {
	case KindEvent:
		return "event"
	case KindDfr:
		return "dfr"
	case KindTrace:
		return "trace"
	case KindVariant:
		return "variant"
	default:
		return "unknown"
	}
}

// Unit is the common interface implemented by EventUnit, DfrUnit,
// TraceUnit, and VariantUnit.
//
// Equal and Hash are derived from Kind and Key: two units of the same
// Kind with the same Key are equal and hash identically, which is all
// the "u == u' => hash(u) == hash(u')" invariant holds automatically.
// Key is therefore the single source of truth for each kind's equality
// semantics (documented on each concrete type).
type Unit interface {
	// Kind reports which observable-unit shape this is.
	Kind() Kind

	// Key returns the equality-class identity of this unit. Units of the
	// same Kind with equal Key are the same retained entry.
	Key() string

	// CaseID returns the case (trace) this unit is attached to, and
	// whether a case id is defined at all. Only DfrUnit can report false
	// (a pair with both sides empty, which handlers never produce and
	// policies never store).
	CaseID() (string, bool)

	// IsMergeable reports whether this unit can absorb a further event
	// of the same case.
	IsMergeable() bool

	// Clone returns a deep, independent copy of the unit.
	Clone() Unit

	// SetCaseID rewrites the case id carried by this unit's underlying
	// events in place. It does not affect units this one was cloned
	// from.
	SetCaseID(caseID string)
}

// Equal reports whether a and b belong to the same equality class.
func Equal(a, b Unit) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Kind() == b.Kind() && a.Key() == b.Key()
}

// Hash returns a hash consistent with Equal: Equal(a, b) implies
// Hash(a) == Hash(b).
func Hash(u Unit) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(u.Kind().String()))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(u.Key()))
	return h.Sum64()
}
