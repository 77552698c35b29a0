// Package policy implements the bounded-memory retention algorithms that
// decide which observable units a MemoryManager keeps: sliding and
// tumbling windows, reservoir sampling, lossy counting (plain and
// budgeted), and exponential-decay counting.
package policy

import (
	"errors"

	"github.com/pithecene-io/memsketch/unit"
)

// RetentionPolicy is the bounded-multiset contract every policy
// implements.
type RetentionPolicy interface {
	// Update inserts or reinforces unit u, then enforces the policy's
	// budget.
	Update(u unit.Unit)

	// GetData returns a snapshot of every unit currently retained, one
	// per retained (class, case id) occurrence.
	GetData() []unit.Unit

	// RemoveElements removes the given (unit, case id) occurrences.
	RemoveElements(units []unit.Unit)

	// GetMergeableElements returns every retained unit whose case id
	// equals caseID and which is mergeable. The budget- and decay-based
	// policies return clones with caseID bound; the window, reservoir and
	// lossy-count policies return the stored units themselves.
	GetMergeableElements(caseID string) []unit.Unit

	// Clone returns a deep, independent copy of the policy's state.
	Clone() RetentionPolicy
}

// Configuration errors, raised at construction time.
var (
	ErrInvalidWindowSize = errors.New("window size must be positive")
	ErrInvalidBudget     = errors.New("budget must be positive")
	ErrInvalidEpsilon    = errors.New("epsilon must be in (0, 1)")
	ErrInvalidDecay      = errors.New("decay must be positive")
)

// classKey returns the map key every entry-based policy groups units by:
// the unit's equality class (Kind + Key). Each entry then separately
// tracks the case ids currently folded into that class.
func classKey(u unit.Unit) string {
	return u.Kind().String() + "\x1f" + u.Key()
}

// removeString removes the first occurrence of s from ss, returning the
// (possibly shorter) slice. Used wherever a policy's RemoveElements
// deletes a single case-id occurrence from an entry's list, mirroring
// Python's list.remove.
func removeString(ss []string, s string) []string {
	for i, v := range ss {
		if v == s {
			return append(ss[:i], ss[i+1:]...)
		}
	}
	return ss
}

// capTail truncates ss to at most n elements, keeping the most recent
// (tail) ones — the Go analogue of Python's lst[-n:].
func capTail(ss []string, n int) []string {
	if n <= 0 || len(ss) <= n {
		return ss
	}
	return ss[len(ss)-n:]
}
