package policy

import (
	"math"

	"github.com/pithecene-io/memsketch/invariant"
	"github.com/pithecene-io/memsketch/unit"
)

// lossyCountEntry holds every retained occurrence of one equality class,
// plus the "delta" (arrival bucket, minus one) it was first counted in.
type lossyCountEntry struct {
	occurrences []unit.Unit
	delta       int
}

// LossyCountPolicy implements Manku–Motwani lossy counting: an
// ε-deficient approximation of each equality class's frequency. See
// See NewLossyCountPolicy for the error-bound parameter.
type LossyCountPolicy struct {
	epsilon     float64
	bucketWidth int
	data        map[string]*lossyCountEntry
	n           int
}

// NewLossyCountPolicy constructs a LossyCountPolicy with error bound
// epsilon (0 < epsilon < 1).
func NewLossyCountPolicy(epsilon float64) (*LossyCountPolicy, error) {
	if epsilon <= 0 || epsilon >= 1 {
		return nil, errInvalidEpsilon(epsilon)
	}
	return &LossyCountPolicy{
		epsilon:     epsilon,
		bucketWidth: int(math.Ceil(1 / epsilon)),
		data:        make(map[string]*lossyCountEntry),
	}, nil
}

func (p *LossyCountPolicy) bucketID() int { return p.n / p.bucketWidth }

// Update records an arrival of u, trimming at every bucket boundary.
func (p *LossyCountPolicy) Update(u unit.Unit) {
	p.n++
	key := classKey(u)
	if entry, ok := p.data[key]; ok {
		entry.occurrences = append(entry.occurrences, u)
	} else {
		p.data[key] = &lossyCountEntry{occurrences: []unit.Unit{u}, delta: p.bucketID() - 1}
	}

	if p.n%p.bucketWidth == 0 {
		p.trim()
	}
}

// trim drops every entry whose estimated frequency ceiling can no longer
// matter: len(occurrences) + delta <= current bucket id.
func (p *LossyCountPolicy) trim() {
	bucketID := p.bucketID()
	for key, entry := range p.data {
		if len(entry.occurrences)+entry.delta <= bucketID {
			delete(p.data, key)
		}
	}
}

// GetData flattens every entry's occurrence list. Each occurrence already
// carries its own case id (it's the literal arriving unit), so no
// per-case cloning is needed here, unlike the budget- and decay-based
// policies.
func (p *LossyCountPolicy) GetData() []unit.Unit {
	var out []unit.Unit
	for _, entry := range p.data {
		out = append(out, entry.occurrences...)
	}
	return out
}

// RemoveElements reproduces the source's remove_elements verbatim,
// including a quirk worth calling out explicitly: it keeps entries
// matching NEITHER the removed unit's equality class NOR its case id
// (`u != unit and u.case_id != unit.case_id`), which was very likely
// meant to be an OR. Because every occurrence sharing a bucket already
// matches the removed unit by equality class, the first conjunct is
// false for the whole bucket in practice, so the bucket is cleared
// outright whenever any of its occurrences is targeted for removal —
// not just the matching case id. Mirrored here for behavioral parity.
func (p *LossyCountPolicy) RemoveElements(units []unit.Unit) {
	for _, rem := range units {
		key := classKey(rem)
		entry, ok := p.data[key]
		invariant.Check(ok, "LossyCountPolicy.RemoveElements: no entry for key %q", key)
		remCid, _ := rem.CaseID()
		kept := entry.occurrences[:0:0]
		for _, u := range entry.occurrences {
			ucid, _ := u.CaseID()
			if !unit.Equal(u, rem) && ucid != remCid {
				kept = append(kept, u)
			}
		}
		if len(kept) == 0 {
			delete(p.data, key)
		} else {
			entry.occurrences = kept
		}
	}
}

// GetMergeableElements returns the raw (uncloned) occurrences matching
// caseID that can absorb a further event.
func (p *LossyCountPolicy) GetMergeableElements(caseID string) []unit.Unit {
	var out []unit.Unit
	for _, entry := range p.data {
		for _, u := range entry.occurrences {
			cid, ok := u.CaseID()
			if ok && cid == caseID && u.IsMergeable() {
				out = append(out, u)
			}
		}
	}
	return out
}

// Clone deep-copies every retained occurrence and bucket bookkeeping.
func (p *LossyCountPolicy) Clone() RetentionPolicy {
	clone := &LossyCountPolicy{
		epsilon:     p.epsilon,
		bucketWidth: p.bucketWidth,
		data:        make(map[string]*lossyCountEntry, len(p.data)),
		n:           p.n,
	}
	for key, entry := range p.data {
		clone.data[key] = &lossyCountEntry{
			occurrences: cloneUnitSlice(entry.occurrences),
			delta:       entry.delta,
		}
	}
	return clone
}
