package policy

import "github.com/pithecene-io/memsketch/unit"

// ReservoirSamplingPolicy implements Vitter's Algorithm R: a uniform
// random sample of the stream, bounded to budget units.
type ReservoirSamplingPolicy struct {
	budget int
	data   []unit.Unit
	n      int
	rng    RNG
}

// NewReservoirSamplingPolicy constructs a ReservoirSamplingPolicy bounded
// to budget units, drawing from rng. Pass the same RNG seed across runs
// for reproducible sampling.
func NewReservoirSamplingPolicy(budget int, rng RNG) (*ReservoirSamplingPolicy, error) {
	if budget <= 0 {
		return nil, errInvalidBudget(budget)
	}
	if rng == nil {
		rng = NewSeededRNG(0)
	}
	return &ReservoirSamplingPolicy{budget: budget, rng: rng}, nil
}

// Update admits u into the reservoir while |data| < budget, then
// replaces a uniformly-chosen existing slot with probability budget/N.
func (p *ReservoirSamplingPolicy) Update(u unit.Unit) {
	p.n++
	if len(p.data) < p.budget {
		p.data = append(p.data, u)
		return
	}
	j := p.rng.IntN(p.n)
	if j < p.budget {
		p.data[j] = u
	}
}

// GetData returns the reservoir's current sample.
func (p *ReservoirSamplingPolicy) GetData() []unit.Unit {
	out := make([]unit.Unit, len(p.data))
	copy(out, p.data)
	return out
}

// RemoveElements removes every (case id, unit) occurrence matching units.
func (p *ReservoirSamplingPolicy) RemoveElements(units []unit.Unit) {
	kept := p.data[:0:0]
	for _, u := range p.data {
		cid, _ := u.CaseID()
		remove := false
		for _, rem := range units {
			rcid, _ := rem.CaseID()
			if cid == rcid && unit.Equal(u, rem) {
				remove = true
				break
			}
		}
		if !remove {
			kept = append(kept, u)
		}
	}
	p.data = kept
}

// GetMergeableElements returns the reservoir's mergeable entries for
// caseID (raw references: ReservoirSamplingPolicy stores units directly,
// rather than per-case-id clones).
func (p *ReservoirSamplingPolicy) GetMergeableElements(caseID string) []unit.Unit {
	return mergeableIn(p.data, caseID)
}

// Clone deep-copies the reservoir's contents and sampling state. The
// clone draws from an independent RNG seeded from the source's next
// draw, so subsequent sampling diverges rather than lock-stepping.
func (p *ReservoirSamplingPolicy) Clone() RetentionPolicy {
	return &ReservoirSamplingPolicy{
		budget: p.budget,
		data:   cloneUnitSlice(p.data),
		n:      p.n,
		rng:    NewSeededRNG(uint64(p.rng.IntN(1 << 30))),
	}
}
