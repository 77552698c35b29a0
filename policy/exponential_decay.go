package policy

import (
	"math"
	"time"

	"github.com/pithecene-io/memsketch/invariant"
	"github.com/pithecene-io/memsketch/log"
	"github.com/pithecene-io/memsketch/unit"
)

// decayEntry tracks one equality class's retained case ids, its current
// decayed weight, and the time that weight was last refreshed.
type decayEntry struct {
	template    unit.Unit
	caseIDs     []string
	weight      float64
	lastUpdated time.Time
}

// ExponentialDecayCountingPolicy keeps at most budget distinct equality
// classes, weighting each by an exponentially decaying hit count so that
// recent, frequent classes outscore stale ones.
type ExponentialDecayCountingPolicy struct {
	budget int
	decay  float64
	data   map[string]*decayEntry
	n      int
	clock  Clock
	logger *log.Logger
}

// SetLogger attaches a logger that records every eviction this policy's
// trim performs. Passing nil disables eviction logging (the default).
func (p *ExponentialDecayCountingPolicy) SetLogger(l *log.Logger) {
	p.logger = l
}

// NewExponentialDecayCountingPolicy constructs an
// ExponentialDecayCountingPolicy bounded to budget classes with the given
// decay rate (0 < decay). clock may be nil, in which case SystemClock is
// used.
func NewExponentialDecayCountingPolicy(budget int, decay float64, clock Clock) (*ExponentialDecayCountingPolicy, error) {
	if budget <= 0 {
		return nil, errInvalidBudget(budget)
	}
	if decay <= 0 {
		return nil, errInvalidDecay(decay)
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &ExponentialDecayCountingPolicy{budget: budget, decay: decay, data: make(map[string]*decayEntry), clock: clock}, nil
}

// Update decays every retained entry's weight by elapsed time, then
// reinforces (or inserts) the entry for u.
//
// The decay pass below is a single loop over every entry: it computes
// each entry's decayed weight AND, for the entry matching u, refreshes
// its lastUpdated to now — in the same pass, before the reinforcement
// step that follows adds +1.0 to that already-refreshed entry. That
// ordering means the +1.0 always lands on a dt=0 weight for the
// matching entry; every other entry's weight reflects decay since its
// own last touch, not since this call.
//
// Elapsed time is clamped at zero, so a clock that moves backwards never
// increases a weight.
func (p *ExponentialDecayCountingPolicy) Update(u unit.Unit) {
	p.n++
	now := p.clock.Now()
	key := classKey(u)

	for k, entry := range p.data {
		dt := max(0, now.Sub(entry.lastUpdated).Seconds())
		entry.weight = entry.weight * math.Exp(-p.decay*dt)
		if k == key {
			entry.lastUpdated = now
		}
	}

	cid, _ := u.CaseID()
	if entry, ok := p.data[key]; ok {
		entry.caseIDs = capTail(append(entry.caseIDs, cid), p.budget)
		entry.weight += 1.0
		entry.lastUpdated = now
	} else {
		p.data[key] = &decayEntry{template: u.Clone(), caseIDs: []string{cid}, weight: 1.0, lastUpdated: now}
	}

	if len(p.data) > p.budget {
		p.trim()
	}
}

// trim evicts the entry with the lowest weight once decayed to the
// current time.
func (p *ExponentialDecayCountingPolicy) trim() {
	now := p.clock.Now()
	var evictKey string
	var evictWeight float64
	first := true
	for key, entry := range p.data {
		dt := max(0, now.Sub(entry.lastUpdated).Seconds())
		effective := entry.weight * math.Exp(-p.decay*dt)
		if first || effective < evictWeight {
			evictKey, evictWeight, first = key, effective, false
		}
	}
	delete(p.data, evictKey)
	if p.logger != nil {
		p.logger.Debug("exponential_decay_counting: evicted entry", map[string]any{
			"key": evictKey, "effective_weight": evictWeight, "n": p.n,
		})
	}
}

// GetData expands every entry into one clone per retained case id, with
// that case id bound into the clone.
func (p *ExponentialDecayCountingPolicy) GetData() []unit.Unit {
	var out []unit.Unit
	for _, entry := range p.data {
		for _, cid := range entry.caseIDs {
			clone := entry.template.Clone()
			clone.SetCaseID(cid)
			out = append(out, clone)
		}
	}
	return out
}

// RemoveElements removes one case-id occurrence per given unit from its
// equality class's entry, dropping the entry once it's empty.
func (p *ExponentialDecayCountingPolicy) RemoveElements(units []unit.Unit) {
	for _, rem := range units {
		key := classKey(rem)
		entry, ok := p.data[key]
		invariant.Check(ok, "ExponentialDecayCountingPolicy.RemoveElements: no entry for key %q", key)
		cid, _ := rem.CaseID()
		entry.caseIDs = removeString(entry.caseIDs, cid)
		if len(entry.caseIDs) == 0 {
			delete(p.data, key)
		}
	}
}

// GetMergeableElements returns clones of every entry retaining caseID
// whose template is mergeable, with caseID bound into the clone.
func (p *ExponentialDecayCountingPolicy) GetMergeableElements(caseID string) []unit.Unit {
	var out []unit.Unit
	for _, entry := range p.data {
		if !entry.template.IsMergeable() {
			continue
		}
		if containsString(entry.caseIDs, caseID) {
			clone := entry.template.Clone()
			clone.SetCaseID(caseID)
			out = append(out, clone)
		}
	}
	return out
}

// Clone deep-copies every retained entry. The clone shares the source's
// clock (typically a SystemClock or a FakeClock under test).
func (p *ExponentialDecayCountingPolicy) Clone() RetentionPolicy {
	clone := &ExponentialDecayCountingPolicy{
		budget: p.budget,
		decay:  p.decay,
		data:   make(map[string]*decayEntry, len(p.data)),
		n:      p.n,
		clock:  p.clock,
		logger: p.logger,
	}
	for key, entry := range p.data {
		caseIDs := make([]string, len(entry.caseIDs))
		copy(caseIDs, entry.caseIDs)
		clone.data[key] = &decayEntry{
			template:    entry.template.Clone(),
			caseIDs:     caseIDs,
			weight:      entry.weight,
			lastUpdated: entry.lastUpdated,
		}
	}
	return clone
}
