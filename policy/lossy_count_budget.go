package policy

import (
	"github.com/pithecene-io/memsketch/invariant"
	"github.com/pithecene-io/memsketch/log"
	"github.com/pithecene-io/memsketch/unit"
)

// lossyBudgetEntry tracks one equality class's recent case ids and the
// last arrival that touched it. template is a representative clone of
// the class's unit, used to mint per-case clones in GetData.
type lossyBudgetEntry struct {
	template      unit.Unit
	caseIDs       []string
	lastUpdatedN  int
}

// LossyCountWithBudgetPolicy keeps at most budget distinct equality
// classes, evicting by a weighted frequency/recency score.
type LossyCountWithBudgetPolicy struct {
	budget int
	data   map[string]*lossyBudgetEntry
	n      int
	logger *log.Logger
}

// SetLogger attaches a logger that records every eviction this policy's
// trim performs. Passing nil disables eviction logging (the default).
func (p *LossyCountWithBudgetPolicy) SetLogger(l *log.Logger) {
	p.logger = l
}

// NewLossyCountWithBudgetPolicy constructs a LossyCountWithBudgetPolicy
// bounded to budget distinct classes.
func NewLossyCountWithBudgetPolicy(budget int) (*LossyCountWithBudgetPolicy, error) {
	if budget <= 0 {
		return nil, errInvalidBudget(budget)
	}
	return &LossyCountWithBudgetPolicy{budget: budget, data: make(map[string]*lossyBudgetEntry)}, nil
}

// Update records an arrival of u, trimming if the distinct-key count
// exceeds budget.
func (p *LossyCountWithBudgetPolicy) Update(u unit.Unit) {
	p.n++
	key := classKey(u)
	cid, _ := u.CaseID()
	if entry, ok := p.data[key]; ok {
		entry.caseIDs = capTail(append(entry.caseIDs, cid), p.budget)
		entry.lastUpdatedN = p.n
	} else {
		p.data[key] = &lossyBudgetEntry{template: u.Clone(), caseIDs: []string{cid}, lastUpdatedN: p.n}
	}

	if len(p.data) > p.budget {
		p.trim()
	}
}

// trim evicts the entry minimizing a weighted combination of frequency
// and recency.
//
// This score evicts entries that are BOTH infrequent and recent — the opposite of usual LRU/LFU intent, which
// would target infrequent-and-stale entries. Reproduced verbatim; not
// "fixed".
func (p *LossyCountWithBudgetPolicy) trim() {
	const alpha = 0.6
	minLifetime := (p.budget / 3) * 2

	candidates := make(map[string]*lossyBudgetEntry)
	for key, entry := range p.data {
		if p.n-entry.lastUpdatedN > minLifetime {
			candidates[key] = entry
		}
	}
	if len(candidates) == 0 {
		candidates = p.data
	}

	var evictKey string
	var evictScore float64
	first := true
	for key, entry := range candidates {
		score := alpha*float64(len(entry.caseIDs)) + (1-alpha)*float64(p.n-entry.lastUpdatedN)
		if first || score < evictScore {
			evictKey, evictScore, first = key, score, false
		}
	}
	delete(p.data, evictKey)
	if p.logger != nil {
		p.logger.Debug("lossy_count_with_budget: evicted entry", map[string]any{
			"key": evictKey, "score": evictScore, "n": p.n,
		})
	}
}

// GetData expands every entry into one clone per retained case id, with
// that case id bound into the clone.
func (p *LossyCountWithBudgetPolicy) GetData() []unit.Unit {
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
func (p *LossyCountWithBudgetPolicy) RemoveElements(units []unit.Unit) {
	for _, rem := range units {
		key := classKey(rem)
		entry, ok := p.data[key]
		invariant.Check(ok, "LossyCountWithBudgetPolicy.RemoveElements: no entry for key %q", key)
		cid, _ := rem.CaseID()
		entry.caseIDs = removeString(entry.caseIDs, cid)
		if len(entry.caseIDs) == 0 {
			delete(p.data, key)
		}
	}
}

// GetMergeableElements returns clones of every entry retaining caseID
// whose template is mergeable, with caseID bound into the clone.
func (p *LossyCountWithBudgetPolicy) GetMergeableElements(caseID string) []unit.Unit {
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

// Clone deep-copies every retained entry.
func (p *LossyCountWithBudgetPolicy) Clone() RetentionPolicy {
	clone := &LossyCountWithBudgetPolicy{
		budget: p.budget,
		data:   make(map[string]*lossyBudgetEntry, len(p.data)),
		n:      p.n,
		logger: p.logger,
	}
	for key, entry := range p.data {
		caseIDs := make([]string, len(entry.caseIDs))
		copy(caseIDs, entry.caseIDs)
		clone.data[key] = &lossyBudgetEntry{
			template:     entry.template.Clone(),
			caseIDs:      caseIDs,
			lastUpdatedN: entry.lastUpdatedN,
		}
	}
	return clone
}

func containsString(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
