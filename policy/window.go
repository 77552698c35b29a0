package policy

import "github.com/pithecene-io/memsketch/unit"

// cloneUnitSlice deep-copies every unit in data, preserving order.
func cloneUnitSlice(data []unit.Unit) []unit.Unit {
	out := make([]unit.Unit, len(data))
	for i, u := range data {
		out[i] = u.Clone()
	}
	return out
}

// removeMatching drops every u in data for which some rem in units
// matches both by equality class and by case id.
//
// This reads like a stray conjunction-in-a-negation ("not all(not (u ==
// rem and case_id == rem.case_id))"), but works out to exactly this:
// remove u iff there exists a rem with u == rem AND u.case_id ==
// rem.case_id.
func removeMatching(data []unit.Unit, units []unit.Unit) []unit.Unit {
	kept := data[:0:0]
	for _, u := range data {
		ucid, _ := u.CaseID()
		remove := false
		for _, rem := range units {
			rcid, _ := rem.CaseID()
			if unit.Equal(u, rem) && ucid == rcid {
				remove = true
				break
			}
		}
		if !remove {
			kept = append(kept, u)
		}
	}
	return kept
}

// mergeableIn returns the raw (uncloned) entries of data that belong to
// caseID and can absorb a further event.
func mergeableIn(data []unit.Unit, caseID string) []unit.Unit {
	var out []unit.Unit
	for _, u := range data {
		cid, ok := u.CaseID()
		if ok && cid == caseID && u.IsMergeable() {
			out = append(out, u)
		}
	}
	return out
}

// SlidingWindowPolicy retains the most recent window_size units, FIFO by
// arrival.
type SlidingWindowPolicy struct {
	windowSize int
	data       []unit.Unit
}

// NewSlidingWindowPolicy constructs a SlidingWindowPolicy bounded to
// windowSize units.
func NewSlidingWindowPolicy(windowSize int) (*SlidingWindowPolicy, error) {
	if windowSize <= 0 {
		return nil, errInvalidWindowSize(windowSize)
	}
	return &SlidingWindowPolicy{windowSize: windowSize}, nil
}

// Update appends u, then truncates to the last windowSize units.
func (p *SlidingWindowPolicy) Update(u unit.Unit) {
	p.data = append(p.data, u)
	if len(p.data) > p.windowSize {
		p.data = p.data[len(p.data)-p.windowSize:]
	}
}

// GetData returns the window's current contents in arrival order.
func (p *SlidingWindowPolicy) GetData() []unit.Unit {
	out := make([]unit.Unit, len(p.data))
	copy(out, p.data)
	return out
}

// RemoveElements removes the given (unit, case id) occurrences. See
// removeMatching for the exact source-faithful semantics.
func (p *SlidingWindowPolicy) RemoveElements(units []unit.Unit) {
	p.data = removeMatching(p.data, units)
}

// GetMergeableElements returns the window's mergeable entries for
// caseID, filtered in place (no cloning: SlidingWindowPolicy stores raw
// units directly rather than per-case-id clones).
func (p *SlidingWindowPolicy) GetMergeableElements(caseID string) []unit.Unit {
	return mergeableIn(p.data, caseID)
}

// Clone deep-copies the window's contents.
func (p *SlidingWindowPolicy) Clone() RetentionPolicy {
	return &SlidingWindowPolicy{windowSize: p.windowSize, data: cloneUnitSlice(p.data)}
}

// TumblingWindowPolicy retains disjoint windows of window_size units: on
// the (window_size+1)-th update, the buffer is cleared before the new
// unit is installed as its sole element.
type TumblingWindowPolicy struct {
	windowSize int
	data       []unit.Unit
}

// NewTumblingWindowPolicy constructs a TumblingWindowPolicy bounded to
// windowSize units per epoch.
func NewTumblingWindowPolicy(windowSize int) (*TumblingWindowPolicy, error) {
	if windowSize <= 0 {
		return nil, errInvalidWindowSize(windowSize)
	}
	return &TumblingWindowPolicy{windowSize: windowSize}, nil
}

// Update appends u, clearing the prior window first if it was already
// full (disjoint, non-overlapping windows).
func (p *TumblingWindowPolicy) Update(u unit.Unit) {
	if len(p.data) >= p.windowSize {
		p.data = p.data[:0]
	}
	p.data = append(p.data, u)
}

// GetData returns the current epoch's contents in arrival order.
func (p *TumblingWindowPolicy) GetData() []unit.Unit {
	out := make([]unit.Unit, len(p.data))
	copy(out, p.data)
	return out
}

// RemoveElements removes the given (unit, case id) occurrences, with the
// same semantics as SlidingWindowPolicy.
func (p *TumblingWindowPolicy) RemoveElements(units []unit.Unit) {
	p.data = removeMatching(p.data, units)
}

// GetMergeableElements returns the epoch's mergeable entries for caseID.
func (p *TumblingWindowPolicy) GetMergeableElements(caseID string) []unit.Unit {
	return mergeableIn(p.data, caseID)
}

// Clone deep-copies the epoch's contents.
func (p *TumblingWindowPolicy) Clone() RetentionPolicy {
	return &TumblingWindowPolicy{windowSize: p.windowSize, data: cloneUnitSlice(p.data)}
}
