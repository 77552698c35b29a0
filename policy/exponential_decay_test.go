package policy

import (
	"testing"
	"time"
)

func TestNewExponentialDecayCountingPolicy_RejectsInvalidParams(t *testing.T) {
	if _, err := NewExponentialDecayCountingPolicy(0, 0.9, nil); err == nil {
		t.Error("expected error for budget 0")
	}
	if _, err := NewExponentialDecayCountingPolicy(5, 0, nil); err == nil {
		t.Error("expected error for decay 0")
	}
	if _, err := NewExponentialDecayCountingPolicy(5, -1, nil); err == nil {
		t.Error("expected error for negative decay")
	}
}

func TestExponentialDecayCountingPolicy_ReinforcementIncreasesSurvival(t *testing.T) {
	clock := NewFakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	p, err := NewExponentialDecayCountingPolicy(1, 0.5, clock)
	if err != nil {
		t.Fatal(err)
	}

	// "hot" gets reinforced repeatedly; "cold" arrives once and then
	// ages while time passes, so it should lose the eviction race.
	p.Update(mustEventUnit(t, "cold", "c1", 0))
	clock.Advance(5 * time.Second)
	p.Update(mustEventUnit(t, "hot", "c2", 0))
	clock.Advance(time.Second)
	p.Update(mustEventUnit(t, "hot", "c2", 0))

	data := p.GetData()
	foundHot := false
	for _, u := range data {
		eu := u
		if cid, _ := eu.CaseID(); cid == "c2" {
			foundHot = true
		}
	}
	if !foundHot {
		t.Error("expected the reinforced, recently-touched entry to survive eviction")
	}
}

func TestExponentialDecayCountingPolicy_Clone_Independence(t *testing.T) {
	clock := NewFakeClock(time.Now())
	p, _ := NewExponentialDecayCountingPolicy(5, 0.9, clock)
	p.Update(mustEventUnit(t, "a", "c1", 0))

	clone := p.Clone().(*ExponentialDecayCountingPolicy)
	clone.Update(mustEventUnit(t, "b", "c1", time.Second))

	if len(p.GetData()) != 1 {
		t.Errorf("source mutated by clone")
	}
}

func TestFakeClock_AdvanceAndSet(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewFakeClock(start)
	c.Advance(time.Minute)
	if !c.Now().Equal(start.Add(time.Minute)) {
		t.Errorf("Advance: got %v, want %v", c.Now(), start.Add(time.Minute))
	}
	c.Set(start)
	if !c.Now().Equal(start) {
		t.Errorf("Set: got %v, want %v", c.Now(), start)
	}
}
