package policy

import (
	"testing"
	"time"

	"github.com/pithecene-io/memsketch/types"
	"github.com/pithecene-io/memsketch/unit"
)

func TestNewLossyCountPolicy_RejectsOutOfRangeEpsilon(t *testing.T) {
	for _, eps := range []float64{0, 1, -0.1, 1.1} {
		if _, err := NewLossyCountPolicy(eps); err == nil {
			t.Errorf("expected error for epsilon=%v", eps)
		}
	}
}

// TestLossyCountPolicy_FrequencyGuarantee checks the survival half of the
// Manku-Motwani guarantee: a class far more frequent than epsilon*N keeps
// its occurrences through every bucket-boundary trim.
func TestLossyCountPolicy_FrequencyGuarantee(t *testing.T) {
	p, err := NewLossyCountPolicy(0.1)
	if err != nil {
		t.Fatal(err)
	}

	const n = 500
	for i := 0; i < n; i++ {
		p.Update(mustEventUnit(t, "frequent", "c1", time.Duration(i)*time.Millisecond))
	}
	// A singleton class arrives last (n=501), after the final bucket
	// boundary, so no trim runs after it; only the frequent class is
	// asserted on.
	p.Update(mustEventUnit(t, "rare", "c2", 0))

	total := 0
	for _, u := range p.GetData() {
		eu := u.(*unit.EventUnit)
		if eu.Event.EventName() == "frequent" {
			total++
		}
	}
	if total == 0 {
		t.Error("expected at least some frequent occurrences retained")
	}
}

func TestLossyCountPolicy_RemoveElements_ClearsWholeBucket(t *testing.T) {
	// This reproduces the flagged quirk: removing one occurrence from an
	// equality class's bucket clears every occurrence in that bucket,
	// not just the one matching the removed unit's case id.
	// DfrUnit keys by activity pair alone, so open pairs from case-1 and
	// case-2 share one equality class.
	// epsilon=0.2 gives a bucket width of 5, so the bucket boundary trim
	// that follows the 2nd update doesn't fire and both occurrences are
	// still present when RemoveElements is called.
	p, err := NewLossyCountPolicy(0.2)
	if err != nil {
		t.Fatal(err)
	}
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	e1 := types.NewBEvent("a", "case-1", "proc", base)
	e2 := types.NewBEvent("a", "case-2", "proc", base)
	u1 := unit.NewDfrUnit(&e1, nil)
	u2 := unit.NewDfrUnit(&e2, nil)

	p.Update(u1)
	p.Update(u2)
	if len(p.GetData()) != 2 {
		t.Fatalf("expected 2 retained before removal, got %d", len(p.GetData()))
	}

	p.RemoveElements([]unit.Unit{unit.NewDfrUnit(&e1, nil)})

	if len(p.GetData()) != 0 {
		t.Errorf("expected the whole bucket cleared, got %d remaining", len(p.GetData()))
	}
}

func mustEventUnitAt(ts time.Time, name, caseID string) unit.Unit {
	return unit.NewEventUnit(types.NewBEvent(name, caseID, "proc", ts))
}
