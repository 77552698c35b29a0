package manager

import (
	"testing"
	"time"

	"github.com/pithecene-io/memsketch/handler"
	"github.com/pithecene-io/memsketch/policy"
	"github.com/pithecene-io/memsketch/types"
)

func evt(t *testing.T, name, caseID string, offset time.Duration) types.BEvent {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return types.NewBEvent(name, caseID, "proc", base.Add(offset))
}

func TestNew_RejectsNilArgs(t *testing.T) {
	if _, err := New(nil, mustPolicy(t)); err == nil {
		t.Error("expected error for nil handler")
	}
	if _, err := New(handler.NewEventHandler(), nil); err == nil {
		t.Error("expected error for nil policy")
	}
}

func mustPolicy(t *testing.T) policy.RetentionPolicy {
	t.Helper()
	p, err := policy.NewSlidingWindowPolicy(3)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

// TestEventHandlerRetainsMostRecentInWindow feeds 4 events under the same
// case through a size-3 sliding window and expects the last 3 retained in
// arrival order.
func TestEventHandlerRetainsMostRecentInWindow(t *testing.T) {
	p, err := policy.NewSlidingWindowPolicy(3)
	if err != nil {
		t.Fatal(err)
	}
	m, err := New(handler.NewEventHandler(), p)
	if err != nil {
		t.Fatal(err)
	}

	for i, name := range []string{"a", "b", "c", "d"} {
		m.AddEvent(evt(t, name, "t1", time.Duration(i)*time.Second))
	}

	data := m.GetData()
	if len(data) != 3 {
		t.Fatalf("expected 3 retained events, got %d", len(data))
	}
	var names []string
	for _, e := range data {
		names = append(names, e.EventName())
	}
	want := []string{"b", "c", "d"}
	for i, n := range names {
		if n != want[i] {
			t.Errorf("names = %v, want %v", names, want)
			break
		}
	}
}

// TestTraceHandlerMergesEventSequences feeds three events across two cases
// and checks that each case accumulates its own ordered event sequence
// rather than the cases' events interleaving into one trace.
func TestTraceHandlerMergesEventSequences(t *testing.T) {
	p, err := policy.NewSlidingWindowPolicy(10)
	if err != nil {
		t.Fatal(err)
	}
	m, err := New(handler.NewTraceHandler(), p)
	if err != nil {
		t.Fatal(err)
	}

	m.AddEvent(evt(t, "a", "t1", 0))
	m.AddEvent(evt(t, "b", "t2", time.Second))
	m.AddEvent(evt(t, "c", "t1", 2*time.Second))

	data := m.GetData()
	if len(data) != 3 {
		t.Fatalf("expected 3 events across both traces, got %d", len(data))
	}
	byCase := map[string][]string{}
	for _, e := range data {
		byCase[e.TraceName()] = append(byCase[e.TraceName()], e.EventName())
	}
	if len(byCase["t1"]) != 2 || byCase["t1"][0] != "a" || byCase["t1"][1] != "c" {
		t.Errorf("case t1 trace = %v, want [a c]", byCase["t1"])
	}
	if len(byCase["t2"]) != 1 || byCase["t2"][0] != "b" {
		t.Errorf("case t2 trace = %v, want [b]", byCase["t2"])
	}
}

// TestVariantHandlerGroupsByActivitySequence feeds three cases, two of
// which share an activity-name shape, and checks that variant grouping by
// shape doesn't drop any underlying events.
func TestVariantHandlerGroupsByActivitySequence(t *testing.T) {
	p, err := policy.NewSlidingWindowPolicy(10)
	if err != nil {
		t.Fatal(err)
	}
	m, err := New(handler.NewVariantHandler(), p)
	if err != nil {
		t.Fatal(err)
	}

	feed := []struct {
		name, caseID string
	}{
		{"a", "t1"}, {"b", "t1"},
		{"a", "t2"}, {"b", "t2"},
		{"a", "t3"}, {"c", "t3"},
	}
	for i, f := range feed {
		m.AddEvent(evt(t, f.name, f.caseID, time.Duration(i)*time.Second))
	}

	data := m.GetData()
	if len(data) != 6 {
		t.Fatalf("expected 6 events across both variant classes, got %d", len(data))
	}

	byCase := map[string]int{}
	for _, e := range data {
		byCase[e.TraceName()]++
	}
	if byCase["t1"] != 2 || byCase["t2"] != 2 || byCase["t3"] != 2 {
		t.Errorf("expected 2 events per case, got %v", byCase)
	}
}

// TestDfrHandlerProducesConsecutivePairs feeds 3 consecutive same-case
// events and checks ConvertBack recovers the distinct underlying events
// from the resulting directly-follows pairs.
func TestDfrHandlerProducesConsecutivePairs(t *testing.T) {
	p, err := policy.NewSlidingWindowPolicy(10)
	if err != nil {
		t.Fatal(err)
	}
	m, err := New(handler.NewDfrHandler(), p)
	if err != nil {
		t.Fatal(err)
	}

	for i, name := range []string{"a", "b", "c"} {
		m.AddEvent(evt(t, name, "t1", time.Duration(i)*time.Second))
	}

	data := m.GetData()
	if len(data) == 0 || len(data) > 3 {
		t.Fatalf("expected at most 3 distinct events after dedup, got %d", len(data))
	}
}

// TestReservoirSamplingReproducible checks that a fixed seed produces the
// same sample across independent runs over the same stream.
func TestReservoirSamplingReproducible(t *testing.T) {
	build := func() []types.BEvent {
		p, err := policy.NewReservoirSamplingPolicy(2, policy.NewSeededRNG(42))
		if err != nil {
			t.Fatal(err)
		}
		m, err := New(handler.NewEventHandler(), p)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 100; i++ {
			m.AddEvent(evt(t, string(rune('a'+i%26)), "t1", time.Duration(i)*time.Second))
		}
		return m.GetData()
	}

	first := build()
	second := build()

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2 retained events, got %d and %d", len(first), len(second))
	}
	if first[0] != second[0] || first[1] != second[1] {
		t.Errorf("same seed should reproduce the same sample: %v vs %v", first, second)
	}
}

// TestLossyCountRetainsFrequentActivity feeds a skewed stream where "x"
// dominates and checks "x" always survives lossy counting's trims.
func TestLossyCountRetainsFrequentActivity(t *testing.T) {
	p, err := policy.NewLossyCountPolicy(0.1)
	if err != nil {
		t.Fatal(err)
	}
	m, err := New(handler.NewEventHandler(), p)
	if err != nil {
		t.Fatal(err)
	}

	n := 0
	for i := 0; i < 60; i++ {
		m.AddEvent(evt(t, "x", "t1", time.Duration(n)*time.Second))
		n++
	}
	for i := 0; i < 40; i++ {
		m.AddEvent(evt(t, string(rune('a'+i)), "t2", time.Duration(n)*time.Second))
		n++
	}

	found := false
	for _, e := range m.GetData() {
		if e.EventName() == "x" {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected \"x\" to survive lossy counting given its dominant frequency")
	}
}

func TestClone_DeepCopiesPolicyState(t *testing.T) {
	p, err := policy.NewSlidingWindowPolicy(5)
	if err != nil {
		t.Fatal(err)
	}
	m, err := New(handler.NewEventHandler(), p)
	if err != nil {
		t.Fatal(err)
	}
	m.AddEvent(evt(t, "a", "t1", 0))

	clone := m.Clone()
	clone.AddEvent(evt(t, "b", "t1", time.Second))

	if len(m.GetData()) != 1 {
		t.Errorf("source manager mutated by clone: %d events", len(m.GetData()))
	}
	if len(clone.GetData()) != 2 {
		t.Errorf("clone should have 2 events, got %d", len(clone.GetData()))
	}
}
