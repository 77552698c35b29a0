package handler

import (
	"testing"
	"time"

	"github.com/pithecene-io/memsketch/types"
	"github.com/pithecene-io/memsketch/unit"
)

func mustEvent(t *testing.T, name, caseID string, offset time.Duration) types.BEvent {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return types.NewBEvent(name, caseID, "proc", base.Add(offset))
}

func TestEventHandler_RoundTrip(t *testing.T) {
	h := NewEventHandler()
	e := mustEvent(t, "submit", "case-1", 0)

	u := h.Convert(e)
	if h.Merge([]unit.Unit{u, u}) != nil {
		t.Error("EventHandler.Merge should always return nil")
	}

	back := h.ConvertBack([]unit.Unit{u})
	if len(back) != 1 || back[0] != e {
		t.Errorf("ConvertBack() = %v, want [%v]", back, e)
	}
}

func TestDfrHandler_MergeClosesOpenPair(t *testing.T) {
	h := NewDfrHandler()
	e1 := mustEvent(t, "submit", "case-1", 0)
	e2 := mustEvent(t, "approve", "case-1", time.Second)

	open := h.Convert(e1)
	next := h.Convert(e2)

	merged := h.Merge([]unit.Unit{open, next})
	if len(merged) != 2 {
		t.Fatalf("expected 2 units back (closed pair + new open pair), got %d", len(merged))
	}
	closed := merged[0].(*unit.DfrUnit)
	if closed.First.EventName() != "submit" || closed.Second.EventName() != "approve" {
		t.Errorf("closed pair = (%v, %v), want (submit, approve)", closed.First, closed.Second)
	}
	reopened := merged[1].(*unit.DfrUnit)
	if reopened.First.EventName() != "approve" || reopened.Second != nil {
		t.Errorf("reopened pair should carry approve as its open first half")
	}
}

func TestDfrHandler_ConvertBackDeduplicates(t *testing.T) {
	h := NewDfrHandler()
	e1 := mustEvent(t, "submit", "case-1", 0)
	e2 := mustEvent(t, "approve", "case-1", time.Second)

	pairA := unit.NewDfrUnit(&e1, &e2)
	pairB := unit.NewDfrUnit(&e2, nil)

	back := h.ConvertBack([]unit.Unit{pairA, pairB})
	if len(back) != 2 {
		t.Fatalf("expected 2 deduplicated events, got %d: %v", len(back), back)
	}
}

func TestTraceHandler_MergeAppends(t *testing.T) {
	h := NewTraceHandler()
	e1 := mustEvent(t, "submit", "case-1", 0)
	e2 := mustEvent(t, "approve", "case-1", time.Second)

	first := h.Convert(e1)
	second := h.Convert(e2)

	merged := h.Merge([]unit.Unit{first, second})
	if len(merged) != 1 {
		t.Fatalf("expected 1 merged trace, got %d", len(merged))
	}
	trace := merged[0].(*unit.TraceUnit)
	if len(trace.Events) != 2 || trace.Events[0].EventName() != "submit" || trace.Events[1].EventName() != "approve" {
		t.Errorf("trace events = %v, want [submit approve]", trace.Events)
	}
}

func TestVariantHandler_MergeAppends(t *testing.T) {
	h := NewVariantHandler()
	e1 := mustEvent(t, "submit", "case-1", 0)
	e2 := mustEvent(t, "submit", "case-1", time.Second)

	first := h.Convert(e1)
	second := h.Convert(e2)

	merged := h.Merge([]unit.Unit{first, second})
	if len(merged) != 1 {
		t.Fatalf("expected 1 merged variant, got %d", len(merged))
	}
	variant := merged[0].(*unit.VariantUnit)
	if len(variant.Events) != 2 {
		t.Errorf("variant events = %v, want 2 events", variant.Events)
	}
}

func TestMerge_WrongArityReturnsNil(t *testing.T) {
	e := mustEvent(t, "submit", "case-1", 0)
	handlers := []Handler{NewDfrHandler(), NewTraceHandler(), NewVariantHandler()}
	for _, h := range handlers {
		u := h.Convert(e)
		if got := h.Merge([]unit.Unit{u}); got != nil {
			t.Errorf("%T.Merge with 1 unit should return nil, got %v", h, got)
		}
		if got := h.Merge([]unit.Unit{u, u, u}); got != nil {
			t.Errorf("%T.Merge with 3 units should return nil, got %v", h, got)
		}
	}
}
