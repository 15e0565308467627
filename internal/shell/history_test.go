package shell

import "testing"

func TestAddDedupesAgainstLastEntry(t *testing.T) {
	h := &History{}
	h.Add("ls")
	h.Add("ls")
	if len(h.entries) != 1 {
		t.Fatalf("expected dedup, got %v", h.entries)
	}
	h.Add("pwd")
	h.Add("ls")
	if len(h.entries) != 3 {
		t.Fatalf("expected no dedup across non-adjacent repeat, got %v", h.entries)
	}
}

func TestBrowsePrevNextRestoresHeldInput(t *testing.T) {
	h := &History{}
	h.Add("one")
	h.Add("two")
	h.BeginBrowse("typing...")

	v, ok := h.Prev()
	if !ok || v != "two" {
		t.Fatalf("Prev() = %q, %v, want two, true", v, ok)
	}
	v, ok = h.Prev()
	if !ok || v != "one" {
		t.Fatalf("Prev() = %q, %v, want one, true", v, ok)
	}
	if _, ok := h.Prev(); ok {
		t.Fatal("expected Prev() to fail at oldest entry")
	}

	v, ok = h.Next()
	if !ok || v != "two" {
		t.Fatalf("Next() = %q, %v, want two, true", v, ok)
	}
	v, ok = h.Next()
	if !ok || v != "typing..." {
		t.Fatalf("Next() past newest = %q, %v, want held input", v, ok)
	}
}

func TestMaxHistoryCapsOldestDropped(t *testing.T) {
	h := &History{}
	for i := 0; i < MaxHistory+10; i++ {
		h.Add(string(rune('a' + i%26)))
	}
	if len(h.entries) != MaxHistory {
		t.Fatalf("expected cap at %d, got %d", MaxHistory, len(h.entries))
	}
}
