package keymap

import "testing"

func TestResolveFallsBackToGlobal(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	if cmd := r.Resolve("normal", "q"); cmd != "quit" {
		t.Fatalf("expected quit via global fallback, got %q", cmd)
	}
	if cmd := r.Resolve("normal", "j"); cmd != "cursor-down" {
		t.Fatalf("expected cursor-down, got %q", cmd)
	}
}

func TestApplyOverridesWins(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	ApplyOverrides(r, map[string]string{"copy": "c"})
	if cmd := r.Resolve("normal", "c"); cmd != "copy" {
		t.Fatalf("expected override to bind c to copy, got %q", cmd)
	}
	if cmd := r.Resolve("normal", "f5"); cmd != "copy" {
		t.Fatalf("expected default f5 binding to remain, got %q", cmd)
	}
}

func TestUnknownKeyResolvesEmpty(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	if cmd := r.Resolve("normal", "ctrl+z"); cmd != "" {
		t.Fatalf("expected no binding, got %q", cmd)
	}
}
