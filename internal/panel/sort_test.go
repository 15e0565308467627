package panel

import (
	"testing"
	"time"

	"github.com/dumitru-stama/bark/internal/entry"
)

func names(entries []entry.Entry, idx []int) []string {
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = entries[j].Name
	}
	return out
}

func TestSortIndexDirsFirstUppercaseFirst(t *testing.T) {
	entries := []entry.Entry{
		{Name: "zeta.txt", IsDir: false},
		{Name: "Banana", IsDir: true},
		{Name: ".hidden", IsDir: false},
		{Name: "apple", IsDir: false},
		{Name: "Cherry", IsDir: false},
	}
	idx := sortIndex(entries, DefaultConfig())
	got := names(entries, idx)
	want := []string{"Banana", ".hidden", "Cherry", "apple", "zeta.txt"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sortIndex order = %v, want %v", got, want)
		}
	}
}

func TestSortIndexParentAlwaysFirst(t *testing.T) {
	entries := []entry.Entry{
		{Name: "apple", IsDir: false},
		entry.Parent(),
		{Name: "Banana", IsDir: true},
	}
	cfg := DefaultConfig()
	cfg.Descending = true
	idx := sortIndex(entries, cfg)
	if entries[idx[0]].Name != entry.ParentName {
		t.Fatalf("parent entry must sort first regardless of direction, got %v", names(entries, idx))
	}
}

func TestSortIndexSizeDescendingTieBreaksByNameAscending(t *testing.T) {
	entries := []entry.Entry{
		{Name: "b.txt", Size: 10},
		{Name: "a.txt", Size: 10},
		{Name: "c.txt", Size: 20},
	}
	cfg := Config{Field: SortBySize, Descending: true}
	idx := sortIndex(entries, cfg)
	got := names(entries, idx)
	want := []string{"c.txt", "a.txt", "b.txt"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("size-desc order = %v, want %v", got, want)
		}
	}
}

func TestSortIndexModifiedAscending(t *testing.T) {
	now := time.Unix(1700000000, 0)
	entries := []entry.Entry{
		{Name: "new", Modified: now.Add(time.Hour)},
		{Name: "old", Modified: now},
	}
	idx := sortIndex(entries, Config{Field: SortByModified})
	got := names(entries, idx)
	if got[0] != "old" || got[1] != "new" {
		t.Fatalf("modified-asc order = %v, want [old new]", got)
	}
}

func TestSortIndexIsStableUnderRepeatedApplication(t *testing.T) {
	entries := []entry.Entry{
		{Name: "a", IsDir: true},
		{Name: "b", IsDir: true},
		{Name: "c", IsDir: false},
	}
	cfg := DefaultConfig()
	first := sortIndex(entries, cfg)
	second := sortIndex(entries, cfg)
	if len(first) != len(second) {
		t.Fatalf("length mismatch")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("sortIndex is not idempotent: %v vs %v", first, second)
		}
	}
}

func TestNameLessUppercaseTierBeforeLowercase(t *testing.T) {
	if !nameLess("Banana", "apple", true, false) {
		t.Fatal("uppercase-first should order 'Banana' before 'apple'")
	}
	if nameLess("apple", "Banana", true, false) {
		t.Fatal("uppercase-first should not order 'apple' before 'Banana'")
	}
}

func TestNameLessDescendingReversesWithinTier(t *testing.T) {
	if !nameLess("b", "a", false, true) {
		t.Fatal("descending name compare should put 'b' before 'a'")
	}
}

func TestExtOf(t *testing.T) {
	cases := map[string]string{
		"file.TXT":  "txt",
		"archive.tar.gz": "gz",
		"noext":     "",
		".hidden":   "",
	}
	for name, want := range cases {
		if got := extOf(name); got != want {
			t.Errorf("extOf(%q) = %q, want %q", name, got, want)
		}
	}
}
