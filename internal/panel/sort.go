package panel

import (
	"sort"
	"strings"

	"github.com/dumitru-stama/bark/internal/entry"
)

// Field is the sort key a panel is ordered by.
type Field int

const (
	SortByName Field = iota
	SortBySize
	SortByModified
	SortByExtension
)

// Config controls how a panel's entries are ordered.
type Config struct {
	Field         Field
	Descending    bool
	DirsFirst     bool
	UppercaseFirst bool
}

// DefaultConfig matches the teacher's default file-browser ordering:
// directories first, then name ascending within UppercaseFirst's tiers
// (dot-names, then uppercase, then the rest).
func DefaultConfig() Config {
	return Config{Field: SortByName, DirsFirst: true, UppercaseFirst: true}
}

// tier buckets a name into the uppercase-first ordering tiers described in
// spec.md §4.2: dot-prefix < uppercase-letter < other.
func tier(name string) int {
	if name == "" {
		return 2
	}
	r := rune(name[0])
	switch {
	case r == '.':
		return 0
	case r >= 'A' && r <= 'Z':
		return 1
	default:
		return 2
	}
}

// sortIndex computes a stable permutation of entries according to cfg.
// ".." always sorts to position 0 when present, regardless of direction,
// per the panel invariants in spec.md §3 and §8.
func sortIndex(entries []entry.Entry, cfg Config) []int {
	n := len(entries)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	parentPos := -1
	for i, e := range entries {
		if e.IsParent() {
			parentPos = i
			break
		}
	}

	less := func(a, b int) bool {
		ea, eb := entries[a], entries[b]

		if cfg.DirsFirst && ea.IsDir != eb.IsDir {
			return ea.IsDir
		}

		switch cfg.Field {
		case SortByName:
			return nameLess(ea.Name, eb.Name, cfg.UppercaseFirst, cfg.Descending)
		case SortBySize:
			if ea.Size != eb.Size {
				if cfg.Descending {
					return ea.Size > eb.Size
				}
				return ea.Size < eb.Size
			}
		case SortByModified:
			if !ea.Modified.Equal(eb.Modified) {
				if cfg.Descending {
					return ea.Modified.After(eb.Modified)
				}
				return ea.Modified.Before(eb.Modified)
			}
		case SortByExtension:
			extA, extB := extOf(ea.Name), extOf(eb.Name)
			if extA != extB {
				if cfg.Descending {
					return extA > extB
				}
				return extA < extB
			}
		}

		// Name is always the tertiary tie-break, ascending regardless of
		// the primary field's direction.
		return nameLess(ea.Name, eb.Name, cfg.UppercaseFirst, false)
	}

	sort.SliceStable(idx, func(i, j int) bool { return less(idx[i], idx[j]) })

	if parentPos >= 0 {
		// Move ".." to position 0 without disturbing the relative order
		// of everything else.
		reordered := make([]int, 0, n)
		reordered = append(reordered, parentPos)
		for _, i := range idx {
			if i != parentPos {
				reordered = append(reordered, i)
			}
		}
		idx = reordered
	}

	return idx
}

func extOf(name string) string {
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		return strings.ToLower(name[i+1:])
	}
	return ""
}

func nameLess(a, b string, uppercaseFirst, descending bool) bool {
	if uppercaseFirst {
		ta, tb := tier(a), tier(b)
		if ta != tb {
			return ta < tb
		}
	}
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		if descending {
			return la > lb
		}
		return la < lb
	}
	if descending {
		return a > b
	}
	return a < b
}
