package panel

import (
	"strings"

	"github.com/dumitru-stama/bark/internal/entry"
	"github.com/dumitru-stama/bark/internal/provider"
)

// MoveUp/MoveDown/PageUp/PageDown/Home/End implement the cursor movement
// algorithms from spec.md §4.2. Brief mode lays entries out column-major
// (top-to-bottom within a column, then next column), so vertical movement
// in Brief mode steps by 1 row and wraps at the row boundary identically
// to Full mode; only PageUp/PageDown's stride differs by column count.

func (p *Panel) MoveUp(n int) {
	if n < 1 {
		n = 1
	}
	p.Cursor -= n
	p.clampCursor()
}

func (p *Panel) MoveDown(n int) {
	if n < 1 {
		n = 1
	}
	p.Cursor += n
	p.clampCursor()
}

func (p *Panel) PageUp() {
	stride := p.visibleHeight * p.columns
	if stride < 1 {
		stride = 1
	}
	p.MoveUp(stride)
}

func (p *Panel) PageDown() {
	stride := p.visibleHeight * p.columns
	if stride < 1 {
		stride = 1
	}
	p.MoveDown(stride)
}

func (p *Panel) Home() {
	p.Cursor = 0
	p.clampCursor()
}

func (p *Panel) End() {
	if len(p.sorted) == 0 {
		p.Cursor = 0
	} else {
		p.Cursor = len(p.sorted) - 1
	}
	p.clampCursor()
}

// MoveLeft/MoveRight step by one column's worth of rows in Brief mode; in
// Full mode they are no-ops since there is only one column.
func (p *Panel) MoveLeft() {
	if p.columns <= 1 {
		return
	}
	p.MoveUp(p.visibleHeight)
}

func (p *Panel) MoveRight() {
	if p.columns <= 1 {
		return
	}
	p.MoveDown(p.visibleHeight)
}

// JumpToPrefix moves the cursor to the first visible entry (searching
// forward from just after the cursor, wrapping once) whose name begins
// with prefix, case-insensitively. Returns false if nothing matched.
func (p *Panel) JumpToPrefix(prefix string) bool {
	if prefix == "" || len(p.sorted) == 0 {
		return false
	}
	lower := strings.ToLower(prefix)
	n := len(p.sorted)
	for step := 1; step <= n; step++ {
		i := (p.Cursor + step) % n
		e := p.Entries[p.sorted[i]]
		if strings.HasPrefix(strings.ToLower(e.Name), lower) {
			p.Cursor = i
			p.clampScroll()
			return true
		}
	}
	return false
}

// EnterTempMode swaps the panel into a synthetic, non-refreshing listing
// (used for find-files results and plugin-provided virtual listings).
// Refresh() becomes a no-op until ExitTempMode restores the prior state,
// per the Panel invariant in spec.md §3.
func (p *Panel) EnterTempMode(label string, entries []entry.Entry) {
	if !p.tempMode {
		p.tempSaved = SavedState{Path: p.Path, Cursor: p.Cursor, Scroll: p.Scroll}
	}
	p.tempMode = true
	p.Path = label
	p.tempEntries = entries
	p.setEntries(entries)
}

// InTempMode reports whether the panel currently shows a synthetic
// listing rather than a live directory.
func (p *Panel) InTempMode() bool { return p.tempMode }

// ExitTempMode restores the panel to the directory it was showing before
// EnterTempMode, then refreshes it from the provider.
func (p *Panel) ExitTempMode() error {
	if !p.tempMode {
		return nil
	}
	p.tempMode = false
	p.tempEntries = nil
	p.Path = p.tempSaved.Path
	if err := p.Refresh(); err != nil {
		return err
	}
	p.Cursor = p.tempSaved.Cursor
	p.Scroll = p.tempSaved.Scroll
	p.clampCursor()
	return nil
}

// PushArchive records the panel's current (non-archive) location and
// switches it to browsing inside an archive, owning archiveProvider
// mounted at mountPath.
func (p *Panel) PushArchive(entryName string, wasLocal bool, archiveProvider provider.Provider, mountPath string) {
	p.archiveStack = append(p.archiveStack, ArchiveParent{
		PriorPath:     p.Path,
		EntryName:     entryName,
		PriorCursor:   p.Cursor,
		PriorScroll:   p.Scroll,
		WasLocal:      wasLocal,
		PriorProvider: p.provider,
	})
	p.provider = archiveProvider
	p.Path = mountPath
	p.ClearSelection()
}

// InArchive reports whether the panel is currently browsing inside one
// or more nested archives.
func (p *Panel) InArchive() bool { return len(p.archiveStack) > 0 }

// ArchiveDepth returns how many archives deep the panel is nested.
func (p *Panel) ArchiveDepth() int { return len(p.archiveStack) }

// PopArchive leaves the innermost archive, restoring the provider and
// location that were active before PushArchive. Returns false if the
// panel was not inside an archive.
func (p *Panel) PopArchive() bool {
	if len(p.archiveStack) == 0 {
		return false
	}
	top := p.archiveStack[len(p.archiveStack)-1]
	p.archiveStack = p.archiveStack[:len(p.archiveStack)-1]
	p.provider = top.PriorProvider
	p.Path = top.PriorPath
	p.ClearSelection()
	if err := p.Refresh(); err == nil {
		p.Cursor = top.PriorCursor
		p.Scroll = top.PriorScroll
		p.clampCursor()
	}
	return true
}
