// Package panel implements the Panel component: cursor, scroll, sort,
// selection, view-mode, temp-mode, and archive-parent stacking over an
// owned provider.Provider. Grounded on the teacher's
// internal/plugins/filebrowser tree/cursor handling, generalized from a
// direct-os.File-walking bubbletea widget into a provider-driven
// capability consumer with no UI framework dependency.
package panel

import (
	"github.com/dumitru-stama/bark/internal/entry"
	"github.com/dumitru-stama/bark/internal/provider"
)

// ViewMode controls how many columns a panel renders.
type ViewMode int

const (
	Brief ViewMode = iota // two columns
	Full                  // one column with extra metadata
)

// SavedState is the (path, cursor, scroll) snapshot used to restore a
// panel after leaving temp mode or an archive.
type SavedState struct {
	Path   string
	Cursor int
	Scroll int
}

// ArchiveParent is the snapshot pushed when a panel dives into an
// archive, per spec.md §4.2 and the GLOSSARY. It is an arena-free,
// owned-value snapshot: no back-references into the prior provider.
type ArchiveParent struct {
	PriorPath    string
	EntryName    string // the archive file's name within PriorPath
	PriorCursor  int
	PriorScroll  int
	WasLocal     bool
	PriorProvider provider.Provider
}

// Panel is one of the two independent dual-pane views.
type Panel struct {
	Path     string
	Entries  []entry.Entry
	sorted   []int // permutation of Entries indices
	Cursor   int
	Scroll   int
	ViewMode ViewMode
	Sort     Config
	Error    string

	selection map[string]struct{}

	hiddenVisible bool

	tempMode    bool
	tempSaved   SavedState
	tempEntries []entry.Entry

	archiveStack []ArchiveParent

	provider provider.Provider

	visibleHeight int
	columns       int
}

// New creates a Panel rooted at path, owning prov.
func New(prov provider.Provider, path string) *Panel {
	return &Panel{
		Path:          path,
		provider:      prov,
		Sort:          DefaultConfig(),
		selection:     make(map[string]struct{}),
		hiddenVisible: false,
		visibleHeight: 1,
		columns:       1,
	}
}

// Provider returns the panel's owned provider.
func (p *Panel) Provider() provider.Provider { return p.provider }

// SetProvider replaces the owned provider (used when exiting an archive
// or connecting to a new source). The caller is responsible for having
// disconnected/stashed the prior provider first.
func (p *Panel) SetProvider(prov provider.Provider) { p.provider = prov }

// SetVisibleGeometry records the panel's rendered dimensions, used by
// cursor movement math (paging, Home/End) and the scroll-visibility
// invariant.
func (p *Panel) SetVisibleGeometry(height, columns int) {
	if height < 1 {
		height = 1
	}
	if columns < 1 {
		columns = 1
	}
	p.visibleHeight = height
	p.columns = p.columns0(columns)
	p.clampScroll()
}

func (p *Panel) columns0(columns int) int {
	if p.ViewMode == Full {
		return 1
	}
	return columns
}

// Refresh re-lists Path from the provider and re-sorts. It is a no-op in
// temp mode, per the Panel invariant in spec.md §3.
func (p *Panel) Refresh() error {
	if p.tempMode {
		return nil
	}
	entries, err := p.provider.ListDirectory(p.Path)
	if err != nil {
		p.Error = err.Error()
		return err
	}
	p.setEntries(entries)
	p.Error = ""
	return nil
}

func (p *Panel) setEntries(entries []entry.Entry) {
	visible := entries
	if !p.hiddenVisible {
		visible = make([]entry.Entry, 0, len(entries))
		for _, e := range entries {
			if e.IsParent() || !e.IsHidden {
				visible = append(visible, e)
			}
		}
	}
	p.Entries = visible
	p.resort()
	p.pruneSelection()
	p.clampCursor()
}

func (p *Panel) resort() {
	p.sorted = sortIndex(p.Entries, p.Sort)
}

// SetSort changes the sort configuration and re-sorts in place, trying
// to keep the cursor on the same entry (by path) — Sort(Sort(x)) = Sort(x)
// stability, per spec.md §8.
func (p *Panel) SetSort(cfg Config) {
	var currentPath string
	if e, ok := p.Current(); ok {
		currentPath = e.Path
	}
	p.Sort = cfg
	p.resort()
	if currentPath != "" {
		for i, idx := range p.sorted {
			if p.Entries[idx].Path == currentPath {
				p.Cursor = i
				break
			}
		}
	}
	p.clampCursor()
}

// ToggleHidden flips dotfile visibility and re-lists.
func (p *Panel) ToggleHidden() {
	p.hiddenVisible = !p.hiddenVisible
	if !p.tempMode {
		p.Refresh()
	}
}

func (p *Panel) HiddenVisible() bool { return p.hiddenVisible }

// Len returns the number of visible (sorted) entries.
func (p *Panel) Len() int { return len(p.sorted) }

// EntryAt returns the entry at sorted position i.
func (p *Panel) EntryAt(i int) (entry.Entry, bool) {
	if i < 0 || i >= len(p.sorted) {
		return entry.Entry{}, false
	}
	return p.Entries[p.sorted[i]], true
}

// Current returns the entry under the cursor.
func (p *Panel) Current() (entry.Entry, bool) { return p.EntryAt(p.Cursor) }

func (p *Panel) clampCursor() {
	if len(p.sorted) == 0 {
		p.Cursor = 0
		p.Scroll = 0
		return
	}
	if p.Cursor >= len(p.sorted) {
		p.Cursor = len(p.sorted) - 1
	}
	if p.Cursor < 0 {
		p.Cursor = 0
	}
	p.clampScroll()
}

// clampScroll restores the invariant scroll <= cursor < scroll+visibleItems.
func (p *Panel) clampScroll() {
	visibleItems := p.visibleHeight * p.columns
	if visibleItems < 1 {
		visibleItems = 1
	}
	if p.Cursor < p.Scroll {
		p.Scroll = p.Cursor
	}
	if p.Cursor >= p.Scroll+visibleItems {
		p.Scroll = p.Cursor - visibleItems + 1
	}
	if p.Scroll < 0 {
		p.Scroll = 0
	}
}

func (p *Panel) pruneSelection() {
	if len(p.selection) == 0 {
		return
	}
	valid := make(map[string]struct{}, len(p.selection))
	for _, e := range p.Entries {
		if _, ok := p.selection[e.Path]; ok && !e.IsParent() {
			valid[e.Path] = struct{}{}
		}
	}
	p.selection = valid
}

// ToggleSelect adds or removes the entry under the cursor from the
// selection set. Selecting ".." is always a no-op, per spec.md §3.
func (p *Panel) ToggleSelect() {
	e, ok := p.Current()
	if !ok || e.IsParent() {
		return
	}
	if _, selected := p.selection[e.Path]; selected {
		delete(p.selection, e.Path)
	} else {
		p.selection[e.Path] = struct{}{}
	}
}

// Selected returns the set of selected paths. If none are selected, the
// cursor entry (if any, and not "..") is the implicit single selection —
// matching Midnight-Commander-lineage UX where an unmarked file under the
// cursor is still a valid operation target.
func (p *Panel) Selected() []entry.Entry {
	if len(p.selection) == 0 {
		if e, ok := p.Current(); ok && !e.IsParent() {
			return []entry.Entry{e}
		}
		return nil
	}
	out := make([]entry.Entry, 0, len(p.selection))
	for _, e := range p.Entries {
		if _, ok := p.selection[e.Path]; ok {
			out = append(out, e)
		}
	}
	return out
}

func (p *Panel) ClearSelection() { p.selection = make(map[string]struct{}) }

func (p *Panel) HasExplicitSelection() bool { return len(p.selection) > 0 }
