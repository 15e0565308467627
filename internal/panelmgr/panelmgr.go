// Package panelmgr owns the two panels that make up Bark's dual-pane
// layout: which side is active, and a per-side git status cache that is
// invalidated whenever that side's path changes. Grounded on the
// teacher's own left/right split-pane bookkeeping in its app model
// (internal/app), which tracks an "active" pane index alongside two
// otherwise-independent child models.
package panelmgr

import "github.com/dumitru-stama/bark/internal/panel"

// Side identifies one of the two panels.
type Side int

const (
	Left Side = iota
	Right
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Left {
		return Right
	}
	return Left
}

// GitStatusCache holds the last-computed git status for a panel's path,
// plus the path it was computed for. A path change invalidates it; the
// renderer checks Valid before using Statuses.
type GitStatusCache struct {
	ForPath  string
	Statuses map[string]string // entry name -> porcelain status code
	Valid    bool
}

// Manager holds both panels and tracks which one is active.
type Manager struct {
	panels [2]*panel.Panel
	caches [2]GitStatusCache
	active Side
}

// New creates a Manager with the given left and right panels. Left
// starts active, matching the teacher's default-to-first-pane behavior.
func New(left, right *panel.Panel) *Manager {
	return &Manager{panels: [2]*panel.Panel{left, right}, active: Left}
}

// Panel returns the panel on the given side.
func (m *Manager) Panel(side Side) *panel.Panel { return m.panels[side] }

// Active returns the currently active side.
func (m *Manager) Active() Side { return m.active }

// ActivePanel returns the panel on the active side.
func (m *Manager) ActivePanel() *panel.Panel { return m.panels[m.active] }

// InactivePanel returns the panel on the non-active side.
func (m *Manager) InactivePanel() *panel.Panel { return m.panels[m.active.Opposite()] }

// SetActive switches which side is active.
func (m *Manager) SetActive(side Side) { m.active = side }

// Swap swaps which panel is shown on which side, keeping the active side
// pointed at the same physical side of the screen (so the cursor stays
// under the user's hand) rather than following the panel.
func (m *Manager) Swap() {
	m.panels[Left], m.panels[Right] = m.panels[Right], m.panels[Left]
	m.caches[Left], m.caches[Right] = m.caches[Right], m.caches[Left]
}

// InvalidateGitStatus marks the cache for side stale. Called whenever
// that panel's Path changes (navigation, refresh after an external
// change, archive push/pop).
func (m *Manager) InvalidateGitStatus(side Side) {
	m.caches[side] = GitStatusCache{}
}

// GitStatus returns the cache entry for side. Callers should check
// Valid and ForPath against the panel's current Path before trusting
// Statuses, since a cache computed for an earlier path stays in place
// until InvalidateGitStatus clears it or SetGitStatus replaces it.
func (m *Manager) GitStatus(side Side) GitStatusCache { return m.caches[side] }

// SetGitStatus installs a freshly computed status map for side, tagged
// with the path it was computed for.
func (m *Manager) SetGitStatus(side Side, forPath string, statuses map[string]string) {
	m.caches[side] = GitStatusCache{ForPath: forPath, Statuses: statuses, Valid: true}
}

// NeedsGitStatusRefresh reports whether side's cache is stale relative
// to its panel's current path.
func (m *Manager) NeedsGitStatusRefresh(side Side) bool {
	cache := m.caches[side]
	return !cache.Valid || cache.ForPath != m.panels[side].Path
}
