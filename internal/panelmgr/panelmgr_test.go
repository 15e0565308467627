package panelmgr

import (
	"testing"

	"github.com/dumitru-stama/bark/internal/panel"
)

func newManager() *Manager {
	left := panel.New(nil, "/left")
	right := panel.New(nil, "/right")
	return New(left, right)
}

func TestManagerDefaultsToLeftActive(t *testing.T) {
	m := newManager()
	if m.Active() != Left {
		t.Fatalf("Active() = %v, want Left", m.Active())
	}
	if m.ActivePanel().Path != "/left" {
		t.Fatalf("ActivePanel().Path = %q, want /left", m.ActivePanel().Path)
	}
}

func TestManagerSetActive(t *testing.T) {
	m := newManager()
	m.SetActive(Right)
	if m.Active() != Right {
		t.Fatalf("Active() = %v, want Right", m.Active())
	}
	if m.ActivePanel().Path != "/right" {
		t.Fatalf("ActivePanel().Path = %q, want /right", m.ActivePanel().Path)
	}
	if m.InactivePanel().Path != "/left" {
		t.Fatalf("InactivePanel().Path = %q, want /left", m.InactivePanel().Path)
	}
}

func TestManagerSwapKeepsActiveSideFixed(t *testing.T) {
	m := newManager()
	m.SetActive(Left)
	m.Swap()
	if m.ActivePanel().Path != "/right" {
		t.Fatalf("after Swap, ActivePanel().Path = %q, want /right (panel moved, side stayed active)", m.ActivePanel().Path)
	}
}

func TestGitStatusCacheInvalidation(t *testing.T) {
	m := newManager()
	if !m.NeedsGitStatusRefresh(Left) {
		t.Fatal("expected fresh manager to need a git status refresh")
	}
	m.SetGitStatus(Left, "/left", map[string]string{"a.txt": "M"})
	if m.NeedsGitStatusRefresh(Left) {
		t.Fatal("expected cache to be fresh immediately after SetGitStatus")
	}
	m.Panel(Left).Path = "/left/sub"
	if !m.NeedsGitStatusRefresh(Left) {
		t.Fatal("expected path change to invalidate the cache")
	}
	m.InvalidateGitStatus(Left)
	cache := m.GitStatus(Left)
	if cache.Valid {
		t.Fatal("expected InvalidateGitStatus to clear Valid")
	}
}

func TestOppositeSide(t *testing.T) {
	if Left.Opposite() != Right {
		t.Fatal("Left.Opposite() should be Right")
	}
	if Right.Opposite() != Left {
		t.Fatal("Right.Opposite() should be Left")
	}
}
