package panel

import (
	"errors"
	"testing"
	"time"

	"github.com/dumitru-stama/bark/internal/entry"
	"github.com/dumitru-stama/bark/internal/provider"
)

// fakeProvider is a minimal in-memory provider.Provider stub used only to
// exercise Panel's listing/cursor/selection logic in isolation.
type fakeProvider struct {
	listing map[string][]entry.Entry
	listErr error
}

func (f *fakeProvider) Info() provider.Info { return provider.Info{Kind: "fake"} }
func (f *fakeProvider) IsConnected() bool   { return true }
func (f *fakeProvider) Connect() error      { return nil }
func (f *fakeProvider) Disconnect()         {}
func (f *fakeProvider) ListDirectory(path string) ([]entry.Entry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listing[path], nil
}
func (f *fakeProvider) ReadFile(path string) ([]byte, error)     { return nil, nil }
func (f *fakeProvider) WriteFile(path string, data []byte) error { return nil }
func (f *fakeProvider) Delete(path string) error                 { return nil }
func (f *fakeProvider) DeleteRecursive(path string) error        { return nil }
func (f *fakeProvider) Rename(from, to string) error              { return nil }
func (f *fakeProvider) Mkdir(path string) error                   { return nil }
func (f *fakeProvider) CopyFile(from, to string) error            { return nil }
func (f *fakeProvider) SetAttributes(path string, mtime *time.Time, mode *uint32) error {
	return nil
}
func (f *fakeProvider) FreeSpace(path string) (uint64, bool)      { return 0, false }
func (f *fakeProvider) Home() string                              { return "/" }
func (f *fakeProvider) Normalize(path string) string              { return path }
func (f *fakeProvider) Parent(path string) string                 { return "/" }
func (f *fakeProvider) Join(base, name string) string             { return base + "/" + name }
func (f *fakeProvider) ToLocalPath(path string) (string, bool)    { return path, true }
func (f *fakeProvider) FromLocalPath(path string) (string, bool)  { return path, true }
func (f *fakeProvider) SetPassword(password string) error         { return nil }
func (f *fakeProvider) ShortLabel() (string, bool)                { return "", false }

var _ provider.Provider = (*fakeProvider)(nil)

func newTestPanel() (*Panel, *fakeProvider) {
	fp := &fakeProvider{listing: map[string][]entry.Entry{
		"/root": {
			{Name: "apple", Path: "/root/apple", IsDir: false},
			{Name: "Banana", Path: "/root/Banana", IsDir: true},
			{Name: "cherry", Path: "/root/cherry", IsDir: false},
		},
	}}
	p := New(fp, "/root")
	p.SetVisibleGeometry(2, 1)
	p.Refresh()
	return p, fp
}

func TestPanelRefreshPopulatesSortedOrder(t *testing.T) {
	p, _ := newTestPanel()
	if p.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", p.Len())
	}
	first, ok := p.EntryAt(0)
	if !ok || first.Name != "Banana" {
		t.Fatalf("EntryAt(0) = %+v, want Banana first (dirs-first)", first)
	}
}

func TestPanelRefreshErrorSetsError(t *testing.T) {
	fp := &fakeProvider{listErr: errors.New("boom")}
	p := New(fp, "/root")
	if err := p.Refresh(); err == nil {
		t.Fatal("expected error from Refresh")
	}
	if p.Error == "" {
		t.Fatal("expected Panel.Error to be set")
	}
}

func TestPanelCursorClampsWithinBounds(t *testing.T) {
	p, _ := newTestPanel()
	p.MoveUp(100)
	if p.Cursor != 0 {
		t.Fatalf("Cursor = %d, want 0 after overshoot MoveUp", p.Cursor)
	}
	p.MoveDown(100)
	if p.Cursor != p.Len()-1 {
		t.Fatalf("Cursor = %d, want %d after overshoot MoveDown", p.Cursor, p.Len()-1)
	}
}

func TestPanelHomeEnd(t *testing.T) {
	p, _ := newTestPanel()
	p.End()
	if p.Cursor != p.Len()-1 {
		t.Fatalf("End() cursor = %d, want %d", p.Cursor, p.Len()-1)
	}
	p.Home()
	if p.Cursor != 0 {
		t.Fatalf("Home() cursor = %d, want 0", p.Cursor)
	}
}

func TestPanelJumpToPrefix(t *testing.T) {
	p, _ := newTestPanel()
	p.Home()
	if !p.JumpToPrefix("ch") {
		t.Fatal("expected JumpToPrefix(\"ch\") to find cherry")
	}
	e, _ := p.Current()
	if e.Name != "cherry" {
		t.Fatalf("Current() = %q, want cherry", e.Name)
	}
	if p.JumpToPrefix("zzz") {
		t.Fatal("expected JumpToPrefix with no match to return false")
	}
}

func TestPanelToggleSelectMarksCursorEntry(t *testing.T) {
	p, _ := newTestPanel()
	p.Home()
	p.ToggleSelect()
	if !p.HasExplicitSelection() {
		t.Fatal("expected explicit selection after ToggleSelect")
	}
	sel := p.Selected()
	if len(sel) != 1 || sel[0].Name != "Banana" {
		t.Fatalf("Selected() = %+v, want [Banana]", sel)
	}
}

func TestPanelSelectedFallsBackToCursorWhenEmpty(t *testing.T) {
	p, _ := newTestPanel()
	p.MoveDown(1)
	sel := p.Selected()
	if len(sel) != 1 {
		t.Fatalf("Selected() without explicit marks should return the cursor entry, got %+v", sel)
	}
}

func TestPanelEnterExitTempMode(t *testing.T) {
	p, _ := newTestPanel()
	p.Home()
	synthetic := []entry.Entry{{Name: "match1"}, {Name: "match2"}}
	p.EnterTempMode("search results", synthetic)
	if !p.InTempMode() {
		t.Fatal("expected InTempMode() after EnterTempMode")
	}
	if p.Len() != 2 {
		t.Fatalf("Len() in temp mode = %d, want 2", p.Len())
	}
	if err := p.Refresh(); err != nil {
		t.Fatalf("Refresh() in temp mode should be a no-op, got error: %v", err)
	}
	if p.Len() != 2 {
		t.Fatal("Refresh() must not mutate temp-mode listing")
	}
	if err := p.ExitTempMode(); err != nil {
		t.Fatalf("ExitTempMode() error: %v", err)
	}
	if p.InTempMode() {
		t.Fatal("expected InTempMode() false after ExitTempMode")
	}
	if p.Path != "/root" {
		t.Fatalf("Path after ExitTempMode = %q, want /root", p.Path)
	}
}

func TestPanelArchivePushPop(t *testing.T) {
	p, fp := newTestPanel()
	p.Home()
	archiveFP := &fakeProvider{listing: map[string][]entry.Entry{
		"archive:/root/cherry": {{Name: "inner.txt"}},
	}}
	p.PushArchive("cherry", true, archiveFP, "archive:/root/cherry")
	if !p.InArchive() {
		t.Fatal("expected InArchive() true after PushArchive")
	}
	if p.Provider() != provider.Provider(archiveFP) {
		t.Fatal("expected provider swapped to archive provider")
	}
	if ok := p.PopArchive(); !ok {
		t.Fatal("expected PopArchive to succeed")
	}
	if p.InArchive() {
		t.Fatal("expected InArchive() false after PopArchive")
	}
	if p.Provider() != provider.Provider(fp) {
		t.Fatal("expected provider restored to original after PopArchive")
	}
	if p.Path != "/root" {
		t.Fatalf("Path after PopArchive = %q, want /root", p.Path)
	}
}

func TestPanelSetSortKeepsCursorOnSameEntry(t *testing.T) {
	p, _ := newTestPanel()
	p.Home()
	p.MoveDown(1) // cursor on the second sorted entry, apple
	cur, _ := p.Current()
	cfg := p.Sort
	cfg.Field = SortByExtension
	p.SetSort(cfg)
	after, _ := p.Current()
	if after.Path != cur.Path && after.Name != cur.Name {
		t.Fatalf("SetSort should try to keep cursor on same entry: before %+v, after %+v", cur, after)
	}
}
