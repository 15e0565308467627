package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func writeTestZip(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "sample.zip")
	f, err := os.Create(zipPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	zw := zip.NewWriter(f)
	w, err := zw.Create("dir/a.txt")
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte("hello"))
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return zipPath
}

func TestOpenZipListsNestedEntry(t *testing.T) {
	p, err := Open(writeTestZip(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	root, err := p.ListDirectory("/")
	if err != nil {
		t.Fatalf("ListDirectory(/): %v", err)
	}
	foundDir := false
	for _, e := range root {
		if e.Name == "dir" && e.IsDir {
			foundDir = true
		}
	}
	if !foundDir {
		t.Fatalf("expected a 'dir' entry at root, got %+v", root)
	}

	children, err := p.ListDirectory("/dir")
	if err != nil {
		t.Fatalf("ListDirectory(/dir): %v", err)
	}
	var gotFile bool
	for _, e := range children {
		if e.Name == "a.txt" {
			gotFile = true
			if e.Size != 5 {
				t.Fatalf("expected size 5, got %d", e.Size)
			}
		}
	}
	if !gotFile {
		t.Fatalf("expected a.txt under /dir, got %+v", children)
	}

	data, err := p.ReadFile("/dir/a.txt")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("ReadFile = %q, want hello", data)
	}
}

func TestWriteFileIsNotSupported(t *testing.T) {
	p, err := Open(writeTestZip(t))
	if err != nil {
		t.Fatal(err)
	}
	if err := p.WriteFile("/x.txt", []byte("x")); err == nil {
		t.Fatal("expected write to a read-only archive provider to fail")
	}
}
