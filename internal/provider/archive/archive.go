// Package archive implements a read-only provider.Provider over
// zip/tar/tar.gz files, mounted by Open. Nothing in internal/app or
// internal/input calls Open, so panels do not enter archives through
// this package. Grounded on the teacher's
// internal/plugins/filebrowser path-handling idioms (an entry is
// addressed as a provider-relative path, never an OS path), the
// archive backend itself has no teacher analogue — the pack carries no
// third-party archive library, so this is a justified stdlib-only
// provider built on archive/zip, archive/tar, and compress/gzip, which
// is the standard idiom for this concern in Go.
package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"github.com/dumitru-stama/bark/internal/bkerr"
	"github.com/dumitru-stama/bark/internal/entry"
	"github.com/dumitru-stama/bark/internal/provider"
)

// node is one synthetic file or directory inside the mounted archive.
type node struct {
	entry    entry.Entry
	data     []byte // nil for directories
	hasData  bool
}

// Provider is a read-only in-memory snapshot of an archive's contents,
// fully decompressed into nodes at mount time; the whole archive stays
// in memory while mounted.
type Provider struct {
	archivePath string
	kind        string // "zip" | "tar" | "tar.gz"
	nodes       map[string]*node // path (e.g. "/a/b.txt") -> node
	children    map[string][]string
}

// Open reads archivePath fully and returns a mounted Provider rooted at "/".
func Open(archivePath string) (*Provider, error) {
	p := &Provider{
		archivePath: archivePath,
		nodes:       map[string]*node{},
		children:    map[string][]string{},
	}
	p.ensureDir("/")

	lower := strings.ToLower(archivePath)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		p.kind = "zip"
		if err := p.loadZip(archivePath); err != nil {
			return nil, err
		}
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		p.kind = "tar.gz"
		if err := p.loadTar(archivePath, true); err != nil {
			return nil, err
		}
	case strings.HasSuffix(lower, ".tar"):
		p.kind = "tar"
		if err := p.loadTar(archivePath, false); err != nil {
			return nil, err
		}
	default:
		return nil, bkerr.New(bkerr.NotSupported, "open", archivePath, fmt.Errorf("unrecognized archive extension"))
	}
	return p, nil
}

func (p *Provider) loadZip(path string) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return bkerr.New(bkerr.IO, "open_archive", path, err)
	}
	defer r.Close()
	for _, f := range r.File {
		name := "/" + strings.TrimSuffix(f.Name, "/")
		if f.FileInfo().IsDir() {
			p.ensureDir(name)
			continue
		}
		data, err := readZipFile(f)
		if err != nil {
			return bkerr.New(bkerr.IO, "read_archive_entry", f.Name, err)
		}
		p.addFile(name, data, f.Modified)
	}
	return nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (p *Provider) loadTar(filePath string, gzipped bool) error {
	f, err := os.Open(filePath)
	if err != nil {
		return bkerr.New(bkerr.IO, "open_archive", filePath, err)
	}
	defer f.Close()

	var r io.Reader = f
	if gzipped {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return bkerr.New(bkerr.IO, "open_archive", filePath, err)
		}
		defer gz.Close()
		r = gz
	}

	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return bkerr.New(bkerr.IO, "read_archive_entry", filePath, err)
		}
		name := "/" + strings.TrimSuffix(hdr.Name, "/")
		switch hdr.Typeflag {
		case tar.TypeDir:
			p.ensureDir(name)
		case tar.TypeReg:
			data, err := io.ReadAll(tr)
			if err != nil {
				return bkerr.New(bkerr.IO, "read_archive_entry", hdr.Name, err)
			}
			p.addFile(name, data, hdr.ModTime)
		}
	}
	return nil
}

func (p *Provider) ensureDir(dir string) {
	dir = path.Clean(dir)
	if _, ok := p.nodes[dir]; ok {
		return
	}
	name := path.Base(dir)
	if dir == "/" {
		name = "/"
	}
	p.nodes[dir] = &node{entry: entry.Entry{Name: name, Path: dir, IsDir: true}}
	if dir != "/" {
		parent := path.Dir(dir)
		p.ensureDir(parent)
		p.children[parent] = append(p.children[parent], dir)
	}
}

func (p *Provider) addFile(filePath string, data []byte, modTime time.Time) {
	filePath = path.Clean(filePath)
	parent := path.Dir(filePath)
	p.ensureDir(parent)
	p.nodes[filePath] = &node{
		entry: entry.Entry{
			Name:          path.Base(filePath),
			Path:          filePath,
			Size:          int64(len(data)),
			Modified:      modTime,
			ModifiedKnown: !modTime.IsZero(),
		},
		data:    data,
		hasData: true,
	}
	p.children[parent] = append(p.children[parent], filePath)
}

func (p *Provider) Info() provider.Info {
	return provider.Info{Name: path.Base(p.archivePath), Description: p.archivePath, Kind: "archive", Icon: "A"}
}

func (p *Provider) IsConnected() bool { return true }
func (p *Provider) Connect() error    { return nil }
func (p *Provider) Disconnect()       {}

func (p *Provider) ListDirectory(dir string) ([]entry.Entry, error) {
	dir = path.Clean(dir)
	n, ok := p.nodes[dir]
	if !ok || !n.entry.IsDir {
		return nil, bkerr.New(bkerr.NotFound, "list_directory", dir, nil)
	}
	var out []entry.Entry
	if dir != "/" {
		out = append(out, entry.Parent())
	}
	for _, childPath := range p.children[dir] {
		out = append(out, p.nodes[childPath].entry)
	}
	return out, nil
}

func (p *Provider) ReadFile(filePath string) ([]byte, error) {
	n, ok := p.nodes[path.Clean(filePath)]
	if !ok || !n.hasData {
		return nil, bkerr.New(bkerr.NotFound, "read_file", filePath, nil)
	}
	return n.data, nil
}

func (p *Provider) WriteFile(filePath string, data []byte) error {
	return bkerr.New(bkerr.NotSupported, "write_file", filePath, fmt.Errorf("archive provider is read-only"))
}
func (p *Provider) Delete(filePath string) error {
	return bkerr.New(bkerr.NotSupported, "delete", filePath, fmt.Errorf("archive provider is read-only"))
}
func (p *Provider) DeleteRecursive(filePath string) error {
	return bkerr.New(bkerr.NotSupported, "delete_recursive", filePath, fmt.Errorf("archive provider is read-only"))
}
func (p *Provider) Rename(from, to string) error {
	return bkerr.New(bkerr.NotSupported, "rename", from, fmt.Errorf("archive provider is read-only"))
}
func (p *Provider) Mkdir(dir string) error {
	return bkerr.New(bkerr.NotSupported, "mkdir", dir, fmt.Errorf("archive provider is read-only"))
}
func (p *Provider) CopyFile(from, to string) error {
	return bkerr.New(bkerr.NotSupported, "copy_file", to, fmt.Errorf("archive provider is read-only"))
}
func (p *Provider) SetAttributes(filePath string, mtime *time.Time, mode *uint32) error {
	return bkerr.New(bkerr.NotSupported, "set_attributes", filePath, fmt.Errorf("archive provider is read-only"))
}
func (p *Provider) FreeSpace(string) (uint64, bool) { return 0, false }
func (p *Provider) Home() string                    { return "/" }
func (p *Provider) Normalize(filePath string) string { return path.Clean(filePath) }
func (p *Provider) Parent(filePath string) string {
	if filePath == "/" {
		return "/"
	}
	return path.Dir(filePath)
}
func (p *Provider) Join(base, name string) string         { return path.Join(base, name) }
func (p *Provider) ToLocalPath(string) (string, bool)      { return "", false }
func (p *Provider) FromLocalPath(string) (string, bool)    { return "", false }
func (p *Provider) SetPassword(string) error               { return nil }
func (p *Provider) ShortLabel() (string, bool)              { return path.Base(p.archivePath), true }

// KnownSize reports the uncompressed size recorded at mount time,
// satisfying provider.Sized so the recursive-size walker doesn't need
// to re-read archive entries.
func (p *Provider) KnownSize(filePath string) (int64, bool) {
	n, ok := p.nodes[path.Clean(filePath)]
	if !ok {
		return 0, false
	}
	return n.entry.Size, true
}

var (
	_ provider.Provider = (*Provider)(nil)
	_ provider.Sized    = (*Provider)(nil)
)
