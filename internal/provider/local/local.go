// Package local implements provider.Provider over the OS filesystem.
// It is grounded on the teacher's internal/plugins/filebrowser (tree
// listing, path validation, and file-op helpers in operations.go),
// generalized from a bubbletea-widget-local concern into a standalone
// capability object that has no UI dependency at all.
package local

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/dumitru-stama/bark/internal/bkerr"
	"github.com/dumitru-stama/bark/internal/entry"
	"github.com/dumitru-stama/bark/internal/provider"
)

// Provider browses the local OS filesystem rooted nowhere in particular;
// paths are OS-native absolute paths.
type Provider struct {
	root string // "" unless this instance is scoped to a subtree
}

// New returns a Provider with no root restriction.
func New() *Provider { return &Provider{} }

// NewRooted returns a Provider that refuses to list above root. Nothing
// in this module constructs one.
func NewRooted(root string) *Provider {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	return &Provider{root: abs}
}

func (p *Provider) Info() provider.Info {
	return provider.Info{Name: "Local", Description: "Local filesystem", Kind: "local", Icon: "L"}
}

func (p *Provider) IsConnected() bool { return true }
func (p *Provider) Connect() error    { return nil }
func (p *Provider) Disconnect()       {}

func (p *Provider) withinRoot(path string) error {
	if p.root == "" {
		return nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return bkerr.New(bkerr.IO, "path", path, err)
	}
	rel, err := filepath.Rel(p.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return bkerr.New(bkerr.PermissionDenied, "path", path, fmt.Errorf("outside root %s", p.root))
	}
	return nil
}

func classify(op, path string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case os.IsNotExist(err):
		return bkerr.New(bkerr.NotFound, op, path, err)
	case os.IsPermission(err):
		return bkerr.New(bkerr.PermissionDenied, op, path, err)
	case os.IsExist(err):
		return bkerr.New(bkerr.AlreadyExists, op, path, err)
	default:
		var perr *os.PathError
		if e, ok := err.(*os.PathError); ok {
			perr = e
		}
		_ = perr
		return bkerr.New(bkerr.IO, op, path, err)
	}
}

// ListDirectory lists path's immediate children. The synthesized ".."
// row is prepended unless path is the filesystem root ("/" or a drive
// root on Windows).
func (p *Provider) ListDirectory(path string) ([]entry.Entry, error) {
	if err := p.withinRoot(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, classify("list_directory", path, err)
	}
	defer f.Close()

	infos, err := f.Readdir(-1)
	if err != nil {
		return nil, classify("list_directory", path, err)
	}

	out := make([]entry.Entry, 0, len(infos)+1)
	if !isFSRoot(path) {
		out = append(out, entry.Parent())
	}
	for _, fi := range infos {
		out = append(out, entryFromFileInfo(path, fi))
	}
	return out, nil
}

func isFSRoot(path string) bool {
	clean := filepath.Clean(path)
	if runtime.GOOS == "windows" {
		return filepath.Dir(clean) == clean
	}
	return clean == "/"
}

func entryFromFileInfo(dir string, fi os.FileInfo) entry.Entry {
	name := fi.Name()
	full := filepath.Join(dir, name)
	e := entry.Entry{
		Name:          name,
		Path:          full,
		IsDir:         fi.IsDir(),
		Size:          fi.Size(),
		Modified:      fi.ModTime(),
		ModifiedKnown: true,
		IsHidden:      isHiddenName(name),
		Permissions:   uint32(fi.Mode().Perm()),
	}
	if fi.Mode()&os.ModeSymlink != 0 {
		e.IsSymlink = true
		if target, err := os.Readlink(full); err == nil {
			e.SymlinkTarget = target
			e.HasSymlinkDest = true
			if st, err := os.Stat(full); err == nil {
				e.IsDir = st.IsDir()
			}
		}
	}
	if owner, group, ok := ownerGroup(fi); ok {
		e.Owner, e.Group = owner, group
	}
	return e
}

func isHiddenName(name string) bool {
	if runtime.GOOS == "windows" {
		return false // hidden-attribute detection is platform specific; handled by a collaborator
	}
	return strings.HasPrefix(name, ".")
}

// ownerGroup resolves numeric uid/gid to names on platforms that expose
// syscall.Stat_t; on platforms that don't (Windows), it reports unknown.
func ownerGroup(fi os.FileInfo) (owner, group string, ok bool) {
	st, isStat := fi.Sys().(*syscall.Stat_t)
	if !isStat {
		return "", "", false
	}
	uidStr := strconv.FormatUint(uint64(st.Uid), 10)
	gidStr := strconv.FormatUint(uint64(st.Gid), 10)
	if u, err := user.LookupId(uidStr); err == nil {
		owner = u.Username
	} else {
		owner = uidStr
	}
	if g, err := user.LookupGroupId(gidStr); err == nil {
		group = g.Name
	} else {
		group = gidStr
	}
	return owner, group, true
}

func (p *Provider) ReadFile(path string) ([]byte, error) {
	if err := p.withinRoot(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, classify("read_file", path, err)
	}
	return data, nil
}

func (p *Provider) WriteFile(path string, data []byte) error {
	if err := p.withinRoot(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return classify("write_file", path, err)
	}
	return nil
}

func (p *Provider) Delete(path string) error {
	if err := p.withinRoot(path); err != nil {
		return err
	}
	fi, err := os.Lstat(path)
	if err != nil {
		return classify("delete", path, err)
	}
	if fi.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return classify("delete", path, err)
		}
		if len(entries) > 0 {
			return bkerr.New(bkerr.NotEmpty, "delete", path, fmt.Errorf("directory not empty"))
		}
	}
	if err := os.Remove(path); err != nil {
		return classify("delete", path, err)
	}
	return nil
}

func (p *Provider) DeleteRecursive(path string) error {
	if err := p.withinRoot(path); err != nil {
		return err
	}
	if err := os.RemoveAll(path); err != nil {
		return classify("delete_recursive", path, err)
	}
	return nil
}

func (p *Provider) Rename(from, to string) error {
	if err := p.withinRoot(from); err != nil {
		return err
	}
	if err := p.withinRoot(to); err != nil {
		return err
	}
	if err := os.Rename(from, to); err != nil {
		return classify("rename", from, err)
	}
	return nil
}

func (p *Provider) Mkdir(path string) error {
	if err := p.withinRoot(path); err != nil {
		return err
	}
	if err := os.Mkdir(path, 0o755); err != nil {
		return classify("mkdir", path, err)
	}
	return nil
}

// CopyFile preserves mtime, matching §4.3's "prefer the provider's native
// copy_file (which preserves mtime)" contract for same-provider copies.
func (p *Provider) CopyFile(from, to string) error {
	if err := p.withinRoot(from); err != nil {
		return err
	}
	if err := p.withinRoot(to); err != nil {
		return err
	}
	src, err := os.Open(from)
	if err != nil {
		return classify("copy_file", from, err)
	}
	defer src.Close()

	dst, err := os.Create(to)
	if err != nil {
		return classify("copy_file", to, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(to)
		return classify("copy_file", to, err)
	}
	if err := dst.Close(); err != nil {
		return classify("copy_file", to, err)
	}
	if fi, err := src.Stat(); err == nil {
		_ = os.Chtimes(to, fi.ModTime(), fi.ModTime())
		if runtime.GOOS != "windows" {
			_ = os.Chmod(to, fi.Mode().Perm())
		}
	}
	return nil
}

// SetAttributes is best-effort: unsupported attributes are silently ok,
// per §4.1's contract note.
func (p *Provider) SetAttributes(path string, mtime *time.Time, mode *uint32) error {
	if mtime != nil {
		_ = os.Chtimes(path, *mtime, *mtime)
	}
	if mode != nil && runtime.GOOS != "windows" {
		_ = os.Chmod(path, os.FileMode(*mode).Perm())
	}
	return nil
}

func (p *Provider) FreeSpace(path string) (uint64, bool) {
	return freeSpace(path)
}

func (p *Provider) Home() string {
	h, err := os.UserHomeDir()
	if err != nil {
		return "/"
	}
	return h
}

func (p *Provider) Normalize(path string) string { return filepath.Clean(path) }

func (p *Provider) Parent(path string) string {
	if isFSRoot(path) {
		return path
	}
	return filepath.Dir(path)
}

func (p *Provider) Join(base, name string) string { return filepath.Join(base, name) }

func (p *Provider) ToLocalPath(path string) (string, bool)   { return path, true }
func (p *Provider) FromLocalPath(path string) (string, bool) { return path, true }

func (p *Provider) SetPassword(string) error           { return nil }
func (p *Provider) ShortLabel() (string, bool)          { return "", false }

var _ provider.Provider = (*Provider)(nil)
