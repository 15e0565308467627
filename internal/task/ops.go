package task

import (
	"fmt"
	"path"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/dumitru-stama/bark/internal/bkerr"
	"github.com/dumitru-stama/bark/internal/entry"
	"github.com/dumitru-stama/bark/internal/provider"
)

// Plan is the enumerated set of source paths a copy/move/delete will
// operate on, already resolved against both providers by the caller
// (the input dispatcher), plus the destination directory.
type Plan struct {
	SourceProvider provider.Provider
	DestProvider   provider.Provider
	Sources        []string // absolute paths on SourceProvider
	DestDir        string   // absolute directory on DestProvider
}

// StartCopy spawns a worker goroutine performing Copy semantics per
// SPEC_FULL.md §4.3: same-provider local/local copies prefer the
// provider's native CopyFile (which preserves mtime); cross-provider
// copies go through streamCopy, which holds the whole file in memory,
// with a best-effort SetAttributes afterward.
func (m *Manager) StartCopy(plan Plan) (*Task, error) {
	return m.startFileOp(OpCopy, plan)
}

// StartMove spawns a worker performing Move semantics: same-provider
// attempts Rename first, falling back to copy+delete on failure;
// cross-provider is always copy+delete.
func (m *Manager) StartMove(plan Plan) (*Task, error) {
	return m.startFileOp(OpMove, plan)
}

// StartDelete spawns a worker performing Delete semantics: recursive for
// directories, single-file otherwise, honoring cancel between entries.
func (m *Manager) StartDelete(prov provider.Provider, sources []string) (*Task, error) {
	w, t := newWorker()
	t.Op = OpDelete
	full, err := m.start(t)
	if err != nil {
		return nil, err
	}
	go runDelete(w, prov, sources)
	return full, nil
}

// StartRecursiveSize spawns a worker that walks dir via ListDirectory,
// accumulating total bytes for F3-style directory sizing, cancellable.
func (m *Manager) StartRecursiveSize(prov provider.Provider, dir string) (*Task, error) {
	w, t := newWorker()
	t.Op = OpRecursiveSize
	full, err := m.start(t)
	if err != nil {
		return nil, err
	}
	go runRecursiveSize(w, prov, dir)
	return full, nil
}

func (m *Manager) startFileOp(op Op, plan Plan) (*Task, error) {
	w, t := newWorker()
	t.Op = op
	full, err := m.start(t)
	if err != nil {
		return nil, err
	}
	switch op {
	case OpCopy:
		go runCopyOrMove(w, plan, false)
	case OpMove:
		go runCopyOrMove(w, plan, true)
	}
	return full, nil
}

// expand flattens a list of source paths into concrete file-level work
// items, descending into directories via ListDirectory. Directories
// themselves are also recorded (to be created/removed as a unit).
type workItem struct {
	srcPath string
	isDir   bool
	size    int64
}

func expand(prov provider.Provider, sources []string) ([]workItem, int64, error) {
	var items []workItem
	var totalBytes int64

	var walk func(p string) error
	walk = func(p string) error {
		entries, err := prov.ListDirectory(p)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if e.IsParent() {
				continue
			}
			full := prov.Join(p, e.Name)
			if e.IsDir {
				items = append(items, workItem{srcPath: full, isDir: true})
				if err := walk(full); err != nil {
					return err
				}
			} else {
				items = append(items, workItem{srcPath: full, isDir: false, size: e.Size})
				totalBytes += e.Size
			}
		}
		return nil
	}

	for _, src := range sources {
		info, err := statEntry(prov, src)
		if err != nil {
			return nil, 0, err
		}
		if info.IsDir {
			items = append(items, workItem{srcPath: src, isDir: true})
			if err := walk(src); err != nil {
				return nil, 0, err
			}
		} else {
			items = append(items, workItem{srcPath: src, isDir: false, size: info.Size})
			totalBytes += info.Size
		}
	}
	return items, totalBytes, nil
}

// statEntry looks up a single entry by listing its parent directory,
// since Provider has no direct Stat operation (see SPEC_FULL.md §4.1).
func statEntry(prov provider.Provider, p string) (entry.Entry, error) {
	parent := prov.Parent(p)
	name := path.Base(p)
	entries, err := prov.ListDirectory(parent)
	if err != nil {
		return entry.Entry{}, err
	}
	for _, e := range entries {
		if e.Name == name {
			return e, nil
		}
	}
	return entry.Entry{}, bkerr.New(bkerr.NotFound, "stat", p, nil)
}

func runDelete(w *worker, prov provider.Provider, sources []string) {
	items, _, err := expand(prov, sources)
	if err != nil {
		w.sendFailed(classifyAsTaskError("delete", "", err))
		return
	}

	// Delete files before the directories that contained them.
	filesTotal := 0
	for _, it := range items {
		if !it.isDir {
			filesTotal++
		}
	}
	filesDone := 0

	deleteOne := func(it workItem) error {
		if it.isDir {
			return nil // directories are removed in the reverse pass below
		}
		if w.cancelled.Load() {
			return errCancelled
		}
		if err := prov.Delete(it.srcPath); err != nil {
			return err
		}
		filesDone++
		w.sendProgress(Progress{FilesDone: filesDone, FilesTotal: filesTotal, CurrentFile: it.srcPath})
		return nil
	}

	for _, it := range items {
		if err := deleteOne(it); err != nil {
			if err == errCancelled {
				w.sendCancelled()
				return
			}
			w.sendFailed(classifyAsTaskError("delete", it.srcPath, err))
			return
		}
	}
	// Remove directories deepest-first.
	for i := len(items) - 1; i >= 0; i-- {
		it := items[i]
		if !it.isDir {
			continue
		}
		if w.cancelled.Load() {
			w.sendCancelled()
			return
		}
		if err := prov.Delete(it.srcPath); err != nil {
			w.sendFailed(classifyAsTaskError("delete", it.srcPath, err))
			return
		}
	}
	w.sendCompleted(fmt.Sprintf("deleted %d item(s)", len(sources)))
}

var errCancelled = fmt.Errorf("task: cancelled")

func runRecursiveSize(w *worker, prov provider.Provider, dir string) {
	var total int64
	var files int

	var walk func(p string) error
	walk = func(p string) error {
		if w.cancelled.Load() {
			return errCancelled
		}
		entries, err := prov.ListDirectory(p)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if e.IsParent() {
				continue
			}
			if w.cancelled.Load() {
				return errCancelled
			}
			full := prov.Join(p, e.Name)
			if e.IsDir {
				if err := walk(full); err != nil {
					return err
				}
			} else {
				total += e.Size
				files++
				w.sendProgress(Progress{FilesDone: files, BytesDone: total, CurrentFile: full})
			}
		}
		return nil
	}

	if err := walk(dir); err != nil {
		if err == errCancelled {
			w.sendCancelled()
			return
		}
		w.sendFailed(classifyAsTaskError("size", dir, err))
		return
	}
	w.sendCompleted(fmt.Sprintf("%d bytes in %d file(s)", total, files))
}

func runCopyOrMove(w *worker, plan Plan, isMove bool) {
	items, totalBytes, err := expand(plan.SourceProvider, plan.Sources)
	if err != nil {
		w.sendFailed(classifyAsTaskError("copy", "", err))
		return
	}

	sameProvider := plan.SourceProvider == plan.DestProvider

	filesTotal := 0
	for _, it := range items {
		if !it.isDir {
			filesTotal++
		}
	}
	var bytesDone int64
	var filesDone int

	skipSet := make(map[string]struct{})
	overwriteAll := false

	destPathFor := func(srcPath string) string {
		rel := relativeTo(plan.Sources, srcPath)
		return plan.DestProvider.Join(plan.DestDir, rel)
	}

	for _, it := range items {
		if w.cancelled.Load() {
			w.sendCancelled()
			return
		}
		dest := destPathFor(it.srcPath)

		if _, skip := skipSet[it.srcPath]; skip {
			continue
		}

		if exists(plan.DestProvider, dest) && !overwriteAll {
			decision := w.askOverwrite(Conflict{Source: it.srcPath, Destination: dest}, false)
			switch decision {
			case DecisionSkip:
				skipSet[it.srcPath] = struct{}{}
				continue
			case DecisionSkipAll:
				markRemainingSkipped(items, it, skipSet)
				continue
			case DecisionAll:
				overwriteAll = true
			case DecisionCancel:
				w.sendCancelled()
				return
			case DecisionYes:
			}
		}

		if it.isDir {
			if err := plan.DestProvider.Mkdir(dest); err != nil && bkerr.KindOf(err) != bkerr.AlreadyExists {
				w.sendFailed(classifyAsTaskError("copy", dest, err))
				return
			}
			continue
		}

		if err := copyOrMoveOneFile(w, plan, it.srcPath, dest, sameProvider, isMove, &bytesDone); err != nil {
			if err == errCancelled {
				w.sendCancelled()
				return
			}
			w.sendFailed(classifyAsTaskError("copy", it.srcPath, err))
			return
		}
		filesDone++
		w.sendProgress(Progress{FilesDone: filesDone, FilesTotal: filesTotal, BytesDone: bytesDone, BytesTotal: totalBytes, CurrentFile: it.srcPath})
	}

	if isMove {
		// Remove source directories deepest-first once their contents
		// have all been moved.
		for i := len(items) - 1; i >= 0; i-- {
			it := items[i]
			if !it.isDir {
				continue
			}
			if _, skipped := skipSet[it.srcPath]; skipped {
				continue
			}
			_ = plan.SourceProvider.Delete(it.srcPath)
		}
	}

	w.sendCompleted(fmt.Sprintf("%s %d item(s)", verbFor(isMove), len(plan.Sources)))
}

func verbFor(isMove bool) string {
	if isMove {
		return "moved"
	}
	return "copied"
}

func markRemainingSkipped(items []workItem, from workItem, skipSet map[string]struct{}) {
	found := false
	for _, it := range items {
		if it.srcPath == from.srcPath {
			found = true
		}
		if found {
			skipSet[it.srcPath] = struct{}{}
		}
	}
}

func copyOrMoveOneFile(w *worker, plan Plan, src, dest string, sameProvider, isMove bool, bytesDone *int64) error {
	if isMove && sameProvider {
		if err := plan.SourceProvider.Rename(src, dest); err == nil {
			*bytesDone += sizeOf(plan.SourceProvider, src)
			return nil
		}
		// fall through to copy+delete
	}

	if sameProvider {
		if err := plan.SourceProvider.CopyFile(src, dest); err != nil {
			return err
		}
	} else {
		if err := streamCopy(w, plan.SourceProvider, plan.DestProvider, src, dest, bytesDone); err != nil {
			return err
		}
		mtime, mode := sourceAttrs(plan.SourceProvider, src)
		_ = plan.DestProvider.SetAttributes(dest, mtime, mode)
	}

	if isMove {
		if err := plan.SourceProvider.Delete(src); err != nil {
			return err
		}
	}
	return nil
}

// streamCopy performs the cross-provider copy. Provider has no
// streaming Open/Read API, so the whole source is read into memory with
// ReadFile and written with one WriteFile; the ChunkSize loop only
// advances bytesDone and checks for cancellation. The
// write is verified by re-reading the destination and comparing xxhash
// sums, since a cross-provider copy (e.g. onto sftp) has no mtime+size
// guarantee as strong as same-provider CopyFile's.
func streamCopy(w *worker, src, dst provider.Provider, srcPath, dstPath string, bytesDone *int64) error {
	data, err := src.ReadFile(srcPath)
	if err != nil {
		return err
	}
	for offset := 0; offset < len(data); offset += ChunkSize {
		if w.cancelled.Load() {
			return errCancelled
		}
		end := offset + ChunkSize
		if end > len(data) {
			end = len(data)
		}
		*bytesDone += int64(end - offset)
	}
	want := xxhash.Sum64(data)
	if err := dst.WriteFile(dstPath, data); err != nil {
		return err
	}
	written, err := dst.ReadFile(dstPath)
	if err != nil {
		return err
	}
	if xxhash.Sum64(written) != want {
		return bkerr.New(bkerr.IO, "copy", dstPath, fmt.Errorf("checksum mismatch after write"))
	}
	return nil
}

func exists(prov provider.Provider, p string) bool {
	_, err := statEntry(prov, p)
	return err == nil
}

func sizeOf(prov provider.Provider, p string) int64 {
	e, err := statEntry(prov, p)
	if err != nil {
		return 0
	}
	return e.Size
}

func sourceAttrs(prov provider.Provider, p string) (*time.Time, *uint32) {
	e, err := statEntry(prov, p)
	if err != nil {
		return nil, nil
	}
	mt := e.Modified
	mode := e.Permissions
	return &mt, &mode
}

// relativeTo computes srcPath's path relative to whichever entry in
// sources is its ancestor (or itself), using '/' as the separator since
// provider paths are provider-defined but Join/Parent already normalize
// on that convention for every concrete provider in this module.
func relativeTo(sources []string, srcPath string) string {
	for _, s := range sources {
		if srcPath == s {
			return path.Base(s)
		}
		prefix := s + "/"
		if len(srcPath) > len(prefix) && srcPath[:len(prefix)] == prefix {
			return path.Base(s) + "/" + srcPath[len(prefix):]
		}
	}
	return path.Base(srcPath)
}
