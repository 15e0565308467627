// Package viewer implements Bark's built-in file viewer: a
// memory-mapped file, a line-offset index built once at open time, and
// text/hex/CP437 rendering with byte-anchored search. Grounded on the
// pack's mmap-go usage pattern (the steveyegge/perkeep-style manifests
// cited in SPEC_FULL.md §2.1) for the mapping itself; the line index
// and rendering are new, since no example repo in the pack implements
// a file pager.
package viewer

import (
	"bytes"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/dumitru-stama/bark/internal/bkerr"
)

// RenderMode selects how File.Render interprets its bytes.
type RenderMode int

const (
	ModeText RenderMode = iota
	ModeHex
	ModeCP437
)

// File is an opened, memory-mapped file plus its line-offset index.
// The index is strictly ascending and its first element is always 0,
// matching the invariant checked by SPEC_FULL.md §8's
// byte_offset_to_line property.
type File struct {
	path    string
	f       *os.File
	data    mmap.MMap
	offsets []int64 // offsets[i] = byte offset of the start of line i
	binary  bool
}

// Open mmaps path read-only and builds its line-offset index. A file
// containing a NUL byte within its first 8KiB is flagged as binary (see
// IsBinary); the flag does not change the render mode, which the caller
// passes to Render.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, bkerr.New(bkerr.IO, "open", path, err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, bkerr.New(bkerr.IO, "open", path, err)
	}
	if fi.Size() == 0 {
		return &File{path: path, f: f, data: mmap.MMap{}, offsets: []int64{0}}, nil
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, bkerr.New(bkerr.IO, "mmap", path, err)
	}
	v := &File{path: path, f: f, data: data}
	v.buildIndex()
	sniffLen := len(data)
	if sniffLen > 8192 {
		sniffLen = 8192
	}
	v.binary = bytes.IndexByte(data[:sniffLen], 0) >= 0
	return v, nil
}

func (v *File) buildIndex() {
	v.offsets = []int64{0}
	for i, b := range v.data {
		if b == '\n' && i+1 < len(v.data) {
			v.offsets = append(v.offsets, int64(i+1))
		}
	}
}

// Close unmaps and closes the underlying file.
func (v *File) Close() error {
	if v.data != nil {
		_ = v.data.Unmap()
	}
	return v.f.Close()
}

// Size returns the mapped file's total byte length.
func (v *File) Size() int64 { return int64(len(v.data)) }

// IsBinary reports whether Open's NUL-byte sniff flagged this file.
func (v *File) IsBinary() bool { return v.binary }

// LineCount returns the number of indexed lines.
func (v *File) LineCount() int { return len(v.offsets) }

// ByteOffsetToLine returns the index of the line containing byte
// offset off, via binary search over the strictly ascending offsets
// index — the property exercised by SPEC_FULL.md §8.
func ByteOffsetToLine(offsets []int64, off int64) int {
	lo, hi := 0, len(offsets)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if offsets[mid] <= off {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// ByteOffsetToLine is the method form of the package-level
// ByteOffsetToLine over this file's index. It returns -1 only for an
// empty index; an offset past the end maps to the last line.
func (v *File) ByteOffsetToLine(off int64) int {
	if len(v.offsets) == 0 {
		return -1
	}
	return ByteOffsetToLine(v.offsets, off)
}

// Line returns the raw bytes of line i, excluding its trailing newline.
func (v *File) Line(i int) []byte {
	if i < 0 || i >= len(v.offsets) {
		return nil
	}
	start := v.offsets[i]
	var end int64
	if i+1 < len(v.offsets) {
		end = v.offsets[i+1] - 1 // drop the newline
	} else {
		end = int64(len(v.data))
	}
	if end < start {
		end = start
	}
	return v.data[start:end]
}

// Render returns count lines (text mode) or count*16-byte rows (hex/
// CP437 mode) starting at scroll, formatted per mode.
func (v *File) Render(mode RenderMode, scroll, count int) []string {
	switch mode {
	case ModeHex:
		return renderHex(v.data, scroll, count)
	case ModeCP437:
		return renderCP437(v.data, scroll, count)
	default:
		return v.renderText(scroll, count)
	}
}

func (v *File) renderText(scroll, count int) []string {
	var out []string
	for i := scroll; i < scroll+count && i < len(v.offsets); i++ {
		out = append(out, string(v.Line(i)))
	}
	return out
}

// MaxScroll returns the largest valid scroll value for mode, so the
// viewer can clamp scroll when toggling between text and hex/CP437
// modes that have different row counts for the same data.
func (v *File) MaxScroll(mode RenderMode) int {
	switch mode {
	case ModeHex, ModeCP437:
		rows := (len(v.data) + 15) / 16
		if rows == 0 {
			return 0
		}
		return rows - 1
	default:
		if len(v.offsets) == 0 {
			return 0
		}
		return len(v.offsets) - 1
	}
}
