// Package provider declares the PanelProvider capability: the uniform
// filesystem API that lets a Panel browse local, SFTP, archive, or
// plugin-backed trees interchangeably. Concrete providers live in
// sibling packages (internal/provider/local, .../sftp, .../archive,
// .../pluginprovider).
//
// This is the Go expression of the "capability object" design note in
// SPEC_FULL.md §9: rather than a tagged union with an inline dispatch
// table, Go's implicit interface satisfaction gives every concrete
// provider the same calling convention for free.
package provider

import (
	"time"

	"github.com/dumitru-stama/bark/internal/entry"
)

// Info describes a provider for display purposes (title bars, source
// selector entries).
type Info struct {
	Name        string
	Description string
	Kind        string // "local" | "sftp" | "archive" | "plugin"
	Icon        string
}

// Provider is the capability every panel is driven through. All methods
// are synchronous and may block; callers on the UI thread that need
// responsiveness (remote providers) are expected to run calls through
// internal/task's background worker instead of calling directly.
type Provider interface {
	Info() Info
	IsConnected() bool
	Connect() error
	Disconnect()

	ListDirectory(path string) ([]entry.Entry, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	Delete(path string) error
	DeleteRecursive(path string) error
	Rename(from, to string) error
	Mkdir(path string) error
	CopyFile(from, to string) error
	SetAttributes(path string, mtime *time.Time, mode *uint32) error
	FreeSpace(path string) (bytes uint64, known bool)

	Home() string
	Normalize(path string) string
	Parent(path string) string
	Join(base, name string) string

	// ToLocalPath/FromLocalPath are only meaningful for the local
	// provider; other providers return ("", false).
	ToLocalPath(path string) (string, bool)
	FromLocalPath(path string) (string, bool)

	SetPassword(password string) error
	ShortLabel() (string, bool)
}

// Sized is implemented by providers that can report accurate byte counts
// for non-regular entries (e.g. an archive provider whose Entry.Size is
// already the uncompressed size). Most providers don't need it; it is
// consulted opportunistically by the recursive-size walker.
type Sized interface {
	KnownSize(path string) (int64, bool)
}
