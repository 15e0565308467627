// Package bkerr defines Bark's closed error taxonomy. Every provider,
// the plugin host, and dialog validators classify failures into one of
// these kinds so the UI can decide how to react (prompt for a password,
// show a status banner, trigger a dialog) without string-matching errors.
package bkerr

import (
	"errors"
	"fmt"
)

// Kind is one of the error kinds a Bark operation can fail with.
type Kind int

const (
	Other Kind = iota
	IO
	Connection
	Auth
	PasswordRequired
	NotFound
	PermissionDenied
	AlreadyExists
	NotEmpty
	NotSupported
	Plugin
	Operation
)

func (k Kind) String() string {
	switch k {
	case IO:
		return "io"
	case Connection:
		return "connection"
	case Auth:
		return "auth"
	case PasswordRequired:
		return "password_required"
	case NotFound:
		return "not_found"
	case PermissionDenied:
		return "permission_denied"
	case AlreadyExists:
		return "already_exists"
	case NotEmpty:
		return "not_empty"
	case NotSupported:
		return "not_supported"
	case Plugin:
		return "plugin"
	case Operation:
		return "operation"
	default:
		return "other"
	}
}

// Error wraps an underlying error with a classification Kind.
type Error struct {
	Kind Kind
	Op   string // operation that failed, e.g. "list_directory"
	Path string // path involved, if any
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Path != "":
		return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Path, e.Kind, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a classified error.
func New(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// KindOf unwraps err looking for a *Error and returns its Kind, or Other
// if err is nil or carries no classification.
func KindOf(err error) Kind {
	if err == nil {
		return Other
	}
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return Other
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
