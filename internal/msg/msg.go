// Package msg carries the status-bar banner messages internal/app's
// root Update loop reacts to. Grounded on the teacher's own
// tea.Msg/tea.Cmd toast pair, adapted so the success/error distinction
// the teacher declared but never wired is actually consumed: Bark's
// status bar (internal/app's renderer) colors a banner via st.ErrorText
// or a plain success style based on IsError, and StatusExpireMsg clears
// it once Duration elapses.
package msg

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ToastMsg displays a transient status-bar banner.
type ToastMsg struct {
	Message  string
	Duration time.Duration
	IsError  bool // true for error toasts (ErrorText style), false for success (plain status-bar style)

	seq int // set by WithSeq; internal/app counts toasts with its own toastSeq instead
}

// ShowToast returns a command that shows a success-styled banner.
func ShowToast(message string, duration time.Duration) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{Message: message, Duration: duration}
	}
}

// ShowErrorToast returns a command that shows an error-styled banner,
// used for failed operations and provider errors surfaced to the
// status bar per SPEC_FULL.md §7's propagation policy.
func ShowErrorToast(message string, duration time.Duration) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{Message: message, Duration: duration, IsError: true}
	}
}

// StatusExpireMsg clears a toast once its Duration has elapsed; carries
// the same sequence number the ToastMsg it expires was stamped with.
type StatusExpireMsg struct {
	Seq int
}

// Seq returns the sequence number WithSeq stamped on t (0 if none).
func (t ToastMsg) Seq() int { return t.seq }

// WithSeq returns a copy of t stamped with seq. internal/app does not
// call it: it matches each StatusExpireMsg against its own toastSeq
// counter, so a stale expiry timer cannot clear a newer toast.
func (t ToastMsg) WithSeq(seq int) ToastMsg {
	t.seq = seq
	return t
}

// ExpireAfter returns a tea.Cmd that delivers a StatusExpireMsg for seq
// after d elapses.
func ExpireAfter(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return StatusExpireMsg{Seq: seq}
	})
}
