package shell

import (
	"bytes"
	"io"
	"os/exec"
	"sync"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/xpty"

	"github.com/dumitru-stama/bark/internal/bkerr"
)

// ScrollbackLimit bounds the captured PTY output kept for the shell
// pane's history view, to keep a long-running interactive session from
// growing the scrollback buffer unbounded.
const ScrollbackLimit = 1 << 20 // 1 MiB

// Session owns one interactive PTY-backed subprocess: output is
// captured into an ANSI-preserving scrollback buffer rather than
// written straight to the real terminal, so Bark's own renderer stays
// in control of the screen. No mode hands the real terminal to the
// child; the ShellVisible pane is this captured pseudo-terminal,
// rendered inside Bark's own layout.
type Session struct {
	pty  xpty.Pty
	cmd  *exec.Cmd
	mu   sync.Mutex
	buf  bytes.Buffer
	done chan struct{}
}

// Start spawns shellCmd (e.g. $SHELL -i) attached to a new pty sized
// cols x rows, and begins draining its output into the scrollback
// buffer in the background.
func Start(shellCmd string, cwd string, cols, rows int) (*Session, error) {
	pty, err := xpty.NewPty(cols, rows)
	if err != nil {
		return nil, bkerr.New(bkerr.IO, "pty_open", shellCmd, err)
	}
	cmd := exec.Command(shellCmd)
	cmd.Dir = cwd
	if err := pty.Start(cmd); err != nil {
		pty.Close()
		return nil, bkerr.New(bkerr.IO, "pty_start", shellCmd, err)
	}

	s := &Session{pty: pty, cmd: cmd, done: make(chan struct{})}
	go s.drain()
	return s, nil
}

func (s *Session) drain() {
	defer close(s.done)
	buf := make([]byte, 4096)
	for {
		n, err := s.pty.Read(buf)
		if n > 0 {
			s.mu.Lock()
			s.buf.Write(buf[:n])
			if s.buf.Len() > ScrollbackLimit {
				excess := s.buf.Len() - ScrollbackLimit
				s.buf.Next(excess)
			}
			s.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// Write sends keystrokes to the child process's stdin (via the pty).
func (s *Session) Write(p []byte) (int, error) {
	return s.pty.Write(p)
}

// Resize adjusts the pty's reported window size, called when Bark's
// own layout changes while the shell pane is visible.
func (s *Session) Resize(cols, rows int) error {
	return s.pty.Resize(cols, rows)
}

// Scrollback returns a copy of the captured output so far, with its
// ANSI escapes intact — rendering strips or interprets them at display
// time via github.com/charmbracelet/x/ansi rather than at capture time,
// so nothing is lost if the viewport is resized after the fact.
func (s *Session) Scrollback() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.buf.Bytes()...)
}

// VisibleLines strips ANSI escapes from the scrollback and returns the
// last n plain-text lines, for a quick non-interactive summary view
// (e.g. ShellHistoryView mode, which doesn't need styling).
func (s *Session) VisibleLines(n int) []string {
	plain := ansi.Strip(string(s.Scrollback()))
	lines := splitLines(plain)
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

// Exited reports whether the child process has terminated.
func (s *Session) Exited() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Close terminates the child process and releases the pty.
func (s *Session) Close() error {
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	return s.pty.Close()
}

var _ io.Writer = (*Session)(nil)
