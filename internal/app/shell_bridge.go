package app

import (
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dumitru-stama/bark/internal/mode"
	"github.com/dumitru-stama/bark/internal/msg"
	"github.com/dumitru-stama/bark/internal/shell"
)

// handleShellKey intercepts every key pressed while mode.ShellVisible is
// active: Esc leaves the pane (the pty keeps running in the background
// so Ctrl+O reattaches to it instead of spawning a second shell), every
// other key is translated to raw bytes and written to the pty. This
// mirrors the teacher's own xpty usage for its interactive worktree
// shell, simplified since Bark captures output into a scrollback buffer
// (internal/shell.Session) rather than handing the real terminal to the
// child the way a full Ctrl+O raw takeover would.
func (m Model) handleShellKey(keyStr string) (tea.Model, tea.Cmd) {
	if keyStr == "esc" {
		m.mode = mode.Normal{}
		return m, nil
	}
	if m.shellSession == nil || m.shellSession.Exited() {
		cols, rows := m.shellContentSize()
		s, err := shell.Start(shellCommand(), m.panels.ActivePanel().Path, cols, rows)
		if err != nil {
			m.mode = mode.Normal{}
			return m, msg.ShowErrorToast("shell: "+err.Error(), 3*time.Second)
		}
		m.shellSession = s
	}
	if b := keyToBytes(keyStr); b != nil {
		m.shellSession.Write(b)
	}
	return m, nil
}

func (m Model) shellContentSize() (cols, rows int) {
	cols = m.width - 2
	rows = m.height - statusBarHeight - 2
	if cols < 1 {
		cols = 80
	}
	if rows < 1 {
		rows = 24
	}
	return cols, rows
}

func shellCommand() string {
	if s := os.Getenv("SHELL"); s != "" {
		return s
	}
	return "/bin/sh"
}

// keyToBytes maps a bubbletea key string to the byte sequence a
// terminal would have sent for it, covering the keys a shell session
// actually needs (arrow keys as the common ECMA-48 CSI sequences,
// control characters by name). Keys with no sensible terminal
// equivalent are dropped.
func keyToBytes(keyStr string) []byte {
	switch keyStr {
	case "enter":
		return []byte("\r")
	case "tab":
		return []byte("\t")
	case "backspace":
		return []byte{0x7f}
	case "up":
		return []byte("\x1b[A")
	case "down":
		return []byte("\x1b[B")
	case "right":
		return []byte("\x1b[C")
	case "left":
		return []byte("\x1b[D")
	case "ctrl+c":
		return []byte{0x03}
	case "ctrl+d":
		return []byte{0x04}
	case "ctrl+l":
		return []byte{0x0c}
	case "ctrl+u":
		return []byte{0x15}
	case "ctrl+w":
		return []byte{0x17}
	case " ":
		return []byte(" ")
	}
	if r := []rune(keyStr); len(r) == 1 {
		return []byte(string(r))
	}
	return nil
}
