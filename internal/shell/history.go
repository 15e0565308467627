// Package shell implements Bark's Ctrl+O command-line integration: a
// line editor with history, a PTY-backed interactive subprocess session,
// and ANSI-preserving scrollback capture. Grounded on the teacher's own
// line-editing and subprocess-session handling (internal/adapter), with
// the PTY layer itself built on github.com/charmbracelet/x/xpty and
// scrollback rendering on github.com/charmbracelet/x/ansi, both named
// directly in SPEC_FULL.md's Domain Stack table.
package shell

import (
	"bufio"
	"os"
	"strings"
)

// MaxHistory is the cap spec.md §6 places on the persisted command
// history file.
const MaxHistory = 1000

// History is a capped, deduped, file-backed ring of prior commands,
// with reverse-chronological navigation that holds the user's
// in-progress input aside while browsing so a cancelled browse
// restores exactly what was being typed.
type History struct {
	path    string
	entries []string // oldest first
	cursor  int       // index into entries while browsing; len(entries) means "not browsing"
	held    string    // input held aside while browsing
}

// LoadHistory reads path (one command per line, oldest first),
// tolerating a missing file.
func LoadHistory(path string) (*History, error) {
	h := &History{path: path, cursor: 0}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return h, nil
		}
		return nil, err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line != "" {
			h.entries = append(h.entries, line)
		}
	}
	h.cursor = len(h.entries)
	return h, nil
}

// Add appends cmd to the history, deduped against the immediately
// preceding entry (a repeated command run twice in a row isn't
// duplicated), and truncated to MaxHistory oldest-dropped-first.
func (h *History) Add(cmd string) {
	if cmd == "" {
		return
	}
	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == cmd {
		h.cursor = len(h.entries)
		return
	}
	h.entries = append(h.entries, cmd)
	if len(h.entries) > MaxHistory {
		h.entries = h.entries[len(h.entries)-MaxHistory:]
	}
	h.cursor = len(h.entries)
}

// Save persists the history to its backing file, one command per line.
func (h *History) Save() error {
	if h.path == "" {
		return nil
	}
	return os.WriteFile(h.path, []byte(strings.Join(h.entries, "\n")+"\n"), 0o644)
}

// Entries returns the history oldest-first.
func (h *History) Entries() []string { return h.entries }

// BeginBrowse stashes currentInput and positions the cursor at the
// newest entry, called the first time the user presses Up from a
// fresh prompt.
func (h *History) BeginBrowse(currentInput string) {
	h.held = currentInput
	h.cursor = len(h.entries)
}

// Prev moves one step further back in history (toward index 0) and
// returns the command there, or ("", false) if already at the oldest.
func (h *History) Prev() (string, bool) {
	if h.cursor <= 0 {
		return "", false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Next moves one step forward. Returning past the newest entry yields
// the held input and resets browsing state.
func (h *History) Next() (string, bool) {
	if h.cursor >= len(h.entries) {
		return "", false
	}
	h.cursor++
	if h.cursor == len(h.entries) {
		return h.held, true
	}
	return h.entries[h.cursor], true
}

// EndBrowse cancels browsing, discarding the held input (called once
// the user commits a line or explicitly cancels).
func (h *History) EndBrowse() {
	h.cursor = len(h.entries)
	h.held = ""
}
