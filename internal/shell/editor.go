package shell

import "unicode"

// LineEditor is the command-line text buffer with an insertion cursor
// and word-wise editing, modeled on the teacher's own single-line
// prompt editor used for its plugin command bars.
type LineEditor struct {
	runes  []rune
	cursor int
}

// NewLineEditor creates an empty editor.
func NewLineEditor() *LineEditor { return &LineEditor{} }

// Text returns the current buffer contents.
func (e *LineEditor) Text() string { return string(e.runes) }

// SetText replaces the buffer and places the cursor at its end.
func (e *LineEditor) SetText(s string) {
	e.runes = []rune(s)
	e.cursor = len(e.runes)
}

// Cursor returns the current cursor position (rune index).
func (e *LineEditor) Cursor() int { return e.cursor }

// Insert inserts r at the cursor and advances it.
func (e *LineEditor) Insert(r rune) {
	e.runes = append(e.runes[:e.cursor], append([]rune{r}, e.runes[e.cursor:]...)...)
	e.cursor++
}

// Backspace deletes the rune before the cursor.
func (e *LineEditor) Backspace() {
	if e.cursor == 0 {
		return
	}
	e.runes = append(e.runes[:e.cursor-1], e.runes[e.cursor:]...)
	e.cursor--
}

// Delete deletes the rune under the cursor.
func (e *LineEditor) Delete() {
	if e.cursor >= len(e.runes) {
		return
	}
	e.runes = append(e.runes[:e.cursor], e.runes[e.cursor+1:]...)
}

// MoveLeft/MoveRight step the cursor by one rune.
func (e *LineEditor) MoveLeft() {
	if e.cursor > 0 {
		e.cursor--
	}
}
func (e *LineEditor) MoveRight() {
	if e.cursor < len(e.runes) {
		e.cursor++
	}
}

// Home/End jump to buffer start/end.
func (e *LineEditor) Home() { e.cursor = 0 }
func (e *LineEditor) End()  { e.cursor = len(e.runes) }

// WordLeft/WordRight skip over a run of non-space then land at the
// next word boundary, the usual Alt+Left/Alt+Right semantics.
func (e *LineEditor) WordLeft() {
	i := e.cursor
	for i > 0 && unicode.IsSpace(e.runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(e.runes[i-1]) {
		i--
	}
	e.cursor = i
}

func (e *LineEditor) WordRight() {
	i := e.cursor
	n := len(e.runes)
	for i < n && unicode.IsSpace(e.runes[i]) {
		i++
	}
	for i < n && !unicode.IsSpace(e.runes[i]) {
		i++
	}
	e.cursor = i
}

// KillToStart deletes from buffer start to the cursor.
func (e *LineEditor) KillToStart() {
	e.runes = e.runes[e.cursor:]
	e.cursor = 0
}

// KillToEnd deletes from the cursor to buffer end.
func (e *LineEditor) KillToEnd() {
	e.runes = e.runes[:e.cursor]
}

// KillWord deletes the word immediately before the cursor (Ctrl+W).
func (e *LineEditor) KillWord() {
	start := e.cursor
	i := start
	for i > 0 && unicode.IsSpace(e.runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(e.runes[i-1]) {
		i--
	}
	e.runes = append(e.runes[:i], e.runes[start:]...)
	e.cursor = i
}

// Clear empties the buffer.
func (e *LineEditor) Clear() {
	e.runes = nil
	e.cursor = 0
}
