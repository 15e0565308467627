// Package modal renders Bark's dialog modes (internal/mode's
// Confirming/OverwriteConfirm/SimpleConfirm/SourceSelector/MakingDir/
// FindFiles/SelectFiles/ScpConnect/PluginConnect/ScpPasswordPrompt/
// ArchivePasswordPrompt/CommandHistory/UserMenu/UserMenuEdit variants)
// as a centered overlay box. Grounded on the teacher's internal/modal
// (modal.go/layout.go/list.go) centered-box-over-background layout
// algorithm, rebuilt without the teacher's mouse-hit-region tracking
// (internal/mouse) since Bark's UI is keyboard-only.
package modal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dumitru-stama/bark/internal/mode"
	"github.com/dumitru-stama/bark/internal/styles"
)

// Overlay centers box within a termWidth x termHeight area via
// lipgloss.Place. The background argument is not drawn: the space
// around the box is filled with blanks, so the panels are not visible
// behind a dialog.
func Overlay(background, box string, termWidth, termHeight int) string {
	return lipgloss.Place(termWidth, termHeight, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceChars(" "), lipgloss.WithWhitespaceForeground(lipgloss.Color("0")))
}

// Render produces the dialog box for m, or "" if m is mode.Normal
// (which has no overlay). The background view is not touched here;
// Overlay centers Render's result on an otherwise blank screen.
func Render(m mode.Mode, st styles.Styles, width int) string {
	box := func(title string, body string) string {
		content := lipgloss.JoinVertical(lipgloss.Left, titleLine(title), body)
		return st.DialogBorder.Width(clampWidth(width, lipgloss.Width(content)+4)).Render(content)
	}

	switch v := m.(type) {
	case mode.Normal:
		return ""

	case mode.Confirming:
		return box(opTitle(v.Op)+" — destination", editLine(v.DestInput, v.Cursor))

	case mode.OverwriteConfirm:
		if v.CurrentConflict >= len(v.Conflicts) {
			return box("Overwrite", "(no conflicts remaining)")
		}
		c := v.Conflicts[v.CurrentConflict]
		body := fmt.Sprintf("%s\nalready exists as\n%s\n\n[Y]es  [A]ll  [S]kip  [N] Skip all  [C]ancel",
			c.Source, c.Destination)
		return box("Overwrite file?", body)

	case mode.SimpleConfirm:
		return box("Confirm", v.Message+"\n\n[Y]es   [N]o")

	case mode.SourceSelector:
		var b strings.Builder
		for _, s := range v.Sources {
			mark := " "
			if _, ok := v.Selected[s]; ok {
				mark = "x"
			}
			fmt.Fprintf(&b, "[%s] %s\n", mark, s)
		}
		return box("Select sources", b.String())

	case mode.MakingDir:
		body := editLine(v.Name, v.Cursor)
		if v.Error != "" {
			body += "\n" + st.ErrorText.Render(v.Error)
		}
		return box("New directory", body)

	case mode.FindFiles:
		body := editLine(v.Pattern, v.Cursor)
		if v.Error != "" {
			body += "\n" + st.ErrorText.Render(v.Error)
		}
		return box("Find files (pattern)", body)

	case mode.SelectFiles:
		title := "Select files (glob)"
		if v.Unmark {
			title = "Unselect files (glob)"
		}
		body := editLine(v.Pattern, v.Cursor)
		if v.Error != "" {
			body += "\n" + st.ErrorText.Render(v.Error)
		}
		return box(title, body)

	case mode.ScpConnect:
		body := fmt.Sprintf("Host: %s\nPort: %s\nUser: %s\nPath: %s", v.Host, v.Port, v.User, v.Path)
		if v.Error != "" {
			body += "\n" + st.ErrorText.Render(v.Error)
		}
		return box("Connect (SFTP)", body)

	case mode.PluginConnect:
		var b strings.Builder
		fmt.Fprintf(&b, "Plugin: %s\n", v.PluginName)
		for i, name := range v.FieldOrder {
			cursor := "  "
			if i == v.Focus {
				cursor = "> "
			}
			fmt.Fprintf(&b, "%s%s: %s\n", cursor, name, v.Fields[name])
		}
		if v.Error != "" {
			b.WriteString(st.ErrorText.Render(v.Error) + "\n")
		}
		return box("Connect (plugin)", b.String())

	case mode.ScpPasswordPrompt:
		masked := strings.Repeat("*", len(v.Password))
		body := fmt.Sprintf("%s@%s:%s\n%s", v.User, v.Host, v.Path, editLine(masked, v.Cursor))
		if v.Error != "" {
			body += "\n" + st.ErrorText.Render(v.Error)
		}
		return box("Password", body)

	case mode.ArchivePasswordPrompt:
		masked := strings.Repeat("*", len(v.Password))
		body := fmt.Sprintf("%s\n%s", v.ArchivePath, editLine(masked, v.Cursor))
		if v.Error != "" {
			body += "\n" + st.ErrorText.Render(v.Error)
		}
		return box("Archive password", body)

	case mode.CommandHistory:
		return box("Command history", "(history entries are not listed here)")

	case mode.UserMenu:
		var b strings.Builder
		for i, r := range v.Rules {
			cursor := "  "
			if i == v.Selected {
				cursor = "> "
			}
			fmt.Fprintf(&b, "%s%s\n", cursor, r.Label)
		}
		return box("User menu", b.String())

	case mode.UserMenuEdit:
		body := fmt.Sprintf("Label: %s\nCommand: %s", v.Inputs[0], v.Inputs[1])
		if v.Error != "" {
			body += "\n" + st.ErrorText.Render(v.Error)
		}
		return box("Edit user menu entry", body)

	case mode.BackgroundTask:
		frame := mode.SpinnerFrames[v.Frame%len(mode.SpinnerFrames)]
		return box(v.Title, frame+" "+v.Message)

	case mode.FileOpProgress:
		frame := mode.SpinnerFrames[v.Frame%len(mode.SpinnerFrames)]
		pct := 0
		if v.BytesTotal > 0 {
			pct = int(100 * v.BytesDone / v.BytesTotal)
		}
		body := fmt.Sprintf("%s %s\n%d/%d files, %d%%\n%s", frame, v.Title, v.FilesDone, v.FilesTotal, pct, v.CurrentFile)
		return box("Working…", body)

	default:
		return box("", fmt.Sprintf("(unrendered mode %T)", v))
	}
}

func titleLine(title string) string {
	if title == "" {
		return ""
	}
	return lipgloss.NewStyle().Bold(true).Render(title) + "\n"
}

func editLine(text string, cursor int) string {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(text) {
		cursor = len(text)
	}
	return text[:cursor] + "│" + text[cursor:]
}

func opTitle(op mode.Op) string {
	switch op {
	case mode.OpCopy:
		return "Copy"
	case mode.OpMove:
		return "Move"
	case mode.OpDelete:
		return "Delete"
	default:
		return "Operation"
	}
}

func clampWidth(termWidth, want int) int {
	max := termWidth - 4
	if max < 20 {
		max = 20
	}
	if want > max {
		return max
	}
	if want < 20 {
		return 20
	}
	return want
}
