package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/dumitru-stama/bark/internal/mode"
	"github.com/dumitru-stama/bark/internal/modal"
	"github.com/dumitru-stama/bark/internal/panelmgr"
	"github.com/dumitru-stama/bark/internal/viewer"
)

// View renders the dual-pane browser, status bar, and any active
// mode.Mode dialog as a centered overlay. Grounded on the teacher's own
// View (internal/app/view.go): render the background layout first, then
// switch on the active modal/mode to decide whether to overlay it.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.width < minWidth || m.height < minHeight {
		return fmt.Sprintf("Terminal too small (%dx%d); need at least %dx%d",
			m.width, m.height, minWidth, minHeight)
	}

	switch v := m.mode.(type) {
	case mode.Viewing:
		return m.renderViewer(v)
	case mode.ShellVisible:
		return m.renderShell(0)
	case mode.ShellHistoryView:
		return m.renderShell(v.Scroll)
	}

	half := m.width / 2
	left := m.renderPanel(panelmgr.Left, half)
	right := m.renderPanel(panelmgr.Right, m.width-half)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	bg := lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar())

	if box := modal.Render(m.mode, m.styles, m.width); box != "" {
		return modal.Overlay(bg, box, m.width, m.height)
	}
	return bg
}

// renderViewer takes over the whole screen with the mmapped pager,
// matching the teacher's own full-screen takeover for its worktree diff
// view rather than rendering the viewer as a small modal overlay.
func (m Model) renderViewer(v mode.Viewing) string {
	if m.viewerFile == nil {
		return m.styles.ErrorText.Render("no file open")
	}
	renderMode := viewer.ModeText
	if v.BinaryMode {
		renderMode = viewer.ModeHex
	}
	rows := m.height - statusBarHeight
	lines := m.viewerFile.Render(renderMode, v.Scroll, rows)
	body := strings.Join(lines, "\n")
	status := fmt.Sprintf("%s  line %d", v.Path, v.Scroll+1)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.styles.StatusBar.Width(m.width).Render(truncate(status, m.width)))
}

// renderShell takes over the whole screen with the pty session's
// captured output, used both for the live shell pane (scroll 0, always
// the tail) and for browsing its scrollback in mode.ShellHistoryView
// (scroll lines back from the tail).
func (m Model) renderShell(scroll int) string {
	if m.shellSession == nil {
		return "shell not started"
	}
	rows := m.height - statusBarHeight
	lines := m.shellSession.VisibleLines(rows + scroll)
	if scroll > 0 && len(lines) > rows {
		lines = lines[:len(lines)-scroll]
	}
	body := strings.Join(lines, "\n")
	return lipgloss.JoinVertical(lipgloss.Left, body, m.styles.StatusBar.Width(m.width).Render("shell  (esc to leave)"))
}

func (m Model) renderPanel(side panelmgr.Side, width int) string {
	p := m.panels.Panel(side)
	style := m.styles.PanelBorder
	if m.panels.Active() == side {
		style = m.styles.ActivePanelBorder
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", p.Path)

	cache := m.panels.GitStatus(side)
	for i := 0; i < p.Len(); i++ {
		e, _ := p.EntryAt(i)
		line := e.Name
		if e.IsDir && !e.IsParent() {
			line += "/"
		}
		if !e.IsDir {
			line = fmt.Sprintf("%-30s %10s", truncate(line, 30), humanize.Bytes(uint64(e.Size)))
		}
		if status, ok := cache.Statuses[e.Name]; ok && cache.Valid {
			line += " " + gitGlyphStyle(m, status).Render(status)
		}
		rowStyle := lipgloss.NewStyle()
		switch {
		case i == p.Cursor && m.panels.Active() == side:
			rowStyle = m.styles.Selected.Reverse(true)
		case e.IsDir:
			rowStyle = m.styles.Directory
		case e.IsSymlink:
			rowStyle = m.styles.Symlink
		}
		b.WriteString(rowStyle.Render(line))
		b.WriteString("\n")
	}
	if p.Error != "" {
		b.WriteString(m.styles.ErrorText.Render(p.Error))
	}

	return style.Width(width - 2).Height(m.height - statusBarHeight - 2).Render(b.String())
}

func gitGlyphStyle(m Model, status string) lipgloss.Style {
	switch {
	case status == "??":
		return m.styles.GitUntracked
	case strings.TrimSpace(status) != status:
		return m.styles.GitStaged
	default:
		return m.styles.GitModified
	}
}

func (m Model) renderStatusBar() string {
	text := m.statusMsg
	style := m.styles.StatusBar
	if text == "" {
		p := m.panels.ActivePanel()
		sel := p.Selected()
		text = fmt.Sprintf("%s  %d item(s)", p.Path, len(sel))
		if free, ok := p.Provider().FreeSpace(p.Path); ok {
			text += fmt.Sprintf("  free: %s", humanize.Bytes(free))
		}
	} else if m.statusIsError {
		style = style.Foreground(m.styles.ErrorText.GetForeground())
	}
	return style.Width(m.width).Render(truncate(text, m.width))
}

// truncate clips s to at most n terminal columns, accounting for
// double-width runes (CJK, emoji) the way a naive rune count can't.
func truncate(s string, n int) string {
	if n <= 0 || runewidth.StringWidth(s) <= n {
		return s
	}
	if n <= 1 {
		return runewidth.Truncate(s, n, "")
	}
	return runewidth.Truncate(s, n, "…")
}
