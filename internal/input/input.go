// Package input implements Bark's key dispatcher (SPEC_FULL.md §4.7):
// resolve the pressed key through internal/keymap, then route the
// resulting command to the handler for the current internal/mode
// variant, mutating the active panel or task manager or producing a
// mode transition. Grounded on the teacher's own event-to-command
// resolution in internal/app/update.go, generalized from the teacher's
// many UI-specific contexts down to Bark's "normal" browser context
// plus one handler per dialog mode.
//
// Normal mode follows a fixed precedence chain: a dialog mode (anything
// other than mode.Normal) consumes every key itself and never falls
// through to the browser; within mode.Normal, the key is resolved in the
// "normal" context first and in the "global" context (quit, help,
// switch-pane) only when "normal" has no binding for it, and only if
// neither matched does an unbound printable rune fall through to
// JumpToPrefix.
package input

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dumitru-stama/bark/internal/entry"
	"github.com/dumitru-stama/bark/internal/keymap"
	"github.com/dumitru-stama/bark/internal/mode"
	"github.com/dumitru-stama/bark/internal/msg"
	"github.com/dumitru-stama/bark/internal/panel"
	"github.com/dumitru-stama/bark/internal/panelmgr"
	"github.com/dumitru-stama/bark/internal/pluginhost"
	"github.com/dumitru-stama/bark/internal/task"
)

// PluginCandidate is one discovered plugin executable paired with the
// Info its --plugin-info handshake returned, offered to mode.PluginConnect.
type PluginCandidate struct {
	Path string
	Info pluginhost.Info
}

// Context bundles everything a dispatch needs beyond the key and mode.
type Context struct {
	Panels  *panelmgr.Manager
	Tasks   *task.Manager
	Keymap  *keymap.Registry
	Plugins []PluginCandidate
	NextSeq func() int // allocates the next toast sequence number
}

// Dispatch resolves keyStr against the current mode and returns the
// mode to transition to (often current, unchanged) plus any tea.Cmd to
// run (background task kickoff, toast, quit).
func Dispatch(keyStr string, current mode.Mode, ctx *Context) (mode.Mode, tea.Cmd) {
	switch m := current.(type) {
	case mode.Normal:
		return dispatchNormal(keyStr, m, ctx)
	case mode.Confirming:
		return dispatchConfirming(keyStr, m, ctx)
	case mode.OverwriteConfirm:
		return dispatchOverwriteConfirm(keyStr, m, ctx)
	case mode.SimpleConfirm:
		return dispatchSimpleConfirm(keyStr, m, ctx)
	case mode.MakingDir:
		return dispatchMakingDir(keyStr, m, ctx)
	case mode.FindFiles:
		return dispatchFindFiles(keyStr, m, ctx)
	case mode.SelectFiles:
		return dispatchSelectFiles(keyStr, m, ctx)
	case mode.Help:
		return dispatchHelp(keyStr, m, ctx)
	case mode.Viewing:
		return dispatchViewing(keyStr, m, ctx)
	case mode.ScpConnect:
		return dispatchScpConnect(keyStr, m, ctx)
	case mode.ScpPasswordPrompt:
		return dispatchScpPasswordPrompt(keyStr, m, ctx)
	case mode.PluginConnect:
		return dispatchPluginConnect(keyStr, m, ctx)
	default:
		// Every remaining dialog mode (ArchivePasswordPrompt,
		// CommandHistory, UserMenu, UserMenuEdit, SourceSelector,
		// ShellVisible, ShellHistoryView, ViewerSearch,
		// ViewerPluginMenu, ViewingPlugin, RunningCommand, Editing,
		// BackgroundTask, FileOpProgress) shares the same minimal
		// contract here: Esc always returns to Normal. ShellVisible's
		// keystrokes are intercepted by internal/app before Dispatch
		// is even called (they go to the pty, not a mode field), and
		// the rest still await their own field-level editing support.
		if keyStr == "esc" {
			return mode.Normal{}, nil
		}
		return current, nil
	}
}

func dispatchNormal(keyStr string, m mode.Normal, ctx *Context) (mode.Mode, tea.Cmd) {
	cmd := ctx.Keymap.Resolve("normal", keyStr)
	panel := ctx.Panels.ActivePanel()

	switch cmd {
	case "quit":
		return m, tea.Quit
	case "help":
		return mode.Help{}, nil
	case "switch-pane":
		ctx.Panels.SetActive(ctx.Panels.Active().Opposite())
		return m, nil
	case "cursor-up":
		panel.MoveUp(1)
	case "cursor-down":
		panel.MoveDown(1)
	case "cursor-left":
		panel.MoveLeft()
	case "cursor-right":
		panel.MoveRight()
	case "page-up":
		panel.PageUp()
	case "page-down":
		panel.PageDown()
	case "cursor-home":
		panel.Home()
	case "cursor-end":
		panel.End()
	case "toggle-select":
		panel.ToggleSelect()
		panel.MoveDown(1)
	case "toggle-hidden":
		panel.ToggleHidden()
	case "swap-panels":
		ctx.Panels.Swap()
	case "refresh":
		if err := panel.Refresh(); err != nil {
			return m, msg.ShowErrorToast(err.Error(), 3*time.Second)
		}
	case "open":
		return openEntry(panel, m)
	case "go-up-dir":
		return goUpDir(panel, m)
	case "view":
		return openViewer(panel)
	case "mkdir":
		return mode.MakingDir{}, nil
	case "delete":
		sel := panel.Selected()
		if len(sel) == 0 {
			return m, nil
		}
		return mode.SimpleConfirm{Message: fmt.Sprintf("Delete %d item(s)?", len(sel)), Action: "delete"}, nil
	case "copy":
		sel := panel.Selected()
		if len(sel) == 0 {
			return m, nil
		}
		return mode.Confirming{Op: mode.OpCopy, Sources: pathsOf(sel), DestInput: ctx.Panels.InactivePanel().Path}, nil
	case "move":
		sel := panel.Selected()
		if len(sel) == 0 {
			return m, nil
		}
		return mode.Confirming{Op: mode.OpMove, Sources: pathsOf(sel), DestInput: ctx.Panels.InactivePanel().Path}, nil
	case "find-files":
		return mode.FindFiles{}, nil
	case "select-files":
		return mode.SelectFiles{}, nil
	case "unselect-files":
		return mode.SelectFiles{Unmark: true}, nil
	case "scp-connect":
		return mode.ScpConnect{Port: "22"}, nil
	case "plugin-connect":
		if len(ctx.Plugins) == 0 {
			return m, msg.ShowErrorToast("no plugins found", 3*time.Second)
		}
		cand := ctx.Plugins[0]
		fields := make(map[string]string, len(cand.Info.Fields))
		order := make([]string, len(cand.Info.Fields))
		for i, f := range cand.Info.Fields {
			fields[f.Name] = f.Default
			order[i] = f.Name
		}
		return mode.PluginConnect{PluginName: cand.Info.Name, Fields: fields, FieldOrder: order}, nil
	case "toggle-shell":
		return mode.ShellVisible{}, nil
	case "yank-path":
		e, ok := panel.Current()
		if !ok {
			return m, nil
		}
		if err := clipboard.WriteAll(e.Path); err != nil {
			return m, msg.ShowErrorToast("clipboard: "+err.Error(), 3*time.Second)
		}
		return m, msg.ShowToast("copied path to clipboard", 2*time.Second)
	case "history":
		return mode.CommandHistory{}, nil
	case "user-menu":
		return mode.UserMenu{}, nil
	case "command-line":
		return mode.RunningCommand{Cwd: panel.Path}, nil
	case "":
		// Unbound key: fall through to a printable-rune quick jump,
		// the last stop in the precedence chain.
		if r := []rune(keyStr); len(r) == 1 {
			panel.JumpToPrefix(string(r))
		}
	}
	return m, nil
}

func pathsOf(entries []entry.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}

// openEntry implements Enter on the cursor row: descend into a
// directory, or open the viewer for a regular file.
func openEntry(p *panel.Panel, m mode.Normal) (mode.Mode, tea.Cmd) {
	e, ok := p.Current()
	if !ok {
		return m, nil
	}
	if e.IsParent() {
		p.Path = p.Provider().Parent(p.Path)
		if err := p.Refresh(); err != nil {
			return m, msg.ShowErrorToast(err.Error(), 3*time.Second)
		}
		return m, nil
	}
	if e.IsDir {
		p.Path = e.Path
		if err := p.Refresh(); err != nil {
			return m, msg.ShowErrorToast(err.Error(), 3*time.Second)
		}
		return m, nil
	}
	return mode.Viewing{Path: e.Path}, nil
}

// goUpDir implements Backspace: always go to the parent, regardless of
// the cursor row.
func goUpDir(p *panel.Panel, m mode.Normal) (mode.Mode, tea.Cmd) {
	if p.Path == p.Provider().Parent(p.Path) {
		return m, nil
	}
	p.Path = p.Provider().Parent(p.Path)
	if err := p.Refresh(); err != nil {
		return m, msg.ShowErrorToast(err.Error(), 3*time.Second)
	}
	return m, nil
}

func openViewer(p *panel.Panel) (mode.Mode, tea.Cmd) {
	e, ok := p.Current()
	if !ok || e.IsDir || e.IsParent() {
		return mode.Normal{}, nil
	}
	return mode.Viewing{Path: e.Path}, nil
}

func dispatchConfirming(keyStr string, m mode.Confirming, ctx *Context) (mode.Mode, tea.Cmd) {
	switch keyStr {
	case "esc":
		return mode.Normal{}, nil
	case "enter":
		return mode.Normal{}, nil // internal/app performs the actual StartCopy/StartMove, then clears
	case "backspace":
		if m.Cursor > 0 {
			m.DestInput = m.DestInput[:m.Cursor-1] + m.DestInput[m.Cursor:]
			m.Cursor--
		}
		return m, nil
	default:
		if r := []rune(keyStr); len(r) == 1 {
			m.DestInput = m.DestInput[:m.Cursor] + string(r) + m.DestInput[m.Cursor:]
			m.Cursor++
		}
		return m, nil
	}
}

func dispatchOverwriteConfirm(keyStr string, m mode.OverwriteConfirm, ctx *Context) (mode.Mode, tea.Cmd) {
	reply := func(d task.Decision) (mode.Mode, tea.Cmd) {
		if t, busy := ctx.Tasks.Active(); busy {
			t.Reply(d)
		}
		m.CurrentConflict++
		if m.CurrentConflict >= len(m.Conflicts) {
			return mode.Normal{}, nil
		}
		return m, nil
	}
	switch keyStr {
	case "y", "Y":
		return reply(task.DecisionYes)
	case "a", "A":
		return reply(task.DecisionAll)
	case "s", "S":
		return reply(task.DecisionSkip)
	case "n", "N":
		return reply(task.DecisionSkipAll)
	case "c", "C", "esc":
		return reply(task.DecisionCancel)
	}
	return m, nil
}

func dispatchSimpleConfirm(keyStr string, m mode.SimpleConfirm, ctx *Context) (mode.Mode, tea.Cmd) {
	switch keyStr {
	case "y", "Y", "enter":
		return mode.Normal{}, confirmedCmd(m.Action)
	case "n", "N", "esc":
		return mode.Normal{}, nil
	}
	return m, nil
}

// confirmedCmd is a placeholder hook internal/app overrides by checking
// SimpleConfirm.Action itself after Dispatch returns Normal; kept here
// so the dispatcher's control flow is visible without internal/input
// importing internal/app's task-starting helpers (which would be an
// import cycle, since internal/app imports internal/input).
func confirmedCmd(action string) tea.Cmd { return nil }

func dispatchMakingDir(keyStr string, m mode.MakingDir, ctx *Context) (mode.Mode, tea.Cmd) {
	switch keyStr {
	case "esc":
		return mode.Normal{}, nil
	case "enter":
		if m.Name == "" {
			m.Error = "name required"
			return m, nil
		}
		if err := ctx.Panels.ActivePanel().Provider().Mkdir(ctx.Panels.ActivePanel().Join(ctx.Panels.ActivePanel().Path, m.Name)); err != nil {
			m.Error = err.Error()
			return m, nil
		}
		ctx.Panels.ActivePanel().Refresh()
		return mode.Normal{}, nil
	case "backspace":
		if m.Cursor > 0 {
			m.Name = m.Name[:m.Cursor-1] + m.Name[m.Cursor:]
			m.Cursor--
		}
		return m, nil
	default:
		if r := []rune(keyStr); len(r) == 1 {
			m.Name = m.Name[:m.Cursor] + string(r) + m.Name[m.Cursor:]
			m.Cursor++
		}
		return m, nil
	}
}

func dispatchFindFiles(keyStr string, m mode.FindFiles, ctx *Context) (mode.Mode, tea.Cmd) {
	switch keyStr {
	case "esc":
		return mode.Normal{}, nil
	case "enter":
		return mode.BackgroundTask{Title: "Find files", Message: "searching for " + m.Pattern}, nil
	case "backspace":
		if m.Cursor > 0 {
			m.Pattern = m.Pattern[:m.Cursor-1] + m.Pattern[m.Cursor:]
			m.Cursor--
		}
		return m, nil
	default:
		if r := []rune(keyStr); len(r) == 1 {
			m.Pattern = m.Pattern[:m.Cursor] + string(r) + m.Pattern[m.Cursor:]
			m.Cursor++
		}
		return m, nil
	}
}

func dispatchSelectFiles(keyStr string, m mode.SelectFiles, ctx *Context) (mode.Mode, tea.Cmd) {
	switch keyStr {
	case "esc":
		return mode.Normal{}, nil
	case "enter":
		return mode.Normal{}, nil
	case "backspace":
		if m.Cursor > 0 {
			m.Pattern = m.Pattern[:m.Cursor-1] + m.Pattern[m.Cursor:]
			m.Cursor--
		}
		return m, nil
	default:
		if r := []rune(keyStr); len(r) == 1 {
			m.Pattern = m.Pattern[:m.Cursor] + string(r) + m.Pattern[m.Cursor:]
			m.Cursor++
		}
		return m, nil
	}
}

func dispatchHelp(keyStr string, m mode.Help, ctx *Context) (mode.Mode, tea.Cmd) {
	switch keyStr {
	case "esc", "q", "?":
		return mode.Normal{}, nil
	case "up", "k":
		if m.Scroll > 0 {
			m.Scroll--
		}
	case "down", "j":
		m.Scroll++
	}
	return m, nil
}

// dispatchScpConnect edits the four connection fields in place, cycling
// focus with Tab/Shift+Tab across Host/Port/User/Path (mode.Focus is a
// plain int, so values beyond its three named constants are legal here).
func dispatchScpConnect(keyStr string, m mode.ScpConnect, ctx *Context) (mode.Mode, tea.Cmd) {
	switch keyStr {
	case "esc":
		return mode.Normal{}, nil
	case "tab":
		m.Focus = mode.Focus((int(m.Focus) + 1) % 4)
		return m, nil
	case "shift+tab":
		m.Focus = mode.Focus((int(m.Focus) + 3) % 4)
		return m, nil
	case "enter":
		if m.Host == "" {
			m.Error = "host required"
			return m, nil
		}
		return mode.ScpPasswordPrompt{Host: m.Host, Port: m.Port, User: m.User, Path: m.Path}, nil
	case "backspace":
		editScpField(&m, func(s string) string {
			if len(s) == 0 {
				return s
			}
			return s[:len(s)-1]
		})
		return m, nil
	default:
		if r := []rune(keyStr); len(r) == 1 {
			editScpField(&m, func(s string) string { return s + string(r) })
		}
		return m, nil
	}
}

func editScpField(m *mode.ScpConnect, f func(string) string) {
	switch int(m.Focus) % 4 {
	case 0:
		m.Host = f(m.Host)
	case 1:
		m.Port = f(m.Port)
	case 2:
		m.User = f(m.User)
	case 3:
		m.Path = f(m.Path)
	}
}

func dispatchScpPasswordPrompt(keyStr string, m mode.ScpPasswordPrompt, ctx *Context) (mode.Mode, tea.Cmd) {
	switch keyStr {
	case "esc":
		return mode.Normal{}, nil
	case "enter":
		return mode.Normal{}, nil // internal/app dials the real connection, then clears
	case "tab":
		m.Save = !m.Save
		return m, nil
	case "backspace":
		if m.Cursor > 0 {
			m.Password = m.Password[:m.Cursor-1] + m.Password[m.Cursor:]
			m.Cursor--
		}
		return m, nil
	default:
		if r := []rune(keyStr); len(r) == 1 {
			m.Password = m.Password[:m.Cursor] + string(r) + m.Password[m.Cursor:]
			m.Cursor++
		}
		return m, nil
	}
}

// dispatchPluginConnect edits whichever field FieldOrder[Focus] names;
// FieldOrder/Fields are populated from the chosen plugin's schema by
// dispatchNormal's "plugin-connect" case before this is ever reached.
func dispatchPluginConnect(keyStr string, m mode.PluginConnect, ctx *Context) (mode.Mode, tea.Cmd) {
	if len(m.FieldOrder) == 0 {
		if keyStr == "esc" {
			return mode.Normal{}, nil
		}
		return m, nil
	}
	switch keyStr {
	case "esc":
		return mode.Normal{}, nil
	case "tab":
		m.Focus = (m.Focus + 1) % len(m.FieldOrder)
		return m, nil
	case "shift+tab":
		m.Focus = (m.Focus - 1 + len(m.FieldOrder)) % len(m.FieldOrder)
		return m, nil
	case "enter":
		return mode.Normal{}, nil // internal/app performs the real plugin connect, then clears
	case "backspace":
		name := m.FieldOrder[m.Focus]
		if v := m.Fields[name]; len(v) > 0 {
			m.Fields[name] = v[:len(v)-1]
		}
		return m, nil
	default:
		if r := []rune(keyStr); len(r) == 1 {
			name := m.FieldOrder[m.Focus]
			m.Fields[name] += string(r)
		}
		return m, nil
	}
}

func dispatchViewing(keyStr string, m mode.Viewing, ctx *Context) (mode.Mode, tea.Cmd) {
	switch keyStr {
	case "esc", "q":
		return mode.Normal{}, nil
	case "up", "k":
		if m.Scroll > 0 {
			m.Scroll--
		}
	case "down", "j":
		m.Scroll++
	case "tab":
		m.BinaryMode = !m.BinaryMode
	case "/":
		return mode.ViewerSearch{PriorPath: m.Path, PriorScroll: m.Scroll, PriorBinaryMode: m.BinaryMode}, nil
	}
	return m, nil
}
