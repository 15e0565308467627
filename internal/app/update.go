package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dumitru-stama/bark/internal/entry"
	"github.com/dumitru-stama/bark/internal/input"
	"github.com/dumitru-stama/bark/internal/mode"
	"github.com/dumitru-stama/bark/internal/msg"
	"github.com/dumitru-stama/bark/internal/panelmgr"
	"github.com/dumitru-stama/bark/internal/task"
)

// Update handles all bubbletea messages, grounded on the teacher's own
// switch-on-concrete-type Update (internal/app/update.go), generalized
// from the teacher's per-plugin routing to Bark's single-mode dialog
// state machine routed through internal/input.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch tm := message.(type) {
	case tea.WindowSizeMsg:
		m.width = tm.Width
		m.height = tm.Height
		m.ready = true
		m.layoutPanels()
		if m.shellSession != nil {
			cols, rows := m.shellContentSize()
			m.shellSession.Resize(cols, rows)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(tm.String())

	case tickMsg:
		return m.handleTick()

	case taskMsg:
		return m.handleTaskMsg(tm)

	case findResultMsg:
		return m.handleFindResult(tm)

	case sftpConnectResultMsg:
		return m.handleSftpConnectResult(tm)

	case pluginConnectResultMsg:
		return m.handlePluginConnectResult(tm)

	case msg.ToastMsg:
		m.toastSeq++
		seq := m.toastSeq
		m.statusMsg = tm.Message
		m.statusIsError = tm.IsError
		return m, msg.ExpireAfter(seq, tm.Duration)

	case msg.StatusExpireMsg:
		if tm.Seq == m.toastSeq {
			m.statusMsg = ""
			m.statusIsError = false
		}
		return m, nil
	}
	return m, nil
}

// layoutPanels splits the terminal width between the two panels and
// tells each its visible geometry, leaving room for the status bar.
func (m *Model) layoutPanels() {
	contentHeight := m.height - statusBarHeight - 2 // borders
	if contentHeight < 1 {
		contentHeight = 1
	}
	half := (m.width - 2) / 2
	if half < 1 {
		half = 1
	}
	columns := half / 24
	if columns < 1 {
		columns = 1
	}
	if columns > 2 {
		columns = 2
	}
	m.panels.Panel(panelmgr.Left).SetVisibleGeometry(contentHeight, columns)
	m.panels.Panel(panelmgr.Right).SetVisibleGeometry(contentHeight, columns)
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	switch v := m.mode.(type) {
	case mode.BackgroundTask:
		v.Frame++
		m.mode = v
	case mode.FileOpProgress:
		v.Frame++
		m.mode = v
	}
	m.refreshGitStatus(panelmgr.Left)
	m.refreshGitStatus(panelmgr.Right)
	return m, tickCmd()
}

// handleKey intercepts the transitions internal/input deliberately
// leaves as no-ops (starting a background task would otherwise require
// internal/input to import internal/app's task-starting helpers, an
// import cycle) and otherwise defers to input.Dispatch.
func (m Model) handleKey(keyStr string) (tea.Model, tea.Cmd) {
	switch pm := m.mode.(type) {
	case mode.Confirming:
		if keyStr == "enter" {
			return m.startFileOp(pm)
		}
	case mode.SimpleConfirm:
		if keyStr == "y" || keyStr == "Y" || keyStr == "enter" {
			return m.startConfirmedAction(pm)
		}
	case mode.FindFiles:
		if keyStr == "enter" {
			m.mode = mode.BackgroundTask{Title: "Find files", Message: "searching for " + pm.Pattern}
			return m, findFilesCmd(m.panels.ActivePanel().Provider(), m.panels.ActivePanel().Path, pm.Pattern)
		}
	case mode.ScpPasswordPrompt:
		if keyStr == "enter" {
			return m.startSftpConnect(pm)
		}
	case mode.PluginConnect:
		if keyStr == "enter" {
			return m.startPluginConnect(pm)
		}
	case mode.ShellVisible:
		return m.handleShellKey(keyStr)
	}

	newMode, cmd := input.Dispatch(keyStr, m.mode, m.inputContext())
	return m.applyModeTransition(newMode, cmd)
}

// applyModeTransition installs newMode and keeps the mmapped viewer file
// in sync with it: opening on entry to mode.Viewing, keeping the current
// file mapped across a transition into mode.ViewerSearch (it carries
// PriorPath referring to the same file), and closing it on any other
// transition.
func (m Model) applyModeTransition(newMode mode.Mode, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	switch v := newMode.(type) {
	case mode.Viewing:
		if m.viewerFile == nil || m.viewerPath != v.Path {
			if err := m.openViewer(v.Path); err != nil {
				m.mode = mode.Normal{}
				return m, msg.ShowErrorToast(err.Error(), 3*time.Second)
			}
		}
	case mode.ViewerSearch:
		// viewer stays open; it refers back to PriorPath.
	default:
		m.closeViewer()
	}
	m.mode = newMode
	return m, cmd
}

func (m Model) startFileOp(pm mode.Confirming) (tea.Model, tea.Cmd) {
	plan := task.Plan{
		SourceProvider: m.panels.ActivePanel().Provider(),
		DestProvider:   m.panels.InactivePanel().Provider(),
		Sources:        pm.Sources,
		DestDir:        pm.DestInput,
	}
	var t *task.Task
	var err error
	title := "Copying"
	if pm.Op == mode.OpMove {
		title = "Moving"
		t, err = m.tasks.StartMove(plan)
	} else {
		t, err = m.tasks.StartCopy(plan)
	}
	if err != nil {
		m.mode = mode.Normal{}
		return m, msg.ShowErrorToast(err.Error(), 3*time.Second)
	}
	m.mode = mode.FileOpProgress{Title: title, FilesTotal: len(pm.Sources)}
	return m, watchTask(t)
}

func (m Model) startConfirmedAction(pm mode.SimpleConfirm) (tea.Model, tea.Cmd) {
	switch pm.Action {
	case "delete":
		sel := m.panels.ActivePanel().Selected()
		if len(sel) == 0 {
			m.mode = mode.Normal{}
			return m, nil
		}
		t, err := m.tasks.StartDelete(m.panels.ActivePanel().Provider(), entryPaths(sel))
		if err != nil {
			m.mode = mode.Normal{}
			return m, msg.ShowErrorToast(err.Error(), 3*time.Second)
		}
		m.mode = mode.FileOpProgress{Title: "Deleting", FilesTotal: len(sel)}
		return m, watchTask(t)
	}
	m.mode = mode.Normal{}
	return m, nil
}

func (m Model) handleFindResult(r findResultMsg) (tea.Model, tea.Cmd) {
	bg, ok := m.mode.(mode.BackgroundTask)
	if !ok || bg.Title != "Find files" {
		return m, nil
	}
	if r.Err != nil {
		m.mode = mode.Normal{}
		return m, msg.ShowErrorToast(r.Err.Error(), 3*time.Second)
	}
	m.mode = mode.Normal{}
	m.panels.ActivePanel().EnterTempMode(fmt.Sprintf("[find: %s]", r.Pattern), r.Entries)
	return m, msg.ShowToast(fmt.Sprintf("%d match(es)", len(r.Entries)), 3*time.Second)
}

func entryPaths(entries []entry.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}
