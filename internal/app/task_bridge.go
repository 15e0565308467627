package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dumitru-stama/bark/internal/mode"
	"github.com/dumitru-stama/bark/internal/msg"
	"github.com/dumitru-stama/bark/internal/task"
)

// taskMsg wraps one task.Message delivered to the Update loop, tagged
// with the task it came from so a message from a task the UI has
// already abandoned (e.g. after Finish) is recognizable and ignored.
type taskMsg struct {
	t   *task.Task
	msg task.Message
}

// tickMsg advances mode.BackgroundTask/mode.FileOpProgress spinners.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(mode.TickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// watchTask returns a tea.Cmd that blocks on t.Messages for its next
// value, so the Update loop is re-entered once per message rather than
// the UI goroutine polling the channel directly.
func watchTask(t *task.Task) tea.Cmd {
	return func() tea.Msg {
		m, ok := <-t.Messages
		if !ok {
			return taskMsg{t: t, msg: task.Message{Kind: task.MsgCompleted}}
		}
		return taskMsg{t: t, msg: m}
	}
}

// handleTaskMsg applies one task.Message to the Model: progress updates
// the active mode.FileOpProgress payload, terminal messages clear the
// task and return to Normal (with a toast), and AskOverwrite switches
// into mode.OverwriteConfirm.
func (m Model) handleTaskMsg(tm taskMsg) (tea.Model, tea.Cmd) {
	active, busy := m.tasks.Active()
	if !busy || active != tm.t {
		return m, nil
	}

	switch tm.msg.Kind {
	case task.MsgProgress:
		if fop, ok := m.mode.(mode.FileOpProgress); ok {
			fop.BytesDone = tm.msg.Progress.BytesDone
			fop.BytesTotal = tm.msg.Progress.BytesTotal
			fop.FilesDone = tm.msg.Progress.FilesDone
			fop.FilesTotal = tm.msg.Progress.FilesTotal
			fop.CurrentFile = tm.msg.Progress.CurrentFile
			m.mode = fop
		}
		return m, watchTask(tm.t)

	case task.MsgAskOverwrite:
		m.mode = mode.OverwriteConfirm{
			Conflicts: []mode.Conflict{{
				Source:      tm.msg.Conflict.Source,
				Destination: tm.msg.Conflict.Destination,
			}},
		}
		return m, watchTask(tm.t)

	case task.MsgCompleted:
		m.tasks.Finish(tm.t)
		m.mode = mode.Normal{}
		m.panels.ActivePanel().Refresh()
		m.panels.InactivePanel().Refresh()
		m.panels.InvalidateGitStatus(m.panels.Active())
		m.panels.InvalidateGitStatus(m.panels.Active().Opposite())
		return m, msg.ShowToast(tm.msg.Summary, 3*time.Second)

	case task.MsgFailed:
		m.tasks.Finish(tm.t)
		m.mode = mode.Normal{}
		m.lastErr = tm.msg.Err
		return m, msg.ShowErrorToast(fmt.Sprintf("failed: %v", tm.msg.Err), 5*time.Second)

	case task.MsgCancelled:
		m.tasks.Finish(tm.t)
		m.mode = mode.Normal{}
		return m, msg.ShowToast("cancelled", 2*time.Second)
	}
	return m, watchTask(tm.t)
}
