package task

import (
	"errors"
	"sync"
)

// ErrBusy is returned by Manager.Start when a task is already running.
var ErrBusy = errors.New("task: a background task is already active")

// Manager enforces the "at most one active task" contract from
// SPEC_FULL.md §4.3. The UI owns a single Manager for the lifetime of
// the process.
type Manager struct {
	mu     sync.Mutex
	active *Task
}

// NewManager creates an empty Manager.
func NewManager() *Manager { return &Manager{} }

// Active returns the currently running task, if any.
func (m *Manager) Active() (*Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active, m.active != nil
}

// start registers t as the active task. Callers must have already
// confirmed (via Active) that no task was running, but start
// re-validates under lock to close the race.
func (m *Manager) start(t *Task) (*Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active != nil {
		return nil, ErrBusy
	}
	m.active = t
	return t, nil
}

// Finish must be called by the UI after observing a terminal message
// (Completed, Failed, Cancelled) from t, so a new task can be started.
func (m *Manager) Finish(t *Task) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == t {
		m.active = nil
	}
}
