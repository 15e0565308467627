// Package task implements Bark's background task engine: a single
// worker goroutine driving a long-running file operation (copy, move,
// delete, or recursive size), communicating progress and completion
// back to the UI goroutine over a typed message channel, with an atomic
// cancellation flag the worker polls between files and between chunks.
//
// Grounded on the teacher's own worker-goroutine-plus-channel pattern
// for long-running subprocess/session work (internal/adapter's
// streamed-output handling): a dedicated goroutine owns a resource
// outright and reports back through a channel rather than the caller
// polling the resource directly. Only one Task may be active at a time,
// matching the contract in SPEC_FULL.md §4.3 — Manager enforces this.
package task

import (
	"sync/atomic"

	"github.com/dumitru-stama/bark/internal/bkerr"
)

// ChunkSize is the step, in bytes, by which a cross-provider copy
// advances its byte counter and checks for cancellation. It does not
// bound memory: the copy reads the whole source file in one ReadFile.
const ChunkSize = 256 * 1024

// Op identifies the kind of file operation a Task performs.
type Op int

const (
	OpCopy Op = iota
	OpMove
	OpDelete
	OpRecursiveSize
)

// Progress is a snapshot of a running task's advancement.
type Progress struct {
	FilesDone   int
	FilesTotal  int
	BytesDone   int64
	BytesTotal  int64
	CurrentFile string
}

// Conflict describes a destination path that already exists.
type Conflict struct {
	Source      string
	Destination string
}

// Decision is the UI's answer to an AskOverwrite message.
type Decision int

const (
	DecisionYes Decision = iota
	DecisionAll
	DecisionSkip
	DecisionSkipAll
	DecisionCancel
)

// Message is the closed set of messages a worker sends to the UI. Exactly
// one of the embedded payload fields is meaningful for a given Kind.
type Message struct {
	Kind MessageKind

	Progress Progress
	Summary  string
	Err      error

	Conflict       Conflict
	AlreadyAnswered bool
}

// MessageKind discriminates Message.
type MessageKind int

const (
	MsgProgress MessageKind = iota
	MsgCompleted
	MsgFailed
	MsgAskOverwrite
	MsgCancelled
)

// Task is a running background operation. Callers receive from Messages
// (non-blockingly, once per UI tick) until a terminal message
// (Completed, Failed, or Cancelled) arrives.
type Task struct {
	Op       Op
	Messages <-chan Message

	cancelled *atomic.Bool
	replyCh   chan Decision
}

// Cancel requests cooperative cancellation. The worker observes this
// before starting each file and between ChunkSize steps of a
// cross-provider copy (after the source has been read); it is not
// instantaneous.
func (t *Task) Cancel() {
	t.cancelled.Store(true)
}

// Cancelled reports whether Cancel has been called.
func (t *Task) Cancelled() bool {
	return t.cancelled.Load()
}

// Reply answers a pending AskOverwrite message. It must only be called
// after receiving a MsgAskOverwrite message and blocks the worker until
// called, so callers must not delay indefinitely.
func (t *Task) Reply(d Decision) {
	t.replyCh <- d
}

// worker is the shared internal state a spawned goroutine closes over.
// It is not exported; callers interact only through Task and the
// Manager's Start* methods.
type worker struct {
	out       chan Message
	cancelled *atomic.Bool
	replyCh   chan Decision
}

func newWorker() (*worker, *Task) {
	out := make(chan Message, 16)
	cancelled := &atomic.Bool{}
	replyCh := make(chan Decision)
	w := &worker{out: out, cancelled: cancelled, replyCh: replyCh}
	t := &Task{Messages: out, cancelled: cancelled, replyCh: replyCh}
	return w, t
}

func (w *worker) sendProgress(p Progress) {
	w.out <- Message{Kind: MsgProgress, Progress: p}
}

func (w *worker) sendCompleted(summary string) {
	w.out <- Message{Kind: MsgCompleted, Summary: summary}
	close(w.out)
}

func (w *worker) sendFailed(err error) {
	w.out <- Message{Kind: MsgFailed, Err: err}
	close(w.out)
}

func (w *worker) sendCancelled() {
	w.out <- Message{Kind: MsgCancelled}
	close(w.out)
}

// askOverwrite sends an AskOverwrite message and blocks until the UI
// calls Reply, returning the Decision it sent. Cancel does not interrupt
// the wait; the copy loop next checks the cancel flag before the
// following item.
func (w *worker) askOverwrite(c Conflict, alreadyAnswered bool) Decision {
	w.out <- Message{Kind: MsgAskOverwrite, Conflict: c, AlreadyAnswered: alreadyAnswered}
	return <-w.replyCh
}

func classifyAsTaskError(op string, path string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*bkerr.Error); ok {
		return err
	}
	return bkerr.New(bkerr.Operation, op, path, err)
}
