// Package mode implements Bark's modal state machine: the exhaustive,
// tagged-union set of top-level UI states and their per-variant payload.
// Grounded on the teacher's adapter-capability interface pattern
// (internal/adapter): rather than one giant struct with optional fields
// for every dialog, each state is its own Go type satisfying a small
// marker interface, and the input dispatcher / renderer switch on
// concrete type via a type switch. Normal is the zero-payload steady
// state; every other mode is entered explicitly and discarded on exit.
package mode

import "time"

// Kind identifies which concrete Mode variant is active, for callers
// that want a cheap comparable tag without a type switch (e.g. renderer
// z-order decisions).
type Kind int

const (
	KindNormal Kind = iota
	KindViewing
	KindViewingPlugin
	KindViewerPluginMenu
	KindViewerSearch
	KindHelp
	KindEditing
	KindRunningCommand
	KindShellVisible
	KindShellHistoryView
	KindConfirming
	KindOverwriteConfirm
	KindSimpleConfirm
	KindSourceSelector
	KindMakingDir
	KindFindFiles
	KindSelectFiles
	KindScpConnect
	KindPluginConnect
	KindScpPasswordPrompt
	KindArchivePasswordPrompt
	KindCommandHistory
	KindUserMenu
	KindUserMenuEdit
	KindBackgroundTask
	KindFileOpProgress
)

// Mode is satisfied by every state variant. The marker method keeps the
// set closed to this package: nothing outside internal/mode can define
// a new Mode, so the input dispatcher's type switches can be treated as
// exhaustive by inspection.
type Mode interface {
	Kind() Kind
	modeMarker()
}

// Op identifies a file operation in progress (Confirming, OverwriteConfirm).
type Op int

const (
	OpCopy Op = iota
	OpMove
	OpDelete
)

// Focus identifies which input field has keyboard focus within a
// multi-field dialog mode.
type Focus int

const (
	FocusPrimary Focus = iota
	FocusSecondary
	FocusButtons
)

// Normal is the steady state: the dual-pane browser with no dialog or
// overlay active. It carries no payload.
type Normal struct{}

func (Normal) Kind() Kind { return KindNormal }
func (Normal) modeMarker() {}

// Viewing is the plain text/hex/CP437 file viewer.
type Viewing struct {
	Path          string
	Scroll        int
	BinaryMode    bool
	SearchMatches []int64
	CurrentMatch  int
}

func (Viewing) Kind() Kind { return KindViewing }
func (Viewing) modeMarker() {}

// ViewingPlugin shows a file through an external viewer plugin's
// rendered line output rather than Bark's own text/hex renderer.
type ViewingPlugin struct {
	PluginName    string
	Path          string
	Scroll        int
	Lines         []string
	TotalLines    int
	StatusMessage string
}

func (ViewingPlugin) Kind() Kind { return KindViewingPlugin }
func (ViewingPlugin) modeMarker() {}

// ViewerPluginInfo is a single selectable entry in the ViewerPluginMenu.
type ViewerPluginInfo struct {
	Name        string
	Description string
}

// ViewerPluginMenu lists the viewer plugins able to open the current
// file, offered from within Viewing via a menu key.
type ViewerPluginMenu struct {
	Path          string
	BinaryMode    bool
	OriginalScroll int
	Plugins       []ViewerPluginInfo
	Selected      int
}

func (ViewerPluginMenu) Kind() Kind { return KindViewerPluginMenu }
func (ViewerPluginMenu) modeMarker() {}

// ViewerSearch overlays a search prompt on top of Viewing; the prior
// viewing state is carried so the search can be cancelled back to it
// unchanged.
type ViewerSearch struct {
	PriorPath       string
	PriorScroll     int
	PriorBinaryMode bool

	Text          string
	TextCursor    int
	CaseSensitive bool
	Hex           string
	HexCursor     int
	Focus         Focus

	PrevMatches []int64
	PrevCurrent int
}

func (ViewerSearch) Kind() Kind { return KindViewerSearch }
func (ViewerSearch) modeMarker() {}

// Help shows the scrollable keybinding reference.
type Help struct {
	Scroll int
}

func (Help) Kind() Kind { return KindHelp }
func (Help) modeMarker() {}

// Editing hands a local file off to the user's $EDITOR. If HasRemote is
// set, the file was downloaded from RemotePath on the RemoteSide panel's
// provider for editing and must be re-uploaded on successful exit.
type Editing struct {
	LocalPath  string
	HasRemote  bool
	RemoteSide int
	RemotePath string
}

func (Editing) Kind() Kind { return KindEditing }
func (Editing) modeMarker() {}

// RunningCommand hands the terminal to a foreground child process.
type RunningCommand struct {
	Command string
	Cwd      string
}

func (RunningCommand) Kind() Kind { return KindRunningCommand }
func (RunningCommand) modeMarker() {}

// ShellVisible shows the interactive command-line/PTY pane.
type ShellVisible struct{}

func (ShellVisible) Kind() Kind { return KindShellVisible }
func (ShellVisible) modeMarker() {}

// ShellHistoryView browses the scrollback of the shell pane.
type ShellHistoryView struct {
	Scroll int
}

func (ShellHistoryView) Kind() Kind { return KindShellHistoryView }
func (ShellHistoryView) modeMarker() {}

// Confirming prompts for a destination path before a Copy/Move/Delete
// begins, with sources already fixed by the selection at invocation time.
type Confirming struct {
	Op         Op
	Sources    []string
	DestInput  string
	Cursor     int
	Focus      Focus
}

func (Confirming) Kind() Kind { return KindConfirming }
func (Confirming) modeMarker() {}

// Conflict describes one source/destination pair that would overwrite an
// existing destination entry.
type Conflict struct {
	Source      string
	Destination string
}

// OverwriteConfirm walks the user through per-file overwrite decisions
// for a Copy/Move whose destination already contains some of the names
// being written.
type OverwriteConfirm struct {
	Op              Op
	AllSources      []string
	Dest            string
	Conflicts       []Conflict
	CurrentConflict int
	SkipSet         map[string]struct{}
	OverwriteAll    bool
	Focus           Focus
}

func (OverwriteConfirm) Kind() Kind { return KindOverwriteConfirm }
func (OverwriteConfirm) modeMarker() {}

// SimpleConfirm is a yes/no prompt whose Action names what a Yes answer
// should do; internal/app's startConfirmedAction interprets Action, it does not carry
// a closure (Mode payloads stay plain data, never behavior).
type SimpleConfirm struct {
	Message string
	Action  string
	Focus   Focus
}

func (SimpleConfirm) Kind() Kind { return KindSimpleConfirm }
func (SimpleConfirm) modeMarker() {}

// SourceSelector lets the user pick which of the active selection's
// entries to act on before an operation that targets TargetSide.
type SourceSelector struct {
	TargetSide int
	Sources    []string
	Selected   map[string]struct{}
}

func (SourceSelector) Kind() Kind { return KindSourceSelector }
func (SourceSelector) modeMarker() {}

// MakingDir prompts for a new directory name.
type MakingDir struct {
	Name   string
	Cursor int
	Error  string
}

func (MakingDir) Kind() Kind { return KindMakingDir }
func (MakingDir) modeMarker() {}

// FindFiles prompts for a filename pattern, then shows matches as a
// temp-mode panel listing once the background search completes.
type FindFiles struct {
	Pattern string
	Cursor  int
	Error   string
}

func (FindFiles) Kind() Kind { return KindFindFiles }
func (FindFiles) modeMarker() {}

// SelectFiles prompts for a glob pattern used to mark/unmark entries in
// bulk within the active panel.
type SelectFiles struct {
	Pattern string
	Cursor  int
	Unmark  bool
	Error   string
}

func (SelectFiles) Kind() Kind { return KindSelectFiles }
func (SelectFiles) modeMarker() {}

// ScpConnect prompts for SFTP connection parameters.
type ScpConnect struct {
	Host     string
	Port     string
	User     string
	Path     string
	Focus    Focus
	Error    string
}

func (ScpConnect) Kind() Kind { return KindScpConnect }
func (ScpConnect) modeMarker() {}

// PluginConnect prompts for which provider plugin to mount and its
// connection parameters, field set driven by the plugin's dialog schema.
type PluginConnect struct {
	PluginName string
	Fields     map[string]string
	FieldOrder []string
	Focus      int
	Error      string
}

func (PluginConnect) Kind() Kind { return KindPluginConnect }
func (PluginConnect) modeMarker() {}

// ScpPasswordPrompt asks for the password to complete a pending SFTP
// connection.
type ScpPasswordPrompt struct {
	Host     string
	Port     string
	User     string
	Path     string
	Password string
	Cursor   int
	Save     bool
	Error    string
}

func (ScpPasswordPrompt) Kind() Kind { return KindScpPasswordPrompt }
func (ScpPasswordPrompt) modeMarker() {}

// ArchivePasswordPrompt asks for the password to open an encrypted
// archive entry.
type ArchivePasswordPrompt struct {
	ArchivePath string
	Password    string
	Cursor      int
	Error       string
}

func (ArchivePasswordPrompt) Kind() Kind { return KindArchivePasswordPrompt }
func (ArchivePasswordPrompt) modeMarker() {}

// CommandHistory browses and re-issues previously run shell commands.
type CommandHistory struct {
	Selected int
	Scroll   int
}

func (CommandHistory) Kind() Kind { return KindCommandHistory }
func (CommandHistory) modeMarker() {}

// UserMenuRule is one configured user-menu entry (a named shortcut that
// runs a command template against the active selection).
type UserMenuRule struct {
	Label   string
	Command string
}

// UserMenu lists configured user-menu entries for invocation.
type UserMenu struct {
	Rules    []UserMenuRule
	Selected int
	Scroll   int
}

func (UserMenu) Kind() Kind { return KindUserMenu }
func (UserMenu) modeMarker() {}

// UserMenuEdit edits the user-menu rule list itself.
type UserMenuEdit struct {
	Rules        []UserMenuRule
	EditingIndex int
	Inputs       [2]string // label, command
	Focus        Focus
	Error        string
}

func (UserMenuEdit) Kind() Kind { return KindUserMenuEdit }
func (UserMenuEdit) modeMarker() {}

// BackgroundTask shows an indeterminate-progress spinner for a task with
// no meaningful byte/file count (e.g. a remote connect, a find-files
// scan).
type BackgroundTask struct {
	Title   string
	Message string
	Frame   int
}

func (BackgroundTask) Kind() Kind { return KindBackgroundTask }
func (BackgroundTask) modeMarker() {}

// FileOpProgress shows determinate progress for a copy/move/delete.
type FileOpProgress struct {
	Title       string
	BytesDone   int64
	BytesTotal  int64
	CurrentFile string
	FilesDone   int
	FilesTotal  int
	Frame       int
}

func (FileOpProgress) Kind() Kind { return KindFileOpProgress }
func (FileOpProgress) modeMarker() {}

// SpinnerFrames is the glyph cycle used by BackgroundTask/FileOpProgress
// rendering, advanced once per tick.
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// TickInterval is how often the renderer should advance Frame.
const TickInterval = 120 * time.Millisecond
