// Package app implements Bark's root bubbletea model: the glue between
// the dual panels, the active mode.Mode dialog, and the background task
// manager. Grounded on the teacher's internal/app (model.go/update.go/
// view.go): a single Model struct carrying UI flags and sub-widget
// state, an Init that kicks off a periodic tick plus any startup
// commands, and an Update/View split across files by concern. Bark has
// one "plugin" slot worth of complexity (two panels instead of the
// teacher's N-plugin tab registry) so the generalization collapses the
// teacher's registry.Plugins()/activePlugin bookkeeping down to a fixed
// panelmgr.Manager.
package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dumitru-stama/bark/internal/config"
	"github.com/dumitru-stama/bark/internal/gitstatus"
	"github.com/dumitru-stama/bark/internal/input"
	"github.com/dumitru-stama/bark/internal/keymap"
	"github.com/dumitru-stama/bark/internal/mode"
	"github.com/dumitru-stama/bark/internal/panel"
	"github.com/dumitru-stama/bark/internal/panelmgr"
	"github.com/dumitru-stama/bark/internal/pluginhost"
	"github.com/dumitru-stama/bark/internal/provider/local"
	"github.com/dumitru-stama/bark/internal/shell"
	"github.com/dumitru-stama/bark/internal/styles"
	"github.com/dumitru-stama/bark/internal/task"
	"github.com/dumitru-stama/bark/internal/viewer"
)

const (
	statusBarHeight = 1
	minWidth        = 60
	minHeight       = 14
)

// Model is the root Bubble Tea model for Bark.
type Model struct {
	cfg    *config.Config
	styles styles.Styles
	keymap *keymap.Registry

	panels *panelmgr.Manager
	tasks  *task.Manager
	mode   mode.Mode

	history      *shell.History
	shellSession *shell.Session

	plugins []input.PluginCandidate

	viewerFile *viewer.File
	viewerPath string

	width, height int
	ready         bool

	statusMsg     string
	statusIsError bool
	toastSeq      int

	lastErr error
}

// New creates the root Model with two local-filesystem panels rooted at
// leftPath and rightPath.
func New(cfg *config.Config, st styles.Styles, leftPath, rightPath string) Model {
	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	keymap.ApplyOverrides(km, cfg.Keybindings)

	sortCfg := sortConfigFromUser(cfg.Sorting)
	left := panel.New(local.New(), leftPath)
	left.Sort = sortCfg
	right := panel.New(local.New(), rightPath)
	right.Sort = sortCfg

	var hist *shell.History
	if cfg.General.HistoryFile != "" {
		if h, err := shell.LoadHistory(config.ExpandPath(cfg.General.HistoryFile)); err == nil {
			hist = h
		}
	}
	if hist == nil {
		hist, _ = shell.LoadHistory("")
	}

	return Model{
		cfg:     cfg,
		styles:  st,
		keymap:  km,
		panels:  panelmgr.New(left, right),
		tasks:   task.NewManager(),
		mode:    mode.Normal{},
		history: hist,
		plugins: discoverProviderPlugins(),
	}
}

// discoverProviderPlugins handshakes every plugin executable found by
// pluginhost.Discover and keeps the ones offering the provider dialect,
// so mode.PluginConnect has something to mount. Plugins that fail their
// handshake (crash or unparsable output on --plugin-info, timeout)
// are silently skipped rather than blocking startup.
func discoverProviderPlugins() []input.PluginCandidate {
	var candidates []input.PluginCandidate
	for _, path := range pluginhost.Discover() {
		info, err := pluginhost.Handshake(context.Background(), path)
		if err != nil || info.Dialect != pluginhost.DialectProvider {
			continue
		}
		candidates = append(candidates, input.PluginCandidate{Path: path, Info: info})
	}
	return candidates
}

func sortConfigFromUser(s config.SortingConfig) panel.Config {
	cfg := panel.DefaultConfig()
	switch s.Field {
	case "size":
		cfg.Field = panel.SortBySize
	case "modified":
		cfg.Field = panel.SortByModified
	case "extension":
		cfg.Field = panel.SortByExtension
	default:
		cfg.Field = panel.SortByName
	}
	cfg.Descending = s.Descending
	cfg.DirsFirst = s.DirsFirst
	cfg.UppercaseFirst = s.UppercaseFirst
	return cfg
}

// Init lists both panels' starting directories and starts the spinner
// tick used by mode.BackgroundTask/mode.FileOpProgress rendering.
func (m Model) Init() tea.Cmd {
	m.panels.Panel(panelmgr.Left).Refresh()
	m.panels.Panel(panelmgr.Right).Refresh()
	return tickCmd()
}

// inputContext builds the internal/input.Context for the current Model
// state. Rebuilt per dispatch rather than cached since toastSeq changes
// between calls.
func (m *Model) inputContext() *input.Context {
	return &input.Context{
		Panels:  m.panels,
		Tasks:   m.tasks,
		Keymap:  m.keymap,
		Plugins: m.plugins,
		NextSeq: func() int {
			m.toastSeq++
			return m.toastSeq
		},
	}
}

// openViewer mmaps path through the active panel's provider, closing
// any previously open file first. The viewer only supports providers
// that expose a local path, which among this module's providers is only
// the local one (archive, sftp and plugin providers return false from
// ToLocalPath); other providers report an error toast
// rather than attempting a partial read-into-memory viewer.
func (m *Model) openViewer(path string) error {
	localPath, ok := m.panels.ActivePanel().Provider().ToLocalPath(path)
	if !ok {
		return fmt.Errorf("cannot view %s: provider has no local path", path)
	}
	f, err := viewer.Open(localPath)
	if err != nil {
		return err
	}
	m.closeViewer()
	m.viewerFile = f
	m.viewerPath = path
	return nil
}

func (m *Model) closeViewer() {
	if m.viewerFile != nil {
		m.viewerFile.Close()
		m.viewerFile = nil
		m.viewerPath = ""
	}
}

// refreshGitStatus recomputes the git status cache for side if it is
// stale and the panel's path is inside a work tree, matching
// panelmgr.Manager's invalidate-on-navigate contract.
func (m *Model) refreshGitStatus(side panelmgr.Side) {
	if !m.panels.NeedsGitStatusRefresh(side) {
		return
	}
	p := m.panels.Panel(side)
	if p.InTempMode() || p.InArchive() {
		return
	}
	localPath, ok := p.Provider().ToLocalPath(p.Path)
	if !ok {
		localPath = p.Path
	}
	if !gitstatus.IsRepo(localPath) {
		m.panels.SetGitStatus(side, p.Path, nil)
		return
	}
	statuses, err := gitstatus.Scan(localPath)
	if err != nil {
		m.panels.SetGitStatus(side, p.Path, nil)
		return
	}
	m.panels.SetGitStatus(side, p.Path, statuses)
}
