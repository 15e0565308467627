package input

import (
	"testing"

	"github.com/dumitru-stama/bark/internal/keymap"
	"github.com/dumitru-stama/bark/internal/mode"
	"github.com/dumitru-stama/bark/internal/panel"
	"github.com/dumitru-stama/bark/internal/panelmgr"
	"github.com/dumitru-stama/bark/internal/provider/local"
	"github.com/dumitru-stama/bark/internal/task"
)

func newTestContext() *Context {
	reg := keymap.NewRegistry()
	keymap.RegisterDefaults(reg)
	left := panel.New(local.New(), "/")
	right := panel.New(local.New(), "/")
	return &Context{
		Panels: panelmgr.New(left, right),
		Tasks:  task.NewManager(),
		Keymap: reg,
	}
}

func TestDispatchQuitReturnsQuitCmd(t *testing.T) {
	ctx := newTestContext()
	_, cmd := Dispatch("q", mode.Normal{}, ctx)
	if cmd == nil {
		t.Fatal("expected a tea.Cmd for quit")
	}
}

func TestDispatchSwitchPaneTogglesActive(t *testing.T) {
	ctx := newTestContext()
	if ctx.Panels.Active() != panelmgr.Left {
		t.Fatal("expected Left active initially")
	}
	Dispatch("tab", mode.Normal{}, ctx)
	if ctx.Panels.Active() != panelmgr.Right {
		t.Fatal("expected Right active after switch-pane")
	}
}

func TestDispatchMakingDirTypesIntoName(t *testing.T) {
	ctx := newTestContext()
	m, _ := Dispatch("a", mode.MakingDir{}, ctx)
	md, ok := m.(mode.MakingDir)
	if !ok || md.Name != "a" {
		t.Fatalf("expected MakingDir.Name=a, got %#v", m)
	}
}

func TestDispatchSimpleConfirmEscReturnsNormal(t *testing.T) {
	ctx := newTestContext()
	m, _ := Dispatch("esc", mode.SimpleConfirm{Message: "x"}, ctx)
	if _, ok := m.(mode.Normal); !ok {
		t.Fatalf("expected Normal after esc, got %#v", m)
	}
}

func TestDispatchScpConnectEscReturnsNormal(t *testing.T) {
	ctx := newTestContext()
	m, _ := Dispatch("esc", mode.ScpConnect{}, ctx)
	if _, ok := m.(mode.Normal); !ok {
		t.Fatalf("expected Normal after esc on ScpConnect, got %#v", m)
	}
}
