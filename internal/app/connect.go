package app

import (
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dumitru-stama/bark/internal/input"
	"github.com/dumitru-stama/bark/internal/mode"
	"github.com/dumitru-stama/bark/internal/msg"
	"github.com/dumitru-stama/bark/internal/pluginhost"
	"github.com/dumitru-stama/bark/internal/provider"
	"github.com/dumitru-stama/bark/internal/provider/pluginprovider"
	"github.com/dumitru-stama/bark/internal/provider/sftp"
)

// sftpConnectResultMsg carries the outcome of a background SFTP dial
// started from mode.ScpPasswordPrompt's "enter" key.
type sftpConnectResultMsg struct {
	prov provider.Provider
	err  error
}

func connectSftpCmd(pm mode.ScpPasswordPrompt) tea.Cmd {
	return func() tea.Msg {
		port, err := strconv.Atoi(pm.Port)
		if err != nil || port <= 0 {
			port = 22
		}
		prov := sftp.New(sftp.Config{
			Host:         pm.Host,
			Port:         port,
			User:         pm.User,
			Password:     pm.Password,
			SavePassword: pm.Save,
		})
		if err := prov.Connect(); err != nil {
			return sftpConnectResultMsg{err: err}
		}
		return sftpConnectResultMsg{prov: prov}
	}
}

func (m Model) startSftpConnect(pm mode.ScpPasswordPrompt) (tea.Model, tea.Cmd) {
	m.mode = mode.BackgroundTask{Title: "Connecting", Message: "sftp://" + pm.User + "@" + pm.Host}
	return m, connectSftpCmd(pm)
}

func (m Model) handleSftpConnectResult(r sftpConnectResultMsg) (tea.Model, tea.Cmd) {
	bg, ok := m.mode.(mode.BackgroundTask)
	if !ok || bg.Title != "Connecting" {
		if r.prov != nil {
			r.prov.Disconnect()
		}
		return m, nil
	}
	if r.err != nil {
		m.mode = mode.Normal{}
		return m, msg.ShowErrorToast("sftp: "+r.err.Error(), 4*time.Second)
	}
	m.mountProvider(r.prov)
	m.mode = mode.Normal{}
	return m, msg.ShowToast("connected", 2*time.Second)
}

// pluginConnectResultMsg carries the outcome of a background plugin
// spawn+connect started from mode.PluginConnect's "enter" key.
type pluginConnectResultMsg struct {
	prov provider.Provider
	err  error
}

func connectPluginCmd(cand input.PluginCandidate, fields map[string]string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		host := pluginhost.New(cand.Path, timeout)
		if err := host.Start(cand.Info); err != nil {
			return pluginConnectResultMsg{err: err}
		}
		prov := pluginprovider.New(host, fields)
		if err := prov.Connect(); err != nil {
			host.Close()
			return pluginConnectResultMsg{err: err}
		}
		return pluginConnectResultMsg{prov: prov}
	}
}

func (m Model) startPluginConnect(pm mode.PluginConnect) (tea.Model, tea.Cmd) {
	for _, cand := range m.plugins {
		if cand.Info.Name != pm.PluginName {
			continue
		}
		m.mode = mode.BackgroundTask{Title: "Connecting", Message: "plugin " + pm.PluginName}
		timeout := time.Duration(m.cfg.General.PluginTimeoutMS) * time.Millisecond
		return m, connectPluginCmd(cand, pm.Fields, timeout)
	}
	m.mode = mode.Normal{}
	return m, msg.ShowErrorToast("plugin not found: "+pm.PluginName, 3*time.Second)
}

func (m Model) handlePluginConnectResult(r pluginConnectResultMsg) (tea.Model, tea.Cmd) {
	bg, ok := m.mode.(mode.BackgroundTask)
	if !ok || bg.Title != "Connecting" {
		if r.prov != nil {
			r.prov.Disconnect()
		}
		return m, nil
	}
	if r.err != nil {
		m.mode = mode.Normal{}
		return m, msg.ShowErrorToast("plugin: "+r.err.Error(), 4*time.Second)
	}
	m.mountProvider(r.prov)
	m.mode = mode.Normal{}
	return m, msg.ShowToast("connected", 2*time.Second)
}

// mountProvider replaces the active panel's provider with prov and
// refreshes it from prov's home directory, invalidating the panel's
// stale git status cache (the new provider's path has no relation to
// whatever git work tree the panel was previously inside).
func (m Model) mountProvider(prov provider.Provider) {
	p := m.panels.ActivePanel()
	p.SetProvider(prov)
	p.Path = prov.Home()
	p.Refresh()
	m.panels.InvalidateGitStatus(m.panels.Active())
}
