package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/gitproxy/internal/dispatch"
	"github.com/five82/gitproxy/internal/proxy"
	"github.com/five82/gitproxy/internal/settings"
)

// Messages

type startupMsg struct{}

type savedMsg struct {
	settings settings.Settings
	err      error
}

type noticeMsg struct {
	text  string
	isErr bool
}

// SettingsChangedMsg carries settings reloaded after an external edit.
type SettingsChangedMsg settings.Settings

// Actions. Each returns immediately; outcomes arrive as messages.

// queryStatus refreshes the displayed HTTP/HTTPS proxy values.
func (m Model) queryStatus() (tea.Model, tea.Cmd) {
	runner := m.runner
	return m.dispatch(dispatch.OpQuery, "querying status", func(ctx context.Context) proxy.Report {
		return proxy.QueryReport(ctx, runner)
	})
}

// setProxy writes the host/port fields to both proxy keys.
func (m Model) setProxy() (tea.Model, tea.Cmd) {
	if m.dispatcher.Busy() {
		return m, nil
	}
	setting := m.Setting()
	if err := setting.Validate(); err != nil {
		m.setMessage(err.Error(), true)
		return m, nil
	}
	runner := m.runner
	return m.dispatch(dispatch.OpSet, "setting proxy "+setting.Address(), func(ctx context.Context) proxy.Report {
		return proxy.Apply(ctx, runner, setting)
	})
}

// unsetProxy removes both proxy keys.
func (m Model) unsetProxy() (tea.Model, tea.Cmd) {
	runner := m.runner
	return m.dispatch(dispatch.OpUnset, "clearing proxy", func(ctx context.Context) proxy.Report {
		return proxy.Clear(ctx, runner)
	})
}

// saveSettings writes the current fields to the settings file. It does not
// take the busy gate; git's configuration is untouched.
func (m Model) saveSettings() (tea.Model, tea.Cmd) {
	return m, saveCmd(m.store, m.Settings())
}

// onWindowClose quits the program. The final fields are saved by the caller
// of Run once the event loop has stopped.
func (m Model) onWindowClose() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m Model) dispatch(op dispatch.Op, pending string, work dispatch.Work) (tea.Model, tea.Cmd) {
	if m.runner == nil {
		m.setMessage("git runner not configured", true)
		return m, nil
	}
	cmd := m.dispatcher.Start(op, work)
	if cmd == nil {
		return m, nil
	}
	m.disableControls()
	m.setMessage(pending+"…", false)
	return m, tea.Batch(cmd, m.spinner.Tick)
}

// handleDone applies a finished action: status text, then controls, then
// the gate.
func (m Model) handleDone(msg dispatch.DoneMsg) (tea.Model, tea.Cmd) {
	m.status = msg.Report.Status
	m.statusKnown = true
	m.setMessage(msg.Report.Message, !msg.Report.OK())

	cmd := m.enableControls()
	m.dispatcher.Finish(msg)
	return m, cmd
}

func (m Model) handleSaved(msg savedMsg) Model {
	if msg.err != nil {
		m.setMessage(fmt.Sprintf("save settings failed: %v", msg.err), true)
		return m
	}
	m.saved = msg.settings.Proxy.Trimmed()
	m.setMessage("settings saved", false)
	return m
}

// handleSettingsChanged adopts values edited outside gitproxy. Fields the
// user has changed since the last load or save are kept.
func (m Model) handleSettingsChanged(cfg settings.Settings) Model {
	next := cfg.Proxy.Trimmed()
	if next == m.saved {
		return m
	}
	if trimmedEqual(m.host.Value(), m.saved.Host) {
		m.host.SetValue(next.Host)
	}
	if trimmedEqual(m.port.Value(), m.saved.Port) {
		m.port.SetValue(next.Port)
	}
	m.saved = next
	if cfg.Theme != "" {
		m.theme = GetTheme(cfg.Theme)
	}
	m.setMessage("settings reloaded from disk", false)
	return m
}

func saveCmd(store *settings.Store, cfg settings.Settings) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return savedMsg{settings: cfg, err: fmt.Errorf("no settings file configured")}
		}
		return savedMsg{settings: cfg, err: store.Save(cfg)}
	}
}
