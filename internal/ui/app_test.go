package ui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/gitproxy/internal/dispatch"
	"github.com/five82/gitproxy/internal/gitcfg"
	"github.com/five82/gitproxy/internal/gitcfg/gitcfgtest"
	"github.com/five82/gitproxy/internal/proxy"
	"github.com/five82/gitproxy/internal/settings"
)

func newTestModel(t *testing.T, r gitcfg.Runner) Model {
	t.Helper()
	store := settings.NewStore(filepath.Join(t.TempDir(), settings.FileName))
	return New(Options{Runner: r, Store: store, Settings: settings.Defaults()})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

// collect runs cmd and any batched children, returning the leaf messages.
// Only use it on commands that do not sleep.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func doneMsg(t *testing.T, cmd tea.Cmd) dispatch.DoneMsg {
	t.Helper()
	for _, msg := range collect(cmd) {
		if done, ok := msg.(dispatch.DoneMsg); ok {
			return done
		}
	}
	t.Fatalf("command produced no DoneMsg")
	return dispatch.DoneMsg{}
}

func keyPress(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func TestQueryStatus_DisplaysSetAndUnset(t *testing.T) {
	r := gitcfgtest.New().
		On(gitcfg.Result{OK: true, Message: "1.2.3.4:8080"}, gitcfg.GetArgs(gitcfg.KeyHTTPProxy)...).
		On(gitcfg.Result{OK: false}, gitcfg.GetArgs(gitcfg.KeyHTTPSProxy)...)
	m := newTestModel(t, r)

	m, cmd := update(t, m, keyPress(tea.KeyCtrlR))
	if !m.Busy() || m.ControlsEnabled() {
		t.Fatalf("after trigger: Busy=%v ControlsEnabled=%v, want busy and disabled", m.Busy(), m.ControlsEnabled())
	}

	m, _ = update(t, m, doneMsg(t, cmd))

	status := m.Status()
	if status.HTTP != "1.2.3.4:8080" || status.HTTPSSet() {
		t.Fatalf("Status = %#v, want http set and https unset", status)
	}
	if m.Busy() || !m.ControlsEnabled() {
		t.Fatalf("after completion: Busy=%v ControlsEnabled=%v, want idle and enabled", m.Busy(), m.ControlsEnabled())
	}

	view := m.View()
	if !strings.Contains(view, "1.2.3.4:8080") || !strings.Contains(view, "not set") {
		t.Fatalf("View does not show the status:\n%s", view)
	}
}

func TestTriggersWhileBusyAreIgnored(t *testing.T) {
	r := gitcfgtest.New()
	r.Gate = make(chan struct{})
	m := newTestModel(t, r)

	m, first := update(t, m, keyPress(tea.KeyCtrlR))
	if first == nil {
		t.Fatalf("first trigger returned nil command")
	}

	for _, k := range []tea.KeyType{tea.KeyCtrlR, tea.KeyCtrlR, tea.KeyCtrlP, tea.KeyCtrlX, tea.KeyEnter} {
		var cmd tea.Cmd
		m, cmd = update(t, m, keyPress(k))
		if cmd != nil {
			t.Fatalf("trigger %v while busy returned a command", k)
		}
	}
	if got := m.dispatcher.Current(); got != dispatch.OpQuery {
		t.Fatalf("in-flight op = %s, want query", got)
	}

	close(r.Gate)
	m, _ = update(t, m, doneMsg(t, first))

	if got := r.CallCount(); got != 2 {
		t.Fatalf("runner calls = %d, want 2 (one query worker)", got)
	}
	if m.Busy() {
		t.Fatalf("gate still busy after completion")
	}

	if _, cmd := update(t, m, keyPress(tea.KeyCtrlR)); cmd == nil {
		t.Fatalf("trigger after completion returned nil, want a new worker")
	}
}

func TestSetProxy_EmptyHostRejectedWithoutGit(t *testing.T) {
	r := gitcfgtest.New()
	m := newTestModel(t, r)
	m.host.SetValue("   ")
	m.port.SetValue("7890")

	m, cmd := update(t, m, keyPress(tea.KeyEnter))
	if cmd != nil {
		t.Fatalf("set with empty host returned a command")
	}
	msg, isErr := m.Message()
	if !isErr || msg != proxy.ErrEmptyHost.Error() {
		t.Fatalf("Message = (%q, %v), want (%q, true)", msg, isErr, proxy.ErrEmptyHost.Error())
	}
	if m.Busy() {
		t.Fatalf("validation failure left the gate busy")
	}
	if got := r.CallCount(); got != 0 {
		t.Fatalf("runner calls = %d, want 0", got)
	}
}

func TestSetProxy_PartialFailureStillCompletes(t *testing.T) {
	addr := "127.0.0.1:7890"
	r := gitcfgtest.New().
		On(gitcfg.Result{OK: false, Message: "denied"}, gitcfg.SetArgs(gitcfg.KeyHTTPProxy, addr)...).
		On(gitcfg.Result{OK: true}, gitcfg.SetArgs(gitcfg.KeyHTTPSProxy, addr)...).
		On(gitcfg.Result{OK: true, Message: addr}, gitcfg.GetArgs(gitcfg.KeyHTTPSProxy)...)
	m := newTestModel(t, r)

	m, cmd := update(t, m, keyPress(tea.KeyCtrlP))
	m, _ = update(t, m, doneMsg(t, cmd))

	msg, isErr := m.Message()
	if !isErr || !strings.Contains(msg, "http.proxy") {
		t.Fatalf("Message = (%q, %v), want an http.proxy failure", msg, isErr)
	}
	if m.Status().HTTPS != addr {
		t.Fatalf("HTTPS = %q, want %q", m.Status().HTTPS, addr)
	}
	if m.Busy() || !m.ControlsEnabled() {
		t.Fatalf("controls locked after failed set")
	}
	if got := r.CallCount(); got != 4 {
		t.Fatalf("runner calls = %d, want 4", got)
	}
}

func TestUnsetProxy_ClearsStatus(t *testing.T) {
	r := gitcfgtest.New().
		On(gitcfg.Result{OK: true}, gitcfg.UnsetArgs(gitcfg.KeyHTTPProxy)...).
		On(gitcfg.Result{OK: true}, gitcfg.UnsetArgs(gitcfg.KeyHTTPSProxy)...)
	m := newTestModel(t, r)
	m.status = proxy.Status{HTTP: "a:1", HTTPS: "a:1"}

	m, cmd := update(t, m, keyPress(tea.KeyCtrlX))
	m, _ = update(t, m, doneMsg(t, cmd))

	if m.Status().HTTPSet() || m.Status().HTTPSSet() {
		t.Fatalf("Status = %#v, want both unset", m.Status())
	}
	if msg, isErr := m.Message(); isErr || msg != "proxy cleared" {
		t.Fatalf("Message = (%q, %v), want (%q, false)", msg, isErr, "proxy cleared")
	}
}

func TestStartupQueriesStatus(t *testing.T) {
	r := gitcfgtest.New()
	m := newTestModel(t, r)

	m, cmd := update(t, m, startupMsg{})
	if cmd == nil || !m.Busy() {
		t.Fatalf("startup did not dispatch a query")
	}
	if m.dispatcher.Current() != dispatch.OpQuery {
		t.Fatalf("in-flight op = %s, want query", m.dispatcher.Current())
	}
}

func TestSaveSettings_WritesFile(t *testing.T) {
	m := newTestModel(t, gitcfgtest.New())
	m.host.SetValue(" 10.0.0.2 ")
	m.port.SetValue("3128")

	m, cmd := update(t, m, keyPress(tea.KeyCtrlS))
	msgs := collect(cmd)
	if len(msgs) != 1 {
		t.Fatalf("save produced %d messages, want 1", len(msgs))
	}
	m, _ = update(t, m, msgs[0])

	if msg, isErr := m.Message(); isErr || msg != "settings saved" {
		t.Fatalf("Message = (%q, %v), want (%q, false)", msg, isErr, "settings saved")
	}

	cfg, created, err := m.store.Load()
	if err != nil || created {
		t.Fatalf("Load = (created %v, err %v), want existing file", created, err)
	}
	if cfg.Proxy.Host != "10.0.0.2" || cfg.Proxy.Port != "3128" {
		t.Fatalf("saved Proxy = %#v, want 10.0.0.2:3128", cfg.Proxy)
	}
}

func TestSaveSettings_FailureIsReported(t *testing.T) {
	dir := t.TempDir()
	m := New(Options{Runner: gitcfgtest.New(), Store: settings.NewStore(dir)})

	m, cmd := update(t, m, keyPress(tea.KeyCtrlS))
	m, _ = update(t, m, collect(cmd)[0])

	msg, isErr := m.Message()
	if !isErr || !strings.Contains(msg, "save settings failed") {
		t.Fatalf("Message = (%q, %v), want a save failure", msg, isErr)
	}
}

func TestQuit_ReturnsTrimmedSettings(t *testing.T) {
	m := newTestModel(t, gitcfgtest.New())
	m.host.SetValue(" 192.168.0.9 ")

	m, cmd := update(t, m, keyPress(tea.KeyEsc))
	if cmd == nil {
		t.Fatalf("quit returned nil command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("quit command did not produce QuitMsg")
	}
	if got := m.Settings().Proxy; got.Host != "192.168.0.9" || got.Port != proxy.DefaultPort {
		t.Fatalf("Settings().Proxy = %#v", got)
	}
}

func TestSettingsChanged_KeepsUserEdits(t *testing.T) {
	m := newTestModel(t, gitcfgtest.New())
	m.port.SetValue("9999")

	m, _ = update(t, m, SettingsChangedMsg(settings.Settings{
		Proxy: proxy.Setting{Host: "10.1.1.1", Port: "1080"},
		Theme: "Slate",
	}))

	if got := m.host.Value(); got != "10.1.1.1" {
		t.Fatalf("host = %q, want reloaded value", got)
	}
	if got := m.port.Value(); got != "9999" {
		t.Fatalf("port = %q, want the user's edit kept", got)
	}
	if m.theme.Name != "Slate" {
		t.Fatalf("theme = %q, want Slate", m.theme.Name)
	}
}

func TestFocusCycleAndButtons(t *testing.T) {
	r := gitcfgtest.New()
	m := newTestModel(t, r)

	m, _ = update(t, m, keyPress(tea.KeyTab))
	if m.focus != focusPort || !m.port.Focused() || m.host.Focused() {
		t.Fatalf("after tab: focus=%d, want port", m.focus)
	}
	m, _ = update(t, m, keyPress(tea.KeyTab))
	if m.focus != focusButtons || m.port.Focused() {
		t.Fatalf("after second tab: focus=%d, want buttons", m.focus)
	}

	m, _ = update(t, m, keyPress(tea.KeyRight))
	m, _ = update(t, m, keyPress(tea.KeyRight))
	if m.selected != buttonUnset {
		t.Fatalf("selected = %d, want unset", m.selected)
	}
	m, cmd := update(t, m, keyPress(tea.KeyEnter))
	if cmd == nil || m.dispatcher.Current() != dispatch.OpUnset {
		t.Fatalf("pressing Unset did not dispatch unset")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'T'}})
	if m.theme.Name != NextTheme(ThemeNames()[0]) {
		t.Fatalf("theme = %q, want it cycled", m.theme.Name)
	}
}
