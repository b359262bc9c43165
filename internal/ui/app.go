package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/gitproxy/internal/dispatch"
	"github.com/five82/gitproxy/internal/gitcfg"
	"github.com/five82/gitproxy/internal/proxy"
	"github.com/five82/gitproxy/internal/settings"
)

// focusArea identifies which control receives keys.
type focusArea int

const (
	focusHost focusArea = iota
	focusPort
	focusButtons
)

// button identifies an entry in the button row.
type button int

const (
	buttonQuery button = iota
	buttonSet
	buttonUnset
	buttonSave
	buttonCount
)

func (b button) label() string {
	switch b {
	case buttonQuery:
		return "Query"
	case buttonSet:
		return "Set"
	case buttonUnset:
		return "Unset"
	case buttonSave:
		return "Save"
	default:
		return ""
	}
}

// WatchFunc starts delivering settings file changes to onChange.
type WatchFunc func(ctx context.Context, onChange func(settings.Settings)) error

// Options configures the UI.
type Options struct {
	Context  context.Context
	Runner   gitcfg.Runner
	Store    *settings.Store
	Settings settings.Settings
	Version  string

	// Notice is shown on the message line at startup.
	Notice      string
	NoticeError bool

	// Watch, when set, feeds external settings edits into the UI.
	Watch WatchFunc
}

// Model is the root application state for Bubble Tea. Update runs on a
// single goroutine and is the only place the dispatcher's gate changes.
type Model struct {
	// Configuration
	ctx        context.Context
	runner     gitcfg.Runner
	store      *settings.Store
	dispatcher *dispatch.Dispatcher
	version    string

	// UI state
	keys     keyMap
	help     help.Model
	theme    Theme
	host     textinput.Model
	port     textinput.Model
	spinner  spinner.Model
	focus    focusArea
	selected button
	width    int
	height   int
	showHelp bool
	quitting bool

	// controlsEnabled is false while an action is in flight.
	controlsEnabled bool

	// Data state
	status      proxy.Status
	statusKnown bool
	message     string
	messageErr  bool

	// saved is the pair last loaded from or written to disk.
	saved proxy.Setting
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := opts.Settings
	if cfg.Proxy == (proxy.Setting{}) {
		cfg.Proxy = proxy.DefaultSetting()
	}

	host := textinput.New()
	host.Prompt = ""
	host.Placeholder = proxy.DefaultHost
	host.CharLimit = 255
	host.Width = 28
	host.SetValue(cfg.Proxy.Host)
	host.Focus()

	port := textinput.New()
	port.Prompt = ""
	port.Placeholder = proxy.DefaultPort
	port.CharLimit = 16
	port.Width = 28
	port.SetValue(cfg.Proxy.Port)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	message := opts.Notice
	if message == "" {
		message = "ready"
	}

	return Model{
		ctx:             ctx,
		runner:          opts.Runner,
		store:           opts.Store,
		dispatcher:      dispatch.New(ctx),
		version:         opts.Version,
		keys:            DefaultKeyMap(),
		help:            help.New(),
		theme:           GetTheme(cfg.Theme),
		host:            host,
		port:            port,
		spinner:         sp,
		focus:           focusHost,
		selected:        buttonQuery,
		controlsEnabled: true,
		message:         message,
		messageErr:      opts.NoticeError,
		saved:           cfg.Proxy.Trimmed(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		func() tea.Msg { return startupMsg{} },
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case startupMsg:
		// Report the initial status like a manual query would.
		return m.queryStatus()

	case dispatch.DoneMsg:
		return m.handleDone(msg)

	case savedMsg:
		return m.handleSaved(msg), nil

	case noticeMsg:
		m.setMessage(msg.text, msg.isErr)
		return m, nil

	case SettingsChangedMsg:
		return m.handleSettingsChanged(settings.Settings(msg)), nil

	case spinner.TickMsg:
		if !m.dispatcher.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateInputs(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.render()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m.onWindowClose()
	}

	switch {
	case key.Matches(msg, m.keys.Query):
		return m.queryStatus()
	case key.Matches(msg, m.keys.Set):
		return m.setProxy()
	case key.Matches(msg, m.keys.Unset):
		return m.unsetProxy()
	case key.Matches(msg, m.keys.Save):
		return m.saveSettings()
	case key.Matches(msg, m.keys.Next):
		return m.moveFocus(1)
	case key.Matches(msg, m.keys.Prev):
		return m.moveFocus(-1)
	}

	if m.focus == focusButtons {
		return m.handleButtonKey(msg)
	}

	if msg.Type == tea.KeyEnter {
		return m.setProxy()
	}
	return m.updateInputs(msg)
}

func (m Model) handleButtonKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.selected = (m.selected + buttonCount - 1) % buttonCount
	case key.Matches(msg, m.keys.Right):
		m.selected = (m.selected + 1) % buttonCount
	case key.Matches(msg, m.keys.Press):
		return m.press(m.selected)
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	}
	return m, nil
}

func (m Model) press(b button) (tea.Model, tea.Cmd) {
	switch b {
	case buttonQuery:
		return m.queryStatus()
	case buttonSet:
		return m.setProxy()
	case buttonUnset:
		return m.unsetProxy()
	case buttonSave:
		return m.saveSettings()
	}
	return m, nil
}

// moveFocus cycles host -> port -> buttons. Inputs cannot take focus while
// controls are disabled.
func (m Model) moveFocus(delta int) (tea.Model, tea.Cmd) {
	m.focus = focusArea((int(m.focus) + delta + 3) % 3)
	return m, m.applyFocus()
}

func (m *Model) applyFocus() tea.Cmd {
	m.host.Blur()
	m.port.Blur()
	if !m.controlsEnabled {
		return nil
	}
	switch m.focus {
	case focusHost:
		return m.host.Focus()
	case focusPort:
		return m.port.Focus()
	}
	return nil
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.controlsEnabled {
		return m, nil
	}
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.host, cmd = m.host.Update(msg)
	cmds = append(cmds, cmd)
	m.port, cmd = m.port.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// Busy reports whether an action is in flight.
func (m Model) Busy() bool {
	return m.dispatcher.Busy()
}

// ControlsEnabled reports whether inputs and buttons accept user actions.
func (m Model) ControlsEnabled() bool {
	return m.controlsEnabled
}

// Status returns the proxy status last displayed.
func (m Model) Status() proxy.Status {
	return m.status
}

// Message returns the message line and whether it reports a failure.
func (m Model) Message() (string, bool) {
	return m.message, m.messageErr
}

// Setting returns the host/port fields with surrounding whitespace removed.
func (m Model) Setting() proxy.Setting {
	return proxy.Setting{Host: m.host.Value(), Port: m.port.Value()}.Trimmed()
}

// Settings returns everything that should be persisted on exit.
func (m Model) Settings() settings.Settings {
	return settings.Settings{Proxy: m.Setting(), Theme: m.theme.Name}
}

func (m *Model) setMessage(text string, isErr bool) {
	m.message = text
	m.messageErr = isErr
}

func (m *Model) disableControls() {
	m.controlsEnabled = false
	m.host.Blur()
	m.port.Blur()
}

func (m *Model) enableControls() tea.Cmd {
	m.controlsEnabled = true
	return m.applyFocus()
}

// Run starts the Bubble Tea program and returns the settings to persist once
// the user leaves. The caller owns saving them.
func Run(opts Options) (settings.Settings, error) {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if opts.Watch != nil {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		if err := opts.Watch(watchCtx, func(cfg settings.Settings) {
			p.Send(SettingsChangedMsg(cfg))
		}); err != nil {
			// Send blocks until the program is running.
			go p.Send(noticeMsg{text: fmt.Sprintf("settings watcher disabled: %v", err), isErr: true})
		}
	}

	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		m = fm
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return m.Settings(), fmt.Errorf("run ui: %w", err)
	}
	return m.Settings(), nil
}

func trimmedEqual(a, b string) bool {
	return strings.TrimSpace(a) == strings.TrimSpace(b)
}
