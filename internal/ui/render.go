package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	labelWidth = 8
	panelWidth = 44
)

// render draws the single-screen layout.
func (m Model) render() string {
	styles := m.theme.Styles()

	sections := []string{
		m.renderHeader(styles),
		m.renderSettingsPanel(styles),
		m.renderStatusPanel(styles),
		m.renderButtons(styles),
		m.renderMessage(styles),
		m.help.View(m.keys),
	}
	body := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.width <= 0 || m.height <= 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m Model) renderHeader(styles Styles) string {
	title := styles.Title.Render("Git proxy")
	if m.version == "" {
		return title
	}
	return title + " " + styles.FaintText.Render("v"+m.version)
}

func (m Model) renderSettingsPanel(styles Styles) string {
	label := func(text string) string {
		return styles.MutedText.Width(labelWidth).Render(text)
	}
	rows := []string{
		styles.AccentText.Render("Proxy server"),
		label("Host") + m.host.View(),
		label("Port") + m.port.View(),
	}

	panel := styles.Panel
	if m.controlsEnabled && m.focus != focusButtons {
		panel = styles.FocusPanel
	}
	return panel.Width(panelWidth).Render(strings.Join(rows, "\n"))
}

func (m Model) renderStatusPanel(styles Styles) string {
	line := func(name, value string) string {
		label := styles.MutedText.Width(labelWidth).Render(name)
		if !m.statusKnown {
			return label + styles.FaintText.Render("unknown")
		}
		if value == "" {
			return label + styles.MutedText.Render("not set")
		}
		return label + styles.SuccessText.Render(value)
	}
	rows := []string{
		styles.AccentText.Render("Current status"),
		line("HTTP", m.status.HTTP),
		line("HTTPS", m.status.HTTPS),
	}
	return styles.Panel.Width(panelWidth).Render(strings.Join(rows, "\n"))
}

func (m Model) renderButtons(styles Styles) string {
	parts := make([]string, 0, buttonCount)
	for b := button(0); b < buttonCount; b++ {
		style := styles.Button
		switch {
		case !m.controlsEnabled && b != buttonSave:
			style = styles.ButtonDisabled
		case m.focus == focusButtons && b == m.selected:
			style = styles.ButtonFocused
		}
		parts = append(parts, style.Render(b.label()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, joinWithGap(parts, " ")...)
}

func (m Model) renderMessage(styles Styles) string {
	if m.dispatcher.Busy() {
		return m.spinner.View() + " " + styles.MutedText.Render(m.message)
	}
	if m.messageErr {
		return styles.DangerText.Render(m.message)
	}
	return styles.SuccessText.Render(m.message)
}

func joinWithGap(parts []string, gap string) []string {
	if len(parts) < 2 {
		return parts
	}
	out := make([]string, 0, len(parts)*2-1)
	for i, p := range parts {
		if i > 0 {
			out = append(out, gap)
		}
		out = append(out, p)
	}
	return out
}
