// Package ui provides the terminal user interface for gitproxy.
//
// # Layout
//
// A single screen, centred in the terminal:
//
//	Git proxy v1.0.0
//	╭ Proxy server ──────────╮
//	│ Host    127.0.0.1      │
//	│ Port    7890           │
//	╰────────────────────────╯
//	╭ Current status ────────╮
//	│ HTTP    127.0.0.1:7890 │
//	│ HTTPS   not set        │
//	╰────────────────────────╯
//	 Query  Set  Unset  Save
//	proxy set: 127.0.0.1:7890
//
// # Actions
//
// Query, Set and Unset run git in the background through package dispatch.
// While one is in flight the inputs are blurred, the buttons are drawn
// disabled and further triggers are ignored. Save writes the settings file
// from a command of its own and does not wait for the gate.
//
// Set validates the fields first; an empty host or port is reported on the
// message line and git is never invoked.
//
// # Keys
//
//   - tab / shift+tab: cycle host, port, buttons
//   - enter: set proxy from an input, press the selected button
//   - ctrl+r / ctrl+p / ctrl+x / ctrl+s: query, set, unset, save
//   - T, ?: cycle theme, toggle help (button row)
//   - esc, ctrl+c: quit; the caller of Run saves the final fields
//
// # External edits
//
// When Options.Watch is set, edits to the settings file made outside gitproxy
// are delivered as SettingsChangedMsg. A field is replaced only if the user
// has not changed it since the last load or save.
package ui
