// Package proxy holds the proxy data model and the worker bodies that read,
// write and clear git's global proxy keys through a gitcfg.Runner.
package proxy

import (
	"errors"
	"strings"
)

// Defaults used when no settings file is present.
const (
	DefaultHost = "127.0.0.1"
	DefaultPort = "7890"
)

var (
	ErrEmptyHost = errors.New("proxy host is required")
	ErrEmptyPort = errors.New("proxy port is required")
)

// Setting is the host/port pair the user edits.
type Setting struct {
	Host string
	Port string
}

// DefaultSetting returns the built-in host/port pair.
func DefaultSetting() Setting {
	return Setting{Host: DefaultHost, Port: DefaultPort}
}

// Trimmed returns a copy with surrounding whitespace removed.
func (s Setting) Trimmed() Setting {
	return Setting{Host: strings.TrimSpace(s.Host), Port: strings.TrimSpace(s.Port)}
}

// Validate rejects an empty host or port. No syntax checks are made.
func (s Setting) Validate() error {
	t := s.Trimmed()
	if t.Host == "" {
		return ErrEmptyHost
	}
	if t.Port == "" {
		return ErrEmptyPort
	}
	return nil
}

// Address renders the value written to git, host:port.
func (s Setting) Address() string {
	t := s.Trimmed()
	return t.Host + ":" + t.Port
}

// Status is the proxy configuration git currently reports. An empty field
// means the key is unset.
type Status struct {
	HTTP  string
	HTTPS string
}

// HTTPSet reports whether http.proxy has a value.
func (s Status) HTTPSet() bool { return s.HTTP != "" }

// HTTPSSet reports whether https.proxy has a value.
func (s Status) HTTPSSet() bool { return s.HTTPS != "" }

// Report is the plain-data outcome of one action.
type Report struct {
	Status   Status
	Failures []string
	Message  string
}

// OK is true when no step of the action failed.
func (r Report) OK() bool {
	return len(r.Failures) == 0
}
