// Package settings persists the last-used proxy host/port pair, and the UI
// theme, in a small TOML file kept beside the executable.
package settings

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/gitproxy/internal/proxy"
)

// FileName is the settings file name used next to the executable.
const FileName = "gitproxy.toml"

// Settings is everything gitproxy remembers between runs.
type Settings struct {
	Proxy proxy.Setting
	Theme string
}

// Defaults returns the settings used when no file exists.
func Defaults() Settings {
	return Settings{Proxy: proxy.DefaultSetting()}
}

type fileProxy struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
}

type fileUI struct {
	Theme string `toml:"theme"`
}

type fileLayout struct {
	Proxy fileProxy `toml:"proxy"`
	UI    *fileUI   `toml:"ui,omitempty"`
}

// Store reads and writes one settings file.
type Store struct {
	path string
}

// NewStore returns a Store for path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the file the store manages.
func (s *Store) Path() string {
	return s.path
}

// Load reads the settings file. When the file does not exist the defaults are
// written and created is true. The returned Settings are always usable: a
// non-nil error describes a problem that was papered over with defaults.
func (s *Store) Load() (cfg Settings, created bool, err error) {
	cfg = Defaults()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := s.Save(cfg); err != nil {
				return cfg, false, fmt.Errorf("create settings: %w", err)
			}
			return cfg, true, nil
		}
		return cfg, false, fmt.Errorf("read settings: %w", err)
	}

	var raw fileLayout
	if err := toml.Unmarshal(data, &raw); err != nil {
		return cfg, false, fmt.Errorf("parse settings: %w", err)
	}

	if host := strings.TrimSpace(raw.Proxy.Host); host != "" {
		cfg.Proxy.Host = host
	}
	if port := strings.TrimSpace(raw.Proxy.Port); port != "" {
		cfg.Proxy.Port = port
	}
	if raw.UI != nil {
		cfg.Theme = strings.TrimSpace(raw.UI.Theme)
	}
	return cfg, false, nil
}

// Save overwrites the settings file with cfg, creating directories as needed.
// Surrounding whitespace is trimmed from every value.
func (s *Store) Save(cfg Settings) error {
	data, err := encode(cfg)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create settings dir: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

func encode(cfg Settings) ([]byte, error) {
	p := cfg.Proxy.Trimmed()
	layout := fileLayout{Proxy: fileProxy{Host: p.Host, Port: p.Port}}
	if theme := strings.TrimSpace(cfg.Theme); theme != "" {
		layout.UI = &fileUI{Theme: theme}
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(layout); err != nil {
		return nil, fmt.Errorf("marshal settings: %w", err)
	}
	return buf.Bytes(), nil
}
