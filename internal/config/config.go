package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/five82/gitproxy/internal/gitcfg"
	"github.com/five82/gitproxy/internal/settings"
)

// Config captures the runtime knobs gitproxy needs.
type Config struct {
	GitBinary    string
	Timeout      time.Duration
	SettingsPath string
	LogFile      string
}

// Overrides carries command-line values; empty fields defer to the
// environment and then to defaults.
type Overrides struct {
	GitBinary    string
	Timeout      time.Duration
	SettingsPath string
	LogFile      string
}

// Environment variables consulted by Load.
const (
	EnvGit      = "GITPROXY_GIT"
	EnvTimeout  = "GITPROXY_TIMEOUT"
	EnvSettings = "GITPROXY_SETTINGS"
	EnvLogFile  = "GITPROXY_LOG"
)

// Load resolves the configuration from flags, environment and defaults.
func Load(o Overrides) (Config, error) {
	cfg := Config{
		GitBinary: gitcfg.DefaultBinary,
		Timeout:   gitcfg.DefaultTimeout,
	}

	if v := firstNonEmpty(o.GitBinary, os.Getenv(EnvGit)); v != "" {
		cfg.GitBinary = v
	}

	switch {
	case o.Timeout > 0:
		cfg.Timeout = o.Timeout
	case strings.TrimSpace(os.Getenv(EnvTimeout)) != "":
		d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(EnvTimeout)))
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", EnvTimeout, err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("parse %s: timeout must be positive", EnvTimeout)
		}
		cfg.Timeout = d
	}

	settingsPath, err := resolveSettingsPath(firstNonEmpty(o.SettingsPath, os.Getenv(EnvSettings)))
	if err != nil {
		return Config{}, err
	}
	cfg.SettingsPath = settingsPath

	if v := firstNonEmpty(o.LogFile, os.Getenv(EnvLogFile)); v != "" {
		logFile, err := expandPath(v)
		if err != nil {
			return Config{}, fmt.Errorf("resolve log file: %w", err)
		}
		cfg.LogFile = logFile
	}

	return cfg, nil
}

// DefaultSettingsPath returns the settings file beside the running executable.
func DefaultSettingsPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), settings.FileName), nil
}

func resolveSettingsPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultSettingsPath()
	}
	expanded, err := expandPath(path)
	if err != nil {
		return "", fmt.Errorf("resolve settings path: %w", err)
	}
	return expanded, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
