package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/gitproxy/internal/gitcfg"
	"github.com/five82/gitproxy/internal/settings"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvGit, EnvTimeout, EnvSettings, EnvLogFile} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(Overrides{})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.GitBinary != gitcfg.DefaultBinary {
		t.Fatalf("GitBinary = %q, want %q", cfg.GitBinary, gitcfg.DefaultBinary)
	}
	if cfg.Timeout != gitcfg.DefaultTimeout {
		t.Fatalf("Timeout = %v, want %v", cfg.Timeout, gitcfg.DefaultTimeout)
	}
	if filepath.Base(cfg.SettingsPath) != settings.FileName {
		t.Fatalf("SettingsPath = %q, want it to end with %q", cfg.SettingsPath, settings.FileName)
	}
	if cfg.LogFile != "" {
		t.Fatalf("LogFile = %q, want empty", cfg.LogFile)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvGit, " /opt/git/bin/git ")
	t.Setenv(EnvTimeout, "3s")
	t.Setenv(EnvSettings, "~/proxy/gitproxy.toml")

	cfg, err := Load(Overrides{})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.GitBinary != "/opt/git/bin/git" {
		t.Fatalf("GitBinary = %q, want %q", cfg.GitBinary, "/opt/git/bin/git")
	}
	if cfg.Timeout != 3*time.Second {
		t.Fatalf("Timeout = %v, want 3s", cfg.Timeout)
	}
	want := filepath.Join(home, "proxy", "gitproxy.toml")
	if cfg.SettingsPath != want {
		t.Fatalf("SettingsPath = %q, want %q", cfg.SettingsPath, want)
	}
}

func TestLoad_FlagsBeatEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvGit, "env-git")
	t.Setenv(EnvTimeout, "3s")

	dir := t.TempDir()
	cfg, err := Load(Overrides{
		GitBinary:    "flag-git",
		Timeout:      time.Second,
		SettingsPath: filepath.Join(dir, "s.toml"),
		LogFile:      filepath.Join(dir, "debug.log"),
	})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.GitBinary != "flag-git" {
		t.Fatalf("GitBinary = %q, want %q", cfg.GitBinary, "flag-git")
	}
	if cfg.Timeout != time.Second {
		t.Fatalf("Timeout = %v, want 1s", cfg.Timeout)
	}
	if cfg.SettingsPath != filepath.Join(dir, "s.toml") {
		t.Fatalf("SettingsPath = %q", cfg.SettingsPath)
	}
	if cfg.LogFile != filepath.Join(dir, "debug.log") {
		t.Fatalf("LogFile = %q", cfg.LogFile)
	}
}

func TestLoad_InvalidTimeoutFails(t *testing.T) {
	clearEnv(t)
	for _, value := range []string{"soon", "-1s"} {
		t.Setenv(EnvTimeout, value)
		_, err := Load(Overrides{})
		if err == nil {
			t.Fatalf("Load with %s=%q returned nil error", EnvTimeout, value)
		}
		if !strings.Contains(err.Error(), EnvTimeout) {
			t.Fatalf("Load error = %q, want it to mention %s", err.Error(), EnvTimeout)
		}
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
