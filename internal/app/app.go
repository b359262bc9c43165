package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/gitproxy/internal/config"
	"github.com/five82/gitproxy/internal/gitcfg"
	"github.com/five82/gitproxy/internal/settings"
	"github.com/five82/gitproxy/internal/ui"
)

// ErrGitNotFound is returned by Run when git cannot be located. Nothing has
// been shown to the user at that point.
var ErrGitNotFound = gitcfg.ErrGitNotFound

// Options configure the gitproxy application.
type Options struct {
	Overrides config.Overrides
	Version   string

	// Stderr receives the shutdown save report; defaults to os.Stderr.
	Stderr io.Writer
}

// env is what every entrypoint needs after configuration is resolved.
type env struct {
	cfg    config.Config
	runner *gitcfg.ExecRunner
	store  *settings.Store
	close  func()
}

func setup(ctx context.Context, opts Options) (*env, error) {
	cfg, err := config.Load(opts.Overrides)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	closeLog, err := setupLogging(cfg.LogFile)
	if err != nil {
		return nil, err
	}

	runner := gitcfg.NewExecRunner(cfg.GitBinary, cfg.Timeout)
	if err := runner.Check(ctx); err != nil {
		closeLog()
		return nil, err
	}
	log.Printf("using %s (timeout %s), settings %s", cfg.GitBinary, cfg.Timeout, cfg.SettingsPath)

	return &env{
		cfg:    cfg,
		runner: runner,
		store:  settings.NewStore(cfg.SettingsPath),
		close:  closeLog,
	}, nil
}

// Run boots the gitproxy TUI until the user quits or ctx is cancelled. The
// current fields are saved on every exit path once the UI has started.
func Run(ctx context.Context, opts Options) (err error) {
	e, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	defer e.close()

	cfg, created, loadErr := e.store.Load()
	notice, noticeErr := loadNotice(e.store.Path(), created, loadErr)

	final := cfg
	defer func() {
		saveOnExit(e.store, final, stderr(opts))
	}()

	final, err = ui.Run(ui.Options{
		Context:     ctx,
		Runner:      e.runner,
		Store:       e.store,
		Settings:    cfg,
		Version:     opts.Version,
		Notice:      notice,
		NoticeError: noticeErr,
		Watch:       e.store.Watch,
	})
	return err
}

func loadNotice(path string, created bool, err error) (string, bool) {
	switch {
	case err != nil:
		log.Printf("settings %s: %v", path, err)
		return fmt.Sprintf("%v (using defaults)", err), true
	case created:
		return "created default settings file", false
	default:
		return "", false
	}
}

// saveOnExit writes cfg and reports a failure without blocking exit.
func saveOnExit(store *settings.Store, cfg settings.Settings, w io.Writer) {
	if err := store.Save(cfg); err != nil {
		log.Printf("save on exit: %v", err)
		fmt.Fprintf(w, "gitproxy: %v\n", err)
		return
	}
	log.Printf("saved %s:%s to %s", cfg.Proxy.Host, cfg.Proxy.Port, store.Path())
}

// setupLogging routes the standard logger to path, or discards it so log
// lines never land on the TUI.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "gitproxy")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return func() { _ = f.Close() }, nil
}

func stderr(opts Options) io.Writer {
	if opts.Stderr != nil {
		return opts.Stderr
	}
	return os.Stderr
}

// IsSetupError reports whether err means git is unavailable.
func IsSetupError(err error) bool {
	return errors.Is(err, ErrGitNotFound)
}
