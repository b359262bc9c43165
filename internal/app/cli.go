package app

import (
	"context"
	"errors"
	"io"

	"github.com/fatih/color"

	"github.com/five82/gitproxy/internal/gitcfg"
	"github.com/five82/gitproxy/internal/proxy"
	"github.com/five82/gitproxy/internal/settings"
)

var (
	colorOK    = color.New(color.FgGreen, color.Bold)
	colorFail  = color.New(color.FgRed, color.Bold)
	colorMuted = color.New(color.Faint)
	colorLabel = color.New(color.FgCyan)
)

// ErrOperationFailed is returned by the headless commands when git reported
// a failure. The details have already been printed.
var ErrOperationFailed = errors.New("operation failed")

// Status prints the current proxy configuration.
func Status(ctx context.Context, opts Options, w io.Writer) error {
	e, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	defer e.close()

	return showStatus(ctx, e.runner, w)
}

// Set writes host:port to both proxy keys. Empty arguments fall back to the
// settings file; the pair used is saved back to it.
func Set(ctx context.Context, opts Options, host, port string, w io.Writer) error {
	e, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	defer e.close()

	return setProxy(ctx, e.runner, e.store, host, port, w)
}

// Unset removes both proxy keys.
func Unset(ctx context.Context, opts Options, w io.Writer) error {
	e, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	defer e.close()

	return unsetProxy(ctx, e.runner, w)
}

func showStatus(ctx context.Context, r gitcfg.Runner, w io.Writer) error {
	printStatus(w, proxy.Query(ctx, r))
	return nil
}

func setProxy(ctx context.Context, r gitcfg.Runner, store *settings.Store, host, port string, w io.Writer) error {
	cfg, _, loadErr := store.Load()
	if loadErr != nil {
		colorMuted.Fprintf(w, "%v (using defaults)\n", loadErr)
	}
	if host != "" {
		cfg.Proxy.Host = host
	}
	if port != "" {
		cfg.Proxy.Port = port
	}
	if err := cfg.Proxy.Validate(); err != nil {
		return err
	}

	rep := proxy.Apply(ctx, r, cfg.Proxy)
	if err := store.Save(cfg); err != nil {
		colorMuted.Fprintf(w, "save settings failed: %v\n", err)
	}
	return report(w, rep)
}

func unsetProxy(ctx context.Context, r gitcfg.Runner, w io.Writer) error {
	return report(w, proxy.Clear(ctx, r))
}

func report(w io.Writer, rep proxy.Report) error {
	if rep.OK() {
		colorOK.Fprintln(w, rep.Message)
	} else {
		colorFail.Fprintln(w, rep.Message)
	}
	printStatus(w, rep.Status)
	if !rep.OK() {
		return ErrOperationFailed
	}
	return nil
}

func printStatus(w io.Writer, s proxy.Status) {
	printKey(w, "HTTP ", s.HTTP)
	printKey(w, "HTTPS", s.HTTPS)
}

func printKey(w io.Writer, label, value string) {
	colorLabel.Fprintf(w, "%s  ", label)
	if value == "" {
		colorMuted.Fprintln(w, "not set")
		return
	}
	colorOK.Fprintln(w, value)
}
