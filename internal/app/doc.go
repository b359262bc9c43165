// Package app is the composition root for gitproxy.
//
// Every entrypoint starts with the same setup:
//
//  1. Resolve config (flags, GITPROXY_* environment, defaults)
//  2. Route the standard logger to --log-file, or discard it
//  3. Verify git is runnable; failure returns ErrGitNotFound
//  4. Open the settings store
//
// Run then loads the settings file, starts the TUI with a file watcher
// attached and saves the final fields when the UI exits, whatever the reason.
// A failed save is printed to stderr and never blocks exit.
//
// Status, Set and Unset are the headless variants used by the cobra
// subcommands. They print coloured output and return ErrOperationFailed when
// git reported a failure.
package app
