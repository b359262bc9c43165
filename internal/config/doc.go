// Package config resolves gitproxy's runtime configuration.
//
// # Resolution order
//
// Each field is taken from the first source that provides it:
//
//  1. Command-line flag (Overrides)
//  2. Environment variable
//  3. Built-in default
//
// # Fields
//
//   - GitBinary: GITPROXY_GIT, default "git"
//   - Timeout: GITPROXY_TIMEOUT (Go duration), default 10s per git call
//   - SettingsPath: GITPROXY_SETTINGS, default gitproxy.toml beside the executable
//   - LogFile: GITPROXY_LOG, default none (logging discarded)
//
// Tilde expansion and absolute-path conversion are applied to paths. An
// unparsable or non-positive timeout is an error; everything else falls back
// to defaults.
//
// The proxy host/port themselves are not configuration; they live in the
// settings file managed by package settings.
package config
