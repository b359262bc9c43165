// Package gitcfg is the only code in gitproxy that crosses the process
// boundary.
//
// # Runner
//
// Runner.Run invokes git with an argument list and folds every outcome into a
// Result:
//
//   - exit 0: OK with trimmed stdout
//   - non-zero exit: not OK, trimmed stdout as the message
//   - timeout (10s by default): not OK, "command timed out"
//   - spawn failure: not OK, the stringified error
//
// A timed out child is killed through its context; WaitDelay guarantees Run
// returns even if the child leaves stdout open.
//
// # Command contract
//
//	git config --global <key>
//	git config --global <key> <value>
//	git config --global --unset <key>
//
// with key one of http.proxy and https.proxy. GetArgs, SetArgs and UnsetArgs
// build these argument lists; the runner prepends the binary name.
//
// # Startup check
//
// ExecRunner.Check is the synchronous discoverability probe run before any UI
// is created. It wraps ErrGitNotFound so callers can use errors.Is.
package gitcfg
