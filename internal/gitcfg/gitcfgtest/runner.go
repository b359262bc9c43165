// Package gitcfgtest provides a scripted gitcfg.Runner for tests.
package gitcfgtest

import (
	"context"
	"strings"
	"sync"

	"github.com/five82/gitproxy/internal/gitcfg"
)

// Runner answers invocations from a table keyed by the space-joined
// argument list. Unknown invocations fail with an empty message.
type Runner struct {
	mu        sync.Mutex
	responses map[string]gitcfg.Result
	calls     [][]string

	// Gate, when non-nil, blocks every Run until a value is received.
	Gate chan struct{}
}

var _ gitcfg.Runner = (*Runner)(nil)

// New returns an empty Runner.
func New() *Runner {
	return &Runner{responses: make(map[string]gitcfg.Result)}
}

// On scripts the result for args.
func (r *Runner) On(res gitcfg.Result, args ...string) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[strings.Join(args, " ")] = res
	return r
}

// Run implements gitcfg.Runner.
func (r *Runner) Run(ctx context.Context, args ...string) gitcfg.Result {
	r.mu.Lock()
	r.calls = append(r.calls, append([]string(nil), args...))
	res, ok := r.responses[strings.Join(args, " ")]
	gate := r.Gate
	r.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return gitcfg.Result{Message: gitcfg.TimeoutMessage}
		}
	}
	if !ok {
		return gitcfg.Result{}
	}
	return res
}

// Calls returns a copy of every recorded argument list.
func (r *Runner) Calls() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]string, len(r.calls))
	copy(out, r.calls)
	return out
}

// CallCount returns the number of recorded invocations.
func (r *Runner) CallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}
