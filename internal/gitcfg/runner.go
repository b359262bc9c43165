package gitcfg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"strings"
	"time"
)

// Runner executes git with the given arguments and reports the outcome.
// Implementations never return errors; failures are folded into Result.
type Runner interface {
	Run(ctx context.Context, args ...string) Result
}

// Ensure ExecRunner implements Runner at compile time.
var _ Runner = (*ExecRunner)(nil)

// Result is the outcome of a single git invocation.
type Result struct {
	OK      bool
	Message string
}

const (
	// DefaultBinary is the invocation name used when none is configured.
	DefaultBinary = "git"
	// DefaultTimeout bounds every invocation.
	DefaultTimeout = 10 * time.Second

	// TimeoutMessage is reported when an invocation exceeds its timeout.
	TimeoutMessage = "command timed out"

	waitDelay = time.Second
)

// ErrGitNotFound is returned by Check when the binary cannot be located or run.
var ErrGitNotFound = errors.New("git not found")

// ExecRunner runs a real subprocess.
type ExecRunner struct {
	Binary  string
	Timeout time.Duration
}

// NewExecRunner builds an ExecRunner, applying defaults for empty values.
func NewExecRunner(binary string, timeout time.Duration) *ExecRunner {
	if strings.TrimSpace(binary) == "" {
		binary = DefaultBinary
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ExecRunner{Binary: binary, Timeout: timeout}
}

// Run spawns Binary with args and waits up to Timeout for it to exit.
func (r *ExecRunner) Run(ctx context.Context, args ...string) Result {
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	binary := r.Binary
	if binary == "" {
		binary = DefaultBinary
	}

	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, binary, args...)
	cmd.WaitDelay = waitDelay

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start).Round(time.Millisecond)

	if errors.Is(execCtx.Err(), context.DeadlineExceeded) {
		log.Printf("%s %s: timed out after %s", binary, strings.Join(args, " "), timeout)
		return Result{OK: false, Message: TimeoutMessage}
	}

	output := strings.TrimSpace(stdout.String())
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.Printf("%s %s: exit %d in %s", binary, strings.Join(args, " "), exitErr.ExitCode(), elapsed)
			return Result{OK: false, Message: output}
		}
		log.Printf("%s %s: %v", binary, strings.Join(args, " "), err)
		return Result{OK: false, Message: err.Error()}
	}

	log.Printf("%s %s: ok in %s", binary, strings.Join(args, " "), elapsed)
	return Result{OK: true, Message: output}
}

// Check verifies that the configured binary can be found and executed.
// It is a synchronous startup probe.
func (r *ExecRunner) Check(ctx context.Context) error {
	binary := r.Binary
	if binary == "" {
		binary = DefaultBinary
	}
	if _, err := exec.LookPath(binary); err != nil {
		return fmt.Errorf("%w: %v", ErrGitNotFound, err)
	}
	res := r.Run(ctx, "--version")
	if !res.OK {
		return fmt.Errorf("%w: %s --version failed: %s", ErrGitNotFound, binary, res.Message)
	}
	return nil
}
