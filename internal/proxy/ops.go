package proxy

import (
	"context"
	"fmt"
	"strings"

	"github.com/five82/gitproxy/internal/gitcfg"
)

// Query reads both proxy keys. A key counts as set only when git succeeds
// and prints a non-empty value.
func Query(ctx context.Context, r gitcfg.Runner) Status {
	return Status{
		HTTP:  read(ctx, r, gitcfg.KeyHTTPProxy),
		HTTPS: read(ctx, r, gitcfg.KeyHTTPSProxy),
	}
}

// QueryReport wraps Query for the dispatcher.
func QueryReport(ctx context.Context, r gitcfg.Runner) Report {
	return Report{Status: Query(ctx, r), Message: "status refreshed"}
}

func read(ctx context.Context, r gitcfg.Runner, key string) string {
	res := r.Run(ctx, gitcfg.GetArgs(key)...)
	if !res.OK {
		return ""
	}
	return res.Message
}

// Apply writes host:port to both keys and re-reads the status. A failed write
// does not stop the next one and nothing is rolled back.
func Apply(ctx context.Context, r gitcfg.Runner, s Setting) Report {
	if err := s.Validate(); err != nil {
		return Report{Failures: []string{err.Error()}, Message: err.Error()}
	}
	addr := s.Address()

	var failures []string
	for _, key := range []string{gitcfg.KeyHTTPProxy, gitcfg.KeyHTTPSProxy} {
		res := r.Run(ctx, gitcfg.SetArgs(key, addr)...)
		if !res.OK {
			failures = append(failures, describeFailure("set", key, res.Message))
		}
	}

	rep := Report{Status: Query(ctx, r), Failures: failures}
	if len(failures) == 0 {
		rep.Message = "proxy set: " + addr
	} else {
		rep.Message = summarize(failures)
	}
	return rep
}

// Clear unsets both keys and re-reads the status. git exits non-zero when
// unsetting a key that is not present; that only counts as a failure if the
// key is still set afterwards.
func Clear(ctx context.Context, r gitcfg.Runner) Report {
	failed := map[string]string{}
	for _, key := range []string{gitcfg.KeyHTTPProxy, gitcfg.KeyHTTPSProxy} {
		res := r.Run(ctx, gitcfg.UnsetArgs(key)...)
		if !res.OK {
			failed[key] = res.Message
		}
	}

	status := Query(ctx, r)

	var failures []string
	if msg, ok := failed[gitcfg.KeyHTTPProxy]; ok && status.HTTPSet() {
		failures = append(failures, describeFailure("unset", gitcfg.KeyHTTPProxy, msg))
	}
	if msg, ok := failed[gitcfg.KeyHTTPSProxy]; ok && status.HTTPSSet() {
		failures = append(failures, describeFailure("unset", gitcfg.KeyHTTPSProxy, msg))
	}

	rep := Report{Status: status, Failures: failures}
	if len(failures) == 0 {
		rep.Message = "proxy cleared"
	} else {
		rep.Message = summarize(failures)
	}
	return rep
}

func describeFailure(verb, key, detail string) string {
	detail = strings.TrimSpace(detail)
	if detail == "" {
		return fmt.Sprintf("%s %s failed", verb, key)
	}
	return fmt.Sprintf("%s %s failed: %s", verb, key, detail)
}

func summarize(failures []string) string {
	return strings.Join(failures, "; ")
}
