package dispatch

import (
	"context"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/gitproxy/internal/proxy"
)

// Op identifies a user-triggered action.
type Op int

const (
	OpNone Op = iota
	OpQuery
	OpSet
	OpUnset
)

func (o Op) String() string {
	switch o {
	case OpQuery:
		return "query"
	case OpSet:
		return "set"
	case OpUnset:
		return "unset"
	default:
		return "none"
	}
}

// Work is the body of a background action. It must not touch UI state.
type Work func(ctx context.Context) proxy.Report

// DoneMsg is delivered to the UI loop when a worker finishes.
type DoneMsg struct {
	Op      Op
	Seq     uint64
	Report  proxy.Report
	Elapsed time.Duration
}

// Gate is the busy flag. The zero value is idle.
type Gate struct {
	op  Op
	seq uint64
}

// Busy reports whether an action is in flight.
func (g *Gate) Busy() bool { return g.op != OpNone }

// Current returns the in-flight action, or OpNone.
func (g *Gate) Current() Op { return g.op }

func (g *Gate) acquire(op Op) (uint64, bool) {
	if g.Busy() {
		return 0, false
	}
	g.seq++
	g.op = op
	return g.seq, true
}

func (g *Gate) release(seq uint64) bool {
	if !g.Busy() || seq != g.seq {
		return false
	}
	g.op = OpNone
	return true
}

// Dispatcher owns the Gate and turns accepted actions into Bubble Tea
// commands. Start and Finish must only be called from the Update loop.
type Dispatcher struct {
	ctx  context.Context
	gate Gate
}

// New returns an idle Dispatcher whose workers run under ctx.
func New(ctx context.Context) *Dispatcher {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Dispatcher{ctx: ctx}
}

// Busy reports whether an action is in flight.
func (d *Dispatcher) Busy() bool { return d.gate.Busy() }

// Current returns the in-flight action, or OpNone.
func (d *Dispatcher) Current() Op { return d.gate.Current() }

// Start marks op as running and returns the command that performs work on a
// separate goroutine. It returns nil, leaving state untouched, when another
// action is already running.
func (d *Dispatcher) Start(op Op, work Work) tea.Cmd {
	seq, ok := d.gate.acquire(op)
	if !ok {
		log.Printf("dispatch: %s ignored, %s in flight", op, d.gate.Current())
		return nil
	}
	ctx := d.ctx
	return func() tea.Msg {
		start := time.Now()
		rep := work(ctx)
		return DoneMsg{Op: op, Seq: seq, Report: rep, Elapsed: time.Since(start)}
	}
}

// Finish releases the gate for msg. Messages from a superseded sequence are
// ignored and Finish reports false.
func (d *Dispatcher) Finish(msg DoneMsg) bool {
	if !d.gate.release(msg.Seq) {
		log.Printf("dispatch: stale completion for %s (seq %d)", msg.Op, msg.Seq)
		return false
	}
	log.Printf("dispatch: %s finished in %s: %s", msg.Op, msg.Elapsed.Round(time.Millisecond), msg.Report.Message)
	return true
}
