// Package dispatch coordinates background actions with the single-threaded
// Bubble Tea event loop.
//
// # Model
//
// The Update loop plays the role of the UI thread. Each accepted action runs
// as one tea.Cmd, which Bubble Tea executes on its own goroutine; the command's
// return value (DoneMsg) is handed back to Update through the program's
// message channel. Workers never mutate UI state.
//
//	Update (UI loop)                worker goroutine
//	────────────────                ────────────────
//	Start(op) ── gate busy? ─ yes ─> nil (ignored)
//	          └─ no: gate = op ───> work(ctx) ... git calls ...
//	                                 return DoneMsg
//	Update(DoneMsg) <───────────────┘
//	  render status, enable inputs, Finish (gate = idle)
//
// # Busy gate
//
// Gate is a plain value with no locks: it is only read and written from
// Update, so the check-and-set in Start is atomic with respect to every other
// trigger. While the gate is set further triggers are silently dropped; there
// is no queue. Each acquisition carries a sequence number so a completion
// can only release the acquisition that produced it.
//
// # Cancellation
//
// There is none. A worker runs to completion, bounded by the per-invocation
// timeout of the git runner.
package dispatch
