// Package batch aggregates the completions of concurrent package
// operations. The Counter is the single synchronization point of a batch:
// every other component stays free of concurrency concerns by reporting
// its terminal outcome here and nowhere else.
package batch

import "sync"

// Outcome classifies one completed operation.
type Outcome int

const (
	OK Outcome = iota
	Err
	Nop
)

func (o Outcome) String() string {
	switch o {
	case OK:
		return "ok"
	case Err:
		return "err"
	case Nop:
		return "nop"
	default:
		return "unknown"
	}
}

// Event describes one completion. Done counts successful and unchanged
// operations, so progress reads as (ok+nop)/total.
type Event struct {
	Name    string
	Kind    string
	Outcome Outcome
	Done    int
	Total   int
}

// Summary totals a finished batch.
type Summary struct {
	Op    string
	Total int
	OK    int
	Err   int
	Nop   int
}

// Options configures counter callbacks. OnEvent fires once per completion,
// suppressed for Nop outcomes unless Verbose is set. OnFinish fires exactly
// once, when every operation has reported.
type Options struct {
	Verbose  bool
	OnEvent  func(Event)
	OnFinish func(Summary)
}

// Counter tallies the completions of one batch. Accept may be called from
// any goroutine; the tally is guarded by a mutex and finalization runs
// exactly once, on the goroutine that delivered the last completion.
// Callbacks are invoked outside the lock, so they may use the counter but
// must not call Accept.
type Counter struct {
	op   string
	opts Options

	mu       sync.Mutex
	total    int
	ok       int
	err      int
	nop      int
	finished bool
	done     chan struct{}
}

// New creates a Counter for a batch of total operations named op. An empty
// batch is the caller's short-circuit: callers report "nothing to do"
// themselves and never construct a counter for total == 0.
func New(op string, total int, opts Options) *Counter {
	return &Counter{op: op, opts: opts, total: total, done: make(chan struct{})}
}

// Accept records one completed operation. kind overrides the batch
// operation name in the emitted event; pass "" to keep it. Calls arriving
// after the batch has finished are ignored.
func (c *Counter) Accept(name string, outcome Outcome, kind string) {
	c.mu.Lock()
	if c.finished {
		c.mu.Unlock()
		return
	}
	switch outcome {
	case OK:
		c.ok++
	case Err:
		c.err++
	case Nop:
		c.nop++
	}
	if kind == "" {
		kind = c.op
	}
	ev := Event{Name: name, Kind: kind, Outcome: outcome, Done: c.ok + c.nop, Total: c.total}
	final := c.ok+c.err+c.nop >= c.total
	if final {
		c.finished = true
	}
	sum := Summary{Op: c.op, Total: c.total, OK: c.ok, Err: c.err, Nop: c.nop}
	c.mu.Unlock()

	if c.opts.OnEvent != nil && (outcome != Nop || c.opts.Verbose) {
		c.opts.OnEvent(ev)
	}
	if final {
		if c.opts.OnFinish != nil {
			c.opts.OnFinish(sum)
		}
		close(c.done)
	}
}

// Done returns a channel closed at finalization.
func (c *Counter) Done() <-chan struct{} {
	return c.done
}

// Summary returns the tallies recorded so far.
func (c *Counter) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Summary{Op: c.op, Total: c.total, OK: c.ok, Err: c.err, Nop: c.nop}
}
