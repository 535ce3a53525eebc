package engine

import (
	"fmt"
	"sync"

	"github.com/packsync/packsync/internal/batch"
	"github.com/packsync/packsync/internal/lock"
	"github.com/packsync/packsync/internal/pack"
)

// Setup registers the configured specs and reconciles the registry with
// the persisted lockfile. Specs that cannot be registered are skipped
// with a warning; a bad entry never blocks the rest.
func Setup(reg *pack.Registry, store *lock.Store, specs []pack.Spec, n Notifier) error {
	for _, spec := range specs {
		if _, err := reg.Register(spec); err != nil {
			if n != nil {
				n.Notify(LevelWarn, fmt.Sprintf("skipping %q: %s", spec.Repo, err))
			}
		}
	}
	snap, err := store.Load(reg.Snapshot())
	if err != nil {
		return err
	}
	reg.Adopt(snap)
	return nil
}

func (e *Engine) notify(level Level, format string, args ...any) {
	if e.Host == nil {
		return
	}
	e.Host.Notify(level, fmt.Sprintf(format, args...))
}

// persist writes the registry state through the lock store. Called after
// every status change so an interrupted run leaves a usable lockfile.
func (e *Engine) persist() {
	if e.Lock == nil {
		return
	}
	if err := e.Lock.Write(e.Registry.Snapshot()); err != nil {
		e.notify(LevelError, "writing lockfile: %s", err)
	}
}

// semaphore bounds in-flight dispatches. A nil semaphore is unbounded.
type semaphore chan struct{}

func newSemaphore(n int) semaphore {
	if n <= 0 {
		return nil
	}
	return make(semaphore, n)
}

func (s semaphore) acquire() {
	if s != nil {
		s <- struct{}{}
	}
}

func (s semaphore) release() {
	if s != nil {
		<-s
	}
}

// newCounter builds the batch counter for op, wiring progress output and
// finalization. Failure lines are emitted at the failure sites, where
// the context is known.
func (e *Engine) newCounter(op string, total int) *batch.Counter {
	return batch.New(op, total, batch.Options{
		Verbose: e.Verbose,
		OnEvent: func(ev batch.Event) {
			switch ev.Outcome {
			case batch.OK:
				e.notify(LevelInfo, "%s %s (%d/%d)", past(ev.Kind), ev.Name, ev.Done, ev.Total)
			case batch.Nop:
				e.notify(LevelDetail, "%s unchanged (%d/%d)", ev.Name, ev.Done, ev.Total)
			}
		},
		OnFinish: func(sum batch.Summary) {
			e.finalize(op, sum)
		},
	})
}

// report delivers a package's single terminal event: the semaphore slot
// frees, the result records the item, the counter tallies it.
func (e *Engine) report(sem semaphore, c *batch.Counter, res *Result, mu *sync.Mutex, name string, outcome batch.Outcome, kind string) {
	sem.release()
	mu.Lock()
	res.Items = append(res.Items, Item{Name: name, Kind: kind, Outcome: outcome})
	mu.Unlock()
	c.Accept(name, outcome, kind)
}

// finalize runs on the goroutine that delivered the last completion,
// before the verb returns.
func (e *Engine) finalize(op string, sum batch.Summary) {
	e.notify(LevelInfo, "%s finished: %d ok, %d failed, %d unchanged", op, sum.OK, sum.Err, sum.Nop)
	if e.Host == nil {
		return
	}
	e.Host.Reload()
	if err := e.Host.RebuildIndex(e.Registry.List(pack.Installed)); err != nil {
		e.notify(LevelWarn, "rebuilding index: %s", err)
	}
	e.Host.BatchDone(op, sum)
}

func (e *Engine) failNote(kind, name string) {
	if e.LogPath != "" {
		e.notify(LevelError, "%s %s failed — see %s", kind, name, e.LogPath)
		return
	}
	e.notify(LevelError, "%s %s failed", kind, name)
}

func past(kind string) string {
	switch kind {
	case "install":
		return "installed"
	case "update":
		return "updated"
	case "remove":
		return "removed"
	default:
		return kind
	}
}

// selectNamed resolves a name filter against the registry. Unknown names
// get a warning and are dropped; an empty filter selects everything.
func (e *Engine) selectNamed(names []string) []pack.Package {
	if len(names) == 0 {
		return e.Registry.List()
	}
	var out []pack.Package
	for _, name := range names {
		p, ok := e.Registry.Get(name)
		if !ok {
			e.notify(LevelWarn, "unknown package %q", name)
			continue
		}
		out = append(out, p)
	}
	return out
}

func (e *Engine) subset(pred pack.Predicate, names []string) []pack.Package {
	var out []pack.Package
	for _, p := range e.selectNamed(names) {
		if pred(&p) {
			out = append(out, p)
		}
	}
	return out
}
