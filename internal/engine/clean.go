package engine

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/packsync/packsync/internal/batch"
	"github.com/packsync/packsync/internal/pack"
)

// CleanOptions configures a clean operation.
type CleanOptions struct {
	// DryRun stops after listing candidates.
	DryRun bool
}

// Clean removes directories under the pack roots that no configured
// package owns. Removed directories leave tombstones in the lockfile so
// a later run still knows they were managed once.
func (e *Engine) Clean(ctx context.Context, opts CleanOptions) (*CleanResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	registered := make(map[string]bool)
	for _, p := range e.Registry.List(pack.NotRemoved) {
		if p.Dir != "" {
			registered[filepath.Clean(p.Dir)] = true
		}
	}
	candidates, err := e.Scanner.FindUnlisted(registered)
	if err != nil {
		return nil, err
	}
	out := &CleanResult{Candidates: candidates}
	if len(candidates) == 0 {
		e.notify(LevelInfo, "nothing to clean")
		return out, nil
	}
	if opts.DryRun {
		return out, nil
	}

	res := &Result{Op: "remove"}
	var mu sync.Mutex
	c := e.newCounter("remove", len(candidates))
	sem := newSemaphore(e.Jobs)
	for _, dir := range candidates {
		sem.acquire()
		go e.dispatchRemove(dir, c, sem, res, &mu)
	}
	<-c.Done()
	res.Summary = c.Summary()
	out.Removed = res
	return out, nil
}

// dispatchRemove deletes one orphan directory. The tombstone is keyed by
// basename; a live record with the same name in the other class keeps
// its entry untouched.
func (e *Engine) dispatchRemove(dir string, c *batch.Counter, sem semaphore, res *Result, mu *sync.Mutex) {
	name := filepath.Base(dir)
	if err := e.Scanner.Remove(dir); err != nil {
		e.notify(LevelError, "remove %s: %s", name, err)
		e.report(sem, c, res, mu, name, batch.Err, "remove")
		return
	}
	if p, ok := e.Registry.Get(name); !ok || p.Status == pack.StatusRemoved {
		e.Registry.MarkRemoved(name)
		e.persist()
	}
	e.report(sem, c, res, mu, name, batch.OK, "remove")
}
