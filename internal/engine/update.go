package engine

import (
	"context"
	"sync"

	"github.com/packsync/packsync/internal/batch"
	"github.com/packsync/packsync/internal/pack"
)

// UpdateOptions selects which packages to update. An empty Names filter
// means every installed, unpinned package.
type UpdateOptions struct {
	Names []string
}

// Update pulls every eligible package, appends a changelog for each one
// whose revision moved, and runs update hooks. Packages whose revision
// did not move count as unchanged.
func (e *Engine) Update(ctx context.Context, opts UpdateOptions) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := &Result{Op: "update"}
	targets := e.subset(pack.UpdateEligible, opts.Names)
	if len(targets) == 0 {
		e.notify(LevelInfo, "nothing to update")
		return res, nil
	}
	var mu sync.Mutex
	c := e.newCounter("update", len(targets))
	sem := newSemaphore(e.Jobs)
	for _, p := range targets {
		sem.acquire()
		e.dispatchPull(p, c, sem, res, &mu)
	}
	<-c.Done()
	res.Summary = c.Summary()
	return res, nil
}

// dispatchPull starts one pull. The prior revision is captured at
// dispatch; comparing it against the post-pull head decides between
// unchanged and updated. The changelog needs both ends of the range, so
// a move from or to an unreadable revision records the update without
// one.
func (e *Engine) dispatchPull(p pack.Package, c *batch.Counter, sem semaphore, res *Result, mu *sync.Mutex) {
	prior := p.Hash
	err := e.Git.Pull(p.Name, p.Dir, func(ok bool) {
		if !ok {
			e.failNote("update", p.Name)
			e.report(sem, c, res, mu, p.Name, batch.Err, "update")
			return
		}
		var current string
		if e.Revs != nil {
			current = e.Revs.Head(p.Dir)
		}
		if current == prior {
			e.report(sem, c, res, mu, p.Name, batch.Nop, "update")
			return
		}
		if prior != "" && current != "" {
			if lerr := e.Git.Changelog(p.Name, p.Dir, prior, current); lerr != nil {
				e.notify(LevelDetail, "changelog for %s: %s", p.Name, lerr)
			}
		}
		e.Registry.MarkUpdated(p.Name, current)
		e.persist()
		e.runHook(p, c, sem, res, mu, "update")
	})
	if err != nil {
		e.notify(LevelError, "update %s: %s", p.Name, err)
		e.report(sem, c, res, mu, p.Name, batch.Err, "update")
	}
}
