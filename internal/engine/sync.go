package engine

import (
	"context"
	"sync"

	"github.com/packsync/packsync/internal/pack"
)

// SyncOptions selects which packages to sync. An empty Names filter
// means everything the configuration lists.
type SyncOptions struct {
	Names []string
}

// Sync reconciles the configuration against disk in one batch: missing
// packages are cloned, installed ones pulled, pinned ones left alone.
func (e *Engine) Sync(ctx context.Context, opts SyncOptions) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := &Result{Op: "sync"}
	var installs, updates []pack.Package
	for _, p := range e.selectNamed(opts.Names) {
		switch {
		case pack.AwaitingInstall(&p):
			installs = append(installs, p)
		case pack.UpdateEligible(&p):
			updates = append(updates, p)
		}
	}
	if len(installs)+len(updates) == 0 {
		e.notify(LevelInfo, "nothing to sync")
		return res, nil
	}
	var mu sync.Mutex
	c := e.newCounter("sync", len(installs)+len(updates))
	sem := newSemaphore(e.Jobs)
	for _, p := range installs {
		sem.acquire()
		e.dispatchClone(p, c, sem, res, &mu)
	}
	for _, p := range updates {
		sem.acquire()
		e.dispatchPull(p, c, sem, res, &mu)
	}
	<-c.Done()
	res.Summary = c.Summary()
	return res, nil
}
