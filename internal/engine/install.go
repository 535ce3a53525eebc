package engine

import (
	"context"
	"sync"

	"github.com/packsync/packsync/internal/batch"
	"github.com/packsync/packsync/internal/hook"
	"github.com/packsync/packsync/internal/pack"
)

// InstallOptions selects which packages to install. An empty Names
// filter means every listed package.
type InstallOptions struct {
	Names []string
}

// Install clones every listed package that is not yet on disk and runs
// install hooks. The call returns once every clone and hook has
// reported; per-package failures are tallied, not propagated.
func (e *Engine) Install(ctx context.Context, opts InstallOptions) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := &Result{Op: "install"}
	targets := e.subset(pack.AwaitingInstall, opts.Names)
	if len(targets) == 0 {
		e.notify(LevelInfo, "nothing to install")
		return res, nil
	}
	var mu sync.Mutex
	c := e.newCounter("install", len(targets))
	sem := newSemaphore(e.Jobs)
	for _, p := range targets {
		sem.acquire()
		e.dispatchClone(p, c, sem, res, &mu)
	}
	<-c.Done()
	res.Summary = c.Summary()
	return res, nil
}

// dispatchClone starts one clone. A spawn failure is the package's
// terminal event; otherwise the completion callback marks the package,
// persists, and hands off to the hook, whose outcome becomes terminal.
func (e *Engine) dispatchClone(p pack.Package, c *batch.Counter, sem semaphore, res *Result, mu *sync.Mutex) {
	err := e.Git.Clone(p.Name, p.URL, p.Branch, p.Dir, func(ok bool) {
		if !ok {
			e.failNote("install", p.Name)
			e.report(sem, c, res, mu, p.Name, batch.Err, "install")
			return
		}
		var hash string
		if e.Revs != nil {
			hash = e.Revs.Head(p.Dir)
		}
		e.Registry.MarkCloned(p.Name, hash)
		e.persist()
		e.runHook(p, c, sem, res, mu, "install")
	})
	if err != nil {
		e.notify(LevelError, "install %s: %s", p.Name, err)
		e.report(sem, c, res, mu, p.Name, batch.Err, "install")
	}
}

// runHook delivers the package's terminal event once the fetch landed.
// A missing hook reports success immediately; a hook failure replaces
// what would have been the fetch's success.
func (e *Engine) runHook(p pack.Package, c *batch.Counter, sem semaphore, res *Result, mu *sync.Mutex, kind string) {
	if p.Hook == nil || e.Hooks == nil {
		e.report(sem, c, res, mu, p.Name, batch.OK, kind)
		return
	}
	info := hook.Info{Name: p.Name, URL: p.URL, Dir: p.Dir}
	err := e.Hooks.Run(p.Hook, info, func(ok bool) {
		if !ok {
			e.notify(LevelWarn, "hook for %s failed", p.Name)
			e.report(sem, c, res, mu, p.Name, batch.Err, kind)
			return
		}
		e.report(sem, c, res, mu, p.Name, batch.OK, kind)
	})
	if err != nil {
		e.notify(LevelWarn, "hook for %s: %s", p.Name, err)
		e.report(sem, c, res, mu, p.Name, batch.Err, kind)
	}
}
