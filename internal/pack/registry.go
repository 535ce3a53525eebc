package pack

import (
	"errors"
	"os"
	"sort"
	"sync"

	"github.com/packsync/packsync/internal/hook"
	"github.com/packsync/packsync/internal/lock"
)

// RevisionReader reports the revision a working tree sits at, "" when it
// cannot be determined.
type RevisionReader interface {
	Head(dir string) string
}

// Registry holds every package the current run knows about, keyed by
// name. Mutating methods are safe for concurrent use; completion
// callbacks update statuses from the goroutines that observe them.
type Registry struct {
	layout Layout
	revs   RevisionReader

	mu    sync.Mutex
	packs map[string]*Package
}

// NewRegistry creates an empty registry over the given layout.
func NewRegistry(layout Layout, revs RevisionReader) *Registry {
	return &Registry{layout: layout, revs: revs, packs: make(map[string]*Package)}
}

// Layout returns the directory layout the registry maps packages into.
func (r *Registry) Layout() Layout {
	return r.layout
}

// Register resolves a spec into a Package and records it. Packages whose
// directory already exists enter as Installed with their current revision;
// the rest enter as Listed. Registering a name again replaces the previous
// record, tombstones included.
func (r *Registry) Register(spec Spec) (Package, error) {
	url := ExpandURL(spec.Repo)
	name := spec.As
	if name == "" {
		name = DeriveName(url)
	}
	if name == "" {
		return Package{}, &PackError{
			Pack: spec.Repo,
			Op:   "register",
			Err:  errors.New("cannot derive a package name"),
			Hint: "set 'as' or use the owner/repo form",
		}
	}
	p := &Package{
		Name:   name,
		URL:    url,
		Branch: spec.Branch,
		Dir:    r.layout.Dir(name, spec.Opt),
		Opt:    spec.Opt,
		Pin:    spec.Pin,
		Status: StatusListed,
	}
	if spec.Fn != nil {
		p.Hook = hook.ForFunc(spec.Fn)
	} else {
		p.Hook = hook.Parse(spec.Do)
	}
	if _, err := os.Stat(p.Dir); err == nil {
		p.Status = StatusInstalled
		if r.revs != nil {
			p.Hash = r.revs.Head(p.Dir)
		}
	}

	r.mu.Lock()
	r.packs[name] = p
	r.mu.Unlock()
	return *p, nil
}

// Get returns a copy of the named package.
func (r *Registry) Get(name string) (Package, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.packs[name]
	if !ok {
		return Package{}, false
	}
	return *p, true
}

// Predicate selects packages for List.
type Predicate func(*Package) bool

// NotRemoved keeps everything but tombstones.
func NotRemoved(p *Package) bool {
	return p.Status != StatusRemoved
}

// Removable keeps tombstones.
func Removable(p *Package) bool {
	return p.Status == StatusRemoved
}

// AwaitingInstall keeps packages listed but not yet on disk.
func AwaitingInstall(p *Package) bool {
	return p.Status == StatusListed
}

// Installed keeps packages with a working tree on disk.
func Installed(p *Package) bool {
	return p.Status != StatusRemoved && p.Status != StatusListed
}

// UpdateEligible keeps installed packages that are not pinned.
func UpdateEligible(p *Package) bool {
	return Installed(p) && !p.Pin
}

// List returns copies of the packages matching every predicate, sorted by
// name. With no predicates it returns everything.
func (r *Registry) List(preds ...Predicate) []Package {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Package
	for _, p := range r.packs {
		keep := true
		for _, pred := range preds {
			if !pred(p) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len reports how many records the registry holds, tombstones included.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.packs)
}

// MarkCloned records a completed installation at the given revision.
func (r *Registry) MarkCloned(name, hash string) {
	r.setStatus(name, StatusCloned, hash)
}

// MarkUpdated records a completed update at the given revision.
func (r *Registry) MarkUpdated(name, hash string) {
	r.setStatus(name, StatusUpdated, hash)
}

func (r *Registry) setStatus(name string, status Status, hash string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.packs[name]
	if !ok {
		return
	}
	p.Status = status
	p.Hash = hash
}

// MarkRemoved replaces the named record with a tombstone carrying only the
// name and removed status.
func (r *Registry) MarkRemoved(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.packs[name] = &Package{Name: name, Status: StatusRemoved}
}

// Snapshot renders every record, tombstones included, for persistence.
// Hooks are execution detail and never serialized.
func (r *Registry) Snapshot() lock.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := make(lock.Snapshot, len(r.packs))
	for name, p := range r.packs {
		snap[name] = lock.Record{
			URL:    p.URL,
			Branch: p.Branch,
			Dir:    p.Dir,
			Status: int(p.Status),
			Hash:   p.Hash,
			Pin:    p.Pin,
		}
	}
	return snap
}

// Adopt folds a persisted snapshot into the registry. For registered
// packages only a missing hash is filled in, and only when the package is
// already on disk; configuration stays authoritative for everything else.
// Unregistered rows survive only as tombstones, so a later clean can
// still offer their directories.
func (r *Registry) Adopt(snap lock.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name, rec := range snap {
		if p, ok := r.packs[name]; ok {
			if p.Hash == "" && p.Status != StatusListed {
				p.Hash = rec.Hash
			}
			continue
		}
		if Status(rec.Status) == StatusRemoved {
			r.packs[name] = &Package{Name: name, Status: StatusRemoved}
		}
	}
}
