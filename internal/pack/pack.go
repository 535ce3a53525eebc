// Package pack models managed packages and tracks their lifecycle.
package pack

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/packsync/packsync/internal/hook"
)

// Status tracks where a package sits in its lifecycle. Listed means the
// configuration names it but nothing is on disk yet; Removed is the
// tombstone recorded after its directory is deleted.
type Status int

const (
	StatusListed Status = iota
	StatusInstalled
	StatusCloned
	StatusUpdated
	StatusRemoved
)

func (s Status) String() string {
	switch s {
	case StatusListed:
		return "listed"
	case StatusInstalled:
		return "installed"
	case StatusCloned:
		return "cloned"
	case StatusUpdated:
		return "updated"
	case StatusRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Package is one managed package and its current lifecycle state.
type Package struct {
	Name   string
	URL    string
	Branch string
	Dir    string
	Opt    bool
	Pin    bool
	Hook   *hook.Hook
	Status Status
	Hash   string
}

// Class returns the load class the package installs under.
func (p *Package) Class() string {
	if p.Opt {
		return "opt"
	}
	return "start"
}

// ShortHash returns an abbreviated revision for display.
func (p *Package) ShortHash() string {
	if len(p.Hash) > 8 {
		return p.Hash[:8]
	}
	return p.Hash
}

// Spec is the declarative form of a package, as written in configuration
// or passed by an embedding program. Fn takes precedence over Do when both
// are set.
type Spec struct {
	Repo   string
	As     string
	Branch string
	Opt    bool
	Pin    bool
	Do     string
	Fn     hook.Func
}

// Layout maps package names to install directories under a single root.
type Layout struct {
	Root string
}

// StartDir returns the directory for packages loaded eagerly.
func (l Layout) StartDir() string {
	return filepath.Join(l.Root, "start")
}

// OptDir returns the directory for packages loaded on demand.
func (l Layout) OptDir() string {
	return filepath.Join(l.Root, "opt")
}

// Roots lists both class directories.
func (l Layout) Roots() []string {
	return []string{l.StartDir(), l.OptDir()}
}

// Dir returns the install directory for a named package.
func (l Layout) Dir(name string, opt bool) string {
	if opt {
		return filepath.Join(l.OptDir(), name)
	}
	return filepath.Join(l.StartDir(), name)
}

// PackError describes a failure tied to one package.
type PackError struct {
	Pack string
	Op   string
	Err  error
	Hint string
}

func (e *PackError) Error() string {
	msg := fmt.Sprintf("pack %s: %s: %s", e.Pack, e.Op, e.Err)
	if e.Hint != "" {
		msg += " — " + e.Hint
	}
	return msg
}

func (e *PackError) Unwrap() error {
	return e.Err
}

// ExpandURL turns the owner/repo shorthand into a full clone URL. Anything
// that already looks like a URL or a path is returned verbatim.
func ExpandURL(repo string) string {
	if strings.Contains(repo, ":") || strings.HasPrefix(repo, "/") || strings.HasPrefix(repo, ".") {
		return repo
	}
	if strings.Count(repo, "/") == 1 {
		return "https://github.com/" + repo + ".git"
	}
	return repo
}

// DeriveName extracts a package name from a clone URL: the final path
// segment with any .git suffix trimmed. Returns "" when nothing remains.
func DeriveName(url string) string {
	name := url
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, ":"); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, ".git")
}
