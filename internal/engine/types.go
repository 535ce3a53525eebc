// Package engine schedules batches of package operations: installs,
// updates, syncs, and cleans. Verbs dispatch git subprocesses and hooks
// concurrently, collect their outcomes through a batch counter, and
// return once every package has reported.
package engine

import (
	"github.com/packsync/packsync/internal/batch"
	"github.com/packsync/packsync/internal/git"
	"github.com/packsync/packsync/internal/hook"
	"github.com/packsync/packsync/internal/lock"
	"github.com/packsync/packsync/internal/pack"
	"github.com/packsync/packsync/internal/scanner"
)

// Level classifies notifications.
type Level int

const (
	LevelInfo Level = iota
	LevelDetail
	LevelWarn
	LevelError
)

// Notifier receives human-readable progress lines.
type Notifier interface {
	Notify(level Level, message string)
}

// Host is the embedding surface the engine drives: a terminal frontend,
// an editor, or a test recorder. The same value serves hook execution,
// so hooks can load opt packages and run host-native commands.
type Host interface {
	Notifier

	// Load makes an opt package available before its hook function runs.
	Load(name string) error

	// RunCommand executes a host-native command for hooks of the ":" form.
	RunCommand(command string) error

	// Reload tells the host the package set changed.
	Reload()

	// RebuildIndex regenerates whatever the host derives from the
	// installed set.
	RebuildIndex(packs []pack.Package) error

	// BatchDone reports a finished batch.
	BatchDone(op string, sum batch.Summary)
}

// Fetcher issues the git operations the engine schedules. git.Ops is the
// production implementation.
type Fetcher interface {
	Clone(name, url, branch, dir string, onDone func(ok bool)) error
	Pull(name, dir string, onDone func(ok bool)) error
	Changelog(name, dir, oldHash, newHash string) error
}

// Engine coordinates package batches. All fields are set once before the
// first verb runs.
type Engine struct {
	Registry *pack.Registry
	Lock     *lock.Store
	Git      Fetcher
	Revs     git.RevisionReader
	Hooks    *hook.Runner
	Scanner  *scanner.Scanner
	Host     Host

	// Jobs bounds concurrent dispatches. 0 means unbounded.
	Jobs int

	// Verbose surfaces unchanged packages in progress output.
	Verbose bool

	// LogPath names the append log in failure messages.
	LogPath string
}

// Item records the terminal outcome of one package in a batch.
type Item struct {
	Name    string
	Kind    string
	Outcome batch.Outcome
}

// Result summarizes one finished batch.
type Result struct {
	Op      string
	Items   []Item
	Summary batch.Summary
}

// CleanResult lists what clean found and, unless it was a dry run, what
// it removed.
type CleanResult struct {
	Candidates []string
	Removed    *Result
}

// StatusRow is one line of the status report.
type StatusRow struct {
	Name   string
	Class  string
	Status pack.Status
	Pin    bool
	Hash   string
	Dir    string
}
