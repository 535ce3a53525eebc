package packsync

import (
	"github.com/packsync/packsync/internal/batch"
	"github.com/packsync/packsync/internal/engine"
	"github.com/packsync/packsync/internal/hook"
	"github.com/packsync/packsync/internal/pack"
)

// Type aliases re-export internal types as the public API.

type (
	// Host receives notifications and editor-side work from a running batch.
	Host = engine.Host
	// Notifier is the notification subset of Host.
	Notifier = engine.Notifier
	// Level classifies a notification.
	Level = engine.Level

	// Result summarizes an install, update, or sync batch.
	Result = engine.Result
	// Item records the terminal outcome of one package in a batch.
	Item = engine.Item
	// CleanResult reports clean candidates and removals.
	CleanResult = engine.CleanResult
	// StatusRow is one line of status output.
	StatusRow = engine.StatusRow

	// Summary carries the final tallies of a batch.
	Summary = batch.Summary
	// Outcome is the terminal state of one package operation.
	Outcome = batch.Outcome

	// Spec declares a package to manage.
	Spec = pack.Spec
	// Package is a managed package record.
	Package = pack.Package
	// Status is a package lifecycle state.
	Status = pack.Status

	// HookInfo describes the package a hook runs for.
	HookInfo = hook.Info
	// HookFunc is a Go post-operation hook.
	HookFunc = hook.Func
)

const (
	LevelInfo   = engine.LevelInfo
	LevelDetail = engine.LevelDetail
	LevelWarn   = engine.LevelWarn
	LevelError  = engine.LevelError
)

// IndexFile is the name of the JSON index maintained under the pack root.
const IndexFile = engine.IndexFile

const (
	OutcomeOK  = batch.OK
	OutcomeErr = batch.Err
	OutcomeNop = batch.Nop
)

const (
	StatusListed    = pack.StatusListed
	StatusInstalled = pack.StatusInstalled
	StatusCloned    = pack.StatusCloned
	StatusUpdated   = pack.StatusUpdated
	StatusRemoved   = pack.StatusRemoved
)
