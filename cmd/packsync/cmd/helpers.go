package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/packsync/packsync/internal/config"
	"github.com/packsync/packsync/internal/engine"
	"github.com/packsync/packsync/internal/git"
	"github.com/packsync/packsync/internal/hook"
	"github.com/packsync/packsync/internal/lock"
	"github.com/packsync/packsync/internal/pack"
	"github.com/packsync/packsync/internal/runner"
	"github.com/packsync/packsync/internal/scanner"
)

// lockPath resolves the effective lockfile location.
func lockPath(cfg *config.Config) string {
	if lockfilePath != "" {
		return lockfilePath
	}
	return filepath.Join(cfg.EffectivePackDir(), "packsync.lock")
}

// buildEngine loads the config and wires the full engine: registry,
// lock store, git operations, hook runner, scanner, and terminal host.
func buildEngine() (*engine.Engine, *config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	packDir := cfg.EffectivePackDir()
	log := runner.NewLog(cfg.EffectiveLogFile())
	run := &runner.Runner{Log: log, CaptureStdout: verbose}
	layout := pack.Layout{Root: packDir}
	revs := git.HeadReader{}
	reg := pack.NewRegistry(layout, revs)
	store := lock.NewStore(lockPath(cfg))
	host := &terminalHost{packDir: packDir}

	jobs := cfg.Jobs
	if jobsFlag > 0 {
		jobs = jobsFlag
	}

	eng := &engine.Engine{
		Registry: reg,
		Lock:     store,
		Git:      &git.Ops{Run: run, Log: log},
		Revs:     revs,
		Hooks:    &hook.Runner{Commands: run, Host: host},
		Scanner:  &scanner.Scanner{Roots: layout.Roots()},
		Host:     host,
		Jobs:     jobs,
		Verbose:  verbose,
		LogPath:  log.Path(),
	}

	specs := make([]pack.Spec, 0, len(cfg.Packs))
	for _, p := range cfg.Packs {
		specs = append(specs, p.Spec())
	}
	if err := engine.Setup(reg, store, specs, host); err != nil {
		return nil, nil, err
	}
	return eng, cfg, nil
}

// failOn turns batch failures into a command error so the process exits
// nonzero.
func failOn(res *engine.Result) error {
	if res != nil && res.Summary.Err > 0 {
		return fmt.Errorf("%d operation(s) failed", res.Summary.Err)
	}
	return nil
}

// info prints a line unless quiet mode is active.
func info(format string, args ...any) {
	if !quiet {
		fmt.Printf(format+"\n", args...)
	}
}

// detail prints a line only in verbose mode.
func detail(format string, args ...any) {
	if verbose {
		fmt.Printf("  "+format+"\n", args...)
	}
}

// errorf prints an error message to stderr.
func errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
