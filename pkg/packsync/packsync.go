// Package packsync provides the public Go library API for packsync.
//
// packsync manages vim-style packages as shallow git clones under a
// start/opt pack layout. This package exposes a Client for embedding
// the manager in other Go programs: an editor host, a setup tool, a
// dotfiles installer.
//
// # Basic Usage
//
//	client, err := packsync.New(packsync.Options{
//	    ConfigPath: "/home/you/.config/packsync/packsync.yaml",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Install whatever the configuration lists.
//	result, err := client.Install(ctx)
//
//	// Pull everything that is not pinned.
//	result, err = client.Update(ctx)
//
// Embedding programs can skip the configuration file entirely and
// register packages programmatically, including hook functions that a
// YAML file cannot express:
//
//	client, err := packsync.New(packsync.Options{
//	    PackDir: packDir,
//	    Packs: []packsync.Spec{
//	        {Repo: "junegunn/goyo.vim", Opt: true, Fn: func(info packsync.HookInfo) error {
//	            return editor.HelptagsAll(info.Dir)
//	        }},
//	    },
//	})
package packsync

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/packsync/packsync/internal/batch"
	"github.com/packsync/packsync/internal/config"
	"github.com/packsync/packsync/internal/engine"
	"github.com/packsync/packsync/internal/git"
	"github.com/packsync/packsync/internal/hook"
	"github.com/packsync/packsync/internal/lock"
	"github.com/packsync/packsync/internal/pack"
	"github.com/packsync/packsync/internal/runner"
	"github.com/packsync/packsync/internal/scanner"
)

// Options configures a packsync Client.
type Options struct {
	// ConfigPath is the configuration file to load. If empty, the XDG
	// default is used, unless Packs is set, in which case no file is
	// read at all.
	ConfigPath string

	// Packs registers packages programmatically, after any the
	// configuration lists. This is the only way to attach Go hook
	// functions.
	Packs []Spec

	// PackDir overrides where packages are installed.
	PackDir string

	// LogFile overrides where subprocess output and changelogs land.
	LogFile string

	// LockPath overrides the lockfile location.
	// Default: <pack_dir>/packsync.lock.
	LockPath string

	// Jobs bounds concurrent git subprocesses. 0 keeps the configured
	// value (which itself defaults to unbounded).
	Jobs int

	// Verbose surfaces unchanged packages and captures subprocess
	// stdout in the log.
	Verbose bool

	// Host receives notifications and runs editor-side hooks. If nil,
	// notifications are dropped and ":" hooks fail.
	Host Host
}

// Client is the main entry point for the packsync library. The
// configuration is captured at New; build a new Client to pick up
// on-disk changes.
type Client struct {
	eng *engine.Engine
	cfg *config.Config
}

// New loads the configuration, registers every package, and reconciles
// against the lockfile.
func New(opts Options) (*Client, error) {
	var cfg *config.Config
	if opts.ConfigPath == "" && len(opts.Packs) > 0 {
		cfg = &config.Config{Version: 1}
	} else {
		path := opts.ConfigPath
		if path == "" {
			path = config.DefaultPath()
		}
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if opts.PackDir != "" {
		cfg.PackDir = opts.PackDir
	}
	if opts.LogFile != "" {
		cfg.LogFile = opts.LogFile
	}

	packDir := cfg.EffectivePackDir()
	lockPath := opts.LockPath
	if lockPath == "" {
		lockPath = filepath.Join(packDir, "packsync.lock")
	}
	host := opts.Host
	if host == nil {
		host = &defaultHost{packDir: packDir}
	}

	log := runner.NewLog(cfg.EffectiveLogFile())
	run := &runner.Runner{Log: log, CaptureStdout: opts.Verbose}
	layout := pack.Layout{Root: packDir}
	revs := git.HeadReader{}
	reg := pack.NewRegistry(layout, revs)
	store := lock.NewStore(lockPath)

	jobs := cfg.Jobs
	if opts.Jobs > 0 {
		jobs = opts.Jobs
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
		Verbose:  opts.Verbose,
		LogPath:  log.Path(),
	}

	specs := make([]pack.Spec, 0, len(cfg.Packs)+len(opts.Packs))
	for _, p := range cfg.Packs {
		specs = append(specs, p.Spec())
	}
	specs = append(specs, opts.Packs...)
	if err := engine.Setup(reg, store, specs, host); err != nil {
		return nil, err
	}
	return &Client{eng: eng, cfg: cfg}, nil
}

// Install clones listed packages that are not yet on disk. Names narrow
// the batch.
func (c *Client) Install(ctx context.Context, names ...string) (*Result, error) {
	return c.eng.Install(ctx, engine.InstallOptions{Names: names})
}

// Update pulls installed, unpinned packages. Names narrow the batch.
func (c *Client) Update(ctx context.Context, names ...string) (*Result, error) {
	return c.eng.Update(ctx, engine.UpdateOptions{Names: names})
}

// Sync installs missing packages and updates the rest in one batch.
func (c *Client) Sync(ctx context.Context, names ...string) (*Result, error) {
	return c.eng.Sync(ctx, engine.SyncOptions{Names: names})
}

// Clean removes unmanaged directories under the pack roots. With dryRun
// it only reports candidates.
func (c *Client) Clean(ctx context.Context, dryRun bool) (*CleanResult, error) {
	return c.eng.Clean(ctx, engine.CleanOptions{DryRun: dryRun})
}

// Status reports every known record, tombstones included.
func (c *Client) Status() []StatusRow {
	return c.eng.Status()
}

// Packages returns the current non-removed packages.
func (c *Client) Packages() []Package {
	return c.eng.Registry.List(pack.NotRemoved)
}

// PackDir returns the effective package root.
func (c *Client) PackDir() string {
	return c.cfg.EffectivePackDir()
}

// defaultHost backs a Client with no Host option: notifications are
// dropped, editor commands fail, and the index is still maintained.
type defaultHost struct {
	packDir string
}

func (h *defaultHost) Notify(Level, string) {}

func (h *defaultHost) Load(string) error { return nil }

func (h *defaultHost) RunCommand(command string) error {
	return fmt.Errorf("no host attached to run %q", command)
}

func (h *defaultHost) Reload() {}

func (h *defaultHost) RebuildIndex(packs []pack.Package) error {
	return engine.WriteIndex(h.packDir, packs)
}

func (h *defaultHost) BatchDone(string, batch.Summary) {}
