package cmd

import (
	"fmt"

	"github.com/packsync/packsync/internal/batch"
	"github.com/packsync/packsync/internal/engine"
	"github.com/packsync/packsync/internal/pack"
)

// terminalHost adapts engine notifications to the print helpers and
// keeps the on-disk index current after each batch.
type terminalHost struct {
	packDir string
}

func (h *terminalHost) Notify(level engine.Level, message string) {
	switch level {
	case engine.LevelDetail:
		detail("%s", message)
	case engine.LevelWarn:
		info("warning: %s", message)
	case engine.LevelError:
		errorf("%s", message)
	default:
		info("%s", message)
	}
}

// Load is a no-op: a terminal run has no editor to load opt packages
// into.
func (h *terminalHost) Load(name string) error {
	return nil
}

// RunCommand rejects ":" hooks, which need an attached editor.
func (h *terminalHost) RunCommand(command string) error {
	return fmt.Errorf("no host attached to run %q", command)
}

func (h *terminalHost) Reload() {}

func (h *terminalHost) RebuildIndex(packs []pack.Package) error {
	return engine.WriteIndex(h.packDir, packs)
}

func (h *terminalHost) BatchDone(op string, sum batch.Summary) {
	detail("%s batch done (%d packages)", op, sum.Total)
}
