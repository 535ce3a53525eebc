// Package git shells out to the git binary for clones, pulls, and
// changelog queries. Fetches run through the shared process runner so
// their output lands in the append log; nothing here links against a git
// library, the installed binary is the implementation.
package git

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/packsync/packsync/internal/runner"
)

// Spawner starts a command and reports its success through onDone.
// runner.Runner is the production implementation.
type Spawner interface {
	Spawn(name string, args []string, dir string, onDone func(ok bool)) error
}

// Ops issues git commands for managed packages.
type Ops struct {
	Run Spawner
	Log *runner.Log
}

// Clone fetches url into dir as a shallow clone, submodules included.
// A non-empty branch selects what to check out. The completion callback
// fires once the subprocess exits; a returned error means it never
// started.
func (o *Ops) Clone(name, url, branch, dir string, onDone func(ok bool)) error {
	args := []string{"git", "clone", url, "--depth=1", "--recurse-submodules", "--shallow-submodules"}
	if branch != "" {
		args = append(args, "-b", branch)
	}
	args = append(args, dir)
	return o.Run.Spawn(name, args, "", onDone)
}

// Pull advances the checkout in dir, keeping submodules and shallow
// history in step.
func (o *Ops) Pull(name, dir string, onDone func(ok bool)) error {
	args := []string{"git", "pull", "--recurse-submodules", "--update-shallow"}
	return o.Run.Spawn(name, args, dir, onDone)
}

// Changelog appends the subject lines between two revisions to the log,
// under a header naming the package. It runs synchronously; updates call
// it after the pull lands and before the hook runs.
func (o *Ops) Changelog(name, dir, oldHash, newHash string) error {
	if o.Log == nil {
		return nil
	}
	cmd := exec.Command("git", "log", "--pretty=format:* %s", oldHash+".."+newHash)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	out, err := cmd.Output()
	if err != nil {
		return fmt.Errorf("log %s..%s for %s: %w", short(oldHash), short(newHash), name, err)
	}
	entry := fmt.Sprintf("\n\n%s updated:\n%s\n", name, out)
	return o.Log.Append([]byte(entry))
}

func short(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
