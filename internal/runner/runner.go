package runner

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
)

// Runner spawns external processes without blocking the caller. Stderr
// (and stdout when CaptureStdout is set) is buffered in memory while the
// process runs and appended to Log as one entry after it exits.
//
// Every child inherits the full host environment plus
// GIT_TERMINAL_PROMPT=0, so unattended git invocations fail instead of
// hanging on a credential prompt.
type Runner struct {
	Log           *Log
	CaptureStdout bool
}

// SpawnError reports a process that could not be started at all.
type SpawnError struct {
	Name string
	Cmd  string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("%s: spawning %s: %s", e.Name, e.Cmd, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// Spawn starts args[0] with the remaining arguments in dir and returns
// immediately. name identifies the operation in errors and is not part of
// the command line. onDone must be non-nil; it receives exit success
// exactly once, from the goroutine that observed the exit. When Spawn
// itself returns an error the process never started and onDone is never
// called.
func (r *Runner) Spawn(name string, args []string, dir string, onDone func(ok bool)) error {
	if len(args) == 0 {
		return &SpawnError{Name: name, Err: fmt.Errorf("empty command")}
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	var out bytes.Buffer
	cmd.Stderr = &out
	if r.CaptureStdout {
		cmd.Stdout = &out
	}

	if err := cmd.Start(); err != nil {
		return &SpawnError{Name: name, Cmd: args[0], Err: err}
	}

	go func() {
		err := cmd.Wait()
		if r.Log != nil && out.Len() > 0 {
			entry := out.Bytes()
			if entry[len(entry)-1] != '\n' {
				entry = append(entry, '\n')
			}
			_ = r.Log.Append(entry)
		}
		onDone(err == nil)
	}()
	return nil
}
