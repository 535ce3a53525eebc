package hook

import (
	"fmt"
	"strings"
)

// CommandRunner starts an external command and reports its exit through
// onDone. A spawn failure is returned synchronously and onDone is never
// called for it.
type CommandRunner interface {
	Spawn(name string, args []string, dir string, onDone func(ok bool)) error
}

// Host provides the in-process facilities func and host-command hooks
// depend on: making fetched content available and running a host command.
type Host interface {
	Load(name string) error
	RunCommand(command string) error
}

// Runner executes hooks. Shell hooks run through Commands in the package
// directory; func and host-command hooks run in-process through Host.
type Runner struct {
	Commands CommandRunner
	Host     Host
}

// Run executes h for the package described by info and reports the outcome
// through onDone exactly once. Func and host-command hooks complete before
// Run returns; shell hooks report asynchronously. The returned error covers
// dispatch failures only, in which case onDone is not called.
func (r *Runner) Run(h *Hook, info Info, onDone func(ok bool)) error {
	switch h.Kind {
	case KindFunc:
		onDone(r.callFunc(h.Fn, info) == nil)
		return nil
	case KindHost:
		if r.Host == nil {
			return fmt.Errorf("%s: no host attached to run %q", info.Name, h.Command)
		}
		onDone(r.runHost(h.Command) == nil)
		return nil
	case KindShell:
		args := strings.Fields(h.Command)
		if len(args) == 0 {
			return fmt.Errorf("%s: empty shell hook", info.Name)
		}
		if r.Commands == nil {
			return fmt.Errorf("%s: no command runner attached", info.Name)
		}
		return r.Commands.Spawn(info.Name, args, info.Dir, onDone)
	default:
		return fmt.Errorf("%s: unknown hook kind %d", info.Name, int(h.Kind))
	}
}

// callFunc loads the package into the host, then invokes fn. Panics are
// caught and reported as failures.
func (r *Runner) callFunc(fn Func, info Info) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%s: hook panicked: %v", info.Name, p)
		}
	}()
	if r.Host != nil {
		if err := r.Host.Load(info.Name); err != nil {
			return err
		}
	}
	return fn(info)
}

func (r *Runner) runHost(command string) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("host command %q panicked: %v", command, p)
		}
	}()
	return r.Host.RunCommand(command)
}
