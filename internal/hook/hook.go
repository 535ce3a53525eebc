// Package hook executes the post-operation action attached to a package:
// an in-process Go function, a shell command run in the package directory,
// or a host command identified by a leading ':'.
package hook

import (
	"fmt"
	"strings"
)

// Kind discriminates the three hook variants.
type Kind int

const (
	KindFunc Kind = iota
	KindShell
	KindHost
)

func (k Kind) String() string {
	switch k {
	case KindFunc:
		return "func"
	case KindShell:
		return "shell"
	case KindHost:
		return "host"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Info identifies the package a hook runs for.
type Info struct {
	Name string
	URL  string
	Dir  string
}

// Func is an in-process hook callback.
type Func func(Info) error

// Hook is one post-operation action. The variant is fixed at registration
// time: Command holds the shell command line or the host command with its
// sigil stripped; Fn is set for KindFunc only.
type Hook struct {
	Kind    Kind
	Command string
	Fn      Func
}

// Parse classifies a hook command string. A leading ':' marks a host
// command; any other non-empty string runs as a shell command. Empty input
// means no hook.
func Parse(raw string) *Hook {
	if raw == "" {
		return nil
	}
	if rest, ok := strings.CutPrefix(raw, ":"); ok {
		return &Hook{Kind: KindHost, Command: rest}
	}
	return &Hook{Kind: KindShell, Command: raw}
}

// ForFunc wraps an in-process callback as a Hook. A nil callback means no
// hook.
func ForFunc(fn Func) *Hook {
	if fn == nil {
		return nil
	}
	return &Hook{Kind: KindFunc, Fn: fn}
}
