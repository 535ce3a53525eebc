package git

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// RevisionReader reports the revision a working tree sits at. Readers
// return "" rather than an error; an unreadable revision downgrades
// behavior (no changelog window) instead of failing the operation.
type RevisionReader interface {
	Head(dir string) string
}

// HeadReader resolves HEAD by reading the repository files directly, so
// status stays cheap even across hundreds of packages.
type HeadReader struct{}

func (HeadReader) Head(dir string) string {
	gitDir := filepath.Join(dir, ".git")
	head, err := os.ReadFile(filepath.Join(gitDir, "HEAD"))
	if err != nil {
		return ""
	}
	line := firstLine(head)
	ref, ok := strings.CutPrefix(line, "ref: ")
	if !ok {
		// Detached HEAD holds the hash itself.
		return line
	}
	if data, err := os.ReadFile(filepath.Join(gitDir, filepath.FromSlash(ref))); err == nil {
		return firstLine(data)
	}
	return packedRef(gitDir, ref)
}

// packedRef scans .git/packed-refs for the named ref. Fresh shallow
// clones often keep their branch head only here.
func packedRef(gitDir, ref string) string {
	data, err := os.ReadFile(filepath.Join(gitDir, "packed-refs"))
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "^") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 2 && fields[1] == ref {
			return fields[0]
		}
	}
	return ""
}

func firstLine(data []byte) string {
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		data = data[:i]
	}
	return strings.TrimSpace(string(data))
}

// CommandReader asks the git binary for HEAD. Slower than HeadReader but
// immune to repository-format changes; embedding programs can choose it.
type CommandReader struct{}

func (CommandReader) Head(dir string) string {
	cmd := exec.Command("git", "-C", dir, "rev-parse", "HEAD")
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
