package runner

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not found in PATH")
	}
}

func TestSpawnReportsSuccess(t *testing.T) {
	requireShell(t)
	r := &Runner{}

	done := make(chan bool, 1)
	if err := r.Spawn("ok", []string{"sh", "-c", "exit 0"}, t.TempDir(), func(ok bool) { done <- ok }); err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if ok := <-done; !ok {
		t.Error("expected success for exit 0")
	}
}

func TestSpawnReportsFailure(t *testing.T) {
	requireShell(t)
	r := &Runner{}

	done := make(chan bool, 1)
	if err := r.Spawn("fail", []string{"sh", "-c", "exit 3"}, t.TempDir(), func(ok bool) { done <- ok }); err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if ok := <-done; ok {
		t.Error("expected failure for exit 3")
	}
}

func TestSpawnFailureIsSynchronous(t *testing.T) {
	r := &Runner{}

	done := make(chan bool, 1)
	err := r.Spawn("missing", []string{"/nonexistent/packsync-no-such-binary"}, t.TempDir(), func(ok bool) { done <- ok })
	if err == nil {
		t.Fatal("expected error for unspawnable binary")
	}
	var se *SpawnError
	if !errors.As(err, &se) {
		t.Fatalf("error = %T, want *SpawnError", err)
	}
	if se.Name != "missing" {
		t.Errorf("SpawnError.Name = %q, want %q", se.Name, "missing")
	}
	if len(done) != 0 {
		t.Error("onDone must not be called after a synchronous spawn failure")
	}
}

func TestSpawnEmptyCommand(t *testing.T) {
	r := &Runner{}
	if err := r.Spawn("empty", nil, "", func(bool) {}); err == nil {
		t.Fatal("expected error for empty command")
	}
}

func TestSpawnCapturesStderr(t *testing.T) {
	requireShell(t)
	logPath := filepath.Join(t.TempDir(), "packsync.log")
	r := &Runner{Log: NewLog(logPath)}

	done := make(chan bool, 1)
	if err := r.Spawn("noisy", []string{"sh", "-c", "echo boom 1>&2; exit 1"}, t.TempDir(), func(ok bool) { done <- ok }); err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	<-done

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "boom") {
		t.Errorf("log missing stderr output, got: %q", string(data))
	}
}

func TestSpawnDiscardsStdoutByDefault(t *testing.T) {
	requireShell(t)
	logPath := filepath.Join(t.TempDir(), "packsync.log")
	r := &Runner{Log: NewLog(logPath)}

	done := make(chan bool, 1)
	if err := r.Spawn("chatty", []string{"sh", "-c", "echo visible"}, t.TempDir(), func(ok bool) { done <- ok }); err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	<-done

	if data, err := os.ReadFile(logPath); err == nil && strings.Contains(string(data), "visible") {
		t.Errorf("stdout leaked into log: %q", string(data))
	}
}

func TestSpawnCaptureStdoutOptIn(t *testing.T) {
	requireShell(t)
	logPath := filepath.Join(t.TempDir(), "packsync.log")
	r := &Runner{Log: NewLog(logPath), CaptureStdout: true}

	done := make(chan bool, 1)
	if err := r.Spawn("chatty", []string{"sh", "-c", "echo visible"}, t.TempDir(), func(ok bool) { done <- ok }); err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	<-done

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "visible") {
		t.Errorf("log missing stdout output, got: %q", string(data))
	}
}

func TestLogAppendAccumulates(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "sub", "packsync.log")
	l := NewLog(logPath)

	if err := l.Append([]byte("first\n")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := l.Appendf("second %d\n", 2); err != nil {
		t.Fatalf("Appendf: %v", err)
	}
	if err := l.Append(nil); err != nil {
		t.Fatalf("Append(nil): %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if string(data) != "first\nsecond 2\n" {
		t.Errorf("log = %q", string(data))
	}
}
