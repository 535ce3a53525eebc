package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/packsync/packsync/internal/pack"
)

func orphanDir(t *testing.T, env *testEnv, class, name string) string {
	t.Helper()
	root := env.reg.Layout().StartDir()
	if class == "opt" {
		root = env.reg.Layout().OptDir()
	}
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(filepath.Join(dir, "plugin"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "plugin", "x.vim"), []byte("\" x"), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestCleanDryRunListsWithoutRemoving(t *testing.T) {
	env := newTestEnv(t)
	env.installDir(t, pack.Spec{Repo: "tpope/vim-fugitive"}, "aaaa1111")
	stray := orphanDir(t, env, "start", "stray-one")

	res, err := env.eng.Clean(context.Background(), CleanOptions{DryRun: true})
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if len(res.Candidates) != 1 || res.Candidates[0] != stray {
		t.Fatalf("Candidates = %v", res.Candidates)
	}
	if res.Removed != nil {
		t.Error("dry run still removed")
	}
	if _, err := os.Stat(stray); err != nil {
		t.Errorf("dry run touched the directory: %v", err)
	}
}

func TestCleanRemovesOrphansAndTombstones(t *testing.T) {
	env := newTestEnv(t)
	keep := env.installDir(t, pack.Spec{Repo: "tpope/vim-fugitive"}, "aaaa1111")
	strayStart := orphanDir(t, env, "start", "stray-one")
	strayOpt := orphanDir(t, env, "opt", "stray-two")

	res, err := env.eng.Clean(context.Background(), CleanOptions{})
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if len(res.Candidates) != 2 {
		t.Fatalf("Candidates = %v", res.Candidates)
	}
	if res.Removed == nil || res.Removed.Summary.OK != 2 || res.Removed.Summary.Err != 0 {
		t.Fatalf("Removed = %+v", res.Removed)
	}
	for _, dir := range []string{strayStart, strayOpt} {
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			t.Errorf("%s survived clean", dir)
		}
	}
	if _, err := os.Stat(keep.Dir); err != nil {
		t.Errorf("registered package removed: %v", err)
	}

	snap := env.lockSnapshot(t)
	for _, name := range []string{"stray-one", "stray-two"} {
		rec, ok := snap[name]
		if !ok || rec.Status != int(pack.StatusRemoved) {
			t.Errorf("lock missing tombstone for %s: %+v", name, snap)
		}
	}
	if !env.host.noticeContaining("removed stray-one") {
		t.Error("missing removal progress line")
	}
	if !env.host.noticeContaining("remove finished") {
		t.Error("missing removal summary")
	}
}

func TestCleanWithNothingToDo(t *testing.T) {
	env := newTestEnv(t)
	env.installDir(t, pack.Spec{Repo: "tpope/vim-fugitive"}, "aaaa1111")

	res, err := env.eng.Clean(context.Background(), CleanOptions{})
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if len(res.Candidates) != 0 || res.Removed != nil {
		t.Errorf("result = %+v", res)
	}
	if !env.host.noticeContaining("nothing to clean") {
		t.Error("missing nothing-to-clean notice")
	}
}

func TestCleanKeepsLiveRecordOverTombstone(t *testing.T) {
	env := newTestEnv(t)
	// Same name registered under start; the opt copy is the orphan.
	env.installDir(t, pack.Spec{Repo: "tpope/vim-fugitive"}, "aaaa1111")
	orphanDir(t, env, "opt", "vim-fugitive")

	res, err := env.eng.Clean(context.Background(), CleanOptions{})
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if res.Removed == nil || res.Removed.Summary.OK != 1 {
		t.Fatalf("Removed = %+v", res.Removed)
	}
	p, ok := env.reg.Get("vim-fugitive")
	if !ok || p.Status != pack.StatusInstalled {
		t.Errorf("live record lost to tombstone: %+v", p)
	}
}
