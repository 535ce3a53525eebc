package engine

import (
	"context"
	"testing"

	"github.com/packsync/packsync/internal/batch"
	"github.com/packsync/packsync/internal/pack"
)

func TestSyncMixesInstallsAndUpdates(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, pack.Spec{Repo: "dense-analysis/ale"})
	env.installDir(t, pack.Spec{Repo: "tpope/vim-fugitive"}, "aaaa1111")
	env.installDir(t, pack.Spec{Repo: "junegunn/goyo.vim", As: "goyo", Pin: true}, "cccc3333")
	env.reg.MarkRemoved("old-pack")
	env.git.hashAfter["ale"] = "dddd4444"
	env.git.hashAfter["vim-fugitive"] = "bbbb2222"

	res, err := env.eng.Sync(context.Background(), SyncOptions{})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if res.Op != "sync" || res.Summary.Total != 2 || res.Summary.OK != 2 {
		t.Fatalf("Summary = %+v", res.Summary)
	}
	if got := env.git.clonedNames(); len(got) != 1 || got[0] != "ale" {
		t.Errorf("cloned = %v", got)
	}
	if got := env.git.pulledNames(); len(got) != 1 || got[0] != "vim-fugitive" {
		t.Errorf("pulled = %v", got)
	}

	kinds := make(map[string]string)
	for _, item := range res.Items {
		kinds[item.Name] = item.Kind
	}
	if kinds["ale"] != "install" || kinds["vim-fugitive"] != "update" {
		t.Errorf("item kinds = %v", kinds)
	}
	if !env.host.noticeContaining("installed ale") || !env.host.noticeContaining("updated vim-fugitive") {
		t.Error("progress lines missing per-kind verbs")
	}
	if !env.host.noticeContaining("sync finished") {
		t.Error("missing sync summary")
	}
}

func TestSyncWithEverythingCurrent(t *testing.T) {
	env := newTestEnv(t)
	env.installDir(t, pack.Spec{Repo: "junegunn/goyo.vim", As: "goyo", Pin: true}, "cccc3333")

	res, err := env.eng.Sync(context.Background(), SyncOptions{})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if res.Summary.Total != 0 {
		t.Errorf("Summary = %+v", res.Summary)
	}
	if !env.host.noticeContaining("nothing to sync") {
		t.Error("missing nothing-to-sync notice")
	}
}

func TestSyncNameFilter(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, pack.Spec{Repo: "dense-analysis/ale"})
	env.register(t, pack.Spec{Repo: "tpope/vim-fugitive"})
	env.git.hashAfter["ale"] = "dddd4444"

	res, err := env.eng.Sync(context.Background(), SyncOptions{Names: []string{"ale"}})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if res.Summary.Total != 1 || res.Summary.OK != 1 {
		t.Fatalf("Summary = %+v", res.Summary)
	}
	if len(res.Items) != 1 || res.Items[0].Name != "ale" || res.Items[0].Outcome != batch.OK {
		t.Errorf("items = %v", res.Items)
	}
	if p, _ := env.reg.Get("vim-fugitive"); p.Status != pack.StatusListed {
		t.Errorf("filtered-out package advanced to %v", p.Status)
	}
}
