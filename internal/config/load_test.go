package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "packsync.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, `
version: 1
pack_dir: /home/u/.local/share/nvim/site/pack/packsync
jobs: 4
packs:
  - tpope/vim-fugitive
  - repo: junegunn/goyo.vim
    as: goyo
    opt: true
    branch: main
    pin: true
    do: ":helptags ALL"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Version != 1 || cfg.Jobs != 4 {
		t.Errorf("scalars lost: %+v", cfg)
	}
	if cfg.PackDir != "/home/u/.local/share/nvim/site/pack/packsync" {
		t.Errorf("PackDir = %q", cfg.PackDir)
	}
	if len(cfg.Packs) != 2 {
		t.Fatalf("Packs = %d entries, want 2", len(cfg.Packs))
	}
	if cfg.Packs[0].Repo != "tpope/vim-fugitive" {
		t.Errorf("bare entry Repo = %q", cfg.Packs[0].Repo)
	}
	p := cfg.Packs[1]
	if p.Repo != "junegunn/goyo.vim" || p.As != "goyo" || !p.Opt || !p.Pin || p.Branch != "main" || p.Do != ":helptags ALL" {
		t.Errorf("mapping entry lost fields: %+v", p)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil || !strings.Contains(err.Error(), "reading config") {
		t.Fatalf("err = %v, want a reading error", err)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "version: [nope")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "parsing config") {
		t.Fatalf("err = %v, want a parsing error", err)
	}
}

func TestLoadBadVersion(t *testing.T) {
	path := writeConfig(t, "version: 2\npacks: []\n")
	_, err := Load(path)
	if err == nil {
		t.Fatal("Load accepted version 2")
	}
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("err = %T, want *ValidationError", err)
	}
	if !strings.Contains(ve.Error(), "unsupported version 2") {
		t.Errorf("message = %q", ve.Error())
	}
}

func TestValidateCollectsAllFailures(t *testing.T) {
	cfg := &Config{
		Version: 3,
		Jobs:    -1,
		Packs: []PackSpec{
			{Repo: ""},
			{Repo: "tpope/vim-fugitive"},
			{Repo: "other/vim-fugitive"},
		},
	}
	errs := Validate(cfg)
	if len(errs) != 3 {
		t.Fatalf("Validate = %d errors, want 3: %v", len(errs), errs)
	}
	joined := strings.Join(errs, "\n")
	for _, want := range []string{"unsupported version", "invalid jobs", "duplicate package name 'vim-fugitive'"} {
		if !strings.Contains(joined, want) {
			t.Errorf("errors missing %q:\n%s", want, joined)
		}
	}
}

func TestValidateEmptyPackListIsFine(t *testing.T) {
	if errs := Validate(&Config{Version: 1}); len(errs) != 0 {
		t.Errorf("Validate = %v, want none", errs)
	}
}

func TestPackSpecConversion(t *testing.T) {
	p := PackSpec{Repo: "tpope/vim-fugitive", As: "fugitive", Branch: "main", Pin: true, Opt: true, Do: "./install.sh"}
	s := p.Spec()
	if s.Repo != p.Repo || s.As != p.As || s.Branch != p.Branch || s.Pin != p.Pin || s.Opt != p.Opt || s.Do != p.Do {
		t.Errorf("Spec() dropped fields: %+v", s)
	}
}
