package pack

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestExpandURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"tpope/vim-fugitive", "https://github.com/tpope/vim-fugitive.git"},
		{"https://github.com/tpope/vim-fugitive.git", "https://github.com/tpope/vim-fugitive.git"},
		{"git@github.com:tpope/vim-fugitive.git", "git@github.com:tpope/vim-fugitive.git"},
		{"/srv/mirrors/vim-fugitive", "/srv/mirrors/vim-fugitive"},
		{"./local/checkout", "./local/checkout"},
		{"gitlab.example.com/group/sub/repo", "gitlab.example.com/group/sub/repo"},
	}
	for _, tc := range cases {
		if got := ExpandURL(tc.in); got != tc.want {
			t.Errorf("ExpandURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDeriveName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://github.com/tpope/vim-fugitive.git", "vim-fugitive"},
		{"git@github.com:junegunn/goyo.vim.git", "goyo.vim"},
		{"/srv/mirrors/local-pack", "local-pack"},
		{"https://example.com/", ""},
	}
	for _, tc := range cases {
		if got := DeriveName(tc.in); got != tc.want {
			t.Errorf("DeriveName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLayoutDirs(t *testing.T) {
	l := Layout{Root: filepath.Join("home", "pack", "packsync")}
	if got, want := l.Dir("vim-fugitive", false), filepath.Join(l.Root, "start", "vim-fugitive"); got != want {
		t.Errorf("Dir(start) = %q, want %q", got, want)
	}
	if got, want := l.Dir("goyo.vim", true), filepath.Join(l.Root, "opt", "goyo.vim"); got != want {
		t.Errorf("Dir(opt) = %q, want %q", got, want)
	}
	roots := l.Roots()
	if len(roots) != 2 || roots[0] != l.StartDir() || roots[1] != l.OptDir() {
		t.Errorf("Roots() = %v", roots)
	}
}

func TestStatusStrings(t *testing.T) {
	cases := map[Status]string{
		StatusListed:    "listed",
		StatusInstalled: "installed",
		StatusCloned:    "cloned",
		StatusUpdated:   "updated",
		StatusRemoved:   "removed",
		Status(42):      "unknown",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Errorf("Status(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}

func TestClassAndShortHash(t *testing.T) {
	p := &Package{Opt: true, Hash: "0123456789abcdef"}
	if p.Class() != "opt" {
		t.Errorf("Class() = %q, want opt", p.Class())
	}
	if p.ShortHash() != "01234567" {
		t.Errorf("ShortHash() = %q, want 01234567", p.ShortHash())
	}
	p = &Package{Hash: "abc"}
	if p.Class() != "start" {
		t.Errorf("Class() = %q, want start", p.Class())
	}
	if p.ShortHash() != "abc" {
		t.Errorf("ShortHash() = %q, want abc", p.ShortHash())
	}
}

func TestPackErrorFormat(t *testing.T) {
	inner := errors.New("exit status 128")
	err := &PackError{Pack: "vim-fugitive", Op: "clone", Err: inner, Hint: "check the repository URL"}
	msg := err.Error()
	for _, part := range []string{"vim-fugitive", "clone", "exit status 128", "check the repository URL"} {
		if !strings.Contains(msg, part) {
			t.Errorf("error %q missing %q", msg, part)
		}
	}
	if !errors.Is(err, inner) {
		t.Error("PackError does not unwrap to its cause")
	}

	bare := &PackError{Pack: "goyo.vim", Op: "register", Err: errors.New("boom")}
	if strings.Contains(bare.Error(), "—") {
		t.Errorf("hintless error %q carries a hint separator", bare.Error())
	}
}
