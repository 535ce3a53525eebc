// Package config defines the packsync.yaml configuration format.
package config

import (
	"gopkg.in/yaml.v3"

	"github.com/packsync/packsync/internal/pack"
)

// Config is the root of a packsync.yaml file.
type Config struct {
	// Version is the config format version. Must be 1.
	Version int `yaml:"version"`

	// PackDir overrides where packages are installed.
	PackDir string `yaml:"pack_dir,omitempty"`

	// LogFile overrides where subprocess output and changelogs land.
	LogFile string `yaml:"log_file,omitempty"`

	// Jobs bounds how many git subprocesses run at once. 0 means
	// unbounded.
	Jobs int `yaml:"jobs,omitempty"`

	// Packs lists the managed packages.
	Packs []PackSpec `yaml:"packs"`
}

// PackSpec is one entry under packs. It accepts either the bare
// owner/repo shorthand or a mapping with per-package settings:
//
//	packs:
//	  - tpope/vim-fugitive
//	  - repo: junegunn/goyo.vim
//	    as: goyo
//	    opt: true
//	    do: ":helptags"
type PackSpec struct {
	Repo   string `yaml:"repo"`
	As     string `yaml:"as,omitempty"`
	Branch string `yaml:"branch,omitempty"`
	Pin    bool   `yaml:"pin,omitempty"`
	Opt    bool   `yaml:"opt,omitempty"`
	Do     string `yaml:"do,omitempty"`
}

func (p *PackSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&p.Repo)
	}
	type plain PackSpec
	return value.Decode((*plain)(p))
}

// Spec converts the YAML entry into a registration spec.
func (p PackSpec) Spec() pack.Spec {
	return pack.Spec{
		Repo:   p.Repo,
		As:     p.As,
		Branch: p.Branch,
		Pin:    p.Pin,
		Opt:    p.Opt,
		Do:     p.Do,
	}
}
