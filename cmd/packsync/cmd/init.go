package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initForce bool

const initTemplate = `# packsync configuration
version: 1

# Where packages are installed. Defaults to the XDG data directory;
# point it at your editor's pack path instead, e.g.
# pack_dir: /home/you/.local/share/nvim/site/pack/packsync

# Where subprocess output and changelogs are appended.
# log_file: /home/you/.local/state/packsync/packsync.log

# Max concurrent git processes. 0 means unbounded.
# jobs: 8

packs:
  # Bare entries use the owner/repo shorthand:
  # - tpope/vim-fugitive

  # Mapping entries take per-package settings:
  # - repo: junegunn/goyo.vim
  #   as: goyo
  #   opt: true
  #   branch: main
  #   pin: true
  #   do: ":helptags ALL"
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter packsync.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configPath); err == nil && !initForce {
			return fmt.Errorf("%s already exists — use --force to overwrite", configPath)
		}
		if dir := filepath.Dir(configPath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("creating %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(configPath, []byte(initTemplate), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", configPath, err)
		}
		info("Wrote %s", configPath)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config")
	rootCmd.AddCommand(initCmd)
}
