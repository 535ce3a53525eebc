package cmd

import (
	"github.com/spf13/cobra"

	"github.com/packsync/packsync/internal/pack"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show effective paths and package counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, cfg, err := buildEngine()
		if err != nil {
			return err
		}
		info("config:    %s", configPath)
		info("pack dir:  %s", cfg.EffectivePackDir())
		info("lockfile:  %s", lockPath(cfg))
		info("log file:  %s", cfg.EffectiveLogFile())
		info("packages:  %d listed, %d installed, %d removed",
			len(eng.Registry.List(pack.AwaitingInstall)),
			len(eng.Registry.List(pack.Installed)),
			len(eng.Registry.List(pack.Removable)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
