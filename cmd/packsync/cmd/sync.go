package cmd

import (
	"github.com/spf13/cobra"

	"github.com/packsync/packsync/internal/engine"
)

var syncCmd = &cobra.Command{
	Use:   "sync [package...]",
	Short: "Install missing packages and update the rest",
	Long: `Reconciles the configuration against disk in one batch: missing
packages are cloned, installed ones pulled, pinned ones left alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := buildEngine()
		if err != nil {
			return err
		}
		res, err := eng.Sync(cmd.Context(), engine.SyncOptions{Names: args})
		if err != nil {
			return err
		}
		return failOn(res)
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
