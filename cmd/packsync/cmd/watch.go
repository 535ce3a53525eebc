package cmd

import (
	"github.com/spf13/cobra"

	"github.com/packsync/packsync/internal/engine"
	"github.com/packsync/packsync/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Sync now, then again whenever the config changes",
	Long: `Runs a sync immediately, then watches the configuration file and
re-syncs after each change settles. Stops on interrupt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		runSync := func() {
			// Rebuild from scratch so config edits take effect.
			eng, _, err := buildEngine()
			if err != nil {
				errorf("%s", err)
				return
			}
			if _, err := eng.Sync(cmd.Context(), engine.SyncOptions{}); err != nil {
				errorf("%s", err)
			}
		}
		runSync()

		w := watcher.New(configPath, runSync)
		if err := w.Start(cmd.Context()); err != nil {
			return err
		}
		info("Watching %s", configPath)
		<-cmd.Context().Done()
		w.Stop()
		info("Stopped.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
