package cmd

import (
	"github.com/spf13/cobra"

	"github.com/packsync/packsync/internal/engine"
)

var updateCmd = &cobra.Command{
	Use:   "update [package...]",
	Short: "Pull installed packages and log what changed",
	Long: `Pulls every installed, unpinned package. Packages whose revision moved
get their commit subjects appended to the log file and their update
hooks run. Package names narrow the batch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := buildEngine()
		if err != nil {
			return err
		}
		res, err := eng.Update(cmd.Context(), engine.UpdateOptions{Names: args})
		if err != nil {
			return err
		}
		return failOn(res)
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
