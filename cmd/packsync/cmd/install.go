package cmd

import (
	"github.com/spf13/cobra"

	"github.com/packsync/packsync/internal/engine"
)

var installCmd = &cobra.Command{
	Use:   "install [package...]",
	Short: "Clone listed packages that are not yet installed",
	Long: `Clones every package the configuration lists that has no directory on
disk yet, then runs install hooks. Package names narrow the batch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := buildEngine()
		if err != nil {
			return err
		}
		res, err := eng.Install(cmd.Context(), engine.InstallOptions{Names: args})
		if err != nil {
			return err
		}
		return failOn(res)
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
