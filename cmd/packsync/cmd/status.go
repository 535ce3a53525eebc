package cmd

import (
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of every known package",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := buildEngine()
		if err != nil {
			return err
		}
		rows := eng.Status()
		if len(rows) == 0 {
			info("No packages known.")
			return nil
		}
		info("%-28s %-6s %-10s %-10s %s", "NAME", "CLASS", "STATUS", "REVISION", "")
		for _, row := range rows {
			class, hash, pin := row.Class, row.Hash, ""
			if class == "" {
				class = "-"
			}
			if hash == "" {
				hash = "-"
			}
			if row.Pin {
				pin = "pinned"
			}
			info("%-28s %-6s %-10s %-10s %s", row.Name, class, row.Status, hash, pin)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
