package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/packsync/packsync/internal/engine"
)

var (
	cleanDryRun bool
	cleanYes    bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove directories no configured package owns",
	Long: `Scans the pack roots for directories the configuration does not list
and removes them after confirmation. Removed packages leave tombstones
in the lockfile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := buildEngine()
		if err != nil {
			return err
		}

		preview, err := eng.Clean(cmd.Context(), engine.CleanOptions{DryRun: true})
		if err != nil {
			return err
		}
		if len(preview.Candidates) == 0 {
			return nil
		}

		info("Unmanaged directories:")
		for _, dir := range preview.Candidates {
			info("  %s", dir)
		}

		if cleanDryRun {
			info("\nDry run — nothing removed.")
			return nil
		}

		// Confirm unless --yes.
		if !cleanYes {
			fmt.Printf("\nRemove %d directory(ies)? [y/N] ", len(preview.Candidates))
			scanner := bufio.NewScanner(os.Stdin)
			if scanner.Scan() {
				answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
				if answer != "y" && answer != "yes" {
					info("Aborted.")
					return nil
				}
			}
		}

		res, err := eng.Clean(cmd.Context(), engine.CleanOptions{})
		if err != nil {
			return err
		}
		return failOn(res.Removed)
	},
}

func init() {
	cleanCmd.Flags().BoolVar(&cleanDryRun, "dry-run", false, "list candidates without removing anything")
	cleanCmd.Flags().BoolVar(&cleanYes, "yes", false, "skip interactive confirmation")
	rootCmd.AddCommand(cleanCmd)
}
