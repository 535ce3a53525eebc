package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/packsync/packsync/internal/config"
)

// Build-time variables set via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags.
var (
	configPath   string
	lockfilePath string
	jobsFlag     int
	verbose      bool
	quiet        bool
)

var rootCmd = &cobra.Command{
	Use:   "packsync",
	Short: "Concurrent manager for vim-style package directories",
	Long: `packsync installs, updates, and removes the packages a packsync.yaml
declares, as shallow git clones under a start/opt pack layout. Fetches
and hooks run concurrently; subprocess output and per-package
changelogs are appended to a shared log file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("packsync %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "path to config file")
	rootCmd.PersistentFlags().StringVar(&lockfilePath, "lockfile", "", "path to lockfile (default <pack_dir>/packsync.lock)")
	rootCmd.PersistentFlags().IntVar(&jobsFlag, "jobs", 0, "max concurrent git processes (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "detailed output")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "minimal output (errors only)")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command
// context, which stops verbs before they dispatch new work.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
