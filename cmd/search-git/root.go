// --- START OF FINAL REVISED FILE cmd/search-git/root.go ---
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stackvity/salvage/internal/cli"
	"github.com/stackvity/salvage/internal/cli/config"
	cligit "github.com/stackvity/salvage/internal/cli/git"
	"github.com/stackvity/salvage/internal/cli/ui"
)

var (
	// These are set during build time using -ldflags
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "search-git",
		Short: "Searches a file at a past revision for product identifiers and link calls.",
		Long: `search-git retrieves one file as it existed at a given revision of a git
repository, decodes it leniently as UTF-8 and reports every unique match of
each configured pattern. By default it looks for Amazon product identifiers
(ASINs) and getAmazonLink(...) calls in src/App.tsx at revision 0a8d02a.

Snapshots of commit-hash revisions can be cached with --cache-file.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s, git backend: %s)", version, commit, date, cligit.BackendName),
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			cfgFile, _ := cmd.Flags().GetString("config")
			profileName, _ := cmd.Flags().GetString("profile")
			opts, logger, err := config.LoadSearch(cfgFile, profileName, version, cmd.Flags(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return cli.RunSearch(ctx, opts, logger, ui.NewConsole(cmd.OutOrStdout()))
		},
	}
	rootCmd.SetVersionTemplate(`{{.Name}} version {{.Version}}` + "\n")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return cli.UsageError(err) })

	config.DefineCommonFlags(rootCmd.Flags())
	config.DefineSearchFlags(rootCmd.Flags())
	return rootCmd
}

func noArgs(cmd *cobra.Command, args []string) error {
	return cli.UsageError(cobra.NoArgs(cmd, args))
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	return cli.Execute(newRootCmd())
}

// --- END OF FINAL REVISED FILE cmd/search-git/root.go ---
