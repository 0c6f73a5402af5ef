// --- START OF FINAL REVISED FILE cmd/fix-encoding/root.go ---
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
	"github.com/stackvity/salvage/internal/cli/ui"
)

var (
	// These are set during build time using -ldflags
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// newRootCmd builds the fix-encoding command. A fresh command per call keeps
// flag state from leaking between executions.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fix-encoding",
		Short: "Recovers a text file of unknown encoding as UTF-8.",
		Long: `fix-encoding reads a file whose encoding is unknown or damaged, tries a
prioritized list of candidate encodings (utf-16, utf-16le, utf-16be, utf-8 by
default) and writes the text decoded by the first candidate that succeeds as
UTF-8. When no candidate succeeds the output file is left untouched.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Create a context that listens for interrupt signals
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			cfgFile, _ := cmd.Flags().GetString("config")
			profileName, _ := cmd.Flags().GetString("profile")
			opts, logger, err := config.LoadFix(cfgFile, profileName, cmd.Flags(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return cli.RunFix(ctx, opts, logger, ui.NewConsole(cmd.OutOrStdout()))
		},
	}
	rootCmd.SetVersionTemplate(`{{.Name}} version {{.Version}}` + "\n")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return cli.UsageError(err) })

	config.DefineCommonFlags(rootCmd.Flags())
	config.DefineFixFlags(rootCmd.Flags())
	return rootCmd
}

func noArgs(cmd *cobra.Command, args []string) error {
	return cli.UsageError(cobra.NoArgs(cmd, args))
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	return cli.Execute(newRootCmd())
}

// --- END OF FINAL REVISED FILE cmd/fix-encoding/root.go ---
