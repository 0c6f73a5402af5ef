// --- START OF FINAL REVISED FILE internal/cli/cli.go ---
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	cligit "github.com/stackvity/salvage/internal/cli/git"
	"github.com/stackvity/salvage/internal/cli/hooks"
	"github.com/stackvity/salvage/internal/cli/ui"
	"github.com/stackvity/salvage/pkg/salvage"
	"github.com/stackvity/salvage/pkg/salvage/extract"
	libgit "github.com/stackvity/salvage/pkg/salvage/git"
)

// RunFix runs the encoding recovery with validated options and prints the
// status line, followed by the structured report when one was requested.
// Any failure is returned as a *salvage.ExitError that has already been shown.
func RunFix(ctx context.Context, opts salvage.FixOptions, logger *slog.Logger, console *ui.Console) error {
	if opts.Hooks == nil {
		opts.Hooks = hooks.NewCLIHooks(logger, opts.Verbose)
	}

	report, err := salvage.Recover(ctx, opts)
	if err != nil {
		if errors.Is(err, salvage.ErrNoCandidateMatched) {
			console.Failure("Failed to decode using standard encodings")
			renderReport(console, opts.OutputFormat, report, logger)
			return &salvage.ExitError{Code: salvage.ExitNoCandidate, Err: err, Reported: true}
		}
		console.Error(err)
		return &salvage.ExitError{Code: salvage.ExitFailure, Err: err, Reported: true}
	}

	console.Success("Successfully decoded using %s", report.Encoding)
	if opts.DryRun {
		console.Info("Dry run: %s was not written", opts.OutputPath)
	}
	if err := renderReport(console, opts.OutputFormat, report, logger); err != nil {
		return &salvage.ExitError{Code: salvage.ExitFailure, Err: err, Reported: true}
	}
	return nil
}

// RunSearch fetches the configured revision, prints one line per pattern and
// the structured report when one was requested. A nil Reader is replaced by
// the backend compiled into this binary, which must report itself available.
func RunSearch(ctx context.Context, opts salvage.SearchOptions, logger *slog.Logger, console *ui.Console) error {
	if opts.Reader == nil {
		reader := cligit.NewDefaultReader(opts.Logger)
		if !reader.IsGitAvailable() {
			err := libgit.Errorf("git executable not found in PATH (%s backend)", cligit.BackendName)
			logger.Error("Git backend unavailable", slog.String("backend", cligit.BackendName))
			console.Error(err)
			return &salvage.ExitError{Code: salvage.ExitFailure, Err: err, Reported: true}
		}
		opts.Reader = reader
	}
	if opts.Hooks == nil {
		opts.Hooks = hooks.NewCLIHooks(logger, opts.Verbose)
	}

	report, err := salvage.Search(ctx, opts)
	if err != nil {
		console.Error(err)
		return &salvage.ExitError{Code: salvage.ExitFailure, Err: err, Reported: true}
	}

	for _, result := range report.Results {
		console.Found(result.Label, report.Object(), extract.NewMatchSet(result.Matches...).String())
	}
	if err := renderReport(console, opts.OutputFormat, report, logger); err != nil {
		return &salvage.ExitError{Code: salvage.ExitFailure, Err: err, Reported: true}
	}
	return nil
}

func renderReport(console *ui.Console, format salvage.OutputFormat, report any, logger *slog.Logger) error {
	if err := salvage.Render(console.Writer(), format, report); err != nil {
		logger.Error("Failed to render report", slog.String("format", string(format)), slog.Any("error", err))
		console.Error(err)
		return err
	}
	return nil
}

// Execute runs cmd and converts the outcome into a process exit code. Errors
// not yet shown are printed as "Error: <err>"; a panic becomes exit code 1.
func Execute(cmd *cobra.Command) (code int) {
	console := ui.NewConsole(cmd.OutOrStdout())
	defer func() {
		if r := recover(); r != nil {
			console.Error(fmt.Errorf("unexpected internal error: %v", r))
			code = salvage.ExitFailure
		}
	}()

	err := cmd.Execute()
	if err != nil {
		var exitErr *salvage.ExitError
		if !errors.As(err, &exitErr) || !exitErr.Reported {
			console.Error(err)
		}
	}
	return salvage.ExitCodeFor(err)
}

// UsageError marks err as a command-line usage problem (exit code 2).
func UsageError(err error) error {
	if err == nil {
		return nil
	}
	return &salvage.ExitError{Code: salvage.ExitUsage, Err: err}
}

// --- END OF FINAL REVISED FILE internal/cli/cli.go ---
