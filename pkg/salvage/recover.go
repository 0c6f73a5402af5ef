// --- START OF FINAL REVISED FILE pkg/salvage/recover.go ---
package salvage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/stackvity/salvage/pkg/salvage/encoding"
	"github.com/stackvity/salvage/pkg/salvage/language"
	"github.com/stackvity/salvage/pkg/util"
)

// Recover reads the input file, decodes it with the first candidate encoding
// that accepts the whole content, and writes the result as UTF-8 to the
// output path.
//
// When every candidate fails the returned error wraps ErrNoCandidateMatched,
// the report lists every attempt, and the output file is not touched. Any
// other failure (unreadable input, unwritable output) wraps ErrReadFailed or
// ErrWriteFailed.
func Recover(ctx context.Context, opts FixOptions) (RecoveryReport, error) {
	if err := opts.Validate(); err != nil {
		return RecoveryReport{}, err
	}
	logger := slog.New(opts.Logger).With(slog.String("component", "recover"))
	hooks := opts.Hooks
	if hooks == nil {
		hooks = NoOpHooks{}
	}

	decoder := opts.Decoder
	if decoder == nil {
		candidates, err := encoding.ResolveCandidates(opts.Candidates)
		if err != nil {
			return RecoveryReport{}, fmt.Errorf("%w: %w", ErrConfigValidation, err)
		}
		decoder = encoding.NewTrialDecoder(opts.Logger, candidates)
	}
	detector := opts.LanguageDetector
	if detector == nil {
		detector = language.NewDetector(nil)
	}

	start := time.Now()
	report := RecoveryReport{
		SchemaVersion:  ReportSchemaVersion,
		InputPath:      opts.InputPath,
		OutputPath:     opts.OutputPath,
		DryRun:         opts.DryRun,
		ProfileUsed:    opts.ProfileName,
		ConfigFilePath: opts.ConfigFilePath,
		Timestamp:      start.UTC(),
		Attempts:       []AttemptInfo{},
	}
	finish := func() { report.DurationSeconds = time.Since(start).Seconds() }

	content, err := os.ReadFile(opts.InputPath)
	if err != nil {
		logger.Error("Failed to read input", slog.String("path", opts.InputPath), slog.Any("error", err))
		return report, fmt.Errorf("%w '%s': %w", ErrReadFailed, opts.InputPath, err)
	}
	report.InputBytes = len(content)
	logger.Debug("Input read", slog.String("path", opts.InputPath), slog.Int("bytes", len(content)))

	if err := ctx.Err(); err != nil {
		return report, err
	}

	result, decodeErr := decoder.Decode(content)
	for _, attempt := range result.Attempts {
		hooks.OnDecodeAttempt(attempt)
		info := AttemptInfo{Encoding: attempt.Name}
		if attempt.Err != nil {
			info.Error = attempt.Err.Error()
		}
		report.Attempts = append(report.Attempts, info)
	}
	if decodeErr != nil {
		finish()
		if !errors.Is(decodeErr, ErrNoCandidateMatched) {
			decodeErr = fmt.Errorf("%w: %w", ErrNoCandidateMatched, decodeErr)
		}
		logger.Warn("No candidate encoding matched", slog.Int("attempts", len(result.Attempts)))
		return report, decodeErr
	}

	report.Success = true
	report.Encoding = result.Encoding
	report.OutputBytes = len(result.Text)
	report.Language, report.LanguageConfidence = detector.Detect(result.Text, opts.InputPath)
	logger.Debug("Decoded input",
		slog.String("encoding", result.Encoding),
		slog.String("language", report.Language),
		slog.Float64("confidence", report.LanguageConfidence))

	if opts.DryRun {
		finish()
		logger.Info("Dry run, output not written", slog.String("path", opts.OutputPath))
		return report, nil
	}

	if err := util.WriteFileAtomic(opts.OutputPath, result.Text, DefaultOutputPerm); err != nil {
		finish()
		logger.Error("Failed to write output", slog.String("path", opts.OutputPath), slog.Any("error", err))
		return report, fmt.Errorf("%w '%s': %w", ErrWriteFailed, opts.OutputPath, err)
	}
	report.Written = true
	finish()
	logger.Debug("Output written", slog.String("path", opts.OutputPath), slog.Int("bytes", report.OutputBytes))
	return report, nil
}

// --- END OF FINAL REVISED FILE pkg/salvage/recover.go ---
