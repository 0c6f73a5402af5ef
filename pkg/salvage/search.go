// --- START OF FINAL REVISED FILE pkg/salvage/search.go ---
package salvage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/stackvity/salvage/pkg/salvage/cache"
	"github.com/stackvity/salvage/pkg/salvage/extract"
	"github.com/stackvity/salvage/pkg/salvage/git"
	"github.com/stackvity/salvage/pkg/salvage/language"
)

// Search fetches one file at one revision, decodes it leniently as UTF-8 and
// runs every configured pattern over the text.
//
// Fetch failures wrap ErrGitOperation. Cache problems are logged and never
// fail the run.
func Search(ctx context.Context, opts SearchOptions) (ExtractionReport, error) {
	if err := opts.Validate(); err != nil {
		return ExtractionReport{}, err
	}
	logger := slog.New(opts.Logger).With(slog.String("component", "search"))
	hooks := opts.Hooks
	if hooks == nil {
		hooks = NoOpHooks{}
	}

	extractor := opts.Extractor
	if extractor == nil {
		specs := opts.Patterns
		if len(specs) == 0 {
			specs = extract.DefaultSpecs
		}
		var err error
		if extractor, err = extract.NewExtractor(opts.Logger, specs); err != nil {
			return ExtractionReport{}, fmt.Errorf("%w: %w", ErrConfigValidation, err)
		}
	}
	mode := opts.Invalid
	if mode == "" {
		mode = DefaultLossyMode
	}
	detector := opts.LanguageDetector
	if detector == nil {
		detector = language.NewDetector(nil)
	}
	store := opts.Cache
	if store == nil {
		if opts.CacheFile != "" {
			store = cache.NewFileStore(opts.Logger, opts.ToolVersion)
		} else {
			store = cache.NoOpStore{}
		}
	}

	start := time.Now()
	report := ExtractionReport{
		SchemaVersion:  ReportSchemaVersion,
		RepoPath:       opts.RepoPath,
		Revision:       opts.Revision,
		FilePath:       opts.FilePath,
		LossyMode:      string(mode),
		ProfileUsed:    opts.ProfileName,
		ConfigFilePath: opts.ConfigFilePath,
		Timestamp:      start.UTC(),
		Results:        []PatternMatches{},
	}

	snapshot, cached, err := fetchSnapshot(ctx, opts, store, logger)
	if err != nil {
		report.DurationSeconds = time.Since(start).Seconds()
		return report, err
	}
	hooks.OnSnapshot(snapshot, cached)
	report.Backend = snapshot.Backend
	report.FromCache = cached
	report.SnapshotBytes = len(snapshot.Content)

	text := extract.DecodeLossy(snapshot.Content, mode)
	report.Language, report.LanguageConfidence = detector.Detect([]byte(text), opts.FilePath)

	for _, result := range extractor.Extract(text) {
		hooks.OnPatternResult(result)
		report.Results = append(report.Results, PatternMatches{
			Name:    result.Pattern.Name,
			Label:   result.Pattern.Label,
			Matches: result.Matches.Sorted(),
		})
	}
	report.DurationSeconds = time.Since(start).Seconds()
	logger.Debug("Search finished",
		slog.String("object", report.Object()),
		slog.Int("patterns", len(report.Results)),
		slog.Bool("fromCache", cached))
	return report, nil
}

// fetchSnapshot serves immutable revisions from the cache when possible and
// otherwise asks the reader, storing the result for next time. A cache file
// that could not be loaded is never overwritten.
func fetchSnapshot(ctx context.Context, opts SearchOptions, store cache.Store, logger *slog.Logger) (git.Snapshot, bool, error) {
	cacheable := opts.CacheFile != "" && git.IsCommitHash(opts.Revision)
	key := cache.Key(opts.RepoPath, opts.Revision, opts.FilePath)

	if cacheable {
		if err := store.Load(opts.CacheFile); err != nil {
			logger.Warn("Snapshot cache unavailable, continuing without it", slog.Any("error", err))
			cacheable = false
		} else if content, hit := store.Get(key); hit {
			logger.Debug("Snapshot served from cache", slog.String("key", key))
			return git.Snapshot{
				Repository: opts.RepoPath,
				Revision:   opts.Revision,
				Path:       opts.FilePath,
				Content:    content,
				Backend:    "cache",
			}, true, nil
		}
	}

	fetchCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}
	snapshot, err := opts.Reader.Show(fetchCtx, opts.RepoPath, opts.Revision, opts.FilePath)
	if err != nil {
		if !errors.Is(err, ErrGitOperation) {
			err = git.Errorf("%w", err)
		}
		logger.Error("Failed to fetch revision",
			slog.String("object", git.ObjectSpec(opts.Revision, opts.FilePath)),
			slog.Any("error", err))
		return git.Snapshot{}, false, err
	}

	if cacheable {
		store.Put(key, snapshot.Content)
		if err := store.Persist(opts.CacheFile); err != nil {
			logger.Warn("Failed to persist snapshot cache", slog.Any("error", err))
		}
	}
	return snapshot, false, nil
}

// --- END OF FINAL REVISED FILE pkg/salvage/search.go ---
