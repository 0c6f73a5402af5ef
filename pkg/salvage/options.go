// --- START OF FINAL REVISED FILE pkg/salvage/options.go ---
package salvage

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/stackvity/salvage/pkg/salvage/cache"
	"github.com/stackvity/salvage/pkg/salvage/encoding"
	"github.com/stackvity/salvage/pkg/salvage/extract"
	"github.com/stackvity/salvage/pkg/salvage/git"
	"github.com/stackvity/salvage/pkg/salvage/language"
)

// FixOptions configures Recover.
type FixOptions struct {
	InputPath    string       `mapstructure:"input"`
	OutputPath   string       `mapstructure:"output"`
	Candidates   []string     `mapstructure:"candidates"`
	DryRun       bool         `mapstructure:"dryRun"`
	OutputFormat OutputFormat `mapstructure:"-"`
	Verbose      bool         `mapstructure:"-"`

	ProfileName    string `mapstructure:"-"`
	ConfigFilePath string `mapstructure:"-"`

	// --- Dependencies ---
	// Logger is required. The rest fall back to defaults when nil.
	Logger           slog.Handler      `mapstructure:"-"`
	Hooks            Hooks             `mapstructure:"-"`
	Decoder          encoding.Decoder  `mapstructure:"-"`
	LanguageDetector language.Detector `mapstructure:"-"`
}

// Validate checks the fields Recover depends on.
func (o FixOptions) Validate() error {
	if o.Logger == nil {
		return fmt.Errorf("%w: Logger implementation cannot be nil", ErrConfigValidation)
	}
	if o.InputPath == "" {
		return fmt.Errorf("%w: input path cannot be empty", ErrConfigValidation)
	}
	if o.OutputPath == "" && !o.DryRun {
		return fmt.Errorf("%w: output path cannot be empty", ErrConfigValidation)
	}
	if o.Decoder == nil && len(o.Candidates) == 0 {
		return fmt.Errorf("%w: at least one candidate encoding is required", ErrConfigValidation)
	}
	if o.OutputFormat != "" && !o.OutputFormat.IsValid() {
		return fmt.Errorf("%w: invalid output format '%s'", ErrConfigValidation, o.OutputFormat)
	}
	return nil
}

// SearchOptions configures Search.
type SearchOptions struct {
	RepoPath     string            `mapstructure:"repo"`
	Revision     string            `mapstructure:"revision"`
	FilePath     string            `mapstructure:"path"`
	Invalid      extract.LossyMode `mapstructure:"invalid"`
	Timeout      time.Duration     `mapstructure:"timeout"`
	CacheFile    string            `mapstructure:"cacheFile"`
	Patterns     []extract.Spec    `mapstructure:"patterns"`
	OutputFormat OutputFormat      `mapstructure:"-"`
	Verbose      bool              `mapstructure:"-"`

	ProfileName    string `mapstructure:"-"`
	ConfigFilePath string `mapstructure:"-"`
	ToolVersion    string `mapstructure:"-"`

	// --- Dependencies ---
	// Logger and Reader are required. Extractor is compiled from Patterns
	// when nil; Cache defaults to a file store when CacheFile is set.
	Logger           slog.Handler       `mapstructure:"-"`
	Hooks            Hooks              `mapstructure:"-"`
	Reader           git.RevisionReader `mapstructure:"-"`
	Extractor        *extract.Extractor `mapstructure:"-"`
	Cache            cache.Store        `mapstructure:"-"`
	LanguageDetector language.Detector  `mapstructure:"-"`
}

// Validate checks the fields Search depends on.
func (o SearchOptions) Validate() error {
	if o.Logger == nil {
		return fmt.Errorf("%w: Logger implementation cannot be nil", ErrConfigValidation)
	}
	if o.Reader == nil {
		return fmt.Errorf("%w: RevisionReader implementation cannot be nil", ErrConfigValidation)
	}
	if o.RepoPath == "" {
		return fmt.Errorf("%w: repository path cannot be empty", ErrConfigValidation)
	}
	if o.Revision == "" {
		return fmt.Errorf("%w: revision cannot be empty", ErrConfigValidation)
	}
	if o.FilePath == "" {
		return fmt.Errorf("%w: file path cannot be empty", ErrConfigValidation)
	}
	if o.Invalid != "" && !o.Invalid.IsValid() {
		return fmt.Errorf("%w: invalid lossy mode '%s' (must be '%s' or '%s')",
			ErrConfigValidation, o.Invalid, extract.LossyDrop, extract.LossyReplace)
	}
	if o.Timeout < 0 {
		return fmt.Errorf("%w: timeout cannot be negative", ErrConfigValidation)
	}
	if o.OutputFormat != "" && !o.OutputFormat.IsValid() {
		return fmt.Errorf("%w: invalid output format '%s'", ErrConfigValidation, o.OutputFormat)
	}
	return nil
}

// --- END OF FINAL REVISED FILE pkg/salvage/options.go ---
