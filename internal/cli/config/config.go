// --- START OF FINAL REVISED FILE internal/cli/config/config.go ---
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tidwall/jsonc"

	"github.com/stackvity/salvage/pkg/salvage"
	"github.com/stackvity/salvage/pkg/salvage/encoding"
	"github.com/stackvity/salvage/pkg/salvage/extract"
	"github.com/stackvity/salvage/pkg/salvage/language"
)

const (
	EnvPrefix         = "SALVAGE"
	DefaultConfigName = "salvage"
)

// fileConfig mirrors the layout of a configuration file:
//
//	verbose: false
//	outputFormat: text
//	languageOverrides: {<ext without dot>: <language>}
//	fix:    {input, output, candidates, dryRun}
//	search: {repo, revision, path, invalid, timeout, cacheFile, patterns}
//	profiles:
//	  <name>: {same keys, merged over the top level}
type fileConfig struct {
	Verbose           bool                  `mapstructure:"verbose"`
	OutputFormat      string                `mapstructure:"outputFormat"`
	LanguageOverrides map[string]string     `mapstructure:"languageOverrides"`
	Fix               salvage.FixOptions    `mapstructure:"fix"`
	Search            salvage.SearchOptions `mapstructure:"search"`
}

// flagKeys maps flag names to the configuration keys they override.
var flagKeys = map[string]string{
	"verbose":       "verbose",
	"output-format": "outputFormat",
	"input":         "fix.input",
	"output":        "fix.output",
	"candidates":    "fix.candidates",
	"dry-run":       "fix.dryRun",
	"repo":          "search.repo",
	"revision":      "search.revision",
	"path":          "search.path",
	"invalid":       "search.invalid",
	"timeout":       "search.timeout",
	"cache-file":    "search.cacheFile",
}

// DefineCommonFlags registers the flags shared by both tools.
func DefineCommonFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "Configuration file path (default is search standard locations like ., $HOME/.config/salvage/)")
	flags.String("profile", "", "Name of configuration profile to use")
	flags.BoolP("verbose", "v", salvage.DefaultVerbose, "Enable verbose (debug) logging output")
	flags.String("output-format", string(salvage.DefaultOutputFormat), `Report format printed after the status lines ("text", "json", "yaml", "toml")`)
}

// DefineFixFlags registers the fix-encoding flags.
func DefineFixFlags(flags *pflag.FlagSet) {
	flags.StringP("input", "i", salvage.DefaultInputPath, "File with damaged or unknown encoding")
	flags.StringP("output", "o", salvage.DefaultOutputPath, "Destination for the recovered UTF-8 text")
	flags.StringSlice("candidates", salvage.DefaultCandidates, "Encodings to try, in order")
	flags.Bool("dry-run", salvage.DefaultDryRun, "Decode and report without writing the output file")
}

// DefineSearchFlags registers the search-git flags.
func DefineSearchFlags(flags *pflag.FlagSet) {
	flags.String("repo", salvage.DefaultRepoPath, "Repository to read from")
	flags.StringP("revision", "r", salvage.DefaultRevision, "Revision (commit, branch, tag) to inspect")
	flags.StringP("path", "p", salvage.DefaultFilePath, "Repository-relative path of the file to inspect")
	flags.String("invalid", string(salvage.DefaultLossyMode), `Handling of invalid UTF-8 in the file ("drop" or "replace")`)
	flags.Duration("timeout", salvage.DefaultGitTimeout, "Upper bound for fetching the revision (0 disables)")
	flags.String("cache-file", "", "Snapshot cache file; enables caching of commit-hash revisions")
	flags.StringArray("pattern", nil, "Additional pattern as name=regex (repeatable; replaces a pattern of the same name)")
}

// LoadFix loads and validates fix-encoding configuration from all sources
// (defaults, file, profile, env, flags). Log output goes to logOut.
func LoadFix(cfgFile, profileName string, flags *pflag.FlagSet, logOut io.Writer) (salvage.FixOptions, *slog.Logger, error) {
	cfg, v, logger, err := load(cfgFile, profileName, flags, logOut)
	if err != nil {
		return salvage.FixOptions{}, logger, err
	}

	opts := cfg.Fix
	opts.Verbose = cfg.Verbose
	opts.ProfileName = profileName
	opts.ConfigFilePath = v.ConfigFileUsed()
	opts.Logger = logger.Handler()
	opts.LanguageDetector = language.NewDetector(cfg.LanguageOverrides)

	if opts.OutputFormat, err = parseOutputFormat(cfg.OutputFormat, logger); err != nil {
		return opts, logger, err
	}
	if len(opts.Candidates) == 0 {
		err := fmt.Errorf("%w: at least one candidate encoding is required (fix.candidates, --candidates)", salvage.ErrConfigValidation)
		logger.Error(err.Error(), slog.String("key", "fix.candidates"))
		return opts, logger, err
	}
	candidates, err := encoding.ResolveCandidates(opts.Candidates)
	if err != nil {
		err = fmt.Errorf("%w: %w", salvage.ErrConfigValidation, err)
		logger.Error(err.Error(), slog.String("key", "fix.candidates"))
		return opts, logger, err
	}
	opts.Decoder = encoding.NewTrialDecoder(opts.Logger, candidates)

	if err := opts.Validate(); err != nil {
		logger.Error(err.Error())
		return opts, logger, err
	}
	logger.Debug("Configuration loading and validation complete",
		slog.String("configFile", opts.ConfigFilePath),
		slog.String("profile", opts.ProfileName),
		slog.String("input", opts.InputPath),
		slog.String("output", opts.OutputPath),
		slog.Any("candidates", opts.Candidates))
	return opts, logger, nil
}

// LoadSearch loads and validates search-git configuration. The returned
// options carry a compiled Extractor; the caller supplies the Reader.
func LoadSearch(cfgFile, profileName, appVersion string, flags *pflag.FlagSet, logOut io.Writer) (salvage.SearchOptions, *slog.Logger, error) {
	cfg, v, logger, err := load(cfgFile, profileName, flags, logOut)
	if err != nil {
		return salvage.SearchOptions{}, logger, err
	}

	opts := cfg.Search
	opts.Verbose = cfg.Verbose
	opts.ProfileName = profileName
	opts.ConfigFilePath = v.ConfigFileUsed()
	opts.ToolVersion = appVersion
	opts.Logger = logger.Handler()
	opts.LanguageDetector = language.NewDetector(cfg.LanguageOverrides)

	if opts.OutputFormat, err = parseOutputFormat(cfg.OutputFormat, logger); err != nil {
		return opts, logger, err
	}
	for key, value := range map[string]string{"search.repo": opts.RepoPath, "search.revision": opts.Revision, "search.path": opts.FilePath} {
		if strings.TrimSpace(value) == "" {
			err := fmt.Errorf("%w: %s cannot be empty", salvage.ErrConfigValidation, key)
			logger.Error(err.Error(), slog.String("key", key))
			return opts, logger, err
		}
	}
	opts.Invalid = extract.LossyMode(strings.ToLower(strings.TrimSpace(string(opts.Invalid))))
	if !opts.Invalid.IsValid() {
		err := fmt.Errorf("%w: invalid value '%s' for search.invalid (must be '%s' or '%s')",
			salvage.ErrConfigValidation, opts.Invalid, extract.LossyDrop, extract.LossyReplace)
		logger.Error(err.Error(), slog.String("key", "search.invalid"))
		return opts, logger, err
	}
	if opts.Timeout < 0 {
		err := fmt.Errorf("%w: search.timeout cannot be negative", salvage.ErrConfigValidation)
		logger.Error(err.Error(), slog.Duration("value", opts.Timeout))
		return opts, logger, err
	}
	if opts.CacheFile != "" {
		if abs, absErr := filepath.Abs(opts.CacheFile); absErr == nil {
			opts.CacheFile = abs
		}
	}

	specs := opts.Patterns
	if len(specs) == 0 {
		specs = append([]extract.Spec(nil), extract.DefaultSpecs...)
	}
	if flags != nil && flags.Lookup("pattern") != nil {
		extra, _ := flags.GetStringArray("pattern")
		if specs, err = mergePatternFlags(specs, extra); err != nil {
			logger.Error(err.Error(), slog.String("flag", "pattern"))
			return opts, logger, err
		}
	}
	opts.Patterns = specs
	if opts.Extractor, err = extract.NewExtractor(opts.Logger, specs); err != nil {
		err = fmt.Errorf("%w: %w", salvage.ErrConfigValidation, err)
		logger.Error(err.Error(), slog.String("key", "search.patterns"))
		return opts, logger, err
	}

	logger.Debug("Configuration loading and validation complete",
		slog.String("configFile", opts.ConfigFilePath),
		slog.String("profile", opts.ProfileName),
		slog.String("object", opts.Revision+":"+opts.FilePath),
		slog.Int("patterns", len(specs)))
	return opts, logger, nil
}

// load runs the shared viper pipeline and builds the final logger.
func load(cfgFile, profileName string, flags *pflag.FlagSet, logOut io.Writer) (fileConfig, *viper.Viper, *slog.Logger, error) {
	var cfg fileConfig
	if logOut == nil {
		logOut = os.Stderr
	}
	v := viper.New()

	// Initialize a temporary basic logger for early loading errors
	tempLogger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelInfo}))

	setDefaults(v)

	// --- Load Config File ---
	searchDirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		searchDirs = append(searchDirs,
			filepath.Join(home, ".config", DefaultConfigName),
			filepath.Join(home, "."+DefaultConfigName))
	} else {
		tempLogger.Debug("No home directory, skipping user config locations", slog.Any("error", err))
	}
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(DefaultConfigName)
		for _, dir := range searchDirs {
			v.AddConfigPath(dir)
		}
	}

	if err := readConfig(v, cfgFile, searchDirs); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			tempLogger.Debug("No configuration file found, using defaults/env/flags.")
		} else {
			configFileUsed := cfgFile
			if configFileUsed == "" {
				configFileUsed = fmt.Sprintf("searched locations for %s.yaml/json/jsonc/toml", DefaultConfigName)
			}
			tempLogger.Error("Error reading configuration file", slog.String("path", configFileUsed), slog.Any("error", err))
			return cfg, v, tempLogger, fmt.Errorf("error reading config file '%s': %w", configFileUsed, err)
		}
	} else {
		tempLogger.Debug("Using configuration file", slog.String("path", v.ConfigFileUsed()))
	}

	// --- Apply Profile ---
	if profileName != "" {
		profileKey := "profiles." + profileName
		profileSettings := v.Sub(profileKey)
		if !v.IsSet(profileKey) || profileSettings == nil {
			configPath := v.ConfigFileUsed()
			if configPath == "" {
				configPath = "(no config file found)"
			}
			err := fmt.Errorf("%w: profile '%s' not found in config file '%s'", salvage.ErrConfigValidation, profileName, configPath)
			tempLogger.Error(err.Error())
			return cfg, v, tempLogger, err
		}
		if err := v.MergeConfigMap(profileSettings.AllSettings()); err != nil {
			tempLogger.Error("Error merging profile", slog.String("profile", profileName), slog.Any("error", err))
			return cfg, v, tempLogger, fmt.Errorf("error merging profile '%s': %w", profileName, err)
		}
		tempLogger.Debug("Applied configuration profile", slog.String("profile", profileName))
	}

	// --- Bind Environment Variables ---
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// --- Bind Flags (Highest Priority) ---
	if flags != nil {
		for name, key := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				tempLogger.Error("Error binding flag", slog.String("flag", name), slog.Any("error", err))
				return cfg, v, tempLogger, fmt.Errorf("error binding flag '--%s': %w", name, err)
			}
		}
	}

	// --- Unmarshal Final Configuration ---
	if err := v.Unmarshal(&cfg); err != nil {
		tempLogger.Error("Error unmarshalling configuration", slog.Any("error", err))
		return cfg, v, tempLogger, fmt.Errorf("%w: error unmarshalling configuration: %w", salvage.ErrConfigValidation, err)
	}

	// --- Setup Final Logger ---
	logLevel := slog.LevelInfo
	if cfg.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: logLevel}))
	return cfg, v, logger, nil
}

// configExts is the order in which a search directory is searched, matching
// viper's own extension order with jsonc after json.
var configExts = []string{"json", "jsonc", "toml", "yaml", "yml"}

// readConfig reads the configuration file into v. JSON files (.json, .jsonc)
// may carry comments and trailing commas; they are cleaned before parsing
// whether given with --config or found in searchDirs. Directories are searched
// in order and the first match wins; anything else viper supports is left to
// ReadInConfig.
func readConfig(v *viper.Viper, cfgFile string, searchDirs []string) error {
	if cfgFile != "" {
		if isJSONC(cfgFile) {
			return readJSONC(v, cfgFile)
		}
		return v.ReadInConfig()
	}
	for _, dir := range searchDirs {
		for _, ext := range configExts {
			candidate := filepath.Join(dir, DefaultConfigName+"."+ext)
			if info, err := os.Stat(candidate); err != nil || info.IsDir() {
				continue
			}
			v.SetConfigFile(candidate)
			if isJSONC(candidate) {
				return readJSONC(v, candidate)
			}
			return v.ReadInConfig()
		}
	}
	return v.ReadInConfig()
}

func isJSONC(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".json" || ext == ".jsonc"
}

func readJSONC(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	v.SetConfigType("json")
	return v.ReadConfig(bytes.NewReader(jsonc.ToJSON(data)))
}

// setDefaults establishes the default values for configuration options in Viper.
// Every key needs a default so environment variables can reach it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("verbose", salvage.DefaultVerbose)
	v.SetDefault("outputFormat", string(salvage.DefaultOutputFormat))
	v.SetDefault("languageOverrides", map[string]string{})

	v.SetDefault("fix.input", salvage.DefaultInputPath)
	v.SetDefault("fix.output", salvage.DefaultOutputPath)
	v.SetDefault("fix.candidates", salvage.DefaultCandidates)
	v.SetDefault("fix.dryRun", salvage.DefaultDryRun)

	v.SetDefault("search.repo", salvage.DefaultRepoPath)
	v.SetDefault("search.revision", salvage.DefaultRevision)
	v.SetDefault("search.path", salvage.DefaultFilePath)
	v.SetDefault("search.invalid", string(salvage.DefaultLossyMode))
	v.SetDefault("search.timeout", salvage.DefaultGitTimeout)
	v.SetDefault("search.cacheFile", "")
}

func parseOutputFormat(value string, logger *slog.Logger) (salvage.OutputFormat, error) {
	format, ok := salvage.ParseOutputFormat(value)
	if !ok {
		err := fmt.Errorf("%w: invalid value '%s' for outputFormat (must be text, json, yaml or toml)", salvage.ErrConfigValidation, value)
		logger.Error(err.Error(), slog.String("key", "outputFormat"))
		return "", err
	}
	return format, nil
}

// mergePatternFlags applies name=regex flag values over specs. A name that
// already exists is replaced in place; new names are appended.
func mergePatternFlags(specs []extract.Spec, values []string) ([]extract.Spec, error) {
	for _, value := range values {
		name, expr, ok := strings.Cut(value, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" || expr == "" {
			return nil, fmt.Errorf("%w: invalid --pattern '%s' (expected name=regex)", salvage.ErrConfigValidation, value)
		}
		replaced := false
		for i := range specs {
			if specs[i].Name == name {
				specs[i].Expr = expr
				replaced = true
				break
			}
		}
		if !replaced {
			specs = append(specs, extract.Spec{Name: name, Label: name, Expr: expr})
		}
	}
	return specs, nil
}

// --- END OF FINAL REVISED FILE internal/cli/config/config.go ---
