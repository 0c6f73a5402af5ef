// --- START OF FINAL REVISED FILE pkg/salvage/report.go ---
package salvage

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// RecoveryReport summarizes one Recover run.
type RecoveryReport struct {
	SchemaVersion      string        `json:"schemaVersion" yaml:"schemaVersion" toml:"schemaVersion"`
	InputPath          string        `json:"inputPath" yaml:"inputPath" toml:"inputPath"`
	OutputPath         string        `json:"outputPath" yaml:"outputPath" toml:"outputPath"`
	Success            bool          `json:"success" yaml:"success" toml:"success"`
	Encoding           string        `json:"encoding,omitempty" yaml:"encoding,omitempty" toml:"encoding,omitempty"`
	DryRun             bool          `json:"dryRun" yaml:"dryRun" toml:"dryRun"`
	Written            bool          `json:"written" yaml:"written" toml:"written"`
	InputBytes         int           `json:"inputBytes" yaml:"inputBytes" toml:"inputBytes"`
	OutputBytes        int           `json:"outputBytes" yaml:"outputBytes" toml:"outputBytes"`
	Language           string        `json:"language,omitempty" yaml:"language,omitempty" toml:"language,omitempty"`
	LanguageConfidence float64       `json:"languageConfidence" yaml:"languageConfidence" toml:"languageConfidence"`
	ProfileUsed        string        `json:"profileUsed,omitempty" yaml:"profileUsed,omitempty" toml:"profileUsed,omitempty"`
	ConfigFilePath     string        `json:"configFilePath,omitempty" yaml:"configFilePath,omitempty" toml:"configFilePath,omitempty"`
	Timestamp          time.Time     `json:"timestamp" yaml:"timestamp" toml:"timestamp"`
	DurationSeconds    float64       `json:"durationSeconds" yaml:"durationSeconds" toml:"durationSeconds"`
	Attempts           []AttemptInfo `json:"attempts" yaml:"attempts" toml:"attempts"`
}

// AttemptInfo records one candidate encoding tried during recovery.
type AttemptInfo struct {
	Encoding string `json:"encoding" yaml:"encoding" toml:"encoding"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
}

// ExtractionReport summarizes one Search run.
type ExtractionReport struct {
	SchemaVersion      string           `json:"schemaVersion" yaml:"schemaVersion" toml:"schemaVersion"`
	RepoPath           string           `json:"repoPath" yaml:"repoPath" toml:"repoPath"`
	Revision           string           `json:"revision" yaml:"revision" toml:"revision"`
	FilePath           string           `json:"filePath" yaml:"filePath" toml:"filePath"`
	Backend            string           `json:"backend" yaml:"backend" toml:"backend"`
	FromCache          bool             `json:"fromCache" yaml:"fromCache" toml:"fromCache"`
	SnapshotBytes      int              `json:"snapshotBytes" yaml:"snapshotBytes" toml:"snapshotBytes"`
	LossyMode          string           `json:"lossyMode" yaml:"lossyMode" toml:"lossyMode"`
	Language           string           `json:"language,omitempty" yaml:"language,omitempty" toml:"language,omitempty"`
	LanguageConfidence float64          `json:"languageConfidence" yaml:"languageConfidence" toml:"languageConfidence"`
	ProfileUsed        string           `json:"profileUsed,omitempty" yaml:"profileUsed,omitempty" toml:"profileUsed,omitempty"`
	ConfigFilePath     string           `json:"configFilePath,omitempty" yaml:"configFilePath,omitempty" toml:"configFilePath,omitempty"`
	Timestamp          time.Time        `json:"timestamp" yaml:"timestamp" toml:"timestamp"`
	DurationSeconds    float64          `json:"durationSeconds" yaml:"durationSeconds" toml:"durationSeconds"`
	Results            []PatternMatches `json:"results" yaml:"results" toml:"results"`
}

// Object returns the `<revision>:<path>` expression the report describes.
func (r ExtractionReport) Object() string {
	return r.Revision + ":" + r.FilePath
}

// PatternMatches lists the unique matches of one pattern, sorted.
type PatternMatches struct {
	Name    string   `json:"name" yaml:"name" toml:"name"`
	Label   string   `json:"label" yaml:"label" toml:"label"`
	Matches []string `json:"matches" yaml:"matches" toml:"matches"`
}

// Render writes report to w in the given format. The text format has no
// structured rendering and writes nothing.
func Render(w io.Writer, format OutputFormat, report any) error {
	switch format {
	case OutputFormatText, "":
		return nil
	case OutputFormatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case OutputFormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to marshal report to YAML: %w", err)
		}
		return enc.Close()
	case OutputFormatTOML:
		if err := toml.NewEncoder(w).Encode(report); err != nil {
			return fmt.Errorf("failed to marshal report to TOML: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: invalid output format '%s'", ErrConfigValidation, format)
	}
}

// --- END OF FINAL REVISED FILE pkg/salvage/report.go ---
