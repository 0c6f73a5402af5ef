// --- START OF FINAL REVISED FILE pkg/salvage/types.go ---
package salvage

import "strings"

// OutputFormat selects how a report is printed after the status lines.
type OutputFormat string

const (
	// OutputFormatText prints only the status lines.
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatTOML OutputFormat = "toml"
)

// ParseOutputFormat normalizes s and reports whether it names a known format.
func ParseOutputFormat(s string) (OutputFormat, bool) {
	f := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	return f, f.IsValid()
}

// IsValid reports whether f is one of the known formats.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML, OutputFormatTOML:
		return true
	}
	return false
}

// --- END OF FINAL REVISED FILE pkg/salvage/types.go ---
