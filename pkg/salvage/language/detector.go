// --- START OF FINAL REVISED FILE pkg/salvage/language/detector.go ---
package language

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Unknown is reported for empty content.
const Unknown = "unknown"

// Plaintext is reported when content exists but no rule identifies it.
const Plaintext = "plaintext"

// Detector identifies the language of recovered or fetched content so reports
// can say what kind of file was salvaged.
//
// Stability: Public Stable API - Implementations can be provided externally.
type Detector interface {
	// Detect returns a lowercase language identifier and an indicative
	// confidence between 0.0 and 1.0. Detection never fails hard; callers
	// receive Unknown or Plaintext instead.
	Detect(content []byte, filePath string) (language string, confidence float64)
}

type enryDetector struct {
	overrides map[string]string // extension -> language
}

// NewDetector creates a go-enry backed Detector. Override keys are file
// extensions (with or without the leading dot), matched case-insensitively.
func NewDetector(overrides map[string]string) Detector {
	normalized := make(map[string]string, len(overrides))
	for ext, lang := range overrides {
		ext = strings.ToLower(strings.TrimSpace(ext))
		lang = strings.ToLower(strings.TrimSpace(lang))
		if ext == "" || ext == "." || lang == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized[ext] = lang
	}
	return &enryDetector{overrides: normalized}
}

// Detect prefers overrides, then combined content/filename analysis, then
// the extension and filename tables.
func (d *enryDetector) Detect(content []byte, filePath string) (string, float64) {
	if len(content) == 0 {
		return Unknown, 0.0
	}

	if lang, ok := d.overrides[strings.ToLower(filepath.Ext(filePath))]; ok {
		return lang, 1.0
	}

	if lang := enry.GetLanguage(filepath.Base(filePath), content); usable(lang) {
		return strings.ToLower(lang), 0.8
	}
	if lang, safe := enry.GetLanguageByExtension(filePath); safe && usable(lang) {
		return strings.ToLower(lang), 0.5
	}
	if lang, safe := enry.GetLanguageByFilename(filePath); safe && usable(lang) {
		return strings.ToLower(lang), 0.5
	}
	return Plaintext, 0.0
}

func usable(lang string) bool {
	return lang != "" && lang != "Text"
}

// --- END OF FINAL REVISED FILE pkg/salvage/language/detector.go ---
