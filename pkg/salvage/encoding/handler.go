// --- START OF FINAL REVISED FILE pkg/salvage/encoding/handler.go ---
package encoding

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset" // Resolves non-builtin candidate names (IANA labels)
	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Canonical names of the builtin candidates.
const (
	NameUTF16   = "utf-16"
	NameUTF16LE = "utf-16le"
	NameUTF16BE = "utf-16be"
	NameUTF8    = "utf-8"
)

// DefaultCandidates is the trial order used when no candidate list is configured.
var DefaultCandidates = []string{NameUTF16, NameUTF16LE, NameUTF16BE, NameUTF8}

var (
	// ErrNoCandidateMatched is returned by Decode when every candidate failed.
	ErrNoCandidateMatched = errors.New("no candidate encoding matched")

	// ErrUnknownEncoding indicates a candidate name that neither the builtin set
	// nor golang.org/x/net/html/charset recognizes.
	ErrUnknownEncoding = errors.New("unknown encoding")

	// ErrInvalidSequence indicates that content is not valid under a candidate.
	ErrInvalidSequence = errors.New("invalid byte sequence")
)

// Decoder defines the interface for turning bytes of unknown encoding into UTF-8.
//
// Stability: Public API - Implementations can be provided externally (e.g. mocks).
type Decoder interface {
	// Decode tries candidates in order and returns the first successful result.
	// When every candidate fails it returns an error wrapping ErrNoCandidateMatched
	// together with a result whose Attempts lists every failure.
	Decode(content []byte) (DecodeResult, error)
}

// Candidate is one encoding tried by the TrialDecoder.
type Candidate struct {
	Name     string
	Encoding xencoding.Encoding
	// Validate rejects content the candidate cannot represent. The x/text
	// decoders substitute U+FFFD instead of failing, so strictness lives here.
	// Nil means every input is accepted.
	Validate func(content []byte) error
}

// Decode converts content to UTF-8 using this candidate only.
func (c Candidate) Decode(content []byte) ([]byte, error) {
	if c.Validate != nil {
		if err := c.Validate(content); err != nil {
			return nil, fmt.Errorf("'%s' codec can't decode input: %w", c.Name, err)
		}
	}
	if len(content) == 0 {
		return []byte{}, nil
	}
	utf8Content, _, err := transform.Bytes(c.Encoding.NewDecoder(), content)
	if err != nil {
		return nil, fmt.Errorf("failed to convert from '%s': %w", c.Name, err)
	}
	return utf8Content, nil
}

// Attempt records the outcome of a single candidate.
type Attempt struct {
	Name string
	Err  error
}

// DecodeResult is the outcome of a trial decode.
type DecodeResult struct {
	Text     []byte // UTF-8
	Encoding string // Name of the winning candidate, empty on failure
	Attempts []Attempt
}

// TrialDecoder tries an ordered candidate list and commits to the first one
// that decodes without error.
type TrialDecoder struct {
	candidates []Candidate
	logger     *slog.Logger
}

// NewTrialDecoder creates a decoder over already resolved candidates.
func NewTrialDecoder(loggerHandler slog.Handler, candidates []Candidate) *TrialDecoder {
	if loggerHandler == nil {
		loggerHandler = slog.NewTextHandler(io.Discard, nil)
	}
	logger := slog.New(loggerHandler).With(slog.String("component", "trialDecoder"))
	return &TrialDecoder{candidates: candidates, logger: logger}
}

// Names returns the candidate names in trial order.
func (d *TrialDecoder) Names() []string {
	names := make([]string, 0, len(d.candidates))
	for _, c := range d.candidates {
		names = append(names, c.Name)
	}
	return names
}

// Decode implements the Decoder interface.
func (d *TrialDecoder) Decode(content []byte) (DecodeResult, error) {
	result := DecodeResult{Attempts: make([]Attempt, 0, len(d.candidates))}

	for i, candidate := range d.candidates {
		logArgs := []any{slog.Int("index", i), slog.String("encoding", candidate.Name), slog.Int("bytes", len(content))}
		text, err := candidate.Decode(content)
		result.Attempts = append(result.Attempts, Attempt{Name: candidate.Name, Err: err})
		if err != nil {
			d.logger.Debug("Candidate rejected", append(logArgs, slog.String("error", err.Error()))...)
			continue
		}
		d.logger.Debug("Candidate accepted", logArgs...)
		result.Text = text
		result.Encoding = candidate.Name
		return result, nil
	}

	return result, fmt.Errorf("%w: tried %s", ErrNoCandidateMatched, strings.Join(d.Names(), ", "))
}

// ResolveCandidates maps names to candidates. Builtin names get strict
// validation; any other name is looked up through charset.Lookup.
func ResolveCandidates(names []string) ([]Candidate, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: candidate list is empty", ErrUnknownEncoding)
	}
	candidates := make([]Candidate, 0, len(names))
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			return nil, fmt.Errorf("%w: empty candidate name", ErrUnknownEncoding)
		}
		if c, ok := builtinCandidate(name); ok {
			candidates = append(candidates, c)
			continue
		}
		enc, canonical := charset.Lookup(name)
		if enc == nil {
			return nil, fmt.Errorf("%w: '%s'", ErrUnknownEncoding, raw)
		}
		candidates = append(candidates, Candidate{Name: canonical, Encoding: enc})
	}
	return candidates, nil
}

func builtinCandidate(name string) (Candidate, bool) {
	switch name {
	case NameUTF16, "utf16":
		return Candidate{
			Name:     NameUTF16,
			Encoding: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
			Validate: validateUTF16BOM,
		}, true
	case NameUTF16LE, "utf16le":
		return Candidate{
			Name:     NameUTF16LE,
			Encoding: unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
			Validate: func(b []byte) error { return validateUTF16(b, false) },
		}, true
	case NameUTF16BE, "utf16be":
		return Candidate{
			Name:     NameUTF16BE,
			Encoding: unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
			Validate: func(b []byte) error { return validateUTF16(b, true) },
		}, true
	case NameUTF8, "utf8":
		return Candidate{
			Name:     NameUTF8,
			Encoding: unicode.UTF8,
			Validate: validateUTF8,
		}, true
	}
	return Candidate{}, false
}

// validateUTF16BOM checks content for the BOM-detecting utf-16 candidate:
// a leading BOM selects the byte order, little-endian otherwise.
func validateUTF16BOM(content []byte) error {
	if len(content) >= 2 {
		switch {
		case content[0] == 0xFE && content[1] == 0xFF:
			return validateUTF16(content[2:], true)
		case content[0] == 0xFF && content[1] == 0xFE:
			return validateUTF16(content[2:], false)
		}
	}
	return validateUTF16(content, false)
}

func validateUTF16(content []byte, bigEndian bool) error {
	if len(content)%2 != 0 {
		return fmt.Errorf("%w: truncated data (odd length %d)", ErrInvalidSequence, len(content))
	}
	unitAt := func(i int) uint16 {
		if bigEndian {
			return uint16(content[i])<<8 | uint16(content[i+1])
		}
		return uint16(content[i+1])<<8 | uint16(content[i])
	}
	for i := 0; i < len(content); i += 2 {
		u := unitAt(i)
		switch {
		case u >= 0xD800 && u < 0xDC00:
			if i+2 >= len(content) {
				return fmt.Errorf("%w: unexpected end of data at position %d", ErrInvalidSequence, i)
			}
			if next := unitAt(i + 2); next < 0xDC00 || next > 0xDFFF {
				return fmt.Errorf("%w: illegal UTF-16 surrogate at position %d", ErrInvalidSequence, i)
			}
			i += 2 // consume the low surrogate
		case u >= 0xDC00 && u <= 0xDFFF:
			return fmt.Errorf("%w: illegal encoding at position %d", ErrInvalidSequence, i)
		}
	}
	return nil
}

func validateUTF8(content []byte) error {
	if utf8.Valid(content) {
		return nil
	}
	pos := 0
	for pos < len(content) {
		r, size := utf8.DecodeRune(content[pos:])
		if r == utf8.RuneError && size <= 1 {
			break
		}
		pos += size
	}
	return fmt.Errorf("%w: invalid start byte 0x%02x in position %d", ErrInvalidSequence, content[pos], pos)
}

// --- END OF FINAL REVISED FILE pkg/salvage/encoding/handler.go ---
