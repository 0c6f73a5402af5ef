// --- START OF FINAL REVISED FILE pkg/salvage/encoding/handler_test.go ---
package encoding_test

import (
	"testing"
	"unicode/utf8"

	"github.com/stackvity/salvage/pkg/salvage/encoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Helper function to encode string to specified encoding bytes
func encodeBytes(t *testing.T, text string, enc transform.Transformer) []byte {
	t.Helper()
	encodedBytes, _, err := transform.Bytes(enc, []byte(text))
	require.NoError(t, err)
	return encodedBytes
}

func newDefaultDecoder(t *testing.T) *encoding.TrialDecoder {
	t.Helper()
	candidates, err := encoding.ResolveCandidates(encoding.DefaultCandidates)
	require.NoError(t, err)
	return encoding.NewTrialDecoder(nil, candidates)
}

func TestResolveCandidates_DefaultOrder(t *testing.T) {
	d := newDefaultDecoder(t)
	assert.Equal(t, []string{"utf-16", "utf-16le", "utf-16be", "utf-8"}, d.Names())
}

func TestResolveCandidates_CharsetLookup(t *testing.T) {
	candidates, err := encoding.ResolveCandidates([]string{"UTF8", " ISO-8859-1 "})
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "utf-8", candidates[0].Name)
	assert.Equal(t, "windows-1252", candidates[1].Name, "charset maps latin-1 labels to windows-1252")
}

func TestResolveCandidates_Unknown(t *testing.T) {
	_, err := encoding.ResolveCandidates([]string{"utf-8", "klingon-7"})
	require.Error(t, err)
	assert.ErrorIs(t, err, encoding.ErrUnknownEncoding)
	assert.Contains(t, err.Error(), "klingon-7")

	_, err = encoding.ResolveCandidates(nil)
	assert.ErrorIs(t, err, encoding.ErrUnknownEncoding)
}

func TestDecode_UTF16LE_WithBOM(t *testing.T) {
	originalText := "Hello, UTF-16LE! ünïcødé"
	input := append([]byte{0xFF, 0xFE}, encodeBytes(t, originalText, unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder())...)

	result, err := newDefaultDecoder(t).Decode(input)

	require.NoError(t, err)
	assert.Equal(t, "utf-16", result.Encoding, "The BOM-aware candidate comes first")
	assert.Equal(t, originalText, string(result.Text), "BOM must be stripped")
	assert.Len(t, result.Attempts, 1)
}

func TestDecode_UTF16BE_WithBOM(t *testing.T) {
	originalText := "Hello, UTF-16BE!"
	input := append([]byte{0xFE, 0xFF}, encodeBytes(t, originalText, unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder())...)

	result, err := newDefaultDecoder(t).Decode(input)

	require.NoError(t, err)
	assert.Equal(t, "utf-16", result.Encoding)
	assert.Equal(t, originalText, string(result.Text))
}

func TestDecode_UTF16LEKeepsBOM(t *testing.T) {
	candidates, err := encoding.ResolveCandidates([]string{"utf-16le"})
	require.NoError(t, err)
	input := []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00}

	result, err := encoding.NewTrialDecoder(nil, candidates).Decode(input)

	require.NoError(t, err)
	assert.Equal(t, "\ufeffhi", string(result.Text))
}

func TestDecode_OddLengthFallsThroughToUTF8(t *testing.T) {
	input := []byte("abc") // odd length: every UTF-16 candidate must reject it

	result, err := newDefaultDecoder(t).Decode(input)

	require.NoError(t, err)
	assert.Equal(t, "utf-8", result.Encoding)
	assert.Equal(t, "abc", string(result.Text))
	require.Len(t, result.Attempts, 4)
	for _, a := range result.Attempts[:3] {
		assert.ErrorIs(t, a.Err, encoding.ErrInvalidSequence, "attempt %s", a.Name)
	}
	assert.NoError(t, result.Attempts[3].Err)
}

func TestDecode_PriorityOrder(t *testing.T) {
	// "AB" is valid UTF-8 and valid UTF-16 (U+4241); the first candidate wins.
	result, err := newDefaultDecoder(t).Decode([]byte("AB"))
	require.NoError(t, err)
	assert.Equal(t, "utf-16", result.Encoding)
	assert.Equal(t, "\u4241", string(result.Text))

	// Without the BOM-aware candidate, utf-16le beats utf-8.
	candidates, err := encoding.ResolveCandidates([]string{"utf-16le", "utf-16be", "utf-8"})
	require.NoError(t, err)
	result, err = encoding.NewTrialDecoder(nil, candidates).Decode([]byte("AB"))
	require.NoError(t, err)
	assert.Equal(t, "utf-16le", result.Encoding)
}

func TestDecode_BOMSelectsBigEndianButLittleEndianWins(t *testing.T) {
	// FE FF selects big-endian for utf-16; the next unit DC00 is a lone low
	// surrogate there, but read little-endian it is 0x00DC ('Ü').
	input := []byte{0xFE, 0xFF, 0xDC, 0x00}

	result, err := newDefaultDecoder(t).Decode(input)

	require.NoError(t, err)
	assert.Equal(t, "utf-16le", result.Encoding)
	assert.Equal(t, "\ufffe\u00dc", string(result.Text))
}

func TestDecode_SurrogatePairs(t *testing.T) {
	originalText := "emoji 😀"
	input := encodeBytes(t, originalText, unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder())

	result, err := newDefaultDecoder(t).Decode(input)

	require.NoError(t, err)
	assert.Equal(t, "utf-16", result.Encoding)
	assert.Equal(t, originalText, string(result.Text))
}

func TestDecode_UnpairedSurrogateRejected(t *testing.T) {
	candidates, err := encoding.ResolveCandidates([]string{"utf-16le"})
	require.NoError(t, err)

	for name, input := range map[string][]byte{
		"lone high at end":   {0x41, 0x00, 0x3D, 0xD8},
		"high then non-low":  {0x3D, 0xD8, 0x41, 0x00},
		"lone low surrogate": {0x00, 0xDC},
	} {
		t.Run(name, func(t *testing.T) {
			result, err := encoding.NewTrialDecoder(nil, candidates).Decode(input)
			require.Error(t, err)
			assert.ErrorIs(t, err, encoding.ErrNoCandidateMatched)
			require.Len(t, result.Attempts, 1)
			assert.ErrorIs(t, result.Attempts[0].Err, encoding.ErrInvalidSequence)
			assert.Empty(t, result.Encoding)
			assert.Nil(t, result.Text)
		})
	}
}

func TestDecode_NoCandidateMatches(t *testing.T) {
	input := []byte{0xFF, 0xFE, 0xFD} // odd length, invalid UTF-8

	result, err := newDefaultDecoder(t).Decode(input)

	require.Error(t, err)
	assert.ErrorIs(t, err, encoding.ErrNoCandidateMatched)
	assert.Len(t, result.Attempts, 4)
	assert.Contains(t, result.Attempts[3].Err.Error(), "invalid start byte 0xff in position 0")
}

func TestDecode_RoundTripIsValidUTF8(t *testing.T) {
	inputs := [][]byte{
		[]byte("plain ascii, even!"),
		[]byte("héllo wörld"),
		encodeBytes(t, "Grüße", unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder()),
		{0x00, 0xD8, 0x00, 0xDC},
	}
	for _, input := range inputs {
		result, err := newDefaultDecoder(t).Decode(input)
		require.NoError(t, err)
		assert.True(t, utf8.Valid(result.Text), "decoded text must be valid UTF-8 for %v", input)
	}
}

func TestDecode_EmptyInput(t *testing.T) {
	result, err := newDefaultDecoder(t).Decode([]byte{})
	require.NoError(t, err)
	assert.Equal(t, "utf-16", result.Encoding)
	assert.Empty(t, result.Text)
}

func TestDecode_CharsetCandidate(t *testing.T) {
	originalText := "Héllo, Lätin-1!"
	input := encodeBytes(t, originalText, charmap.ISO8859_1.NewEncoder())

	candidates, err := encoding.ResolveCandidates([]string{"utf-8", "iso-8859-1"})
	require.NoError(t, err)
	result, err := encoding.NewTrialDecoder(nil, candidates).Decode(input)

	require.NoError(t, err)
	assert.Equal(t, "windows-1252", result.Encoding)
	assert.Equal(t, originalText, string(result.Text))
}

// --- END OF FINAL REVISED FILE pkg/salvage/encoding/handler_test.go ---
