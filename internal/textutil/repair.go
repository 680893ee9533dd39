package textutil

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Repair cleans a free-text field coming from the CSV. The source data mixes
// URL-encoded fragments, Windows-1252 text mis-decoded as UTF-8 and stray
// control bytes, so repair runs three passes:
//
//  1. percent-escape decoding (input kept on malformed escapes),
//  2. mojibake reversal ("Ã©" -> "é"), accepted only when the result is valid
//     UTF-8 and at least half the original length,
//  3. drop runes outside the printable ASCII and Latin ranges, trim space.
//
// Repair is total: it never fails, each pass falls back to its input.
func Repair(s string) string {
	if s == "" {
		return ""
	}

	if decoded, err := url.PathUnescape(s); err == nil {
		s = decoded
	}

	if fixed, ok := demojibake(s); ok {
		s = fixed
	}

	return strings.TrimSpace(stripBinary(s))
}

// demojibake reinterprets text that was Windows-1252 encoded and then wrongly
// decoded as UTF-8. Re-encoding to Windows-1252 bytes and reading those bytes
// back as UTF-8 undoes the double decode. The half-length guard rejects
// repairs that collapse legitimate text.
func demojibake(s string) (string, bool) {
	raw, err := charmap.Windows1252.NewEncoder().String(s)
	if err != nil {
		return s, false
	}
	if raw == s || !utf8.ValidString(raw) {
		return s, false
	}
	if utf8.RuneCountInString(raw)*2 < utf8.RuneCountInString(s) {
		return s, false
	}
	return raw, true
}

func stripBinary(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\t':
			b.WriteRune(r)
		case r >= 0x20 && r < 0x7F:
			b.WriteRune(r)
		case r >= 0xA0 && r <= 0x24F: // Latin-1 supplement through Latin Extended-B
			b.WriteRune(r)
		case r >= 0x2000 && r <= 0x206F: // general punctuation
			b.WriteRune(r)
		}
	}
	return b.String()
}
