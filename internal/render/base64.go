package render

import (
	"encoding/base64"

	"github.com/danmuck/fieldtext/internal/protocol/fieldstream"
)

// DecodeBase64Field decodes s leniently: standard and URL-safe alphabets
// are both accepted, padding is optional, decoding stops at the first '='
// and any other character outside the alphabet is ignored. The result is
// UTF-8 text with U+FFFD for ill-formed bytes.
func DecodeBase64Field(s string) string {
	clean := make([]byte, 0, len(s))
scan:
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '=':
			break scan
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '+', c == '/':
			clean = append(clean, c)
		case c == '-':
			clean = append(clean, '+')
		case c == '_':
			clean = append(clean, '/')
		}
	}
	// A lone trailing sextet cannot form a byte.
	if len(clean)%4 == 1 {
		clean = clean[:len(clean)-1]
	}

	out := make([]byte, base64.RawStdEncoding.DecodedLen(len(clean)))
	n, err := base64.RawStdEncoding.Decode(out, clean)
	if err != nil {
		return ""
	}
	return fieldstream.UTF8String(out[:n])
}
