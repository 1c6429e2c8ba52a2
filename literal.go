package wiki40b_bpe

import (
	"strings"

	"github.com/pkg/errors"
	xunicode "golang.org/x/text/encoding/unicode"
)

var errBadLiteral = errors.New("invalid bytes literal")

// DecodeBytesLiteral
// Some Wiki40B exports store fields as the printed form of a byte string,
// e.g. `b"\n_START_ARTICLE_\n..."` or `b'Q1234'`. Strings of that form are
// turned back into text; any other value, or a literal that does not parse,
// is returned unchanged.
func DecodeBytesLiteral(value interface{}) interface{} {
	s, ok := value.(string)
	if !ok {
		return value
	}
	return DecodeBytesLiteralString(s)
}

// DecodeBytesLiteralString is DecodeBytesLiteral for values already known to
// be strings.
func DecodeBytesLiteralString(s string) string {
	if !strings.HasPrefix(s, "b'") && !strings.HasPrefix(s, `b"`) {
		return s
	}
	raw, err := parseBytesLiteral(s)
	if err != nil {
		return s
	}
	return decodeUTF8Lossy(raw)
}

// decodeUTF8Lossy replaces invalid UTF-8 sequences with U+FFFD.
func decodeUTF8Lossy(raw []byte) string {
	decoded, err := xunicode.UTF8.NewDecoder().Bytes(raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), "\uFFFD")
	}
	return string(decoded)
}

// parseBytesLiteral parses one or more adjacent bytes literals, separated by
// blanks, into their byte content.
func parseBytesLiteral(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	rest := s
	for {
		if len(rest) < 2 || (rest[0] != 'b' && rest[0] != 'B') {
			return nil, errBadLiteral
		}
		body, consumed, err := parseQuoted(rest[1:])
		if err != nil {
			return nil, err
		}
		out = append(out, body...)
		rest = strings.TrimLeft(rest[1+consumed:], " \t\f")
		if strings.TrimSpace(rest) == "" {
			return out, nil
		}
	}
}

// parseQuoted parses a quoted body starting at q[0], returning the bytes and
// how much of q was consumed including the closing quote.
func parseQuoted(q string) ([]byte, int, error) {
	if q == "" || (q[0] != '\'' && q[0] != '"') {
		return nil, 0, errBadLiteral
	}
	delim := q[:1]
	if len(q) >= 3 && q[1] == q[0] && q[2] == q[0] {
		delim = q[:3]
	}
	triple := len(delim) == 3

	buf := make([]byte, 0, len(q))
	idx := len(delim)
	for idx < len(q) {
		c := q[idx]
		switch {
		case c >= 0x80:
			// Bytes literals only hold ASCII characters.
			return nil, 0, errBadLiteral
		case strings.HasPrefix(q[idx:], delim):
			return buf, idx + len(delim), nil
		case !triple && (c == '\n' || c == '\r'):
			return nil, 0, errBadLiteral
		case c == '\\':
			decoded, width, err := parseEscape(q[idx:])
			if err != nil {
				return nil, 0, err
			}
			buf = append(buf, decoded...)
			idx += width
		default:
			buf = append(buf, c)
			idx++
		}
	}
	return nil, 0, errBadLiteral
}

var simpleEscapes = map[byte]byte{
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
}

// parseEscape decodes the escape sequence at the start of s, which begins
// with a backslash.
func parseEscape(s string) ([]byte, int, error) {
	if len(s) < 2 {
		return nil, 0, errBadLiteral
	}
	e := s[1]
	if b, ok := simpleEscapes[e]; ok {
		return []byte{b}, 2, nil
	}
	switch {
	case e == '\n':
		return nil, 2, nil
	case e == '\r':
		if len(s) > 2 && s[2] == '\n' {
			return nil, 3, nil
		}
		return nil, 2, nil
	case e == 'x':
		if len(s) < 4 || !isHex(s[2]) || !isHex(s[3]) {
			return nil, 0, errBadLiteral
		}
		return []byte{hexVal(s[2])<<4 | hexVal(s[3])}, 4, nil
	case isOctal(e):
		value := 0
		width := 1
		for width <= 3 && width < len(s) && isOctal(s[width]) {
			value = value*8 + int(s[width]-'0')
			width++
		}
		// Values past 0o377 wrap to their low byte.
		return []byte{byte(value)}, width, nil
	case e >= 0x80:
		return nil, 0, errBadLiteral
	}
	// Unknown escapes keep their backslash.
	return []byte{'\\', e}, 2, nil
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') ||
		('A' <= c && c <= 'F')
}

func hexVal(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	}
	return c - 'A' + 10
}

func isOctal(c byte) bool {
	return '0' <= c && c <= '7'
}
