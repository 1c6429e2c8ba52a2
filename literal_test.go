package wiki40b_bpe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type LiteralTest struct {
	Name     string
	Input    string
	Expected string
}

var literalTests = []LiteralTest{
	{"plain string passes through",
		"Hello world",
		"Hello world"},
	{"hello",
		"b'hello'",
		"hello"},
	{"single quoted literal",
		"b'Q1234'",
		"Q1234"},
	{"double quoted literal",
		`b"it's"`,
		"it's"},
	{"newline escapes",
		`b'\n_START_ARTICLE_\nTitle'`,
		"\n_START_ARTICLE_\nTitle"},
	{"utf-8 hex escapes",
		`b'caf\xc3\xa9 \xe2\x80\x99'`,
		"café ’"},
	{"invalid utf-8 is replaced",
		`b'a\xffb'`,
		"a�b"},
	{"octal escapes",
		`b'\101\102\0'`,
		"AB\x00"},
	{"unknown escape keeps backslash",
		`b'a\qb'`,
		`a\qb`},
	{"escaped quote",
		`b'don\'t'`,
		"don't"},
	{"adjacent literals",
		`b'foo' b"bar"`,
		"foobar"},
	{"triple quoted",
		"b'''a\nb'''",
		"a\nb"},
	{"unterminated literal falls back",
		"b'abc",
		"b'abc"},
	{"trailing garbage falls back",
		"b'abc'def",
		"b'abc'def"},
	{"non-ascii inside literal falls back",
		"b'café'",
		"b'café'"},
	{"bad hex escape falls back",
		`b'\xZZ'`,
		`b'\xZZ'`},
	{"octal above a byte keeps the low byte",
		`b'\777'`,
		"\uFFFD"},
	{"octal wraps before a following char",
		`b'\400a'`,
		"\x00a"},
	{"raw newline in single quotes falls back",
		"b'a\nb'",
		"b'a\nb'"},
	{"prefix only matches at start",
		"text b'x'",
		"text b'x'"},
}

func TestDecodeBytesLiteralString(t *testing.T) {
	for _, test := range literalTests {
		assert.Equal(t, test.Expected, DecodeBytesLiteralString(test.Input),
			test.Name)
	}
}

func TestDecodeBytesLiteralNonString(t *testing.T) {
	assert.Equal(t, 42, DecodeBytesLiteral(42))
	assert.Nil(t, DecodeBytesLiteral(nil))
	assert.Equal(t, "Q1", DecodeBytesLiteral("b'Q1'"))
}

func TestDecodeBytesLiteralRoundTrip(t *testing.T) {
	// Printed forms of byte strings come back as the original text.
	for _, text := range []string{"", "abc", "tab\there", "quote'd",
		"naïve résumé"} {
		assert.Equal(t, text, DecodeBytesLiteralString(pyBytesRepr(text)))
	}
}

// pyBytesRepr prints s the way a byte string repr does.
func pyBytesRepr(s string) string {
	const hexDigits = "0123456789abcdef"
	out := []byte("b'")
	for _, c := range []byte(s) {
		switch {
		case c == '\\' || c == '\'':
			out = append(out, '\\', c)
		case c == '\t':
			out = append(out, '\\', 't')
		case c == '\n':
			out = append(out, '\\', 'n')
		case c == '\r':
			out = append(out, '\\', 'r')
		case c < 0x20 || c >= 0x7f:
			out = append(out, '\\', 'x', hexDigits[c>>4], hexDigits[c&0xf])
		default:
			out = append(out, c)
		}
	}
	return string(append(out, '\''))
}
