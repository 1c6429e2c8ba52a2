package wiki40b_bpe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var markerTests = []LiteralTest{
	{"article and paragraph markers",
		"_START_ARTICLE_\nTitle\n_START_PARAGRAPH_\nBody",
		"\n\nTitle\n\n\nBody"},
	{"doubled newline marker",
		"a_NEWLINE__NEWLINE_b",
		"a\n\nb"},
	{"single newline marker",
		"a_NEWLINE_b",
		"a\nb"},
	{"section marker",
		"x_START_SECTION_y",
		"x\ny"},
	{"residual marker",
		"a_START_HEADING_b",
		"a\nb"},
	{"short underscored words survive",
		"snake_case _AB_ _id_",
		"snake_case _AB_ _id_"},
	{"no markers",
		"Plain text.",
		"Plain text."},
}

func TestMarkerNormalizer(t *testing.T) {
	normalizer := NewMarkerNormalizer(DefaultMarkerReplacements())
	for _, test := range markerTests {
		assert.Equal(t, test.Expected, normalizer.Normalize(test.Input),
			test.Name)
	}
}

func TestMarkerNormalizerIdempotent(t *testing.T) {
	normalizer := NewMarkerNormalizer(DefaultMarkerReplacements())
	for _, test := range markerTests {
		once := normalizer.Normalize(test.Input)
		assert.Equal(t, once, normalizer.Normalize(once), test.Name)
	}
}

func TestMarkerNormalizerOrder(t *testing.T) {
	// Replacing the single marker first leaves no doubled marker to find,
	// yet the result is the same two newlines.
	reversed := NewMarkerNormalizer([]Replacement{
		{"_NEWLINE_", "\n"},
		{"_NEWLINE__NEWLINE_", "<para>"},
	})
	assert.Equal(t, "a\n\nb", reversed.Normalize("a_NEWLINE__NEWLINE_b"))

	ordered := NewMarkerNormalizer([]Replacement{
		{"_NEWLINE__NEWLINE_", "<para>"},
		{"_NEWLINE_", "\n"},
	})
	assert.Equal(t, "a<para>b", ordered.Normalize("a_NEWLINE__NEWLINE_b"))
}

func TestMarkerNormalizerSkipsEmpty(t *testing.T) {
	normalizer := NewMarkerNormalizer([]Replacement{{"", "x"}})
	assert.Equal(t, "abc", normalizer.Normalize("abc"))
}
