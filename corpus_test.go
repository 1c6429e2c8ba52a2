package wiki40b_bpe

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// splitTokenizer splits into word, whitespace and punctuation runs, the way
// the trained tokenizer's pre-tokenizer does before any merges.
type splitTokenizer struct {
	fail bool
}

func (st splitTokenizer) Tokenize(text string) ([]string, error) {
	if st.fail {
		return nil, errors.New("tokenizer failed")
	}
	var tokens []string
	var current strings.Builder
	kind := 0
	for _, r := range text {
		next := 3
		switch {
		case r == ' ':
			next = 1
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
			next = 2
		}
		if current.Len() > 0 && (next != kind || next == 3) {
			tokens = append(tokens, current.String())
			current.Reset()
		}
		kind = next
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens, nil
}

func TestRenderCorpusLine(t *testing.T) {
	tests := []struct {
		Name     string
		Tokens   []string
		Expected string
	}{
		{"space token becomes a sentinel",
			[]string{"Hello", " ", "world", "."},
			"Hello <sp> world ."},
		{"spaces become sentinels",
			[]string{"Hello", " ", "world", " ", "."},
			"Hello <sp> world <sp> ."},
		{"whitespace-only runs of any kind",
			[]string{"a", "\t\n ", "b"},
			"a <sp> b"},
		{"tokens with leading space are kept",
			[]string{"Hello", " world"},
			"Hello  world"},
		{"empty token is whitespace-only",
			[]string{"a", "", "b"},
			"a <sp> b"},
		{"no tokens",
			nil,
			""},
	}
	for _, test := range tests {
		assert.Equal(t, test.Expected, RenderCorpusLine(test.Tokens),
			test.Name)
	}
}

func TestDecodeCorpusLine(t *testing.T) {
	assert.Equal(t, "Hello world .",
		DecodeCorpusLine("Hello <sp> world <sp> ."))
	for _, text := range []string{"Plain text, with punctuation.", "a b",
		"x"} {
		tokens, err := splitTokenizer{}.Tokenize(text)
		require.NoError(t, err)
		assert.Equal(t, text, DecodeCorpusLine(RenderCorpusLine(tokens)))
	}
}

func TestSerializeCorpus(t *testing.T) {
	var out bytes.Buffer
	cw := NewCorpusWriter(&out)
	cw.ProgressEvery = 1
	require.NoError(t, SerializeCorpus([]string{"Hello world.", "Bye"},
		splitTokenizer{}, cw))
	require.NoError(t, cw.Close())
	assert.Equal(t, "Hello <sp> world .\nBye\n", out.String())
	assert.Equal(t, 2, cw.Documents())
}

func TestSerializeCorpusTokenizerError(t *testing.T) {
	var out bytes.Buffer
	cw := NewCorpusWriter(&out)
	err := SerializeCorpus([]string{"a"}, splitTokenizer{fail: true}, cw)
	assert.EqualError(t, err, "document 0: tokenizer failed")
	assert.Zero(t, cw.Documents())
}

func TestCreateCorpus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus", "ngram.txt")
	cw, err := CreateCorpus(path)
	require.NoError(t, err)
	cw.Total = 1
	require.NoError(t, SerializeDocument("a b", splitTokenizer{}, cw))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "visible before Close")
	require.NoError(t, cw.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a <sp> b\n", string(data))
}

func TestCreateCorpusAbort(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ngram.txt")
	cw, err := CreateCorpus(path)
	require.NoError(t, err)
	require.NoError(t, cw.WriteDocument([]string{"x"}))
	cw.Abort()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
