package wiki40b_bpe

import (
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCleanedTexts(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.json")
	second := filepath.Join(dir, "b.json")
	broken := filepath.Join(dir, "broken.json")
	empty := filepath.Join(dir, "empty.json")
	notArray := filepath.Join(dir, "object.json")
	noText := filepath.Join(dir, "notext.json")
	writeFile(t, first, "[\n{\"text\":\"one\"},\n{\"text\":\"two\",\"x\":1}\n]\n")
	writeFile(t, second, `[{"wikidata_id":"Q3","text":"three"}]`)
	writeFile(t, broken, `[{"text":"lost"},`)
	writeFile(t, empty, "")
	writeFile(t, notArray, `{"text":"not in an array"}`)
	writeFile(t, noText, `[{"wikidata_id":"Q4"}]`)

	var texts []string
	counts, err := ReadCleanedTexts([]string{first, broken,
		filepath.Join(dir, "missing.json"), empty, notArray, noText, second},
		func(text string) error {
			texts = append(texts, text)
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, texts)
	assert.Equal(t, []SourceCount{{first, 2}, {second, 1}}, counts)
}

func TestReadCleanedTextsEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.json")
	writeFile(t, path, "[\n\n]\n")
	counts, err := ReadCleanedTexts([]string{path},
		func(string) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, []SourceCount{{path, 0}}, counts)
}

func TestReadCleanedTextsCallbackError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.json")
	writeFile(t, path, `[{"text":"one"},{"text":"two"}]`)
	stop := errors.New("stop")

	seen := 0
	_, err := ReadCleanedTexts([]string{path, path}, func(string) error {
		seen++
		return stop
	})
	assert.Equal(t, stop, err)
	assert.Equal(t, 1, seen)
}
