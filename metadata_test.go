package wiki40b_bpe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMetadata(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bpe_training_metadata.json")
	meta := RunMetadata{
		VocabSize:     20000,
		NumDocuments:  3,
		SourceFiles:   []string{"train_clean/a.json"},
		PreTokenizer:  `Split(Regex(r'\s+|\w+'), behavior='isolated')`,
		SpecialTokens: []string{"[UNK]", "<sp>"},
		MinFrequency:  2,
	}
	require.NoError(t, WriteMetadata(path, meta))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{
  "vocab_size": 20000,
  "num_documents": 3,
  "source_files": [
    "train_clean/a.json"
  ],
  "pre_tokenizer": "Split(Regex(r'\\s+|\\w+'), behavior='isolated')",
  "special_tokens": [
    "[UNK]",
    "<sp>"
  ],
  "min_frequency": 2
}
`, string(data))
}

func TestWriteMetadataEmptySources(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.json")
	require.NoError(t, WriteMetadata(path, RunMetadata{}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"source_files": []`)
	assert.Contains(t, string(data), `"special_tokens": null`)
}
