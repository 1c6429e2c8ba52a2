package wiki40b_bpe

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// RunMetadata records the parameters of a tokenizer training run.
type RunMetadata struct {
	VocabSize     int      `json:"vocab_size"`
	NumDocuments  int      `json:"num_documents"`
	SourceFiles   []string `json:"source_files"`
	PreTokenizer  string   `json:"pre_tokenizer"`
	SpecialTokens []string `json:"special_tokens"`
	MinFrequency  int      `json:"min_frequency"`
}

// WriteMetadata writes meta as two-space indented JSON.
func WriteMetadata(path string, meta RunMetadata) error {
	if meta.SourceFiles == nil {
		meta.SourceFiles = []string{}
	}
	out, err := createAtomic(path)
	if err != nil {
		return withKind(ErrIO, err)
	}
	defer out.Abort()

	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return withKind(ErrIO, errors.Wrapf(err, "writing %s", path))
	}
	return withKind(ErrIO, out.Commit())
}
