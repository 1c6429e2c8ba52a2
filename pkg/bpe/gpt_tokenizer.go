package bpe

import (
	"strings"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"github.com/wbrown/gpt_bpe"
)

const tokenCacheSize = 65536

// GPTTokenizer tokenizes against a pre-trained gpt_bpe vocabulary (gpt2,
// pile, clip, nerdstash or a HuggingFace id) instead of training one.
type GPTTokenizer struct {
	encoder *gpt_bpe.GPTEncoder
	// Token id -> rendered string; decoding a lone token is not free and the
	// same few thousand ids make up most of any corpus.
	rendered *lru.ARCCache
}

// NewGPTTokenizer resolves vocabId the way the gpt_bpe tools do: first as a
// built-in `<id>-tokenizer`, then as a path or HuggingFace id.
func NewGPTTokenizer(vocabId string) (*GPTTokenizer, error) {
	encoder, err := gpt_bpe.NewEncoder(vocabId + "-tokenizer")
	if err != nil {
		encoder, err = gpt_bpe.NewEncoder(vocabId)
		if err != nil {
			return nil, errors.Wrapf(err, "loading tokenizer %s", vocabId)
		}
	}
	cache, err := lru.NewARC(tokenCacheSize)
	if err != nil {
		return nil, err
	}
	return &GPTTokenizer{encoder: encoder, rendered: cache}, nil
}

func (gt *GPTTokenizer) Tokenize(text string) ([]string, error) {
	encoded := gt.encoder.Encode(&text)
	if encoded == nil {
		return nil, nil
	}
	tokens := make([]string, 0, len(*encoded))
	for idx := range *encoded {
		single := (*encoded)[idx : idx+1]
		tokens = append(tokens, gt.render(single))
	}
	return tokens, nil
}

func (gt *GPTTokenizer) render(single gpt_bpe.Tokens) string {
	key := uint32(single[0])
	if cached, ok := gt.rendered.Get(key); ok {
		return cached.(string)
	}
	text := gt.encoder.Decode(&single)
	if text == "" || !utf8.ValidString(text) {
		// A fragment of a multi-byte character; use the vocabulary form.
		text = strings.ToValidUTF8(string(gt.encoder.Decoder[single[0]]),
			"\uFFFD")
	}
	gt.rendered.Add(key, text)
	return text
}

func (gt *GPTTokenizer) VocabSize() int {
	return len(gt.encoder.Encoder)
}
