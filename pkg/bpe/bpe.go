// Package bpe wires the external tokenizer libraries to the corpus pipeline:
// a BPE trainer that learns a vocabulary from cleaned texts, and pre-trained
// GPT style encoders. Both hand back, per text, the ordered token strings.
package bpe

import (
	"fmt"

	"github.com/wikilm/wiki40b_bpe"
)

// SpaceToken is the sentinel that stands for whitespace-only tokens.
const SpaceToken = wiki40b_bpe.SentinelToken

// SplitPattern isolates whitespace runs and word runs so that spaces are
// learned as tokens of their own. Go's \w is ASCII only, so word runs are
// spelled out as the Unicode classes a Python \w matches.
const SplitPattern = `\s+|[\p{L}\p{M}\p{Nd}\p{Pc}]+`

// splitPatternName is how SplitPattern is recorded in run metadata.
const splitPatternName = `\s+|\w+`

// DefaultSpecialTokens are added to every trained vocabulary.
var DefaultSpecialTokens = []string{"[UNK]", "[PAD]", "[BOS]", "[EOS]",
	SpaceToken}

// Tokenizer produces the ordered token strings of one text.
type Tokenizer interface {
	wiki40b_bpe.Tokenizer
	VocabSize() int
}

var (
	_ Tokenizer = (*HFTokenizer)(nil)
	_ Tokenizer = (*GPTTokenizer)(nil)
)

type TrainerConfig struct {
	VocabSize     int
	MinFrequency  int
	SpecialTokens []string
	UnkToken      string
	Pattern       string
}

func DefaultTrainerConfig() TrainerConfig {
	specials := make([]string, len(DefaultSpecialTokens))
	copy(specials, DefaultSpecialTokens)
	return TrainerConfig{
		VocabSize:     20000,
		MinFrequency:  2,
		SpecialTokens: specials,
		UnkToken:      "[UNK]",
		Pattern:       SplitPattern,
	}
}

// PreTokenizerDescription is the pre-tokenization rule as recorded in the
// run metadata.
func (c TrainerConfig) PreTokenizerDescription() string {
	pattern := c.Pattern
	if pattern == SplitPattern {
		pattern = splitPatternName
	}
	return fmt.Sprintf("Split(Regex(r'%s'), behavior='isolated')", pattern)
}
