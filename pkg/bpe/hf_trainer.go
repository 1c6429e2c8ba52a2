package bpe

import (
	"log"
	"os"

	"github.com/pkg/errors"
	tokenizer "github.com/sugarme/tokenizer"
	sbpe "github.com/sugarme/tokenizer/model/bpe"
	"github.com/sugarme/tokenizer/normalizer"
	"github.com/sugarme/tokenizer/pretokenizer"
)

// HFTrainer learns a BPE vocabulary with github.com/sugarme/tokenizer, a Go
// port of the HuggingFace tokenizers library.
type HFTrainer struct {
	cfg   TrainerConfig
	split *pretokenizer.Split
}

func NewHFTrainer(cfg TrainerConfig) *HFTrainer {
	if cfg.Pattern == "" {
		cfg.Pattern = SplitPattern
	}
	if cfg.UnkToken == "" {
		cfg.UnkToken = "[UNK]"
	}
	return &HFTrainer{
		cfg: cfg,
		split: pretokenizer.NewSplit(normalizer.NewRegexpPattern(cfg.Pattern),
			normalizer.IsolatedBehavior, false),
	}
}

// HFTokenizer is a trained vocabulary.
type HFTokenizer struct {
	tk *tokenizer.Tokenizer
}

// PreTokenize splits text into the isolated whitespace, word and
// punctuation pieces that merges never cross.
func (tr *HFTrainer) PreTokenize(text string) ([]string, error) {
	pretokenized, err := tr.split.PreTokenize(
		tokenizer.NewPreTokenizedString(text))
	if err != nil {
		return nil, err
	}
	splits := pretokenized.GetSplits(normalizer.OriginalTarget,
		tokenizer.Byte)
	pieces := make([]string, 0, len(splits))
	for _, split := range splits {
		if split.Value != "" {
			pieces = append(pieces, split.Value)
		}
	}
	return pieces, nil
}

// Train learns a vocabulary from texts. Each text is pre-tokenized whole, so
// line breaks inside a document are learned like any other whitespace.
func (tr *HFTrainer) Train(texts []string) (*HFTokenizer, error) {
	specials := tr.specialTokens()
	trainer := sbpe.NewBpeTrainer(tr.cfg.MinFrequency,
		tr.cfg.VocabSize-len(specials))
	trainer.ShowProgress = false
	trainer.SpecialTokens = specials

	wordCounts := make(map[string]int)
	for idx, text := range texts {
		pieces, err := tr.PreTokenize(text)
		if err != nil {
			return nil, errors.Wrapf(err, "pre-tokenizing document %d", idx)
		}
		trainer.ProcessTokens(wordCounts, pieces)
	}

	log.Printf("Training BPE tokenizer with vocab size %d...",
		tr.cfg.VocabSize)
	trained, _ := trainer.Train(wordCounts)
	model, err := tr.withSpecialTokens(trained, specials)
	if err != nil {
		return nil, err
	}

	tk := tokenizer.NewTokenizer(model)
	tk.WithPreTokenizer(tr.split)
	tk.AddSpecialTokens(specials)
	log.Print("Training complete!")
	return &HFTokenizer{tk: tk}, nil
}

func (tr *HFTrainer) specialTokens() []tokenizer.AddedToken {
	names := tr.cfg.SpecialTokens
	hasUnk := false
	for _, name := range names {
		hasUnk = hasUnk || name == tr.cfg.UnkToken
	}
	if !hasUnk {
		names = append([]string{tr.cfg.UnkToken}, names...)
	}
	specials := make([]tokenizer.AddedToken, 0, len(names))
	for _, name := range names {
		specials = append(specials, tokenizer.NewAddedToken(name, true))
	}
	return specials
}

// withSpecialTokens rebuilds a trained model with the special tokens at the
// lowest ids, in order, and the unknown token set. The library trainer
// leaves both out of the vocabulary it learns.
func (tr *HFTrainer) withSpecialTokens(trained tokenizer.Model,
	specials []tokenizer.AddedToken) (*sbpe.BPE, error) {
	var learned sbpe.BPE
	switch model := trained.(type) {
	case sbpe.BPE:
		learned = model
	case *sbpe.BPE:
		learned = *model
	default:
		return nil, errors.Errorf("unexpected trained model %T", trained)
	}

	vocab := make(map[string]int, len(*learned.Vocab)+len(specials))
	for _, special := range specials {
		if _, ok := vocab[special.Content]; !ok {
			vocab[special.Content] = len(vocab)
		}
	}
	remap := make(map[int]int, len(*learned.Vocab))
	for oldId := 0; oldId < len(*learned.VocabR); oldId++ {
		token, ok := (*learned.VocabR)[oldId]
		if !ok {
			continue
		}
		newId, seen := vocab[token]
		if !seen {
			newId = len(vocab)
			vocab[token] = newId
		}
		remap[oldId] = newId
	}

	merges := make(sbpe.Merges, len(*learned.Merges))
	for pair, pairVal := range *learned.Merges {
		merges[sbpe.Pair{C1: remap[pair.C1], C2: remap[pair.C2]}] =
			sbpe.PairVal{Rank: pairVal.Rank, NewId: remap[pairVal.NewId]}
	}

	builder := sbpe.NewBpeBuilder()
	builder.VocabAndMerges(vocab, merges)
	builder.UnkToken(tr.cfg.UnkToken)
	model, err := builder.Build()
	if err != nil {
		return nil, errors.Wrap(err, "building BPE model")
	}
	return model, nil
}

func (ht *HFTokenizer) Tokenize(text string) ([]string, error) {
	encoding, err := ht.tk.EncodeSingle(text)
	if err != nil {
		return nil, err
	}
	return encoding.Tokens, nil
}

func (ht *HFTokenizer) VocabSize() int {
	return ht.tk.GetVocabSize(true)
}

// TokenToId looks a token up in the learned vocabulary.
func (ht *HFTokenizer) TokenToId(token string) (int, bool) {
	return ht.tk.GetModel().TokenToId(token)
}

// SaveVocab writes vocab.json and merges.txt into dir.
func (ht *HFTokenizer) SaveVocab(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if err := ht.tk.GetModel().Save(dir); err != nil {
		return errors.Wrapf(err, "saving vocabulary to %s", dir)
	}
	return nil
}
