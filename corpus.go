package wiki40b_bpe

import (
	"bufio"
	"io"
	"log"
	"strings"

	"github.com/pkg/errors"
)

// SentinelToken stands in for whitespace-only tokens in the tokenized corpus.
const SentinelToken = "<sp>"

// Tokenizer produces the ordered token strings of one cleaned text.
type Tokenizer interface {
	Tokenize(text string) ([]string, error)
}

// RenderCorpusLine replaces whitespace-only tokens with SentinelToken and
// joins the tokens with single spaces. Token order and every other token are
// left as they are.
func RenderCorpusLine(tokens []string) string {
	rendered := make([]string, len(tokens))
	for idx, token := range tokens {
		if strings.TrimSpace(token) == "" {
			rendered[idx] = SentinelToken
		} else {
			rendered[idx] = token
		}
	}
	return strings.Join(rendered, " ")
}

// DecodeCorpusLine turns a corpus line back into text: the sentinel becomes a
// single space and tokens are concatenated. Exact for corpora built from
// collapsed text by a tokenizer that keeps whitespace in tokens of its own,
// like the Split pre-tokenized trainer. Tokens with embedded spaces (GPT-2
// style " word") do not survive the round trip.
func DecodeCorpusLine(line string) string {
	tokens := strings.Split(line, " ")
	var builder strings.Builder
	builder.Grow(len(line))
	for _, token := range tokens {
		if token == SentinelToken {
			builder.WriteByte(' ')
		} else {
			builder.WriteString(token)
		}
	}
	return builder.String()
}

// CorpusWriter appends one rendered line per document.
type CorpusWriter struct {
	out    *atomicFile
	writer *bufio.Writer
	docs   int

	// ProgressEvery logs progress every that many documents; 0 disables it.
	ProgressEvery int
	// Total is only used in progress messages; 0 means unknown.
	Total int
}

// NewCorpusWriter writes to w. Close flushes but does not close w.
func NewCorpusWriter(w io.Writer) *CorpusWriter {
	return &CorpusWriter{writer: bufio.NewWriterSize(w, 64*1024)}
}

// CreateCorpus writes a corpus file at path, which appears once Close
// succeeds.
func CreateCorpus(path string) (*CorpusWriter, error) {
	out, err := createAtomic(path)
	if err != nil {
		return nil, withKind(ErrIO, err)
	}
	cw := NewCorpusWriter(out)
	cw.out = out
	return cw, nil
}

func (cw *CorpusWriter) WriteDocument(tokens []string) error {
	if _, err := cw.writer.WriteString(RenderCorpusLine(tokens)); err != nil {
		return withKind(ErrIO, err)
	}
	if err := cw.writer.WriteByte('\n'); err != nil {
		return withKind(ErrIO, err)
	}
	cw.docs++
	if cw.ProgressEvery > 0 && cw.docs%cw.ProgressEvery == 0 {
		if cw.Total > 0 {
			log.Printf("  Processed %d/%d documents", cw.docs, cw.Total)
		} else {
			log.Printf("  Processed %d documents", cw.docs)
		}
	}
	return nil
}

// Documents is the number of lines written so far.
func (cw *CorpusWriter) Documents() int {
	return cw.docs
}

func (cw *CorpusWriter) Close() error {
	if err := cw.writer.Flush(); err != nil {
		if cw.out != nil {
			cw.out.Abort()
		}
		return withKind(ErrIO, err)
	}
	if cw.out != nil {
		if err := cw.out.Commit(); err != nil {
			cw.out.Abort()
			return withKind(ErrIO, err)
		}
	}
	return nil
}

// Abort drops a corpus file created by CreateCorpus without publishing it.
func (cw *CorpusWriter) Abort() {
	if cw.out != nil {
		cw.out.Abort()
	}
}

// SerializeCorpus tokenizes each text in order and writes its line.
func SerializeCorpus(texts []string, tokenizer Tokenizer,
	cw *CorpusWriter) error {
	for idx, text := range texts {
		if err := SerializeDocument(text, tokenizer, cw); err != nil {
			return errors.WithMessagef(err, "document %d", idx)
		}
	}
	return nil
}

// SerializeDocument tokenizes one text and writes its line.
func SerializeDocument(text string, tokenizer Tokenizer,
	cw *CorpusWriter) error {
	tokens, err := tokenizer.Tokenize(text)
	if err != nil {
		return err
	}
	return cw.WriteDocument(tokens)
}
