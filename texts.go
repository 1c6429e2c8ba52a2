package wiki40b_bpe

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"log"
	"os"

	"github.com/pkg/errors"
)

// TextFunc receives one cleaned document text. Returning an error stops
// ReadCleanedTexts.
type TextFunc func(text string) error

// SourceCount is how many documents were read from one cleaned file.
type SourceCount struct {
	Path      string
	Documents int
}

// callbackError marks an error returned by the caller's TextFunc, which
// aborts the read instead of skipping the file.
type callbackError struct {
	err error
}

func (e callbackError) Error() string {
	return e.err.Error()
}

// ReadCleanedTexts
// Walks each cleaned JSON array file in order and hands the `text` of every
// object to fn. Files are memory mapped, validated, then decoded one object
// at a time. A file that is missing, not valid JSON or holds an object
// without text is logged and skipped; only an error from fn is returned.
func ReadCleanedTexts(paths []string, fn TextFunc) ([]SourceCount, error) {
	counts := make([]SourceCount, 0, len(paths))
	for _, path := range paths {
		n, err := readCleanedFile(path, fn)
		var cbErr callbackError
		switch {
		case errors.As(err, &cbErr):
			return counts, cbErr.err
		case errors.Is(err, fs.ErrNotExist):
			log.Printf("Warning: File %s not found, skipping...", path)
			continue
		case errors.Is(err, ErrMalformedJSON):
			log.Printf("Warning: File %s is not valid JSON, skipping...",
				path)
			continue
		case err != nil:
			log.Printf("Warning: Error reading %s: %v, skipping...", path,
				err)
			continue
		}
		log.Printf("Loaded %d documents from %s", n, path)
		counts = append(counts, SourceCount{Path: path, Documents: n})
	}
	return counts, nil
}

func readCleanedFile(path string, fn TextFunc) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	mapped, err := readMmap(file)
	if err != nil {
		return 0, errors.Wrapf(err, "mapping %s", path)
	}
	if mapped != nil {
		defer mapped.Unmap()
	}
	data := []byte(mapped)
	// Validating first means a broken file contributes no documents at all.
	if !json.Valid(data) {
		return 0, ErrMalformedJSON
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('[') {
		return 0, ErrMalformedJSON
	}
	n := 0
	for dec.More() {
		var doc struct {
			Text *string `json:"text"`
		}
		if err := dec.Decode(&doc); err != nil {
			return n, withKind(ErrMalformedJSON, err)
		}
		if doc.Text == nil {
			return n, errors.Wrapf(ErrMissingText, "document %d", n)
		}
		if err := fn(*doc.Text); err != nil {
			return n, callbackError{err: err}
		}
		n++
	}
	return n, nil
}
