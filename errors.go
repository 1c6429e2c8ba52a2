package wiki40b_bpe

import (
	"github.com/pkg/errors"
)

var (
	ErrMalformedJSON = errors.New("line is not a JSON object")
	ErrMissingText   = errors.New("record has no text field")
	ErrTooShort      = errors.New("cleaned text below minimum length")
	ErrMissingFile   = errors.New("input file does not exist")
	ErrIO            = errors.New("i/o failure")
)

// kindError tags a wrapped cause with one of the sentinel errors above so
// callers can test with errors.Is while keeping the cause's message.
type kindError struct {
	kind  error
	cause error
}

func (e *kindError) Error() string {
	return e.kind.Error() + ": " + e.cause.Error()
}

func (e *kindError) Is(target error) bool {
	return target == e.kind
}

func (e *kindError) Unwrap() error {
	return e.cause
}

func withKind(kind error, cause error) error {
	if cause == nil {
		return nil
	}
	return &kindError{kind: kind, cause: cause}
}

// DropReason records why a record was left out of a cleaned shard.
type DropReason int

const (
	DropMalformedJSON DropReason = iota
	DropMissingText
	DropTooShort
	numDropReasons
)

func (r DropReason) String() string {
	switch r {
	case DropMalformedJSON:
		return "MalformedJSON"
	case DropMissingText:
		return "MissingText"
	case DropTooShort:
		return "TooShort"
	}
	return "Unknown"
}

func dropReasonOf(err error) DropReason {
	switch {
	case errors.Is(err, ErrTooShort):
		return DropTooShort
	case errors.Is(err, ErrMissingText):
		return DropMissingText
	}
	return DropMalformedJSON
}
