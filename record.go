package wiki40b_bpe

import (
	"bytes"
	"encoding/json"
	"sort"
	"unicode/utf8"

	"github.com/pkg/errors"
)

const (
	fieldWikidataID = "wikidata_id"
	fieldText       = "text"
	fieldVersionID  = "version_id"
)

// Record is one Wiki40B document. Text is required; the identifier fields
// are optional and nil when absent. Any other field is carried through
// verbatim in Extra.
type Record struct {
	WikidataID *string
	Text       string
	VersionID  *string
	Extra      map[string]json.RawMessage
}

// ParseRecord parses one JSONL line. It fails with ErrMalformedJSON if the
// line is not a JSON object and with ErrMissingText if the object has no
// string `text` field.
func ParseRecord(line []byte) (*Record, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(line, &fields); err != nil {
		return nil, withKind(ErrMalformedJSON, err)
	}
	if fields == nil {
		return nil, withKind(ErrMalformedJSON, errors.New("null record"))
	}

	rawText, ok := fields[fieldText]
	if !ok {
		return nil, ErrMissingText
	}
	var text *string
	if err := json.Unmarshal(rawText, &text); err != nil {
		return nil, withKind(ErrMissingText, err)
	} else if text == nil {
		return nil, ErrMissingText
	}
	delete(fields, fieldText)
	rec := &Record{Text: *text}
	rec.WikidataID = takeString(fields, fieldWikidataID)
	rec.VersionID = takeString(fields, fieldVersionID)
	if len(fields) > 0 {
		rec.Extra = fields
	}
	return rec, nil
}

// takeString removes key from fields when it holds a JSON string. Non-string
// values stay in fields and are written back untouched.
func takeString(fields map[string]json.RawMessage, key string) *string {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	var s *string
	if json.Unmarshal(raw, &s) != nil || s == nil {
		return nil
	}
	delete(fields, key)
	return s
}

// Chars is the length of the text in characters.
func (rec *Record) Chars() int {
	return utf8.RuneCountInString(rec.Text)
}

// AppendJSON writes the record as a single-line JSON object. Non-ASCII text
// and HTML characters are written literally. Known fields come first, in the
// Wiki40B order, followed by the extra fields sorted by name.
func (rec *Record) AppendJSON(buf *bytes.Buffer) error {
	buf.WriteByte('{')
	first := true
	writeKey := func(key string) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := appendJSONValue(buf, key); err != nil {
			return err
		}
		buf.WriteByte(':')
		return nil
	}

	if rec.WikidataID != nil {
		if err := writeKey(fieldWikidataID); err != nil {
			return err
		}
		if err := appendJSONValue(buf, *rec.WikidataID); err != nil {
			return err
		}
	}
	if err := writeKey(fieldText); err != nil {
		return err
	}
	if err := appendJSONValue(buf, rec.Text); err != nil {
		return err
	}
	if rec.VersionID != nil {
		if err := writeKey(fieldVersionID); err != nil {
			return err
		}
		if err := appendJSONValue(buf, *rec.VersionID); err != nil {
			return err
		}
	}

	keys := make([]string, 0, len(rec.Extra))
	for key := range rec.Extra {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := writeKey(key); err != nil {
			return err
		}
		if err := json.Compact(buf, rec.Extra[key]); err != nil {
			return errors.Wrapf(err, "field %q", key)
		}
	}
	buf.WriteByte('}')
	return nil
}

func (rec *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := rec.AppendJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// appendJSONValue encodes v without HTML escaping and without the trailing
// newline json.Encoder adds.
func appendJSONValue(buf *bytes.Buffer, v interface{}) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}
