package wiki40b_bpe

import (
	"golang.org/x/text/unicode/norm"
)

// Cleaner runs the text stages in order: literal decoding, marker
// normalization, boilerplate truncation, whitespace collapse and, when
// enabled, NFC normalization.
type Cleaner struct {
	markers   *MarkerNormalizer
	truncator *Truncator
	collapser WhitespaceCollapser
	nfc       bool
}

func NewCleaner(cfg Config) *Cleaner {
	return &Cleaner{
		markers:   NewMarkerNormalizer(cfg.MarkerReplacements),
		truncator: NewTruncator(cfg.CutAtHeadings),
		collapser: WhitespaceCollapser{
			PreserveParagraphs: cfg.PreserveParagraphs,
		},
		nfc: cfg.NormalizeUnicode,
	}
}

func (c *Cleaner) CleanText(text string) string {
	text = DecodeBytesLiteralString(text)
	text = c.markers.Normalize(text)
	text = c.truncator.Truncate(text)
	text = c.collapser.Collapse(text)
	if c.nfc {
		text = norm.NFC.String(text)
	}
	return text
}

// CleanRecord decodes the identifier fields and cleans the text in place.
func (c *Cleaner) CleanRecord(rec *Record) {
	if rec.WikidataID != nil {
		decoded := DecodeBytesLiteralString(*rec.WikidataID)
		rec.WikidataID = &decoded
	}
	if rec.VersionID != nil {
		decoded := DecodeBytesLiteralString(*rec.VersionID)
		rec.VersionID = &decoded
	}
	rec.Text = c.CleanText(rec.Text)
}
