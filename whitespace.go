package wiki40b_bpe

import (
	"regexp"
	"strings"
	"unicode"
)

var excessNewlinesRe = regexp.MustCompile(`\n{3,}`)

const paragraphBreak = "\n\n"

// WhitespaceCollapser
// Turns tabs into spaces and squeezes every whitespace run into one
// separator. Runs of three or more line breaks are first reduced to two; that
// pass runs before the run collapse, which otherwise would leave no line
// breaks to reduce.
//
// With PreserveParagraphs unset every run, line breaks included, becomes a
// single space, so the result is one line. With it set, a run holding two or
// more line breaks becomes a paragraph break instead.
type WhitespaceCollapser struct {
	PreserveParagraphs bool
}

func (wc WhitespaceCollapser) Collapse(text string) string {
	text = strings.ReplaceAll(text, "\t", " ")
	text = excessNewlinesRe.ReplaceAllLiteralString(text, paragraphBreak)

	var builder strings.Builder
	builder.Grow(len(text))
	pending := false
	newlines := 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			pending = true
			if r == '\n' {
				newlines++
			}
			continue
		}
		// Leading and trailing runs are never flushed, which trims the text.
		if pending && builder.Len() > 0 {
			builder.WriteString(wc.separator(newlines))
		}
		pending = false
		newlines = 0
		builder.WriteRune(r)
	}
	return builder.String()
}

func (wc WhitespaceCollapser) separator(newlines int) string {
	if wc.PreserveParagraphs && newlines >= 2 {
		return paragraphBreak
	}
	return " "
}
