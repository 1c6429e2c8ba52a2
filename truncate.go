package wiki40b_bpe

import (
	"strings"
)

const (
	minHeadingLen = 3
	maxHeadingLen = 40
)

// Truncator drops a trailing boilerplate section (References, See also, ...)
// together with everything after it.
type Truncator struct {
	cutSet map[string]struct{}
}

func NewTruncator(headings []string) *Truncator {
	cutSet := make(map[string]struct{}, len(headings))
	for _, heading := range headings {
		cutSet[strings.ToLower(strings.TrimSpace(heading))] = struct{}{}
	}
	return &Truncator{cutSet: cutSet}
}

// normalizeNewlines turns CR-LF and lone CR into LF.
func normalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// Truncate cuts text at the first line that is a cut-set heading.
func (tr *Truncator) Truncate(text string) string {
	lines := strings.Split(normalizeNewlines(text), "\n")
	return strings.Join(tr.TruncateLines(lines), "\n")
}

// TruncateLines returns the lines before the first cut-set heading, or all of
// them when there is none.
func (tr *Truncator) TruncateLines(lines []string) []string {
	for idx, line := range lines {
		heading, ok := headingCandidate(line)
		if !ok {
			continue
		}
		if _, cut := tr.cutSet[strings.ToLower(heading)]; cut {
			return lines[:idx]
		}
	}
	return lines
}

// headingCandidate reports whether line looks like a section heading: a short
// run of ASCII letters and spaces, and nothing else.
func headingCandidate(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < minHeadingLen || len(trimmed) > maxHeadingLen {
		return "", false
	}
	for idx := 0; idx < len(trimmed); idx++ {
		c := trimmed[idx]
		if c != ' ' && !isASCIILetter(c) {
			return "", false
		}
	}
	return trimmed, true
}

func isASCIILetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
