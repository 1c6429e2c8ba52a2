package wiki40b_bpe

import (
	"regexp"
	"strings"
)

// ResidualMarkerPattern matches marker-shaped tokens such as
// `_START_SOMETHING_` that the replacement table does not name.
const ResidualMarkerPattern = `_[A-Z][A-Z_]{2,50}_`

var residualMarkerRe = regexp.MustCompile(ResidualMarkerPattern)

// MarkerNormalizer rewrites Wiki40B structural markers into newlines.
type MarkerNormalizer struct {
	passes []*strings.Replacer
}

// NewMarkerNormalizer builds a normalizer that applies each replacement as
// its own full pass, in order.
func NewMarkerNormalizer(replacements []Replacement) *MarkerNormalizer {
	passes := make([]*strings.Replacer, 0, len(replacements))
	for _, r := range replacements {
		if r.Old == "" {
			continue
		}
		passes = append(passes, strings.NewReplacer(r.Old, r.New))
	}
	return &MarkerNormalizer{passes: passes}
}

func (mn *MarkerNormalizer) Normalize(text string) string {
	for _, pass := range mn.passes {
		text = pass.Replace(text)
	}
	return residualMarkerRe.ReplaceAllLiteralString(text, "\n")
}
