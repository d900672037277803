package mergetag

import (
	"regexp"
	"strings"
)

var angleRE = regexp.MustCompile(`<([^>]*)>`)

const commentMarker = "!--"

// AngleSpans returns every <...> span of text.
func AngleSpans(text string) []Span {
	return findSpans(angleRE, DelimAngle, text, -1)
}

// Angle reports <name> spans that are neither comments nor allowlisted tags.
func (v *Validator) Angle(text string) []Finding {
	var out []Finding
	for _, sp := range AngleSpans(text) {
		inner := strings.TrimSpace(sp.Inner)
		if inner == "" || strings.HasPrefix(inner, commentMarker) {
			continue
		}
		if v.tags.Contains(tagToken(inner)) {
			continue
		}
		out = append(out, Finding{
			Kind:      KindMisdelimited,
			Delim:     DelimAngle,
			Start:     sp.Start,
			End:       sp.End,
			Inner:     inner,
			Message:   misdelimitedMessage("<", inner, ">"),
			BadOffset: -1,
		})
	}
	return out
}

// tagToken extracts the element name candidate from trimmed tag content:
// "/Div class=x" and "br/" become "div" and "br".
func tagToken(inner string) string {
	tok := inner
	if i := strings.IndexFunc(tok, isSpace); i >= 0 {
		tok = tok[:i]
	}
	tok = strings.ToLower(tok)
	tok = strings.TrimPrefix(tok, "/")
	tok = strings.TrimSuffix(tok, "/")
	return tok
}
