package mergetag

import (
	"regexp"
	"strings"
)

var squareRE = regexp.MustCompile(`\[([^\]]*)\]`)

// codeMarkers flag a [...] span as a CSS attribute selector or code.
const codeMarkers = `"=()`

// SquareSpans returns every [...] span of text.
func SquareSpans(text string) []Span {
	return findSpans(squareRE, DelimSquare, text, -1)
}

// Square reports [name] spans that carry none of the code markers.
func (v *Validator) Square(text string) []Finding {
	var out []Finding
	for _, sp := range SquareSpans(text) {
		if strings.ContainsAny(sp.Raw, codeMarkers) {
			continue
		}
		out = append(out, Finding{
			Kind:      KindMisdelimited,
			Delim:     DelimSquare,
			Start:     sp.Start,
			End:       sp.End,
			Inner:     sp.Inner,
			Message:   misdelimitedMessage("[", sp.Inner, "]"),
			BadOffset: -1,
		})
	}
	return out
}
