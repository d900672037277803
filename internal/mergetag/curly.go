package mergetag

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
)

var curlyRE = regexp.MustCompile(`(?s)\{\{(.*?)\}\}`)

// forbiddenPunct are the punctuation characters not allowed in a variable name.
// Whitespace of any kind is forbidden as well.
const forbiddenPunct = "!\"#%'()*+,/;<=>@[\\]^`{|}~"

const whitespaceLabel = "whitespace"

// IsForbidden reports whether r may not appear inside {{...}}.
func IsForbidden(r rune) bool {
	return isSpace(r) || strings.ContainsRune(forbiddenPunct, r)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}

// CurlySpans returns every {{...}} span of text, using the shortest closing "}}".
func CurlySpans(text string) []Span {
	return findSpans(curlyRE, DelimCurly, text, -1)
}

// Curly reports empty {{}} spans and spans containing forbidden characters.
// With FirstCurlyOnly only the first span is examined.
func (v *Validator) Curly(text string) []Finding {
	limit := -1
	if v.firstCurlyOnly {
		limit = 1
	}

	var out []Finding
	for _, sp := range findSpans(curlyRE, DelimCurly, text, limit) {
		if f, ok := checkCurly(sp); ok {
			out = append(out, f)
		}
	}
	return out
}

func checkCurly(sp Span) (Finding, bool) {
	if strings.TrimSpace(sp.Inner) == "" {
		return Finding{
			Kind:      KindEmpty,
			Delim:     DelimCurly,
			Start:     sp.Start,
			End:       sp.End,
			Inner:     sp.Inner,
			Message:   "Empty merge variable found: " + sp.Raw,
			BadOffset: -1,
		}, true
	}

	chars, first := forbiddenIn(sp.Inner)
	if len(chars) == 0 {
		return Finding{}, false
	}

	var msg strings.Builder
	msg.WriteString("Invalid merge variable {{")
	msg.WriteString(sp.Inner)
	msg.WriteString("}}: contains")
	for _, c := range chars {
		msg.WriteString(" '")
		msg.WriteString(c)
		msg.WriteString("'")
	}

	return Finding{
		Kind:      KindInvalidChar,
		Delim:     DelimCurly,
		Start:     sp.Start,
		End:       sp.End,
		Inner:     sp.Inner,
		Message:   msg.String(),
		Chars:     chars,
		BadOffset: sp.Start + len("{{") + first,
	}, true
}

// forbiddenIn returns the distinct forbidden characters of inner, whitespace
// first and the rest by code point, plus the byte index of the first one.
func forbiddenIn(inner string) ([]string, int) {
	first := -1
	hasSpace := false
	var punct []rune
	for i, r := range inner {
		if !IsForbidden(r) {
			continue
		}
		if first < 0 {
			first = i
		}
		if isSpace(r) {
			hasSpace = true
			continue
		}
		if !slices.Contains(punct, r) {
			punct = append(punct, r)
		}
	}
	if first < 0 {
		return nil, -1
	}

	slices.Sort(punct)
	out := make([]string, 0, len(punct)+1)
	if hasSpace {
		out = append(out, whitespaceLabel)
	}
	for _, r := range punct {
		out = append(out, string(r))
	}
	return out, first
}
