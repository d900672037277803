package mergetag

import "regexp"

// findSpans returns every non-overlapping match of re in text, left to right.
// re must have exactly one capture group holding the inner text.
func findSpans(re *regexp.Regexp, delim Delimiter, text string, limit int) []Span {
	locs := re.FindAllStringSubmatchIndex(text, limit)
	if len(locs) == 0 {
		return nil
	}
	out := make([]Span, 0, len(locs))
	for _, loc := range locs {
		out = append(out, Span{
			Delim: delim,
			Start: loc[0],
			End:   loc[1],
			Raw:   text[loc[0]:loc[1]],
			Inner: text[loc[2]:loc[3]],
		})
	}
	return out
}

func misdelimitedMessage(open, inner, closing string) string {
	return "Incorrect delimiter usage: found " + open + inner + closing + " but expected {{" + inner + "}}"
}
