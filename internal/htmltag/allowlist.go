// Package htmltag holds the set of element names that the merge-tag
// scanners treat as genuine markup rather than misdelimited variables.
package htmltag

import (
	"slices"
	"strings"
)

// Set is an immutable collection of lowercase element names.
type Set struct {
	names map[string]struct{}
}

// Default covers the HTML living standard, the obsolete elements still found
// in e-mail templates, the SVG and MathML roots and the doctype declaration.
var Default = NewSet(
	"!doctype",
	"a", "abbr", "acronym", "address", "applet", "area", "article", "aside", "audio",
	"b", "base", "basefont", "bdi", "bdo", "bgsound", "big", "blink", "blockquote", "body", "br", "button",
	"canvas", "caption", "center", "cite", "code", "col", "colgroup",
	"data", "datalist", "dd", "del", "details", "dfn", "dialog", "dir", "div", "dl", "dt",
	"em", "embed",
	"fieldset", "figcaption", "figure", "font", "footer", "form", "frame", "frameset",
	"h1", "h2", "h3", "h4", "h5", "h6", "head", "header", "hgroup", "hr", "html",
	"i", "iframe", "img", "input", "ins", "isindex",
	"kbd", "keygen",
	"label", "legend", "li", "link", "listing",
	"main", "map", "mark", "marquee", "math", "menu", "menuitem", "meta", "meter",
	"nav", "nobr", "noembed", "noframes", "noscript",
	"object", "ol", "optgroup", "option", "output",
	"p", "param", "picture", "plaintext", "pre", "progress",
	"q",
	"rb", "rp", "rt", "rtc", "ruby",
	"s", "samp", "script", "search", "section", "select", "slot", "small", "source", "spacer",
	"span", "strike", "strong", "style", "sub", "summary", "sup", "svg",
	"table", "tbody", "td", "template", "textarea", "tfoot", "th", "thead", "time", "title",
	"tr", "track", "tt",
	"u", "ul",
	"var", "video",
	"wbr",
	"xmp",
)

// NewSet builds a Set from names. Names are stored lowercased.
func NewSet(names ...string) Set {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		m[strings.ToLower(n)] = struct{}{}
	}
	return Set{names: m}
}

// Contains reports whether token is a recognized element name.
// The lookup is exact; callers lowercase the token first.
func (s Set) Contains(token string) bool {
	_, ok := s.names[token]
	return ok
}

// With returns a new Set holding the names of s plus extra.
// s itself is left unchanged.
func (s Set) With(extra ...string) Set {
	m := make(map[string]struct{}, len(s.names)+len(extra))
	for n := range s.names {
		m[n] = struct{}{}
	}
	for _, n := range extra {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		m[n] = struct{}{}
	}
	return Set{names: m}
}

func (s Set) Len() int {
	return len(s.names)
}

// Names returns the element names in ascending order.
func (s Set) Names() []string {
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}
