// Package testkit holds structural checks shared by fuzz harnesses and tests.
package testkit

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"fortio.org/safecast"

	"mergelint/internal/diag"
	"mergelint/internal/mergetag"
	"mergelint/internal/source"
)

var delimiters = map[mergetag.Delimiter][2]string{
	mergetag.DelimAngle:  {"<", ">"},
	mergetag.DelimSquare: {"[", "]"},
	mergetag.DelimCurly:  {"{{", "}}"},
}

// CheckFindingInvariants verifies findings produced for text:
// 1) every span lies within text and is enclosed by its delimiters
// 2) findings are grouped angle, square, curly, left to right inside a group
// 3) kinds agree with delimiters, and BadOffset points at a forbidden rune
func CheckFindingInvariants(text string, findings []mergetag.Finding) error {
	prevDelim := mergetag.Delimiter(0)
	prevEnd := 0
	for i, f := range findings {
		if f.Start < 0 || f.End > len(text) || f.Start >= f.End {
			return fmt.Errorf("finding %d: span [%d,%d) outside text of %d bytes", i, f.Start, f.End, len(text))
		}
		delim, ok := delimiters[f.Delim]
		if !ok {
			return fmt.Errorf("finding %d: unknown delimiter %v", i, f.Delim)
		}
		raw := text[f.Start:f.End]
		if !strings.HasPrefix(raw, delim[0]) || !strings.HasSuffix(raw, delim[1]) || len(raw) < len(delim[0])+len(delim[1]) {
			return fmt.Errorf("finding %d: %q is not a %v span", i, raw, f.Delim)
		}

		switch {
		case f.Delim < prevDelim:
			return fmt.Errorf("finding %d: %v after %v", i, f.Delim, prevDelim)
		case f.Delim == prevDelim && f.Start < prevEnd:
			return fmt.Errorf("finding %d: starts at %d before previous end %d", i, f.Start, prevEnd)
		}
		prevDelim, prevEnd = f.Delim, f.End

		if f.Message == "" {
			return fmt.Errorf("finding %d: empty message", i)
		}
		if err := checkKind(text, i, &f); err != nil {
			return err
		}
	}
	return nil
}

func checkKind(text string, i int, f *mergetag.Finding) error {
	switch f.Kind {
	case mergetag.KindMisdelimited:
		if f.Delim == mergetag.DelimCurly {
			return fmt.Errorf("finding %d: curly span reported as misdelimited", i)
		}
	case mergetag.KindEmpty:
		if f.Delim != mergetag.DelimCurly {
			return fmt.Errorf("finding %d: empty variable outside curly braces", i)
		}
	case mergetag.KindInvalidChar:
		if f.Delim != mergetag.DelimCurly || len(f.Chars) == 0 {
			return fmt.Errorf("finding %d: malformed invalid-char finding %+v", i, f)
		}
		if f.BadOffset < f.Start || f.BadOffset >= f.End {
			return fmt.Errorf("finding %d: bad offset %d outside [%d,%d)", i, f.BadOffset, f.Start, f.End)
		}
		r, _ := utf8.DecodeRuneInString(text[f.BadOffset:])
		if !mergetag.IsForbidden(r) {
			return fmt.Errorf("finding %d: %q at offset %d is not forbidden", i, r, f.BadOffset)
		}
	default:
		return fmt.Errorf("finding %d: unknown kind %v", i, f.Kind)
	}
	return nil
}

// CheckDiagnosticSpans verifies that every primary and note span of bag
// refers to a known file and stays within its content.
func CheckDiagnosticSpans(bag *diag.Bag, fs *source.FileSet) error {
	for i, d := range bag.Items() {
		if err := checkSpan(fs, d.Primary); err != nil {
			return fmt.Errorf("diagnostic %d (%s): %w", i, d.Code.ID(), err)
		}
		for j, n := range d.Notes {
			if err := checkSpan(fs, n.Span); err != nil {
				return fmt.Errorf("diagnostic %d note %d: %w", i, j, err)
			}
		}
	}
	return nil
}

func checkSpan(fs *source.FileSet, sp source.Span) error {
	file := fs.Get(sp.File)
	if file == nil {
		return fmt.Errorf("unknown file id %d", sp.File)
	}
	size, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if sp.Start > sp.End {
		return fmt.Errorf("inverted span %v", sp)
	}
	if sp.End > size {
		return fmt.Errorf("span %v beyond content of %d bytes", sp, size)
	}
	return nil
}
