package driver

import (
	"errors"
	"unicode/utf8"

	"mergelint/internal/diag"
	"mergelint/internal/mergetag"
	"mergelint/internal/source"
)

// reportFindings converts merge-tag findings into diagnostics, keeping order.
func reportFindings(r diag.Reporter, file *source.File, findings []mergetag.Finding) error {
	text := file.Text()
	for i := range findings {
		f := &findings[i]
		sp, err := source.SpanOf(file.ID, f.Start, f.End)
		if err != nil {
			return err
		}

		switch f.Kind {
		case mergetag.KindMisdelimited:
			code := diag.TagAngleDelimiter
			if f.Delim == mergetag.DelimSquare {
				code = diag.TagSquareDelimiter
			}
			diag.ReportError(r, code, sp, f.Message).
				WithNote(sp, "write it as "+f.Suggestion()).
				Emit()

		case mergetag.KindEmpty:
			diag.ReportError(r, diag.VarEmpty, sp, f.Message).Emit()

		case mergetag.KindInvalidChar:
			b := diag.ReportError(r, diag.VarInvalidChar, sp, f.Message)
			if f.BadOffset >= 0 && f.BadOffset < len(text) {
				_, size := utf8.DecodeRuneInString(text[f.BadOffset:])
				if bad, err := source.SpanOf(file.ID, f.BadOffset, f.BadOffset+size); err == nil {
					b.WithNote(bad, "first forbidden character")
				}
			}
			b.Emit()
		}
	}
	return nil
}

// reportStructural appends structural linter issues after the merge-tag ones.
// The linter reports no positions, so the diagnostics point at the document start.
func reportStructural(r diag.Reporter, file *source.File, issues []string) {
	sp := source.Span{File: file.ID}
	for _, msg := range issues {
		diag.ReportError(r, diag.HTMLIssue, sp, msg).Emit()
	}
}

func reportLoadError(r diag.Reporter, file *source.File, err error) {
	sp := source.Span{File: file.ID}
	if errors.Is(err, source.ErrNotText) {
		diag.ReportError(r, diag.IONotText, sp, "document is not text: "+err.Error()).Emit()
		return
	}
	diag.ReportError(r, diag.IOLoadFileError, sp, "failed to load document: "+err.Error()).Emit()
}
