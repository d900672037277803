package diagfmt

import (
	"encoding/json"
	"io"

	"mergelint/internal/diag"
	"mergelint/internal/source"
)

// Position is one end of a location. Line and Column are 1-based and
// omitted unless JSONOpts.IncludePositions is set.
type Position struct {
	Offset uint32 `json:"offset"`
	Line   uint32 `json:"line,omitempty"`
	Column uint32 `json:"column,omitempty"`
}

// Location points at the offending text of a document.
type Location struct {
	Path  string   `json:"path"`
	Start Position `json:"start"`
	End   Position `json:"end"`
	// Text is the source covered by the location, e.g. "<First Name>".
	Text string `json:"text,omitempty"`
}

type NoteJSON struct {
	Message  string   `json:"message"`
	Location Location `json:"location"`
}

// DiagnosticJSON is one diagnostic in machine-readable form.
type DiagnosticJSON struct {
	Severity string     `json:"severity"`
	Code     string     `json:"code"`
	Title    string     `json:"title"`
	Message  string     `json:"message"`
	Location Location   `json:"location"`
	Notes    []NoteJSON `json:"notes,omitempty"`
}

// DiagnosticsOutput is the JSON document for one checked file.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	// Dropped counts diagnostics cut by the Bag limit or by JSONOpts.Max.
	Dropped int `json:"dropped,omitempty"`
}

type locator struct {
	fs   *source.FileSet
	opts *JSONOpts
}

func (l locator) locate(span source.Span) Location {
	f := l.fs.Get(span.File)
	loc := Location{
		Path:  l.opts.PathMode.render(f, l.fs),
		Start: Position{Offset: span.Start},
		End:   Position{Offset: span.End},
	}
	loc.Text = f.Slice(span)
	if l.opts.IncludePositions {
		start, end := l.fs.Resolve(span)
		loc.Start.Line, loc.Start.Column = start.Line, start.Col
		loc.End.Line, loc.End.Column = end.Line, end.Col
	}
	return loc
}

// BuildDiagnosticsOutput converts bag without serializing it.
// Bag order is kept.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	l := locator{fs: fs, opts: &opts}

	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, len(items)),
		Count:       len(items),
		Dropped:     bag.Dropped() + bag.Len() - len(items),
	}
	for i := range items {
		d := &items[i]
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			Location: l.locate(d.Primary),
		}
		if opts.IncludeNotes {
			for _, note := range d.Notes {
				dj.Notes = append(dj.Notes, NoteJSON{Message: note.Msg, Location: l.locate(note.Span)})
			}
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	return out
}

// JSON writes the diagnostics of bag as indented JSON.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
