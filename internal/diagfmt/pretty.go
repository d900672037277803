package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"mergelint/internal/diag"
	"mergelint/internal/source"
)

type palette struct {
	err, warn, info, code, path, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		code:   mk(color.Bold),
		path:   mk(color.FgWhite, color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgGreen, color.Bold),
		note:   mk(color.FgCyan),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид, в порядке bag.Items().
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку документа с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	f := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)

	fmt.Fprintf(w, "%s: %s %s: %s\n",
		pal.path.Sprintf("%s:%d:%d", opts.PathMode.render(f, fs), start.Line, start.Col),
		pal.severity(d.Severity).Sprint(d.Severity.String()),
		pal.code.Sprint(d.Code.ID()),
		d.Message,
	)

	if f != nil {
		writeSnippet(w, f, start, end, opts.Context, pal)
	}

	if !opts.ShowNotes {
		return
	}
	for _, note := range d.Notes {
		nf := fs.Get(note.Span.File)
		npos, _ := fs.Resolve(note.Span)
		fmt.Fprintf(w, "  %s %s:%d:%d: %s\n",
			pal.note.Sprint("note:"),
			opts.PathMode.render(nf, fs), npos.Line, npos.Col,
			note.Msg,
		)
	}
}

// writeSnippet prints the primary line with context lines around it and an
// underline below the primary line. Spans crossing lines are underlined to
// the end of the first line.
func writeSnippet(w io.Writer, f *source.File, start, end source.LineCol, context int8, pal palette) {
	first := int64(start.Line) - int64(max(context, 0))
	if first < 1 {
		first = 1
	}
	last := int64(start.Line) + int64(max(context, 0))
	total := int64(len(f.LineIdx)) + 1
	if last > total {
		last = total
	}

	gutterWidth := len(fmt.Sprint(last))
	blank := strings.Repeat(" ", gutterWidth)

	for ln := first; ln <= last; ln++ {
		line := f.Line(uint32(ln))
		fmt.Fprintf(w, " %s %s %s\n", pal.gutter.Sprintf("%*d", gutterWidth, ln), pal.gutter.Sprint("|"), line)
		if ln != int64(start.Line) {
			continue
		}

		from := clampCol(start.Col, line)
		to := len(line)
		if end.Line == start.Line {
			to = clampCol(end.Col, line)
		}
		fmt.Fprintf(w, " %s %s %s%s\n", blank, pal.gutter.Sprint("|"), padFor(line[:from]), pal.caret.Sprint(underline(line[from:to])))
	}
}

func clampCol(col uint32, line string) int {
	i := int(col) - 1
	if i < 0 {
		return 0
	}
	if i > len(line) {
		return len(line)
	}
	return i
}

// padFor returns blanks covering the display width of prefix; tabs are kept
// so the caret lines up with the line above.
func padFor(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}

func underline(text string) string {
	width := runewidth.StringWidth(text)
	if width <= 1 {
		return "^"
	}
	return "^" + strings.Repeat("~", width-1)
}
