package diag

import "mergelint/internal/source"

// Reporter receives diagnostics from checks. Report returns false when the
// diagnostic was not stored, e.g. because a Bag reached its limit.
type Reporter interface {
	Report(d Diagnostic) bool
}

// BagReporter stores into a Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) bool {
	if r.Bag == nil {
		return false
	}
	return r.Bag.Add(d)
}

// CountingReporter forwards to Next and counts what was kept and what was
// rejected, so callers can report truncation per document.
type CountingReporter struct {
	Next     Reporter
	Kept     int
	Rejected int
}

func (r *CountingReporter) Report(d Diagnostic) bool {
	ok := r.Next != nil && r.Next.Report(d)
	if ok {
		r.Kept++
	} else {
		r.Rejected++
	}
	return ok
}

// ReportBuilder collects notes before the diagnostic is sent.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// ReportError starts an error diagnostic bound to r.
func ReportError(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{reporter: r, diag: NewError(code, primary, msg)}
}

// WithNote appends a note to the diagnostic.
func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithNote(sp, msg)
	return b
}

// Emit sends the diagnostic once; later calls return false.
func (b *ReportBuilder) Emit() bool {
	if b == nil || b.emitted || b.reporter == nil {
		return false
	}
	b.emitted = true
	return b.reporter.Report(b.diag)
}
