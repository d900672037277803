package source

import (
	"fmt"

	"fortio.org/safecast"
)

// Span is a byte range [Start, End) of one document.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

// SpanOf builds a span from int offsets as produced by string scanning.
// Negative or oversized offsets are reported as errors.
func SpanOf(file FileID, start, end int) (Span, error) {
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		return Span{}, fmt.Errorf("span start: %w", err)
	}
	e, err := safecast.Conv[uint32](end)
	if err != nil {
		return Span{}, fmt.Errorf("span end: %w", err)
	}
	if e < s {
		return Span{}, fmt.Errorf("span end %d before start %d", e, s)
	}
	return Span{File: file, Start: s, End: e}, nil
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Slice returns the text of f covered by sp, or "" when sp does not fit f.
func (f *File) Slice(sp Span) string {
	if f == nil || sp.File != f.ID || sp.Start > sp.End || int(sp.End) > len(f.Content) {
		return ""
	}
	return string(f.Content[sp.Start:sp.End])
}
