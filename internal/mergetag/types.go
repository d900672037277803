package mergetag

import "fmt"

// Kind classifies a finding.
type Kind uint8

const (
	// KindMisdelimited is a variable written with angle or square brackets.
	KindMisdelimited Kind = iota + 1
	// KindInvalidChar is a {{...}} variable holding forbidden characters.
	KindInvalidChar
	// KindEmpty is a {{...}} variable with no name.
	KindEmpty
)

func (k Kind) String() string {
	switch k {
	case KindMisdelimited:
		return "misdelimited"
	case KindInvalidChar:
		return "invalid-char"
	case KindEmpty:
		return "empty"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Delimiter identifies the bracket style of a span.
type Delimiter uint8

const (
	DelimAngle Delimiter = iota + 1
	DelimSquare
	DelimCurly
)

func (d Delimiter) String() string {
	switch d {
	case DelimAngle:
		return "angle"
	case DelimSquare:
		return "square"
	case DelimCurly:
		return "curly"
	}
	return fmt.Sprintf("Delimiter(%d)", uint8(d))
}

// Span is one delimited region matched by a scanner.
// Start and End are byte offsets into the text, End exclusive.
type Span struct {
	Delim Delimiter
	Start int
	End   int
	Raw   string // the full match, delimiters included
	Inner string // the text between the delimiters, untrimmed
}

// Finding is a single violation.
type Finding struct {
	Kind  Kind
	Delim Delimiter
	Start int
	End   int
	// Inner is the name as it appears in the message: trimmed for angle
	// spans, untouched otherwise.
	Inner   string
	Message string
	// Chars lists the distinct forbidden characters of a KindInvalidChar
	// finding, whitespace collapsed into the single entry "whitespace".
	Chars []string
	// BadOffset is the byte offset of the first forbidden character,
	// or -1 when Chars is empty.
	BadOffset int
}

// Suggestion returns the correctly delimited form of the variable.
func (f Finding) Suggestion() string {
	return "{{" + f.Inner + "}}"
}

// Messages returns the message of every finding, in order.
func Messages(findings []Finding) []string {
	out := make([]string, len(findings))
	for i := range findings {
		out[i] = findings[i].Message
	}
	return out
}
