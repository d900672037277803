package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Delimiter usage
	TagInfo            Code = 1000
	TagAngleDelimiter  Code = 1001
	TagSquareDelimiter Code = 1002

	// Merge variable content
	VarInfo        Code = 2000
	VarEmpty       Code = 2001
	VarInvalidChar Code = 2002

	// Document loading
	IOInfo          Code = 4000
	IOLoadFileError Code = 4001
	IONotText       Code = 4002

	// Structural HTML linter
	HTMLInfo  Code = 5000
	HTMLIssue Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:        "Unknown error",
	TagInfo:            "Delimiter information",
	TagAngleDelimiter:  "Merge variable written with angle brackets",
	TagSquareDelimiter: "Merge variable written with square brackets",
	VarInfo:            "Merge variable information",
	VarEmpty:           "Empty merge variable",
	VarInvalidChar:     "Forbidden character in merge variable",
	IOInfo:             "I/O information",
	IOLoadFileError:    "Failed to load document",
	IONotText:          "Document is not text",
	HTMLInfo:           "Structural HTML information",
	HTMLIssue:          "Structural HTML issue",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("TAG%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("VAR%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("HTM%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// KnownCodes returns every code with a description, in ascending order.
func KnownCodes() []Code {
	return []Code{
		TagAngleDelimiter, TagSquareDelimiter,
		VarEmpty, VarInvalidChar,
		IOLoadFileError, IONotText,
		HTMLIssue,
	}
}
