package trace

import "time"

// Kind is the type of an event.
type Kind uint8

const (
	KindBegin Kind = iota + 1
	KindEnd
	KindPoint
	// KindError is written at every level except off.
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindBegin:
		return "begin"
	case KindEnd:
		return "end"
	case KindPoint:
		return "point"
	case KindError:
		return "error"
	}
	return "unknown"
}

// Scope is the granularity of an event; lower values are coarser.
type Scope uint8

const (
	// ScopeRun covers a whole check invocation.
	ScopeRun Scope = iota + 1
	// ScopeFile covers one document.
	ScopeFile
	ScopePass // merge-tag and structural passes
)

func (s Scope) String() string {
	switch s {
	case ScopeRun:
		return "run"
	case ScopeFile:
		return "file"
	case ScopePass:
		return "pass"
	}
	return "unknown"
}

// Attr is a key/value pair attached to an event, kept in insertion order.
type Attr struct {
	Key   string
	Value string
}

// Event is a single trace record.
type Event struct {
	Time   time.Time
	Seq    uint64 // assigned by the tracer that writes the event
	Kind   Kind
	Scope  Scope
	Span   uint64 // 0 for points and errors
	Parent uint64
	Name   string // e.g. "check", "file:templates/a.html"
	Detail string
	// Elapsed is set on KindEnd events.
	Elapsed time.Duration
	Attrs   []Attr
}
