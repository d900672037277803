package driver

import "time"

// Stage describes a phase of checking one document.
type Stage string

const (
	// StageLoad is reading and decoding the document.
	StageLoad Stage = "load"
	// StageScan is the merge-tag scan.
	StageScan Stage = "scan"
	// StageStructural is the external structural HTML linter.
	StageStructural Stage = "structural"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the document is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the document is being checked.
	StatusWorking Status = "working"
	// StatusDone indicates the document is checked.
	StatusDone Status = "done"
	// StatusError indicates the document could not be checked.
	StatusError Status = "error"
)

// Event reports progress for a document (or for the whole run when File is empty).
type Event struct {
	File     string
	Stage    Stage
	Status   Status
	Err      error
	Findings int
	Cached   bool
	Elapsed  time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
