package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"off", LevelOff, false},
		{"ERROR", LevelError, false},
		{"phase", LevelPhase, false},
		{"Detail", LevelDetail, false},
		{"debug", LevelDebug, false},
		{"loud", LevelOff, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelAllows(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeRun, false},
		{LevelError, ScopeRun, false},
		{LevelPhase, ScopeRun, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopePass, false},
		{LevelDebug, ScopePass, true},
	}
	for _, tt := range tests {
		if got := tt.level.Allows(tt.scope); got != tt.want {
			t.Errorf("%v.Allows(%v) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestStreamTracerSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	run := Begin(tr, ScopeRun, "check", 0)
	file := Begin(tr, ScopeFile, "file:a.html", run.ID())
	pass := Begin(tr, ScopePass, "curly", file.ID())
	if pass.ID() != 0 {
		t.Errorf("filtered span has id %d", pass.ID())
	}
	pass.End("")
	file.Attr("findings", "2").Attr("cached", "false").End("")
	run.End("done")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), out)
	}
	if strings.Contains(out, "curly") {
		t.Error("pass scope must be filtered at detail level")
	}
	if !strings.Contains(lines[1], "  > file:a.html") {
		t.Errorf("child begin not indented: %q", lines[1])
	}
	if !strings.Contains(lines[2], "< file:a.html [") || !strings.HasSuffix(lines[2], "findings=2 cached=false") {
		t.Errorf("unexpected file end line: %q", lines[2])
	}
	if !strings.Contains(lines[3], "(done)") {
		t.Errorf("unexpected run end line: %q", lines[3])
	}
}

func TestSpanEndTwice(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	s := Begin(tr, ScopeRun, "check", 0)
	s.End("")
	if d := s.End(""); d != 0 {
		t.Errorf("second End returned %v", d)
	}
	if n := strings.Count(buf.String(), "\n"); n != 2 {
		t.Errorf("expected 2 events, got %d", n)
	}
}

func TestErrorEventsAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelError, FormatNDJSON)

	Point(tr, ScopeRun, "ignored", "", 0)
	Error(tr, ScopePass, "structural", errors.New("exit status 2"), 7)
	Error(tr, ScopePass, "structural", nil, 0)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one event, got %q", buf.String())
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &ev); err != nil {
		t.Fatalf("invalid NDJSON: %v", err)
	}
	if ev["kind"] != "error" || ev["detail"] != "exit status 2" || ev["name"] != "structural" {
		t.Errorf("unexpected event: %v", ev)
	}
	if ev["seq"] != float64(1) || ev["parent"] != float64(7) {
		t.Errorf("seq/parent = %v/%v", ev["seq"], ev["parent"])
	}
}

func TestNDJSONAttrs(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	Begin(tr, ScopeRun, "check", 0).Attr("documents", "3").End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var end struct {
		Kind  string            `json:"kind"`
		Span  uint64            `json:"span"`
		Attrs map[string]string `json:"attrs"`
	}
	if err := json.Unmarshal([]byte(lines[1]), &end); err != nil {
		t.Fatalf("invalid NDJSON: %v", err)
	}
	if end.Kind != "end" || end.Span == 0 || end.Attrs["documents"] != "3" {
		t.Errorf("unexpected end event: %+v", end)
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if Enabled(tr) {
		t.Error("off tracer must be disabled")
	}
	span := Begin(tr, ScopeRun, "x", 0)
	if span.End("") != 0 {
		t.Error("nop span must report zero duration")
	}
}

func TestNewAutoFormat(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Output: &buf, OutputPath: "trace.ndjson"})
	if err != nil {
		t.Fatal(err)
	}
	Point(tr, ScopeRun, "hello", "", 0)
	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("expected NDJSON output, got %q", buf.String())
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatAuto, "TEXT": FormatText, "json": FormatNDJSON, "ndjson": FormatNDJSON} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}

func TestContextRoundTrip(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Error("missing tracer must yield Nop")
	}
	tr := NewStreamTracer(&bytes.Buffer{}, LevelDebug, FormatText)
	ctx := WithTracer(context.Background(), tr)
	if FromContext(ctx) != tr {
		t.Error("tracer not found in context")
	}
}
