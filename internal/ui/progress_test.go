package ui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"mergelint/internal/driver"
)

func feed(t *testing.T, m tea.Model, events ...driver.Event) *progressModel {
	t.Helper()
	for _, ev := range events {
		m, _ = m.Update(eventMsg(ev))
	}
	pm, ok := m.(*progressModel)
	if !ok {
		t.Fatalf("unexpected model type %T", m)
	}
	return pm
}

func TestProgressModelTracksDocuments(t *testing.T) {
	m := feed(t, NewProgressModel("checking", nil),
		driver.Event{File: "a.html", Stage: driver.StageLoad, Status: driver.StatusQueued},
		driver.Event{File: "b.html", Stage: driver.StageLoad, Status: driver.StatusQueued},
		driver.Event{File: "a.html", Stage: driver.StageScan, Status: driver.StatusWorking},
		driver.Event{File: "a.html", Stage: driver.StageScan, Status: driver.StatusDone, Findings: 3, Cached: true},
		driver.Event{File: "b.html", Stage: driver.StageLoad, Status: driver.StatusError},
	)

	if len(m.items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(m.items))
	}
	if m.items[0].state != rowDone || m.items[1].state != rowFailed {
		t.Errorf("unexpected statuses: %+v", m.items)
	}
	if m.findings != 3 || m.cached != 1 {
		t.Errorf("findings=%d cached=%d", m.findings, m.cached)
	}

	view := m.View()
	for _, want := range []string{"checking 2/2", "a.html (3)", "3 diagnostics, 1 cached"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestProgressModelDoneQuits(t *testing.T) {
	m := NewProgressModel("checking", nil)
	m, cmd := m.Update(doneMsg{})
	if !m.(*progressModel).done {
		t.Fatal("model not marked done")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if m.View() != "" {
		t.Error("empty model must render nothing")
	}
}

func TestProgressModelWindowsRows(t *testing.T) {
	var events []driver.Event
	for i := range 20 {
		events = append(events, driver.Event{File: fmt.Sprintf("doc%02d.html", i), Status: driver.StatusQueued})
	}
	events = append(events, driver.Event{File: "doc07.html", Stage: driver.StageScan, Status: driver.StatusWorking})
	m := feed(t, NewProgressModel("checking", nil), events...)

	rows := m.visibleItems()
	if len(rows) != 1 || rows[0].path != "doc07.html" {
		t.Fatalf("expected only the working row, got %+v", rows)
	}
	if !strings.Contains(m.View(), "... 19 more") {
		t.Errorf("view lacks hidden count:\n%s", m.View())
	}
}

func TestTruncate(t *testing.T) {
	got := truncate("templates/welcome.html", 12)
	if !strings.HasSuffix(got, "...") || len(got) > 12 {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("short", 12); got != "short" {
		t.Errorf("truncate = %q", got)
	}
}

func TestStateOf(t *testing.T) {
	tests := []struct {
		ev   driver.Event
		want rowState
	}{
		{driver.Event{Status: driver.StatusQueued}, rowQueued},
		{driver.Event{Stage: driver.StageLoad, Status: driver.StatusWorking}, rowLoading},
		{driver.Event{Stage: driver.StageStructural, Status: driver.StatusWorking}, rowLinting},
		{driver.Event{Stage: driver.StageScan, Status: driver.StatusDone}, rowDone},
		{driver.Event{Status: driver.StatusError}, rowFailed},
	}
	for _, tt := range tests {
		if got := stateOf(tt.ev); got != tt.want {
			t.Errorf("stateOf(%+v) = %q, want %q", tt.ev, got, tt.want)
		}
	}
}
