package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"mergelint/internal/driver"
)

// maxRows bounds the number of document rows shown at once.
const maxRows = 12

// rowState is what a document row currently displays.
type rowState uint8

const (
	rowPending rowState = iota
	rowQueued
	rowLoading
	rowScanning
	rowLinting
	rowDone
	rowFailed
)

var rowLabels = [...]string{
	rowPending:  "",
	rowQueued:   "queued",
	rowLoading:  "loading",
	rowScanning: "scanning",
	rowLinting:  "linting",
	rowDone:     "done",
	rowFailed:   "error",
}

// weight is the share of a document's work that is behind it in this state.
var rowWeights = [...]float64{
	rowScanning: 0.3,
	rowLinting:  0.6,
	rowDone:     1,
	rowFailed:   1,
}

func (s rowState) String() string { return rowLabels[s] }

func (s rowState) finished() bool { return s == rowDone || s == rowFailed }

func (s rowState) active() bool { return s >= rowLoading && s <= rowLinting }

func (s rowState) style() lipgloss.Style {
	color := "7"
	switch {
	case s == rowDone:
		color = "2"
	case s == rowFailed:
		color = "1"
	case s.active():
		color = "6"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// stateOf maps a driver event to a row state; rowPending means "no change".
func stateOf(ev driver.Event) rowState {
	switch ev.Status {
	case driver.StatusQueued:
		return rowQueued
	case driver.StatusDone:
		return rowDone
	case driver.StatusError:
		return rowFailed
	case driver.StatusWorking:
		switch ev.Stage {
		case driver.StageLoad:
			return rowLoading
		case driver.StageScan:
			return rowScanning
		case driver.StageStructural:
			return rowLinting
		}
	}
	return rowPending
}

type row struct {
	path     string
	state    rowState
	findings int
}

type progressModel struct {
	title    string
	events   <-chan driver.Event
	spinner  spinner.Model
	bar      progress.Model
	items    []row
	byPath   map[string]int
	findings int
	cached   int
	width    int
	done     bool
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders check progress.
// Rows appear with the first event of a document; the model quits when
// events is closed.
func NewProgressModel(title string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = rowLoading.style()

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		byPath:  make(map[string]int),
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.Event(msg)), m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case progress.FrameMsg:
		updated, cmd := m.bar.Update(msg)
		m.bar = updated.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	var b strings.Builder

	prefix := m.spinner.View()
	if m.done {
		prefix = "done:"
	}
	header := fmt.Sprintf("%s %s %d/%d", prefix, m.title, m.finished(), len(m.items))
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(header))
	b.WriteString("\n\n")

	nameWidth := max(m.width-24, 20)
	rows := m.visibleItems()
	for _, r := range rows {
		status := r.state.style().Render(fmt.Sprintf("%12s", r.state))
		fmt.Fprintf(&b, "  %s %s", status, truncate(r.path, nameWidth))
		if r.findings > 0 {
			fmt.Fprintf(&b, " (%d)", r.findings)
		}
		b.WriteByte('\n')
	}
	if hidden := len(m.items) - len(rows); hidden > 0 {
		fmt.Fprintf(&b, "  ... %d more\n", hidden)
	}

	b.WriteByte('\n')
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	fmt.Fprintf(&b, "\n%d diagnostics, %d cached\n", m.findings, m.cached)
	return b.String()
}

// visibleItems shows documents in progress first, then the most recently
// finished ones. Queued documents are only counted.
func (m *progressModel) visibleItems() []row {
	if len(m.items) <= maxRows {
		return m.items
	}
	out := make([]row, 0, maxRows)
	for _, r := range m.items {
		if len(out) == maxRows {
			return out
		}
		if r.state.active() {
			out = append(out, r)
		}
	}
	for i := len(m.items) - 1; i >= 0 && len(out) < maxRows; i-- {
		if m.items[i].state.finished() {
			out = append(out, m.items[i])
		}
	}
	return out
}

func (m *progressModel) finished() int {
	n := 0
	for _, r := range m.items {
		if r.state.finished() {
			n++
		}
	}
	return n
}

func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) apply(ev driver.Event) tea.Cmd {
	if ev.File == "" {
		return nil
	}
	i, ok := m.byPath[ev.File]
	if !ok {
		i = len(m.items)
		m.byPath[ev.File] = i
		m.items = append(m.items, row{path: ev.File})
	}
	r := &m.items[i]
	if st := stateOf(ev); st != rowPending {
		r.state = st
	}
	if ev.Status == driver.StatusDone {
		r.findings = ev.Findings
		m.findings += ev.Findings
		if ev.Cached {
			m.cached++
		}
	}

	var total float64
	for _, r := range m.items {
		total += rowWeights[r.state]
	}
	return m.bar.SetPercent(total / float64(len(m.items)))
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
