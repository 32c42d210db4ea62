package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"strcheck/internal/driver"
)

// fileState is where one file is in the pipeline, as shown in the list.
type fileState uint8

const (
	stateQueued fileState = iota
	stateLoading
	stateParsing
	stateBinding
	stateLinting
	stateDone
	stateCached
	stateFailed
)

// stateInfo: label, share of the bar a file in this state contributes, colour.
var stateInfo = [...]struct {
	label  string
	weight float64
	color  lipgloss.Color
}{
	stateQueued:  {"queued", 0, "7"},
	stateLoading: {"loading", 0.05, "6"},
	stateParsing: {"parsing", 0.2, "6"},
	stateBinding: {"binding", 0.4, "6"},
	stateLinting: {"linting", 0.6, "6"},
	stateDone:    {"done", 1, "2"},
	stateCached:  {"cached", 1, "2"},
	stateFailed:  {"error", 1, "1"},
}

func (s fileState) String() string { return stateInfo[s].label }

func (s fileState) settled() bool { return s >= stateDone }

var workingStates = map[driver.Stage]fileState{
	driver.StageLoad:  stateLoading,
	driver.StageParse: stateParsing,
	driver.StageBind:  stateBinding,
	driver.StageLint:  stateLinting,
}

// stateOf maps a driver event to a list state; ok is false for events that
// do not change it.
func stateOf(ev driver.Event) (fileState, bool) {
	switch ev.Status {
	case driver.StatusQueued:
		return stateQueued, true
	case driver.StatusWorking:
		st, ok := workingStates[ev.Stage]
		return st, ok
	case driver.StatusDone:
		if ev.Cached {
			return stateCached, true
		}
		return stateDone, true
	case driver.StatusError:
		return stateFailed, true
	}
	return 0, false
}

type fileRow struct {
	path     string
	state    fileState
	findings int
}

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []fileRow
	byPath  map[string]int
	// phase is the pipeline-wide stage from events without a file.
	phase    fileState
	width    int
	findings int
	cached   int
	done     bool
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders check progress
// for files until events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		rows:    make([]fileRow, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	for i, f := range files {
		m.rows[i] = fileRow{path: f}
		m.byPath[f] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

// next waits for one driver event.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.applyEvent(driver.Event(msg)), m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	st, ok := stateOf(ev)
	if ev.File == "" {
		if ok && !st.settled() {
			m.phase = st
		}
		return nil
	}
	i, known := m.byPath[ev.File]
	if !known || !ok {
		return nil
	}
	row := &m.rows[i]
	row.state = st
	if st == stateDone || st == stateCached {
		row.findings = ev.Findings
		m.findings += ev.Findings
		if st == stateCached {
			m.cached++
		}
	}

	var sum float64
	for _, r := range m.rows {
		sum += stateInfo[r.state].weight
	}
	return m.bar.SetPercent(sum / float64(len(m.rows)))
}

// maxListed bounds the file list; larger checks show only files in flight
// and failed ones.
const maxListed = 20

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	findingsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	var b strings.Builder

	header := m.title
	if m.phase != stateQueued {
		header += " (" + m.phase.String() + ")"
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}
	b.WriteString(titleStyle.Render(header) + "\n\n")

	nameWidth := max(m.width-24, 20)
	for _, r := range m.rows {
		if len(m.rows) > maxListed && r.state != stateFailed && (r.state == stateQueued || r.state.settled()) {
			continue
		}
		label := lipgloss.NewStyle().Foreground(stateInfo[r.state].color).Render(fmt.Sprintf("%12s", r.state))
		b.WriteString("  " + label + " " + truncate(r.path, nameWidth))
		if r.findings > 0 {
			b.WriteString(findingsStyle.Render(fmt.Sprintf("  %d", r.findings)))
		}
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "\n  %d files, %d findings, %d from cache\n", len(m.rows), m.findings, m.cached)
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	return b.String()
}

// truncate cuts value to width display cells, marking the cut with "...".
func truncate(value string, width int) string {
	switch {
	case width <= 0 || runewidth.StringWidth(value) <= width:
		return value
	case width <= 3:
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
