package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/waabox/jobwatch/internal/domain"
	"github.com/waabox/jobwatch/internal/monitor"
)

// BatchLoadedMsg is sent when a batch has been analysed by the source.
// It is exported so that tests can inject it directly into AppModel.Update.
type BatchLoadedMsg struct {
	Batch domain.Batch
	Err   error
}

// tickMsg is sent by the auto-refresh ticker.
type tickMsg struct{}

// viewState indicates the current panel.
type viewState int

const (
	viewReport viewState = iota
	viewJobs
	viewRejected
)

const separator = "────────────────────────────────────────────────────────────\n"

// AppModel is the root Bubbletea model for jobwatch.
type AppModel struct {
	source   domain.BatchSource
	interval time.Duration
	now      func() time.Time
	// Navigation
	view viewState
	// Panels
	batch    domain.Batch
	messages MessageListModel
	jobs     JobListModel
	rejected RejectedListModel
	// General state
	loading bool
	err     error
	width   int
	height  int
}

// NewAppModel creates the root application model. The batch is re-analysed
// every interval so the elapsed time of running jobs keeps growing.
func NewAppModel(source domain.BatchSource, interval time.Duration) AppModel {
	return AppModel{
		source:   source,
		interval: interval,
		now:      time.Now,
		messages: NewMessageListModel(nil),
		jobs:     NewJobListModel(nil, time.Time{}),
		rejected: NewRejectedListModel(nil),
		loading:  true,
	}
}

// WithClock returns a copy of the model that reads the current time from now.
func (m AppModel) WithClock(now func() time.Time) AppModel {
	m.now = now
	return m
}

// Init triggers the initial analysis.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.loadBatch(), tickEvery(m.interval))
}

func (m AppModel) loadBatch() tea.Cmd {
	return func() tea.Msg {
		batch, err := m.source.Load(context.Background(), m.now())
		return BatchLoadedMsg{Batch: batch, Err: err}
	}
}

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return tickMsg{}
	})
}

// Update handles all incoming messages and key events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case BatchLoadedMsg:
		m.loading = false
		if msg.Err != nil && !errors.Is(msg.Err, monitor.ErrNoRecords) {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.batch = msg.Batch
		m.messages = m.messages.UpdateMessages(msg.Batch.Messages)
		selectedJob := ""
		if jobs := m.jobs.Jobs(); len(jobs) > 0 {
			selectedJob = jobs[m.jobs.Cursor()].ID
		}
		m.jobs = NewJobListModel(msg.Batch.Jobs, msg.Batch.AnalyzedAt).Select(selectedJob)
		m.rejected = NewRejectedListModel(msg.Batch.Rejected)

	case tickMsg:
		return m, tea.Batch(m.loadBatch(), tickEvery(m.interval))

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "ctrl+r":
			m.loading = true
			return m, m.loadBatch()
		case "tab":
			m.view = (m.view + 1) % 3
			return m, nil
		case "shift+tab":
			m.view = (m.view + 2) % 3
			return m, nil
		}
		switch m.view {
		case viewReport:
			return m.updateReport(msg)
		case viewJobs:
			return m.updateJobs(msg)
		case viewRejected:
			return m.updateRejected(msg)
		}
	}
	return m, nil
}

func (m AppModel) updateReport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "down":
		m.messages = m.messages.MoveDown()
	case "up":
		m.messages = m.messages.MoveUp()
	case "enter":
		if len(m.messages.Messages()) > 0 {
			m.jobs = m.jobs.Select(m.messages.SelectedMessage().JobID)
			m.view = viewJobs
		}
	}
	return m, nil
}

func (m AppModel) updateJobs(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "down":
		m.jobs = m.jobs.MoveDown()
	case "up":
		m.jobs = m.jobs.MoveUp()
	case "esc":
		m.view = viewReport
	}
	return m, nil
}

func (m AppModel) updateRejected(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "down":
		m.rejected = m.rejected.MoveDown()
	case "up":
		m.rejected = m.rejected.MoveUp()
	case "esc":
		m.view = viewReport
	}
	return m, nil
}

// View renders the full TUI.
func (m AppModel) View() string {
	if m.loading {
		return "Analysing job log...\n"
	}
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress 'ctrl+r' to retry or 'q' to quit.\n", m.err)
	}

	counts := m.batch.Counts()
	header := fmt.Sprintf(" jobwatch | %s | analysed %s | %s  %s\n",
		m.batch.Source,
		m.batch.AnalyzedAt.Format("15:04:05"),
		errorStyle.Render(fmt.Sprintf("%d error(s)", counts[domain.SeverityError])),
		warningStyle.Render(fmt.Sprintf("%d warning(s)", counts[domain.SeverityWarning])),
	)

	switch m.view {
	case viewJobs:
		return m.renderJobsView(header)
	case viewRejected:
		return m.renderRejectedView(header)
	default:
		return m.renderReportView(header)
	}
}

func (m AppModel) renderReportView(header string) string {
	title := titleStyle.Render(" Report") + "\n"
	listView := m.messages.View()
	statusBar := " " + m.messages.SelectedMessage().Text + "\n"
	footer := " ↑/↓: navigate   enter: job   tab: next panel   ctrl+r: refresh   q: quit\n"
	return header + separator + title + listView + "\n" + separator + statusBar + separator + footer
}

func (m AppModel) renderJobsView(header string) string {
	title := titleStyle.Render(fmt.Sprintf(" Jobs (%d)", len(m.jobs.Jobs()))) + "\n"
	columns := dimStyle.Render(fmt.Sprintf("    %-9s %-25s %8s %8s %8s", "ID", "DESCRIPTION", "START", "END", "DURATION")) + "\n"
	footer := " ↑/↓: navigate   esc: back   tab: next panel   ctrl+r: refresh   q: quit\n"
	return header + separator + title + columns + m.jobs.View() + "\n" + separator + footer
}

func (m AppModel) renderRejectedView(header string) string {
	title := titleStyle.Render(fmt.Sprintf(" Rejected lines (%d of %d)", len(m.batch.Rejected), m.batch.LinesRead)) + "\n"
	footer := " ↑/↓: navigate   esc: back   tab: next panel   q: quit\n"
	return header + separator + title + m.rejected.View() + "\n" + separator + footer
}

// Run starts the Bubbletea program. Exits on error.
func Run(source domain.BatchSource, interval time.Duration) {
	p := tea.NewProgram(NewAppModel(source, interval), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "jobwatch error: %v\n", err)
		os.Exit(1)
	}
}
