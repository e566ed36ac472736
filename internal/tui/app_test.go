package tui_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/waabox/jobwatch/internal/domain"
	"github.com/waabox/jobwatch/internal/monitor"
	"github.com/waabox/jobwatch/internal/tui"
)

var analysedAt = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

// fakeSource satisfies domain.BatchSource for TUI tests.
type fakeSource struct {
	batch domain.Batch
	err   error
	seen  []time.Time
}

func (f *fakeSource) Load(_ context.Context, now time.Time) (domain.Batch, error) {
	f.seen = append(f.seen, now)
	return f.batch, f.err
}

func sampleBatch() domain.Batch {
	s2, e2 := domain.Clock{Hour: 10}, domain.Clock{Hour: 10, Minute: 7}
	s4 := domain.Clock{Hour: 11, Minute: 49}
	e5 := domain.Clock{Hour: 12, Minute: 5}
	return domain.Batch{
		Source:     "logs.log",
		AnalyzedAt: analysedAt,
		LinesRead:  5,
		Jobs: []domain.Job{
			{ID: "2", Description: "job2", Start: &s2, End: &e2},
			{ID: "4", Description: "job4", Start: &s4},
			{ID: "5", Description: "job5", End: &e5},
		},
		Messages: []domain.ReportMessage{
			{Severity: domain.SeverityWarning, JobID: "2", Description: "job2", FormattedDuration: "0:07:00",
				Text: "Job 2 (job2) completed on low performance above threshold of 5 min: 0:07:00"},
			{Severity: domain.SeverityError, JobID: "4", Description: "job4", FormattedDuration: "0:11:00",
				Text: "Job 4 (job4) is still running and exceeded 10 minutes: 0:11:00"},
			{Severity: domain.SeverityError, JobID: "5", Description: "job5",
				Text: "Job 5 (job5) has an end time (12:05:00) without a start time"},
		},
		Rejected: []*domain.ParseError{
			{LineNo: 3, Line: "27:80:99,x,START,1", Err: domain.ErrTimestamp},
		},
	}
}

func loaded(t *testing.T) tui.AppModel {
	t.Helper()
	m := tui.NewAppModel(&fakeSource{}, time.Minute)
	updated, _ := m.Update(tui.BatchLoadedMsg{Batch: sampleBatch()})
	return updated.(tui.AppModel)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m tui.AppModel, keys ...string) tui.AppModel {
	for _, k := range keys {
		updated, _ := m.Update(key(k))
		m = updated.(tui.AppModel)
	}
	return m
}

func TestApp_ShowsLoadingUntilBatchArrives(t *testing.T) {
	m := tui.NewAppModel(&fakeSource{}, time.Minute)
	if !strings.Contains(m.View(), "Analysing") {
		t.Errorf("expected loading view, got:\n%s", m.View())
	}
}

func TestApp_ReportViewListsMessages(t *testing.T) {
	view := loaded(t).View()

	for _, want := range []string{"logs.log", "2 error(s)", "1 warning(s)", "job2", "job4", "job5", "0:07:00"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view, got:\n%s", want, view)
		}
	}
}

func TestApp_EnterOpensSelectedJob(t *testing.T) {
	m := press(loaded(t), "down", "enter")
	view := m.View()

	if !strings.Contains(view, "Jobs (3)") {
		t.Fatalf("expected jobs panel, got:\n%s", view)
	}
	if !strings.Contains(view, "> ") || !strings.Contains(view, "11:49:00") {
		t.Errorf("expected running job with start time, got:\n%s", view)
	}
	for _, line := range strings.Split(view, "\n") {
		if strings.HasPrefix(line, "> ") && !strings.Contains(line, "job4") {
			t.Errorf("expected cursor on job4, got line: %s", line)
		}
	}
}

func TestApp_TabCyclesToRejectedLines(t *testing.T) {
	m := press(loaded(t), "tab", "tab")
	view := m.View()

	if !strings.Contains(view, "Rejected lines (1 of 5)") {
		t.Errorf("expected rejected panel, got:\n%s", view)
	}
	if !strings.Contains(view, "27:80:99,x,START,1") {
		t.Errorf("expected rejected line content, got:\n%s", view)
	}

	m = press(m, "tab")
	if !strings.Contains(m.View(), "Report") {
		t.Errorf("expected tab to wrap back to report, got:\n%s", m.View())
	}
}

func TestApp_EscReturnsToReport(t *testing.T) {
	m := press(loaded(t), "enter", "esc")
	if strings.Contains(m.View(), "Jobs (3)") {
		t.Errorf("expected esc to leave the jobs panel, got:\n%s", m.View())
	}
}

func TestApp_ShowsSourceError(t *testing.T) {
	m := tui.NewAppModel(&fakeSource{}, time.Minute)
	updated, _ := m.Update(tui.BatchLoadedMsg{Err: errors.New("opening log file: no such file")})
	view := updated.(tui.AppModel).View()

	if !strings.Contains(view, "no such file") {
		t.Errorf("expected error in view, got:\n%s", view)
	}
}

func TestApp_NoRecordsIsNotAnError(t *testing.T) {
	m := tui.NewAppModel(&fakeSource{}, time.Minute)
	updated, _ := m.Update(tui.BatchLoadedMsg{
		Batch: domain.Batch{Source: "empty.log", AnalyzedAt: analysedAt},
		Err:   monitor.ErrNoRecords,
	})
	view := updated.(tui.AppModel).View()

	if strings.Contains(view, "Error:") {
		t.Errorf("expected no error view for an empty log, got:\n%s", view)
	}
	if !strings.Contains(view, "No job exceeded") {
		t.Errorf("expected empty report, got:\n%s", view)
	}
}

func TestApp_RefreshUsesInjectedClock(t *testing.T) {
	src := &fakeSource{batch: sampleBatch()}
	m := tui.NewAppModel(src, time.Minute).WithClock(func() time.Time { return analysedAt })

	_, cmd := m.Update(key("ctrl+r"))
	if cmd == nil {
		t.Fatal("expected a reload command")
	}
	msg, ok := cmd().(tui.BatchLoadedMsg)
	if !ok {
		t.Fatalf("expected BatchLoadedMsg, got %T", msg)
	}
	if len(src.seen) != 1 || !src.seen[0].Equal(analysedAt) {
		t.Errorf("expected source to be loaded at %v, got %v", analysedAt, src.seen)
	}
}

func TestApp_QuitKey(t *testing.T) {
	_, cmd := loaded(t).Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
