package tui_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/waabox/jobwatch/internal/domain"
	"github.com/waabox/jobwatch/internal/tui"
)

func TestMessageListModel_NavigatesDown(t *testing.T) {
	m := tui.NewMessageListModel(sampleBatch().Messages)
	m = m.MoveDown()
	if m.SelectedIndex() != 1 {
		t.Errorf("expected selected index 1 after moving down, got %d", m.SelectedIndex())
	}
	if m.SelectedMessage().JobID != "4" {
		t.Errorf("expected job '4', got '%s'", m.SelectedMessage().JobID)
	}
}

func TestMessageListModel_DoesNotGoAboveZero(t *testing.T) {
	m := tui.NewMessageListModel(sampleBatch().Messages)
	m = m.MoveUp()
	if m.SelectedIndex() != 0 {
		t.Errorf("expected selected index 0, got %d", m.SelectedIndex())
	}
}

func TestMessageListModel_UpdateKeepsSelectedJob(t *testing.T) {
	msgs := sampleBatch().Messages
	m := tui.NewMessageListModel(msgs).MoveDown().MoveDown()

	m = m.UpdateMessages(msgs[1:])
	if m.SelectedMessage().JobID != "5" {
		t.Errorf("expected selection to stay on job '5', got '%s'", m.SelectedMessage().JobID)
	}
}

func TestMessageListModel_EmptyShowsMessage(t *testing.T) {
	m := tui.NewMessageListModel(nil)
	if m.View() == "" {
		t.Error("expected non-empty view for empty report")
	}
	if m.SelectedMessage().JobID != "" {
		t.Error("expected zero-value message for empty report")
	}
}

func TestJobListModel_RendersDurations(t *testing.T) {
	b := sampleBatch()
	view := tui.NewJobListModel(b.Jobs, b.AnalyzedAt).View()

	for _, want := range []string{"0:07:00", "0:11:00", "12:05:00"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view, got:\n%s", want, view)
		}
	}
}

func TestJobListModel_SelectUnknownKeepsCursor(t *testing.T) {
	b := sampleBatch()
	m := tui.NewJobListModel(b.Jobs, b.AnalyzedAt).MoveDown().Select("missing")
	if m.Cursor() != 1 {
		t.Errorf("expected cursor 1, got %d", m.Cursor())
	}
}

func TestRejectedListModel_RendersReason(t *testing.T) {
	m := tui.NewRejectedListModel([]*domain.ParseError{
		{LineNo: 9, Line: "a,b", Err: domain.ErrFieldCount},
	})
	view := m.View()
	if !strings.Contains(view, "a,b") || !strings.Contains(view, "incorrect number of fields") {
		t.Errorf("unexpected view:\n%s", view)
	}
	if m.MoveDown().Cursor() != 0 {
		t.Error("expected cursor to stay on the only line")
	}
}

func TestMessageListModel_TruncatesMultiByteDescriptions(t *testing.T) {
	m := tui.NewMessageListModel([]domain.ReportMessage{{
		Severity:    domain.SeverityError,
		JobID:       "ジョブ番号一二三",
		Description: strings.Repeat("é", 10) + strings.Repeat("日本語", 10),
	}})

	view := m.View()
	if !utf8.ValidString(view) {
		t.Fatalf("expected valid UTF-8, got:\n%q", view)
	}
	if !strings.Contains(view, "…") {
		t.Errorf("expected truncated description, got:\n%s", view)
	}
}
