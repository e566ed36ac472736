package tui

import (
	"fmt"
	"strings"

	"github.com/waabox/jobwatch/internal/domain"
)

// MessageListModel is an immutable Bubbletea-compatible model for the report panel.
type MessageListModel struct {
	messages []domain.ReportMessage
	cursor   int
}

// NewMessageListModel creates a report list model with the given messages.
func NewMessageListModel(messages []domain.ReportMessage) MessageListModel {
	return MessageListModel{messages: messages, cursor: 0}
}

// UpdateMessages replaces the messages, keeping the cursor on the same job if it is still reported.
func (m MessageListModel) UpdateMessages(messages []domain.ReportMessage) MessageListModel {
	selected := m.SelectedMessage().JobID
	m.messages = messages
	m.cursor = 0
	for i, msg := range messages {
		if msg.JobID == selected {
			m.cursor = i
			break
		}
	}
	return m
}

// MoveDown returns a new model with the cursor moved down by one.
func (m MessageListModel) MoveDown() MessageListModel {
	if m.cursor < len(m.messages)-1 {
		m.cursor++
	}
	return m
}

// MoveUp returns a new model with the cursor moved up by one.
func (m MessageListModel) MoveUp() MessageListModel {
	if m.cursor > 0 {
		m.cursor--
	}
	return m
}

// SelectedIndex returns the current cursor position.
func (m MessageListModel) SelectedIndex() int {
	return m.cursor
}

// SelectedMessage returns the currently highlighted message.
// Returns zero-value ReportMessage if the list is empty.
func (m MessageListModel) SelectedMessage() domain.ReportMessage {
	if len(m.messages) == 0 {
		return domain.ReportMessage{}
	}
	return m.messages[m.cursor]
}

// Messages returns the full message slice.
func (m MessageListModel) Messages() []domain.ReportMessage {
	return m.messages
}

// View renders the report list as a string.
func (m MessageListModel) View() string {
	if len(m.messages) == 0 {
		return okStyle.Render("  No job exceeded its thresholds.") + "\n"
	}
	var sb strings.Builder
	for i, msg := range m.messages {
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}
		duration := msg.FormattedDuration
		if duration == "" {
			duration = "--"
		}
		sb.WriteString(fmt.Sprintf("%s%s #%-8s %-25s %8s\n",
			prefix,
			severityLabel(msg.Severity),
			truncate(msg.JobID, 8),
			truncate(msg.Description, 25),
			duration,
		))
	}
	return sb.String()
}
