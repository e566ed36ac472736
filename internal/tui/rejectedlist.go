package tui

import (
	"fmt"
	"strings"

	"github.com/waabox/jobwatch/internal/domain"
)

// RejectedListModel is an immutable model for the rejected lines panel.
type RejectedListModel struct {
	rejected []*domain.ParseError
	cursor   int
}

// NewRejectedListModel creates a rejected lines model.
func NewRejectedListModel(rejected []*domain.ParseError) RejectedListModel {
	return RejectedListModel{rejected: rejected, cursor: 0}
}

// MoveDown returns a new model with the cursor moved down by one.
func (m RejectedListModel) MoveDown() RejectedListModel {
	if m.cursor < len(m.rejected)-1 {
		m.cursor++
	}
	return m
}

// MoveUp returns a new model with the cursor moved up by one.
func (m RejectedListModel) MoveUp() RejectedListModel {
	if m.cursor > 0 {
		m.cursor--
	}
	return m
}

// Cursor returns the current cursor position.
func (m RejectedListModel) Cursor() int {
	return m.cursor
}

// View renders the rejected lines with the reason for each.
func (m RejectedListModel) View() string {
	if len(m.rejected) == 0 {
		return "No rejected lines."
	}
	var sb strings.Builder
	for i, r := range m.rejected {
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}
		sb.WriteString(fmt.Sprintf("%s%5d  %-40s %s\n",
			prefix,
			r.LineNo,
			truncate(r.Line, 40),
			dimStyle.Render(r.Err.Error()),
		))
	}
	return sb.String()
}
