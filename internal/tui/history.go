package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const historyTableWidth = 64

func historyColumns() []table.Column {
	return []table.Column{
		{Title: "Word", Width: 16},
		{Title: "Attempt", Width: 16},
		{Title: "Result", Width: 8},
		{Title: "When", Width: 19},
	}
}

func (m *Model) initHistoryTable() {
	m.history = table.New(
		table.WithColumns(historyColumns()),
		table.WithHeight(10),
	)
	m.history.SetWidth(historyTableWidth)
	m.history.SetStyles(m.tableStyles())
}

func (m *Model) tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(m.theme.border).
		Foreground(m.theme.tableHeader).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(m.theme.tableSelected).
		Bold(true)
	return styles
}

func (m *Model) refreshHistory() {
	entries := m.game.View().History
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		result := "wrong"
		if e.IsCorrect {
			result = "correct"
		}
		rows = append(rows, table.Row{
			e.Word,
			e.Attempt,
			result,
			e.Time().Local().Format(time.DateTime),
		})
	}
	m.history.SetRows(rows)
	if m.history.Cursor() >= len(rows) {
		m.history.SetCursor(maxInt(0, len(rows)-1))
	}
}

func (m *Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		row := m.history.SelectedRow()
		if row == nil {
			return m, nil
		}
		if !m.game.Practice(m.ctx, row[0]) {
			m.status = "That word is not in the current list."
			return m, nil
		}
		return m, m.setScreen(screenPractice)
	case "c":
		if len(m.history.Rows()) > 0 {
			m.confirm = confirmClearHistory
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.history, cmd = m.history.Update(msg)
	return m, cmd
}

func (m *Model) viewHistory() string {
	title := m.theme.accent.Render("Practice History")
	if len(m.history.Rows()) == 0 {
		return strings.Join([]string{title, "", m.theme.muted.Render("No attempts yet.")}, "\n")
	}
	return strings.Join([]string{title, "", m.history.View()}, "\n")
}
