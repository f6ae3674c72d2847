package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuispell/internal/settings"
)

const (
	rowDarkMode = iota
	rowVolume
	rowRate
	rowReset
	rowCount
)

const volumeStep = 5

func (m *Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.settingsRow = (m.settingsRow + rowCount - 1) % rowCount
		return m, nil
	case "down", "j":
		m.settingsRow = (m.settingsRow + 1) % rowCount
		return m, nil
	case "left", "h":
		m.changeSetting(-1)
	case "right", "l", "enter", " ":
		if m.settingsRow == rowReset {
			m.confirm = confirmReset
			return m, nil
		}
		m.changeSetting(1)
	}
	return m, nil
}

func (m *Model) changeSetting(delta int) {
	s := m.game.Settings()
	switch m.settingsRow {
	case rowDarkMode:
		s.DarkMode = !s.DarkMode
	case rowVolume:
		s.Volume = settings.ClampVolume(s.Volume + delta*volumeStep)
	case rowRate:
		if delta < 0 {
			s.SpeechRate = settings.PrevRate(s.SpeechRate)
		} else {
			s.SpeechRate = settings.NextRate(s.SpeechRate)
		}
	default:
		return
	}
	s = m.game.UpdateSettings(m.ctx, s)
	if s.DarkMode != m.theme.dark {
		m.theme = newTheme(s.DarkMode)
		m.history.SetStyles(m.tableStyles())
	}
}

func (m *Model) viewSettings() string {
	s := m.game.Settings()
	dark := "off"
	if s.DarkMode {
		dark = "on"
	}
	rows := []string{
		fmt.Sprintf("Dark mode     %s", dark),
		fmt.Sprintf("Volume        %s %d%%", volumeBar(s.Volume), s.Volume),
		fmt.Sprintf("Speech rate   %s (%sx)", settings.RateLabel(s.SpeechRate), s.SpeechRate),
		"Reset all progress",
	}
	lines := []string{m.theme.accent.Render("Settings"), ""}
	for i, row := range rows {
		if i == m.settingsRow {
			lines = append(lines, m.theme.text.Render("> "+row))
		} else {
			lines = append(lines, m.theme.muted.Render("  "+row))
		}
	}
	return m.theme.card.Render(strings.Join(lines, "\n"))
}

func volumeBar(volume int) string {
	filled := settings.ClampVolume(volume) / 10
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", 10-filled) + "]"
}
