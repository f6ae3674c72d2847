package tui

import (
	"bytes"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuispell/internal/identity"
	"github.com/verte-zerg/tuispell/internal/stats"
)

var periods = []identity.Period{identity.PeriodDaily, identity.PeriodWeekly, identity.PeriodAllTime}

func (m *Model) updateLeaderboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		m.period = stepPeriod(m.period, -1)
	case "right", "l":
		m.period = stepPeriod(m.period, 1)
	case "d":
		m.period = identity.PeriodDaily
	case "w":
		m.period = identity.PeriodWeekly
	case "a":
		m.period = identity.PeriodAllTime
	}
	return m, nil
}

func stepPeriod(p identity.Period, delta int) identity.Period {
	idx := len(periods) - 1
	for i, candidate := range periods {
		if candidate == p {
			idx = i
			break
		}
	}
	return periods[(idx+delta+len(periods))%len(periods)]
}

func (m *Model) viewLeaderboard() string {
	var buf bytes.Buffer
	if err := stats.RenderLeaderboard(&buf, m.period, m.game.Leaderboard(m.period)); err != nil {
		m.log.Warn("render leaderboard", "err", err)
		return m.theme.errorText.Render(err.Error())
	}
	out := strings.TrimRight(buf.String(), "\n")
	title, rest, _ := strings.Cut(out, "\n")
	return m.theme.accent.Render(title) + "\n\n" + m.theme.text.Render(rest)
}
