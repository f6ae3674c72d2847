package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuispell/internal/session"
)

func (m *Model) updatePractice(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		text := m.answer.Value()
		if strings.TrimSpace(text) == "" {
			return m, nil
		}
		out := m.game.Submit(m.ctx, text)
		if !out.Accepted {
			return m, nil
		}
		m.answer.Reset()
		m.status = ""
		if out.Follow != nil {
			return m, scheduleTransition(*out.Follow)
		}
		return m, nil
	case tea.KeyCtrlN:
		m.answer.Reset()
		m.peek = false
		return m, scheduleTransition(m.game.Skip(m.ctx))
	case tea.KeyEsc:
		m.game.Dismiss(m.ctx)
		return m, nil
	case tea.KeyCtrlR:
		return m, m.speak()
	case tea.KeyCtrlO:
		m.peek = !m.peek
		return m, nil
	}
	var cmd tea.Cmd
	m.answer, cmd = m.answer.Update(msg)
	return m, cmd
}

// speak pronounces the current word in the background. Requests made while
// a word is playing are dropped.
func (m *Model) speak() tea.Cmd {
	if m.playing {
		return nil
	}
	m.playing = true
	ctx := m.ctx
	speaker := m.speaker
	word := m.game.Word()
	opts := m.game.SpeechOptions()
	return func() tea.Msg {
		return speechDoneMsg{err: speaker.Speak(ctx, word, opts)}
	}
}

func (m *Model) viewPractice() string {
	v := m.game.View()
	st := v.Session
	lines := []string{m.theme.accent.Render("Spell the word you hear")}

	hint := maskWord(st.Word)
	if m.peek {
		hint = st.Word
	}
	lines = append(lines, "", m.theme.text.Render(hint))
	if m.playing {
		lines = append(lines, m.theme.muted.Render("Playing..."))
	}
	lines = append(lines, "", m.answer.View())

	if st.FeedbackVisible && st.CurrentAttempt != nil {
		lines = append(lines, "")
		switch st.Phase {
		case session.PhaseCorrect:
			lines = append(lines, m.theme.correct.Render("Correct! Well done."))
		case session.PhaseIncorrect:
			width := 0
			if m.width > 0 {
				width = maxInt(10, int(float64(m.width)*0.7))
			}
			diff := buildStyledRunes([]rune(st.Word), []rune(*st.CurrentAttempt), m.theme)
			lines = append(lines,
				m.theme.incorrect.Render("Not quite."),
				"You typed:  "+wrapStyledRunes(diff, width),
				"Correct:    "+m.theme.text.Render(st.Word),
				m.theme.muted.Render("esc to try again · ctrl+n for the next word"),
			)
		}
	} else if st.Transitioning {
		lines = append(lines, "", m.theme.muted.Render("Next word..."))
	}
	lines = append(lines, "", m.theme.muted.Render(fmt.Sprintf("Word %d of %d", st.WordIndex+1, len(m.game.Words()))))
	return strings.Join(lines, "\n")
}
