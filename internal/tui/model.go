// Package tui provides the Bubble Tea spelling practice interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuispell/internal/game"
	"github.com/verte-zerg/tuispell/internal/identity"
	"github.com/verte-zerg/tuispell/internal/session"
	"github.com/verte-zerg/tuispell/internal/speech"
)

type screen int

const (
	screenLogin screen = iota
	screenSignup
	screenPractice
	screenHistory
	screenSettings
	screenLeaderboard
)

func (s screen) String() string {
	switch s {
	case screenLogin:
		return "Login"
	case screenSignup:
		return "Sign Up"
	case screenPractice:
		return "Practice"
	case screenHistory:
		return "History"
	case screenSettings:
		return "Settings"
	case screenLeaderboard:
		return "Leaderboard"
	default:
		return "?"
	}
}

var (
	guestScreens  = []screen{screenLogin, screenSignup}
	playerScreens = []screen{screenPractice, screenHistory, screenSettings, screenLeaderboard}
)

type confirmAction int

const (
	confirmNone confirmAction = iota
	confirmClearHistory
	confirmReset
)

// transitionMsg delivers a delayed session follow-up.
type transitionMsg struct {
	t session.Transition
}

// speechDoneMsg reports the end of a pronunciation.
type speechDoneMsg struct {
	err error
}

// Model implements the Bubble Tea spelling UI.
type Model struct {
	ctx     context.Context
	game    *game.Game
	speaker speech.Speaker
	log     *slog.Logger
	theme   theme

	screen screen
	width  int
	height int
	status string

	login  form
	signup form

	answer  textinput.Model
	peek    bool
	playing bool

	history table.Model
	confirm confirmAction

	settingsRow int
	period      identity.Period
}

// NewModel constructs the UI over g. A nil speaker disables pronunciation.
func NewModel(ctx context.Context, g *game.Game, speaker speech.Speaker, log *slog.Logger) *Model {
	if speaker == nil {
		speaker = speech.Disabled{}
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	m := &Model{
		ctx:     ctx,
		game:    g,
		speaker: speaker,
		log:     log,
		theme:   newTheme(g.Settings().DarkMode),
		login:   newForm(formField{prompt: "Email: "}, formField{prompt: "Password: ", secret: true}),
		signup: newForm(
			formField{prompt: "Name: "},
			formField{prompt: "Email: "},
			formField{prompt: "Password: ", secret: true},
			formField{prompt: "Confirm password: ", secret: true},
		),
		answer: newInput("> ", false),
		period: identity.PeriodAllTime,
	}
	m.answer.Placeholder = "type the word you hear"
	m.initHistoryTable()
	start := screenLogin
	if _, ok := g.Account(); ok {
		start = screenPractice
	}
	m.setScreen(start)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case transitionMsg:
		return m, m.fire(msg.t)
	case speechDoneMsg:
		m.playing = false
		if msg.err != nil {
			m.log.Warn("speech failed", "err", msg.err)
			m.status = "Speech unavailable: " + msg.err.Error()
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.confirm != confirmNone {
			return m.updateConfirm(msg)
		}
		switch msg.Type {
		case tea.KeyTab:
			return m, m.moveScreen(1)
		case tea.KeyShiftTab:
			return m, m.moveScreen(-1)
		case tea.KeyCtrlL:
			if _, ok := m.game.Account(); ok {
				m.game.Logout(m.ctx)
				cmd := m.setScreen(screenLogin)
				m.status = "Logged out."
				return m, cmd
			}
			return m, nil
		}
		switch m.screen {
		case screenLogin:
			return m.updateLogin(msg)
		case screenSignup:
			return m.updateSignup(msg)
		case screenPractice:
			return m.updatePractice(msg)
		case screenHistory:
			return m.updateHistory(msg)
		case screenSettings:
			return m.updateSettings(msg)
		case screenLeaderboard:
			return m.updateLeaderboard(msg)
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	switch m.screen {
	case screenLogin:
		body = m.viewLogin()
	case screenSignup:
		body = m.viewSignup()
	case screenPractice:
		body = m.viewPractice()
	case screenHistory:
		body = m.viewHistory()
	case screenSettings:
		body = m.viewSettings()
	case screenLeaderboard:
		body = m.viewLeaderboard()
	}
	lines := []string{m.renderTabs(), "", body}
	if m.confirm != confirmNone {
		lines = append(lines, "", m.theme.accent.Render(m.confirmPrompt()))
	} else if m.status != "" {
		lines = append(lines, "", m.theme.muted.Render(m.status))
	}
	lines = append(lines, "", m.theme.footer.Render(m.helpText()))
	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	main := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return main + "\n" + footerLine
}

func (m *Model) screens() []screen {
	if _, ok := m.game.Account(); ok {
		return playerScreens
	}
	return guestScreens
}

func (m *Model) moveScreen(delta int) tea.Cmd {
	screens := m.screens()
	idx := 0
	for i, s := range screens {
		if s == m.screen {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(screens)) % len(screens)
	return m.setScreen(screens[idx])
}

// setScreen switches screens and moves focus. Screens that need an account
// fall back to login.
func (m *Model) setScreen(s screen) tea.Cmd {
	if _, ok := m.game.Account(); !ok && s != screenSignup {
		s = screenLogin
	}
	m.screen = s
	m.status = ""
	m.login.blur()
	m.signup.blur()
	m.answer.Blur()
	m.history.Blur()
	switch s {
	case screenLogin:
		return m.login.focusIndex(0)
	case screenSignup:
		return m.signup.focusIndex(0)
	case screenPractice:
		return m.answer.Focus()
	case screenHistory:
		m.refreshHistory()
		m.history.Focus()
	}
	return nil
}

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.confirm
	m.confirm = confirmNone
	if msg.String() != "y" {
		m.status = "Cancelled."
		return m, nil
	}
	switch action {
	case confirmClearHistory:
		m.game.ClearHistory(m.ctx)
		m.refreshHistory()
		m.status = "History cleared."
	case confirmReset:
		t := m.game.Reset(m.ctx)
		m.refreshHistory()
		m.status = "Progress reset."
		return m, scheduleTransition(t)
	}
	return m, nil
}

func (m *Model) confirmPrompt() string {
	switch m.confirm {
	case confirmClearHistory:
		return "Clear all history? (y/n)"
	case confirmReset:
		return "Reset all progress and history? (y/n)"
	}
	return ""
}

// fire applies a delayed follow-up and schedules the next one, if any.
func (m *Model) fire(t session.Transition) tea.Cmd {
	before := m.game.View().Session.WordIndex
	next := m.game.Fire(m.ctx, t)
	if m.game.View().Session.WordIndex != before {
		m.peek = false
	}
	if next == nil {
		return nil
	}
	return scheduleTransition(*next)
}

func scheduleTransition(t session.Transition) tea.Cmd {
	return tea.Tick(t.After, func(time.Time) tea.Msg {
		return transitionMsg{t: t}
	})
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	inputWidth := maxInt(10, int(float64(m.width)*0.5))
	m.answer.Width = inputWidth
	m.login.setWidth(inputWidth)
	m.signup.setWidth(inputWidth)
	m.history.SetWidth(minInt(m.width, historyTableWidth))
	m.history.SetHeight(maxInt(3, m.height-10))
}

func (m *Model) renderTabs() string {
	screens := m.screens()
	parts := make([]string, 0, len(screens))
	for _, s := range screens {
		if s == m.screen {
			parts = append(parts, m.theme.activeNav.Render(s.String()))
		} else {
			parts = append(parts, m.theme.inactiveNav.Render(s.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderFooter() string {
	v := m.game.View()
	segments := []string{
		fmt.Sprintf("Progress %d/%d (%d%%)", v.Progress.Correct, v.Progress.Target, v.Percent),
		fmt.Sprintf("Accuracy %d%%", v.Accuracy),
	}
	if v.Account != nil {
		segments = append(segments, fmt.Sprintf("Streak %d", v.Account.Stats.Streak), v.Account.Name)
	}
	return m.theme.footer.Render(strings.Join(segments, "  "))
}

func (m *Model) helpText() string {
	switch m.screen {
	case screenLogin, screenSignup:
		return "enter next/submit · ↑/↓ field · tab switch · ctrl+c quit"
	case screenPractice:
		return "enter check · ctrl+r hear · ctrl+n skip · esc dismiss · ctrl+o peek · tab views · ctrl+l logout"
	case screenHistory:
		return "enter practice again · c clear · tab views"
	case screenSettings:
		return "↑/↓ select · ←/→ change · enter apply · tab views"
	case screenLeaderboard:
		return "←/→ period · tab views"
	}
	return ""
}

// errorText turns identity errors into the messages shown to the player.
func errorText(err error) string {
	switch {
	case errors.Is(err, identity.ErrPasswordMismatch):
		return "Passwords do not match"
	case errors.Is(err, identity.ErrEmailExists):
		return "Email already exists"
	case errors.Is(err, identity.ErrInvalidCredentials):
		return "Invalid email or password"
	}
	var verr *identity.ValidationError
	if errors.As(err, &verr) && verr.Field != "" {
		return fmt.Sprintf("Please check the %s field", verr.Field)
	}
	return err.Error()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
