package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuispell/internal/identity"
)

type formField struct {
	prompt string
	secret bool
}

// form is a column of text inputs with one focused field.
type form struct {
	inputs []textinput.Model
	focus  int
	err    string
}

func newInput(prompt string, secret bool) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	if secret {
		input.EchoMode = textinput.EchoPassword
		input.EchoCharacter = '•'
	}
	return input
}

func newForm(fields ...formField) form {
	f := form{inputs: make([]textinput.Model, len(fields))}
	for i, field := range fields {
		f.inputs[i] = newInput(field.prompt, field.secret)
	}
	return f
}

func (f *form) focusIndex(idx int) tea.Cmd {
	count := len(f.inputs)
	if count == 0 {
		return nil
	}
	idx = (idx + count) % count
	f.focus = idx
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	return f.inputs[idx].Focus()
}

func (f *form) blur() {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

func (f *form) setWidth(width int) {
	for i := range f.inputs {
		f.inputs[i].Width = width
	}
}

func (f *form) values() []string {
	out := make([]string, len(f.inputs))
	for i, input := range f.inputs {
		out[i] = input.Value()
	}
	return out
}

func (f *form) reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	f.err = ""
	f.focus = 0
}

// update routes a key to the form. It reports true when enter is pressed on
// the last field.
func (f *form) update(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		return false, f.focusIndex(f.focus - 1)
	case tea.KeyDown:
		return false, f.focusIndex(f.focus + 1)
	case tea.KeyEnter:
		if f.focus < len(f.inputs)-1 {
			return false, f.focusIndex(f.focus + 1)
		}
		return true, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return false, cmd
}

func (f *form) view(th theme, title string) string {
	lines := []string{th.accent.Render(title), ""}
	for _, input := range f.inputs {
		lines = append(lines, input.View())
	}
	if f.err != "" {
		lines = append(lines, "", th.errorText.Render(f.err))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	submit, cmd := m.login.update(msg)
	if !submit {
		return m, cmd
	}
	vals := m.login.values()
	email := strings.TrimSpace(vals[0])
	if _, err := m.game.Login(m.ctx, email, vals[1]); err != nil {
		m.login.err = errorText(err)
		return m, nil
	}
	m.login.reset()
	return m, m.setScreen(screenPractice)
}

func (m *Model) updateSignup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	submit, cmd := m.signup.update(msg)
	if !submit {
		return m, cmd
	}
	vals := m.signup.values()
	_, err := m.game.Register(m.ctx, identity.Registration{
		Name:            strings.TrimSpace(vals[0]),
		Email:           strings.TrimSpace(vals[1]),
		Password:        vals[2],
		ConfirmPassword: vals[3],
	})
	if err != nil {
		m.signup.err = errorText(err)
		return m, nil
	}
	m.signup.reset()
	return m, m.setScreen(screenPractice)
}

func (m *Model) viewLogin() string {
	return m.theme.card.Render(m.login.view(m.theme, "Log in to practice"))
}

func (m *Model) viewSignup() string {
	return m.theme.card.Render(m.signup.view(m.theme, "Create an account"))
}
