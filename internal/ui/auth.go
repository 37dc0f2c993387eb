package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// authForm collects a username and password for login or registration.
type authForm struct {
	username    textinput.Model
	password    textinput.Model
	focus       int
	registering bool
}

func newAuthForm() authForm {
	user := textinput.New()
	user.Placeholder = "Username..."
	user.CharLimit = 64

	pass := textinput.New()
	pass.Placeholder = "Password..."
	pass.CharLimit = 64
	pass.EchoMode = textinput.EchoPassword

	return authForm{username: user, password: pass}
}

func (f *authForm) Focus() tea.Cmd {
	f.focus = 0
	f.password.Blur()
	return f.username.Focus()
}

func (f *authForm) toggleMode() {
	f.registering = !f.registering
}

func (f *authForm) Values() (username, password string) {
	return strings.TrimSpace(f.username.Value()), f.password.Value()
}

func (f *authForm) Reset() tea.Cmd {
	f.username.Reset()
	f.password.Reset()
	return f.Focus()
}

func (f authForm) Update(msg tea.Msg) (authForm, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down", "shift+tab", "up":
			var cmd tea.Cmd
			if f.focus == 0 {
				f.focus = 1
				f.username.Blur()
				cmd = f.password.Focus()
			} else {
				f.focus = 0
				f.password.Blur()
				cmd = f.username.Focus()
			}
			return f, cmd
		}
	}

	var cmd tea.Cmd
	if f.focus == 0 {
		f.username, cmd = f.username.Update(msg)
	} else {
		f.password, cmd = f.password.Update(msg)
	}
	return f, cmd
}

func (f authForm) View() string {
	return "username: " + f.username.View() + "\n" +
		"password: " + f.password.View()
}
