// Package auth is the sign-in / sign-up / forgot-password screen.
// Accounts are local: they exist to keep separate histories on a
// shared machine, not to protect anything.
package auth

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rahulj/mockmate/internal/router"
	"github.com/rahulj/mockmate/internal/screen"
	"github.com/rahulj/mockmate/internal/store"
	"github.com/rahulj/mockmate/internal/ui/components"
	"github.com/rahulj/mockmate/internal/ui/layout"
	"github.com/rahulj/mockmate/internal/ui/theme"
)

type mode int

const (
	modeSignIn mode = iota
	modeSignUp
	modeForgot
)

type authResultMsg struct {
	user *store.User
	info string
	err  error
}

// AuthScreen collects credentials and signs the user in.
type AuthScreen struct {
	users store.UserRepo
	next  func(u *store.User) screen.Screen

	mode   mode
	fields []components.TextInput
	labels []string
	focus  int
	status string
	isErr  bool
	busy   bool
}

var _ screen.Screen = (*AuthScreen)(nil)

// New creates the auth screen. next produces the screen shown after a
// successful sign-in.
func New(users store.UserRepo, next func(u *store.User) screen.Screen) *AuthScreen {
	a := &AuthScreen{users: users, next: next}
	a.setMode(modeSignIn)
	return a
}

func (a *AuthScreen) Title() string {
	switch a.mode {
	case modeSignUp:
		return "Create Account"
	case modeForgot:
		return "Forgot Password"
	default:
		return "Sign In"
	}
}

func (a *AuthScreen) Init() tea.Cmd {
	return a.fields[0].Init()
}

func (a *AuthScreen) setMode(m mode) {
	a.mode = m
	a.focus = 0
	a.status = ""
	a.isErr = false

	switch m {
	case modeSignUp:
		a.labels = []string{"Name", "Email", "Password", "Confirm password"}
		a.fields = []components.TextInput{
			components.NewTextInput("Your name", 64),
			components.NewTextInput("you@example.com", 128),
			components.NewPasswordInput("At least 6 characters"),
			components.NewPasswordInput("Repeat password"),
		}
	case modeForgot:
		a.labels = []string{"Email"}
		a.fields = []components.TextInput{
			components.NewTextInput("Email of the account to clear", 128),
		}
	default:
		a.labels = []string{"Email", "Password"}
		a.fields = []components.TextInput{
			components.NewTextInput("you@example.com", 128),
			components.NewPasswordInput("Password"),
		}
	}
	for i := range a.fields {
		if i == 0 {
			a.fields[i].Focus()
		} else {
			a.fields[i].Blur()
		}
	}
}

func (a *AuthScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		a.busy = false
		if msg.err != nil {
			a.status = msg.err.Error()
			a.isErr = true
			return a, nil
		}
		if msg.user != nil {
			next := a.next(msg.user)
			return a, tea.Batch(
				func() tea.Msg {
					return screen.UserChangedMsg{Name: msg.user.Name, Email: msg.user.Email}
				},
				func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} },
			)
		}
		a.setMode(modeSignIn)
		a.status = msg.info
		return a, nil

	case tea.KeyMsg:
		if a.busy {
			return a, nil
		}
		switch msg.String() {
		case "tab", "down":
			return a, a.focusField(a.focus + 1)
		case "shift+tab", "up":
			return a, a.focusField(a.focus - 1)
		case "enter":
			if a.focus < len(a.fields)-1 {
				return a, a.focusField(a.focus + 1)
			}
			return a, a.submit()
		case "ctrl+u":
			if a.mode == modeSignIn {
				a.setMode(modeSignUp)
			} else {
				a.setMode(modeSignIn)
			}
			return a, a.fields[0].Init()
		case "ctrl+f":
			a.setMode(modeForgot)
			return a, a.fields[0].Init()
		}
	}

	var cmd tea.Cmd
	a.fields[a.focus], cmd = a.fields[a.focus].Update(msg)
	return a, cmd
}

func (a *AuthScreen) focusField(i int) tea.Cmd {
	if i < 0 || i >= len(a.fields) {
		return nil
	}
	a.fields[a.focus].Blur()
	a.focus = i
	return a.fields[i].Focus()
}

func (a *AuthScreen) submit() tea.Cmd {
	users := a.users
	a.busy = true

	switch a.mode {
	case modeSignUp:
		name := a.fields[0].Value()
		email := a.fields[1].Value()
		password := a.fields[2].Value()
		confirm := a.fields[3].Value()
		if password != confirm {
			a.busy = false
			a.status = "Passwords do not match."
			a.isErr = true
			return nil
		}
		return func() tea.Msg {
			u, err := users.Create(context.Background(), name, email, password)
			if err != nil {
				return authResultMsg{err: err}
			}
			if err := users.SetCurrent(context.Background(), u.Email); err != nil {
				return authResultMsg{err: err}
			}
			return authResultMsg{user: u}
		}

	case modeForgot:
		email := a.fields[0].Value()
		return func() tea.Msg {
			if err := users.Delete(context.Background(), email); err != nil {
				return authResultMsg{err: err}
			}
			return authResultMsg{info: "Account cleared. You can sign up again with this email."}
		}

	default:
		email := a.fields[0].Value()
		password := a.fields[1].Value()
		return func() tea.Msg {
			u, err := users.Authenticate(context.Background(), email, password)
			if err != nil {
				return authResultMsg{err: err}
			}
			if err := users.SetCurrent(context.Background(), u.Email); err != nil {
				return authResultMsg{err: err}
			}
			return authResultMsg{user: u}
		}
	}
}

func (a *AuthScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+U", Description: "Sign in/up"},
		{Key: "Ctrl+F", Description: "Forgot password"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (a *AuthScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render(a.Title()) + "\n\n")

	for i := range a.fields {
		label := theme.Body.Render(a.labels[i])
		if i == a.focus {
			label = theme.Selected.Render(a.labels[i])
		}
		b.WriteString(label + "\n")
		b.WriteString(a.fields[i].View() + "\n\n")
	}

	if a.busy {
		b.WriteString(theme.Hint.Render("working...") + "\n")
	} else if a.status != "" {
		style := lipgloss.NewStyle().Foreground(theme.Success)
		if a.isErr {
			style = lipgloss.NewStyle().Foreground(theme.Error)
		}
		b.WriteString(style.Render(a.status) + "\n")
	}

	card := theme.Card.Width(min(width-4, 64)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
