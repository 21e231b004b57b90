// Package app owns the root Bubble Tea model: the screen router, the
// header/footer frame, and the signed-in user shown in the header.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rahulj/mockmate/internal/bank"
	"github.com/rahulj/mockmate/internal/router"
	"github.com/rahulj/mockmate/internal/screen"
	"github.com/rahulj/mockmate/internal/screens/auth"
	"github.com/rahulj/mockmate/internal/screens/dashboard"
	"github.com/rahulj/mockmate/internal/screens/welcome"
	"github.com/rahulj/mockmate/internal/session"
	"github.com/rahulj/mockmate/internal/store"
	"github.com/rahulj/mockmate/internal/ui/layout"
	"github.com/rahulj/mockmate/internal/voice"
)

// Deps carries everything the screens need.
type Deps struct {
	Store      *store.Store
	Catalog    *bank.Catalog
	Generator  *session.Generator
	Speaker    *voice.Speaker
	Recognizer voice.Recognizer
	Camera     voice.Camera
	Logger     *slog.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps     Deps
	router   *router.Router
	width    int
	height   int
	userName string
}

func newAppModel(deps Deps) AppModel {
	m := AppModel{deps: deps}

	current, err := deps.Store.Users().Current(context.Background())
	if err != nil {
		deps.Logger.Warn("reading current user failed", "error", err)
		current = nil
	}
	if current != nil {
		m.userName = current.Name
	}

	first := welcome.New(func() screen.Screen {
		if current != nil {
			return m.dashboardFor(current)
		}
		return m.authScreen()
	})
	m.router = router.New(first)
	return m
}

func (m AppModel) authScreen() screen.Screen {
	return auth.New(m.deps.Store.Users(), func(u *store.User) screen.Screen {
		return m.dashboardFor(u)
	})
}

func (m AppModel) dashboardFor(u *store.User) screen.Screen {
	return dashboard.New(dashboard.Config{
		User:       u,
		Catalog:    m.deps.Catalog,
		Generator:  m.deps.Generator,
		Store:      m.deps.Store,
		Speaker:    m.deps.Speaker,
		Recognizer: m.deps.Recognizer,
		Camera:     m.deps.Camera,
		Logger:     m.deps.Logger,
		SignedOut:  m.authScreen,
	})
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.UserChangedMsg:
		m.userName = msg.Name
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.deps.Speaker.Stop()
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.userName, m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(deps Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
