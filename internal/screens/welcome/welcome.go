package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rahulj/mockmate/internal/router"
	"github.com/rahulj/mockmate/internal/screen"
	"github.com/rahulj/mockmate/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bannerAt     = 400 * time.Millisecond
	taglineAt    = 1000 * time.Millisecond
	totalDur     = 2000 * time.Millisecond
)

type tickMsg time.Time

// WelcomeScreen shows a splash before transitioning to auth or the
// dashboard, whichever nextFactory produces.
type WelcomeScreen struct {
	nextFactory  func() screen.Screen
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen transitioning to nextFactory's screen.
func New(nextFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		nextFactory: nextFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		return w, tea.Tick(tickInterval, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})

	case tea.KeyPressMsg:
		// Any key skips straight through the splash.
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.nextFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	if w.elapsed >= bannerAt {
		sections = append(sections, RenderBanner(width))
	}

	if w.elapsed >= taglineAt {
		sections = append(sections, "")
		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Practice interviews. Know where you stand.")
		sections = append(sections, tagline)
		sections = append(sections, "")
		hint := theme.Hint.Render("press any key to continue")
		sections = append(sections, hint)
	}

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
