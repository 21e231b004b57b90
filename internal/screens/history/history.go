// Package history lists the user's past attempts, newest first.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rahulj/mockmate/internal/scoring"
	"github.com/rahulj/mockmate/internal/screen"
	"github.com/rahulj/mockmate/internal/store"
	"github.com/rahulj/mockmate/internal/ui/layout"
	"github.com/rahulj/mockmate/internal/ui/theme"
)

const pageSize = 50

type loadedMsg struct {
	attempts []scoring.Result
	err      error
}

// HistoryScreen shows the stored attempt list.
type HistoryScreen struct {
	attempts store.AttemptRepo
	email    string

	rows   []scoring.Result
	top    int
	loaded bool
	err    error
}

var _ screen.Screen = (*HistoryScreen)(nil)

// New creates the history screen for a user.
func New(attempts store.AttemptRepo, email string) *HistoryScreen {
	return &HistoryScreen{attempts: attempts, email: email}
}

func (h *HistoryScreen) Title() string {
	return "History"
}

func (h *HistoryScreen) Init() tea.Cmd {
	attempts := h.attempts
	email := h.email
	return func() tea.Msg {
		rows, err := attempts.List(context.Background(), email, pageSize)
		return loadedMsg{attempts: rows, err: err}
	}
}

func (h *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		h.loaded = true
		h.rows = msg.attempts
		h.err = msg.err
		return h, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if h.top > 0 {
				h.top--
			}
		case "down", "j":
			if h.top < len(h.rows)-1 {
				h.top++
			}
		}
	}
	return h, nil
}

func (h *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HistoryScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Attempt History") + "\n\n")

	switch {
	case !h.loaded:
		b.WriteString(theme.Hint.Render("loading..."))
	case h.err != nil:
		b.WriteString(theme.Incorrect.Render("could not load history: " + h.err.Error()))
	case len(h.rows) == 0:
		b.WriteString(theme.Hint.Render("No attempts yet. Finish an interview to see it here."))
	default:
		visible := max(1, height-8)
		end := min(h.top+visible, len(h.rows))
		for n := h.top; n < end; n++ {
			r := h.rows[n]
			line := fmt.Sprintf("%s  %-28s %-22s %3d%%  %s",
				r.Timestamp.Local().Format("2006-01-02 15:04"),
				truncate(r.Domain, 28),
				truncate(r.Role, 22),
				r.ScorePercent,
				r.Level,
			)
			b.WriteString(theme.Body.Render(line) + "\n")
		}
		if len(h.rows) == pageSize {
			b.WriteString("\n" + theme.Hint.Render(fmt.Sprintf("showing the %d most recent attempts", pageSize)))
		}
	}

	card := theme.Card.Width(min(width-4, 96)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
