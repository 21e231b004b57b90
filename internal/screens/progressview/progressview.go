// Package progressview renders the aggregated progress overview:
// totals, averages, per-domain breakdown, recent attempts.
package progressview

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rahulj/mockmate/internal/progress"
	"github.com/rahulj/mockmate/internal/screen"
	"github.com/rahulj/mockmate/internal/store"
	"github.com/rahulj/mockmate/internal/ui/components"
	"github.com/rahulj/mockmate/internal/ui/layout"
	"github.com/rahulj/mockmate/internal/ui/theme"
)

type loadedMsg struct {
	overview progress.Overview
	err      error
}

// ProgressScreen shows the computed overview for a user.
type ProgressScreen struct {
	attempts store.AttemptRepo
	email    string

	overview progress.Overview
	loaded   bool
	err      error
}

var _ screen.Screen = (*ProgressScreen)(nil)

// New creates the progress screen for a user.
func New(attempts store.AttemptRepo, email string) *ProgressScreen {
	return &ProgressScreen{attempts: attempts, email: email}
}

func (p *ProgressScreen) Title() string {
	return "Progress"
}

func (p *ProgressScreen) Init() tea.Cmd {
	attempts := p.attempts
	email := p.email
	return func() tea.Msg {
		history, err := attempts.List(context.Background(), email, 0)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{overview: progress.Compute(history)}
	}
}

func (p *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(loadedMsg); ok {
		p.loaded = true
		p.overview = msg.overview
		p.err = msg.err
	}
	return p, nil
}

func (p *ProgressScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (p *ProgressScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Your Progress") + "\n\n")

	switch {
	case !p.loaded:
		b.WriteString(theme.Hint.Render("loading..."))
	case p.err != nil:
		b.WriteString(theme.Incorrect.Render("could not load progress: " + p.err.Error()))
	case p.overview.TotalAttempts == 0:
		b.WriteString(theme.Hint.Render("Nothing here yet. Your first interview unlocks the stats."))
	default:
		ov := p.overview
		b.WriteString(theme.Body.Render(fmt.Sprintf(
			"Attempts %d   Questions %d   Average %d%%   Best %d%%",
			ov.TotalAttempts, ov.TotalQuestions, ov.AverageScore, ov.BestScore)) + "\n\n")

		b.WriteString(theme.Body.Bold(true).Render("By stream") + "\n")
		barWidth := min(width-20, 48)
		for _, domain := range sortedDomains(ov) {
			stat := ov.ByDomain[domain]
			bar := components.NewProgressBar(
				fmt.Sprintf("%-28s", truncate(domain, 28)),
				float64(stat.AvgScore)/100,
				true,
				barWidth+30,
			)
			b.WriteString(bar.View() + theme.Hint.Render(fmt.Sprintf("  ×%d", stat.Count)) + "\n")
		}

		b.WriteString("\n" + theme.Body.Bold(true).Render("Recent attempts") + "\n")
		for _, r := range ov.Recent {
			b.WriteString(theme.Body.Render(fmt.Sprintf(
				"  %s  %-26s %3d%%  %s",
				r.Timestamp.Local().Format("Jan 02"),
				truncate(r.Domain, 26),
				r.ScorePercent,
				r.Level)) + "\n")
		}
	}

	card := theme.Card.Width(min(width-4, 96)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func sortedDomains(ov progress.Overview) []string {
	domains := make([]string, 0, len(ov.ByDomain))
	for d := range ov.ByDomain {
		domains = append(domains, d)
	}
	sort.Strings(domains)
	return domains
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
