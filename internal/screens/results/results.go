// Package results shows a scored round: score, readiness level,
// per-question review, weak topics, and the preparation roadmap.
package results

import (
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rahulj/mockmate/internal/roadmap"
	"github.com/rahulj/mockmate/internal/scoring"
	"github.com/rahulj/mockmate/internal/screen"
	"github.com/rahulj/mockmate/internal/ui/components"
	"github.com/rahulj/mockmate/internal/ui/layout"
	"github.com/rahulj/mockmate/internal/ui/theme"
	"github.com/rahulj/mockmate/internal/voice"
)

// ResultsScreen presents one scored attempt.
type ResultsScreen struct {
	res     scoring.Result
	speaker voice.Narrator

	horizon    roadmap.Horizon
	showReview bool
	reviewTop  int
}

var _ screen.Screen = (*ResultsScreen)(nil)

// New creates the results screen for a scored attempt.
func New(res scoring.Result, speaker voice.Narrator) *ResultsScreen {
	return &ResultsScreen{
		res:     res,
		speaker: speaker,
		horizon: roadmap.HorizonOneMonth,
	}
}

func (r *ResultsScreen) Title() string {
	return "Results"
}

func (r *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}

	switch kmsg.String() {
	case "1":
		r.horizon = roadmap.HorizonOneMonth
	case "2":
		r.horizon = roadmap.HorizonTwoMonths
	case "3":
		r.horizon = roadmap.HorizonThreeMonths
	case "r":
		r.showReview = !r.showReview
		r.reviewTop = 0
	case "up", "k":
		if r.showReview && r.reviewTop > 0 {
			r.reviewTop--
		}
	case "down", "j":
		if r.showReview && r.reviewTop < len(r.res.PerQuestion)-1 {
			r.reviewTop++
		}
	case "s":
		if r.speaker.Enabled() {
			r.speaker.Speak(roadmap.Summary(r.res), r.res.Language)
		}
	}
	return r, nil
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "1/2/3", Description: "Horizon"},
		{Key: "R", Description: "Review"},
	}
	if r.speaker.Enabled() {
		hints = append(hints, layout.KeyHint{Key: "S", Description: "Speak summary"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "Esc", Description: "Back"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Quit"},
	)
	return hints
}

func (r *ResultsScreen) View(width, height int) string {
	if r.showReview {
		return r.reviewView(width, height)
	}
	return r.summaryMainView(width, height)
}

func (r *ResultsScreen) summaryMainView(width, height int) string {
	var b strings.Builder

	score := fmt.Sprintf("%d%%", r.res.ScorePercent)
	b.WriteString(theme.Title.Render(score) + "\n")
	b.WriteString(theme.Subtitle.Render(string(r.res.Level)) + "\n\n")

	bar := components.NewProgressBar("", float64(r.res.ScorePercent)/100, false, min(width-12, 50))
	b.WriteString(bar.View() + "\n\n")

	b.WriteString(theme.Body.Render(wordWrap(roadmap.Summary(r.res), min(width-12, 76))) + "\n\n")

	if len(r.res.WeakTopics) > 0 {
		b.WriteString(theme.Body.Bold(true).Render("Weak topics") + "\n")
		for _, topic := range weakOrder(r.res) {
			b.WriteString(theme.Incorrect.Render(fmt.Sprintf("  %s (%d missed)", topic, r.res.WeakTopics[topic])) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(theme.Body.Bold(true).Render(fmt.Sprintf("Roadmap — %d weeks", r.horizon.Weeks())) + "\n")
	for _, phase := range roadmap.Build(r.res, r.horizon) {
		b.WriteString(theme.Selected.Render(fmt.Sprintf("  %s  %s", phase.Window(), phase.Label)) + "\n")
		b.WriteString(theme.Hint.Render("    "+wordWrap(phase.Description, min(width-16, 72))) + "\n")
		b.WriteString(theme.Body.Render("    Focus: "+strings.Join(phase.Focus, ", ")) + "\n")
	}

	card := theme.Card.Width(min(width-4, 84)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (r *ResultsScreen) reviewView(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("Review — %d/%d correct", r.res.Correct, r.res.Total)) + "\n\n")

	visible := max(1, (height-8)/4)
	end := min(r.reviewTop+visible, len(r.res.PerQuestion))
	for n := r.reviewTop; n < end; n++ {
		rev := r.res.PerQuestion[n]
		b.WriteString(theme.Body.Bold(true).Render(fmt.Sprintf("%d. %s", n+1, rev.Question.Text)) + "\n")
		switch {
		case rev.Subjective:
			answer := rev.AnswerText
			if answer == "" {
				answer = "(no answer)"
			}
			b.WriteString(theme.Hint.Render("   subjective · "+answer) + "\n")
		case rev.Correct:
			b.WriteString(theme.Correct.Render("   ✓ "+rev.Question.Options[rev.Question.CorrectIndex]) + "\n")
		case rev.UserIndex >= 0 && rev.UserIndex < len(rev.Question.Options):
			b.WriteString(theme.Incorrect.Render("   ✗ "+rev.Question.Options[rev.UserIndex]) + "\n")
			b.WriteString(theme.Correct.Render("   → "+rev.Question.Options[rev.Question.CorrectIndex]) + "\n")
		default:
			b.WriteString(theme.Incorrect.Render("   ✗ unanswered") + "\n")
			b.WriteString(theme.Correct.Render("   → "+rev.Question.Options[rev.Question.CorrectIndex]) + "\n")
		}
		b.WriteString("\n")
	}

	card := theme.Card.Width(min(width-4, 84)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

// weakOrder returns weak topics most-missed first, alphabetical
// within ties.
func weakOrder(res scoring.Result) []string {
	topics := make([]string, 0, len(res.WeakTopics))
	for topic := range res.WeakTopics {
		topics = append(topics, topic)
	}
	sort.Slice(topics, func(i, j int) bool {
		if res.WeakTopics[topics[i]] != res.WeakTopics[topics[j]] {
			return res.WeakTopics[topics[i]] > res.WeakTopics[topics[j]]
		}
		return topics[i] < topics[j]
	})
	return topics
}

func wordWrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	var lines []string
	var line string
	for _, w := range words {
		if line == "" {
			line = w
			continue
		}
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
