package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rahulj/mockmate/internal/ui/theme"
)

// optionLabels covers the schema's maximum of six options.
var optionLabels = []string{"A", "B", "C", "D", "E", "F"}

// MultiChoice is a multiple-choice selector. Unlike a quiz widget it
// does not reveal the correct answer on submit: interview feedback
// waits for the results screen.
type MultiChoice struct {
	Question    string
	Options     []string
	Selected    int
	Submitted   bool
	ChosenIndex int
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{
		Question:    question,
		Options:     options,
		Selected:    0,
		ChosenIndex: -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Submitted = true
		m.ChosenIndex = m.Selected
	}

	return m, nil
}

// View renders the question and its options.
func (m MultiChoice) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := questionStyle.Render(m.Question) + "\n\n"

	for i, opt := range m.Options {
		label := ""
		if i < len(optionLabels) {
			label = optionLabels[i]
		}
		prefix := "  "
		if i == m.Selected {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		switch {
		case m.Submitted && i == m.ChosenIndex:
			s += lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(line) + "\n"
		case i == m.Selected:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}

	return s
}
