// Package setup is the pre-interview wizard: domain, role, position,
// question count, mode, aptitude categories, and language, stepped
// through one choice at a time.
package setup

import (
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rahulj/mockmate/internal/bank"
	"github.com/rahulj/mockmate/internal/router"
	"github.com/rahulj/mockmate/internal/screen"
	"github.com/rahulj/mockmate/internal/screens/interview"
	"github.com/rahulj/mockmate/internal/session"
	"github.com/rahulj/mockmate/internal/store"
	"github.com/rahulj/mockmate/internal/ui/components"
	"github.com/rahulj/mockmate/internal/ui/layout"
	"github.com/rahulj/mockmate/internal/ui/theme"
	"github.com/rahulj/mockmate/internal/voice"
)

// Config wires the wizard to the engine.
type Config struct {
	User       *store.User
	Catalog    *bank.Catalog
	Generator  *session.Generator
	Store      *store.Store
	Speaker    voice.Narrator
	Recognizer voice.Recognizer
	Camera     voice.Camera
	Logger     *slog.Logger
}

type step int

const (
	stepDomain step = iota
	stepRole
	stepPosition
	stepSkills
	stepCount
	stepMode
	stepCategories
	stepLanguage
	stepConfirm
)

var countChoices = []int{5, 10, 15, 20}

// SetupScreen steps through the interview setup choices.
type SetupScreen struct {
	cfg Config

	step     step
	menu     components.Menu
	skills   components.TextInput
	setup    session.Setup
	langs    []bank.Language
	catNames []string
	catPicks map[int]bool
	catIdx   int
}

var _ screen.Screen = (*SetupScreen)(nil)

// New creates the wizard at its first step.
func New(cfg Config) *SetupScreen {
	s := &SetupScreen{
		cfg:      cfg,
		langs:    bank.Languages(),
		catNames: bank.AptitudeCategories(),
		catPicks: make(map[int]bool),
	}
	s.enterStep(stepDomain)
	return s
}

func (s *SetupScreen) Title() string {
	return "Interview Setup"
}

func (s *SetupScreen) Init() tea.Cmd {
	return nil
}

func (s *SetupScreen) enterStep(st step) {
	s.step = st

	switch st {
	case stepDomain:
		items := make([]components.MenuItem, 0)
		for _, d := range bank.Domains() {
			domain := d
			items = append(items, components.MenuItem{Label: domain, Action: func() tea.Cmd {
				s.setup.Domain = domain
				s.enterStep(stepRole)
				return nil
			}})
		}
		s.menu = components.NewMenu(items)

	case stepRole:
		items := make([]components.MenuItem, 0)
		for _, r := range bank.RolesFor(s.setup.Domain) {
			role := r
			items = append(items, components.MenuItem{Label: role, Action: func() tea.Cmd {
				s.setup.Role = role
				s.enterStep(stepPosition)
				return nil
			}})
		}
		s.menu = components.NewMenu(items)

	case stepPosition:
		items := make([]components.MenuItem, 0)
		for _, p := range bank.Positions() {
			position := p
			items = append(items, components.MenuItem{Label: position, Action: func() tea.Cmd {
				s.setup.Position = position
				s.enterStep(stepSkills)
				return nil
			}})
		}
		s.menu = components.NewMenu(items)

	case stepSkills:
		s.skills = components.NewTextInput("Comma-separated skills, Enter to continue", 200)

	case stepCount:
		items := make([]components.MenuItem, 0)
		for _, c := range countChoices {
			count := c
			items = append(items, components.MenuItem{
				Label: fmt.Sprintf("%d questions", count),
				Action: func() tea.Cmd {
					s.setup.Count = count
					s.enterStep(stepMode)
					return nil
				},
			})
		}
		s.menu = components.NewMenu(items)

	case stepMode:
		// Face-to-face only adds something when the host has at least
		// one capability to back it.
		faceToFace := s.cfg.Camera.Available() ||
			s.cfg.Recognizer.Available() ||
			s.cfg.Speaker.Enabled()
		s.menu = components.NewMenu([]components.MenuItem{
			{Label: "Standard", Action: func() tea.Cmd {
				s.setup.Mode = session.ModeStandard
				s.afterMode()
				return nil
			}},
			{Label: "Face-to-Face (camera + voice)", Disabled: !faceToFace, Action: func() tea.Cmd {
				s.setup.Mode = session.ModeFaceToFace
				s.afterMode()
				return nil
			}},
		})

	case stepLanguage:
		items := make([]components.MenuItem, 0, len(s.langs))
		for _, l := range s.langs {
			lang := l
			items = append(items, components.MenuItem{Label: lang.Label, Action: func() tea.Cmd {
				s.setup.Language = lang.Code
				s.enterStep(stepConfirm)
				return nil
			}})
		}
		s.menu = components.NewMenu(items)

	case stepConfirm:
		s.menu = components.NewMenu([]components.MenuItem{
			{Label: "Start interview", Action: s.start},
		})
	}
}

// afterMode routes to the category picker for aptitude rounds and
// straight to the language step otherwise.
func (s *SetupScreen) afterMode() {
	if s.setup.Domain == bank.AptitudeDomain {
		s.enterStep(stepCategories)
		return
	}
	s.enterStep(stepLanguage)
}

func (s *SetupScreen) start() tea.Cmd {
	picked := make([]string, 0)
	for i, name := range s.catNames {
		if s.catPicks[i] {
			picked = append(picked, name)
		}
	}
	s.setup.Categories = picked

	sess := s.cfg.Generator.Generate(s.cfg.Catalog, s.setup)
	if sess.Len() == 0 {
		// An over-narrow category filter can empty the pool.
		if s.setup.Domain == bank.AptitudeDomain {
			s.enterStep(stepCategories)
		} else {
			s.enterStep(stepDomain)
		}
		return nil
	}

	next := interview.New(interview.Config{
		Session:    sess,
		Attempts:   s.cfg.Store.Attempts(),
		Email:      s.cfg.User.Email,
		Speaker:    s.cfg.Speaker,
		Recognizer: s.cfg.Recognizer,
		Camera:     s.cfg.Camera,
		Logger:     s.cfg.Logger,
	})
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.step == stepSkills {
		if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
			s.setup.Skills = splitSkills(s.skills.Value())
			s.enterStep(stepCount)
			return s, nil
		}
		var cmd tea.Cmd
		s.skills, cmd = s.skills.Update(msg)
		return s, cmd
	}

	if s.step == stepCategories {
		if kmsg, ok := msg.(tea.KeyMsg); ok {
			switch kmsg.String() {
			case "up", "k":
				if s.catIdx > 0 {
					s.catIdx--
				}
			case "down", "j":
				if s.catIdx < len(s.catNames)-1 {
					s.catIdx++
				}
			case " ", "space":
				s.catPicks[s.catIdx] = !s.catPicks[s.catIdx]
			case "enter":
				s.enterStep(stepLanguage)
			}
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

// splitSkills turns a comma-separated entry into trimmed skill names.
func splitSkills(entry string) []string {
	var skills []string
	for _, part := range strings.Split(entry, ",") {
		if part = strings.TrimSpace(part); part != "" {
			skills = append(skills, part)
		}
	}
	return skills
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	if s.step == stepSkills {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "Esc", Description: "Back"},
		}
	}
	if s.step == stepCategories {
		return []layout.KeyHint{
			{Key: "Space", Description: "Toggle"},
			{Key: "Enter", Description: "Continue"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) stepPrompt() string {
	switch s.step {
	case stepDomain:
		return "Choose your engineering stream"
	case stepRole:
		return "Choose the target role"
	case stepPosition:
		return "Choose the experience level"
	case stepSkills:
		return "List your key skills (optional)"
	case stepCount:
		return "How long should the round be?"
	case stepMode:
		return "Choose the interview mode"
	case stepCategories:
		return "Narrow the aptitude categories (optional)"
	case stepLanguage:
		return "Choose the interview language"
	default:
		return "Ready when you are"
	}
}

func (s *SetupScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(s.stepPrompt()) + "\n\n")

	if s.step == stepSkills {
		b.WriteString(s.skills.View() + "\n")
		b.WriteString("\n" + theme.Hint.Render("for example: Go, SQL, system design"))
	} else if s.step == stepCategories {
		for i, name := range s.catNames {
			mark := "[ ]"
			if s.catPicks[i] {
				mark = "[x]"
			}
			line := fmt.Sprintf("  %s %s", mark, name)
			if i == s.catIdx {
				b.WriteString(theme.Selected.Render("▸"+line[1:]) + "\n")
			} else {
				b.WriteString(theme.Body.Render(line) + "\n")
			}
		}
		b.WriteString("\n" + theme.Hint.Render("no selection means every category"))
	} else {
		b.WriteString(s.menu.View())
	}

	if s.step == stepConfirm {
		b.WriteString("\n" + s.summaryView())
	}

	content := b.String()
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *SetupScreen) summaryView() string {
	lines := []string{
		fmt.Sprintf("Stream    %s", s.setup.Domain),
		fmt.Sprintf("Role      %s", s.setup.Role),
		fmt.Sprintf("Level     %s", s.setup.Position),
		fmt.Sprintf("Questions %d", s.setup.Count),
		fmt.Sprintf("Mode      %s", s.setup.Mode),
		fmt.Sprintf("Language  %s", s.setup.Language),
	}
	if len(s.setup.Skills) > 0 {
		lines = append(lines, fmt.Sprintf("Skills    %s", strings.Join(s.setup.Skills, ", ")))
	}
	return theme.Hint.Render(strings.Join(lines, "\n"))
}
