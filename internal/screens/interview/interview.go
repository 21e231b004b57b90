// Package interview runs one mock round: presenting questions,
// recording answers, narrating when voice is on, and handing the
// finished session to scoring.
package interview

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rahulj/mockmate/internal/bank"
	"github.com/rahulj/mockmate/internal/router"
	"github.com/rahulj/mockmate/internal/scoring"
	"github.com/rahulj/mockmate/internal/screen"
	"github.com/rahulj/mockmate/internal/screens/results"
	"github.com/rahulj/mockmate/internal/session"
	"github.com/rahulj/mockmate/internal/store"
	"github.com/rahulj/mockmate/internal/ui/components"
	"github.com/rahulj/mockmate/internal/ui/layout"
	"github.com/rahulj/mockmate/internal/ui/theme"
	"github.com/rahulj/mockmate/internal/voice"
)

// Config wires the interview screen to the session and collaborators.
type Config struct {
	Session    *session.Session
	Attempts   store.AttemptRepo
	Email      string
	Speaker    voice.Narrator
	Recognizer voice.Recognizer
	Camera     voice.Camera
	Logger     *slog.Logger
}

type transcriptMsg struct {
	questionID int
	text       string
	err        error
}

type savedMsg struct {
	result scoring.Result
	err    error
}

// InterviewScreen presents the session's questions one at a time.
type InterviewScreen struct {
	cfg Config

	idx       int
	mc        components.MultiChoice
	ti        components.TextInput
	voiceOn   bool
	listening bool
	cameraOn  bool
	finishing bool
}

var _ screen.Screen = (*InterviewScreen)(nil)

// New creates the interview screen for a generated session.
func New(cfg Config) *InterviewScreen {
	i := &InterviewScreen{
		cfg:     cfg,
		voiceOn: cfg.Speaker.Enabled(),
	}
	i.loadQuestion()
	return i
}

func (i *InterviewScreen) Title() string {
	return "Interview"
}

func (i *InterviewScreen) Init() tea.Cmd {
	var cmds []tea.Cmd
	if i.cfg.Session.Setup.Mode == session.ModeFaceToFace {
		// Camera failure is non-fatal: the preview just stays blank.
		if err := i.cfg.Camera.Start(); err != nil {
			i.cfg.Logger.Debug("camera unavailable", "error", err)
		} else {
			i.cameraOn = true
		}
	}
	i.narrate()
	if i.question().Kind() == bank.KindSubjective {
		cmds = append(cmds, i.ti.Init())
	}
	return tea.Batch(cmds...)
}

func (i *InterviewScreen) question() bank.Question {
	return i.cfg.Session.Questions[i.idx]
}

func (i *InterviewScreen) loadQuestion() {
	q := i.question()
	if q.Kind() == bank.KindObjective {
		i.mc = components.NewMultiChoice(q.Text, q.Options)
	} else {
		i.ti = components.NewTextInput("Speak or type your answer, Enter to submit", 500)
	}
}

func (i *InterviewScreen) narrate() {
	if !i.voiceOn {
		return
	}
	text := voice.NarrationText(i.idx+1, i.question())
	i.cfg.Speaker.Speak(text, i.cfg.Session.Setup.Language)
}

func (i *InterviewScreen) listen() tea.Cmd {
	if !i.cfg.Recognizer.Available() || i.listening {
		return nil
	}
	i.listening = true
	qid := i.question().ID
	rec := i.cfg.Recognizer
	lang := i.cfg.Session.Setup.Language
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		text, err := rec.Listen(ctx, lang)
		return transcriptMsg{questionID: qid, text: text, err: err}
	}
}

func (i *InterviewScreen) advance() tea.Cmd {
	i.cfg.Speaker.Stop()
	if i.idx+1 < i.cfg.Session.Len() {
		i.idx++
		i.loadQuestion()
		i.narrate()
		if i.question().Kind() == bank.KindSubjective {
			return i.ti.Init()
		}
		return nil
	}
	return i.finish()
}

func (i *InterviewScreen) finish() tea.Cmd {
	i.finishing = true
	if i.cameraOn {
		i.cfg.Camera.Stop()
	}
	sess := i.cfg.Session
	attempts := i.cfg.Attempts
	email := i.cfg.Email
	logger := i.cfg.Logger
	return func() tea.Msg {
		res := scoring.Score(sess, time.Now().UTC())
		if err := attempts.Append(context.Background(), email, res); err != nil {
			logger.Error("saving attempt failed", "error", err)
			return savedMsg{result: res, err: err}
		}
		return savedMsg{result: res}
	}
}

func (i *InterviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case transcriptMsg:
		i.listening = false
		if msg.err != nil {
			i.cfg.Logger.Debug("speech capture failed", "error", msg.err)
			return i, nil
		}
		i.cfg.Session.RecordSubjective(msg.questionID, msg.text)
		return i, i.advance()

	case savedMsg:
		// A failed save still shows the result; it is just not in the
		// history.
		next := results.New(msg.result, i.cfg.Speaker)
		return i, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: next}
		}

	case tea.KeyMsg:
		if i.finishing {
			return i, nil
		}
		switch msg.String() {
		case "ctrl+n":
			i.voiceOn = !i.voiceOn
			if !i.voiceOn {
				i.cfg.Speaker.Stop()
			} else {
				i.narrate()
			}
			return i, nil
		case "ctrl+l":
			if i.question().Kind() == bank.KindSubjective {
				return i, i.listen()
			}
			return i, nil
		case "ctrl+k":
			// Skip without answering; scoring treats it as incorrect.
			return i, i.advance()
		}
	}

	q := i.question()
	if q.Kind() == bank.KindObjective {
		var cmd tea.Cmd
		i.mc, cmd = i.mc.Update(msg)
		if i.mc.Submitted {
			i.cfg.Session.RecordObjective(q.ID, i.mc.ChosenIndex)
			return i, i.advance()
		}
		return i, cmd
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		if text := strings.TrimSpace(i.ti.Value()); text != "" {
			i.cfg.Session.RecordSubjective(q.ID, text)
		}
		return i, i.advance()
	}
	var cmd tea.Cmd
	i.ti, cmd = i.ti.Update(msg)
	return i, cmd
}

func (i *InterviewScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Answer"},
		{Key: "Ctrl+K", Description: "Skip"},
	}
	if i.cfg.Speaker.Enabled() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+N", Description: "Narration"})
	}
	if i.cfg.Recognizer.Available() && i.question().Kind() == bank.KindSubjective {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+L", Description: "Speak answer"})
	}
	hints = append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	return hints
}

func (i *InterviewScreen) View(width, height int) string {
	if i.finishing {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("scoring your round..."))
	}

	q := i.question()
	total := i.cfg.Session.Len()

	var b strings.Builder

	bar := components.NewProgressBar(
		fmt.Sprintf("Question %d of %d", i.idx+1, total),
		float64(i.idx)/float64(total),
		false,
		min(width-8, 60),
	)
	b.WriteString(bar.View() + "\n\n")

	meta := fmt.Sprintf("%s · %s", q.Topic, q.Difficulty.Label())
	if q.Category != "" {
		meta += " · " + q.Category
	}
	b.WriteString(theme.Hint.Render(meta) + "\n\n")

	if q.Kind() == bank.KindObjective {
		b.WriteString(i.mc.View())
	} else {
		b.WriteString(theme.Body.Bold(true).Render(q.Text) + "\n\n")
		b.WriteString(i.ti.View() + "\n")
		if i.listening {
			b.WriteString("\n" + theme.Hint.Render("listening..."))
		}
	}

	if i.cameraOn {
		b.WriteString("\n\n" + theme.Hint.Render("camera preview active"))
	}

	card := theme.Card.Width(min(width-4, 80)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
