package interview

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/rahulj/mockmate/internal/bank"
	"github.com/rahulj/mockmate/internal/scoring"
	"github.com/rahulj/mockmate/internal/session"
	"github.com/rahulj/mockmate/internal/voice"
)

// mockAttempts implements store.AttemptRepo for testing.
type mockAttempts struct {
	appended []scoring.Result
	err      error
}

func (m *mockAttempts) Append(_ context.Context, _ string, res scoring.Result) error {
	if m.err != nil {
		return m.err
	}
	m.appended = append(m.appended, res)
	return nil
}

func (m *mockAttempts) List(_ context.Context, _ string, _ int) ([]scoring.Result, error) {
	return m.appended, nil
}

func (m *mockAttempts) Last(_ context.Context, _ string) (*scoring.Result, error) {
	if len(m.appended) == 0 {
		return nil, nil
	}
	return &m.appended[len(m.appended)-1], nil
}

func (m *mockAttempts) Prune(_ context.Context, _ string, _ int) error {
	return nil
}

// mockNarrator implements voice.Narrator, recording what was spoken.
type mockNarrator struct {
	enabled bool
	spoken  []string
	stops   int
}

func (m *mockNarrator) Enabled() bool { return m.enabled }

func (m *mockNarrator) Speak(text, _ string) *voice.Task {
	m.spoken = append(m.spoken, text)
	return nil
}

func (m *mockNarrator) Stop() { m.stops++ }

// mockRecognizer implements voice.Recognizer with a canned transcript.
type mockRecognizer struct {
	transcript string
	err        error
}

func (m *mockRecognizer) Listen(_ context.Context, _ string) (string, error) {
	return m.transcript, m.err
}

func (m *mockRecognizer) Available() bool { return true }

// mockCamera implements voice.Camera, recording starts and stops.
type mockCamera struct {
	startErr error
	started  int
	stopped  int
}

func (m *mockCamera) Start() error {
	if m.startErr != nil {
		return m.startErr
	}
	m.started++
	return nil
}

func (m *mockCamera) Stop()           { m.stopped++ }
func (m *mockCamera) Available() bool { return true }

func objective(id int, topic string, correctIdx int) bank.Question {
	return bank.Question{
		ID:           id,
		Text:         "Pick the right answer",
		Options:      []string{"alpha", "beta", "gamma"},
		CorrectIndex: correctIdx,
		Topic:        topic,
		Difficulty:   bank.DifficultyEasy,
	}
}

func subjective(id int) bank.Question {
	return bank.Question{
		ID:         id,
		Text:       "Tell me about a project you are proud of",
		Topic:      "HR",
		Difficulty: bank.DifficultyMedium,
	}
}

func testConfig(questions []bank.Question) (Config, *mockAttempts, *mockNarrator) {
	attempts := &mockAttempts{}
	narrator := &mockNarrator{enabled: true}
	setup := session.Setup{
		Domain:   "Computer / IT",
		Role:     "Backend Developer",
		Mode:     session.ModeStandard,
		Language: "en-US",
		Count:    len(questions),
	}
	return Config{
		Session:    session.New(setup, questions),
		Attempts:   attempts,
		Email:      "a@b.c",
		Speaker:    narrator,
		Recognizer: &mockRecognizer{},
		Camera:     &mockCamera{},
		Logger:     slog.New(slog.DiscardHandler),
	}, attempts, narrator
}

func TestInitNarratesFirstQuestion(t *testing.T) {
	cfg, _, narrator := testConfig([]bank.Question{objective(1, "Networking", 0)})
	i := New(cfg)
	i.Init()

	if len(narrator.spoken) != 1 {
		t.Fatalf("spoken = %d utterances, want 1", len(narrator.spoken))
	}
	if !strings.Contains(narrator.spoken[0], "Question 1") {
		t.Errorf("narration = %q, want question ordinal", narrator.spoken[0])
	}
	if !strings.Contains(narrator.spoken[0], "Option 1: alpha") {
		t.Errorf("narration = %q, want spoken options", narrator.spoken[0])
	}
}

func TestNarrationToggleStopsSpeaker(t *testing.T) {
	cfg, _, narrator := testConfig([]bank.Question{objective(1, "Networking", 0)})
	i := New(cfg)
	i.Init()

	i.Update(tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl})
	if narrator.stops != 1 {
		t.Errorf("stops = %d, want 1 after disabling narration", narrator.stops)
	}

	i.Update(tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl})
	if len(narrator.spoken) != 2 {
		t.Errorf("spoken = %d, want renarration after re-enabling", len(narrator.spoken))
	}
}

func TestObjectiveAnswerRecordsAndAdvances(t *testing.T) {
	cfg, _, _ := testConfig([]bank.Question{
		objective(1, "Networking", 1),
		objective(2, "OS", 0),
	})
	i := New(cfg)
	i.Init()

	i.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	i.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if idx, ok := cfg.Session.ObjectiveAnswer(1); !ok || idx != 1 {
		t.Errorf("recorded answer = (%d, %v), want (1, true)", idx, ok)
	}
	view := i.View(100, 40)
	if !strings.Contains(view, "Question 2 of 2") {
		t.Error("screen should advance to the second question")
	}
}

func TestSkipLeavesQuestionUnanswered(t *testing.T) {
	cfg, _, _ := testConfig([]bank.Question{
		objective(1, "Networking", 0),
		objective(2, "OS", 0),
	})
	i := New(cfg)
	i.Init()

	i.Update(tea.KeyPressMsg{Code: 'k', Mod: tea.ModCtrl})

	if _, ok := cfg.Session.ObjectiveAnswer(1); ok {
		t.Error("skipped question should have no recorded answer")
	}
	if !strings.Contains(i.View(100, 40), "Question 2 of 2") {
		t.Error("skip should advance to the next question")
	}
}

func TestSubjectiveEnterRecordsText(t *testing.T) {
	cfg, _, _ := testConfig([]bank.Question{
		subjective(1),
		objective(2, "OS", 0),
	})
	i := New(cfg)
	i.Init()

	for _, r := range "built a cache" {
		i.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	i.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if text, ok := cfg.Session.SubjectiveAnswer(1); !ok || text != "built a cache" {
		t.Errorf("recorded text = (%q, %v), want (%q, true)", text, ok, "built a cache")
	}
}

func TestTranscriptRecordsSubjectiveAnswer(t *testing.T) {
	cfg, _, _ := testConfig([]bank.Question{
		subjective(1),
		objective(2, "OS", 0),
	})
	i := New(cfg)
	i.Init()

	i.Update(transcriptMsg{questionID: 1, text: "spoken answer"})

	if text, ok := cfg.Session.SubjectiveAnswer(1); !ok || text != "spoken answer" {
		t.Errorf("recorded text = (%q, %v), want transcript", text, ok)
	}
}

func TestFailedTranscriptKeepsQuestion(t *testing.T) {
	cfg, _, _ := testConfig([]bank.Question{
		subjective(1),
		objective(2, "OS", 0),
	})
	i := New(cfg)
	i.Init()

	i.Update(transcriptMsg{questionID: 1, err: errors.New("no speech detected")})

	if _, ok := cfg.Session.SubjectiveAnswer(1); ok {
		t.Error("failed capture should not record an answer")
	}
	if !strings.Contains(i.View(100, 40), "Question 1 of 2") {
		t.Error("failed capture should not advance")
	}
}

func TestLastAnswerScoresAndPersists(t *testing.T) {
	cfg, attempts, _ := testConfig([]bank.Question{objective(1, "Networking", 0)})
	i := New(cfg)
	i.Init()

	_, cmd := i.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("answering the last question should produce the finish command")
	}
	msg := cmd()
	saved, ok := msg.(savedMsg)
	if !ok {
		t.Fatalf("expected savedMsg, got %T", msg)
	}
	if saved.err != nil {
		t.Fatalf("unexpected save error: %v", saved.err)
	}
	if saved.result.ScorePercent != 100 {
		t.Errorf("ScorePercent = %d, want 100", saved.result.ScorePercent)
	}
	if len(attempts.appended) != 1 {
		t.Fatalf("appended = %d attempts, want 1", len(attempts.appended))
	}
}

func TestFailedSaveStillShowsResult(t *testing.T) {
	cfg, attempts, _ := testConfig([]bank.Question{objective(1, "Networking", 0)})
	attempts.err = errors.New("disk full")
	i := New(cfg)
	i.Init()

	_, cmd := i.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	msg := cmd()
	saved, ok := msg.(savedMsg)
	if !ok {
		t.Fatalf("expected savedMsg, got %T", msg)
	}
	if saved.err == nil {
		t.Error("save error should be carried on the message")
	}
	if saved.result.Total != 1 {
		t.Error("result should be present despite the failed save")
	}
}

func TestFaceToFaceStartsCamera(t *testing.T) {
	cfg, _, _ := testConfig([]bank.Question{objective(1, "Networking", 0)})
	cfg.Session.Setup.Mode = session.ModeFaceToFace
	cam := &mockCamera{}
	cfg.Camera = cam

	i := New(cfg)
	i.Init()

	if cam.started != 1 {
		t.Errorf("camera starts = %d, want 1", cam.started)
	}
	if !strings.Contains(i.View(100, 40), "camera preview active") {
		t.Error("view should mention the active camera preview")
	}
}

func TestCameraFailureIsNonFatal(t *testing.T) {
	cfg, _, _ := testConfig([]bank.Question{objective(1, "Networking", 0)})
	cfg.Session.Setup.Mode = session.ModeFaceToFace
	cfg.Camera = &mockCamera{startErr: voice.ErrUnavailable}

	i := New(cfg)
	i.Init()

	if strings.Contains(i.View(100, 40), "camera preview active") {
		t.Error("failed camera should leave the preview out of the view")
	}
}
