package results

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/rahulj/mockmate/internal/bank"
	"github.com/rahulj/mockmate/internal/scoring"
	"github.com/rahulj/mockmate/internal/voice"
)

// mockNarrator implements voice.Narrator, recording what was spoken.
type mockNarrator struct {
	enabled bool
	spoken  []string
}

func (m *mockNarrator) Enabled() bool { return m.enabled }

func (m *mockNarrator) Speak(text, _ string) *voice.Task {
	m.spoken = append(m.spoken, text)
	return nil
}

func (m *mockNarrator) Stop() {}

func testResult() scoring.Result {
	q := bank.Question{
		ID:           1,
		Text:         "Which layer does TCP live in?",
		Options:      []string{"Application", "Transport", "Link"},
		CorrectIndex: 1,
		Topic:        "Networking",
		Difficulty:   bank.DifficultyEasy,
	}
	return scoring.Result{
		ID:           "attempt-1",
		Total:        4,
		Correct:      3,
		ScorePercent: 75,
		Level:        scoring.LevelStrongIntermediate,
		PerQuestion: []scoring.QuestionReview{
			{Question: q, UserIndex: 1, Correct: true},
			{Question: q, UserIndex: 0},
			{Question: q, UserIndex: -1},
			{Question: bank.Question{ID: 2, Text: "Describe a hard bug", Topic: "HR"},
				UserIndex: -1, Subjective: true, AnswerText: "a race in the cache"},
		},
		WeakTopics: map[string]int{"Networking": 2},
		Domain:     "Computer / IT",
		Role:       "Backend Developer",
		Position:   "Entry-Level Job",
		Language:   "en-US",
	}
}

func TestSummaryViewShowsScoreAndRoadmap(t *testing.T) {
	r := New(testResult(), &mockNarrator{})
	view := r.View(120, 50)

	for _, want := range []string{
		"75%",
		"Strong Intermediate",
		"Networking (2 missed)",
		"Foundations",
		"Deep Practice",
		"Simulation",
		"Weeks 1-",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("summary view missing %q", want)
		}
	}
}

func TestHorizonKeysChangeWeekCount(t *testing.T) {
	r := New(testResult(), &mockNarrator{})

	r.Update(tea.KeyPressMsg{Code: '2'})
	if !strings.Contains(r.View(120, 50), "8 weeks") {
		t.Error("horizon 2 should plan 8 weeks")
	}

	r.Update(tea.KeyPressMsg{Code: '3'})
	if !strings.Contains(r.View(120, 50), "12 weeks") {
		t.Error("horizon 3 should plan 12 weeks")
	}

	r.Update(tea.KeyPressMsg{Code: '1'})
	if !strings.Contains(r.View(120, 50), "4 weeks") {
		t.Error("horizon 1 should plan 4 weeks")
	}
}

func TestReviewToggleShowsPerQuestionDetail(t *testing.T) {
	r := New(testResult(), &mockNarrator{})

	r.Update(tea.KeyPressMsg{Code: 'r'})
	view := r.View(120, 50)
	if !strings.Contains(view, "3/4 correct") {
		t.Error("review should show the correct count")
	}
	if !strings.Contains(view, "a race in the cache") {
		t.Error("review should show the subjective transcript")
	}
	if !strings.Contains(view, "unanswered") {
		t.Error("review should mark unanswered questions")
	}

	r.Update(tea.KeyPressMsg{Code: 'r'})
	if strings.Contains(r.View(120, 50), "unanswered") {
		t.Error("second toggle should return to the summary")
	}
}

func TestSpeakSummaryUsesNarrator(t *testing.T) {
	narrator := &mockNarrator{enabled: true}
	r := New(testResult(), narrator)

	r.Update(tea.KeyPressMsg{Code: 's'})
	if len(narrator.spoken) != 1 {
		t.Fatalf("spoken = %d utterances, want 1", len(narrator.spoken))
	}
	if !strings.Contains(narrator.spoken[0], "Backend Developer") {
		t.Errorf("spoken summary = %q, want the role mentioned", narrator.spoken[0])
	}
}

func TestSpeakIgnoredWhenDisabled(t *testing.T) {
	narrator := &mockNarrator{enabled: false}
	r := New(testResult(), narrator)

	r.Update(tea.KeyPressMsg{Code: 's'})
	if len(narrator.spoken) != 0 {
		t.Errorf("spoken = %d utterances, want none when disabled", len(narrator.spoken))
	}
}

func TestWeakTopicsOrderedMostMissedFirst(t *testing.T) {
	res := testResult()
	res.WeakTopics = map[string]int{"OS": 1, "Networking": 3, "DBMS": 3}

	order := weakOrder(res)
	want := []string{"DBMS", "Networking", "OS"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}
