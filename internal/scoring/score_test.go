package scoring

import (
	"testing"
	"time"

	"github.com/rahulj/mockmate/internal/bank"
	"github.com/rahulj/mockmate/internal/session"
)

func objective(id int, topic string, correctIndex int) bank.Question {
	return bank.Question{
		ID:           id,
		Text:         "q",
		Options:      []string{"a", "b", "c", "d"},
		CorrectIndex: correctIndex,
		Topic:        topic,
		Difficulty:   bank.DifficultyEasy,
	}
}

func subjective(id int, topic string) bank.Question {
	return bank.Question{
		ID:         id,
		Text:       "q",
		Topic:      topic,
		Difficulty: bank.DifficultyMedium,
	}
}

func TestLevelFor(t *testing.T) {
	cases := []struct {
		percent int
		want    Level
	}{
		{100, LevelInterviewReady},
		{80, LevelInterviewReady},
		{79, LevelStrongIntermediate},
		{60, LevelStrongIntermediate},
		{59, LevelEmerging},
		{40, LevelEmerging},
		{39, LevelFoundation},
		{0, LevelFoundation},
	}
	for _, tc := range cases {
		if got := LevelFor(tc.percent); got != tc.want {
			t.Errorf("LevelFor(%d) = %q, want %q", tc.percent, got, tc.want)
		}
	}
}

func TestScoreCountsAndPercent(t *testing.T) {
	qs := []bank.Question{
		objective(1, "nets", 0),
		objective(2, "nets", 1),
		objective(3, "db", 2),
		objective(4, "db", 3),
		objective(5, "os", 0),
		objective(6, "os", 1),
		objective(7, "ds", 2),
		objective(8, "ds", 3),
		objective(9, "algo", 0),
		subjective(10, "hr"),
	}
	s := session.New(session.Setup{Domain: "Computer / IT", Count: 10}, qs)
	for _, q := range qs[:9] {
		s.RecordObjective(q.ID, q.CorrectIndex)
	}
	s.RecordSubjective(10, "my answer")

	res := Score(s, time.Now())
	if res.Total != 10 {
		t.Fatalf("Total = %d, want 10", res.Total)
	}
	if res.Correct != 9 {
		t.Fatalf("Correct = %d, want 9", res.Correct)
	}
	if res.ScorePercent != 90 {
		t.Fatalf("ScorePercent = %d, want 90", res.ScorePercent)
	}
	if res.Level != LevelInterviewReady {
		t.Fatalf("Level = %q, want %q", res.Level, LevelInterviewReady)
	}
	if len(res.WeakTopics) != 0 {
		t.Fatalf("WeakTopics = %v, want empty", res.WeakTopics)
	}
}

func TestScoreUnansweredIsIncorrect(t *testing.T) {
	qs := []bank.Question{
		objective(1, "nets", 0),
		objective(2, "db", 1),
	}
	s := session.New(session.Setup{}, qs)
	s.RecordObjective(1, 0)

	res := Score(s, time.Now())
	if res.Correct != 1 {
		t.Fatalf("Correct = %d, want 1", res.Correct)
	}
	if res.ScorePercent != 50 {
		t.Fatalf("ScorePercent = %d, want 50", res.ScorePercent)
	}
	if res.WeakTopics["db"] != 1 {
		t.Fatalf("WeakTopics = %v, want db:1", res.WeakTopics)
	}
	if res.PerQuestion[1].UserIndex != -1 {
		t.Fatalf("UserIndex = %d, want -1 for unanswered", res.PerQuestion[1].UserIndex)
	}
}

func TestScoreOutOfRangeAnswerIsIncorrect(t *testing.T) {
	qs := []bank.Question{objective(1, "nets", 0)}
	s := session.New(session.Setup{}, qs)
	s.RecordObjective(1, 7)

	res := Score(s, time.Now())
	if res.Correct != 0 {
		t.Fatalf("Correct = %d, want 0", res.Correct)
	}
	if res.PerQuestion[0].Correct {
		t.Fatal("out-of-range answer marked correct")
	}
	if res.WeakTopics["nets"] != 1 {
		t.Fatalf("WeakTopics = %v, want nets:1", res.WeakTopics)
	}
}

func TestScoreSubjectiveNeverCorrect(t *testing.T) {
	qs := []bank.Question{
		subjective(1, "hr"),
		subjective(2, "hr"),
	}
	s := session.New(session.Setup{}, qs)
	s.RecordSubjective(1, "a long thoughtful answer")

	res := Score(s, time.Now())
	if res.Total != 2 {
		t.Fatalf("Total = %d, want 2", res.Total)
	}
	if res.Correct != 0 {
		t.Fatalf("Correct = %d, want 0", res.Correct)
	}
	if res.ScorePercent != 0 {
		t.Fatalf("ScorePercent = %d, want 0", res.ScorePercent)
	}
	if len(res.WeakTopics) != 0 {
		t.Fatalf("WeakTopics = %v, want empty for subjective misses", res.WeakTopics)
	}
	if res.PerQuestion[0].AnswerText != "a long thoughtful answer" {
		t.Fatalf("AnswerText = %q", res.PerQuestion[0].AnswerText)
	}
}

func TestScoreEmptySession(t *testing.T) {
	s := session.New(session.Setup{}, nil)
	res := Score(s, time.Now())
	if res.Total != 0 || res.Correct != 0 || res.ScorePercent != 0 {
		t.Fatalf("got %d/%d %d%%, want all zero", res.Correct, res.Total, res.ScorePercent)
	}
	if res.Level != LevelFoundation {
		t.Fatalf("Level = %q, want %q", res.Level, LevelFoundation)
	}
}

func TestScoreRounding(t *testing.T) {
	// 2 of 3 correct -> 66.67 -> 67.
	qs := []bank.Question{
		objective(1, "a", 0),
		objective(2, "b", 0),
		objective(3, "c", 0),
	}
	s := session.New(session.Setup{}, qs)
	s.RecordObjective(1, 0)
	s.RecordObjective(2, 0)
	s.RecordObjective(3, 1)

	res := Score(s, time.Now())
	if res.ScorePercent != 67 {
		t.Fatalf("ScorePercent = %d, want 67", res.ScorePercent)
	}
}

func TestScoreCarriesSetupMetadata(t *testing.T) {
	setup := session.Setup{
		Domain:   "Aptitude / General",
		Role:     "Analyst",
		Position: "Fresher",
		Count:    1,
		Mode:     session.ModeFaceToFace,
		Language: "en-IN",
	}
	s := session.New(setup, []bank.Question{objective(1, "a", 0)})
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	res := Score(s, ts)
	if res.ID != s.ID {
		t.Fatalf("ID = %q, want session ID %q", res.ID, s.ID)
	}
	if res.Domain != setup.Domain || res.Role != setup.Role || res.Position != setup.Position {
		t.Fatal("setup metadata not carried into result")
	}
	if res.Mode != session.ModeFaceToFace || res.Language != "en-IN" {
		t.Fatal("mode/language not carried into result")
	}
	if !res.Timestamp.Equal(ts) {
		t.Fatalf("Timestamp = %v, want %v", res.Timestamp, ts)
	}
	if res.QuestionCount != 1 {
		t.Fatalf("QuestionCount = %d, want 1", res.QuestionCount)
	}
}

func TestScoreKeepsRequestedCountWhenPoolUnderfills(t *testing.T) {
	// The user asked for 10 questions but the pool only had 2. The
	// result records the request; Total reflects what was served.
	setup := session.Setup{Domain: "Computer / IT", Count: 10}
	s := session.New(setup, []bank.Question{
		objective(1, "a", 0),
		objective(2, "b", 0),
	})
	s.RecordObjective(1, 0)

	res := Score(s, time.Now())
	if res.QuestionCount != 10 {
		t.Fatalf("QuestionCount = %d, want requested 10", res.QuestionCount)
	}
	if res.Total != 2 {
		t.Fatalf("Total = %d, want 2", res.Total)
	}
}
