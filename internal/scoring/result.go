package scoring

import (
	"time"

	"github.com/rahulj/mockmate/internal/bank"
	"github.com/rahulj/mockmate/internal/session"
)

// Level is the qualitative readiness band derived from the score.
type Level string

const (
	LevelInterviewReady     Level = "Interview-Ready"
	LevelStrongIntermediate Level = "Strong Intermediate"
	LevelEmerging           Level = "Emerging"
	LevelFoundation         Level = "Foundation"
)

// LevelFor maps a score percentage to its level. Thresholds are
// evaluated high to low; first match wins.
func LevelFor(scorePercent int) Level {
	switch {
	case scorePercent >= 80:
		return LevelInterviewReady
	case scorePercent >= 60:
		return LevelStrongIntermediate
	case scorePercent >= 40:
		return LevelEmerging
	default:
		return LevelFoundation
	}
}

// QuestionReview is one entry of the per-question breakdown. It
// snapshots the question so the review stays stable even if the bank
// changes later.
type QuestionReview struct {
	Question   bank.Question `json:"question"`
	UserIndex  int           `json:"user_index"`  // -1 when unanswered
	AnswerText string        `json:"answer_text"` // subjective transcript, empty otherwise
	Correct    bool          `json:"correct"`
	Subjective bool          `json:"subjective"`
}

// Result is the immutable outcome of scoring one completed session.
type Result struct {
	ID           string           `json:"id"`
	Total        int              `json:"total"`
	Correct      int              `json:"correct"`
	ScorePercent int              `json:"score_percent"`
	Level        Level            `json:"level"`
	PerQuestion  []QuestionReview `json:"per_question"`
	WeakTopics   map[string]int   `json:"weak_topics"`

	Domain        string       `json:"domain"`
	Role          string       `json:"role"`
	Position      string       `json:"position"`
	Skills        []string     `json:"skills,omitempty"`
	Mode          session.Mode `json:"mode"`
	Language      string       `json:"language"`
	Categories    []string     `json:"categories,omitempty"`
	QuestionCount int          `json:"question_count"` // requested at setup; Total is what was served
	Timestamp     time.Time    `json:"timestamp"`
}
