// Package scoring turns a completed session into an immutable result:
// score percentage, readiness level, per-question review, and the
// weak-topic tallies the roadmap builds on.
package scoring

import (
	"math"
	"time"

	"github.com/rahulj/mockmate/internal/bank"
	"github.com/rahulj/mockmate/internal/session"
)

// Score computes the result of a finished session at the given time.
// Objective questions are correct only when the recorded option index
// matches the key; unanswered or out-of-range answers are incorrect.
// Subjective questions count toward the total but never toward the
// correct count. Topics of missed objective questions accumulate into
// WeakTopics.
func Score(s *session.Session, now time.Time) Result {
	reviews := make([]QuestionReview, 0, len(s.Questions))
	weak := make(map[string]int)
	correct := 0

	for _, q := range s.Questions {
		r := QuestionReview{Question: q, UserIndex: -1}
		switch q.Kind() {
		case bank.KindSubjective:
			r.Subjective = true
			if text, ok := s.SubjectiveAnswer(q.ID); ok {
				r.AnswerText = text
			}
		default:
			if idx, ok := s.ObjectiveAnswer(q.ID); ok {
				r.UserIndex = idx
				if idx >= 0 && idx < len(q.Options) && idx == q.CorrectIndex {
					r.Correct = true
					correct++
				}
			}
			if !r.Correct {
				weak[q.Topic]++
			}
		}
		reviews = append(reviews, r)
	}

	total := len(s.Questions)
	percent := 0
	if total > 0 {
		percent = int(math.Round(100 * float64(correct) / float64(total)))
	}

	return Result{
		ID:           s.ID,
		Total:        total,
		Correct:      correct,
		ScorePercent: percent,
		Level:        LevelFor(percent),
		PerQuestion:  reviews,
		WeakTopics:   weak,

		Domain:        s.Setup.Domain,
		Role:          s.Setup.Role,
		Position:      s.Setup.Position,
		Skills:        s.Setup.Skills,
		Mode:          s.Setup.Mode,
		Language:      s.Setup.Language,
		Categories:    s.Setup.Categories,
		QuestionCount: s.Setup.Count,
		Timestamp:     now,
	}
}
