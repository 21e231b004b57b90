package session

import (
	"github.com/google/uuid"

	"github.com/rahulj/mockmate/internal/bank"
)

// Session is one in-progress interview: the selected questions plus
// the answers recorded against them. The question list is fixed at
// creation; only the answer maps mutate. A session is consumed once
// by the scoring engine and then discarded.
type Session struct {
	ID        string
	Setup     Setup
	Questions []bank.Question

	objective  map[int]int    // question ID -> selected option index
	subjective map[int]string // question ID -> free-text answer
}

// New builds an empty session around an already-selected question
// list. Most callers go through Generator.Generate instead.
func New(setup Setup, questions []bank.Question) *Session {
	return &Session{
		ID:         uuid.New().String(),
		Setup:      setup,
		Questions:  questions,
		objective:  make(map[int]int),
		subjective: make(map[int]string),
	}
}

// RecordObjective upserts the selected option index for a question.
// The index is stored as given; scoring treats out-of-range or
// missing entries as incorrect.
func (s *Session) RecordObjective(questionID, optionIndex int) {
	s.objective[questionID] = optionIndex
}

// RecordSubjective upserts the free-text answer for a question,
// overwriting any previous text.
func (s *Session) RecordSubjective(questionID int, text string) {
	s.subjective[questionID] = text
}

// ObjectiveAnswer returns the recorded option index for a question.
func (s *Session) ObjectiveAnswer(questionID int) (int, bool) {
	idx, ok := s.objective[questionID]
	return idx, ok
}

// SubjectiveAnswer returns the recorded free-text answer for a question.
func (s *Session) SubjectiveAnswer(questionID int) (string, bool) {
	text, ok := s.subjective[questionID]
	return text, ok
}

// AnsweredCount returns how many of the session's questions have any
// recorded answer.
func (s *Session) AnsweredCount() int {
	n := 0
	for _, q := range s.Questions {
		if _, ok := s.objective[q.ID]; ok {
			n++
			continue
		}
		if text, ok := s.subjective[q.ID]; ok && text != "" {
			n++
		}
	}
	return n
}

// Len returns the number of questions in the session.
func (s *Session) Len() int {
	return len(s.Questions)
}
