package bank

import "fmt"

// Kind distinguishes the two question shapes.
type Kind int

const (
	// KindObjective questions carry a fixed option list and a single
	// correct index.
	KindObjective Kind = iota
	// KindSubjective questions are free-response; they have no options
	// and no correctness signal.
	KindSubjective
)

// Difficulty is the coarse difficulty band of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Label returns a human-readable name for the difficulty.
func (d Difficulty) Label() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	default:
		return string(d)
	}
}

// Question is a single immutable bank entry. A question is either
// objective (non-empty Options, valid CorrectIndex) or subjective
// (empty Options); Validate rejects anything in between, so a loaded
// catalog only ever contains well-formed questions.
type Question struct {
	ID           int        `json:"id"`
	Text         string     `json:"text"`
	Options      []string   `json:"options,omitempty"`
	CorrectIndex int        `json:"correct_index,omitempty"`
	Topic        string     `json:"topic"`
	Difficulty   Difficulty `json:"difficulty"`
	Category     string     `json:"category,omitempty"`
}

// Kind reports whether the question is objective or subjective.
func (q Question) Kind() Kind {
	if len(q.Options) == 0 {
		return KindSubjective
	}
	return KindObjective
}

// Validate enforces the objective/subjective invariant.
func (q Question) Validate() error {
	if q.Text == "" {
		return fmt.Errorf("question %d: empty text", q.ID)
	}
	if q.Topic == "" {
		return fmt.Errorf("question %d: empty topic", q.ID)
	}
	switch q.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return fmt.Errorf("question %d: unknown difficulty %q", q.ID, q.Difficulty)
	}
	if q.Kind() == KindSubjective {
		if q.CorrectIndex != 0 {
			return fmt.Errorf("question %d: subjective question with correct_index %d", q.ID, q.CorrectIndex)
		}
		return nil
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("question %d: objective question needs at least 2 options, got %d", q.ID, len(q.Options))
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("question %d: correct_index %d out of range for %d options", q.ID, q.CorrectIndex, len(q.Options))
	}
	return nil
}
