package journey

import (
	"fmt"

	"arrive/internal/types"
)

// Ledger holds one session's answers keyed by question ID. Recording an
// answer whose shape disagrees with its question's type is a programming
// defect, not user input, so it panics.
type Ledger struct {
	questions map[string]types.Question
	answers   map[string]types.Answer
}

func NewLedger(questions []types.Question) *Ledger {
	byID := make(map[string]types.Question, len(questions))
	for _, question := range questions {
		byID[question.ID] = question
	}
	return &Ledger{
		questions: byID,
		answers:   map[string]types.Answer{},
	}
}

func (l *Ledger) Record(questionID string, answer types.Answer) {
	question, ok := l.questions[questionID]
	if !ok {
		panic(fmt.Sprintf("ledger: unknown question %q", questionID))
	}
	if !question.Accepts(answer) {
		panic(fmt.Sprintf("ledger: answer kind %q does not fit question %q of type %q",
			answer.Kind, questionID, question.Type))
	}
	l.answers[questionID] = answer
}

// Skip records an explicit empty answer; skipped is distinct from
// never-asked only until finalize fills the gaps.
func (l *Ledger) Skip(questionID string) {
	l.Record(questionID, types.EmptyAnswer())
}

func (l *Ledger) Answer(questionID string) (types.Answer, bool) {
	answer, ok := l.answers[questionID]
	return answer, ok
}

func (l *Ledger) Answers() map[string]types.Answer {
	out := make(map[string]types.Answer, len(l.answers))
	for id, answer := range l.answers {
		out[id] = answer
	}
	return out
}

func (l *Ledger) AnsweredCount() int {
	count := 0
	for _, answer := range l.answers {
		if !answer.IsEmpty() {
			count++
		}
	}
	return count
}
