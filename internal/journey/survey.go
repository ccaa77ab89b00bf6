package journey

import (
	"context"
	"strings"

	"arrive/internal/types"
)

// SurveyFlow walks the research questions one at a time. Each question
// is answered or skipped; exhausting the list finalizes the session
// through the recorder.
type SurveyFlow struct {
	questions   []types.Question
	index       int
	ledger      *Ledger
	mode        types.SessionMode
	facilitator string
	recorder    *Recorder
	record      *types.SessionRecord
}

type SurveyOption func(*SurveyFlow)

// WithFacilitator marks the session facilitated and names the
// researcher conducting it.
func WithFacilitator(name string) SurveyOption {
	return func(f *SurveyFlow) {
		if f == nil {
			return
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		f.mode = types.ModeFacilitated
		f.facilitator = name
	}
}

func WithQuestions(questions []types.Question) SurveyOption {
	return func(f *SurveyFlow) {
		if f == nil || len(questions) == 0 {
			return
		}
		f.questions = append([]types.Question{}, questions...)
	}
}

func NewSurveyFlow(recorder *Recorder, opts ...SurveyOption) *SurveyFlow {
	f := &SurveyFlow{
		questions: ResearchQuestions(),
		mode:      types.ModeSelfGuided,
		recorder:  recorder,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	f.ledger = NewLedger(f.questions)
	return f
}

func (f *SurveyFlow) Mode() types.SessionMode {
	return f.mode
}

func (f *SurveyFlow) Facilitator() string {
	return f.facilitator
}

// Current returns the question awaiting an answer.
func (f *SurveyFlow) Current() (types.Question, bool) {
	if f.Done() {
		return types.Question{}, false
	}
	return f.questions[f.index], true
}

// Position reports the one-based question number and the total count.
func (f *SurveyFlow) Position() (int, int) {
	position := f.index + 1
	if position > len(f.questions) {
		position = len(f.questions)
	}
	return position, len(f.questions)
}

func (f *SurveyFlow) Done() bool {
	return f.index >= len(f.questions)
}

// Answer records the answer for the current question and advances. When
// the last question is consumed the session finalizes.
func (f *SurveyFlow) Answer(ctx context.Context, answer types.Answer) error {
	question, ok := f.Current()
	if !ok {
		return nil
	}
	f.ledger.Record(question.ID, answer)
	f.index++
	return f.maybeFinalize(ctx)
}

// Skip records an explicit empty answer and advances.
func (f *SurveyFlow) Skip(ctx context.Context) error {
	question, ok := f.Current()
	if !ok {
		return nil
	}
	f.ledger.Skip(question.ID)
	f.index++
	return f.maybeFinalize(ctx)
}

// Record returns the finalized session, once the flow is done.
func (f *SurveyFlow) Record() (*types.SessionRecord, bool) {
	if f.record == nil {
		return nil, false
	}
	return f.record.Clone(), true
}

func (f *SurveyFlow) AnsweredCount() int {
	return f.ledger.AnsweredCount()
}

func (f *SurveyFlow) maybeFinalize(ctx context.Context) error {
	if !f.Done() || f.record != nil {
		return nil
	}
	record, err := f.recorder.FinalizeSurvey(ctx, f.mode, f.facilitator, f.ledger.Answers())
	if err != nil {
		return err
	}
	f.record = record
	return nil
}
