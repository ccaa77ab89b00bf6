package journey

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"arrive/internal/logging"
	"arrive/internal/store"
	"arrive/internal/types"
)

// Recorder finalizes sessions into the append-only history logs. One
// Recorder spans one logical visit: finalizing twice returns the record
// already written.
type Recorder struct {
	journeys store.JourneyStore
	surveys  store.SurveyStore
	now      func() time.Time
	log      logging.Logger

	mu            sync.Mutex
	journeyRecord *types.JourneyRecord
	surveyRecord  *types.SessionRecord
}

type RecorderOption func(*Recorder)

func WithRecorderNow(now func() time.Time) RecorderOption {
	return func(r *Recorder) {
		if r == nil || now == nil {
			return
		}
		r.now = now
	}
}

func WithRecorderLogger(log logging.Logger) RecorderOption {
	return func(r *Recorder) {
		if r == nil || log == nil {
			return
		}
		r.log = log
	}
}

func NewRecorder(journeys store.JourneyStore, surveys store.SurveyStore, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		journeys: journeys,
		surveys:  surveys,
		now:      func() time.Time { return time.Now().UTC() },
		log:      logging.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// FinalizeJourney stamps the completed checkpoints into a history
// record and appends it. Baggage decisions stay with the in-progress
// checkpoints; the history log keeps the four named values.
func (r *Recorder) FinalizeJourney(ctx context.Context, checkpoints *types.JourneyCheckpoints) (*types.JourneyRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.journeyRecord != nil {
		return r.journeyRecord.Clone(), nil
	}
	if checkpoints == nil {
		return nil, errors.New("checkpoints are required")
	}
	record := &types.JourneyRecord{
		Arrival:   strings.TrimSpace(checkpoints.Arrival),
		Verb:      strings.TrimSpace(checkpoints.Verb),
		Note:      strings.TrimSpace(checkpoints.Note),
		Departure: strings.TrimSpace(checkpoints.Departure),
		CreatedAt: r.now(),
	}
	if err := r.journeys.Append(ctx, record); err != nil {
		return nil, err
	}
	r.journeyRecord = record
	r.log.Info("journey finalized",
		logging.F("arrival", record.Arrival),
		logging.F("departure", record.Departure))
	return record.Clone(), nil
}

// FinalizeSurvey stamps time, fills every configured question key
// (empty when unanswered), and appends the session. Idempotent: the
// second call returns the record already appended.
func (r *Recorder) FinalizeSurvey(ctx context.Context, mode types.SessionMode, facilitator string, answers map[string]types.Answer) (*types.SessionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.surveyRecord != nil {
		return r.surveyRecord.Clone(), nil
	}
	record := &types.SessionRecord{
		CreatedAt:   r.now(),
		Mode:        mode,
		Facilitator: strings.TrimSpace(facilitator),
		Answers:     make(map[string]types.Answer, len(researchQuestions)),
	}
	if record.Mode == "" {
		record.Mode = types.ModeSelfGuided
	}
	for _, question := range researchQuestions {
		answer, ok := answers[question.ID]
		if !ok {
			answer = types.EmptyAnswer()
		}
		record.Answers[question.ID] = answer
	}
	if err := r.surveys.Append(ctx, record); err != nil {
		return nil, err
	}
	r.surveyRecord = record
	r.log.Info("research session finalized",
		logging.F("mode", string(record.Mode)),
		logging.F("answered", record.AnsweredCount()))
	return record.Clone(), nil
}

// LastJourney returns the most recent history record for the
// returning-traveler greeting.
func (r *Recorder) LastJourney(ctx context.Context) (*types.JourneyRecord, bool, error) {
	return r.journeys.Last(ctx)
}

func (r *Recorder) LastSurvey(ctx context.Context) (*types.SessionRecord, bool, error) {
	return r.surveys.Last(ctx)
}

// ClearJourneys wipes the journey history log. The collective note pool
// is never touched; the caller supplies the confirmation step.
func (r *Recorder) ClearJourneys(ctx context.Context) error {
	return r.journeys.Clear(ctx)
}

func (r *Recorder) ClearSurveys(ctx context.Context) error {
	return r.surveys.Clear(ctx)
}
