package journey

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"arrive/internal/store"
	"arrive/internal/types"
)

func newTestRecorder(t *testing.T) (*Recorder, store.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo := store.NewFileRepository(store.RepositoryPaths{
		CheckpointsPath: filepath.Join(dir, "checkpoints.json"),
		JourneysPath:    filepath.Join(dir, "journeys.json"),
		SurveysPath:     filepath.Join(dir, "sessions.json"),
		NotesPath:       filepath.Join(dir, "notes.json"),
	})
	fixed := time.Date(2026, 8, 30, 19, 0, 0, 0, time.UTC)
	recorder := NewRecorder(repo.Journeys(), repo.Surveys(),
		WithRecorderNow(func() time.Time { return fixed }))
	return recorder, repo
}

func TestFinalizeJourneyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	recorder, repo := newTestRecorder(t)

	checkpoints := &types.JourneyCheckpoints{
		Arrival: " scattered ", Verb: "tune", Note: "bronze hum", Departure: "calm",
	}
	first, err := recorder.FinalizeJourney(ctx, checkpoints)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if first.Arrival != "scattered" {
		t.Fatalf("finalize should trim values: %+v", first)
	}
	second, err := recorder.FinalizeJourney(ctx, checkpoints)
	if err != nil {
		t.Fatalf("finalize again: %v", err)
	}
	if *second != *first {
		t.Fatalf("repeat finalize returned a different record")
	}

	// Returned records are copies; a caller editing one must not reach
	// the recorder's own state.
	second.Arrival = "rewritten"
	third, err := recorder.FinalizeJourney(ctx, checkpoints)
	if err != nil {
		t.Fatalf("finalize after caller edit: %v", err)
	}
	if third.Arrival != "scattered" {
		t.Fatalf("caller edit leaked into the recorder: %+v", third)
	}

	journeys, err := repo.Journeys().List(ctx)
	if err != nil || len(journeys) != 1 {
		t.Fatalf("history must hold exactly one record, got %d err=%v", len(journeys), err)
	}
}

func TestFinalizeSurveyFillsEveryQuestion(t *testing.T) {
	ctx := context.Background()
	recorder, repo := newTestRecorder(t)

	answers := map[string]types.Answer{
		"attention_quality": types.ScaleAnswer(7),
		"connection_felt":   types.ChoiceAnswer("Yes", "rooted"),
	}
	record, err := recorder.FinalizeSurvey(ctx, types.ModeFacilitated, "  Jero  ", answers)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if record.Facilitator != "Jero" {
		t.Fatalf("facilitator should trim: %q", record.Facilitator)
	}
	if len(record.Answers) != len(ResearchQuestions()) {
		t.Fatalf("every configured question must have a key, got %d", len(record.Answers))
	}
	if !record.Answers["question_holding"].IsEmpty() {
		t.Fatalf("unanswered question must be empty, got %+v", record.Answers["question_holding"])
	}
	if record.AnsweredCount() != 2 {
		t.Fatalf("answered count = %d, want 2", record.AnsweredCount())
	}

	// Idempotent per visit: one more finalize, still one stored session.
	if _, err := recorder.FinalizeSurvey(ctx, types.ModeSelfGuided, "", nil); err != nil {
		t.Fatalf("repeat finalize: %v", err)
	}
	sessions, err := repo.Surveys().List(ctx)
	if err != nil || len(sessions) != 1 {
		t.Fatalf("expected one stored session, got %d err=%v", len(sessions), err)
	}
	if sessions[0].Mode != types.ModeFacilitated {
		t.Fatalf("repeat finalize overwrote the original record")
	}
}

func TestFinalizeSurveyDefaultsMode(t *testing.T) {
	ctx := context.Background()
	recorder, _ := newTestRecorder(t)
	record, err := recorder.FinalizeSurvey(ctx, "", "", nil)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if record.Mode != types.ModeSelfGuided {
		t.Fatalf("blank mode should default to self-guided, got %q", record.Mode)
	}
}

func TestLastJourneyForReturningTraveler(t *testing.T) {
	ctx := context.Background()
	recorder, repo := newTestRecorder(t)

	if _, ok, err := recorder.LastJourney(ctx); err != nil || ok {
		t.Fatalf("fresh history should have no last journey")
	}
	if err := repo.Journeys().Append(ctx, &types.JourneyRecord{Arrival: "restless", Departure: "still", CreatedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("seed history: %v", err)
	}
	last, ok, err := recorder.LastJourney(ctx)
	if err != nil || !ok {
		t.Fatalf("last journey: ok=%v err=%v", ok, err)
	}
	if last.Arrival != "restless" || last.Departure != "still" {
		t.Fatalf("unexpected last journey: %+v", last)
	}
}
