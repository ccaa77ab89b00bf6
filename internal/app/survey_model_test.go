package app

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"arrive/internal/journey"
	"arrive/internal/store"
	"arrive/internal/types"
)

func newTestSurveyModel(t *testing.T, repo store.Repository, opts ...journey.SurveyOption) *SurveyModel {
	t.Helper()
	rec := journey.NewRecorder(repo.Journeys(), repo.Surveys(),
		journey.WithRecorderNow(func() time.Time { return testNow }))
	flow := journey.NewSurveyFlow(rec, opts...)
	m := NewSurveyModel(context.Background(), SurveyOptions{
		Flow:          flow,
		Now:           func() time.Time { return testNow },
		NoteMinHeight: 3,
		NoteMaxHeight: 8,
	})
	m.started = true
	m.focusQuestion()
	return m
}

func pressArrow(t *testing.T, m tea.Model, code rune) tea.Model {
	t.Helper()
	next, _ := m.Update(tea.KeyPressMsg{Code: code})
	return next
}

func TestSurveyScaleAdjustAndSubmit(t *testing.T) {
	repo := newTestRepository(t)
	m := newTestSurveyModel(t, repo)

	pressArrow(t, m, tea.KeyRight)
	pressArrow(t, m, tea.KeyRight)
	pressArrow(t, m, tea.KeyRight)
	if m.scale != 8 {
		t.Fatalf("expected scale 8, got %d", m.scale)
	}
	pressEnter(t, m)

	question, _ := m.flow.Current()
	if question.ID != "connection_felt" {
		t.Fatalf("expected second question, got %q", question.ID)
	}
}

func TestSurveyScaleClampsAtBounds(t *testing.T) {
	repo := newTestRepository(t)
	m := newTestSurveyModel(t, repo)

	for range 20 {
		pressArrow(t, m, tea.KeyRight)
	}
	if m.scale != types.ScaleMax {
		t.Fatalf("expected %d, got %d", types.ScaleMax, m.scale)
	}
	for range 20 {
		pressArrow(t, m, tea.KeyLeft)
	}
	if m.scale != types.ScaleMin {
		t.Fatalf("expected %d, got %d", types.ScaleMin, m.scale)
	}
}

func TestSurveyFollowUpShownOnlyForTriggerOption(t *testing.T) {
	repo := newTestRepository(t)
	m := newTestSurveyModel(t, repo)
	pressEnter(t, m) // accept the default scale

	// "Yes" is the first option and carries the follow-up.
	pressEnter(t, m)
	if !m.followUpOpen {
		t.Fatalf("expected follow-up input for Yes")
	}
	m.followUp.SetValue("warmth")
	pressEnter(t, m)

	completeSurvey(t, m)
	record, ok := m.flow.Record()
	if !ok {
		t.Fatalf("expected record")
	}
	answer := record.Answers["connection_felt"]
	if answer.Selection != "Yes" || answer.FollowUp != "warmth" {
		t.Fatalf("unexpected connection answer: %+v", answer)
	}
}

func TestSurveyNoFollowUpForOtherOption(t *testing.T) {
	repo := newTestRepository(t)
	m := newTestSurveyModel(t, repo)
	pressEnter(t, m)

	pressArrow(t, m, tea.KeyDown) // "No"
	pressEnter(t, m)
	if m.followUpOpen {
		t.Fatalf("follow-up should not open for No")
	}
	question, _ := m.flow.Current()
	if question.ID != "surprise_element" {
		t.Fatalf("expected to advance, at %q", question.ID)
	}
}

func completeSurvey(t *testing.T, m *SurveyModel) {
	t.Helper()
	guard := 0
	for !m.flow.Done() {
		guard++
		if guard > 50 {
			t.Fatalf("survey did not finish")
		}
		question, ok := m.flow.Current()
		if !ok {
			break
		}
		switch question.Type {
		case types.QuestionTypeScale:
			pressEnter(t, m)
		case types.QuestionTypeSingleChoice:
			pressArrow(t, m, tea.KeyDown)
			pressEnter(t, m)
		case types.QuestionTypeShortText:
			m.input.SetValue("a felt answer")
			pressEnter(t, m)
		case types.QuestionTypeLongText:
			m.note.area.SetValue("a longer reflection on the field")
			pressEnter(t, m)
		}
	}
}

func TestSurveyCompletionFinalizesRecord(t *testing.T) {
	repo := newTestRepository(t)
	m := newTestSurveyModel(t, repo)

	completeSurvey(t, m)
	record, ok := m.flow.Record()
	if !ok {
		t.Fatalf("expected finalized record")
	}
	if len(record.Answers) != len(journey.ResearchQuestions()) {
		t.Fatalf("expected every question keyed, got %d", len(record.Answers))
	}
	persisted, ok, err := repo.Surveys().Last(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected persisted session, ok=%v err=%v", ok, err)
	}
	if persisted.Mode != types.ModeSelfGuided {
		t.Fatalf("expected self mode, got %q", persisted.Mode)
	}
	if !strings.Contains(m.View(), "Thank You for Deepening the Field") {
		t.Fatalf("missing completion screen")
	}
}

func TestSurveyFacilitatedModeCarriesResearcher(t *testing.T) {
	repo := newTestRepository(t)
	m := newTestSurveyModel(t, repo, journey.WithFacilitator("Jero"))

	completeSurvey(t, m)
	record, ok := m.flow.Record()
	if !ok {
		t.Fatalf("expected record")
	}
	if record.Mode != types.ModeFacilitated || record.Facilitator != "Jero" {
		t.Fatalf("unexpected mode/facilitator: %q %q", record.Mode, record.Facilitator)
	}
}

func TestSurveyEmptyTextNextRecordsSkip(t *testing.T) {
	repo := newTestRepository(t)
	m := newTestSurveyModel(t, repo)
	pressEnter(t, m)                      // scale
	pressArrow(t, m, tea.KeyDown)         // choice: No
	pressEnter(t, m)                      // submit
	pressEnter(t, m)                      // surprise_element left blank

	completeSurvey(t, m)
	record, _ := m.flow.Record()
	if !record.Answers["surprise_element"].IsEmpty() {
		t.Fatalf("expected empty answer for blank Next")
	}
}

func TestSurveyGlossaryOpensDefinition(t *testing.T) {
	repo := newTestRepository(t)
	m := newTestSurveyModel(t, repo)

	next, _ := m.Update(tea.KeyPressMsg{Code: 'g', Mod: tea.ModCtrl})
	m = next.(*SurveyModel)
	if !m.glossaryOpen {
		t.Fatalf("expected glossary open")
	}
	view := m.View()
	if !strings.Contains(view, "Field Glossary") {
		t.Fatalf("missing glossary list: %q", view)
	}
	pressEnter(t, m)
	if m.glossaryTerm == "" {
		t.Fatalf("expected a term to open")
	}
	pressArrow(t, m, tea.KeyEscape)
	if m.glossaryTerm != "" {
		t.Fatalf("esc should return to the list")
	}
}
