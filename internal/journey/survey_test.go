package journey

import (
	"context"
	"testing"

	"arrive/internal/types"
)

func TestSurveyFlowAnswersAndFinalizes(t *testing.T) {
	ctx := context.Background()
	recorder, repo := newTestRecorder(t)
	flow := NewSurveyFlow(recorder, WithFacilitator("Jero"))

	if flow.Mode() != types.ModeFacilitated || flow.Facilitator() != "Jero" {
		t.Fatalf("facilitated setup failed: %s %s", flow.Mode(), flow.Facilitator())
	}

	position, total := flow.Position()
	if position != 1 || total != len(ResearchQuestions()) {
		t.Fatalf("unexpected position %d/%d", position, total)
	}

	for !flow.Done() {
		question, ok := flow.Current()
		if !ok {
			t.Fatalf("flow not done but no current question")
		}
		var err error
		switch question.Type {
		case types.QuestionTypeScale:
			err = flow.Answer(ctx, types.ScaleAnswer(8))
		case types.QuestionTypeSingleChoice:
			selection := question.Options[0]
			followUp := ""
			if _, ok := question.FollowUpFor(selection); ok {
				followUp = "rooted"
			}
			err = flow.Answer(ctx, types.ChoiceAnswer(selection, followUp))
		default:
			err = flow.Skip(ctx)
		}
		if err != nil {
			t.Fatalf("answer %s: %v", question.ID, err)
		}
	}

	record, ok := flow.Record()
	if !ok {
		t.Fatalf("finished flow must expose its record")
	}
	if record.Answers["connection_felt"] != types.ChoiceAnswer("Yes", "rooted") {
		t.Fatalf("follow-up lost: %+v", record.Answers["connection_felt"])
	}
	if record.Answers["surprise_element"].IsEmpty() == false {
		t.Fatalf("skipped question must store an empty answer")
	}

	sessions, err := repo.Surveys().List(ctx)
	if err != nil || len(sessions) != 1 {
		t.Fatalf("expected one stored session, got %d err=%v", len(sessions), err)
	}

	// Extra input after completion is a no-op.
	if err := flow.Answer(ctx, types.ScalarAnswer("late")); err != nil {
		t.Fatalf("post-completion answer: %v", err)
	}
	sessions, _ = repo.Surveys().List(ctx)
	if len(sessions) != 1 {
		t.Fatalf("post-completion input must not append")
	}
}

func TestSurveyFlowShapeMismatchPanics(t *testing.T) {
	ctx := context.Background()
	recorder, _ := newTestRecorder(t)
	flow := NewSurveyFlow(recorder)

	defer func() {
		if recover() == nil {
			t.Fatalf("scale question fed a scalar answer must panic")
		}
	}()
	_ = flow.Answer(ctx, types.ScalarAnswer("seven"))
}

func TestLedgerSkipIsExplicitEmpty(t *testing.T) {
	ledger := NewLedger(ResearchQuestions())
	ledger.Skip("surprise_element")
	answer, ok := ledger.Answer("surprise_element")
	if !ok || !answer.IsEmpty() {
		t.Fatalf("skip must record an explicit empty answer, got ok=%v %+v", ok, answer)
	}
	if _, ok := ledger.Answer("became_visible"); ok {
		t.Fatalf("never-asked question should not be recorded")
	}
}

func TestLedgerUnknownQuestionPanics(t *testing.T) {
	ledger := NewLedger(ResearchQuestions())
	defer func() {
		if recover() == nil {
			t.Fatalf("unknown question must panic")
		}
	}()
	ledger.Record("favorite_color", types.ScalarAnswer("bronze"))
}
