package export

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"arrive/internal/types"
)

func testSession() *types.SessionRecord {
	return &types.SessionRecord{
		CreatedAt:   time.Date(2026, 8, 30, 19, 30, 0, 0, time.UTC),
		Mode:        types.ModeSelfGuided,
		Answers: map[string]types.Answer{
			"attention_quality":  types.ScaleAnswer(8),
			"connection_felt":    types.ChoiceAnswer("Yes", "rooted"),
			"surprise_element":   types.ScalarAnswer(`she said "listen" and meant it`),
			"resonance_artifact": types.ScalarAnswer("a bronze ripple"),
			"future_sanctuary":   types.ChoiceAnswer("I already do", ""),
			"stage_of_change":    types.ChoiceAnswer("Acting :: I have an action I want to take", ""),
			"became_visible":     types.EmptyAnswer(),
			"wants_nurturing":    types.EmptyAnswer(),
			"question_holding":   types.EmptyAnswer(),
			"cultural_integration": types.EmptyAnswer(),
		},
	}
}

func TestResearchJSONRoundTrips(t *testing.T) {
	original := testSession()
	raw, err := ResearchJSON([]*types.SessionRecord{original})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	var doc ResearchDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("reimport: %v", err)
	}
	if len(doc.Sessions) != 1 {
		t.Fatalf("expected one session, got %d", len(doc.Sessions))
	}
	restored := doc.Sessions[0]
	if !restored.CreatedAt.Equal(original.CreatedAt) || restored.Mode != original.Mode {
		t.Fatalf("metadata did not round-trip: %+v", restored)
	}
	for id, want := range original.Answers {
		if got := restored.Answers[id]; got != want {
			t.Fatalf("answer %s did not round-trip: %+v != %+v", id, got, want)
		}
	}
}

func TestJourneyJSONIncludesHistory(t *testing.T) {
	checkpoints := &types.JourneyCheckpoints{Arrival: "curious", Verb: "tune"}
	history := []*types.JourneyRecord{{Arrival: "tired", Departure: "calm", CreatedAt: time.Now().UTC()}}
	raw, err := JourneyJSON(checkpoints, history)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	var doc JourneyDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("reimport: %v", err)
	}
	if doc.Checkpoints == nil || doc.Checkpoints.Arrival != "curious" || len(doc.History) != 1 {
		t.Fatalf("unexpected document: %+v", doc)
	}

	// Empty scopes export as empty arrays, not null.
	raw, err = JourneyJSON(nil, nil)
	if err != nil {
		t.Fatalf("empty export: %v", err)
	}
	if !strings.Contains(string(raw), `"history": []`) {
		t.Fatalf("empty history should render as []: %s", raw)
	}
}

func TestSummaryCSVQuoting(t *testing.T) {
	raw := string(SummaryCSV([]*types.SessionRecord{testSession()}))
	lines := strings.Split(strings.TrimRight(raw, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Session,Timestamp,Mode,Researcher,Attention Quality,Connection,") {
		t.Fatalf("unexpected header: %q", lines[0])
	}

	row := lines[1]
	if !strings.HasPrefix(row, `"1","2026-08-30T19:30:00.000Z","self","N/A","8","Yes",`) {
		t.Fatalf("unexpected row prefix: %q", row)
	}
	// Embedded quotes double inside a wrapped field.
	if !strings.Contains(row, `"she said ""listen"" and meant it"`) {
		t.Fatalf("quote doubling missing: %q", row)
	}
	// Empty answers still occupy their quoted column.
	if !strings.HasSuffix(row, `"","","",""`) {
		t.Fatalf("empty trailing columns wrong: %q", row)
	}
	// Every field is quote-wrapped: 14 columns means 28 quote-adjacent commas or ends.
	if strings.Count(row, `","`) != 13 {
		t.Fatalf("expected 13 field separators, got %d in %q", strings.Count(row, `","`), row)
	}
}

func TestSummaryCSVEmptyHistory(t *testing.T) {
	raw := string(SummaryCSV(nil))
	if !strings.HasSuffix(raw, "\n") || strings.Count(raw, "\n") != 1 {
		t.Fatalf("empty history should export header only: %q", raw)
	}
}
