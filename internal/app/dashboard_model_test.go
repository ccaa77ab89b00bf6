package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"arrive/internal/journey"
	"arrive/internal/store"
	"arrive/internal/types"
)

func seedSessions(t *testing.T, repo store.Repository, records ...*types.SessionRecord) {
	t.Helper()
	for _, record := range records {
		if err := repo.Surveys().Append(context.Background(), record); err != nil {
			t.Fatalf("append session: %v", err)
		}
	}
}

func sessionWithConnection(created time.Time, selection, followUp string) *types.SessionRecord {
	return &types.SessionRecord{
		CreatedAt: created,
		Mode:      types.ModeSelfGuided,
		Answers: map[string]types.Answer{
			"attention_quality": types.ScaleAnswer(7),
			"connection_felt":   types.ChoiceAnswer(selection, followUp),
			"future_sanctuary":  types.ChoiceAnswer("Yes", ""),
			"surprise_element":  types.ScalarAnswer("the silence had a shape"),
		},
	}
}

func newTestDashboardModel(t *testing.T, repo store.Repository) *DashboardModel {
	t.Helper()
	rec := journey.NewRecorder(repo.Journeys(), repo.Surveys(),
		journey.WithRecorderNow(func() time.Time { return testNow }))
	return NewDashboardModel(context.Background(), DashboardOptions{
		Surveys:  repo.Surveys(),
		Recorder: rec,
		Now:      func() time.Time { return testNow },
	})
}

func TestDashboardOverviewContent(t *testing.T) {
	repo := newTestRepository(t)
	seedSessions(t, repo,
		sessionWithConnection(testNow, "Yes", "warmth"),
		sessionWithConnection(testNow.Add(time.Hour), "No", ""),
	)
	m := newTestDashboardModel(t, repo)

	content := m.overviewContent(76)
	if !strings.Contains(content, "2") {
		t.Fatalf("missing total: %q", content)
	}
	if !strings.Contains(content, "%") {
		t.Fatalf("missing completion rate: %q", content)
	}
}

func TestDashboardSynthesisShowsConnectionWordsAndTally(t *testing.T) {
	repo := newTestRepository(t)
	seedSessions(t, repo,
		sessionWithConnection(testNow, "Yes", "warmth"),
		sessionWithConnection(testNow.Add(time.Hour), "Yes", "belonging"),
	)
	m := newTestDashboardModel(t, repo)

	content := m.synthesisContent(76)
	if !strings.Contains(content, "warmth") || !strings.Contains(content, "belonging") {
		t.Fatalf("missing connection words: %q", content)
	}
	if !strings.Contains(content, "Yes:") {
		t.Fatalf("missing sanctuary tally: %q", content)
	}
	if !strings.Contains(content, "the silence had a shape") {
		t.Fatalf("missing freeform quote")
	}
}

func TestDashboardComparisonNeedsTwoSelections(t *testing.T) {
	repo := newTestRepository(t)
	seedSessions(t, repo,
		sessionWithConnection(testNow, "Yes", "warmth"),
		sessionWithConnection(testNow.Add(time.Hour), "No", ""),
	)
	m := newTestDashboardModel(t, repo)

	if got := m.comparisonContent(76); !strings.Contains(got, "at least two") {
		t.Fatalf("expected selection hint, got %q", got)
	}

	m.tab = tabResponses
	m.toggleSelection() // session 1
	m.cursor = 1
	m.toggleSelection() // session 2
	m.tab = tabComparison
	for m.compareQuestionID() != "connection_felt" {
		m.cycleCompareQuestion(1)
	}
	content := m.comparisonContent(76)
	if !strings.Contains(content, "Changed") {
		t.Fatalf("expected Changed tag, got %q", content)
	}
}

func TestDashboardClearIsConfirmationGated(t *testing.T) {
	repo := newTestRepository(t)
	seedSessions(t, repo, sessionWithConnection(testNow, "Yes", "warmth"))
	m := newTestDashboardModel(t, repo)

	m.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if !m.confirm.IsOpen() {
		t.Fatalf("expected confirm dialog")
	}
	m.Update(tea.KeyPressMsg{Code: 'n', Text: "n"})
	sessions, _ := repo.Surveys().List(context.Background())
	if len(sessions) != 1 {
		t.Fatalf("cancel must not clear, got %d sessions", len(sessions))
	}

	m.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	m.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	sessions, _ = repo.Surveys().List(context.Background())
	if len(sessions) != 0 {
		t.Fatalf("confirm should clear, got %d sessions", len(sessions))
	}
}

func TestDashboardExportsWriteFiles(t *testing.T) {
	repo := newTestRepository(t)
	seedSessions(t, repo, sessionWithConnection(testNow, "Yes", "warmth"))
	m := newTestDashboardModel(t, repo)

	t.Chdir(t.TempDir())
	m.Update(tea.KeyPressMsg{Code: 'e', Text: "e"})
	m.Update(tea.KeyPressMsg{Code: 's', Text: "s"})

	entries, err := os.ReadDir(".")
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	var haveJSON, haveCSV bool
	for _, entry := range entries {
		switch filepath.Ext(entry.Name()) {
		case ".json":
			haveJSON = true
		case ".csv":
			haveCSV = true
		}
	}
	if !haveJSON || !haveCSV {
		t.Fatalf("expected json and csv exports, entries=%v", entries)
	}
}

func TestDashboardResponsesListsSessions(t *testing.T) {
	repo := newTestRepository(t)
	seedSessions(t, repo,
		sessionWithConnection(testNow, "Yes", "warmth"),
		sessionWithConnection(testNow.Add(time.Hour), "No", ""),
	)
	m := newTestDashboardModel(t, repo)

	content, offsets := m.responsesContent(76)
	if !strings.Contains(content, "Session 1") || !strings.Contains(content, "Session 2") {
		t.Fatalf("missing session cards: %q", content)
	}
	if len(offsets) != 2 || offsets[0] != 0 || offsets[1] <= offsets[0] {
		t.Fatalf("bad card offsets: %v", offsets)
	}
}
