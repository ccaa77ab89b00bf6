package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"

	"arrive/internal/export"
	"arrive/internal/journey"
	"arrive/internal/logging"
	"arrive/internal/report"
	"arrive/internal/store"
	"arrive/internal/types"
)

type dashboardTab int

const (
	tabOverview dashboardTab = iota
	tabSynthesis
	tabResponses
	tabComparison
)

var dashboardTabNames = []string{"Overview", "Synthesis", "Responses", "Comparison"}

type DashboardOptions struct {
	Surveys  store.SurveyStore
	Recorder *journey.Recorder
	Logger   logging.Logger
	Now      func() time.Time
}

// DashboardModel aggregates the research sessions: overview stats, the
// synthesis canvas, per-session responses and cross-session comparison.
type DashboardModel struct {
	ctx context.Context
	now func() time.Time

	surveys store.SurveyStore
	rec     *journey.Recorder
	log     logging.Logger

	width  int
	height int

	tab      dashboardTab
	vp       viewport.Model
	sessions []*types.SessionRecord

	cursor      int
	cardOffsets []int
	selected    map[int]bool
	compareQ    int

	confirm *ConfirmController

	status    string
	statusErr bool
}

func NewDashboardModel(ctx context.Context, opts DashboardOptions) *DashboardModel {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	m := &DashboardModel{
		ctx:      ctx,
		now:      now,
		surveys:  opts.Surveys,
		rec:      opts.Recorder,
		log:      log,
		width:    80,
		height:   24,
		vp:       viewport.New(viewport.WithWidth(76), viewport.WithHeight(18)),
		selected: map[int]bool{},
		confirm:  NewConfirmController(),
	}
	m.reload()
	return m
}

func (m *DashboardModel) reload() {
	sessions, err := m.surveys.List(m.ctx)
	if err != nil {
		m.log.Warn("list research sessions", logging.F("error", err))
	}
	m.sessions = sessions
	if m.cursor >= len(sessions) {
		m.cursor = max(0, len(sessions)-1)
	}
	for index := range m.selected {
		if index >= len(sessions) {
			delete(m.selected, index)
		}
	}
	m.refreshContent()
}

func (m *DashboardModel) Init() tea.Cmd {
	return nil
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.SetWidth(max(20, msg.Width-4))
		m.vp.SetHeight(max(4, msg.Height-6))
		m.refreshContent()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *DashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm.IsOpen() {
		handled, choice := m.confirm.HandleKey(msg)
		if !handled {
			return m, nil
		}
		switch choice {
		case confirmChoiceConfirm:
			m.confirm.Close()
			m.clearData()
		case confirmChoiceCancel:
			m.confirm.Close()
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "tab":
		m.setTab((m.tab + 1) % dashboardTab(len(dashboardTabNames)))
	case "shift+tab":
		m.setTab((m.tab + dashboardTab(len(dashboardTabNames)) - 1) % dashboardTab(len(dashboardTabNames)))
	case "1":
		m.setTab(tabOverview)
	case "2":
		m.setTab(tabSynthesis)
	case "3":
		m.setTab(tabResponses)
	case "4":
		m.setTab(tabComparison)
	case "up", "k":
		m.moveUp()
	case "down", "j":
		m.moveDown()
	case "pgup":
		m.vp.LineUp(m.vp.Height())
	case "pgdown":
		m.vp.LineDown(m.vp.Height())
	case " ":
		m.toggleSelection()
	case "left", "h":
		m.cycleCompareQuestion(-1)
	case "right", "l":
		m.cycleCompareQuestion(1)
	case "e":
		m.exportAllJSON()
	case "s":
		m.exportSummaryCSV()
	case "x":
		m.confirm.Open("Clear research data",
			"Are you sure you want to clear all research data? This cannot be undone.",
			"Clear", "Keep")
	}
	return m, nil
}

func (m *DashboardModel) setTab(tab dashboardTab) {
	m.tab = tab
	m.status = ""
	m.refreshContent()
	m.vp.GotoTop()
}

func (m *DashboardModel) moveUp() {
	if m.tab == tabResponses && m.cursor > 0 {
		m.cursor--
		m.refreshContent()
		m.scrollToCursor()
		return
	}
	m.vp.LineUp(1)
}

func (m *DashboardModel) moveDown() {
	if m.tab == tabResponses && m.cursor < len(m.sessions)-1 {
		m.cursor++
		m.refreshContent()
		m.scrollToCursor()
		return
	}
	m.vp.LineDown(1)
}

func (m *DashboardModel) scrollToCursor() {
	if m.cursor < len(m.cardOffsets) {
		m.vp.SetYOffset(m.cardOffsets[m.cursor])
	}
}

func (m *DashboardModel) toggleSelection() {
	if m.tab != tabResponses || len(m.sessions) == 0 {
		return
	}
	if m.selected[m.cursor] {
		delete(m.selected, m.cursor)
	} else {
		m.selected[m.cursor] = true
	}
	m.refreshContent()
}

func (m *DashboardModel) cycleCompareQuestion(delta int) {
	if m.tab != tabComparison {
		return
	}
	labels := journey.QuestionLabels()
	m.compareQ = (m.compareQ + delta + len(labels)) % len(labels)
	m.refreshContent()
	m.vp.GotoTop()
}

func (m *DashboardModel) compareQuestionID() string {
	return journey.QuestionLabels()[m.compareQ].ID
}

// comparisonRecords returns the selected sessions in session order.
func (m *DashboardModel) comparisonRecords() []*types.SessionRecord {
	out := make([]*types.SessionRecord, 0, len(m.selected))
	for i, session := range m.sessions {
		if m.selected[i] {
			out = append(out, session)
		}
	}
	return out
}

func (m *DashboardModel) clearData() {
	if err := m.rec.ClearSurveys(m.ctx); err != nil {
		m.log.Warn("clear research sessions", logging.F("error", err))
		m.setError("Clear failed: " + err.Error())
		return
	}
	m.selected = map[int]bool{}
	m.cursor = 0
	m.reload()
	m.setStatus("Research data cleared.")
}

func (m *DashboardModel) exportAllJSON() {
	data, err := export.ResearchJSON(m.sessions)
	if err != nil {
		m.setError("Export failed: " + err.Error())
		return
	}
	path := fmt.Sprintf("sanctuary-research-all-%d.json", m.now().UnixMilli())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		m.setError("Export failed: " + err.Error())
		return
	}
	m.setStatus("Exported " + path)
}

func (m *DashboardModel) exportSummaryCSV() {
	path := fmt.Sprintf("sanctuary-research-summary-%d.csv", m.now().UnixMilli())
	if err := os.WriteFile(path, export.SummaryCSV(m.sessions), 0o644); err != nil {
		m.setError("Export failed: " + err.Error())
		return
	}
	m.setStatus("Exported " + path)
}

func (m *DashboardModel) report() report.Overview {
	return report.BuildOverview(m.sessions)
}

func (m *DashboardModel) setStatus(text string) {
	m.status = text
	m.statusErr = false
}

func (m *DashboardModel) setError(text string) {
	m.status = text
	m.statusErr = true
}
