package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"

	"arrive/internal/app/sanitizer"
	"arrive/internal/export"
	"arrive/internal/journey"
	"arrive/internal/logging"
	"arrive/internal/types"
)

const defaultScaleValue = 5

type SurveyOptions struct {
	Flow   *journey.SurveyFlow
	Logger logging.Logger
	Now    func() time.Time

	NoteMinHeight int
	NoteMaxHeight int
}

// SurveyModel runs the research questions one at a time, with the
// context guide and its definition modals in front.
type SurveyModel struct {
	ctx context.Context
	now func() time.Time

	flow *journey.SurveyFlow
	log  logging.Logger

	width  int
	height int

	started bool

	scale        int
	radio        int
	input        *LineInput
	note         *NoteInput
	followUp     *LineInput
	followUpOpen bool
	clean        sanitizer.InputSanitizer

	glossaryOpen  bool
	glossaryIndex int
	glossaryTerm  string
	vp            viewport.Model

	status    string
	statusErr bool
}

func NewSurveyModel(ctx context.Context, opts SurveyOptions) *SurveyModel {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	m := &SurveyModel{
		ctx:      ctx,
		now:      now,
		flow:     opts.Flow,
		log:      log,
		width:    80,
		height:   24,
		scale:    defaultScaleValue,
		input:    NewLineInput(60, ""),
		note:     NewNoteInput(60, opts.NoteMinHeight, opts.NoteMaxHeight, ""),
		followUp: NewLineInput(30, "One word..."),
		clean:    sanitizer.NewTerminalSanitizer(sanitizer.NoteConfig()),
		vp:       viewport.New(viewport.WithWidth(76), viewport.WithHeight(18)),
	}
	m.focusQuestion()
	return m
}

func (m *SurveyModel) Init() tea.Cmd {
	return nil
}

func (m *SurveyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, m.updateFocused(msg)
}

func (m *SurveyModel) resize(width, height int) {
	m.width = width
	m.height = height
	inner := max(20, width-4)
	m.input.Resize(inner)
	m.note.Resize(inner)
	m.followUp.Resize(min(inner, 30))
	m.vp.SetWidth(inner)
	m.vp.SetHeight(max(4, height-6))
}

func (m *SurveyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if m.glossaryOpen {
		m.handleGlossaryKey(key)
		return m, nil
	}
	if key == "ctrl+g" {
		m.glossaryOpen = true
		m.glossaryIndex = 0
		m.glossaryTerm = ""
		return m, nil
	}
	if !m.started {
		switch key {
		case "enter", " ":
			m.started = true
		case "q", "esc":
			return m, tea.Quit
		}
		return m, nil
	}
	if m.flow.Done() {
		return m.handleCompleteKey(key)
	}
	return m.handleQuestionKey(msg)
}

func (m *SurveyModel) handleGlossaryKey(key string) {
	terms := journey.DefinitionTerms()
	if m.glossaryTerm != "" {
		switch key {
		case "esc", "q":
			m.glossaryTerm = ""
		case "up", "k":
			m.vp.LineUp(1)
		case "down", "j":
			m.vp.LineDown(1)
		}
		return
	}
	switch key {
	case "esc", "q":
		m.glossaryOpen = false
	case "up", "k":
		if m.glossaryIndex > 0 {
			m.glossaryIndex--
		}
	case "down", "j":
		if m.glossaryIndex < len(terms)-1 {
			m.glossaryIndex++
		}
	case "enter":
		term := terms[m.glossaryIndex]
		def, ok := journey.LookupDefinition(term)
		if !ok {
			// Unknown term: the lookup declines, the list stays up.
			return
		}
		m.glossaryTerm = term
		m.vp.SetContent(renderMarkdown(definitionMarkdown(def), m.vp.Width()))
		m.vp.GotoTop()
	}
}

func (m *SurveyModel) handleQuestionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	question, ok := m.flow.Current()
	if !ok {
		return m, nil
	}
	key := msg.String()
	if key == "ctrl+s" {
		m.skip()
		return m, nil
	}
	switch question.Type {
	case types.QuestionTypeScale:
		switch key {
		case "left", "h":
			if m.scale > types.ScaleMin {
				m.scale--
			}
		case "right", "l":
			if m.scale < types.ScaleMax {
				m.scale++
			}
		case "enter":
			m.submit(types.ScaleAnswer(m.scale))
		case "s":
			m.skip()
		case "q", "esc":
			return m, tea.Quit
		}
		return m, nil
	case types.QuestionTypeSingleChoice:
		if m.followUpOpen {
			switch key {
			case "enter":
				selection := question.Options[m.radio]
				m.submit(types.ChoiceAnswer(selection, m.clean.Sanitize(m.followUp.Value())))
			case "esc":
				m.followUpOpen = false
				m.followUp.Clear()
				m.followUp.Blur()
			default:
				return m, m.followUp.Update(msg)
			}
			return m, nil
		}
		switch key {
		case "up", "k":
			if m.radio > 0 {
				m.radio--
			}
		case "down", "j":
			if m.radio < len(question.Options)-1 {
				m.radio++
			}
		case "enter":
			selection := question.Options[m.radio]
			if _, wants := question.FollowUpFor(selection); wants {
				m.followUpOpen = true
				m.followUp.Focus()
				return m, nil
			}
			m.submit(types.ChoiceAnswer(selection, ""))
		case "s":
			m.skip()
		case "q", "esc":
			return m, tea.Quit
		}
		return m, nil
	case types.QuestionTypeShortText:
		switch key {
		case "enter":
			m.submitText(m.clean.Sanitize(m.input.Value()))
		case "esc":
			return m, tea.Quit
		default:
			return m, m.input.Update(msg)
		}
		return m, nil
	case types.QuestionTypeLongText:
		switch key {
		case "enter":
			m.submitText(m.clean.Sanitize(m.note.Value()))
		case "esc":
			return m, tea.Quit
		default:
			return m, m.note.Update(msg)
		}
		return m, nil
	}
	return m, nil
}

func (m *SurveyModel) submitText(value string) {
	if value == "" {
		// An untouched Next is a skip, same as the skip action.
		m.skip()
		return
	}
	m.submit(types.ScalarAnswer(value))
}

func (m *SurveyModel) submit(answer types.Answer) {
	if err := m.flow.Answer(m.ctx, answer); err != nil {
		m.log.Warn("record answer", logging.F("error", err))
		m.setError("Could not save the answer.")
		return
	}
	m.nextQuestion()
}

func (m *SurveyModel) skip() {
	if err := m.flow.Skip(m.ctx); err != nil {
		m.log.Warn("skip question", logging.F("error", err))
		m.setError("Could not skip the question.")
		return
	}
	m.nextQuestion()
}

func (m *SurveyModel) nextQuestion() {
	m.scale = defaultScaleValue
	m.radio = 0
	m.followUpOpen = false
	m.input.Clear()
	m.note.Clear()
	m.followUp.Clear()
	m.status = ""
	m.focusQuestion()
}

func (m *SurveyModel) focusQuestion() {
	m.input.Blur()
	m.note.Blur()
	m.followUp.Blur()
	question, ok := m.flow.Current()
	if !ok {
		return
	}
	switch question.Type {
	case types.QuestionTypeShortText:
		m.input.SetPlaceholder(question.Placeholder)
		m.input.Focus()
	case types.QuestionTypeLongText:
		m.note.SetPlaceholder(question.Placeholder)
		m.note.Focus()
	}
}

func (m *SurveyModel) handleCompleteKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "esc", "enter":
		return m, tea.Quit
	case "e":
		m.exportSession()
	}
	return m, nil
}

func (m *SurveyModel) exportSession() {
	record, ok := m.flow.Record()
	if !ok {
		m.setError("No finalized session to export.")
		return
	}
	data, err := export.SessionJSON(record)
	if err != nil {
		m.setError("Export failed: " + err.Error())
		return
	}
	path := fmt.Sprintf("sanctuary-research-%d.json", m.now().UnixMilli())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		m.setError("Export failed: " + err.Error())
		return
	}
	m.setStatus("Responses exported to " + path)
}

func (m *SurveyModel) updateFocused(msg tea.Msg) tea.Cmd {
	if !m.started || m.flow.Done() || m.glossaryOpen {
		return nil
	}
	question, ok := m.flow.Current()
	if !ok {
		return nil
	}
	switch question.Type {
	case types.QuestionTypeShortText:
		return m.input.Update(msg)
	case types.QuestionTypeLongText:
		return m.note.Update(msg)
	case types.QuestionTypeSingleChoice:
		if m.followUpOpen {
			return m.followUp.Update(msg)
		}
	}
	return nil
}

func (m *SurveyModel) setStatus(text string) {
	m.status = text
	m.statusErr = false
}

func (m *SurveyModel) setError(text string) {
	m.status = text
	m.statusErr = true
}
