package app

import (
	"fmt"
	"strings"

	"arrive/internal/journey"
	"arrive/internal/types"
)

func (m *SurveyModel) View() string {
	if m.glossaryOpen {
		return m.glossaryView()
	}
	if !m.started {
		return m.introView()
	}
	if m.flow.Done() {
		return m.completeView()
	}
	return m.questionView()
}

func (m *SurveyModel) introView() string {
	inner := max(20, m.width-4)
	var b strings.Builder
	b.WriteString(headerStyleFor(m.now()).Render("Sanctuary Research"))
	b.WriteString("\n")
	b.WriteString(whisperStyle.Render("An Echo-locative Insights Survey"))
	b.WriteString("\n\n")
	intro := []string{
		"Your reflections contribute to our understanding of sonic sanctuaries as tools for regenerative futures.",
		"Ten questions follow. Answer what resonates; skip what does not. Nothing is sent anywhere :: everything stays on this device.",
		"The research is itself a practice of attunement: listening deeply, reflecting back, inviting continued co-creation.",
	}
	for _, para := range intro {
		for _, line := range wrapToWidth(para, inner) {
			b.WriteString(promptStyle.Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	if m.flow.Mode() == types.ModeFacilitated {
		b.WriteString(labelStyle.Render("Facilitated by " + m.flow.Facilitator()))
		b.WriteString("\n\n")
	}
	b.WriteString(helpStyle.Render("enter begin · ctrl+g glossary · q quit"))
	return b.String()
}

func (m *SurveyModel) questionView() string {
	question, ok := m.flow.Current()
	if !ok {
		return ""
	}
	inner := max(20, m.width-4)
	position, total := m.flow.Position()

	var b strings.Builder
	b.WriteString(headerStyleFor(m.now()).Render("Sanctuary Research"))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("Question %d of %d", position, total)))
	b.WriteString("\n\n")
	for _, line := range wrapToWidth(question.Prompt, inner) {
		b.WriteString(promptStyle.Render(line))
		b.WriteString("\n")
	}
	if question.Help != "" {
		b.WriteString("\n")
		for _, line := range wrapToWidth(question.Help, inner) {
			b.WriteString(whisperStyle.Render(line))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	switch question.Type {
	case types.QuestionTypeScale:
		b.WriteString(m.scaleView(question, inner))
	case types.QuestionTypeSingleChoice:
		b.WriteString(m.radioView(question, inner))
	case types.QuestionTypeShortText:
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case types.QuestionTypeLongText:
		b.WriteString(m.note.View())
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		style := toastInfoStyle
		if m.statusErr {
			style = toastErrorStyle
		}
		b.WriteString(style.Render(" " + truncateToWidth(m.status, inner) + " "))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.questionHelp(question)))
	return b.String()
}

func (m *SurveyModel) scaleView(question types.Question, inner int) string {
	var b strings.Builder
	if question.ScaleLow != "" || question.ScaleHigh != "" {
		labels := question.ScaleLow + strings.Repeat(" ", max(1, inner-len(question.ScaleLow)-len(question.ScaleHigh)-10)) + question.ScaleHigh
		b.WriteString(whisperStyle.Render(truncateToWidth(labels, inner)))
		b.WriteString("\n")
	}
	track := make([]string, 0, types.ScaleMax)
	for i := types.ScaleMin; i <= types.ScaleMax; i++ {
		if i == m.scale {
			track = append(track, dotActiveStyle.Render("◉"))
		} else {
			track = append(track, dotPendingStyle.Render("○"))
		}
	}
	b.WriteString(strings.Join(track, " "))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%d / %d", m.scale, types.ScaleMax)))
	b.WriteString("\n")
	return b.String()
}

func (m *SurveyModel) radioView(question types.Question, inner int) string {
	var b strings.Builder
	for i, option := range question.Options {
		marker := "( ) "
		style := valueStyle
		if i == m.radio {
			marker = "(•) "
			style = selectedStyle
		}
		b.WriteString(style.Render(truncateToWidth(marker+option, inner)))
		b.WriteString("\n")
	}
	if m.followUpOpen {
		if prompt, ok := question.FollowUpFor(question.Options[m.radio]); ok {
			b.WriteString("\n")
			for _, line := range wrapToWidth(prompt, inner) {
				b.WriteString(whisperStyle.Render(line))
				b.WriteString("\n")
			}
			b.WriteString(m.followUp.View())
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *SurveyModel) questionHelp(question types.Question) string {
	switch question.Type {
	case types.QuestionTypeScale:
		return "←/→ adjust · enter next · s skip · ctrl+g glossary · q quit"
	case types.QuestionTypeSingleChoice:
		if m.followUpOpen {
			return "enter next · esc back"
		}
		return "↑/↓ choose · enter next · s skip · ctrl+g glossary · q quit"
	default:
		return "enter next · ctrl+s skip · ctrl+g glossary · esc quit"
	}
}

func (m *SurveyModel) completeView() string {
	inner := max(20, m.width-4)
	var b strings.Builder
	b.WriteString(headerStyleFor(m.now()).Render("Thank You for Deepening the Field"))
	b.WriteString("\n\n")
	paras := []string{
		"Your reflections have been saved locally and contribute to our understanding of sonic sanctuaries as tools for regenerative futures.",
		"The research is itself a practice of attunement: listening deeply, reflecting back, inviting continued co-creation.",
	}
	for _, para := range paras {
		for _, line := range wrapToWidth(para, inner) {
			b.WriteString(promptStyle.Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(whisperStyle.Render("View the aggregate field with: arrive dashboard"))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString("\n")
		style := toastInfoStyle
		if m.statusErr {
			style = toastErrorStyle
		}
		b.WriteString(style.Render(" " + truncateToWidth(m.status, inner) + " "))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("e export responses · q return to the sanctuary"))
	return b.String()
}

func (m *SurveyModel) glossaryView() string {
	inner := max(20, m.width-4)
	var b strings.Builder
	if m.glossaryTerm != "" {
		b.WriteString(m.vp.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ scroll · esc back"))
		return b.String()
	}
	b.WriteString(headerStyleFor(m.now()).Render("Field Glossary"))
	b.WriteString("\n\n")
	for i, term := range journey.DefinitionTerms() {
		title := term
		if def, ok := journey.LookupDefinition(term); ok {
			title = def.Title
		}
		style := valueStyle
		marker := "  "
		if i == m.glossaryIndex {
			style = selectedStyle
			marker = "> "
		}
		b.WriteString(style.Render(truncateToWidth(marker+title, inner)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ choose · enter open · esc close"))
	return b.String()
}
