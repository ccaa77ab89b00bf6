package app

import (
	"fmt"
	"strings"

	"arrive/internal/journey"
	"arrive/internal/report"
	"arrive/internal/types"
)

func (m *DashboardModel) View() string {
	inner := max(20, m.width-4)
	var b strings.Builder

	b.WriteString(headerStyleFor(m.now()).Render("Research Dashboard"))
	b.WriteString("  ")
	b.WriteString(m.tabBar())
	b.WriteString("\n\n")
	b.WriteString(m.vp.View())
	b.WriteString("\n")

	if m.confirm.IsOpen() {
		b.WriteString("\n")
		b.WriteString(indentBlock(m.confirm.View(m.width-4), 2))
		b.WriteString("\n")
	}

	if m.status != "" {
		style := toastInfoStyle
		if m.statusErr {
			style = toastErrorStyle
		}
		b.WriteString(style.Render(" " + truncateToWidth(m.status, inner) + " "))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.helpLine()))
	return b.String()
}

func (m *DashboardModel) tabBar() string {
	parts := make([]string, 0, len(dashboardTabNames))
	for i, name := range dashboardTabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if dashboardTab(i) == m.tab {
			parts = append(parts, selectedStyle.Render(" "+label+" "))
		} else {
			parts = append(parts, statusStyle.Render(" "+label+" "))
		}
	}
	return strings.Join(parts, dividerStyle.Render("|"))
}

func (m *DashboardModel) helpLine() string {
	switch m.tab {
	case tabResponses:
		return "↑/↓ session · space mark for comparison · tab switch · e json · s csv · x clear · q quit"
	case tabComparison:
		return "←/→ question · ↑/↓ scroll · tab switch · q quit"
	default:
		return "↑/↓ scroll · tab switch · e json · s csv · x clear · q quit"
	}
}

func (m *DashboardModel) refreshContent() {
	inner := max(20, m.vp.Width())
	switch m.tab {
	case tabOverview:
		m.vp.SetContent(m.overviewContent(inner))
	case tabSynthesis:
		m.vp.SetContent(m.synthesisContent(inner))
	case tabResponses:
		content, offsets := m.responsesContent(inner)
		m.cardOffsets = offsets
		m.vp.SetContent(content)
	case tabComparison:
		m.vp.SetContent(m.comparisonContent(inner))
	}
}

func (m *DashboardModel) overviewContent(inner int) string {
	overview := m.report()
	var b strings.Builder
	writeStat := func(label string, value string) {
		b.WriteString("  " + labelStyle.Render(padPlain(label, 20)) + valueStyle.Render(value))
		b.WriteString("\n")
	}
	writeStat("Total Sessions", fmt.Sprintf("%d", overview.Total))
	writeStat("Self-Guided", fmt.Sprintf("%d", overview.SelfGuided))
	writeStat("Facilitated", fmt.Sprintf("%d", overview.Facilitated))
	writeStat("Completion Rate", fmt.Sprintf("%d%%", overview.CompletionRate))
	writeStat("Latest Session", truncateToWidth(overview.Latest, max(10, inner-22)))
	return b.String()
}

type synthesisSection struct {
	title string
	body  func(*strings.Builder, int)
}

func (m *DashboardModel) synthesisContent(inner int) string {
	quotes := func(questionID string) func(*strings.Builder, int) {
		return func(b *strings.Builder, width int) {
			empty := true
			for text := range report.GroupFreeform(m.sessions, questionID) {
				empty = false
				for _, line := range wrapToWidth("\""+text+"\"", width-2) {
					b.WriteString("  " + quoteStyle.Render(line) + "\n")
				}
			}
			if empty {
				b.WriteString("  " + whisperStyle.Render("No data yet") + "\n")
			}
		}
	}

	sections := []synthesisSection{
		{"Attention & Embodiment", func(b *strings.Builder, width int) {
			scales := 0
			for _, session := range m.sessions {
				if answer, ok := session.Answers["attention_quality"]; ok && answer.Kind == types.AnswerKindScale {
					scales++
					b.WriteString("  " + barStyle.Render(fmt.Sprintf("Scale: %d/10 %s", answer.Value, strings.Repeat("▁", answer.Value))) + "\n")
				}
			}
			hasQuote := false
			for text := range report.GroupFreeform(m.sessions, "surprise_element") {
				hasQuote = true
				for _, line := range wrapToWidth("\""+text+"\"", width-2) {
					b.WriteString("  " + quoteStyle.Render(line) + "\n")
				}
			}
			if scales == 0 && !hasQuote {
				b.WriteString("  " + whisperStyle.Render("No data yet") + "\n")
			}
		}},
		{"Connection", func(b *strings.Builder, width int) {
			words := make([]string, 0, len(m.sessions))
			for word := range report.ConnectionWords(m.sessions) {
				words = append(words, "("+word+")")
			}
			if len(words) == 0 {
				b.WriteString("  " + whisperStyle.Render("No data yet") + "\n")
				return
			}
			for _, line := range wrapToWidth(strings.Join(words, "  "), width-2) {
				b.WriteString("  " + barStyle.Render(line) + "\n")
			}
		}},
		{"Cultural Integration", quotes("cultural_integration")},
		{"Futures Sensemaking", quotes("resonance_artifact")},
		{"Desire for Sonic Sanctuaries", func(b *strings.Builder, width int) {
			counts := report.Tally(m.sessions, "future_sanctuary")
			shown := false
			for _, count := range counts {
				if count.Count == 0 {
					continue
				}
				shown = true
				noun := "responses"
				if count.Count == 1 {
					noun = "response"
				}
				bar := barStyle.Render(strings.Repeat("█", count.Count))
				b.WriteString(fmt.Sprintf("  %s %s %d %s\n", padPlain(count.Option+":", 14), bar, count.Count, noun))
			}
			if !shown {
				b.WriteString("  " + whisperStyle.Render("No data yet") + "\n")
			}
		}},
		{"Cross-Modal Perception", quotes("became_visible")},
		{"Social Field & Emergence", quotes("wants_nurturing")},
		{"Questions Held by the Field", quotes("question_holding")},
	}

	var b strings.Builder
	for i, section := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(labelStyle.Render(section.title))
		b.WriteString("\n")
		section.body(&b, inner)
	}
	return b.String()
}

func (m *DashboardModel) responsesContent(inner int) (string, []int) {
	if len(m.sessions) == 0 {
		return whisperStyle.Render("No sessions yet"), nil
	}
	var b strings.Builder
	offsets := make([]int, 0, len(m.sessions))
	line := 0
	write := func(text string) {
		b.WriteString(text)
		b.WriteString("\n")
		line++
	}
	for i, session := range m.sessions {
		offsets = append(offsets, line)
		header := fmt.Sprintf("Session %d", i+1)
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		if m.selected[i] {
			header += "  [marked]"
		}
		style := labelStyle
		if i == m.cursor {
			style = selectedStyle
		}
		write(style.Render(marker + header))
		write("  " + statusStyle.Render(sessionMeta(session)))
		for _, label := range journey.QuestionLabels() {
			answer, ok := session.Answers[label.ID]
			if !ok || answer.IsEmpty() {
				continue
			}
			text := label.Label + ": " + answer.Display()
			for _, wrapped := range wrapToWidth(text, inner-4) {
				write("    " + valueStyle.Render(wrapped))
			}
		}
		write("")
	}
	return b.String(), offsets
}

func sessionMeta(session *types.SessionRecord) string {
	meta := session.CreatedAt.Format("Jan 2, 2006 at 3:04 PM")
	if session.Mode == types.ModeFacilitated && session.Facilitator != "" {
		return meta + " • Facilitated by " + session.Facilitator
	}
	return meta + " • Self-guided"
}

func (m *DashboardModel) comparisonContent(inner int) string {
	records := m.comparisonRecords()
	if len(records) < 2 {
		return whisperStyle.Render("Mark at least two sessions on the Responses tab to compare them.")
	}
	labels := journey.QuestionLabels()
	label := labels[m.compareQ]

	var b strings.Builder
	b.WriteString(labelStyle.Render(label.Label))
	b.WriteString("\n\n")
	for _, entry := range report.Compare(records, label.ID) {
		meta := statusStyle.Render(entry.Record.CreatedAt.Format("Jan 2, 2006 3:04 PM"))
		tag := ""
		if entry.Tagged {
			switch entry.Status {
			case report.DiffChanged:
				tag = "  " + tagChangedStyle.Render("Changed")
			case report.DiffSame:
				tag = "  " + tagSameStyle.Render("Same")
			default:
				tag = "  " + whisperStyle.Render("—")
			}
		}
		b.WriteString("  " + meta + tag + "\n")
		display := entry.Answer.Display()
		if entry.Answer.IsEmpty() {
			display = "(no answer)"
		}
		for _, line := range wrapToWidth(display, inner-4) {
			b.WriteString("    " + valueStyle.Render(line) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
