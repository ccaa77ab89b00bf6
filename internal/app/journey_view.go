package app

import (
	"strings"

	"arrive/internal/journey"
)

func (m *JourneyModel) View() string {
	if m.overlay != overlayNone {
		return m.overlayView()
	}

	inner := max(20, m.width-4)
	var b strings.Builder

	now := m.now()
	b.WriteString(headerStyleFor(now).Render("1000 Ways to Arrive"))
	b.WriteString("\n")
	b.WriteString(whisperStyle.Render("The sanctuary greets your " + dayPart(now) + " arrival."))
	b.WriteString("\n\n")

	if len(m.greeting) > 0 && m.seq.StageIndex() == 0 {
		for _, line := range m.greeting {
			for _, wrapped := range wrapToWidth(line, inner) {
				b.WriteString(quoteStyle.Render(wrapped))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(m.progressDots())
	b.WriteString("\n\n")

	m.writeCompleted(&b, inner)
	m.writeActiveStage(&b, inner)

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
	b.WriteString(helpStyle.Render(m.helpLine()))
	return b.String()
}

func (m *JourneyModel) progressDots() string {
	stages := journey.Stages()
	index := m.seq.StageIndex()
	parts := make([]string, 0, len(stages))
	for i, stage := range stages {
		switch {
		case i < index:
			parts = append(parts, dotDoneStyle.Render("●"))
		case i == index:
			parts = append(parts, dotActiveStyle.Render("◉ "+string(stage)))
		default:
			parts = append(parts, dotPendingStyle.Render("○"))
		}
	}
	return strings.Join(parts, " ")
}

// writeCompleted condenses every finished checkpoint to one line, so
// the traveler sees the journey accumulate above the active stage.
func (m *JourneyModel) writeCompleted(b *strings.Builder, inner int) {
	cp := m.seq.Checkpoints()
	type row struct {
		label string
		value string
	}
	rows := []row{}
	if cp.Arrival != "" {
		rows = append(rows, row{"Arrival Vibration", cp.Arrival})
	}
	if cp.Verb != "" {
		rows = append(rows, row{"Chosen Verbration", strings.ToUpper(cp.Verb)})
	}
	if cp.Note != "" && m.seq.StageIndex() > 4 {
		rows = append(rows, row{"Sonic Note", "\"" + cp.Note + "\""})
	}
	if cp.Departure != "" {
		rows = append(rows, row{"Departure Resonance", cp.Departure})
	}
	if len(rows) == 0 || m.seq.IsTerminal() {
		return
	}
	for _, r := range rows {
		line := labelStyle.Render(r.label+" :: ") + valueStyle.Render(r.value)
		b.WriteString("  " + truncateToWidth(line, inner))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func (m *JourneyModel) writeActiveStage(b *strings.Builder, inner int) {
	if m.seq.IsTerminal() {
		m.writeSummary(b, inner)
		return
	}
	writePrompt := func(text string) {
		for _, line := range wrapToWidth(text, inner) {
			b.WriteString(promptStyle.Render(line))
			b.WriteString("\n")
		}
	}
	switch m.seq.CurrentStage() {
	case journey.StageArrival:
		writePrompt("You are approaching the sanctuary. The Gamelatron is already sounding. When you are ready to arrive, drop the needle.")
	case journey.StageSensing:
		writePrompt("What vibration arrives with you today? Name your arrival state in a word or phrase.")
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case journey.StageVerbration:
		writePrompt("Choose your verbration :: the verb that will guide your exploration.")
		b.WriteString("\n")
		b.WriteString(m.picker.View())
		b.WriteString("\n")
	case journey.StageExplore:
		cp := m.seq.Checkpoints()
		writePrompt(journey.Greeting(cp.Arrival, cp.Verb))
		b.WriteString("\n")
		for _, line := range wrapToWidth(journey.ExplorePrompt(cp.Verb), inner) {
			b.WriteString(whisperStyle.Render(line))
			b.WriteString("\n")
		}
	case journey.StageSanctuary:
		writePrompt("Leave a sonic note :: what did you notice in the sanctuary?")
		b.WriteString("\n")
		b.WriteString(m.note.View())
		b.WriteString("\n")
	case journey.StageDeparture:
		writePrompt("Name your departure resonance. How do you leave the sanctuary?")
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
}

func (m *JourneyModel) writeSummary(b *strings.Builder, inner int) {
	cp := m.seq.Checkpoints()
	values := []string{
		orDash(cp.Arrival),
		strings.ToUpper(orDash(cp.Verb)),
		"\"" + orDash(cp.Note) + "\"",
		orDash(cp.Departure),
	}
	b.WriteString(labelStyle.Render("Baggage Claim"))
	b.WriteString("\n\n")
	for i, item := range baggageItems {
		marker := "  "
		style := valueStyle
		if i == m.cursor {
			marker = "> "
			style = selectedStyle
		}
		line := marker + padPlain(item, 22) + values[i]
		if decision := cp.Baggage[item]; decision != "" {
			line += whisperStyle.Render("  [" + decision + "]")
		}
		b.WriteString(style.Render(truncateToWidth(line, inner)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	for _, line := range wrapToWidth("Your journey is part of the field now. Sort each artifact to carry it forward or set it down.", inner) {
		b.WriteString(whisperStyle.Render(line))
		b.WriteString("\n")
	}
	if m.ambient != "" {
		b.WriteString("\n")
		for _, line := range wrapToWidth("\""+m.ambient+"\"", inner) {
			b.WriteString(quoteStyle.Render(line))
			b.WriteString("\n")
		}
	}
}

func (m *JourneyModel) helpLine() string {
	if m.overlay != overlayNone {
		return "enter next · esc close"
	}
	if m.seq.IsTerminal() {
		return "↑/↓ select · enter sort · v reflection · n sitting room · s share note · e export · c copy · q quit"
	}
	switch m.seq.CurrentStep().Trigger {
	case journey.TriggerConfirm:
		return "enter continue · q quit"
	case journey.TriggerChoice:
		return "↑/↓ choose · enter select · esc quit"
	default:
		return "enter save · esc quit"
	}
}

func (m *JourneyModel) overlayView() string {
	if m.frameIndex >= len(m.frames) {
		return ""
	}
	frame := m.frames[m.frameIndex]
	inner := max(20, m.width-8)

	lines := []string{""}
	lines = append(lines, centerLine(whisperStyle.Render(frame.label), inner))
	lines = append(lines, "")
	for _, text := range strings.Split(frame.text, "\n") {
		for _, wrapped := range wrapToWidth(text, inner) {
			lines = append(lines, centerLine(quoteStyle.Render(wrapped), inner))
		}
	}
	lines = append(lines, "")
	lines = append(lines, centerLine(helpStyle.Render("enter next · esc close"), inner))

	block := panelBorderStyle.Render(strings.Join(lines, "\n"))
	pad := (m.height - strings.Count(block, "\n") - 1) / 2
	if pad > 0 {
		block = strings.Repeat("\n", pad) + block
	}
	return indentBlock(block, max(0, (m.width-inner-4)/2))
}
