package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"arrive/internal/app/sanitizer"
	"arrive/internal/export"
	"arrive/internal/journey"
	"arrive/internal/logging"
	"arrive/internal/store"
	"arrive/internal/types"
)

type journeyOverlay int

const (
	overlayNone journeyOverlay = iota
	overlayReflection
	overlaySittingRoom
)

// playbackFrame is one screen of the reflection or sitting-room
// choreography. The timed fades of the installation collapse to
// manual advancement here.
type playbackFrame struct {
	label string
	text  string
}

var baggageItems = []string{
	"Arrival Vibration",
	"Chosen Verbration",
	"Sonic Note",
	"Departure Resonance",
}

const (
	baggageDecisionCarry   = "carry"
	baggageDecisionRelease = "release"
)

type JourneyOptions struct {
	Sequencer *journey.Sequencer
	Recorder  *journey.Recorder
	Journeys  store.JourneyStore
	Notes     store.NoteStore
	Logger    logging.Logger
	Now       func() time.Time

	NoteMinHeight int
	NoteMaxHeight int
}

// JourneyModel walks the traveler through the seven stages, revealing
// each section as the previous one completes.
type JourneyModel struct {
	ctx context.Context
	now func() time.Time

	seq      *journey.Sequencer
	rec      *journey.Recorder
	journeys store.JourneyStore
	notes    store.NoteStore
	log      logging.Logger

	width  int
	height int

	input  *LineInput
	note   *NoteInput
	picker *VerbPicker
	clean  sanitizer.InputSanitizer

	greeting  []string
	status    string
	statusErr bool

	overlay    journeyOverlay
	frames     []playbackFrame
	frameIndex int

	cursor     int
	sharedNote bool
	ambient    string
}

func NewJourneyModel(ctx context.Context, opts JourneyOptions) *JourneyModel {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	m := &JourneyModel{
		ctx:      ctx,
		now:      now,
		seq:      opts.Sequencer,
		rec:      opts.Recorder,
		journeys: opts.Journeys,
		notes:    opts.Notes,
		log:      log,
		width:    80,
		height:   24,
		input:    NewLineInput(60, ""),
		note:     NewNoteInput(60, opts.NoteMinHeight, opts.NoteMaxHeight, "What is moving through you in the Sound Infused Air?"),
		picker:   NewVerbPicker(60, len(journey.Verbs())),
		clean:    sanitizer.NewTerminalSanitizer(sanitizer.NoteConfig()),
	}
	m.loadGreeting()
	m.loadAmbient()
	m.focusStage()
	return m
}

// loadAmbient picks one ambient whisper for the baggage claim, once per
// sitting, spanning the static lines and the shared pool.
func (m *JourneyModel) loadAmbient() {
	if !m.seq.IsTerminal() || m.ambient != "" {
		return
	}
	pool, err := m.notes.List(m.ctx)
	if err != nil {
		m.log.Warn("list shared notes", logging.F("error", err))
	}
	m.ambient = m.clean.Sanitize(journey.TerminalNote(pool))
}

func (m *JourneyModel) loadGreeting() {
	last, ok, err := m.rec.LastJourney(m.ctx)
	if err != nil || !ok {
		return
	}
	arrival := last.Arrival
	if arrival == "" {
		arrival = "—"
	}
	departure := last.Departure
	if departure == "" {
		departure = "—"
	}
	m.greeting = []string{
		"Welcome back to 1000 Ways to Sit",
		fmt.Sprintf("Last visit: %s → %s. What vibration arrives with you today?", arrival, departure),
	}
}

func (m *JourneyModel) Init() tea.Cmd {
	return nil
}

func (m *JourneyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, m.updateFocused(msg)
}

func (m *JourneyModel) resize(width, height int) {
	m.width = width
	m.height = height
	inner := max(20, width-4)
	m.input.Resize(inner)
	m.note.Resize(inner)
	m.picker.SetSize(inner, len(journey.Verbs()))
}

func (m *JourneyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.overlay != overlayNone {
		m.handleOverlayKey(msg.String())
		return m, nil
	}
	if m.seq.IsTerminal() {
		return m.handleSummaryKey(msg)
	}
	return m.handleStageKey(msg)
}

func (m *JourneyModel) handleOverlayKey(key string) {
	switch key {
	case "esc", "q":
		m.overlay = overlayNone
	case "enter", " ", "right":
		m.frameIndex++
		if m.frameIndex >= len(m.frames) {
			m.overlay = overlayNone
		}
	}
}

func (m *JourneyModel) handleStageKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	step := m.seq.CurrentStep()
	key := msg.String()
	switch step.Trigger {
	case journey.TriggerConfirm:
		switch key {
		case "enter", " ":
			m.advanceStage(journey.Confirm())
			return m, nil
		case "q", "esc":
			return m, tea.Quit
		}
		return m, nil
	case journey.TriggerChoice:
		switch key {
		case "up", "k":
			m.picker.Move(-1)
			return m, nil
		case "down", "j":
			m.picker.Move(1)
			return m, nil
		case "enter":
			m.advanceStage(journey.Choice(m.picker.Selected()))
			return m, nil
		case "esc":
			return m, tea.Quit
		}
		return m, nil
	case journey.TriggerText:
		if key == "enter" {
			value := m.stageInputValue(step.Stage)
			// Empty submissions stay on the stage; nothing is written.
			if strings.TrimSpace(value) == "" {
				return m, nil
			}
			m.advanceStage(journey.Text(value))
			return m, nil
		}
		if key == "esc" {
			return m, tea.Quit
		}
		return m, m.updateFocused(msg)
	}
	return m, nil
}

func (m *JourneyModel) stageInputValue(stage journey.Stage) string {
	if stage == journey.StageSanctuary {
		return m.clean.Sanitize(m.note.Value())
	}
	return m.clean.Sanitize(m.input.Value())
}

func (m *JourneyModel) advanceStage(trigger journey.Trigger) {
	stage := m.seq.CurrentStage()
	if !m.seq.Advance(m.ctx, trigger) {
		return
	}
	switch stage {
	case journey.StageSensing:
		m.setStatus(fmt.Sprintf("Arrival Vibration :: %q sensed and saved.", trigger.Value))
		m.input.Clear()
	case journey.StageVerbration:
		m.setStatus("Verbration chosen :: the atmosphere shifts.")
	case journey.StageSanctuary:
		m.setStatus("Sonic Note saved :: resonance captured.")
		m.note.Clear()
	case journey.StageDeparture:
		m.setStatus("Departure Resonance saved :: frequency noted.")
		m.input.Clear()
	default:
		m.status = ""
	}
	m.loadAmbient()
	m.focusStage()
}

// focusStage points keyboard focus at whichever widget the active
// stage reads from.
func (m *JourneyModel) focusStage() {
	m.input.Blur()
	m.note.Blur()
	if m.seq.IsTerminal() {
		return
	}
	step := m.seq.CurrentStep()
	if step.Trigger != journey.TriggerText {
		return
	}
	if step.Stage == journey.StageSanctuary {
		m.note.Focus()
		return
	}
	switch step.Stage {
	case journey.StageSensing:
		m.input.SetPlaceholder("calm, scattered, anxious, open...")
	case journey.StageDeparture:
		m.input.SetPlaceholder("How do you leave?")
	}
	m.input.Focus()
}

func (m *JourneyModel) handleSummaryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(baggageItems)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.cycleBaggage(baggageItems[m.cursor])
	case "v":
		m.openReflection()
	case "n":
		m.openSittingRoom()
	case "s":
		m.shareNote()
	case "e":
		m.exportJourney()
	case "c":
		m.copySummary()
	}
	return m, nil
}

func (m *JourneyModel) cycleBaggage(item string) {
	decisions := m.seq.Checkpoints().Baggage
	var next string
	switch decisions[item] {
	case "":
		next = baggageDecisionCarry
	case baggageDecisionCarry:
		next = baggageDecisionRelease
	default:
		next = baggageDecisionCarry
	}
	m.seq.SortBaggage(m.ctx, item, next)
}

func (m *JourneyModel) openReflection() {
	cp := m.seq.Checkpoints()
	arrival := orDash(cp.Arrival)
	departure := orDash(cp.Departure)
	m.frames = []playbackFrame{
		{label: "You arrived...", text: arrival},
		{label: "Your verbration was...", text: strings.ToUpper(orDash(cp.Verb))},
		{label: "You sensed...", text: "\"" + orDash(cp.Note) + "\""},
		{label: "You departed...", text: departure},
		{label: arrival + " → " + departure, text: "This is your resonance.\nThis is your frequency."},
	}
	m.frameIndex = 0
	m.overlay = overlayReflection
}

func (m *JourneyModel) openSittingRoom() {
	pool, err := m.notes.List(m.ctx)
	if err != nil {
		m.log.Warn("list shared notes", logging.F("error", err))
	}
	frames := []playbackFrame{
		{label: "The Sitting Room", text: "Collective Resonance"},
		{label: "From the sanctuary field...", text: ""},
	}
	for _, note := range journey.SittingRoomNotes(pool) {
		frames = append(frames, playbackFrame{label: note.Caption, text: m.clean.Sanitize(note.Text)})
	}
	frames = append(frames, playbackFrame{label: "This is the vibrational pond", text: "Where presence meets presence"})
	m.frames = frames
	m.frameIndex = 0
	m.overlay = overlaySittingRoom
}

func (m *JourneyModel) shareNote() {
	if m.sharedNote {
		m.setStatus("Already shared to The Sitting Room.")
		return
	}
	note := m.seq.Checkpoints().Note
	if note == "" {
		m.setError("No sonic note to share.")
		return
	}
	err := m.notes.Append(m.ctx, &types.SharedNote{Text: note, CreatedAt: m.now()})
	if err != nil {
		m.log.Warn("share note", logging.F("error", err))
		m.setError("Could not share the note.")
		return
	}
	m.sharedNote = true
	m.setStatus("Shared to The Sitting Room ✓")
}

func (m *JourneyModel) exportJourney() {
	history, err := m.journeys.List(m.ctx)
	if err != nil {
		m.log.Warn("list journey history", logging.F("error", err))
	}
	data, err := export.JourneyJSON(m.seq.Checkpoints(), history)
	if err != nil {
		m.setError("Export failed: " + err.Error())
		return
	}
	name := m.seq.Checkpoints().Departure
	if name == "" {
		name = "in-flight"
	}
	path := "arrive-journey-" + slugify(name) + ".json"
	if err := os.WriteFile(path, data, 0o644); err != nil {
		m.setError("Export failed: " + err.Error())
		return
	}
	m.setStatus("Journey exported to " + path)
}

func (m *JourneyModel) copySummary() {
	cp := m.seq.Checkpoints()
	lines := []string{
		"Arrival Vibration: " + orDash(cp.Arrival),
		"Chosen Verbration: " + strings.ToUpper(orDash(cp.Verb)),
		"Sonic Note: \"" + orDash(cp.Note) + "\"",
		"Departure Resonance: " + orDash(cp.Departure),
	}
	if _, err := copyTextToClipboard(strings.Join(lines, "\n")); err != nil {
		m.setError("copy failed: " + err.Error())
		return
	}
	m.setStatus("Journey summary copied.")
}

func (m *JourneyModel) updateFocused(msg tea.Msg) tea.Cmd {
	if m.seq.IsTerminal() {
		return nil
	}
	step := m.seq.CurrentStep()
	if step.Trigger != journey.TriggerText {
		return nil
	}
	if step.Stage == journey.StageSanctuary {
		return m.note.Update(msg)
	}
	return m.input.Update(msg)
}

func (m *JourneyModel) setStatus(text string) {
	m.status = text
	m.statusErr = false
}

func (m *JourneyModel) setError(text string) {
	m.status = text
	m.statusErr = true
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "—"
	}
	return value
}

func slugify(value string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(value)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	if b.Len() == 0 {
		return "journey"
	}
	return b.String()
}
