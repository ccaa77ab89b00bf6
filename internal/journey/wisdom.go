package journey

import (
	"math/rand/v2"

	"arrive/internal/types"
)

// wisdomLines are the sanctuary's ambient notes. Rotation draws from
// these plus whatever travelers have shared into the collective pool.
var wisdomLines = []string{
	"Your arrival vibration carries more information than it seems.",
	"Every guest enters with their own frequency.",
	"The Gamelatron responds to collective presence.",
	"Sound Infused Air reveals what silence contains.",
	"Small shifts in resonance :: large shifts in awareness.",
	"Every sitting position is a portal.",
	"Sense your vibration :: choose your verbration.",
	"You can always return with a new arrival state.",
	"The spaces between tones hold wisdom.",
	"You are inside the instrument.",
	"Bronze sings at frequencies that invite your presence.",
	"The sanctuary welcomes whatever vibration you bring.",
	"Listening and being listened to happen simultaneously.",
	"Every surface becomes a resonating body.",
	"Your departure resonance shapes what comes next.",
	"Scattered. Calm. Anxious. Open. All frequencies belong here.",
	"We are concentric :: rippling outward from presence.",
	"Take the time to comprehend your senses.",
	"Echo-locative intelligence is activated by your arrival.",
	"The silence between sounds holds its own intelligence.",
	"You are instrument, artist, and art simultaneously.",
	"Empirically connective frequencies encourage your resonance.",
	"Navigate by echo :: sense the spaces between tones.",
	"We are glad that you arrived as you.",
	"Your note becomes part of the field.",
	"Where bronze sings, you listen. Where silence opens, you enter.",
	"Sound Infused Air is intelligent and responsive.",
	"The cognitive companion completes the somatic practice.",
	"Reflection integrates what embodiment initiates.",
	"You are learning to move through the invisible architecture of awareness.",
}

func WisdomLines() []string {
	return append([]string{}, wisdomLines...)
}

// noteOptions is the full rotation: static wisdom plus shared notes.
func noteOptions(pool []*types.SharedNote) []string {
	out := append([]string{}, wisdomLines...)
	for _, note := range pool {
		if note == nil || note.Text == "" {
			continue
		}
		out = append(out, note.Text)
	}
	return out
}

// TerminalNote picks one ambient note at random.
func TerminalNote(pool []*types.SharedNote) string {
	options := noteOptions(pool)
	return options[rand.IntN(len(options))]
}

// SittingRoomNote is one entry in the sitting-room playback.
type SittingRoomNote struct {
	Text    string
	Shared  bool
	Caption string
}

const sittingRoomLimit = 8

// SittingRoomNotes mixes traveler-shared notes with a handful of
// ambient lines, shuffled and capped for playback.
func SittingRoomNotes(pool []*types.SharedNote) []SittingRoomNote {
	out := make([]SittingRoomNote, 0, len(pool)+6)
	for _, note := range pool {
		if note == nil || note.Text == "" {
			continue
		}
		out = append(out, SittingRoomNote{Text: note.Text, Shared: true, Caption: "A guest shared..."})
	}
	for _, line := range wisdomLines[:6] {
		out = append(out, SittingRoomNote{Text: line, Caption: "The sanctuary whispers..."})
	}
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	if len(out) > sittingRoomLimit {
		out = out[:sittingRoomLimit]
	}
	return out
}
