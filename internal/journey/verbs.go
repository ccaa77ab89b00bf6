package journey

import "strings"

// Verb is an action-state a traveler chooses to guide exploration.
type Verb struct {
	Name    string
	Whisper string
	Prompt  string
}

var verbs = []Verb{
	{
		Name:    "sense",
		Whisper: "attune to subtle frequencies",
		Prompt:  "Let your awareness rest in the Sound Infused Air. Notice the frequencies moving through the space and through your body. What is present when you stop trying to understand and simply sense?",
	},
	{
		Name:    "see",
		Whisper: "witness inner landscapes",
		Prompt:  "Close your eyes and witness the inner landscapes that emerge. What colors, shapes, or visions arise as the Gamelatron frequencies ripple through you? Let yourself see without judgment.",
	},
	{
		Name:    "hear",
		Whisper: "listen to silence between tones",
		Prompt:  "Listen for the spaces between the bronze tones. The silence between sounds holds its own intelligence. What do you hear in the pauses, the echoes, the resonance fading?",
	},
	{
		Name:    "move",
		Whisper: "let vibration guide motion",
		Prompt:  "Let the vibrations guide your body's micro-movements. Where does the sound want to move you? What subtle shifts in position change your relationship with the frequencies?",
	},
	{
		Name:    "tune",
		Whisper: "calibrate to resonance",
		Prompt:  "You are an instrument being tuned by Sound Infused Air. What small internal adjustment brings you into resonance with the Gamelatron's frequency? Notice when you align.",
	},
	{
		Name:    "open",
		Whisper: "expand into spaciousness",
		Prompt:  "The sonic field invites expansion. Where in your body, mind, or awareness can you create more space? Let the sound open what has been held closed.",
	},
	{
		Name:    "shift",
		Whisper: "allow transformation",
		Prompt:  "You are between frequencies :: the arrival state is dissolving and something new is forming. Rest in this liminal sonic space. Let the transformation happen without forcing.",
	},
}

const defaultExplorePrompt = "Take this moment to notice what is present in the Sound Infused Air around you. You can adjust your exploration at any time."

func Verbs() []Verb {
	return append([]Verb{}, verbs...)
}

func VerbByName(name string) (Verb, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, verb := range verbs {
		if verb.Name == name {
			return verb, true
		}
	}
	return Verb{}, false
}

// ExplorePrompt returns the verb's exploration prompt, or the neutral
// prompt when no verb was chosen.
func ExplorePrompt(verbName string) string {
	if verb, ok := VerbByName(verbName); ok {
		return verb.Prompt
	}
	return defaultExplorePrompt
}

// Greeting assembles the boarding greeting from whichever of the
// arrival vibration and the verbration are present.
func Greeting(arrival, verbName string) string {
	arrival = strings.TrimSpace(arrival)
	verb, hasVerb := VerbByName(verbName)
	switch {
	case arrival != "" && hasVerb:
		return "You entered the sanctuary " + arrival + " :: and you are exploring the sanctuary to " + capitalize(verb.Name) + " and to " + verb.Whisper + "."
	case arrival != "":
		return "You entered the sanctuary " + arrival + ". You can choose a verbration to guide your exploration."
	case hasVerb:
		return "You are exploring the sanctuary to " + capitalize(verb.Name) + " and to " + verb.Whisper + ". You can name your arrival vibration any time."
	default:
		return "You are in the sanctuary now. You can choose a verbration and name your arrival vibration any time."
	}
}

func capitalize(value string) string {
	if value == "" {
		return ""
	}
	return strings.ToUpper(value[:1]) + value[1:]
}
