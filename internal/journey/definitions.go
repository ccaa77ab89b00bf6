package journey

import "strings"

// Definition is one glossary entry, body in markdown for modal display.
type Definition struct {
	Term     string
	Title    string
	Subtitle string
	Body     string
}

var definitions = []Definition{
	{
		Term:     "sound-infused-air",
		Title:    "Sound Infused Air",
		Subtitle: "The Intelligent Atmosphere of the Sanctuary",
		Body: `**Sound Infused Air** is the intelligent, responsive atmosphere created when bronze Gamelatron vibrations meet your presence in the sanctuary space.

This is not merely "ambient sound" :: it is a living field where:

- Bronze frequencies **activate spatial awareness**
- Resonance becomes **perceivable information**
- Your attention **shapes what emerges**
- Silence between tones holds its own intelligence

In Sound Infused Air, you are not a passive listener but an active participant. The atmosphere responds to collective presence, creating conditions for what wants to become visible.`,
	},
	{
		Term:     "balinese-cosmology",
		Title:    "Balinese Cosmology",
		Subtitle: "Cultural Lineage :: Living Wisdom",
		Body: `The **Gamelatron** is a robotic Gamelan orchestra created by Aaron Taylor Kuffner, honoring the sacred bronze percussion tradition of Bali, Indonesia.

**Cultural Context:**

- **Gamelan** :: Bronze orchestra integral to Balinese ceremonies, rituals, and daily life for over 1,000 years
- **Panca Gita** :: Five elements of Balinese cosmology (sound, movement, rhythm, melody, silence)
- **Tri Hita Karana** :: Three sources of harmony :: spiritual realm, social realm, natural environment
- **Sekala & Niskala** :: Visible and invisible worlds existing simultaneously

The Gamelatron translates this living cultural wisdom into public sonic sanctuary, creating space where ancient practice meets contemporary contemplative technology. We honor this lineage with humility and attribution.

*Learn more: [gamelatron.com](https://gamelatron.com)*`,
	},
	{
		Term:     "ping",
		Title:    "PING (Arrival Vibration)",
		Subtitle: "Your State of Being When Entering",
		Body: `**PING** is your arrival vibration :: the frequency you bring when entering the sanctuary.

It might be a feeling:

- Curious
- Scattered
- Grounded
- Hopeful

Or a single word that captures your inner state:

- Seeking
- Restless
- Open
- Tired

Your PING is not "good" or "bad" :: it is simply what is true. The sanctuary welcomes whatever vibration you bring. Naming your arrival state is the first act of echo-locative intelligence: *sensing where you are so you can sense where you're going.*`,
	},
	{
		Term:     "verbration",
		Title:    "Verbration",
		Subtitle: "Action-State :: Verb + Vibration",
		Body: `**Verbration** is a portmanteau of *verb* and *vibration*.

In this sanctuary, you don't just *observe* sound :: you *participate* with it. A verbration is the action-state you choose to guide your exploration.

Each verbration offers a different portal into the Sound Infused Air:

- **SENSE** :: Attune to subtle frequencies
- **SEE** :: Witness inner landscapes
- **HEAR** :: Listen to silence between tones
- **MOVE** :: Let vibration guide motion
- **TUNE** :: Calibrate to resonance
- **OPEN** :: Expand into spaciousness
- **SHIFT** :: Allow transformation

Your verbration shapes how you inhabit the sanctuary. It is both intention and invitation.`,
	},
	{
		Term:     "research-ethics",
		Title:    "Research Ethics",
		Subtitle: "Attunement, Not Extraction",
		Body: `**You're not "providing data" :: you're weaving collective memory.**

This research framework honors:

- **Cultural lineage** :: Balinese cosmology as living wisdom, not dataset
- **Resonance-based knowing** :: Your embodied experience is valid research
- **Consent & autonomy** :: Skip any question; all responses stored locally
- **Co-research** :: You are insight-generator, not subject
- **Regenerative harvest** :: Findings feed back to participants and wider field

**Data Storage:** All responses are stored on this machine. No server, no cloud, no third parties. You can export your responses at any time.

**Attribution:** Facilitated sessions include researcher name for source delineation and documentation purposes.`,
	},
}

// LookupDefinition returns the glossary entry for a term. Unknown terms
// simply decline; callers leave the view unchanged.
func LookupDefinition(term string) (Definition, bool) {
	term = strings.ToLower(strings.TrimSpace(term))
	for _, def := range definitions {
		if def.Term == term {
			return def, true
		}
	}
	return Definition{}, false
}

func DefinitionTerms() []string {
	out := make([]string, 0, len(definitions))
	for _, def := range definitions {
		out = append(out, def.Term)
	}
	return out
}
