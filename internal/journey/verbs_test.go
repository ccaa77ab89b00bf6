package journey

import (
	"strings"
	"testing"

	"arrive/internal/types"
)

func TestGreetingAssembly(t *testing.T) {
	cases := []struct {
		name    string
		arrival string
		verb    string
		want    string
	}{
		{
			"ping and verb",
			"curious", "tune",
			"You entered the sanctuary curious :: and you are exploring the sanctuary to Tune and to calibrate to resonance.",
		},
		{
			"ping only",
			"curious", "",
			"You entered the sanctuary curious. You can choose a verbration to guide your exploration.",
		},
		{
			"verb only",
			"", "shift",
			"You are exploring the sanctuary to Shift and to allow transformation. You can name your arrival vibration any time.",
		},
		{
			"neither",
			"", "",
			"You are in the sanctuary now. You can choose a verbration and name your arrival vibration any time.",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Greeting(tc.arrival, tc.verb); got != tc.want {
				t.Fatalf("Greeting = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestVerbCatalog(t *testing.T) {
	if len(Verbs()) != 7 {
		t.Fatalf("expected seven verbrations, got %d", len(Verbs()))
	}
	verb, ok := VerbByName(" Hear ")
	if !ok || verb.Whisper != "listen to silence between tones" {
		t.Fatalf("lookup failed: %+v ok=%v", verb, ok)
	}
	if _, ok := VerbByName("sprint"); ok {
		t.Fatalf("unknown verb must decline")
	}
	if ExplorePrompt("nope") != defaultExplorePrompt {
		t.Fatalf("unknown verb should fall back to the neutral prompt")
	}
	if !strings.Contains(ExplorePrompt("move"), "micro-movements") {
		t.Fatalf("verb prompt lookup failed")
	}
}

func TestLookupDefinition(t *testing.T) {
	def, ok := LookupDefinition(" Verbration ")
	if !ok || def.Title != "Verbration" {
		t.Fatalf("lookup failed: %+v ok=%v", def, ok)
	}
	if _, ok := LookupDefinition("quantum-chakra"); ok {
		t.Fatalf("missing term must decline without error")
	}
	if len(DefinitionTerms()) != 5 {
		t.Fatalf("expected five glossary terms, got %d", len(DefinitionTerms()))
	}
}

func TestTerminalNoteSpansPool(t *testing.T) {
	pool := []*types.SharedNote{{Text: "shared wisdom"}, nil, {Text: ""}}
	options := noteOptions(pool)
	if len(options) != len(wisdomLines)+1 {
		t.Fatalf("rotation should hold static lines plus valid pool notes, got %d", len(options))
	}
	if options[len(options)-1] != "shared wisdom" {
		t.Fatalf("pool note missing from rotation")
	}
	if TerminalNote(nil) == "" {
		t.Fatalf("terminal note must never be empty")
	}
}

func TestSittingRoomNotesCapped(t *testing.T) {
	pool := make([]*types.SharedNote, 0, 10)
	for i := 0; i < 10; i++ {
		pool = append(pool, &types.SharedNote{Text: "note"})
	}
	notes := SittingRoomNotes(pool)
	if len(notes) != sittingRoomLimit {
		t.Fatalf("playback should cap at %d, got %d", sittingRoomLimit, len(notes))
	}
	empty := SittingRoomNotes(nil)
	if len(empty) != 6 {
		t.Fatalf("empty pool should still whisper six ambient lines, got %d", len(empty))
	}
	for _, note := range empty {
		if note.Shared {
			t.Fatalf("ambient note mislabeled as shared")
		}
	}
}

func TestDefaultScriptShape(t *testing.T) {
	script := DefaultScript()
	if len(script) != 7 {
		t.Fatalf("expected seven stages, got %d", len(script))
	}
	wantStages := []Stage{StageArrival, StageSensing, StageVerbration, StageExplore, StageSanctuary, StageDeparture, StageArtifacts}
	for i, stage := range Stages() {
		if stage != wantStages[i] {
			t.Fatalf("stage %d = %s, want %s", i, stage, wantStages[i])
		}
	}
	bindings := map[Stage]Checkpoint{}
	for _, step := range script {
		bindings[step.Stage] = step.Checkpoint
	}
	if bindings[StageSensing] != CheckpointArrival || bindings[StageDeparture] != CheckpointDeparture {
		t.Fatalf("checkpoint bindings wrong: %+v", bindings)
	}
}
