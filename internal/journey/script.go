package journey

type Stage string

const (
	StageArrival    Stage = "arrival"
	StageSensing    Stage = "sensing"
	StageVerbration Stage = "verbration"
	StageExplore    Stage = "explore"
	StageSanctuary  Stage = "sanctuary"
	StageDeparture  Stage = "departure"
	StageArtifacts  Stage = "artifacts"
)

type TriggerKind string

const (
	TriggerConfirm TriggerKind = "confirm"
	TriggerText    TriggerKind = "text"
	TriggerChoice  TriggerKind = "choice"
)

type Checkpoint string

const (
	CheckpointNone      Checkpoint = ""
	CheckpointArrival   Checkpoint = "boarding_ping"
	CheckpointVerb      Checkpoint = "verb"
	CheckpointNote      Checkpoint = "cabin_note"
	CheckpointDeparture Checkpoint = "landing_ping"
)

// StageStep declares what input advances a stage and which checkpoint
// that input is written to.
type StageStep struct {
	Stage      Stage
	Trigger    TriggerKind
	Checkpoint Checkpoint
}

// DefaultScript is the canonical journey: drop the needle, name the
// arrival vibration, choose a verbration, board, leave a sonic note,
// name the departure resonance, then collect artifacts.
func DefaultScript() []StageStep {
	return []StageStep{
		{Stage: StageArrival, Trigger: TriggerConfirm},
		{Stage: StageSensing, Trigger: TriggerText, Checkpoint: CheckpointArrival},
		{Stage: StageVerbration, Trigger: TriggerChoice, Checkpoint: CheckpointVerb},
		{Stage: StageExplore, Trigger: TriggerConfirm},
		{Stage: StageSanctuary, Trigger: TriggerText, Checkpoint: CheckpointNote},
		{Stage: StageDeparture, Trigger: TriggerText, Checkpoint: CheckpointDeparture},
		{Stage: StageArtifacts},
	}
}

// Stages returns the stage order of the default script.
func Stages() []Stage {
	script := DefaultScript()
	out := make([]Stage, 0, len(script))
	for _, step := range script {
		out = append(out, step.Stage)
	}
	return out
}

// Trigger is one piece of traveler input offered to the sequencer.
type Trigger struct {
	Kind  TriggerKind
	Value string
}

func Confirm() Trigger {
	return Trigger{Kind: TriggerConfirm}
}

func Text(value string) Trigger {
	return Trigger{Kind: TriggerText, Value: value}
}

func Choice(value string) Trigger {
	return Trigger{Kind: TriggerChoice, Value: value}
}
