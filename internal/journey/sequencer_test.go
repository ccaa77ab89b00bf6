package journey

import (
	"context"
	"errors"
	"testing"

	"arrive/internal/types"
)

type captureWriter struct {
	saved []*types.JourneyCheckpoints
	err   error
}

func (w *captureWriter) Save(ctx context.Context, checkpoints *types.JourneyCheckpoints) error {
	w.saved = append(w.saved, checkpoints)
	return w.err
}

func TestSequencerWalksScriptForward(t *testing.T) {
	ctx := context.Background()
	writer := &captureWriter{}
	var finalized []*types.JourneyCheckpoints
	seq := NewSequencer(
		WithCheckpointWriter(writer),
		WithFinalizer(func(ctx context.Context, checkpoints *types.JourneyCheckpoints) {
			finalized = append(finalized, checkpoints)
		}),
	)

	steps := []struct {
		stage   Stage
		trigger Trigger
	}{
		{StageArrival, Confirm()},
		{StageSensing, Text("scattered")},
		{StageVerbration, Choice("tune")},
		{StageExplore, Confirm()},
		{StageSanctuary, Text("the pauses speak")},
		{StageDeparture, Text("calm")},
	}
	for _, step := range steps {
		if seq.CurrentStage() != step.stage {
			t.Fatalf("expected stage %s, at %s", step.stage, seq.CurrentStage())
		}
		if !seq.Advance(ctx, step.trigger) {
			t.Fatalf("advance at %s failed", step.stage)
		}
	}
	if seq.CurrentStage() != StageArtifacts || !seq.IsTerminal() {
		t.Fatalf("expected terminal artifacts stage, at %s", seq.CurrentStage())
	}

	checkpoints := seq.Checkpoints()
	if checkpoints.Arrival != "scattered" || checkpoints.Verb != "tune" ||
		checkpoints.Note != "the pauses speak" || checkpoints.Departure != "calm" {
		t.Fatalf("unexpected checkpoints: %+v", checkpoints)
	}
	// One persisted write per checkpoint-bearing stage.
	if len(writer.saved) != 4 {
		t.Fatalf("expected 4 checkpoint writes, got %d", len(writer.saved))
	}
	if len(finalized) != 1 {
		t.Fatalf("finalizer must run exactly once, ran %d times", len(finalized))
	}

	// Terminal re-advance is a no-op and never re-finalizes.
	if seq.Advance(ctx, Confirm()) {
		t.Fatalf("advance at terminal stage must be a no-op")
	}
	if len(finalized) != 1 {
		t.Fatalf("terminal no-op re-finalized")
	}
}

func TestSequencerRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	writer := &captureWriter{}
	seq := NewSequencer(WithCheckpointWriter(writer))

	// Wrong trigger kind at the confirm stage.
	if seq.Advance(ctx, Text("hello")) {
		t.Fatalf("text at confirm stage must not advance")
	}
	if !seq.Advance(ctx, Confirm()) {
		t.Fatalf("confirm should advance arrival")
	}

	// Blank text is a silent no-op: stage unchanged, nothing persisted.
	if seq.Advance(ctx, Text("   ")) {
		t.Fatalf("blank text must not advance")
	}
	if seq.CurrentStage() != StageSensing || len(writer.saved) != 0 {
		t.Fatalf("invalid input must leave state untouched; stage=%s writes=%d", seq.CurrentStage(), len(writer.saved))
	}
	if !seq.Advance(ctx, Text("curious")) {
		t.Fatalf("valid ping should advance")
	}

	// Unknown verb declines; a catalog verb advances.
	if seq.Advance(ctx, Choice("sprint")) {
		t.Fatalf("unknown verb must not advance")
	}
	if !seq.Advance(ctx, Choice("  OPEN  ")) {
		t.Fatalf("catalog verb should advance regardless of case")
	}
	if seq.Checkpoints().Verb != "open" {
		t.Fatalf("verb should normalize to lowercase, got %q", seq.Checkpoints().Verb)
	}
}

func TestSequencerResumesFromCheckpoints(t *testing.T) {
	resume := &types.JourneyCheckpoints{Arrival: "tired", Verb: "hear"}
	seq := NewSequencer(WithCheckpoints(resume))
	checkpoints := seq.Checkpoints()
	if checkpoints.Arrival != "tired" || checkpoints.Verb != "hear" {
		t.Fatalf("resume lost checkpoints: %+v", checkpoints)
	}
	// The copy is defensive both ways.
	resume.Arrival = "changed"
	if seq.Checkpoints().Arrival != "tired" {
		t.Fatalf("sequencer shares caller memory")
	}
}

func TestSequencerSurvivesWriterFailure(t *testing.T) {
	ctx := context.Background()
	writer := &captureWriter{err: errors.New("disk full")}
	seq := NewSequencer(WithCheckpointWriter(writer))

	if !seq.Advance(ctx, Confirm()) || !seq.Advance(ctx, Text("open")) {
		t.Fatalf("write failure must not block the journey")
	}
	if seq.Checkpoints().Arrival != "open" {
		t.Fatalf("in-memory checkpoint lost on write failure")
	}
}

func TestSortBaggageOnlyAtTerminal(t *testing.T) {
	ctx := context.Background()
	seq := NewSequencer()
	if seq.SortBaggage(ctx, "worry", "release") {
		t.Fatalf("baggage sorting before the terminal stage must decline")
	}
	for _, trigger := range []Trigger{Confirm(), Text("a"), Choice("see"), Confirm(), Text("b"), Text("c")} {
		if !seq.Advance(ctx, trigger) {
			t.Fatalf("setup advance failed")
		}
	}
	if !seq.SortBaggage(ctx, "worry", "release") {
		t.Fatalf("baggage sorting at terminal failed")
	}
	if seq.Checkpoints().Baggage["worry"] != "release" {
		t.Fatalf("baggage decision missing: %+v", seq.Checkpoints())
	}
	if seq.SortBaggage(ctx, "", "release") || seq.SortBaggage(ctx, "worry", " ") {
		t.Fatalf("blank baggage fields must decline")
	}
}

func TestSortBaggageAfterLandingSavesOnlyBaggage(t *testing.T) {
	ctx := context.Background()
	writer := &captureWriter{}
	seq := NewSequencer(WithCheckpointWriter(writer))
	for _, trigger := range []Trigger{Confirm(), Text("calm"), Choice("tune"), Confirm(), Text("note"), Text("open")} {
		if !seq.Advance(ctx, trigger) {
			t.Fatalf("setup advance failed")
		}
	}
	if !seq.SortBaggage(ctx, "arrival vibration", "carry") {
		t.Fatalf("baggage sorting at terminal failed")
	}

	// The landing already appended the journey to the history log, so the
	// write triggered by sorting must not revive the named checkpoints.
	last := writer.saved[len(writer.saved)-1]
	if last.Arrival != "" || last.Verb != "" || last.Note != "" || last.Departure != "" {
		t.Fatalf("finished journey written back as in progress: %+v", last)
	}
	if last.Baggage["arrival vibration"] != "carry" {
		t.Fatalf("baggage decision missing from saved checkpoints: %+v", last)
	}

	// In memory the finished values stay visible for the summary screen.
	if got := seq.Checkpoints(); got.Arrival != "calm" || got.Departure != "open" {
		t.Fatalf("terminal summary lost its checkpoints: %+v", got)
	}
}
