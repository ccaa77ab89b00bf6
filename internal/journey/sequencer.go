package journey

import (
	"context"
	"strings"

	"arrive/internal/logging"
	"arrive/internal/types"
)

// CheckpointWriter persists the in-progress checkpoints after each
// advance. Write failures degrade to a log warning; the journey keeps
// moving in memory.
type CheckpointWriter interface {
	Save(ctx context.Context, checkpoints *types.JourneyCheckpoints) error
}

// Finalizer receives the completed checkpoints exactly once, when the
// sequencer reaches its terminal stage.
type Finalizer func(ctx context.Context, checkpoints *types.JourneyCheckpoints)

// Sequencer walks the journey script forward one validated trigger at a
// time. There is no skip and no backtrack; invalid input leaves the
// stage pointer and the checkpoints untouched.
type Sequencer struct {
	script      []StageStep
	index       int
	checkpoints *types.JourneyCheckpoints
	writer      CheckpointWriter
	finalize    Finalizer
	finalized   bool
	log         logging.Logger
}

type SequencerOption func(*Sequencer)

func WithScript(script []StageStep) SequencerOption {
	return func(s *Sequencer) {
		if s == nil || len(script) == 0 {
			return
		}
		s.script = append([]StageStep{}, script...)
	}
}

// WithCheckpoints resumes from previously persisted checkpoints.
func WithCheckpoints(checkpoints *types.JourneyCheckpoints) SequencerOption {
	return func(s *Sequencer) {
		if s == nil || checkpoints == nil {
			return
		}
		s.checkpoints = checkpoints.Clone()
	}
}

func WithCheckpointWriter(writer CheckpointWriter) SequencerOption {
	return func(s *Sequencer) {
		if s == nil || writer == nil {
			return
		}
		s.writer = writer
	}
}

func WithFinalizer(finalize Finalizer) SequencerOption {
	return func(s *Sequencer) {
		if s == nil || finalize == nil {
			return
		}
		s.finalize = finalize
	}
}

func WithSequencerLogger(log logging.Logger) SequencerOption {
	return func(s *Sequencer) {
		if s == nil || log == nil {
			return
		}
		s.log = log
	}
}

func NewSequencer(opts ...SequencerOption) *Sequencer {
	s := &Sequencer{
		script:      DefaultScript(),
		checkpoints: &types.JourneyCheckpoints{},
		log:         logging.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Sequencer) CurrentStage() Stage {
	if s == nil || len(s.script) == 0 {
		return ""
	}
	return s.script[s.index].Stage
}

func (s *Sequencer) CurrentStep() StageStep {
	if s == nil || len(s.script) == 0 {
		return StageStep{}
	}
	return s.script[s.index]
}

// StageIndex returns the zero-based position of the current stage.
func (s *Sequencer) StageIndex() int {
	if s == nil {
		return 0
	}
	return s.index
}

func (s *Sequencer) IsTerminal() bool {
	if s == nil || len(s.script) == 0 {
		return true
	}
	return s.index == len(s.script)-1
}

// Checkpoints returns a copy of the values gathered so far.
func (s *Sequencer) Checkpoints() *types.JourneyCheckpoints {
	if s == nil {
		return &types.JourneyCheckpoints{}
	}
	return s.checkpoints.Clone()
}

// Advance validates the trigger against the current stage, writes its
// checkpoint value, then moves the stage pointer. It reports whether
// the journey advanced. At the terminal stage it is a no-op.
func (s *Sequencer) Advance(ctx context.Context, trigger Trigger) bool {
	if s == nil || len(s.script) == 0 {
		return false
	}
	if s.IsTerminal() {
		return false
	}
	step := s.script[s.index]
	value, ok := validateTrigger(step, trigger)
	if !ok {
		return false
	}
	if step.Checkpoint != CheckpointNone {
		applyCheckpoint(s.checkpoints, step.Checkpoint, value)
		s.persist(ctx)
	}
	s.index++
	s.log.Debug("journey advanced",
		logging.F("stage", string(s.script[s.index].Stage)),
		logging.F("checkpoint", string(step.Checkpoint)))
	if s.IsTerminal() && !s.finalized {
		s.finalized = true
		if s.finalize != nil {
			s.finalize(ctx, s.checkpoints.Clone())
		}
	}
	return true
}

// SortBaggage records one baggage decision at the terminal stage.
func (s *Sequencer) SortBaggage(ctx context.Context, item, decision string) bool {
	if s == nil || !s.IsTerminal() {
		return false
	}
	item = strings.TrimSpace(item)
	decision = strings.TrimSpace(decision)
	if item == "" || decision == "" {
		return false
	}
	if s.checkpoints.Baggage == nil {
		s.checkpoints.Baggage = map[string]string{}
	}
	s.checkpoints.Baggage[item] = decision
	s.persist(ctx)
	return true
}

func (s *Sequencer) persist(ctx context.Context) {
	if s.writer == nil {
		return
	}
	saved := s.checkpoints.Clone()
	if s.finalized {
		// The finished journey lives in the history log and the stored
		// checkpoints are cleared. Only baggage decisions made after the
		// landing still get written back, so the next run starts fresh.
		saved = &types.JourneyCheckpoints{Baggage: saved.Baggage}
	}
	if err := s.writer.Save(ctx, saved); err != nil {
		s.log.Warn("checkpoint save failed", logging.F("error", err.Error()))
	}
}

func applyCheckpoint(checkpoints *types.JourneyCheckpoints, checkpoint Checkpoint, value string) {
	switch checkpoint {
	case CheckpointArrival:
		checkpoints.Arrival = value
	case CheckpointVerb:
		checkpoints.Verb = value
	case CheckpointNote:
		checkpoints.Note = value
	case CheckpointDeparture:
		checkpoints.Departure = value
	}
}

func validateTrigger(step StageStep, trigger Trigger) (string, bool) {
	if trigger.Kind != step.Trigger {
		return "", false
	}
	switch step.Trigger {
	case TriggerConfirm:
		return "", true
	case TriggerText:
		value := strings.TrimSpace(trigger.Value)
		return value, value != ""
	case TriggerChoice:
		value := strings.ToLower(strings.TrimSpace(trigger.Value))
		if _, ok := VerbByName(value); !ok {
			return "", false
		}
		return value, true
	default:
		return "", false
	}
}
