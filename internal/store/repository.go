package store

import (
	"context"
	"errors"
	"strings"

	"arrive/internal/logging"
	"arrive/internal/types"
)

const (
	RepositoryBackendFile  = "file"
	RepositoryBackendBbolt = "bbolt"
)

// CheckpointStore holds the single in-progress journey.
type CheckpointStore interface {
	Load(ctx context.Context) (*types.JourneyCheckpoints, error)
	Save(ctx context.Context, checkpoints *types.JourneyCheckpoints) error
	Reset(ctx context.Context) error
}

// JourneyStore is the append-only journey history log.
type JourneyStore interface {
	Append(ctx context.Context, record *types.JourneyRecord) error
	List(ctx context.Context) ([]*types.JourneyRecord, error)
	Last(ctx context.Context) (*types.JourneyRecord, bool, error)
	Clear(ctx context.Context) error
}

// SurveyStore is the append-only research session log.
type SurveyStore interface {
	Append(ctx context.Context, record *types.SessionRecord) error
	List(ctx context.Context) ([]*types.SessionRecord, error)
	Last(ctx context.Context) (*types.SessionRecord, bool, error)
	Clear(ctx context.Context) error
}

// NoteStore is the collective note pool. It has no clear: the pool
// outlives journey resets and history wipes.
type NoteStore interface {
	Append(ctx context.Context, note *types.SharedNote) error
	List(ctx context.Context) ([]*types.SharedNote, error)
}

type Repository interface {
	Checkpoints() CheckpointStore
	Journeys() JourneyStore
	Surveys() SurveyStore
	Notes() NoteStore
	// SetLogger routes degraded-storage warnings to the operator log.
	SetLogger(log logging.Logger)
	Backend() string
	Close() error
}

type RepositoryPaths struct {
	CheckpointsPath string
	JourneysPath    string
	SurveysPath     string
	NotesPath       string
	DBPath          string
}

type fileRepository struct {
	checkpoints *FileCheckpointStore
	journeys    *FileJourneyStore
	surveys     *FileSurveyStore
	notes       *FileNoteStore
}

func NewFileRepository(paths RepositoryPaths) Repository {
	return &fileRepository{
		checkpoints: NewFileCheckpointStore(paths.CheckpointsPath),
		journeys:    NewFileJourneyStore(paths.JourneysPath),
		surveys:     NewFileSurveyStore(paths.SurveysPath),
		notes:       NewFileNoteStore(paths.NotesPath),
	}
}

func (r *fileRepository) SetLogger(log logging.Logger) {
	if log == nil {
		return
	}
	r.checkpoints.SetLogger(log)
	r.journeys.SetLogger(log)
	r.surveys.SetLogger(log)
	r.notes.SetLogger(log)
}

func (r *fileRepository) Checkpoints() CheckpointStore {
	return r.checkpoints
}

func (r *fileRepository) Journeys() JourneyStore {
	return r.journeys
}

func (r *fileRepository) Surveys() SurveyStore {
	return r.surveys
}

func (r *fileRepository) Notes() NoteStore {
	return r.notes
}

func (r *fileRepository) Backend() string {
	return RepositoryBackendFile
}

func (r *fileRepository) Close() error {
	return nil
}

func OpenRepository(paths RepositoryPaths, backend string) (Repository, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", RepositoryBackendBbolt:
		if strings.TrimSpace(paths.DBPath) == "" {
			return nil, errors.New("db path is required for bbolt repository")
		}
		return NewBboltRepository(paths.DBPath)
	case RepositoryBackendFile:
		return NewFileRepository(paths), nil
	default:
		return nil, errors.New("unknown repository backend: " + backend)
	}
}
