package store

import (
	"context"
	"errors"
	"os"
	"sync"

	"arrive/internal/logging"
	"arrive/internal/types"
)

const checkpointSchemaVersion = 1

// FileCheckpointStore keeps the in-progress journey in one JSON
// document. Missing or corrupt data degrades to empty checkpoints: a
// traveler never sees a storage error, the operator sees a log line.
type FileCheckpointStore struct {
	path string
	log  logging.Logger
	mu   sync.Mutex
}

type checkpointFile struct {
	Version     int                       `json:"version"`
	Checkpoints *types.JourneyCheckpoints `json:"checkpoints"`
}

func NewFileCheckpointStore(path string) *FileCheckpointStore {
	return &FileCheckpointStore{path: path, log: logging.Nop()}
}

func (s *FileCheckpointStore) SetLogger(log logging.Logger) {
	if log == nil {
		return
	}
	s.log = log
}

func (s *FileCheckpointStore) Load(ctx context.Context) (*types.JourneyCheckpoints, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var file checkpointFile
	if err := readJSON(s.path, &file); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn("checkpoint file unreadable, starting empty",
				logging.F("path", s.path), logging.F("error", err.Error()))
		}
		return &types.JourneyCheckpoints{}, nil
	}
	if file.Checkpoints == nil {
		return &types.JourneyCheckpoints{}, nil
	}
	return file.Checkpoints.Clone(), nil
}

func (s *FileCheckpointStore) Save(ctx context.Context, checkpoints *types.JourneyCheckpoints) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if checkpoints == nil {
		return errors.New("checkpoints are required")
	}
	file := checkpointFile{
		Version:     checkpointSchemaVersion,
		Checkpoints: checkpoints.Clone(),
	}
	return writeJSONAtomic(s.path, file)
}

func (s *FileCheckpointStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
