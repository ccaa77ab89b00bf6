package store

import (
	"context"
	"errors"
	"os"
	"sync"

	"arrive/internal/logging"
	"arrive/internal/types"
)

const surveySchemaVersion = 1

// FileSurveyStore is the append-only research session log.
type FileSurveyStore struct {
	path string
	log  logging.Logger
	mu   sync.Mutex
}

type surveyFile struct {
	Version  int                    `json:"version"`
	Sessions []*types.SessionRecord `json:"sessions"`
}

func NewFileSurveyStore(path string) *FileSurveyStore {
	return &FileSurveyStore{path: path, log: logging.Nop()}
}

func (s *FileSurveyStore) SetLogger(log logging.Logger) {
	if log == nil {
		return
	}
	s.log = log
}

func (s *FileSurveyStore) Append(ctx context.Context, record *types.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record == nil {
		return errors.New("session record is required")
	}
	file := s.load()
	file.Sessions = append(file.Sessions, record.Clone())
	return s.save(file)
}

func (s *FileSurveyStore) List(ctx context.Context) ([]*types.SessionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file := s.load()
	out := make([]*types.SessionRecord, 0, len(file.Sessions))
	for _, record := range file.Sessions {
		out = append(out, record.Clone())
	}
	return out, nil
}

func (s *FileSurveyStore) Last(ctx context.Context) (*types.SessionRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file := s.load()
	if len(file.Sessions) == 0 {
		return nil, false, nil
	}
	return file.Sessions[len(file.Sessions)-1].Clone(), true, nil
}

func (s *FileSurveyStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *FileSurveyStore) load() *surveyFile {
	var file surveyFile
	if err := readJSON(s.path, &file); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn("research sessions unreadable, starting empty",
				logging.F("path", s.path), logging.F("error", err.Error()))
		}
		return &surveyFile{Version: surveySchemaVersion}
	}
	return &file
}

func (s *FileSurveyStore) save(file *surveyFile) error {
	file.Version = surveySchemaVersion
	return writeJSONAtomic(s.path, file)
}
