package store

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"

	"arrive/internal/logging"
	"arrive/internal/types"
)

const journeySchemaVersion = 1

// FileJourneyStore is the append-only journey history log. Records are
// immutable once appended; the only mutation is a wholesale clear.
type FileJourneyStore struct {
	path string
	log  logging.Logger
	mu   sync.Mutex
}

type journeyFile struct {
	Version  int                    `json:"version"`
	Journeys []*types.JourneyRecord `json:"journeys"`
}

func NewFileJourneyStore(path string) *FileJourneyStore {
	return &FileJourneyStore{path: path, log: logging.Nop()}
}

func (s *FileJourneyStore) SetLogger(log logging.Logger) {
	if log == nil {
		return
	}
	s.log = log
}

func (s *FileJourneyStore) Append(ctx context.Context, record *types.JourneyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record == nil {
		return errors.New("journey record is required")
	}
	file := s.load()
	copyRecord := *record
	copyRecord.Arrival = strings.TrimSpace(copyRecord.Arrival)
	copyRecord.Verb = strings.TrimSpace(copyRecord.Verb)
	copyRecord.Note = strings.TrimSpace(copyRecord.Note)
	copyRecord.Departure = strings.TrimSpace(copyRecord.Departure)
	file.Journeys = append(file.Journeys, &copyRecord)
	return s.save(file)
}

func (s *FileJourneyStore) List(ctx context.Context) ([]*types.JourneyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file := s.load()
	out := make([]*types.JourneyRecord, 0, len(file.Journeys))
	for _, record := range file.Journeys {
		copyRecord := *record
		out = append(out, &copyRecord)
	}
	return out, nil
}

func (s *FileJourneyStore) Last(ctx context.Context) (*types.JourneyRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file := s.load()
	if len(file.Journeys) == 0 {
		return nil, false, nil
	}
	copyRecord := *file.Journeys[len(file.Journeys)-1]
	return &copyRecord, true, nil
}

func (s *FileJourneyStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *FileJourneyStore) load() *journeyFile {
	var file journeyFile
	if err := readJSON(s.path, &file); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn("journey history unreadable, starting empty",
				logging.F("path", s.path), logging.F("error", err.Error()))
		}
		return &journeyFile{Version: journeySchemaVersion}
	}
	return &file
}

func (s *FileJourneyStore) save(file *journeyFile) error {
	file.Version = journeySchemaVersion
	return writeJSONAtomic(s.path, file)
}
