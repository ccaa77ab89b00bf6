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

const noteSchemaVersion = 1

// FileNoteStore is the collective note pool. It is deliberately
// append-only with no clear path: shared notes belong to the field, not
// to any one journey.
type FileNoteStore struct {
	path string
	log  logging.Logger
	mu   sync.Mutex
}

type noteFile struct {
	Version int                 `json:"version"`
	Notes   []*types.SharedNote `json:"notes"`
}

func NewFileNoteStore(path string) *FileNoteStore {
	return &FileNoteStore{path: path, log: logging.Nop()}
}

func (s *FileNoteStore) SetLogger(log logging.Logger) {
	if log == nil {
		return
	}
	s.log = log
}

func (s *FileNoteStore) Append(ctx context.Context, note *types.SharedNote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if note == nil || strings.TrimSpace(note.Text) == "" {
		return errors.New("note text is required")
	}
	file := s.load()
	copyNote := *note
	copyNote.Text = strings.TrimSpace(copyNote.Text)
	file.Notes = append(file.Notes, &copyNote)
	return s.save(file)
}

func (s *FileNoteStore) List(ctx context.Context) ([]*types.SharedNote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file := s.load()
	out := make([]*types.SharedNote, 0, len(file.Notes))
	for _, note := range file.Notes {
		copyNote := *note
		out = append(out, &copyNote)
	}
	return out, nil
}

func (s *FileNoteStore) load() *noteFile {
	var file noteFile
	if err := readJSON(s.path, &file); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn("note pool unreadable, starting empty",
				logging.F("path", s.path), logging.F("error", err.Error()))
		}
		return &noteFile{Version: noteSchemaVersion}
	}
	return &file
}

func (s *FileNoteStore) save(file *noteFile) error {
	file.Version = noteSchemaVersion
	return writeJSONAtomic(s.path, file)
}
