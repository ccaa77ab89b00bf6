package store

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"arrive/internal/logging"
	"arrive/internal/types"
)

var (
	bucketCheckpoints = []byte("checkpoints")
	bucketJourneys    = []byte("journeys")
	bucketSurveys     = []byte("surveys")
	bucketNotes       = []byte("notes")
	keyCheckpoints    = []byte("current")
)

type bboltRepository struct {
	db          *bolt.DB
	checkpoints *bboltCheckpointStore
	journeys    *bboltJourneyStore
	surveys     *bboltSurveyStore
	notes       *bboltNoteStore
}

func NewBboltRepository(path string) (Repository, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("repository db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := initBboltSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo := &bboltRepository{db: db}
	repo.checkpoints = &bboltCheckpointStore{db: db, log: logging.Nop()}
	repo.journeys = &bboltJourneyStore{db: db, log: logging.Nop()}
	repo.surveys = &bboltSurveyStore{db: db, log: logging.Nop()}
	repo.notes = &bboltNoteStore{db: db, log: logging.Nop()}
	return repo, nil
}

func (r *bboltRepository) Checkpoints() CheckpointStore {
	return r.checkpoints
}

func (r *bboltRepository) Journeys() JourneyStore {
	return r.journeys
}

func (r *bboltRepository) Surveys() SurveyStore {
	return r.surveys
}

func (r *bboltRepository) Notes() NoteStore {
	return r.notes
}

func (r *bboltRepository) SetLogger(log logging.Logger) {
	if log == nil {
		return
	}
	r.checkpoints.log = log
	r.journeys.log = log
	r.surveys.log = log
	r.notes.log = log
}

func (r *bboltRepository) Backend() string {
	return RepositoryBackendBbolt
}

func (r *bboltRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func initBboltSchema(db *bolt.DB) error {
	return db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketCheckpoints); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(bucketJourneys); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(bucketSurveys); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(bucketNotes); err != nil {
			return err
		}
		return nil
	})
}

type bboltCheckpointStore struct {
	db  *bolt.DB
	log logging.Logger
	mu  sync.Mutex
}

func (s *bboltCheckpointStore) Load(ctx context.Context) (*types.JourneyCheckpoints, error) {
	out := &types.JourneyCheckpoints{}
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCheckpoints)
		if b == nil {
			return nil
		}
		raw := b.Get(keyCheckpoints)
		if len(raw) == 0 {
			return nil
		}
		var checkpoints types.JourneyCheckpoints
		if err := json.Unmarshal(raw, &checkpoints); err != nil {
			s.log.Warn("checkpoint record unreadable, starting empty",
				logging.F("error", err.Error()))
			return nil
		}
		out = &checkpoints
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *bboltCheckpointStore) Save(ctx context.Context, checkpoints *types.JourneyCheckpoints) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if checkpoints == nil {
		return errors.New("checkpoints are required")
	}
	raw, err := json.Marshal(checkpoints)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCheckpoints)
		if b == nil {
			return errors.New("checkpoints bucket missing")
		}
		return b.Put(keyCheckpoints, raw)
	})
}

func (s *bboltCheckpointStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCheckpoints)
		if b == nil {
			return nil
		}
		return b.Delete(keyCheckpoints)
	})
}

type bboltJourneyStore struct {
	db  *bolt.DB
	log logging.Logger
	mu  sync.Mutex
}

func (s *bboltJourneyStore) Append(ctx context.Context, record *types.JourneyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record == nil {
		return errors.New("journey record is required")
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketJourneys)
		if b == nil {
			return errors.New("journeys bucket missing")
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(itob(seq), raw)
	})
}

func (s *bboltJourneyStore) List(ctx context.Context) ([]*types.JourneyRecord, error) {
	out := make([]*types.JourneyRecord, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketJourneys)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var record types.JourneyRecord
			if err := json.Unmarshal(v, &record); err != nil {
				s.log.Warn("journey record unreadable, skipping",
					logging.F("error", err.Error()))
				return nil
			}
			out = append(out, &record)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *bboltJourneyStore) Last(ctx context.Context) (*types.JourneyRecord, bool, error) {
	var (
		out *types.JourneyRecord
		ok  bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketJourneys)
		if b == nil {
			return nil
		}
		_, raw := b.Cursor().Last()
		if len(raw) == 0 {
			return nil
		}
		var record types.JourneyRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			s.log.Warn("journey record unreadable, skipping",
				logging.F("error", err.Error()))
			return nil
		}
		out = &record
		ok = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, ok, nil
}

func (s *bboltJourneyStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return clearBucket(s.db, bucketJourneys)
}

type bboltSurveyStore struct {
	db  *bolt.DB
	log logging.Logger
	mu  sync.Mutex
}

func (s *bboltSurveyStore) Append(ctx context.Context, record *types.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record == nil {
		return errors.New("session record is required")
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSurveys)
		if b == nil {
			return errors.New("surveys bucket missing")
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(itob(seq), raw)
	})
}

func (s *bboltSurveyStore) List(ctx context.Context) ([]*types.SessionRecord, error) {
	out := make([]*types.SessionRecord, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSurveys)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var record types.SessionRecord
			if err := json.Unmarshal(v, &record); err != nil {
				s.log.Warn("session record unreadable, skipping",
					logging.F("error", err.Error()))
				return nil
			}
			out = append(out, &record)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *bboltSurveyStore) Last(ctx context.Context) (*types.SessionRecord, bool, error) {
	var (
		out *types.SessionRecord
		ok  bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSurveys)
		if b == nil {
			return nil
		}
		_, raw := b.Cursor().Last()
		if len(raw) == 0 {
			return nil
		}
		var record types.SessionRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			s.log.Warn("session record unreadable, skipping",
				logging.F("error", err.Error()))
			return nil
		}
		out = &record
		ok = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, ok, nil
}

func (s *bboltSurveyStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return clearBucket(s.db, bucketSurveys)
}

type bboltNoteStore struct {
	db  *bolt.DB
	log logging.Logger
	mu  sync.Mutex
}

func (s *bboltNoteStore) Append(ctx context.Context, note *types.SharedNote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if note == nil || strings.TrimSpace(note.Text) == "" {
		return errors.New("note text is required")
	}
	copyNote := *note
	copyNote.Text = strings.TrimSpace(copyNote.Text)
	raw, err := json.Marshal(&copyNote)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		if b == nil {
			return errors.New("notes bucket missing")
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(itob(seq), raw)
	})
}

func (s *bboltNoteStore) List(ctx context.Context) ([]*types.SharedNote, error) {
	out := make([]*types.SharedNote, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var note types.SharedNote
			if err := json.Unmarshal(v, &note); err != nil {
				s.log.Warn("shared note unreadable, skipping",
					logging.F("error", err.Error()))
				return nil
			}
			out = append(out, &note)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func clearBucket(db *bolt.DB, bucket []byte) error {
	return db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(bucket) == nil {
			return nil
		}
		if err := tx.DeleteBucket(bucket); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucket)
		return err
	})
}

func itob(v uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return buf
}
