package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

var bucketRuns = []byte("runs")

// BoltStore keeps run history in a single BoltDB file so the CLI can look
// back at earlier plans without a database server.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open boltdb: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRuns)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create buckets: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) CreateRun(_ context.Context, run *Run) error {
	prepare(run, time.Now())
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshal run: %w", err)
	}
	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRuns).Put([]byte(run.ID.String()), data)
	})
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}

func (s *BoltStore) GetRun(_ context.Context, id uuid.UUID) (*Run, error) {
	var run *Run
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketRuns).Get([]byte(id.String()))
		if data == nil {
			return nil
		}
		run = &Run{}
		return json.Unmarshal(data, run)
	})
	if err != nil {
		return nil, fmt.Errorf("read run: %w", err)
	}
	return run, nil
}

func (s *BoltStore) ListRuns(_ context.Context, filter RunFilter) ([]*Run, error) {
	runs, err := s.scan(filter)
	if err != nil {
		return nil, err
	}
	return limitRuns(runs, filter.Limit), nil
}

func (s *BoltStore) GetStats(_ context.Context) (*RunStats, error) {
	runs, err := s.scan(RunFilter{})
	if err != nil {
		return nil, err
	}
	return statsOf(runs), nil
}

func (s *BoltStore) scan(filter RunFilter) ([]*Run, error) {
	var runs []*Run
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRuns).ForEach(func(k, v []byte) error {
			run := &Run{}
			if err := json.Unmarshal(v, run); err != nil {
				return fmt.Errorf("decode run %s: %w", k, err)
			}
			if matches(run, filter) {
				runs = append(runs, run)
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("scan runs: %w", err)
	}
	sortNewestFirst(runs)
	return runs, nil
}
