package index

import (
	"encoding/json"
	"fmt"
	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
	"time"
)

// Run is one validation pass over the content directories.
type Run struct {
	ID         string    `json:"id"`
	Mode       string    `json:"mode"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Files      int       `json:"files"`
	Valid      int       `json:"valid"`
	Invalid    int       `json:"invalid"`
	CacheHits  int       `json:"cacheHits"`
}

// RecordRun stores r, assigning an ID when it has none.
func (s *Store) RecordRun(r *Run) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("index: run encode: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bRuns).Put(makeRunKey(r.StartedAt.UnixNano(), r.ID), b)
	})
}

// Runs returns up to limit runs, newest first.
func (s *Store) Runs(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []Run
	err := s.db.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket(bRuns).Cursor()
		for k, v := cur.First(); k != nil && len(out) < limit; k, v = cur.Next() {
			var r Run
			if err := json.Unmarshal(v, &r); err != nil {
				continue
			}
			out = append(out, r)
		}
		return nil
	})
	return out, err
}
