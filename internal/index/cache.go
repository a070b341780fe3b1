package index

import (
	"encoding/json"
	"fmt"
	bolt "go.etcd.io/bbolt"
)

// PutCache stores v as JSON under key.
func (s *Store) PutCache(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("index: cache encode: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bCache).Put([]byte(key), b)
	})
}

// GetCache decodes the entry under key into v and reports whether it
// existed.
func (s *Store) GetCache(key string, v any) (bool, error) {
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bCache).Get([]byte(key))
		if raw == nil {
			return nil
		}
		found = true
		return json.Unmarshal(raw, v)
	})
	return found, err
}

// PruneCache drops every entry whose key is not in keep.
func (s *Store) PruneCache(keep map[string]struct{}) (int, error) {
	var n int
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bCache)
		var stale [][]byte
		err := b.ForEach(func(k, _ []byte) error {
			if _, ok := keep[string(k)]; !ok {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		n = len(stale)
		return nil
	})
	return n, err
}
