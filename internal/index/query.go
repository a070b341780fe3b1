package index

import (
	"contentkit/internal/domain/content"
	"encoding/json"
	"errors"
	bolt "go.etcd.io/bbolt"
	"strings"
)

var ErrNotFound = errors.New("not found")

type ListOptions struct {
	Page int
	Size int
}

func (s *Store) Get(ref Ref) (Record, error) {
	if strings.TrimSpace(ref.Slug) == "" {
		return Record{}, ErrNotFound
	}
	var r Record
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bRecords)
		if b == nil {
			return ErrNotFound
		}
		v := b.Get(ref.key())
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &r)
	})
	return r, err
}

func normalizePaging(page, size int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 10
	}
	if size > 100 {
		size = 100
	}
	return page, size
}

// scan walks an index bucket in key order and loads the page of records
// it points at. Dangling or undecodable entries are skipped.
func scan(tx *bolt.Tx, idx *bolt.Bucket, parse func([]byte) (Ref, bool), opt ListOptions) []Record {
	recB := tx.Bucket(bRecords)
	if idx == nil || recB == nil {
		return nil
	}
	skip := (opt.Page - 1) * opt.Size
	var out []Record
	cur := idx.Cursor()
	for k, _ := cur.First(); k != nil; k, _ = cur.Next() {
		ref, ok := parse(k)
		if !ok {
			continue
		}
		v := recB.Get(ref.key())
		if v == nil {
			continue
		}
		var r Record
		if err := json.Unmarshal(v, &r); err != nil {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		out = append(out, r)
		if len(out) >= opt.Size {
			break
		}
	}
	return out
}

// List returns every record, newest first.
func (s *Store) List(opt ListOptions) ([]Record, error) {
	opt.Page, opt.Size = normalizePaging(opt.Page, opt.Size)
	var out []Record
	err := s.db.View(func(tx *bolt.Tx) error {
		out = scan(tx, tx.Bucket(bIdxTime), refFromTimeKey, opt)
		return nil
	})
	return out, err
}

func (s *Store) ListByCategory(cat content.Category, opt ListOptions) ([]Record, error) {
	if cat == "" {
		return nil, nil
	}
	opt.Page, opt.Size = normalizePaging(opt.Page, opt.Size)
	var out []Record
	err := s.db.View(func(tx *bolt.Tx) error {
		out = scan(tx, subBucket(tx, bIdxCat, string(cat)), refFromTimeKey, opt)
		return nil
	})
	return out, err
}

func (s *Store) ListByTag(tag string, opt ListOptions) ([]Record, error) {
	tag = normalizeTag(tag)
	if tag == "" {
		return nil, nil
	}
	opt.Page, opt.Size = normalizePaging(opt.Page, opt.Size)
	var out []Record
	err := s.db.View(func(tx *bolt.Tx) error {
		out = scan(tx, subBucket(tx, bIdxTag, tag), refFromTimeKey, opt)
		return nil
	})
	return out, err
}

// ListSeries returns the spokes of hub ordered by spokeOrder.
func (s *Store) ListSeries(hub string, opt ListOptions) ([]Record, error) {
	hub = strings.TrimSpace(hub)
	if hub == "" {
		return nil, nil
	}
	opt.Page, opt.Size = normalizePaging(opt.Page, opt.Size)
	var out []Record
	err := s.db.View(func(tx *bolt.Tx) error {
		out = scan(tx, subBucket(tx, bIdxSeries, hub), refFromSeriesKey, opt)
		return nil
	})
	return out, err
}

func (s *Store) ListAllSeriesNames() ([]string, error) {
	return s.subBucketNames(bIdxSeries)
}

func (s *Store) ListAllTags() ([]string, error) {
	return s.subBucketNames(bIdxTag)
}

// Count returns the number of records per category.
func (s *Store) Count() (map[content.Category]int, error) {
	out := make(map[content.Category]int)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bRecords)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			if ref, ok := refFromKey(k); ok {
				out[ref.Category]++
			}
			return nil
		})
	})
	return out, err
}

func (s *Store) subBucketNames(parent []byte) ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(parent)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, err
}

func subBucket(tx *bolt.Tx, parent []byte, name string) *bolt.Bucket {
	b := tx.Bucket(parent)
	if b == nil {
		return nil
	}
	return b.Bucket([]byte(name))
}
