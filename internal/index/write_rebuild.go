package index

import (
	"contentkit/internal/domain/content"
	"encoding/json"
	"errors"
	"fmt"
	bolt "go.etcd.io/bbolt"
	"strings"
	"time"
)

// Record is what the index keeps of one accepted content item.
type Record struct {
	content.ListItem
	UpdatedAt   *time.Time    `json:"updatedAt,omitempty"`
	HubSlug     string        `json:"hubSlug,omitempty"`
	SpokeOrder  *int          `json:"spokeOrder,omitempty"`
	Path        string        `json:"path,omitempty"`
	Stats       content.Stats `json:"stats"`
	Fingerprint string        `json:"fingerprint,omitempty"`
}

func NewRecord(c content.AnyContent, path string, stats content.Stats) Record {
	r := Record{
		ListItem:  content.NewListItem(c),
		UpdatedAt: c.Base().UpdatedAt,
		Path:      path,
		Stats:     stats,
	}
	if sp, ok := c.(content.SpokeContent); ok {
		r.HubSlug = sp.HubSlug
		r.SpokeOrder = sp.SpokeOrder
	}
	return r
}

func (r Record) Ref() Ref {
	return Ref{Category: r.Type, Slug: r.Slug}
}

// Rebuild replaces every record and index. Cache and run history are kept.
func (s *Store) Rebuild(records []Record) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range rebuiltBuckets {
			if err := tx.DeleteBucket(name); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
				return err
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return err
			}
		}
		for _, r := range records {
			if err := put(tx, r); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("index: rebuild: %w", err)
	}
	return nil
}

// Upsert writes r, replacing any earlier version with the same ref.
func (s *Store) Upsert(r Record) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range rebuiltBuckets {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		if err := remove(tx, r.Ref()); err != nil {
			return err
		}
		return put(tx, r)
	})
	if err != nil {
		return fmt.Errorf("index: upsert %s/%s: %w", r.Type, r.Slug, err)
	}
	return nil
}

func (s *Store) Delete(ref Ref) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(bRecords) == nil {
			return ErrNotFound
		}
		if tx.Bucket(bRecords).Get(ref.key()) == nil {
			return ErrNotFound
		}
		return remove(tx, ref)
	})
}

func put(tx *bolt.Tx, r Record) error {
	if strings.TrimSpace(r.Slug) == "" || r.Type == "" {
		return nil
	}
	ref := r.Ref()
	rb, err := json.Marshal(r)
	if err != nil {
		return err
	}
	if err := tx.Bucket(bRecords).Put(ref.key(), rb); err != nil {
		return err
	}

	tKey := makeTimeKey(r.PublishedAt.UnixNano(), ref)
	if err := tx.Bucket(bIdxTime).Put(tKey, []byte{1}); err != nil {
		return err
	}

	cb, err := tx.Bucket(bIdxCat).CreateBucketIfNotExists([]byte(r.Type))
	if err != nil {
		return err
	}
	if err := cb.Put(tKey, []byte{1}); err != nil {
		return err
	}

	for _, tag := range r.Tags {
		tag = normalizeTag(tag)
		if tag == "" {
			continue
		}
		sb, err := tx.Bucket(bIdxTag).CreateBucketIfNotExists([]byte(tag))
		if err != nil {
			return err
		}
		if err := sb.Put(tKey, []byte{1}); err != nil {
			return err
		}
	}

	if hub := strings.TrimSpace(r.HubSlug); hub != "" && r.Type == content.CategorySpoke {
		sb, err := tx.Bucket(bIdxSeries).CreateBucketIfNotExists([]byte(hub))
		if err != nil {
			return err
		}
		sKey := makeSeriesKey(r.SpokeOrder, r.PublishedAt.UnixNano(), ref)
		if err := sb.Put(sKey, []byte{1}); err != nil {
			return err
		}
	}
	return nil
}

// remove drops ref and every index entry pointing at it.
func remove(tx *bolt.Tx, ref Ref) error {
	v := tx.Bucket(bRecords).Get(ref.key())
	if v == nil {
		return nil
	}
	var old Record
	if err := json.Unmarshal(v, &old); err != nil {
		return err
	}
	tKey := makeTimeKey(old.PublishedAt.UnixNano(), ref)
	if err := tx.Bucket(bIdxTime).Delete(tKey); err != nil {
		return err
	}
	if cb := tx.Bucket(bIdxCat).Bucket([]byte(ref.Category)); cb != nil {
		if err := cb.Delete(tKey); err != nil {
			return err
		}
	}
	for _, tag := range old.Tags {
		if sb := tx.Bucket(bIdxTag).Bucket([]byte(normalizeTag(tag))); sb != nil {
			if err := sb.Delete(tKey); err != nil {
				return err
			}
		}
	}
	if old.HubSlug != "" {
		if sb := tx.Bucket(bIdxSeries).Bucket([]byte(old.HubSlug)); sb != nil {
			if err := sb.Delete(makeSeriesKey(old.SpokeOrder, old.PublishedAt.UnixNano(), ref)); err != nil {
				return err
			}
		}
	}
	return tx.Bucket(bRecords).Delete(ref.key())
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
